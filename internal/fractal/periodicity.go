package fractal

import (
	"math"

	"github.com/san-kum/fractal/internal/cplx"
)

const (
	// periodicityInterval is how many iterations pass between orbit
	// checkpoints.
	periodicityInterval = 20

	periodicityEpsilon = 1e-8
)

// periodic reports whether the orbit has settled onto a cycle: the
// current point matches the last checkpoint in squared distance, in
// normalized dot product (deviation from 1) and in cross product. A
// periodic orbit never escapes, so the pixel can be classified interior
// without spending the rest of the budget. Used by the escape-time
// algorithms; Newton has its own convergence test.
func periodic(z, checkpoint cplx.Complex) bool {
	if z.Sub(checkpoint).MagSq() >= periodicityEpsilon {
		return false
	}

	norm := math.Sqrt(z.MagSq() * checkpoint.MagSq())
	if norm == 0 {
		// Both points at the origin: a fixed point.
		return true
	}

	dot := (z.Re*checkpoint.Re + z.Im*checkpoint.Im) / norm
	cross := math.Abs(z.Re*checkpoint.Im-z.Im*checkpoint.Re) / norm

	return math.Abs(dot-1) < periodicityEpsilon && cross < periodicityEpsilon
}
