package fractal

import (
	"math"

	"github.com/san-kum/fractal/internal/colour"
	"github.com/san-kum/fractal/internal/cplx"
)

// evalBurningShip reflects c across the real axis once, then iterates
// z = (|Re(z)| + i|Im(z)|)^2 + c. The reflection keeps the ship upright
// under the upward-imaginary screen mapping.
func evalBurningShip(c cplx.Complex, maxIterations int) colour.RGBA {
	c = c.Conj()

	var z cplx.Complex
	checkpoint := z
	for i := 0; i < maxIterations; i++ {
		a := cplx.New(math.Abs(z.Re), math.Abs(z.Im))
		z = a.Mul(a).Add(c)
		if z.MagSq() > escapeRadiusSq {
			return colour.Gradient(i, maxIterations)
		}
		if (i+1)%periodicityInterval == 0 {
			if periodic(z, checkpoint) {
				return colour.Interior
			}
			checkpoint = z
		}
	}

	return colour.Interior
}

// traceBurningShip iterates in the reflected frame but conjugates each
// produced point back, so the displayed orbit lines up with the
// un-reflected viewport.
func traceBurningShip(c cplx.Complex, maxIterations int) []cplx.Complex {
	reflected := c.Conj()

	var z cplx.Complex
	orbit := []cplx.Complex{z.Conj()}
	for i := 0; i < maxIterations; i++ {
		a := cplx.New(math.Abs(z.Re), math.Abs(z.Im))
		z = a.Mul(a).Add(reflected)
		orbit = append(orbit, z.Conj())
		if z.MagSq() > escapeRadiusSq {
			break
		}
	}
	return orbit
}
