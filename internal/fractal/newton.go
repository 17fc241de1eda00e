package fractal

import (
	"math"

	"github.com/san-kum/fractal/internal/colour"
	"github.com/san-kum/fractal/internal/cplx"
)

// The three cube roots of unity, the fixed points of the iteration for
// f(z) = z^3 - 1.
var newtonRoots = [3]cplx.Complex{
	{Re: 1, Im: 0},
	{Re: -0.5, Im: math.Sqrt(3) / 2},
	{Re: -0.5, Im: -math.Sqrt(3) / 2},
}

const newtonTolerance = 1e-6

var one = cplx.New(1, 0)

// evalNewton runs Newton's method z = z - (z^3-1)/(3z^2) and colours by
// which root the orbit reached. A vanishing derivative (z at the origin)
// is treated as no convergence for the pixel rather than a fault.
func evalNewton(z cplx.Complex, maxIterations int) colour.RGBA {
	for i := 0; i < maxIterations; i++ {
		z2 := z.Mul(z)
		deriv := z2.Scale(3)
		if deriv.MagSq() == 0 {
			return colour.Interior
		}

		fz := z2.Mul(z).Sub(one)
		z = z.Sub(fz.Div(deriv))

		if r := nearestRoot(z); r >= 0 {
			return colour.Root(r)
		}
	}

	return colour.Interior
}

// nearestRoot returns the index of the root z has converged to, matching
// component-wise within tolerance, or -1.
func nearestRoot(z cplx.Complex) int {
	for i, root := range newtonRoots {
		if math.Abs(z.Re-root.Re) < newtonTolerance && math.Abs(z.Im-root.Im) < newtonTolerance {
			return i
		}
	}
	return -1
}

func traceNewton(z cplx.Complex, maxIterations int) []cplx.Complex {
	orbit := []cplx.Complex{z}
	for i := 0; i < maxIterations; i++ {
		z2 := z.Mul(z)
		deriv := z2.Scale(3)
		if deriv.MagSq() == 0 {
			break
		}

		fz := z2.Mul(z).Sub(one)
		z = z.Sub(fz.Div(deriv))
		orbit = append(orbit, z)

		if nearestRoot(z) >= 0 {
			break
		}
	}
	return orbit
}
