package fractal

import (
	"github.com/san-kum/fractal/internal/colour"
	"github.com/san-kum/fractal/internal/cplx"
)

// inCardioid reports membership in the main cardioid. Points inside never
// escape, so the whole iteration loop can be skipped.
func inCardioid(c cplx.Complex) bool {
	x := c.Re - 0.25
	q := x*x + c.Im*c.Im
	return q*(q+x) <= 0.25*c.Im*c.Im
}

// inPeriod2Bulb reports membership in the circular bulb centred at -1.
func inPeriod2Bulb(c cplx.Complex) bool {
	x := c.Re + 1
	return x*x+c.Im*c.Im <= 0.0625
}

// evalMandelbrot iterates z = z^2 + c from z0 = 0. The escape test runs
// after each step with the counter starting at 0, so a point escaping on
// the first step colours as iteration 0.
func evalMandelbrot(c cplx.Complex, maxIterations int) colour.RGBA {
	if inCardioid(c) || inPeriod2Bulb(c) {
		return colour.Interior
	}

	var z cplx.Complex
	checkpoint := z
	for i := 0; i < maxIterations; i++ {
		z = z.Mul(z).Add(c)
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

func traceMandelbrot(c cplx.Complex, maxIterations int) []cplx.Complex {
	var z cplx.Complex
	orbit := []cplx.Complex{z}
	for i := 0; i < maxIterations; i++ {
		z = z.Mul(z).Add(c)
		orbit = append(orbit, z)
		if z.MagSq() > escapeRadiusSq {
			break
		}
	}
	return orbit
}
