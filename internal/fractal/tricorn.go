package fractal

import (
	"github.com/san-kum/fractal/internal/colour"
	"github.com/san-kum/fractal/internal/cplx"
)

// evalTricorn iterates z = conj(z)^2 + c from z0 = 0.
func evalTricorn(c cplx.Complex, maxIterations int) colour.RGBA {
	var z cplx.Complex
	checkpoint := z
	for i := 0; i < maxIterations; i++ {
		zc := z.Conj()
		z = zc.Mul(zc).Add(c)
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

func traceTricorn(c cplx.Complex, maxIterations int) []cplx.Complex {
	var z cplx.Complex
	orbit := []cplx.Complex{z}
	for i := 0; i < maxIterations; i++ {
		zc := z.Conj()
		z = zc.Mul(zc).Add(c)
		orbit = append(orbit, z)
		if z.MagSq() > escapeRadiusSq {
			break
		}
	}
	return orbit
}
