// Package fractal implements the escape-time and root-convergence
// algorithms that colour a single plane point, their trajectory variants
// used for point inspection, and the iteration-budget policy.
package fractal

import (
	"github.com/san-kum/fractal/internal/colour"
	"github.com/san-kum/fractal/internal/cplx"
)

// Kind selects one of the fractal algorithms. A closed enum keeps the
// per-pixel dispatch a switch instead of an indirect call.
type Kind uint8

const (
	Mandelbrot Kind = iota
	Tricorn
	BurningShip
	Newton
	numKinds
)

// escapeRadiusSq is the squared escape threshold (radius 2) shared by the
// three escape-time algorithms.
const escapeRadiusSq = 4.0

func (k Kind) String() string {
	switch k {
	case Mandelbrot:
		return "Mandelbrot Set"
	case Tricorn:
		return "Tricorn"
	case BurningShip:
		return "Burning Ship"
	case Newton:
		return "Newton Fractal"
	}
	return "unknown"
}

// Eval colours one plane point under the given iteration ceiling. It is
// pure: identical inputs always produce identical pixels.
func (k Kind) Eval(c cplx.Complex, maxIterations int) colour.RGBA {
	switch k {
	case Mandelbrot:
		return evalMandelbrot(c, maxIterations)
	case Tricorn:
		return evalTricorn(c, maxIterations)
	case BurningShip:
		return evalBurningShip(c, maxIterations)
	case Newton:
		return evalNewton(c, maxIterations)
	}
	return colour.Interior
}

// Trajectory returns the orbit of c truncated at escape, convergence or
// the iteration ceiling. It is recomputed from scratch on every call,
// never resumed, and is used only for the point-inspection overlay.
func (k Kind) Trajectory(c cplx.Complex, maxIterations int) []cplx.Complex {
	switch k {
	case Mandelbrot:
		return traceMandelbrot(c, maxIterations)
	case Tricorn:
		return traceTricorn(c, maxIterations)
	case BurningShip:
		return traceBurningShip(c, maxIterations)
	case Newton:
		return traceNewton(c, maxIterations)
	}
	return nil
}

// Option describes a selectable fractal for the front end.
type Option struct {
	Name string
	Key  rune
	Kind Kind
}

func Options() []Option {
	return []Option{
		{Name: "Mandelbrot Set", Key: '1', Kind: Mandelbrot},
		{Name: "Tricorn", Key: '2', Kind: Tricorn},
		{Name: "Burning Ship", Key: '3', Kind: BurningShip},
		{Name: "Newton Fractal", Key: '4', Kind: Newton},
	}
}
