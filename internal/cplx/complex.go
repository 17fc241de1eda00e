package cplx

import "math"

// Complex is an immutable two-component complex value. Every operation
// returns a new value; nothing mutates in place, so values can be copied
// freely across goroutines.
type Complex struct {
	Re, Im float64
}

func New(re, im float64) Complex { return Complex{Re: re, Im: im} }

func (z Complex) Add(w Complex) Complex { return Complex{z.Re + w.Re, z.Im + w.Im} }

func (z Complex) Sub(w Complex) Complex { return Complex{z.Re - w.Re, z.Im - w.Im} }

func (z Complex) Mul(w Complex) Complex {
	return Complex{z.Re*w.Re - z.Im*w.Im, z.Re*w.Im + z.Im*w.Re}
}

// Div divides z by w. The divisor must be non-zero; the only synthetic
// denominators in this codebase are Newton derivative terms, which are
// guarded at the call site.
func (z Complex) Div(w Complex) Complex {
	d := w.Re*w.Re + w.Im*w.Im
	return Complex{(z.Re*w.Re + z.Im*w.Im) / d, (z.Im*w.Re - z.Re*w.Im) / d}
}

func (z Complex) Scale(s float64) Complex { return Complex{z.Re * s, z.Im * s} }

func (z Complex) Conj() Complex { return Complex{z.Re, -z.Im} }

// MagSq is the squared magnitude. Prefer it over Mag wherever only a
// threshold comparison is needed.
func (z Complex) MagSq() float64 { return z.Re*z.Re + z.Im*z.Im }

func (z Complex) Mag() float64 { return math.Sqrt(z.Re*z.Re + z.Im*z.Im) }
