// Package colour maps fractal evaluation results to packed pixels.
package colour

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBA is a 32-bit packed pixel, red in the high byte, alpha in the low.
type RGBA uint32

// Interior is the sentinel for non-escaping points: opaque black.
const Interior RGBA = 0x000000ff

func Pack(r, g, b uint8) RGBA {
	return RGBA(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | 0xff)
}

func (p RGBA) RGB() (r, g, b uint8) {
	return uint8(p >> 24), uint8(p >> 16), uint8(p >> 8)
}

// Hex renders the pixel as "#rrggbb" for terminal styling.
func (p RGBA) Hex() string {
	r, g, b := p.RGB()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Gradient stops for escape-time colouring, blended in Lab space so the
// ramp stays perceptually smooth at deep zooms.
var stops = []colorful.Color{
	{R: 0.000, G: 0.027, B: 0.392}, // deep blue
	{R: 0.125, G: 0.420, B: 0.796}, // azure
	{R: 0.929, G: 1.000, B: 1.000}, // near white
	{R: 1.000, G: 0.667, B: 0.000}, // orange
	{R: 0.000, G: 0.008, B: 0.000}, // almost black
}

// Gradient maps an escape iteration count to a pixel. It is a pure
// function of (iteration, maxIterations); renders of the same job must be
// byte-identical.
func Gradient(iteration, maxIterations int) RGBA {
	if maxIterations <= 0 {
		return Interior
	}
	t := float64(iteration) / float64(maxIterations)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	segments := len(stops) - 1
	pos := t * float64(segments)
	i := int(pos)
	if i >= segments {
		i = segments - 1
	}
	c := stops[i].BlendLab(stops[i+1], pos-float64(i)).Clamped()

	return Pack(uint8(c.R*255+0.5), uint8(c.G*255+0.5), uint8(c.B*255+0.5))
}

// Newton basins are coloured by which root the orbit reached, not by how
// long it took to get there.
var rootColours = [3]RGBA{
	Pack(0xe6, 0x39, 0x46), // 1
	Pack(0x2a, 0x9d, 0x8f), // -1/2 + i*sqrt(3)/2
	Pack(0x45, 0x7b, 0x9d), // -1/2 - i*sqrt(3)/2
}

// Root returns the colour for the given root index; out-of-range indices
// fall back to the interior colour.
func Root(index int) RGBA {
	if index < 0 || index >= len(rootColours) {
		return Interior
	}
	return rootColours[index]
}
