// Package trajectory rasterizes one orbit into screen space for the
// point-inspection overlay.
package trajectory

import (
	"image"
	"sync"

	"github.com/san-kum/fractal/internal/cplx"
	"github.com/san-kum/fractal/internal/viewport"
)

// Overlay is a rasterized orbit: a polyline of consecutive screen points
// clamped to the viewport, plus a marker at every sample that fell inside
// the viewport unclamped.
type Overlay struct {
	Line    []image.Point
	Markers []image.Point
	Start   image.Point
}

// Tracer builds overlays one at a time. It may run while a background
// render is in flight, but two traces never run concurrently: a new
// request waits out the previous one.
type Tracer struct {
	mu sync.Mutex
}

// Trace maps the orbit through the viewport's plane-to-screen mapping.
// Returns nil for an empty orbit.
func (t *Tracer) Trace(orbit []cplx.Complex, view viewport.Viewport) *Overlay {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(orbit) == 0 {
		return nil
	}

	o := &Overlay{
		Line:    make([]image.Point, 0, len(orbit)),
		Markers: make([]image.Point, 0, len(orbit)),
	}

	for i, p := range orbit {
		fx, fy := view.PlaneToScreen(p)
		px, py := int(fx), int(fy)

		cx := clamp(px, 0, view.Width)
		cy := clamp(py, 0, view.Height)
		o.Line = append(o.Line, image.Pt(cx, cy))

		if i == 0 {
			o.Start = image.Pt(cx, cy)
			continue
		}
		if cx == px && cy == py {
			o.Markers = append(o.Markers, image.Pt(px, py))
		}
	}

	return o
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
