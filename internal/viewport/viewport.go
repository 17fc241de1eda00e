// Package viewport maps between screen pixels and the complex plane.
//
// Convention used throughout the repo: screen y grows downward, the
// imaginary axis grows upward, so the vertical mapping is inverted in
// both directions.
package viewport

import (
	"math"

	"github.com/san-kum/fractal/internal/cplx"
)

const (
	// MinZoom is zoom level 1: the shorter window dimension spans
	// planeExtent units of the plane.
	MinZoom     = 1.0
	planeExtent = 4.0 // -2..2 along the shorter axis

	// MaxOffset bounds panning; the interesting set lives well inside it.
	MaxOffset = 2.5

	zoomStepFactor = 2.0
)

// Viewport is the long-lived view state: window geometry plus the derived
// plane-space mapping. It is mutated only by intent handlers between
// render jobs; workers always receive a copy inside a job snapshot.
type Viewport struct {
	Width, Height int
	HalfW, HalfH  float64

	Zoom float64
	// ZoomSteps counts discrete doublings of Zoom; it drives the
	// iteration budget.
	ZoomSteps float64

	PlaneW, PlaneH   float64
	DxRatio, DyRatio float64

	OffsetX, OffsetY float64
}

func New(width, height int) Viewport {
	v := Viewport{Zoom: MinZoom}
	v.setSize(width, height)
	return v
}

func (v *Viewport) setSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	v.Width = width
	v.Height = height
	v.HalfW = float64(width) / 2
	v.HalfH = float64(height) / 2
	v.refresh()
}

// refresh recomputes the plane extent and per-pixel deltas. Width and
// height are always derived together so the aspect ratio mapping holds:
// the shorter window dimension spans a fixed plane extent.
func (v *Viewport) refresh() {
	aspect := float64(v.Width) / float64(v.Height)

	if v.Width < v.Height {
		v.PlaneW = planeExtent / v.Zoom
		v.PlaneH = v.PlaneW / aspect
	} else {
		v.PlaneH = planeExtent / v.Zoom
		v.PlaneW = v.PlaneH * aspect
	}

	v.DxRatio = v.PlaneW / float64(v.Width)
	v.DyRatio = v.PlaneH / float64(v.Height)
}

// Resize reports whether the size actually changed.
func (v *Viewport) Resize(width, height int) bool {
	if width == v.Width && height == v.Height {
		return false
	}
	v.setSize(width, height)
	return true
}

// SetZoomPower sets zoom to 10^power. Powers below zero would drop under
// the minimum zoom level and are rejected with no state change.
func (v *Viewport) SetZoomPower(power float64) bool {
	if power < 0 {
		return false
	}
	v.Zoom = math.Pow(10, power)
	// 2^ZoomSteps == 10^power
	v.ZoomSteps = power / math.Log10(2)
	v.refresh()
	return true
}

func (v *Viewport) ZoomIn() bool {
	return v.SetZoomPower(math.Log10(v.Zoom * zoomStepFactor))
}

func (v *Viewport) ZoomOut() bool {
	return v.SetZoomPower(math.Log10(v.Zoom / zoomStepFactor))
}

// SetOffset pans the view centre, clamped to the legal plane window.
func (v *Viewport) SetOffset(re, im float64) {
	v.OffsetX = math.Min(math.Max(re, -MaxOffset), MaxOffset)
	v.OffsetY = math.Min(math.Max(im, -MaxOffset), MaxOffset)
}

// Reset restores the initial zoom and offset; it reports whether anything
// changed.
func (v *Viewport) Reset() bool {
	if v.Zoom == MinZoom && v.OffsetX == 0 && v.OffsetY == 0 {
		return false
	}
	v.Zoom = MinZoom
	v.ZoomSteps = 0
	v.OffsetX = 0
	v.OffsetY = 0
	v.refresh()
	return true
}

// ScreenToPlane maps a pixel coordinate to its plane point.
func (v Viewport) ScreenToPlane(px, py float64) cplx.Complex {
	return cplx.New(
		(px-v.HalfW)*v.DxRatio+v.OffsetX,
		(v.HalfH-py)*v.DyRatio+v.OffsetY,
	)
}

// PlaneToScreen is the inverse of ScreenToPlane; for any point inside the
// visible viewport the round trip reconstructs the pixel within rounding
// error.
func (v Viewport) PlaneToScreen(c cplx.Complex) (px, py float64) {
	return (c.Re-v.OffsetX)/v.DxRatio + v.HalfW,
		v.HalfH - (c.Im-v.OffsetY)/v.DyRatio
}
