// Package session owns the long-lived render state (viewport, fractal
// and resolution selection, iteration ceiling) and exposes one handler
// per user intent. Handlers validate, mutate state and dispatch a fresh
// render job; invalid intents are no-ops with no state change.
package session

import (
	"math"

	"github.com/san-kum/fractal/internal/config"
	"github.com/san-kum/fractal/internal/cplx"
	"github.com/san-kum/fractal/internal/fractal"
	"github.com/san-kum/fractal/internal/render"
	"github.com/san-kum/fractal/internal/trajectory"
	"github.com/san-kum/fractal/internal/viewport"
)

// Resolution is a selectable render scale: render size is the window
// size times the length factor in each dimension, so the factors below
// halve the pixel count per step.
type Resolution struct {
	Name   string
	Factor float64
}

func Resolutions() []Resolution {
	return []Resolution{
		{"100%", 1.0},
		{"50%", math.Sqrt(0.5)},
		{"25%", 0.5},
		{"12.5%", math.Sqrt(0.125)},
		{"6.25%", 0.25},
	}
}

// Session is the single explicit context object passed to every handler;
// there is no ambient global render state.
type Session struct {
	view viewport.Viewport

	options    []fractal.Option
	fractalIdx int

	resolutions   []Resolution
	resolutionIdx int

	// maxIterations is the user-settable full-render ceiling; it also
	// caps the zoom-scaled budget.
	maxIterations int
	// curIterations is the budget captured by the last dispatched job,
	// shown in the HUD.
	curIterations int

	cfg *config.Config

	sched   *render.Scheduler
	tracer  trajectory.Tracer
	overlay *trajectory.Overlay
}

func New(cfg *config.Config) *Session {
	s := &Session{
		view:          viewport.New(cfg.Window.Width, cfg.Window.Height),
		options:       fractal.Options(),
		resolutions:   Resolutions(),
		maxIterations: cfg.Render.MaxIterations,
		cfg:           cfg,
		sched:         render.NewScheduler(cfg.Render.Workers),
	}
	return s
}

// Start kicks off the initial render.
func (s *Session) Start() error { return s.dispatch(false) }

// dispatch captures an immutable job snapshot and hands it to the
// scheduler, superseding any in-flight job.
func (s *Session) dispatch(full bool) error {
	budget := s.maxIterations
	if !full {
		budget = fractal.Budget(
			int(s.view.ZoomSteps),
			s.cfg.Render.InitialIterations,
			s.cfg.Render.IterationIncrement,
			s.maxIterations,
		)
	}
	s.curIterations = budget

	return s.sched.Dispatch(render.Job{
		View:          s.view,
		Kind:          s.options[s.fractalIdx].Kind,
		MaxIterations: budget,
		Scale:         s.resolutions[s.resolutionIdx].Factor,
	})
}

// PanTo centres the view on the given plane point.
func (s *Session) PanTo(c cplx.Complex) error {
	s.view.SetOffset(c.Re, c.Im)
	s.overlay = nil
	return s.dispatch(false)
}

// PanBy shifts the view centre by fractions of the visible plane extent.
func (s *Session) PanBy(dx, dy float64) error {
	s.view.SetOffset(s.view.OffsetX+dx*s.view.PlaneW, s.view.OffsetY+dy*s.view.PlaneH)
	s.overlay = nil
	return s.dispatch(false)
}

// ZoomIn doubles the zoom level.
func (s *Session) ZoomIn() error {
	if !s.view.ZoomIn() {
		return nil
	}
	s.overlay = nil
	return s.dispatch(false)
}

// ZoomOut halves the zoom level; at the minimum zoom it is a no-op.
func (s *Session) ZoomOut() error {
	if !s.view.ZoomOut() {
		return nil
	}
	s.overlay = nil
	return s.dispatch(false)
}

// SelectFractal switches the active algorithm. Out-of-range and unchanged
// selections are no-ops.
func (s *Session) SelectFractal(index int) error {
	if index < 0 || index >= len(s.options) || index == s.fractalIdx {
		return nil
	}
	s.fractalIdx = index
	s.overlay = nil
	return s.dispatch(false)
}

// SelectResolution switches the render scale. Out-of-range and unchanged
// selections are no-ops.
func (s *Session) SelectResolution(index int) error {
	if index < 0 || index >= len(s.resolutions) || index == s.resolutionIdx {
		return nil
	}
	s.resolutionIdx = index
	return s.dispatch(false)
}

// Resize adapts the viewport to a new window size; unchanged sizes are
// no-ops.
func (s *Session) Resize(width, height int) error {
	if !s.view.Resize(width, height) {
		return nil
	}
	s.overlay = nil
	return s.dispatch(false)
}

// FullRender bypasses the zoom-scaled budget and renders at the absolute
// maximum.
func (s *Session) FullRender() error { return s.dispatch(true) }

// SetMaxIterations updates the full-render ceiling. Non-positive values
// are rejected with no state change; values above the hard limit clamp.
func (s *Session) SetMaxIterations(n int) error {
	if n <= 0 {
		return nil
	}
	if n > config.HardIterationLimit {
		n = config.HardIterationLimit
	}
	if n == s.maxIterations {
		return nil
	}
	s.maxIterations = n
	return s.dispatch(false)
}

// Reset restores the initial zoom and offset; a pristine view is a no-op.
func (s *Session) Reset() error {
	if !s.view.Reset() {
		return nil
	}
	s.overlay = nil
	return s.dispatch(false)
}

// TrajectoryAt computes and rasterizes the orbit of the plane point under
// the given pixel. It is skipped while a render is recalculating the
// frame, matching the interaction model: inspect a settled frame.
func (s *Session) TrajectoryAt(px, py float64) {
	if s.sched.Rendering() {
		return
	}
	c := s.view.ScreenToPlane(px, py)
	orbit := s.options[s.fractalIdx].Kind.Trajectory(c, s.curIterations)
	s.overlay = s.tracer.Trace(orbit, s.view)
}

// ClearTrajectory drops the overlay without touching the frame.
func (s *Session) ClearTrajectory() { s.overlay = nil }

func (s *Session) View() viewport.Viewport      { return s.view }
func (s *Session) Frame() *render.Frame         { return s.sched.Frame() }
func (s *Session) Progress() float64            { return s.sched.Progress() }
func (s *Session) Rendering() bool              { return s.sched.Rendering() }
func (s *Session) Overlay() *trajectory.Overlay { return s.overlay }
func (s *Session) Option() fractal.Option       { return s.options[s.fractalIdx] }
func (s *Session) Options() []fractal.Option    { return s.options }
func (s *Session) Resolution() Resolution       { return s.resolutions[s.resolutionIdx] }
func (s *Session) ResolutionIndex() int         { return s.resolutionIdx }
func (s *Session) ResolutionCount() int         { return len(s.resolutions) }
func (s *Session) Iterations() int              { return s.curIterations }
func (s *Session) MaxIterations() int           { return s.maxIterations }

// Wait blocks until the in-flight job settles; used by one-shot callers.
func (s *Session) Wait() { s.sched.Wait() }
