// Package render turns a parameter snapshot into a full-frame pixel
// buffer on a fixed-size worker pool, without ever publishing a torn or
// partially written frame.
package render

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/san-kum/fractal/internal/colour"
	"github.com/san-kum/fractal/internal/fractal"
	"github.com/san-kum/fractal/internal/viewport"
)

// MaxPixels bounds the pixel-buffer allocation; requests above it fail
// the job and leave the previous frame displayed.
const MaxPixels = 1 << 26

// Job is an immutable snapshot of everything one render pass needs.
// Workers only ever read the snapshot, never the live viewport, so
// parameter changes mid-job cannot be observed.
type Job struct {
	View          viewport.Viewport
	Kind          fractal.Kind
	MaxIterations int
	// Scale is the render resolution length factor; the output buffer is
	// the window size times Scale in each dimension.
	Scale float64
}

// Frame is a completed, immutable pixel buffer.
type Frame struct {
	Pix           []colour.RGBA
	Width, Height int
}

// run is the in-flight state of one job. Each run owns its cancel flag;
// a cancelled run discards its buffer and never publishes.
type run struct {
	cancel   atomic.Bool
	done     chan struct{}
	progress atomic.Int64
	total    int64
}

// Scheduler renders one job at a time. Dispatching while a job is in
// flight cancels it and waits for its workers to stop before the new
// job's workers touch the buffer, so at most one job ever writes to the
// scratch buffer and the published frame is always wholly the output of
// a single completed job.
//
// Dispatch must be called from a single orchestrating goroutine; Frame,
// Progress and Rendering may be called from anywhere.
type Scheduler struct {
	workers int

	mu  sync.Mutex // guards buf while a job is writing
	buf []colour.RGBA

	frame atomic.Pointer[Frame]
	cur   atomic.Pointer[run]
}

// NewScheduler sizes the pool; workers <= 0 selects the hardware
// parallelism.
func NewScheduler(workers int) *Scheduler {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Scheduler{workers: workers}
}

// Dispatch cancels any in-flight job, waits for its workers to join, and
// starts rendering the snapshot in the background. It returns once the
// new job is running; completion is observed through Frame and Progress.
func (s *Scheduler) Dispatch(job Job) error {
	width := int(float64(job.View.Width) * job.Scale)
	height := int(float64(job.View.Height) * job.Scale)
	if width <= 0 || height <= 0 {
		return ErrEmptyFrame
	}
	if width*height > MaxPixels {
		return ErrFrameTooLarge
	}

	if prev := s.cur.Load(); prev != nil {
		prev.cancel.Store(true)
		<-prev.done
	}

	r := &run{done: make(chan struct{}), total: int64(width)}
	s.cur.Store(r)
	s.buf = make([]colour.RGBA, width*height)

	go s.render(job, r, width, height)
	return nil
}

// Wait blocks until the current job (if any) has finished or been
// cancelled. Used by one-shot callers; the interactive loop polls
// Progress instead.
func (s *Scheduler) Wait() {
	if r := s.cur.Load(); r != nil {
		<-r.done
	}
}

// Frame returns the most recently completed frame, or nil before the
// first completion. The returned frame is immutable.
func (s *Scheduler) Frame() *Frame {
	return s.frame.Load()
}

// Progress reports the fraction of columns completed by the current job
// in [0, 1]. Non-decreasing until completion; 1 when idle.
func (s *Scheduler) Progress() float64 {
	r := s.cur.Load()
	if r == nil {
		return 1
	}
	p := float64(r.progress.Load()) / float64(r.total)
	if p > 1 {
		p = 1
	}
	return p
}

// Rendering reports whether a job is in flight.
func (s *Scheduler) Rendering() bool {
	r := s.cur.Load()
	if r == nil {
		return false
	}
	select {
	case <-r.done:
		return false
	default:
		return true
	}
}

// render partitions the frame into contiguous column ranges, one per
// worker. Columns are disjoint across workers; the mutex is still taken
// around each column flush to keep memory visibility simple, and the
// progress counter is atomic to keep the hot path lock-free.
func (s *Scheduler) render(job Job, r *run, width, height int) {
	defer close(r.done)

	section := width / s.workers
	if section < 1 {
		section = 1
	}

	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		startX := w * section
		if startX >= width {
			break
		}
		endX := startX + section
		if w == s.workers-1 || endX > width {
			endX = width
		}

		wg.Add(1)
		go func(startX, endX int) {
			defer wg.Done()

			column := make([]colour.RGBA, height)
			for x := startX; x < endX; x++ {
				for y := 0; y < height; y++ {
					// Polled per pixel to bound cancellation latency.
					if r.cancel.Load() {
						return
					}
					c := job.View.ScreenToPlane(
						float64(x)/job.Scale,
						float64(y)/job.Scale,
					)
					column[y] = job.Kind.Eval(c, job.MaxIterations)
				}

				s.mu.Lock()
				for y := 0; y < height; y++ {
					s.buf[y*width+x] = column[y]
				}
				s.mu.Unlock()

				r.progress.Add(1)
			}
		}(startX, endX)
	}
	wg.Wait()

	if r.cancel.Load() {
		// Discarded: the partial buffer never becomes visible.
		return
	}

	s.mu.Lock()
	out := &Frame{
		Pix:    append([]colour.RGBA(nil), s.buf...),
		Width:  width,
		Height: height,
	}
	s.mu.Unlock()

	s.frame.Store(out)
}
