package render_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fractal/internal/fractal"
	"github.com/san-kum/fractal/internal/render"
	"github.com/san-kum/fractal/internal/viewport"
)

// quickJob is small and cheap: it completes in well under a second.
func quickJob(kind fractal.Kind) render.Job {
	return render.Job{
		View:          viewport.New(64, 48),
		Kind:          kind,
		MaxIterations: 64,
		Scale:         1,
	}
}

// slowJob takes long enough that a second dispatch lands mid-flight.
func slowJob() render.Job {
	return render.Job{
		View:          viewport.New(300, 300),
		Kind:          fractal.Tricorn,
		MaxIterations: 5000,
		Scale:         1,
	}
}

// renderOnce runs a job to completion on a fresh scheduler and returns
// the published frame.
func renderOnce(job render.Job) *render.Frame {
	s := render.NewScheduler(4)
	Expect(s.Dispatch(job)).To(Succeed())
	s.Wait()
	f := s.Frame()
	Expect(f).NotTo(BeNil())
	return f
}

var _ = Describe("Scheduler", func() {
	It("renders a full frame of the requested size", func() {
		f := renderOnce(quickJob(fractal.Mandelbrot))
		Expect(f.Width).To(Equal(64))
		Expect(f.Height).To(Equal(48))
		Expect(f.Pix).To(HaveLen(64 * 48))
	})

	It("honours the resolution scale", func() {
		job := quickJob(fractal.Mandelbrot)
		job.Scale = 0.5
		f := renderOnce(job)
		Expect(f.Width).To(Equal(32))
		Expect(f.Height).To(Equal(24))
	})

	It("is deterministic for identical job snapshots", func() {
		job := quickJob(fractal.BurningShip)
		first := renderOnce(job)
		second := renderOnce(job)
		Expect(second.Pix).To(Equal(first.Pix))
	})

	It("is deterministic regardless of worker count", func() {
		job := quickJob(fractal.Newton)
		one := render.NewScheduler(1)
		Expect(one.Dispatch(job)).To(Succeed())
		one.Wait()

		many := render.NewScheduler(16)
		Expect(many.Dispatch(job)).To(Succeed())
		many.Wait()

		Expect(many.Frame().Pix).To(Equal(one.Frame().Pix))
	})

	It("rejects zero-area jobs", func() {
		s := render.NewScheduler(2)
		job := quickJob(fractal.Mandelbrot)
		job.Scale = 0
		Expect(s.Dispatch(job)).To(MatchError(render.ErrEmptyFrame))
	})

	It("fails oversized jobs and keeps the previous frame displayed", func() {
		s := render.NewScheduler(2)
		Expect(s.Dispatch(quickJob(fractal.Mandelbrot))).To(Succeed())
		s.Wait()
		before := s.Frame()

		huge := quickJob(fractal.Mandelbrot)
		huge.Scale = 4096
		Expect(s.Dispatch(huge)).To(MatchError(render.ErrFrameTooLarge))
		Expect(s.Frame()).To(BeIdenticalTo(before))
	})

	It("reports non-decreasing progress up to completion", func() {
		s := render.NewScheduler(4)
		Expect(s.Dispatch(slowJob())).To(Succeed())

		prev := 0.0
		for s.Rendering() {
			p := s.Progress()
			Expect(p).To(BeNumerically(">=", prev))
			Expect(p).To(BeNumerically("<=", 1))
			prev = p
			time.Sleep(2 * time.Millisecond)
		}
		Expect(s.Progress()).To(Equal(1.0))
	})

	It("never mixes pixels from a cancelled job into the displayed frame", func() {
		reference := renderOnce(quickJob(fractal.Newton))

		s := render.NewScheduler(4)
		Expect(s.Dispatch(slowJob())).To(Succeed())
		// Let the slow job get partway in before superseding it.
		Eventually(s.Progress).Should(BeNumerically(">", 0))

		Expect(s.Dispatch(quickJob(fractal.Newton))).To(Succeed())
		s.Wait()

		f := s.Frame()
		Expect(f).NotTo(BeNil())
		Expect(f.Width).To(Equal(reference.Width))
		Expect(f.Pix).To(Equal(reference.Pix))
	})

	It("keeps the previous completed frame when a job is cancelled", func() {
		s := render.NewScheduler(4)
		Expect(s.Dispatch(quickJob(fractal.Mandelbrot))).To(Succeed())
		s.Wait()
		completed := s.Frame()

		Expect(s.Dispatch(slowJob())).To(Succeed())
		Eventually(s.Progress).Should(BeNumerically(">", 0))

		// Superseding dispatch cancels the first slow job; its partial
		// buffer must be discarded, so while the replacement is still in
		// flight the old frame stays published.
		Expect(s.Dispatch(slowJob())).To(Succeed())
		Expect(s.Frame()).To(BeIdenticalTo(completed))

		// Unblock the suite.
		Expect(s.Dispatch(quickJob(fractal.Mandelbrot))).To(Succeed())
		s.Wait()
	})

	It("is idle before the first dispatch", func() {
		s := render.NewScheduler(2)
		Expect(s.Rendering()).To(BeFalse())
		Expect(s.Progress()).To(Equal(1.0))
		Expect(s.Frame()).To(BeNil())
		s.Wait()
	})
})
