package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/fractal/internal/config"
	"github.com/san-kum/fractal/internal/export"
	"github.com/san-kum/fractal/internal/fractal"
	"github.com/san-kum/fractal/internal/render"
	"github.com/san-kum/fractal/internal/tui"
	"github.com/san-kum/fractal/internal/viewport"
)

var (
	configFile string

	// render flags
	width      int
	height     int
	zoomPower  float64
	offsetRe   float64
	offsetIm   float64
	fractalArg string
	iterations int
	outFile    string

	// bench flags
	benchSize  int
	benchSteps int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fractal",
		Short: "interactive complex-fractal explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return tui.Run(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render one frame to a PNG",
		RunE:  renderFrame,
	}
	renderCmd.Flags().IntVar(&width, "width", 1600, "image width")
	renderCmd.Flags().IntVar(&height, "height", 900, "image height")
	renderCmd.Flags().Float64Var(&zoomPower, "zoom", 0, "zoom level as a power of ten")
	renderCmd.Flags().Float64Var(&offsetRe, "real", 0, "view centre, real part")
	renderCmd.Flags().Float64Var(&offsetIm, "imag", 0, "view centre, imaginary part")
	renderCmd.Flags().StringVar(&fractalArg, "fractal", "mandelbrot", "mandelbrot|tricorn|ship|newton")
	renderCmd.Flags().IntVar(&iterations, "iterations", 0, "iteration budget (0 = derive from zoom)")
	renderCmd.Flags().StringVar(&outFile, "out", "", "output file (default: next numbered file in image dir)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "plot frame render time against iteration budget",
		RunE:  runBench,
	}
	benchCmd.Flags().StringVar(&fractalArg, "fractal", "mandelbrot", "fractal to benchmark")
	benchCmd.Flags().IntVar(&benchSize, "size", 400, "square frame edge in pixels")
	benchCmd.Flags().IntVar(&benchSteps, "steps", 10, "number of budget steps")

	rootCmd.AddCommand(renderCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(configFile)
}

func parseKind(s string) (fractal.Kind, error) {
	switch strings.ToLower(s) {
	case "mandelbrot", "1":
		return fractal.Mandelbrot, nil
	case "tricorn", "2":
		return fractal.Tricorn, nil
	case "ship", "burningship", "3":
		return fractal.BurningShip, nil
	case "newton", "4":
		return fractal.Newton, nil
	}
	return 0, fmt.Errorf("unknown fractal %q", s)
}

func renderFrame(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	kind, err := parseKind(fractalArg)
	if err != nil {
		return err
	}

	view := viewport.New(width, height)
	if !view.SetZoomPower(zoomPower) {
		return fmt.Errorf("zoom power %f below minimum zoom", zoomPower)
	}
	view.SetOffset(offsetRe, offsetIm)

	budget := iterations
	if budget <= 0 {
		budget = fractal.Budget(
			int(view.ZoomSteps),
			cfg.Render.InitialIterations,
			cfg.Render.IterationIncrement,
			cfg.Render.MaxIterations,
		)
	}
	if budget > config.HardIterationLimit {
		budget = config.HardIterationLimit
	}

	sched := render.NewScheduler(cfg.Render.Workers)
	start := time.Now()
	if err := sched.Dispatch(render.Job{
		View:          view,
		Kind:          kind,
		MaxIterations: budget,
		Scale:         1,
	}); err != nil {
		return err
	}
	sched.Wait()

	frame := sched.Frame()
	if frame == nil {
		return fmt.Errorf("render produced no frame")
	}

	path := outFile
	if path == "" {
		path, err = export.NextFilename(cfg.ImageDir, strings.ReplaceAll(kind.String(), " ", "_"))
		if err != nil {
			return err
		}
	}
	if err := export.SavePNG(frame, path); err != nil {
		return err
	}

	fmt.Printf("rendered %s %dx%d (%d iterations) in %v -> %s\n",
		kind, frame.Width, frame.Height, budget, time.Since(start).Round(time.Millisecond), path)
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	kind, err := parseKind(fractalArg)
	if err != nil {
		return err
	}

	view := viewport.New(benchSize, benchSize)
	sched := render.NewScheduler(cfg.Render.Workers)

	durations := make([]float64, 0, benchSteps)
	for step := 0; step < benchSteps; step++ {
		budget := fractal.Budget(
			step,
			cfg.Render.InitialIterations,
			cfg.Render.IterationIncrement,
			config.HardIterationLimit,
		)

		start := time.Now()
		if err := sched.Dispatch(render.Job{
			View:          view,
			Kind:          kind,
			MaxIterations: budget,
			Scale:         1,
		}); err != nil {
			return err
		}
		sched.Wait()

		ms := float64(time.Since(start).Microseconds()) / 1000.0
		durations = append(durations, ms)
		fmt.Printf("budget %5d: %8.2f ms\n", budget, ms)
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(durations,
		asciigraph.Height(12),
		asciigraph.Caption(fmt.Sprintf("%s: ms per %dx%d frame by zoom step", kind, benchSize, benchSize)),
	))
	return nil
}
