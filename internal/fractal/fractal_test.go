package fractal

import (
	"math"
	"testing"

	"github.com/san-kum/fractal/internal/colour"
	"github.com/san-kum/fractal/internal/cplx"
)

func TestMandelbrotInteriorShortCircuit(t *testing.T) {
	tests := []struct {
		name string
		c    cplx.Complex
	}{
		{"origin inside cardioid", cplx.New(0, 0)},
		{"quarter inside cardioid", cplx.New(-0.1, 0.1)},
		{"centre of period-2 bulb", cplx.New(-1, 0)},
		{"edge of period-2 bulb", cplx.New(-0.76, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Budget 1 proves the short-circuit fires before iterating:
			// without it, none of these points could be classified in a
			// single step.
			if got := evalMandelbrot(tt.c, 1); got != colour.Interior {
				t.Errorf("Eval(%+v) = %#x, want interior", tt.c, got)
			}
		})
	}
}

func TestCardioidAndBulbChecks(t *testing.T) {
	if !inCardioid(cplx.New(0, 0)) {
		t.Error("origin should be inside the cardioid")
	}
	if inCardioid(cplx.New(0.3, 0)) {
		t.Error("0.3 is outside the cardioid")
	}
	if !inPeriod2Bulb(cplx.New(-1, 0)) {
		t.Error("-1 should be inside the period-2 bulb")
	}
	if inPeriod2Bulb(cplx.New(-0.7, 0)) {
		t.Error("-0.7 is outside the period-2 bulb")
	}
}

func TestMandelbrotEscape(t *testing.T) {
	// z1 = c with |c|^2 = 8 > 4: escapes on the first step, which
	// colours as iteration 0 by convention.
	c := cplx.New(2, 2)
	got := Mandelbrot.Eval(c, 50)
	want := colour.Gradient(0, 50)
	if got != want {
		t.Errorf("Eval(2+2i) = %#x, want gradient(0) = %#x", got, want)
	}
	if got == colour.Interior {
		t.Error("escaping point coloured interior")
	}
}

func TestTricornEscape(t *testing.T) {
	got := Tricorn.Eval(cplx.New(2, 2), 50)
	if got != colour.Gradient(0, 50) {
		t.Errorf("Tricorn escape colour = %#x", got)
	}
	if Tricorn.Eval(cplx.New(0, 0), 100) != colour.Interior {
		t.Error("origin should not escape under tricorn")
	}
}

func TestBurningShipEscape(t *testing.T) {
	got := BurningShip.Eval(cplx.New(2, 2), 50)
	if got != colour.Gradient(0, 50) {
		t.Errorf("Burning Ship escape colour = %#x", got)
	}
	if BurningShip.Eval(cplx.New(0, 0), 100) != colour.Interior {
		t.Error("origin should not escape under burning ship")
	}
}

func TestNewtonConvergence(t *testing.T) {
	tests := []struct {
		name string
		z    cplx.Complex
		root int
	}{
		{"near real root", cplx.New(0.9, 0.1), 0},
		{"near upper complex root", cplx.New(-0.5, 0.87), 1},
		{"near lower complex root", cplx.New(-0.5, -0.87), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Newton.Eval(tt.z, 50)
			if got != colour.Root(tt.root) {
				t.Errorf("Eval(%+v) = %#x, want root %d colour %#x",
					tt.z, got, tt.root, colour.Root(tt.root))
			}
		})
	}
}

func TestNewtonZeroDerivative(t *testing.T) {
	// The origin has f'(0) = 0; the pixel must be classified interior,
	// not fault.
	if got := Newton.Eval(cplx.New(0, 0), 50); got != colour.Interior {
		t.Errorf("Eval(0) = %#x, want interior", got)
	}
}

func TestNewtonTrajectoryConverges(t *testing.T) {
	orbit := Newton.Trajectory(cplx.New(0.9, 0.1), 50)
	if len(orbit) < 2 {
		t.Fatalf("orbit too short: %d points", len(orbit))
	}
	last := orbit[len(orbit)-1]
	if math.Abs(last.Re-1) > newtonTolerance || math.Abs(last.Im) > newtonTolerance {
		t.Errorf("orbit ended at %+v, want within %g of 1", last, newtonTolerance)
	}
}

func TestTrajectoryTruncatesAtEscape(t *testing.T) {
	for _, k := range []Kind{Mandelbrot, Tricorn, BurningShip} {
		orbit := k.Trajectory(cplx.New(2, 2), 100)
		// z0 plus the single escaping step.
		if len(orbit) != 2 {
			t.Errorf("%v: orbit length %d, want 2", k, len(orbit))
		}
	}
}

func TestTrajectoryBoundedByBudget(t *testing.T) {
	// A point inside the set never escapes; the orbit must stop at the
	// budget, not run unbounded.
	orbit := Mandelbrot.Trajectory(cplx.New(-0.1, 0.1), 30)
	if len(orbit) != 31 {
		t.Errorf("orbit length %d, want 31 (z0 + 30 steps)", len(orbit))
	}
}

func TestTrajectoryFirstStepIsC(t *testing.T) {
	c := cplx.New(0.3, -0.2)

	m := Mandelbrot.Trajectory(c, 10)
	if m[0] != cplx.New(0, 0) || m[1] != c {
		t.Errorf("mandelbrot orbit start %+v, %+v", m[0], m[1])
	}

	// Burning ship iterates in the reflected frame but reports points
	// conjugated back, so its first step is also c.
	b := BurningShip.Trajectory(c, 10)
	if b[1] != c {
		t.Errorf("burning ship first step %+v, want %+v", b[1], c)
	}
}

func TestEvalDeterministic(t *testing.T) {
	points := []cplx.Complex{
		cplx.New(-0.743, 0.131),
		cplx.New(0.285, 0.01),
		cplx.New(-1.75, 0.04),
		cplx.New(0.5, 0.5),
	}
	for _, k := range []Kind{Mandelbrot, Tricorn, BurningShip, Newton} {
		for _, c := range points {
			a := k.Eval(c, 300)
			b := k.Eval(c, 300)
			if a != b {
				t.Fatalf("%v.Eval(%+v) not deterministic", k, c)
			}
		}
	}
}

func TestOptions(t *testing.T) {
	opts := Options()
	if len(opts) != int(numKinds) {
		t.Fatalf("got %d options, want %d", len(opts), numKinds)
	}
	seen := map[rune]bool{}
	for i, o := range opts {
		if o.Kind != Kind(i) {
			t.Errorf("option %d has kind %v", i, o.Kind)
		}
		if o.Name != o.Kind.String() {
			t.Errorf("option name %q does not match kind %q", o.Name, o.Kind)
		}
		if seen[o.Key] {
			t.Errorf("duplicate activation key %q", o.Key)
		}
		seen[o.Key] = true
	}
}
