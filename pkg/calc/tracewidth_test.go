package calc

import (
	"errors"
	"math"
	"testing"
)

const ozMil = 35 / 25.4 // 1 oz copper in mil

func TestTraceWidth_Solve(t *testing.T) {
	tw := NewTraceWidth(testEnv(t))
	full := Trace{I: 5, Thickness: 2 * ozMil, TempRise: 20}
	area := math.Pow(5/0.048/math.Pow(20, 0.44), 1/0.725)

	got, err := tw.Solve(full, traceWidth, false)
	if err != nil {
		t.Fatal(err)
	}
	if !near(got.Width, area/(2*ozMil), 1e-12) {
		t.Errorf("width = %g mil", got.Width)
	}
	if !near(got.Width, 35.745, 1e-4) {
		t.Errorf("width = %g mil, want about 35.745", got.Width)
	}
	full.Width = got.Width

	for _, unknown := range []string{traceCurrent, traceThickness, traceTempRise} {
		back, err := tw.Solve(full, unknown, false)
		if err != nil {
			t.Fatal(err)
		}
		if !near(back.I, full.I, 1e-9) || !near(back.Thickness, full.Thickness, 1e-9) ||
			!near(back.TempRise, full.TempRise, 1e-9) || !near(back.Width, full.Width, 1e-9) {
			t.Errorf("solving %s: %+v, want %+v", unknown, back, full)
		}
	}

	inner, err := tw.Solve(Trace{I: 5, Thickness: 2 * ozMil, TempRise: 20}, traceWidth, true)
	if err != nil {
		t.Fatal(err)
	}
	if !near(inner.Width, got.Width*math.Pow(2, 1/0.725), 1e-9) {
		t.Errorf("inner width = %g", inner.Width)
	}

	if _, err := tw.Solve(Trace{I: 5, TempRise: 20}, traceWidth, false); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("missing thickness error = %v", err)
	}
	if _, err := tw.Solve(full, "length", false); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad unknown error = %v", err)
	}
}

func TestTraceWidth_Resistance(t *testing.T) {
	// 1 mm x 35 um
	tr := Trace{Thickness: ozMil, Width: 1000 / 25.4}
	if !near(tr.AreaMM2(), 0.035, 1e-9) {
		t.Errorf("area = %g mm²", tr.AreaMM2())
	}
	if want := 1.68e-8 / 0.035e-6; !near(tr.ResistancePerMetre(), want, 1e-9) {
		t.Errorf("R/m = %g, want %g", tr.ResistancePerMetre(), want)
	}
}

func TestTraceWidth_Calculate(t *testing.T) {
	tw := NewTraceWidth(testEnv(t))

	celsius, err := Run(tw, Input{"i": "5", "thickness": "2", "tempdelta": "20"})
	if err != nil {
		t.Fatal(err)
	}
	if len(celsius.Rows) != 1 || celsius.Rows[0][0].Text != traceWidth {
		t.Fatalf("rows = %v", celsius.Rows)
	}
	width := cellValue(t, celsius.Rows[0][4])

	// A 36 F rise is a 20 K rise.
	fahrenheit, err := Run(tw, Input{"i": "5", "thickness": "2", "tempdelta": "36", "tempdelta_unit": "F"})
	if err != nil {
		t.Fatal(err)
	}
	if got := cellValue(t, fahrenheit.Rows[0][4]); !near(got, width, 1e-9) {
		t.Errorf("width from F = %g, want %g", got, width)
	}

	// thickness given in mm instead of oz
	mm, err := Run(tw, Input{"i": "5", "thickness": "0.07", "thickness_unit": "mm", "tempdelta": "20"})
	if err != nil {
		t.Fatal(err)
	}
	if got := cellValue(t, mm.Rows[0][4]); !near(got, width, 1e-9) {
		t.Errorf("width from mm = %g, want %g", got, width)
	}

	withLength, err := Run(tw, Input{
		"i": "5", "tempdelta": "20", "trace_width": "1", "trace_width_unit": "mm",
		"trace_length": "10", "trace_length_unit": "cm",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(withLength.Rows) != 4 {
		t.Fatalf("all four given: rows = %d, want 4", len(withLength.Rows))
	}
	row := withLength.Rows[0]
	if len(row) != 10 {
		t.Fatalf("columns = %d", len(row))
	}
	r := cellValue(t, row[8])
	if want := 1.68e-8 / 0.035e-6 * 0.1; !near(r, want, 1e-9) {
		t.Errorf("R = %g, want %g", r, want)
	}

	if _, err := Run(tw, Input{"i": "5"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("too few inputs error = %v", err)
	}
	if _, err := Run(tw, Input{"i": "5", "tempdelta": "20", "thickness_unit": "furlong"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unknown unit error = %v", err)
	}
}
