package calc

import (
	"errors"
	"math"
	"testing"
)

func TestParallelResistors(t *testing.T) {
	env := testEnv(t)
	p := NewParallelResistors(env)
	set, err := env.set("r", "E12")
	if err != nil {
		t.Fatal(err)
	}

	r, err := Input{"r": "12345"}.Quantity("r")
	if err != nil {
		t.Fatal(err)
	}
	opts := p.Search(r, set)
	if len(opts) == 0 || len(opts) > env.TopK {
		t.Fatalf("got %d options", len(opts))
	}
	for i, o := range opts {
		if o.R2.Cmp(o.R1) < 0 {
			t.Errorf("option %d: r2 %v < r1 %v", i, o.R2, o.R1)
		}
		if math.Abs(o.Error) > env.MaxParallelError {
			t.Errorf("option %d: error %g", i, o.Error)
		}
		want := 1 / (1/o.R1.Float() + 1/o.R2.Float())
		if !near(o.R, want, 1e-12) {
			t.Errorf("option %d: R = %g, want %g", i, o.R, want)
		}
		if i > 0 && math.Abs(opts[i-1].Error) > math.Abs(o.Error) {
			t.Errorf("options not sorted at %d", i)
		}
	}

	tbl, err := Run(p, Input{"r": "12345", "r_set": "E12"})
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.Rows) != len(opts) {
		t.Errorf("table rows = %d, want %d", len(tbl.Rows), len(opts))
	}
	if _, err := Run(p, Input{"r": "1k", "r_set": "E7"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unknown set error = %v", err)
	}
	if _, err := Run(p, Input{"r": "0"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("r=0 error = %v", err)
	}
}

func TestVoltageDivider(t *testing.T) {
	env := testEnv(t)
	d := NewVoltageDivider(env)
	set, err := env.set("r", "E12")
	if err != nil {
		t.Fatal(err)
	}

	opts, err := d.Search(DividerSpec{VIn: 12, VOut: 3.3, RSum: 10e3, Tolerance: 0.35}, set)
	if err != nil {
		t.Fatal(err)
	}
	if len(opts) == 0 {
		t.Fatal("no options")
	}
	best := opts[0]
	if best.R1.Float() != 1800 || best.R2.Float() != 4700 {
		t.Errorf("best = %v / %v, want 1.8k / 4.7k", best.R1, best.R2)
	}
	if !near(best.VOut, 12*1800.0/6500.0, 1e-6) {
		t.Errorf("VOut = %g", best.VOut)
	}
	if !near(best.I, 12/6500.0, 1e-6) || !near(best.P, 144/6500.0, 1e-6) {
		t.Errorf("I = %g, P = %g", best.I, best.P)
	}
	for i := 1; i < len(opts); i++ {
		if math.Abs(opts[i-1].VError) > math.Abs(opts[i].VError) {
			t.Errorf("options not sorted at %d", i)
		}
	}

	loaded, err := d.Search(DividerSpec{VIn: 12, VOut: 3.3, RSum: 10e3, Tolerance: 0.35, RLoad: 1800}, set)
	if err != nil {
		t.Fatal(err)
	}
	for _, o := range loaded {
		if o.R1.Equal(best.R1) && o.R2.Equal(best.R2) {
			// 1.8k || 1.8k = 900 below 4.7k
			if want := 12 * 900.0 / 5600.0; !near(o.VOut, want, 1e-6) {
				t.Errorf("loaded VOut = %g, want %g", o.VOut, want)
			}
		}
	}

	for _, spec := range []DividerSpec{
		{VIn: 3.3, VOut: 12, RSum: 10e3, Tolerance: 0.35},
		{VIn: 12, VOut: 3.3, RSum: 0, Tolerance: 0.35},
		{VIn: 12, VOut: 3.3, RSum: 10e3, Tolerance: 1.5},
	} {
		if _, err := d.Search(spec, set); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Search(%+v) error = %v", spec, err)
		}
	}

	tbl, err := Run(d, Input{"v_in": "12", "v_out": "3.3", "r_sum": "10k"})
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.Rows) != len(opts) {
		t.Errorf("rows = %d, want %d", len(tbl.Rows), len(opts))
	}
}

func TestSeriesResistor(t *testing.T) {
	s := NewSeriesResistor(testEnv(t))

	tbl, err := Run(s, Input{"v_in": "12", "v_load": "5", "i": "10m", "r_user": "680", "r_set": "E12"})
	if err != nil {
		t.Fatal(err)
	}
	if r := fieldValue(t, tbl, "Resistor"); !near(r, 700, 1e-12) {
		t.Errorf("R = %g", r)
	}
	if p := fieldValue(t, tbl, "Power"); !near(p, 0.07, 1e-12) {
		t.Errorf("P = %g", p)
	}
	if eta := fieldValue(t, tbl, "Efficiency"); !near(eta, 5.0/12.0, 1e-12) {
		t.Errorf("efficiency = %g", eta)
	}

	want := []struct {
		label string
		r     float64
	}{
		{"User choice", 680},
		{"Smaller in set", 680},
		{"Larger in set", 820},
	}
	if len(tbl.Rows) != len(want) {
		t.Fatalf("rows = %d", len(tbl.Rows))
	}
	for i, w := range want {
		row := tbl.Rows[i]
		if row[0].Text != w.label || cellValue(t, row[1]) != w.r {
			t.Errorf("row %d = %s %v, want %s %g", i, row[0].Text, row[1].Value, w.label, w.r)
		}
		// the load draws 10 mA at 5 V, i.e. 500 Ω
		vl := 12 * 500 / (500 + w.r)
		if got := cellValue(t, row[2]); !near(got, vl, 1e-6) {
			t.Errorf("row %d: load voltage %g, want %g", i, got, vl)
		}
	}

	if _, err := Run(s, Input{"v_in": "3", "v_load": "5", "i": "10m"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("v_in < v_load error = %v", err)
	}
	noChoice, err := Run(s, Input{"v_in": "5", "v_load": "5", "i": "1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(noChoice.Rows) != 0 {
		t.Errorf("rows without candidates = %d", len(noChoice.Rows))
	}
}

func TestFeedbackDividers(t *testing.T) {
	env := testEnv(t)
	set, err := env.set("r", "E12")
	if err != nil {
		t.Fatal(err)
	}

	lm := NewLM2596(env)
	opts, err := lm.Search(3.3, set)
	if err != nil {
		t.Fatal(err)
	}
	if len(opts) == 0 || len(opts) > env.TopK {
		t.Fatalf("got %d options", len(opts))
	}
	if opts[0].Lower.Float() != 330 || opts[0].Upper.Float() != 560 {
		t.Errorf("best LM2596 pair = %v / %v, want 330 / 560", opts[0].Lower, opts[0].Upper)
	}
	for _, o := range opts {
		if o.Lower.Float() < 220 || o.Lower.Float() > 1500 {
			t.Errorf("R1 %v out of range", o.Lower)
		}
		if want := 1.23 * (1 + o.Upper.Float()/o.Lower.Float()); !near(o.VOut, want, 1e-12) {
			t.Errorf("VOut = %g, want %g", o.VOut, want)
		}
	}
	if _, err := lm.Search(1.0, set); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("v_out below vref error = %v", err)
	}

	mp := NewMP2307(env)
	opts, err = mp.Search(3.3, set)
	if err != nil {
		t.Fatal(err)
	}
	for _, o := range opts {
		if want := 0.925 * (o.Upper.Float() + o.Lower.Float()) / o.Lower.Float(); !near(o.VOut, want, 1e-12) {
			t.Errorf("VOut = %g, want %g", o.VOut, want)
		}
	}

	tbl, err := Run(mp, Input{"v_out": "3.3", "v_in": "12", "l": "10u", "i_out": "2"})
	if err != nil {
		t.Fatal(err)
	}
	ripple := (12*3.3 - 3.3*3.3) / (325e3 * 10e-6 * 12)
	if got := fieldValue(t, tbl, "Inductor ripple"); !near(got, ripple, 1e-9) {
		t.Errorf("ripple = %g, want %g", got, ripple)
	}
	if got := fieldValue(t, tbl, "Peak inductor current"); !near(got, 2+ripple/2, 1e-9) {
		t.Errorf("peak = %g, want %g", got, 2+ripple/2)
	}
	if _, err := Run(mp, Input{"v_out": "5", "v_in": "3.3", "l": "10u"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("v_in <= v_out error = %v", err)
	}
}
