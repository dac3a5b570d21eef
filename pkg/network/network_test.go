package network

import (
	"errors"
	"math"
	"slices"
	"strings"
	"testing"
)

const tol = 1e-6

func near(a, b float64) bool {
	return math.Abs(a-b) < tol*math.Max(1, math.Abs(b))
}

func TestVoltageDivider(t *testing.T) {
	n := New("RR voltage divider circuit")
	must(t, n.AddVoltageSource("Vsrc", "1", "0", 10))
	must(t, n.AddResistor("R1", "1", "2", 1000))
	must(t, n.AddResistor("R2", "2", "0", 1000))

	sol, err := n.Solve()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		get  func() (float64, error)
		want float64
	}{
		{"V(1)", func() (float64, error) { return sol.Voltage("1") }, 10},
		{"V(2)", func() (float64, error) { return sol.Voltage("2") }, 5},
		{"V(0)", func() (float64, error) { return sol.Voltage("0") }, 0},
		{"I(R1)", func() (float64, error) { return sol.Current("R1") }, 5e-3},
		{"I(Vsrc)", func() (float64, error) { return sol.Current("Vsrc") }, 5e-3},
		{"P(R2)", func() (float64, error) { return sol.Power("R2") }, 25e-3},
		{"P(Vsrc)", func() (float64, error) { return sol.Power("Vsrc") }, 50e-3},
		{"VR1", func() (float64, error) { return sol.VoltageAcross("R1") }, 5},
	}
	for _, tt := range tests {
		got, err := tt.get()
		if err != nil {
			t.Errorf("%s: %v", tt.name, err)
			continue
		}
		if !near(got, tt.want) {
			t.Errorf("%s = %g, want %g", tt.name, got, tt.want)
		}
	}

	if got := sol.Keys(); !slices.Equal(got, []string{"I(R1)", "I(R2)", "I(Vsrc)", "V(1)", "V(2)"}) {
		t.Errorf("Keys() = %v", got)
	}
}

func TestLoadedDivider(t *testing.T) {
	n := New("loaded")
	must(t, n.AddVoltageSource("Vin", "in", "gnd", 12))
	must(t, n.AddResistor("R1", "in", "out", 2000))
	must(t, n.AddResistor("R2", "out", "gnd", 1000))
	must(t, n.AddResistor("Rload", "out", "gnd", 1000))

	sol, err := n.Solve()
	if err != nil {
		t.Fatal(err)
	}
	// R2 || Rload = 500, so Vout = 12 * 500 / 2500.
	if v, _ := sol.Voltage("out"); !near(v, 2.4) {
		t.Errorf("V(out) = %g, want 2.4", v)
	}
	if i, _ := sol.Current("Vin"); !near(i, 12.0/2500) {
		t.Errorf("I(Vin) = %g", i)
	}
}

func TestSeriesWithLoadSource(t *testing.T) {
	// LED modelled as a fixed 2V drop behind a series resistor.
	n := New("series")
	must(t, n.AddVoltageSource("Vin", "in", "0", 5))
	must(t, n.AddResistor("R", "in", "a", 150))
	must(t, n.AddVoltageSource("Vled", "a", "0", 2))

	sol, err := n.Solve()
	if err != nil {
		t.Fatal(err)
	}
	if i, _ := sol.Current("R"); !near(i, 0.02) {
		t.Errorf("I(R) = %g, want 0.02", i)
	}
	// Vled absorbs power, so it delivers a negative current.
	if p, _ := sol.Power("Vled"); !near(p, -0.04) {
		t.Errorf("P(Vled) = %g, want -0.04", p)
	}
}

func TestCurrentSource(t *testing.T) {
	n := New("isrc")
	must(t, n.AddCurrentSource("I1", "a", "0", 1e-3))
	must(t, n.AddResistor("R1", "a", "0", 4700))

	sol, err := n.Solve()
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := sol.Voltage("a"); !near(v, 4.7) {
		t.Errorf("V(a) = %g, want 4.7", v)
	}
	if p, _ := sol.Power("I1"); !near(p, 4.7e-3) {
		t.Errorf("P(I1) = %g", p)
	}
}

func TestInvalidElements(t *testing.T) {
	n := New("bad")
	if err := n.AddResistor("R1", "a", "b", 0); !errors.Is(err, ErrInvalidElement) {
		t.Errorf("zero resistance: %v", err)
	}
	if err := n.AddResistor("R1", "a", "b", math.NaN()); !errors.Is(err, ErrInvalidElement) {
		t.Errorf("NaN resistance: %v", err)
	}
	if err := n.AddResistor("R1", "a", "a", 10); !errors.Is(err, ErrInvalidElement) {
		t.Errorf("shorted resistor: %v", err)
	}
	must(t, n.AddResistor("R1", "a", "b", 10))
	if err := n.AddResistor("R1", "b", "c", 10); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("duplicate: %v", err)
	}

	if _, err := New("empty").Solve(); !errors.Is(err, ErrInvalidElement) {
		t.Errorf("empty network: %v", err)
	}
}

func TestUnknownNames(t *testing.T) {
	n := New("rr")
	must(t, n.AddVoltageSource("V1", "1", "0", 1))
	must(t, n.AddResistor("R1", "1", "0", 1))
	sol, err := n.Solve()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sol.Voltage("9"); !errors.Is(err, ErrUnknownName) {
		t.Errorf("Voltage(9): %v", err)
	}
	if _, err := sol.Current("R9"); !errors.Is(err, ErrUnknownName) {
		t.Errorf("Current(R9): %v", err)
	}
	if got := n.Nodes(); !slices.Equal(got, []string{"1"}) {
		t.Errorf("Nodes() = %v", got)
	}
}

func TestTrace(t *testing.T) {
	var buf strings.Builder
	n := New("traced")
	n.Trace = &buf
	must(t, n.AddVoltageSource("V1", "1", "0", 10))
	must(t, n.AddResistor("R1", "1", "0", 1000))
	if _, err := n.Solve(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Equations (2x2)") || !strings.Contains(out, "= 10") {
		t.Errorf("trace = %q", out)
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
