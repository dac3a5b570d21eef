package matrix

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestSolve2x2(t *testing.T) {
	m, err := New(2)
	if err != nil {
		t.Fatal(err)
	}
	defer m.Destroy()

	stamps := []struct {
		i, j int
		v    float64
	}{
		{1, 1, 2}, {1, 2, 1},
		{2, 1, 1}, {2, 2, 3},
	}
	for _, s := range stamps {
		if err := m.AddElement(s.i, s.j, s.v); err != nil {
			t.Fatal(err)
		}
	}
	m.AddRHS(1, 3)
	m.AddRHS(2, 5)

	var buf bytes.Buffer
	m.PrintSystem(&buf)
	if !strings.Contains(buf.String(), "+2*x1") {
		t.Errorf("PrintSystem() = %q", buf.String())
	}

	if err := m.Solve(); err != nil {
		t.Fatal(err)
	}
	x := m.Solution()
	if math.Abs(x[1]-0.8) > 1e-12 || math.Abs(x[2]-1.4) > 1e-12 {
		t.Errorf("solution = %v, want [_ 0.8 1.4]", x)
	}
}

func TestIndexOutOfRange(t *testing.T) {
	m, err := New(2)
	if err != nil {
		t.Fatal(err)
	}
	defer m.Destroy()

	if err := m.AddElement(0, 1, 1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("AddElement(0, 1) error = %v", err)
	}
	if err := m.AddElement(1, 3, 1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("AddElement(1, 3) error = %v", err)
	}
	if err := m.AddRHS(3, 1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("AddRHS(3) error = %v", err)
	}
	if _, err := m.Element(-1, 1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Element(-1, 1) error = %v", err)
	}
}

func TestNew_InvalidSize(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Error("New(0) succeeded")
	}
}

func TestLoadGminAndClear(t *testing.T) {
	m, err := New(2)
	if err != nil {
		t.Fatal(err)
	}
	defer m.Destroy()

	m.AddElement(1, 1, 1)
	m.LoadGmin(1e-3, 1)
	if v, _ := m.Element(1, 1); math.Abs(v-1.001) > 1e-12 {
		t.Errorf("Element(1, 1) = %g", v)
	}
	if v, _ := m.Element(2, 2); v != 0 {
		t.Errorf("Element(2, 2) = %g, want untouched", v)
	}

	m.AddRHS(1, 7)
	m.Clear()
	if v, _ := m.Element(1, 1); v != 0 {
		t.Errorf("after Clear, Element(1, 1) = %g", v)
	}
	if m.RHS()[1] != 0 {
		t.Errorf("after Clear, rhs = %v", m.RHS())
	}
}
