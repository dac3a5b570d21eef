package newton

import (
	"errors"
	"math"
	"testing"
)

type parabola struct {
	a, b, c float64
}

func (p parabola) Eval(x float64) float64 {
	return p.a*x*x + p.b*x + p.c
}

func TestSolve_Parabola(t *testing.T) {
	p := parabola{a: 1, b: -1, c: -6}
	solver := NewSolver()

	tests := []struct {
		x0   float64
		want float64
	}{
		{-5, -2},
		{1.234567, 3},
	}
	for _, tt := range tests {
		x, err := solver.Solve(p, tt.x0)
		if err != nil {
			t.Fatalf("Solve(%g) error = %v", tt.x0, err)
		}
		if math.Abs(x-tt.want) > 1e-7 {
			t.Errorf("Solve(%g) = %.10f, want %g", tt.x0, x, tt.want)
		}
		if math.Abs(p.Eval(x)) > 1e-6 {
			t.Errorf("f(%g) = %g", x, p.Eval(x))
		}
	}
}

func TestSolve_AnalyticDerivative(t *testing.T) {
	f := DiffFuncOf(
		func(x float64) float64 { return x*x - 2 },
		func(x float64) float64 { return 2 * x },
	)
	res, err := NewSolver().SolveDetailed(f, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Converged || math.Abs(res.X-math.Sqrt2) > 1e-12 {
		t.Errorf("result = %+v", res)
	}
	if res.Iterations > 6 {
		t.Errorf("took %d iterations", res.Iterations)
	}
}

func TestSolve_ZeroDerivative(t *testing.T) {
	f := DiffFuncOf(
		func(x float64) float64 { return x*x + 1 },
		func(x float64) float64 { return 2 * x },
	)
	if _, err := NewSolver().Solve(f, 0); !errors.Is(err, ErrZeroDerivative) {
		t.Errorf("error = %v, want ErrZeroDerivative", err)
	}

	flat := FuncOf(func(float64) float64 { return 4 })
	if _, err := NewSolver().Solve(flat, 10); !errors.Is(err, ErrZeroDerivative) {
		t.Errorf("error = %v, want ErrZeroDerivative", err)
	}
}

func TestSolve_IterationCap(t *testing.T) {
	// No real root: the iterates wander and the cap ends the loop.
	f := DiffFuncOf(
		func(x float64) float64 { return x*x + 1 },
		func(x float64) float64 { return 2 * x },
	)
	solver := &Solver{MaxResidual: 1e-7, MaxIterations: 3}
	res, err := solver.SolveDetailed(f, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if res.Converged || res.Iterations != 3 {
		t.Errorf("result = %+v", res)
	}
	x, err := solver.Solve(f, 0.5)
	if err != nil || x != res.X {
		t.Errorf("Solve() = %g, %v; SolveDetailed().X = %g", x, err, res.X)
	}
}

func TestDerivative(t *testing.T) {
	p := parabola{a: 1, b: -1, c: -6}
	if d := Derivative(p, 2); math.Abs(d-3) > 1e-5 {
		t.Errorf("numeric derivative = %g, want 3", d)
	}

	good := DiffFuncOf(p.Eval, func(x float64) float64 { return 2*x - 1 })
	if !CheckDerivative(good, 2, DefaultEpsilon, 1e-5) {
		t.Error("correct derivative rejected")
	}
	bad := DiffFuncOf(p.Eval, func(x float64) float64 { return 2 * x })
	if CheckDerivative(bad, 2, DefaultEpsilon, 1e-5) {
		t.Error("wrong derivative accepted")
	}
}
