package newton

import (
	"errors"
	"math"
)

const (
	DefaultEpsilon       = 1e-9
	DefaultMaxResidual   = 1e-7
	DefaultMaxIterations = 10
)

var ErrZeroDerivative = errors.New("newton: derivative is zero")

// Function is a scalar function of one variable.
type Function interface {
	Eval(x float64) float64
}

// Differentiable is implemented by functions that know their own derivative.
type Differentiable interface {
	Function
	Derivative(x float64) float64
}

type funcOf func(float64) float64

func (f funcOf) Eval(x float64) float64 { return f(x) }

// FuncOf adapts a plain func. Its derivative is estimated numerically.
func FuncOf(f func(float64) float64) Function {
	return funcOf(f)
}

type diffFunc struct {
	f, df func(float64) float64
}

func (d diffFunc) Eval(x float64) float64       { return d.f(x) }
func (d diffFunc) Derivative(x float64) float64 { return d.df(x) }

func DiffFuncOf(f, df func(float64) float64) Differentiable {
	return diffFunc{f: f, df: df}
}

// NumericDerivative is the forward difference (f(x+eps) - f(x)) / eps.
func NumericDerivative(f Function, x, epsilon float64) float64 {
	y0 := f.Eval(x)
	y1 := f.Eval(x + epsilon)
	return (y1 - y0) / epsilon
}

// Derivative uses the analytic derivative when f provides one.
func Derivative(f Function, x float64) float64 {
	if d, ok := f.(Differentiable); ok {
		return d.Derivative(x)
	}
	return NumericDerivative(f, x, DefaultEpsilon)
}

// CheckDerivative compares f's derivative against the numeric estimate at x.
func CheckDerivative(f Function, x, epsilon, maxError float64) bool {
	return math.Abs(Derivative(f, x)-NumericDerivative(f, x, epsilon)) < maxError
}

type Solver struct {
	MaxResidual   float64
	MaxIterations int
}

func NewSolver() *Solver {
	return &Solver{
		MaxResidual:   DefaultMaxResidual,
		MaxIterations: DefaultMaxIterations,
	}
}

// Result describes the last Newton step.
type Result struct {
	X          float64
	Iterations int
	Residual   float64
	Converged  bool
}

// Solve runs Newton's method from x0 and returns the last iterate. Hitting
// the iteration cap is not an error; callers judge the root themselves.
func (s *Solver) Solve(f Function, x0 float64) (float64, error) {
	res, err := s.SolveDetailed(f, x0)
	return res.X, err
}

func (s *Solver) SolveDetailed(f Function, x0 float64) (Result, error) {
	maxIter := s.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}
	maxResidual := s.MaxResidual
	if maxResidual <= 0 {
		maxResidual = DefaultMaxResidual
	}

	res := Result{X: x0, Residual: math.Inf(1)}
	for iter := range maxIter {
		fx := f.Eval(res.X)
		dfx := Derivative(f, res.X)
		if dfx == 0 {
			return res, ErrZeroDerivative
		}

		xNew := res.X - fx/dfx
		res.Residual = math.Abs(res.X - xNew)
		res.X = xNew
		res.Iterations = iter + 1

		if res.Residual < maxResidual {
			res.Converged = true
			break
		}
	}
	return res, nil
}
