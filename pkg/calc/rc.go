package calc

import (
	"fmt"
	"math"

	"github.com/edp1096/toy-engineer/pkg/newton"
	"github.com/edp1096/toy-engineer/pkg/report"
	"github.com/google/uuid"
)

const rcMaxResidual = 1e-6

type RCCircuit struct {
	info
	env *Env
}

func NewRCCircuit(env *Env) *RCCircuit {
	return &RCCircuit{
		info: info{
			id:    uuid.MustParse("1fc081a2-b445-4880-b4a0-db8bfe8e0205"),
			slug:  "rc",
			title: "RC Time Constant",
			menu:  []string{"Basics", "RC Circuit"},
			params: []Param{
				{Name: "t1", Label: "Time of first sample", Unit: "s"},
				{Name: "v1", Label: "Voltage of first sample", Unit: "V"},
				{Name: "t2", Label: "Time of second sample", Unit: "s"},
				{Name: "v2", Label: "Voltage of second sample", Unit: "V"},
			},
		},
		env: env,
	}
}

// RCResult describes v(t) = V0*e^(-t/τ) when discharging and
// v(t) = V0*(1-e^(-t/τ)) when charging.
type RCResult struct {
	Charging bool
	Tau      float64
	V0       float64
	F        float64 // -3 dB corner frequency
}

func (r RCResult) At(t float64) float64 {
	if r.Charging {
		return r.V0 * (1 - math.Exp(-t/r.Tau))
	}
	return r.V0 * math.Exp(-t/r.Tau)
}

// Solve fits an RC curve through two samples given in any order.
func (r *RCCircuit) Solve(t1, v1, t2, v2 float64) (RCResult, error) {
	if t2 < t1 {
		t1, v1, t2, v2 = t2, v2, t1, v1
	}
	switch {
	case t1 == t2:
		return RCResult{}, fmt.Errorf("%w: samples must be taken at different times", ErrInvalidInput)
	case v1 == v2:
		return RCResult{}, fmt.Errorf("%w: samples must have different voltages", ErrInvalidInput)
	case !(v1 > 0) || !(v2 > 0):
		return RCResult{}, fmt.Errorf("%w: voltages must be positive", ErrInvalidInput)
	case t1 < 0:
		return RCResult{}, fmt.Errorf("%w: times must not be negative", ErrInvalidInput)
	}

	var res RCResult
	if v2 < v1 {
		res.Tau = (t1 - t2) / math.Log(v2/v1)
		res.V0 = v1 / math.Exp(-t1/res.Tau)
	} else {
		tau, err := r.chargingTau(t1, v1, t2, v2)
		if err != nil {
			return RCResult{}, err
		}
		res.Charging = true
		res.Tau = tau
		res.V0 = v1 / (1 - math.Exp(-t1/tau))
	}
	if math.IsNaN(res.V0) || math.IsInf(res.V0, 0) {
		return RCResult{}, fmt.Errorf("%w: supply voltage is not finite", ErrNumericallyUnstable)
	}
	res.F = 1 / (2 * math.Pi * res.Tau)
	return res, nil
}

// chargingTau solves (1-e^(-t2/τ)) / (1-e^(-t1/τ)) = v2/v1 on u = ln τ,
// which keeps τ positive and removes the spurious root at τ -> ∞.
func (r *RCCircuit) chargingTau(t1, v1, t2, v2 float64) (float64, error) {
	q := v2 / v1
	if t1 == 0 || q >= t2/t1 {
		return 0, fmt.Errorf("%w: no charging curve passes through both samples", ErrInvalidInput)
	}

	h := newton.FuncOf(func(u float64) float64 {
		k := math.Exp(-u)
		return -math.Expm1(-t2*k)/-math.Expm1(-t1*k) - q
	})
	solver := r.env.Solver
	if solver == nil {
		solver = newton.NewSolver()
	}
	u, err := solver.Solve(h, math.Log((t1+t2)/2))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNumericallyUnstable, err)
	}

	tau := math.Exp(u)
	if math.IsNaN(tau) || math.IsInf(tau, 0) || tau <= 0 {
		return 0, fmt.Errorf("%w: time constant diverged", ErrNumericallyUnstable)
	}
	if res := math.Abs(h.Eval(u)); !(res <= rcMaxResidual) {
		return 0, fmt.Errorf("%w: residual %g after solving", ErrNumericallyUnstable, res)
	}
	return tau, nil
}

func (r *RCCircuit) Calculate(in Input) (*report.Table, error) {
	var vals [4]float64
	for k, name := range []string{"t1", "v1", "t2", "v2"} {
		q, err := in.Quantity(name)
		if err != nil {
			return nil, err
		}
		vals[k] = q.Float()
	}
	res, err := r.Solve(vals[0], vals[1], vals[2], vals[3])
	if err != nil {
		return nil, err
	}

	t := report.New(r.title, "t", "V")
	if res.Charging {
		t.AddField("Mode", report.Text("charging"))
		t.AddField("Supply voltage", r.env.number(res.V0, "V"))
	} else {
		t.AddField("Mode", report.Text("discharging"))
		t.AddField("Initial voltage", r.env.number(res.V0, "V"))
	}
	t.AddField("Tau", r.env.number(res.Tau, "s"))
	t.AddField("Corner frequency", r.env.number(res.F, "Hz"))
	for n := 1; n <= 5; n++ {
		at := float64(n) * res.Tau
		t.AddRow(
			report.Number(at, fmt.Sprintf("%dτ = %s", n, r.env.format(at, "s"))),
			r.env.number(res.At(at), "V"),
		)
	}
	return t, nil
}
