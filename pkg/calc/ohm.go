package calc

import (
	"fmt"
	"math"

	"github.com/edp1096/toy-engineer/pkg/report"
	"github.com/google/uuid"
)

type OhmsLaw struct {
	info
	env *Env
}

func NewOhmsLaw(env *Env) *OhmsLaw {
	return &OhmsLaw{
		info: info{
			id:    uuid.MustParse("201ebd90-808d-47e2-a398-6744112a1334"),
			slug:  "ohm",
			title: "Ohm's Law",
			menu:  []string{"Basics", "Ohm's Law"},
			params: []Param{
				{Name: "v", Label: "Voltage", Unit: "V", Optional: true},
				{Name: "i", Label: "Current", Unit: "A", Optional: true},
				{Name: "r", Label: "Resistance", Unit: "Ω", Optional: true},
				{Name: "p", Label: "Power", Unit: "W", Optional: true},
			},
		},
		env: env,
	}
}

// OhmsResult is a fully determined U/I/R/P quadruple.
type OhmsResult struct {
	V, I, R, P float64
}

// Solve takes exactly two known values (NaN marks unknown).
func (o *OhmsLaw) Solve(v, i, r, p float64) (OhmsResult, error) {
	known := 0
	for _, x := range []float64{v, i, r, p} {
		if !math.IsNaN(x) {
			known++
		}
	}
	if known != 2 {
		return OhmsResult{}, fmt.Errorf("%w: exactly two of V, I, R, P must be given", ErrInvalidInput)
	}

	has := func(x float64) bool { return !math.IsNaN(x) }
	switch {
	case has(v) && has(i):
		r, p = v/i, v*i
	case has(v) && has(r):
		i, p = v/r, v*v/r
	case has(v) && has(p):
		i, r = p/v, v*v/p
	case has(i) && has(r):
		v, p = i*r, i*i*r
	case has(i) && has(p):
		v, r = p/i, p/(i*i)
	case has(r) && has(p):
		if p/r < 0 {
			return OhmsResult{}, fmt.Errorf("%w: R and P must have the same sign", ErrInvalidInput)
		}
		i, v = math.Sqrt(p/r), math.Sqrt(p*r)
	}

	res := OhmsResult{V: v, I: i, R: r, P: p}
	for _, x := range []float64{res.V, res.I, res.R, res.P} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return OhmsResult{}, fmt.Errorf("%w: division by zero", ErrInvalidInput)
		}
	}
	return res, nil
}

func (o *OhmsLaw) Calculate(in Input) (*report.Table, error) {
	vals := make([]float64, 4)
	for k, name := range []string{"v", "i", "r", "p"} {
		vals[k] = math.NaN()
		q, ok, err := in.Optional(name)
		if err != nil {
			return nil, err
		}
		if ok {
			vals[k] = q.Float()
		}
	}

	res, err := o.Solve(vals[0], vals[1], vals[2], vals[3])
	if err != nil {
		return nil, err
	}

	t := report.New(o.title)
	t.AddField("Voltage", o.env.number(res.V, "V"))
	t.AddField("Current", o.env.number(res.I, "A"))
	t.AddField("Resistance", o.env.number(res.R, "Ω"))
	t.AddField("Power", o.env.number(res.P, "W"))
	return t, nil
}
