package calc

import (
	"fmt"

	"github.com/edp1096/toy-engineer/internal/consts"
	"github.com/edp1096/toy-engineer/pkg/report"
	"github.com/google/uuid"
)

type NE555 struct {
	info
	env *Env
}

func NewNE555(env *Env) *NE555 {
	return &NE555{
		info: info{
			id:    uuid.MustParse("182792ec-828b-488d-b3dc-02a33e61cafa"),
			slug:  "ne555",
			title: "NE555 Astable",
			menu:  []string{"Timers", "NE555 Astable"},
			params: []Param{
				{Name: "r1", Label: "R1", Unit: "Ω"},
				{Name: "r2", Label: "R2", Unit: "Ω"},
				{Name: "c1", Label: "C1", Unit: "F"},
				{Name: "c_set", Label: "Capacitor set", Optional: true},
			},
		},
		env: env,
	}
}

type AstableTiming struct {
	TOn, TOff float64
	T, F      float64
	Duty      float64
}

func (n *NE555) Solve(r1, r2, c1 float64) (AstableTiming, error) {
	if !(r1 > 0) || !(r2 > 0) || !(c1 > 0) {
		return AstableTiming{}, fmt.Errorf("%w: r1, r2 and c1 must be positive", ErrInvalidInput)
	}
	at := AstableTiming{
		TOn:  consts.NE555_LN2 * (r1 + r2) * c1,
		TOff: consts.NE555_LN2 * r2 * c1,
	}
	at.T = at.TOn + at.TOff
	at.F = 1 / at.T
	at.Duty = at.TOn / at.T
	return at, nil
}

func (n *NE555) Calculate(in Input) (*report.Table, error) {
	r1, err := in.Positive("r1")
	if err != nil {
		return nil, err
	}
	r2, err := in.Positive("r2")
	if err != nil {
		return nil, err
	}
	c1, err := in.Positive("c1")
	if err != nil {
		return nil, err
	}
	at, err := n.Solve(r1, r2, c1)
	if err != nil {
		return nil, err
	}

	t := report.New(n.title)
	t.AddField("High time", n.env.number(at.TOn, "s"))
	t.AddField("Low time", n.env.number(at.TOff, "s"))
	t.AddField("Period", n.env.number(at.T, "s"))
	t.AddField("Frequency", n.env.number(at.F, "Hz"))
	t.AddField("Duty cycle", report.Number(at.Duty, fmt.Sprintf("%.1f%%", at.Duty*100)))

	// Neighbouring catalog capacitors, for when c1 is not a stock value.
	set, err := n.env.capacitors(in, "c_set")
	if err != nil {
		return nil, err
	}
	smaller, larger := set.FindClosest(c1)
	if smaller != nil {
		t.AddField("C1 smaller in "+set.Name(), n.env.number(smaller.Float(), "F"))
	}
	if larger != nil {
		t.AddField("C1 larger in "+set.Name(), n.env.number(larger.Float(), "F"))
	}
	return t, nil
}
