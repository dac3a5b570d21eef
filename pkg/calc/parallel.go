package calc

import (
	"fmt"
	"math"

	"github.com/edp1096/toy-engineer/pkg/quantity"
	"github.com/edp1096/toy-engineer/pkg/report"
	"github.com/edp1096/toy-engineer/pkg/search"
	"github.com/edp1096/toy-engineer/pkg/valueset"
	"github.com/google/uuid"
)

type ParallelResistors struct {
	info
	env *Env
}

func NewParallelResistors(env *Env) *ParallelResistors {
	return &ParallelResistors{
		info: info{
			id:    uuid.MustParse("5bb9645f-46cb-4704-9efe-13e55c695482"),
			slug:  "parallel",
			title: "Parallel Resistor Calculation",
			menu:  []string{"Basics", "Parallel Resistor"},
			params: []Param{
				{Name: "r", Label: "Resistor", Unit: "Ω"},
				{Name: "r_set", Label: "Resistor set", Optional: true},
			},
		},
		env: env,
	}
}

type ParallelOption struct {
	R1, R2 quantity.Value
	R      float64
	Error  float64
	Ratio  float64 // R2 / R1
}

// Search pairs every member r1 != r with the neighbours of the ideal r2 so
// that r1 || r2 approximates r. Only r2 >= r1 is kept.
func (p *ParallelResistors) Search(r quantity.Value, set *valueset.Set) []ParallelOption {
	target := r.Float()
	ideal := func(r1 quantity.Value) (float64, bool) {
		if r1.Equal(r) {
			return 0, false
		}
		return 1 / (1/target - 1/r1.Float()), true
	}

	var opts []ParallelOption
	for r1, r2 := range search.Pairs(set.All(), ideal, set) {
		if r2.Cmp(r1) < 0 {
			continue
		}
		total := 1 / (1/r1.Float() + 1/r2.Float())
		e := search.RelativeError(total, target)
		if math.Abs(e) > p.env.MaxParallelError {
			continue
		}
		opts = append(opts, ParallelOption{
			R1:    r1,
			R2:    r2,
			R:     total,
			Error: e,
			Ratio: r2.Float() / r1.Float(),
		})
	}

	return search.Rank(opts, func(o ParallelOption) search.Key {
		return search.Key{Error: o.Error, Tie: o.Ratio}
	}, p.env.TopK)
}

func (p *ParallelResistors) Calculate(in Input) (*report.Table, error) {
	r, err := in.Quantity("r")
	if err != nil {
		return nil, err
	}
	if r.Sign() <= 0 {
		return nil, fmt.Errorf("%w: r must be positive", ErrInvalidInput)
	}
	set, err := p.env.resistors(in, "r_set")
	if err != nil {
		return nil, err
	}

	t := report.New(p.title, "R1", "R2", "R", "Error", "Ratio")
	t.AddField("Target", p.env.number(r.Float(), "Ω"))
	t.AddField("Set", report.Text(set.Name()))
	for _, o := range p.Search(r, set) {
		split := 100 / (1 + o.Ratio)
		t.AddRow(
			p.env.number(o.R1.Float(), "Ω"),
			p.env.number(o.R2.Float(), "Ω"),
			report.Number(o.R, quantity.FormatUnit(o.R, 4, "Ω")),
			percent(o.Error),
			report.Number(o.Ratio, fmt.Sprintf("1 : %.1f = %.0f : %.0f", o.Ratio, split, 100-split)),
		)
	}
	return t, nil
}
