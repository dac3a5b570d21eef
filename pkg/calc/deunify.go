package calc

import (
	"fmt"
	"strconv"

	"github.com/edp1096/toy-engineer/pkg/quantity"
	"github.com/edp1096/toy-engineer/pkg/report"
	"github.com/google/uuid"
)

// Deunify shows a value with SI prefix at a chosen precision.
type Deunify struct {
	info
	env *Env
}

func NewDeunify(env *Env) *Deunify {
	return &Deunify{
		info: info{
			id:    uuid.MustParse("5583023c-88de-4eb3-b8ba-bcae6edfff14"),
			slug:  "deunify",
			title: "Deunify",
			menu:  []string{"Basics", "Deunify"},
			params: []Param{
				{Name: "value", Label: "Input value"},
				{Name: "digits", Label: "Significant digits", Default: "3"},
			},
		},
		env: env,
	}
}

func (d *Deunify) Calculate(in Input) (*report.Table, error) {
	v, err := in.Quantity("value")
	if err != nil {
		return nil, err
	}
	digits, err := strconv.Atoi(in.Get("digits"))
	if err != nil || digits < 1 || digits > 15 {
		return nil, fmt.Errorf("%w: digits must be an integer in [1, 15]", ErrInvalidInput)
	}

	f := v.Float()
	t := report.New(d.title)
	t.AddField("Fixed", report.Number(f, fmt.Sprintf("%.3f", f)))
	t.AddField("Scientific", report.Number(f, fmt.Sprintf("%.2e", f)))
	t.AddField("Engineering", report.Number(f, quantity.Format(f, digits)))
	t.AddField("Exact", report.Text(v.Rat().RatString()))
	return t, nil
}
