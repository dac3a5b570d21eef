package calc

import (
	"fmt"
	"math"
	"strconv"

	"github.com/edp1096/toy-engineer/pkg/report"
	"github.com/google/uuid"
)

type Markings struct {
	info
	env *Env
}

func NewMarkings(env *Env) *Markings {
	return &Markings{
		info: info{
			id:    uuid.MustParse("e8ad7bb4-b0e9-4bed-b1bb-333b6fa69045"),
			slug:  "marking",
			title: "Component Markings",
			menu:  []string{"Basics", "Component Markings"},
			params: []Param{
				{Name: "code", Label: "Marking, e.g. 473"},
			},
		},
		env: env,
	}
}

// Decode reads a numeric marking: the last digit is the power of ten
// applied to the leading digits.
func (m *Markings) Decode(code string) (float64, error) {
	n, err := strconv.Atoi(code)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: marking %q is not a non-negative number", ErrInvalidInput, code)
	}
	base, exp := n/10, n%10
	return float64(base) * math.Pow10(exp), nil
}

func (m *Markings) Calculate(in Input) (*report.Table, error) {
	code := in.Get("code")
	value, err := m.Decode(code)
	if err != nil {
		return nil, err
	}

	t := report.New(m.title, "Component", "Value")
	t.AddField("Marking", report.Text(code))
	t.AddRow(report.Text("Resistor"), m.env.number(value, "Ω"))
	t.AddRow(report.Text("Capacitor"), m.env.number(value*1e-12, "F"))
	t.AddRow(report.Text("Inductor"), m.env.number(value*1e-6, "H"))
	return t, nil
}
