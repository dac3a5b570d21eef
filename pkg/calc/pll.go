package calc

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/edp1096/toy-engineer/pkg/quantity"
	"github.com/edp1096/toy-engineer/pkg/report"
	"github.com/edp1096/toy-engineer/pkg/search"
	"github.com/edp1096/toy-engineer/pkg/valueset"
	"github.com/google/uuid"
)

type PLL struct {
	info
	env *Env
}

func NewPLL(env *Env) *PLL {
	return &PLL{
		info: info{
			id:    uuid.MustParse("e51d4f32-3820-4e89-98dd-997a04a9fd4f"),
			slug:  "pll",
			title: "PLL Multiplier and Divider",
			menu:  []string{"Clock", "PLL"},
			params: []Param{
				{Name: "f_in", Label: "Input frequency", Unit: "Hz"},
				{Name: "f_out", Label: "Output frequency", Unit: "Hz"},
				{Name: "multipliers", Label: "Multipliers", Default: "1-64"},
				{Name: "dividers", Label: "Dividers", Default: "1-64"},
			},
		},
		env: env,
	}
}

// MaxClockValues bounds how many values one clock field may list.
const MaxClockValues = 1 << 16

// ParseClockField reads a list like "1,2,4-16" into sorted unique values.
func ParseClockField(s string) ([]int, error) {
	seen := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		a, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidInput, lo)
		}
		b := a
		if isRange {
			if b, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidInput, hi)
			}
		}
		if a <= 0 || b < a {
			return nil, fmt.Errorf("%w: bad clock range %q", ErrInvalidInput, part)
		}
		if b-a >= MaxClockValues {
			return nil, fmt.Errorf("%w: clock range %q has more than %d values", ErrInvalidInput, part, MaxClockValues)
		}
		for v := a; v <= b; v++ {
			seen[v] = true
		}
		if len(seen) > MaxClockValues {
			return nil, fmt.Errorf("%w: clock field has more than %d values", ErrInvalidInput, MaxClockValues)
		}
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("%w: empty clock field", ErrInvalidInput)
	}

	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Ints(out)
	return out, nil
}

type PLLOption struct {
	Mul, Div int
	F        float64
	Error    float64
}

// Search matches every multiplier with the dividers closest to
// mul * f_in / f_out.
func (p *PLL) Search(fIn, fOut float64, muls, divs []int) []PLLOption {
	values := make([]quantity.Value, len(divs))
	for i, d := range divs {
		values[i] = quantity.FromInt(int64(d))
	}
	divSet := valueset.NewSet("dividers", values)

	mulValues := make([]quantity.Value, len(muls))
	for i, m := range muls {
		mulValues[i] = quantity.FromInt(int64(m))
	}
	ideal := func(mul quantity.Value) (float64, bool) {
		return mul.Float() * fIn / fOut, true
	}

	var opts []PLLOption
	for mul, div := range search.Pairs(valueset.NewSet("multipliers", mulValues).All(), ideal, divSet) {
		f := fIn * mul.Float() / div.Float()
		opts = append(opts, PLLOption{
			Mul:   int(mul.Float()),
			Div:   int(div.Float()),
			F:     f,
			Error: search.RelativeError(f, fOut),
		})
	}
	return search.Rank(opts, func(o PLLOption) search.Key {
		return search.Key{Error: o.Error, Tie: float64(o.Mul)}
	}, 0)
}

func (p *PLL) Calculate(in Input) (*report.Table, error) {
	fIn, err := in.Positive("f_in")
	if err != nil {
		return nil, err
	}
	fOut, err := in.Positive("f_out")
	if err != nil {
		return nil, err
	}
	muls, err := ParseClockField(in.Get("multipliers"))
	if err != nil {
		return nil, fmt.Errorf("multipliers: %w", err)
	}
	divs, err := ParseClockField(in.Get("dividers"))
	if err != nil {
		return nil, fmt.Errorf("dividers: %w", err)
	}

	t := report.New(p.title, "Multiplier", "Divider", "Frequency", "Error")
	t.AddField("Input", p.env.number(fIn, "Hz"))
	t.AddField("Target", p.env.number(fOut, "Hz"))
	for _, o := range p.Search(fIn, fOut, muls, divs) {
		t.AddRow(
			report.Int(o.Mul),
			report.Int(o.Div),
			report.Number(o.F, quantity.FormatUnit(o.F, 6, "Hz")),
			percent(o.Error),
		)
	}
	return t, nil
}
