package calc

import (
	"fmt"

	"github.com/edp1096/toy-engineer/internal/consts"
	"github.com/edp1096/toy-engineer/pkg/report"
	"github.com/edp1096/toy-engineer/pkg/valueset"
	"github.com/google/uuid"
)

type MP2307 struct {
	info
	env *Env
	fb  feedbackDivider
}

func NewMP2307(env *Env) *MP2307 {
	return &MP2307{
		info: info{
			id:    uuid.MustParse("1fe6d538-5fca-4cf9-8b08-a5fbbd5a392d"),
			slug:  "mp2307",
			title: "MP2307 Feedback Resistors",
			menu:  []string{"Power Supply", "MP2307"},
			params: []Param{
				{Name: "v_out", Label: "Output voltage", Unit: "V"},
				{Name: "r_set", Label: "Resistor set", Optional: true},
				{Name: "v_in", Label: "Input voltage", Unit: "V", Optional: true},
				{Name: "l", Label: "Inductor", Unit: "H", Optional: true},
				{Name: "i_out", Label: "Load current", Unit: "A", Optional: true},
			},
		},
		env: env,
		fb:  feedbackDivider{vref: consts.MP2307_VREF, lo: 500, hi: 50e3},
	}
}

// Search returns pairs with R2 = Lower (500 Ω to 50 kΩ) and R1 = Upper.
func (m *MP2307) Search(vOut float64, set *valueset.Set) ([]FeedbackOption, error) {
	return m.fb.search(vOut, set, m.env.TopK)
}

// Ripple is the peak-to-peak inductor current at the switching frequency.
func (m *MP2307) Ripple(vIn, vOut, l float64) float64 {
	return (vIn*vOut - vOut*vOut) / (consts.MP2307_FSW * l * vIn)
}

// PeakCurrent is the largest inductor current for a load of iOut.
func (m *MP2307) PeakCurrent(vIn, vOut, l, iOut float64) float64 {
	return iOut + vOut/(2*consts.MP2307_FSW*l)*(1-vOut/vIn)
}

func (m *MP2307) Calculate(in Input) (*report.Table, error) {
	vOut, err := in.Positive("v_out")
	if err != nil {
		return nil, err
	}
	set, err := m.env.resistors(in, "r_set")
	if err != nil {
		return nil, err
	}
	opts, err := m.Search(vOut, set)
	if err != nil {
		return nil, err
	}

	t := report.New(m.title, "R1", "R2", "Vout", "Error")
	t.AddField("Vref", m.env.number(consts.MP2307_VREF, "V"))
	t.AddField("Switching frequency", m.env.number(consts.MP2307_FSW, "Hz"))
	t.AddField("Set", report.Text(set.Name()))

	if in.Has("v_in") && in.Has("l") {
		vIn, err := in.Positive("v_in")
		if err != nil {
			return nil, err
		}
		l, err := in.Positive("l")
		if err != nil {
			return nil, err
		}
		if vIn <= vOut {
			return nil, fmt.Errorf("%w: input voltage must exceed output voltage", ErrInvalidInput)
		}
		t.AddField("Inductor ripple", m.env.number(m.Ripple(vIn, vOut, l), "A"))
		if in.Has("i_out") {
			iOut, err := in.Positive("i_out")
			if err != nil {
				return nil, err
			}
			t.AddField("Peak inductor current", m.env.number(m.PeakCurrent(vIn, vOut, l, iOut), "A"))
		}
	}

	for _, o := range opts {
		t.AddRow(
			m.env.number(o.Upper.Float(), "Ω"),
			m.env.number(o.Lower.Float(), "Ω"),
			m.env.number(o.VOut, "V"),
			percent(o.Error),
		)
	}
	return t, nil
}
