package calc

import (
	"github.com/edp1096/toy-engineer/internal/consts"
	"github.com/edp1096/toy-engineer/pkg/report"
	"github.com/edp1096/toy-engineer/pkg/valueset"
	"github.com/google/uuid"
)

type LM2596 struct {
	info
	env *Env
	fb  feedbackDivider
}

func NewLM2596(env *Env) *LM2596 {
	return &LM2596{
		info: info{
			id:    uuid.MustParse("7a227782-2457-42fc-8d88-651b491cbc9f"),
			slug:  "lm2596",
			title: "LM2596 Feedback Resistors",
			menu:  []string{"Power Supply", "LM2596"},
			params: []Param{
				{Name: "v_out", Label: "Output voltage", Unit: "V"},
				{Name: "r_set", Label: "Resistor set", Optional: true},
			},
		},
		env: env,
		fb:  feedbackDivider{vref: consts.LM2596_VREF, lo: 240, hi: 1500},
	}
}

// Search returns pairs with R1 = Lower (240 Ω to 1.5 kΩ) and R2 = Upper.
func (l *LM2596) Search(vOut float64, set *valueset.Set) ([]FeedbackOption, error) {
	return l.fb.search(vOut, set, l.env.TopK)
}

func (l *LM2596) Calculate(in Input) (*report.Table, error) {
	vOut, err := in.Positive("v_out")
	if err != nil {
		return nil, err
	}
	set, err := l.env.resistors(in, "r_set")
	if err != nil {
		return nil, err
	}
	opts, err := l.Search(vOut, set)
	if err != nil {
		return nil, err
	}

	t := report.New(l.title, "R1", "R2", "Vout", "Error")
	t.AddField("Vref", l.env.number(consts.LM2596_VREF, "V"))
	t.AddField("Set", report.Text(set.Name()))
	for _, o := range opts {
		t.AddRow(
			l.env.number(o.Lower.Float(), "Ω"),
			l.env.number(o.Upper.Float(), "Ω"),
			l.env.number(o.VOut, "V"),
			percent(o.Error),
		)
	}
	return t, nil
}
