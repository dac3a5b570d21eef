package calc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/edp1096/toy-engineer/pkg/quantity"
	"github.com/edp1096/toy-engineer/pkg/report"
	"github.com/edp1096/toy-engineer/pkg/thread"
	"github.com/google/uuid"
)

// inchFractionError is the largest fraction error accepted when an inch
// size is written as a fraction.
const inchFractionError = 0.01

type ThreadIdent struct {
	info
	env *Env
}

func NewThreadIdent(env *Env) *ThreadIdent {
	return &ThreadIdent{
		info: info{
			id:    uuid.MustParse("a955a2d2-3d66-4113-a48c-6808d464612e"),
			slug:  "thread",
			title: "Thread Identification",
			menu:  []string{"Basics", "Thread Ident"},
			params: []Param{
				{Name: "diameter", Label: "Diameter", Unit: "m"},
				{Name: "length", Label: "Length", Unit: "m"},
				{Name: "turns", Label: "Over turns", Default: "1"},
			},
		},
		env: env,
	}
}

func inchFraction(metres float64) quantity.Fraction {
	return quantity.NewFraction(metres/thread.Inch, inchFractionError, quantity.DefaultFractionDenominator)
}

// inchText renders a length as decimal inches and the closest fraction.
func inchText(metres float64) string {
	frac := inchFraction(metres)
	return fmt.Sprintf("%.3f\" ≈ %s\" (%s)", metres/thread.Inch, frac, quantity.FormatPercent(frac.RelativeError))
}

// Identify measures length over turns and ranks the catalog against it.
func (ti *ThreadIdent) Identify(diameter, length float64, turns int) (thread.Thread, []thread.Candidate, error) {
	if ti.env.Threads == nil {
		return thread.Thread{}, nil, fmt.Errorf("%w: no thread table", ErrInvalidInput)
	}
	ref := thread.Thread{Diameter: diameter, Pitch: length / float64(turns)}
	return ref, ti.env.Threads.Closest(ref, thread.DefaultCount), nil
}

func (ti *ThreadIdent) Calculate(in Input) (*report.Table, error) {
	diameter, err := in.Positive("diameter")
	if err != nil {
		return nil, err
	}
	length, err := in.Positive("length")
	if err != nil {
		return nil, err
	}
	turns, err := strconv.Atoi(in.Get("turns"))
	if err != nil || turns < 1 {
		return nil, fmt.Errorf("%w: turns must be a positive integer", ErrInvalidInput)
	}

	ref, cands, err := ti.Identify(diameter, length, turns)
	if err != nil {
		return nil, err
	}

	t := report.New(ti.title, "Class", "Name", "Diameter", "Inch", "Pitch", "TPI", "Diameter error", "Pitch error", "Usage")
	t.AddField("Diameter", ti.env.number(ref.Diameter, "m"))
	t.AddField("Diameter inch", report.Number(ref.Diameter/thread.Inch, inchText(ref.Diameter)))
	t.AddField("Pitch", ti.env.number(ref.Pitch, "m/turn"))
	t.AddField("TPI", report.Number(ref.TPI(), fmt.Sprintf("%.1f", ref.TPI())))

	for _, c := range cands {
		inch := ""
		if frac := inchFraction(c.Diameter); !frac.IsZero() {
			inch = frac.String() + "\""
		}
		t.AddRow(
			report.Text(c.Group),
			report.Text(c.Name),
			ti.env.number(c.Diameter, "m"),
			report.Text(inch),
			ti.env.number(c.Pitch, "m/turn"),
			report.Number(c.TPI(), fmt.Sprintf("%.1f", c.TPI())),
			percent(c.DiameterError),
			percent(c.PitchError),
			report.Text(strings.Join(c.Usage, ", ")),
		)
	}
	return t, nil
}
