package calc

import (
	"fmt"

	"github.com/edp1096/toy-engineer/pkg/network"
	"github.com/edp1096/toy-engineer/pkg/report"
	"github.com/google/uuid"
)

type SeriesResistor struct {
	info
	env *Env
}

func NewSeriesResistor(env *Env) *SeriesResistor {
	return &SeriesResistor{
		info: info{
			id:    uuid.MustParse("0c1b1c49-73da-432e-acca-dfc40184aa27"),
			slug:  "series",
			title: "Series Resistor",
			menu:  []string{"Basics", "Series Resistor"},
			params: []Param{
				{Name: "v_in", Label: "Supply voltage", Unit: "V"},
				{Name: "v_load", Label: "Load voltage", Unit: "V"},
				{Name: "i", Label: "Load current", Unit: "A"},
				{Name: "r_user", Label: "Chosen resistor", Unit: "Ω", Optional: true},
				{Name: "r_set", Label: "Resistor set", Optional: true},
			},
		},
		env: env,
	}
}

// SeriesChoice is one concrete resistor evaluated against the load.
type SeriesChoice struct {
	Label    string
	R        float64
	VLoad    float64 // achieved load voltage
	I        float64
	P        float64 // dissipated in the resistor
	RelError float64
	AbsError float64
}

type SeriesResult struct {
	R          float64 // ideal resistor
	VR         float64
	P          float64
	Efficiency float64
	Choices    []SeriesChoice
}

// Solve sizes the dropping resistor. The load is modelled as the resistance
// that draws i at v_load; each candidate is solved with that load in place.
func (s *SeriesResistor) Solve(vIn, vLoad, i float64, candidates []SeriesChoice) (SeriesResult, error) {
	if !(vIn > 0) || !(vLoad > 0) || !(i > 0) {
		return SeriesResult{}, fmt.Errorf("%w: v_in, v_load and i must be positive", ErrInvalidInput)
	}
	if vIn < vLoad {
		return SeriesResult{}, fmt.Errorf("%w: supply voltage below load voltage", ErrInvalidInput)
	}

	vr := vIn - vLoad
	res := SeriesResult{
		R:          vr / i,
		VR:         vr,
		P:          i * vr,
		Efficiency: vLoad / vIn,
	}
	rLoad := vLoad / i
	for _, c := range candidates {
		if !(c.R > 0) {
			continue
		}
		vl, cur, err := solveSeries(vIn, c.R, rLoad)
		if err != nil {
			return SeriesResult{}, fmt.Errorf("%w: %v", ErrNumericallyUnstable, err)
		}
		c.VLoad = vl
		c.I = cur
		c.P = cur * cur * c.R
		c.AbsError = vl - vLoad
		c.RelError = c.AbsError / vLoad
		res.Choices = append(res.Choices, c)
	}
	return res, nil
}

func solveSeries(vIn, r, rLoad float64) (vLoad, i float64, err error) {
	n := network.New("series")
	if err = n.AddVoltageSource("Vin", "in", "0", vIn); err != nil {
		return 0, 0, err
	}
	if err = n.AddResistor("R", "in", "load", r); err != nil {
		return 0, 0, err
	}
	if err = n.AddResistor("Rload", "load", "0", rLoad); err != nil {
		return 0, 0, err
	}
	sol, err := n.Solve()
	if err != nil {
		return 0, 0, err
	}
	if vLoad, err = sol.Voltage("load"); err != nil {
		return 0, 0, err
	}
	if i, err = sol.Current("R"); err != nil {
		return 0, 0, err
	}
	return vLoad, i, nil
}

func (s *SeriesResistor) Calculate(in Input) (*report.Table, error) {
	vIn, err := in.Positive("v_in")
	if err != nil {
		return nil, err
	}
	vLoad, err := in.Positive("v_load")
	if err != nil {
		return nil, err
	}
	i, err := in.Positive("i")
	if err != nil {
		return nil, err
	}
	if vIn < vLoad {
		return nil, fmt.Errorf("%w: supply voltage below load voltage", ErrInvalidInput)
	}

	var candidates []SeriesChoice
	if user, ok, err := in.Optional("r_user"); err != nil {
		return nil, err
	} else if ok {
		if user.Sign() <= 0 {
			return nil, fmt.Errorf("%w: r_user must be positive", ErrInvalidInput)
		}
		candidates = append(candidates, SeriesChoice{Label: "User choice", R: user.Float()})
	}
	setName := in.Get("r_set")
	if setName != "" {
		set, err := s.env.set("r", setName)
		if err != nil {
			return nil, err
		}
		smaller, larger := set.FindClosest((vIn - vLoad) / i)
		if smaller != nil {
			candidates = append(candidates, SeriesChoice{Label: "Smaller in set", R: smaller.Float()})
		}
		if larger != nil {
			candidates = append(candidates, SeriesChoice{Label: "Larger in set", R: larger.Float()})
		}
	}

	res, err := s.Solve(vIn, vLoad, i, candidates)
	if err != nil {
		return nil, err
	}

	t := report.New(s.title, "Choice", "R", "V load", "I", "P", "Error", "Abs error")
	t.AddField("Resistor", s.env.number(res.R, "Ω"))
	t.AddField("Voltage drop", s.env.number(res.VR, "V"))
	t.AddField("Power", s.env.number(res.P, "W"))
	t.AddField("Efficiency", report.Number(res.Efficiency, fmt.Sprintf("%.1f%%", res.Efficiency*100)))
	if setName != "" {
		t.AddField("Set", report.Text(setName))
	}
	for _, c := range res.Choices {
		t.AddRow(
			report.Text(c.Label),
			s.env.number(c.R, "Ω"),
			s.env.number(c.VLoad, "V"),
			s.env.number(c.I, "A"),
			s.env.number(c.P, "W"),
			percent(c.RelError),
			s.env.number(c.AbsError, "V"),
		)
	}
	return t, nil
}
