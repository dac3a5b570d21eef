package calc

import (
	"fmt"
	"math"

	"github.com/edp1096/toy-engineer/pkg/network"
	"github.com/edp1096/toy-engineer/pkg/quantity"
	"github.com/edp1096/toy-engineer/pkg/report"
	"github.com/edp1096/toy-engineer/pkg/search"
	"github.com/edp1096/toy-engineer/pkg/valueset"
	"github.com/google/uuid"
)

type VoltageDivider struct {
	info
	env *Env
}

func NewVoltageDivider(env *Env) *VoltageDivider {
	return &VoltageDivider{
		info: info{
			id:    uuid.MustParse("09d06413-06ef-4246-a8f7-6fa6015ad79f"),
			slug:  "divider",
			title: "Voltage Divider",
			menu:  []string{"Basics", "Voltage Divider"},
			params: []Param{
				{Name: "v_in", Label: "Input voltage", Unit: "V"},
				{Name: "v_out", Label: "Output voltage", Unit: "V"},
				{Name: "r_sum", Label: "Total resistance", Unit: "Ω"},
				{Name: "r_set", Label: "Resistor set", Optional: true},
				{Name: "r_tolerance", Label: "Resistor tolerance", Unit: "%", Optional: true},
				{Name: "r_load", Label: "Load resistance", Unit: "Ω", Optional: true},
			},
		},
		env: env,
	}
}

// DividerSpec describes the wanted divider. R1 is the lower resistor
// (output to ground), R2 the upper one.
type DividerSpec struct {
	VIn, VOut float64
	RSum      float64
	Tolerance float64 // fraction of the ideal R1
	RLoad     float64 // 0 for an unloaded output
}

type DividerOption struct {
	R1, R2 quantity.Value
	RTotal float64
	VOut   float64
	I      float64
	P      float64
	VError float64
	RError float64
}

func (s DividerSpec) validate() error {
	switch {
	case !(s.VIn > 0) || !(s.VOut > 0):
		return fmt.Errorf("%w: voltages must be positive", ErrInvalidInput)
	case s.VOut >= s.VIn:
		return fmt.Errorf("%w: output voltage must be below input voltage", ErrInvalidInput)
	case !(s.RSum > 0):
		return fmt.Errorf("%w: total resistance must be positive", ErrInvalidInput)
	case s.Tolerance < 0 || s.Tolerance >= 1:
		return fmt.Errorf("%w: tolerance must be in [0, 100) %%", ErrInvalidInput)
	case s.RLoad < 0:
		return fmt.Errorf("%w: load resistance must not be negative", ErrInvalidInput)
	}
	return nil
}

// Search walks R1 around its ideal value and matches R2 to each. Every
// option is solved as a network, so a load on the output is accounted for.
func (d *VoltageDivider) Search(spec DividerSpec, set *valueset.Set) ([]DividerOption, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	idealR1 := spec.RSum * spec.VOut / spec.VIn
	primary := set.IterRange(idealR1*(1-spec.Tolerance), idealR1*(1+spec.Tolerance))
	ideal := func(r1 quantity.Value) (float64, bool) {
		return r1.Float() * (spec.VIn - spec.VOut) / spec.VOut, true
	}

	var opts []DividerOption
	for r1, r2 := range search.Pairs(primary, ideal, set) {
		op, err := solveDivider(spec.VIn, r1.Float(), r2.Float(), spec.RLoad)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNumericallyUnstable, err)
		}
		rTotal := r1.Float() + r2.Float()
		opts = append(opts, DividerOption{
			R1:     r1,
			R2:     r2,
			RTotal: rTotal,
			VOut:   op.vOut,
			I:      op.i,
			P:      op.p,
			VError: search.RelativeError(op.vOut, spec.VOut),
			RError: search.RelativeError(rTotal, spec.RSum),
		})
	}

	return search.Rank(opts, func(o DividerOption) search.Key {
		return search.Key{Error: o.VError, Tie: math.Abs(o.RError)}
	}, 0), nil
}

type dividerPoint struct {
	vOut, i, p float64
}

func solveDivider(vIn, r1, r2, rLoad float64) (dividerPoint, error) {
	n := network.New("divider")
	if err := n.AddVoltageSource("Vin", "in", "0", vIn); err != nil {
		return dividerPoint{}, err
	}
	if err := n.AddResistor("R2", "in", "out", r2); err != nil {
		return dividerPoint{}, err
	}
	if err := n.AddResistor("R1", "out", "0", r1); err != nil {
		return dividerPoint{}, err
	}
	if rLoad > 0 {
		if err := n.AddResistor("Rload", "out", "0", rLoad); err != nil {
			return dividerPoint{}, err
		}
	}

	sol, err := n.Solve()
	if err != nil {
		return dividerPoint{}, err
	}
	var pt dividerPoint
	if pt.vOut, err = sol.Voltage("out"); err != nil {
		return dividerPoint{}, err
	}
	if pt.i, err = sol.Current("Vin"); err != nil {
		return dividerPoint{}, err
	}
	if pt.p, err = sol.Power("Vin"); err != nil {
		return dividerPoint{}, err
	}
	return pt, nil
}

func (d *VoltageDivider) Calculate(in Input) (*report.Table, error) {
	var spec DividerSpec
	var err error
	if spec.VIn, err = in.Positive("v_in"); err != nil {
		return nil, err
	}
	if spec.VOut, err = in.Positive("v_out"); err != nil {
		return nil, err
	}
	if spec.RSum, err = in.Positive("r_sum"); err != nil {
		return nil, err
	}
	spec.Tolerance = d.env.DividerTolerance / 100
	if tol, ok, err := in.Optional("r_tolerance"); err != nil {
		return nil, err
	} else if ok {
		spec.Tolerance = tol.Float() / 100
	}
	if load, ok, err := in.Optional("r_load"); err != nil {
		return nil, err
	} else if ok {
		spec.RLoad = load.Float()
	}
	set, err := d.env.resistors(in, "r_set")
	if err != nil {
		return nil, err
	}

	opts, err := d.Search(spec, set)
	if err != nil {
		return nil, err
	}

	t := report.New(d.title, "R1", "R2", "R total", "R error", "I", "P", "Vout", "V error")
	t.AddField("Set", report.Text(set.Name()))
	if spec.RLoad > 0 {
		t.AddField("Load", d.env.number(spec.RLoad, "Ω"))
	}
	for _, o := range opts {
		t.AddRow(
			d.env.number(o.R1.Float(), "Ω"),
			d.env.number(o.R2.Float(), "Ω"),
			d.env.number(o.RTotal, "Ω"),
			percent(o.RError),
			d.env.number(o.I, "A"),
			d.env.number(o.P, "W"),
			d.env.number(o.VOut, "V"),
			percent(o.VError),
		)
	}
	return t, nil
}
