package calc

import (
	"fmt"
	"math"

	"github.com/edp1096/toy-engineer/internal/consts"
	"github.com/edp1096/toy-engineer/pkg/quantity"
	"github.com/edp1096/toy-engineer/pkg/report"
	"github.com/google/uuid"
)

type TraceWidth struct {
	info
	env     *Env
	lengths *quantity.Converter
	temps   *quantity.Converter
}

func NewTraceWidth(env *Env) *TraceWidth {
	lengths := quantity.Lengths()
	if err := lengths.Add(1, "oz", consts.CU_OZ_UM, "um"); err != nil {
		panic(err)
	}
	return &TraceWidth{
		info: info{
			id:    uuid.MustParse("9e001362-db63-4859-b427-b6398df6b754"),
			slug:  "trace",
			title: "PCB Trace Width (IPC-2221A)",
			menu:  []string{"PCB", "Trace Width"},
			params: []Param{
				{Name: "i", Label: "Current", Unit: "A", Optional: true},
				{Name: "thickness", Label: "Copper thickness", Default: "1", Optional: true},
				{Name: "thickness_unit", Label: "Thickness unit (oz, mil, mm, um)", Default: "oz"},
				{Name: "tempdelta", Label: "Temperature rise", Optional: true},
				{Name: "tempdelta_unit", Label: "Temperature unit (C, F, K)", Default: "C"},
				{Name: "trace_width", Label: "Trace width", Optional: true},
				{Name: "trace_width_unit", Label: "Width unit (mil, mm)", Default: "mil"},
				{Name: "trace_length", Label: "Trace length", Optional: true},
				{Name: "trace_length_unit", Label: "Length unit (mm, cm, m, in, mil)", Default: "mm"},
				{Name: "inner_layer", Label: "Inner layer", Default: "false"},
			},
		},
		env:     env,
		lengths: lengths,
		temps:   quantity.Temperatures(),
	}
}

// Trace is one IPC-2221A operating point. Lengths are in mil, the
// temperature rise in kelvin.
type Trace struct {
	I         float64
	Thickness float64
	TempRise  float64
	Width     float64
}

func (tr Trace) Area() float64 { return tr.Thickness * tr.Width }

// AreaMM2 is the cross section in mm².
func (tr Trace) AreaMM2() float64 {
	return tr.Area() * (consts.MIL * 1e3) * (consts.MIL * 1e3)
}

// ResistancePerMetre of a copper trace.
func (tr Trace) ResistancePerMetre() float64 {
	return consts.CU_RESISTIVITY / (tr.AreaMM2() / 1e6)
}

func traceK(inner bool) float64 {
	if inner {
		return consts.IPC2221_K_INNER
	}
	return consts.IPC2221_K_OUTER
}

const (
	traceCurrent   = "current"
	traceThickness = "thickness"
	traceTempRise  = "temperature rise"
	traceWidth     = "width"
)

// Solve fills in the quantity named by unknown. Zero marks a value that is
// not given; the other three must be positive.
func (t *TraceWidth) Solve(tr Trace, unknown string, inner bool) (Trace, error) {
	k := traceK(inner)
	check := func(vals ...float64) error {
		for _, v := range vals {
			if !(v > 0) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: trace parameters must be positive", ErrInvalidInput)
			}
		}
		return nil
	}

	switch unknown {
	case traceCurrent:
		if err := check(tr.Thickness, tr.TempRise, tr.Width); err != nil {
			return Trace{}, err
		}
		tr.I = k * math.Pow(tr.TempRise, consts.IPC2221_B) * math.Pow(tr.Area(), consts.IPC2221_C)
	case traceTempRise:
		if err := check(tr.I, tr.Thickness, tr.Width); err != nil {
			return Trace{}, err
		}
		tr.TempRise = math.Pow(tr.I/k/math.Pow(tr.Area(), consts.IPC2221_C), 1/consts.IPC2221_B)
	case traceWidth, traceThickness:
		if err := check(tr.I, tr.TempRise); err != nil {
			return Trace{}, err
		}
		area := math.Pow(tr.I/k/math.Pow(tr.TempRise, consts.IPC2221_B), 1/consts.IPC2221_C)
		if unknown == traceWidth {
			if err := check(tr.Thickness); err != nil {
				return Trace{}, err
			}
			tr.Width = area / tr.Thickness
		} else {
			if err := check(tr.Width); err != nil {
				return Trace{}, err
			}
			tr.Thickness = area / tr.Width
		}
	default:
		return Trace{}, fmt.Errorf("%w: cannot solve for %q", ErrInvalidInput, unknown)
	}
	return tr, nil
}

// optionalIn reads an optional quantity and converts it with conv.
func optionalIn(in Input, name string, conv func(float64) (float64, error)) (float64, bool, error) {
	q, ok, err := in.Optional(name)
	if err != nil || !ok {
		return 0, false, err
	}
	v, err := conv(q.Float())
	if err != nil {
		return 0, false, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return v, true, nil
}

func (t *TraceWidth) Calculate(in Input) (*report.Table, error) {
	toMil := func(unitParam string) func(float64) (float64, error) {
		return func(v float64) (float64, error) {
			return t.lengths.Convert(v, in.Get(unitParam), "mil")
		}
	}
	toKelvin := func(v float64) (float64, error) {
		return t.temps.ConvertDelta(v, in.Get("tempdelta_unit"), "K")
	}
	asIs := func(v float64) (float64, error) { return v, nil }

	var given Trace
	known := make(map[string]bool, 4)
	var err error
	for _, p := range []struct {
		name, key string
		dst       *float64
		conv      func(float64) (float64, error)
	}{
		{"i", traceCurrent, &given.I, asIs},
		{"thickness", traceThickness, &given.Thickness, toMil("thickness_unit")},
		{"tempdelta", traceTempRise, &given.TempRise, toKelvin},
		{"trace_width", traceWidth, &given.Width, toMil("trace_width_unit")},
	} {
		var ok bool
		if *p.dst, ok, err = optionalIn(in, p.name, p.conv); err != nil {
			return nil, err
		}
		known[p.key] = ok
	}

	var unknowns []string
	for _, key := range []string{traceCurrent, traceThickness, traceTempRise, traceWidth} {
		if !known[key] {
			unknowns = append(unknowns, key)
		}
	}
	switch len(unknowns) {
	case 0:
		unknowns = []string{traceCurrent, traceThickness, traceTempRise, traceWidth}
	case 1:
	default:
		return nil, fmt.Errorf("%w: three of i, thickness, tempdelta and trace_width are required", ErrInvalidInput)
	}

	length, hasLength, err := optionalIn(in, "trace_length", func(v float64) (float64, error) {
		return t.lengths.Convert(v, in.Get("trace_length_unit"), "m")
	})
	if err != nil {
		return nil, err
	}
	inner := in.Bool("inner_layer")

	cols := []string{"Solved", "I", "Thickness", "Temp rise", "Width", "Width mm", "Area", "R/cm"}
	if hasLength {
		cols = append(cols, "R", "P")
	}
	tbl := report.New(t.title, cols...)
	if inner {
		tbl.AddField("Layer", report.Text("inner"))
	} else {
		tbl.AddField("Layer", report.Text("outer"))
	}
	tbl.AddField("k", report.Number(traceK(inner), fmt.Sprintf("%g", traceK(inner))))
	if hasLength {
		tbl.AddField("Length", t.env.number(length, "m"))
	}

	for _, unknown := range unknowns {
		tr, err := t.Solve(given, unknown, inner)
		if err != nil {
			return nil, err
		}
		oz, _ := t.lengths.Convert(tr.Thickness, "mil", "oz")
		mm, _ := t.lengths.Convert(tr.Width, "mil", "mm")
		rm := tr.ResistancePerMetre()
		row := []report.Cell{
			report.Text(unknown),
			t.env.number(tr.I, "A"),
			report.Number(oz, fmt.Sprintf("%.3g oz (%.3g mil)", oz, tr.Thickness)),
			t.env.number(tr.TempRise, "K"),
			report.Number(tr.Width, fmt.Sprintf("%.4g mil", tr.Width)),
			report.Number(mm, fmt.Sprintf("%.4g mm", mm)),
			report.Number(tr.AreaMM2(), fmt.Sprintf("%.4g mm²", tr.AreaMM2())),
			t.env.number(rm/100, "Ω"),
		}
		if hasLength {
			r := rm * length
			row = append(row, t.env.number(r, "Ω"), t.env.number(tr.I*tr.I*r, "W"))
		}
		tbl.AddRow(row...)
	}
	return tbl, nil
}
