package calc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/edp1096/toy-engineer/pkg/eseries"
	"github.com/edp1096/toy-engineer/pkg/report"
	"github.com/google/uuid"
)

type ESeriesLookup struct {
	info
	env *Env
}

func NewESeriesLookup(env *Env) *ESeriesLookup {
	return &ESeriesLookup{
		info: info{
			id:    uuid.MustParse("c3f0a2d4-5b7e-4c1a-9d2f-8e6b1a4c7d90"),
			slug:  "eseries",
			title: "E-Series Lookup",
			menu:  []string{"Basics", "E-Series Lookup"},
			params: []Param{
				{Name: "value", Label: "Value"},
				{Name: "series", Label: "Series", Default: "E12"},
				{Name: "unit", Label: "Unit", Optional: true},
			},
		},
		env: env,
	}
}

// ParseSeries accepts "E24" as well as "24".
func ParseSeries(s string) (*eseries.Series, error) {
	s = strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "E")
	key, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%w: series %q", ErrInvalidInput, s)
	}
	series, err := eseries.Standard(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return series, nil
}

func (e *ESeriesLookup) Calculate(in Input) (*report.Table, error) {
	v, err := in.Quantity("value")
	if err != nil {
		return nil, err
	}
	series, err := ParseSeries(in.Get("series"))
	if err != nil {
		return nil, err
	}
	matches, err := series.SmallerLarger(v.Rat())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	closest, err := series.Closest(v.Rat())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	unit := in.Get("unit")

	t := report.New(e.title, "Match", "Value", "Error")
	t.AddField("Value", e.env.number(v.Float(), unit))
	t.AddField("Series", report.Text(series.Name()))
	for _, row := range []struct {
		label string
		m     eseries.Match
	}{
		{"Smaller", matches.Smaller},
		{"Larger", matches.Larger},
		{"Closest", closest},
	} {
		t.AddRow(
			report.Text(row.label),
			e.env.number(row.m.Float(), unit),
			percent(row.m.ErrorFloat()),
		)
	}
	return t, nil
}
