package calc

import (
	"fmt"

	"github.com/edp1096/toy-engineer/pkg/quantity"
	"github.com/edp1096/toy-engineer/pkg/search"
	"github.com/edp1096/toy-engineer/pkg/valueset"
)

// FeedbackOption is a resistor pair for a regulator feedback pin.
// Lower sits between FB and ground, Upper between the output and FB.
type FeedbackOption struct {
	Lower, Upper quantity.Value
	VOut         float64
	Error        float64
}

// feedbackDivider searches the lower resistor within [lo, hi] and matches
// the upper one so that vref*(1 + upper/lower) approximates vOut.
type feedbackDivider struct {
	vref   float64
	lo, hi float64
}

func (f feedbackDivider) search(vOut float64, set *valueset.Set, topK int) ([]FeedbackOption, error) {
	if !(vOut > f.vref) {
		return nil, fmt.Errorf("%w: output voltage must exceed the %s reference",
			ErrInvalidInput, quantity.FormatUnit(f.vref, 4, "V"))
	}

	ideal := func(lower quantity.Value) (float64, bool) {
		return lower.Float() * (vOut/f.vref - 1), true
	}
	var opts []FeedbackOption
	for lower, upper := range search.Pairs(set.IterRange(f.lo, f.hi), ideal, set) {
		actual := f.vref * (1 + upper.Float()/lower.Float())
		opts = append(opts, FeedbackOption{
			Lower: lower,
			Upper: upper,
			VOut:  actual,
			Error: search.RelativeError(actual, vOut),
		})
	}
	return search.Rank(opts, func(o FeedbackOption) search.Key {
		return search.Key{Error: o.Error}
	}, topK), nil
}
