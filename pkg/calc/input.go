package calc

import (
	"fmt"
	"strings"

	"github.com/edp1096/toy-engineer/pkg/quantity"
)

// Input holds the raw text of every parameter.
type Input map[string]string

// ParseInput reads "name=value" arguments.
func ParseInput(args []string) (Input, error) {
	in := make(Input, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: expected name=value, got %q", ErrInvalidInput, arg)
		}
		in[name] = value
	}
	return in, nil
}

func (in Input) Get(name string) string {
	return strings.TrimSpace(in[name])
}

func (in Input) Has(name string) bool {
	return in.Get(name) != ""
}

func (in Input) Quantity(name string) (quantity.Value, error) {
	s := in.Get(name)
	if s == "" {
		return quantity.Value{}, fmt.Errorf("%w: %s is required", ErrInvalidInput, name)
	}
	v, err := quantity.Parse(s)
	if err != nil {
		return quantity.Value{}, fmt.Errorf("%w: %s: %v", ErrInvalidInput, name, err)
	}
	return v, nil
}

// Positive parses a required quantity that must be > 0.
func (in Input) Positive(name string) (float64, error) {
	v, err := in.Quantity(name)
	if err != nil {
		return 0, err
	}
	if v.Sign() <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive", ErrInvalidInput, name)
	}
	return v.Float(), nil
}

// Optional parses a quantity that may be left empty.
func (in Input) Optional(name string) (quantity.Value, bool, error) {
	if !in.Has(name) {
		return quantity.Value{}, false, nil
	}
	v, err := in.Quantity(name)
	return v, err == nil, err
}

func (in Input) Bool(name string) bool {
	switch strings.ToLower(in.Get(name)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// withDefaults fills empty parameters from their declared defaults.
func (in Input) withDefaults(params []Param) Input {
	out := make(Input, len(in)+len(params))
	for k, v := range in {
		out[k] = v
	}
	for _, p := range params {
		if p.Default != "" && !out.Has(p.Name) {
			out[p.Name] = p.Default
		}
	}
	return out
}
