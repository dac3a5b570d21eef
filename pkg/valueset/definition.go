package valueset

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/edp1096/toy-engineer/pkg/eseries"
	"github.com/edp1096/toy-engineer/pkg/quantity"
	"gopkg.in/yaml.v3"
)

var (
	ErrDataMissing         = errors.New("valueset: required attribute missing")
	ErrInvalidData         = errors.New("valueset: invalid definition")
	ErrDuplicateEntry      = errors.New("valueset: defined twice")
	ErrUnresolvedReference = errors.New("valueset: unresolved reference")
	ErrCyclicReference     = errors.New("valueset: cyclic union reference")
	ErrUnknownSet          = errors.New("valueset: no such set")
)

const (
	TypeExplicit = "explicit"
	TypeESeries  = "eseries"
	TypeUnion    = "union"
)

// DefinitionError reports which set definition failed to load.
type DefinitionError struct {
	Set string
	Err error
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("value set %q: %v", e.Set, e.Err)
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// Item is a catalog value written either as a number or as a quantity string.
type Item struct {
	quantity.Value
}

func (it *Item) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Plain JSON number: parse its literal text to stay exact.
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("%w: item %s", ErrInvalidData, string(data))
		}
		s = n.String()
	}
	v, err := quantity.Parse(s)
	if err != nil {
		return err
	}
	it.Value = v
	return nil
}

func (it *Item) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: item at line %d is not a scalar", ErrInvalidData, node.Line)
	}
	v, err := quantity.Parse(node.Value)
	if err != nil {
		return err
	}
	it.Value = v
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (it *Item) UnmarshalTOML(data any) error {
	var s string
	switch v := data.(type) {
	case string:
		s = v
	case int64:
		s = strconv.FormatInt(v, 10)
	case float64:
		s = strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Errorf("%w: item %v", ErrInvalidData, data)
	}
	v, err := quantity.Parse(s)
	if err != nil {
		return err
	}
	it.Value = v
	return nil
}

// Definition is one value set as written in a catalog file.
type Definition struct {
	Name   string   `json:"name" yaml:"name" toml:"name"`
	Type   string   `json:"type" yaml:"type" toml:"type"`
	Items  []Item   `json:"items,omitempty" yaml:"items,omitempty" toml:"items,omitempty"`
	Series int      `json:"series,omitempty" yaml:"series,omitempty" toml:"series,omitempty"`
	Min    *Item    `json:"min,omitempty" yaml:"min,omitempty" toml:"min,omitempty"`
	Max    *Item    `json:"max,omitempty" yaml:"max,omitempty" toml:"max,omitempty"`
	Groups []string `json:"groups,omitempty" yaml:"groups,omitempty" toml:"groups,omitempty"`
}

func (d Definition) validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: 'name'", ErrDataMissing)
	}
	switch d.Type {
	case "":
		return fmt.Errorf("%w: 'type'", ErrDataMissing)
	case TypeExplicit:
		if d.Items == nil {
			return fmt.Errorf("%w: 'items'", ErrDataMissing)
		}
	case TypeESeries:
		if d.Series == 0 {
			return fmt.Errorf("%w: 'series'", ErrDataMissing)
		}
		if d.Min == nil {
			return fmt.Errorf("%w: 'min'", ErrDataMissing)
		}
		if d.Max == nil {
			return fmt.Errorf("%w: 'max'", ErrDataMissing)
		}
	case TypeUnion:
		if d.Groups == nil {
			return fmt.Errorf("%w: 'groups'", ErrDataMissing)
		}
	default:
		return fmt.Errorf("%w: type %q", ErrInvalidData, d.Type)
	}
	return nil
}

// build materializes explicit and eseries definitions. Unions are resolved
// by Sets.
func (d Definition) build() (*Set, error) {
	switch d.Type {
	case TypeExplicit:
		values := make([]quantity.Value, len(d.Items))
		for i, it := range d.Items {
			values[i] = it.Value
		}
		return NewSet(d.Name, values), nil

	case TypeESeries:
		series, err := eseries.Standard(d.Series)
		if err != nil {
			return nil, err
		}
		seq, err := series.FromTo(d.Min.Rat(), d.Max.Rat(), true)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
		var values []quantity.Value
		for r := range seq {
			values = append(values, quantity.FromRat(r))
		}
		return NewSet(d.Name, values), nil
	}
	return nil, fmt.Errorf("%w: type %q cannot be built directly", ErrInvalidData, d.Type)
}
