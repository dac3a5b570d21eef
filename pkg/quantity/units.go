package quantity

import (
	"errors"
	"fmt"

	"github.com/edp1096/toy-engineer/internal/consts"
)

var ErrUnknownUnit = errors.New("quantity: unknown unit")

// unit maps a base value b to u = b*scale + offset.
type unit struct {
	scale  float64
	offset float64
}

// Converter converts between units of one dimension.
type Converter struct {
	units map[string]unit
}

func NewConverter() *Converter {
	return &Converter{units: make(map[string]unit)}
}

// Lengths has millimetres as its base.
func Lengths() *Converter {
	c := NewConverter()
	for name, scale := range map[string]float64{
		"um":   1000,
		"mm":   1,
		"cm":   0.1,
		"m":    0.001,
		"in":   1 / 25.4,
		"ft":   1 / 12.0 / 25.4,
		"mil":  1000 / 25.4,
		"thou": 1000 / 25.4,
	} {
		c.units[name] = unit{scale: scale}
	}
	return c
}

// Temperatures has kelvin as its base.
func Temperatures() *Converter {
	c := NewConverter()
	c.units["K"] = unit{scale: 1}
	c.units["C"] = unit{scale: 1, offset: -consts.KELVIN}
	c.units["F"] = unit{scale: 1.8, offset: -consts.KELVIN*1.8 + 32}
	return c
}

func (c *Converter) get(name string) (unit, error) {
	u, ok := c.units[name]
	if !ok {
		return unit{}, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
	}
	return u, nil
}

func (c *Converter) Has(name string) bool {
	_, ok := c.units[name]
	return ok
}

// Add defines newUnit by the proportional relation newValue newUnit ==
// knownValue knownUnit. On an empty converter knownUnit becomes the base.
func (c *Converter) Add(newValue float64, newUnit string, knownValue float64, knownUnit string) error {
	if len(c.units) == 0 {
		c.units[knownUnit] = unit{scale: 1}
	}
	known, err := c.get(knownUnit)
	if err != nil {
		return err
	}
	c.units[newUnit] = unit{scale: newValue / knownValue * known.scale}
	return nil
}

// AddLinear defines newUnit from two reference points, which allows an offset
// (e.g. Fahrenheit from Celsius).
func (c *Converter) AddLinear(new1, new2 float64, newUnit string, known1, known2 float64, knownUnit string) error {
	if len(c.units) == 0 {
		c.units[knownUnit] = unit{scale: 1}
	}
	known, err := c.get(knownUnit)
	if err != nil {
		return err
	}
	if known1 == known2 {
		return fmt.Errorf("quantity: reference points of %q coincide", newUnit)
	}
	base1 := (known1 - known.offset) / known.scale
	base2 := (known2 - known.offset) / known.scale
	scale := (new1 - new2) / (base1 - base2)
	c.units[newUnit] = unit{scale: scale, offset: new1 - base1*scale}
	return nil
}

func (c *Converter) Convert(value float64, from, to string) (float64, error) {
	f, err := c.get(from)
	if err != nil {
		return 0, err
	}
	t, err := c.get(to)
	if err != nil {
		return 0, err
	}
	base := (value - f.offset) / f.scale
	return base*t.scale + t.offset, nil
}

// ConvertDelta converts a difference, so offsets cancel.
func (c *Converter) ConvertDelta(value float64, from, to string) (float64, error) {
	f, err := c.get(from)
	if err != nil {
		return 0, err
	}
	t, err := c.get(to)
	if err != nil {
		return 0, err
	}
	return value / f.scale * t.scale, nil
}
