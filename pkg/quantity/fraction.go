package quantity

import (
	"fmt"
	"math"
	"strings"
)

const (
	DefaultFractionError       = 0.005
	DefaultFractionDenominator = 128
)

// Fraction is a value written as whole part plus a binary fraction, the way
// imperial sizes are given (1 3/8").
type Fraction struct {
	Negative    bool
	Whole       int
	Numerator   int
	Denominator int
	// FractionalError is the fraction part minus the exact fraction part.
	FractionalError float64
	// RelativeError is (Float() - value) / value.
	RelativeError float64
}

// NewFraction doubles the denominator from 2 up to maxDenominator until the
// fractional part is within maxError. Past maxDenominator the last attempt
// is kept.
func NewFraction(value, maxError float64, maxDenominator int) Fraction {
	f := Fraction{Negative: value < 0, Denominator: 1}
	if f.Negative {
		value = -value
	}
	f.Whole = int(value)
	frac := value - float64(f.Whole)

	if frac != 0 {
		for f.Denominator < maxDenominator {
			f.Denominator *= 2
			f.Numerator = int(math.RoundToEven(frac * float64(f.Denominator)))
			if math.Abs(float64(f.Numerator)/float64(f.Denominator)-frac) < maxError {
				break
			}
		}
	}
	f.FractionalError = float64(f.Numerator)/float64(f.Denominator) - frac
	if value > 0 {
		f.RelativeError = (math.Abs(f.Float()) - value) / value
	}
	return f
}

func (f Fraction) Float() float64 {
	v := float64(f.Whole) + float64(f.Numerator)/float64(f.Denominator)
	if f.Negative {
		return -v
	}
	return v
}

func (f Fraction) IsZero() bool {
	return f.Whole == 0 && f.Numerator == 0
}

func (f Fraction) String() string {
	var parts []string
	if f.Whole > 0 {
		parts = append(parts, fmt.Sprint(f.Whole))
	}
	if f.Numerator > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d", f.Numerator, f.Denominator))
	}
	if len(parts) == 0 {
		parts = append(parts, "0")
	}
	s := strings.Join(parts, " ")
	if f.Negative {
		return "-" + s
	}
	return s
}
