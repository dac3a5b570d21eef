package quantity

import (
	"fmt"
	"math"
	"strings"
)

// Format renders v with an SI prefix and the given number of significant
// digits, e.g. Format(4700, 3) == "4.70 k". The trailing separator is kept so
// a unit can be appended directly.
func Format(v float64, significantDigits int) string {
	if significantDigits < 1 {
		significantDigits = 1
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprintf("%g ", v)
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	symbol := ""
	mantissa := v
	if v != 0 && (v < 1 || v >= 1000) {
		found := false
		for _, p := range siPrefixes {
			if p.symbol == "u" {
				continue
			}
			mantissa = v / math.Pow(10, float64(p.exponent))
			if mantissa >= 1 && mantissa < 1000 {
				symbol = p.symbol
				found = true
				break
			}
		}
		if !found {
			p := siPrefixes[len(siPrefixes)-1]
			if v < 1 {
				p = siPrefixes[0]
			}
			symbol = p.symbol
			mantissa = v / math.Pow(10, float64(p.exponent))
		}
	}

	preDecimal := 1
	if mantissa != 0 {
		preDecimal = int(math.Floor(math.Log10(mantissa))) + 1
	}
	postDecimal := significantDigits - preDecimal
	if postDecimal < 0 {
		postDecimal = 0
	}
	return fmt.Sprintf("%s%.*f %s", sign, postDecimal, mantissa, symbol)
}

// FormatUnit is Format with a unit symbol appended: FormatUnit(4700, 3, "Ω")
// == "4.70 kΩ".
func FormatUnit(v float64, significantDigits int, unit string) string {
	return strings.TrimSpace(Format(v, significantDigits) + unit)
}

// FormatPercent renders a relative error as a signed percentage.
func FormatPercent(relErr float64) string {
	return fmt.Sprintf("%+.1f%%", 100*relErr)
}
