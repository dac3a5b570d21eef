package quantity

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/govalues/decimal"
)

var ErrInvalidQuantity = errors.New("quantity: invalid value")

type prefix struct {
	symbol   string
	exponent int
}

var siPrefixes = []prefix{
	{"f", -15},
	{"p", -12},
	{"n", -9},
	{"µ", -6},
	{"u", -6},
	{"m", -3},
	{"k", 3},
	{"M", 6},
	{"G", 9},
	{"T", 12},
	{"E", 15},
}

// Value is an exact quantity, optionally remembering the text it was parsed
// from.
type Value struct {
	rat *big.Rat
	raw string
}

// Parse reads a number with an optional SI prefix suffix ("4.7k", "100n",
// "0.01M", "1/3").
func Parse(s string) (Value, error) {
	text := strings.TrimRight(s, "\t\n ")
	text = strings.TrimLeft(text, "\t\n ")
	if text == "" {
		return Value{}, fmt.Errorf("%w: empty string", ErrInvalidQuantity)
	}

	exponent := 0
	for _, p := range siPrefixes {
		if strings.HasSuffix(text, p.symbol) {
			exponent = p.exponent
			text = strings.TrimSuffix(text, p.symbol)
			break
		}
	}

	r, err := parseNumber(text)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %q", ErrInvalidQuantity, s)
	}
	r.Mul(r, pow10(exponent))
	return Value{rat: r, raw: s}, nil
}

func MustParse(s string) Value {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func FromFloat(f float64) (Value, error) {
	r := new(big.Rat)
	if r.SetFloat64(f) == nil {
		return Value{}, fmt.Errorf("%w: %g", ErrInvalidQuantity, f)
	}
	return Value{rat: r}, nil
}

func FromRat(r *big.Rat) Value {
	return Value{rat: new(big.Rat).Set(r)}
}

func FromInt(i int64) Value {
	return Value{rat: big.NewRat(i, 1)}
}

func (v Value) exact() *big.Rat {
	if v.rat == nil {
		return new(big.Rat)
	}
	return v.rat
}

// Rat returns a copy of the exact value.
func (v Value) Rat() *big.Rat {
	return new(big.Rat).Set(v.exact())
}

func (v Value) Float() float64 {
	f, _ := v.exact().Float64()
	return f
}

func (v Value) Raw() string {
	if v.raw == "" {
		return v.exact().RatString()
	}
	return v.raw
}

func (v Value) Cmp(o Value) int {
	return v.exact().Cmp(o.exact())
}

func (v Value) Equal(o Value) bool {
	return v.Cmp(o) == 0
}

func (v Value) Sign() int {
	return v.exact().Sign()
}

func (v Value) FormatDigits(significantDigits int) string {
	return Format(v.Float(), significantDigits)
}

func (v Value) String() string {
	return Format(v.Float(), 3)
}

// parseNumber parses decimal and scientific notation through decimal.Decimal,
// falling back to big.Rat for fractions and magnitudes beyond 19 digits.
func parseNumber(s string) (*big.Rat, error) {
	d, err := decimal.Parse(s)
	if err == nil {
		num := new(big.Int).SetUint64(d.Coef())
		if d.IsNeg() {
			num.Neg(num)
		}
		den := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(d.Scale())), nil)
		return new(big.Rat).SetFrac(num, den), nil
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, err
	}
	return r, nil
}

func pow10(exp int) *big.Rat {
	if exp >= 0 {
		return new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil))
	}
	d := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(-exp)), nil)
	return new(big.Rat).SetFrac(big.NewInt(1), d)
}
