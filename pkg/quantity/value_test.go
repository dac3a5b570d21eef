package quantity

import (
	"errors"
	"math/big"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want *big.Rat
	}{
		{"1", big.NewRat(1, 1)},
		{"1k", big.NewRat(1000, 1)},
		{"4.7k", big.NewRat(4700, 1)},
		{"0.01M", big.NewRat(10000, 1)},
		{"10000", big.NewRat(10000, 1)},
		{"100n", big.NewRat(1, 10000000)},
		{"2.2µ", big.NewRat(22, 10000000)},
		{"2.2u", big.NewRat(22, 10000000)},
		{"33p", big.NewRat(33, 1000000000000)},
		{"-12.5m", big.NewRat(-125, 10000)},
		{"1e3", big.NewRat(1000, 1)},
		{"1/3", big.NewRat(1, 3)},
		{"3.3G ", big.NewRat(3300000000, 1)},
		{"123456789012345678901234", new(big.Rat).SetInt(mustInt("123456789012345678901234"))},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.in, err)
			}
			if v.Rat().Cmp(tt.want) != 0 {
				t.Errorf("Parse(%q) = %s, want %s", tt.in, v.Rat().RatString(), tt.want.RatString())
			}
			if v.Raw() != tt.in {
				t.Errorf("Raw() = %q, want %q", v.Raw(), tt.in)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "k", "1.2.3", "1x"} {
		if _, err := Parse(in); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidQuantity", in, err)
		}
	}
}

func TestValue_Compare(t *testing.T) {
	a := MustParse("1k")
	b := MustParse("1000")
	c := MustParse("0.01M")
	if !a.Equal(b) {
		t.Error("1k != 1000")
	}
	if a.Cmp(c) >= 0 {
		t.Error("1k >= 10k")
	}
	if a.Float() != 1000 {
		t.Errorf("Float() = %g", a.Float())
	}
}

func TestFromFloat(t *testing.T) {
	v, err := FromFloat(0.5)
	if err != nil {
		t.Fatal(err)
	}
	if v.Rat().Cmp(big.NewRat(1, 2)) != 0 {
		t.Errorf("FromFloat(0.5) = %s", v.Rat().RatString())
	}
	if v.Raw() != "1/2" {
		t.Errorf("Raw() = %q", v.Raw())
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		v    float64
		sig  int
		want string
	}{
		{0, 3, "0.00 "},
		{1, 3, "1.00 "},
		{4700, 3, "4.70 k"},
		{12346, 4, "12.35 k"},
		{0.0033, 3, "3.30 m"},
		{2.2e-6, 2, "2.2 µ"},
		{-150, 3, "-150 "},
		{470e6, 3, "470 M"},
		{1e-18, 3, "0.00100 f"},
		{3e20, 3, "300000 E"},
	}
	for _, tt := range tests {
		if got := Format(tt.v, tt.sig); got != tt.want {
			t.Errorf("Format(%g, %d) = %q, want %q", tt.v, tt.sig, got, tt.want)
		}
	}
}

func TestFormatUnit(t *testing.T) {
	if got := FormatUnit(4700, 3, "Ω"); got != "4.70 kΩ" {
		t.Errorf("FormatUnit = %q", got)
	}
	if got := FormatUnit(5, 3, "V"); got != "5.00 V" {
		t.Errorf("FormatUnit = %q", got)
	}
	if got := FormatPercent(-0.0123); got != "-1.2%" {
		t.Errorf("FormatPercent = %q", got)
	}
}

func mustInt(s string) *big.Int {
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic(s)
	}
	return i
}
