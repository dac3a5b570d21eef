package eseries

import (
	"errors"
	"fmt"
	"iter"
	"math/big"
	"sort"
)

var (
	ErrUnknownSeries = errors.New("eseries: not a known standard series")
	ErrInvalidValue  = errors.New("eseries: value must be positive")
	ErrBadMantissa   = errors.New("eseries: mantissa must be in [100, 999]")
)

var (
	ratOne = big.NewRat(1, 1)
	ratTen = big.NewRat(10, 1)
)

// Match is a series member together with its relative error against the
// value it was looked up for.
type Match struct {
	Value *big.Rat
	Error *big.Rat
}

func (m Match) Float() float64 {
	f, _ := m.Value.Float64()
	return f
}

func (m Match) ErrorFloat() float64 {
	f, _ := m.Error.Float64()
	return f
}

type Matches struct {
	Smaller Match
	Larger  Match
}

// Decomposed is a positive value split into a mantissa in [1, 10) and a
// decade exponent.
type Decomposed struct {
	Mantissa *big.Rat
	Exponent int
}

func (d Decomposed) Value() *big.Rat {
	return new(big.Rat).Mul(d.Mantissa, pow10(d.Exponent))
}

// Series is one decade of preferred numbers, repeated over all decades.
type Series struct {
	key    int
	values []*big.Rat // mantissas in [1, 10), ascending
}

// New builds a series from three digit mantissas (100..999).
func New(mantissas []int) (*Series, error) {
	if len(mantissas) == 0 {
		return nil, fmt.Errorf("%w: empty series", ErrBadMantissa)
	}
	sorted := append([]int(nil), mantissas...)
	sort.Ints(sorted)

	s := &Series{key: len(sorted), values: make([]*big.Rat, 0, len(sorted))}
	for i, m := range sorted {
		if m < 100 || m > 999 {
			return nil, fmt.Errorf("%w: %d", ErrBadMantissa, m)
		}
		if i > 0 && sorted[i-1] == m {
			return nil, fmt.Errorf("%w: duplicate %d", ErrBadMantissa, m)
		}
		s.values = append(s.values, big.NewRat(int64(m), 100))
	}
	return s, nil
}

// Standard returns the IEC 60063 series E<key>.
func Standard(key int) (*Series, error) {
	mantissas, ok := standardSeries[key]
	if !ok {
		return nil, fmt.Errorf("%w: E%d", ErrUnknownSeries, key)
	}
	s, err := New(mantissas)
	if err != nil {
		return nil, err
	}
	s.key = key
	return s, nil
}

func (s *Series) Key() int { return s.key }

func (s *Series) Len() int { return len(s.values) }

func (s *Series) Name() string { return fmt.Sprintf("E%d", s.key) }

// Mantissas returns a copy of the decade table scaled to [1, 10).
func (s *Series) Mantissas() []*big.Rat {
	out := make([]*big.Rat, len(s.values))
	for i, v := range s.values {
		out[i] = new(big.Rat).Set(v)
	}
	return out
}

// Decompose splits v into mantissa and exponent without any loss of
// precision.
func Decompose(v *big.Rat) (Decomposed, error) {
	if v == nil || v.Sign() <= 0 {
		return Decomposed{}, ErrInvalidValue
	}
	base := new(big.Rat).Set(v)
	exponent := 0

	// Coarse step from the bit lengths keeps the loops short at extreme magnitudes.
	if est := decadeEstimate(base); est > 1 || est < -1 {
		base.Mul(base, pow10(-est))
		exponent += est
	}
	for base.Cmp(ratOne) < 0 {
		base.Mul(base, ratTen)
		exponent--
	}
	for base.Cmp(ratTen) >= 0 {
		base.Quo(base, ratTen)
		exponent++
	}
	return Decomposed{Mantissa: base, Exponent: exponent}, nil
}

func (s *Series) findIndex(v *big.Rat) (int, error) {
	d, err := Decompose(v)
	if err != nil {
		return 0, err
	}
	// rel is -1 when the mantissa sorts before the first table entry;
	// valueAt maps that onto the previous decade.
	rel := sort.Search(len(s.values), func(i int) bool {
		return s.values[i].Cmp(d.Mantissa) > 0
	}) - 1
	return d.Exponent*len(s.values) + rel, nil
}

func (s *Series) valueAt(abs int) *big.Rat {
	n := len(s.values)
	exponent, rel := abs/n, abs%n
	if rel < 0 {
		rel += n
		exponent--
	}
	return new(big.Rat).Mul(s.values[rel], pow10(exponent))
}

func (s *Series) matchAt(abs int, ideal *big.Rat) Match {
	found := s.valueAt(abs)
	e := new(big.Rat).Sub(found, ideal)
	e.Quo(e, ideal)
	return Match{Value: found, Error: e}
}

// SmallerLarger returns the member <= v and the next larger member.
func (s *Series) SmallerLarger(v *big.Rat) (Matches, error) {
	idx, err := s.findIndex(v)
	if err != nil {
		return Matches{}, err
	}
	return Matches{
		Smaller: s.matchAt(idx, v),
		Larger:  s.matchAt(idx+1, v),
	}, nil
}

// Closest returns whichever bracketing member has the smaller absolute
// relative error. On a tie the larger member wins.
func (s *Series) Closest(v *big.Rat) (Match, error) {
	m, err := s.SmallerLarger(v)
	if err != nil {
		return Match{}, err
	}
	smallerErr := new(big.Rat).Abs(m.Smaller.Error)
	largerErr := new(big.Rat).Abs(m.Larger.Error)
	if smallerErr.Cmp(largerErr) < 0 {
		return m.Smaller, nil
	}
	return m.Larger, nil
}

func (s *Series) ClosestFloat(v float64) (Match, error) {
	r, err := ratFromFloat(v)
	if err != nil {
		return Match{}, err
	}
	return s.Closest(r)
}

func (s *Series) SmallerLargerFloat(v float64) (Matches, error) {
	r, err := ratFromFloat(v)
	if err != nil {
		return Matches{}, err
	}
	return s.SmallerLarger(r)
}

// FromTo enumerates every member in [min, max) or, with inclusive set,
// [min, max]. The sequence can be ranged over any number of times.
func (s *Series) FromTo(min, max *big.Rat, inclusive bool) (iter.Seq[*big.Rat], error) {
	minIdx, err := s.findIndex(min)
	if err != nil {
		return nil, err
	}
	maxIdx, err := s.findIndex(max)
	if err != nil {
		return nil, err
	}
	lo, hi := new(big.Rat).Set(min), new(big.Rat).Set(max)

	return func(yield func(*big.Rat) bool) {
		for abs := minIdx; abs <= maxIdx+1; abs++ {
			v := s.valueAt(abs)
			if v.Cmp(lo) < 0 {
				continue
			}
			c := v.Cmp(hi)
			if c > 0 || (c == 0 && !inclusive) {
				return
			}
			if !yield(v) {
				return
			}
		}
	}, nil
}

// Values collects FromTo into a slice.
func (s *Series) Values(min, max *big.Rat, inclusive bool) ([]*big.Rat, error) {
	seq, err := s.FromTo(min, max, inclusive)
	if err != nil {
		return nil, err
	}
	var out []*big.Rat
	for v := range seq {
		out = append(out, v)
	}
	return out, nil
}

func pow10(exp int) *big.Rat {
	if exp >= 0 {
		return new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil))
	}
	d := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(-exp)), nil)
	return new(big.Rat).SetFrac(big.NewInt(1), d)
}

// decadeEstimate guesses floor(log10(v)) to within one decade.
func decadeEstimate(v *big.Rat) int {
	bits := v.Num().BitLen() - v.Denom().BitLen()
	// log10(2) ~= 0.30103
	return bits * 30103 / 100000
}

func ratFromFloat(v float64) (*big.Rat, error) {
	r := new(big.Rat)
	if v <= 0 || r.SetFloat64(v) == nil {
		return nil, ErrInvalidValue
	}
	return r, nil
}
