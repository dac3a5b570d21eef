package valueset

import (
	"iter"
	"math"
	"sort"

	"github.com/edp1096/toy-engineer/pkg/quantity"
)

// Set is an immutable, strictly increasing collection of catalog values.
type Set struct {
	name   string
	values []quantity.Value
	floats []float64
}

// NewSet sorts values and drops duplicates (by exact value).
func NewSet(name string, values []quantity.Value) *Set {
	sorted := append([]quantity.Value(nil), values...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Cmp(sorted[j]) < 0 })

	s := &Set{name: name}
	for _, v := range sorted {
		if n := len(s.values); n > 0 && s.values[n-1].Equal(v) {
			continue
		}
		s.values = append(s.values, v)
		s.floats = append(s.floats, v.Float())
	}
	return s
}

func (s *Set) Name() string { return s.name }

func (s *Set) Len() int { return len(s.values) }

func (s *Set) At(i int) quantity.Value { return s.values[i] }

// Values returns a copy of the members in ascending order.
func (s *Set) Values() []quantity.Value {
	return append([]quantity.Value(nil), s.values...)
}

func (s *Set) All() iter.Seq[quantity.Value] {
	return func(yield func(quantity.Value) bool) {
		for _, v := range s.values {
			if !yield(v) {
				return
			}
		}
	}
}

// bisect returns the number of members <= v.
func (s *Set) bisect(v float64) int {
	return sort.Search(len(s.floats), func(i int) bool { return s.floats[i] > v })
}

// FindClosest returns the largest member <= v and the smallest member > v.
// Either is nil when no such member exists. NaN has no neighbours.
func (s *Set) FindClosest(v float64) (smaller, larger *quantity.Value) {
	if math.IsNaN(v) {
		return nil, nil
	}
	idx := s.bisect(v) - 1
	if idx >= 0 {
		smaller = &s.values[idx]
	}
	if idx+1 < len(s.values) {
		larger = &s.values[idx+1]
	}
	return smaller, larger
}

// IterClosest yields the existing neighbours of v in ascending order.
func (s *Set) IterClosest(v float64) iter.Seq[quantity.Value] {
	return func(yield func(quantity.Value) bool) {
		smaller, larger := s.FindClosest(v)
		if smaller != nil && !yield(*smaller) {
			return
		}
		if larger != nil {
			yield(*larger)
		}
	}
}

// IterRange yields the members between the bisection indices of min and
// max. The lower index is that of the closest member <= min, so a member just
// below min is included when min itself is not a member.
func (s *Set) IterRange(min, max float64) iter.Seq[quantity.Value] {
	return func(yield func(quantity.Value) bool) {
		if math.IsNaN(min) || math.IsNaN(max) {
			return
		}
		lo := s.bisect(min) - 1
		if lo < 0 {
			lo = 0
		}
		hi := s.bisect(max)
		for i := lo; i < hi; i++ {
			if !yield(s.values[i]) {
				return
			}
		}
	}
}

// Union merges sets into a new one.
func Union(name string, sets ...*Set) *Set {
	var values []quantity.Value
	for _, s := range sets {
		values = append(values, s.values...)
	}
	return NewSet(name, values)
}
