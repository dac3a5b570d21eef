package search

import (
	"cmp"
	"iter"
	"math"
	"sort"

	"github.com/edp1096/toy-engineer/pkg/quantity"
	"github.com/edp1096/toy-engineer/pkg/valueset"
)

// DefaultTopK is how many options every calculator reports.
const DefaultTopK = 15

// RelativeError is (achieved - target) / target.
func RelativeError(achieved, target float64) float64 {
	return (achieved - target) / target
}

// Pairs walks the primary values and pairs each with the neighbours of its
// ideal complement in secondary. ideal reports false to skip a primary value.
func Pairs(primary iter.Seq[quantity.Value], ideal func(quantity.Value) (float64, bool), secondary *valueset.Set) iter.Seq2[quantity.Value, quantity.Value] {
	return func(yield func(quantity.Value, quantity.Value) bool) {
		for x := range primary {
			want, ok := ideal(x)
			if !ok {
				continue
			}
			for y := range secondary.IterClosest(want) {
				if !yield(x, y) {
					return
				}
			}
		}
	}
}

// Key orders options: smaller |Error| first, then smaller Tie. NaN sorts
// after every number.
type Key struct {
	Error float64
	Tie   float64
}

func (k Key) less(o Key) bool {
	if c := compare(math.Abs(k.Error), math.Abs(o.Error)); c != 0 {
		return c < 0
	}
	return compare(k.Tie, o.Tie) < 0
}

func compare(a, b float64) int {
	switch an, bn := math.IsNaN(a), math.IsNaN(b); {
	case an && bn:
		return 0
	case an:
		return 1
	case bn:
		return -1
	}
	return cmp.Compare(a, b)
}

// Rank sorts opts in place by key and keeps the first k. k <= 0 keeps all.
func Rank[T any](opts []T, key func(T) Key, k int) []T {
	keys := make([]Key, len(opts))
	for i, o := range opts {
		keys[i] = key(o)
	}
	sort.Stable(ranked[T]{opts: opts, keys: keys})
	if k > 0 && len(opts) > k {
		opts = opts[:k]
	}
	return opts
}

type ranked[T any] struct {
	opts []T
	keys []Key
}

func (r ranked[T]) Len() int           { return len(r.opts) }
func (r ranked[T]) Less(i, j int) bool { return r.keys[i].less(r.keys[j]) }
func (r ranked[T]) Swap(i, j int) {
	r.opts[i], r.opts[j] = r.opts[j], r.opts[i]
	r.keys[i], r.keys[j] = r.keys[j], r.keys[i]
}
