package valueset

import (
	"errors"
	"slices"
	"testing"

	"github.com/edp1096/toy-engineer/pkg/eseries"
	"github.com/edp1096/toy-engineer/pkg/quantity"
)

func items(ss ...string) []Item {
	out := make([]Item, len(ss))
	for i, s := range ss {
		out[i] = Item{quantity.MustParse(s)}
	}
	return out
}

func item(s string) *Item {
	return &Item{quantity.MustParse(s)}
}

func TestNewSets_Explicit(t *testing.T) {
	sets, err := NewSets([]Definition{
		{Name: "foobar", Type: TypeExplicit, Items: items("1k", "5", "1", "10k", "10000", "5", "0.01M")},
	})
	if err != nil {
		t.Fatal(err)
	}
	vs, err := sets.Get("foobar")
	if err != nil {
		t.Fatal(err)
	}
	if got := floats(vs.All()); !slices.Equal(got, []float64{1, 5, 1e3, 10e3}) {
		t.Errorf("values = %v", got)
	}
}

func TestNewSets_ESeries(t *testing.T) {
	sets, err := NewSets([]Definition{
		{Name: "foobar", Type: TypeESeries, Series: 6, Min: item("10"), Max: item("1k")},
	})
	if err != nil {
		t.Fatal(err)
	}
	vs, _ := sets.Get("foobar")
	want := []float64{10, 15, 22, 33, 47, 68, 100, 150, 220, 330, 470, 680, 1000}
	if got := floats(vs.All()); !slices.Equal(got, want) {
		t.Errorf("values = %v, want %v", got, want)
	}
}

func TestNewSets_Union(t *testing.T) {
	defs := []Definition{
		{Name: "foo", Type: TypeExplicit, Items: items("1k", "5", "1", "10k", "10000", "5", "0.01M")},
		{Name: "bar", Type: TypeExplicit, Items: items("3", "33", "5", "1", "9")},
		{Name: "foobar", Type: TypeUnion, Groups: []string{"foo", "bar"}},
	}
	sets, err := NewSets(defs)
	if err != nil {
		t.Fatal(err)
	}
	vs, _ := sets.Get("foobar")
	if got := floats(vs.All()); !slices.Equal(got, []float64{1, 3, 5, 9, 33, 1e3, 10e3}) {
		t.Errorf("values = %v", got)
	}
}

func TestNewSets_UnionForwardReferences(t *testing.T) {
	defs := []Definition{
		{Name: "all", Type: TypeUnion, Groups: []string{"small", "big"}},
		{Name: "small", Type: TypeUnion, Groups: []string{"one", "two"}},
		{Name: "one", Type: TypeExplicit, Items: items("1")},
		{Name: "two", Type: TypeExplicit, Items: items("2")},
		{Name: "big", Type: TypeExplicit, Items: items("1M")},
	}
	sets, err := NewSets(defs)
	if err != nil {
		t.Fatal(err)
	}
	vs, _ := sets.Get("all")
	if got := floats(vs.All()); !slices.Equal(got, []float64{1, 2, 1e6}) {
		t.Errorf("values = %v", got)
	}
	if sets.Len() != 5 {
		t.Errorf("Len() = %d", sets.Len())
	}
}

func TestNewSets_Errors(t *testing.T) {
	tests := []struct {
		name string
		defs []Definition
		want error
	}{
		{"missing name", []Definition{{Type: TypeExplicit, Items: items("1")}}, ErrDataMissing},
		{"missing type", []Definition{{Name: "a", Items: items("1")}}, ErrDataMissing},
		{"missing items", []Definition{{Name: "a", Type: TypeExplicit}}, ErrDataMissing},
		{"missing series", []Definition{{Name: "a", Type: TypeESeries, Min: item("1"), Max: item("10")}}, ErrDataMissing},
		{"missing min", []Definition{{Name: "a", Type: TypeESeries, Series: 6, Max: item("10")}}, ErrDataMissing},
		{"missing max", []Definition{{Name: "a", Type: TypeESeries, Series: 6, Min: item("1")}}, ErrDataMissing},
		{"missing groups", []Definition{{Name: "a", Type: TypeUnion}}, ErrDataMissing},
		{"bad type", []Definition{{Name: "a", Type: "random"}}, ErrInvalidData},
		{"unknown series", []Definition{{Name: "a", Type: TypeESeries, Series: 7, Min: item("1"), Max: item("10")}}, eseries.ErrUnknownSeries},
		{"non-positive min", []Definition{{Name: "a", Type: TypeESeries, Series: 6, Min: item("0"), Max: item("10")}}, ErrInvalidData},
		{"duplicate", []Definition{
			{Name: "a", Type: TypeExplicit, Items: items("1")},
			{Name: "a", Type: TypeExplicit, Items: items("2")},
		}, ErrDuplicateEntry},
		{"unresolved", []Definition{
			{Name: "a", Type: TypeUnion, Groups: []string{"nope"}},
		}, ErrUnresolvedReference},
		{"cycle", []Definition{
			{Name: "a", Type: TypeUnion, Groups: []string{"b"}},
			{Name: "b", Type: TypeUnion, Groups: []string{"a"}},
		}, ErrCyclicReference},
		{"self reference", []Definition{
			{Name: "a", Type: TypeUnion, Groups: []string{"a"}},
		}, ErrCyclicReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSets(tt.defs)
			if !errors.Is(err, tt.want) {
				t.Fatalf("NewSets() error = %v, want %v", err, tt.want)
			}
			var defErr *DefinitionError
			if !errors.As(err, &defErr) {
				t.Errorf("error %T is not a *DefinitionError", err)
			}
		})
	}
}

func TestSets_GetUnknown(t *testing.T) {
	sets, err := NewSets(nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sets.Get("E12"); !errors.Is(err, ErrUnknownSet) {
		t.Errorf("Get() error = %v", err)
	}
}
