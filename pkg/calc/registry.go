package calc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/edp1096/toy-engineer/pkg/report"
	"github.com/google/uuid"
)

// Registry finds calculators by UUID or slug.
type Registry struct {
	byID   map[uuid.UUID]Calculator
	bySlug map[string]Calculator
	all    []Calculator
}

func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[uuid.UUID]Calculator),
		bySlug: make(map[string]Calculator),
	}
}

// Builtin registers every calculator of this package.
func Builtin(env *Env) *Registry {
	r := NewRegistry()
	for _, c := range []Calculator{
		NewOhmsLaw(env),
		NewParallelResistors(env),
		NewVoltageDivider(env),
		NewSeriesResistor(env),
		NewRCCircuit(env),
		NewMarkings(env),
		NewESeriesLookup(env),
		NewNE555(env),
		NewLM2596(env),
		NewMP2307(env),
		NewPLL(env),
		NewAVRUART(env),
		NewAVRTimer(env),
		NewDeunify(env),
		NewTraceWidth(env),
		NewThreadIdent(env),
		NewICIdent(env),
	} {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
	return r
}

func (r *Registry) Register(c Calculator) error {
	if _, exists := r.byID[c.ID()]; exists {
		return fmt.Errorf("calculator %s registered twice", c.ID())
	}
	if _, exists := r.bySlug[c.Slug()]; exists {
		return fmt.Errorf("calculator slug %q registered twice", c.Slug())
	}
	r.byID[c.ID()] = c
	r.bySlug[c.Slug()] = c
	r.all = append(r.all, c)
	return nil
}

// Lookup accepts either the UUID or the slug.
func (r *Registry) Lookup(key string) (Calculator, error) {
	if id, err := uuid.Parse(key); err == nil {
		if c, ok := r.byID[id]; ok {
			return c, nil
		}
	}
	if c, ok := r.bySlug[strings.ToLower(key)]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCalculator, key)
}

// List returns the calculators ordered by menu path.
func (r *Registry) List() []Calculator {
	out := append([]Calculator(nil), r.all...)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.Join(out[i].Menu(), "/") < strings.Join(out[j].Menu(), "/")
	})
	return out
}

// Run applies parameter defaults and calculates.
func Run(c Calculator, in Input) (*report.Table, error) {
	return c.Calculate(in.withDefaults(c.Params()))
}
