package calc

import (
	"errors"
	"fmt"

	"github.com/edp1096/toy-engineer/pkg/newton"
	"github.com/edp1096/toy-engineer/pkg/quantity"
	"github.com/edp1096/toy-engineer/pkg/report"
	"github.com/edp1096/toy-engineer/pkg/search"
	"github.com/edp1096/toy-engineer/pkg/thread"
	"github.com/edp1096/toy-engineer/pkg/valueset"
	"github.com/google/uuid"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNumericallyUnstable = errors.New("numerically unstable")
	ErrUnknownCalculator   = errors.New("unknown calculator")
)

// Catalog is where calculators get their value sets from.
type Catalog interface {
	valueset.Provider
	Values(name string) ([]quantity.Value, error)
}

type Param struct {
	Name     string
	Label    string
	Unit     string
	Default  string
	Optional bool
}

type Calculator interface {
	ID() uuid.UUID
	Slug() string
	Title() string
	Menu() []string
	Params() []Param
	Calculate(in Input) (*report.Table, error)
}

// Env carries what every calculator shares.
type Env struct {
	Catalog          Catalog
	Solver           *newton.Solver
	TopK             int
	Digits           int
	MaxParallelError float64
	DividerTolerance float64 // percent
	ResistorSet      string
	CapacitorSet     string
	Threads          *thread.DB
}

func DefaultEnv(catalog Catalog) *Env {
	return &Env{
		Catalog:          catalog,
		Solver:           newton.NewSolver(),
		TopK:             search.DefaultTopK,
		Digits:           3,
		MaxParallelError: 0.75,
		DividerTolerance: 35,
		ResistorSet:      "E12",
		CapacitorSet:     "E6",
		Threads:          thread.Builtin(),
	}
}

func (e *Env) format(v float64, unit string) string {
	return quantity.FormatUnit(v, e.Digits, unit)
}

func (e *Env) number(v float64, unit string) report.Cell {
	return report.Number(v, e.format(v, unit))
}

// set resolves a value set of the catalog.
func (e *Env) set(group, name string) (*valueset.Set, error) {
	if e.Catalog == nil {
		return nil, fmt.Errorf("%w: no value-set catalog", ErrInvalidInput)
	}
	s, err := e.Catalog.ValueSet(group, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s, nil
}

func (e *Env) resistors(in Input, param string) (*valueset.Set, error) {
	name := in.Get(param)
	if name == "" {
		name = e.ResistorSet
	}
	return e.set("r", name)
}

func (e *Env) capacitors(in Input, param string) (*valueset.Set, error) {
	name := in.Get(param)
	if name == "" {
		name = e.CapacitorSet
	}
	return e.set("c", name)
}

func percent(relErr float64) report.Cell {
	return report.Number(relErr, quantity.FormatPercent(relErr))
}

type info struct {
	id     uuid.UUID
	slug   string
	title  string
	menu   []string
	params []Param
}

func (i *info) ID() uuid.UUID   { return i.id }
func (i *info) Slug() string    { return i.slug }
func (i *info) Title() string   { return i.title }
func (i *info) Menu() []string  { return i.menu }
func (i *info) Params() []Param { return i.params }
