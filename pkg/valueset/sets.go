package valueset

import (
	"fmt"
	"sort"
)

// Sets is a group of named value sets (e.g. all resistor catalogs).
type Sets struct {
	order []string
	sets  map[string]*Set
}

func newSets() *Sets {
	return &Sets{sets: make(map[string]*Set)}
}

// NewSets builds every definition. Union definitions may refer to sets
// defined later in the list; they are resolved pass by pass until nothing
// more can be resolved.
func NewSets(defs []Definition) (*Sets, error) {
	sets := newSets()
	declared := make(map[string]bool, len(defs))

	var unions []Definition
	for _, def := range defs {
		if err := def.validate(); err != nil {
			return nil, &DefinitionError{Set: def.Name, Err: err}
		}
		if declared[def.Name] {
			return nil, &DefinitionError{Set: def.Name, Err: ErrDuplicateEntry}
		}
		declared[def.Name] = true

		if def.Type == TypeUnion {
			unions = append(unions, def)
			continue
		}
		set, err := def.build()
		if err != nil {
			return nil, &DefinitionError{Set: def.Name, Err: err}
		}
		if err := sets.Add(set); err != nil {
			return nil, err
		}
	}

	for len(unions) > 0 {
		var pending []Definition
		for _, def := range unions {
			members, ok := sets.lookupAll(def.Groups)
			if !ok {
				pending = append(pending, def)
				continue
			}
			if err := sets.Add(Union(def.Name, members...)); err != nil {
				return nil, err
			}
		}
		if len(pending) == len(unions) {
			return nil, unresolvedError(pending, declared)
		}
		unions = pending
	}

	return sets, nil
}

func unresolvedError(pending []Definition, declared map[string]bool) error {
	for _, def := range pending {
		for _, g := range def.Groups {
			if !declared[g] {
				return &DefinitionError{Set: def.Name, Err: fmt.Errorf("%w: %q", ErrUnresolvedReference, g)}
			}
		}
	}
	def := pending[0]
	return &DefinitionError{Set: def.Name, Err: fmt.Errorf("%w: %v", ErrCyclicReference, def.Groups)}
}

func (s *Sets) lookupAll(names []string) ([]*Set, bool) {
	members := make([]*Set, 0, len(names))
	for _, name := range names {
		set, ok := s.sets[name]
		if !ok {
			return nil, false
		}
		members = append(members, set)
	}
	return members, true
}

func (s *Sets) Add(set *Set) error {
	if _, exists := s.sets[set.Name()]; exists {
		return &DefinitionError{Set: set.Name(), Err: ErrDuplicateEntry}
	}
	s.sets[set.Name()] = set
	s.order = append(s.order, set.Name())
	return nil
}

func (s *Sets) Get(name string) (*Set, error) {
	set, ok := s.sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSet, name)
	}
	return set, nil
}

// Names lists the sets in the order they were resolved.
func (s *Sets) Names() []string {
	return append([]string(nil), s.order...)
}

func (s *Sets) SortedNames() []string {
	names := s.Names()
	sort.Strings(names)
	return names
}

func (s *Sets) Len() int { return len(s.sets) }
