package network

import (
	"fmt"
	"sort"
)

// Solution holds node voltages and element currents of a solved network.
type Solution struct {
	voltages map[string]float64
	currents map[string]float64
	across   map[string]float64
}

func newSolution(n *Network, x []float64) *Solution {
	s := &Solution{
		voltages: make(map[string]float64, len(n.nodeMap)),
		currents: make(map[string]float64, len(n.elements)),
		across:   make(map[string]float64, len(n.elements)),
	}
	for name, idx := range n.nodeMap {
		s.voltages[name] = x[idx]
	}

	for _, e := range n.elements {
		nodes := e.NodeNames()
		v := s.node(nodes[0]) - s.node(nodes[1])
		s.across[e.Name()] = v

		switch e := e.(type) {
		case *Resistor:
			// V = IR -> I = V/R
			s.currents[e.name] = v / e.value
		case *VoltageSource:
			// Branch unknown is the current into n+; report what the source delivers.
			s.currents[e.name] = -x[n.branchMap[e.name]]
		case *CurrentSource:
			s.currents[e.name] = e.value
		}
	}
	return s
}

func (s *Solution) node(name string) float64 {
	if isGround(name) {
		return 0
	}
	return s.voltages[name]
}

// Voltage returns V(node) against ground.
func (s *Solution) Voltage(node string) (float64, error) {
	if isGround(node) {
		return 0, nil
	}
	v, ok := s.voltages[node]
	if !ok {
		return 0, fmt.Errorf("%w: node %q", ErrUnknownName, node)
	}
	return v, nil
}

// Current returns the current through an element, n+ to n- for resistors and
// the delivered current for sources.
func (s *Solution) Current(element string) (float64, error) {
	i, ok := s.currents[element]
	if !ok {
		return 0, fmt.Errorf("%w: element %q", ErrUnknownName, element)
	}
	return i, nil
}

// VoltageAcross returns V(n+) - V(n-) of an element.
func (s *Solution) VoltageAcross(element string) (float64, error) {
	v, ok := s.across[element]
	if !ok {
		return 0, fmt.Errorf("%w: element %q", ErrUnknownName, element)
	}
	return v, nil
}

// Power is dissipated power for resistors and delivered power for sources.
func (s *Solution) Power(element string) (float64, error) {
	i, err := s.Current(element)
	if err != nil {
		return 0, err
	}
	return s.across[element] * i, nil
}

// Map flattens the solution into SPICE-style keys: V(node) and I(element).
func (s *Solution) Map() map[string]float64 {
	out := make(map[string]float64, len(s.voltages)+len(s.currents))
	for name, v := range s.voltages {
		out[fmt.Sprintf("V(%s)", name)] = v
	}
	for name, i := range s.currents {
		out[fmt.Sprintf("I(%s)", name)] = i
	}
	return out
}

func (s *Solution) Keys() []string {
	m := s.Map()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
