package network

import (
	"errors"
	"fmt"
	"io"

	"github.com/edp1096/toy-engineer/pkg/matrix"
)

var (
	ErrInvalidElement = errors.New("network: invalid element")
	ErrDuplicateName  = errors.New("network: duplicate element name")
	ErrUnknownName    = errors.New("network: unknown node or element")
)

// Gmin keeps floating nodes solvable.
const Gmin = 1e-12

// Network is a DC circuit of linear two-terminal elements. Node "0" and
// "gnd" are ground.
type Network struct {
	name      string
	nodeMap   map[string]int
	nodeOrder []string
	branchMap map[string]int
	elements  []Element
	byName    map[string]Element

	// Trace receives the stamped system before each solve when set.
	Trace io.Writer
}

func New(name string) *Network {
	return &Network{
		name:      name,
		nodeMap:   make(map[string]int),
		branchMap: make(map[string]int),
		byName:    make(map[string]Element),
	}
}

func (n *Network) Name() string { return n.name }

func isGround(node string) bool {
	return node == "0" || node == "gnd"
}

func (n *Network) add(e Element) error {
	if _, exists := n.byName[e.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateName, e.Name())
	}
	nodes := e.NodeNames()
	if nodes[0] == nodes[1] {
		return fmt.Errorf("%w: %s is shorted (%s-%s)", ErrInvalidElement, e.Name(), nodes[0], nodes[1])
	}
	for _, node := range nodes {
		if isGround(node) {
			continue
		}
		if _, exists := n.nodeMap[node]; !exists {
			n.nodeMap[node] = len(n.nodeMap) + 1
			n.nodeOrder = append(n.nodeOrder, node)
		}
	}
	n.elements = append(n.elements, e)
	n.byName[e.Name()] = e
	return nil
}

func (n *Network) AddResistor(name, n1, n2 string, ohms float64) error {
	if !(ohms > 0) {
		return fmt.Errorf("%w: resistor %s has resistance %g", ErrInvalidElement, name, ohms)
	}
	return n.add(&Resistor{baseElement{name: name, nodeNames: []string{n1, n2}, value: ohms}})
}

func (n *Network) AddVoltageSource(name, nPlus, nMinus string, volts float64) error {
	return n.add(&VoltageSource{baseElement: baseElement{name: name, nodeNames: []string{nPlus, nMinus}, value: volts}})
}

func (n *Network) AddCurrentSource(name, nPlus, nMinus string, amps float64) error {
	return n.add(&CurrentSource{baseElement{name: name, nodeNames: []string{nPlus, nMinus}, value: amps}})
}

func (n *Network) Elements() []Element {
	return append([]Element(nil), n.elements...)
}

// Nodes lists the non-ground nodes in the order they were first used.
func (n *Network) Nodes() []string {
	return append([]string(nil), n.nodeOrder...)
}

func (n *Network) assignIndices() {
	branch := len(n.nodeMap) + 1
	for _, e := range n.elements {
		nodes := e.NodeNames()
		e.setNodes(n.nodeIndex(nodes[0]), n.nodeIndex(nodes[1]))
		if v, ok := e.(*VoltageSource); ok {
			n.branchMap[v.name] = branch
			v.branchIdx = branch
			branch++
		}
	}
}

func (n *Network) nodeIndex(node string) int {
	if isGround(node) {
		return 0
	}
	return n.nodeMap[node]
}

// Solve stamps every element, factors the system and returns the operating
// point.
func (n *Network) Solve() (*Solution, error) {
	if len(n.nodeMap) == 0 {
		return nil, fmt.Errorf("%w: network %q has no nodes", ErrInvalidElement, n.name)
	}
	n.assignIndices()

	m, err := matrix.New(len(n.nodeMap) + len(n.branchMap))
	if err != nil {
		return nil, err
	}
	defer m.Destroy()

	for _, e := range n.elements {
		if err := e.Stamp(m); err != nil {
			return nil, fmt.Errorf("stamping %s: %w", e.Name(), err)
		}
	}
	m.LoadGmin(Gmin, len(n.nodeMap))
	if n.Trace != nil {
		m.PrintSystem(n.Trace)
	}

	if err := m.Solve(); err != nil {
		return nil, fmt.Errorf("network %q: %w", n.name, err)
	}
	return newSolution(n, m.Solution()), nil
}
