package network

import (
	"fmt"

	"github.com/edp1096/toy-engineer/pkg/matrix"
)

// Element is a two-terminal device that stamps itself into the MNA system.
type Element interface {
	Name() string
	Type() string
	NodeNames() []string
	Stamp(m matrix.DeviceMatrix) error
	setNodes(n1, n2 int)
}

type baseElement struct {
	name      string
	nodeNames []string
	nodes     [2]int
	value     float64
}

func (b *baseElement) Name() string        { return b.name }
func (b *baseElement) NodeNames() []string { return b.nodeNames }
func (b *baseElement) Value() float64      { return b.value }

func (b *baseElement) setNodes(n1, n2 int) {
	b.nodes = [2]int{n1, n2}
}

type Resistor struct {
	baseElement
}

func (r *Resistor) Type() string { return "R" }

func (r *Resistor) Stamp(m matrix.DeviceMatrix) error {
	n1, n2 := r.nodes[0], r.nodes[1]
	g := 1.0 / r.value // Conductance. G = 1/R

	if n1 != 0 {
		if err := m.AddElement(n1, n1, g); err != nil {
			return err
		}
		if n2 != 0 {
			if err := m.AddElement(n1, n2, -g); err != nil {
				return err
			}
		}
	}
	if n2 != 0 {
		if n1 != 0 {
			if err := m.AddElement(n2, n1, -g); err != nil {
				return err
			}
		}
		if err := m.AddElement(n2, n2, g); err != nil {
			return err
		}
	}
	return nil
}

// VoltageSource forces V(n+) - V(n-) = value and adds a branch current row.
type VoltageSource struct {
	baseElement
	branchIdx int
}

func (v *VoltageSource) Type() string { return "V" }

func (v *VoltageSource) Stamp(m matrix.DeviceMatrix) error {
	n1, n2 := v.nodes[0], v.nodes[1]
	b := v.branchIdx
	if b == 0 {
		return fmt.Errorf("voltage source %s: no branch assigned", v.name)
	}

	// v1 - v2 = V
	if n1 != 0 {
		if err := m.AddElement(b, n1, 1); err != nil {
			return err
		}
		if err := m.AddElement(n1, b, 1); err != nil {
			return err
		}
	}
	if n2 != 0 {
		if err := m.AddElement(b, n2, -1); err != nil {
			return err
		}
		if err := m.AddElement(n2, b, -1); err != nil {
			return err
		}
	}
	return m.AddRHS(b, v.value)
}

// CurrentSource pushes value amperes into n+ and draws it out of n-.
type CurrentSource struct {
	baseElement
}

func (i *CurrentSource) Type() string { return "I" }

func (i *CurrentSource) Stamp(m matrix.DeviceMatrix) error {
	n1, n2 := i.nodes[0], i.nodes[1]
	if n1 != 0 {
		if err := m.AddRHS(n1, i.value); err != nil {
			return err
		}
	}
	if n2 != 0 {
		if err := m.AddRHS(n2, -i.value); err != nil {
			return err
		}
	}
	return nil
}
