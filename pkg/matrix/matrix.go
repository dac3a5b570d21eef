package matrix

import (
	"errors"
	"fmt"
	"io"

	"github.com/edp1096/sparse"
)

var ErrIndexOutOfRange = errors.New("matrix: index out of range")

// Matrix is a real MNA system. Rows and columns are 1-based; index 0 is
// ground and never stored.
type Matrix struct {
	Size     int
	matrix   *sparse.Matrix
	rhs      []float64
	solution []float64
}

func New(size int) (*Matrix, error) {
	if size <= 0 {
		return nil, fmt.Errorf("matrix: invalid size %d", size)
	}

	config := &sparse.Configuration{
		Real:           true,
		Complex:        false,
		Expandable:     true,
		ModifiedNodal:  true,
		TiesMultiplier: 5,
		PrinterWidth:   140,
	}

	mat, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("creating sparse matrix: %w", err)
	}

	return &Matrix{
		Size:     size,
		matrix:   mat,
		rhs:      make([]float64, size+1), // 1-based indexing
		solution: make([]float64, size+1),
	}, nil
}

func (m *Matrix) inRange(i int) bool {
	return i > 0 && i <= m.Size
}

func (m *Matrix) AddElement(i, j int, value float64) error {
	if !m.inRange(i) || !m.inRange(j) {
		return fmt.Errorf("%w: (%d, %d) in %dx%d", ErrIndexOutOfRange, i, j, m.Size, m.Size)
	}
	m.matrix.GetElement(int64(i), int64(j)).Real += value
	return nil
}

func (m *Matrix) AddRHS(i int, value float64) error {
	if !m.inRange(i) {
		return fmt.Errorf("%w: rhs %d of %d", ErrIndexOutOfRange, i, m.Size)
	}
	m.rhs[i] += value
	return nil
}

// Element reads back a stamped coefficient.
func (m *Matrix) Element(i, j int) (float64, error) {
	if !m.inRange(i) || !m.inRange(j) {
		return 0, fmt.Errorf("%w: (%d, %d) in %dx%d", ErrIndexOutOfRange, i, j, m.Size, m.Size)
	}
	return m.matrix.GetElement(int64(i), int64(j)).Real, nil
}

// LoadGmin adds gmin to the diagonal of rows 1..rows (the node rows) so
// floating nodes do not make the system singular.
func (m *Matrix) LoadGmin(gmin float64, rows int) {
	rows = min(rows, m.Size)
	for i := 1; i <= rows; i++ {
		m.matrix.GetElement(int64(i), int64(i)).Real += gmin
	}
}

func (m *Matrix) Clear() {
	m.matrix.Clear()
	for i := range m.rhs {
		m.rhs[i] = 0
	}
}

func (m *Matrix) Solve() error {
	if err := m.matrix.Factor(); err != nil {
		return fmt.Errorf("matrix factorization failed: %w", err)
	}

	solution, err := m.matrix.Solve(m.rhs)
	if err != nil {
		return fmt.Errorf("matrix solve failed: %w", err)
	}
	m.solution = solution
	return nil
}

func (m *Matrix) RHS() []float64 {
	return m.rhs
}

// Solution is 1-based like the rows.
func (m *Matrix) Solution() []float64 {
	return m.solution
}

// PrintSystem writes the stamped equations, one row per line.
func (m *Matrix) PrintSystem(w io.Writer) {
	fmt.Fprintf(w, "Equations (%dx%d):\n", m.Size, m.Size)
	for i := 1; i <= m.Size; i++ {
		fmt.Fprintf(w, "%4d:", i)
		for j := 1; j <= m.Size; j++ {
			if v := m.matrix.GetElement(int64(i), int64(j)).Real; v != 0 {
				fmt.Fprintf(w, "  %+g*x%d", v, j)
			}
		}
		fmt.Fprintf(w, " = %g\n", m.rhs[i])
	}
}

func (m *Matrix) Destroy() {
	if m.matrix != nil {
		m.matrix.Destroy()
		m.matrix = nil
	}
}
