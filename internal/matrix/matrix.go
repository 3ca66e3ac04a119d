// Package matrix provides the square integer matrix used by the
// multiplication algorithms, together with the validation helpers, quadrant
// operations and random fill that surround them.
//
// A Matrix stores its elements in a flat row-major slice. Algorithms never
// mutate their operands; every operation that produces a matrix allocates a
// new one.
package matrix

import (
	"fmt"
	"math/bits"
)

// Matrix is a square matrix of int64 values with a fixed order.
type Matrix struct {
	order int
	data  []int64 // row-major, len == order*order
}

// New returns a zero-filled matrix of the given order.
// The order must be strictly positive.
func New(order int) (*Matrix, error) {
	if order <= 0 {
		return nil, dimensionErrorf("new", order, 0, "order must be positive")
	}
	return newMatrix(order), nil
}

// newMatrix allocates without validation; callers guarantee order > 0.
func newMatrix(order int) *Matrix {
	return &Matrix{order: order, data: make([]int64, order*order)}
}

// FromRows builds a matrix from a slice of equal-length rows.
// The rows are copied; the caller keeps ownership of the input.
func FromRows(rows [][]int64) (*Matrix, error) {
	n := len(rows)
	if n == 0 {
		return nil, dimensionErrorf("from rows", 0, 0, "no rows")
	}
	m := newMatrix(n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrRagged, i, len(row), n)
		}
		copy(m.data[i*n:(i+1)*n], row)
	}
	return m, nil
}

// MustFromRows is like FromRows but panics on error. Intended for tests and
// literal fixtures.
func MustFromRows(rows [][]int64) *Matrix {
	m, err := FromRows(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// Identity returns the identity matrix of the given order.
func Identity(order int) (*Matrix, error) {
	m, err := New(order)
	if err != nil {
		return nil, err
	}
	for i := 0; i < order; i++ {
		m.data[i*order+i] = 1
	}
	return m, nil
}

// Order returns the number of rows (equal to the number of columns).
func (m *Matrix) Order() int { return m.order }

// At returns the element at (row, col).
func (m *Matrix) At(row, col int) (int64, error) {
	if !m.inBounds(row, col) {
		return 0, fmt.Errorf("matrix.At(%d,%d): %w", row, col, ErrOutOfRange)
	}
	return m.data[row*m.order+col], nil
}

// Set assigns v to (row, col).
func (m *Matrix) Set(row, col int, v int64) error {
	if !m.inBounds(row, col) {
		return fmt.Errorf("matrix.Set(%d,%d): %w", row, col, ErrOutOfRange)
	}
	m.data[row*m.order+col] = v
	return nil
}

func (m *Matrix) inBounds(row, col int) bool {
	return row >= 0 && row < m.order && col >= 0 && col < m.order
}

// at is the unchecked accessor used on hot paths.
func (m *Matrix) at(row, col int) int64 { return m.data[row*m.order+col] }

// Rows returns a deep copy of the matrix as a slice of rows.
func (m *Matrix) Rows() [][]int64 {
	rows := make([][]int64, m.order)
	for i := range rows {
		rows[i] = make([]int64, m.order)
		copy(rows[i], m.data[i*m.order:(i+1)*m.order])
	}
	return rows
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []int64 {
	row := make([]int64, m.order)
	copy(row, m.data[i*m.order:(i+1)*m.order])
	return row
}

// Clone returns an independent copy of m.
func (m *Matrix) Clone() *Matrix {
	c := newMatrix(m.order)
	copy(c.data, m.data)
	return c
}

// Equal reports whether m and other have the same order and elements.
func (m *Matrix) Equal(other *Matrix) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.order != other.order {
		return false
	}
	for i, v := range m.data {
		if other.data[i] != v {
			return false
		}
	}
	return true
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPowerOfTwo returns the smallest power of two >= n (n >= 1).
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// Log2 returns k for n == 2^k. The result is meaningless for other n.
func Log2(n int) int {
	return bits.Len(uint(n)) - 1
}
