package multiply

import (
	"time"

	"github.com/agbru/matmulbench/internal/matrix"
)

// Naive multiplies with the textbook triple loop.
//
// Every step of the inner loop performs one multiplication and one addition
// into the running sum, so for order n both counters end at n³.
type Naive struct{}

// Name returns the display name of the algorithm.
func (n *Naive) Name() string {
	return "Naive (triple loop, O(n³))"
}

// Multiply computes a·b. Both operands must have the given order.
func (n *Naive) Multiply(a, b *matrix.Matrix, order int) (Product, error) {
	if order < 1 {
		return Product{}, &matrix.DimensionError{Op: "naive", Got: order, Reason: "order must be positive"}
	}
	got, err := matrix.ValidateOperands("naive", a, b)
	if err != nil {
		return Product{}, err
	}
	if got != order {
		return Product{}, &matrix.DimensionError{Op: "naive", Got: order, Want: got, Reason: "order argument does not match operands"}
	}

	x, y := a.Rows(), b.Rows()
	out := make([][]int64, order)
	for i := range out {
		out[i] = make([]int64, order)
	}

	var stats Stats
	start := time.Now()
	var sum int64
	for i := 0; i < order; i++ {
		for j := 0; j < order; j++ {
			for k := 0; k < order; k++ {
				sum += x[i][k] * y[k][j]
				stats.Additions++
				stats.Multiplications++
			}
			out[i][j] = sum
			sum = 0
		}
	}
	stats.Elapsed = time.Since(start)

	result, err := matrix.FromRows(out)
	if err != nil {
		return Product{}, err
	}
	return Product{Matrix: result, Stats: stats}, nil
}

func (n *Naive) run(a, b *matrix.Matrix) (Product, error) {
	if a == nil {
		return Product{}, matrix.ErrNilMatrix
	}
	return n.Multiply(a, b, a.Order())
}
