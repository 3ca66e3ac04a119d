package multiply

import (
	"fmt"
	"time"

	"github.com/agbru/matmulbench/internal/matrix"
)

// Strassen multiplies by recursive quadrant decomposition.
//
// Each level splits both operands into four quadrants, forms seven
// sub-products from sums and differences of those quadrants, and recombines
// them with eight further additions. A level counts 7 aggregate
// multiplication units; the n == 1 base case counts none. Every element-wise
// addition or subtraction counts one.
//
// For n = 2^k, k ≥ 1, the counts are 7^k multiplications and
// 6·(7^k − 4^k) additions.
type Strassen struct {
	// Pad, when set, accepts any positive order by embedding the operands in
	// zero matrices of the next power of two and cropping the product. The
	// reported counts are those of the padded computation.
	Pad bool
}

// Name returns the display name of the algorithm.
func (s *Strassen) Name() string {
	if s.Pad {
		return "Strassen (divide & conquer, O(n^2.81), zero-padded)"
	}
	return "Strassen (divide & conquer, O(n^2.81))"
}

// Multiply computes a·b. The order is taken from the operands and must be a
// power of two unless Pad is set.
func (s *Strassen) Multiply(a, b *matrix.Matrix) (Product, error) {
	n, err := matrix.ValidateOperands("strassen", a, b)
	if err != nil {
		return Product{}, err
	}
	if n < 1 {
		return Product{}, &matrix.DimensionError{Op: "strassen", Got: n, Reason: "order must be positive"}
	}
	padded := n
	if !matrix.IsPowerOfTwo(n) {
		if !s.Pad {
			return Product{}, &matrix.DimensionError{Op: "strassen", Got: n, Reason: "order must be a power of two"}
		}
		padded = matrix.NextPowerOfTwo(n)
		if a, err = matrix.Pad(a, padded); err != nil {
			return Product{}, fmt.Errorf("strassen: padding left operand: %w", err)
		}
		if b, err = matrix.Pad(b, padded); err != nil {
			return Product{}, fmt.Errorf("strassen: padding right operand: %w", err)
		}
	}

	var run strassenRun
	start := time.Now()
	c := run.mul(a, b)
	elapsed := time.Since(start)

	if padded != n {
		if c, err = matrix.Crop(c, n); err != nil {
			return Product{}, fmt.Errorf("strassen: cropping product: %w", err)
		}
	}
	return Product{
		Matrix: c,
		Stats: Stats{
			Additions:       run.additions,
			Multiplications: run.multiplications,
			Elapsed:         elapsed,
		},
	}, nil
}

func (s *Strassen) run(a, b *matrix.Matrix) (Product, error) {
	return s.Multiply(a, b)
}

// strassenRun carries the counters of one top-level call through the
// recursion. It lives on the caller's stack and is discarded afterwards.
type strassenRun struct {
	additions       uint64
	multiplications uint64
}

func (r *strassenRun) mul(a, b *matrix.Matrix) *matrix.Matrix {
	n := a.Order()
	if n == 1 {
		x, _ := a.At(0, 0)
		y, _ := b.At(0, 0)
		c, _ := matrix.FromRows([][]int64{{x * y}})
		return c
	}

	qa := matrix.SplitUnchecked(a)
	qb := matrix.SplitUnchecked(b)

	m1 := r.mul(r.add(qa.Q11, qa.Q22), r.add(qb.Q11, qb.Q22))
	m2 := r.mul(r.add(qa.Q21, qa.Q22), qb.Q11)
	m3 := r.mul(qa.Q11, r.sub(qb.Q12, qb.Q22))
	m4 := r.mul(qa.Q22, r.sub(qb.Q21, qb.Q11))
	m5 := r.mul(r.add(qa.Q11, qa.Q12), qb.Q22)
	m6 := r.mul(r.sub(qa.Q21, qa.Q11), r.add(qb.Q11, qb.Q12))
	m7 := r.mul(r.sub(qa.Q12, qa.Q22), r.add(qb.Q21, qb.Q22))
	r.multiplications += 7

	return matrix.JoinUnchecked(matrix.Quadrants{
		Q11: r.add(r.sub(r.add(m1, m4), m5), m7),
		Q12: r.add(m3, m5),
		Q21: r.add(m2, m4),
		Q22: r.add(r.sub(r.add(m1, m3), m2), m6),
	})
}

func (r *strassenRun) add(x, y *matrix.Matrix) *matrix.Matrix {
	r.count(x)
	return matrix.AddUnchecked(x, y)
}

func (r *strassenRun) sub(x, y *matrix.Matrix) *matrix.Matrix {
	r.count(x)
	return matrix.SubUnchecked(x, y)
}

// count charges one addition per element pair of an m×m operation.
func (r *strassenRun) count(x *matrix.Matrix) {
	m := uint64(x.Order())
	r.additions += m * m
}

// ExpectedStrassenCounts returns the additions and multiplications
// Strassen's algorithm reports for order n = 2^k. Order 1 is the bare base
// case and reports no multiplication unit.
func ExpectedStrassenCounts(n int) (additions, multiplications uint64) {
	if n <= 1 {
		return 0, 0
	}
	k := matrix.Log2(n)
	pow7, pow4 := uint64(1), uint64(1)
	for i := 0; i < k; i++ {
		pow7 *= 7
		pow4 *= 4
	}
	return 6 * (pow7 - pow4), pow7
}
