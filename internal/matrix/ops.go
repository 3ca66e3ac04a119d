package matrix

// ValidateOperands checks that a and b are non-nil square matrices of the
// same order and returns that order.
func ValidateOperands(op string, a, b *Matrix) (int, error) {
	if a == nil || b == nil {
		return 0, ErrNilMatrix
	}
	if a.order != b.order {
		return 0, dimensionErrorf(op, b.order, a.order, "operand orders differ")
	}
	return a.order, nil
}

// Add returns the element-wise sum a+b. Orders must match.
func Add(a, b *Matrix) (*Matrix, error) {
	if _, err := ValidateOperands("add", a, b); err != nil {
		return nil, err
	}
	return add(a, b), nil
}

// Sub returns the element-wise difference a-b. Orders must match.
func Sub(a, b *Matrix) (*Matrix, error) {
	if _, err := ValidateOperands("sub", a, b); err != nil {
		return nil, err
	}
	return sub(a, b), nil
}

func add(a, b *Matrix) *Matrix {
	c := newMatrix(a.order)
	for i := range c.data {
		c.data[i] = a.data[i] + b.data[i]
	}
	return c
}

func sub(a, b *Matrix) *Matrix {
	c := newMatrix(a.order)
	for i := range c.data {
		c.data[i] = a.data[i] - b.data[i]
	}
	return c
}

// AddUnchecked and SubUnchecked skip validation. They are used inside the
// recursive algorithms, where operand orders are equal by construction.
func AddUnchecked(a, b *Matrix) *Matrix { return add(a, b) }

// SubUnchecked is the unchecked counterpart of Sub.
func SubUnchecked(a, b *Matrix) *Matrix { return sub(a, b) }

// Quadrants holds the four equal sub-blocks of an even-order matrix.
type Quadrants struct {
	Q11, Q12, Q21, Q22 *Matrix
}

// Split copies the four quadrants of m. The order of m must be even and
// at least 2.
func Split(m *Matrix) (Quadrants, error) {
	if m == nil {
		return Quadrants{}, ErrNilMatrix
	}
	if m.order < 2 || m.order%2 != 0 {
		return Quadrants{}, dimensionErrorf("split", m.order, 0, "order must be even")
	}
	return split(m), nil
}

func split(m *Matrix) Quadrants {
	h := m.order / 2
	return Quadrants{
		Q11: block(m, 0, 0, h),
		Q12: block(m, 0, h, h),
		Q21: block(m, h, 0, h),
		Q22: block(m, h, h, h),
	}
}

// SplitUnchecked is Split without validation.
func SplitUnchecked(m *Matrix) Quadrants { return split(m) }

func block(m *Matrix, row0, col0, size int) *Matrix {
	b := newMatrix(size)
	for i := 0; i < size; i++ {
		src := (row0+i)*m.order + col0
		copy(b.data[i*size:(i+1)*size], m.data[src:src+size])
	}
	return b
}

// Join assembles a matrix of twice the quadrant order from four quadrants.
func Join(q Quadrants) (*Matrix, error) {
	if q.Q11 == nil || q.Q12 == nil || q.Q21 == nil || q.Q22 == nil {
		return nil, ErrNilMatrix
	}
	h := q.Q11.order
	for _, b := range []*Matrix{q.Q12, q.Q21, q.Q22} {
		if b.order != h {
			return nil, dimensionErrorf("join", b.order, h, "quadrant orders differ")
		}
	}
	return join(q), nil
}

// JoinUnchecked is Join without validation.
func JoinUnchecked(q Quadrants) *Matrix { return join(q) }

func join(q Quadrants) *Matrix {
	h := q.Q11.order
	m := newMatrix(2 * h)
	place(m, q.Q11, 0, 0)
	place(m, q.Q12, 0, h)
	place(m, q.Q21, h, 0)
	place(m, q.Q22, h, h)
	return m
}

func place(dst, src *Matrix, row0, col0 int) {
	n := src.order
	for i := 0; i < n; i++ {
		off := (row0+i)*dst.order + col0
		copy(dst.data[off:off+n], src.data[i*n:(i+1)*n])
	}
}

// Pad returns a copy of m embedded in the top-left corner of a zero matrix
// of the given order. It returns m itself when no padding is needed.
func Pad(m *Matrix, order int) (*Matrix, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	if order < m.order {
		return nil, dimensionErrorf("pad", order, m.order, "target order smaller than source")
	}
	if order == m.order {
		return m, nil
	}
	p := newMatrix(order)
	place(p, m, 0, 0)
	return p, nil
}

// Crop returns the top-left order×order block of m.
func Crop(m *Matrix, order int) (*Matrix, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	if order <= 0 || order > m.order {
		return nil, dimensionErrorf("crop", order, m.order, "target order out of range")
	}
	if order == m.order {
		return m, nil
	}
	return block(m, 0, 0, order), nil
}

// Mul computes the product of a and b as a plain reference. It does not
// count operations and is meant for tools and tests that need an oracle.
func Mul(a, b *Matrix) (*Matrix, error) {
	n, err := ValidateOperands("mul", a, b)
	if err != nil {
		return nil, err
	}
	c := newMatrix(n)
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			aik := a.at(i, k)
			for j := 0; j < n; j++ {
				c.data[i*n+j] += aik * b.at(k, j)
			}
		}
	}
	return c, nil
}
