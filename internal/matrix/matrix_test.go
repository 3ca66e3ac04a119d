package matrix_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/agbru/matmulbench/internal/matrix"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsNonPositiveOrder(t *testing.T) {
	for _, n := range []int{0, -1, -64} {
		_, err := matrix.New(n)
		require.ErrorIs(t, err, matrix.ErrInvalidDimension)
		var de *matrix.DimensionError
		require.True(t, errors.As(err, &de))
		require.Equal(t, n, de.Got)
	}
}

func TestFromRows(t *testing.T) {
	m, err := matrix.FromRows([][]int64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	require.Equal(t, 2, m.Order())
	v, err := m.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, int64(3), v)

	_, err = matrix.FromRows([][]int64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrRagged)

	_, err = matrix.FromRows(nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimension)
}

func TestFromRows_CopiesInput(t *testing.T) {
	rows := [][]int64{{1, 2}, {3, 4}}
	m := matrix.MustFromRows(rows)
	rows[0][0] = 99
	v, _ := m.At(0, 0)
	require.Equal(t, int64(1), v)

	out := m.Rows()
	out[1][1] = -5
	v, _ = m.At(1, 1)
	require.Equal(t, int64(4), v)
}

func TestAtSet_Bounds(t *testing.T) {
	m, err := matrix.New(3)
	require.NoError(t, err)
	require.NoError(t, m.Set(2, 2, 7))
	v, err := m.At(2, 2)
	require.NoError(t, err)
	require.Equal(t, int64(7), v)

	_, err = m.At(3, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)
}

func TestIdentity(t *testing.T) {
	id, err := matrix.Identity(3)
	require.NoError(t, err)
	require.Equal(t, [][]int64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, id.Rows())
}

func TestEqualAndClone(t *testing.T) {
	a := matrix.MustFromRows([][]int64{{1, 2}, {3, 4}})
	b := a.Clone()
	require.True(t, a.Equal(b))
	require.NoError(t, b.Set(0, 1, 0))
	require.False(t, a.Equal(b))
	require.False(t, a.Equal(matrix.MustFromRows([][]int64{{1}})))
	require.False(t, a.Equal(nil))
}

func TestAddSub(t *testing.T) {
	a := matrix.MustFromRows([][]int64{{1, 2}, {3, 4}})
	b := matrix.MustFromRows([][]int64{{5, 6}, {7, 8}})

	sum, err := matrix.Add(a, b)
	require.NoError(t, err)
	require.Equal(t, [][]int64{{6, 8}, {10, 12}}, sum.Rows())

	diff, err := matrix.Sub(a, b)
	require.NoError(t, err)
	require.Equal(t, [][]int64{{-4, -4}, {-4, -4}}, diff.Rows())

	_, err = matrix.Add(a, matrix.MustFromRows([][]int64{{1}}))
	require.ErrorIs(t, err, matrix.ErrInvalidDimension)
	_, err = matrix.Sub(nil, a)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestSplitJoin_RoundTrip(t *testing.T) {
	m := matrix.MustFromRows([][]int64{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	})
	q, err := matrix.Split(m)
	require.NoError(t, err)
	require.Equal(t, [][]int64{{1, 2}, {5, 6}}, q.Q11.Rows())
	require.Equal(t, [][]int64{{3, 4}, {7, 8}}, q.Q12.Rows())
	require.Equal(t, [][]int64{{9, 10}, {13, 14}}, q.Q21.Rows())
	require.Equal(t, [][]int64{{11, 12}, {15, 16}}, q.Q22.Rows())

	joined, err := matrix.Join(q)
	require.NoError(t, err)
	require.True(t, joined.Equal(m))
}

func TestSplit_RejectsOddOrder(t *testing.T) {
	_, err := matrix.Split(matrix.MustFromRows([][]int64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}))
	require.ErrorIs(t, err, matrix.ErrInvalidDimension)
	_, err = matrix.Split(matrix.MustFromRows([][]int64{{1}}))
	require.ErrorIs(t, err, matrix.ErrInvalidDimension)
}

func TestJoin_RejectsMixedQuadrants(t *testing.T) {
	one := matrix.MustFromRows([][]int64{{1}})
	two := matrix.MustFromRows([][]int64{{1, 2}, {3, 4}})
	_, err := matrix.Join(matrix.Quadrants{Q11: one, Q12: one, Q21: two, Q22: one})
	require.ErrorIs(t, err, matrix.ErrInvalidDimension)
	_, err = matrix.Join(matrix.Quadrants{Q11: one})
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestPadCrop(t *testing.T) {
	m := matrix.MustFromRows([][]int64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	p, err := matrix.Pad(m, 4)
	require.NoError(t, err)
	require.Equal(t, [][]int64{
		{1, 2, 3, 0},
		{4, 5, 6, 0},
		{7, 8, 9, 0},
		{0, 0, 0, 0},
	}, p.Rows())

	c, err := matrix.Crop(p, 3)
	require.NoError(t, err)
	require.True(t, c.Equal(m))

	same, err := matrix.Pad(m, 3)
	require.NoError(t, err)
	require.Same(t, m, same)

	_, err = matrix.Pad(m, 2)
	require.ErrorIs(t, err, matrix.ErrInvalidDimension)
	_, err = matrix.Crop(m, 5)
	require.ErrorIs(t, err, matrix.ErrInvalidDimension)
}

func TestMul(t *testing.T) {
	a := matrix.MustFromRows([][]int64{{1, 2}, {3, 4}})
	b := matrix.MustFromRows([][]int64{{5, 6}, {7, 8}})
	c, err := matrix.Mul(a, b)
	require.NoError(t, err)
	require.Equal(t, [][]int64{{19, 22}, {43, 50}}, c.Rows())
}

func TestPowerOfTwoHelpers(t *testing.T) {
	cases := []struct {
		n    int
		pow2 bool
		next int
	}{
		{1, true, 1},
		{2, true, 2},
		{3, false, 4},
		{5, false, 8},
		{8, true, 8},
		{100, false, 128},
	}
	for _, tc := range cases {
		require.Equal(t, tc.pow2, matrix.IsPowerOfTwo(tc.n), "n=%d", tc.n)
		require.Equal(t, tc.next, matrix.NextPowerOfTwo(tc.n), "n=%d", tc.n)
	}
	require.False(t, matrix.IsPowerOfTwo(0))
	require.Equal(t, 0, matrix.Log2(1))
	require.Equal(t, 6, matrix.Log2(64))
}

func TestFprint(t *testing.T) {
	m := matrix.MustFromRows([][]int64{{1, 22}, {333, 4}})
	var sb strings.Builder
	require.NoError(t, matrix.Fprint(&sb, m, 5, "\n"))
	require.Equal(t, "    1   22\n  333    4\n", sb.String())
	require.Equal(t, "   1  22\n 333   4\n", m.String())
}
