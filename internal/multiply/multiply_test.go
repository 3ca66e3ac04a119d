package multiply

import (
	"errors"
	"fmt"
	"testing"

	"github.com/agbru/matmulbench/internal/matrix"
)

func mustRows(t *testing.T, rows [][]int64) *matrix.Matrix {
	t.Helper()
	m, err := matrix.FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	return m
}

func randomPair(t *testing.T, order int, seed uint64) (*matrix.Matrix, *matrix.Matrix) {
	t.Helper()
	g, err := matrix.NewGenerator(-10, 10, seed)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	a, b, err := g.Pair(order)
	if err != nil {
		t.Fatalf("Pair: %v", err)
	}
	return a, b
}

func TestTwoByTwoScenario(t *testing.T) {
	t.Parallel()
	a := mustRows(t, [][]int64{{1, 2}, {3, 4}})
	b := mustRows(t, [][]int64{{5, 6}, {7, 8}})
	want := mustRows(t, [][]int64{{19, 22}, {43, 50}})

	naive, err := (&Naive{}).Multiply(a, b, 2)
	if err != nil {
		t.Fatalf("naive: %v", err)
	}
	if !naive.Matrix.Equal(want) {
		t.Errorf("naive product = %v, want %v", naive.Matrix.Rows(), want.Rows())
	}
	if naive.Stats.Additions != 8 || naive.Stats.Multiplications != 8 {
		t.Errorf("naive counts = %d/%d, want 8/8", naive.Stats.Additions, naive.Stats.Multiplications)
	}

	strassen, err := (&Strassen{}).Multiply(a, b)
	if err != nil {
		t.Fatalf("strassen: %v", err)
	}
	if !strassen.Matrix.Equal(want) {
		t.Errorf("strassen product = %v, want %v", strassen.Matrix.Rows(), want.Rows())
	}
	if strassen.Stats.Multiplications != 7 {
		t.Errorf("strassen multiplications = %d, want 7", strassen.Stats.Multiplications)
	}
	if strassen.Stats.Additions != 18 {
		t.Errorf("strassen additions = %d, want 18", strassen.Stats.Additions)
	}
}

func TestOrderOneScenario(t *testing.T) {
	t.Parallel()
	a := mustRows(t, [][]int64{{3}})
	b := mustRows(t, [][]int64{{4}})

	naive, err := (&Naive{}).Multiply(a, b, 1)
	if err != nil {
		t.Fatalf("naive: %v", err)
	}
	if v, _ := naive.Matrix.At(0, 0); v != 12 {
		t.Errorf("naive product = %d, want 12", v)
	}
	if naive.Stats.Additions != 1 || naive.Stats.Multiplications != 1 {
		t.Errorf("naive counts = %d/%d, want 1/1", naive.Stats.Additions, naive.Stats.Multiplications)
	}

	strassen, err := (&Strassen{}).Multiply(a, b)
	if err != nil {
		t.Fatalf("strassen: %v", err)
	}
	if v, _ := strassen.Matrix.At(0, 0); v != 12 {
		t.Errorf("strassen product = %d, want 12", v)
	}
	if strassen.Stats.Multiplications != 0 || strassen.Stats.Additions != 0 {
		t.Errorf("strassen counts = %d/%d, want 0/0", strassen.Stats.Additions, strassen.Stats.Multiplications)
	}
}

func TestNaiveCountsAreCubic(t *testing.T) {
	t.Parallel()
	for _, n := range []int{1, 2, 3, 5, 7, 8, 13} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			t.Parallel()
			a, b := randomPair(t, n, uint64(n))
			p, err := (&Naive{}).Multiply(a, b, n)
			if err != nil {
				t.Fatalf("naive: %v", err)
			}
			want := Cube(n)
			if p.Stats.Additions != want || p.Stats.Multiplications != want {
				t.Errorf("counts = %d/%d, want %d", p.Stats.Additions, p.Stats.Multiplications, want)
			}
		})
	}
}

func TestStrassenCounts(t *testing.T) {
	t.Parallel()
	cases := []struct {
		n         int
		additions uint64
		mults     uint64
	}{
		{1, 0, 0},
		{2, 18, 7},
		{4, 198, 49},
		{8, 1674, 343},
		{16, 12870, 2401},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("n=%d", tc.n), func(t *testing.T) {
			t.Parallel()
			a, b := randomPair(t, tc.n, 99)
			p, err := (&Strassen{}).Multiply(a, b)
			if err != nil {
				t.Fatalf("strassen: %v", err)
			}
			if p.Stats.Multiplications != tc.mults {
				t.Errorf("multiplications = %d, want %d", p.Stats.Multiplications, tc.mults)
			}
			if p.Stats.Additions != tc.additions {
				t.Errorf("additions = %d, want %d", p.Stats.Additions, tc.additions)
			}
			wantAdds, wantMults := ExpectedStrassenCounts(tc.n)
			if wantAdds != tc.additions || wantMults != tc.mults {
				t.Errorf("ExpectedStrassenCounts(%d) = %d/%d", tc.n, wantAdds, wantMults)
			}
		})
	}
}

func TestProductsAgree(t *testing.T) {
	t.Parallel()
	for _, n := range []int{1, 2, 4, 8, 16, 32} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			t.Parallel()
			a, b := randomPair(t, n, uint64(1000+n))
			naive, err := (&Naive{}).Multiply(a, b, n)
			if err != nil {
				t.Fatalf("naive: %v", err)
			}
			strassen, err := (&Strassen{}).Multiply(a, b)
			if err != nil {
				t.Fatalf("strassen: %v", err)
			}
			if !naive.Matrix.Equal(strassen.Matrix) {
				t.Errorf("products differ for n=%d", n)
			}
		})
	}
}

func TestIdentityLeavesOperandUnchanged(t *testing.T) {
	t.Parallel()
	a, _ := randomPair(t, 8, 5)
	id, err := matrix.Identity(8)
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct {
		name string
		run  func(x, y *matrix.Matrix) (Product, error)
	}{
		{"naive", func(x, y *matrix.Matrix) (Product, error) { return (&Naive{}).Multiply(x, y, 8) }},
		{"strassen", func(x, y *matrix.Matrix) (Product, error) { return (&Strassen{}).Multiply(x, y) }},
	} {
		right, err := tc.run(a, id)
		if err != nil {
			t.Fatalf("%s A·I: %v", tc.name, err)
		}
		left, err := tc.run(id, a)
		if err != nil {
			t.Fatalf("%s I·A: %v", tc.name, err)
		}
		if !right.Matrix.Equal(a) || !left.Matrix.Equal(a) {
			t.Errorf("%s: identity changed the operand", tc.name)
		}
	}
}

func TestZeroMatrices(t *testing.T) {
	t.Parallel()
	z, err := matrix.New(4)
	if err != nil {
		t.Fatal(err)
	}
	naive, err := (&Naive{}).Multiply(z, z, 4)
	if err != nil {
		t.Fatal(err)
	}
	strassen, err := (&Strassen{}).Multiply(z, z)
	if err != nil {
		t.Fatal(err)
	}
	if !naive.Matrix.Equal(z) || !strassen.Matrix.Equal(z) {
		t.Error("zero times zero should be zero")
	}
	if naive.Stats.Multiplications != 64 || naive.Stats.Additions != 64 {
		t.Errorf("naive counts = %d/%d, want 64/64", naive.Stats.Additions, naive.Stats.Multiplications)
	}
	if strassen.Stats.Multiplications != 49 || strassen.Stats.Additions != 198 {
		t.Errorf("strassen counts = %d/%d, want 198/49", strassen.Stats.Additions, strassen.Stats.Multiplications)
	}
}

func TestRepeatedCallsDoNotAccumulate(t *testing.T) {
	t.Parallel()
	a, b := randomPair(t, 8, 11)
	naive := &Naive{}
	strassen := &Strassen{}

	n1, _ := naive.Multiply(a, b, 8)
	n2, _ := naive.Multiply(a, b, 8)
	s1, _ := strassen.Multiply(a, b)
	s2, _ := strassen.Multiply(a, b)

	if !n1.Matrix.Equal(n2.Matrix) || n1.Stats.Additions != n2.Stats.Additions || n1.Stats.Multiplications != n2.Stats.Multiplications {
		t.Error("naive results changed between calls")
	}
	if !s1.Matrix.Equal(s2.Matrix) || s1.Stats.Additions != s2.Stats.Additions || s1.Stats.Multiplications != s2.Stats.Multiplications {
		t.Error("strassen results changed between calls")
	}
}

func TestOperandsAreNotMutated(t *testing.T) {
	t.Parallel()
	a, b := randomPair(t, 4, 3)
	ac, bc := a.Clone(), b.Clone()
	if _, err := (&Strassen{}).Multiply(a, b); err != nil {
		t.Fatal(err)
	}
	if _, err := (&Naive{}).Multiply(a, b, 4); err != nil {
		t.Fatal(err)
	}
	if !a.Equal(ac) || !b.Equal(bc) {
		t.Error("operands were mutated")
	}
}

func TestDimensionErrors(t *testing.T) {
	t.Parallel()
	two, _ := randomPair(t, 2, 1)
	four, _ := randomPair(t, 4, 1)
	three, _ := randomPair(t, 3, 1)

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"naive mismatched operands", func() error { _, err := (&Naive{}).Multiply(two, four, 2); return err }, matrix.ErrInvalidDimension},
		{"naive wrong order argument", func() error { _, err := (&Naive{}).Multiply(two, two, 3); return err }, matrix.ErrInvalidDimension},
		{"naive nil operand", func() error { _, err := (&Naive{}).Multiply(nil, two, 2); return err }, matrix.ErrNilMatrix},
		{"strassen mismatched operands", func() error { _, err := (&Strassen{}).Multiply(four, two); return err }, matrix.ErrInvalidDimension},
		{"strassen odd order", func() error { _, err := (&Strassen{}).Multiply(three, three); return err }, matrix.ErrInvalidDimension},
		{"naive zero order", func() error { _, err := (&Naive{}).Multiply(&matrix.Matrix{}, &matrix.Matrix{}, 0); return err }, matrix.ErrInvalidDimension},
		{"naive negative order", func() error { _, err := (&Naive{}).Multiply(two, two, -1); return err }, matrix.ErrInvalidDimension},
		{"strassen zero-value operands", func() error { _, err := (&Strassen{Pad: true}).Multiply(&matrix.Matrix{}, &matrix.Matrix{}); return err }, matrix.ErrInvalidDimension},
		{"strassen nil operand", func() error { _, err := (&Strassen{}).Multiply(two, nil); return err }, matrix.ErrNilMatrix},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := tt.run(); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestStrassenPadding(t *testing.T) {
	t.Parallel()
	for _, n := range []int{3, 5, 6, 7, 12} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			t.Parallel()
			a, b := randomPair(t, n, uint64(n))
			want, err := matrix.Mul(a, b)
			if err != nil {
				t.Fatal(err)
			}
			p, err := (&Strassen{Pad: true}).Multiply(a, b)
			if err != nil {
				t.Fatalf("padded strassen: %v", err)
			}
			if p.Matrix.Order() != n {
				t.Fatalf("order = %d, want %d", p.Matrix.Order(), n)
			}
			if !p.Matrix.Equal(want) {
				t.Error("padded product differs from reference")
			}
			_, wantMults := ExpectedStrassenCounts(matrix.NextPowerOfTwo(n))
			if p.Stats.Multiplications != wantMults {
				t.Errorf("multiplications = %d, want %d", p.Stats.Multiplications, wantMults)
			}
		})
	}
}

func TestStatsSub(t *testing.T) {
	t.Parallel()
	naive := Stats{Additions: 64, Multiplications: 64, Elapsed: 300}
	strassen := Stats{Additions: 198, Multiplications: 49, Elapsed: 500}
	d := strassen.Sub(naive)
	if d.Additions != 134 || d.Multiplications != -15 || d.Elapsed != 200 {
		t.Errorf("unexpected delta %+v", d)
	}
}
