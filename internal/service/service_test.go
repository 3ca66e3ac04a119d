package service

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/agbru/matmulbench/internal/errors"
	"github.com/agbru/matmulbench/internal/matrix"
	"github.com/agbru/matmulbench/internal/multiply"
	"github.com/agbru/matmulbench/internal/orchestration"
)

// TestNewMultiplyService tests the constructor.
func TestNewMultiplyService(t *testing.T) {
	t.Parallel()
	svc := NewMultiplyService(multiply.NewDefaultFactory(), 256)
	if svc == nil {
		t.Fatal("expected non-nil service")
	}
	if svc.factory == nil {
		t.Error("factory should not be nil")
	}
	if svc.maxOrder != 256 {
		t.Errorf("expected maxOrder 256, got %d", svc.maxOrder)
	}
	if svc.productLimit != DefaultProductLimit {
		t.Errorf("expected product limit %d, got %d", DefaultProductLimit, svc.productLimit)
	}
}

// TestMultiply tests the Multiply method.
func TestMultiply(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name          string
		req           Request
		maxOrder      int
		expectErr     error
		expectInvalid string
		expectRuns    int
		expectMatrix  bool
		expectRunErr  []bool
	}{
		{
			name:         "all algorithms",
			req:          Request{Algo: "all", Order: 4, Seed: 1, Max: 10},
			maxOrder:     64,
			expectRuns:   2,
			expectMatrix: true,
			expectRunErr: []bool{false, false},
		},
		{
			name:         "default algorithm",
			req:          Request{Order: 2, Seed: 1, Max: 10},
			expectRuns:   2,
			expectMatrix: true,
			expectRunErr: []bool{false, false},
		},
		{
			name:         "single algorithm",
			req:          Request{Algo: multiply.KeyStrassen, Order: 8, Seed: 2, Max: 10},
			expectRuns:   1,
			expectMatrix: true,
			expectRunErr: []bool{false},
		},
		{
			name:         "large order omits matrices",
			req:          Request{Algo: multiply.KeyNaive, Order: 32, Seed: 2, Max: 10},
			expectRuns:   1,
			expectRunErr: []bool{false},
		},
		{
			name:         "non power of two",
			req:          Request{Algo: "all", Order: 3, Seed: 2, Max: 10},
			expectRuns:   2,
			expectMatrix: true,
			expectRunErr: []bool{false, true},
		},
		{
			name:      "max order exceeded",
			req:       Request{Order: 128},
			maxOrder:  64,
			expectErr: ErrMaxOrderExceeded,
		},
		{
			name:          "invalid order",
			req:           Request{Order: 0},
			expectInvalid: "n",
		},
		{
			name:          "unknown algorithm",
			req:           Request{Algo: "winograd", Order: 2},
			expectInvalid: "algo",
		},
		{
			name:          "inverted range",
			req:           Request{Order: 2, Min: 5, Max: 1},
			expectInvalid: "min",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := NewMultiplyService(multiply.NewDefaultFactory(), tt.maxOrder)
			resp, err := svc.Multiply(context.Background(), tt.req)

			if tt.expectErr != nil {
				if !errors.Is(err, tt.expectErr) {
					t.Fatalf("expected %v, got %v", tt.expectErr, err)
				}
				return
			}
			if tt.expectInvalid != "" {
				var vErr apperrors.ValidationError
				if !errors.As(err, &vErr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				if vErr.Field != tt.expectInvalid {
					t.Errorf("invalid field = %q, want %q", vErr.Field, tt.expectInvalid)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if resp.Order != tt.req.Order || resp.Seed != tt.req.Seed {
				t.Errorf("order/seed = %d/%d, want %d/%d", resp.Order, resp.Seed, tt.req.Order, tt.req.Seed)
			}
			if resp.NCubed != multiply.Cube(tt.req.Order) {
				t.Errorf("n_cubed = %d", resp.NCubed)
			}
			if len(resp.Runs) != tt.expectRuns {
				t.Fatalf("expected %d runs, got %d", tt.expectRuns, len(resp.Runs))
			}
			if (resp.A != nil) != tt.expectMatrix {
				t.Errorf("operands embedded = %v, want %v", resp.A != nil, tt.expectMatrix)
			}
			for i, run := range resp.Runs {
				if (run.Error != "") != tt.expectRunErr[i] {
					t.Errorf("run %d error = %q, want error: %v", i, run.Error, tt.expectRunErr[i])
				}
			}
			if !resp.Consistent {
				t.Error("products should be consistent")
			}
			if resp.Duration == "" {
				t.Error("duration should be set")
			}
		})
	}
}

func TestMultiply_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewMultiplyService(multiply.NewDefaultFactory(), 0)
	if _, err := svc.Multiply(ctx, Request{Order: 2, Max: 10}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestBuildResponse(t *testing.T) {
	t.Parallel()
	gen, err := matrix.NewGenerator(0, 10, 9)
	if err != nil {
		t.Fatal(err)
	}
	a := matrix.MustFromRows([][]int64{{1, 2}, {3, 4}})
	b := matrix.MustFromRows([][]int64{{5, 6}, {7, 8}})
	naive, _ := (&multiply.Naive{}).Multiply(a, b, 2)
	strassen, _ := (&multiply.Strassen{}).Multiply(a, b)

	results := []orchestration.BenchmarkResult{
		{Name: "naive", Product: naive},
		{Name: "strassen", Product: strassen},
	}
	resp := BuildResponse(gen, a, b, results, true)

	if !resp.Consistent {
		t.Error("expected consistent products")
	}
	if resp.Runs[0].Delta != nil {
		t.Error("the baseline has no delta")
	}
	d := resp.Runs[1].Delta
	if d == nil || d.Multiplications != -1 || d.Additions != 10 {
		t.Errorf("unexpected delta %+v", d)
	}
	if got := resp.Runs[1].Product; got[1][1] != 50 {
		t.Errorf("product = %v", got)
	}
	if resp.Runs[0].Counts.Multiplications != 8 || resp.Runs[1].Counts.Multiplications != 7 {
		t.Errorf("unexpected counts %+v / %+v", resp.Runs[0].Counts, resp.Runs[1].Counts)
	}

	wrong := multiply.Product{Matrix: matrix.MustFromRows([][]int64{{0, 0}, {0, 0}})}
	results = append(results, orchestration.BenchmarkResult{Name: "broken", Product: wrong})
	if BuildResponse(gen, a, b, results, false).Consistent {
		t.Error("a differing product must make the response inconsistent")
	}
}
