package orchestration

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/agbru/matmulbench/internal/config"
	apperrors "github.com/agbru/matmulbench/internal/errors"
	"github.com/agbru/matmulbench/internal/matrix"
	"github.com/agbru/matmulbench/internal/multiply"
	"github.com/agbru/matmulbench/internal/testutil"
)

// MockAlgorithm is a mock implementation of multiply.Algorithm used for
// testing the orchestration logic without invoking real algorithms.
type MockAlgorithm struct {
	NameFunc func() string
	RunFunc  func(ctx context.Context, a, b *matrix.Matrix) (multiply.Product, error)
}

// Name returns the mocked name of the algorithm.
func (m *MockAlgorithm) Name() string {
	if m.NameFunc != nil {
		return m.NameFunc()
	}
	return "Mock"
}

// Run emits the lifecycle events and invokes the mocked RunFunc.
func (m *MockAlgorithm) Run(ctx context.Context, events chan<- multiply.RunEvent, index int, a, b *matrix.Matrix) (multiply.Product, error) {
	subject := multiply.NewRunSubject()
	if events != nil {
		subject.Register(multiply.NewChannelObserver(events))
	}
	return m.RunWithObservers(ctx, subject, index, a, b)
}

// RunWithObservers invokes the mocked RunFunc between a started and a
// finished event.
func (m *MockAlgorithm) RunWithObservers(ctx context.Context, subject *multiply.RunSubject, index int, a, b *matrix.Matrix) (multiply.Product, error) {
	subject.Notify(multiply.RunEvent{Index: index, Algorithm: m.Name(), Phase: multiply.PhaseStarted})
	product := multiply.Product{Matrix: a}
	var err error
	if m.RunFunc != nil {
		product, err = m.RunFunc(ctx, a, b)
	}
	subject.Notify(multiply.RunEvent{Index: index, Algorithm: m.Name(), Phase: multiply.PhaseFinished, Err: err})
	return product, err
}

func product(rows [][]int64, elapsed time.Duration) multiply.Product {
	return multiply.Product{
		Matrix: matrix.MustFromRows(rows),
		Stats:  multiply.Stats{Additions: 8, Multiplications: 8, Elapsed: elapsed},
	}
}

// TestExecuteBenchmarks verifies that the orchestrator runs the algorithms
// and aggregates their results in input order.
func TestExecuteBenchmarks(t *testing.T) {
	t.Parallel()
	a := matrix.MustFromRows([][]int64{{1, 2}, {3, 4}})

	tests := []struct {
		name        string
		algos       []multiply.Algorithm
		expectedLen int
		expectError []bool
	}{
		{
			name:        "Single success",
			algos:       []multiply.Algorithm{&MockAlgorithm{}},
			expectedLen: 1,
			expectError: []bool{false},
		},
		{
			name: "Single failure",
			algos: []multiply.Algorithm{&MockAlgorithm{
				RunFunc: func(ctx context.Context, a, b *matrix.Matrix) (multiply.Product, error) {
					return multiply.Product{}, errors.New("mock error")
				},
			}},
			expectedLen: 1,
			expectError: []bool{true},
		},
		{
			name: "Real algorithms",
			algos: func() []multiply.Algorithm {
				f := multiply.NewDefaultFactory()
				return []multiply.Algorithm{f.MustGet(multiply.KeyNaive), f.MustGet(multiply.KeyStrassen)}
			}(),
			expectedLen: 2,
			expectError: []bool{false, false},
		},
		{
			name:        "No algorithms",
			algos:       nil,
			expectedLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			results := ExecuteBenchmarks(context.Background(), tt.algos, a, a, config.AppConfig{}, io.Discard)
			if len(results) != tt.expectedLen {
				t.Fatalf("expected %d results, got %d", tt.expectedLen, len(results))
			}
			for i, res := range results {
				if res.Name != tt.algos[i].Name() {
					t.Errorf("result %d name = %q, want %q", i, res.Name, tt.algos[i].Name())
				}
				if (res.Err != nil) != tt.expectError[i] {
					t.Errorf("result %d error = %v, want error: %v", i, res.Err, tt.expectError[i])
				}
			}
		})
	}
}

func TestExecuteBenchmarks_WrapsErrors(t *testing.T) {
	t.Parallel()
	a := matrix.MustFromRows([][]int64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	strassen := multiply.NewDefaultFactory().MustGet(multiply.KeyStrassen)

	results := ExecuteBenchmarks(context.Background(), []multiply.Algorithm{strassen}, a, a, config.AppConfig{}, io.Discard)

	var runErr apperrors.RunError
	if !errors.As(results[0].Err, &runErr) {
		t.Fatalf("expected RunError, got %v", results[0].Err)
	}
	if runErr.Order != 3 || runErr.Algorithm != strassen.Name() {
		t.Errorf("unexpected run identity: %+v", runErr)
	}
	if !errors.Is(results[0].Err, matrix.ErrInvalidDimension) {
		t.Errorf("cause should be ErrInvalidDimension, got %v", results[0].Err)
	}
}

func TestExecuteBenchmarks_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := matrix.MustFromRows([][]int64{{1}})
	naive := multiply.NewDefaultFactory().MustGet(multiply.KeyNaive)
	results := ExecuteBenchmarks(ctx, []multiply.Algorithm{naive}, a, a, config.AppConfig{}, io.Discard)
	if !errors.Is(results[0].Err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", results[0].Err)
	}
}

// overlapProbe reports whether two runs were ever in flight at once.
type overlapProbe struct {
	started chan struct{}
}

func (p *overlapProbe) algorithm() *MockAlgorithm {
	return &MockAlgorithm{
		RunFunc: func(ctx context.Context, a, b *matrix.Matrix) (multiply.Product, error) {
			p.started <- struct{}{}
			time.Sleep(100 * time.Millisecond)
			return multiply.Product{Matrix: a}, nil
		},
	}
}

func TestExecuteBenchmarks_Scheduling(t *testing.T) {
	t.Parallel()
	a := matrix.MustFromRows([][]int64{{1}})

	tests := []struct {
		name        string
		concurrent  bool
		wantOverlap bool
	}{
		{"Sequential by default", false, false},
		{"Concurrent", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			probe := &overlapProbe{started: make(chan struct{}, 2)}
			algos := []multiply.Algorithm{probe.algorithm(), probe.algorithm()}

			done := make(chan struct{})
			go func() {
				ExecuteBenchmarks(context.Background(), algos, a, a, config.AppConfig{Concurrent: tt.concurrent}, io.Discard)
				close(done)
			}()

			// Both runs sleep after signalling. If the second start arrives
			// before the first run can have finished, they overlapped.
			<-probe.started
			var overlap bool
			select {
			case <-probe.started:
				overlap = true
			case <-time.After(50 * time.Millisecond):
				<-probe.started
			}
			<-done

			if overlap != tt.wantOverlap {
				t.Errorf("overlap = %v, want %v", overlap, tt.wantOverlap)
			}
		})
	}
}

func TestComputeDeltas(t *testing.T) {
	t.Parallel()
	base := multiply.Product{Stats: multiply.Stats{Additions: 8, Multiplications: 8, Elapsed: time.Millisecond}}
	other := multiply.Product{Stats: multiply.Stats{Additions: 18, Multiplications: 7, Elapsed: 3 * time.Millisecond}}

	deltas := ComputeDeltas([]BenchmarkResult{{Product: base}, {Product: other}, {Err: errors.New("fail")}})
	if len(deltas) != 3 {
		t.Fatalf("expected 3 deltas, got %d", len(deltas))
	}
	if deltas[0] != nil || deltas[2] != nil {
		t.Error("baseline and failed runs must have no delta")
	}
	want := multiply.Delta{Additions: 10, Multiplications: -1, Elapsed: 2 * time.Millisecond}
	if deltas[1] == nil || *deltas[1] != want {
		t.Errorf("delta = %+v, want %+v", deltas[1], want)
	}

	failedBase := ComputeDeltas([]BenchmarkResult{{Err: errors.New("fail")}, {Product: other}})
	if failedBase[1] != nil {
		t.Error("no delta can be computed without a baseline")
	}
	if len(ComputeDeltas(nil)) != 0 {
		t.Error("expected no deltas for no results")
	}
}

// TestAnalyzeComparisonResults verifies the comparison of results from
// several algorithms: consistent products, failures and mismatches.
func TestAnalyzeComparisonResults(t *testing.T) {
	t.Parallel()
	same := [][]int64{{19, 22}, {43, 50}}
	tests := []struct {
		name           string
		results        []BenchmarkResult
		expectedStatus int
		contains       string
	}{
		{
			name: "All success",
			results: []BenchmarkResult{
				{Name: "A", Product: product(same, time.Millisecond)},
				{Name: "B", Product: product(same, 2*time.Millisecond)},
			},
			expectedStatus: apperrors.ExitSuccess,
			contains:       "All products are consistent",
		},
		{
			name: "Mismatch",
			results: []BenchmarkResult{
				{Name: "A", Product: product(same, time.Millisecond)},
				{Name: "B", Product: product([][]int64{{19, 22}, {43, 51}}, time.Millisecond)},
			},
			expectedStatus: apperrors.ExitErrorMismatch,
			contains:       "different products",
		},
		{
			name: "All failure",
			results: []BenchmarkResult{
				{Name: "A", Err: errors.New("fail")},
				{Name: "B", Err: errors.New("fail")},
			},
			expectedStatus: apperrors.ExitErrorGeneric,
			contains:       "No algorithm could complete",
		},
		{
			name: "Mixed success/failure",
			results: []BenchmarkResult{
				{Name: "A", Product: product(same, time.Millisecond)},
				{Name: "B", Err: apperrors.NewRunError("B", 3, &matrix.DimensionError{Op: "strassen", Got: 3})},
			},
			expectedStatus: apperrors.ExitErrorConfig,
			contains:       "Partial success. 1 of 2",
		},
		{
			name: "Timeout",
			results: []BenchmarkResult{
				{Name: "A", Err: context.DeadlineExceeded},
			},
			expectedStatus: apperrors.ExitErrorTimeout,
			contains:       "Timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out strings.Builder
			status := AnalyzeComparisonResults(tt.results, config.AppConfig{}, &out)
			if status != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, status)
			}
			if got := testutil.StripANSI(out.String()); !strings.Contains(got, tt.contains) {
				t.Errorf("output does not contain %q:\n%s", tt.contains, got)
			}
		})
	}
}

func TestAnalyzeComparisonResults_SortsWithoutReordering(t *testing.T) {
	t.Parallel()
	same := [][]int64{{1}}
	results := []BenchmarkResult{
		{Name: "Slow", Product: product(same, 5*time.Millisecond)},
		{Name: "Fast", Product: product(same, time.Millisecond)},
	}

	var out strings.Builder
	AnalyzeComparisonResults(results, config.AppConfig{}, &out)

	text := testutil.StripANSI(out.String())
	if strings.Index(text, "Fast") > strings.Index(text, "Slow") {
		t.Errorf("the table should list the fastest algorithm first:\n%s", text)
	}
	if results[0].Name != "Slow" {
		t.Error("the caller's slice must keep its order")
	}
}

func TestAnalyzeComparisonResults_Quiet(t *testing.T) {
	t.Parallel()
	same := [][]int64{{1}}
	results := []BenchmarkResult{{Name: "A", Product: product(same, time.Millisecond)}}

	var out strings.Builder
	if status := AnalyzeComparisonResults(results, config.AppConfig{Quiet: true}, &out); status != apperrors.ExitSuccess {
		t.Errorf("expected success, got %d", status)
	}
	if out.Len() != 0 {
		t.Errorf("quiet mode should print nothing on success, got %q", out.String())
	}
}
