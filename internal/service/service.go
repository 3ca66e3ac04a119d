// Package service exposes matrix multiplication benchmarks to the HTTP API.
package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/agbru/matmulbench/internal/config"
	apperrors "github.com/agbru/matmulbench/internal/errors"
	"github.com/agbru/matmulbench/internal/matrix"
	"github.com/agbru/matmulbench/internal/multiply"
	"github.com/agbru/matmulbench/internal/orchestration"
	"github.com/agbru/matmulbench/pkg/models"
)

var (
	// ErrMaxOrderExceeded is returned when the order exceeds the configured
	// maximum.
	ErrMaxOrderExceeded = errors.New("maximum matrix order exceeded")
)

// DefaultProductLimit is the largest order for which responses embed the
// operands and products.
const DefaultProductLimit = 16

// Request describes one benchmark.
type Request struct {
	// Algo is a registry key or "all".
	Algo  string
	Order int
	// Seed of the operand generator. Zero selects a time-based seed.
	Seed     uint64
	Min, Max int64
}

// Service defines the interface for matrix multiplication benchmarks.
// This abstraction enables dependency injection and easier testing/mocking.
type Service interface {
	// Multiply generates a random operand pair and multiplies it with the
	// requested algorithms.
	Multiply(ctx context.Context, req Request) (models.MultiplyResponse, error)
}

// MultiplyService handles the validation, operand generation and execution
// of benchmark requests.
type MultiplyService struct {
	factory      multiply.Factory
	maxOrder     int
	productLimit int
}

// Ensure MultiplyService implements Service interface.
var _ Service = (*MultiplyService)(nil)

// NewMultiplyService creates a new instance of MultiplyService.
//
// Parameters:
//   - factory: The factory to retrieve algorithms from.
//   - maxOrder: The maximum allowed order (0 for no limit).
func NewMultiplyService(factory multiply.Factory, maxOrder int) *MultiplyService {
	return &MultiplyService{
		factory:      factory,
		maxOrder:     maxOrder,
		productLimit: DefaultProductLimit,
	}
}

// Multiply validates req, generates the operands and runs the algorithms one
// after the other. Failures of individual algorithms are reported inside the
// response; only validation and context errors are returned.
func (s *MultiplyService) Multiply(ctx context.Context, req Request) (models.MultiplyResponse, error) {
	if req.Order < 1 {
		return models.MultiplyResponse{}, apperrors.NewValidationError("n", "must be a positive integer", req.Order)
	}
	if s.maxOrder > 0 && req.Order > s.maxOrder {
		return models.MultiplyResponse{}, ErrMaxOrderExceeded
	}

	algos, err := s.algorithms(req.Algo)
	if err != nil {
		return models.MultiplyResponse{}, err
	}

	gen, err := matrix.NewGenerator(req.Min, req.Max, req.Seed)
	if err != nil {
		return models.MultiplyResponse{}, apperrors.NewValidationError("min", err.Error(), req.Min)
	}
	a, b, err := gen.Pair(req.Order)
	if err != nil {
		return models.MultiplyResponse{}, err
	}

	start := time.Now()
	results := orchestration.ExecuteBenchmarks(ctx, algos, a, b, config.AppConfig{}, io.Discard)
	if err := ctx.Err(); err != nil {
		return models.MultiplyResponse{}, err
	}

	resp := BuildResponse(gen, a, b, results, req.Order <= s.productLimit)
	resp.Duration = time.Since(start).String()
	return resp, nil
}

func (s *MultiplyService) algorithms(key string) ([]multiply.Algorithm, error) {
	if key == "" || key == config.DefaultAlgo {
		keys := s.factory.List()
		algos := make([]multiply.Algorithm, 0, len(keys))
		for _, k := range keys {
			algo, err := s.factory.Get(k)
			if err != nil {
				return nil, err
			}
			algos = append(algos, algo)
		}
		return algos, nil
	}
	algo, err := s.factory.Get(key)
	if err != nil {
		return nil, apperrors.NewValidationError("algo", err.Error(), key)
	}
	return []multiply.Algorithm{algo}, nil
}

// BuildResponse converts benchmark results into the response document. The
// first result is the baseline for the deltas. Operands and products are
// embedded when withMatrices is set.
func BuildResponse(gen *matrix.Generator, a, b *matrix.Matrix, results []orchestration.BenchmarkResult, withMatrices bool) models.MultiplyResponse {
	order := a.Order()
	minV, maxV := gen.Range()
	resp := models.MultiplyResponse{
		Order:  order,
		Seed:   gen.Seed(),
		Min:    minV,
		Max:    maxV,
		NCubed: multiply.Cube(order),
		Runs:   make([]models.AlgorithmRun, len(results)),
	}
	if withMatrices {
		resp.A, resp.B = a.Rows(), b.Rows()
	}

	deltas := orchestration.ComputeDeltas(results)
	var reference *matrix.Matrix
	resp.Consistent = true
	for i, res := range results {
		run := models.AlgorithmRun{Algorithm: res.Name}
		if res.Err != nil {
			run.Error = res.Err.Error()
			resp.Runs[i] = run
			continue
		}
		stats := res.Product.Stats
		run.ElapsedMS = stats.ElapsedMillis()
		run.Counts = models.OperationCounts{Additions: stats.Additions, Multiplications: stats.Multiplications}
		if d := deltas[i]; d != nil {
			run.Delta = &models.Delta{
				ElapsedMS:       float64(d.Elapsed.Nanoseconds()) / 1e6,
				Additions:       d.Additions,
				Multiplications: d.Multiplications,
			}
		}
		if withMatrices {
			run.Product = res.Product.Matrix.Rows()
		}
		if reference == nil {
			reference = res.Product.Matrix
		} else if !reference.Equal(res.Product.Matrix) {
			resp.Consistent = false
		}
		resp.Runs[i] = run
	}
	return resp
}
