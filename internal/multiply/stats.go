package multiply

import (
	"time"

	"github.com/agbru/matmulbench/internal/matrix"
)

// Stats is the immutable record of one top-level multiplication.
// A fresh value is produced by every call; nothing accumulates across calls.
type Stats struct {
	// Additions counts scalar additions and subtractions.
	Additions uint64
	// Multiplications counts scalar multiplications for the naive algorithm
	// and aggregate recursive products for Strassen's.
	Multiplications uint64
	// Elapsed is the wall-clock duration of the outermost call.
	Elapsed time.Duration
}

// Product is the result of a multiplication: the product matrix and the
// statistics gathered while computing it.
type Product struct {
	Matrix *matrix.Matrix
	Stats  Stats
}

// Delta is the signed difference between two Stats (other minus baseline).
type Delta struct {
	Additions       int64
	Multiplications int64
	Elapsed         time.Duration
}

// Sub returns s - baseline field by field.
func (s Stats) Sub(baseline Stats) Delta {
	return Delta{
		Additions:       int64(s.Additions) - int64(baseline.Additions),
		Multiplications: int64(s.Multiplications) - int64(baseline.Multiplications),
		Elapsed:         s.Elapsed - baseline.Elapsed,
	}
}

// ElapsedMillis returns the elapsed time in fractional milliseconds.
func (s Stats) ElapsedMillis() float64 {
	return float64(s.Elapsed.Nanoseconds()) / 1e6
}

// Cube returns n³, the reference operation count of the naive algorithm.
func Cube(n int) uint64 {
	u := uint64(n)
	return u * u * u
}
