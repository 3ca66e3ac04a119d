package matrix

import (
	"errors"
	"fmt"
)

// Every message is prefixed with "matrix: " so failures are easy to grep in
// logs. Callers match with errors.Is; DimensionError carries the context.
var (
	// ErrInvalidDimension is returned when operand orders disagree, when an
	// order is not strictly positive, or when an algorithm requires a power of
	// two and receives something else.
	ErrInvalidDimension = errors.New("matrix: invalid dimension")

	// ErrNilMatrix indicates that a nil *Matrix was passed as an operand.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrOutOfRange indicates that a row or column index is outside [0, order).
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrRagged is returned by FromRows when the rows do not form a square.
	ErrRagged = errors.New("matrix: rows do not form a square")

	// ErrInvalidRange is returned when a generator is configured with min > max.
	ErrInvalidRange = errors.New("matrix: invalid value range")
)

// DimensionError describes a dimension precondition violation.
// It always unwraps to ErrInvalidDimension.
type DimensionError struct {
	// Op is the operation that rejected its operands (e.g. "naive", "strassen").
	Op string
	// Got is the offending order.
	Got int
	// Want is the expected order, or 0 when no single value is expected.
	Want int
	// Reason is a short human-readable explanation.
	Reason string
}

// Error implements the error interface.
func (e *DimensionError) Error() string {
	if e.Want > 0 {
		return fmt.Sprintf("%s: %s: %s (got %d, want %d)", ErrInvalidDimension, e.Op, e.Reason, e.Got, e.Want)
	}
	return fmt.Sprintf("%s: %s: %s (got %d)", ErrInvalidDimension, e.Op, e.Reason, e.Got)
}

// Unwrap returns ErrInvalidDimension so errors.Is matches the sentinel.
func (e *DimensionError) Unwrap() error { return ErrInvalidDimension }

func dimensionErrorf(op string, got, want int, reason string) error {
	return &DimensionError{Op: op, Got: got, Want: want, Reason: reason}
}
