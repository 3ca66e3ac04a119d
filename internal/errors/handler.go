package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/matmulbench/internal/matrix"
)

// ColorProvider supplies the highlight codes of HandleRunError. It keeps
// this package independent of the ui package.
type ColorProvider interface {
	Yellow() string
	Reset() string
}

// DefaultColorProvider highlights nothing.
type DefaultColorProvider struct{}

func (DefaultColorProvider) Yellow() string { return "" }
func (DefaultColorProvider) Reset() string  { return "" }

// ExitCodeFor maps an error to the process exit code: timeouts, cancellations
// and configuration or dimension problems have their own codes, everything
// else is generic.
func ExitCodeFor(err error) int {
	var cfgErr ConfigError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.Is(err, matrix.ErrInvalidDimension), errors.As(err, &cfgErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}

// HandleRunError writes the status line of a failed run to out and returns
// ExitCodeFor(err). A positive elapsed is reported in the message.
func HandleRunError(err error, elapsed time.Duration, out io.Writer, colors ColorProvider) int {
	code := ExitCodeFor(err)
	if code == ExitSuccess {
		return code
	}
	if colors == nil {
		colors = DefaultColorProvider{}
	}
	after := ""
	if elapsed > 0 {
		after = fmt.Sprintf(" after %s%s%s", colors.Yellow(), elapsed, colors.Reset())
	}

	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached%s.\n", after)
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), after, colors.Reset())
	case ExitErrorConfig:
		kind := "Configuration"
		if errors.Is(err, matrix.ErrInvalidDimension) {
			kind = "Invalid dimension"
		}
		fmt.Fprintf(out, "Status: Failure (%s). %v\n", kind, err)
	default:
		fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	}
	return code
}
