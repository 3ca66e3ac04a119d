package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	apperrors "github.com/agbru/matmulbench/internal/errors"
	"github.com/agbru/matmulbench/internal/matrix"
	"github.com/agbru/matmulbench/internal/multiply"
)

// Report is everything written to the text report of a single run.
type Report struct {
	Order int
	A, B  *matrix.Matrix
	Runs  []ReportEntry
}

// ReportEntry is the outcome of one algorithm. Delta is nil for the
// baseline run.
type ReportEntry struct {
	Label   string
	Product *matrix.Matrix
	Stats   multiply.Stats
	Delta   *multiply.Delta
}

// FormatReport writes r as plain text: both operands, then each product
// followed by its statistics block.
func FormatReport(w io.Writer, r Report) error {
	for _, op := range []struct {
		title string
		m     *matrix.Matrix
	}{{"A", r.A}, {"B", r.B}} {
		if op.m == nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "Matrix %s\n\n", op.title); err != nil {
			return err
		}
		if err := matrix.Fprint(w, op.m, OperandWidth, "\n"); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	for _, run := range r.Runs {
		if run.Product != nil {
			if err := PrintProduct(w, run.Label, run.Product); err != nil {
				return err
			}
		}
		writeStats(w, palette{}, run.Label, run.Stats, run.Delta, r.Order)
	}
	return nil
}

// WriteReport writes r to path, creating missing parent directories.
// Failures are returned as apperrors.OutputError.
func WriteReport(path string, r Report) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.OutputError{Path: path, Cause: err}
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return apperrors.OutputError{Path: path, Cause: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = apperrors.OutputError{Path: path, Cause: cerr}
		}
	}()

	bw := bufio.NewWriter(f)
	if err := FormatReport(bw, r); err != nil {
		return apperrors.OutputError{Path: path, Cause: err}
	}
	if err := bw.Flush(); err != nil {
		return apperrors.OutputError{Path: path, Cause: err}
	}
	return nil
}
