// Package sweep benchmarks both multiplication algorithms over a series of
// power-of-two orders and locates the order from which Strassen's
// algorithm beats the triple loop.
package sweep

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/agbru/matmulbench/internal/cli"
	"github.com/agbru/matmulbench/internal/config"
	apperrors "github.com/agbru/matmulbench/internal/errors"
	"github.com/agbru/matmulbench/internal/logging"
	"github.com/agbru/matmulbench/internal/matrix"
	"github.com/agbru/matmulbench/internal/multiply"
	"github.com/agbru/matmulbench/internal/orchestration"
)

// Row holds the measurements for one order.
type Row struct {
	Order       int
	Naive       multiply.Stats
	Strassen    multiply.Stats
	NaiveErr    error
	StrassenErr error
}

// OK reports whether both algorithms completed.
func (r Row) OK() bool { return r.NaiveErr == nil && r.StrassenErr == nil }

// Ops returns the total scalar operations (additions plus multiplications)
// of each algorithm.
func (r Row) Ops() (naive, strassen uint64) {
	return r.Naive.Additions + r.Naive.Multiplications, r.Strassen.Additions + r.Strassen.Multiplications
}

// Result is the outcome of a sweep.
type Result struct {
	Rows []Row
	// TimeCrossover is the first order at which Strassen's algorithm was
	// faster than the triple loop, or 0 if it never was.
	TimeCrossover int
	// OpsCrossover is the first order at which Strassen's algorithm needed
	// fewer scalar operations, or 0 if it never did.
	OpsCrossover int
}

// Orders returns the powers of two from 1 up to maxOrder inclusive.
func Orders(maxOrder int) []int {
	var orders []int
	for n := 1; n > 0 && n <= maxOrder; n <<= 1 {
		orders = append(orders, n)
	}
	return orders
}

// Runner executes the sweep with a fixed pair of algorithms and a shared
// operand generator.
type Runner struct {
	naive    multiply.Algorithm
	strassen multiply.Algorithm
	gen      *matrix.Generator
	logger   logging.Logger
}

// NewRunner creates a Runner. A nil logger discards log output.
func NewRunner(naive, strassen multiply.Algorithm, gen *matrix.Generator, logger logging.Logger) *Runner {
	if logger == nil {
		logger = logging.NewLogger(io.Discard, "sweep")
	}
	return &Runner{naive: naive, strassen: strassen, gen: gen, logger: logger}
}

// Run multiplies a fresh random pair at every order up to maxOrder with
// both algorithms, one run at a time. Progress is shown on out. A canceled
// context stops the sweep and its error is returned together with the rows
// measured so far.
func (r *Runner) Run(ctx context.Context, maxOrder int, out io.Writer) (Result, error) {
	orders := Orders(maxOrder)
	rows := make([]Row, 0, len(orders))

	runs := 2 * len(orders)
	var wg sync.WaitGroup
	events := make(chan multiply.RunEvent, runs*orchestration.EventBufferMultiplier)
	wg.Add(1)
	go cli.DisplayProgress(&wg, events, runs, out)
	defer func() {
		close(events)
		wg.Wait()
	}()

	for i, order := range orders {
		if err := ctx.Err(); err != nil {
			return summarize(rows), err
		}
		a, b, err := r.gen.Pair(order)
		if err != nil {
			return summarize(rows), err
		}

		row := Row{Order: order}
		var p multiply.Product
		p, row.NaiveErr = r.naive.Run(ctx, events, 2*i, a, b)
		row.Naive = p.Stats
		p, row.StrassenErr = r.strassen.Run(ctx, events, 2*i+1, a, b)
		row.Strassen = p.Stats
		rows = append(rows, row)

		if row.OK() {
			r.logger.Debug("sweep step",
				logging.Int("order", order),
				logging.Duration("naive", row.Naive.Elapsed),
				logging.Duration("strassen", row.Strassen.Elapsed))
		} else if apperrors.IsContextError(row.NaiveErr) || apperrors.IsContextError(row.StrassenErr) {
			return summarize(rows), ctx.Err()
		}
	}
	return summarize(rows), nil
}

func summarize(rows []Row) Result {
	return Result{
		Rows:          rows,
		TimeCrossover: TimeCrossover(rows),
		OpsCrossover:  OpsCrossover(rows),
	}
}

// TimeCrossover returns the first order at which Strassen's algorithm ran
// faster than the triple loop, or 0. Order 1 is ignored in both crossovers:
// Strassen's base case there is a bare scalar product and reports no
// operations.
func TimeCrossover(rows []Row) int {
	for _, row := range rows {
		if row.Order >= 2 && row.OK() && row.Strassen.Elapsed < row.Naive.Elapsed {
			return row.Order
		}
	}
	return 0
}

// OpsCrossover returns the first order at which Strassen's algorithm needed
// fewer scalar operations than the triple loop, or 0.
func OpsCrossover(rows []Row) int {
	for _, row := range rows {
		naive, strassen := row.Ops()
		if row.Order >= 2 && row.OK() && strassen < naive {
			return row.Order
		}
	}
	return 0
}

// RunSweep is the entry point of sweep mode. It runs the sweep configured
// by cfg, prints the summary table, writes the chart when cfg.PlotFile is
// set, and returns the exit code.
func RunSweep(ctx context.Context, cfg config.AppConfig, factory multiply.Factory, out io.Writer, logger logging.Logger) int {
	if logger == nil {
		logger = logging.NewLogger(io.Discard, "sweep")
	}
	naive, err := factory.Get(multiply.KeyNaive)
	if err != nil {
		fmt.Fprintf(out, "%sCritical error: %v%s\n", cli.ColorRed(), err, cli.ColorReset())
		return apperrors.ExitErrorGeneric
	}
	strassen, err := factory.Get(multiply.KeyStrassen)
	if err != nil {
		fmt.Fprintf(out, "%sCritical error: %v%s\n", cli.ColorRed(), err, cli.ColorReset())
		return apperrors.ExitErrorGeneric
	}
	gen, err := matrix.NewGenerator(cfg.Min, cfg.Max, cfg.Seed)
	if err != nil {
		return apperrors.HandleRunError(apperrors.NewConfigError("%v", err), 0, out, cli.CLIColorProvider{})
	}

	fmt.Fprintf(out, "--- Sweep Mode: orders 1 to %d, seed %d ---\n", cfg.Sweep, gen.Seed())
	start := time.Now()
	result, err := NewRunner(naive, strassen, gen, logger).Run(ctx, cfg.Sweep, out)
	if err != nil {
		if len(result.Rows) > 0 {
			PrintTable(out, result)
		}
		fmt.Fprintf(out, "\n%sSweep interrupted.%s\n", cli.ColorYellow(), cli.ColorReset())
		return apperrors.HandleRunError(err, time.Since(start), out, cli.CLIColorProvider{})
	}

	PrintTable(out, result)
	logger.Info("sweep completed",
		logging.Int("orders", len(result.Rows)),
		logging.Int("time_crossover", result.TimeCrossover),
		logging.Int("ops_crossover", result.OpsCrossover),
		logging.Duration("elapsed", time.Since(start)))

	if cfg.PlotFile != "" {
		if err := WritePlot(cfg.PlotFile, result.Rows); err != nil {
			logger.Error("cannot write sweep chart", err, logging.String("path", cfg.PlotFile))
			fmt.Fprintf(out, "%sError: %v%s\n", cli.ColorRed(), err, cli.ColorReset())
			return apperrors.ExitErrorGeneric
		}
		fmt.Fprintf(out, "%sChart saved to %s%s\n", cli.ColorGreen(), cfg.PlotFile, cli.ColorReset())
	}
	return apperrors.ExitSuccess
}
