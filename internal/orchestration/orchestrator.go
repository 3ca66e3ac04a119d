// Package orchestration runs the selected multiplication algorithms on a
// shared pair of operands and compares their outcomes.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/matmulbench/internal/cli"
	"github.com/agbru/matmulbench/internal/config"
	apperrors "github.com/agbru/matmulbench/internal/errors"
	"github.com/agbru/matmulbench/internal/matrix"
	"github.com/agbru/matmulbench/internal/multiply"
	"github.com/agbru/matmulbench/internal/ui"
)

// BenchmarkResult encapsulates the outcome of running one algorithm.
type BenchmarkResult struct {
	// Name is the display name of the algorithm.
	Name string
	// Product holds the product matrix and the operation counts. Its Matrix
	// is nil if an error occurred.
	Product multiply.Product
	// Duration is the wall-clock time of the whole Run call, including the
	// instrumentation around the multiplication.
	Duration time.Duration
	// Err contains any error that occurred during the run.
	Err error
}

// EventBufferMultiplier defines the buffer size multiplier for the event
// channel. Each run emits two events.
const EventBufferMultiplier = 2

// ExecuteBenchmarks runs every algorithm on a and b and returns one result
// per algorithm, in the order given.
//
// Runs are sequential unless cfg.Concurrent is set, so that the timings of
// one algorithm are not disturbed by the other. A progress spinner is shown
// on out while they run.
func ExecuteBenchmarks(ctx context.Context, algos []multiply.Algorithm, a, b *matrix.Matrix, cfg config.AppConfig, out io.Writer) []BenchmarkResult {
	g, ctx := errgroup.WithContext(ctx)
	if !cfg.Concurrent {
		g.SetLimit(1)
	}
	results := make([]BenchmarkResult, len(algos))
	events := make(chan multiply.RunEvent, len(algos)*EventBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go cli.DisplayProgress(&displayWg, events, len(algos), out)

	order := 0
	if a != nil {
		order = a.Order()
	}
	for i, algo := range algos {
		g.Go(func() error {
			start := time.Now()
			product, err := algo.Run(ctx, events, i, a, b)
			results[i] = BenchmarkResult{
				Name:     algo.Name(),
				Product:  product,
				Duration: time.Since(start),
				Err:      apperrors.NewRunError(algo.Name(), order, err),
			}
			return nil
		})
	}

	_ = g.Wait()
	close(events)
	displayWg.Wait()

	return results
}

// ComputeDeltas returns, for each result, its difference from the first
// result, which is the baseline. The baseline itself and failed runs get
// nil, as does every entry when the baseline failed.
func ComputeDeltas(results []BenchmarkResult) []*multiply.Delta {
	deltas := make([]*multiply.Delta, len(results))
	if len(results) == 0 || results[0].Err != nil {
		return deltas
	}
	baseline := results[0].Product.Stats
	for i := 1; i < len(results); i++ {
		if results[i].Err != nil {
			continue
		}
		d := results[i].Product.Stats.Sub(baseline)
		deltas[i] = &d
	}
	return deltas
}

// AnalyzeComparisonResults prints a summary table of the results, sorted by
// execution time, checks that every successful algorithm produced the same
// matrix, and returns the exit code of the run.
func AnalyzeComparisonResults(results []BenchmarkResult, cfg config.AppConfig, out io.Writer) int {
	sorted := make([]BenchmarkResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		if (sorted[i].Err == nil) != (sorted[j].Err == nil) {
			return sorted[i].Err == nil
		}
		return sorted[i].Product.Stats.Elapsed < sorted[j].Product.Stats.Elapsed
	})

	var reference *matrix.Matrix
	var firstError error
	successCount := 0

	if !cfg.Quiet {
		fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	}
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	if !cfg.Quiet {
		fmt.Fprintf(tw, "%sAlgorithm%s\t%sTime%s\t%sAdditions%s\t%sMultiplications%s\t%sStatus%s\n",
			ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
			ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
			ui.ColorUnderline(), ui.ColorReset())
	}

	for _, res := range sorted {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
			if firstError == nil {
				firstError = res.Err
			}
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
			successCount++
			if reference == nil {
				reference = res.Product.Matrix
			}
		}
		if cfg.Quiet {
			continue
		}
		stats := res.Product.Stats
		fmt.Fprintf(tw, "%s%s%s\t%s%s%s\t%d\t%d\t%s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(),
			ui.ColorYellow(), cli.FormatMillis(stats.Elapsed), ui.ColorReset(),
			stats.Additions, stats.Multiplications,
			status)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No algorithm could complete the multiplication.\n")
		return apperrors.HandleRunError(firstError, 0, out, cli.CLIColorProvider{})
	}

	for _, res := range sorted {
		if res.Err == nil && !res.Product.Matrix.Equal(reference) {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The algorithms produced different products.\n")
			return apperrors.ExitErrorMismatch
		}
	}

	if firstError != nil {
		fmt.Fprintf(out, "\nGlobal Status: Partial success. %d of %d algorithm(s) completed, their products are consistent.\n",
			successCount, len(sorted))
		return apperrors.HandleRunError(firstError, 0, out, cli.CLIColorProvider{})
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "\nGlobal Status: Success. All products are consistent.\n")
	}
	return apperrors.ExitSuccess
}
