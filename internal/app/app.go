package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/agbru/matmulbench/internal/cli"
	"github.com/agbru/matmulbench/internal/config"
	apperrors "github.com/agbru/matmulbench/internal/errors"
	"github.com/agbru/matmulbench/internal/logging"
	"github.com/agbru/matmulbench/internal/matrix"
	"github.com/agbru/matmulbench/internal/multiply"
	"github.com/agbru/matmulbench/internal/orchestration"
	"github.com/agbru/matmulbench/internal/server"
	"github.com/agbru/matmulbench/internal/service"
	"github.com/agbru/matmulbench/internal/sweep"
	"github.com/agbru/matmulbench/internal/ui"
)

// Application represents the matmulbench application instance.
// It encapsulates the configuration and provides methods to run
// the application in its various modes (single run, sweep, server).
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Factory provides access to the multiplication algorithms.
	Factory multiply.Factory
	// ErrWriter is the writer for error output and logs (typically os.Stderr).
	ErrWriter io.Writer
	// Logger is the structured logger of the application.
	Logger logging.Logger
}

// New creates a new Application instance by parsing command-line arguments.
// It validates the configuration and returns an error if parsing or validation fails.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	var factory multiply.Factory = multiply.GlobalFactory()

	// args[0] is program name, args[1:] are the actual arguments
	programName := "matmulbench"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, factory.List())
	if err != nil {
		return nil, err
	}

	// The global factory never pads; padding needs its own registry.
	if cfg.StrassenPad {
		factory = multiply.NewDefaultFactory(multiply.WithStrassenPadding(true))
	}

	return &Application{
		Config:    cfg,
		Factory:   factory,
		ErrWriter: errWriter,
		Logger:    logging.NewLogger(errWriter, "app"),
	}, nil
}

// Run executes the application based on the configured mode. in is only
// read when the matrix order has to be asked for.
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - in: The reader for interactive input (typically os.Stdin).
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, in io.Reader, out io.Writer) int {
	level, err := logging.ParseLevel(a.Config.LogLevel)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	logging.Setup(a.ErrWriter, level, a.Config.JSONOutput)

	// Initialize CLI theme (respects --no-color flag and NO_COLOR env var)
	ui.InitTheme(a.Config.NoColor, a.Config.Theme)

	if a.Config.ServerMode {
		return a.runServer(ctx)
	}
	if a.Config.Sweep > 0 {
		return a.runSweep(ctx, out)
	}
	return a.runMultiply(ctx, in, out)
}

// runServer starts the HTTP server mode.
func (a *Application) runServer(ctx context.Context) int {
	srv := server.NewServer(a.Factory, a.Config, server.WithLogger(logging.NewLogger(a.ErrWriter, "server")))
	err := srv.Start(ctx)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
	}
	return apperrors.ExitCodeFor(err)
}

// runSweep benchmarks both algorithms over increasing orders.
func (a *Application) runSweep(ctx context.Context, out io.Writer) int {
	ctx, cancel := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancel.Cleanup()

	return sweep.RunSweep(ctx, a.Config, a.Factory, out, logging.NewLogger(a.ErrWriter, "sweep"))
}

// runMultiply orchestrates a single benchmark: read the order if needed,
// generate the operands, run the algorithms, print the statistics and
// write the report.
func (a *Application) runMultiply(ctx context.Context, in io.Reader, out io.Writer) int {
	verbose := !a.Config.Quiet && !a.Config.JSONOutput

	order := a.Config.Order
	if order == 0 {
		// The greeting only makes sense for a person at a terminal.
		promptOut := io.Discard
		if verbose && cli.IsInteractive(in) {
			promptOut = out
		}
		var err error
		if order, err = cli.PromptOrder(in, promptOut); err != nil {
			if errors.Is(err, cli.ErrNoOrder) {
				err = apperrors.NewConfigError("%v: pass -n or answer the prompt", err)
			}
			return apperrors.HandleRunError(err, 0, out, cli.CLIColorProvider{})
		}
		if order > config.MaxOrder {
			err := apperrors.NewConfigError("matrix order %d exceeds the maximum of %d", order, config.MaxOrder)
			return apperrors.HandleRunError(err, 0, out, cli.CLIColorProvider{})
		}
	}

	// Setup lifecycle (timeout + signals)
	ctx, cancel := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancel.Cleanup()

	gen, err := matrix.NewGenerator(a.Config.Min, a.Config.Max, a.Config.Seed)
	if err != nil {
		return apperrors.HandleRunError(apperrors.NewConfigError("%v", err), 0, out, cli.CLIColorProvider{})
	}
	ma, mb, err := gen.Pair(order)
	if err != nil {
		return apperrors.HandleRunError(err, 0, out, cli.CLIColorProvider{})
	}

	algos := cli.GetAlgorithmsToRun(a.Config, a.Factory)
	if verbose {
		cli.PrintExecutionConfig(a.Config, order, gen.Seed(), out)
		if a.Config.PrintMatrices {
			_ = cli.PrintMatrix(out, "A", ma)
			_ = cli.PrintMatrix(out, "B", mb)
		}
		cli.PrintExecutionMode(algos, a.Config.Concurrent, out)
	}

	progressOut := out
	if !verbose {
		progressOut = io.Discard
	}
	results := orchestration.ExecuteBenchmarks(ctx, algos, ma, mb, a.Config, progressOut)
	deltas := orchestration.ComputeDeltas(results)

	var exitCode int
	if a.Config.JSONOutput {
		exitCode = orchestration.AnalyzeComparisonResults(results, a.Config, io.Discard)
		resp := service.BuildResponse(gen, ma, mb, results, a.Config.PrintMatrices && order <= service.DefaultProductLimit)
		if err := printJSON(resp, out); err != nil {
			a.Logger.Error("cannot encode JSON output", err)
			return apperrors.ExitErrorGeneric
		}
	} else {
		if verbose {
			a.displayRuns(results, deltas, order, out)
		}
		exitCode = orchestration.AnalyzeComparisonResults(results, a.Config, out)
	}

	if a.Config.OutputFile != "" {
		if err := cli.WriteReport(a.Config.OutputFile, buildReport(ma, mb, results, deltas)); err != nil {
			a.Logger.Error("cannot write report", err, logging.String("path", a.Config.OutputFile))
			fmt.Fprintf(a.ErrWriter, "Error saving report: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		if verbose {
			fmt.Fprintf(out, "\n%s✓ Report saved to: %s%s%s\n",
				cli.ColorGreen(), cli.ColorCyan(), a.Config.OutputFile, cli.ColorReset())
		}
	}
	return exitCode
}

// displayRuns prints each successful product followed by its statistics
// block. The first result is the baseline of the differences.
func (a *Application) displayRuns(results []orchestration.BenchmarkResult, deltas []*multiply.Delta, order int, out io.Writer) {
	for i, res := range results {
		if res.Err != nil {
			continue
		}
		label := cli.AlgorithmLabel(res.Name)
		if a.Config.PrintMatrices {
			_ = cli.PrintProduct(out, label, res.Product.Matrix)
		} else {
			fmt.Fprintln(out)
		}
		if deltas[i] == nil {
			cli.DisplayStats(out, label, res.Product.Stats, order)
		} else {
			cli.DisplayDelta(out, label, res.Product.Stats, *deltas[i], order)
		}
	}
}

func buildReport(ma, mb *matrix.Matrix, results []orchestration.BenchmarkResult, deltas []*multiply.Delta) cli.Report {
	r := cli.Report{Order: ma.Order(), A: ma, B: mb}
	for i, res := range results {
		if res.Err != nil {
			continue
		}
		r.Runs = append(r.Runs, cli.ReportEntry{
			Label:   cli.AlgorithmLabel(res.Name),
			Product: res.Product.Matrix,
			Stats:   res.Product.Stats,
			Delta:   deltas[i],
		})
	}
	return r
}

// printJSON writes resp as indented JSON.
func printJSON(resp any, out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// IsHelpError checks if the error is a help flag error (--help was used).
// This is useful for determining if the application should exit with success
// after displaying help text.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
