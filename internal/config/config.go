// Package config provides the configuration management for matmulbench.
// It defines the configuration structure, parses command-line arguments,
// applies environment overrides and validates the result.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/matmulbench/internal/errors"
	"github.com/agbru/matmulbench/internal/logging"
	"github.com/agbru/matmulbench/internal/matrix"
	"github.com/agbru/matmulbench/internal/ui"
)

// EnvPrefix is the prefix of every environment variable read by matmulbench.
const EnvPrefix = "MATMUL_"

// Default configuration values.
const (
	// DefaultOrder is 0, which means "ask interactively".
	DefaultOrder = 0
	// DefaultMin and DefaultMax bound the random fill of the operands.
	DefaultMin = matrix.DefaultMin
	DefaultMax = matrix.DefaultMax
	// DefaultTimeout bounds a whole benchmark run.
	DefaultTimeout = 5 * time.Minute
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultAlgo runs every registered algorithm.
	DefaultAlgo = "all"
	// DefaultOutputFile is where the text report is written.
	DefaultOutputFile = "matrixMult.txt"
	// DefaultLogLevel is the zerolog level name.
	DefaultLogLevel = "info"
	DefaultTheme    = "dark"
	// MaxOrder is the largest order accepted from the command line. The
	// naive product of two 4096x4096 matrices already takes minutes.
	MaxOrder = 4096
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Order is the side length of the square operands. Zero requests an
	// interactive prompt.
	Order int
	// Min and Max bound the uniformly drawn operand entries (inclusive).
	Min int64
	Max int64
	// Seed makes the operands reproducible. Zero picks a time-based seed.
	Seed uint64
	// Algo selects "all" or a single registered algorithm.
	Algo string
	// Timeout sets the maximum duration of a run.
	Timeout time.Duration
	// OutputFile is the path of the text report. Empty disables it.
	OutputFile string
	// PrintMatrices prints the operands and the products on the console.
	PrintMatrices bool
	// StrassenPad lets Strassen zero-pad orders that are not powers of two.
	StrassenPad bool
	// Concurrent runs the algorithms side by side instead of one at a time.
	Concurrent bool
	// JSONOutput prints the results as JSON.
	JSONOutput bool
	// Quiet suppresses banners, progress and matrices.
	Quiet bool
	// NoColor disables colored output (NO_COLOR is honored as well).
	NoColor bool
	// Theme names the console color theme.
	Theme string
	// Sweep, when positive, benchmarks every power-of-two order up to Sweep.
	Sweep int
	// PlotFile is the PNG chart written by a sweep. Empty disables it.
	PlotFile string
	// ServerMode starts the HTTP API instead of a console run.
	ServerMode bool
	// Port is the HTTP port in server mode.
	Port string
	// LogLevel is the zerolog level name.
	LogLevel string
}

// Validate checks the semantic consistency of the configuration.
// availableAlgos lists the registered algorithm keys.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Order < 0 {
		return apperrors.NewConfigError("matrix order cannot be negative: %d", c.Order)
	}
	if c.Order > MaxOrder {
		return apperrors.NewConfigError("matrix order %d exceeds the maximum of %d", c.Order, MaxOrder)
	}
	if c.Min > c.Max {
		return apperrors.NewConfigError("invalid value range: min %d is greater than max %d", c.Min, c.Max)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.Sweep < 0 || c.Sweep > MaxOrder {
		return apperrors.NewConfigError("sweep limit must be between 0 and %d: %d", MaxOrder, c.Sweep)
	}
	if c.PlotFile != "" && c.Sweep == 0 {
		return apperrors.NewConfigError("-plot requires -sweep")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if _, ok := ui.LookupTheme(c.Theme); !ok {
		return apperrors.NewConfigError("unknown theme %q, expected one of [%s]", c.Theme, strings.Join(ui.ThemeNames(), ", "))
	}
	isAlgoAvailable := false
	for _, a := range availableAlgos {
		if a == c.Algo {
			isAlgoAvailable = true
			break
		}
	}
	if c.Algo != DefaultAlgo && !isAlgoAvailable {
		return apperrors.NewConfigError("unrecognized algorithm: '%s'. Valid algorithms are: 'all' or [%s]", c.Algo, strings.Join(availableAlgos, ", "))
	}
	return nil
}

// ParseConfig parses args (without the program name) into an AppConfig,
// applies MATMUL_* environment overrides for flags that were not set and
// validates the result. Usage and errors are written to errorWriter.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	algoHelp := fmt.Sprintf("Algorithm to run: 'all' or one of [%s].", strings.Join(availableAlgos, ", "))

	config := AppConfig{}
	fs.IntVar(&config.Order, "n", DefaultOrder, "Order of the square matrices (0 prompts for it).")
	fs.Int64Var(&config.Min, "min", DefaultMin, "Smallest random entry (inclusive).")
	fs.Int64Var(&config.Max, "max", DefaultMax, "Largest random entry (inclusive).")
	fs.Uint64Var(&config.Seed, "seed", 0, "Seed for the random operands (0 picks one from the clock).")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, algoHelp)
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the whole run.")
	fs.StringVar(&config.OutputFile, "output", DefaultOutputFile, "Path of the text report (empty disables it).")
	fs.StringVar(&config.OutputFile, "o", DefaultOutputFile, "Path of the text report (shorthand).")
	fs.BoolVar(&config.PrintMatrices, "print", true, "Print the operands and the products.")
	fs.BoolVar(&config.StrassenPad, "strassen-pad", false, "Zero-pad Strassen operands whose order is not a power of two.")
	fs.BoolVar(&config.Concurrent, "concurrent", false, "Run the algorithms concurrently (timings then interfere).")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.Theme, "theme", DefaultTheme, fmt.Sprintf("Color theme: %s.", strings.Join(ui.ThemeNames(), ", ")))
	fs.IntVar(&config.Sweep, "sweep", 0, "Benchmark every power-of-two order up to this value.")
	fs.StringVar(&config.PlotFile, "plot", "", "Write a PNG chart of the sweep timings to this path.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error or disabled.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&config, fs)

	config.Algo = strings.ToLower(config.Algo)
	if err := config.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.Join(errors.New("invalid configuration"), err)
	}
	return config, nil
}
