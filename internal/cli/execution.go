package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"

	"github.com/agbru/matmulbench/internal/config"
	"github.com/agbru/matmulbench/internal/multiply"
)

// GetAlgorithmsToRun returns the algorithms selected by cfg.Algo, in the
// factory's sorted key order. The naive algorithm therefore always comes
// first and serves as the baseline for deltas.
func GetAlgorithmsToRun(cfg config.AppConfig, factory multiply.Factory) []multiply.Algorithm {
	if cfg.Algo == config.DefaultAlgo {
		keys := factory.List()
		algos := make([]multiply.Algorithm, 0, len(keys))
		for _, k := range keys {
			if algo, err := factory.Get(k); err == nil {
				algos = append(algos, algo)
			}
		}
		return algos
	}
	if algo, err := factory.Get(cfg.Algo); err == nil {
		return []multiply.Algorithm{algo}
	}
	return nil
}

// PrintExecutionConfig displays the parameters of the run. seed is the
// effective seed, which differs from cfg.Seed when the latter is zero.
func PrintExecutionConfig(cfg config.AppConfig, order int, seed uint64, out io.Writer) {
	writeOut(out, "--- Execution Configuration ---\n")
	writeOut(out, "Multiplying two %s%dx%d%s matrices with entries in [%d, %d], seed %s%d%s, timeout %s%s%s.\n",
		ColorMagenta(), order, order, ColorReset(), cfg.Min, cfg.Max,
		ColorCyan(), seed, ColorReset(), ColorYellow(), cfg.Timeout, ColorReset())
	writeOut(out, "Environment: %s%d%s logical processors, Go %s%s%s, %s/%s.\n",
		ColorCyan(), runtime.NumCPU(), ColorReset(), ColorCyan(), runtime.Version(), ColorReset(),
		runtime.GOOS, runtime.GOARCH)
	if features := CPUFeatures(); len(features) > 0 {
		writeOut(out, "CPU features: %s.\n", strings.Join(features, ", "))
	}
}

// PrintExecutionMode displays whether one algorithm runs or several are
// compared, and whether the comparison is sequential.
func PrintExecutionMode(algos []multiply.Algorithm, concurrent bool, out io.Writer) {
	var modeDesc string
	switch {
	case len(algos) == 0:
		modeDesc = "No algorithm selected"
	case len(algos) == 1:
		modeDesc = fmt.Sprintf("Single run of the %s%s%s algorithm", ColorGreen(), algos[0].Name(), ColorReset())
	case concurrent:
		modeDesc = fmt.Sprintf("Concurrent comparison of %d algorithms (timings may interfere)", len(algos))
	default:
		modeDesc = fmt.Sprintf("Sequential comparison of %d algorithms", len(algos))
	}
	writeOut(out, "Execution mode: %s.\n", modeDesc)
	writeOut(out, "\n--- Starting Execution ---\n")
}

// CPUFeatures lists the SIMD extensions reported by golang.org/x/sys/cpu.
// They do not change the algorithms but help compare timings across
// machines.
func CPUFeatures() []string {
	var features []string
	add := func(ok bool, name string) {
		if ok {
			features = append(features, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasSSE42, "SSE4.2")
		add(cpu.X86.HasAVX, "AVX")
		add(cpu.X86.HasAVX2, "AVX2")
		add(cpu.X86.HasFMA, "FMA")
		add(cpu.X86.HasAVX512F, "AVX-512F")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "ASIMD")
		add(cpu.ARM64.HasSVE, "SVE")
	}
	return features
}

func writeOut(out io.Writer, format string, a ...any) {
	fmt.Fprintf(out, format, a...)
}
