package sweep

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/agbru/matmulbench/internal/cli"
	apperrors "github.com/agbru/matmulbench/internal/errors"
)

// Chart dimensions.
const (
	PlotWidth  = 8 * vg.Inch
	PlotHeight = 5 * vg.Inch
)

// PrintTable formats and prints the sweep results table.
func PrintTable(out io.Writer, result Result) {
	fmt.Fprintf(out, "\n--- Sweep Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sOrder%s\t│ %sNaive%s\t%sStrassen%s\t%sNaive ops%s\t%sStrassen ops%s\n",
		cli.ColorBold(), cli.ColorReset(), cli.ColorBold(), cli.ColorReset(), cli.ColorBold(), cli.ColorReset(),
		cli.ColorBold(), cli.ColorReset(), cli.ColorBold(), cli.ColorReset())
	fmt.Fprintf(tw, "  %s\t┼%s\n", strings.Repeat("─", 7), strings.Repeat("─", 60))
	for _, row := range result.Rows {
		naiveTime := fmt.Sprintf("%sN/A%s", cli.ColorRed(), cli.ColorReset())
		strassenTime := naiveTime
		if row.NaiveErr == nil {
			naiveTime = cli.FormatMillis(row.Naive.Elapsed)
		}
		if row.StrassenErr == nil {
			strassenTime = cli.FormatMillis(row.Strassen.Elapsed)
		}
		naiveOps, strassenOps := row.Ops()
		highlight := ""
		if row.Order == result.TimeCrossover {
			highlight = fmt.Sprintf(" %s(Strassen faster)%s", cli.ColorGreen(), cli.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%d%s\t│ %s\t%s%s%s\t%d\t%d%s\n",
			cli.ColorCyan(), row.Order, cli.ColorReset(),
			naiveTime, cli.ColorYellow(), strassenTime, cli.ColorReset(),
			naiveOps, strassenOps, highlight)
	}
	tw.Flush()

	if result.TimeCrossover > 0 {
		fmt.Fprintf(out, "\n%s✅ Strassen's algorithm is faster from order %d on this machine.%s\n",
			cli.ColorGreen(), result.TimeCrossover, cli.ColorReset())
	} else {
		fmt.Fprintf(out, "\n%sThe triple loop was faster at every measured order.%s\n", cli.ColorYellow(), cli.ColorReset())
	}
	if result.OpsCrossover > 0 {
		fmt.Fprintf(out, "Strassen's algorithm needs fewer scalar operations from order %d.\n", result.OpsCrossover)
	}
}

// WritePlot renders the execution time of both algorithms against the
// order as a line chart. The image format follows the extension of path
// (.png, .svg, .pdf, ...). Failed measurements are left out.
func WritePlot(path string, rows []Row) error {
	naive := make(plotter.XYs, 0, len(rows))
	strassen := make(plotter.XYs, 0, len(rows))
	for _, row := range rows {
		if row.NaiveErr == nil {
			naive = append(naive, plotter.XY{X: float64(row.Order), Y: row.Naive.ElapsedMillis()})
		}
		if row.StrassenErr == nil {
			strassen = append(strassen, plotter.XY{X: float64(row.Order), Y: row.Strassen.ElapsedMillis()})
		}
	}
	if len(naive) == 0 && len(strassen) == 0 {
		return apperrors.OutputError{Path: path, Cause: fmt.Errorf("no measurements to plot")}
	}

	p := plot.New()
	p.Title.Text = "Matrix multiplication: naive vs Strassen"
	p.X.Label.Text = "Order (n)"
	p.Y.Label.Text = "Execution time (ms)"
	p.Add(plotter.NewGrid())

	if err := plotutil.AddLinePoints(p, "Naive", naive, "Strassen", strassen); err != nil {
		return apperrors.OutputError{Path: path, Cause: err}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.OutputError{Path: path, Cause: err}
		}
	}
	if err := p.Save(PlotWidth, PlotHeight, path); err != nil {
		return apperrors.OutputError{Path: path, Cause: err}
	}
	return nil
}
