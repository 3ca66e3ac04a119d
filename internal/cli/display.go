package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/matmulbench/internal/matrix"
	"github.com/agbru/matmulbench/internal/multiply"
)

// Cell widths of the console and report renderings.
const (
	OperandWidth = 4
	ProductWidth = 5
)

// AlgorithmLabel returns the short label used in the statistics blocks for
// an algorithm display name, falling back to the name itself.
func AlgorithmLabel(name string) string {
	switch {
	case strings.HasPrefix(name, "Naive"):
		return "Naive"
	case strings.HasPrefix(name, "Strassen"):
		return "Strassen's"
	default:
		return name
	}
}

// PrintMatrix writes an operand under a "Matrix <title>" heading.
func PrintMatrix(out io.Writer, title string, m *matrix.Matrix) error {
	if _, err := fmt.Fprintf(out, "\nMatrix %s\n", title); err != nil {
		return err
	}
	return matrix.Fprint(out, m, OperandWidth, "\n")
}

// PrintProduct writes a product matrix, leaving a blank line after each row
// so wide products stay readable.
func PrintProduct(out io.Writer, label string, m *matrix.Matrix) error {
	if _, err := fmt.Fprintf(out, "\nProduct of matrices A and B using %s Algorithm: \n", label); err != nil {
		return err
	}
	return matrix.Fprint(out, m, ProductWidth, "\n\n")
}

// palette holds the escape codes of a statistics block. The zero value
// renders plain text.
type palette struct {
	time, count, lower, higher, reset string
}

func themePalette() palette {
	return palette{
		time:   ColorGreen(),
		count:  ColorCyan(),
		lower:  ColorGreen(),
		higher: ColorYellow(),
		reset:  ColorReset(),
	}
}

// DisplayStats writes the statistics block of a baseline run: execution
// time, operation counts and the n³ reference.
func DisplayStats(out io.Writer, label string, stats multiply.Stats, order int) {
	writeStats(out, themePalette(), label, stats, nil, order)
}

// DisplayDelta writes the statistics block of a run compared against the
// baseline, each figure followed by its difference from it.
func DisplayDelta(out io.Writer, label string, stats multiply.Stats, delta multiply.Delta, order int) {
	writeStats(out, themePalette(), label, stats, &delta, order)
}

func writeStats(out io.Writer, p palette, label string, stats multiply.Stats, delta *multiply.Delta, order int) {
	fmt.Fprintf(out, "Execution time for %s algorithm: %s%s%s\n", label, p.time, FormatMillis(stats.Elapsed), p.reset)
	if delta == nil {
		fmt.Fprintf(out, "# of additions: %s%d%s\n", p.count, stats.Additions, p.reset)
		fmt.Fprintf(out, "# of multiplications: %s%d%s\n", p.count, stats.Multiplications, p.reset)
	} else {
		fmt.Fprintf(out, "Difference from naive algo execute time: %s\n",
			p.signed(FormatMillis(delta.Elapsed), delta.Elapsed < 0))
		fmt.Fprintf(out, "# of additions/subtractions: %s%d%s, Difference from naive algo: %s\n",
			p.count, stats.Additions, p.reset, p.signed(fmt.Sprintf("%d", delta.Additions), delta.Additions < 0))
		fmt.Fprintf(out, "# of multiplications: %s%d%s, Difference from naive algo: %s\n",
			p.count, stats.Multiplications, p.reset, p.signed(fmt.Sprintf("%d", delta.Multiplications), delta.Multiplications < 0))
	}
	fmt.Fprintf(out, "Matrix Order = %d, n cubed (for reference) = %d\n", order, multiply.Cube(order))
}

// signed colors a difference: green when the compared run did less work.
func (p palette) signed(s string, lower bool) string {
	if lower {
		return p.lower + s + p.reset
	}
	return p.higher + s + p.reset
}
