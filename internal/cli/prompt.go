package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	apperrors "github.com/agbru/matmulbench/internal/errors"
)

// MaxPromptAttempts bounds how many invalid answers PromptOrder tolerates.
const MaxPromptAttempts = 3

// ErrNoOrder is returned when the input ends before an order was read.
var ErrNoOrder = errors.New("no matrix order provided")

// PromptOrder greets the user and reads the matrix order from in. Invalid
// answers (not an integer, or smaller than 1) are reported and asked again
// up to MaxPromptAttempts times.
func PromptOrder(in io.Reader, out io.Writer) (int, error) {
	fmt.Fprintf(out, "%sGreetings, and welcome to the Matrix!%s\n", ColorBold(), ColorReset())
	fmt.Fprintln(out, "What size matrices do you wish to multiply?")
	fmt.Fprintln(out, "For instance, if you desire a 64x64 matrix, simply enter '64':")

	scanner := bufio.NewScanner(in)
	for attempt := 1; attempt <= MaxPromptAttempts; attempt++ {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, apperrors.WrapError(err, "reading matrix order")
			}
			return 0, ErrNoOrder
		}
		answer := strings.TrimSpace(scanner.Text())
		order, err := strconv.Atoi(answer)
		if err == nil && order >= 1 {
			return order, nil
		}
		fmt.Fprintf(out, "%s%q is not a valid order.%s Please enter a whole number of at least 1:\n",
			ColorRed(), answer, ColorReset())
	}
	return 0, apperrors.NewConfigError("no valid matrix order after %d attempts", MaxPromptAttempts)
}

// IsInteractive reports whether r is a terminal, in which case prompting
// makes sense.
func IsInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
