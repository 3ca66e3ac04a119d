package matrix

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes m to w, one row per line, each element right-aligned in a
// field of the given width. rowSep is written after every row (use "\n" for
// single spacing, "\n\n" for the double spacing used for products).
func Fprint(w io.Writer, m *Matrix, width int, rowSep string) error {
	if m == nil {
		return ErrNilMatrix
	}
	var sb strings.Builder
	for i := 0; i < m.order; i++ {
		sb.Reset()
		for j := 0; j < m.order; j++ {
			fmt.Fprintf(&sb, "%*d", width, m.at(i, j))
		}
		sb.WriteString(rowSep)
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

// String renders the matrix with a width of 4, single spaced.
func (m *Matrix) String() string {
	var sb strings.Builder
	_ = Fprint(&sb, m, 4, "\n")
	return sb.String()
}
