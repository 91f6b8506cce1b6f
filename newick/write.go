package newick

import (
	"io"
	"strconv"
	"strings"

	"github.com/CDCgov/tidytree/tree"
)

// Marshal serializes the subtree rooted at b to Newick text, with a
// terminating semicolon. A branch length is written only when it is
// nonzero, and never in scientific notation.
func Marshal(b *tree.Branch) string {
	var buf strings.Builder
	marshal(&buf, b)
	buf.WriteByte(';')
	return buf.String()
}

// Write writes the subtree rooted at b to w as a single Newick line.
func Write(w io.Writer, b *tree.Branch) error {
	_, err := io.WriteString(w, Marshal(b)+"\n")
	return err
}

func marshal(buf *strings.Builder, b *tree.Branch) {
	if len(b.Children) > 0 {
		buf.WriteByte('(')
		for i, c := range b.Children {
			if i > 0 {
				buf.WriteByte(',')
			}
			marshal(buf, c)
		}
		buf.WriteByte(')')
	}
	buf.WriteString(b.ID)
	if b.Length != 0 {
		buf.WriteByte(':')
		buf.WriteString(formatLength(b.Length))
	}
}

// formatLength renders a branch length in plain decimal notation. The
// 'f' format expands very small and very large magnitudes instead of
// falling back to scientific notation, which Newick consumers routinely
// reject.
func formatLength(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
