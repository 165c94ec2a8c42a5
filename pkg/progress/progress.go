package progress

import (
	"fmt"
	"io"
	"strings"
)

const DefaultWidth = 20

// Bar renders a fixed-width horizontal bar filled in proportion to
// percent, which is clamped to [0, 100].
func Bar(percent float64, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100 * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// ShareBar writes a labelled bar line: "label [bar] text".
func ShareBar(w io.Writer, label string, percent float64, text string, width int) error {
	_, err := fmt.Fprintf(w, "%-20s [%s] %s\n", label, Bar(percent, width), text)
	return err
}
