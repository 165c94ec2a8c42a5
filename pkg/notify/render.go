package notify

import (
	"fmt"
	"io"
	"sync"

	"smartlink/pkg/surface"

	"github.com/charmbracelet/lipgloss"
)

var severityIcons = map[Severity]string{
	SeveritySuccess: "✓",
	SeverityError:   "✗",
	SeverityWarning: "!",
	SeverityInfo:    "i",
}

// ToastStyle is the lipgloss style used to print a toast of the given color.
func ToastStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ffffff")).
		Background(lipgloss.Color(color)).
		Bold(true).
		Padding(0, 2).
		MarginLeft(2)
}

// TerminalRenderer prints each toast once, at the moment it slides in.
type TerminalRenderer struct {
	mu      sync.Mutex
	out     io.Writer
	printed map[*surface.Element]bool
}

// NewTerminalRenderer starts watching tree and writes toasts to out.
func NewTerminalRenderer(tree *surface.Tree, out io.Writer) *TerminalRenderer {
	r := &TerminalRenderer{
		out:     out,
		printed: make(map[*surface.Element]bool),
	}
	tree.Watch(r.handle)
	return r
}

func (r *TerminalRenderer) handle(ev surface.Event) {
	el := ev.Element
	if !el.HasClass(ClassToast) {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	switch ev.Kind {
	case surface.Changed:
		if el.Style("opacity") != "1" || r.printed[el] {
			return
		}
		r.printed[el] = true
		fmt.Fprintln(r.out, ToastStyle(el.Style("background-color")).Render(toastLabel(el)))
	case surface.Detached:
		delete(r.printed, el)
	}
}

// toastSeverity reads the severity back from a toast's classes.
func toastSeverity(el *surface.Element) Severity {
	for _, s := range Severities() {
		if el.HasClass("toast-" + string(s)) {
			return s
		}
	}
	return SeverityInfo
}

func toastLabel(el *surface.Element) string {
	return severityIcons[toastSeverity(el)] + " " + el.Text()
}
