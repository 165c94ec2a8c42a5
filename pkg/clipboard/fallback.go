package clipboard

import (
	"errors"

	"smartlink/pkg/notify"
	"smartlink/pkg/surface"
)

// ErrCommandUnsupported means the copy command cannot run at all on this host.
var ErrCommandUnsupported = errors.New("clipboard: copy command not supported")

// CopyCommand copies the currently selected content. It reports false when
// it ran but the host refused the copy.
type CopyCommand interface {
	CopySelection(selection string) (bool, error)
}

type Outcome int

const (
	Copied Outcome = iota
	CopyFailed
	CopyUnsupported
)

func (o Outcome) String() string {
	switch o {
	case Copied:
		return "copied"
	case CopyFailed:
		return "failed"
	case CopyUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

func (o Outcome) Message() string {
	switch o {
	case Copied:
		return MsgCopied
	case CopyFailed:
		return MsgCopyFailed
	default:
		return MsgUnsupported
	}
}

func (o Outcome) Severity() notify.Severity {
	if o == Copied {
		return notify.SeveritySuccess
	}
	return notify.SeverityError
}

// Fallback copies by staging text in an off-screen buffer, selecting it and
// running a synchronous copy command.
type Fallback struct {
	tree    *surface.Tree
	command CopyCommand
}

func NewFallback(tree *surface.Tree, command CopyCommand) *Fallback {
	return &Fallback{tree: tree, command: command}
}

// Copy stages text, runs the command and always detaches the buffer before
// returning.
func (f *Fallback) Copy(text string) Outcome {
	area := surface.NewElement("textarea")
	area.SetValue(text)
	area.SetStyle(
		"position", "fixed",
		"top", "-1000px",
		"left", "-1000px",
	)

	f.tree.Append(area)
	defer func() {
		_ = f.tree.Remove(area)
	}()

	if err := f.tree.Focus(area); err != nil {
		return CopyUnsupported
	}
	selection, err := f.tree.Select(area)
	if err != nil {
		return CopyUnsupported
	}

	if f.command == nil {
		return CopyUnsupported
	}
	ok, err := f.command.CopySelection(selection)
	switch {
	case err != nil:
		return CopyUnsupported
	case ok:
		return Copied
	default:
		return CopyFailed
	}
}
