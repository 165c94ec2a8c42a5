package clipboard

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"smartlink/pkg/logger"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/mattn/go-isatty"
)

// OSC52Command asks the terminal emulator to set the clipboard using an
// OSC 52 escape sequence.
type OSC52Command struct {
	Out        io.Writer
	IsTerminal func() bool
	Getenv     func(string) string
}

// NewOSC52Command writes sequences to f, which must be a terminal for the
// command to be supported.
func NewOSC52Command(f *os.File) *OSC52Command {
	return &OSC52Command{
		Out: f,
		IsTerminal: func() bool {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		},
		Getenv: os.Getenv,
	}
}

func (c *OSC52Command) CopySelection(selection string) (bool, error) {
	if c.Out == nil || (c.IsTerminal != nil && !c.IsTerminal()) {
		return false, ErrCommandUnsupported
	}

	getenv := c.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	seq := osc52.New(selection)
	switch {
	case getenv("TMUX") != "":
		seq = seq.Tmux()
	case getenv("STY") != "" || strings.HasPrefix(getenv("TERM"), "screen"):
		seq = seq.Screen()
	}

	if _, err := seq.WriteTo(c.Out); err != nil {
		logger.Component("clipboard").Debug().Err(err).Msg("osc52 write failed")
		return false, nil
	}
	return true, nil
}

// ExecCommand pipes the selection into the first clipboard tool found on
// PATH.
type ExecCommand struct {
	Candidates [][]string
	LookPath   func(string) (string, error)
	Run        func(name string, args []string, stdin string) error
}

// NewExecCommand uses the clipboard tools customary on this platform.
func NewExecCommand() *ExecCommand {
	return &ExecCommand{
		Candidates: platformTools(),
		LookPath:   exec.LookPath,
		Run:        runTool,
	}
}

func runTool(name string, args []string, stdin string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	return cmd.Run()
}

func (c *ExecCommand) CopySelection(selection string) (bool, error) {
	for _, candidate := range c.Candidates {
		if len(candidate) == 0 {
			continue
		}
		path, err := c.LookPath(candidate[0])
		if err != nil {
			continue
		}
		if err := c.Run(path, candidate[1:], selection); err != nil {
			logger.Component("clipboard").Debug().Err(err).Str("tool", candidate[0]).Msg("clipboard tool failed")
			return false, nil
		}
		return true, nil
	}
	return false, ErrCommandUnsupported
}

// ChainCommand runs the first member that supports this host.
type ChainCommand []CopyCommand

func (c ChainCommand) CopySelection(selection string) (bool, error) {
	for _, cmd := range c {
		ok, err := cmd.CopySelection(selection)
		if errors.Is(err, ErrCommandUnsupported) {
			continue
		}
		return ok, err
	}
	return false, ErrCommandUnsupported
}
