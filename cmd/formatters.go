package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"smartlink/pkg/config"
	"smartlink/pkg/errors"
	"smartlink/pkg/notify"
	"smartlink/pkg/smartlink"

	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	// FormatTable is the default human-readable format
	FormatTable OutputFormat = "table"
	// FormatJSON outputs as JSON
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs as YAML
	FormatYAML OutputFormat = "yaml"
)

// OutputWriter handles structured output formatting
type OutputWriter struct {
	format OutputFormat
	writer io.Writer
}

// NewOutputWriter creates a new output writer with the specified format
func NewOutputWriter(format string, writer io.Writer) *OutputWriter {
	f := OutputFormat(format)
	if f != FormatJSON && f != FormatYAML {
		f = FormatTable
	}
	return &OutputWriter{
		format: f,
		writer: writer,
	}
}

// IsStructured returns true if the format is JSON or YAML
func (w *OutputWriter) IsStructured() bool {
	return w.format == FormatJSON || w.format == FormatYAML
}

// Write outputs the data in the configured format. Table output is left to
// the individual commands.
func (w *OutputWriter) Write(data interface{}) error {
	switch w.format {
	case FormatJSON:
		encoder := json.NewEncoder(w.writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(data); err != nil {
			return errors.Wrap(err, errors.ErrMsgOutputEncode)
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(w.writer)
		defer encoder.Close()
		if err := encoder.Encode(data); err != nil {
			return errors.Wrap(err, errors.ErrMsgOutputEncode)
		}
	}
	return nil
}

// ValidFormats returns a list of valid output formats
func ValidFormats() []string {
	return []string{"table", "json", "yaml"}
}

// newKit builds the interaction kit from cfg. Toasts go to stderr or the
// desktop, per notifications.renderer, unless --quiet is set.
func newKit(cfg *config.Config) *smartlink.Kit {
	kit := smartlink.FromConfig(cfg, os.Stderr)
	if quietFlag {
		return kit
	}
	switch cfg.Notifications.Renderer {
	case config.RendererDesktop:
		notify.NewDesktopRenderer(kit.Tree(), nil)
	default:
		notify.NewTerminalRenderer(kit.Tree(), os.Stderr)
	}
	return kit
}

// finishToasts keeps the process alive until every toast has run its
// timeline, so the user sees it slide in and out.
func finishToasts(ctx context.Context, kit *smartlink.Kit) error {
	if quietFlag {
		return nil
	}
	if err := kit.Wait(ctx); err != nil {
		return errors.CancelledError(errors.ErrMsgToastsPending)
	}
	return nil
}
