package cmd

import (
	"io"
	"strings"

	"smartlink/pkg/clipboard"
	"smartlink/pkg/errors"
	"smartlink/pkg/format"
	"smartlink/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	copyHTMLFlag    bool
	copyNoCheckFlag bool
	copyBackend     string
	copyCommand     string
)

var copyCmd = &cobra.Command{
	Use:   "copy [text]",
	Short: "Copy a link to the clipboard",
	Long: `Copy a link to the system clipboard. When the system clipboard is
unavailable or refuses the write, the link is copied with the configured
fallback command (a clipboard tool or an OSC 52 terminal sequence). The
outcome is shown as a toast notification.

Reads from stdin when no argument is given.`,
	Example: `  # Copy a short link
  smartlink copy https://sl.ink/launch

  # Copy an anchor as a Markdown link
  smartlink copy --html '<a href="https://sl.ink/launch">Launch</a>'

  # Skip the system clipboard
  smartlink copy --backend legacy --command osc52 https://sl.ink/launch`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readCopyInput(cmd, args)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("backend") {
			cfg.Clipboard.Backend = strings.ToLower(copyBackend)
		}
		if cmd.Flags().Changed("command") {
			cfg.Clipboard.Command = strings.ToLower(copyCommand)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		if !copyHTMLFlag && !copyNoCheckFlag && !format.IsValidURL(text) {
			return errors.InvalidURLError(text)
		}

		ctx, cancel := GetContext()
		defer cancel()

		kit := newKit(cfg)
		var copied bool
		if copyHTMLFlag {
			copied = kit.CopyHTML(ctx, text)
		} else {
			copied = kit.CopyToClipboard(ctx, text)
		}
		logger.Debug().Bool("copied", copied).Str("backend", cfg.Clipboard.Backend).Msg("copy finished")

		if err := finishToasts(ctx, kit); err != nil {
			return err
		}
		if !copied {
			last := kit.Center().History()
			reason := clipboard.MsgCopyFailed
			if len(last) > 0 {
				reason = last[len(last)-1].Message()
			}
			return errors.CopyFailedError(reason)
		}
		return nil
	},
}

func readCopyInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", errors.NewWithError(errors.ExitCodeFileOperation, "failed to read stdin", err)
	}
	text := strings.TrimRight(string(data), "\r\n")
	if text == "" {
		return "", errors.NewWithSuggestion(errors.ExitCodeValidation, errors.ErrMsgInvalidInput+": nothing to copy", "Pass the link as an argument or pipe it on stdin.")
	}
	return text, nil
}

func init() {
	copyCmd.Flags().BoolVar(&copyHTMLFlag, "html", false, "Treat the input as an HTML snippet and copy its Markdown form")
	copyCmd.Flags().BoolVar(&copyNoCheckFlag, "no-check", false, "Copy the input even if it is not a valid URL")
	copyCmd.Flags().StringVar(&copyBackend, "backend", "", "Clipboard backend (auto, legacy)")
	copyCmd.Flags().StringVar(&copyCommand, "command", "", "Fallback copy command (auto, osc52, exec)")
}
