package cmd

import (
	"strings"

	"smartlink/pkg/errors"

	"github.com/spf13/cobra"
)

var notifySeverity string

var notifyCmd = &cobra.Command{
	Use:   "notify <message>",
	Short: "Show a toast notification",
	Long: `Show a transient toast notification. The toast slides in, stays for the
configured display duration and slides out again. Unknown severities are
shown as info.`,
	Example: `  smartlink notify "Deploy finished" --severity success
  smartlink notify "Disk almost full" -s warning`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message := strings.TrimSpace(strings.Join(args, " "))
		if message == "" {
			return errors.ValidationError(errors.ErrMsgInvalidInput + ": empty message")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := GetContext()
		defer cancel()

		kit := newKit(cfg)
		kit.Notify(message, notifySeverity)
		return finishToasts(ctx, kit)
	},
}

func init() {
	notifyCmd.Flags().StringVarP(&notifySeverity, "severity", "s", "info", "Severity (success, error, warning, info)")
}
