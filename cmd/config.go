package cmd

import (
	"fmt"
	"os"

	"smartlink/pkg/config"
	"smartlink/pkg/errors"
	"smartlink/pkg/logger"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage smartlink configuration",
	Long:  `Inspect and create the smartlink configuration file that controls toast timing, clipboard backends and analytics refresh.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration: file values with environment overrides and defaults applied.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		output := NewOutputWriter(outputFormat, cmd.OutOrStdout())
		if output.IsStructured() {
			return output.Write(cfg)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Current Configuration:")
		fmt.Fprintln(out, "======================")
		fmt.Fprintln(out, "Notifications:")
		fmt.Fprintf(out, "  Show delay:       %s\n", cfg.Notifications.ShowDelay)
		fmt.Fprintf(out, "  Display duration: %s\n", cfg.Notifications.DisplayDuration)
		fmt.Fprintf(out, "  Exit duration:    %s\n", cfg.Notifications.ExitDuration)
		fmt.Fprintf(out, "  Renderer:         %s\n", cfg.Notifications.Renderer)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Clipboard:")
		fmt.Fprintf(out, "  Backend: %s\n", cfg.Clipboard.Backend)
		fmt.Fprintf(out, "  Command: %s\n", cfg.Clipboard.Command)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Analytics:")
		fmt.Fprintf(out, "  Refresh interval: %s\n", cfg.Analytics.RefreshInterval)
		fmt.Fprintf(out, "  Refresh delay:    %s\n", cfg.Analytics.RefreshDelay)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long:  `Write a configuration file holding the built-in defaults. An existing file is only replaced after confirmation or with --yes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return errors.NewWithError(errors.ExitCodeConfig, "failed to get config path", err)
		}

		if _, err := os.Stat(path); err == nil {
			ok, err := ConfirmPrompt(fmt.Sprintf("%s exists. Overwrite it?", path))
			if err != nil {
				return errors.NewWithError(errors.ExitCodeGeneral, "failed to read confirmation", err)
			}
			if !ok {
				return errors.CancelledError("config init")
			}
		}

		if err := config.Save(config.Default()); err != nil {
			return errors.Wrap(err, errors.ErrMsgConfigSave)
		}
		logger.Info().Str("path", path).Msg("default configuration written")
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return errors.NewWithError(errors.ExitCodeConfig, "failed to get config path", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&assumeYesFlag, "yes", "y", false, "Overwrite an existing file without asking")
}
