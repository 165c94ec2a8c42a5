package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"smartlink/pkg/completions"
	"smartlink/pkg/config"
	"smartlink/pkg/errors"
	"smartlink/pkg/logger"

	"github.com/spf13/cobra"
)

const (
	unknownValue = "unknown"
)

var (
	Version   string
	BuildTime string
	GitCommit string
)

var outputFormat string
var logLevel string
var quietFlag bool

var rootCmd = &cobra.Command{
	Use:   "smartlink",
	Short: "Share links from the terminal",
	Long: `Copy share links to the clipboard with toast feedback, validate URLs and
form values, and format click statistics. Configuration lives in the user
config directory (smartlink/config.yaml) and can be overridden with
SMARTLINK_* environment variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Set log level: explicit flag takes precedence over env var
		level := logLevel
		if !cmd.Flags().Changed("log-level") {
			if envLevel := os.Getenv(logger.EnvLevel); envLevel != "" {
				level = envLevel
			}
		}
		logger.SetLevel(level)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		ver := Version
		if ver == "" {
			ver = "dev"
		}
		bt := BuildTime
		if bt == "" {
			bt = unknownValue
		}
		gc := GitCommit
		if gc == "" {
			gc = unknownValue
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "smartlink version %s\n", ver)
		fmt.Fprintf(out, "Built: %s\n", bt)
		fmt.Fprintf(out, "Git commit: %s\n", gc)
	},
}

func Execute() {
	// Subcommand flags are defined in their own init funcs, so completions
	// are attached once all of them have run.
	completions.RegisterCompletions(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		exitCode := errors.HandleReturn(err)
		os.Exit(int(exitCode))
	}
}

// GetContext returns a context cancelled on interrupt.
func GetContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// loadConfig wraps config loading errors for display.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrMsgConfigLoad)
	}
	return cfg, nil
}

func init() {
	RegisterCommands(rootCmd)

	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "table", "Output format (table, json, yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error, disabled)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Do not print toast notifications")
}
