package completions

import (
	"strings"

	"smartlink/pkg/config"
	"smartlink/pkg/notify"

	"github.com/spf13/cobra"
)

// CompletionFunc is the cobra flag completion signature.
type CompletionFunc = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective)

// Static returns a completion func offering "value\tdescription" items.
func Static(items ...string) CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return filterPrefix(items, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

func filterPrefix(items []string, prefix string) []string {
	var result []string
	for _, item := range items {
		itemName := strings.Split(item, "\t")[0]
		if strings.HasPrefix(strings.ToLower(itemName), strings.ToLower(prefix)) {
			result = append(result, item)
		}
	}
	return result
}

func severityItems() []string {
	items := make([]string, 0, 4)
	for _, s := range notify.Severities() {
		items = append(items, string(s)+"\t"+getSeverityDescription(s))
	}
	return items
}

func getSeverityDescription(s notify.Severity) string {
	switch s {
	case notify.SeveritySuccess:
		return "Green toast, operation succeeded"
	case notify.SeverityError:
		return "Red toast, operation failed"
	case notify.SeverityWarning:
		return "Yellow toast, needs attention"
	default:
		return "Blue toast, informational"
	}
}

var (
	CompleteSeverity = Static(severityItems()...)
	CompleteFormat   = Static(
		"table\tHuman-readable output",
		"json\tJSON output",
		"yaml\tYAML output",
	)
	CompleteLogLevel = Static("debug", "info", "warn", "error", "disabled")
	CompleteBackend  = Static(
		config.BackendAuto+"\tSystem clipboard, staged fallback on failure",
		config.BackendLegacy+"\tStaged fallback only",
	)
	CompleteCommand = Static(
		config.CommandAuto+"\tClipboard tool, then OSC 52",
		config.CommandOSC52+"\tTerminal OSC 52 escape sequence",
		config.CommandExec+"\tpbcopy, wl-copy, xclip or xsel",
	)
	CompleteFilterMode = Static("contains", "regex", "fuzzy")
)

// RegisterCompletions wires flag completions onto the commands that exist
// under rootCmd.
func RegisterCompletions(rootCmd *cobra.Command) {
	rootCmd.RegisterFlagCompletionFunc("format", CompleteFormat)
	rootCmd.RegisterFlagCompletionFunc("log-level", CompleteLogLevel)

	if notifyCmd, _, err := rootCmd.Find([]string{"notify"}); err == nil && notifyCmd != rootCmd {
		notifyCmd.RegisterFlagCompletionFunc("severity", CompleteSeverity)
	}

	if copyCmd, _, err := rootCmd.Find([]string{"copy"}); err == nil && copyCmd != rootCmd {
		copyCmd.RegisterFlagCompletionFunc("backend", CompleteBackend)
		copyCmd.RegisterFlagCompletionFunc("command", CompleteCommand)
	}

	if statsCmd, _, err := rootCmd.Find([]string{"stats"}); err == nil && statsCmd != rootCmd {
		statsCmd.RegisterFlagCompletionFunc("filter-mode", CompleteFilterMode)
	}
}
