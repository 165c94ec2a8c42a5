package cmd

import "github.com/spf13/cobra"

func RegisterCommands(root *cobra.Command) {
	root.AddCommand(versionCmd)
	root.AddCommand(copyCmd)
	root.AddCommand(notifyCmd)
	root.AddCommand(formatCmd)
	root.AddCommand(validateCmd)
	root.AddCommand(statsCmd)
	root.AddCommand(configCmd)

	formatCmd.AddCommand(
		formatNumberCmd,
		formatPercentCmd,
	)

	validateCmd.AddCommand(
		validateURLCmd,
		validateFieldCmd,
	)

	configCmd.AddCommand(
		configShowCmd,
		configInitCmd,
		configPathCmd,
	)
}
