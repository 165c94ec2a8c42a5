package cmd

import (
	"fmt"
	"strconv"

	"smartlink/pkg/errors"
	"smartlink/pkg/format"

	"github.com/spf13/cobra"
)

// FormattedOutput is the structured form of a format command result
type FormattedOutput struct {
	Input  []string `json:"input" yaml:"input"`
	Result string   `json:"result" yaml:"result"`
}

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Format numbers for display",
	Long:  `Format click counts and percentages the way statistics pages show them.`,
}

var formatNumberCmd = &cobra.Command{
	Use:     "number <n>",
	Short:   "Insert thousands separators",
	Example: `  smartlink format number 1234567   # 1,234,567`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return errors.NewWithError(errors.ExitCodeValidation, fmt.Sprintf("%s: %q is not an integer", errors.ErrMsgInvalidInput, args[0]), err)
		}
		return writeFormatted(cmd, args, format.FormatNumber(n))
	},
}

var formatPercentCmd = &cobra.Command{
	Use:     "percent <value> <total>",
	Short:   "Show value as a percentage of total",
	Example: `  smartlink format percent 1 4   # 25.0%`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return errors.NewWithError(errors.ExitCodeValidation, fmt.Sprintf("%s: value %q", errors.ErrMsgInvalidInput, args[0]), err)
		}
		total, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return errors.NewWithError(errors.ExitCodeValidation, fmt.Sprintf("%s: total %q", errors.ErrMsgInvalidInput, args[1]), err)
		}
		return writeFormatted(cmd, args, format.FormatPercentage(value, total))
	},
}

func writeFormatted(cmd *cobra.Command, args []string, result string) error {
	output := NewOutputWriter(outputFormat, cmd.OutOrStdout())
	if output.IsStructured() {
		return output.Write(FormattedOutput{Input: args, Result: result})
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), result)
	return err
}
