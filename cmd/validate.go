package cmd

import (
	"fmt"

	"smartlink/pkg/errors"
	"smartlink/pkg/format"
	"smartlink/pkg/validate"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	fieldType      string
	fieldRequired  bool
	fieldMinLength int
	fieldMaxLength int
)

// ValidationOutput is the structured form of a validation result
type ValidationOutput struct {
	Value    string `json:"value" yaml:"value"`
	Valid    bool   `json:"valid" yaml:"valid"`
	Feedback string `json:"feedback,omitempty" yaml:"feedback,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate URLs and form values",
}

var validateURLCmd = &cobra.Command{
	Use:   "url <candidate>",
	Short: "Check that a string is an absolute URL",
	Example: `  smartlink validate url https://example.com
  smartlink validate url "not a url"   # exits with status 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result := ValidationOutput{Value: args[0], Valid: format.IsValidURL(args[0])}
		if !result.Valid {
			result.Feedback = "Please enter a valid URL."
		}
		if err := writeValidation(cmd, result); err != nil {
			return err
		}
		if !result.Valid {
			return errors.InvalidURLError(args[0])
		}
		return nil
	},
}

var validateFieldCmd = &cobra.Command{
	Use:   "field <value>",
	Short: "Validate a value the way a form field would",
	Example: `  smartlink validate field --type email me@example.com
  smartlink validate field --required --min-length 3 ab`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		field := validate.NewField("value", validate.FieldType(fieldType))
		field.Required = fieldRequired
		field.MinLength = fieldMinLength
		field.MaxLength = fieldMaxLength
		field.Input.SetValue(args[0])

		result := ValidationOutput{
			Value: args[0],
			Valid: validate.ValidateField(field),
		}
		if !result.Valid {
			result.Feedback = field.Feedback.Text()
		}
		if err := writeValidation(cmd, result); err != nil {
			return err
		}
		if !result.Valid {
			return errors.ValidationError(fmt.Sprintf("%q is not a valid %s value", args[0], fieldType))
		}
		return nil
	},
}

func writeValidation(cmd *cobra.Command, result ValidationOutput) error {
	output := NewOutputWriter(outputFormat, cmd.OutOrStdout())
	if output.IsStructured() {
		return output.Write(result)
	}

	out := cmd.OutOrStdout()
	if result.Valid {
		green := color.New(color.FgGreen)
		_, _ = green.Fprint(out, "✓ valid")
		fmt.Fprintf(out, "  %s\n", result.Value)
		return nil
	}
	red := color.New(color.FgRed)
	_, _ = red.Fprint(out, "✗ invalid")
	fmt.Fprintf(out, "  %s\n", result.Value)
	if result.Feedback != "" {
		fmt.Fprintf(out, "  %s\n", result.Feedback)
	}
	return nil
}

func init() {
	validateFieldCmd.Flags().StringVar(&fieldType, "type", "text", "Field type (text, email, url, number)")
	validateFieldCmd.Flags().BoolVar(&fieldRequired, "required", false, "Value must not be empty")
	validateFieldCmd.Flags().IntVar(&fieldMinLength, "min-length", 0, "Minimum length in characters")
	validateFieldCmd.Flags().IntVar(&fieldMaxLength, "max-length", 0, "Maximum length in characters")
}
