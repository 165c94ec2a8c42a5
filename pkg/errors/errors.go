package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"smartlink/pkg/logger"

	"github.com/fatih/color"
)

type ExitCode int

const (
	ExitCodeSuccess       ExitCode = 0
	ExitCodeGeneral       ExitCode = 1
	ExitCodeConfig        ExitCode = 2
	ExitCodeValidation    ExitCode = 3
	ExitCodeFileOperation ExitCode = 4
	ExitCodeCopyFailed    ExitCode = 5
	ExitCodeCancellation  ExitCode = 6
)

// Standardized messages for user-facing errors
const (
	ErrMsgConfigLoad    = "Failed to load configuration"
	ErrMsgConfigSave    = "Failed to save configuration"
	ErrMsgInvalidInput  = "Invalid input provided"
	ErrMsgInvalidURL    = "Not a valid URL"
	ErrMsgCopyFailed    = "Could not copy to clipboard"
	ErrMsgOutputEncode  = "Failed to write output"
	ErrMsgToastsPending = "waiting for notifications"
)

type Error struct {
	Code       ExitCode
	Message    string
	Underlying error
	Suggestion string
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Underlying)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

func New(code ExitCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

func NewWithError(code ExitCode, message string, err error) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Underlying: err,
	}
}

func NewWithSuggestion(code ExitCode, message string, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap prefixes the message of err while keeping its exit code and suggestion.
// Plain errors become general failures.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	if wrapped, ok := err.(*Error); ok {
		return &Error{
			Code:       wrapped.Code,
			Message:    message + ": " + wrapped.Message,
			Underlying: wrapped.Underlying,
			Suggestion: wrapped.Suggestion,
		}
	}

	return &Error{
		Code:       ExitCodeGeneral,
		Message:    message,
		Underlying: err,
	}
}

func IsExitCode(err error, code ExitCode) bool {
	if err == nil {
		return false
	}

	if e, ok := err.(*Error); ok {
		return e.Code == code
	}

	return false
}

// HandleReturn prints err to stderr and returns the exit code the process
// should terminate with. The caller is responsible for exiting.
func HandleReturn(err error) ExitCode {
	return handleTo(os.Stderr, err)
}

func handleTo(w io.Writer, err error) ExitCode {
	if err == nil {
		return ExitCodeSuccess
	}

	exitCode := ExitCodeGeneral
	var message string
	var suggestion string

	if e, ok := err.(*Error); ok {
		exitCode = e.Code
		message = e.Message
		suggestion = e.Suggestion

		if e.Underlying != nil {
			message = e.Error()
			logger.Debug().Err(e.Underlying).Int("exit_code", int(e.Code)).Msg(e.Message)
		}
	} else {
		message = err.Error()
		logger.Debug().Err(err).Msg("command failed")
	}

	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	fmt.Fprintln(w)
	red.Fprint(w, "Error: ")
	fmt.Fprintln(w, message)

	if suggestion != "" {
		yellow.Fprint(w, "Suggestion: ")
		lines := strings.Split(strings.TrimRight(suggestion, "\n"), "\n")
		for i, line := range lines {
			switch {
			case i == 0:
				fmt.Fprintln(w, line)
			case strings.HasPrefix(line, "  -"):
				cyan.Fprintln(w, line)
			default:
				fmt.Fprintln(w, "            "+line)
			}
		}
	}

	fmt.Fprintln(w)

	return exitCode
}

func ConfigError(message string) *Error {
	return &Error{
		Code:       ExitCodeConfig,
		Message:    message,
		Suggestion: "Check ~/.config/smartlink/config.yaml or the SMARTLINK_* environment variables.",
	}
}

func ValidationError(message string) *Error {
	return &Error{
		Code:    ExitCodeValidation,
		Message: message,
	}
}

func InvalidURLError(candidate string) *Error {
	return &Error{
		Code:       ExitCodeValidation,
		Message:    fmt.Sprintf("%s: %q", ErrMsgInvalidURL, candidate),
		Suggestion: "Include the scheme, for example https://example.com/path",
	}
}

func CopyFailedError(reason string) *Error {
	return &Error{
		Code:       ExitCodeCopyFailed,
		Message:    ErrMsgCopyFailed,
		Suggestion: reason + "\nTry another fallback with --command (osc52, exec) or --backend legacy.",
	}
}

func CancelledError(operation string) *Error {
	return &Error{
		Code:       ExitCodeCancellation,
		Message:    fmt.Sprintf("Operation cancelled: %s", operation),
		Suggestion: "The operation was stopped before it completed.",
	}
}
