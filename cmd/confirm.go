package cmd

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

const (
	responseYes = "yes"
	responseY   = "y"
)

var assumeYesFlag bool

// ConfirmPrompt asks the user for confirmation on stdin
func ConfirmPrompt(message string) (bool, error) {
	if assumeYesFlag {
		return true, nil
	}
	return confirm(os.Stdin, os.Stderr, message)
}

func confirm(in io.Reader, out io.Writer, message string) (bool, error) {
	yellow := color.New(color.FgYellow)
	_, _ = yellow.Fprintf(out, "%s [y/N]: ", message)

	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == responseY || response == responseYes, nil
}
