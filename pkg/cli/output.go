package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// OutputJSON writes v as indented JSON to w.
//
// Used by every command's --json mode, for both success and error payloads,
// so the output is always parseable by scripts.
func OutputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// OutputCompactJSON writes v as single-line JSON to w.
func OutputCompactJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	return enc.Encode(v)
}

// ErrorPayload is the structured error object emitted in --json mode.
type ErrorPayload struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the failure detail inside an ErrorPayload.
type ErrorBody struct {
	Code    int    `json:"code,omitempty"`
	Message string `json:"message"`
}

// OutputError writes a structured error object to w.
func OutputError(w io.Writer, code int, message string) error {
	return OutputCompactJSON(w, ErrorPayload{Error: ErrorBody{Code: code, Message: message}})
}

// Print helpers for terminal output.

var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.Faint)
	accentColor  = color.New(color.FgCyan)
)

// PrintSuccess prints a success message with a checkmark.
func PrintSuccess(format string, args ...any) {
	successColor.Print("✓ ")
	fmt.Printf(format+"\n", args...)
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	errorColor.Fprint(os.Stderr, "Error: ")
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// PrintWarning prints a warning message.
func PrintWarning(format string, args ...any) {
	warnColor.Print("⚠ ")
	fmt.Printf(format+"\n", args...)
}

// PrintDim prints a de-emphasized hint line.
func PrintDim(format string, args ...any) {
	dimColor.Printf(format+"\n", args...)
}

// PrintAccent prints an emphasized informational line.
func PrintAccent(format string, args ...any) {
	accentColor.Printf(format+"\n", args...)
}

// PrintVerbose prints verbose output to stderr when enabled.
func PrintVerbose(verbose bool, format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}
