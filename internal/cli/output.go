package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/roach88/lawbook/internal/errors"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Catalog outcome: law not found / law already exists
	ExitCommandError = 2 // Command error (bad flags, unreadable file, storage failure)
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeStorage     = "E002" // Catalog storage unavailable
	ErrCodeInvalidFile = "E003" // Catalog file unreadable or invalid
	ErrCodeWriteFailed = "E004" // Export write error

	// Catalog outcomes
	ErrCodeLawNotFound = "E101" // No law matches the given name
	ErrCodeLawExists   = "E102" // A law with that name already exists
)

// Fixed notices shown for the two catalog outcomes.
const (
	MsgLawNotFound = "law not found"
	MsgLawExists   = "law already exists"
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code     int    // Exit code (use ExitFailure or ExitCommandError)
	Message  string // Error message
	Err      error  // Underlying error (optional)
	Reported bool   // Already written through an OutputFormatter
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitCommandError (2) if the error is not an ExitError; cobra's own
// argument and flag errors land here.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// IsReported reports whether err has already been rendered to the user.
func IsReported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Reported
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`              // "E001", "E101", etc.
	Message string      `json:"message"`           // human-readable message
	Details interface{} `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	// Human-readable text output
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Report outputs text in text mode and data in JSON mode.
func (f *OutputFormatter) Report(text string, data interface{}) error {
	if f.Format == "json" {
		return f.Success(data)
	}
	_, err := io.WriteString(f.Writer, text)
	return err
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	// Human-readable error
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

// fail renders err and returns an ExitError marked as reported.
func (f *OutputFormatter) fail(exitCode int, code, message string, err error) error {
	var details interface{}
	if err != nil {
		details = err.Error()
	}
	if ferr := f.Error(code, message, details); ferr != nil {
		return WrapExitError(ExitCommandError, "write output", ferr)
	}
	return &ExitError{Code: exitCode, Message: message, Err: err, Reported: true}
}
