package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/roach88/tenniscalc/internal/query"
)

// OutputFormatter writes command results and errors as text or as a JSON
// envelope.
type OutputFormatter struct {
	Format    string // "text" or "json"
	Writer    io.Writer
	ErrWriter io.Writer // diagnostics; falls back to Writer
	Verbose   bool
}

// CLIResponse is the JSON envelope of every command result.
type CLIResponse struct {
	Status string    `json:"status"` // "ok" or "error"
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError is the error half of CLIResponse. Code is a scoring code such as
// "MATCH_NOT_FOUND" or one of the E00x infrastructure codes.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// textWriter is implemented by command results with a text rendering.
type textWriter interface {
	writeText(w io.Writer)
}

// Success writes a command result. In text mode, results that know how to
// render themselves do so, a query answer prints its response text, and
// anything else prints with its default format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}

	switch d := data.(type) {
	case textWriter:
		d.writeText(f.Writer)
	case query.Answer:
		fmt.Fprintln(f.Writer, d.Text)
	default:
		fmt.Fprintln(f.Writer, data)
	}
	return nil
}

// Error writes an error as "Error [CODE]: message", or as an error envelope
// in JSON mode. Details appear in text mode only when verbose.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog writes a diagnostic line when verbose. It goes to the error
// writer so JSON on the main writer stays parseable.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns ErrWriter, or Writer when none is set.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
