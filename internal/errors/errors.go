// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package errors provides structured error handling for the kt2uml CLI.
//
// UserError carries what went wrong, why it happened and how to fix it,
// together with the exit code the process should end with.
//
// # Usage Example
//
//	err := errors.NewInputError(
//	    "Cannot render Main.kt",
//	    "syntax error at 3:14: unexpected '{'",
//	    "Fix the Kotlin source or pass --keep-going to render the other files",
//	)
//	errors.FatalError(err, false)
//
// # Formatted Output
//
// Format returns colored terminal output:
//
//	Error: Cannot render Main.kt
//	Cause: syntax error at 3:14: unexpected '{'
//	Fix:   Fix the Kotlin source or pass --keep-going to render the other files
//
// ToJSON returns the same information for --json mode:
//
//	{
//	  "error": "Cannot render Main.kt",
//	  "cause": "syntax error at 3:14: unexpected '{'",
//	  "fix": "Fix the Kotlin source or pass --keep-going to render the other files",
//	  "exit_code": 4
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Successful execution
//   - ExitConfig (1): Missing or invalid .kt2uml.yaml
//   - ExitIO (2): Reading sources or writing output failed
//   - ExitNetwork (3): The metrics listener could not start
//   - ExitInput (4): Bad arguments or Kotlin source that produced no diagram
//   - ExitPermission (5): Permission denied on a source file
//   - ExitNotFound (6): Source file not found
//   - ExitInternal (10): Bugs and unexpected panics
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Exit codes for different error categories.
const (
	ExitSuccess = 0

	// ExitConfig indicates a missing or invalid configuration file.
	ExitConfig = 1

	// ExitIO indicates a failure reading sources or writing output.
	ExitIO = 2

	// ExitNetwork indicates the metrics endpoint could not listen.
	ExitNetwork = 3

	// ExitInput indicates bad arguments or a document that produced no result.
	ExitInput = 4

	ExitPermission = 5

	ExitNotFound = 6

	// ExitInternal signals a bug that should be reported.
	ExitInternal = 10
)

// UserError is an error with structured context for end users.
type UserError struct {
	// Message describes what went wrong.
	Message string

	// Cause explains why it happened.
	Cause string

	// Fix suggests how to resolve it.
	Fix string

	// ExitCode is the process exit code for this error.
	ExitCode int

	// Err is the underlying error, kept for errors.Is/As.
	Err error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

func newUserError(code int, msg, cause, fix string, err error) *UserError {
	return &UserError{
		Message:  msg,
		Cause:    cause,
		Fix:      fix,
		ExitCode: code,
		Err:      err,
	}
}

// NewConfigError creates a configuration error with exit code ExitConfig.
//
// Example:
//
//	return NewConfigError(
//	    "Cannot load .kt2uml.yaml",
//	    "render.jobs: must be at least 1, got 0",
//	    "Edit .kt2uml.yaml or pass --config with another file",
//	    err,
//	)
func NewConfigError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitConfig, msg, cause, fix, err)
}

// NewIOError creates an error with exit code ExitIO for failed reads and
// writes that are neither missing files nor permission problems.
func NewIOError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitIO, msg, cause, fix, err)
}

// NewNetworkError creates an error with exit code ExitNetwork.
func NewNetworkError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitNetwork, msg, cause, fix, err)
}

// NewInputError creates an input error with exit code ExitInput. Input
// errors do not wrap an underlying error; put the diagnostic in cause.
func NewInputError(msg, cause, fix string) *UserError {
	return newUserError(ExitInput, msg, cause, fix, nil)
}

// NewPermissionError creates an error with exit code ExitPermission.
func NewPermissionError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitPermission, msg, cause, fix, err)
}

// NewNotFoundError creates an error with exit code ExitNotFound.
func NewNotFoundError(msg, cause, fix string) *UserError {
	return newUserError(ExitNotFound, msg, cause, fix, nil)
}

// NewInternalError creates an error with exit code ExitInternal.
//
// Example:
//
//	return NewInternalError(
//	    "Printer failed",
//	    "unsupported target type",
//	    "This is a bug. Please report it at github.com/kraklabs/kt2uml/issues",
//	    err,
//	)
func NewInternalError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitInternal, msg, cause, fix, err)
}

// FromFileError classifies a failure to open or read path into a
// not-found, permission or IO error.
func FromFileError(path string, err error) *UserError {
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		ue := NewNotFoundError(
			fmt.Sprintf("Cannot read %s", path),
			"The file does not exist",
			"Check the path, or pass - to read from stdin",
		)
		ue.Err = err
		return ue
	case stderrors.Is(err, fs.ErrPermission):
		return NewPermissionError(
			fmt.Sprintf("Cannot read %s", path),
			"Permission denied",
			"Check the file permissions",
			err,
		)
	}
	return NewIOError(
		fmt.Sprintf("Cannot read %s", path),
		err.Error(),
		"",
		err,
	)
}

// Color definitions for error formatting.
var (
	colorError = color.New(color.FgRed, color.Bold)
	colorCause = color.New(color.FgYellow)
	colorFix   = color.New(color.FgGreen)
)

// Format returns the error for terminal display: Error in red, Cause in
// yellow, Fix in green. Empty Cause or Fix lines are omitted. Colors are
// disabled by noColor or the NO_COLOR environment variable.
//
// Format temporarily modifies the global color.NoColor state and restores
// it before returning.
func (e *UserError) Format(noColor bool) string {
	originalNoColor := color.NoColor
	defer func() { color.NoColor = originalNoColor }()

	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	var out strings.Builder
	out.WriteString(colorError.Sprint("Error: "))
	out.WriteString(e.Message)
	out.WriteString("\n")

	if e.Cause != "" {
		out.WriteString(colorCause.Sprint("Cause: "))
		out.WriteString(e.Cause)
		out.WriteString("\n")
	}

	if e.Fix != "" {
		out.WriteString(colorFix.Sprint("Fix:   "))
		out.WriteString(e.Fix)
		out.WriteString("\n")
	}

	return out.String()
}

// ErrorJSON is the --json rendering of a UserError.
type ErrorJSON struct {
	Error    string `json:"error"`
	Cause    string `json:"cause,omitempty"`
	Fix      string `json:"fix,omitempty"`
	ExitCode int    `json:"exit_code"`
}

// ToJSON converts the UserError to a JSON-serializable structure.
func (e *UserError) ToJSON() ErrorJSON {
	return ErrorJSON{
		Error:    e.Message,
		Cause:    e.Cause,
		Fix:      e.Fix,
		ExitCode: e.ExitCode,
	}
}

// Report writes err to w and returns the exit code to use. A UserError is
// written with Format, or as JSON when jsonOutput is set. Any other error
// is reported as internal.
func Report(w io.Writer, err error, jsonOutput, noColor bool) int {
	if err == nil {
		return ExitSuccess
	}

	var ue *UserError
	if !stderrors.As(err, &ue) {
		ue = NewInternalError(
			"Unexpected error",
			err.Error(),
			"This is a bug. Please report it at github.com/kraklabs/kt2uml/issues",
			err,
		)
	}

	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		// Encode error is ignored since the caller is about to exit.
		_ = enc.Encode(ue.ToJSON())
	} else {
		fmt.Fprint(w, ue.Format(noColor))
	}
	return ue.ExitCode
}

// FatalError reports err on stderr and exits with its code. It does
// nothing when err is nil.
func FatalError(err error, jsonOutput bool) {
	if err == nil {
		return
	}
	os.Exit(Report(os.Stderr, err, jsonOutput, false))
}
