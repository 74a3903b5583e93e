// Package errors provides structured error types and exit codes for the grader.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the junit-grader CLI.
const (
	ExitSuccess      = 0 // A report was produced, whatever its status
	ExitRuntimeError = 1 // Internal failure (report could not be written, etc.)
	ExitConfigError  = 2 // Required input missing or invalid
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindSetup
	KindBuild
	KindParse
)

// String returns the taxonomy name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "ConfigurationError"
	case KindSetup:
		return "SetupError"
	case KindBuild:
		return "BuildError"
	case KindParse:
		return "ParseError"
	default:
		return "RuntimeFailure"
	}
}

// GraderError is the base error type for the grader.
type GraderError struct {
	Kind    ErrorKind
	Message string
	Stage   string // Stage name if applicable
	Command string // Command text if applicable
	Timeout bool   // The stage exceeded its time budget
	Cause   error  // Underlying error
}

func (e *GraderError) Error() string {
	msg := e.Message
	if e.Timeout {
		msg = "timed out: " + msg
	}
	if e.Stage != "" {
		return fmt.Sprintf("[%s] %s", e.Stage, msg)
	}
	return msg
}

func (e *GraderError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *GraderError) ExitCode() int {
	if e.Kind == KindConfig {
		return ExitConfigError
	}
	return ExitRuntimeError
}

// Config creates a new configuration error.
func Config(message string) *GraderError {
	return &GraderError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *GraderError {
	return &GraderError{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// StageError creates an error for a failed stage command.
func StageError(kind ErrorKind, stage, command, message string, timeout bool) *GraderError {
	return &GraderError{
		Kind:    kind,
		Stage:   stage,
		Command: command,
		Message: message,
		Timeout: timeout,
	}
}

// Parse creates a parse error wrapping the interpreter's cause.
func Parse(command string, cause error) *GraderError {
	return &GraderError{
		Kind:    KindParse,
		Stage:   "run",
		Command: command,
		Message: "could not interpret test runner output",
		Cause:   cause,
	}
}

// KindOf returns the kind of err, or KindRuntime when err is not a GraderError.
func KindOf(err error) ErrorKind {
	var ge *GraderError
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindRuntime
}

// IsTimeout reports whether err is a GraderError raised by an expired stage.
func IsTimeout(err error) bool {
	var ge *GraderError
	return errors.As(err, &ge) && ge.Timeout
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ge *GraderError
	if errors.As(err, &ge) {
		return ge.ExitCode()
	}
	return ExitRuntimeError
}
