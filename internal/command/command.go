// Package command runs stage commands through the shell with a time budget.
package command

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// Status is the typed outcome of a command.
type Status string

const (
	// StatusSuccess means the command exited with code 0.
	StatusSuccess Status = "success"
	// StatusFailure means the command ran and exited non-zero.
	StatusFailure Status = "failure"
	// StatusTimeout means the command exceeded its time budget and was killed.
	StatusTimeout Status = "timeout"
	// StatusStartFailure means the shell could not be started at all.
	StatusStartFailure Status = "start-failure"
	// StatusCancelled means the caller's context was cancelled before the
	// command finished. Its output is incomplete.
	StatusCancelled Status = "cancelled"
)

// Command describes one shell invocation.
type Command struct {
	// Text is passed verbatim to "sh -c".
	Text string
	// Timeout bounds the run. Zero means no limit beyond the caller's context.
	Timeout time.Duration
	// Env is the complete environment as KEY=value pairs. Nil inherits the
	// grader's own environment.
	Env []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Stream, if set, receives stdout and stderr as they are produced in
	// addition to being captured.
	Stream io.Writer
}

// Result is produced once per command.
type Result struct {
	Status   Status
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	Err      error
}

// Runner executes commands. ShellRunner is the production implementation;
// tests use the double in internal/testing/mocks.
type Runner interface {
	Run(ctx context.Context, cmd Command) Result
}

// Succeeded reports whether the command exited with code 0.
func (r Result) Succeeded() bool {
	return r.Status == StatusSuccess
}

// Output returns stdout followed by stderr.
func (r Result) Output() string {
	if r.Stderr == "" {
		return r.Stdout
	}
	if r.Stdout == "" || strings.HasSuffix(r.Stdout, "\n") {
		return r.Stdout + r.Stderr
	}
	return r.Stdout + "\n" + r.Stderr
}

// maxMessageStderr caps the stderr excerpt carried into Message.
const maxMessageStderr = 2048

// Message describes a non-successful result for a human reader, e.g.
//
//	Command failed: javac -cp "lib/*" -d . *.java
//	Calculator.java:3: error: ';' expected
func (r Result) Message(text string) string {
	var head string
	switch r.Status {
	case StatusSuccess:
		return "Command succeeded: " + text
	case StatusTimeout:
		head = fmt.Sprintf("Command timed out after %s: %s", r.Duration.Round(time.Millisecond), text)
	case StatusCancelled:
		return "Command was cancelled before it finished: " + text
	case StatusStartFailure:
		head = fmt.Sprintf("Command could not be started: %s", text)
		if r.Err != nil {
			head += ": " + r.Err.Error()
		}
		return head
	default:
		head = "Command failed: " + text
		if r.ExitCode > 0 {
			head += fmt.Sprintf(" (exit status %d)", r.ExitCode)
		}
	}

	stderr := strings.TrimSpace(r.Stderr)
	if stderr == "" {
		return head
	}
	if len(stderr) > maxMessageStderr {
		stderr = "..." + stderr[len(stderr)-maxMessageStderr:]
	}
	return head + "\n" + stderr
}
