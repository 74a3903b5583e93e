// Package mocks provides shared test doubles for grader packages.
package mocks

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/RyanNutt/autograding-junit4/internal/command"
)

// Runner implements command.Runner for testing.
// Use NewRunner() to create instances with a fluent builder API.
// Commands without a configured response succeed with empty output.
type Runner struct {
	results  map[string]command.Result
	prefixes []prefixResult

	// RunFunc, if set, handles every command that has no exact or prefix match.
	RunFunc func(ctx context.Context, cmd command.Command) command.Result

	// Execution tracking (thread-safe)
	runCount int32
	mu       sync.Mutex
	calls    []command.Command
}

type prefixResult struct {
	prefix string
	result command.Result
}

// NewRunner creates a runner whose commands all succeed.
func NewRunner() *Runner {
	return &Runner{
		results: make(map[string]command.Result),
	}
}

// WithResult sets the result returned for the exact command text.
func (m *Runner) WithResult(text string, res command.Result) *Runner {
	m.results[text] = res
	return m
}

// WithPrefixResult sets the result returned for any command starting with prefix.
// Prefixes are tried in the order they were added.
func (m *Runner) WithPrefixResult(prefix string, res command.Result) *Runner {
	m.prefixes = append(m.prefixes, prefixResult{prefix: prefix, result: res})
	return m
}

// WithRunFunc sets the fallback handler.
func (m *Runner) WithRunFunc(fn func(ctx context.Context, cmd command.Command) command.Result) *Runner {
	m.RunFunc = fn
	return m
}

// Run implements command.Runner.
func (m *Runner) Run(ctx context.Context, cmd command.Command) command.Result {
	atomic.AddInt32(&m.runCount, 1)
	m.mu.Lock()
	m.calls = append(m.calls, cmd)
	m.mu.Unlock()

	if res, ok := m.results[cmd.Text]; ok {
		return res
	}
	for _, p := range m.prefixes {
		if strings.HasPrefix(cmd.Text, p.prefix) {
			return p.result
		}
	}
	if m.RunFunc != nil {
		return m.RunFunc(ctx, cmd)
	}
	return command.Result{Status: command.StatusSuccess}
}

// Test inspection methods

// RunCount returns the number of times Run was called.
func (m *Runner) RunCount() int32 {
	return atomic.LoadInt32(&m.runCount)
}

// Calls returns the commands passed to Run, in order.
func (m *Runner) Calls() []command.Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]command.Command, len(m.calls))
	copy(result, m.calls)
	return result
}

// Texts returns the text of each command passed to Run, in order.
func (m *Runner) Texts() []string {
	calls := m.Calls()
	texts := make([]string, len(calls))
	for i, c := range calls {
		texts[i] = c.Text
	}
	return texts
}

// Reset clears execution tracking state.
func (m *Runner) Reset() {
	atomic.StoreInt32(&m.runCount, 0)
	m.mu.Lock()
	m.calls = nil
	m.mu.Unlock()
}

// Success returns a successful result with the given stdout.
func Success(stdout string) command.Result {
	return command.Result{Status: command.StatusSuccess, Stdout: stdout}
}

// Failure returns a non-zero exit result.
func Failure(exitCode int, stdout, stderr string) command.Result {
	return command.Result{Status: command.StatusFailure, ExitCode: exitCode, Stdout: stdout, Stderr: stderr}
}
