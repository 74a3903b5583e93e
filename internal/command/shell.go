package command

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"sync"
	"time"

	"code.cloudfoundry.org/clock"
	"go.uber.org/zap"
)

// waitDelay bounds how long Wait keeps reading pipes held open by
// descendants after the process tree has been killed.
const waitDelay = 5 * time.Second

// ShellRunner runs commands with "sh -c".
type ShellRunner struct {
	shell  string
	clock  clock.Clock
	logger *zap.Logger
}

// Option configures a ShellRunner.
type Option func(*ShellRunner)

// WithClock sets the clock used to measure durations.
func WithClock(c clock.Clock) Option {
	return func(r *ShellRunner) { r.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *ShellRunner) { r.logger = l }
}

// WithShell overrides the shell binary (default "sh").
func WithShell(shell string) Option {
	return func(r *ShellRunner) { r.shell = shell }
}

// NewShellRunner creates a ShellRunner.
func NewShellRunner(opts ...Option) *ShellRunner {
	r := &ShellRunner{
		shell:  "sh",
		clock:  clock.NewClock(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes c and blocks until it exits, times out, or ctx is cancelled.
// On timeout or cancellation the whole process tree is killed.
func (r *ShellRunner) Run(ctx context.Context, c Command) Result {
	runCtx := ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, r.shell, "-c", c.Text)
	cmd.Dir = c.Dir
	cmd.Env = c.Env
	cmd.WaitDelay = waitDelay
	cmd.Cancel = func() error {
		return killTree(cmd.Process.Pid)
	}

	var stdout, stderr bytes.Buffer
	if c.Stream != nil {
		stream := &lockedWriter{w: c.Stream}
		cmd.Stdout = io.MultiWriter(&stdout, stream)
		cmd.Stderr = io.MultiWriter(&stderr, stream)
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	log := r.logger.With(zap.String("command", c.Text))
	log.Debug("starting command", zap.Duration("timeout", c.Timeout), zap.String("dir", c.Dir))

	start := r.clock.Now()
	if err := cmd.Start(); err != nil {
		log.Debug("command could not start", zap.Error(err))
		return Result{
			Status:   StatusStartFailure,
			ExitCode: -1,
			Duration: r.clock.Since(start),
			Err:      err,
		}
	}

	err := cmd.Wait()
	result := Result{
		Status:   StatusSuccess,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: r.clock.Since(start),
		Err:      err,
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	// A command that exited cleanly keeps its success even if a deadline
	// fired while Wait was returning.
	switch {
	case err == nil:
	case ctx.Err() != nil:
		result.Status = StatusCancelled
		result.Err = ctx.Err()
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		result.Status = StatusTimeout
		result.Err = context.DeadlineExceeded
	default:
		result.Status = StatusFailure
	}

	log.Debug("command finished",
		zap.String("status", string(result.Status)),
		zap.Int("exit_code", result.ExitCode),
		zap.Duration("duration", result.Duration),
	)
	return result
}

// lockedWriter serializes the stdout and stderr copies into one stream.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
