// Package pipeline sequences the setup, build and run stages of a grading
// run and turns their outcome into a Report.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RyanNutt/autograding-junit4/internal/command"
	"github.com/RyanNutt/autograding-junit4/internal/config"
	gradererrors "github.com/RyanNutt/autograding-junit4/internal/errors"
	"github.com/RyanNutt/autograding-junit4/internal/output"
	"github.com/RyanNutt/autograding-junit4/internal/report"
	"github.com/RyanNutt/autograding-junit4/internal/scoring"
	"github.com/RyanNutt/autograding-junit4/internal/testparser"
)

// Stage identifies a pipeline stage.
type Stage string

const (
	StageSetup Stage = "setup"
	StageBuild Stage = "build"
	StageRun   Stage = "run"
	// StageDone means every stage ran and the transcript was scored.
	StageDone Stage = "done"
)

// setupHint is printed after a setup failure, which is almost always a
// problem with the assignment configuration rather than the submission.
const setupHint = "This is probably something your teacher needs to fix"

// Result is the outcome of Execute.
type Result struct {
	// Report is always populated.
	Report report.Report
	// Stage is the stage that decided the outcome: the failing stage, or
	// StageDone when the transcript was scored.
	Stage Stage
	// Summary and Failures are set once the run transcript was interpreted.
	Summary  *testparser.RunSummary
	Failures []testparser.FailureRecord
	// Score is set when the transcript was scored.
	Score *scoring.Result
	// Err is nil only when every test passed.
	Err   error
	RunID string
}

// Controller runs the stages in order and stops at the first failure.
type Controller struct {
	runner command.Runner
	out    *output.Writer
	logger *zap.Logger
	runID  string
	stream bool
	dir    string
}

// Option configures a Controller.
type Option func(*Controller)

// WithWriter sets the console writer for stage banners and diagnostics.
func WithWriter(w *output.Writer) Option {
	return func(c *Controller) { c.out = w }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithRunID overrides the generated run ID.
func WithRunID(id string) Option {
	return func(c *Controller) { c.runID = id }
}

// WithStreaming copies command output to the console while it runs instead
// of printing it afterwards.
func WithStreaming(stream bool) Option {
	return func(c *Controller) { c.stream = stream }
}

// WithDir sets the working directory for every stage.
func WithDir(dir string) Option {
	return func(c *Controller) { c.dir = dir }
}

// New creates a Controller that executes stage commands with runner.
func New(runner command.Runner, opts ...Option) *Controller {
	c := &Controller{
		runner: runner,
		out:    output.NewWithWriters(io.Discard, io.Discard, false),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.runID == "" {
		c.runID = uuid.NewString()
	}
	return c
}

// RunID returns the identifier attached to this controller's log entries.
func (c *Controller) RunID() string {
	return c.runID
}

// Execute runs setup (when configured), build and run, then interprets and
// scores the run transcript. Stage failures never escape as errors: they are
// turned into an error Report and recorded in Result.Err.
func (c *Controller) Execute(ctx context.Context, cfg config.RunConfiguration) Result {
	log := c.logger.With(zap.String("run_id", c.runID), zap.String("test_name", cfg.TestName))
	log.Info("grading started", zap.Strings("test_classes", cfg.TestClasses()))

	if cfg.HasSetup() {
		res := c.runStage(ctx, log, StageSetup, cfg.SetupCommand, cfg)
		if !res.Succeeded() {
			return c.stageFailure(log, StageSetup, gradererrors.KindSetup, cfg.SetupCommand, res, cfg)
		}
	} else {
		c.out.StageSkipped(string(StageSetup), "no setup command configured")
	}

	res := c.runStage(ctx, log, StageBuild, cfg.BuildCommand, cfg)
	if !res.Succeeded() {
		return c.stageFailure(log, StageBuild, gradererrors.KindBuild, cfg.BuildCommand, res, cfg)
	}

	res = c.runStage(ctx, log, StageRun, cfg.RunCommand, cfg)
	switch res.Status {
	case command.StatusTimeout, command.StatusStartFailure, command.StatusCancelled:
		return c.stageFailure(log, StageRun, gradererrors.KindRuntime, cfg.RunCommand, res, cfg)
	}
	// JUnitCore exits non-zero whenever a test fails, so a failure status
	// still carries a transcript worth interpreting. A cancelled run does not:
	// its transcript stops wherever the signal arrived.
	return c.score(log, cfg, res)
}

func (c *Controller) runStage(ctx context.Context, log *zap.Logger, stage Stage, text string, cfg config.RunConfiguration) command.Result {
	c.out.StageStart(string(stage), text)

	cmd := command.Command{
		Text:    text,
		Timeout: cfg.Timeout,
		Dir:     c.dir,
	}
	if cfg.Env.Len() > 0 {
		cmd.Env = cfg.Env.Slice()
	}
	if c.stream {
		cmd.Stream = c.out.Stream()
	}

	res := c.runner.Run(ctx, cmd)
	log.Debug("stage finished",
		zap.String("stage", string(stage)),
		zap.String("status", string(res.Status)),
		zap.Int("exit_code", res.ExitCode),
		zap.Duration("duration", res.Duration),
	)
	if res.Succeeded() {
		c.out.StageSuccess(string(stage), res.Duration)
	}
	return res
}

func (c *Controller) stageFailure(log *zap.Logger, stage Stage, kind gradererrors.ErrorKind, text string, res command.Result, cfg config.RunConfiguration) Result {
	message := res.Message(text)
	timedOut := res.Status == command.StatusTimeout

	stdout, stderr := res.Stdout, res.Stderr
	if c.stream {
		stdout, stderr = "", ""
	}
	c.out.StageFailure(string(stage), message, stdout, stderr)
	if stage == StageSetup {
		c.out.Errorln("%s", setupHint)
	}

	err := gradererrors.StageError(kind, string(stage), text, message, timedOut)
	if res.Err != nil {
		err.Cause = res.Err
	}
	log.Warn("stage failed",
		zap.String("stage", string(stage)),
		zap.String("kind", kind.String()),
		zap.Bool("timeout", timedOut),
		zap.Error(err),
	)

	// A submission that does not compile carries no score ceiling; setup and
	// run failures keep the configured one.
	maxScore := cfg.MaxScore
	if stage == StageBuild {
		maxScore = 0
	}

	return Result{
		Report: report.ForStageFailure(cfg.TestName, text, message, maxScore, res.Duration),
		Stage:  stage,
		Err:    err,
		RunID:  c.runID,
	}
}

func (c *Controller) score(log *zap.Logger, cfg config.RunConfiguration, res command.Result) Result {
	if !c.stream {
		c.out.Transcript(res.Stdout)
	}

	summary, err := testparser.Interpret(res.Stdout)
	if err != nil {
		perr := gradererrors.Parse(cfg.RunCommand, err)
		c.out.StageFailure(string(StageRun), err.Error(), "", res.Stderr)
		log.Warn("transcript not recognized", zap.Error(err))
		return Result{
			Report: report.ForParseFailure(cfg.TestName, cfg.RunCommand, cfg.MaxScore, res.Duration),
			Stage:  StageRun,
			Err:    perr,
			RunID:  c.runID,
		}
	}

	failures := testparser.ExtractFailures(res.Stdout)
	c.out.RunSummary(summary)
	c.out.FailureTable(failures)

	scored, err := scoring.Score(summary.Total, summary.Errors, cfg.MaxScore, cfg.PartialCredit)
	if err != nil {
		serr := gradererrors.Wrap(err, "scoring failed: "+err.Error())
		log.Error("scoring failed", zap.Error(err))
		return Result{
			Report:   report.ForStageFailure(cfg.TestName, cfg.RunCommand, serr.Error(), cfg.MaxScore, res.Duration),
			Stage:    StageRun,
			Summary:  &summary,
			Failures: failures,
			Err:      serr,
			RunID:    c.runID,
		}
	}

	message := fmt.Sprintf("%d of %d tests passed", summary.Passed(), summary.Total)
	c.out.ScoreLine(scored.Score, cfg.MaxScore, scored.Status == scoring.StatusPass)
	log.Info("grading finished",
		zap.Int("total", summary.Total),
		zap.Int("errors", summary.Errors),
		zap.Float64("score", scored.Score),
		zap.Float64("max_score", cfg.MaxScore),
	)

	result := Result{
		Report:   report.ForScore(cfg.TestName, cfg.RunCommand, message, scored, cfg.MaxScore, res.Duration),
		Stage:    StageDone,
		Summary:  &summary,
		Failures: failures,
		Score:    &scored,
		RunID:    c.runID,
	}
	if summary.Errors > 0 {
		result.Err = gradererrors.StageError(gradererrors.KindRuntime, string(StageRun), cfg.RunCommand,
			fmt.Sprintf("%d of %d tests failed", summary.Errors, summary.Total), false)
	}
	return result
}

// ConfigurationReport builds the error Report emitted when inputs could not
// be resolved. No command ran, so the test name is unknown and the score
// ceiling is zero.
func ConfigurationReport(err error) report.Report {
	return report.ForStageFailure(report.UnknownTestName, "", err.Error(), 0, 0)
}
