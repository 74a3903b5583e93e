// Package cli implements the junit-grader command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/RyanNutt/autograding-junit4/internal/command"
	"github.com/RyanNutt/autograding-junit4/internal/config"
	gradererrors "github.com/RyanNutt/autograding-junit4/internal/errors"
	"github.com/RyanNutt/autograding-junit4/internal/output"
)

// Version is set at build time.
var Version = "dev"

// app holds the process-level dependencies of one CLI invocation so that
// tests can substitute streams, environment and the command runner.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	lookup config.LookupEnv

	// runner and logger are built from flags when nil.
	runner command.Runner
	logger *zap.Logger

	// Global flags
	verbose bool
	quiet   bool
	noColor bool

	grade gradeFlags
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		lookup: config.OSLookupEnv,
	}
	return a.run(ctx, args)
}

func (a *app) run(ctx context.Context, args []string) int {
	root := a.newRootCommand()
	root.SetArgs(args)
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.ExecuteContext(ctx)
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if err == nil {
		return gradererrors.ExitSuccess
	}

	a.errorWriter().ErrorPrefix("%v", err)

	var ge *gradererrors.GraderError
	if !errors.As(err, &ge) {
		// Anything cobra rejects before a command runs is a usage problem.
		err = gradererrors.Config(err.Error())
	}
	return gradererrors.GetExitCode(err)
}

func (a *app) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "junit-grader",
		Short: "Grade Java submissions with the JUnit 4 console runner",
		Long: `junit-grader compiles a Java submission, runs the JUnit 4 console runner
against the configured test classes and turns the transcript into a score.

The encoded result is written as "result=<base64>" to the file named by
GITHUB_OUTPUT (or --output), or printed to stdout when neither is set.

Inputs are read, in increasing precedence, from defaults, a YAML file given
with --config, INPUT_<NAME> variables set by GitHub Actions, and flags.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initLogger()
		},
		RunE: a.runGrade,
	}
	root.SetVersionTemplate("junit-grader {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.BoolVar(&a.verbose, "verbose", false, "Enable debug logging")
	pf.BoolVarP(&a.quiet, "quiet", "q", false, "Only print errors and the final score")
	pf.BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	a.grade.register(root)

	grade := &cobra.Command{
		Use:   "grade",
		Short: "Run setup, build and tests, then emit the encoded result (default)",
		Args:  cobra.NoArgs,
		RunE:  a.runGrade,
	}
	a.grade.register(grade)

	root.AddCommand(grade)
	root.AddCommand(a.newInterpretCommand())
	root.AddCommand(a.newDecodeCommand())
	root.AddCommand(a.newVersionCommand())
	return root
}

func (a *app) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(a.stdout, "junit-grader %s\n", Version)
			return err
		},
	}
}

// initLogger builds the operator log. It writes JSON to stderr at warn level,
// or debug level with --verbose.
func (a *app) initLogger() error {
	if a.logger != nil {
		return nil
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if a.verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return gradererrors.Wrap(err, fmt.Sprintf("failed to initialize logger: %v", err))
	}
	a.logger = logger
	return nil
}

// consoleWriter returns the writer for human-facing diagnostics. When the
// encoded result goes to stdout, diagnostics move to stderr so the two never mix.
func (a *app) consoleWriter(resultOnStdout bool) *output.Writer {
	out := a.stdout
	if resultOnStdout {
		out = a.stderr
	}
	color := !a.noColor && output.SupportsColor(out)
	if v, ok := a.lookup("NO_COLOR"); ok && v != "" {
		color = false
	}
	w := output.NewWithWriters(out, a.stderr, color)
	w.SetQuiet(a.quiet)
	return w
}

func (a *app) errorWriter() *output.Writer {
	return output.NewWithWriters(a.stderr, a.stderr, !a.noColor && output.SupportsColor(a.stderr))
}
