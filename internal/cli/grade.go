package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/RyanNutt/autograding-junit4/internal/command"
	"github.com/RyanNutt/autograding-junit4/internal/config"
	gradererrors "github.com/RyanNutt/autograding-junit4/internal/errors"
	"github.com/RyanNutt/autograding-junit4/internal/pipeline"
	"github.com/RyanNutt/autograding-junit4/internal/report"
)

// gradeFlags are the grading inputs accepted on the command line. Only flags
// the user actually set override lower layers.
type gradeFlags struct {
	configPath string
	outputPath string
	dir        string
	stream     bool

	testName      string
	testClass     string
	setupCommand  string
	timeout       float64
	maxScore      float64
	libFolder     string
	partialCredit bool
}

func (g *gradeFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&g.configPath, "config", "c", "", "YAML file with grader inputs")
	f.StringVarP(&g.outputPath, "output", "o", "", "File to append result=<encoded> to (default: $GITHUB_OUTPUT, else stdout)")
	f.StringVar(&g.dir, "dir", "", "Working directory for all stages (default: current)")
	f.BoolVar(&g.stream, "stream", false, "Show command output live instead of after each stage")

	f.StringVar(&g.testName, config.InputTestName, "", "Name of the test suite in the result")
	f.StringVar(&g.testClass, config.InputTestClass, "", "Comma-separated JUnit test classes")
	f.StringVar(&g.setupCommand, config.InputSetupCommand, "", "Shell command to run before compiling")
	f.Float64Var(&g.timeout, config.InputTimeout, config.DefaultTimeoutMinutes, "Time budget per stage, in minutes")
	f.Float64Var(&g.maxScore, config.InputMaxScore, config.DefaultMaxScore, "Score awarded when every test passes")
	f.StringVar(&g.libFolder, config.InputLibFolder, config.DefaultLibFolder, "Folder holding the JUnit and Hamcrest jars")
	f.BoolVar(&g.partialCredit, config.InputPartialCredit, config.DefaultPartialCredit, "Award credit proportional to passing tests")
}

// options returns the flag layer, containing only flags that were set.
func (g *gradeFlags) options(f *pflag.FlagSet) config.Options {
	var opts config.Options
	if f.Changed(config.InputTestName) {
		opts.TestName = g.testName
	}
	if f.Changed(config.InputTestClass) {
		opts.TestClass = g.testClass
	}
	if f.Changed(config.InputSetupCommand) {
		opts.SetupCommand = g.setupCommand
	}
	if f.Changed(config.InputTimeout) {
		v := g.timeout
		opts.Timeout = &v
	}
	if f.Changed(config.InputMaxScore) {
		v := g.maxScore
		opts.MaxScore = &v
	}
	if f.Changed(config.InputLibFolder) {
		opts.LibFolder = g.libFolder
	}
	if f.Changed(config.InputPartialCredit) {
		v := g.partialCredit
		opts.PartialCredit = &v
	}
	return opts
}

func (a *app) runGrade(cmd *cobra.Command, args []string) error {
	sink := newResultSink(a.grade.outputPath, a.lookup, a.stdout)
	out := a.consoleWriter(sink.toStdout())
	log := a.logger
	if log == nil {
		log = zap.NewNop()
	}

	cfg, err := a.resolveConfig(cmd)
	if err != nil {
		log.Warn("configuration rejected", zap.Error(err))
		cerr := gradererrors.Config(err.Error())
		cerr.Cause = err
		if werr := a.emit(sink, pipeline.ConfigurationReport(err)); werr != nil {
			return werr
		}
		return cerr
	}

	if cfg.MaxScore == 0 {
		out.Warning("max-score is 0, so this run cannot earn any points")
	}

	runner := a.runner
	if runner == nil {
		runner = command.NewShellRunner(command.WithLogger(log))
	}

	ctl := pipeline.New(runner,
		pipeline.WithWriter(out),
		pipeline.WithLogger(log),
		pipeline.WithStreaming(a.grade.stream),
		pipeline.WithDir(a.grade.dir),
	)
	result := ctl.Execute(cmd.Context(), cfg)

	if err := a.emit(sink, result.Report); err != nil {
		return err
	}
	out.Info("Result written to %s", sink.describe())
	fields := []zap.Field{
		zap.String("run_id", result.RunID),
		zap.String("stage", string(result.Stage)),
		zap.String("status", string(result.Report.Status)),
		zap.String("sink", sink.describe()),
	}
	if result.Err != nil {
		fields = append(fields,
			zap.String("error_kind", gradererrors.KindOf(result.Err).String()),
			zap.Bool("timeout", gradererrors.IsTimeout(result.Err)),
			zap.Error(result.Err),
		)
	}
	log.Debug("result written", fields...)
	return nil
}

// resolveConfig layers the file, INPUT_ variables and flags.
func (a *app) resolveConfig(cmd *cobra.Command) (config.RunConfiguration, error) {
	var layers []config.Options

	if a.grade.configPath != "" {
		fileOpts, err := config.LoadFile(a.grade.configPath)
		if err != nil {
			return config.RunConfiguration{}, err
		}
		layers = append(layers, fileOpts)
	}

	envOpts, err := config.FromEnv(a.lookup)
	if err != nil {
		return config.RunConfiguration{}, err
	}
	layers = append(layers, envOpts, a.grade.options(cmd.Flags()))

	return config.Resolve(a.lookup, layers...)
}

func (a *app) emit(sink *resultSink, r report.Report) error {
	encoded, err := report.Encode(r)
	if err != nil {
		return gradererrors.Wrap(err, "failed to encode result: "+err.Error())
	}
	if err := sink.write(encoded); err != nil {
		return gradererrors.Wrap(err, "failed to write result: "+err.Error())
	}
	return nil
}
