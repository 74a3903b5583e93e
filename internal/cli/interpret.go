package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	gradererrors "github.com/RyanNutt/autograding-junit4/internal/errors"
	"github.com/RyanNutt/autograding-junit4/internal/scoring"
	"github.com/RyanNutt/autograding-junit4/internal/testparser"
)

func (a *app) newInterpretCommand() *cobra.Command {
	var (
		maxScore      float64
		partialCredit bool
	)

	cmd := &cobra.Command{
		Use:   "interpret [file|-]",
		Short: "Summarize a saved JUnit console transcript without running anything",
		Long: `Reads a transcript produced by org.junit.runner.JUnitCore from a file, or
from stdin when the argument is "-" or omitted, and prints the test counts,
the failure table and the score the transcript would earn.`,
		Example: `  java -cp "lib/*:." org.junit.runner.JUnitCore CalculatorTest > run.txt
  junit-grader interpret run.txt --max-score 10 --partial-credit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			text, err := a.readInput(path)
			if err != nil {
				return gradererrors.Wrap(err, err.Error())
			}

			summary, err := testparser.Interpret(text)
			if err != nil {
				return gradererrors.Parse("", err)
			}

			out := a.consoleWriter(false)
			out.RunSummary(summary)
			out.FailureTable(testparser.ExtractFailures(text))

			result, err := scoring.Score(summary.Total, summary.Errors, maxScore, partialCredit)
			if err != nil {
				return gradererrors.Wrap(err, err.Error())
			}
			out.ScoreLine(result.Score, maxScore, result.Status == scoring.StatusPass)
			return nil
		},
	}

	cmd.Flags().Float64Var(&maxScore, "max-score", 0, "Score awarded when every test passes")
	cmd.Flags().BoolVar(&partialCredit, "partial-credit", false, "Award credit proportional to passing tests")
	return cmd
}

// readInput reads a whole file, or stdin for "-".
func (a *app) readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
