// Package report assembles the grading report and encodes it for transport.
package report

import (
	"time"

	"github.com/RyanNutt/autograding-junit4/internal/scoring"
)

// SchemaVersion is the version of the report wire format.
const SchemaVersion = 1

// UnknownTestName labels reports produced before a test name is known.
const UnknownTestName = "Unknown Test"

// ParseFailureMessage is the message of reports whose runner output could not be interpreted.
const ParseFailureMessage = "could not interpret test runner output"

// Status is the outcome recorded in a report.
type Status string

const (
	StatusPass  Status = "pass"
	StatusError Status = "error"
)

// TestOutcome is the single graded unit of a report. The whole suite is
// scored as one outcome rather than per test method.
type TestOutcome struct {
	Name          string   `json:"name"`
	Status        Status   `json:"status"`
	Message       string   `json:"message"`
	TestCode      string   `json:"test_code"`
	Filename      string   `json:"filename"`
	LineNo        int      `json:"line_no"`
	ExecutionTime float64  `json:"execution_time"`
	Score         *float64 `json:"score,omitempty"`
}

// Report is the structured grading result. Field order defines the canonical
// JSON key order.
type Report struct {
	Version  int           `json:"version"`
	Status   Status        `json:"status"`
	MaxScore float64       `json:"max_score"`
	Tests    []TestOutcome `json:"tests"`
}

// ForStageFailure builds the terminal report of a stage that failed or timed out.
// command is the failing stage's command text and cause a human-readable reason.
func ForStageFailure(name, command, cause string, maxScore float64, elapsed time.Duration) Report {
	return newReport(StatusError, maxScore, TestOutcome{
		Name:          name,
		Status:        StatusError,
		Message:       cause,
		TestCode:      command,
		ExecutionTime: seconds(elapsed),
	})
}

// ForParseFailure builds the report of a run whose transcript could not be
// interpreted. No score is recorded.
func ForParseFailure(name, command string, maxScore float64, elapsed time.Duration) Report {
	return newReport(StatusError, maxScore, TestOutcome{
		Name:          name,
		Status:        StatusError,
		Message:       ParseFailureMessage,
		TestCode:      command,
		ExecutionTime: seconds(elapsed),
	})
}

// ForScore builds the report of an interpreted and scored run.
func ForScore(name, command, message string, result scoring.Result, maxScore float64, elapsed time.Duration) Report {
	status := StatusError
	if result.Status == scoring.StatusPass {
		status = StatusPass
	}
	score := result.Score
	return newReport(status, maxScore, TestOutcome{
		Name:          name,
		Status:        status,
		Message:       message,
		TestCode:      command,
		ExecutionTime: seconds(elapsed),
		Score:         &score,
	})
}

func newReport(status Status, maxScore float64, outcome TestOutcome) Report {
	if outcome.Name == "" {
		outcome.Name = UnknownTestName
	}
	return Report{
		Version:  SchemaVersion,
		Status:   status,
		MaxScore: maxScore,
		Tests:    []TestOutcome{outcome},
	}
}

// seconds converts a duration to seconds with millisecond precision.
func seconds(d time.Duration) float64 {
	if d < 0 {
		return 0
	}
	return d.Round(time.Millisecond).Seconds()
}
