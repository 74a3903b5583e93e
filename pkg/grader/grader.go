// Package grader provides public constants and utilities for external tools
// consuming junit-grader results.
package grader

import "github.com/RyanNutt/autograding-junit4/internal/report"

// Exit codes returned by the junit-grader CLI.
// These constants allow external tools to check exit codes symbolically
// rather than using magic numbers.
const (
	// ExitSuccess indicates a report was produced, whatever the grade.
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure (the report could not be written, etc.).
	ExitFailure = 1

	// ExitConfigError indicates missing or invalid inputs.
	ExitConfigError = 2
)

// OutputKey is the name under which the encoded report is appended to the
// GitHub Actions output file.
const OutputKey = "result"

// Report is the decoded grading result.
type Report = report.Report

// TestOutcome is the single graded unit of a Report.
type TestOutcome = report.TestOutcome

// Report statuses.
const (
	StatusPass  = report.StatusPass
	StatusError = report.StatusError
)

// DecodeResult decodes the value published under OutputKey.
func DecodeResult(encoded string) (Report, error) {
	return report.Decode(encoded)
}

// Passed reports whether every executed test passed.
func Passed(r Report) bool {
	return r.Status == StatusPass
}

// Score returns the awarded score, or false when none was recorded
// (a stage failed or the runner output could not be interpreted).
func Score(r Report) (float64, bool) {
	if len(r.Tests) == 0 || r.Tests[0].Score == nil {
		return 0, false
	}
	return *r.Tests[0].Score, true
}
