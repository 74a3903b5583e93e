package report

import (
	"testing"
	"time"

	"github.com/RyanNutt/autograding-junit4/internal/scoring"
)

const runCommand = `java -cp "lib/*:." org.junit.runner.JUnitCore CalculatorTest`

func TestForScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		result     scoring.Result
		wantStatus Status
		wantScore  float64
	}{
		{"pass", scoring.Result{Score: 10, Status: scoring.StatusPass}, StatusPass, 10},
		{"partial", scoring.Result{Score: 8, Status: scoring.StatusError}, StatusError, 8},
		{"zero", scoring.Result{Score: 0, Status: scoring.StatusError}, StatusError, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := ForScore("Calculator", runCommand, "4 of 5 tests passed", tt.result, 10, 1500*time.Millisecond)

			if r.Version != SchemaVersion {
				t.Errorf("Version = %d, want %d", r.Version, SchemaVersion)
			}
			if r.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", r.Status, tt.wantStatus)
			}
			if r.MaxScore != 10 {
				t.Errorf("MaxScore = %v, want 10", r.MaxScore)
			}
			if len(r.Tests) != 1 {
				t.Fatalf("len(Tests) = %d, want 1", len(r.Tests))
			}
			outcome := r.Tests[0]
			if outcome.Status != tt.wantStatus {
				t.Errorf("outcome Status = %q, want %q", outcome.Status, tt.wantStatus)
			}
			if outcome.Score == nil || *outcome.Score != tt.wantScore {
				t.Errorf("outcome Score = %v, want %v", outcome.Score, tt.wantScore)
			}
			if outcome.TestCode != runCommand {
				t.Errorf("TestCode = %q, want %q", outcome.TestCode, runCommand)
			}
			if outcome.ExecutionTime != 1.5 {
				t.Errorf("ExecutionTime = %v, want 1.5", outcome.ExecutionTime)
			}
		})
	}
}

func TestForParseFailure(t *testing.T) {
	t.Parallel()

	r := ForParseFailure("Calculator", runCommand, 10, 0)
	if r.Status != StatusError {
		t.Errorf("Status = %q, want %q", r.Status, StatusError)
	}
	outcome := r.Tests[0]
	if outcome.Message != ParseFailureMessage {
		t.Errorf("Message = %q, want %q", outcome.Message, ParseFailureMessage)
	}
	if outcome.Score != nil {
		t.Errorf("Score = %v, want nil", *outcome.Score)
	}
}

func TestForStageFailure(t *testing.T) {
	t.Parallel()

	r := ForStageFailure("", "make setup", "Command failed: make setup", 5, 2*time.Second)
	outcome := r.Tests[0]
	if outcome.Name != UnknownTestName {
		t.Errorf("Name = %q, want %q", outcome.Name, UnknownTestName)
	}
	if outcome.TestCode != "make setup" {
		t.Errorf("TestCode = %q, want %q", outcome.TestCode, "make setup")
	}
	if outcome.Status != StatusError || r.Status != StatusError {
		t.Errorf("statuses = %q/%q, want error", r.Status, outcome.Status)
	}
	if outcome.Score != nil {
		t.Errorf("Score = %v, want nil", *outcome.Score)
	}
	if r.MaxScore != 5 {
		t.Errorf("MaxScore = %v, want 5", r.MaxScore)
	}
}

func TestSeconds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   time.Duration
		want float64
	}{
		{0, 0},
		{-time.Second, 0},
		{1234567 * time.Microsecond, 1.235},
		{3 * time.Minute, 180},
	}
	for _, tt := range tests {
		if got := seconds(tt.in); got != tt.want {
			t.Errorf("seconds(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
