package integration

import (
	"path/filepath"
	"testing"

	"github.com/RyanNutt/autograding-junit4/internal/config"
	gradererrors "github.com/RyanNutt/autograding-junit4/internal/errors"
	"github.com/RyanNutt/autograding-junit4/internal/pipeline"
	"github.com/RyanNutt/autograding-junit4/internal/report"
	"github.com/RyanNutt/autograding-junit4/internal/testparser"
	"github.com/RyanNutt/autograding-junit4/pkg/testhelper"
)

func loadTranscripts(t *testing.T) []testhelper.TranscriptCase {
	t.Helper()
	cases, err := testhelper.LoadTranscriptSuite(filepath.Join(fixturesDir(t), "transcripts"))
	if err != nil {
		t.Fatalf("failed to load transcripts: %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("no transcript fixtures found")
	}
	return cases
}

func TestTranscripts_Interpret(t *testing.T) {
	t.Parallel()
	for _, tc := range loadTranscripts(t) {
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			if tc.Skip {
				t.Skip(tc.Description)
			}

			summary, err := testparser.Interpret(tc.Transcript)
			if !tc.Parses() {
				if err == nil {
					t.Fatalf("Interpret() = %+v, want a parse error", summary)
				}
				return
			}
			if err != nil {
				t.Fatalf("Interpret() error = %v", err)
			}
			if summary.Total != tc.Summary.Total || summary.Errors != tc.Summary.Errors || summary.Ignored != tc.Summary.Ignored {
				t.Errorf("summary = %d/%d/%d, want %d/%d/%d",
					summary.Total, summary.Errors, summary.Ignored,
					tc.Summary.Total, tc.Summary.Errors, tc.Summary.Ignored)
			}

			failures := testparser.ExtractFailures(tc.Transcript)
			if len(failures) != len(tc.Failures) {
				t.Fatalf("got %d failure records, want %d", len(failures), len(tc.Failures))
			}
			for i, f := range failures {
				if string(f.Category) != tc.Failures[i] {
					t.Errorf("failure %d category = %q, want %q", i+1, f.Category, tc.Failures[i])
				}
			}
		})
	}
}

func TestTranscripts_Grade(t *testing.T) {
	t.Parallel()
	for _, tc := range loadTranscripts(t) {
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			if tc.Skip {
				t.Skip(tc.Description)
			}

			jdk := newFakeJDK(t)
			exitCode := 0
			if tc.Summary == nil || tc.Summary.Errors > 0 {
				exitCode = 1
			}
			jdk.replay(t, tc.Transcript, exitCode)

			res, _ := jdk.grade(t, gradingOptions(tc))

			if ok, diff := testhelper.Compare(tc.Report, asJSON(t, res.Report), testhelper.DefaultOptions()); !ok {
				t.Errorf("report mismatch: %s", diff)
			}
			if _, err := report.Encode(res.Report); err != nil {
				t.Errorf("Encode() error = %v", err)
			}

			switch {
			case !tc.Parses():
				if gradererrors.KindOf(res.Err) != gradererrors.KindParse {
					t.Errorf("Err = %v, want a parse error", res.Err)
				}
			case tc.Summary.Errors > 0:
				if res.Err == nil {
					t.Error("Err = nil for a run with failing tests")
				}
				if res.Stage != pipeline.StageDone {
					t.Errorf("Stage = %q, want %q", res.Stage, pipeline.StageDone)
				}
			default:
				if res.Err != nil {
					t.Errorf("Err = %v, want nil", res.Err)
				}
			}
		})
	}
}

func gradingOptions(tc testhelper.TranscriptCase) config.Options {
	return config.Options{
		MaxScore:      ptr(tc.MaxScore),
		PartialCredit: ptr(tc.PartialCredit),
	}
}
