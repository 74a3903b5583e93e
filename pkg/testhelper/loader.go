// Package testhelper loads recorded JUnit runner transcripts together with the
// grading outcome they are expected to produce.
//
// A case is a pair of files in one directory: <name>.txt holds the runner's
// stdout and <name>.json the expectation. Example usage in a Go test:
//
//	func TestTranscripts(t *testing.T) {
//	    root, err := testhelper.FindModuleRoot()
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//
//	    cases, err := testhelper.LoadTranscriptSuite(filepath.Join(root, "test", "fixtures", "transcripts"))
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//
//	    for _, tc := range cases {
//	        t.Run(tc.Name, func(t *testing.T) {
//	            actual := grade(tc.Transcript)
//	            if ok, diff := testhelper.Compare(tc.Report, actual, testhelper.DefaultOptions()); !ok {
//	                t.Errorf("mismatch for %s: %s", tc.Name, diff)
//	            }
//	        })
//	    }
//	}
package testhelper

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Summary is the expected interpretation of a transcript.
type Summary struct {
	Total   int `json:"total"`
	Errors  int `json:"errors"`
	Ignored int `json:"ignored"`
}

// TranscriptCase is a recorded runner transcript and its expected outcome.
type TranscriptCase struct {
	// Name is the case name (derived from the file name).
	Name string `json:"-"`

	// Transcript is the content of the sibling .txt file.
	Transcript string `json:"-"`

	// Description provides optional documentation.
	Description string `json:"description,omitempty"`

	// MaxScore and PartialCredit are the grading inputs for the case.
	MaxScore      float64 `json:"max_score"`
	PartialCredit bool    `json:"partial_credit"`

	// Summary is nil when the transcript must be rejected as unparseable.
	Summary *Summary `json:"summary"`

	// Failures lists the expected failure categories in block order.
	Failures []string `json:"failures,omitempty"`

	// Report is the expected decoded report as generic JSON.
	Report map[string]interface{} `json:"report"`

	// Skip marks the case as skipped if true.
	Skip bool `json:"skip,omitempty"`
}

// Parses reports whether the transcript is expected to be interpretable.
func (tc TranscriptCase) Parses() bool {
	return tc.Summary != nil
}

// LoadTranscriptSuite loads all cases from dir, ordered by name.
// Every <name>.json must have a matching <name>.txt.
func LoadTranscriptSuite(dir string) ([]TranscriptCase, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	cases := make([]TranscriptCase, 0, len(files))
	for _, f := range files {
		tc, err := LoadTranscriptCase(f)
		if err != nil {
			return nil, err
		}
		cases = append(cases, *tc)
	}
	return cases, nil
}

// LoadTranscriptCase loads the case described by the expectation file at path.
func LoadTranscriptCase(path string) (*TranscriptCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tc TranscriptCase
	if err := json.Unmarshal(data, &tc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	transcriptPath := strings.TrimSuffix(path, ".json") + ".txt"
	transcript, err := os.ReadFile(transcriptPath)
	if err != nil {
		return nil, fmt.Errorf("%s: missing transcript: %w", path, err)
	}

	tc.Name = strings.TrimSuffix(filepath.Base(path), ".json")
	tc.Transcript = string(transcript)
	return &tc, nil
}

// FindModuleRoot walks up from the working directory to the directory holding go.mod.
func FindModuleRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindModuleRootFrom(cwd)
}

// FindModuleRootFrom finds the module root starting from a specific directory.
func FindModuleRootFrom(startDir string) (string, error) {
	dir := startDir
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", &ModuleNotFoundError{StartDir: startDir}
}

// ModuleNotFoundError indicates go.mod was not found.
type ModuleNotFoundError struct {
	StartDir string
}

func (e *ModuleNotFoundError) Error() string {
	return "go.mod not found (searched from " + e.StartDir + ")"
}
