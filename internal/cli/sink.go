package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/RyanNutt/autograding-junit4/internal/config"
	"github.com/RyanNutt/autograding-junit4/pkg/grader"
)

// resultSink delivers the encoded result either as a GitHub Actions step
// output or on stdout.
type resultSink struct {
	path   string
	stdout io.Writer
}

// newResultSink prefers an explicit path, then $GITHUB_OUTPUT, then stdout.
func newResultSink(path string, lookup config.LookupEnv, stdout io.Writer) *resultSink {
	if path == "" {
		path, _ = lookup("GITHUB_OUTPUT")
	}
	return &resultSink{path: path, stdout: stdout}
}

func (s *resultSink) toStdout() bool {
	return s.path == ""
}

func (s *resultSink) describe() string {
	if s.toStdout() {
		return "stdout"
	}
	return s.path
}

// write appends "result=<encoded>" to the output file, or prints the bare
// encoded value to stdout so it can be piped into "junit-grader decode -".
func (s *resultSink) write(encoded string) error {
	if s.toStdout() {
		_, err := fmt.Fprintln(s.stdout, encoded)
		return err
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f, "%s=%s\n", grader.OutputKey, encoded); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
