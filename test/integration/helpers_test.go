package integration

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/RyanNutt/autograding-junit4/internal/command"
	"github.com/RyanNutt/autograding-junit4/internal/config"
	"github.com/RyanNutt/autograding-junit4/internal/output"
	"github.com/RyanNutt/autograding-junit4/internal/pipeline"
	"github.com/RyanNutt/autograding-junit4/internal/report"
	"github.com/RyanNutt/autograding-junit4/pkg/testhelper"
)

// Integration tests run the real pipeline through /bin/sh. A fake JDK on
// PATH stands in for javac and java so that no Java toolchain is required.

func fixturesDir(t *testing.T) string {
	t.Helper()
	root, err := testhelper.FindModuleRoot()
	if err != nil {
		t.Fatalf("failed to find module root: %v", err)
	}
	return filepath.Join(root, "test", "fixtures")
}

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("integration tests need a POSIX shell")
	}
}

// fakeJDK is a directory of executable scripts placed first on PATH.
type fakeJDK struct {
	bin  string
	home string
}

func newFakeJDK(t *testing.T) *fakeJDK {
	t.Helper()
	requireShell(t)
	jdk := &fakeJDK{bin: t.TempDir(), home: t.TempDir()}
	jdk.script(t, "javac", "exit 0")
	jdk.script(t, "java", "echo 'JUnit version 4.13.2'\necho '.'\nexit 0")
	return jdk
}

// script installs an executable named name whose body is sh source.
func (j *fakeJDK) script(t *testing.T, name, body string) {
	t.Helper()
	path := filepath.Join(j.bin, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

// replay makes java print the transcript file and exit like JUnitCore does.
func (j *fakeJDK) replay(t *testing.T, transcript string, exitCode int) {
	t.Helper()
	path := filepath.Join(j.bin, "transcript.txt")
	if err := os.WriteFile(path, []byte(transcript), 0644); err != nil {
		t.Fatalf("failed to write transcript: %v", err)
	}
	j.script(t, "java", "cat '"+path+"'\nexit "+strconv.Itoa(exitCode))
}

func (j *fakeJDK) lookup(extra map[string]string) config.LookupEnv {
	env := map[string]string{
		"PATH": j.bin + string(os.PathListSeparator) + os.Getenv("PATH"),
		"HOME": j.home,
	}
	for k, v := range extra {
		env[k] = v
	}
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

// grade resolves opts against the fake JDK environment and runs the pipeline
// in a fresh working directory.
func (j *fakeJDK) grade(t *testing.T, opts ...config.Options) (pipeline.Result, string) {
	t.Helper()
	return j.gradeContext(context.Background(), t, opts...)
}

// gradeContext is grade under a caller-controlled context.
func (j *fakeJDK) gradeContext(ctx context.Context, t *testing.T, opts ...config.Options) (pipeline.Result, string) {
	t.Helper()
	base := config.Options{TestName: "Calculator", TestClass: "CalculatorTest"}
	cfg, err := config.Resolve(j.lookup(nil), append([]config.Options{base}, opts...)...)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	var console strings.Builder
	w := output.NewWithWriters(&console, &console, false)
	c := pipeline.New(
		command.NewShellRunner(command.WithLogger(zap.NewNop())),
		pipeline.WithWriter(w),
		pipeline.WithDir(t.TempDir()),
	)
	return c.Execute(ctx, cfg), console.String()
}

// asJSON converts a report into generic JSON for testhelper.Compare.
func asJSON(t *testing.T, r report.Report) interface{} {
	t.Helper()
	data, err := report.MarshalCanonical(r)
	if err != nil {
		t.Fatalf("MarshalCanonical() error = %v", err)
	}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("canonical JSON does not parse: %v", err)
	}
	return v
}

func ptr[T any](v T) *T { return &v }
