package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/RyanNutt/autograding-junit4/internal/testparser"
)

var titleCaser = cases.Title(language.English)

// StageTitle returns the display name of a pipeline stage, e.g. "build" -> "Build".
func StageTitle(stage string) string {
	return titleCaser.String(stage)
}

// Stream returns the writer that live command output should be copied to.
func (w *Writer) Stream() io.Writer {
	if w.quiet {
		return io.Discard
	}
	return w.out
}

// StageStart prints the banner for a stage and the command it runs.
func (w *Writer) StageStart(stage, command string) {
	if w.quiet {
		return
	}
	w.Println("")
	label := fmt.Sprintf("─── %s ───", StageTitle(stage))
	if w.color {
		w.Println("%s%s%s", bold+cyan, label, reset)
		w.Println("%s$ %s%s", dim, command, reset)
	} else {
		w.Println("%s", label)
		w.Println("$ %s", command)
	}
}

// StageSkipped prints a note for a stage that has nothing to run.
func (w *Writer) StageSkipped(stage, reason string) {
	if w.quiet {
		return
	}
	if w.color {
		w.Println("%s%s skipped: %s%s", dim, StageTitle(stage), reason, reset)
	} else {
		w.Println("%s skipped: %s", StageTitle(stage), reason)
	}
}

// StageSuccess prints stage completion.
func (w *Writer) StageSuccess(stage string, d time.Duration) {
	if w.quiet {
		return
	}
	if w.color {
		w.Println("%s%s%s %s✓%s %s(%s)%s", green, StageTitle(stage), reset, green, reset, dim, formatDuration(d), reset)
	} else {
		w.Println("%s done (%s)", StageTitle(stage), formatDuration(d))
	}
}

// StageFailure prints why a stage failed together with the captured output.
// It is written to stderr and is not suppressed by quiet mode.
func (w *Writer) StageFailure(stage, message, stdout, stderr string) {
	if w.color {
		w.Errorln("%s%s failed%s", red+bold, StageTitle(stage), reset)
	} else {
		w.Errorln("%s failed", StageTitle(stage))
	}
	w.Errorln("")
	w.Errorln("Message: %s", message)
	if s := strings.TrimRight(stdout, "\n"); s != "" {
		w.Errorln("")
		w.Errorln("stdout:")
		w.Errorln("%s", s)
	}
	if s := strings.TrimRight(stderr, "\n"); s != "" {
		w.Errorln("")
		w.Errorln("stderr:")
		w.Errorln("%s", s)
	}
}

// Transcript prints captured runner output verbatim.
func (w *Writer) Transcript(text string) {
	if w.quiet || text == "" {
		return
	}
	w.Print("%s", text)
	if !strings.HasSuffix(text, "\n") {
		w.Print("\n")
	}
}

// RunSummary prints the test counts from an interpreted transcript.
func (w *Writer) RunSummary(s testparser.RunSummary) {
	if w.quiet {
		return
	}
	w.SummaryHeader("Test Results")
	if s.Version != "" {
		w.SummaryItem("JUnit", s.Version)
	}
	w.SummaryItem("Tests", fmt.Sprintf("%d", s.Total))
	w.SummaryPassed("Passed", fmt.Sprintf("%d", s.Passed()))
	if s.Errors > 0 {
		w.SummaryFailed("Failed", fmt.Sprintf("%d", s.Errors))
	} else {
		w.SummaryItem("Failed", "0")
	}
	if s.Ignored > 0 {
		w.SummaryItem("Ignored", fmt.Sprintf("%d", s.Ignored))
	}
}

// maxCellWidth truncates long failure messages in the table.
const maxCellWidth = 80

// FailureTable prints one row per failure record.
func (w *Writer) FailureTable(records []testparser.FailureRecord) {
	if w.quiet || len(records) == 0 {
		return
	}
	w.Println("")
	w.SummarySectionLabel("Failures:")
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		detail := r.Message
		if r.Category == testparser.CategoryAssertionMismatch {
			detail = fmt.Sprintf("expected %s, got %s", r.Expected, r.Actual)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.Ordinal),
			r.Class + "." + r.Test,
			string(r.Category),
			truncate(singleLine(detail), maxCellWidth),
		})
	}
	w.Table([]string{"#", "TEST", "CATEGORY", "DETAIL"}, rows)
}

// ScoreLine prints the final score.
func (w *Writer) ScoreLine(score, maxScore float64, passed bool) {
	if passed {
		w.FinalSuccess("Score: %s / %s", formatScore(score), formatScore(maxScore))
	} else {
		w.FinalFailure("Score: %s / %s", formatScore(score), formatScore(maxScore))
	}
}

func formatScore(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(10 * time.Millisecond).String()
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
