// Package output renders the grader's console diagnostics: stage banners,
// captured command output, test counts, the failure table and the score.
// None of it is part of the encoded result.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Writer prints human-facing text. Normal output goes to out, problems to err.
type Writer struct {
	out   io.Writer
	err   io.Writer
	color bool
	quiet bool
}

// NewWithWriters creates a Writer over the given streams.
func NewWithWriters(out, err io.Writer, color bool) *Writer {
	return &Writer{
		out:   out,
		err:   err,
		color: color,
	}
}

// SetQuiet limits output to errors, warnings and the score line.
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// Print writes to the output stream.
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line to the output stream.
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Errorln writes a line to the error stream.
func (w *Writer) Errorln(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format+"\n", args...)
}

// Info prints a progress note, such as where the result was written.
func (w *Writer) Info(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	w.Println(format, args...)
}

// Warning prints a non-fatal problem with the inputs. Shown even when quiet.
func (w *Writer) Warning(format string, args ...interface{}) {
	w.Errorln("%s", w.paint(yellow, "warning: "+fmt.Sprintf(format, args...)))
}

// ErrorPrefix prints a fatal error under the program name.
func (w *Writer) ErrorPrefix(format string, args ...interface{}) {
	w.Errorln("%s %s", w.paint(red, "junit-grader:"), fmt.Sprintf(format, args...))
}

// Table prints left-aligned columns separated by two spaces, with a dashed
// rule under the headers. Cells beyond the header count are dropped.
func (w *Writer) Table(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	rule := make([]string, len(widths))
	for i, width := range widths {
		rule[i] = strings.Repeat("-", width)
	}

	w.Println("%s", padRow(headers, widths))
	w.Println("%s", padRow(rule, widths))
	for _, row := range rows {
		w.Println("%s", padRow(row, widths))
	}
}

func padRow(cells []string, widths []int) string {
	parts := make([]string, 0, len(widths))
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		parts = append(parts, fmt.Sprintf("%-*s", widths[i], cell))
	}
	return strings.Join(parts, "  ")
}

// SummaryHeader opens a block such as "=== Test Results ===".
func (w *Writer) SummaryHeader(title string) {
	w.Println("")
	w.Println("%s", w.paint(bold+cyan, "=== "+title+" ==="))
	w.Println("")
}

// SummaryItem prints an indented "label: value" line.
func (w *Writer) SummaryItem(label, value string) {
	w.Println("  %s %s", w.paint(dim, label+":"), value)
}

// SummaryPassed is SummaryItem with the value highlighted as good news.
func (w *Writer) SummaryPassed(label, value string) {
	w.Println("  %s %s", w.paint(dim, label+":"), w.paint(green, value))
}

// SummaryFailed is SummaryItem with the value highlighted as a problem.
func (w *Writer) SummaryFailed(label, value string) {
	w.Println("  %s %s", w.paint(dim, label+":"), w.paint(red, value))
}

// SummarySectionLabel introduces a nested block of a summary, e.g. "Failures:".
func (w *Writer) SummarySectionLabel(label string) {
	w.Println("  %s", w.paint(dim, label))
}

// FinalSuccess prints the closing line of a run in which every test passed.
func (w *Writer) FinalSuccess(format string, args ...interface{}) {
	w.Println("")
	w.Println("%s", w.paint(green, fmt.Sprintf(format, args...)))
}

// FinalFailure prints the closing line of a run with failing tests.
func (w *Writer) FinalFailure(format string, args ...interface{}) {
	w.Println("")
	w.Println("%s", w.paint(red, fmt.Sprintf(format, args...)))
}

// paint wraps s in an ANSI color when color is enabled.
func (w *Writer) paint(code, s string) string {
	if !w.color {
		return s
	}
	return code + s + reset
}

// SupportsColor reports whether w is a terminal that can render ANSI colors.
func SupportsColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if fi, _ := f.Stat(); fi != nil {
		return (fi.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)
