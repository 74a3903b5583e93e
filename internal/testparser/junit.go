package testparser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrParse is returned when the transcript does not contain a recognizable
// runner banner followed by a dot-sequence line.
var ErrParse = errors.New("test runner output not recognized")

// bannerRegex matches the runner's version announcement, e.g. "JUnit version 4.13.2".
var bannerRegex = regexp.MustCompile(`(?i)\bversion\s+(\d+\.\d+(?:\.\d+)?)\b`)

// Interpret extracts the per-test symbol sequence from a JUnit text runner transcript:
//
//	JUnit version 4.13.2
//	..E..
//	Time: 0.013
//
// The line immediately after the banner must consist only of '.' (pass),
// 'E' (error) and 'I' (ignored) symbols. Anything else on that line, such as
// test output interleaved with the runner's own writes, is reported as ErrParse
// rather than guessed around. A sequence without any executed test is also ErrParse.
func Interpret(output string) (RunSummary, error) {
	lines := splitLines(output)

	bannerIdx := -1
	var version string
	for i, line := range lines {
		if match := bannerRegex.FindStringSubmatch(line); match != nil {
			bannerIdx = i
			version = match[1]
			break
		}
	}
	if bannerIdx == -1 {
		return RunSummary{}, fmt.Errorf("%w: version banner not found", ErrParse)
	}
	if bannerIdx+1 >= len(lines) {
		return RunSummary{}, fmt.Errorf("%w: transcript ends after the version banner", ErrParse)
	}

	sequence := strings.TrimSpace(lines[bannerIdx+1])
	if sequence == "" {
		return RunSummary{}, fmt.Errorf("%w: empty line after the version banner", ErrParse)
	}

	summary := RunSummary{
		Version: version,
		Symbols: make([]Symbol, 0, len(sequence)),
	}
	for col, r := range sequence {
		switch r {
		case '.':
			summary.Symbols = append(summary.Symbols, SymbolPass)
		case 'E':
			summary.Symbols = append(summary.Symbols, SymbolError)
			summary.Errors++
		case 'I':
			summary.Ignored++
		default:
			return RunSummary{}, fmt.Errorf("%w: unexpected symbol %q at column %d after the version banner", ErrParse, r, col+1)
		}
	}
	summary.Total = len(summary.Symbols)

	if summary.Total == 0 {
		return RunSummary{}, fmt.Errorf("%w: no executed tests in the dot-sequence", ErrParse)
	}

	return summary, nil
}

// splitLines splits text on newlines and drops carriage returns so that
// transcripts captured on Windows runners parse identically.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
