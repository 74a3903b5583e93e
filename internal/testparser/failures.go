package testparser

import (
	"regexp"
	"strconv"
	"strings"
)

// Static regexes for failure block parsing.
// Compiled once at package init for performance.
var (
	// failureHeaderRegex matches "1) testAdd(CalculatorTest)".
	failureHeaderRegex = regexp.MustCompile(`^(\d+)\) (\S.*?)\(([^()]+)\)\s*$`)

	// mismatchRegex matches JUnit's assertEquals message, e.g. "expected:<4> but was:<5>".
	mismatchRegex = regexp.MustCompile(`(?s)expected:\s*<(.*)> but was:\s*<(.*)>`)

	// exceptionRegex matches a fully-qualified Throwable type, optionally followed by ": message".
	exceptionRegex = regexp.MustCompile(`^((?:[A-Za-z_$][\w$]*\.)+([A-Z][\w$]*))(?::\s*(.*))?$`)
)

// assertionMarkers are the Throwable types JUnit raises for failed assertions.
var assertionMarkers = []string{
	"java.lang.AssertionError",
	"org.junit.ComparisonFailure",
	"junit.framework.AssertionFailedError",
	"junit.framework.ComparisonFailure",
	"org.opentest4j.AssertionFailedError",
}

// timeoutMarker is raised by JUnit 4 for tests exceeding @Test(timeout=...).
const timeoutMarker = "org.junit.runners.model.TestTimedOutException"

// classification is the outcome of a single classifier.
type classification struct {
	category  Category
	kind      Kind
	message   string
	expected  string
	actual    string
	exception string
}

// classifier inspects a failure message and reports whether it recognized it.
type classifier func(message string) (classification, bool)

// classifiers are tried in order; the first match wins. Messages no classifier
// recognizes fall back to CategoryUnclassified.
var classifiers = []classifier{
	classifyAssertion,
	classifyTimeout,
	classifyException,
}

// ExtractFailures returns one record per numbered failure block in the transcript:
//
//	1) testAdd(CalculatorTest)
//	java.lang.AssertionError: expected:<4> but was:<5>
//		at org.junit.Assert.fail(Assert.java:89)
//
// It never fails: blocks whose message cannot be classified still produce a
// record carrying the raw message.
func ExtractFailures(output string) []FailureRecord {
	lines := splitLines(output)

	var records []FailureRecord
	for i, line := range lines {
		match := failureHeaderRegex.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		ordinal, _ := strconv.Atoi(match[1])
		record := FailureRecord{
			Ordinal: ordinal,
			Test:    match[2],
			Class:   match[3],
		}

		message := ""
		if i+1 < len(lines) && !failureHeaderRegex.MatchString(lines[i+1]) {
			message = strings.TrimSpace(lines[i+1])
		}
		if message == "" {
			record.Message = strings.TrimSpace(line)
			record.Kind = KindException
			record.Category = CategoryUnclassified
			records = append(records, record)
			continue
		}

		c := classify(message)
		record.Message = c.message
		record.Expected = c.expected
		record.Actual = c.actual
		record.Exception = c.exception
		record.Kind = c.kind
		record.Category = c.category
		records = append(records, record)
	}

	return records
}

func classify(message string) classification {
	for _, c := range classifiers {
		if result, ok := c(message); ok {
			return result
		}
	}
	return classification{
		category: CategoryUnclassified,
		kind:     KindException,
		message:  message,
	}
}

func classifyAssertion(message string) (classification, bool) {
	for _, marker := range assertionMarkers {
		if !strings.HasPrefix(message, marker) {
			continue
		}
		rest := message[len(marker):]
		// Require a word boundary so "java.lang.AssertionErrorX" is not an assertion.
		if rest != "" && rest[0] != ':' && rest[0] != ' ' {
			continue
		}
		stripped := strings.TrimSpace(strings.TrimPrefix(rest, ":"))

		result := classification{
			category: CategoryAssertion,
			kind:     KindAssertion,
			message:  stripped,
		}
		if m := mismatchRegex.FindStringSubmatch(stripped); m != nil {
			result.category = CategoryAssertionMismatch
			result.expected = m[1]
			result.actual = m[2]
		}
		return result, true
	}
	return classification{}, false
}

func classifyTimeout(message string) (classification, bool) {
	if !strings.HasPrefix(message, timeoutMarker) {
		return classification{}, false
	}
	stripped := strings.TrimSpace(strings.TrimPrefix(message[len(timeoutMarker):], ":"))
	if stripped == "" {
		stripped = "test timed out"
	}
	return classification{
		category:  CategoryTimeout,
		kind:      KindException,
		message:   stripped,
		exception: "TestTimedOutException",
	}, true
}

func classifyException(message string) (classification, bool) {
	m := exceptionRegex.FindStringSubmatch(message)
	if m == nil {
		return classification{}, false
	}
	simpleName := m[2]
	stripped := strings.TrimSpace(m[3])
	if stripped == "" {
		stripped = simpleName
	}
	return classification{
		category:  CategoryException,
		kind:      KindException,
		message:   stripped,
		exception: simpleName,
	}, true
}
