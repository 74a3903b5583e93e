// Package testparser interprets the console transcript of the JUnit 4 text runner.
package testparser

// Symbol is the outcome of a single test as printed on the dot-sequence line.
type Symbol int

const (
	SymbolPass Symbol = iota
	SymbolError
)

func (s Symbol) String() string {
	if s == SymbolError {
		return "error"
	}
	return "pass"
}

// RunSummary holds the counts derived from the runner's dot-sequence.
// Errors never exceeds Total.
type RunSummary struct {
	Version string   // Runner version announced by the banner (e.g., "4.13.2")
	Symbols []Symbol // One entry per executed test, in print order
	Total   int
	Errors  int
	Ignored int // Tests marked "I"; not part of Total
}

// Passed returns the number of tests that did not error.
func (s RunSummary) Passed() int {
	return s.Total - s.Errors
}

// Kind separates assertion mismatches from every other failure.
type Kind string

const (
	KindAssertion Kind = "assertion"
	KindException Kind = "exception"
)

// Category is the diagnostic bucket a failure message was sorted into.
type Category string

const (
	CategoryAssertionMismatch Category = "assertion-mismatch" // expected/actual extracted
	CategoryAssertion         Category = "assertion"
	CategoryTimeout           Category = "timeout"
	CategoryException         Category = "exception"
	CategoryUnclassified      Category = "unclassified"
)

// FailureRecord describes one numbered failure block of the transcript.
// Records are diagnostics for humans and never feed the score.
type FailureRecord struct {
	Ordinal   int    // The N of "N) method(Class)"
	Test      string // Test method name
	Class     string // Test class name
	Message   string
	Expected  string // Empty unless Category is CategoryAssertionMismatch
	Actual    string // Empty unless Category is CategoryAssertionMismatch
	Exception string // Simple exception type name stripped from Message, if any
	Kind      Kind
	Category  Category
}
