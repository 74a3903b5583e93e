package testparser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const mixedFailuresOutput = `JUnit version 4.13.2
..E.E.E.E
Time: 1.004
There were 4 failures:
1) testAdd(CalculatorTest)
java.lang.AssertionError: expected:<4> but was:<5>
	at org.junit.Assert.fail(Assert.java:89)
	at org.junit.Assert.failNotEquals(Assert.java:835)
	at CalculatorTest.testAdd(CalculatorTest.java:12)
2) testDivide(CalculatorTest)
java.lang.ArithmeticException: / by zero
	at Calculator.divide(Calculator.java:20)
3) testSlow(CalculatorTest)
org.junit.runners.model.TestTimedOutException: test timed out after 1000 milliseconds
	at java.lang.Thread.sleep(Native Method)
4) testName(GreeterTest)
org.junit.ComparisonFailure: expected:<Hello[, World]> but was:<Hello[]>
	at org.junit.Assert.assertEquals(Assert.java:117)

FAILURES!!!
Tests run: 5,  Failures: 4
`

func TestExtractFailures_Mixed(t *testing.T) {
	t.Parallel()

	expected := []FailureRecord{
		{
			Ordinal:  1,
			Test:     "testAdd",
			Class:    "CalculatorTest",
			Message:  "expected:<4> but was:<5>",
			Expected: "4",
			Actual:   "5",
			Kind:     KindAssertion,
			Category: CategoryAssertionMismatch,
		},
		{
			Ordinal:   2,
			Test:      "testDivide",
			Class:     "CalculatorTest",
			Message:   "/ by zero",
			Exception: "ArithmeticException",
			Kind:      KindException,
			Category:  CategoryException,
		},
		{
			Ordinal:   3,
			Test:      "testSlow",
			Class:     "CalculatorTest",
			Message:   "test timed out after 1000 milliseconds",
			Exception: "TestTimedOutException",
			Kind:      KindException,
			Category:  CategoryTimeout,
		},
		{
			Ordinal:  4,
			Test:     "testName",
			Class:    "GreeterTest",
			Message:  "expected:<Hello[, World]> but was:<Hello[]>",
			Expected: "Hello[, World]",
			Actual:   "Hello[]",
			Kind:     KindAssertion,
			Category: CategoryAssertionMismatch,
		},
	}

	got := ExtractFailures(mixedFailuresOutput)
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("ExtractFailures() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractFailures_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		message  string
		expected FailureRecord
	}{
		{
			name:    "assertion with custom message",
			message: "java.lang.AssertionError: sum is wrong expected:<10> but was:<9>",
			expected: FailureRecord{
				Message:  "sum is wrong expected:<10> but was:<9>",
				Expected: "10",
				Actual:   "9",
				Kind:     KindAssertion,
				Category: CategoryAssertionMismatch,
			},
		},
		{
			name:    "assertion with spaced mismatch",
			message: "java.lang.AssertionError: expected: <a> but was: <b>",
			expected: FailureRecord{
				Message:  "expected: <a> but was: <b>",
				Expected: "a",
				Actual:   "b",
				Kind:     KindAssertion,
				Category: CategoryAssertionMismatch,
			},
		},
		{
			name:    "assertTrue without message",
			message: "java.lang.AssertionError",
			expected: FailureRecord{
				Message:  "",
				Kind:     KindAssertion,
				Category: CategoryAssertion,
			},
		},
		{
			name:    "assertion without expected pair",
			message: "java.lang.AssertionError: list should be empty",
			expected: FailureRecord{
				Message:  "list should be empty",
				Kind:     KindAssertion,
				Category: CategoryAssertion,
			},
		},
		{
			name:    "legacy junit framework assertion",
			message: "junit.framework.AssertionFailedError: expected:<1> but was:<2>",
			expected: FailureRecord{
				Message:  "expected:<1> but was:<2>",
				Expected: "1",
				Actual:   "2",
				Kind:     KindAssertion,
				Category: CategoryAssertionMismatch,
			},
		},
		{
			name:    "exception without message",
			message: "java.lang.NullPointerException",
			expected: FailureRecord{
				Message:   "NullPointerException",
				Exception: "NullPointerException",
				Kind:      KindException,
				Category:  CategoryException,
			},
		},
		{
			name:    "nested exception class",
			message: "com.example.Bank$InsufficientFundsException: balance 0",
			expected: FailureRecord{
				Message:   "balance 0",
				Exception: "Bank$InsufficientFundsException",
				Kind:      KindException,
				Category:  CategoryException,
			},
		},
		{
			name:    "timeout without message",
			message: "org.junit.runners.model.TestTimedOutException",
			expected: FailureRecord{
				Message:   "test timed out",
				Exception: "TestTimedOutException",
				Kind:      KindException,
				Category:  CategoryTimeout,
			},
		},
		{
			name:    "unrecognized text",
			message: "Something unexpected happened",
			expected: FailureRecord{
				Message:  "Something unexpected happened",
				Kind:     KindException,
				Category: CategoryUnclassified,
			},
		},
		{
			name:    "assertion marker prefix of another type",
			message: "java.lang.AssertionErrorWrapper: boom",
			expected: FailureRecord{
				Message:   "boom",
				Exception: "AssertionErrorWrapper",
				Kind:      KindException,
				Category:  CategoryException,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			output := "1) testIt(SomeTest)\n" + tt.message + "\n\tat SomeTest.testIt(SomeTest.java:1)\n"
			got := ExtractFailures(output)
			if len(got) != 1 {
				t.Fatalf("ExtractFailures() returned %d records, want 1", len(got))
			}
			want := tt.expected
			want.Ordinal = 1
			want.Test = "testIt"
			want.Class = "SomeTest"
			if diff := cmp.Diff(want, got[0]); diff != "" {
				t.Errorf("record mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractFailures_Degraded(t *testing.T) {
	t.Parallel()

	t.Run("no failures", func(t *testing.T) {
		t.Parallel()
		if got := ExtractFailures("JUnit version 4.13.2\n...\n\nOK (3 tests)\n"); len(got) != 0 {
			t.Errorf("ExtractFailures() = %v, want none", got)
		}
	})

	t.Run("truncated after header", func(t *testing.T) {
		t.Parallel()
		got := ExtractFailures("There was 1 failure:\n1) testAdd(CalculatorTest)")
		if len(got) != 1 {
			t.Fatalf("ExtractFailures() returned %d records, want 1", len(got))
		}
		if got[0].Category != CategoryUnclassified || got[0].Message != "1) testAdd(CalculatorTest)" {
			t.Errorf("unexpected degraded record: %+v", got[0])
		}
	})

	t.Run("header directly followed by header", func(t *testing.T) {
		t.Parallel()
		got := ExtractFailures("1) a(A)\n2) b(B)\njava.lang.IllegalStateException: bad\n")
		if len(got) != 2 {
			t.Fatalf("ExtractFailures() returned %d records, want 2", len(got))
		}
		if got[0].Category != CategoryUnclassified {
			t.Errorf("first record category = %q, want %q", got[0].Category, CategoryUnclassified)
		}
		if got[1].Category != CategoryException || got[1].Message != "bad" {
			t.Errorf("second record = %+v", got[1])
		}
	})

	t.Run("parameterized test name", func(t *testing.T) {
		t.Parallel()
		got := ExtractFailures("1) testAdd[2](com.example.CalcTest)\njava.lang.AssertionError\n")
		if len(got) != 1 {
			t.Fatalf("ExtractFailures() returned %d records, want 1", len(got))
		}
		if got[0].Test != "testAdd[2]" || got[0].Class != "com.example.CalcTest" {
			t.Errorf("unexpected test identity: %q / %q", got[0].Test, got[0].Class)
		}
	})

	t.Run("stack frames are not headers", func(t *testing.T) {
		t.Parallel()
		got := ExtractFailures("\tat Foo.bar(Foo.java:1)\n  2) nope(Nope)\n")
		if len(got) != 0 {
			t.Errorf("ExtractFailures() = %v, want none", got)
		}
	})
}
