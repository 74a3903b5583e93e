package config

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// javaClassPattern matches a simple or fully qualified Java class name.
var javaClassPattern = regexp.MustCompile(`^[A-Za-z_$][\w$]*(\.[A-Za-z_$][\w$]*)*$`)

// libFolderForbidden lists characters that would escape the double-quoted
// classpath argument in the composed commands.
const libFolderForbidden = "\"`$\\\n\r"

// maxTimeoutMinutes keeps the stage budget well inside time.Duration.
const maxTimeoutMinutes = 7 * 24 * 60

// ValidationError represents an invalid or missing input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// validate checks merged options after defaults have been applied.
func validate(o Options) error {
	if strings.TrimSpace(o.TestName) == "" {
		return &ValidationError{Field: InputTestName, Message: "is required"}
	}

	if strings.TrimSpace(o.TestClass) == "" {
		return &ValidationError{Field: InputTestClass, Message: "is required"}
	}
	classes := SplitClasses(o.TestClass)
	if len(classes) == 0 {
		return &ValidationError{Field: InputTestClass, Message: "must name at least one class"}
	}
	for _, class := range classes {
		if !javaClassPattern.MatchString(class) {
			return &ValidationError{
				Field:   InputTestClass,
				Message: fmt.Sprintf("%q is not a Java class name", class),
			}
		}
	}

	if t := *o.Timeout; math.IsNaN(t) || math.IsInf(t, 0) || t <= 0 {
		return &ValidationError{Field: InputTimeout, Message: "must be a positive number of minutes"}
	} else if t > maxTimeoutMinutes {
		return &ValidationError{Field: InputTimeout, Message: fmt.Sprintf("must not exceed %d minutes", maxTimeoutMinutes)}
	}

	if m := *o.MaxScore; math.IsNaN(m) || math.IsInf(m, 0) || m < 0 {
		return &ValidationError{Field: InputMaxScore, Message: "must be a non-negative number"}
	}

	if strings.ContainsAny(o.LibFolder, libFolderForbidden) {
		return &ValidationError{Field: InputLibFolder, Message: "contains a character that cannot be quoted in a shell command"}
	}

	return nil
}

// SplitClasses splits a comma-separated class list, trimming whitespace and
// dropping empty entries.
func SplitClasses(list string) []string {
	var classes []string
	for _, part := range strings.Split(list, ",") {
		if part = strings.TrimSpace(part); part != "" {
			classes = append(classes, part)
		}
	}
	return classes
}
