package testhelper

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// CompareOptions configures report comparison.
type CompareOptions struct {
	// FloatTolerance is the absolute tolerance for numbers.
	FloatTolerance float64

	// Ignore lists object keys whose values are not compared at any depth.
	// Keys present in expected are still required in actual.
	Ignore []string

	// AllowExtraKeys accepts object keys in actual that expected does not name.
	AllowExtraKeys bool
}

// DefaultOptions ignores execution_time, which depends on the machine.
func DefaultOptions() CompareOptions {
	return CompareOptions{
		FloatTolerance: 1e-9,
		Ignore:         []string{"execution_time"},
	}
}

// Equal reports whether expected and actual match under opts.
func Equal(expected, actual interface{}, opts CompareOptions) bool {
	ok, _ := Compare(expected, actual, opts)
	return ok
}

// Compare compares two decoded JSON values and returns a description of the
// first difference found.
func Compare(expected, actual interface{}, opts CompareOptions) (bool, string) {
	return compareValues(expected, actual, opts, "")
}

func compareValues(expected, actual interface{}, opts CompareOptions, path string) (bool, string) {
	if expected == nil && actual == nil {
		return true, ""
	}
	if expected == nil || actual == nil {
		return false, fmt.Sprintf("%s: nil mismatch (expected=%v, actual=%v)", pathStr(path), expected, actual)
	}

	switch e := expected.(type) {
	case float64:
		return compareNumber(e, actual, opts, path)
	case int:
		return compareNumber(float64(e), actual, opts, path)
	case []interface{}:
		return compareArray(e, actual, opts, path)
	case map[string]interface{}:
		return compareObject(e, actual, opts, path)
	case string:
		a, ok := actual.(string)
		if !ok {
			return false, fmt.Sprintf("%s: type mismatch (expected=string, actual=%T)", pathStr(path), actual)
		}
		if e != a {
			return false, fmt.Sprintf("%s: string mismatch (expected=%q, actual=%q)", pathStr(path), e, a)
		}
		return true, ""
	case bool:
		a, ok := actual.(bool)
		if !ok {
			return false, fmt.Sprintf("%s: type mismatch (expected=bool, actual=%T)", pathStr(path), actual)
		}
		if e != a {
			return false, fmt.Sprintf("%s: bool mismatch (expected=%v, actual=%v)", pathStr(path), e, a)
		}
		return true, ""
	default:
		if expected != actual {
			return false, fmt.Sprintf("%s: value mismatch (expected=%v, actual=%v)", pathStr(path), expected, actual)
		}
		return true, ""
	}
}

func compareNumber(expected float64, actual interface{}, opts CompareOptions, path string) (bool, string) {
	var a float64
	switch v := actual.(type) {
	case float64:
		a = v
	case int:
		a = float64(v)
	default:
		return false, fmt.Sprintf("%s: type mismatch (expected=number, actual=%T)", pathStr(path), actual)
	}
	if math.Abs(expected-a) > opts.FloatTolerance {
		return false, fmt.Sprintf("%s: number mismatch (expected=%v, actual=%v)", pathStr(path), expected, a)
	}
	return true, ""
}

func compareArray(expected []interface{}, actual interface{}, opts CompareOptions, path string) (bool, string) {
	a, ok := actual.([]interface{})
	if !ok {
		return false, fmt.Sprintf("%s: type mismatch (expected=array, actual=%T)", pathStr(path), actual)
	}
	if len(expected) != len(a) {
		return false, fmt.Sprintf("%s: array length mismatch (expected=%d, actual=%d)", pathStr(path), len(expected), len(a))
	}
	for i := range expected {
		if ok, diff := compareValues(expected[i], a[i], opts, fmt.Sprintf("%s[%d]", path, i)); !ok {
			return false, diff
		}
	}
	return true, ""
}

func compareObject(expected map[string]interface{}, actual interface{}, opts CompareOptions, path string) (bool, string) {
	a, ok := actual.(map[string]interface{})
	if !ok {
		return false, fmt.Sprintf("%s: type mismatch (expected=object, actual=%T)", pathStr(path), actual)
	}

	keys := make([]string, 0, len(expected))
	for k := range expected {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		av, present := a[k]
		if !present {
			return false, fmt.Sprintf("%s: missing key %q", pathStr(path), k)
		}
		if ignored(k, opts) {
			continue
		}
		if ok, diff := compareValues(expected[k], av, opts, joinPath(path, k)); !ok {
			return false, diff
		}
	}

	if !opts.AllowExtraKeys {
		var extra []string
		for k := range a {
			if _, ok := expected[k]; !ok {
				extra = append(extra, k)
			}
		}
		if len(extra) > 0 {
			sort.Strings(extra)
			return false, fmt.Sprintf("%s: unexpected keys %s", pathStr(path), strings.Join(extra, ", "))
		}
	}
	return true, ""
}

func ignored(key string, opts CompareOptions) bool {
	for _, k := range opts.Ignore {
		if k == key {
			return true
		}
	}
	return false
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func pathStr(path string) string {
	if path == "" {
		return "root"
	}
	return path
}
