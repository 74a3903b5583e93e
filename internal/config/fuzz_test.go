package config

import (
	"strings"
	"testing"
)

// FuzzSplitClasses checks that split entries are trimmed and non-empty.
func FuzzSplitClasses(f *testing.F) {
	f.Add("A,B")
	f.Add(" , ,")
	f.Add("com.example.CalcTest , ParserTest")
	f.Add("")

	f.Fuzz(func(t *testing.T, list string) {
		for _, class := range SplitClasses(list) {
			if class == "" {
				t.Fatal("empty class name")
			}
			if class != strings.TrimSpace(class) {
				t.Fatalf("untrimmed class name %q", class)
			}
			if strings.Contains(class, ",") {
				t.Fatalf("class name %q contains a comma", class)
			}
		}
	})
}

// FuzzLoadFile checks that arbitrary YAML never panics the loader.
func FuzzLoadFile(f *testing.F) {
	f.Add("test-name: A\ntest-class: B\n")
	f.Add("timeout: 0\n")
	f.Add("- 1\n")
	f.Add("{")

	f.Fuzz(func(t *testing.T, content string) {
		_, _ = parseFile([]byte(content))
	})
}
