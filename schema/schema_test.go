package schema

import (
	"encoding/json"
	"io/fs"
	"strings"
	"testing"
)

// TestEmbeddedSchemasAreValidJSON verifies that all embedded schema files are valid JSON.
func TestEmbeddedSchemasAreValidJSON(t *testing.T) {
	t.Parallel()

	entries, err := fs.ReadDir(FS, ".")
	if err != nil {
		t.Fatalf("failed to read embedded FS: %v", err)
	}

	schemaCount := 0
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".schema.json") {
			continue
		}
		schemaCount++

		t.Run(entry.Name(), func(t *testing.T) {
			t.Parallel()

			data, err := FS.ReadFile(entry.Name())
			if err != nil {
				t.Fatalf("failed to read %s: %v", entry.Name(), err)
			}

			var v map[string]interface{}
			if err := json.Unmarshal(data, &v); err != nil {
				t.Fatalf("%s is not a valid JSON object: %v", entry.Name(), err)
			}
			if _, ok := v["$schema"]; !ok {
				t.Errorf("%s missing $schema field", entry.Name())
			}
			if v["type"] != "object" {
				t.Errorf("%s root type = %v, want object", entry.Name(), v["type"])
			}
		})
	}

	if schemaCount != 2 {
		t.Errorf("found %d schema files, want 2", schemaCount)
	}
}
