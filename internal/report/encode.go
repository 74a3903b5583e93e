package report

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/RyanNutt/autograding-junit4/internal/schema"
)

// MarshalCanonical returns the canonical JSON form of a report. Keys follow
// struct field order, so the same report always produces the same bytes.
func MarshalCanonical(r Report) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Encode validates the report against the report schema and returns its
// canonical JSON encoded as standard base64.
func Encode(r Report) (string, error) {
	data, err := MarshalCanonical(r)
	if err != nil {
		return "", err
	}
	if err := schema.ValidateReport(data); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Decode reverses Encode. Surrounding whitespace is ignored.
func Decode(encoded string) (Report, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return Report{}, fmt.Errorf("decode base64: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var r Report
	if err := dec.Decode(&r); err != nil {
		return Report{}, fmt.Errorf("unmarshal report: %w", err)
	}
	return r, nil
}
