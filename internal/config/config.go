package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/RyanNutt/autograding-junit4/internal/schema"
)

// LoadFile reads a YAML configuration file whose keys mirror the action inputs:
//
//	test-name: Calculator
//	test-class: CalculatorTest, ParserTest
//	max-score: 10
//	partial-credit: true
//
// Unknown keys and ill-typed values are rejected by the embedded config schema.
func LoadFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return parseFile(data)
}

func parseFile(data []byte) (Options, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Options{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	if raw == nil {
		return Options{}, nil
	}

	asJSON, err := json.Marshal(raw)
	if err != nil {
		return Options{}, fmt.Errorf("failed to convert config file: %w", err)
	}
	if err := schema.ValidateConfig(asJSON); err != nil {
		return Options{}, err
	}

	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	return opts, nil
}
