// Package config resolves grader inputs from defaults, an optional YAML file,
// GitHub Actions INPUT_ variables and command-line flags.
package config

import "time"

// Options is one layer of grader inputs. Empty strings and nil pointers mean
// "not set in this layer" so that layers can be merged by precedence.
type Options struct {
	TestName      string   `yaml:"test-name"`
	TestClass     string   `yaml:"test-class"`
	SetupCommand  string   `yaml:"setup-command"`
	Timeout       *float64 `yaml:"timeout"` // minutes
	MaxScore      *float64 `yaml:"max-score"`
	LibFolder     string   `yaml:"lib-folder"`
	PartialCredit *bool    `yaml:"partial-credit"`
}

// merge returns o overlaid with every field that is set in over.
func (o Options) merge(over Options) Options {
	if over.TestName != "" {
		o.TestName = over.TestName
	}
	if over.TestClass != "" {
		o.TestClass = over.TestClass
	}
	if over.SetupCommand != "" {
		o.SetupCommand = over.SetupCommand
	}
	if over.Timeout != nil {
		v := *over.Timeout
		o.Timeout = &v
	}
	if over.MaxScore != nil {
		v := *over.MaxScore
		o.MaxScore = &v
	}
	if over.LibFolder != "" {
		o.LibFolder = over.LibFolder
	}
	if over.PartialCredit != nil {
		v := *over.PartialCredit
		o.PartialCredit = &v
	}
	return o
}

// RunConfiguration is the resolved, validated input for one grading run.
// It is produced by Resolve and is safe to pass by value: the class list is
// copied on the way in and out, and Env is immutable.
type RunConfiguration struct {
	TestName      string
	SetupCommand  string
	BuildCommand  string
	RunCommand    string
	Timeout       time.Duration
	MaxScore      float64
	PartialCredit bool
	LibFolder     string
	Env           Environment

	testClasses []string
}

// TestClasses returns a copy of the ordered test class identifiers.
func (c RunConfiguration) TestClasses() []string {
	return append([]string(nil), c.testClasses...)
}

// HasSetup reports whether a setup command was configured.
func (c RunConfiguration) HasSetup() bool {
	return c.SetupCommand != ""
}
