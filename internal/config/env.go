package config

import (
	"os"
	"sort"
	"strconv"
	"strings"
)

// LookupEnv reads a variable from the process environment.
// Tests substitute a map-backed function.
type LookupEnv func(key string) (string, bool)

// OSLookupEnv reads the real process environment.
var OSLookupEnv LookupEnv = os.LookupEnv

// Input names, shared by the YAML file, INPUT_ variables and flags.
const (
	InputTestName      = "test-name"
	InputTestClass     = "test-class"
	InputSetupCommand  = "setup-command"
	InputTimeout       = "timeout"
	InputMaxScore      = "max-score"
	InputLibFolder     = "lib-folder"
	InputPartialCredit = "partial-credit"
)

// InputEnvKey returns the variable GitHub Actions uses for an input,
// e.g. "test-name" becomes "INPUT_TEST-NAME".
func InputEnvKey(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// FromEnv reads the INPUT_ variables set by the Actions runner.
// Blank values count as unset.
func FromEnv(lookup LookupEnv) (Options, error) {
	get := func(name string) string {
		v, _ := lookup(InputEnvKey(name))
		return strings.TrimSpace(v)
	}

	opts := Options{
		TestName:     get(InputTestName),
		TestClass:    get(InputTestClass),
		SetupCommand: get(InputSetupCommand),
		LibFolder:    get(InputLibFolder),
	}

	var err error
	if opts.Timeout, err = parseFloatInput(InputTimeout, get(InputTimeout)); err != nil {
		return Options{}, err
	}
	if opts.MaxScore, err = parseFloatInput(InputMaxScore, get(InputMaxScore)); err != nil {
		return Options{}, err
	}
	if opts.PartialCredit, err = parseBoolInput(InputPartialCredit, get(InputPartialCredit)); err != nil {
		return Options{}, err
	}

	return opts, nil
}

func parseFloatInput(name, value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, &ValidationError{Field: name, Message: "must be a number, got " + strconv.Quote(value)}
	}
	return &f, nil
}

func parseBoolInput(name, value string) (*bool, error) {
	if value == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, &ValidationError{Field: name, Message: "must be true or false, got " + strconv.Quote(value)}
	}
	return &b, nil
}

// hostVariables are copied from the grader's own environment.
var hostVariables = []string{"PATH", "HOME"}

// fixedVariables are set for every stage command.
var fixedVariables = map[string]string{
	"FORCE_COLOR":     "true",
	"DOTNET_CLI_HOME": "/tmp",
	"DOTNET_NOLOGO":   "true",
}

// Environment is the immutable variable set handed to stage commands.
// The zero value is empty.
type Environment struct {
	vars map[string]string
}

// NewEnvironment builds the command environment from the host variables
// visible through lookup plus the fixed grader variables.
func NewEnvironment(lookup LookupEnv) Environment {
	vars := make(map[string]string, len(hostVariables)+len(fixedVariables))
	for _, key := range hostVariables {
		if v, ok := lookup(key); ok {
			vars[key] = v
		}
	}
	for k, v := range fixedVariables {
		vars[k] = v
	}
	return Environment{vars: vars}
}

// Get returns the value of key.
func (e Environment) Get(key string) (string, bool) {
	v, ok := e.vars[key]
	return v, ok
}

// Len returns the number of variables.
func (e Environment) Len() int {
	return len(e.vars)
}

// Map returns a copy of the variables.
func (e Environment) Map() map[string]string {
	out := make(map[string]string, len(e.vars))
	for k, v := range e.vars {
		out[k] = v
	}
	return out
}

// Slice returns the variables as KEY=value pairs sorted by key, the form
// expected by os/exec.
func (e Environment) Slice() []string {
	keys := make([]string, 0, len(e.vars))
	for k := range e.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+e.vars[k])
	}
	return out
}
