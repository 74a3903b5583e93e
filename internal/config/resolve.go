package config

import (
	"fmt"
	"strings"
	"time"
)

// Resolve merges layers in increasing precedence on top of the defaults,
// validates the result and composes the stage commands. lookup supplies the
// host variables for the command Environment.
func Resolve(lookup LookupEnv, layers ...Options) (RunConfiguration, error) {
	var merged Options
	for _, layer := range layers {
		merged = merged.merge(layer)
	}
	applyDefaults(&merged)

	if err := validate(merged); err != nil {
		return RunConfiguration{}, err
	}

	classes := SplitClasses(merged.TestClass)
	lib := strings.TrimRight(merged.LibFolder, "/")
	if lib == "" {
		lib = "/"
	}

	return RunConfiguration{
		TestName:      strings.TrimSpace(merged.TestName),
		SetupCommand:  strings.TrimSpace(merged.SetupCommand),
		BuildCommand:  BuildCommand(lib),
		RunCommand:    RunCommand(lib, classes),
		Timeout:       time.Duration(*merged.Timeout * float64(time.Minute)),
		MaxScore:      *merged.MaxScore,
		PartialCredit: *merged.PartialCredit,
		LibFolder:     lib,
		Env:           NewEnvironment(lookup),
		testClasses:   classes,
	}, nil
}

// BuildCommand compiles every Java source in the working directory against
// the jars in lib.
func BuildCommand(lib string) string {
	return fmt.Sprintf(`javac -cp "%s" -d . *.java`, classpathGlob(lib))
}

// RunCommand runs the JUnit 4 console runner over classes.
func RunCommand(lib string, classes []string) string {
	return fmt.Sprintf(`java -cp "%s:." org.junit.runner.JUnitCore %s`,
		classpathGlob(lib), strings.Join(classes, " "))
}

func classpathGlob(lib string) string {
	if strings.HasSuffix(lib, "/") {
		return lib + "*"
	}
	return lib + "/*"
}
