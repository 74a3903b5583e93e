// Package main is the entry point for the junit-grader CLI.
package main

import (
	"os"

	"github.com/RyanNutt/autograding-junit4/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
