package main

import (
	"fmt"
	"os"

	"github.com/temirov/tmxaudit/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main runs the audit and exits with the number of configuration mismatches.
func main() {
	executionError := cli.Execute()
	if executionError != nil && !cli.IsMismatch(executionError) {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
	}
	os.Exit(cli.ExitStatus(executionError))
}
