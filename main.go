package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/temirov/untracked/cmd/cli"
	"github.com/temirov/untracked/internal/scan"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main scans the requested directory trees and exits non-zero when anything is reported.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		if !errors.Is(executionError, scan.ErrRootsNotClean) {
			fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		}
		os.Exit(1)
	}
}
