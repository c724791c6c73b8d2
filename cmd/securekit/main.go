// Command securekit is an operator tool for the securekit credential
// subsystem: password hashes, encrypted values and tokens from the shell.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	apperrors "github.com/kbukum/securekit/errors"
)

func main() {
	a := newApp()
	err := newRootCmd(a).Execute()
	if stopErr := a.shutdown(); err == nil {
		err = stopErr
	}
	if err != nil {
		printError(err)
		os.Exit(1)
	}
}

func printError(err error) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	if appErr, ok := apperrors.AsAppError(err); ok {
		fmt.Fprintf(os.Stderr, "%s %s\n", red("Error ["+string(appErr.Code)+"]:"), appErr.Message)
		return
	}
	fmt.Fprintf(os.Stderr, "%s %v\n", red("Error:"), err)
}
