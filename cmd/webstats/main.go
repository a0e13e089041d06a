package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/webstats/webstats/internal/exitcode"
)

// exitError carries the process exit code for a failed command.
type exitError struct {
	Code int
	Err  error
}

func (e *exitError) Error() string { return e.Err.Error() }

func (e *exitError) Unwrap() error { return e.Err }

func exitWith(code int, err error) error {
	return &exitError{Code: code, Err: err}
}

func main() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	var ee *exitError
	if errors.As(err, &ee) {
		os.Exit(ee.Code)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(exitcode.UsageError)
}
