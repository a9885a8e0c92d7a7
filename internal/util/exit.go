package util

import (
	"fmt"
	"os"
)

// Standard exit codes for promptq
const (
	// ExitOK indicates successful execution. Remote/API diagnostics and
	// output-write failures also exit 0: the result path was reached and
	// reported, even if the API had nothing usable to say.
	ExitOK = 0

	// ExitInvalidInput indicates a missing credential, a missing model,
	// or otherwise invalid parameters
	ExitInvalidInput = 2

	// ExitRuntimeError indicates I/O errors or other runtime failures
	ExitRuntimeError = 3
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError prints an error message to stderr and exits with the given code
func ExitWithError(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	Exit(code)
}
