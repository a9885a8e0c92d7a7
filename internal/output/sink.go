package output

import (
	"fmt"
	"io"
	"os"
)

// Heading precedes the result text when it goes to stdout.
const Heading = "API Response:"

// Sink routes result text to a file or to stdout. Status lines and
// diagnostics go to Stderr; only the result itself goes to Stdout.
type Sink struct {
	Path   string // destination file; empty means stdout
	Stdout io.Writer
	Stderr io.Writer
}

// Write routes the result text. A file-write failure is reported but not
// returned as an error: the result was already obtained, so the run still
// counts as successful.
func (s *Sink) Write(text string) {
	if s.Path == "" {
		fmt.Fprintln(s.Stdout, Heading)
		fmt.Fprintln(s.Stdout, text)
		return
	}

	if err := os.WriteFile(s.Path, []byte(text), 0o644); err != nil {
		fmt.Fprintf(s.Stderr, "Error writing to file %s: %v\n", s.Path, err)
		return
	}
	fmt.Fprintf(s.Stderr, "API response saved to %s\n", s.Path)
}

// Diagnostic reports a failed or empty API exchange with the raw response.
func (s *Sink) Diagnostic(raw string) {
	fmt.Fprintf(s.Stderr, "Error or empty response from API: %s\n", raw)
}
