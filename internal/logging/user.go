package logging

import (
	"fmt"
	"io"
	"os"
)

// User-facing output. These write straight to stdout/stderr, separate from
// the structured debug logging above.

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetUserOutput redirects user-facing output. Passing nil restores the
// process stdout/stderr.
func SetUserOutput(out, errOut io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	stdout, stderr = out, errOut
}

// UserInfo prints an info message to stdout.
func UserInfo(format string, args ...any) {
	userf(stdout, "ℹ ", format, args...)
}

// UserSuccess prints a success message to stdout.
func UserSuccess(format string, args ...any) {
	userf(stdout, "✓ ", format, args...)
}

// UserWarning prints a warning message to stderr.
func UserWarning(format string, args ...any) {
	userf(stderr, "⚠ ", format, args...)
}

// UserError prints an error message to stderr.
func UserError(format string, args ...any) {
	userf(stderr, "✗ ", format, args...)
}

func userf(w io.Writer, glyph, format string, args ...any) {
	if !IsTerminal(w) {
		glyph = ""
	}
	fmt.Fprintf(w, glyph+format+"\n", args...)
}
