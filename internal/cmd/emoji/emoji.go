// Package emoji provides the status symbols used in CLI output.
package emoji

// Status symbols.
const (
	// Success marks a passing check or a completed operation.
	Success = "✓"

	// Error marks a failed check.
	Error = "✗"

	// Warning marks a non-fatal problem.
	Warning = "!"

	// Info marks informational lines.
	Info = "i"
)
