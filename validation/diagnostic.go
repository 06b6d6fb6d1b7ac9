// Package validation defines the diagnostics produced by validating a document.
package validation

import (
	"fmt"
	"slices"
	"strings"
)

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic is a validation finding at a 1-based line. Diagnostics are values: two findings
// with the same line, severity and message are the same finding.
type Diagnostic struct {
	Line     int
	Severity Severity
	Message  string
}

// NewError returns an error severity diagnostic.
func NewError(line int, message string) Diagnostic {
	return Diagnostic{Line: line, Severity: SeverityError, Message: message}
}

// NewWarning returns a warning severity diagnostic.
func NewWarning(line int, message string) Diagnostic {
	return Diagnostic{Line: line, Severity: SeverityWarning, Message: message}
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("[%d] %s: %s", d.Line, d.Severity, d.Message)
}

// IsError reports whether the diagnostic has error severity.
func (d Diagnostic) IsError() bool {
	return d.Severity == SeverityError
}

// HasErrors reports whether any diagnostic has error severity.
func HasErrors(diagnostics []Diagnostic) bool {
	return slices.ContainsFunc(diagnostics, Diagnostic.IsError)
}

// SortDiagnostics sorts diagnostics by line, then severity, then message.
func SortDiagnostics(diagnostics []Diagnostic) {
	slices.SortFunc(diagnostics, compareDiagnostics)
}

func compareDiagnostics(a, b Diagnostic) int {
	if a.Line != b.Line {
		return a.Line - b.Line
	}
	if a.Severity != b.Severity {
		return int(a.Severity) - int(b.Severity)
	}
	return strings.Compare(a.Message, b.Message)
}
