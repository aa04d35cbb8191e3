// Package diag defines the diagnostic records produced while lexing,
// parsing, mapping, and emitting, and a helper for rendering one against
// its source line with a column marker.
package diag

import (
	"fmt"
	"strings"

	"xlate/pkg/source"
)

// Type enumerates the stage a diagnostic was raised from.
type Type string

const (
	TypeParsing           Type = "rdp_parsing"
	TypeSyntax            Type = "syntax"
	TypeSemantic          Type = "semantic"
	TypeConversionError   Type = "conversion_error"
	TypeASTConversionError Type = "ast_conversion_error"
)

// Severity is how serious a diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Diagnostic is one reported issue, positioned at a source line/column.
type Diagnostic struct {
	Type     Type     `json:"type"`
	Message  string   `json:"message"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Severity Severity `json:"severity"`
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s %s at %d:%d: %s", d.Severity, d.Type, d.Line, d.Column, d.Message)
}

// New builds an error-severity diagnostic.
func New(typ Type, line, column int, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Type: typ, Message: fmt.Sprintf(format, args...), Line: line, Column: column, Severity: SeverityError}
}

// NewWarning builds a warning-severity diagnostic.
func NewWarning(typ Type, line, column int, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Type: typ, Message: fmt.Sprintf(format, args...), Line: line, Column: column, Severity: SeverityWarning}
}

// NewInfo builds an info-severity diagnostic.
func NewInfo(typ Type, line, column int, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Type: typ, Message: fmt.Sprintf(format, args...), Line: line, Column: column, Severity: SeverityInfo}
}

// Render formats a diagnostic against the given source file: the message
// line, the offending source line, and a '^' marker under the column.
func Render(src *source.File, d Diagnostic) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s at %d:%d: %s\n", d.Severity, d.Type, d.Line, d.Column, d.Message)
	if src == nil {
		return b.String()
	}
	line := src.Line(d.Line)
	if line == "" {
		return b.String()
	}
	fmt.Fprintf(&b, "  %s\n", strings.TrimRight(line, "\r\n"))
	col := d.Column
	if col < 1 {
		col = 1
	}
	fmt.Fprintf(&b, "  %s^\n", strings.Repeat(" ", col-1))
	return b.String()
}

// RenderAll renders a whole list of diagnostics in the order given.
func RenderAll(src *source.File, diags []Diagnostic) string {
	var b strings.Builder
	for _, d := range diags {
		b.WriteString(Render(src, d))
	}
	return b.String()
}
