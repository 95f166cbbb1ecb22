// Package errors implements the error taxonomy of spec.md §7 and a
// position-aware formatter, in the style of the teacher's
// internal/errors package (CompilerError with a source-excerpt caret).
package errors

import (
	"fmt"
	"strings"

	"github.com/gosimpl-lang/gosimpl/internal/token"
)

// Kind is one of the error kinds named in spec.md §7. Kind is not a Go
// error type hierarchy; callers switch on it via Error.Kind.
type Kind string

const (
	LexError           Kind = "LexError"
	ParseError         Kind = "ParseError"
	UnknownType        Kind = "UnknownType"
	TypeExists         Kind = "TypeExists"
	DuplicateFunction  Kind = "DuplicateFunction"
	AmbiguousCall      Kind = "AmbiguousCall"
	NoMatchingFunction Kind = "NoMatchingFunction"
	UndefinedVariable  Kind = "UndefinedVariable"
	BadAccess          Kind = "BadAccess"
	OutOfRange         Kind = "OutOfRange"
	BadCast            Kind = "BadCast"
	BadReturn          Kind = "BadReturn"
	StackOverflow      Kind = "StackOverflow"
	StackUnderflow     Kind = "StackUnderflow"
	CyclicalImport     Kind = "CyclicalImport"
	ModuleNotFound     Kind = "ModuleNotFound"
	RedefinedMember    Kind = "RedefinedMember"
	InvalidExpansion   Kind = "InvalidExpansion"
)

// Error is the single error type raised anywhere in the core pipeline.
// It always carries a Kind from the §7 taxonomy and, where applicable, a
// source Position.
type Error struct {
	Kind    Kind
	Message string
	Pos     token.Position
	HasPos  bool

	// Source and File are populated lazily by hosts that want the
	// teacher-style multi-line Format(); the bit-exact Error() string
	// never needs them.
	Source string
	File   string

	// Trace is populated the first time the error unwinds out of a
	// function call (user-defined or native), recording the chain of calls active at
	// that moment (§11.1). Empty for errors raised at top level.
	Trace StackTrace
}

// WithTrace attaches a call-stack trace if one isn't already set, so the
// deepest call frame to see the error wins. Returns the receiver for
// chaining.
func (e *Error) WithTrace(t StackTrace) *Error {
	if len(e.Trace) == 0 && len(t) > 0 {
		e.Trace = append(StackTrace(nil), t...)
	}
	return e
}

// New creates a position-less Error (used for schema/dispatch errors that
// are not anchored to one source location, e.g. DuplicateFunction at
// registration time).
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// At creates an Error anchored to a source position.
func At(kind Kind, pos token.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos, HasPos: true}
}

// Error implements the standard error interface with the bit-exact
// rendering spec.md §7 mandates: "error: MESSAGE (LINE:COL)". When no
// position is available the parenthesized suffix is omitted.
func (e *Error) Error() string {
	if e.HasPos {
		return fmt.Sprintf("error: %s (%d:%d)", e.Message, e.Pos.Line, e.Pos.Column)
	}
	return fmt.Sprintf("error: %s", e.Message)
}

// WithSource attaches the originating source text and file name, enabling
// Format's caret-annotated excerpt. It returns the receiver for chaining.
func (e *Error) WithSource(source, file string) *Error {
	e.Source = source
	e.File = file
	return e
}

// Format renders a teacher-style diagnostic: a header line, the offending
// source line, and a caret under the column. If color is true, ANSI bold
// red is used for the caret, matching internal/errors.CompilerError.Format
// in the teacher.
func (e *Error) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s", e.File)
	} else {
		sb.WriteString("Error")
	}
	if e.HasPos {
		fmt.Fprintf(&sb, " at %d:%d", e.Pos.Line, e.Pos.Column)
	}
	sb.WriteString("\n")

	if e.HasPos && e.Source != "" {
		if line := sourceLine(e.Source, e.Pos.Line); line != "" {
			prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
			sb.WriteString(prefix)
			sb.WriteString(line)
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
			if color {
				sb.WriteString("\033[1;31m")
			}
			sb.WriteString("^")
			if color {
				sb.WriteString("\033[0m")
			}
			sb.WriteString("\n")
		}
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(string(e.Kind))
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	if len(e.Trace) > 0 {
		sb.WriteString("\n")
		sb.WriteString(e.Trace.String())
	}
	return sb.String()
}

func sourceLine(source string, line int) string {
	lines := strings.Split(source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// FormatAll renders a sequence of errors separated by blank lines, in the
// teacher's multi-error report style.
func FormatAll(errs []*Error, color bool) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Format(color))
	}
	return strings.Join(parts, "\n\n")
}
