package errors

import (
	"fmt"
	"strings"

	"github.com/gosimpl-lang/gosimpl/internal/token"
)

// StackFrame captures one active call for diagnostic purposes: the
// function name and the position of the call site. This is separate from
// internal/machine.Frame, which is the runtime bookkeeping record (§3
// "Frame (activation record)"); StackFrame only exists to render a trace
// when an error unwinds past the top-level catch point (§7).
type StackFrame struct {
	FunctionName string
	Pos          token.Position
	HasPos       bool
}

func (sf StackFrame) String() string {
	if !sf.HasPos {
		return sf.FunctionName
	}
	return fmt.Sprintf("%s (%d:%d)", sf.FunctionName, sf.Pos.Line, sf.Pos.Column)
}

// StackTrace is an ordered sequence of frames, oldest call first.
type StackTrace []StackFrame

// String renders the trace most-recent-call-first, matching the teacher's
// StackTrace.String layout.
func (st StackTrace) String() string {
	if len(st) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := len(st) - 1; i >= 0; i-- {
		sb.WriteString("  at ")
		sb.WriteString(st[i].String())
		if i > 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
