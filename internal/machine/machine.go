// Package machine implements the call/scope machine (C4 of SPEC_FULL.md
// §4.4): a value stack, a lexical scope stack, and a frame stack, wired
// together exactly as spec.md §4.4 describes. Grounded on the teacher's
// internal/bytecode VM stack (push/pop/peek over a slice) and its
// internal/interp/evaluator.CallStack (depth-capped frame stack with
// *StackOverflow* on the limit), generalized from DWScript's bytecode
// machine to gosimpl's tree-walking one.
package machine

import (
	"github.com/dustin/go-humanize"

	"github.com/gosimpl-lang/gosimpl/internal/errors"
	"github.com/gosimpl-lang/gosimpl/internal/value"
)

// Default capacities, overridable per engine instance (spec.md §4.4
// "Hosts may tune engine limits").
const (
	DefaultValueStackCapacity = 65536
	DefaultFrameStackCapacity = 1024
)

// scope binds names to value-stack slot indices. A scope owns no values
// itself — it only borrows stack slots for the lifetime of a frame
// (spec.md §4.4 "Scope").
type scope struct {
	slots map[string]int
}

func newScope() *scope {
	return &scope{slots: make(map[string]int)}
}

// frame is one call activation: its return slot index, the scope depth
// it owns, and the value-stack depth at the moment it was activated —
// the last of which lets Return discard whatever function-local
// temporaries (e.g. `let`-bound slots) the callee pushed past its
// arguments before exit_scope's "callers own the protocol" cleanup
// (spec.md §4.4).
type frame struct {
	returnSlot int
	scopeBase  int
	baseDepth  int
}

// Machine is the value/scope/frame triple of spec.md §4.4, sized once at
// construction and never reallocated past its capacity — exceeding it is
// an engine-level *StackOverflow*, not a Go panic.
type Machine struct {
	values   []value.Value
	valueCap int

	scopes []*scope

	frames   []frame
	frameCap int
}

// New constructs a Machine with the given capacities and a single root
// scope (there is always at least one live scope: the top-level
// program's). valueCap/frameCap of 0 select the package defaults.
func New(valueCap, frameCap int) *Machine {
	if valueCap <= 0 {
		valueCap = DefaultValueStackCapacity
	}
	if frameCap <= 0 {
		frameCap = DefaultFrameStackCapacity
	}
	return &Machine{
		values:   make([]value.Value, 0, valueCap),
		valueCap: valueCap,
		scopes:   []*scope{newScope()},
		frameCap: frameCap,
	}
}

// Push places v on top of the value stack. *StackOverflow if the
// configured capacity would be exceeded (spec.md §4.4 "push(v)").
func (m *Machine) Push(v value.Value) *errors.Error {
	if len(m.values) >= m.valueCap {
		return errors.New(errors.StackOverflow,
			"value stack limit of %s values exceeded", humanize.Comma(int64(m.valueCap)))
	}
	m.values = append(m.values, v)
	return nil
}

// Pop removes and returns the top value. *StackUnderflow if empty
// (spec.md §4.4 "pop()").
func (m *Machine) Pop() (value.Value, *errors.Error) {
	if len(m.values) == 0 {
		return value.Value{}, errors.New(errors.StackUnderflow, "value stack is empty")
	}
	v := m.values[len(m.values)-1]
	m.values = m.values[:len(m.values)-1]
	return v, nil
}

// Top returns the value stack's top element without removing it.
// *StackUnderflow if empty (spec.md §4.4 "top()").
func (m *Machine) Top() (value.Value, *errors.Error) {
	return m.Offset(0)
}

// Offset returns the value at k slots below the top; offset(0) == top().
// *StackUnderflow if k is beyond the live portion of the stack
// (spec.md §4.4 "offset(k) — positive k counts from top").
func (m *Machine) Offset(k int) (value.Value, *errors.Error) {
	idx := len(m.values) - 1 - k
	if idx < 0 || idx >= len(m.values) {
		return value.Value{}, errors.New(errors.StackUnderflow, "offset %d is outside the live value stack", k)
	}
	return m.values[idx], nil
}

// SetOffset overwrites the value at k slots below the top in place,
// without changing stack depth. Used by set_var to write through a
// previously bound slot.
func (m *Machine) SetOffset(k int, v value.Value) *errors.Error {
	idx := len(m.values) - 1 - k
	if idx < 0 || idx >= len(m.values) {
		return errors.New(errors.StackUnderflow, "offset %d is outside the live value stack", k)
	}
	m.values[idx] = v
	return nil
}

// Depth returns the current value stack depth, for callers that need to
// compute offsets of slots they just pushed.
func (m *Machine) Depth() int {
	return len(m.values)
}

// EnterScope pushes a fresh, empty scope onto the scope stack (spec.md
// §4.4 "enter_scope()"). Balanced with ExitScope; exiting does not clear
// value-stack slots — the caller owns that protocol (e.g. a block
// statement pops its own temporaries before exiting its scope).
func (m *Machine) EnterScope() {
	m.scopes = append(m.scopes, newScope())
}

// ExitScope pops the innermost scope (spec.md §4.4 "exit_scope()"). A
// no-op past the root scope, which always remains.
func (m *Machine) ExitScope() {
	if len(m.scopes) > 1 {
		m.scopes = m.scopes[:len(m.scopes)-1]
	}
}

// ScopeDepth returns the number of live scopes, including the root.
func (m *Machine) ScopeDepth() int {
	return len(m.scopes)
}

// Activate pushes a frame whose return slot is the value at offset arity
// from the top — the pre-pushed return placeholder of the calling
// convention (spec.md §4.4 "activate(name, arity)", §4.7 item 1) — and
// pushes a new scope for the callee's locals. *StackOverflow if the
// frame stack is at capacity.
func (m *Machine) Activate(arity int) *errors.Error {
	if len(m.frames) >= m.frameCap {
		return errors.New(errors.StackOverflow,
			"call stack limit of %s frames exceeded", humanize.Comma(int64(m.frameCap)))
	}
	returnIdx := len(m.values) - 1 - arity
	if returnIdx < 0 {
		return errors.New(errors.StackUnderflow, "no return slot at arity %d", arity)
	}
	m.frames = append(m.frames, frame{returnSlot: returnIdx, scopeBase: len(m.scopes), baseDepth: len(m.values)})
	m.EnterScope()
	return nil
}

// Return implements spec.md §4.4 "return()": copies top() into the
// current frame's return slot, pops one value, pops the frame, and pops
// its scope. Any function-local slots pushed past the arguments (e.g.
// `let`-bound locals) are discarded first, since exit_scope itself does
// not clear stack slots and nothing else would. *BadReturn if no function
// frame is active (spec.md §4.4).
func (m *Machine) Return() *errors.Error {
	if len(m.frames) == 0 {
		return errors.New(errors.BadReturn, "return outside any function frame")
	}
	top, err := m.Pop()
	if err != nil {
		return err
	}
	f := m.frames[len(m.frames)-1]
	m.Truncate(f.baseDepth)
	m.values[f.returnSlot] = top
	m.frames = m.frames[:len(m.frames)-1]
	m.ExitScope()
	return nil
}

// FrameDepth returns the number of live call frames.
func (m *Machine) FrameDepth() int {
	return len(m.frames)
}

// CreateVar binds name in the top scope to the stack slot at offset
// (spec.md §4.4 "create_var(name, offset=0)").
func (m *Machine) CreateVar(name string, offset int) *errors.Error {
	idx := len(m.values) - 1 - offset
	if idx < 0 || idx >= len(m.values) {
		return errors.New(errors.StackUnderflow, "offset %d is outside the live value stack", offset)
	}
	m.scopes[len(m.scopes)-1].slots[name] = idx
	return nil
}

// LoadVar searches the scope stack top-down for name and returns its
// current value. *UndefinedVariable if absent from every live scope
// (spec.md §4.4 "load_var(name)").
func (m *Machine) LoadVar(name string) (value.Value, *errors.Error) {
	idx, ok := m.findSlot(name)
	if !ok {
		return value.Value{}, errors.New(errors.UndefinedVariable, "undefined variable %q", name)
	}
	return m.values[idx], nil
}

// SetVar writes the value at offset into the slot bound to name,
// searching top-down. If name is unbound in every live scope, it binds
// a fresh slot in the top scope instead (spec.md §4.4 "set_var(name,
// offset=0)").
func (m *Machine) SetVar(name string, offset int) *errors.Error {
	v, err := m.Offset(offset)
	if err != nil {
		return err
	}
	if idx, ok := m.findSlot(name); ok {
		m.values[idx] = v
		return nil
	}
	return m.CreateVar(name, offset)
}

// HasVar reports whether name is bound in any live scope, without
// loading its value. Used by callers implementing assignment semantics
// that must tell apart "write through an existing binding" from "this
// name has never been declared" (spec.md §4.4 "set_var").
func (m *Machine) HasVar(name string) bool {
	_, ok := m.findSlot(name)
	return ok
}

// findSlot searches the scope stack from innermost to outermost for
// name, returning its value-stack index.
func (m *Machine) findSlot(name string) (int, bool) {
	for i := len(m.scopes) - 1; i >= 0; i-- {
		if idx, ok := m.scopes[i].slots[name]; ok {
			return idx, true
		}
	}
	return 0, false
}

// Truncate discards every value above depth, and every scope binding
// that pointed at a discarded slot, for unwind-on-error cleanup (spec.md
// §8 "Propagation policy: every frame, scope, and stack slot pushed
// during the failing evaluation must be released during unwind").
func (m *Machine) Truncate(depth int) {
	if depth < 0 {
		depth = 0
	}
	if depth < len(m.values) {
		m.values = m.values[:depth]
		for _, s := range m.scopes {
			for name, idx := range s.slots {
				if idx >= depth {
					delete(s.slots, name)
				}
			}
		}
	}
}

// TruncateScopes discards every scope above depth, keeping at least the
// root scope. Paired with Truncate during error unwind.
func (m *Machine) TruncateScopes(depth int) {
	if depth < 1 {
		depth = 1
	}
	if depth < len(m.scopes) {
		m.scopes = m.scopes[:depth]
	}
}

// TruncateFrames discards every frame above depth, for unwind-on-error
// cleanup symmetric with Truncate/TruncateScopes.
func (m *Machine) TruncateFrames(depth int) {
	if depth < 0 {
		depth = 0
	}
	if depth < len(m.frames) {
		m.frames = m.frames[:depth]
	}
}
