package machine

import (
	"testing"

	"github.com/gosimpl-lang/gosimpl/internal/errors"
	"github.com/gosimpl-lang/gosimpl/internal/value"
	"github.com/stretchr/testify/require"
)

func TestPushPopTop(t *testing.T) {
	m := New(0, 0)
	require.Nil(t, m.Push(value.NewNumber(1)))
	require.Nil(t, m.Push(value.NewNumber(2)))

	top, err := m.Top()
	require.Nil(t, err)
	require.Equal(t, float64(2), top.RawNumber())

	v, err := m.Pop()
	require.Nil(t, err)
	require.Equal(t, float64(2), v.RawNumber())
	require.Equal(t, 1, m.Depth())
}

func TestPopUnderflow(t *testing.T) {
	m := New(0, 0)
	_, err := m.Pop()
	require.NotNil(t, err)
	require.Equal(t, errors.StackUnderflow, err.Kind)
}

func TestPushOverflow(t *testing.T) {
	m := New(2, 0)
	require.Nil(t, m.Push(value.NewNumber(1)))
	require.Nil(t, m.Push(value.NewNumber(2)))
	err := m.Push(value.NewNumber(3))
	require.NotNil(t, err)
	require.Equal(t, errors.StackOverflow, err.Kind)
}

func TestOffsetCountsFromTop(t *testing.T) {
	m := New(0, 0)
	require.Nil(t, m.Push(value.NewNumber(10)))
	require.Nil(t, m.Push(value.NewNumber(20)))
	require.Nil(t, m.Push(value.NewNumber(30)))

	v0, err := m.Offset(0)
	require.Nil(t, err)
	require.Equal(t, float64(30), v0.RawNumber())

	v2, err := m.Offset(2)
	require.Nil(t, err)
	require.Equal(t, float64(10), v2.RawNumber())

	_, err = m.Offset(3)
	require.NotNil(t, err)
	require.Equal(t, errors.StackUnderflow, err.Kind)
}

func TestCreateVarAndLoadVar(t *testing.T) {
	m := New(0, 0)
	require.Nil(t, m.Push(value.NewNumber(42)))
	require.Nil(t, m.CreateVar("x", 0))

	v, err := m.LoadVar("x")
	require.Nil(t, err)
	require.Equal(t, float64(42), v.RawNumber())
}

func TestLoadVarUndefined(t *testing.T) {
	m := New(0, 0)
	_, err := m.LoadVar("missing")
	require.NotNil(t, err)
	require.Equal(t, errors.UndefinedVariable, err.Kind)
}

func TestSetVarWritesThroughExistingBinding(t *testing.T) {
	m := New(0, 0)
	require.Nil(t, m.Push(value.NewNumber(1)))
	require.Nil(t, m.CreateVar("x", 0))

	require.Nil(t, m.Push(value.NewNumber(99)))
	require.Nil(t, m.SetVar("x", 0))

	v, err := m.LoadVar("x")
	require.Nil(t, err)
	require.Equal(t, float64(99), v.RawNumber())
}

func TestSetVarBindsFreshWhenUnbound(t *testing.T) {
	m := New(0, 0)
	require.Nil(t, m.Push(value.NewNumber(7)))
	require.Nil(t, m.SetVar("y", 0))

	v, err := m.LoadVar("y")
	require.Nil(t, err)
	require.Equal(t, float64(7), v.RawNumber())
}

func TestScopeShadowingSearchesInnerFirst(t *testing.T) {
	m := New(0, 0)
	require.Nil(t, m.Push(value.NewText("outer")))
	require.Nil(t, m.CreateVar("x", 0))

	m.EnterScope()
	require.Nil(t, m.Push(value.NewText("inner")))
	require.Nil(t, m.CreateVar("x", 0))

	v, err := m.LoadVar("x")
	require.Nil(t, err)
	require.Equal(t, "inner", v.RawText())

	m.ExitScope()
	v, err = m.LoadVar("x")
	require.Nil(t, err)
	require.Equal(t, "outer", v.RawText())
}

func TestExitScopeNeverDropsRootScope(t *testing.T) {
	m := New(0, 0)
	require.Equal(t, 1, m.ScopeDepth())
	m.ExitScope()
	require.Equal(t, 1, m.ScopeDepth())
}

func TestActivateAndReturn(t *testing.T) {
	m := New(0, 0)
	// caller pushes a return-slot placeholder, then one argument.
	require.Nil(t, m.Push(value.NewEmpty()))
	require.Nil(t, m.Push(value.NewNumber(5)))

	require.Nil(t, m.Activate(1))
	require.Equal(t, 1, m.FrameDepth())
	require.Equal(t, 2, m.ScopeDepth())

	// callee computes a result and returns it.
	require.Nil(t, m.Push(value.NewNumber(25)))
	require.Nil(t, m.Return())

	require.Equal(t, 0, m.FrameDepth())
	require.Equal(t, 1, m.ScopeDepth())

	// Return() only writes the return slot and unwinds the callee's own
	// frame/scope; per spec.md §4.7 item 6, popping the n argument slots
	// to expose the return value is the caller's job.
	_, err := m.Pop()
	require.Nil(t, err)

	top, err := m.Top()
	require.Nil(t, err)
	require.Equal(t, float64(25), top.RawNumber())
}

func TestReturnAtRootIsBadReturn(t *testing.T) {
	m := New(0, 0)
	err := m.Return()
	require.NotNil(t, err)
	require.Equal(t, errors.BadReturn, err.Kind)
}

func TestActivateOverflow(t *testing.T) {
	m := New(0, 1)
	require.Nil(t, m.Push(value.NewEmpty()))
	require.Nil(t, m.Activate(0))

	require.Nil(t, m.Push(value.NewEmpty()))
	err := m.Activate(0)
	require.NotNil(t, err)
	require.Equal(t, errors.StackOverflow, err.Kind)
}

func TestTruncateHelpersForUnwind(t *testing.T) {
	m := New(0, 0)
	baseDepth := m.Depth()
	baseScopes := m.ScopeDepth()
	baseFrames := m.FrameDepth()

	require.Nil(t, m.Push(value.NewEmpty()))
	m.EnterScope()
	require.Nil(t, m.Push(value.NewNumber(1)))
	require.Nil(t, m.Activate(0))

	m.Truncate(baseDepth)
	m.TruncateScopes(baseScopes)
	m.TruncateFrames(baseFrames)

	require.Equal(t, baseDepth, m.Depth())
	require.Equal(t, baseScopes, m.ScopeDepth())
	require.Equal(t, baseFrames, m.FrameDepth())
}
