package value

import (
	"testing"

	"github.com/gosimpl-lang/gosimpl/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestToStringEachKind(t *testing.T) {
	require.Equal(t, "undefined", ToString(NewEmpty()))
	require.Equal(t, "true", ToString(NewBool(true)))
	require.Equal(t, "false", ToString(NewBool(false)))
	require.Equal(t, "42", ToString(NewNumber(42)))
	require.Equal(t, "hi", ToString(NewText("hi")))
}

func TestToStringBlobPreservesInsertionOrder(t *testing.T) {
	b := NewBlob()
	b.Set("b", NewNumber(2))
	b.Set("a", NewNumber(1))
	require.Equal(t, "{ b : 2, a : 1 }", ToString(NewBlobValue(b)))
}

func TestToStringArrayPreservesIndexOrder(t *testing.T) {
	a := NewArrayFrom([]Value{NewNumber(10), NewNumber(20), NewNumber(30)})
	require.Equal(t, "[ 10, 20, 30 ]", ToString(NewArrayValue(a)))
}

func TestToBoolRules(t *testing.T) {
	require.False(t, ToBool(NewEmpty()))
	require.False(t, ToBool(NewNumber(0)))
	require.True(t, ToBool(NewNumber(-1)))
	require.False(t, ToBool(NewText("")))
	require.False(t, ToBool(NewText("0")))
	require.False(t, ToBool(NewText("false")))
	require.True(t, ToBool(NewText("False"))) // case-sensitive per spec.md §4.1
	require.True(t, ToBool(NewText("hello")))
	require.True(t, ToBool(NewArrayValue(NewArray())))
}

func TestToNumberFromUnparseableTextYieldsMinusOne(t *testing.T) {
	n, err := ToNumber(NewText("not a number"))
	require.Nil(t, err)
	require.Equal(t, float64(-1), n)

	n, err = ToNumber(NewText(""))
	require.Nil(t, err)
	require.Equal(t, float64(-1), n)
}

func TestToNumberFromCanonicalDecimalRoundTrips(t *testing.T) {
	for _, s := range []string{"0", "1", "42", "-7", "3.5"} {
		n, err := ToNumber(NewText(s))
		require.Nil(t, err)
		require.Equal(t, s, ToString(NewNumber(n)))
	}
}

func TestToNumberOnBlobIsBadCast(t *testing.T) {
	_, err := ToNumber(NewBlobValue(NewBlob()))
	require.NotNil(t, err)
	require.Equal(t, errors.BadCast, err.Kind)
}

func TestCoercionRoundTripProperty(t *testing.T) {
	// to_bool(to_number(to_string(n))) == (n != 0), for any Number n.
	for _, n := range []float64{0, 1, -1, 42, 100} {
		s := ToString(NewNumber(n))
		parsed, err := ToNumber(NewText(s))
		require.Nil(t, err)
		require.Equal(t, n != 0, ToBool(NewNumber(parsed)))
	}
}

func TestContainerAliasing(t *testing.T) {
	a := NewArray()
	a.Push(NewNumber(1))
	alias := a
	alias.Push(NewNumber(2))
	require.Equal(t, 2, a.Len())
	v, ok := a.At(1)
	require.True(t, ok)
	require.Equal(t, float64(2), v.RawNumber())
}

func TestArrayOutOfRange(t *testing.T) {
	a := NewArray()
	a.Push(NewNumber(1))
	_, ok := a.At(5)
	require.False(t, ok)
	require.False(t, a.Set(5, NewNumber(9)))
}

func TestInstanceMembersPreserveDeclarationOrder(t *testing.T) {
	i := NewInstance("bike")
	i.Set("wheels", NewNumber(2))
	i.Set("color", NewText("red"))
	require.Equal(t, []string{"wheels", "color"}, i.Members())
}
