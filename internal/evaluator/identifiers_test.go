package evaluator

import (
	"testing"

	"github.com/gosimpl-lang/gosimpl/internal/errors"
	"github.com/stretchr/testify/require"
)

// TestContainerAliasing is testable property 5: mutating an Array/Blob/
// Instance through any handle is observed by every other handle sharing
// it, since those kinds carry a pointer to shared state.
func TestContainerAliasing(t *testing.T) {
	e, out := newTestEvaluator(t)
	err := run(t, e, `
		object box { value = 0; }
		let a = new box { value = 1 };
		let b = a;
		b.value = 2;
		println(a.value);

		let xs = new [1, 2, 3];
		let ys = xs;
		ys[0] = 99;
		println(xs[0]);

		let blob = new { count = 1 };
		let other = blob;
		other.count = 7;
		println(blob.count);
	`)
	require.Nil(t, err)
	require.Equal(t, "2\n99\n7\n", out.String())
}

func TestArrayIndexOutOfRange(t *testing.T) {
	e, _ := newTestEvaluator(t)
	err := run(t, e, `
		let xs = new [1, 2];
		let r = xs[5];
	`)
	require.NotNil(t, err)
	require.Equal(t, errors.OutOfRange, err.Kind)
}

// TestNameAccessorOnArrayUsesInScopeNumericVariable exercises the
// "Name accessor on Array" rule (spec.md §4.7): `.NAME` on an Array uses
// NAME as a numeric index when NAME resolves in scope to a Number.
func TestNameAccessorOnArrayUsesInScopeNumericVariable(t *testing.T) {
	e, out := newTestEvaluator(t)
	err := run(t, e, `
		let idx = 1;
		let xs = new [10, 20, 30];
		println(xs.idx);
		xs.idx = 99;
		println(xs[1]);
	`)
	require.Nil(t, err)
	require.Equal(t, "20\n99\n", out.String())
}

func TestNameAccessorOnArrayWithoutNumericBindingIsBadAccess(t *testing.T) {
	e, _ := newTestEvaluator(t)
	err := run(t, e, `
		let xs = new [10, 20, 30];
		let r = xs.nope;
	`)
	require.NotNil(t, err)
	require.Equal(t, errors.BadAccess, err.Kind)
}

func TestFieldAccessOnScalarIsBadAccess(t *testing.T) {
	e, _ := newTestEvaluator(t)
	err := run(t, e, `
		let n = 1;
		let r = n.x;
	`)
	require.NotNil(t, err)
	require.Equal(t, errors.BadAccess, err.Kind)
}

func TestAssignToUndeclaredNameCreatesTopScopeBinding(t *testing.T) {
	e, out := newTestEvaluator(t)
	err := run(t, e, `
		fresh = 5;
		println(fresh);
	`)
	require.Nil(t, err)
	require.Equal(t, "5\n", out.String())
}
