package evaluator

import (
	"testing"

	"github.com/gosimpl-lang/gosimpl/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestNewArrayBuildsElementsInOrder(t *testing.T) {
	e, out := newTestEvaluator(t)
	err := run(t, e, `
		let xs = new [1, 2, 3];
		println(xs[0]);
		println(xs[2]);
		println(size(xs));
	`)
	require.Nil(t, err)
	require.Equal(t, "1\n3\n3\n", out.String())
}

func TestNewAnonymousBlobFieldOrderAndAccess(t *testing.T) {
	e, out := newTestEvaluator(t)
	err := run(t, e, `
		let b = new { a = 1, b = 2 };
		println(b.a);
		println(b.b);
	`)
	require.Nil(t, err)
	require.Equal(t, "1\n2\n", out.String())
}

func TestNewInstanceUnknownTypeIsUnknownType(t *testing.T) {
	e, _ := newTestEvaluator(t)
	err := run(t, e, `let x = new nope {};`)
	require.NotNil(t, err)
	require.Equal(t, errors.UnknownType, err.Kind)
}

// TestNewInstanceOverridesAncestorDefault is the inheritance half of
// scenario S4: a descendant object may legally re-declare an ancestor's
// member as long as it supplies its own default initializer.
func TestNewInstanceOverridesAncestorDefault(t *testing.T) {
	e, out := newTestEvaluator(t)
	err := run(t, e, `
		object vehicle { wheels = 4; }
		object bike inherits vehicle { wheels = 2; }
		let b = new bike {};
		println(b.wheels);
	`)
	require.Nil(t, err)
	require.Equal(t, "2\n", out.String())
}

// TestNewInstanceAncestorDefaultsRunRootToLeaf verifies default
// initializers across the whole ancestor chain are evaluated, in order,
// before the instance's own explicit initializer list.
func TestNewInstanceAncestorDefaultsRunRootToLeaf(t *testing.T) {
	e, out := newTestEvaluator(t)
	err := run(t, e, `
		object a { x = 1; }
		object b inherits a { y = 2; }
		object c inherits b { z = 3; }
		let v = new c {};
		println(v.x);
		println(v.y);
		println(v.z);
	`)
	require.Nil(t, err)
	require.Equal(t, "1\n2\n3\n", out.String())
}

// TestRedefiningMemberWithoutDefaultIsRedefinedMember: redeclaring an
// ancestor's member name without supplying a new default is an error,
// unlike the legal override in TestNewInstanceOverridesAncestorDefault.
func TestRedefiningMemberWithoutDefaultIsRedefinedMember(t *testing.T) {
	e, _ := newTestEvaluator(t)
	err := run(t, e, `
		object vehicle { wheels = 4; }
		object bike inherits vehicle { wheels; }
		let b = new bike {};
	`)
	require.NotNil(t, err)
	require.Equal(t, errors.RedefinedMember, err.Kind)
}

func TestNewInstanceExplicitInitializerOverridesDefault(t *testing.T) {
	e, out := newTestEvaluator(t)
	err := run(t, e, `
		object point { x = 0; y = 0; }
		let p = new point { y = 9 };
		println(p.x);
		println(p.y);
	`)
	require.Nil(t, err)
	require.Equal(t, "0\n9\n", out.String())
}
