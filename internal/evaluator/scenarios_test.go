package evaluator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// The S1-S6 scenarios are spec.md §8's literal end-to-end examples, each
// with an exact expected printed output.

func TestScenarioS1(t *testing.T) {
	e, out := newTestEvaluator(t)
	err := run(t, e, `let a = 1 + 2 * 3; println(a);`)
	require.Nil(t, err)
	require.Equal(t, "7\n", out.String())
}

func TestScenarioS2(t *testing.T) {
	e, out := newTestEvaluator(t)
	err := run(t, e, `def add(x, y) { return x + y; } println(add(2, 40));`)
	require.Nil(t, err)
	require.Equal(t, "42\n", out.String())
}

func TestScenarioS3(t *testing.T) {
	e, out := newTestEvaluator(t)
	err := run(t, e, `
		let xs = new [10, 20, 30];
		push(xs, 40);
		println(size(xs));
	`)
	require.Nil(t, err)
	require.Equal(t, "4\n", out.String())
}

func TestScenarioS4(t *testing.T) {
	e, out := newTestEvaluator(t)
	err := run(t, e, `
		object vehicle { wheels = 4; }
		object bike inherits vehicle { wheels = 2; }
		def describe(v is vehicle) { println(v.wheels); }
		let b = new bike {};
		describe(b);
	`)
	require.Nil(t, err)
	require.Equal(t, "2\n", out.String())
}

func TestScenarioS5(t *testing.T) {
	e, out := newTestEvaluator(t)
	err := run(t, e, `
		let i = 0;
		let v = i++;
		println(v);
		println(i);
	`)
	require.Nil(t, err)
	require.Equal(t, "0\n1\n", out.String())
}

func TestScenarioS6(t *testing.T) {
	e, out := newTestEvaluator(t)
	err := run(t, e, `
		let args = new ["hello", 5];
		def greet(msg is string, n is number) {
			let i = 0;
			while (i < n) { print(msg); i = i + 1; }
		}
		greet(args...);
	`)
	require.Nil(t, err)
	require.Equal(t, "hellohellohellohellohello", out.String())
}
