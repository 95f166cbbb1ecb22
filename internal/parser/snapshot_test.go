package parser

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

// TestParseProgramSnapshots snapshots the AST-dump (ast.Program.String())
// of spec.md §8's six end-to-end scenarios, grounded on the teacher's
// fixture_test.go snaps.MatchSnapshot usage. A diff here means the
// printed shape of one of these programs changed, not necessarily that
// anything is wrong — review and `UPDATE_SNAPS=true go test ./...` when
// the change is intentional.
func TestParseProgramSnapshots(t *testing.T) {
	scenarios := map[string]string{
		"s1_arithmetic": `let a = 1 + 2 * 3; println(a);`,
		"s2_function":   `def add(x, y) { return x + y; } println(add(2, 40));`,
		"s3_array": `
			let xs = new [10, 20, 30];
			push(xs, 40);
			println(size(xs));
		`,
		"s4_inheritance": `
			object vehicle { wheels = 4; }
			object bike inherits vehicle { wheels = 2; }
			def describe(v is vehicle) { println(v.wheels); }
			let b = new bike {};
			describe(b);
		`,
		"s5_postfix": `
			let i = 0;
			let v = i++;
			println(v);
			println(i);
		`,
		"s6_expand": `
			let args = new ["hello", 5];
			def greet(msg is string, n is number) {
				let i = 0;
				while (i < n) { print(msg); i = i + 1; }
			}
			greet(args...);
		`,
	}

	for name, src := range scenarios {
		t.Run(name, func(t *testing.T) {
			prog, err := ParseProgram(src)
			require.Nil(t, err)
			snaps.MatchSnapshot(t, prog.String())
		})
	}
}
