package parser

import (
	"testing"

	"github.com/gosimpl-lang/gosimpl/internal/ast"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := ParseProgram(src)
	require.Nil(t, err, "unexpected parse error for %q: %v", src, err)
	return prog
}

func TestParseLetStatement(t *testing.T) {
	prog := mustParse(t, `let a = 1 + 2 * 3;`)
	require.Len(t, prog.Statements, 1)
	let, ok := prog.Statements[0].(*ast.LetStatement)
	require.True(t, ok)
	require.Equal(t, "a", let.Name)
	bin, ok := let.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, "+", bin.Op)
}

func TestParsePrecedence(t *testing.T) {
	prog := mustParse(t, `let a = 1 + 2 * 3;`)
	let := prog.Statements[0].(*ast.LetStatement)
	require.Equal(t, "(1 + (2 * 3))", let.Value.String())
}

func TestParseExponentRightAssociative(t *testing.T) {
	prog := mustParse(t, `let a = 2 ^ 3 ^ 2;`)
	let := prog.Statements[0].(*ast.LetStatement)
	require.Equal(t, "(2 ^ (3 ^ 2))", let.Value.String())
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	prog := mustParse(t, `a = b = 1;`)
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	outer, ok := stmt.Expr.(*ast.AssignExpr)
	require.True(t, ok)
	require.Equal(t, "a", outer.Target.Name)
	inner, ok := outer.Value.(*ast.AssignExpr)
	require.True(t, ok)
	require.Equal(t, "b", inner.Target.Name)
}

func TestParseFunctionCall(t *testing.T) {
	prog := mustParse(t, `println(add(2, 40));`)
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	call, ok := stmt.Expr.(*ast.CallExpr)
	require.True(t, ok)
	require.Equal(t, "println", call.Name)
	require.Len(t, call.Args, 1)
	inner, ok := call.Args[0].(*ast.CallExpr)
	require.True(t, ok)
	require.Equal(t, "add", inner.Name)
	require.Len(t, inner.Args, 2)
}

func TestParseExpandAtCallSite(t *testing.T) {
	prog := mustParse(t, `greet(args...);`)
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	call := stmt.Expr.(*ast.CallExpr)
	require.Len(t, call.Args, 1)
	require.True(t, call.Spread[0])
	path, ok := call.Args[0].(*ast.IdentifierPath)
	require.True(t, ok)
	require.Equal(t, "args", path.Name)
}

func TestParseIdentifierPath(t *testing.T) {
	prog := mustParse(t, `println(v.wheels);`)
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	call := stmt.Expr.(*ast.CallExpr)
	path := call.Args[0].(*ast.IdentifierPath)
	require.Equal(t, "v", path.Name)
	require.Len(t, path.Accessors, 1)
	field, ok := path.Accessors[0].(*ast.FieldAccessor)
	require.True(t, ok)
	require.Equal(t, "wheels", field.Name)
}

func TestParseIndexAccessor(t *testing.T) {
	prog := mustParse(t, `println(xs[0]);`)
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	call := stmt.Expr.(*ast.CallExpr)
	path := call.Args[0].(*ast.IdentifierPath)
	_, ok := path.Accessors[0].(*ast.IndexAccessor)
	require.True(t, ok)
}

func TestParsePostfixIncrement(t *testing.T) {
	prog := mustParse(t, `let v = i++;`)
	let := prog.Statements[0].(*ast.LetStatement)
	inc, ok := let.Value.(*ast.IncDecExpr)
	require.True(t, ok)
	require.True(t, inc.Postfix)
	require.Equal(t, "++", inc.Op)
	require.Equal(t, "i", inc.Target.Name)
}

func TestParsePrefixIncrement(t *testing.T) {
	prog := mustParse(t, `let v = ++i;`)
	let := prog.Statements[0].(*ast.LetStatement)
	inc, ok := let.Value.(*ast.IncDecExpr)
	require.True(t, ok)
	require.False(t, inc.Postfix)
}

func TestParseUnaryMinusSynthesized(t *testing.T) {
	prog := mustParse(t, `let a = -5;`)
	let := prog.Statements[0].(*ast.LetStatement)
	bin, ok := let.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, "-", bin.Op)
	zero, ok := bin.Left.(*ast.NumberLiteral)
	require.True(t, ok)
	require.Equal(t, float64(0), zero.Value)
}

func TestParseAddressOf(t *testing.T) {
	prog := mustParse(t, `let h = &doStuff;`)
	let := prog.Statements[0].(*ast.LetStatement)
	addr, ok := let.Value.(*ast.AddressOfExpr)
	require.True(t, ok)
	require.Equal(t, "doStuff", addr.Name)
}

func TestParseIfElseIfElse(t *testing.T) {
	prog := mustParse(t, `
		if (a < b) { return 1; }
		else if (a == b) { return 0; }
		else { return -1; }
	`)
	ifStmt := prog.Statements[0].(*ast.IfStatement)
	require.Len(t, ifStmt.Clauses, 2)
	require.NotNil(t, ifStmt.Else)
}

func TestParseWhileLoop(t *testing.T) {
	prog := mustParse(t, `while (i < n) { print(msg); i = i + 1; }`)
	w, ok := prog.Statements[0].(*ast.WhileStatement)
	require.True(t, ok)
	body, ok := w.Body.(*ast.BlockStatement)
	require.True(t, ok)
	require.Len(t, body.Statements, 2)
}

func TestParseForLoop(t *testing.T) {
	prog := mustParse(t, `for (let i = 0; i < 10; i = i + 1) { println(i); }`)
	f, ok := prog.Statements[0].(*ast.ForStatement)
	require.True(t, ok)
	require.Equal(t, "i", f.Init.Name)
}

func TestParseDefWithTypedAndUntypedParams(t *testing.T) {
	prog := mustParse(t, `def describe(v is vehicle, label) { println(v.wheels); }`)
	def, ok := prog.Statements[0].(*ast.DefStatement)
	require.True(t, ok)
	require.Equal(t, "describe", def.Name)
	require.Equal(t, []ast.Param{{Name: "v", Type: "vehicle"}, {Name: "label", Type: "any"}}, def.Params)
}

func TestParseDefNestedIsParseError(t *testing.T) {
	_, err := ParseProgram(`def outer() { def inner() { return 1; } }`)
	require.NotNil(t, err)
	require.Equal(t, "ParseError", string(err.Kind))
}

func TestParseObjectWithInheritance(t *testing.T) {
	prog := mustParse(t, `
		object vehicle { wheels = 4; }
		object bike inherits vehicle { wheels = 2; }
	`)
	require.Len(t, prog.Statements, 2)
	bike := prog.Statements[1].(*ast.ObjectStatement)
	require.Equal(t, "bike", bike.Name)
	require.Equal(t, "vehicle", bike.Parent)
	require.Len(t, bike.Members, 1)
	require.Equal(t, "wheels", bike.Members[0].Name)
}

func TestParseNewInstanceInitializer(t *testing.T) {
	prog := mustParse(t, `let b = new bike {};`)
	let := prog.Statements[0].(*ast.LetStatement)
	inst, ok := let.Value.(*ast.NewInstanceExpr)
	require.True(t, ok)
	require.Equal(t, "bike", inst.Type)
	require.Empty(t, inst.Fields)
}

func TestParseNewAnonymousBlob(t *testing.T) {
	prog := mustParse(t, `let p = new { x = 1, y = 2 };`)
	let := prog.Statements[0].(*ast.LetStatement)
	blob, ok := let.Value.(*ast.NewBlobExpr)
	require.True(t, ok)
	require.Len(t, blob.Fields, 2)
	require.Equal(t, "x", blob.Fields[0].Name)
}

func TestParseNewArray(t *testing.T) {
	prog := mustParse(t, `let xs = new [10, 20, 30];`)
	let := prog.Statements[0].(*ast.LetStatement)
	arr, ok := let.Value.(*ast.NewArrayExpr)
	require.True(t, ok)
	require.Len(t, arr.Elements, 3)
}

func TestParseImportDirective(t *testing.T) {
	prog := mustParse(t, `@import mathlib`)
	imp, ok := prog.Statements[0].(*ast.ImportStatement)
	require.True(t, ok)
	require.Equal(t, "mathlib", imp.Name)
}

func TestParseLoadlibDirective(t *testing.T) {
	prog := mustParse(t, `@loadlib "./plugins/foo.so"`)
	ll, ok := prog.Statements[0].(*ast.LoadLibStatement)
	require.True(t, ok)
	require.Equal(t, "./plugins/foo.so", ll.Path)
}

func TestParseBareBlockIsABlockStatement(t *testing.T) {
	prog := mustParse(t, `{ let a = 1; }`)
	block, ok := prog.Statements[0].(*ast.BlockStatement)
	require.True(t, ok)
	require.Len(t, block.Statements, 1)
}

func TestParseScenarioS4(t *testing.T) {
	src := `
		object vehicle { wheels = 4; }
		object bike inherits vehicle { wheels = 2; }
		def describe(v is vehicle) { println(v.wheels); }
		let b = new bike {};
		describe(b);
	`
	prog := mustParse(t, src)
	require.Len(t, prog.Statements, 5)
}

func TestParseScenarioS6(t *testing.T) {
	src := `
		let args = new ["hello", 5];
		def greet(msg is string, n is number) {
			let i = 0;
			while (i < n) { print(msg); i = i + 1; }
		}
		greet(args...);
	`
	prog := mustParse(t, src)
	require.Len(t, prog.Statements, 3)
}

func TestParseErrorMissingSemicolon(t *testing.T) {
	_, err := ParseProgram(`let a = 1`)
	require.NotNil(t, err)
	require.Equal(t, "ParseError", string(err.Kind))
}

func TestParseErrorUnbalancedBraces(t *testing.T) {
	_, err := ParseProgram(`if (a) { println(a);`)
	require.NotNil(t, err)
	require.Equal(t, "ParseError", string(err.Kind))
}

func TestParseErrorAssignToNonPath(t *testing.T) {
	_, err := ParseProgram(`1 = 2;`)
	require.NotNil(t, err)
	require.Equal(t, "ParseError", string(err.Kind))
}
