package evaluator

import (
	"math"

	"github.com/gosimpl-lang/gosimpl/internal/ast"
	"github.com/gosimpl-lang/gosimpl/internal/errors"
	"github.com/gosimpl-lang/gosimpl/internal/value"
)

// evalBinary evaluates a binary operator application (spec.md §4.7
// "Arithmetic / comparison / logical operators"). `&&`/`||` short-
// circuit and leave the determining operand's own value on the stack,
// not a normalized bool (SPEC_FULL §13 item 3, grounded on
// simpl::vm::execute's handling of log_and/log_or). `&`, listed in the
// precedence table alongside them but never assigned semantics in
// spec.md, is a non-short-circuiting logical AND (both operands always
// evaluated) — an explicit decision recorded in DESIGN.md.
func (e *Evaluator) evalBinary(b *ast.BinaryExpr) (value.Value, *errors.Error) {
	switch b.Op {
	case "&&":
		left, err := e.evalExpr(b.Left)
		if err != nil {
			return value.Value{}, err
		}
		if !value.ToBool(left) {
			return left, nil
		}
		return e.evalExpr(b.Right)
	case "||":
		left, err := e.evalExpr(b.Left)
		if err != nil {
			return value.Value{}, err
		}
		if value.ToBool(left) {
			return left, nil
		}
		return e.evalExpr(b.Right)
	case "&":
		left, err := e.evalExpr(b.Left)
		if err != nil {
			return value.Value{}, err
		}
		right, err := e.evalExpr(b.Right)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewBool(value.ToBool(left) && value.ToBool(right)), nil
	}

	left, err := e.evalExpr(b.Left)
	if err != nil {
		return value.Value{}, err
	}
	right, err := e.evalExpr(b.Right)
	if err != nil {
		return value.Value{}, err
	}

	switch b.Op {
	case "+", "-", "*", "/", "%", "^":
		return evalArithmetic(b.Op, left, right)
	case "==", "!=", "<", "<=", ">", ">=":
		return evalComparison(b.Op, left, right)
	}
	return value.Value{}, errors.At(errors.ParseError, b.Pos(), "unsupported operator %q", b.Op)
}

// evalArithmetic dispatches on the left operand's kind, following
// original_source's include/simpl/operations.h: Empty is an arithmetic
// identity (the result is the left operand itself, unexamined); Number
// coerces the right operand via ToNumber and computes natively; Text
// supports only `+` (string concatenation, right operand coerced via
// ToString — no string subtraction/multiplication/division, mirroring
// the original's invalid_operation there); every other kind is a
// *BadCast*, matching the original's blob/array-always-throws rule.
// `^` has no analogue in the original; it is gosimpl's own addition
// (SPEC_FULL §13 item 4), defined via math.Pow alongside the rest of
// the Number arithmetic.
func evalArithmetic(op string, left, right value.Value) (value.Value, *errors.Error) {
	switch left.Kind() {
	case value.Empty:
		return left, nil
	case value.Number:
		rn, err := value.ToNumber(right)
		if err != nil {
			return value.Value{}, err
		}
		ln := left.RawNumber()
		switch op {
		case "+":
			return value.NewNumber(ln + rn), nil
		case "-":
			return value.NewNumber(ln - rn), nil
		case "*":
			return value.NewNumber(ln * rn), nil
		case "/":
			return value.NewNumber(ln / rn), nil
		case "%":
			return value.NewNumber(math.Mod(ln, rn)), nil
		case "^":
			return value.NewNumber(math.Pow(ln, rn)), nil
		}
	case value.Text:
		if op != "+" {
			return value.Value{}, errors.New(errors.BadCast, "operator %q is not defined for string", op)
		}
		return value.NewText(left.RawText() + value.ToString(right)), nil
	}
	return value.Value{}, errors.New(errors.BadCast, "operator %q is not defined for %s", op, left.TypeName())
}

// evalComparison dispatches on the left operand's kind, again following
// operations.h: Empty's equality checks whether the right side is also
// Empty, and Empty's ordering comparisons are unconditionally false;
// Number and Text compare natively against the right operand coerced to
// the left's kind (ToNumber/ToString); Bool supports only equality,
// coercing the right operand via ToBool; every other kind is *BadCast*.
func evalComparison(op string, left, right value.Value) (value.Value, *errors.Error) {
	switch left.Kind() {
	case value.Empty:
		switch op {
		case "==":
			return value.NewBool(right.Kind() == value.Empty), nil
		case "!=":
			return value.NewBool(right.Kind() != value.Empty), nil
		default:
			return value.NewBool(false), nil
		}
	case value.Number:
		rn, err := value.ToNumber(right)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewBool(compareOrdered(op, left.RawNumber(), rn)), nil
	case value.Text:
		rt := value.ToString(right)
		return value.NewBool(compareOrdered(op, left.RawText(), rt)), nil
	case value.Bool:
		switch op {
		case "==":
			return value.NewBool(left.RawBool() == value.ToBool(right)), nil
		case "!=":
			return value.NewBool(left.RawBool() != value.ToBool(right)), nil
		default:
			return value.Value{}, errors.New(errors.BadCast, "operator %q is not defined for bool", op)
		}
	}
	return value.Value{}, errors.New(errors.BadCast, "operator %q is not defined for %s", op, left.TypeName())
}

// compareOrdered implements the six comparison operators over any Go
// type with native `<`/`==` (float64 or string here), so Number and
// Text share one switch rather than duplicating it per type.
func compareOrdered[T float64 | string](op string, l, r T) bool {
	switch op {
	case "==":
		return l == r
	case "!=":
		return l != r
	case "<":
		return l < r
	case "<=":
		return l <= r
	case ">":
		return l > r
	case ">=":
		return l >= r
	}
	return false
}

// evalAssign evaluates the right-hand side and writes it through the
// target identifier path, yielding the assigned value (spec.md §4.7
// "Identifier resolution for writes").
func (e *Evaluator) evalAssign(a *ast.AssignExpr) (value.Value, *errors.Error) {
	v, err := e.evalExpr(a.Value)
	if err != nil {
		return value.Value{}, err
	}
	if err := e.writePath(a.Target, v); err != nil {
		return value.Value{}, err
	}
	return v, nil
}

// evalIncDec applies `++`/`--` to a Number identifier path. Prefix
// yields the new value; postfix yields the value before the change
// (spec.md §4.7 "Increment/decrement"). Only applicable to numbers.
func (e *Evaluator) evalIncDec(expr *ast.IncDecExpr) (value.Value, *errors.Error) {
	cur, err := e.readPath(expr.Target)
	if err != nil {
		return value.Value{}, err
	}
	if cur.Kind() != value.Number {
		return value.Value{}, errors.At(errors.BadCast, expr.Pos(),
			"%q requires a number operand, got %s", expr.Op, cur.TypeName())
	}
	n := cur.RawNumber()
	var next float64
	if expr.Op == "++" {
		next = n + 1
	} else {
		next = n - 1
	}
	nextVal := value.NewNumber(next)
	if err := e.writePath(expr.Target, nextVal); err != nil {
		return value.Value{}, err
	}
	if expr.Postfix {
		return cur, nil
	}
	return nextVal, nil
}
