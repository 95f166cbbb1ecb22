package evaluator

import (
	"github.com/gosimpl-lang/gosimpl/internal/ast"
	"github.com/gosimpl-lang/gosimpl/internal/dispatch"
	"github.com/gosimpl-lang/gosimpl/internal/errors"
	"github.com/gosimpl-lang/gosimpl/internal/value"
)

// evalCall implements the calling convention of spec.md §4.7 for an
// in-language call site: push a return-slot placeholder, evaluate and
// push each argument left-to-right (expanding a trailing `...` array
// argument into its elements), resolve the callee by the runtime
// argument types, then hand off to callFunction.
func (e *Evaluator) evalCall(call *ast.CallExpr) (value.Value, *errors.Error) {
	if err := e.m.Push(value.NewEmpty()); err != nil {
		return value.Value{}, err
	}

	n := 0
	for i, argExpr := range call.Args {
		v, err := e.evalExpr(argExpr)
		if err != nil {
			return value.Value{}, err
		}
		if i < len(call.Spread) && call.Spread[i] {
			if v.Kind() != value.Array {
				return value.Value{}, errors.At(errors.InvalidExpansion, argExpr.Pos(),
					"'...' requires an array operand, got %s", v.TypeName())
			}
			for _, el := range v.ArrayRef().Elements() {
				if err := e.m.Push(el); err != nil {
					return value.Value{}, err
				}
				n++
			}
			continue
		}
		if err := e.m.Push(v); err != nil {
			return value.Value{}, err
		}
		n++
	}

	argTypes, err := e.argTypes(n)
	if err != nil {
		return value.Value{}, err
	}
	fn, err := e.fns.Resolve(e.reg, call.Name, argTypes)
	if err != nil {
		return value.Value{}, err
	}

	e.callStack = append(e.callStack, errors.StackFrame{FunctionName: call.Name, Pos: call.Pos(), HasPos: true})
	result, cerr := e.callFunction(fn, n)
	if cerr != nil {
		cerr.WithTrace(e.callStack)
	}
	e.callStack = e.callStack[:len(e.callStack)-1]
	return result, cerr
}

// argTypes reads the runtime type names of the n values just pushed,
// in declaration (left-to-right) order.
func (e *Evaluator) argTypes(n int) ([]string, *errors.Error) {
	argTypes := make([]string, n)
	for i := 0; i < n; i++ {
		av, err := e.m.Offset(n - 1 - i)
		if err != nil {
			return nil, err
		}
		argTypes[i] = av.TypeName()
	}
	return argTypes, nil
}

// callFunction activates fn over the n already-pushed argument slots,
// runs it (native thunk or user-defined body), returns control via the
// machine's return(), and restores stack balance by popping the n
// argument slots plus the return slot — the full round trip of spec.md
// §4.7 items 4–6, collapsed into one Go return value since gosimpl's
// evalExpr hands sub-expression results back as plain Go values rather
// than leaving them resident on the stack.
func (e *Evaluator) callFunction(fn *dispatch.Function, n int) (value.Value, *errors.Error) {
	if err := e.m.Activate(n); err != nil {
		return value.Value{}, err
	}

	if fn.Native != nil {
		args := make([]value.Value, n)
		for i := 0; i < n; i++ {
			av, err := e.m.Offset(n - 1 - i)
			if err != nil {
				return value.Value{}, err
			}
			args[i] = av
		}
		result, nerr := fn.Native(args)
		if nerr != nil {
			return value.Value{}, nerr
		}
		if err := e.m.Push(result); err != nil {
			return value.Value{}, err
		}
		if err := e.m.Return(); err != nil {
			return value.Value{}, err
		}
	} else {
		for i, pname := range fn.ParamNames {
			if err := e.m.CreateVar(pname, n-1-i); err != nil {
				return value.Value{}, err
			}
		}
		returned, err := e.execStatements(fn.Body.Statements)
		if err != nil {
			return value.Value{}, err
		}
		if !returned {
			if err := e.m.Push(value.NewEmpty()); err != nil {
				return value.Value{}, err
			}
			if err := e.m.Return(); err != nil {
				return value.Value{}, err
			}
		}
	}

	for i := 0; i < n; i++ {
		if _, err := e.m.Pop(); err != nil {
			return value.Value{}, err
		}
	}
	return e.m.Pop()
}
