package evaluator

import (
	"github.com/gosimpl-lang/gosimpl/internal/ast"
	"github.com/gosimpl-lang/gosimpl/internal/dispatch"
	"github.com/gosimpl-lang/gosimpl/internal/errors"
	"github.com/gosimpl-lang/gosimpl/internal/types"
	"github.com/gosimpl-lang/gosimpl/internal/value"
)

// execLet evaluates the initializer (or defaults to Empty), pushes it,
// and binds the name to that slot in the innermost scope — always a
// fresh binding, even if an outer scope already has the same name
// (spec.md §4.4 "create_var" shadows; confirmed by the reference's
// inner-scope-first lookup).
func (e *Evaluator) execLet(stmt *ast.LetStatement) *errors.Error {
	v := value.NewEmpty()
	if stmt.Value != nil {
		var err *errors.Error
		v, err = e.evalExpr(stmt.Value)
		if err != nil {
			return err
		}
	}
	if err := e.m.Push(v); err != nil {
		return err
	}
	return e.m.CreateVar(stmt.Name, 0)
}

// execReturn evaluates the optional return expression (defaulting to
// Empty) and drives the machine's return() primitive, which itself
// raises *BadReturn* if no function frame is active — this is how a
// top-level `return;` (outside any `def`) is rejected, with no extra
// bookkeeping needed here (spec.md §4.7 item 5).
func (e *Evaluator) execReturn(stmt *ast.ReturnStatement) (bool, *errors.Error) {
	v := value.NewEmpty()
	if stmt.Value != nil {
		var err *errors.Error
		v, err = e.evalExpr(stmt.Value)
		if err != nil {
			return false, err
		}
	}
	if err := e.m.Push(v); err != nil {
		return false, err
	}
	if err := e.m.Return(); err != nil {
		return false, err
	}
	return true, nil
}

// execIf evaluates clauses in order, running the first whose condition
// is true in a fresh scope; falls through to Else if none match
// (spec.md §4.7 "Control flow").
func (e *Evaluator) execIf(stmt *ast.IfStatement) (bool, *errors.Error) {
	for _, clause := range stmt.Clauses {
		cond, err := e.evalExpr(clause.Cond)
		if err != nil {
			return false, err
		}
		if value.ToBool(cond) {
			return e.runScopedBody(clause.Body)
		}
	}
	if stmt.Else != nil {
		return e.runScopedBody(stmt.Else)
	}
	return false, nil
}

// execWhile loops: evaluate condition, stop on false, else run the body
// in a fresh scope and repeat (spec.md §4.7 "Control flow").
func (e *Evaluator) execWhile(stmt *ast.WhileStatement) (bool, *errors.Error) {
	for {
		cond, err := e.evalExpr(stmt.Cond)
		if err != nil {
			return false, err
		}
		if !value.ToBool(cond) {
			return false, nil
		}
		returned, err := e.runScopedBody(stmt.Body)
		if err != nil || returned {
			return returned, err
		}
	}
}

// execFor opens an outer scope for Init, then loops: evaluate Cond, stop
// on false, else run Body in its own inner scope, evaluate Step, repeat.
// The defer guarantees the outer scope is truncated/exited exactly once
// regardless of which exit path fires — normal completion, a bubbling
// `return`, or a bubbling error (spec.md §4.7 "for (init; cond; step)").
func (e *Evaluator) execFor(stmt *ast.ForStatement) (returned bool, err *errors.Error) {
	baseDepth := e.m.Depth()
	e.m.EnterScope()
	defer func() {
		e.m.Truncate(baseDepth)
		e.m.ExitScope()
	}()

	if err = e.execLet(stmt.Init); err != nil {
		return false, err
	}

	for {
		var cond value.Value
		cond, err = e.evalExpr(stmt.Cond)
		if err != nil {
			return false, err
		}
		if !value.ToBool(cond) {
			return false, nil
		}

		returned, err = e.runScopedBody(stmt.Body)
		if err != nil || returned {
			return returned, err
		}

		if _, err = e.evalExpr(stmt.Step); err != nil {
			return false, err
		}
	}
}

// execDef registers a user-defined function into the dispatch table
// under its signature id (spec.md §4.3); *DuplicateFunction* on a repeat
// signature.
func (e *Evaluator) execDef(stmt *ast.DefStatement) *errors.Error {
	paramTypes := make([]string, len(stmt.Params))
	paramNames := make([]string, len(stmt.Params))
	for i, p := range stmt.Params {
		paramTypes[i] = p.Type
		paramNames[i] = p.Name
	}
	return e.fns.Register(&dispatch.Function{
		Name:       stmt.Name,
		ParamTypes: paramTypes,
		ParamNames: paramNames,
		Body:       stmt.Body,
	})
}

// execObject registers a type definition into the type registry,
// preserving member declaration order (spec.md §3 "Type definition").
func (e *Evaluator) execObject(stmt *ast.ObjectStatement) *errors.Error {
	members := make([]types.Member, len(stmt.Members))
	for i, m := range stmt.Members {
		members[i] = types.Member{Name: m.Name, Default: m.Default}
	}
	return e.reg.RegisterUser(stmt.Name, stmt.Parent, members)
}
