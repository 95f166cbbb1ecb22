// Package evaluator implements the tree-walking evaluator (C7 of
// SPEC_FULL.md §4.7): it drives an internal/machine.Machine over an
// internal/ast tree, resolving calls through internal/dispatch and types
// through internal/types. Grounded on the teacher's internal/interp/
// evaluator package split (a single Evaluator/Config-shaped type, one
// file per grammar area) loosely adapted from DWScript's much richer
// static-object-model evaluator to gosimpl's small dynamically-typed one.
package evaluator

import (
	"github.com/gosimpl-lang/gosimpl/internal/ast"
	"github.com/gosimpl-lang/gosimpl/internal/dispatch"
	"github.com/gosimpl-lang/gosimpl/internal/errors"
	"github.com/gosimpl-lang/gosimpl/internal/machine"
	"github.com/gosimpl-lang/gosimpl/internal/types"
	"github.com/gosimpl-lang/gosimpl/internal/value"
)

// Library is a host-registered bundle of functions/types loaded by
// `@import NAME` when NAME matches lib.Name before any file-based
// resolution is attempted (spec.md §6 "Module resolution").
type Library struct {
	Name    string
	Install func(e *Evaluator) *errors.Error
}

// Options configures a fresh Evaluator; zero values select machine
// package defaults and the current directory as the import search path.
// Mirrors the teacher's evaluator Config struct in shape, not content.
type Options struct {
	ValueStackCapacity int
	FrameStackCapacity int
	WorkDir            string
}

// Evaluator is the C7 component: one machine, one type registry, one
// dispatch table, plus host-registration and import-tracking state. One
// Evaluator serves one engine instance for its entire lifetime.
type Evaluator struct {
	m    *machine.Machine
	reg  *types.Registry
	fns  *dispatch.Table
	libs map[string]Library

	importing map[string]bool // import currently in progress, for CyclicalImport
	imported  map[string]bool // import already completed, for idempotent re-import

	workDir string

	// loadedLibs records `@loadlib` paths seen so far, for host
	// introspection (SPEC_FULL §14 open-question 6: the core treats
	// `@loadlib` as an otherwise-inert directive).
	loadedLibs []string

	// callStack mirrors the machine's frame stack with the information
	// needed to render a diagnostic trace (errors.StackFrame), pushed and
	// popped alongside each function call, user-defined or native
	// (SPEC_FULL §11.1).
	callStack []errors.StackFrame
}

// New constructs an Evaluator with a fresh machine, type registry, and
// dispatch table.
func New(opts Options) *Evaluator {
	wd := opts.WorkDir
	if wd == "" {
		wd = "."
	}
	return &Evaluator{
		m:         machine.New(opts.ValueStackCapacity, opts.FrameStackCapacity),
		reg:       types.NewRegistry(),
		fns:       dispatch.NewTable(),
		libs:      make(map[string]Library),
		importing: make(map[string]bool),
		imported:  make(map[string]bool),
		workDir:   wd,
	}
}

// Registry exposes the type registry for hosts that need to inspect or
// extend it directly (spec.md §6 "register_type").
func (e *Evaluator) Registry() *types.Registry { return e.reg }

// Dispatch exposes the dispatch table for hosts that need to inspect or
// extend it directly (spec.md §6 "register_function").
func (e *Evaluator) Dispatch() *dispatch.Table { return e.fns }

// LoadedLibs returns the `@loadlib` paths encountered so far, in order.
func (e *Evaluator) LoadedLibs() []string { return e.loadedLibs }

// RegisterLibrary makes lib available to `@import lib.Name`.
func (e *Evaluator) RegisterLibrary(lib Library) {
	e.libs[lib.Name] = lib
}

// RegisterFunction registers a host native under name with the given
// parameter type list (spec.md §6 "register_function").
func (e *Evaluator) RegisterFunction(name string, paramTypes []string, fn dispatch.Native) *errors.Error {
	return e.fns.Register(&dispatch.Function{Name: name, ParamTypes: paramTypes, Native: fn})
}

// RegisterType associates a plain registry name with an optional parent
// (spec.md §6 "register_type(name, parent?)").
func (e *Evaluator) RegisterType(name, parent string) *errors.Error {
	return e.reg.RegisterUser(name, parent, nil)
}

// RegisterNativeType is RegisterType plus a native tag binding, for
// hosts that also want TranslateNativeTag to map host values back to
// this registry name (spec.md §4.2 "register_native").
func (e *Evaluator) RegisterNativeType(name, parent, nativeTag string) *errors.Error {
	return e.reg.RegisterNative(name, parent, nativeTag)
}

// Invoke dispatches name(args...) from host code using the same calling
// convention as in-language call sites (spec.md §6 "invoke").
func (e *Evaluator) Invoke(name string, args []value.Value) (value.Value, *errors.Error) {
	if err := e.m.Push(value.NewEmpty()); err != nil {
		return value.Value{}, err
	}
	for _, a := range args {
		if err := e.m.Push(a); err != nil {
			return value.Value{}, err
		}
	}
	n := len(args)
	argTypes, err := e.argTypes(n)
	if err != nil {
		return value.Value{}, err
	}
	fn, err := e.fns.Resolve(e.reg, name, argTypes)
	if err != nil {
		return value.Value{}, err
	}

	e.callStack = append(e.callStack, errors.StackFrame{FunctionName: name})
	result, cerr := e.callFunction(fn, n)
	if cerr != nil {
		cerr.WithTrace(e.callStack)
	}
	e.callStack = e.callStack[:len(e.callStack)-1]
	return result, cerr
}

// EvalProgram parses-free-executes an already-parsed program. It is the
// one defined catch point in the core (spec.md §7 "Propagation policy"):
// on error, every frame/scope/stack slot pushed during the failing
// evaluation is released so the engine remains usable afterward.
func (e *Evaluator) EvalProgram(prog *ast.Program) *errors.Error {
	baseDepth := e.m.Depth()
	baseScopes := e.m.ScopeDepth()
	baseFrames := e.m.FrameDepth()

	_, err := e.execStatements(prog.Statements)
	if err != nil {
		e.m.Truncate(baseDepth)
		e.m.TruncateScopes(baseScopes)
		e.m.TruncateFrames(baseFrames)
		return err
	}
	return nil
}

// execStatements runs stmts in order, stopping early on the first error
// or the first `return` (reported as returned=true, the signal threaded
// up through every nested block/if/while/for so the whole call stops
// cleanly rather than continuing past the return).
func (e *Evaluator) execStatements(stmts []ast.Statement) (returned bool, err *errors.Error) {
	for _, s := range stmts {
		returned, err = e.execStatement(s)
		if err != nil || returned {
			return returned, err
		}
	}
	return false, nil
}

func (e *Evaluator) execStatement(stmt ast.Statement) (bool, *errors.Error) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		return false, e.execLet(s)
	case *ast.ExpressionStatement:
		_, err := e.evalExpr(s.Expr)
		return false, err
	case *ast.BlockStatement:
		// A bare block does not open its own scope (spec.md §4.6); the
		// construct that wraps it (if/while/for) already did via
		// runScopedBody before reaching here.
		return e.execStatements(s.Statements)
	case *ast.ReturnStatement:
		return e.execReturn(s)
	case *ast.IfStatement:
		return e.execIf(s)
	case *ast.WhileStatement:
		return e.execWhile(s)
	case *ast.ForStatement:
		return e.execFor(s)
	case *ast.DefStatement:
		return false, e.execDef(s)
	case *ast.ObjectStatement:
		return false, e.execObject(s)
	case *ast.ImportStatement:
		return false, e.execImport(s)
	case *ast.LoadLibStatement:
		e.loadedLibs = append(e.loadedLibs, s.Path)
		return false, nil
	}
	return false, errors.At(errors.ParseError, stmt.Pos(), "unhandled statement type %T", stmt)
}

// runScopedBody enters a fresh scope, runs body, and unconditionally
// truncates the value stack and exits the scope on every exit path —
// normal completion, a bubbling `return`, or a bubbling error alike
// (spec.md §4.4 "exit_scope... does not clear stack slots: callers own
// the protocol"; here the scope-opening construct is that caller).
func (e *Evaluator) runScopedBody(body ast.Statement) (bool, *errors.Error) {
	depth := e.m.Depth()
	e.m.EnterScope()
	returned, err := e.execStatement(body)
	e.m.Truncate(depth)
	e.m.ExitScope()
	return returned, err
}

// evalExpr computes expr's value (spec.md §3 invariant 1: every
// expression yields exactly one value). Sub-expression results are
// ordinary Go values; only `let` bindings and function-call argument
// passing actually touch the machine's value stack, since those are the
// two places spec.md's slot model (create_var/load_var, the calling
// convention) requires it.
func (e *Evaluator) evalExpr(expr ast.Expr) (value.Value, *errors.Error) {
	switch ex := expr.(type) {
	case *ast.NumberLiteral:
		return value.NewNumber(ex.Value), nil
	case *ast.StringLiteral:
		return value.NewText(ex.Value), nil
	case *ast.BinaryExpr:
		return e.evalBinary(ex)
	case *ast.AssignExpr:
		return e.evalAssign(ex)
	case *ast.IncDecExpr:
		return e.evalIncDec(ex)
	case *ast.AddressOfExpr:
		return value.NewText(ex.Name), nil
	case *ast.ExpandExpr:
		// Only meaningful at a call-site argument, where the parser
		// already unwraps it into CallExpr.Spread; reaching here means
		// `...` was used elsewhere, so just yield the operand itself.
		return e.evalExpr(ex.Value)
	case *ast.CallExpr:
		return e.evalCall(ex)
	case *ast.NewBlobExpr:
		return e.evalNewBlob(ex)
	case *ast.NewArrayExpr:
		return e.evalNewArray(ex)
	case *ast.NewInstanceExpr:
		return e.evalNewInstance(ex)
	case *ast.IdentifierPath:
		return e.readPath(ex)
	}
	return value.Value{}, errors.At(errors.ParseError, expr.Pos(), "unhandled expression type %T", expr)
}
