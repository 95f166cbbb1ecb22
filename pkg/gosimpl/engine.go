// Package gosimpl is the C8 embedding façade of SPEC_FULL.md §10: the
// single entry point a host program imports to run gosimpl scripts.
// Grounded on the teacher's pkg/dwscript usage pattern (no literal
// source survives in the examples pack — only its tests — so this
// package is authored from scratch in that demonstrated style):
// functional-options construction (`New(opts ...Option)`), an
// `Eval(src) (*Result, error)` surface whose `Result.Success` field is
// read directly off `pkg/dwscript`'s own test assertions, and a `RegisterFunction`/`SetOutput` host-registration
// surface — adapted from the teacher's Go-reflection-based native
// binding to gosimpl's simpler, explicit `dispatch.Native` signature,
// since gosimpl has no static type system to reflect parameter types
// out of.
package gosimpl

import (
	"fmt"
	"io"
	"os"

	"github.com/gosimpl-lang/gosimpl/internal/config"
	"github.com/gosimpl-lang/gosimpl/internal/dispatch"
	"github.com/gosimpl-lang/gosimpl/internal/errors"
	"github.com/gosimpl-lang/gosimpl/internal/evaluator"
	"github.com/gosimpl-lang/gosimpl/internal/lexer"
	"github.com/gosimpl-lang/gosimpl/internal/parser"
	"github.com/gosimpl-lang/gosimpl/internal/stdlib"
	"github.com/gosimpl-lang/gosimpl/internal/value"
)

// Engine is one gosimpl interpreter instance: one Evaluator (and
// therefore one value/scope/frame machine, one type registry, one
// dispatch table) serving every Eval/Invoke call made against it for
// its lifetime (spec.md §6's engine-instance model).
type Engine struct {
	eval *evaluator.Evaluator
	out  io.Writer
}

// Option configures a *Engine at construction time.
type Option func(*engineConfig)

type engineConfig struct {
	out        io.Writer
	workDir    string
	valueCap   int
	frameCap   int
	withStdlib bool
}

// outputProxy forwards every write to whatever the owning Engine's out
// field currently holds, so a stdlib library registered at construction
// time keeps writing to the right place even after a later SetOutput
// call swaps the target out from under it.
type outputProxy struct{ e *Engine }

func (p outputProxy) Write(b []byte) (int, error) { return p.e.out.Write(b) }

// WithOutput redirects print/println (from the illustrative `io`
// library, when WithStdlib is also used) to w instead of os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *engineConfig) { c.out = w }
}

// WithWorkDir sets the directory `@import NAME` searches for `NAME.sl`
// (spec.md §6 "Module resolution"), overriding the process's current
// directory.
func WithWorkDir(dir string) Option {
	return func(c *engineConfig) { c.workDir = dir }
}

// WithValueStackCapacity overrides the machine's value-stack capacity
// (spec.md §4.4 "Hosts may tune engine limits").
func WithValueStackCapacity(n int) Option {
	return func(c *engineConfig) { c.valueCap = n }
}

// WithFrameStackCapacity overrides the machine's frame-stack capacity.
func WithFrameStackCapacity(n int) Option {
	return func(c *engineConfig) { c.frameCap = n }
}

// WithStdlib registers internal/stdlib's illustrative io/array/string
// libraries for `@import`, matching the reference implementation's own
// built-in libraries (SPEC_FULL §10, §13 item 1). Not applied by
// default — a bare Engine carries none of the core's out-of-scope
// native libraries until a host opts in.
func WithStdlib() Option {
	return func(c *engineConfig) { c.withStdlib = true }
}

// WithConfig applies a host-loaded internal/config.Config's engine
// limits and work directory, as though each of its non-zero fields had
// been passed as its own Option (SPEC_FULL §11.2). Options passed after
// WithConfig in the same New call still take precedence, since options
// apply in order.
func WithConfig(cfg config.Config) Option {
	return func(c *engineConfig) {
		if cfg.Limits.ValueStackCapacity != 0 {
			c.valueCap = cfg.Limits.ValueStackCapacity
		}
		if cfg.Limits.FrameStackCapacity != 0 {
			c.frameCap = cfg.Limits.FrameStackCapacity
		}
		if cfg.WorkDir != "" {
			c.workDir = cfg.WorkDir
		}
	}
}

// New constructs an Engine. With no options, it writes to os.Stdout,
// resolves `@import` against the current directory, uses
// internal/machine's own default stack capacities, and carries no
// illustrative stdlib (see WithStdlib).
func New(opts ...Option) (*Engine, error) {
	cfg := &engineConfig{out: os.Stdout}
	for _, opt := range opts {
		opt(cfg)
	}

	ev := evaluator.New(evaluator.Options{
		ValueStackCapacity: cfg.valueCap,
		FrameStackCapacity: cfg.frameCap,
		WorkDir:            cfg.workDir,
	})

	e := &Engine{eval: ev, out: cfg.out}

	if cfg.withStdlib {
		stdlib.RegisterAll(ev, stdlib.IOOptions{Out: outputProxy{e: e}})
	}

	return e, nil
}

// SetOutput redirects subsequent output the same way WithOutput does at
// construction time.
func (e *Engine) SetOutput(w io.Writer) {
	e.out = w
}

// RegisterFunction registers a host native under name with the given
// parameter type list (spec.md §6 "register_function").
func (e *Engine) RegisterFunction(name string, paramTypes []string, fn dispatch.Native) error {
	if err := e.eval.RegisterFunction(name, paramTypes, fn); err != nil {
		return err
	}
	return nil
}

// RegisterType associates a plain registry name with an optional parent
// (spec.md §6 "register_type(name, parent?)").
func (e *Engine) RegisterType(name, parent string) error {
	if err := e.eval.RegisterType(name, parent); err != nil {
		return err
	}
	return nil
}

// RegisterNativeType is RegisterType plus a native tag binding (spec.md
// §4.2 "register_native").
func (e *Engine) RegisterNativeType(name, parent, nativeTag string) error {
	if err := e.eval.RegisterNativeType(name, parent, nativeTag); err != nil {
		return err
	}
	return nil
}

// Invoke calls name(args...) from host code using the same calling
// convention as an in-language call site (spec.md §6 "invoke").
func (e *Engine) Invoke(name string, args []value.Value) (value.Value, error) {
	v, err := e.eval.Invoke(name, args)
	if err != nil {
		return value.Value{}, err
	}
	return v, nil
}

// Result is what Eval returns: whether the program ran to completion
// without error, and the error itself (mirroring the teacher's
// Result.Success/err-returned-separately pair, grounded on
// pkg/dwscript's own test assertions against result.Success).
type Result struct {
	Success bool
}

// Eval parses and runs src against the engine's live state — the
// variables, functions, and types any previous Eval/Import left behind
// persist across calls, matching a REPL's incremental-evaluation model
// (spec.md §6's engine-instance lifetime).
func (e *Engine) Eval(src string) (*Result, error) {
	prog, perr := parser.ParseProgram(src)
	if perr != nil {
		return &Result{Success: false}, perr
	}
	if err := e.eval.EvalProgram(prog); err != nil {
		return &Result{Success: false}, err
	}
	return &Result{Success: true}, nil
}

// EvalFile reads path off disk (through internal/lexer's BOM/UTF-16-
// aware decoder, the same one `@import` uses) and evaluates it.
func (e *Engine) EvalFile(path string) (*Result, error) {
	raw, rerr := os.ReadFile(path)
	if rerr != nil {
		return &Result{Success: false}, fmt.Errorf("reading %s: %w", path, rerr)
	}
	src, derr := lexer.DecodeSource(raw)
	if derr != nil {
		return &Result{Success: false}, errors.New(errors.LexError, "%s: %s", path, derr)
	}
	return e.Eval(src)
}
