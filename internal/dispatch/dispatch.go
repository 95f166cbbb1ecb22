// Package dispatch implements the function signature table and overload
// resolution (C3 of SPEC_FULL.md §4.3). Grounded on the teacher's
// practice of keying registered entities by a deterministic string id
// rather than a hashed struct key (mirrors how the teacher's symbol
// tables key overloads), adapted to gosimpl's exact-match-then-
// inheritance-fallback resolution rule (spec.md §4.3).
package dispatch

import (
	"strings"

	"github.com/gosimpl-lang/gosimpl/internal/ast"
	"github.com/gosimpl-lang/gosimpl/internal/errors"
	"github.com/gosimpl-lang/gosimpl/internal/types"
	"github.com/gosimpl-lang/gosimpl/internal/value"
)

// Native is a host-supplied function thunk: it receives already-evaluated
// argument values and returns a result or an error (spec.md §6
// "register_function").
type Native func(args []value.Value) (value.Value, *errors.Error)

// Function is one entry of the dispatch table (spec.md §3 "Function
// definition"). Exactly one of Native or Body is set.
type Function struct {
	Name        string
	ParamTypes  []string // "any" for an unannotated parameter
	SignatureID string

	Native Native // set for host-registered functions

	// set for user-defined (`def`) functions
	ParamNames []string
	Body       *ast.BlockStatement
}

// SignatureID builds the lookup key spec.md §3 describes: the bare name
// followed by the parenthesized, comma-separated parameter type list.
func SignatureID(name string, paramTypes []string) string {
	return name + "(" + strings.Join(paramTypes, ",") + ")"
}

// Table is the registry of callable functions, keyed by signature id
// with a secondary index by bare name for the inheritance-fallback scan
// (spec.md §4.3).
type Table struct {
	byID   map[string]*Function
	byName map[string][]*Function
}

// NewTable constructs an empty dispatch table.
func NewTable() *Table {
	return &Table{
		byID:   make(map[string]*Function),
		byName: make(map[string][]*Function),
	}
}

// Register inserts fn under its signature id. *DuplicateFunction if the
// id is already taken (spec.md §3 invariant 5).
func (t *Table) Register(fn *Function) *errors.Error {
	id := SignatureID(fn.Name, fn.ParamTypes)
	if _, exists := t.byID[id]; exists {
		return errors.New(errors.DuplicateFunction, "function %q is already registered", id)
	}
	fn.SignatureID = id
	t.byID[id] = fn
	t.byName[fn.Name] = append(t.byName[fn.Name], fn)
	return nil
}

// Lookup returns the function for a concrete signature id, for callers
// (like `invoke`) that already know the exact overload they want.
func (t *Table) Lookup(name string, paramTypes []string) (*Function, bool) {
	fn, ok := t.byID[SignatureID(name, paramTypes)]
	return fn, ok
}

// Resolve performs the two-phase lookup of spec.md §4.3 for a call site
// `name(A1..An)` given the runtime argument types.
//
//  1. Exact match on the signature id formed from argTypes.
//  2. Candidate scan: every function named `name` with matching arity
//     whose declared parameter types each satisfy is_a(Ai, Pi).
//
// Exactly one candidate resolves the call; zero is *NoMatchingFunction*,
// more than one is *AmbiguousCall*.
func (t *Table) Resolve(reg *types.Registry, name string, argTypes []string) (*Function, *errors.Error) {
	if fn, ok := t.byID[SignatureID(name, argTypes)]; ok {
		return fn, nil
	}

	var candidates []*Function
	for _, fn := range t.byName[name] {
		if len(fn.ParamTypes) != len(argTypes) {
			continue
		}
		matches := true
		for i, paramType := range fn.ParamTypes {
			if !reg.IsA(argTypes[i], paramType) {
				matches = false
				break
			}
		}
		if matches {
			candidates = append(candidates, fn)
		}
	}

	switch len(candidates) {
	case 0:
		return nil, errors.New(errors.NoMatchingFunction,
			"no function %q matches argument types (%s)", name, strings.Join(argTypes, ", "))
	case 1:
		return candidates[0], nil
	default:
		return nil, errors.New(errors.AmbiguousCall,
			"call to %q is ambiguous among %d candidates", name, len(candidates))
	}
}
