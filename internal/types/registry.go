// Package types implements the type registry (C2 of SPEC_FULL.md §4.2):
// built-in/user/native type registration, parent-chain lookup, and the
// is_a query the dispatch table (C3) uses for inheritance fallback.
// Grounded on the teacher's practice of a single registry map guarded by
// construction-time invariants rather than a general-purpose graph
// structure (see the teacher's type-identity handling in its semantic
// analysis passes), adapted to gosimpl's much smaller, single-inheritance
// type model (spec.md §3 "Type definition").
package types

import (
	"github.com/google/uuid"

	"github.com/gosimpl-lang/gosimpl/internal/ast"
	"github.com/gosimpl-lang/gosimpl/internal/errors"
)

// Member is one declared member of a user type: a name and an optional
// default-value expression, evaluated lazily at instantiation time
// (spec.md §3 "Type definition", §4.7 "new expressions").
type Member struct {
	Name    string
	Default ast.Expr
}

// Def is a single registry entry (spec.md §3 "Type definition").
type Def struct {
	Name      string
	Parent    *Def   // nil for root types (built-ins and parentless user types)
	NativeTag string // "" unless registered via RegisterNative
	Members   []Member
}

// builtinNames are the type names that always exist (spec.md §3).
var builtinNames = []string{"any", "empty", "bool", "number", "string", "blob", "array"}

// Registry maps user-visible type names to their definitions. One
// Registry is owned per engine instance (spec.md §4.4 "process-wide
// within one engine instance").
type Registry struct {
	defs      map[string]*Def
	nativeTag map[string]string // native tag -> registered name
}

// NewRegistry constructs a registry pre-populated with the built-in root
// types (spec.md §3).
func NewRegistry() *Registry {
	r := &Registry{
		defs:      make(map[string]*Def),
		nativeTag: make(map[string]string),
	}
	for _, name := range builtinNames {
		r.defs[name] = &Def{Name: name}
	}
	return r
}

// RegisterBuiltin inserts a root type with no parent and no members.
// Exposed for hosts that want to extend the built-in set beyond
// spec.md §3's fixed list.
func (r *Registry) RegisterBuiltin(name string) *errors.Error {
	if _, exists := r.defs[name]; exists {
		return errors.New(errors.TypeExists, "type %q is already registered", name)
	}
	r.defs[name] = &Def{Name: name}
	return nil
}

// RegisterUser inserts a user-defined type (an `object` definition
// statement, or an equivalent host call). parent may be "" for no
// parent; if non-empty it must already be registered (spec.md §4.2
// "Ordering: the parent must exist before the child is registered").
func (r *Registry) RegisterUser(name, parent string, members []Member) *errors.Error {
	if _, exists := r.defs[name]; exists {
		return errors.New(errors.TypeExists, "type %q is already registered", name)
	}
	def := &Def{Name: name, Members: members}
	if parent != "" {
		parentDef, ok := r.defs[parent]
		if !ok {
			return errors.New(errors.UnknownType, "parent type %q is not registered", parent)
		}
		def.Parent = parentDef
	}
	r.defs[name] = def
	return nil
}

// RegisterNative inserts a host-side type bound to a native tag, so that
// TranslateNativeTag can later map host values back to their
// registry name (spec.md §4.2 "register_native").
func (r *Registry) RegisterNative(name, parent, nativeTag string) *errors.Error {
	if err := r.RegisterUser(name, parent, nil); err != nil {
		return err
	}
	r.defs[name].NativeTag = nativeTag
	if nativeTag != "" {
		r.nativeTag[nativeTag] = name
	}
	return nil
}

// Lookup returns the type definition for name, if registered.
func (r *Registry) Lookup(name string) (*Def, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// IsA reports whether sub satisfies super: super is "any", sub == super,
// or super appears in sub's parent chain (spec.md §4.2 "is_a"). Unknown
// names never satisfy anything except trivial equality.
func (r *Registry) IsA(sub, super string) bool {
	if super == "any" {
		return true
	}
	if sub == super {
		return true
	}
	def, ok := r.defs[sub]
	if !ok {
		return false
	}
	for p := def.Parent; p != nil; p = p.Parent {
		if p.Name == super {
			return true
		}
	}
	return false
}

// TranslateNativeTag maps a native tag back to its registered
// user-visible name (spec.md §4.2 "translate_native_tag").
func (r *Registry) TranslateNativeTag(tag string) (string, *errors.Error) {
	name, ok := r.nativeTag[tag]
	if !ok {
		return "", errors.New(errors.UnknownType, "native tag %q has no registered type", tag)
	}
	return name, nil
}

// Ancestors returns def's ancestor chain from the root-most parent down
// to (but not including) def itself — the order spec.md §4.7 requires
// for default-initializer evaluation ("root-ancestor-to-leaf order").
func Ancestors(def *Def) []*Def {
	var chain []*Def
	for p := def.Parent; p != nil; p = p.Parent {
		chain = append(chain, p)
	}
	// reverse in place: chain was collected leaf-ward-to-root, we want
	// root-to-leaf.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// NewAnonymousTypeName mints a unique `blob$`-prefixed name for a value
// with no explicit user-visible type. It does not insert an entry; a
// host that wants to track the name's provenance registers it itself via
// RegisterUser. internal/evaluator does not call it: anonymous
// `new { ... }` blobs report the type name "blob".
func NewAnonymousTypeName() string {
	return "blob$" + uuid.NewString()
}
