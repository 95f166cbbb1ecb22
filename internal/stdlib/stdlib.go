// Package stdlib is the illustrative native function/type library
// SPEC_FULL.md §10 calls for: "a minimal native function/type library
// exercising the registration surface of §6 — NOT part of the core
// pipeline; a stand-in for the concrete native libraries shipped with
// the reference implementation", which spec.md places out of scope.
// Each file here is grounded on one `include/simpl/libraries/*.h` of
// original_source/ (mvpete/simpl), translated from the reference's
// templated `vm.reg_fn` overload-by-C++-signature style to gosimpl's
// explicit `RegisterFunction(name, paramTypes, native)` surface, and
// packaged as an `evaluator.Library` so scripts pull each one in with
// `@import io` / `@import array` / `@import string` rather than having
// every native pre-loaded into every engine (spec.md §6's module
// resolution already gives the host-library path gosimpl needs for
// this; there's no separate "auto-load built-ins" mechanism to add).
package stdlib

import "github.com/gosimpl-lang/gosimpl/internal/evaluator"

// RegisterAll makes every illustrative library in this package
// available for `@import`, in the order the reference implementation's
// own engine loads its built-ins (io, array, string). It does not
// install any of them eagerly — a script opts in per library, exactly
// like any other `@import`.
func RegisterAll(e *evaluator.Evaluator, opts IOOptions) {
	e.RegisterLibrary(IO(opts))
	e.RegisterLibrary(Array())
	e.RegisterLibrary(String())
}
