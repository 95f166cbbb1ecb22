package value

// NativeObject is the capability a host-owned value must implement to be
// wrapped as a Native Value (spec.md §3 "Native"): it reports its
// registered type name, answers convertibility queries against another
// registered type name, and exposes its underlying datum for typed
// access by the host.
type NativeObject interface {
	// NativeTypeName returns the name this object is registered under in
	// the type registry (C2).
	NativeTypeName() string

	// ConvertsTo reports whether this object can present itself as the
	// given registered type name. Dispatch's is_a fallback does not call
	// it; overload resolution uses the type registry's parent chain only.
	ConvertsTo(targetType string) bool

	// Data returns the underlying host-language datum, for native
	// functions that know the concrete type to expect.
	Data() any
}
