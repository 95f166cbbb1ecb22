// Package value implements the tagged-union runtime value model (C1 of
// SPEC_FULL.md §3/§4.1). Grounded on the teacher's practice of keeping a
// single concrete value representation rather than an interface per
// variant (see the teacher's internal/interp value handling), but the
// variant set and coercion rules here are gosimpl's own (spec.md §3/§4.1).
//
// Blob, Array, and Instance are reference types in the language: Go's
// garbage collector already gives pointer-held containers the sharing
// semantics spec.md describes as "reference-counted" (mutation through
// any alias is visible to all aliases; a handle going out of scope frees
// the container once no alias remains). No manual reference count is
// kept — see DESIGN.md for why that is a deliberate simplification, not
// an omission.
package value

import "fmt"

// Kind is the tag of a Value's variant (spec.md §3 "Value").
type Kind uint8

const (
	Empty Kind = iota
	Bool
	Number
	Text
	Blob
	Array
	Instance
	Native
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case Text:
		return "string"
	case Blob:
		return "blob"
	case Array:
		return "array"
	case Instance:
		return "instance"
	case Native:
		return "native"
	}
	return "unknown"
}

// Value is the tagged union described by spec.md §3. Empty/Bool/Number/
// Text carry their data by value; Blob/Array/Instance/Native carry a
// pointer/interface to shared, mutable state.
type Value struct {
	kind Kind

	num  float64
	text string
	bl   bool

	blob *BlobRef
	arr  *ArrayRef
	inst *InstanceRef
	nat  NativeObject
}

// NewEmpty is the sentinel "no value" / "undefined return" value.
func NewEmpty() Value { return Value{kind: Empty} }

// NewBool wraps a boolean.
func NewBool(b bool) Value { return Value{kind: Bool, bl: b} }

// NewNumber wraps an IEEE-754 double.
func NewNumber(n float64) Value { return Value{kind: Number, num: n} }

// NewText wraps an immutable string.
func NewText(s string) Value { return Value{kind: Text, text: s} }

// NewBlobValue wraps a shared Blob handle.
func NewBlobValue(b *BlobRef) Value { return Value{kind: Blob, blob: b} }

// NewArrayValue wraps a shared Array handle.
func NewArrayValue(a *ArrayRef) Value { return Value{kind: Array, arr: a} }

// NewInstanceValue wraps a shared user-object handle.
func NewInstanceValue(i *InstanceRef) Value { return Value{kind: Instance, inst: i} }

// NewNativeValue wraps a host-owned object implementing NativeObject.
func NewNativeValue(n NativeObject) Value { return Value{kind: Native, nat: n} }

// Kind reports the value's variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether v is the Empty sentinel.
func (v Value) IsEmpty() bool { return v.kind == Empty }

// RawBool returns the boolean payload. Only meaningful when Kind()==Bool;
// callers that don't already know the kind should use ToBool.
func (v Value) RawBool() bool { return v.bl }

// RawNumber returns the float64 payload. Only meaningful when
// Kind()==Number; callers that don't already know the kind should use
// ToNumber.
func (v Value) RawNumber() float64 { return v.num }

// RawText returns the string payload. Only meaningful when Kind()==Text;
// callers that don't already know the kind should use ToString.
func (v Value) RawText() string { return v.text }

// BlobRef returns the shared Blob handle, or nil if Kind() != Blob.
func (v Value) BlobRef() *BlobRef { return v.blob }

// ArrayRef returns the shared Array handle, or nil if Kind() != Array.
func (v Value) ArrayRef() *ArrayRef { return v.arr }

// InstanceRef returns the shared Instance handle, or nil if Kind() != Instance.
func (v Value) InstanceRef() *InstanceRef { return v.inst }

// NativeObject returns the wrapped host object, or nil if Kind() != Native.
func (v Value) NativeObject() NativeObject { return v.nat }

// TypeName reports the type-registry name this value's kind maps to for
// scalars and containers; Instance and Native report their own tagged
// type name since those vary per value (spec.md §4.3's dispatch table
// keys functions by these names).
func (v Value) TypeName() string {
	switch v.kind {
	case Empty:
		return "empty"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case Text:
		return "string"
	case Blob:
		return "blob"
	case Array:
		return "array"
	case Instance:
		return v.inst.TypeName
	case Native:
		return v.nat.NativeTypeName()
	}
	return "any"
}

func (v Value) String() string {
	return fmt.Sprintf("Value(%s)", v.TypeName())
}
