package value

import (
	"strconv"
	"strings"

	"github.com/gosimpl-lang/gosimpl/internal/errors"
)

// ToString implements the total to-string coercion of spec.md §4.1. It
// never fails: every Kind has a defined rendering.
func ToString(v Value) string {
	switch v.Kind() {
	case Empty:
		return "undefined"
	case Bool:
		if v.RawBool() {
			return "true"
		}
		return "false"
	case Number:
		return strconv.FormatFloat(v.RawNumber(), 'g', -1, 64)
	case Text:
		return v.RawText()
	case Blob:
		return blobToString(v.BlobRef())
	case Array:
		return arrayToString(v.ArrayRef())
	case Instance:
		return "<" + v.InstanceRef().TypeName + " instance>"
	case Native:
		return "<native " + v.NativeObject().NativeTypeName() + ">"
	}
	return "undefined"
}

func blobToString(b *BlobRef) string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for i, k := range b.Fields() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fv, _ := b.Get(k)
		sb.WriteString(k)
		sb.WriteString(" : ")
		sb.WriteString(ToString(fv))
	}
	sb.WriteString(" }")
	return sb.String()
}

func arrayToString(a *ArrayRef) string {
	var sb strings.Builder
	sb.WriteString("[ ")
	for i, e := range a.Elements() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(ToString(e))
	}
	sb.WriteString(" ]")
	return sb.String()
}

// ToBool implements the total to-bool coercion of spec.md §4.1.
func ToBool(v Value) bool {
	switch v.Kind() {
	case Empty:
		return false
	case Bool:
		return v.RawBool()
	case Number:
		return v.RawNumber() != 0
	case Text:
		s := v.RawText()
		return !(s == "" || s == "0" || s == "false")
	case Blob:
		return v.BlobRef() != nil
	case Array:
		return v.ArrayRef() != nil
	case Instance:
		return v.InstanceRef() != nil
	case Native:
		return v.NativeObject() != nil
	}
	return false
}

// ToNumber implements spec.md §4.1's to-number coercion: identity for
// Number, lenient parse for Text (unparseable yields -1, a documented
// quirk preserved verbatim per SPEC_FULL §14.1 — never silently "fixed"
// into an error), and *BadCast* for every other kind.
func ToNumber(v Value) (float64, *errors.Error) {
	switch v.Kind() {
	case Number:
		return v.RawNumber(), nil
	case Text:
		return parseLenientNumber(v.RawText()), nil
	default:
		return 0, errors.New(errors.BadCast, "cannot coerce %s to number", v.TypeName())
	}
}

// parseLenientNumber trims surrounding whitespace and returns -1 for any
// string strconv.ParseFloat rejects, including the empty string (spec.md
// §9 note 1). Forms ParseFloat accepts beyond plain decimals (exponents,
// hex floats, "Inf", "NaN") yield their float64 value.
func parseLenientNumber(s string) float64 {
	trimmed := strings.TrimSpace(s)
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return -1
	}
	return n
}
