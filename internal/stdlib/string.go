package stdlib

import (
	"strings"

	"github.com/gosimpl-lang/gosimpl/internal/errors"
	"github.com/gosimpl-lang/gosimpl/internal/evaluator"
	"github.com/gosimpl-lang/gosimpl/internal/value"
)

// String is the `string` library: grounded on original_source's
// include/simpl/libraries/string.h (string_lib), which registers
// length, at, substr (two overloads, by arity), and split over
// std::string. The reference's own `split` body is empty (a stub left
// unimplemented in mvpete/simpl itself); gosimpl implements it properly
// via strings.Split rather than carrying the stub forward, since a
// native that silently does nothing is worse than one that isn't
// registered at all.
func String() evaluator.Library {
	return evaluator.Library{
		Name: "string",
		Install: func(e *evaluator.Evaluator) *errors.Error {
			if err := e.RegisterFunction("length", []string{"string"}, func(args []value.Value) (value.Value, *errors.Error) {
				return value.NewNumber(float64(len(args[0].RawText()))), nil
			}); err != nil {
				return err
			}
			if err := e.RegisterFunction("at", []string{"string", "number"}, func(args []value.Value) (value.Value, *errors.Error) {
				s := args[0].RawText()
				i := int(args[1].RawNumber())
				if i < 0 || i >= len(s) {
					return value.Value{}, errors.New(errors.OutOfRange, "at: index %d out of range for string of length %d", i, len(s))
				}
				return value.NewText(string(s[i])), nil
			}); err != nil {
				return err
			}
			if err := e.RegisterFunction("substr", []string{"string", "number"}, func(args []value.Value) (value.Value, *errors.Error) {
				s := args[0].RawText()
				offset := int(args[1].RawNumber())
				if offset < 0 || offset > len(s) {
					return value.Value{}, errors.New(errors.OutOfRange, "substr: offset %d out of range for string of length %d", offset, len(s))
				}
				return value.NewText(s[offset:]), nil
			}); err != nil {
				return err
			}
			if err := e.RegisterFunction("substr", []string{"string", "number", "number"}, func(args []value.Value) (value.Value, *errors.Error) {
				s := args[0].RawText()
				offset := int(args[1].RawNumber())
				count := int(args[2].RawNumber())
				if offset < 0 || count < 0 || offset+count > len(s) {
					return value.Value{}, errors.New(errors.OutOfRange, "substr: range [%d:%d) out of bounds for string of length %d", offset, offset+count, len(s))
				}
				return value.NewText(s[offset : offset+count]), nil
			}); err != nil {
				return err
			}
			return e.RegisterFunction("split", []string{"string", "string"}, func(args []value.Value) (value.Value, *errors.Error) {
				parts := strings.Split(args[0].RawText(), args[1].RawText())
				elems := make([]value.Value, len(parts))
				for i, p := range parts {
					elems[i] = value.NewText(p)
				}
				return value.NewArrayValue(value.NewArrayFrom(elems)), nil
			})
		},
	}
}
