package stdlib

import (
	"github.com/gosimpl-lang/gosimpl/internal/errors"
	"github.com/gosimpl-lang/gosimpl/internal/evaluator"
	"github.com/gosimpl-lang/gosimpl/internal/value"
)

// Array is the `array` library: grounded on original_source's
// include/simpl/libraries/array.h (array_lib), which registers size,
// push, and pop over the reference's array_t. Exercises S3's worked
// example (`push`/`size`).
func Array() evaluator.Library {
	return evaluator.Library{
		Name: "array",
		Install: func(e *evaluator.Evaluator) *errors.Error {
			if err := e.RegisterFunction("size", []string{"array"}, func(args []value.Value) (value.Value, *errors.Error) {
				return value.NewNumber(float64(args[0].ArrayRef().Len())), nil
			}); err != nil {
				return err
			}
			if err := e.RegisterFunction("push", []string{"array", "any"}, func(args []value.Value) (value.Value, *errors.Error) {
				args[0].ArrayRef().Push(args[1])
				return value.NewEmpty(), nil
			}); err != nil {
				return err
			}
			return e.RegisterFunction("pop", []string{"array"}, func(args []value.Value) (value.Value, *errors.Error) {
				v, ok := args[0].ArrayRef().Pop()
				if !ok {
					return value.Value{}, errors.New(errors.OutOfRange, "pop: array is empty")
				}
				return v, nil
			})
		},
	}
}
