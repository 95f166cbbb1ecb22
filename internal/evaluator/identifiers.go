package evaluator

import (
	"github.com/gosimpl-lang/gosimpl/internal/ast"
	"github.com/gosimpl-lang/gosimpl/internal/errors"
	"github.com/gosimpl-lang/gosimpl/internal/token"
	"github.com/gosimpl-lang/gosimpl/internal/value"
)

// readPath evaluates the base name via scope search, then walks every
// accessor in order, replacing the current value with the child named
// or indexed by that accessor (spec.md §4.7 "Identifier resolution for
// reads").
func (e *Evaluator) readPath(path *ast.IdentifierPath) (value.Value, *errors.Error) {
	// A bare `true`/`false` reads as a Bool literal; the lexer gives them
	// no token kind of their own, so they arrive here as identifiers.
	if len(path.Accessors) == 0 {
		switch path.Name {
		case "true":
			return value.NewBool(true), nil
		case "false":
			return value.NewBool(false), nil
		}
	}
	cur, err := e.m.LoadVar(path.Name)
	if err != nil {
		return value.Value{}, err
	}
	for _, acc := range path.Accessors {
		cur, err = e.stepAccessor(cur, acc)
		if err != nil {
			return value.Value{}, err
		}
	}
	return cur, nil
}

// stepAccessor applies one accessor to cur (spec.md §4.7):
//   - `.NAME` on a Blob: key lookup, *BadAccess* if absent.
//   - `.NAME` on an Instance: member lookup, *BadAccess* if absent.
//   - `.NAME` on an Array: if NAME is in scope as a Number, use it as
//     the index (bounds-checked); otherwise *BadAccess*.
//   - `[INDEX]` on an Array: bounds-checked.
//   - any accessor on a scalar, or `[INDEX]` on a non-Array: *BadAccess*.
func (e *Evaluator) stepAccessor(cur value.Value, acc ast.Accessor) (value.Value, *errors.Error) {
	switch a := acc.(type) {
	case *ast.FieldAccessor:
		switch cur.Kind() {
		case value.Blob:
			fv, ok := cur.BlobRef().Get(a.Name)
			if !ok {
				return value.Value{}, errors.At(errors.BadAccess, a.Pos(), "blob has no field %q", a.Name)
			}
			return fv, nil
		case value.Instance:
			fv, ok := cur.InstanceRef().Get(a.Name)
			if !ok {
				return value.Value{}, errors.At(errors.BadAccess, a.Pos(), "%s has no member %q", cur.TypeName(), a.Name)
			}
			return fv, nil
		case value.Array:
			idx, err := e.arrayIndexFromScope(a.Name, a.Pos())
			if err != nil {
				return value.Value{}, err
			}
			elem, ok := cur.ArrayRef().At(idx)
			if !ok {
				return value.Value{}, errors.At(errors.OutOfRange, a.Pos(), "array index %d out of range", idx)
			}
			return elem, nil
		default:
			return value.Value{}, errors.At(errors.BadAccess, a.Pos(), "cannot access a field on a %s", cur.TypeName())
		}
	case *ast.IndexAccessor:
		idxVal, err := e.evalExpr(a.Index)
		if err != nil {
			return value.Value{}, err
		}
		if cur.Kind() != value.Array {
			return value.Value{}, errors.At(errors.BadAccess, a.Pos(), "cannot index into a %s", cur.TypeName())
		}
		idxNum, err := value.ToNumber(idxVal)
		if err != nil {
			return value.Value{}, err
		}
		idx := int(idxNum)
		elem, ok := cur.ArrayRef().At(idx)
		if !ok {
			return value.Value{}, errors.At(errors.OutOfRange, a.Pos(), "array index %d out of range", idx)
		}
		return elem, nil
	}
	return value.Value{}, errors.New(errors.BadAccess, "unsupported accessor")
}

// arrayIndexFromScope implements the "Name accessor on Array" rule: name
// must be bound in scope to a Number, which is then used as the index.
func (e *Evaluator) arrayIndexFromScope(name string, pos token.Position) (int, *errors.Error) {
	idxVal, err := e.m.LoadVar(name)
	if err != nil || idxVal.Kind() != value.Number {
		return 0, errors.At(errors.BadAccess, pos, "no in-scope numeric variable named %q to index with", name)
	}
	return int(idxVal.RawNumber()), nil
}

// writePath mirrors readPath's traversal but the final accessor writes
// into the parent container in place — since Blob/Array/Instance are
// shared references, the write is visible through every alias (spec.md
// §4.7 "Identifier resolution for writes", §5 "Shared-resource policy").
// A bare name (no accessors) writes through the scope binding itself.
func (e *Evaluator) writePath(path *ast.IdentifierPath, newVal value.Value) *errors.Error {
	if len(path.Accessors) == 0 {
		return e.assignVar(path.Name, newVal)
	}

	cur, err := e.m.LoadVar(path.Name)
	if err != nil {
		return err
	}
	for _, acc := range path.Accessors[:len(path.Accessors)-1] {
		cur, err = e.stepAccessor(cur, acc)
		if err != nil {
			return err
		}
	}
	return e.writeAccessor(cur, path.Accessors[len(path.Accessors)-1], newVal)
}

func (e *Evaluator) writeAccessor(cur value.Value, acc ast.Accessor, newVal value.Value) *errors.Error {
	switch a := acc.(type) {
	case *ast.FieldAccessor:
		switch cur.Kind() {
		case value.Blob:
			cur.BlobRef().Set(a.Name, newVal)
			return nil
		case value.Instance:
			cur.InstanceRef().Set(a.Name, newVal)
			return nil
		case value.Array:
			idx, err := e.arrayIndexFromScope(a.Name, a.Pos())
			if err != nil {
				return err
			}
			if !cur.ArrayRef().Set(idx, newVal) {
				return errors.At(errors.OutOfRange, a.Pos(), "array index %d out of range", idx)
			}
			return nil
		default:
			return errors.At(errors.BadAccess, a.Pos(), "cannot access a field on a %s", cur.TypeName())
		}
	case *ast.IndexAccessor:
		idxVal, err := e.evalExpr(a.Index)
		if err != nil {
			return err
		}
		if cur.Kind() != value.Array {
			return errors.At(errors.BadAccess, a.Pos(), "cannot index into a %s", cur.TypeName())
		}
		idxNum, err := value.ToNumber(idxVal)
		if err != nil {
			return err
		}
		idx := int(idxNum)
		if !cur.ArrayRef().Set(idx, newVal) {
			return errors.At(errors.OutOfRange, a.Pos(), "array index %d out of range", idx)
		}
		return nil
	}
	return errors.New(errors.BadAccess, "unsupported accessor")
}

// assignVar writes v through name's existing scope binding, wherever it
// is in the scope stack, or creates a fresh top-scope binding if name is
// unbound anywhere (spec.md §4.4 "set_var"). The machine's create_var/
// set_var primitives work over stack slots, not bare values, so this
// pushes v and then either lets set_var write through the existing slot
// (discarding the now-redundant push) or keeps the push as the
// variable's new slot if set_var had to create one.
func (e *Evaluator) assignVar(name string, v value.Value) *errors.Error {
	alreadyBound := e.m.HasVar(name)
	if err := e.m.Push(v); err != nil {
		return err
	}
	if err := e.m.SetVar(name, 0); err != nil {
		return err
	}
	if alreadyBound {
		_, err := e.m.Pop()
		return err
	}
	return nil
}
