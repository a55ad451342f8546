package eval

import (
	"github.com/marmoset-lang/marmoset/ast"
	"github.com/marmoset-lang/marmoset/errors"
	"github.com/marmoset-lang/marmoset/object"
)

// destructure matches value against pattern and declares the bound names
// in scope. Patterns are irrefutable in shape only: a tuple pattern
// against a non-tuple, a length mismatch, or a struct pattern against a
// different struct type is a runtime error. The wildcard "_" matches
// anything at any depth and binds nothing.
func (e *Evaluator) destructure(s *Scope, pattern ast.Pattern, value object.Object, mutable bool) error {
	switch p := pattern.(type) {
	case *ast.IdentPattern:
		if !p.IsWildcard() {
			s.Declare(p.Name, value, mutable)
		}
		return nil
	case *ast.TuplePattern:
		return e.destructureTuple(s, p, value, mutable)
	case *ast.StructPattern:
		return e.destructureStruct(s, p, value, mutable)
	default:
		return errors.EvalErrorf("unsupported pattern type %T", pattern)
	}
}

func (e *Evaluator) destructureTuple(s *Scope, p *ast.TuplePattern, value object.Object, mutable bool) error {
	tuple, ok := value.(*object.Tuple)
	if !ok {
		return errors.TypeErrorf("cannot destructure %s as a tuple", value.Type())
	}
	items := tuple.Value()
	if len(items) != len(p.Elems) {
		return errors.ValueErrorf(
			"cannot destructure a %d-element tuple with a %d-element pattern",
			len(items), len(p.Elems))
	}
	for i, elem := range p.Elems {
		if err := e.destructure(s, elem, items[i], mutable); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) destructureStruct(s *Scope, p *ast.StructPattern, value object.Object, mutable bool) error {
	strct, ok := value.(*object.Struct)
	if !ok {
		return errors.TypeErrorf("cannot destructure %s as a struct", value.Type())
	}
	def := strct.Def()
	if def.Name() != p.Name.Name {
		return errors.TypeErrorf("cannot destructure struct %s with a %s pattern",
			def.Name(), p.Name.Name)
	}
	if !p.Named {
		if len(p.Positional) != len(def.Fields()) {
			return errors.ValueErrorf(
				"struct %s has %d fields (%d patterns given)",
				def.Name(), len(def.Fields()), len(p.Positional))
		}
		for i, elem := range p.Positional {
			if err := e.destructure(s, elem, strct.Values()[i], mutable); err != nil {
				return err
			}
		}
		return nil
	}
	for _, field := range p.Fields {
		fieldValue, ok := strct.Field(field.Key.Name)
		if !ok {
			return errors.ValueErrorf("struct %s has no field %q",
				def.Name(), field.Key.Name)
		}
		// The shorthand "Point{x}" binds the field to the name x.
		if field.Value == nil {
			s.Declare(field.Key.Name, fieldValue, mutable)
			continue
		}
		if err := e.destructure(s, field.Value, fieldValue, mutable); err != nil {
			return err
		}
	}
	return nil
}
