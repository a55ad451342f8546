package object

import (
	"context"
	"fmt"

	"github.com/marmoset-lang/marmoset/op"
)

// None is the empty option. There is a single None value; every absent
// result compares equal to it.
var None = &Option{}

var optionAttrs = NewAttrRegistry[*Option]("option")

func init() {
	optionAttrs.Define("and_then").
		Doc("Call fn with the contained value and return its option result; None short-circuits without calling fn").
		Arg("fn").
		Returns("option").
		Impl(func(o *Option, ctx context.Context, args ...Object) (Object, error) {
			fn, err := ArgCallable(args, 0, "option.and_then")
			if err != nil {
				return nil, err
			}
			return o.AndThen(ctx, fn)
		})

	optionAttrs.Define("map").
		Doc("Transform the contained value with fn, leaving None unchanged").
		Arg("fn").
		Returns("option").
		Impl(func(o *Option, ctx context.Context, args ...Object) (Object, error) {
			fn, err := ArgCallable(args, 0, "option.map")
			if err != nil {
				return nil, err
			}
			if o.IsNone() {
				return None, nil
			}
			value, err := fn.Call(ctx, o.value)
			if err != nil {
				return nil, err
			}
			return NewSome(value), nil
		})

	optionAttrs.Define("unwrap").
		Doc("Return the contained value, or raise an error when None").
		Impl(func(o *Option, ctx context.Context, args ...Object) (Object, error) {
			if o.IsNone() {
				return nil, ValueErrorf("called unwrap on None")
			}
			return o.value, nil
		})

	optionAttrs.Define("unwrap_or").
		Doc("Return the contained value, or the fallback when None").
		Arg("fallback").
		Impl(func(o *Option, ctx context.Context, args ...Object) (Object, error) {
			if o.IsNone() {
				return args[0], nil
			}
			return o.value, nil
		})

	optionAttrs.Define("is_some").
		Doc("Whether a value is present").
		Returns("bool").
		Impl(func(o *Option, ctx context.Context, args ...Object) (Object, error) {
			return NewBool(o.IsSome()), nil
		})

	optionAttrs.Define("is_none").
		Doc("Whether the option is empty").
		Returns("bool").
		Impl(func(o *Option, ctx context.Context, args ...Object) (Object, error) {
			return NewBool(o.IsNone()), nil
		})

	optionAttrs.Define("or").
		Doc("Return this option when Some, otherwise the alternative option").
		Arg("alternative").
		Returns("option").
		Impl(func(o *Option, ctx context.Context, args ...Object) (Object, error) {
			if o.IsSome() {
				return o, nil
			}
			alt, ok := args[0].(*Option)
			if !ok {
				return nil, newTypeErrorf("option.or: expected an option (got %s)", args[0].Type())
			}
			return alt, nil
		})

	optionAttrs.Define("iter").
		Doc("Iterate the option as a sequence of zero or one elements").
		Returns("seq").
		Impl(func(o *Option, ctx context.Context, args ...Object) (Object, error) {
			return FromEnumerable("option", o), nil
		})

	optionAttrs.Define("to_list").
		Doc("Collect the option into a list of zero or one elements").
		Returns("list").
		Impl(func(o *Option, ctx context.Context, args ...Object) (Object, error) {
			if o.IsNone() {
				return NewList(nil), nil
			}
			return NewList([]Object{o.value}), nil
		})
}

// Option holds either a single value (Some) or nothing (None). It is the
// value form of "may be absent": chains built with and_then stop at the
// first None, and options iterate as sequences of zero or one elements.
type Option struct {
	// nil means None
	value Object
}

// NewSome wraps a value in a present option.
func NewSome(value Object) *Option {
	return &Option{value: value}
}

func (o *Option) IsSome() bool {
	return o.value != nil
}

func (o *Option) IsNone() bool {
	return o.value == nil
}

// Value returns the contained value, which is nil for None.
func (o *Option) Value() Object {
	return o.value
}

// AndThen applies fn to the contained value and returns the option fn
// produces. None is returned unchanged without calling fn.
func (o *Option) AndThen(ctx context.Context, fn Callable) (Object, error) {
	if o.IsNone() {
		return None, nil
	}
	result, err := fn.Call(ctx, o.value)
	if err != nil {
		return nil, err
	}
	out, ok := result.(*Option)
	if !ok {
		return nil, newTypeErrorf("option.and_then: callback must return an option (got %s)", result.Type())
	}
	return out, nil
}

func (o *Option) Type() Type {
	return OPTION
}

func (o *Option) Inspect() string {
	if o.IsNone() {
		return "None"
	}
	return fmt.Sprintf("Some(%s)", o.value.Inspect())
}

func (o *Option) String() string {
	return o.Inspect()
}

func (o *Option) Interface() any {
	if o.IsNone() {
		return nil
	}
	return o.value.Interface()
}

func (o *Option) Equals(other Object) bool {
	otherOpt, ok := other.(*Option)
	if !ok {
		return false
	}
	if o.IsNone() || otherOpt.IsNone() {
		return o.IsNone() && otherOpt.IsNone()
	}
	return o.value.Equals(otherOpt.value)
}

func (o *Option) Attrs() []AttrSpec {
	return optionAttrs.Specs()
}

func (o *Option) GetAttr(name string) (Object, bool) {
	return optionAttrs.GetAttr(o, name)
}

func (o *Option) SetAttr(name string, value Object) error {
	return TypeErrorf("option has no attribute %q", name)
}

// IsTruthy reports presence: Some is truthy, None is falsy.
func (o *Option) IsTruthy() bool {
	return o.IsSome()
}

func (o *Option) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	return nil, newTypeErrorf("unsupported operation for option: %v", opType)
}

// Enumerate implements Enumerable: Some yields its value once, None yields
// nothing.
func (o *Option) Enumerate(ctx context.Context, fn func(key, value Object) bool) error {
	if o.IsNone() {
		return nil
	}
	fn(NewInt(0), o.value)
	return nil
}
