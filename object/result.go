package object

import (
	"context"
	"fmt"

	"github.com/marmoset-lang/marmoset/op"
)

var resultAttrs = NewAttrRegistry[*Result]("result")

func init() {
	resultAttrs.Define("and_then").
		Doc("Call fn with the Ok value and return its result; Err short-circuits without calling fn").
		Arg("fn").
		Returns("result").
		Impl(func(r *Result, ctx context.Context, args ...Object) (Object, error) {
			fn, err := ArgCallable(args, 0, "result.and_then")
			if err != nil {
				return nil, err
			}
			return r.AndThen(ctx, fn)
		})

	resultAttrs.Define("map").
		Doc("Transform the Ok value with fn, leaving Err unchanged").
		Arg("fn").
		Returns("result").
		Impl(func(r *Result, ctx context.Context, args ...Object) (Object, error) {
			fn, err := ArgCallable(args, 0, "result.map")
			if err != nil {
				return nil, err
			}
			if r.IsErr() {
				return r, nil
			}
			value, err := fn.Call(ctx, r.value)
			if err != nil {
				return nil, err
			}
			return NewOk(value), nil
		})

	resultAttrs.Define("map_err").
		Doc("Transform the Err value with fn, leaving Ok unchanged").
		Arg("fn").
		Returns("result").
		Impl(func(r *Result, ctx context.Context, args ...Object) (Object, error) {
			fn, err := ArgCallable(args, 0, "result.map_err")
			if err != nil {
				return nil, err
			}
			if r.IsOk() {
				return r, nil
			}
			value, err := fn.Call(ctx, r.errValue)
			if err != nil {
				return nil, err
			}
			return NewErrResult(value), nil
		})

	resultAttrs.Define("unwrap").
		Doc("Return the Ok value, or raise an error when Err").
		Impl(func(r *Result, ctx context.Context, args ...Object) (Object, error) {
			if r.IsErr() {
				return nil, ValueErrorf("called unwrap on Err: %s", r.errValue.Inspect())
			}
			return r.value, nil
		})

	resultAttrs.Define("unwrap_or").
		Doc("Return the Ok value, or the fallback when Err").
		Arg("fallback").
		Impl(func(r *Result, ctx context.Context, args ...Object) (Object, error) {
			if r.IsErr() {
				return args[0], nil
			}
			return r.value, nil
		})

	resultAttrs.Define("unwrap_err").
		Doc("Return the Err value, or raise an error when Ok").
		Impl(func(r *Result, ctx context.Context, args ...Object) (Object, error) {
			if r.IsOk() {
				return nil, ValueErrorf("called unwrap_err on Ok: %s", r.value.Inspect())
			}
			return r.errValue, nil
		})

	resultAttrs.Define("is_ok").
		Doc("Whether the result is Ok").
		Returns("bool").
		Impl(func(r *Result, ctx context.Context, args ...Object) (Object, error) {
			return NewBool(r.IsOk()), nil
		})

	resultAttrs.Define("is_err").
		Doc("Whether the result is Err").
		Returns("bool").
		Impl(func(r *Result, ctx context.Context, args ...Object) (Object, error) {
			return NewBool(r.IsErr()), nil
		})

	resultAttrs.Define("ok").
		Doc("Convert to an option over the Ok value, discarding any error").
		Returns("option").
		Impl(func(r *Result, ctx context.Context, args ...Object) (Object, error) {
			if r.IsErr() {
				return None, nil
			}
			return NewSome(r.value), nil
		})

	resultAttrs.Define("err").
		Doc("Convert to an option over the Err value, discarding any success").
		Returns("option").
		Impl(func(r *Result, ctx context.Context, args ...Object) (Object, error) {
			if r.IsOk() {
				return None, nil
			}
			return NewSome(r.errValue), nil
		})

	resultAttrs.Define("iter").
		Doc("Iterate the result as a sequence of zero or one elements; Err yields nothing").
		Returns("seq").
		Impl(func(r *Result, ctx context.Context, args ...Object) (Object, error) {
			return FromEnumerable("result", r), nil
		})
}

// Result holds either a success value (Ok) or an error value (Err). Chains
// built with and_then stop at the first Err and carry it through unchanged.
// Unlike Error, an Err result is an ordinary value: nothing is raised until
// the caller unwraps it.
type Result struct {
	value    Object
	errValue Object
	ok       bool
}

// NewOk wraps a value in a successful result.
func NewOk(value Object) *Result {
	return &Result{value: value, ok: true}
}

// NewErrResult wraps a value in a failed result.
func NewErrResult(errValue Object) *Result {
	return &Result{errValue: errValue}
}

func (r *Result) IsOk() bool {
	return r.ok
}

func (r *Result) IsErr() bool {
	return !r.ok
}

// Value returns the Ok value, which is nil for Err.
func (r *Result) Value() Object {
	return r.value
}

// ErrValue returns the Err value, which is nil for Ok.
func (r *Result) ErrValue() Object {
	return r.errValue
}

// AndThen applies fn to the Ok value and returns the result fn produces.
// Err is returned unchanged without calling fn.
func (r *Result) AndThen(ctx context.Context, fn Callable) (Object, error) {
	if r.IsErr() {
		return r, nil
	}
	result, err := fn.Call(ctx, r.value)
	if err != nil {
		return nil, err
	}
	out, ok := result.(*Result)
	if !ok {
		return nil, newTypeErrorf("result.and_then: callback must return a result (got %s)", result.Type())
	}
	return out, nil
}

func (r *Result) Type() Type {
	return RESULT
}

func (r *Result) Inspect() string {
	if r.IsOk() {
		return fmt.Sprintf("Ok(%s)", r.value.Inspect())
	}
	return fmt.Sprintf("Err(%s)", r.errValue.Inspect())
}

func (r *Result) String() string {
	return r.Inspect()
}

func (r *Result) Interface() any {
	if r.IsOk() {
		return r.value.Interface()
	}
	return r.errValue.Interface()
}

func (r *Result) Equals(other Object) bool {
	otherRes, ok := other.(*Result)
	if !ok {
		return false
	}
	if r.ok != otherRes.ok {
		return false
	}
	if r.ok {
		return r.value.Equals(otherRes.value)
	}
	return r.errValue.Equals(otherRes.errValue)
}

func (r *Result) Attrs() []AttrSpec {
	return resultAttrs.Specs()
}

func (r *Result) GetAttr(name string) (Object, bool) {
	return resultAttrs.GetAttr(r, name)
}

func (r *Result) SetAttr(name string, value Object) error {
	return TypeErrorf("result has no attribute %q", name)
}

// IsTruthy reports success: Ok is truthy, Err is falsy.
func (r *Result) IsTruthy() bool {
	return r.IsOk()
}

func (r *Result) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	return nil, newTypeErrorf("unsupported operation for result: %v", opType)
}

// Enumerate implements Enumerable: Ok yields its value once, Err yields
// nothing.
func (r *Result) Enumerate(ctx context.Context, fn func(key, value Object) bool) error {
	if r.IsErr() {
		return nil
	}
	fn(NewInt(0), r.value)
	return nil
}
