package object

import (
	"context"
	"fmt"

	"github.com/marmoset-lang/marmoset/op"
)

var seqAttrs = NewAttrRegistry[*Seq]("seq")

func init() {
	seqAttrs.Define("iter").
		Doc("Return this sequence (sequences iterate as themselves)").
		Returns("seq").
		Impl(func(s *Seq, ctx context.Context, args ...Object) (Object, error) {
			return s, nil
		})

	seqAttrs.Define("flat_map").
		Doc("Map each element to an iterable and flatten the results in order").
		Arg("fn").
		Returns("seq").
		Impl(func(s *Seq, ctx context.Context, args ...Object) (Object, error) {
			fn, err := ArgCallable(args, 0, "seq.flat_map")
			if err != nil {
				return nil, err
			}
			return s.FlatMap(fn), nil
		})

	seqAttrs.Define("map").
		Doc("Transform each element with fn").
		Arg("fn").
		Returns("seq").
		Impl(func(s *Seq, ctx context.Context, args ...Object) (Object, error) {
			fn, err := ArgCallable(args, 0, "seq.map")
			if err != nil {
				return nil, err
			}
			return s.Map(fn), nil
		})

	seqAttrs.Define("filter").
		Doc("Keep elements where fn returns a truthy value").
		Arg("fn").
		Returns("seq").
		Impl(func(s *Seq, ctx context.Context, args ...Object) (Object, error) {
			fn, err := ArgCallable(args, 0, "seq.filter")
			if err != nil {
				return nil, err
			}
			return s.Filter(fn), nil
		})

	seqAttrs.Define("take").
		Doc("Limit the sequence to its first n elements").
		Arg("n").
		Returns("seq").
		Impl(func(s *Seq, ctx context.Context, args ...Object) (Object, error) {
			n, err := AsInt(args[0])
			if err != nil {
				return nil, err
			}
			return s.Take(n), nil
		})

	seqAttrs.Define("count").
		Doc("Consume the sequence and return the number of elements").
		Returns("int").
		Impl(func(s *Seq, ctx context.Context, args ...Object) (Object, error) {
			return s.Count(ctx)
		})

	seqAttrs.Define("to_list").
		Doc("Consume the sequence into a list").
		Returns("list").
		Impl(func(s *Seq, ctx context.Context, args ...Object) (Object, error) {
			return s.ToList(ctx)
		})

	seqAttrs.Define("each").
		Doc("Call fn for every element, for its side effects").
		Arg("fn").
		Returns("nil").
		Impl(func(s *Seq, ctx context.Context, args ...Object) (Object, error) {
			fn, err := ArgCallable(args, 0, "seq.each")
			if err != nil {
				return nil, err
			}
			return s.EachCall(ctx, fn)
		})

	seqAttrs.Define("first").
		Doc("Pull the first element, as Some(value), or None when empty").
		Returns("option").
		Impl(func(s *Seq, ctx context.Context, args ...Object) (Object, error) {
			return s.First(ctx)
		})
}

// Seq is a lazy sequence backed by a generator function. Nothing is
// evaluated until the sequence is pulled, and pulling stops as soon as the
// yield callback returns false. Chaining methods (flat_map, map, filter,
// take) wrap the generator without consuming it; terminal methods (count,
// to_list, each, first) drive it.
//
// Generators receive the pull-time context, so user callbacks invoked while
// pulling can reach the evaluator's call function.
type Seq struct {
	// description for Inspect/debugging
	desc string

	// generator yields elements to the callback. Return false from the
	// callback to stop. The returned error is a failure while producing an
	// element, not an early stop.
	gen func(ctx context.Context, yield func(value Object) bool) error
}

// NewSeq creates a sequence with a description and generator function.
func NewSeq(desc string, gen func(ctx context.Context, yield func(value Object) bool) error) *Seq {
	return &Seq{desc: desc, gen: gen}
}

// FromEnumerable wraps any enumerable object as a value sequence.
func FromEnumerable(desc string, e Enumerable) *Seq {
	return NewSeq(desc, func(ctx context.Context, yield func(value Object) bool) error {
		return e.Enumerate(ctx, func(key, value Object) bool {
			return yield(value)
		})
	})
}

// Iterate adapts an object to a Seq, or reports that it is not iterable.
// The iterable types are exactly those with an "iter" method: sequences
// iterate as themselves, options and results yield zero or one elements,
// maps yield (key, value) tuples, and ranges, lists, and strings yield
// their values. Tuples and structs enumerate only for destructuring and
// are not iterable here.
func Iterate(obj Object) (*Seq, error) {
	switch obj := obj.(type) {
	case *Seq:
		return obj, nil
	case *Option:
		return FromEnumerable("option", obj), nil
	case *Result:
		return FromEnumerable("result", obj), nil
	case *Range:
		return FromEnumerable("range", obj), nil
	case *List:
		return FromEnumerable("list", obj), nil
	case *Map:
		return obj.Iter(), nil
	case *String:
		return FromEnumerable("string", obj), nil
	default:
		return nil, newTypeErrorf("%s object is not iterable", obj.Type())
	}
}

func (s *Seq) Type() Type {
	return SEQ
}

func (s *Seq) Inspect() string {
	return fmt.Sprintf("seq(%s)", s.desc)
}

func (s *Seq) String() string {
	return s.Inspect()
}

func (s *Seq) Interface() any {
	// Collect to a slice for Go interop. Errors while pulling truncate the
	// result; use ToList to observe them.
	var items []any
	s.gen(context.Background(), func(value Object) bool {
		items = append(items, value.Interface())
		return true
	})
	return items
}

func (s *Seq) Equals(other Object) bool {
	// Sequences are only equal to themselves
	return s == other
}

func (s *Seq) Attrs() []AttrSpec {
	return seqAttrs.Specs()
}

func (s *Seq) GetAttr(name string) (Object, bool) {
	return seqAttrs.GetAttr(s, name)
}

func (s *Seq) SetAttr(name string, value Object) error {
	return TypeErrorf("seq has no attribute %q", name)
}

func (s *Seq) IsTruthy() bool {
	return true
}

func (s *Seq) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	return nil, newTypeErrorf("unsupported operation for seq: %v", opType)
}

// Enumerate implements Enumerable. Keys are the running element index.
func (s *Seq) Enumerate(ctx context.Context, fn func(key, value Object) bool) error {
	var idx int64
	return s.gen(ctx, func(value Object) bool {
		ok := fn(NewInt(idx), value)
		idx++
		return ok
	})
}

// Each pulls every element, passing it to fn. Return false from fn to stop.
func (s *Seq) Each(ctx context.Context, fn func(value Object) bool) error {
	return s.gen(ctx, func(value Object) bool {
		if ctx.Err() != nil {
			return false
		}
		return fn(value)
	})
}

// FlatMap returns a lazy sequence that calls fn on each element and
// flattens the iterable each call returns, preserving source order.
func (s *Seq) FlatMap(fn Callable) *Seq {
	return NewSeq("flat_map", func(ctx context.Context, yield func(value Object) bool) error {
		var innerErr error
		err := s.Each(ctx, func(value Object) bool {
			result, err := fn.Call(ctx, value)
			if err != nil {
				innerErr = err
				return false
			}
			inner, err := Iterate(result)
			if err != nil {
				innerErr = newTypeErrorf("seq.flat_map: callback must return an iterable (got %s)", result.Type())
				return false
			}
			stopped := false
			if err := inner.Each(ctx, func(v Object) bool {
				if !yield(v) {
					stopped = true
					return false
				}
				return true
			}); err != nil {
				innerErr = err
				return false
			}
			return !stopped
		})
		if innerErr != nil {
			return innerErr
		}
		return err
	})
}

// Map returns a lazy sequence of fn applied to each element.
func (s *Seq) Map(fn Callable) *Seq {
	return NewSeq("map", func(ctx context.Context, yield func(value Object) bool) error {
		var innerErr error
		err := s.Each(ctx, func(value Object) bool {
			result, err := fn.Call(ctx, value)
			if err != nil {
				innerErr = err
				return false
			}
			return yield(result)
		})
		if innerErr != nil {
			return innerErr
		}
		return err
	})
}

// Filter returns a lazy sequence of the elements for which fn is truthy.
func (s *Seq) Filter(fn Callable) *Seq {
	return NewSeq("filter", func(ctx context.Context, yield func(value Object) bool) error {
		var innerErr error
		err := s.Each(ctx, func(value Object) bool {
			decision, err := fn.Call(ctx, value)
			if err != nil {
				innerErr = err
				return false
			}
			if !decision.IsTruthy() {
				return true
			}
			return yield(value)
		})
		if innerErr != nil {
			return innerErr
		}
		return err
	})
}

// Take returns a lazy sequence of at most the first n elements. The source
// is not pulled past the n-th element.
func (s *Seq) Take(n int64) *Seq {
	return NewSeq("take", func(ctx context.Context, yield func(value Object) bool) error {
		if n <= 0 {
			return nil
		}
		var taken int64
		return s.Each(ctx, func(value Object) bool {
			if !yield(value) {
				return false
			}
			taken++
			return taken < n
		})
	})
}

// Count consumes the sequence and returns the element count.
func (s *Seq) Count(ctx context.Context) (Object, error) {
	var count int64
	if err := s.Each(ctx, func(value Object) bool {
		count++
		return true
	}); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return NewInt(count), nil
}

// ToList consumes the sequence into a List.
func (s *Seq) ToList(ctx context.Context) (Object, error) {
	var items []Object
	if err := s.Each(ctx, func(value Object) bool {
		items = append(items, value)
		return true
	}); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return NewList(items), nil
}

// EachCall consumes the sequence, calling fn on every element.
func (s *Seq) EachCall(ctx context.Context, fn Callable) (Object, error) {
	var innerErr error
	err := s.Each(ctx, func(value Object) bool {
		if _, err := fn.Call(ctx, value); err != nil {
			innerErr = err
			return false
		}
		return true
	})
	if innerErr != nil {
		return nil, innerErr
	}
	if err != nil {
		return nil, err
	}
	return Nil, nil
}

// First pulls at most one element and returns it as an Option.
func (s *Seq) First(ctx context.Context) (Object, error) {
	var first Object
	if err := s.Each(ctx, func(value Object) bool {
		first = value
		return false
	}); err != nil {
		return nil, err
	}
	if first == nil {
		return None, nil
	}
	return NewSome(first), nil
}
