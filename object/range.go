package object

import (
	"context"
	"fmt"

	"github.com/marmoset-lang/marmoset/op"
)

var rangeAttrs = NewAttrRegistry[*Range]("range")

func init() {
	rangeAttrs.Define("start").
		Doc("The start value of the range").
		Returns("int").
		Getter(func(r *Range) Object {
			return NewInt(r.start)
		})

	rangeAttrs.Define("stop").
		Doc("The stop value of the range (exclusive)").
		Returns("int").
		Getter(func(r *Range) Object {
			return NewInt(r.stop)
		})

	rangeAttrs.Define("contains").
		Doc("Whether an integer falls inside the range").
		Arg("n").
		Returns("bool").
		Impl(func(r *Range, ctx context.Context, args ...Object) (Object, error) {
			n, err := AsInt(args[0])
			if err != nil {
				return nil, err
			}
			return NewBool(n >= r.start && n < r.stop), nil
		})

	rangeAttrs.Define("count").
		Doc("The number of integers in the range").
		Returns("int").
		Impl(func(r *Range, ctx context.Context, args ...Object) (Object, error) {
			return NewInt(r.length()), nil
		})

	rangeAttrs.Define("iter").
		Doc("Iterate the integers of the range as a sequence").
		Returns("seq").
		Impl(func(r *Range, ctx context.Context, args ...Object) (Object, error) {
			return FromEnumerable("range", r), nil
		})

	rangeAttrs.Define("to_list").
		Doc("Collect the integers of the range into a list").
		Returns("list").
		Impl(func(r *Range, ctx context.Context, args ...Object) (Object, error) {
			items := make([]Object, 0, r.length())
			for val := r.start; val < r.stop; val++ {
				items = append(items, NewInt(val))
			}
			return NewList(items), nil
		})
}

// Range is a lazy ascending sequence of integers from start (inclusive) to
// stop (exclusive), as written "start..stop". The step is always one;
// an empty range is produced when stop <= start.
type Range struct {
	start int64
	stop  int64
}

// NewRange creates a new Range object.
func NewRange(start, stop int64) *Range {
	return &Range{start: start, stop: stop}
}

func (r *Range) Attrs() []AttrSpec {
	return rangeAttrs.Specs()
}

func (r *Range) GetAttr(name string) (Object, bool) {
	return rangeAttrs.GetAttr(r, name)
}

func (r *Range) SetAttr(name string, value Object) error {
	return TypeErrorf("range has no attribute %q", name)
}

func (r *Range) Type() Type { return RANGE }

func (r *Range) Inspect() string {
	return fmt.Sprintf("%d..%d", r.start, r.stop)
}

func (r *Range) String() string {
	return r.Inspect()
}

func (r *Range) Interface() any {
	// Return a slice of the range values
	var result []int64
	for val := r.start; val < r.stop; val++ {
		result = append(result, val)
	}
	return result
}

func (r *Range) IsTruthy() bool {
	return r.length() > 0
}

func (r *Range) Equals(other Object) bool {
	otherRange, ok := other.(*Range)
	if !ok {
		return false
	}
	// Two ranges are equal if they produce the same sequence.
	// Empty ranges are equal regardless of bounds.
	if r.length() == 0 && otherRange.length() == 0 {
		return true
	}
	return r.start == otherRange.start && r.stop == otherRange.stop
}

func (r *Range) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	return nil, newTypeErrorf("unsupported operation for range: %v", opType)
}

// length returns the number of elements in the range.
func (r *Range) length() int64 {
	if r.start >= r.stop {
		return 0
	}
	return r.stop - r.start
}

// Enumerate implements Enumerable, yielding (index, value) in ascending
// order.
func (r *Range) Enumerate(ctx context.Context, fn func(key, value Object) bool) error {
	idx := int64(0)
	for val := r.start; val < r.stop; val++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !fn(NewInt(idx), NewInt(val)) {
			break
		}
		idx++
	}
	return nil
}

// Start returns the start value.
func (r *Range) Start() int64 { return r.start }

// Stop returns the stop value.
func (r *Range) Stop() int64 { return r.stop }
