package rand

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/marmoset-lang/marmoset/object"
)

// Float returns a random float in [0.0, 1.0).
func Float(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("type error: rand.float() takes no arguments (%d given)", len(args))
	}
	return object.NewFloat(rand.Float64()), nil
}

// Int returns a random integer. With one argument n the result is in
// [0, n); with two arguments lo, hi it is in [lo, hi).
func Int(ctx context.Context, args ...object.Object) (object.Object, error) {
	switch len(args) {
	case 0:
		return object.NewInt(rand.Int63()), nil
	case 1:
		n, err := object.AsInt(args[0])
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return nil, fmt.Errorf("value error: rand.int() bound must be positive (got %d)", n)
		}
		return object.NewInt(rand.Int63n(n)), nil
	case 2:
		lo, err := object.AsInt(args[0])
		if err != nil {
			return nil, err
		}
		hi, err := object.AsInt(args[1])
		if err != nil {
			return nil, err
		}
		if hi <= lo {
			return nil, fmt.Errorf("value error: rand.int() empty range [%d, %d)", lo, hi)
		}
		return object.NewInt(lo + rand.Int63n(hi-lo)), nil
	default:
		return nil, fmt.Errorf("type error: rand.int() takes 0 to 2 arguments (%d given)", len(args))
	}
}

// Uniform returns a random float in [a, b).
func Uniform(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("type error: rand.uniform() takes exactly 2 arguments (%d given)", len(args))
	}
	a, err := object.AsFloat(args[0])
	if err != nil {
		return nil, err
	}
	b, err := object.AsFloat(args[1])
	if err != nil {
		return nil, err
	}
	return object.NewFloat(a + rand.Float64()*(b-a)), nil
}

// Choice returns Some(element) for a random element of the list, or
// None when the list is empty.
func Choice(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type error: rand.choice() takes exactly 1 argument (%d given)", len(args))
	}
	list, err := object.AsList(args[0])
	if err != nil {
		return nil, err
	}
	items := list.Value()
	if len(items) == 0 {
		return object.None, nil
	}
	return object.NewSome(items[rand.Intn(len(items))]), nil
}

// Sample returns k distinct random elements of the list.
func Sample(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("type error: rand.sample() takes exactly 2 arguments (%d given)", len(args))
	}
	list, err := object.AsList(args[0])
	if err != nil {
		return nil, err
	}
	k, err := object.AsInt(args[1])
	if err != nil {
		return nil, err
	}
	items := list.Value()
	n := int64(len(items))
	if k < 0 || k > n {
		return nil, fmt.Errorf("value error: rand.sample() size %d out of range for a %d-element list", k, n)
	}
	// Partial Fisher-Yates over an index permutation
	indices := make([]int64, n)
	for i := range indices {
		indices[i] = int64(i)
	}
	result := make([]object.Object, k)
	for i := int64(0); i < k; i++ {
		j := i + rand.Int63n(n-i)
		indices[i], indices[j] = indices[j], indices[i]
		result[i] = items[indices[i]]
	}
	return object.NewList(result), nil
}

// Shuffle reorders the list in place and returns it.
func Shuffle(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type error: rand.shuffle() takes exactly 1 argument (%d given)", len(args))
	}
	list, err := object.AsList(args[0])
	if err != nil {
		return nil, err
	}
	items := list.Value()
	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	return list, nil
}

func Module() *object.Module {
	return object.NewBuiltinsModule("rand", map[string]object.Object{
		"choice":  object.NewBuiltin("choice", Choice),
		"float":   object.NewBuiltin("float", Float),
		"int":     object.NewBuiltin("int", Int),
		"sample":  object.NewBuiltin("sample", Sample),
		"shuffle": object.NewBuiltin("shuffle", Shuffle),
		"uniform": object.NewBuiltin("uniform", Uniform),
	})
}
