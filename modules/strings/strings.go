package strings

import (
	"context"
	"fmt"
	"strings"

	"github.com/marmoset-lang/marmoset/object"
)

// oneString adapts a single-argument string function to the builtin
// signature.
func oneString(name string, fn func(string) object.Object) object.BuiltinFunction {
	return func(ctx context.Context, args ...object.Object) (object.Object, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("type error: strings.%s() takes exactly 1 argument (%d given)", name, len(args))
		}
		s, err := object.AsString(args[0])
		if err != nil {
			return nil, err
		}
		return fn(s), nil
	}
}

func twoStrings(name string, fn func(a, b string) object.Object) object.BuiltinFunction {
	return func(ctx context.Context, args ...object.Object) (object.Object, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("type error: strings.%s() takes exactly 2 arguments (%d given)", name, len(args))
		}
		a, err := object.AsString(args[0])
		if err != nil {
			return nil, err
		}
		b, err := object.AsString(args[1])
		if err != nil {
			return nil, err
		}
		return fn(a, b), nil
	}
}

// Index returns Some(index) of the first instance of substr in s, or
// None when absent.
func Index(ctx context.Context, args ...object.Object) (object.Object, error) {
	return indexWith("index", strings.Index, args)
}

// LastIndex returns Some(index) of the last instance of substr in s,
// or None when absent.
func LastIndex(ctx context.Context, args ...object.Object) (object.Object, error) {
	return indexWith("last_index", strings.LastIndex, args)
}

func indexWith(name string, fn func(s, substr string) int, args []object.Object) (object.Object, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("type error: strings.%s() takes exactly 2 arguments (%d given)", name, len(args))
	}
	s, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	substr, err := object.AsString(args[1])
	if err != nil {
		return nil, err
	}
	if i := fn(s, substr); i >= 0 {
		return object.NewSome(object.NewInt(int64(i))), nil
	}
	return object.None, nil
}

// Join concatenates the elements of a string list with a separator.
func Join(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("type error: strings.join() takes exactly 2 arguments (%d given)", len(args))
	}
	items, err := object.AsStringSlice(args[0])
	if err != nil {
		return nil, err
	}
	sep, err := object.AsString(args[1])
	if err != nil {
		return nil, err
	}
	return object.NewString(strings.Join(items, sep)), nil
}

// Repeat returns count copies of s.
func Repeat(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("type error: strings.repeat() takes exactly 2 arguments (%d given)", len(args))
	}
	s, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	count, err := object.AsInt(args[1])
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("value error: strings.repeat() count must be non-negative (got %d)", count)
	}
	return object.NewString(strings.Repeat(s, int(count))), nil
}

// ReplaceAll replaces every non-overlapping instance of old with new.
func ReplaceAll(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("type error: strings.replace_all() takes exactly 3 arguments (%d given)", len(args))
	}
	s, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	oldStr, err := object.AsString(args[1])
	if err != nil {
		return nil, err
	}
	newStr, err := object.AsString(args[2])
	if err != nil {
		return nil, err
	}
	return object.NewString(strings.ReplaceAll(s, oldStr, newStr)), nil
}

func Module() *object.Module {
	return object.NewBuiltinsModule("strings", map[string]object.Object{
		"compare": object.NewBuiltin("compare", twoStrings("compare", func(a, b string) object.Object {
			return object.NewInt(int64(strings.Compare(a, b)))
		})),
		"contains": object.NewBuiltin("contains", twoStrings("contains", func(s, substr string) object.Object {
			return object.NewBool(strings.Contains(s, substr))
		})),
		"count": object.NewBuiltin("count", twoStrings("count", func(s, substr string) object.Object {
			return object.NewInt(int64(strings.Count(s, substr)))
		})),
		"fields": object.NewBuiltin("fields", oneString("fields", func(s string) object.Object {
			return object.NewStringList(strings.Fields(s))
		})),
		"has_prefix": object.NewBuiltin("has_prefix", twoStrings("has_prefix", func(s, prefix string) object.Object {
			return object.NewBool(strings.HasPrefix(s, prefix))
		})),
		"has_suffix": object.NewBuiltin("has_suffix", twoStrings("has_suffix", func(s, suffix string) object.Object {
			return object.NewBool(strings.HasSuffix(s, suffix))
		})),
		"index":       object.NewBuiltin("index", Index),
		"join":        object.NewBuiltin("join", Join),
		"last_index":  object.NewBuiltin("last_index", LastIndex),
		"repeat":      object.NewBuiltin("repeat", Repeat),
		"replace_all": object.NewBuiltin("replace_all", ReplaceAll),
		"split": object.NewBuiltin("split", twoStrings("split", func(s, sep string) object.Object {
			return object.NewStringList(strings.Split(s, sep))
		})),
		"to_lower": object.NewBuiltin("to_lower", oneString("to_lower", func(s string) object.Object {
			return object.NewString(strings.ToLower(s))
		})),
		"to_upper": object.NewBuiltin("to_upper", oneString("to_upper", func(s string) object.Object {
			return object.NewString(strings.ToUpper(s))
		})),
		"trim": object.NewBuiltin("trim", twoStrings("trim", func(s, cutset string) object.Object {
			return object.NewString(strings.Trim(s, cutset))
		})),
		"trim_prefix": object.NewBuiltin("trim_prefix", twoStrings("trim_prefix", func(s, prefix string) object.Object {
			return object.NewString(strings.TrimPrefix(s, prefix))
		})),
		"trim_space": object.NewBuiltin("trim_space", oneString("trim_space", func(s string) object.Object {
			return object.NewString(strings.TrimSpace(s))
		})),
		"trim_suffix": object.NewBuiltin("trim_suffix", twoStrings("trim_suffix", func(s, suffix string) object.Object {
			return object.NewString(strings.TrimSuffix(s, suffix))
		})),
	})
}
