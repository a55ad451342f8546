// Package builtins defines a default set of built-in functions.
//
// Besides the usual conversion and container helpers, this includes the
// wrapper constructors Some, Ok, and Err that expanded comprehensions
// call for their success and failure values, and the iter builtin that
// adapts any iterable to a lazy sequence.
package builtins

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/marmoset-lang/marmoset/object"
)

// Some wraps a value as a present option.
func Some(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type error: Some() takes exactly 1 argument (%d given)", len(args))
	}
	return object.NewSome(args[0]), nil
}

// Ok wraps a value as a successful result.
func Ok(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type error: Ok() takes exactly 1 argument (%d given)", len(args))
	}
	return object.NewOk(args[0]), nil
}

// Err wraps a value as a failed result.
func Err(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type error: Err() takes exactly 1 argument (%d given)", len(args))
	}
	return object.NewErrResult(args[0]), nil
}

// Iter adapts an iterable object to a lazy sequence.
func Iter(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type error: iter() takes exactly 1 argument (%d given)", len(args))
	}
	return object.Iterate(args[0])
}

func Len(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type error: len() takes exactly 1 argument (%d given)", len(args))
	}
	container, ok := args[0].(object.Container)
	if !ok {
		return nil, fmt.Errorf("type error: len() unsupported argument (%s given)", args[0].Type())
	}
	return container.Len(), nil
}

func Sprintf(ctx context.Context, args ...object.Object) (object.Object, error) {
	numArgs := len(args)
	if numArgs < 1 {
		return nil, fmt.Errorf("type error: sprintf() takes 1 or more arguments (%d given)", numArgs)
	}
	format, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	var values []any
	for _, arg := range args[1:] {
		values = append(values, object.PrintableValue(arg))
	}
	return object.NewString(fmt.Sprintf(format, values...)), nil
}

func Print(ctx context.Context, args ...object.Object) (object.Object, error) {
	return printTo(os.Stdout, "", args...)
}

func Println(ctx context.Context, args ...object.Object) (object.Object, error) {
	return printTo(os.Stdout, "\n", args...)
}

func printTo(w io.Writer, suffix string, args ...object.Object) (object.Object, error) {
	for i, arg := range args {
		if i > 0 {
			fmt.Fprint(w, " ")
		}
		fmt.Fprintf(w, "%v", object.PrintableValue(arg))
	}
	fmt.Fprint(w, suffix)
	return object.Nil, nil
}

func Error(ctx context.Context, args ...object.Object) (object.Object, error) {
	numArgs := len(args)
	if numArgs < 1 {
		return nil, fmt.Errorf("type error: error() takes 1 or more arguments (%d given)", numArgs)
	}
	format, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	var values []any
	for _, arg := range args[1:] {
		values = append(values, object.PrintableValue(arg))
	}
	return object.NewError(fmt.Errorf(format, values...)), nil
}

func List(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) == 0 {
		return object.NewList(nil), nil
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("type error: list() takes 0 or 1 arguments (%d given)", len(args))
	}
	seq, err := object.Iterate(args[0])
	if err != nil {
		return nil, err
	}
	return seq.ToList(ctx)
}

func String(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) == 0 {
		return object.NewString(""), nil
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("type error: string() takes 0 or 1 arguments (%d given)", len(args))
	}
	if s, ok := args[0].(*object.String); ok {
		return s, nil
	}
	return object.NewString(fmt.Sprintf("%v", object.PrintableValue(args[0]))), nil
}

func Type(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type error: type() takes exactly 1 argument (%d given)", len(args))
	}
	return object.NewString(string(args[0].Type())), nil
}

func Assert(ctx context.Context, args ...object.Object) (object.Object, error) {
	numArgs := len(args)
	if numArgs < 1 || numArgs > 2 {
		return nil, fmt.Errorf("type error: assert() takes 1 or 2 arguments (%d given)", numArgs)
	}
	if !args[0].IsTruthy() {
		if numArgs == 2 {
			return nil, fmt.Errorf("%v", object.PrintableValue(args[1]))
		}
		return nil, fmt.Errorf("assertion failed")
	}
	return object.Nil, nil
}

func Any(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type error: any() takes exactly 1 argument (%d given)", len(args))
	}
	seq, err := object.Iterate(args[0])
	if err != nil {
		return nil, err
	}
	found := false
	if err := seq.Each(ctx, func(value object.Object) bool {
		if value.IsTruthy() {
			found = true
			return false
		}
		return true
	}); err != nil {
		return nil, err
	}
	return object.NewBool(found), nil
}

func All(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type error: all() takes exactly 1 argument (%d given)", len(args))
	}
	seq, err := object.Iterate(args[0])
	if err != nil {
		return nil, err
	}
	result := true
	if err := seq.Each(ctx, func(value object.Object) bool {
		if !value.IsTruthy() {
			result = false
			return false
		}
		return true
	}); err != nil {
		return nil, err
	}
	return object.NewBool(result), nil
}

func Bool(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) == 0 {
		return object.False, nil
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("type error: bool() takes 0 or 1 arguments (%d given)", len(args))
	}
	return object.NewBool(args[0].IsTruthy()), nil
}

func Sorted(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type error: sorted() takes exactly 1 argument (%d given)", len(args))
	}
	seq, err := object.Iterate(args[0])
	if err != nil {
		return nil, err
	}
	listObj, err := seq.ToList(ctx)
	if err != nil {
		return nil, err
	}
	items := listObj.(*object.List).Value()
	if sortErr := object.Sort(items); sortErr != nil {
		return nil, sortErr.Value()
	}
	return object.NewList(items), nil
}

func Reversed(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type error: reversed() takes exactly 1 argument (%d given)", len(args))
	}
	seq, err := object.Iterate(args[0])
	if err != nil {
		return nil, err
	}
	listObj, err := seq.ToList(ctx)
	if err != nil {
		return nil, err
	}
	items := listObj.(*object.List).Value()
	reversed := make([]object.Object, len(items))
	for i, item := range items {
		reversed[len(items)-1-i] = item
	}
	return object.NewList(reversed), nil
}

func GetAttr(ctx context.Context, args ...object.Object) (object.Object, error) {
	numArgs := len(args)
	if numArgs < 2 || numArgs > 3 {
		return nil, fmt.Errorf("type error: getattr() takes 2 or 3 arguments (%d given)", numArgs)
	}
	name, err := object.AsString(args[1])
	if err != nil {
		return nil, err
	}
	if attr, found := args[0].GetAttr(name); found {
		return attr, nil
	}
	if numArgs == 3 {
		return args[2], nil
	}
	return nil, fmt.Errorf("type error: %s object has no attribute %q", args[0].Type(), name)
}

func Call(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("type error: call() takes 1 or more arguments (%d given)", len(args))
	}
	fn, ok := args[0].(object.Callable)
	if !ok {
		return nil, fmt.Errorf("type error: call() unsupported argument (%s given)", args[0].Type())
	}
	return fn.Call(ctx, args[1:]...)
}

func Keys(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type error: keys() takes exactly 1 argument (%d given)", len(args))
	}
	enumerable, ok := args[0].(object.Enumerable)
	if !ok {
		return nil, fmt.Errorf("type error: keys() unsupported argument (%s given)", args[0].Type())
	}
	var keys []object.Object
	if err := enumerable.Enumerate(ctx, func(key, value object.Object) bool {
		keys = append(keys, key)
		return true
	}); err != nil {
		return nil, err
	}
	return object.NewList(keys), nil
}

func Int(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) == 0 {
		return object.NewInt(0), nil
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("type error: int() takes 0 or 1 arguments (%d given)", len(args))
	}
	switch obj := args[0].(type) {
	case *object.Int:
		return obj, nil
	case *object.Float:
		return object.NewInt(int64(obj.Value())), nil
	case *object.String:
		if i, err := strconv.ParseInt(obj.Value(), 0, 64); err == nil {
			return object.NewInt(i), nil
		}
		return nil, fmt.Errorf("value error: invalid literal for int(): %q", obj.Value())
	case *object.Bool:
		if obj.Value() {
			return object.NewInt(1), nil
		}
		return object.NewInt(0), nil
	}
	return nil, fmt.Errorf("type error: int() unsupported argument (%s given)", args[0].Type())
}

func Float(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) == 0 {
		return object.NewFloat(0), nil
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("type error: float() takes 0 or 1 arguments (%d given)", len(args))
	}
	switch obj := args[0].(type) {
	case *object.Int:
		return object.NewFloat(float64(obj.Value())), nil
	case *object.Float:
		return obj, nil
	case *object.String:
		if f, err := strconv.ParseFloat(obj.Value(), 64); err == nil {
			return object.NewFloat(f), nil
		}
		return nil, fmt.Errorf("value error: invalid literal for float(): %q", obj.Value())
	}
	return nil, fmt.Errorf("type error: float() unsupported argument (%s given)", args[0].Type())
}

// SortedKeys returns sorted map keys, for stable iteration in modules.
func SortedKeys(m map[string]object.Object) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Builtins returns the default builtins, including the wrapper
// constructors Some, Ok, and Err and the None value.
func Builtins() map[string]object.Object {
	return map[string]object.Object{
		"Some":     object.NewBuiltin("Some", Some),
		"None":     object.None,
		"Ok":       object.NewBuiltin("Ok", Ok),
		"Err":      object.NewBuiltin("Err", Err),
		"all":      object.NewBuiltin("all", All),
		"any":      object.NewBuiltin("any", Any),
		"assert":   object.NewBuiltin("assert", Assert),
		"bool":     object.NewBuiltin("bool", Bool),
		"call":     object.NewBuiltin("call", Call),
		"error":    object.NewBuiltin("error", Error),
		"float":    object.NewBuiltin("float", Float),
		"getattr":  object.NewBuiltin("getattr", GetAttr),
		"int":      object.NewBuiltin("int", Int),
		"iter":     object.NewBuiltin("iter", Iter),
		"keys":     object.NewBuiltin("keys", Keys),
		"len":      object.NewBuiltin("len", Len),
		"list":     object.NewBuiltin("list", List),
		"print":    object.NewBuiltin("print", Print),
		"println":  object.NewBuiltin("println", Println),
		"reversed": object.NewBuiltin("reversed", Reversed),
		"sorted":   object.NewBuiltin("sorted", Sorted),
		"sprintf":  object.NewBuiltin("sprintf", Sprintf),
		"string":   object.NewBuiltin("string", String),
		"type":     object.NewBuiltin("type", Type),
	}
}
