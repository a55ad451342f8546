package filepath

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/marmoset-lang/marmoset/object"
)

func onePath(name string, fn func(string) object.Object) object.BuiltinFunction {
	return func(ctx context.Context, args ...object.Object) (object.Object, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("type error: filepath.%s() takes exactly 1 argument (%d given)", name, len(args))
		}
		path, err := object.AsString(args[0])
		if err != nil {
			return nil, err
		}
		return fn(path), nil
	}
}

// Join joins any number of path elements into a single path.
func Join(ctx context.Context, args ...object.Object) (object.Object, error) {
	parts := make([]string, len(args))
	for i, arg := range args {
		part, err := object.AsString(arg)
		if err != nil {
			return nil, err
		}
		parts[i] = part
	}
	return object.NewString(filepath.Join(parts...)), nil
}

// Split splits a path into its directory and file components.
func Split(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type error: filepath.split() takes exactly 1 argument (%d given)", len(args))
	}
	path, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	dir, file := filepath.Split(path)
	return object.NewTuple([]object.Object{
		object.NewString(dir), object.NewString(file),
	}), nil
}

// Rel returns Ok(relative path) from base to target, or Err when one
// cannot be computed.
func Rel(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("type error: filepath.rel() takes exactly 2 arguments (%d given)", len(args))
	}
	base, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	target, err := object.AsString(args[1])
	if err != nil {
		return nil, err
	}
	rel, relErr := filepath.Rel(base, target)
	if relErr != nil {
		return object.NewErrResult(object.NewError(relErr)), nil
	}
	return object.NewOk(object.NewString(rel)), nil
}

func Module() *object.Module {
	return object.NewBuiltinsModule("filepath", map[string]object.Object{
		"base": object.NewBuiltin("base", onePath("base", func(p string) object.Object {
			return object.NewString(filepath.Base(p))
		})),
		"clean": object.NewBuiltin("clean", onePath("clean", func(p string) object.Object {
			return object.NewString(filepath.Clean(p))
		})),
		"dir": object.NewBuiltin("dir", onePath("dir", func(p string) object.Object {
			return object.NewString(filepath.Dir(p))
		})),
		"ext": object.NewBuiltin("ext", onePath("ext", func(p string) object.Object {
			return object.NewString(filepath.Ext(p))
		})),
		"is_abs": object.NewBuiltin("is_abs", onePath("is_abs", func(p string) object.Object {
			return object.NewBool(filepath.IsAbs(p))
		})),
		"join":  object.NewBuiltin("join", Join),
		"rel":   object.NewBuiltin("rel", Rel),
		"split": object.NewBuiltin("split", Split),
	})
}
