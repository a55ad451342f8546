package fmt

import (
	"context"
	"fmt"
	"os"

	"github.com/marmoset-lang/marmoset/object"
)

func formatArgs(name string, args []object.Object) (string, error) {
	if len(args) < 1 {
		return "", fmt.Errorf("type error: fmt.%s() takes 1 or more arguments (%d given)", name, len(args))
	}
	format, err := object.AsString(args[0])
	if err != nil {
		return "", err
	}
	var values []any
	for _, arg := range args[1:] {
		values = append(values, object.PrintableValue(arg))
	}
	return fmt.Sprintf(format, values...), nil
}

// Sprintf formats according to the format string and returns the result.
func Sprintf(ctx context.Context, args ...object.Object) (object.Object, error) {
	s, err := formatArgs("sprintf", args)
	if err != nil {
		return nil, err
	}
	return object.NewString(s), nil
}

// Printf formats and writes to standard output.
func Printf(ctx context.Context, args ...object.Object) (object.Object, error) {
	s, err := formatArgs("printf", args)
	if err != nil {
		return nil, err
	}
	fmt.Fprint(os.Stdout, s)
	return object.Nil, nil
}

// Errorf formats and returns an error value, for use as an Err payload.
func Errorf(ctx context.Context, args ...object.Object) (object.Object, error) {
	s, err := formatArgs("errorf", args)
	if err != nil {
		return nil, err
	}
	return object.NewError(fmt.Errorf("%s", s)), nil
}

func Module() *object.Module {
	return object.NewBuiltinsModule("fmt", map[string]object.Object{
		"errorf":  object.NewBuiltin("errorf", Errorf),
		"printf":  object.NewBuiltin("printf", Printf),
		"sprintf": object.NewBuiltin("sprintf", Sprintf),
	})
}
