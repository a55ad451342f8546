package regexp

import (
	"context"
	"fmt"
	"regexp"

	"github.com/marmoset-lang/marmoset/object"
)

// Compile returns Ok(regexp) for a valid pattern and Err(error) for an
// invalid one.
func Compile(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type error: regexp.compile() takes exactly 1 argument (%d given)", len(args))
	}
	pattern, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	r, compileErr := regexp.Compile(pattern)
	if compileErr != nil {
		return object.NewErrResult(object.NewError(compileErr)), nil
	}
	return object.NewOk(NewRegexp(r)), nil
}

// Match reports whether the string contains a match of the pattern.
func Match(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("type error: regexp.match() takes exactly 2 arguments (%d given)", len(args))
	}
	pattern, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	s, err := object.AsString(args[1])
	if err != nil {
		return nil, err
	}
	matched, matchErr := regexp.MatchString(pattern, s)
	if matchErr != nil {
		return nil, matchErr
	}
	return object.NewBool(matched), nil
}

func Module() *object.Module {
	return object.NewBuiltinsModule("regexp", map[string]object.Object{
		"compile": object.NewBuiltin("compile", Compile),
		"match":   object.NewBuiltin("match", Match),
	}, Compile)
}
