package time

import (
	"context"
	"fmt"
	"time"

	"github.com/marmoset-lang/marmoset/object"
)

func Now(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("type error: time.now() takes no arguments (%d given)", len(args))
	}
	return object.NewTime(time.Now()), nil
}

func Unix(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("type error: time.unix() takes exactly 2 arguments (%d given)", len(args))
	}
	sec, err := object.AsInt(args[0])
	if err != nil {
		return nil, err
	}
	nsec, err := object.AsInt(args[1])
	if err != nil {
		return nil, err
	}
	return object.NewTime(time.Unix(sec, nsec)), nil
}

// Parse returns Ok(time) or Err(error), so malformed input can be
// handled with a result comprehension.
func Parse(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("type error: time.parse() takes exactly 2 arguments (%d given)", len(args))
	}
	layout, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	value, err := object.AsString(args[1])
	if err != nil {
		return nil, err
	}
	t, parseErr := time.Parse(layout, value)
	if parseErr != nil {
		return object.NewErrResult(object.NewError(parseErr)), nil
	}
	return object.NewOk(object.NewTime(t)), nil
}

// Since returns the seconds elapsed since t.
func Since(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type error: time.since() takes exactly 1 argument (%d given)", len(args))
	}
	t, err := object.AsTime(args[0])
	if err != nil {
		return nil, err
	}
	return object.NewFloat(time.Since(t).Seconds()), nil
}

// Sleep pauses for the given number of seconds, or until the context
// is cancelled.
func Sleep(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type error: time.sleep() takes exactly 1 argument (%d given)", len(args))
	}
	seconds, err := object.AsFloat(args[0])
	if err != nil {
		return nil, err
	}
	timer := time.NewTimer(time.Duration(seconds * float64(time.Second)))
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return object.Nil, nil
}

func Module() *object.Module {
	return object.NewBuiltinsModule("time", map[string]object.Object{
		"now":         object.NewBuiltin("now", Now),
		"parse":       object.NewBuiltin("parse", Parse),
		"since":       object.NewBuiltin("since", Since),
		"sleep":       object.NewBuiltin("sleep", Sleep),
		"unix":        object.NewBuiltin("unix", Unix),
		"ANSIC":       object.NewString(time.ANSIC),
		"Kitchen":     object.NewString(time.Kitchen),
		"RFC1123":     object.NewString(time.RFC1123),
		"RFC3339":     object.NewString(time.RFC3339),
		"RFC3339Nano": object.NewString(time.RFC3339Nano),
		"RFC822":      object.NewString(time.RFC822),
		"Stamp":       object.NewString(time.Stamp),
		"UnixDate":    object.NewString(time.UnixDate),
	})
}
