package marmoset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInterpreterPersistence(t *testing.T) {
	ctx := context.Background()
	interp := NewInterpreter(WithGlobals(Builtins()))

	_, err := interp.Eval(ctx, "let x = 10")
	require.NoError(t, err)

	result, err := interp.Eval(ctx, "x * 2")
	require.NoError(t, err)
	require.Equal(t, int64(20), result)
}

func TestInterpreterMutableState(t *testing.T) {
	ctx := context.Background()
	interp := NewInterpreter()

	_, err := interp.Eval(ctx, "let mut count = 0")
	require.NoError(t, err)
	_, err = interp.Eval(ctx, "count += 5")
	require.NoError(t, err)

	value, err := interp.Get("count")
	require.NoError(t, err)
	require.Equal(t, int64(5), value)
}

func TestInterpreterCall(t *testing.T) {
	ctx := context.Background()
	interp := NewInterpreter()

	_, err := interp.Eval(ctx, "func double(x) { x * 2 }")
	require.NoError(t, err)

	result, err := interp.Call(ctx, "double", 21)
	require.NoError(t, err)
	require.Equal(t, int64(42), result)
}

func TestInterpreterCallErrors(t *testing.T) {
	ctx := context.Background()
	interp := NewInterpreter()

	_, err := interp.Call(ctx, "nothing")
	require.Error(t, err)

	_, err = interp.Eval(ctx, "let n = 1")
	require.NoError(t, err)
	_, err = interp.Call(ctx, "n")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a function")
}

func TestInterpreterComprehension(t *testing.T) {
	ctx := context.Background()
	interp := NewInterpreter(WithGlobals(Builtins()))

	_, err := interp.Eval(ctx, "let xs = [1, 2, 3, 4]")
	require.NoError(t, err)

	result, err := interp.Eval(ctx, `
		list(iter {
			let x <- xs;
			if x % 2 == 0;
			x * 10
		})
	`)
	require.NoError(t, err)
	require.Equal(t, []any{int64(20), int64(40)}, result)
}

func TestInterpreterGetObject(t *testing.T) {
	ctx := context.Background()
	interp := NewInterpreter()

	_, err := interp.Eval(ctx, "let greeting = \"hi\"")
	require.NoError(t, err)

	obj, err := interp.GetObject("greeting")
	require.NoError(t, err)
	require.Equal(t, `"hi"`, obj.Inspect())

	_, err = interp.GetObject("nope")
	require.Error(t, err)
}

func TestInterpreterGlobalNames(t *testing.T) {
	ctx := context.Background()
	interp := NewInterpreter(WithGlobals(Builtins()))

	_, err := interp.Eval(ctx, "let my_own_name = 1")
	require.NoError(t, err)

	names := interp.GlobalNames()
	require.Contains(t, names, "my_own_name")
	require.Contains(t, names, "len")
}

func TestInterpreterStructsPersist(t *testing.T) {
	ctx := context.Background()
	interp := NewInterpreter(WithGlobals(Builtins()))

	_, err := interp.Eval(ctx, "struct Point { x, y }")
	require.NoError(t, err)

	result, err := interp.Eval(ctx, "let p = Point{x: 3, y: 4}; p.x + p.y")
	require.NoError(t, err)
	require.Equal(t, int64(7), result)
}
