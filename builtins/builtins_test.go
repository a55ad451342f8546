package builtins

import (
	"context"
	"testing"

	"github.com/marmoset-lang/marmoset/object"
	"github.com/stretchr/testify/require"
)

func assertObjectEqual(t *testing.T, got, want object.Object) {
	t.Helper()
	require.True(t, object.Equals(got, want), "got %s, want %s", got.Inspect(), want.Inspect())
}

func TestBuiltins(t *testing.T) {
	m := Builtins()
	require.Greater(t, len(m), 20)
	// The expansion vocabulary must always be present.
	for _, name := range []string{"Some", "None", "Ok", "Err", "iter"} {
		require.Contains(t, m, name)
	}
	require.Equal(t, object.None, m["None"])
}

func TestWrapperConstructors(t *testing.T) {
	ctx := context.Background()

	some, err := Some(ctx, object.NewInt(42))
	require.NoError(t, err)
	assertObjectEqual(t, some, object.NewSome(object.NewInt(42)))

	ok, err := Ok(ctx, object.NewString("v"))
	require.NoError(t, err)
	assertObjectEqual(t, ok, object.NewOk(object.NewString("v")))

	errResult, err := Err(ctx, object.NewString("boom"))
	require.NoError(t, err)
	assertObjectEqual(t, errResult, object.NewErrResult(object.NewString("boom")))

	_, err = Some(ctx)
	require.Error(t, err)
	_, err = Ok(ctx, object.NewInt(1), object.NewInt(2))
	require.Error(t, err)
}

func TestIterBuiltin(t *testing.T) {
	ctx := context.Background()

	seq, err := Iter(ctx, object.NewRange(0, 3))
	require.NoError(t, err)
	list, err := seq.(*object.Seq).ToList(ctx)
	require.NoError(t, err)
	assertObjectEqual(t, list, object.NewList([]object.Object{
		object.NewInt(0), object.NewInt(1), object.NewInt(2),
	}))

	// Options iterate as zero-or-one element sequences.
	seq, err = Iter(ctx, object.NewSome(object.NewInt(7)))
	require.NoError(t, err)
	list, err = seq.(*object.Seq).ToList(ctx)
	require.NoError(t, err)
	assertObjectEqual(t, list, object.NewList([]object.Object{object.NewInt(7)}))

	seq, err = Iter(ctx, object.None)
	require.NoError(t, err)
	list, err = seq.(*object.Seq).ToList(ctx)
	require.NoError(t, err)
	assertObjectEqual(t, list, object.NewList(nil))

	_, err = Iter(ctx, object.NewInt(3))
	require.Error(t, err)
}

func TestLen(t *testing.T) {
	ctx := context.Background()
	result, err := Len(ctx, object.NewList([]object.Object{object.NewInt(1), object.NewInt(2)}))
	require.NoError(t, err)
	assertObjectEqual(t, result, object.NewInt(2))

	result, err = Len(ctx, object.NewString("abc"))
	require.NoError(t, err)
	assertObjectEqual(t, result, object.NewInt(3))

	_, err = Len(ctx, object.NewInt(3))
	require.Error(t, err)
}

func TestSorted(t *testing.T) {
	ctx := context.Background()
	result, err := Sorted(ctx, object.NewList([]object.Object{
		object.NewInt(3), object.NewInt(1), object.NewInt(2),
	}))
	require.NoError(t, err)
	assertObjectEqual(t, result, object.NewList([]object.Object{
		object.NewInt(1), object.NewInt(2), object.NewInt(3),
	}))
}

func TestReversed(t *testing.T) {
	ctx := context.Background()
	result, err := Reversed(ctx, object.NewList([]object.Object{
		object.NewInt(1), object.NewInt(2), object.NewInt(3),
	}))
	require.NoError(t, err)
	assertObjectEqual(t, result, object.NewList([]object.Object{
		object.NewInt(3), object.NewInt(2), object.NewInt(1),
	}))
}

func TestAnyAll(t *testing.T) {
	ctx := context.Background()

	result, err := Any(ctx, object.NewList([]object.Object{object.False, object.NewInt(0)}))
	require.NoError(t, err)
	assertObjectEqual(t, result, object.False)

	result, err = Any(ctx, object.NewList([]object.Object{object.False, object.NewInt(1)}))
	require.NoError(t, err)
	assertObjectEqual(t, result, object.True)

	result, err = All(ctx, object.NewList([]object.Object{object.True, object.NewInt(1)}))
	require.NoError(t, err)
	assertObjectEqual(t, result, object.True)

	result, err = All(ctx, object.NewList([]object.Object{object.True, object.NewInt(0)}))
	require.NoError(t, err)
	assertObjectEqual(t, result, object.False)
}

func TestConversions(t *testing.T) {
	ctx := context.Background()

	result, err := Int(ctx, object.NewString("42"))
	require.NoError(t, err)
	assertObjectEqual(t, result, object.NewInt(42))

	_, err = Int(ctx, object.NewString("forty-two"))
	require.Error(t, err)

	result, err = Float(ctx, object.NewInt(2))
	require.NoError(t, err)
	assertObjectEqual(t, result, object.NewFloat(2))

	result, err = Bool(ctx, object.NewString(""))
	require.NoError(t, err)
	assertObjectEqual(t, result, object.False)

	result, err = String(ctx, object.NewInt(42))
	require.NoError(t, err)
	assertObjectEqual(t, result, object.NewString("42"))

	result, err = Type(ctx, object.NewSome(object.NewInt(1)))
	require.NoError(t, err)
	assertObjectEqual(t, result, object.NewString("option"))
}

func TestSprintf(t *testing.T) {
	ctx := context.Background()
	result, err := Sprintf(ctx, object.NewString("%d-%s"), object.NewInt(7), object.NewString("x"))
	require.NoError(t, err)
	assertObjectEqual(t, result, object.NewString("7-x"))
}

func TestAssert(t *testing.T) {
	ctx := context.Background()

	_, err := Assert(ctx, object.True)
	require.NoError(t, err)

	_, err = Assert(ctx, object.False)
	require.Error(t, err)
	require.Equal(t, "assertion failed", err.Error())

	_, err = Assert(ctx, object.False, object.NewString("x must be positive"))
	require.Error(t, err)
	require.Equal(t, "x must be positive", err.Error())
}

func TestKeys(t *testing.T) {
	ctx := context.Background()
	result, err := Keys(ctx, object.NewMap(map[string]object.Object{
		"b": object.NewInt(2),
		"a": object.NewInt(1),
	}))
	require.NoError(t, err)
	assertObjectEqual(t, result, object.NewList([]object.Object{
		object.NewString("a"), object.NewString("b"),
	}))
}

func TestDocsCoverBuiltins(t *testing.T) {
	documented := map[string]bool{}
	for _, spec := range Docs() {
		documented[spec.Name] = true
	}
	for name := range Builtins() {
		if name == "None" {
			continue // a value, not a function
		}
		require.True(t, documented[name], "builtin %q has no documentation", name)
	}
}
