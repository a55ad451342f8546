package math

import (
	"context"
	"math"
	"testing"

	"github.com/marmoset-lang/marmoset/object"
	"github.com/stretchr/testify/require"
)

func requireEqualObjects(t *testing.T, got, want object.Object) {
	t.Helper()
	require.True(t, object.Equals(got, want),
		"got %s, want %s", got.Inspect(), want.Inspect())
}

func TestAbs(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		input object.Object
		want  object.Object
	}{
		{"positive float", object.NewFloat(3.5), object.NewFloat(3.5)},
		{"negative float", object.NewFloat(-3.5), object.NewFloat(3.5)},
		{"positive int", object.NewInt(5), object.NewInt(5)},
		{"negative int", object.NewInt(-5), object.NewInt(5)},
		{"zero int", object.NewInt(0), object.NewInt(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Abs(ctx, tt.input)
			require.NoError(t, err)
			requireEqualObjects(t, result, tt.want)
		})
	}
}

func TestAbsErrors(t *testing.T) {
	ctx := context.Background()
	_, err := Abs(ctx)
	require.Error(t, err)

	_, err = Abs(ctx, object.NewString("hello"))
	require.Error(t, err)
}

func TestMinMax(t *testing.T) {
	ctx := context.Background()

	result, err := Min(ctx, object.NewInt(3), object.NewInt(1), object.NewInt(2))
	require.NoError(t, err)
	requireEqualObjects(t, result, object.NewInt(1))

	result, err = Max(ctx, object.NewList([]object.Object{
		object.NewInt(3), object.NewFloat(7.5), object.NewInt(2),
	}))
	require.NoError(t, err)
	requireEqualObjects(t, result, object.NewFloat(7.5))

	_, err = Min(ctx, object.NewList(nil))
	require.Error(t, err)
}

func TestSum(t *testing.T) {
	ctx := context.Background()

	result, err := Sum(ctx, object.NewList([]object.Object{
		object.NewInt(1), object.NewInt(2), object.NewInt(3),
	}))
	require.NoError(t, err)
	requireEqualObjects(t, result, object.NewInt(6))

	result, err = Sum(ctx, object.NewList([]object.Object{
		object.NewInt(1), object.NewFloat(0.5),
	}))
	require.NoError(t, err)
	requireEqualObjects(t, result, object.NewFloat(1.5))

	// Any iterable works, including ranges
	result, err = Sum(ctx, object.NewRange(0, 4))
	require.NoError(t, err)
	requireEqualObjects(t, result, object.NewInt(6))
}

func TestFloatHelpers(t *testing.T) {
	ctx := context.Background()
	mod := Module()

	sqrt, ok := mod.GetAttr("sqrt")
	require.True(t, ok)
	result, err := sqrt.(*object.Builtin).Call(ctx, object.NewInt(9))
	require.NoError(t, err)
	requireEqualObjects(t, result, object.NewFloat(3))

	pow, ok := mod.GetAttr("pow")
	require.True(t, ok)
	result, err = pow.(*object.Builtin).Call(ctx, object.NewInt(2), object.NewInt(10))
	require.NoError(t, err)
	requireEqualObjects(t, result, object.NewFloat(1024))
}

func TestInf(t *testing.T) {
	ctx := context.Background()

	result, err := Inf(ctx)
	require.NoError(t, err)
	require.True(t, math.IsInf(result.(*object.Float).Value(), 1))

	result, err = Inf(ctx, object.NewInt(-1))
	require.NoError(t, err)
	require.True(t, math.IsInf(result.(*object.Float).Value(), -1))

	result, err = IsInf(ctx, object.NewFloat(1.0))
	require.NoError(t, err)
	requireEqualObjects(t, result, object.False)
}

func TestModuleContents(t *testing.T) {
	mod := Module()
	for _, name := range []string{"abs", "sqrt", "pow", "PI", "E", "min", "max", "sum"} {
		_, ok := mod.GetAttr(name)
		require.True(t, ok, "missing %s", name)
	}
}
