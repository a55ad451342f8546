package filepath

import (
	"context"
	"testing"

	"github.com/marmoset-lang/marmoset/object"
	"github.com/stretchr/testify/require"
)

func callAttr(t *testing.T, name string, args ...object.Object) object.Object {
	t.Helper()
	fn, ok := Module().GetAttr(name)
	require.True(t, ok, "missing %s", name)
	result, err := fn.(*object.Builtin).Call(context.Background(), args...)
	require.NoError(t, err)
	return result
}

func TestPathParts(t *testing.T) {
	tests := []struct {
		fn, in, want string
	}{
		{"base", "/tmp/file.marm", "file.marm"},
		{"dir", "/tmp/file.marm", "/tmp"},
		{"ext", "/tmp/file.marm", ".marm"},
		{"clean", "/tmp//nested/../file", "/tmp/file"},
	}
	for _, tt := range tests {
		result := callAttr(t, tt.fn, object.NewString(tt.in))
		require.True(t, object.Equals(result, object.NewString(tt.want)),
			"%s(%q) = %s", tt.fn, tt.in, result.Inspect())
	}
}

func TestIsAbs(t *testing.T) {
	require.True(t, object.Equals(
		callAttr(t, "is_abs", object.NewString("/etc")), object.True))
	require.True(t, object.Equals(
		callAttr(t, "is_abs", object.NewString("etc")), object.False))
}

func TestJoin(t *testing.T) {
	result, err := Join(context.Background(),
		object.NewString("a"), object.NewString("b"), object.NewString("c.marm"))
	require.NoError(t, err)
	require.True(t, object.Equals(result, object.NewString("a/b/c.marm")))
}

func TestSplit(t *testing.T) {
	result, err := Split(context.Background(), object.NewString("/tmp/file.marm"))
	require.NoError(t, err)
	require.True(t, object.Equals(result, object.NewTuple([]object.Object{
		object.NewString("/tmp/"), object.NewString("file.marm"),
	})))
}

func TestRel(t *testing.T) {
	result, err := Rel(context.Background(),
		object.NewString("/a"), object.NewString("/a/b/c"))
	require.NoError(t, err)
	res := result.(*object.Result)
	require.True(t, res.IsOk())
	require.True(t, object.Equals(res.Value(), object.NewString("b/c")))

	result, err = Rel(context.Background(),
		object.NewString("a"), object.NewString("/a/b"))
	require.NoError(t, err)
	require.True(t, result.(*object.Result).IsErr())
}
