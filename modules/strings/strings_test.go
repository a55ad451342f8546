package strings

import (
	"context"
	"testing"

	"github.com/marmoset-lang/marmoset/object"
	"github.com/stretchr/testify/require"
)

func callAttr(t *testing.T, name string, args ...object.Object) (object.Object, error) {
	t.Helper()
	fn, ok := Module().GetAttr(name)
	require.True(t, ok, "missing %s", name)
	return fn.(*object.Builtin).Call(context.Background(), args...)
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		fn   string
		a, b string
		want bool
	}{
		{"contains", "hello world", "lo w", true},
		{"contains", "hello", "xyz", false},
		{"has_prefix", "marmoset", "marm", true},
		{"has_prefix", "marmoset", "set", false},
		{"has_suffix", "marmoset", "set", true},
	}
	for _, tt := range tests {
		result, err := callAttr(t, tt.fn, object.NewString(tt.a), object.NewString(tt.b))
		require.NoError(t, err)
		require.True(t, object.Equals(result, object.NewBool(tt.want)),
			"%s(%q, %q)", tt.fn, tt.a, tt.b)
	}
}

func TestIndexReturnsOption(t *testing.T) {
	result, err := callAttr(t, "index", object.NewString("comprehend"), object.NewString("pre"))
	require.NoError(t, err)
	require.True(t, object.Equals(result, object.NewSome(object.NewInt(3))))

	result, err = callAttr(t, "index", object.NewString("comprehend"), object.NewString("xyz"))
	require.NoError(t, err)
	require.True(t, object.Equals(result, object.None))

	result, err = callAttr(t, "last_index", object.NewString("abcabc"), object.NewString("bc"))
	require.NoError(t, err)
	require.True(t, object.Equals(result, object.NewSome(object.NewInt(4))))
}

func TestSplitJoin(t *testing.T) {
	parts, err := callAttr(t, "split", object.NewString("a,b,c"), object.NewString(","))
	require.NoError(t, err)
	require.True(t, object.Equals(parts, object.NewStringList([]string{"a", "b", "c"})))

	joined, err := callAttr(t, "join", parts, object.NewString("-"))
	require.NoError(t, err)
	require.True(t, object.Equals(joined, object.NewString("a-b-c")))
}

func TestTrimFamily(t *testing.T) {
	result, err := callAttr(t, "trim_space", object.NewString("  hi \n"))
	require.NoError(t, err)
	require.True(t, object.Equals(result, object.NewString("hi")))

	result, err = callAttr(t, "trim_prefix", object.NewString("filename.marm"), object.NewString("filename"))
	require.NoError(t, err)
	require.True(t, object.Equals(result, object.NewString(".marm")))

	result, err = callAttr(t, "trim", object.NewString("xxhixx"), object.NewString("x"))
	require.NoError(t, err)
	require.True(t, object.Equals(result, object.NewString("hi")))
}

func TestRepeat(t *testing.T) {
	result, err := Repeat(context.Background(), object.NewString("ab"), object.NewInt(3))
	require.NoError(t, err)
	require.True(t, object.Equals(result, object.NewString("ababab")))

	_, err = Repeat(context.Background(), object.NewString("ab"), object.NewInt(-1))
	require.Error(t, err)
}

func TestCaseMapping(t *testing.T) {
	result, err := callAttr(t, "to_upper", object.NewString("abc"))
	require.NoError(t, err)
	require.True(t, object.Equals(result, object.NewString("ABC")))

	result, err = callAttr(t, "to_lower", object.NewString("AbC"))
	require.NoError(t, err)
	require.True(t, object.Equals(result, object.NewString("abc")))
}
