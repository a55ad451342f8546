package uuid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marmoset-lang/marmoset/object"
)

func TestV4(t *testing.T) {
	ctx := context.Background()
	a, err := V4(ctx)
	require.NoError(t, err)
	b, err := V4(ctx)
	require.NoError(t, err)
	require.Len(t, a.(*object.String).Value(), 36)
	require.NotEqual(t, a.(*object.String).Value(), b.(*object.String).Value())

	_, err = V4(ctx, object.NewInt(1))
	require.EqualError(t, err, "type error: uuid.v4() takes no arguments (1 given)")
}

func TestV5(t *testing.T) {
	ctx := context.Background()
	ns, found := Module().GetAttr("NamespaceDNS")
	require.True(t, found)
	a, err := V5(ctx, ns, object.NewString("example.com"))
	require.NoError(t, err)
	b, err := V5(ctx, ns, object.NewString("example.com"))
	require.NoError(t, err)
	// v5 is deterministic for a given namespace and name
	require.Equal(t, a, b)

	_, err = V5(ctx, object.NewString("not-a-uuid"), object.NewString("x"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "namespace is not a UUID")
}

func TestParse(t *testing.T) {
	ctx := context.Background()
	result, err := Parse(ctx, object.NewString("6ba7b810-9dad-11d1-80b4-00c04fd430c8"))
	require.NoError(t, err)
	ok, isResult := result.(*object.Result)
	require.True(t, isResult)
	require.True(t, ok.IsOk())
	require.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		ok.Value().(*object.String).Value())

	result, err = Parse(ctx, object.NewString("nope"))
	require.NoError(t, err)
	bad, isResult := result.(*object.Result)
	require.True(t, isResult)
	require.True(t, bad.IsErr())
}

func TestModuleContents(t *testing.T) {
	m := Module()
	for _, name := range []string{"NamespaceDNS", "NamespaceURL", "parse", "v4", "v5"} {
		_, found := m.GetAttr(name)
		require.True(t, found, name)
	}
}
