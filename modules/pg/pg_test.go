package pg

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marmoset-lang/marmoset/object"
)

func TestConnectBadURL(t *testing.T) {
	result, err := Connect(context.Background(), object.NewString("this is not a url"))
	require.NoError(t, err)
	bad, isResult := result.(*object.Result)
	require.True(t, isResult)
	require.True(t, bad.IsErr())
}

func TestConnectArgErrors(t *testing.T) {
	ctx := context.Background()
	_, err := Connect(ctx)
	require.EqualError(t, err, "type error: pg.connect() takes exactly 1 argument (0 given)")
	_, err = Connect(ctx, object.NewInt(1))
	require.Error(t, err)
}

func TestConnObject(t *testing.T) {
	conn := NewConn(nil)
	require.Equal(t, CONN, conn.Type())
	require.True(t, conn.IsTruthy())

	for _, name := range []string{"close", "exec", "query"} {
		_, found := conn.GetAttr(name)
		require.True(t, found, name)
	}
	_, found := conn.GetAttr("missing")
	require.False(t, found)

	require.Error(t, conn.SetAttr("x", object.Nil))
	_, err := conn.MarshalJSON()
	require.Error(t, err)
}

func TestGoValues(t *testing.T) {
	values := goValues([]object.Object{
		object.NewInt(1),
		object.NewString("a"),
		object.True,
	})
	require.Equal(t, []any{int64(1), "a", true}, values)
}
