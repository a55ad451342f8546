package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/marmoset-lang/marmoset/object"
)

// Connect returns Ok(conn) for a PostgreSQL connection URL, or Err when
// the URL is malformed or the server is unreachable.
func Connect(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type error: pg.connect() takes exactly 1 argument (%d given)", len(args))
	}
	url, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	conn, connErr := pgx.Connect(ctx, url)
	if connErr != nil {
		return object.NewErrResult(object.NewError(connErr)), nil
	}
	return object.NewOk(NewConn(conn)), nil
}

func Module() *object.Module {
	return object.NewBuiltinsModule("pg", map[string]object.Object{
		"connect": object.NewBuiltin("connect", Connect),
	}, Connect)
}
