package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/marmoset-lang/marmoset/object"
	"github.com/marmoset-lang/marmoset/op"
)

const CONN object.Type = "pg.conn"

var connAttrs = object.NewAttrRegistry[*Conn]("pg.conn")

func init() {
	connAttrs.Define("query").
		Doc("Ok(list of row maps) for a SQL query, Err on failure").
		Arg("sql").
		Variadic().
		Returns("result").
		Impl(func(c *Conn, ctx context.Context, args ...object.Object) (object.Object, error) {
			sql, err := object.AsString(args[0])
			if err != nil {
				return nil, err
			}
			rows, queryErr := c.value.Query(ctx, sql, goValues(args[1:])...)
			if queryErr != nil {
				return object.NewErrResult(object.NewError(queryErr)), nil
			}
			defer rows.Close()
			fields := rows.FieldDescriptions()
			var results []object.Object
			for rows.Next() {
				values, err := rows.Values()
				if err != nil {
					return object.NewErrResult(object.NewError(err)), nil
				}
				row := make(map[string]object.Object, len(fields))
				for i, field := range fields {
					row[field.Name] = object.FromGoType(values[i])
				}
				results = append(results, object.NewMap(row))
			}
			if err := rows.Err(); err != nil {
				return object.NewErrResult(object.NewError(err)), nil
			}
			return object.NewOk(object.NewList(results)), nil
		})

	connAttrs.Define("exec").
		Doc("Ok(affected row count) for a SQL statement, Err on failure").
		Arg("sql").
		Variadic().
		Returns("result").
		Impl(func(c *Conn, ctx context.Context, args ...object.Object) (object.Object, error) {
			sql, err := object.AsString(args[0])
			if err != nil {
				return nil, err
			}
			tag, execErr := c.value.Exec(ctx, sql, goValues(args[1:])...)
			if execErr != nil {
				return object.NewErrResult(object.NewError(execErr)), nil
			}
			return object.NewOk(object.NewInt(tag.RowsAffected())), nil
		})

	connAttrs.Define("close").
		Doc("Close the connection").
		Impl(func(c *Conn, ctx context.Context, args ...object.Object) (object.Object, error) {
			if err := c.value.Close(ctx); err != nil {
				return nil, err
			}
			return object.Nil, nil
		})
}

// goValues unwraps language objects into parameter values for pgx.
func goValues(args []object.Object) []any {
	values := make([]any, len(args))
	for i, arg := range args {
		values[i] = arg.Interface()
	}
	return values
}

// Conn wraps a pgx connection as a language object.
type Conn struct {
	value *pgx.Conn
}

func NewConn(value *pgx.Conn) *Conn {
	return &Conn{value: value}
}

func (c *Conn) Type() object.Type {
	return CONN
}

func (c *Conn) Inspect() string {
	return fmt.Sprintf("pg.conn(%p)", c.value)
}

func (c *Conn) String() string {
	return c.Inspect()
}

func (c *Conn) Interface() any {
	return c.value
}

func (c *Conn) Equals(other object.Object) bool {
	if other, ok := other.(*Conn); ok {
		return c.value == other.value
	}
	return false
}

func (c *Conn) IsTruthy() bool {
	return true
}

func (c *Conn) Attrs() []object.AttrSpec {
	return connAttrs.Specs()
}

func (c *Conn) GetAttr(name string) (object.Object, bool) {
	return connAttrs.GetAttr(c, name)
}

func (c *Conn) SetAttr(name string, value object.Object) error {
	return fmt.Errorf("type error: cannot set attribute %q on a pg.conn", name)
}

func (c *Conn) RunOperation(opType op.BinaryOpType, right object.Object) (object.Object, error) {
	return nil, fmt.Errorf("type error: unsupported operation for pg.conn: %v", opType)
}

func (c *Conn) MarshalJSON() ([]byte, error) {
	return nil, fmt.Errorf("type error: unable to marshal a pg.conn")
}
