package uuid

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"

	"github.com/marmoset-lang/marmoset/object"
)

// V4 returns a random (version 4) UUID string.
func V4(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("type error: uuid.v4() takes no arguments (%d given)", len(args))
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	return object.NewString(id.String()), nil
}

// V5 returns a name-based (version 5) UUID string derived from a
// namespace UUID and a name.
func V5(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("type error: uuid.v5() takes exactly 2 arguments (%d given)", len(args))
	}
	nsRaw, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	name, err := object.AsString(args[1])
	if err != nil {
		return nil, err
	}
	ns, parseErr := uuid.FromString(nsRaw)
	if parseErr != nil {
		return nil, fmt.Errorf("value error: uuid.v5() namespace is not a UUID: %s", parseErr)
	}
	return object.NewString(uuid.NewV5(ns, name).String()), nil
}

// Parse returns Ok(canonical UUID string) or Err for malformed input.
func Parse(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type error: uuid.parse() takes exactly 1 argument (%d given)", len(args))
	}
	s, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	id, parseErr := uuid.FromString(s)
	if parseErr != nil {
		return object.NewErrResult(object.NewError(parseErr)), nil
	}
	return object.NewOk(object.NewString(id.String())), nil
}

func Module() *object.Module {
	return object.NewBuiltinsModule("uuid", map[string]object.Object{
		"NamespaceDNS": object.NewString(uuid.NamespaceDNS.String()),
		"NamespaceURL": object.NewString(uuid.NamespaceURL.String()),
		"parse":        object.NewBuiltin("parse", Parse),
		"v4":           object.NewBuiltin("v4", V4),
		"v5":           object.NewBuiltin("v5", V5),
	})
}
