package bcrypt

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/marmoset-lang/marmoset/object"
)

// Hash returns Ok(bcrypt hash of password) or Err when the cost is out
// of range. The cost defaults to bcrypt.DefaultCost.
func Hash(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("type error: bcrypt.hash() takes 1 or 2 arguments (%d given)", len(args))
	}
	password, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	cost := bcrypt.DefaultCost
	if len(args) == 2 {
		c, err := object.AsInt(args[1])
		if err != nil {
			return nil, err
		}
		cost = int(c)
	}
	hash, hashErr := bcrypt.GenerateFromPassword([]byte(password), cost)
	if hashErr != nil {
		return object.NewErrResult(object.NewError(hashErr)), nil
	}
	return object.NewOk(object.NewString(string(hash))), nil
}

// Compare reports whether password matches the given bcrypt hash.
func Compare(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("type error: bcrypt.compare() takes exactly 2 arguments (%d given)", len(args))
	}
	hash, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	password, err := object.AsString(args[1])
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return object.False, nil
	}
	return object.True, nil
}

func Module() *object.Module {
	return object.NewBuiltinsModule("bcrypt", map[string]object.Object{
		"DefaultCost": object.NewInt(int64(bcrypt.DefaultCost)),
		"MaxCost":     object.NewInt(int64(bcrypt.MaxCost)),
		"MinCost":     object.NewInt(int64(bcrypt.MinCost)),
		"compare":     object.NewBuiltin("compare", Compare),
		"hash":        object.NewBuiltin("hash", Hash),
	})
}
