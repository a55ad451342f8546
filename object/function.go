package object

import (
	"context"
	"fmt"
	"strings"

	"github.com/marmoset-lang/marmoset/ast"
	"github.com/marmoset-lang/marmoset/op"
)

// Function is a user-defined function together with the environment it
// closed over. The object package cannot evaluate function bodies itself;
// calls are delegated to the call function installed on the context by the
// evaluator.
type Function struct {
	name string
	fn   *ast.Func

	// env is the evaluator's scope the function closed over. It is opaque
	// here; the evaluator type-asserts it back.
	env any
}

// NewFunction creates a function object from its AST node and captured
// environment.
func NewFunction(name string, fn *ast.Func, env any) *Function {
	return &Function{name: name, fn: fn, env: env}
}

// Name returns the declared name, which is empty for anonymous functions.
func (f *Function) Name() string {
	return f.name
}

// Func returns the underlying AST node.
func (f *Function) Func() *ast.Func {
	return f.fn
}

// Env returns the captured environment.
func (f *Function) Env() any {
	return f.env
}

// ParamNames returns the parameter names in declaration order.
func (f *Function) ParamNames() []string {
	return f.fn.ParamNames()
}

// Call invokes the function through the call function on the context.
func (f *Function) Call(ctx context.Context, args ...Object) (Object, error) {
	callFunc, found := GetCallFunc(ctx)
	if !found {
		return nil, EvalErrorf("no function call handler found in context")
	}
	return callFunc(ctx, f, args)
}

func (f *Function) Type() Type {
	return FUNCTION
}

func (f *Function) Inspect() string {
	params := strings.Join(f.ParamNames(), ", ")
	if f.name == "" {
		return fmt.Sprintf("func(%s)", params)
	}
	return fmt.Sprintf("func %s(%s)", f.name, params)
}

func (f *Function) String() string {
	return f.Inspect()
}

func (f *Function) Interface() any {
	return f
}

func (f *Function) Equals(other Object) bool {
	return f == other
}

func (f *Function) Attrs() []AttrSpec {
	return nil
}

func (f *Function) GetAttr(name string) (Object, bool) {
	return nil, false
}

func (f *Function) SetAttr(name string, value Object) error {
	return TypeErrorf("function has no attribute %q", name)
}

func (f *Function) IsTruthy() bool {
	return true
}

func (f *Function) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	return nil, newTypeErrorf("unsupported operation for function: %v", opType)
}
