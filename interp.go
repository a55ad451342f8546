package marmoset

import (
	"context"
	"fmt"

	"github.com/marmoset-lang/marmoset/eval"
	"github.com/marmoset-lang/marmoset/object"
)

// Interpreter provides stateful execution for REPL and incremental
// evaluation. Unlike the Eval and Run functions, which create fresh
// state on each call, an Interpreter keeps one scope alive across
// evaluations, so variables, functions, and struct definitions persist
// from one input to the next.
//
// An Interpreter is not safe for concurrent use.
type Interpreter struct {
	evaluator *eval.Evaluator
	scope     *eval.Scope
	cfg       *config
}

// NewInterpreter creates an Interpreter with the given options.
func NewInterpreter(opts ...Option) *Interpreter {
	cfg := newConfig(opts...)
	evaluator := cfg.evaluator("")
	return &Interpreter{
		evaluator: evaluator,
		scope:     evaluator.RootScope(),
		cfg:       cfg,
	}
}

// Eval evaluates source code within the interpreter's persistent scope.
// Declarations made in previous Eval calls remain accessible. The result
// is returned as a native Go value.
func (i *Interpreter) Eval(ctx context.Context, source string) (any, error) {
	result, err := i.EvalObject(ctx, source)
	if err != nil {
		return nil, err
	}
	return goValue(result), nil
}

// EvalObject is like Eval but returns the raw language object, which the
// REPL needs for faithful value display.
func (i *Interpreter) EvalObject(ctx context.Context, source string) (object.Object, error) {
	program, err := Parse(ctx, source,
		WithFilename(i.cfg.filename),
		WithLogger(i.cfg.logger))
	if err != nil {
		return nil, err
	}
	// Rebuild the evaluator with the current source so runtime errors
	// carry the offending line. The scope persists.
	i.evaluator = i.cfg.evaluator(source)
	return i.evaluator.EvalScoped(ctx, program.program, i.scope)
}

// Run executes a parsed Program within the interpreter's scope.
func (i *Interpreter) Run(ctx context.Context, program *Program) (any, error) {
	i.evaluator = i.cfg.evaluator(program.source)
	result, err := i.evaluator.EvalScoped(ctx, program.program, i.scope)
	if err != nil {
		return nil, err
	}
	return goValue(result), nil
}

// Call invokes a function defined in the interpreter's scope by name.
// Arguments are converted from Go values to language objects.
func (i *Interpreter) Call(ctx context.Context, name string, args ...any) (any, error) {
	obj, ok := i.scope.Get(name)
	if !ok {
		return nil, fmt.Errorf("undefined variable %q", name)
	}
	fn, ok := obj.(*object.Function)
	if !ok {
		return nil, fmt.Errorf("%q is not a function (got: %s)", name, obj.Type())
	}
	converted := make([]object.Object, len(args))
	for n, arg := range args {
		converted[n] = object.FromGoType(arg)
		if converted[n] == nil {
			return nil, fmt.Errorf("cannot convert argument %d", n)
		}
	}
	result, err := i.evaluator.CallFunction(ctx, fn, converted)
	if err != nil {
		return nil, err
	}
	return goValue(result), nil
}

// Get retrieves a variable from the interpreter's scope as a native Go
// value.
func (i *Interpreter) Get(name string) (any, error) {
	obj, err := i.GetObject(name)
	if err != nil {
		return nil, err
	}
	return goValue(obj), nil
}

// GetObject retrieves a variable from the interpreter's scope as a
// language object.
func (i *Interpreter) GetObject(name string) (object.Object, error) {
	obj, ok := i.scope.Get(name)
	if !ok {
		return nil, fmt.Errorf("undefined variable %q", name)
	}
	return obj, nil
}

// GlobalNames returns the names visible in the interpreter's scope,
// including builtins and prior declarations.
func (i *Interpreter) GlobalNames() []string {
	return i.scope.Names()
}
