// Package eval provides a tree-walking evaluator for expanded Marmoset
// programs.
//
// The evaluator runs the output of the expand pass: by the time a program
// arrives here, every comprehension has been rewritten into ordinary calls
// on option, result, and seq values, so evaluation is a straightforward
// walk over statements and expressions. Reaching an unexpanded
// comprehension, bind, or guard is an error, not a fallback path.
//
// Each call to Eval creates a fresh scope chain seeded from the
// evaluator's globals, so an Evaluator may be shared across programs.
// The evaluator installs its call function on the context, which lets
// lazy sequences pull through user callbacks while they are consumed.
package eval

import (
	"context"
	"fmt"
	"strings"

	"github.com/marmoset-lang/marmoset/ast"
	"github.com/marmoset-lang/marmoset/errors"
	"github.com/marmoset-lang/marmoset/internal/token"
	"github.com/marmoset-lang/marmoset/object"
	"github.com/rs/zerolog"
)

// DefaultMaxCallDepth is the default limit on nested function calls.
const DefaultMaxCallDepth = 1000

// Option is a configuration function for an Evaluator.
type Option func(*Evaluator)

// WithGlobals provides named values visible to every evaluated program.
// The option is additive across multiple uses.
func WithGlobals(globals map[string]object.Object) Option {
	return func(e *Evaluator) {
		for name, value := range globals {
			e.globals[name] = value
		}
	}
}

// WithGlobal provides a single named value visible to every evaluated
// program.
func WithGlobal(name string, value object.Object) Option {
	return func(e *Evaluator) {
		e.globals[name] = value
	}
}

// WithFilename sets the filename reported in error locations.
func WithFilename(filename string) Option {
	return func(e *Evaluator) {
		e.filename = filename
	}
}

// WithSource supplies the program's source code, which lets runtime
// errors carry the offending source line.
func WithSource(source string) Option {
	return func(e *Evaluator) {
		e.source = source
	}
}

// WithLogger sets the logger used to trace evaluation. By default the
// Evaluator does not log.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// WithMaxCallDepth overrides the limit on nested function calls.
func WithMaxCallDepth(depth int) Option {
	return func(e *Evaluator) {
		e.maxCallDepth = depth
	}
}

// Evaluator walks an expanded program and computes its value. The zero
// value is not usable; create one with New. An Evaluator may be reused
// across programs but is not safe for concurrent use, since it tracks
// the call stack for error reporting.
type Evaluator struct {
	globals      map[string]object.Object
	filename     string
	source       string
	logger       zerolog.Logger
	maxCallDepth int

	// stack holds the active call frames, innermost last. It is used for
	// stack traces on runtime errors and for the call depth limit.
	stack []errors.StackFrame
}

// New creates and returns a new Evaluator.
func New(options ...Option) *Evaluator {
	e := &Evaluator{
		globals:      map[string]object.Object{},
		logger:       zerolog.Nop(),
		maxCallDepth: DefaultMaxCallDepth,
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

// RootScope returns a new scope seeded with the evaluator's globals.
// The globals live in a parent scope of their own, so user declarations
// may shadow them without error.
func (e *Evaluator) RootScope() *Scope {
	root := NewScope(nil)
	for name, value := range e.globals {
		root.Declare(name, value, false)
	}
	return NewScope(root)
}

// Eval evaluates a program and returns the value of its final statement.
// An empty program evaluates to nil.
func (e *Evaluator) Eval(ctx context.Context, program *ast.Program) (object.Object, error) {
	return e.EvalScoped(ctx, program, e.RootScope())
}

// EvalScoped evaluates a program in the given scope. Declarations the
// program makes persist in the scope, which is what an interactive
// session needs to carry state from one input to the next.
func (e *Evaluator) EvalScoped(ctx context.Context, program *ast.Program, scope *Scope) (object.Object, error) {
	if program == nil {
		return nil, fmt.Errorf("eval: cannot evaluate a nil program")
	}
	ctx = object.WithCallFunc(ctx, e.callFunction)
	e.stack = e.stack[:0]

	var result object.Object = object.Nil
	for _, stmt := range program.Stmts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		value, err := e.evalStmt(ctx, scope, stmt)
		if err != nil {
			if ret, ok := err.(*returnSignal); ok {
				return nil, e.errorAt(errors.ErrRuntime, stmt.Pos(),
					"return outside of a function").WithCause(ret)
			}
			return nil, err
		}
		result = value
	}
	e.logger.Debug().
		Int("statements", len(program.Stmts)).
		Str("result", string(result.Type())).
		Msg("evaluated program")
	return result, nil
}

// CallFunction invokes a user-defined function with the given arguments,
// outside of any program evaluation. Embedders use this to call into
// code a previous evaluation defined.
func (e *Evaluator) CallFunction(ctx context.Context, fn *object.Function, args []object.Object) (object.Object, error) {
	ctx = object.WithCallFunc(ctx, e.callFunction)
	return e.callFunction(ctx, fn, args)
}

// returnSignal carries a return value up through evalStmt as an error.
// callFunction intercepts it; one escaping to Eval is a misplaced return.
type returnSignal struct {
	value object.Object
}

func (r *returnSignal) Error() string { return "return outside of a function" }

// evalStmt evaluates a single statement or expression node. Expression
// nodes produce their value; statements produce nil.
func (e *Evaluator) evalStmt(ctx context.Context, s *Scope, node ast.Node) (object.Object, error) {
	switch n := node.(type) {
	case *ast.Var:
		return e.evalVar(ctx, s, n)
	case *ast.Assign:
		return e.evalAssign(ctx, s, n)
	case *ast.SetAttr:
		return e.evalSetAttr(ctx, s, n)
	case *ast.Return:
		var value object.Object = object.Nil
		if n.Value != nil {
			var err error
			if value, err = e.evalExpr(ctx, s, n.Value); err != nil {
				return nil, err
			}
		}
		return nil, &returnSignal{value: value}
	case *ast.Block:
		return e.evalBlock(ctx, NewScope(s), n)
	case *ast.StructDecl:
		def := object.NewStructDef(n.Name.Name, n.FieldNames(), n.Named)
		s.Declare(n.Name.Name, def, false)
		return object.Nil, nil
	case *ast.Func:
		// A named function literal in statement position declares the name.
		fn := object.NewFunction(funcName(n), n, s)
		if n.Name != nil {
			s.Declare(n.Name.Name, fn, false)
			return object.Nil, nil
		}
		return fn, nil
	case *ast.ExprStmt:
		// The trailing semicolon discards the value.
		if _, err := e.evalExpr(ctx, s, n.X); err != nil {
			return nil, err
		}
		return object.Nil, nil
	case *ast.Bind:
		return nil, e.errorAt(errors.ErrRuntime, n.Pos(),
			"bind was not expanded (run the expand pass before evaluating)")
	case *ast.Guard:
		return nil, e.errorAt(errors.ErrRuntime, n.Pos(),
			"guard was not expanded (run the expand pass before evaluating)")
	case *ast.BadStmt:
		return nil, e.errorAt(errors.ErrSyntax, n.Pos(), "cannot evaluate invalid syntax")
	case ast.Expr:
		return e.evalExpr(ctx, s, n)
	default:
		return nil, e.errorAt(errors.ErrRuntime, node.Pos(),
			"unsupported statement type %T", node)
	}
}

func (e *Evaluator) evalVar(ctx context.Context, s *Scope, n *ast.Var) (object.Object, error) {
	var value object.Object = object.Nil
	if n.Value != nil {
		var err error
		if value, err = e.evalExpr(ctx, s, n.Value); err != nil {
			return nil, err
		}
	}
	if err := e.destructure(s, n.Pattern, value, n.Mut); err != nil {
		return nil, e.wrapAt(err, n.Pattern.Pos())
	}
	return object.Nil, nil
}

func (e *Evaluator) evalAssign(ctx context.Context, s *Scope, n *ast.Assign) (object.Object, error) {
	value, err := e.evalExpr(ctx, s, n.Value)
	if err != nil {
		return nil, err
	}
	if n.Index != nil {
		return e.evalIndexAssign(ctx, s, n, value)
	}
	if n.Op != "=" {
		current, ok := s.Get(n.Name.Name)
		if !ok {
			return nil, e.nameError(s, n.Name)
		}
		if value, err = object.BinaryOp(compoundOp(n.Op), current, value); err != nil {
			return nil, e.wrapAt(err, n.OpPos)
		}
	}
	if err := s.Assign(n.Name.Name, value); err != nil {
		return nil, e.wrapAt(err, n.Name.Pos())
	}
	return object.Nil, nil
}

func (e *Evaluator) evalIndexAssign(ctx context.Context, s *Scope, n *ast.Assign, value object.Object) (object.Object, error) {
	target, err := e.evalExpr(ctx, s, n.Index.X)
	if err != nil {
		return nil, err
	}
	container, ok := target.(object.Container)
	if !ok {
		return nil, e.errorAt(errors.ErrType, n.Index.Pos(),
			"%s object does not support item assignment", target.Type())
	}
	key, err := e.evalExpr(ctx, s, n.Index.Index)
	if err != nil {
		return nil, err
	}
	if n.Op != "=" {
		current, getErr := container.GetItem(key)
		if getErr != nil {
			return nil, e.wrapAt(getErr.Value(), n.Index.Pos())
		}
		if value, err = object.BinaryOp(compoundOp(n.Op), current, value); err != nil {
			return nil, e.wrapAt(err, n.OpPos)
		}
	}
	if setErr := container.SetItem(key, value); setErr != nil {
		return nil, e.wrapAt(setErr.Value(), n.Index.Pos())
	}
	return object.Nil, nil
}

func (e *Evaluator) evalSetAttr(ctx context.Context, s *Scope, n *ast.SetAttr) (object.Object, error) {
	target, err := e.evalExpr(ctx, s, n.X)
	if err != nil {
		return nil, err
	}
	value, err := e.evalExpr(ctx, s, n.Value)
	if err != nil {
		return nil, err
	}
	if n.Op != "=" {
		current, ok := target.GetAttr(n.Attr.Name)
		if !ok {
			return nil, e.errorAt(errors.ErrType, n.Attr.Pos(),
				"%s object has no attribute %q", target.Type(), n.Attr.Name)
		}
		if value, err = object.BinaryOp(compoundOp(n.Op), current, value); err != nil {
			return nil, e.wrapAt(err, n.OpPos)
		}
	}
	if err := target.SetAttr(n.Attr.Name, value); err != nil {
		return nil, e.wrapAt(err, n.Attr.Pos())
	}
	return object.Nil, nil
}

// evalBlock evaluates the statements of a block in the given scope. The
// value of the block is the value of a bare trailing expression; a block
// ending in a statement (including an "expr;" statement) evaluates to nil.
func (e *Evaluator) evalBlock(ctx context.Context, s *Scope, block *ast.Block) (object.Object, error) {
	var result object.Object = object.Nil
	for i, stmt := range block.Stmts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		value, err := e.evalStmt(ctx, s, stmt)
		if err != nil {
			return nil, err
		}
		if i == len(block.Stmts)-1 {
			if _, isExpr := stmt.(ast.Expr); isExpr {
				result = value
			}
		}
	}
	return result, nil
}

// callFunction invokes a user-defined function. It is installed on the
// context as the object.CallFunc, so callbacks reached through wrapper
// chaining methods land here as well.
func (e *Evaluator) callFunction(ctx context.Context, fn *object.Function, args []object.Object) (object.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	node := fn.Func()
	if len(e.stack) >= e.maxCallDepth {
		return nil, e.errorAt(errors.ErrRuntime, node.Pos(),
			"maximum call depth (%d) exceeded", e.maxCallDepth)
	}
	params := node.Params
	if len(args) != len(params) {
		return nil, e.errorAt(errors.ErrType, node.Pos(),
			"%s takes %d %s (%d given)",
			callableName(fn), len(params), pluralize("argument", len(params)), len(args))
	}
	env, ok := fn.Env().(*Scope)
	if !ok {
		return nil, e.errorAt(errors.ErrRuntime, node.Pos(),
			"function %s has no captured environment", callableName(fn))
	}
	scope := NewScope(env)
	for i, param := range params {
		scope.Declare(param.Name.Name, args[i], false)
	}
	e.stack = append(e.stack, errors.StackFrame{
		Function: fn.Name(),
		Location: e.location(node.Pos()),
	})
	defer func() { e.stack = e.stack[:len(e.stack)-1] }()

	value, err := e.evalBlock(ctx, scope, node.Body)
	if err != nil {
		if ret, ok := err.(*returnSignal); ok {
			return ret.value, nil
		}
		return nil, err
	}
	return value, nil
}

// location converts a token position to an error source location,
// including the offending source line when the source is known.
func (e *Evaluator) location(pos token.Position) errors.SourceLocation {
	filename := e.filename
	if filename == "" {
		filename = pos.File
	}
	return errors.SourceLocation{
		Filename: filename,
		Line:     pos.LineNumber(),
		Column:   pos.ColumnNumber(),
		Source:   e.sourceLine(pos.Line),
	}
}

// sourceLine returns the given zero-based line of the source, or "".
func (e *Evaluator) sourceLine(line int) string {
	if e.source == "" {
		return ""
	}
	lines := strings.Split(e.source, "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}
	return lines[line]
}

// errorAt builds a structured runtime error at the given position,
// capturing the current call stack.
func (e *Evaluator) errorAt(kind errors.ErrorKind, pos token.Position, format string, args ...any) *errors.StructuredError {
	stack := make([]errors.StackFrame, len(e.stack))
	copy(stack, e.stack)
	return errors.NewStructuredErrorf(kind, e.location(pos), stack, format, args...)
}

// wrapAt attaches a location and stack to an error produced by the object
// layer. Errors that already carry a location pass through unchanged, so
// the innermost position wins.
func (e *Evaluator) wrapAt(err error, pos token.Position) error {
	switch typed := err.(type) {
	case nil:
		return nil
	case *returnSignal:
		return typed
	case *errors.StructuredError:
		return typed
	case *errors.TypeError:
		return e.errorAt(errors.ErrType, pos, "%s", typed.Error()).WithCause(typed)
	case *errors.ValueError:
		return e.errorAt(errors.ErrValue, pos, "%s", typed.Error()).WithCause(typed)
	default:
		if err == context.Canceled || err == context.DeadlineExceeded {
			return err
		}
		return e.errorAt(errors.ErrRuntime, pos, "%s", err.Error()).WithCause(err)
	}
}

// nameError reports an undefined variable, with suggestions drawn from
// the names in scope.
func (e *Evaluator) nameError(s *Scope, ident *ast.Ident) error {
	err := e.errorAt(errors.ErrName, ident.Pos(), "undefined variable %q", ident.Name)
	if suggestions := errors.SuggestSimilar(ident.Name, s.Names()); len(suggestions) > 0 {
		err.Message += " (" + errors.FormatSuggestions(suggestions) + ")"
	}
	return err
}

func funcName(n *ast.Func) string {
	if n.Name != nil {
		return n.Name.Name
	}
	return ""
}

func callableName(fn *object.Function) string {
	if name := fn.Name(); name != "" {
		return "function " + name
	}
	return "anonymous function"
}

func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
