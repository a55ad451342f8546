package eval

import (
	"context"

	"github.com/marmoset-lang/marmoset/ast"
	"github.com/marmoset-lang/marmoset/errors"
	"github.com/marmoset-lang/marmoset/internal/token"
	"github.com/marmoset-lang/marmoset/object"
	"github.com/marmoset-lang/marmoset/op"
)

func (e *Evaluator) evalExpr(ctx context.Context, s *Scope, node ast.Expr) (object.Object, error) {
	switch n := node.(type) {
	case *ast.Int:
		return object.NewInt(n.Value), nil
	case *ast.Float:
		return object.NewFloat(n.Value), nil
	case *ast.Bool:
		return object.NewBool(n.Value), nil
	case *ast.String:
		return object.NewString(n.Value), nil
	case *ast.Nil:
		return object.Nil, nil
	case *ast.Ident:
		value, ok := s.Get(n.Name)
		if !ok {
			return nil, e.nameError(s, n)
		}
		return value, nil
	case *ast.Prefix:
		return e.evalPrefix(ctx, s, n)
	case *ast.Infix:
		return e.evalInfix(ctx, s, n)
	case *ast.If:
		return e.evalIf(ctx, s, n)
	case *ast.Call:
		return e.evalCall(ctx, s, n)
	case *ast.ObjectCall:
		return e.evalObjectCall(ctx, s, n)
	case *ast.GetAttr:
		return e.evalGetAttr(ctx, s, n)
	case *ast.Index:
		return e.evalIndex(ctx, s, n)
	case *ast.Tuple:
		return e.evalTuple(ctx, s, n)
	case *ast.Range:
		return e.evalRange(ctx, s, n)
	case *ast.List:
		return e.evalList(ctx, s, n)
	case *ast.Map:
		return e.evalMap(ctx, s, n)
	case *ast.StructLit:
		return e.evalStructLit(ctx, s, n)
	case *ast.Func:
		return object.NewFunction(funcName(n), n, s), nil
	case *ast.Comprehension:
		return nil, e.errorAt(errors.ErrRuntime, n.Pos(),
			"comprehension was not expanded (run the expand pass before evaluating)")
	case *ast.BadExpr:
		return nil, e.errorAt(errors.ErrSyntax, n.Pos(), "cannot evaluate invalid syntax")
	default:
		return nil, e.errorAt(errors.ErrRuntime, node.Pos(),
			"unsupported expression type %T", node)
	}
}

func (e *Evaluator) evalPrefix(ctx context.Context, s *Scope, n *ast.Prefix) (object.Object, error) {
	operand, err := e.evalExpr(ctx, s, n.X)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "!":
		return object.NewBool(!operand.IsTruthy()), nil
	case "-":
		switch typed := operand.(type) {
		case *object.Int:
			return object.NewInt(-typed.Value()), nil
		case *object.Float:
			return object.NewFloat(-typed.Value()), nil
		default:
			return nil, e.errorAt(errors.ErrType, n.OpPos,
				"unsupported operand for unary minus: %s", operand.Type())
		}
	default:
		return nil, e.errorAt(errors.ErrRuntime, n.OpPos,
			"unknown prefix operator %q", n.Op)
	}
}

func (e *Evaluator) evalInfix(ctx context.Context, s *Scope, n *ast.Infix) (object.Object, error) {
	// Logical operators short-circuit: the right side is only evaluated
	// when the left side does not decide the result.
	switch n.Op {
	case "&&":
		left, err := e.evalExpr(ctx, s, n.X)
		if err != nil {
			return nil, err
		}
		if !left.IsTruthy() {
			return object.False, nil
		}
		right, err := e.evalExpr(ctx, s, n.Y)
		if err != nil {
			return nil, err
		}
		return object.NewBool(right.IsTruthy()), nil
	case "||":
		left, err := e.evalExpr(ctx, s, n.X)
		if err != nil {
			return nil, err
		}
		if left.IsTruthy() {
			return object.True, nil
		}
		right, err := e.evalExpr(ctx, s, n.Y)
		if err != nil {
			return nil, err
		}
		return object.NewBool(right.IsTruthy()), nil
	}
	left, err := e.evalExpr(ctx, s, n.X)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpr(ctx, s, n.Y)
	if err != nil {
		return nil, err
	}
	var result object.Object
	switch n.Op {
	case "==", "!=", "<", "<=", ">", ">=":
		result, err = object.Compare(compareOp(n.Op), left, right)
	case "+", "-", "*", "/", "%":
		result, err = object.BinaryOp(binaryOp(n.Op), left, right)
	default:
		return nil, e.errorAt(errors.ErrRuntime, n.OpPos,
			"unknown infix operator %q", n.Op)
	}
	if err != nil {
		return nil, e.wrapAt(err, n.OpPos)
	}
	return result, nil
}

func (e *Evaluator) evalIf(ctx context.Context, s *Scope, n *ast.If) (object.Object, error) {
	cond, err := e.evalExpr(ctx, s, n.Cond)
	if err != nil {
		return nil, err
	}
	if cond.IsTruthy() {
		return e.evalBlock(ctx, NewScope(s), n.Consequence)
	}
	if n.Alternative != nil {
		return e.evalBlock(ctx, NewScope(s), n.Alternative)
	}
	return object.Nil, nil
}

func (e *Evaluator) evalCall(ctx context.Context, s *Scope, n *ast.Call) (object.Object, error) {
	fn, err := e.evalExpr(ctx, s, n.Fun)
	if err != nil {
		return nil, err
	}
	args, err := e.evalExprs(ctx, s, n.Args)
	if err != nil {
		return nil, err
	}
	return e.applyCall(ctx, fn, args, n.Pos())
}

// applyCall invokes any callable object. User functions go through
// callFunction so the call stack is maintained; builtins, struct
// definitions, and other callables are invoked directly.
func (e *Evaluator) applyCall(ctx context.Context, fn object.Object, args []object.Object, pos token.Position) (object.Object, error) {
	switch fn := fn.(type) {
	case *object.Function:
		result, err := e.callFunction(ctx, fn, args)
		if err != nil {
			return nil, e.wrapAt(err, pos)
		}
		return result, nil
	case object.Callable:
		result, err := fn.Call(ctx, args...)
		if err != nil {
			return nil, e.wrapAt(err, pos)
		}
		return result, nil
	default:
		return nil, e.errorAt(errors.ErrType, pos,
			"%s object is not callable", fn.Type())
	}
}

func (e *Evaluator) evalObjectCall(ctx context.Context, s *Scope, n *ast.ObjectCall) (object.Object, error) {
	receiver, err := e.evalExpr(ctx, s, n.X)
	if err != nil {
		return nil, err
	}
	ident, ok := n.Call.Fun.(*ast.Ident)
	if !ok {
		return nil, e.errorAt(errors.ErrRuntime, n.Call.Pos(),
			"method name must be an identifier")
	}
	name := ident.Name
	method, ok := receiver.GetAttr(name)
	if !ok {
		return nil, e.attrError(receiver, name, n.Period)
	}
	args, err := e.evalExprs(ctx, s, n.Call.Args)
	if err != nil {
		return nil, err
	}
	return e.applyCall(ctx, method, args, n.Call.Pos())
}

func (e *Evaluator) evalGetAttr(ctx context.Context, s *Scope, n *ast.GetAttr) (object.Object, error) {
	receiver, err := e.evalExpr(ctx, s, n.X)
	if err != nil {
		return nil, err
	}
	value, ok := receiver.GetAttr(n.Attr.Name)
	if !ok {
		return nil, e.attrError(receiver, n.Attr.Name, n.Period)
	}
	return value, nil
}

func (e *Evaluator) attrError(receiver object.Object, name string, pos token.Position) error {
	err := e.errorAt(errors.ErrType, pos,
		"%s object has no attribute %q", receiver.Type(), name)
	if suggestions := errors.SuggestSimilar(name, object.AttrNames(receiver.Attrs())); len(suggestions) > 0 {
		err.Message += " (" + errors.FormatSuggestions(suggestions) + ")"
	}
	return err
}

func (e *Evaluator) evalIndex(ctx context.Context, s *Scope, n *ast.Index) (object.Object, error) {
	target, err := e.evalExpr(ctx, s, n.X)
	if err != nil {
		return nil, err
	}
	container, ok := target.(object.Container)
	if !ok {
		return nil, e.errorAt(errors.ErrType, n.Lbrack,
			"%s object is not indexable", target.Type())
	}
	key, err := e.evalExpr(ctx, s, n.Index)
	if err != nil {
		return nil, err
	}
	value, getErr := container.GetItem(key)
	if getErr != nil {
		return nil, e.wrapAt(getErr.Value(), n.Lbrack)
	}
	return value, nil
}

func (e *Evaluator) evalTuple(ctx context.Context, s *Scope, n *ast.Tuple) (object.Object, error) {
	items, err := e.evalExprs(ctx, s, n.Elems)
	if err != nil {
		return nil, err
	}
	return object.NewTuple(items), nil
}

func (e *Evaluator) evalRange(ctx context.Context, s *Scope, n *ast.Range) (object.Object, error) {
	low, err := e.evalExpr(ctx, s, n.Low)
	if err != nil {
		return nil, err
	}
	high, err := e.evalExpr(ctx, s, n.High)
	if err != nil {
		return nil, err
	}
	start, err := object.AsInt(low)
	if err != nil {
		return nil, e.wrapAt(err, n.Low.Pos())
	}
	stop, err := object.AsInt(high)
	if err != nil {
		return nil, e.wrapAt(err, n.High.Pos())
	}
	return object.NewRange(start, stop), nil
}

func (e *Evaluator) evalList(ctx context.Context, s *Scope, n *ast.List) (object.Object, error) {
	items, err := e.evalExprs(ctx, s, n.Items)
	if err != nil {
		return nil, err
	}
	return object.NewList(items), nil
}

func (e *Evaluator) evalMap(ctx context.Context, s *Scope, n *ast.Map) (object.Object, error) {
	items := map[string]object.Object{}
	for _, item := range n.Items {
		key, err := e.evalExpr(ctx, s, item.Key)
		if err != nil {
			return nil, err
		}
		keyStr, err := object.AsString(key)
		if err != nil {
			return nil, e.wrapAt(err, item.Key.Pos())
		}
		value, err := e.evalExpr(ctx, s, item.Value)
		if err != nil {
			return nil, err
		}
		items[keyStr] = value
	}
	return object.NewMap(items), nil
}

// evalStructLit instantiates a named-field struct. Every declared field
// must be initialized exactly once; the shorthand form "Point{x}" takes
// the value of the variable x.
func (e *Evaluator) evalStructLit(ctx context.Context, s *Scope, n *ast.StructLit) (object.Object, error) {
	value, ok := s.Get(n.Name.Name)
	if !ok {
		return nil, e.nameError(s, n.Name)
	}
	def, ok := value.(*object.StructDef)
	if !ok {
		return nil, e.errorAt(errors.ErrType, n.Name.Pos(),
			"%s is not a struct type", n.Name.Name)
	}
	if !def.Named() {
		return nil, e.errorAt(errors.ErrType, n.Name.Pos(),
			"struct %s has positional fields (construct it with %s(...))",
			def.Name(), def.Name())
	}
	values := make([]object.Object, len(def.Fields()))
	seen := make([]bool, len(def.Fields()))
	for _, field := range n.Fields {
		idx := def.FieldIndex(field.Name.Name)
		if idx < 0 {
			return nil, e.errorAt(errors.ErrValue, field.Name.Pos(),
				"struct %s has no field %q", def.Name(), field.Name.Name)
		}
		if seen[idx] {
			return nil, e.errorAt(errors.ErrValue, field.Name.Pos(),
				"duplicate field %q in struct literal", field.Name.Name)
		}
		seen[idx] = true
		if field.Value != nil {
			fieldValue, err := e.evalExpr(ctx, s, field.Value)
			if err != nil {
				return nil, err
			}
			values[idx] = fieldValue
			continue
		}
		fieldValue, ok := s.Get(field.Name.Name)
		if !ok {
			return nil, e.nameError(s, field.Name)
		}
		values[idx] = fieldValue
	}
	for i, initialized := range seen {
		if !initialized {
			return nil, e.errorAt(errors.ErrValue, n.Pos(),
				"missing field %q in struct %s literal", def.Fields()[i], def.Name())
		}
	}
	result, err := object.NewStruct(def, values)
	if err != nil {
		return nil, e.wrapAt(err, n.Pos())
	}
	return result, nil
}

func (e *Evaluator) evalExprs(ctx context.Context, s *Scope, exprs []ast.Expr) ([]object.Object, error) {
	values := make([]object.Object, len(exprs))
	for i, expr := range exprs {
		value, err := e.evalExpr(ctx, s, expr)
		if err != nil {
			return nil, err
		}
		values[i] = value
	}
	return values, nil
}

func binaryOp(operator string) op.BinaryOpType {
	switch operator {
	case "+":
		return op.Add
	case "-":
		return op.Subtract
	case "*":
		return op.Multiply
	case "/":
		return op.Divide
	case "%":
		return op.Modulo
	default:
		return 0
	}
}

func compareOp(operator string) op.CompareOpType {
	switch operator {
	case "==":
		return op.Equal
	case "!=":
		return op.NotEqual
	case "<":
		return op.LessThan
	case "<=":
		return op.LessThanOrEqual
	case ">":
		return op.GreaterThan
	case ">=":
		return op.GreaterThanOrEqual
	default:
		return 0
	}
}

// compoundOp maps a compound assignment operator to its binary operation.
func compoundOp(operator string) op.BinaryOpType {
	switch operator {
	case "+=":
		return op.Add
	case "-=":
		return op.Subtract
	case "*=":
		return op.Multiply
	case "/=":
		return op.Divide
	default:
		return 0
	}
}
