package parser

import (
	"context"
	"testing"

	"github.com/marmoset-lang/marmoset/ast"
	"github.com/stretchr/testify/require"
)

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"-a * b", "((-a) * b)"},
		{"!-a", "(!(-a))"},
		{"a + b + c", "((a + b) + c)"},
		{"a + b - c", "((a + b) - c)"},
		{"a * b * c", "((a * b) * c)"},
		{"a * b / c", "((a * b) / c)"},
		{"a + b / c", "(a + (b / c))"},
		{"a + b * c + d / e - f", "(((a + (b * c)) + (d / e)) - f)"},
		{"5 > 4 == 3 < 4", "((5 > 4) == (3 < 4))"},
		{"5 < 4 != 3 > 4", "((5 < 4) != (3 > 4))"},
		{"3 + 4 * 5 == 3 * 1 + 4 * 5", "((3 + (4 * 5)) == ((3 * 1) + (4 * 5)))"},
		{"3 > 5 == false", "((3 > 5) == false)"},
		{"x % 2 == 0", "((x % 2) == 0)"},
		{"-5 % 3", "((-5) % 3)"},
		{"1 + (2 + 3) + 4", "((1 + (2 + 3)) + 4)"},
		{"(5 + 5) * 2", "((5 + 5) * 2)"},
		{"2 / (5 + 5)", "(2 / (5 + 5))"},
		{"-(5 + 5)", "(-(5 + 5))"},
		{"!(true == true)", "(!(true == true))"},
		{"a && b || c", "((a && b) || c)"},
		{"a == b && c == d", "((a == b) && (c == d))"},
		{"a + add(b * c) + d", "((a + add((b * c))) + d)"},
		{"add(a, b, 1, 2 * 3, 4 + 5, add(6, 7 * 8))", "add(a, b, 1, (2 * 3), (4 + 5), add(6, (7 * 8)))"},
		{"add(a + b + c * d / f + g)", "add((((a + b) + ((c * d) / f)) + g))"},
		{"a * [1, 2, 3, 4][b * c] * d", "((a * ([1, 2, 3, 4][(b * c)])) * d)"},
		{"add(a * b[2], b[1], 2 * [1, 2][1])", "add((a * (b[2])), (b[1]), (2 * ([1, 2][1])))"},
		{"1..n + 1", "(1..(n + 1))"},
		{"a >= b", "(a >= b)"},
		{"a <= b", "(a <= b)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			program, err := Parse(context.Background(), tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, program.String())
		})
	}
}

func TestIfExpression(t *testing.T) {
	program, err := Parse(context.Background(), "if (x > 5) { 10 } else { 20 }")
	require.NoError(t, err)

	expr, ok := program.First().(*ast.If)
	require.True(t, ok)
	cond, ok := expr.Cond.(*ast.Infix)
	require.True(t, ok)
	require.Equal(t, ">", cond.Op)
	require.NotNil(t, expr.Consequence)
	require.NotNil(t, expr.Alternative)
	require.Len(t, expr.Consequence.Stmts, 1)
	require.Len(t, expr.Alternative.Stmts, 1)
}

func TestIfWithoutElse(t *testing.T) {
	program, err := Parse(context.Background(), "if (ready) { go_time() }")
	require.NoError(t, err)
	expr, ok := program.First().(*ast.If)
	require.True(t, ok)
	require.Nil(t, expr.Alternative)
}

func TestElseIfChain(t *testing.T) {
	input := `if (score > 90) { "A" } else if (score > 80) { "B" } else { "C" }`
	program, err := Parse(context.Background(), input)
	require.NoError(t, err)

	outer, ok := program.First().(*ast.If)
	require.True(t, ok)
	require.NotNil(t, outer.Alternative)
	// The else-if is represented as a block holding a nested if
	require.Len(t, outer.Alternative.Stmts, 1)
	inner, ok := outer.Alternative.Stmts[0].(*ast.If)
	require.True(t, ok)
	require.NotNil(t, inner.Alternative)
}

func TestIfAsValue(t *testing.T) {
	program, err := Parse(context.Background(), "let v = if (c) { 1 } else { 2 }")
	require.NoError(t, err)
	stmt := program.First().(*ast.Var)
	_, ok := stmt.Value.(*ast.If)
	require.True(t, ok)
}

func TestIfRequiresParens(t *testing.T) {
	_, err := Parse(context.Background(), "if x > 5 { 10 }")
	require.Error(t, err)
	require.Contains(t, err.Error(), "while parsing an if expression (expected ()")
}

func TestCallExpression(t *testing.T) {
	program, err := Parse(context.Background(), "add(1, 2 * 3, 4 + 5)")
	require.NoError(t, err)

	call, ok := program.First().(*ast.Call)
	require.True(t, ok)
	fn, ok := call.Fun.(*ast.Ident)
	require.True(t, ok)
	require.Equal(t, "add", fn.Name)
	require.Len(t, call.Args, 3)
	require.Equal(t, "1", call.Args[0].String())
	require.Equal(t, "(2 * 3)", call.Args[1].String())
	require.Equal(t, "(4 + 5)", call.Args[2].String())
}

func TestCallNoArgs(t *testing.T) {
	program, err := Parse(context.Background(), "now()")
	require.NoError(t, err)
	call, ok := program.First().(*ast.Call)
	require.True(t, ok)
	require.Empty(t, call.Args)
}

func TestCallTrailingComma(t *testing.T) {
	program, err := Parse(context.Background(), "f(a, b,)")
	require.NoError(t, err)
	call := program.First().(*ast.Call)
	require.Len(t, call.Args, 2)
}

func TestNestedCalls(t *testing.T) {
	program, err := Parse(context.Background(), "outer(inner(1), 2)")
	require.NoError(t, err)
	call := program.First().(*ast.Call)
	inner, ok := call.Args[0].(*ast.Call)
	require.True(t, ok)
	require.Equal(t, "inner", inner.Fun.(*ast.Ident).Name)
}

func TestGetAttr(t *testing.T) {
	program, err := Parse(context.Background(), "point.x")
	require.NoError(t, err)
	attr, ok := program.First().(*ast.GetAttr)
	require.True(t, ok)
	require.Equal(t, "point", attr.X.(*ast.Ident).Name)
	require.Equal(t, "x", attr.Attr.Name)
	require.Equal(t, "point.x", attr.String())
}

func TestChainedGetAttr(t *testing.T) {
	program, err := Parse(context.Background(), "a.b.c")
	require.NoError(t, err)
	outer, ok := program.First().(*ast.GetAttr)
	require.True(t, ok)
	require.Equal(t, "c", outer.Attr.Name)
	inner, ok := outer.X.(*ast.GetAttr)
	require.True(t, ok)
	require.Equal(t, "b", inner.Attr.Name)
}

func TestObjectCall(t *testing.T) {
	program, err := Parse(context.Background(), "xs.map(f)")
	require.NoError(t, err)
	oc, ok := program.First().(*ast.ObjectCall)
	require.True(t, ok)
	require.Equal(t, "xs", oc.X.(*ast.Ident).Name)
	require.Equal(t, "map", oc.Call.Fun.(*ast.Ident).Name)
	require.Len(t, oc.Call.Args, 1)
	require.Equal(t, "xs.map(f)", oc.String())
}

func TestComprehensionKeywordsAsMethods(t *testing.T) {
	// The comprehension keywords double as ordinary method names
	tests := []struct {
		input      string
		wantMethod string
	}{
		{"xs.iter()", "iter"},
		{"value.option()", "option"},
		{"value.result()", "result"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			program, err := Parse(context.Background(), tt.input)
			require.NoError(t, err)
			oc, ok := program.First().(*ast.ObjectCall)
			require.True(t, ok)
			require.Equal(t, tt.wantMethod, oc.Call.Fun.(*ast.Ident).Name)
		})
	}
}

func TestChainedMethodCalls(t *testing.T) {
	program, err := Parse(context.Background(), "xs.iter().flat_map(f)")
	require.NoError(t, err)
	outer, ok := program.First().(*ast.ObjectCall)
	require.True(t, ok)
	require.Equal(t, "flat_map", outer.Call.Fun.(*ast.Ident).Name)
	inner, ok := outer.X.(*ast.ObjectCall)
	require.True(t, ok)
	require.Equal(t, "iter", inner.Call.Fun.(*ast.Ident).Name)
	require.Equal(t, "xs.iter().flat_map(f)", outer.String())
}

func TestIndexExpression(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"xs[0]", "(xs[0])"},
		{`m["key"]`, `(m["key"])`},
		{"xs[a + b]", "(xs[(a + b)])"},
		{"m[k][0]", "((m[k])[0])"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			program, err := Parse(context.Background(), tt.input)
			require.NoError(t, err)
			idx, ok := program.First().(*ast.Index)
			require.True(t, ok)
			require.Equal(t, tt.want, idx.String())
		})
	}
}

func TestIndexErrors(t *testing.T) {
	_, err := Parse(context.Background(), "xs[0")
	require.Error(t, err)
	require.Contains(t, err.Error(), "while parsing an index expression (expected ])")
}

func TestUnitValue(t *testing.T) {
	program, err := Parse(context.Background(), "()")
	require.NoError(t, err)
	tuple, ok := program.First().(*ast.Tuple)
	require.True(t, ok)
	require.Empty(t, tuple.Elems)
	require.Equal(t, "()", tuple.String())
}

func TestTuples(t *testing.T) {
	tests := []struct {
		input   string
		wantLen int
		wantStr string
	}{
		{"(1,)", 1, "(1,)"},
		{"(1, 2)", 2, "(1, 2)"},
		{"(1, 2, 3)", 3, "(1, 2, 3)"},
		{"(a, b,)", 2, "(a, b)"},
		{"(1 + 2, f(x))", 2, "((1 + 2), f(x))"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			program, err := Parse(context.Background(), tt.input)
			require.NoError(t, err)
			tuple, ok := program.First().(*ast.Tuple)
			require.True(t, ok)
			require.Len(t, tuple.Elems, tt.wantLen)
			require.Equal(t, tt.wantStr, tuple.String())
		})
	}
}

func TestGroupedExpressionIsNotTuple(t *testing.T) {
	program, err := Parse(context.Background(), "(1 + 2)")
	require.NoError(t, err)
	_, ok := program.First().(*ast.Infix)
	require.True(t, ok)
}

func TestNestedTuples(t *testing.T) {
	program, err := Parse(context.Background(), "((1, 2), (3, 4))")
	require.NoError(t, err)
	outer, ok := program.First().(*ast.Tuple)
	require.True(t, ok)
	require.Len(t, outer.Elems, 2)
	_, ok = outer.Elems[0].(*ast.Tuple)
	require.True(t, ok)
}

func TestRangeExpression(t *testing.T) {
	program, err := Parse(context.Background(), "0..10")
	require.NoError(t, err)
	r, ok := program.First().(*ast.Range)
	require.True(t, ok)
	require.Equal(t, int64(0), r.Low.(*ast.Int).Value)
	require.Equal(t, int64(10), r.High.(*ast.Int).Value)
	require.Equal(t, "(0..10)", r.String())
}

func TestRangeWithExpressions(t *testing.T) {
	program, err := Parse(context.Background(), "0..len(xs)")
	require.NoError(t, err)
	r, ok := program.First().(*ast.Range)
	require.True(t, ok)
	_, ok = r.High.(*ast.Call)
	require.True(t, ok)
	require.Equal(t, "(0..len(xs))", r.String())
}

func TestStructLiteral(t *testing.T) {
	program, err := Parse(context.Background(), "Point{x: 1, y: 2}")
	require.NoError(t, err)
	lit, ok := program.First().(*ast.StructLit)
	require.True(t, ok)
	require.Equal(t, "Point", lit.Name.Name)
	require.Len(t, lit.Fields, 2)
	require.Equal(t, "x", lit.Fields[0].Name.Name)
	require.NotNil(t, lit.Fields[0].Value)
	require.Equal(t, "Point{x: 1, y: 2}", lit.String())
}

func TestStructLiteralShorthand(t *testing.T) {
	program, err := Parse(context.Background(), "Point{x, y}")
	require.NoError(t, err)
	lit, ok := program.First().(*ast.StructLit)
	require.True(t, ok)
	require.Len(t, lit.Fields, 2)
	require.Nil(t, lit.Fields[0].Value)
	require.Nil(t, lit.Fields[1].Value)
	require.Equal(t, "Point{x, y}", lit.String())
}

func TestStructLiteralEmpty(t *testing.T) {
	program, err := Parse(context.Background(), "Unit{}")
	require.NoError(t, err)
	lit, ok := program.First().(*ast.StructLit)
	require.True(t, ok)
	require.Empty(t, lit.Fields)
}

func TestStructLiteralMultiline(t *testing.T) {
	input := "Config{\n\thost: \"localhost\",\n\tport: 8080,\n}"
	program, err := Parse(context.Background(), input)
	require.NoError(t, err)
	lit, ok := program.First().(*ast.StructLit)
	require.True(t, ok)
	require.Len(t, lit.Fields, 2)
}

func TestStructLiteralInIfCondition(t *testing.T) {
	// Parenthesized if conditions permit struct literals
	program, err := Parse(context.Background(), "if (p == Point{x: 1, y: 2}) { 1 }")
	require.NoError(t, err)
	expr, ok := program.First().(*ast.If)
	require.True(t, ok)
	cond, ok := expr.Cond.(*ast.Infix)
	require.True(t, ok)
	_, ok = cond.Y.(*ast.StructLit)
	require.True(t, ok)
}

func TestPositionalStructUsesCallSyntax(t *testing.T) {
	// Positional structs are instantiated like functions, so the parser
	// produces a plain call node
	program, err := Parse(context.Background(), "Pair(1, 2)")
	require.NoError(t, err)
	_, ok := program.First().(*ast.Call)
	require.True(t, ok)
}

func TestPrefixExpressions(t *testing.T) {
	tests := []struct {
		input  string
		wantOp string
	}{
		{"-15", "-"},
		{"!ok", "!"},
		{"-x", "-"},
		{"!true", "!"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			program, err := Parse(context.Background(), tt.input)
			require.NoError(t, err)
			prefix, ok := program.First().(*ast.Prefix)
			require.True(t, ok)
			require.Equal(t, tt.wantOp, prefix.Op)
		})
	}
}

func TestInfixExpressions(t *testing.T) {
	tests := []struct {
		input     string
		wantLeft  int64
		wantOp    string
		wantRight int64
	}{
		{"5 + 5", 5, "+", 5},
		{"5 - 5", 5, "-", 5},
		{"5 * 5", 5, "*", 5},
		{"5 / 5", 5, "/", 5},
		{"5 > 5", 5, ">", 5},
		{"5 < 5", 5, "<", 5},
		{"5 == 5", 5, "==", 5},
		{"5 != 5", 5, "!=", 5},
		{"5 % 3", 5, "%", 3},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			program, err := Parse(context.Background(), tt.input)
			require.NoError(t, err)
			infix, ok := program.First().(*ast.Infix)
			require.True(t, ok)
			require.Equal(t, tt.wantOp, infix.Op)
			require.Equal(t, tt.wantLeft, infix.X.(*ast.Int).Value)
			require.Equal(t, tt.wantRight, infix.Y.(*ast.Int).Value)
		})
	}
}
