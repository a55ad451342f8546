package eval

import (
	"context"
	"testing"
	"time"

	"github.com/marmoset-lang/marmoset/builtins"
	"github.com/marmoset-lang/marmoset/expand"
	"github.com/marmoset-lang/marmoset/object"
	"github.com/marmoset-lang/marmoset/parser"
	"github.com/stretchr/testify/require"
)

// run parses, expands, and evaluates source with the default builtins.
func run(t *testing.T, source string) (object.Object, error) {
	t.Helper()
	ctx := context.Background()
	program, err := parser.Parse(ctx, source)
	if err != nil {
		return nil, err
	}
	program, err = expand.Expand(program, expand.WithSource(source))
	if err != nil {
		return nil, err
	}
	ev := New(WithGlobals(builtins.Builtins()), WithSource(source))
	return ev.Eval(ctx, program)
}

func mustRun(t *testing.T, source string) object.Object {
	t.Helper()
	result, err := run(t, source)
	require.NoError(t, err)
	return result
}

func assertEqualObjects(t *testing.T, got, want object.Object) {
	t.Helper()
	require.True(t, object.Equals(got, want), "got %s, want %s", got.Inspect(), want.Inspect())
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  object.Object
	}{
		{"42", object.NewInt(42)},
		{"4.5", object.NewFloat(4.5)},
		{"true", object.True},
		{"false", object.False},
		{`"hello"`, object.NewString("hello")},
		{"nil", object.Nil},
		{"()", object.NewTuple(nil)},
		{"(1, 2)", object.NewTuple([]object.Object{object.NewInt(1), object.NewInt(2)})},
		{"[1, 2]", object.NewList([]object.Object{object.NewInt(1), object.NewInt(2)})},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assertEqualObjects(t, mustRun(t, tt.input), tt.want)
		})
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"10 - 4 / 2", 8},
		{"7 % 3", 1},
		{"-5 + 3", -2},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assertEqualObjects(t, mustRun(t, tt.input), object.NewInt(tt.want))
		})
	}
}

func TestComparisonsAndLogic(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1 < 2", true},
		{"2 <= 1", false},
		{"3 == 3", true},
		{"3 != 3", false},
		{`"a" < "b"`, true},
		{"true && false", false},
		{"true || false", true},
		{"1 < 2 && 2 < 3", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assertEqualObjects(t, mustRun(t, tt.input), object.NewBool(tt.want))
		})
	}
}

func TestShortCircuitLogic(t *testing.T) {
	// The right side of && must not be evaluated when the left is false.
	result := mustRun(t, `
let mut calls = 0
let bump = func() { calls = calls + 1; true }
let a = false && bump()
let b = true || bump()
calls`)
	assertEqualObjects(t, result, object.NewInt(0))
}

func TestVariables(t *testing.T) {
	result := mustRun(t, `
let x = 5
let mut y = x * 2
y = y + 1
y`)
	assertEqualObjects(t, result, object.NewInt(11))
}

func TestImmutableAssignmentFails(t *testing.T) {
	_, err := run(t, "let x = 1\nx = 2")
	require.Error(t, err)
	require.Contains(t, err.Error(), "immutable")
}

func TestUndefinedVariable(t *testing.T) {
	_, err := run(t, "let value = 1\nvalu")
	require.Error(t, err)
	require.Contains(t, err.Error(), "undefined variable")
	require.Contains(t, err.Error(), "value") // did-you-mean suggestion
}

func TestCompoundAssignment(t *testing.T) {
	result := mustRun(t, `
let mut x = 10
x += 5
x -= 3
x *= 2
x /= 4
x`)
	assertEqualObjects(t, result, object.NewInt(6))
}

func TestIfExpression(t *testing.T) {
	assertEqualObjects(t, mustRun(t, "if (1 < 2) { 10 } else { 20 }"), object.NewInt(10))
	assertEqualObjects(t, mustRun(t, "if (1 > 2) { 10 } else { 20 }"), object.NewInt(20))
	assertEqualObjects(t, mustRun(t, "if (1 > 2) { 10 }"), object.Nil)
}

func TestFunctions(t *testing.T) {
	result := mustRun(t, `
func add(a, b) {
	a + b
}
add(2, 3)`)
	assertEqualObjects(t, result, object.NewInt(5))
}

func TestFunctionEarlyReturn(t *testing.T) {
	result := mustRun(t, `
func classify(n) {
	if (n < 0) {
		return "negative"
	}
	"non-negative"
}
classify(-5)`)
	assertEqualObjects(t, result, object.NewString("negative"))
}

func TestClosureCapture(t *testing.T) {
	result := mustRun(t, `
func counter() {
	let mut count = 0
	func() { count = count + 1; count }
}
let next = counter()
next()
next()
next()`)
	assertEqualObjects(t, result, object.NewInt(3))
}

func TestFunctionWrongArgCount(t *testing.T) {
	_, err := run(t, "func f(a, b) { a }\nf(1)")
	require.Error(t, err)
	require.Contains(t, err.Error(), "2 arguments (1 given)")
}

func TestReturnOutsideFunction(t *testing.T) {
	_, err := run(t, "return 1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "return outside of a function")
}

func TestCallDepthLimit(t *testing.T) {
	ctx := context.Background()
	program, err := parser.Parse(ctx, "func f(n) { f(n + 1) }\nf(0)")
	require.NoError(t, err)
	ev := New(WithMaxCallDepth(50))
	_, err = ev.Eval(ctx, program)
	require.Error(t, err)
	require.Contains(t, err.Error(), "maximum call depth")
}

func TestBlockScoping(t *testing.T) {
	// A block's trailing expression is its value; names declared inside
	// do not leak out.
	result := mustRun(t, `
let x = 1
let y = if (true) { let x = 10; x + 1 }
(x, y)`)
	assertEqualObjects(t, result, object.NewTuple([]object.Object{
		object.NewInt(1), object.NewInt(11),
	}))
}

func TestRanges(t *testing.T) {
	result := mustRun(t, "list(0..4)")
	assertEqualObjects(t, result, object.NewList([]object.Object{
		object.NewInt(0), object.NewInt(1), object.NewInt(2), object.NewInt(3),
	}))
}

func TestIndexing(t *testing.T) {
	assertEqualObjects(t, mustRun(t, "[10, 20, 30][1]"), object.NewInt(20))
	assertEqualObjects(t, mustRun(t, `{"a": 1}["a"]`), object.NewInt(1))
	assertEqualObjects(t, mustRun(t, "(1, 2)[0]"), object.NewInt(1))

	_, err := run(t, "[1][5]")
	require.Error(t, err)
}

func TestIndexAssignment(t *testing.T) {
	result := mustRun(t, `
let items = [1, 2, 3]
items[1] = 20
items[2] += 5
items`)
	assertEqualObjects(t, result, object.NewList([]object.Object{
		object.NewInt(1), object.NewInt(20), object.NewInt(8),
	}))
}

func TestStructs(t *testing.T) {
	result := mustRun(t, `
struct Point{x, y}
let p = Point{x: 1, y: 2}
p.x + p.y`)
	assertEqualObjects(t, result, object.NewInt(3))
}

func TestPositionalStructs(t *testing.T) {
	result := mustRun(t, `
struct Pair(first, second)
let p = Pair(1, 2)
p.first + p.second`)
	assertEqualObjects(t, result, object.NewInt(3))
}

func TestStructLitErrors(t *testing.T) {
	_, err := run(t, "struct Point{x, y}\nPoint{x: 1}")
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing field")

	_, err = run(t, "struct Point{x, y}\nPoint{x: 1, y: 2, z: 3}")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no field")
}

func TestStructAttrAssignment(t *testing.T) {
	result := mustRun(t, `
struct Point{x, y}
let p = Point{x: 1, y: 2}
p.x = 10
p.y += 1
(p.x, p.y)`)
	assertEqualObjects(t, result, object.NewTuple([]object.Object{
		object.NewInt(10), object.NewInt(3),
	}))
}

func TestMethodCalls(t *testing.T) {
	result := mustRun(t, `[3, 1, 2].map(func(x) { x * 10 })`)
	assertEqualObjects(t, result, object.NewList([]object.Object{
		object.NewInt(30), object.NewInt(10), object.NewInt(20),
	}))
}

func TestAttrSuggestions(t *testing.T) {
	_, err := run(t, "Some(1).and_them(func(x) { Some(x) })")
	require.Error(t, err)
	require.Contains(t, err.Error(), "and_then")
}

func TestUnexpandedComprehension(t *testing.T) {
	// Evaluating without the expand pass is an explicit error, not a
	// silent fallback.
	ctx := context.Background()
	program, err := parser.Parse(ctx, "option { let x <- Some(1); x }")
	require.NoError(t, err)
	ev := New(WithGlobals(builtins.Builtins()))
	_, err = ev.Eval(ctx, program)
	require.Error(t, err)
	require.Contains(t, err.Error(), "was not expanded")
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	program, err := parser.Parse(ctx, "func spin(n) { spin(n) }\nspin(0)")
	require.NoError(t, err)
	ev := New(WithMaxCallDepth(1 << 30))
	_, err = ev.Eval(ctx, program)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEvalEmptyProgram(t *testing.T) {
	ctx := context.Background()
	program, err := parser.Parse(ctx, "")
	require.NoError(t, err)
	result, err := New().Eval(ctx, program)
	require.NoError(t, err)
	assertEqualObjects(t, result, object.Nil)
}

func TestEvalNilProgram(t *testing.T) {
	_, err := New().Eval(context.Background(), nil)
	require.Error(t, err)
}

func TestRuntimeErrorLocation(t *testing.T) {
	_, err := run(t, "let x = 1\nx + \"a\"")
	require.Error(t, err)
	require.Contains(t, err.Error(), "(2:3)")
}
