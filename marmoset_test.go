package marmoset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marmoset-lang/marmoset/object"
)

func TestEval(t *testing.T) {
	ctx := context.Background()
	result, err := Eval(ctx, "let x = 2; x * 3")
	require.NoError(t, err)
	require.Equal(t, int64(6), result)
}

func TestEvalWithBuiltins(t *testing.T) {
	ctx := context.Background()
	result, err := Eval(ctx, `len("hello")`, WithGlobals(Builtins()))
	require.NoError(t, err)
	require.Equal(t, int64(5), result)
}

func TestEvalModule(t *testing.T) {
	ctx := context.Background()
	result, err := Eval(ctx, "math.abs(-3)", WithGlobals(Builtins()))
	require.NoError(t, err)
	require.Equal(t, int64(3), result)
}

func TestEvalComprehension(t *testing.T) {
	ctx := context.Background()
	result, err := Eval(ctx, `
		let total = option {
			let a <- Some(2);
			let b <- Some(3);
			a + b
		}
		total
	`, WithGlobals(Builtins()))
	require.NoError(t, err)
	// Options convert to their inner Go value
	require.Equal(t, int64(5), result)
}

func TestParseAndRun(t *testing.T) {
	ctx := context.Background()
	program, err := Parse(ctx, "1 + 2")
	require.NoError(t, err)
	require.Equal(t, "1 + 2", program.Source())

	result, err := Run(ctx, program)
	require.NoError(t, err)
	require.Equal(t, int64(3), result)
}

func TestParseError(t *testing.T) {
	_, err := Parse(context.Background(), "let = 5")
	require.Error(t, err)
}

func TestParseValidationError(t *testing.T) {
	// A bind outside a comprehension parses but fails validation.
	_, err := Parse(context.Background(), "func f() { let x <- Some(1); x }")
	require.Error(t, err)
}

func TestEvalRuntimeError(t *testing.T) {
	_, err := Eval(context.Background(), "missing()")
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing")
}

func TestWithGlobal(t *testing.T) {
	ctx := context.Background()
	result, err := Eval(ctx, "answer + 1", WithGlobal("answer", object.NewInt(41)))
	require.NoError(t, err)
	require.Equal(t, int64(42), result)
}

func TestWithoutGlobal(t *testing.T) {
	ctx := context.Background()
	_, err := Eval(ctx, "math.abs(-3)",
		WithGlobals(Builtins()), WithoutGlobal("math"))
	require.Error(t, err)
}

func TestWithFilename(t *testing.T) {
	program, err := Parse(context.Background(), "1 + 2", WithFilename("script.marm"))
	require.NoError(t, err)
	require.Equal(t, "script.marm", program.Filename())
}

func TestExpandString(t *testing.T) {
	ctx := context.Background()
	expanded, err := ExpandString(ctx, "option { let x <- Some(1); x }")
	require.NoError(t, err)
	require.Contains(t, expanded, "and_then")
	require.NotContains(t, expanded, "<-")
}

func TestBuiltinsContents(t *testing.T) {
	env := Builtins()
	for _, name := range []string{
		"Some", "None", "Ok", "Err", "len", "list", "print",
		"filepath", "fmt", "math", "rand", "regexp", "strings", "time",
	} {
		require.Contains(t, env, name)
	}
}

func TestProgramConcurrentRun(t *testing.T) {
	ctx := context.Background()
	program, err := Parse(ctx,
		"let xs = [1, 2, 3]; xs.map(func(x) { x * x }).reduce(0, func(acc, x) { acc + x })",
		WithGlobals(Builtins()))
	require.NoError(t, err)

	done := make(chan error, 4)
	for i := 0; i < 4; i++ {
		go func() {
			result, err := Run(ctx, program, WithGlobals(Builtins()))
			if err == nil && result != int64(14) {
				t.Errorf("unexpected result: %v", result)
			}
			done <- err
		}()
	}
	for i := 0; i < 4; i++ {
		require.NoError(t, <-done)
	}
}
