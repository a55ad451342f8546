package parser

import (
	"context"
	"testing"

	"github.com/marmoset-lang/marmoset/ast"
	"github.com/stretchr/testify/require"
)

func TestLetStatement(t *testing.T) {
	tests := []struct {
		input    string
		wantName string
		wantMut  bool
		wantStr  string
	}{
		{"let x = 5", "x", false, "let x = 5"},
		{"let y = true", "y", false, "let y = true"},
		{"let s = \"marmoset\"", "s", false, `let s = "marmoset"`},
		{"let mut count = 0", "count", true, "let mut count = 0"},
		{"let x = y", "x", false, "let x = y"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			program, err := Parse(context.Background(), tt.input)
			require.NoError(t, err)
			require.Len(t, program.Stmts, 1)

			stmt, ok := program.First().(*ast.Var)
			require.True(t, ok)
			require.Equal(t, tt.wantMut, stmt.Mut)
			pattern, ok := stmt.Pattern.(*ast.IdentPattern)
			require.True(t, ok)
			require.Equal(t, tt.wantName, pattern.Name)
			require.NotNil(t, stmt.Value)
			require.Equal(t, tt.wantStr, stmt.String())
		})
	}
}

func TestLetWithoutValue(t *testing.T) {
	program, err := Parse(context.Background(), "let x")
	require.NoError(t, err)
	stmt, ok := program.First().(*ast.Var)
	require.True(t, ok)
	require.Nil(t, stmt.Value)
	require.Equal(t, "let x", stmt.String())
}

func TestLetWithTypeAscription(t *testing.T) {
	program, err := Parse(context.Background(), "let x: int = 5")
	require.NoError(t, err)
	stmt, ok := program.First().(*ast.Var)
	require.True(t, ok)
	require.NotNil(t, stmt.Type)
	require.Equal(t, "int", stmt.Type.Name)
	require.Equal(t, "let x: int = 5", stmt.String())

	program, err = Parse(context.Background(), "let mut ratio: float = 1.5")
	require.NoError(t, err)
	stmt, ok = program.First().(*ast.Var)
	require.True(t, ok)
	require.True(t, stmt.Mut)
	require.Equal(t, "float", stmt.Type.Name)
}

func TestLetDestructuring(t *testing.T) {
	tests := []struct {
		input     string
		wantNames []string
		wantStr   string
	}{
		{"let (a, b) = pair", []string{"a", "b"}, "let (a, b) = pair"},
		{"let (a, b, c) = triple", []string{"a", "b", "c"}, "let (a, b, c) = triple"},
		{"let (x,) = single", []string{"x"}, "let (x,) = single"},
		{"let (a, (b, c)) = nested", []string{"a", "b", "c"}, "let (a, (b, c)) = nested"},
		{"let Pair(first, second) = p", []string{"first", "second"}, "let Pair(first, second) = p"},
		{"let Point{x, y} = p", []string{"x", "y"}, "let Point{x, y} = p"},
		{"let Point{x: px, y} = p", []string{"px", "y"}, "let Point{x: px, y} = p"},
		{"let (a, _) = pair", []string{"a"}, "let (a, _) = pair"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			program, err := Parse(context.Background(), tt.input)
			require.NoError(t, err)
			stmt, ok := program.First().(*ast.Var)
			require.True(t, ok)
			require.Equal(t, tt.wantNames, stmt.Pattern.Names())
			require.Equal(t, tt.wantStr, stmt.String())
		})
	}
}

func TestParenthesizedPatternIsNotTuple(t *testing.T) {
	// "(x)" collapses to a plain identifier pattern; "(x,)" is a 1-tuple
	program, err := Parse(context.Background(), "let (x) = v")
	require.NoError(t, err)
	stmt := program.First().(*ast.Var)
	_, ok := stmt.Pattern.(*ast.IdentPattern)
	require.True(t, ok)

	program, err = Parse(context.Background(), "let (x,) = v")
	require.NoError(t, err)
	stmt = program.First().(*ast.Var)
	tuple, ok := stmt.Pattern.(*ast.TuplePattern)
	require.True(t, ok)
	require.Len(t, tuple.Elems, 1)
}

func TestWildcardPattern(t *testing.T) {
	program, err := Parse(context.Background(), "let _ = ignore()")
	require.NoError(t, err)
	stmt := program.First().(*ast.Var)
	pattern, ok := stmt.Pattern.(*ast.IdentPattern)
	require.True(t, ok)
	require.True(t, pattern.IsWildcard())
	require.Empty(t, pattern.Names())
}

func TestLetErrors(t *testing.T) {
	tests := []struct {
		input   string
		wantErr string
	}{
		{"let mut (a, b) = p", "mut requires a single identifier"},
		{"let (a, b)", "let statement is missing a value"},
		{"let _", "let statement is missing a value"},
		{"let 5 = 3", "unexpected 5 while parsing let statement (expected identifier)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(context.Background(), tt.input)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBindStatement(t *testing.T) {
	tests := []struct {
		input     string
		wantNames []string
		wantMut   bool
		wantStr   string
	}{
		{"let x <- source()", []string{"x"}, false, "let x <- source()"},
		{"let mut x <- source()", []string{"x"}, true, "let mut x <- source()"},
		{"let (a, b) <- pairs", []string{"a", "b"}, false, "let (a, b) <- pairs"},
		{"let Point{x, y} <- points", []string{"x", "y"}, false, "let Point{x, y} <- points"},
		{"let _ <- effects", nil, false, "let _ <- effects"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			program, err := Parse(context.Background(), tt.input)
			require.NoError(t, err)
			require.Len(t, program.Stmts, 1)

			bind, ok := program.First().(*ast.Bind)
			require.True(t, ok)
			require.Equal(t, tt.wantMut, bind.Mut)
			require.Equal(t, tt.wantNames, bind.Pattern.Names())
			require.NotNil(t, bind.Value)
			require.Equal(t, tt.wantStr, bind.String())
		})
	}
}

func TestBindWithTypeAscription(t *testing.T) {
	program, err := Parse(context.Background(), "let x: int <- xs")
	require.NoError(t, err)
	bind, ok := program.First().(*ast.Bind)
	require.True(t, ok)
	require.Equal(t, "int", bind.Type.Name)
	require.Equal(t, "let x: int <- xs", bind.String())
}

func TestStructDeclaration(t *testing.T) {
	t.Run("positional", func(t *testing.T) {
		program, err := Parse(context.Background(), "struct Pair(first, second)")
		require.NoError(t, err)
		decl, ok := program.First().(*ast.StructDecl)
		require.True(t, ok)
		require.Equal(t, "Pair", decl.Name.Name)
		require.False(t, decl.Named)
		require.Equal(t, []string{"first", "second"}, decl.FieldNames())
		require.Equal(t, "struct Pair(first, second)", decl.String())
	})

	t.Run("named", func(t *testing.T) {
		program, err := Parse(context.Background(), "struct Point{x, y}")
		require.NoError(t, err)
		decl, ok := program.First().(*ast.StructDecl)
		require.True(t, ok)
		require.Equal(t, "Point", decl.Name.Name)
		require.True(t, decl.Named)
		require.Equal(t, []string{"x", "y"}, decl.FieldNames())
		require.Equal(t, "struct Point{x, y}", decl.String())
	})

	t.Run("empty", func(t *testing.T) {
		program, err := Parse(context.Background(), "struct Unit()")
		require.NoError(t, err)
		decl := program.First().(*ast.StructDecl)
		require.Empty(t, decl.FieldNames())
	})

	t.Run("multiline", func(t *testing.T) {
		input := "struct Config{\n\thost,\n\tport,\n}"
		program, err := Parse(context.Background(), input)
		require.NoError(t, err)
		decl := program.First().(*ast.StructDecl)
		require.Equal(t, []string{"host", "port"}, decl.FieldNames())
	})
}

func TestStructDeclarationErrors(t *testing.T) {
	tests := []struct {
		input   string
		wantErr string
	}{
		{"struct P(1)", "unexpected 1 while parsing a field name (expected identifier)"},
		{"struct P{", "unexpected end of file while parsing a field name (expected identifier)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(context.Background(), tt.input)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAssignStatements(t *testing.T) {
	tests := []struct {
		input  string
		wantOp string
	}{
		{"x = 5", "="},
		{"x += 1", "+="},
		{"x -= 2", "-="},
		{"x *= 3", "*="},
		{"x /= 4", "/="},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			program, err := Parse(context.Background(), tt.input)
			require.NoError(t, err)
			assign, ok := program.First().(*ast.Assign)
			require.True(t, ok)
			require.Equal(t, tt.wantOp, assign.Op)
			require.Equal(t, "x", assign.Name.Name)
			require.Nil(t, assign.Index)
		})
	}
}

func TestIndexAssignment(t *testing.T) {
	program, err := Parse(context.Background(), "xs[0] = 99")
	require.NoError(t, err)
	assign, ok := program.First().(*ast.Assign)
	require.True(t, ok)
	require.Nil(t, assign.Name)
	require.NotNil(t, assign.Index)
	require.Equal(t, "(xs[0]) = 99", assign.String())
}

func TestAttrAssignment(t *testing.T) {
	tests := []struct {
		input  string
		wantOp string
	}{
		{"p.x = 1", "="},
		{"p.x += 2", "+="},
		{"p.x -= 3", "-="},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			program, err := Parse(context.Background(), tt.input)
			require.NoError(t, err)
			set, ok := program.First().(*ast.SetAttr)
			require.True(t, ok)
			require.Equal(t, tt.wantOp, set.Op)
			require.Equal(t, "x", set.Attr.Name)
		})
	}
}

func TestReturnStatement(t *testing.T) {
	t.Run("bare return", func(t *testing.T) {
		program, err := Parse(context.Background(), "func f() { return }")
		require.NoError(t, err)
		fn := program.First().(*ast.Func)
		require.Len(t, fn.Body.Stmts, 1)
		ret, ok := fn.Body.Stmts[0].(*ast.Return)
		require.True(t, ok)
		require.Nil(t, ret.Value)
		require.Equal(t, "return", ret.String())
	})

	t.Run("return value", func(t *testing.T) {
		program, err := Parse(context.Background(), "func f() { return 42 }")
		require.NoError(t, err)
		fn := program.First().(*ast.Func)
		ret := fn.Body.Stmts[0].(*ast.Return)
		require.NotNil(t, ret.Value)
		require.Equal(t, "return 42", ret.String())
	})

	t.Run("return tuple", func(t *testing.T) {
		program, err := Parse(context.Background(), "func f() { return (a, b) }")
		require.NoError(t, err)
		fn := program.First().(*ast.Func)
		ret := fn.Body.Stmts[0].(*ast.Return)
		_, ok := ret.Value.(*ast.Tuple)
		require.True(t, ok)
	})

	t.Run("block ends with return", func(t *testing.T) {
		program, err := Parse(context.Background(), "func f() { return 1 }")
		require.NoError(t, err)
		fn := program.First().(*ast.Func)
		require.True(t, fn.Body.EndsWithReturn())
	})
}

func TestNamedFunctionStatement(t *testing.T) {
	program, err := Parse(context.Background(), "func add(a, b) { a + b }")
	require.NoError(t, err)
	fn, ok := program.First().(*ast.Func)
	require.True(t, ok)
	require.Equal(t, "add", fn.Name.Name)
	require.Equal(t, []string{"a", "b"}, fn.ParamNames())
}
