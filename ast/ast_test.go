package ast

import (
	"testing"

	"github.com/marmoset-lang/marmoset/internal/token"
)

func TestString(t *testing.T) {
	program := &Program{
		Stmts: []Node{
			&Var{
				Let: token.Position{Line: 1, Column: 1},
				Pattern: &IdentPattern{
					NamePos: token.Position{Line: 1, Column: 5},
					Name:    "myVar",
				},
				Value: &Ident{
					NamePos: token.Position{Line: 1, Column: 13},
					Name:    "anotherVar",
				},
			},
		},
	}
	if program.String() != "let myVar = anotherVar" {
		t.Errorf("program.String() wrong. got=%q", program.String())
	}
}

func TestVarString(t *testing.T) {
	tests := []struct {
		node     Node
		expected string
	}{
		{
			&Var{
				Mut:     true,
				Pattern: &IdentPattern{Name: "x"},
				Value:   &Int{Literal: "5", Value: 5},
			},
			"let mut x = 5",
		},
		{
			&Var{
				Pattern: &IdentPattern{Name: "x"},
				Type:    &Ident{Name: "int"},
				Value:   &Int{Literal: "5", Value: 5},
			},
			"let x: int = 5",
		},
		{
			&Var{
				Pattern: &TuplePattern{Elems: []Pattern{
					&IdentPattern{Name: "a"},
					&IdentPattern{Name: "_"},
				}},
				Value: &Ident{Name: "pair"},
			},
			"let (a, _) = pair",
		},
		{
			&Var{Pattern: &IdentPattern{Name: "x"}},
			"let x",
		},
		{
			&Bind{
				Pattern: &IdentPattern{Name: "x"},
				Value: &Call{
					Fun:  &Ident{Name: "Some"},
					Args: []Expr{&Int{Literal: "1", Value: 1}},
				},
			},
			"let x <- Some(1)",
		},
		{
			&Bind{
				Mut:     true,
				Pattern: &IdentPattern{Name: "y"},
				Value:   &Ident{Name: "src"},
			},
			"let mut y <- src",
		},
		{
			&Guard{Cond: &Infix{
				X:  &Ident{Name: "x"},
				Op: ">",
				Y:  &Int{Literal: "2", Value: 2},
			}},
			"if (x > 2)",
		},
	}
	for _, tt := range tests {
		if got := tt.node.String(); got != tt.expected {
			t.Errorf("String() wrong. got=%q, want=%q", got, tt.expected)
		}
	}
}

func TestPatternNames(t *testing.T) {
	tests := []struct {
		pattern  Pattern
		expected []string
	}{
		{&IdentPattern{Name: "x"}, []string{"x"}},
		{&IdentPattern{Name: "_"}, nil},
		{
			&TuplePattern{Elems: []Pattern{
				&IdentPattern{Name: "a"},
				&IdentPattern{Name: "_"},
				&IdentPattern{Name: "b"},
			}},
			[]string{"a", "b"},
		},
		{
			&StructPattern{
				Name: &Ident{Name: "Pair"},
				Positional: []Pattern{
					&IdentPattern{Name: "first"},
					&IdentPattern{Name: "_"},
				},
			},
			[]string{"first"},
		},
		{
			&StructPattern{
				Name:  &Ident{Name: "Point"},
				Named: true,
				Fields: []*FieldPattern{
					{Key: &Ident{Name: "x"}},
					{Key: &Ident{Name: "y"}, Value: &IdentPattern{Name: "other"}},
					{Key: &Ident{Name: "z"}, Value: &IdentPattern{Name: "_"}},
				},
			},
			[]string{"x", "other"},
		},
	}
	for _, tt := range tests {
		got := tt.pattern.Names()
		if len(got) != len(tt.expected) {
			t.Errorf("Names() for %q wrong. got=%v, want=%v", tt.pattern.String(), got, tt.expected)
			continue
		}
		for i := range got {
			if got[i] != tt.expected[i] {
				t.Errorf("Names() for %q wrong. got=%v, want=%v", tt.pattern.String(), got, tt.expected)
			}
		}
	}
}

func TestPatternString(t *testing.T) {
	tests := []struct {
		pattern  Pattern
		expected string
	}{
		{&IdentPattern{Name: "x"}, "x"},
		{
			&TuplePattern{Elems: []Pattern{&IdentPattern{Name: "a"}}},
			"(a,)",
		},
		{
			&StructPattern{
				Name:  &Ident{Name: "Point"},
				Named: true,
				Fields: []*FieldPattern{
					{Key: &Ident{Name: "x"}},
					{Key: &Ident{Name: "y"}, Value: &IdentPattern{Name: "_"}},
				},
			},
			"Point{x, y: _}",
		},
		{
			&StructPattern{
				Name: &Ident{Name: "Pair"},
				Positional: []Pattern{
					&IdentPattern{Name: "a"},
					&IdentPattern{Name: "b"},
				},
			},
			"Pair(a, b)",
		},
	}
	for _, tt := range tests {
		if got := tt.pattern.String(); got != tt.expected {
			t.Errorf("String() wrong. got=%q, want=%q", got, tt.expected)
		}
	}
}

func TestComprehensionString(t *testing.T) {
	node := &Comprehension{
		Keyword: "option",
		Body: &Block{
			Stmts: []Node{
				&Bind{
					Pattern: &IdentPattern{Name: "a"},
					Value: &Call{
						Fun:  &Ident{Name: "Some"},
						Args: []Expr{&Int{Literal: "1", Value: 1}},
					},
				},
				&Infix{
					X:  &Ident{Name: "a"},
					Op: "+",
					Y:  &Int{Literal: "1", Value: 1},
				},
			},
		},
	}
	expected := "option { let a <- Some(1); (a + 1) }"
	if got := node.String(); got != expected {
		t.Errorf("String() wrong. got=%q, want=%q", got, expected)
	}
}

func TestTupleString(t *testing.T) {
	tests := []struct {
		node     Expr
		expected string
	}{
		{&Tuple{}, "()"},
		{&Tuple{Elems: []Expr{&Int{Literal: "1", Value: 1}}}, "(1,)"},
		{
			&Tuple{Elems: []Expr{
				&Int{Literal: "1", Value: 1},
				&Int{Literal: "2", Value: 2},
			}},
			"(1, 2)",
		},
		{
			&Range{
				Low:  &Int{Literal: "0", Value: 0},
				High: &Int{Literal: "4", Value: 4},
			},
			"(0..4)",
		},
	}
	for _, tt := range tests {
		if got := tt.node.String(); got != tt.expected {
			t.Errorf("String() wrong. got=%q, want=%q", got, tt.expected)
		}
	}
}

func TestBadExpr(t *testing.T) {
	from := token.Position{Line: 1, Column: 5, File: "test.mar"}
	to := token.Position{Line: 1, Column: 15, File: "test.mar"}

	bad := &BadExpr{From: from, To: to}

	// Test Pos() returns From
	if bad.Pos() != from {
		t.Errorf("BadExpr.Pos() = %v, want %v", bad.Pos(), from)
	}

	// Test End() returns To
	if bad.End() != to {
		t.Errorf("BadExpr.End() = %v, want %v", bad.End(), to)
	}

	// Test String() returns placeholder
	expected := "<bad expression>"
	if bad.String() != expected {
		t.Errorf("BadExpr.String() = %q, want %q", bad.String(), expected)
	}

	// Test that BadExpr implements Expr interface
	var _ Expr = bad
}

func TestBadStmt(t *testing.T) {
	from := token.Position{Line: 2, Column: 1, File: "test.mar"}
	to := token.Position{Line: 2, Column: 20, File: "test.mar"}

	bad := &BadStmt{From: from, To: to}

	// Test Pos() returns From
	if bad.Pos() != from {
		t.Errorf("BadStmt.Pos() = %v, want %v", bad.Pos(), from)
	}

	// Test End() returns To
	if bad.End() != to {
		t.Errorf("BadStmt.End() = %v, want %v", bad.End(), to)
	}

	// Test String() returns placeholder
	expected := "<bad statement>"
	if bad.String() != expected {
		t.Errorf("BadStmt.String() = %q, want %q", bad.String(), expected)
	}

	// Test that BadStmt implements Stmt interface
	var _ Stmt = bad
}

func TestBadStmtInProgram(t *testing.T) {
	// Test that BadStmt can be included in a program
	program := &Program{
		Stmts: []Node{
			&BadStmt{
				From: token.Position{Line: 1, Column: 1},
				To:   token.Position{Line: 1, Column: 10},
			},
			&Var{
				Let: token.Position{Line: 2, Column: 1},
				Pattern: &IdentPattern{
					NamePos: token.Position{Line: 2, Column: 5},
					Name:    "x",
				},
				Value: &Int{
					ValuePos: token.Position{Line: 2, Column: 9},
					Value:    42,
				},
			},
		},
	}

	// Verify the program has both statements
	if len(program.Stmts) != 2 {
		t.Errorf("Expected 2 statements, got %d", len(program.Stmts))
	}

	// Verify BadStmt is first
	if _, ok := program.Stmts[0].(*BadStmt); !ok {
		t.Error("First statement should be BadStmt")
	}
}
