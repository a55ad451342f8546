package ast

import (
	"bytes"
	"strings"

	"github.com/marmoset-lang/marmoset/internal/token"
)

// Var is a statement that declares a new variable with an initial value,
// as in "let x = value". The left side may be any irrefutable pattern, so
// "let (a, b) = pair" and "let Point{x, y} = p" are also Var statements.
// A declaration without a value, "let x", initializes the variable to nil.
type Var struct {
	Let     token.Position // position of "let" keyword
	Mut     bool           // true if declared with "mut"
	Pattern Pattern        // binding pattern
	Type    *Ident         // ascribed type; nil if none
	Value   Expr           // initial value; nil for bare declarations
}

func (s *Var) stmtNode() {}

func (s *Var) Pos() token.Position { return s.Let }

func (s *Var) End() token.Position {
	if s.Value != nil {
		return s.Value.End()
	}
	if s.Type != nil {
		return s.Type.End()
	}
	return s.Pattern.End()
}

func (s *Var) String() string {
	var out bytes.Buffer
	out.WriteString("let ")
	if s.Mut {
		out.WriteString("mut ")
	}
	out.WriteString(s.Pattern.String())
	if s.Type != nil {
		out.WriteString(": ")
		out.WriteString(s.Type.Name)
	}
	if s.Value != nil {
		out.WriteString(" = ")
		out.WriteString(s.Value.String())
	}
	return out.String()
}

// Bind is a statement that draws a value out of a wrapped source, as in
// "let x <- source". Binds are only meaningful inside a comprehension body,
// where they expand into chained callbacks.
type Bind struct {
	Let     token.Position // position of "let" keyword
	Mut     bool           // true if declared with "mut"
	Pattern Pattern        // binding pattern
	Type    *Ident         // ascribed type; nil if none
	Arrow   token.Position // position of "<-"
	Value   Expr           // source expression
}

func (s *Bind) stmtNode() {}

func (s *Bind) Pos() token.Position { return s.Let }
func (s *Bind) End() token.Position { return s.Value.End() }

func (s *Bind) String() string {
	var out bytes.Buffer
	out.WriteString("let ")
	if s.Mut {
		out.WriteString("mut ")
	}
	out.WriteString(s.Pattern.String())
	if s.Type != nil {
		out.WriteString(": ")
		out.WriteString(s.Type.Name)
	}
	out.WriteString(" <- ")
	out.WriteString(s.Value.String())
	return out.String()
}

// Guard is a statement that filters a comprehension, as in "if x > 2".
// It is distinguished from an if expression by the missing braced body.
// Guards are only meaningful inside an iter comprehension body.
type Guard struct {
	If   token.Position // position of "if" keyword
	Cond Expr           // filter condition
}

func (s *Guard) stmtNode() {}

func (s *Guard) Pos() token.Position { return s.If }
func (s *Guard) End() token.Position { return s.Cond.End() }

func (s *Guard) String() string {
	return "if " + s.Cond.String()
}

// Return defines an early return from a function.
type Return struct {
	Return token.Position // position of "return" keyword
	Value  Expr           // return value; nil for a bare return
}

func (s *Return) stmtNode() {}

func (s *Return) Pos() token.Position { return s.Return }

func (s *Return) End() token.Position {
	if s.Value != nil {
		return s.Value.End()
	}
	return s.Return.Advance(6) // len("return")
}

func (s *Return) String() string {
	var out bytes.Buffer
	out.WriteString("return")
	if s.Value != nil {
		out.WriteString(" " + s.Value.String())
	}
	return out.String()
}

// ExprStmt is an expression evaluated in statement position for its side
// effects, marked by an explicit trailing semicolon. The wrapper only appears
// in comprehension bodies, where the semicolon distinguishes a discarded
// trailing expression, as in "option { f(); }", from the tail expression of
// the comprehension, as in "option { f() }".
type ExprStmt struct {
	X    Expr
	Semi token.Position // position of ";"
}

func (s *ExprStmt) stmtNode() {}

func (s *ExprStmt) Pos() token.Position { return s.X.Pos() }
func (s *ExprStmt) End() token.Position { return s.Semi.Advance(1) }

func (s *ExprStmt) String() string { return s.X.String() }

// Block is a node that holds a sequence of statements. This is used to
// represent the body of a function, comprehension, or conditional, and may
// also appear as a standalone statement.
type Block struct {
	Lbrace token.Position // position of "{"
	Stmts  []Node         // the statements in the block
	Rbrace token.Position // position of "}"
}

func (b *Block) stmtNode() {}

func (b *Block) Pos() token.Position { return b.Lbrace }
func (b *Block) End() token.Position { return b.Rbrace.Advance(1) }

// EndsWithReturn reports whether the final statement in the block is a
// return statement.
func (b *Block) EndsWithReturn() bool {
	count := len(b.Stmts)
	if count == 0 {
		return false
	}
	_, isReturn := b.Stmts[count-1].(*Return)
	return isReturn
}

func (b *Block) String() string {
	if len(b.Stmts) == 0 {
		return "{}"
	}
	var out bytes.Buffer
	out.WriteString("{ ")
	for i, s := range b.Stmts {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString(s.String())
		// Every statement gets a terminating semicolon except a trailing
		// expression, which is the value of the block.
		_, isExpr := s.(Expr)
		if !isExpr || i < len(b.Stmts)-1 {
			out.WriteString(";")
		}
	}
	out.WriteString(" }")
	return out.String()
}

// Assign is a statement node used to describe a variable assignment,
// including compound assignments like "x += 1".
type Assign struct {
	Name  *Ident         // target variable; nil for index assignments
	Index *Index         // target index expression; nil for name assignments
	OpPos token.Position // position of the operator
	Op    string         // "=", "+=", "-=", "*=", or "/="
	Value Expr           // the value being assigned
}

func (s *Assign) stmtNode() {}

func (s *Assign) Pos() token.Position {
	if s.Index != nil {
		return s.Index.Pos()
	}
	return s.Name.Pos()
}

func (s *Assign) End() token.Position { return s.Value.End() }

func (s *Assign) String() string {
	var out bytes.Buffer
	if s.Index != nil {
		out.WriteString(s.Index.String())
	} else {
		out.WriteString(s.Name.Name)
	}
	out.WriteString(" " + s.Op + " ")
	out.WriteString(s.Value.String())
	return out.String()
}

// SetAttr is a statement node that describes setting an attribute on an
// object, as in "point.x = 3".
type SetAttr struct {
	X      Expr           // object whose attribute is being set
	Period token.Position // position of "."
	Attr   *Ident         // the attribute name
	OpPos  token.Position // position of the operator
	Op     string         // "=", "+=", "-=", "*=", or "/="
	Value  Expr           // the value being assigned
}

func (s *SetAttr) stmtNode() {}

func (s *SetAttr) Pos() token.Position { return s.X.Pos() }
func (s *SetAttr) End() token.Position { return s.Value.End() }

func (s *SetAttr) String() string {
	var out bytes.Buffer
	out.WriteString(s.X.String())
	out.WriteString(".")
	out.WriteString(s.Attr.Name)
	out.WriteString(" " + s.Op + " ")
	out.WriteString(s.Value.String())
	return out.String()
}

// StructDecl is a statement that declares a named struct type. Structs come
// in two forms: positional ("struct Pair(first, second)") and named
// ("struct Point{x, y}"). Positional fields still carry names so that they
// are accessible both by position in patterns and by attribute.
type StructDecl struct {
	Struct token.Position // position of "struct" keyword
	Name   *Ident         // struct type name
	Open   token.Position // position of "(" or "{"
	Fields []*Ident       // field names in declaration order
	Close  token.Position // position of ")" or "}"
	Named  bool           // true for the braced form
}

func (s *StructDecl) stmtNode() {}

func (s *StructDecl) Pos() token.Position { return s.Struct }
func (s *StructDecl) End() token.Position { return s.Close.Advance(1) }

// FieldNames returns the declared field names in order.
func (s *StructDecl) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

func (s *StructDecl) String() string {
	var out bytes.Buffer
	out.WriteString("struct ")
	out.WriteString(s.Name.Name)
	fields := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		fields = append(fields, f.Name)
	}
	if s.Named {
		out.WriteString("{")
		out.WriteString(strings.Join(fields, ", "))
		out.WriteString("}")
	} else {
		out.WriteString("(")
		out.WriteString(strings.Join(fields, ", "))
		out.WriteString(")")
	}
	return out.String()
}
