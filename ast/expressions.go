package ast

import (
	"bytes"
	"strings"

	"github.com/marmoset-lang/marmoset/internal/token"
)

// Ident is an expression node that refers to a variable by name.
type Ident struct {
	NamePos token.Position // position of identifier
	Name    string         // identifier name
}

func (x *Ident) exprNode() {}

func (x *Ident) Pos() token.Position { return x.NamePos }
func (x *Ident) End() token.Position { return x.NamePos.Advance(len(x.Name)) }

func (x *Ident) String() string { return x.Name }

// Prefix is an operator expression where the operator precedes the operand.
// Examples include "!false" and "-x".
type Prefix struct {
	OpPos token.Position // position of operator
	Op    string         // operator: "!" or "-"
	X     Expr           // operand
}

func (x *Prefix) exprNode() {}

func (x *Prefix) Pos() token.Position { return x.OpPos }
func (x *Prefix) End() token.Position { return x.X.End() }

func (x *Prefix) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.Op)
	out.WriteString(x.X.String())
	out.WriteString(")")
	return out.String()
}

// Infix is an operator expression where the operator is between the operands.
// Examples include "x + y" and "5 - 1".
type Infix struct {
	X     Expr           // left operand
	OpPos token.Position // position of operator
	Op    string         // operator: "+", "-", "*", "/", etc.
	Y     Expr           // right operand
}

func (x *Infix) exprNode() {}

func (x *Infix) Pos() token.Position { return x.X.Pos() }
func (x *Infix) End() token.Position { return x.Y.End() }

func (x *Infix) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.X.String())
	out.WriteString(" " + x.Op + " ")
	out.WriteString(x.Y.String())
	out.WriteString(")")
	return out.String()
}

// If is an expression node that represents an if/else expression. The value
// of the expression is the value of the taken branch.
type If struct {
	If          token.Position // position of "if" keyword
	Lparen      token.Position // position of "("
	Cond        Expr           // condition
	Rparen      token.Position // position of ")"
	Consequence *Block         // then branch
	Alternative *Block         // else branch; nil if no else
}

func (x *If) exprNode() {}

func (x *If) Pos() token.Position { return x.If }
func (x *If) End() token.Position {
	if x.Alternative != nil {
		return x.Alternative.End()
	}
	return x.Consequence.End()
}

func (x *If) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(x.Cond.String())
	out.WriteString(") ")
	out.WriteString(x.Consequence.String())
	if x.Alternative != nil {
		out.WriteString(" else ")
		out.WriteString(x.Alternative.String())
	}
	return out.String()
}

// Call is an expression node that describes the invocation of a function.
type Call struct {
	Fun    Expr           // function expression
	Lparen token.Position // position of "("
	Args   []Expr         // function arguments
	Rparen token.Position // position of ")"
}

func (x *Call) exprNode() {}

func (x *Call) Pos() token.Position { return x.Fun.Pos() }
func (x *Call) End() token.Position { return x.Rparen.Advance(1) }

func (x *Call) String() string {
	var out bytes.Buffer
	args := make([]string, 0, len(x.Args))
	for _, a := range x.Args {
		args = append(args, a.String())
	}
	out.WriteString(x.Fun.String())
	out.WriteString("(")
	out.WriteString(strings.Join(args, ", "))
	out.WriteString(")")
	return out.String()
}

// GetAttr is an expression node that describes the access of an attribute on
// an object.
type GetAttr struct {
	X      Expr           // object expression
	Period token.Position // position of "."
	Attr   *Ident         // attribute name
}

func (x *GetAttr) exprNode() {}

func (x *GetAttr) Pos() token.Position { return x.X.Pos() }
func (x *GetAttr) End() token.Position { return x.Attr.End() }

func (x *GetAttr) String() string {
	var out bytes.Buffer
	out.WriteString(x.X.String())
	out.WriteString(".")
	out.WriteString(x.Attr.Name)
	return out.String()
}

// ObjectCall is an expression node that describes the invocation of a method
// on an object.
type ObjectCall struct {
	X      Expr           // object expression
	Period token.Position // position of "."
	Call   *Call          // method call
}

func (x *ObjectCall) exprNode() {}

func (x *ObjectCall) Pos() token.Position { return x.X.Pos() }
func (x *ObjectCall) End() token.Position { return x.Call.End() }

func (x *ObjectCall) String() string {
	var out bytes.Buffer
	out.WriteString(x.X.String())
	out.WriteString(".")
	out.WriteString(x.Call.String())
	return out.String()
}

// Index is an expression node that describes indexing on an object.
type Index struct {
	X      Expr           // object expression
	Lbrack token.Position // position of "["
	Index  Expr           // index expression
	Rbrack token.Position // position of "]"
}

func (x *Index) exprNode() {}

func (x *Index) Pos() token.Position { return x.X.Pos() }
func (x *Index) End() token.Position { return x.Rbrack.Advance(1) }

func (x *Index) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.X.String())
	out.WriteString("[")
	out.WriteString(x.Index.String())
	out.WriteString("])")
	return out.String()
}

// Tuple is an expression node that builds a fixed-size tuple. A one element
// tuple requires a trailing comma to distinguish it from a grouped
// expression: "(1,)". The empty tuple "()" is the unit value.
type Tuple struct {
	Lparen token.Position // position of "("
	Elems  []Expr         // tuple elements
	Rparen token.Position // position of ")"
}

func (x *Tuple) exprNode() {}

func (x *Tuple) Pos() token.Position { return x.Lparen }
func (x *Tuple) End() token.Position { return x.Rparen.Advance(1) }

func (x *Tuple) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	for i, el := range x.Elems {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(el.String())
	}
	if len(x.Elems) == 1 {
		out.WriteString(",")
	}
	out.WriteString(")")
	return out.String()
}

// Range is an expression node that describes a half-open integer range,
// as in "0..4" which contains 0, 1, 2, and 3.
type Range struct {
	Low    Expr           // start of range (inclusive)
	DotDot token.Position // position of ".."
	High   Expr           // end of range (exclusive)
}

func (x *Range) exprNode() {}

func (x *Range) Pos() token.Position { return x.Low.Pos() }
func (x *Range) End() token.Position { return x.High.End() }

func (x *Range) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.Low.String())
	out.WriteString("..")
	out.WriteString(x.High.String())
	out.WriteString(")")
	return out.String()
}

// Comprehension is an expression node holding a sequence of sentences that
// are expanded into chained callback calls before evaluation. The keyword
// selects the expansion flavor: "option", "result", or "iter".
type Comprehension struct {
	KeywordPos token.Position // position of the keyword
	Keyword    string         // "option", "result", or "iter"
	Body       *Block         // comprehension body
}

func (x *Comprehension) exprNode() {}

func (x *Comprehension) Pos() token.Position { return x.KeywordPos }
func (x *Comprehension) End() token.Position { return x.Body.End() }

func (x *Comprehension) String() string {
	var out bytes.Buffer
	out.WriteString(x.Keyword)
	out.WriteString(" ")
	out.WriteString(x.Body.String())
	return out.String()
}
