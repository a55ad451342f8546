package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/marmoset-lang/marmoset/internal/token"
)

// Int is an expression node that holds an integer literal.
type Int struct {
	ValuePos token.Position // position of the literal
	Literal  string         // the literal text (e.g., "42", "0x2a")
	Value    int64          // the parsed value
}

func (x *Int) exprNode() {}

func (x *Int) Pos() token.Position { return x.ValuePos }
func (x *Int) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Int) String() string { return x.Literal }

// Float is an expression node that holds a floating point literal.
type Float struct {
	ValuePos token.Position // position of the literal
	Literal  string         // the literal text
	Value    float64        // the parsed value
}

func (x *Float) exprNode() {}

func (x *Float) Pos() token.Position { return x.ValuePos }
func (x *Float) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Float) String() string { return x.Literal }

// Nil is an expression node that holds a nil literal.
type Nil struct {
	NilPos token.Position // position of "nil" keyword
}

func (x *Nil) exprNode() {}

func (x *Nil) Pos() token.Position { return x.NilPos }
func (x *Nil) End() token.Position { return x.NilPos.Advance(3) } // len("nil")

func (x *Nil) String() string { return "nil" }

// Bool is an expression node that holds a boolean literal.
type Bool struct {
	ValuePos token.Position // position of "true" or "false"
	Literal  string         // "true" or "false"
	Value    bool           // the boolean value
}

func (x *Bool) exprNode() {}

func (x *Bool) Pos() token.Position { return x.ValuePos }
func (x *Bool) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Bool) String() string { return x.Literal }

// String is an expression node that holds a string literal.
type String struct {
	ValuePos token.Position // position of opening quote
	Literal  string         // the literal text with escapes resolved
	Value    string         // the string value
}

func (x *String) exprNode() {}

func (x *String) Pos() token.Position { return x.ValuePos }
func (x *String) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *String) String() string { return fmt.Sprintf("%q", x.Value) }

// Param represents a single function parameter with an optional type
// ascription, as in "func(x: int) { ... }".
type Param struct {
	Name *Ident // parameter name
	Type *Ident // ascribed type; nil if none
}

func (p *Param) Pos() token.Position { return p.Name.Pos() }

func (p *Param) End() token.Position {
	if p.Type != nil {
		return p.Type.End()
	}
	return p.Name.End()
}

func (p *Param) String() string {
	if p.Type != nil {
		return p.Name.Name + ": " + p.Type.Name
	}
	return p.Name.Name
}

// Func is an expression node that holds a function literal.
type Func struct {
	Func   token.Position // position of "func" keyword
	Name   *Ident         // function name; nil for anonymous functions
	Lparen token.Position // position of "("
	Params []*Param       // parameters
	Rparen token.Position // position of ")"
	Body   *Block         // function body
}

func (x *Func) exprNode() {}
func (x *Func) stmtNode() {} // named functions are also statements

func (x *Func) Pos() token.Position { return x.Func }

func (x *Func) End() token.Position {
	if x.Body != nil {
		return x.Body.End()
	}
	return x.Rparen.Advance(1)
}

// ParamNames returns the names of all parameters in order.
func (x *Func) ParamNames() []string {
	names := make([]string, len(x.Params))
	for i, p := range x.Params {
		names[i] = p.Name.Name
	}
	return names
}

func (x *Func) String() string {
	var out bytes.Buffer
	params := make([]string, 0, len(x.Params))
	for _, p := range x.Params {
		params = append(params, p.String())
	}
	out.WriteString("func")
	if x.Name != nil {
		out.WriteString(" ")
		out.WriteString(x.Name.Name)
	}
	out.WriteString("(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") ")
	out.WriteString(x.Body.String())
	return out.String()
}

// List is an expression node that builds a list data structure.
type List struct {
	Lbrack token.Position // position of "["
	Items  []Expr         // list elements
	Rbrack token.Position // position of "]"
}

func (x *List) exprNode() {}

func (x *List) Pos() token.Position { return x.Lbrack }
func (x *List) End() token.Position { return x.Rbrack.Advance(1) }

func (x *List) String() string {
	var out bytes.Buffer
	elements := make([]string, 0, len(x.Items))
	for _, el := range x.Items {
		elements = append(elements, el.String())
	}
	out.WriteString("[")
	out.WriteString(strings.Join(elements, ", "))
	out.WriteString("]")
	return out.String()
}

// MapItem represents a single key-value pair in a map literal.
type MapItem struct {
	Key   Expr
	Value Expr
}

// Map is an expression node that builds a map data structure.
type Map struct {
	Lbrace token.Position // position of "{"
	Items  []MapItem      // ordered key-value pairs
	Rbrace token.Position // position of "}"
}

func (x *Map) exprNode() {}

func (x *Map) Pos() token.Position { return x.Lbrace }
func (x *Map) End() token.Position { return x.Rbrace.Advance(1) }

func (x *Map) String() string {
	var out bytes.Buffer
	pairs := make([]string, 0, len(x.Items))
	for _, item := range x.Items {
		pairs = append(pairs, item.Key.String()+": "+item.Value.String())
	}
	out.WriteString("{")
	out.WriteString(strings.Join(pairs, ", "))
	out.WriteString("}")
	return out.String()
}

// FieldInit initializes a single field in a struct literal. A nil Value is
// the shorthand form "Point{x}", which takes the value from the variable of
// the same name.
type FieldInit struct {
	Name  *Ident
	Value Expr
}

// StructLit is an expression node that builds an instance of a named-field
// struct type, as in "Point{x: 1, y: 2}". Positional struct types are
// instantiated with call syntax instead and never appear as StructLit nodes.
type StructLit struct {
	Name   *Ident         // struct type name
	Lbrace token.Position // position of "{"
	Fields []FieldInit    // field initializers
	Rbrace token.Position // position of "}"
}

func (x *StructLit) exprNode() {}

func (x *StructLit) Pos() token.Position { return x.Name.Pos() }
func (x *StructLit) End() token.Position { return x.Rbrace.Advance(1) }

func (x *StructLit) String() string {
	var out bytes.Buffer
	out.WriteString(x.Name.String())
	out.WriteString("{")
	fields := make([]string, 0, len(x.Fields))
	for _, f := range x.Fields {
		if f.Value != nil {
			fields = append(fields, f.Name.String()+": "+f.Value.String())
		} else {
			fields = append(fields, f.Name.String())
		}
	}
	out.WriteString(strings.Join(fields, ", "))
	out.WriteString("}")
	return out.String()
}
