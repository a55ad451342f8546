package ast

import (
	"bytes"
	"strings"

	"github.com/marmoset-lang/marmoset/internal/token"
)

// IdentPattern binds a value to a single name. The name "_" is the wildcard,
// which matches anything and binds nothing.
type IdentPattern struct {
	NamePos token.Position // position of identifier
	Name    string         // identifier name; "_" for the wildcard
}

func (p *IdentPattern) patternNode() {}

func (p *IdentPattern) Pos() token.Position { return p.NamePos }
func (p *IdentPattern) End() token.Position { return p.NamePos.Advance(len(p.Name)) }

func (p *IdentPattern) String() string { return p.Name }

// IsWildcard reports whether the pattern is the discarding "_" pattern.
func (p *IdentPattern) IsWildcard() bool { return p.Name == "_" }

// Names returns the bound name, or nothing for the wildcard.
func (p *IdentPattern) Names() []string {
	if p.Name == "_" {
		return nil
	}
	return []string{p.Name}
}

// TuplePattern destructures a tuple into element patterns, as in
// "let (a, b) = pair".
type TuplePattern struct {
	Lparen token.Position // position of "("
	Elems  []Pattern      // element patterns
	Rparen token.Position // position of ")"
}

func (p *TuplePattern) patternNode() {}

func (p *TuplePattern) Pos() token.Position { return p.Lparen }
func (p *TuplePattern) End() token.Position { return p.Rparen.Advance(1) }

func (p *TuplePattern) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	for i, el := range p.Elems {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(el.String())
	}
	if len(p.Elems) == 1 {
		out.WriteString(",")
	}
	out.WriteString(")")
	return out.String()
}

func (p *TuplePattern) Names() []string {
	var names []string
	for _, el := range p.Elems {
		names = append(names, el.Names()...)
	}
	return names
}

// FieldPattern is a single field in a named struct pattern. A nil Value is
// the shorthand form that binds the field to a variable of the same name:
// "Point{x}" is equivalent to "Point{x: x}".
type FieldPattern struct {
	Key   *Ident  // field name
	Value Pattern // sub-pattern; nil for shorthand
}

func (p *FieldPattern) Pos() token.Position { return p.Key.Pos() }

func (p *FieldPattern) End() token.Position {
	if p.Value != nil {
		return p.Value.End()
	}
	return p.Key.End()
}

func (p *FieldPattern) String() string {
	if p.Value != nil {
		return p.Key.Name + ": " + p.Value.String()
	}
	return p.Key.Name
}

// StructPattern destructures a struct value. The positional form is
// "Pair(a, b)" and the named form is "Point{x, y: other}".
type StructPattern struct {
	Name       *Ident          // struct type name
	Open       token.Position  // position of "(" or "{"
	Positional []Pattern       // positional sub-patterns; nil for named form
	Fields     []*FieldPattern // named field patterns; nil for positional form
	Close      token.Position  // position of ")" or "}"
	Named      bool            // true for the braced form
}

func (p *StructPattern) patternNode() {}

func (p *StructPattern) Pos() token.Position { return p.Name.Pos() }
func (p *StructPattern) End() token.Position { return p.Close.Advance(1) }

func (p *StructPattern) String() string {
	var out bytes.Buffer
	out.WriteString(p.Name.Name)
	if p.Named {
		fields := make([]string, 0, len(p.Fields))
		for _, f := range p.Fields {
			fields = append(fields, f.String())
		}
		out.WriteString("{")
		out.WriteString(strings.Join(fields, ", "))
		out.WriteString("}")
	} else {
		elems := make([]string, 0, len(p.Positional))
		for _, el := range p.Positional {
			elems = append(elems, el.String())
		}
		out.WriteString("(")
		out.WriteString(strings.Join(elems, ", "))
		out.WriteString(")")
	}
	return out.String()
}

func (p *StructPattern) Names() []string {
	var names []string
	if p.Named {
		for _, f := range p.Fields {
			if f.Value != nil {
				names = append(names, f.Value.Names()...)
			} else {
				names = append(names, f.Key.Name)
			}
		}
		return names
	}
	for _, el := range p.Positional {
		names = append(names, el.Names()...)
	}
	return names
}
