package syntax

import (
	"fmt"

	"github.com/marmoset-lang/marmoset/ast"
	"github.com/marmoset-lang/marmoset/errors"
	"github.com/marmoset-lang/marmoset/internal/token"
)

// SyntaxValidator checks a parsed program against the structural rules
// the grammar alone cannot enforce:
//
//   - binds and guards may appear only as direct sentences of a
//     comprehension body
//   - return statements may appear only inside a function body
//   - function parameter names must be unique
//   - struct fields must be unique, and a struct type name may be
//     declared only once per program
//
// The validator reports every violation it finds rather than stopping at
// the first, and never modifies the program.
type SyntaxValidator struct{}

// NewSyntaxValidator creates a validator for the language's structural rules.
func NewSyntaxValidator() *SyntaxValidator {
	return &SyntaxValidator{}
}

var _ Validator = (*SyntaxValidator)(nil)

// Validate checks the program and returns all violations found.
func (v *SyntaxValidator) Validate(program *ast.Program) []ValidationError {
	state := &checkState{structs: map[string]token.Position{}}
	ast.Walk(checkVisitor{state: state}, program)
	return state.errors
}

// checkState accumulates violations across one Validate call.
type checkState struct {
	errors  []ValidationError
	structs map[string]token.Position // declared struct type names
}

func (s *checkState) add(code errors.ErrorCode, msg string, node ast.Node) {
	s.errors = append(s.errors, ValidationError{
		Code:     code,
		Message:  msg,
		Node:     node,
		Position: node.Pos(),
	})
}

// checkVisitor walks the program carrying the context that legality
// depends on: whether the visited node is a direct sentence of a
// comprehension body, and whether it sits inside a function body.
type checkVisitor struct {
	state    *checkState
	body     bool // the next block visited is a comprehension body
	sentence bool // this node is a direct sentence of a comprehension body
	inFunc   bool // this node is inside a function body
}

func (c checkVisitor) Visit(node ast.Node) ast.Visitor {
	next := checkVisitor{state: c.state, inFunc: c.inFunc}
	switch n := node.(type) {
	case *ast.Comprehension:
		next.body = true
	case *ast.Block:
		// Direct statements of a comprehension body are sentences; the
		// statements of any other block, including a bare block sentence,
		// are not.
		next.sentence = c.body
	case *ast.Bind:
		if !c.sentence {
			c.state.add(errors.E2001, "bind used outside of a comprehension", n)
		}
	case *ast.Guard:
		if !c.sentence {
			c.state.add(errors.E2002, "guard used outside of a comprehension", n)
		}
	case *ast.Return:
		if !c.inFunc {
			c.state.add(errors.E2004, "return used outside of a function", n)
		}
	case *ast.Func:
		next.inFunc = true
		c.checkParams(n)
	case *ast.StructDecl:
		c.checkStructDecl(n)
	}
	return next
}

// checkParams flags repeated parameter names. The wildcard "_" may
// repeat, since it binds nothing.
func (c checkVisitor) checkParams(fn *ast.Func) {
	seen := make(map[string]bool, len(fn.Params))
	for _, p := range fn.Params {
		name := p.Name.Name
		if name == "_" {
			continue
		}
		if seen[name] {
			c.state.add(errors.E2005,
				fmt.Sprintf("duplicate parameter name %q", name), p.Name)
		}
		seen[name] = true
	}
}

func (c checkVisitor) checkStructDecl(decl *ast.StructDecl) {
	seen := make(map[string]bool, len(decl.Fields))
	for _, f := range decl.Fields {
		if seen[f.Name] {
			c.state.add(errors.E2006,
				fmt.Sprintf("duplicate field %q in struct %s", f.Name, decl.Name.Name), f)
		}
		seen[f.Name] = true
	}
	name := decl.Name.Name
	if _, ok := c.state.structs[name]; ok {
		c.state.add(errors.E2007,
			fmt.Sprintf("struct %s is already declared", name), decl.Name)
		return
	}
	c.state.structs[name] = decl.Name.Pos()
}
