// Package syntax defines the pluggable interfaces for inspecting and
// rewriting parsed programs, plus the standard validator for the
// structural rules the grammar alone cannot enforce.
package syntax

import "github.com/marmoset-lang/marmoset/ast"

// Transformer modifies an AST before evaluation.
// Transformers receive ownership of the AST and return a (possibly new) AST.
type Transformer interface {
	// Transform processes the AST and returns the result.
	// The returned AST may be the same instance (modified in place)
	// or a completely new AST.
	Transform(program *ast.Program) (*ast.Program, error)
}

// TransformerFunc is an adapter to use a function as a Transformer.
type TransformerFunc func(*ast.Program) (*ast.Program, error)

// Transform implements the Transformer interface.
func (f TransformerFunc) Transform(p *ast.Program) (*ast.Program, error) {
	return f(p)
}
