package marmoset

import (
	"github.com/marmoset-lang/marmoset/ast"
)

// Program is the parsed, validated, and expanded representation of
// Marmoset source code. It is immutable after creation and safe for
// concurrent use. Multiple goroutines can Run the same Program
// simultaneously.
type Program struct {
	program *ast.Program // Expanded AST

	// Metadata
	source   string
	filename string
}

// Source returns the original source code that was parsed.
func (p *Program) Source() string {
	return p.source
}

// Filename returns the filename associated with this program, if any.
func (p *Program) Filename() string {
	return p.filename
}

// AST returns the expanded syntax tree. Every comprehension in the
// source has already been rewritten into method calls.
func (p *Program) AST() *ast.Program {
	return p.program
}
