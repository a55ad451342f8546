package expand

import (
	"fmt"

	"github.com/marmoset-lang/marmoset/ast"
	"github.com/marmoset-lang/marmoset/errors"
)

// sentenceKind discriminates the classified forms of a comprehension
// body element.
type sentenceKind int

const (
	sentenceBind sentenceKind = iota
	sentenceGuard
	sentenceStmt
)

// sentence is one classified element of a comprehension body. Exactly
// one of bind, guard, and stmt is set, according to kind.
type sentence struct {
	kind  sentenceKind
	bind  *ast.Bind
	guard *ast.Guard
	stmt  ast.Node
}

// classify splits a comprehension body into its sentence sequence and an
// optional tail. The tail is the body's final element when it is an
// expression or bare block without a terminating semicolon; an explicit
// semicolon discards the value even in final position, leaving a nil
// tail. Guards are rejected for flavors that do not produce a sequence.
func (e *Expander) classify(t target, body *ast.Block) ([]sentence, ast.Node, error) {
	var sentences []sentence
	var tail ast.Node
	for i, node := range body.Stmts {
		last := i == len(body.Stmts)-1
		switch n := node.(type) {
		case *ast.Bind:
			sentences = append(sentences, sentence{kind: sentenceBind, bind: n})
		case *ast.Guard:
			if !t.seq {
				return nil, nil, e.formatErrorNote(errors.E2003,
					fmt.Sprintf("guard is not supported in %s comprehensions", t.keyword),
					n.Pos(), n.End(),
					"only iter comprehensions produce a sequence of values to filter")
			}
			sentences = append(sentences, sentence{kind: sentenceGuard, guard: n})
		case *ast.ExprStmt:
			sentences = append(sentences, sentence{kind: sentenceStmt, stmt: n.X})
		case *ast.Block:
			if last {
				tail = n
			} else {
				sentences = append(sentences, sentence{kind: sentenceStmt, stmt: n})
			}
		case ast.Expr:
			if last {
				tail = n
			} else {
				sentences = append(sentences, sentence{kind: sentenceStmt, stmt: n})
			}
		default:
			// Var, Assign, SetAttr, Return, StructDecl, and the like run
			// unchanged in sequence.
			sentences = append(sentences, sentence{kind: sentenceStmt, stmt: n})
		}
	}
	return sentences, tail, nil
}
