// Package expand rewrites comprehension expressions into the chained
// callback calls they abbreviate.
//
// # Overview
//
// A comprehension such as
//
//	option {
//	    let user <- find_user(id);
//	    let role <- find_role(user);
//	    (user, role)
//	}
//
// is purely notation. Before a program runs, every comprehension in it is
// rewritten into ordinary calls on the values its binds draw from:
//
//	find_user(id).and_then(func(user) {
//	    find_role(user).and_then(func(role) { Some((user, role)) })
//	})
//
// The three comprehension flavors share one expansion skeleton and differ
// only in vocabulary. An option or result bind chains with and_then; an
// iter bind iterates its source and chains with flat_map; the final value
// is wrapped with the flavor's success constructor (Some or Ok). Because
// the rewrite happens before evaluation, a comprehension costs exactly
// what its expansion costs.
//
// # Sentences
//
// A comprehension body is classified into a sequence of sentences that
// are consumed left to right:
//
//   - a bind ("let p <- e;") chains the rest of the body through e
//   - a guard ("if c;", iter only) filters the sequence the rest produces
//   - any other statement runs unchanged before the rest of the body
//   - a trailing expression is the tail: the comprehension's yielded value
//
// Each bind's continuation is the expansion of everything after it, so a
// bound name is in scope for the remainder of the body and nowhere else.
// A body with no tail yields the flavor's wrapped unit value, Some(()) or
// Ok(()).
//
// # Determinism
//
// Expansion is a pure function of the input tree. Synthetic names
// introduced for destructuring binds depend only on the bind's position
// within its comprehension, so expanding the same source twice produces
// byte-identical output.
package expand

import (
	"fmt"
	"strings"

	"github.com/marmoset-lang/marmoset/ast"
	"github.com/marmoset-lang/marmoset/errors"
	"github.com/marmoset-lang/marmoset/internal/token"
	"github.com/marmoset-lang/marmoset/syntax"
	"github.com/rs/zerolog"
)

// DefaultMaxDepth is the default limit on comprehension nesting.
const DefaultMaxDepth = 500

// Option is a configuration function for an Expander.
type Option func(*Expander)

// WithFilename sets the filename reported in error locations.
func WithFilename(filename string) Option {
	return func(e *Expander) {
		e.filename = filename
	}
}

// WithSource supplies the source code the program was parsed from, which
// lets errors carry the offending source line.
func WithSource(source string) Option {
	return func(e *Expander) {
		e.source = source
	}
}

// WithLogger sets the logger used to trace expansions. By default the
// Expander does not log.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Expander) {
		e.logger = logger
	}
}

// WithMaxDepth overrides the limit on comprehension nesting.
func WithMaxDepth(depth int) Option {
	return func(e *Expander) {
		e.maxDepth = depth
	}
}

// Expander rewrites the comprehensions in a program. The zero value is
// not usable; create one with New. An Expander may be reused across
// programs but is not safe for concurrent use.
type Expander struct {
	filename string
	source   string
	logger   zerolog.Logger
	maxDepth int

	// depth tracks comprehension nesting during a Transform call. It is
	// incremented on entry to each comprehension and restored on exit.
	depth int
}

var _ syntax.Transformer = (*Expander)(nil)

// New creates and returns a new Expander.
func New(options ...Option) *Expander {
	e := &Expander{
		logger:   zerolog.Nop(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

// Expand rewrites every comprehension in the program, modifying it in
// place, and returns the program. It is shorthand for creating an
// Expander and calling Transform.
func Expand(program *ast.Program, options ...Option) (*ast.Program, error) {
	return New(options...).Transform(program)
}

// Transform implements syntax.Transformer. It walks the program, replaces
// each comprehension expression with its expansion, and rejects binds and
// guards that appear outside a comprehension body. The program is
// modified in place.
func (e *Expander) Transform(program *ast.Program) (*ast.Program, error) {
	if program == nil {
		return nil, fmt.Errorf("expand: cannot transform a nil program")
	}
	for i, stmt := range program.Stmts {
		rewritten, err := e.rewriteStmt(stmt)
		if err != nil {
			return nil, err
		}
		program.Stmts[i] = rewritten
	}
	return program, nil
}

// rewriteStmt rewrites the comprehensions nested inside one statement.
// Binds and guards are rejected here: inside a comprehension body they
// are consumed as sentences and never reach this method, so any that do
// arrive are outside a comprehension.
func (e *Expander) rewriteStmt(node ast.Node) (ast.Node, error) {
	switch n := node.(type) {
	case *ast.Bind:
		return nil, e.formatErrorNote(errors.E2001,
			"bind used outside of a comprehension", n.Pos(), n.End(),
			"a bind draws from its source inside an option, result, or iter comprehension body")
	case *ast.Guard:
		return nil, e.formatErrorNote(errors.E2002,
			"guard used outside of a comprehension", n.Pos(), n.End(),
			"a guard filters the values of an iter comprehension")
	case *ast.Var:
		if n.Value != nil {
			value, err := e.rewriteExpr(n.Value)
			if err != nil {
				return nil, err
			}
			n.Value = value
		}
		return n, nil
	case *ast.Assign:
		if n.Index != nil {
			x, err := e.rewriteExpr(n.Index.X)
			if err != nil {
				return nil, err
			}
			n.Index.X = x
			index, err := e.rewriteExpr(n.Index.Index)
			if err != nil {
				return nil, err
			}
			n.Index.Index = index
		}
		value, err := e.rewriteExpr(n.Value)
		if err != nil {
			return nil, err
		}
		n.Value = value
		return n, nil
	case *ast.SetAttr:
		x, err := e.rewriteExpr(n.X)
		if err != nil {
			return nil, err
		}
		n.X = x
		value, err := e.rewriteExpr(n.Value)
		if err != nil {
			return nil, err
		}
		n.Value = value
		return n, nil
	case *ast.Return:
		if n.Value != nil {
			value, err := e.rewriteExpr(n.Value)
			if err != nil {
				return nil, err
			}
			n.Value = value
		}
		return n, nil
	case *ast.ExprStmt:
		x, err := e.rewriteExpr(n.X)
		if err != nil {
			return nil, err
		}
		n.X = x
		return n, nil
	case *ast.Block:
		return e.rewriteBlock(n)
	case ast.Expr:
		// A bare expression in statement position, including named
		// function declarations.
		return e.rewriteExpr(n)
	default:
		// StructDecl, BadStmt: nothing nested to rewrite.
		return n, nil
	}
}

// rewriteExpr rewrites the comprehensions nested inside one expression.
// A comprehension expression is replaced by its expansion; every other
// node is rewritten in place.
func (e *Expander) rewriteExpr(expr ast.Expr) (ast.Expr, error) {
	switch n := expr.(type) {
	case *ast.Comprehension:
		return e.expandComprehension(n)
	case *ast.Prefix:
		x, err := e.rewriteExpr(n.X)
		if err != nil {
			return nil, err
		}
		n.X = x
		return n, nil
	case *ast.Infix:
		x, err := e.rewriteExpr(n.X)
		if err != nil {
			return nil, err
		}
		n.X = x
		y, err := e.rewriteExpr(n.Y)
		if err != nil {
			return nil, err
		}
		n.Y = y
		return n, nil
	case *ast.If:
		cond, err := e.rewriteExpr(n.Cond)
		if err != nil {
			return nil, err
		}
		n.Cond = cond
		if _, err := e.rewriteBlock(n.Consequence); err != nil {
			return nil, err
		}
		if n.Alternative != nil {
			if _, err := e.rewriteBlock(n.Alternative); err != nil {
				return nil, err
			}
		}
		return n, nil
	case *ast.Call:
		if err := e.rewriteCall(n); err != nil {
			return nil, err
		}
		return n, nil
	case *ast.GetAttr:
		x, err := e.rewriteExpr(n.X)
		if err != nil {
			return nil, err
		}
		n.X = x
		return n, nil
	case *ast.ObjectCall:
		x, err := e.rewriteExpr(n.X)
		if err != nil {
			return nil, err
		}
		n.X = x
		if err := e.rewriteCall(n.Call); err != nil {
			return nil, err
		}
		return n, nil
	case *ast.Index:
		x, err := e.rewriteExpr(n.X)
		if err != nil {
			return nil, err
		}
		n.X = x
		index, err := e.rewriteExpr(n.Index)
		if err != nil {
			return nil, err
		}
		n.Index = index
		return n, nil
	case *ast.Tuple:
		for i, el := range n.Elems {
			rewritten, err := e.rewriteExpr(el)
			if err != nil {
				return nil, err
			}
			n.Elems[i] = rewritten
		}
		return n, nil
	case *ast.Range:
		low, err := e.rewriteExpr(n.Low)
		if err != nil {
			return nil, err
		}
		n.Low = low
		high, err := e.rewriteExpr(n.High)
		if err != nil {
			return nil, err
		}
		n.High = high
		return n, nil
	case *ast.List:
		for i, item := range n.Items {
			rewritten, err := e.rewriteExpr(item)
			if err != nil {
				return nil, err
			}
			n.Items[i] = rewritten
		}
		return n, nil
	case *ast.Map:
		for i := range n.Items {
			key, err := e.rewriteExpr(n.Items[i].Key)
			if err != nil {
				return nil, err
			}
			n.Items[i].Key = key
			value, err := e.rewriteExpr(n.Items[i].Value)
			if err != nil {
				return nil, err
			}
			n.Items[i].Value = value
		}
		return n, nil
	case *ast.StructLit:
		for i := range n.Fields {
			if n.Fields[i].Value == nil {
				continue
			}
			value, err := e.rewriteExpr(n.Fields[i].Value)
			if err != nil {
				return nil, err
			}
			n.Fields[i].Value = value
		}
		return n, nil
	case *ast.Func:
		if _, err := e.rewriteBlock(n.Body); err != nil {
			return nil, err
		}
		return n, nil
	default:
		// Ident, literals, BadExpr: leaves.
		return expr, nil
	}
}

func (e *Expander) rewriteCall(call *ast.Call) error {
	fun, err := e.rewriteExpr(call.Fun)
	if err != nil {
		return err
	}
	call.Fun = fun
	for i, arg := range call.Args {
		rewritten, err := e.rewriteExpr(arg)
		if err != nil {
			return err
		}
		call.Args[i] = rewritten
	}
	return nil
}

func (e *Expander) rewriteBlock(block *ast.Block) (*ast.Block, error) {
	if block == nil {
		return nil, nil
	}
	for i, stmt := range block.Stmts {
		rewritten, err := e.rewriteStmt(stmt)
		if err != nil {
			return nil, err
		}
		block.Stmts[i] = rewritten
	}
	return block, nil
}

// formatError creates an ExpandError at the given position.
func (e *Expander) formatError(code errors.ErrorCode, msg string, pos token.Position) *errors.ExpandError {
	return e.formatErrorNote(code, msg, pos, pos, "")
}

// formatErrorNote creates an ExpandError spanning pos to end with an
// explanatory note. Spans that cross lines are clamped to the start
// column, since the source excerpt shows a single line.
func (e *Expander) formatErrorNote(code errors.ErrorCode, msg string, pos, end token.Position, note string) *errors.ExpandError {
	filename := e.filename
	if filename == "" {
		filename = pos.File
	}
	endColumn := end.ColumnNumber()
	if end.Line != pos.Line {
		endColumn = pos.ColumnNumber()
	}
	return &errors.ExpandError{
		Code:       code,
		Message:    msg,
		Filename:   filename,
		Line:       pos.LineNumber(),
		Column:     pos.ColumnNumber(),
		EndColumn:  endColumn,
		SourceLine: e.getSourceLine(pos.Line),
		Note:       note,
	}
}

// getSourceLine retrieves a specific line from the source code.
// lineNum is 0-indexed.
func (e *Expander) getSourceLine(lineNum int) string {
	if e.source == "" {
		return ""
	}
	lines := strings.Split(e.source, "\n")
	if lineNum < 0 || lineNum >= len(lines) {
		return ""
	}
	return lines[lineNum]
}
