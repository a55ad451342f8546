package expand

import (
	"fmt"

	"github.com/marmoset-lang/marmoset/ast"
	"github.com/marmoset-lang/marmoset/errors"
	"github.com/marmoset-lang/marmoset/internal/token"
)

// target holds one comprehension flavor's expansion vocabulary. The
// flavors share a single expansion skeleton and differ only in the
// success constructor, the chaining method, and guard support.
type target struct {
	keyword string // the comprehension keyword
	wrap    string // success constructor applied to base and tail values
	chain   string // chaining method applied to each bind's source
	seq     bool   // sequence flavor: iterate sources, allow guards
}

var targets = map[string]target{
	"option": {keyword: "option", wrap: "Some", chain: "and_then"},
	"result": {keyword: "result", wrap: "Ok", chain: "and_then"},
	"iter":   {keyword: "iter", wrap: "Some", chain: "flat_map", seq: true},
}

// comprehensionKeywords lists the recognized keywords for suggestions.
var comprehensionKeywords = []string{"option", "result", "iter"}

// expansion is the intermediate result of expanding a sentence sequence:
// zero or more leading statements followed by the chained value they run
// before. Statements stay loose until a materializer places them, so a
// continuation body receives them directly instead of through an extra
// nested closure.
type expansion struct {
	stmts []ast.Node
	value ast.Expr
}

// block materializes the expansion as a continuation body. A bind's
// destructuring prelude, when present, comes first so the bound names
// are in scope for everything after it.
func (x expansion) block(pos token.Position, prelude ...ast.Node) *ast.Block {
	stmts := make([]ast.Node, 0, len(prelude)+len(x.stmts)+1)
	stmts = append(stmts, prelude...)
	stmts = append(stmts, x.stmts...)
	stmts = append(stmts, x.value)
	return &ast.Block{Lbrace: pos, Stmts: stmts, Rbrace: x.value.End()}
}

// expr materializes the expansion at an expression boundary. Leading
// statements force an immediately invoked closure, the expression form
// of a block; without them the value stands alone.
func (x expansion) expr(pos token.Position) ast.Expr {
	if len(x.stmts) == 0 {
		return x.value
	}
	body := x.block(pos)
	fn := &ast.Func{Func: pos, Lparen: pos, Rparen: pos, Body: body}
	return &ast.Call{Fun: fn, Lparen: pos, Rparen: body.Rbrace}
}

// expandComprehension rewrites a single comprehension expression into
// the call chain it abbreviates. Comprehensions nested in the body are
// expanded as they are encountered, each with its own synthetic name
// numbering.
func (e *Expander) expandComprehension(c *ast.Comprehension) (ast.Expr, error) {
	t, ok := targets[c.Keyword]
	if !ok {
		err := e.formatError(errors.E2008,
			fmt.Sprintf("unknown comprehension keyword %q", c.Keyword), c.KeywordPos)
		err.Suggestions = errors.SuggestSimilar(c.Keyword, comprehensionKeywords)
		return nil, err
	}
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > e.maxDepth {
		return nil, e.formatError(errors.E2009,
			"exceeded maximum comprehension depth", c.KeywordPos)
	}
	sentences, tail, err := e.classify(t, c.Body)
	if err != nil {
		return nil, err
	}
	exp, err := e.expandSeq(t, sentences, tail, c, 0)
	if err != nil {
		return nil, err
	}
	binds := 0
	for _, s := range sentences {
		if s.kind == sentenceBind {
			binds++
		}
	}
	e.logger.Debug().
		Str("target", t.keyword).
		Int("sentences", len(sentences)).
		Int("binds", binds).
		Int("depth", e.depth).
		Msg("expanded comprehension")
	return exp.expr(c.KeywordPos), nil
}

// expandSeq folds a sentence sequence into its expansion, consuming
// sentences left to right. binds counts the bind sentences already
// consumed in this comprehension and numbers the synthetic names of any
// that remain.
func (e *Expander) expandSeq(t target, sentences []sentence, tail ast.Node, c *ast.Comprehension, binds int) (expansion, error) {
	if len(sentences) == 0 {
		value, err := e.expandTail(t, tail, c)
		if err != nil {
			return expansion{}, err
		}
		return expansion{value: value}, nil
	}
	s, rest := sentences[0], sentences[1:]
	switch s.kind {
	case sentenceBind:
		return e.expandBind(t, s.bind, rest, tail, c, binds)
	case sentenceGuard:
		return e.expandGuard(t, s.guard, rest, tail, c, binds)
	default:
		stmt, err := e.rewriteStmt(s.stmt)
		if err != nil {
			return expansion{}, err
		}
		exp, err := e.expandSeq(t, rest, tail, c, binds)
		if err != nil {
			return expansion{}, err
		}
		exp.stmts = append([]ast.Node{stmt}, exp.stmts...)
		return exp, nil
	}
}

// expandBind chains the expansion of the remaining sentences through the
// bind's source. The continuation closure receives one value drawn from
// the source and evaluates the rest of the body with the bind's names in
// scope, so each bind sees every name bound before it.
func (e *Expander) expandBind(t target, bind *ast.Bind, rest []sentence, tail ast.Node, c *ast.Comprehension, binds int) (expansion, error) {
	source, err := e.rewriteExpr(bind.Value)
	if err != nil {
		return expansion{}, err
	}
	inner, err := e.expandSeq(t, rest, tail, c, binds+1)
	if err != nil {
		return expansion{}, err
	}
	param, prelude := lowerPattern(bind, binds+1)
	fn := &ast.Func{
		Func:   bind.Let,
		Lparen: bind.Arrow,
		Params: []*ast.Param{{Name: param}},
		Rparen: bind.Arrow,
		Body:   inner.block(bind.Arrow, prelude...),
	}
	recv := source
	if t.seq {
		recv = method(source, "iter", bind.Arrow)
	}
	return expansion{value: method(recv, t.chain, bind.Arrow, fn)}, nil
}

// expandGuard filters the sequence produced by the remaining sentences.
// The callback ignores its argument: the condition refers to names bound
// earlier in the body, which the enclosing continuations hold in scope.
func (e *Expander) expandGuard(t target, guard *ast.Guard, rest []sentence, tail ast.Node, c *ast.Comprehension, binds int) (expansion, error) {
	cond, err := e.rewriteExpr(guard.Cond)
	if err != nil {
		return expansion{}, err
	}
	inner, err := e.expandSeq(t, rest, tail, c, binds)
	if err != nil {
		return expansion{}, err
	}
	seq := inner.expr(guard.If)
	callback := &ast.Func{
		Func:   guard.If,
		Lparen: guard.If,
		Params: []*ast.Param{{Name: &ast.Ident{NamePos: guard.If, Name: "_"}}},
		Rparen: guard.If,
		Body:   &ast.Block{Lbrace: guard.If, Stmts: []ast.Node{cond}, Rbrace: cond.End()},
	}
	filtered := method(method(seq, "iter", guard.If), "filter", guard.If, callback)
	return expansion{value: filtered}, nil
}

// expandTail produces the final value of a comprehension. A missing tail
// yields the wrapped unit value. A nested comprehension of the same
// flavor is already wrapped and splices in unchanged; one of a different
// flavor is a value like any other and receives the single outer wrap. A
// bare block becomes an immediately invoked closure, keeping the names
// it declares scoped to itself.
func (e *Expander) expandTail(t target, tail ast.Node, c *ast.Comprehension) (ast.Expr, error) {
	switch n := tail.(type) {
	case nil:
		return wrap(t.wrap, c.Body.Rbrace, unit(c.Body.Rbrace)), nil
	case *ast.Comprehension:
		inner, err := e.expandComprehension(n)
		if err != nil {
			return nil, err
		}
		if n.Keyword == t.keyword {
			return inner, nil
		}
		return wrap(t.wrap, n.KeywordPos, inner), nil
	case *ast.Block:
		block, err := e.rewriteBlock(n)
		if err != nil {
			return nil, err
		}
		fn := &ast.Func{Func: block.Lbrace, Lparen: block.Lbrace, Rparen: block.Lbrace, Body: block}
		call := &ast.Call{Fun: fn, Lparen: block.Lbrace, Rparen: block.Rbrace}
		return wrap(t.wrap, block.Lbrace, call), nil
	case ast.Expr:
		value, err := e.rewriteExpr(n)
		if err != nil {
			return nil, err
		}
		return wrap(t.wrap, value.Pos(), value), nil
	default:
		return nil, fmt.Errorf("expand: unexpected comprehension tail %T", tail)
	}
}

// lowerPattern produces the continuation parameter for a bind. A plain
// immutable identifier with no type ascription becomes the parameter
// itself, so closures capture the name the program wrote. Every other
// form binds a synthetic parameter and destructures it with a let on the
// first line of the continuation, which gives the bound names the same
// mutability and type checks an ordinary let would. The synthetic name
// depends only on the bind's ordinal, keeping expansion deterministic.
func lowerPattern(bind *ast.Bind, ordinal int) (*ast.Ident, []ast.Node) {
	if ident, ok := bind.Pattern.(*ast.IdentPattern); ok &&
		!bind.Mut && bind.Type == nil && !ident.IsWildcard() {
		return &ast.Ident{NamePos: ident.NamePos, Name: ident.Name}, nil
	}
	param := &ast.Ident{
		NamePos: bind.Pattern.Pos(),
		Name:    fmt.Sprintf("__bind%d", ordinal),
	}
	prelude := &ast.Var{
		Let:     bind.Let,
		Mut:     bind.Mut,
		Pattern: bind.Pattern,
		Type:    bind.Type,
		Value:   &ast.Ident{NamePos: bind.Arrow, Name: param.Name},
	}
	return param, []ast.Node{prelude}
}

// method builds the method call x.name(args...).
func method(x ast.Expr, name string, pos token.Position, args ...ast.Expr) *ast.ObjectCall {
	rparen := pos
	if n := len(args); n > 0 {
		rparen = args[n-1].End()
	}
	return &ast.ObjectCall{
		X:      x,
		Period: pos,
		Call: &ast.Call{
			Fun:    &ast.Ident{NamePos: pos, Name: name},
			Lparen: pos,
			Args:   args,
			Rparen: rparen,
		},
	}
}

// wrap builds the constructor call name(x).
func wrap(name string, pos token.Position, x ast.Expr) *ast.Call {
	return &ast.Call{
		Fun:    &ast.Ident{NamePos: pos, Name: name},
		Lparen: pos,
		Args:   []ast.Expr{x},
		Rparen: x.End(),
	}
}

// unit builds the empty tuple ().
func unit(pos token.Position) *ast.Tuple {
	return &ast.Tuple{Lparen: pos, Rparen: pos}
}
