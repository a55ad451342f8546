package parser

import (
	"github.com/marmoset-lang/marmoset/ast"
	"github.com/marmoset-lang/marmoset/internal/token"
)

// Expression parsing methods for the Parser.
// This file contains methods that parse expression constructs:
// - Identifiers and prefix/infix expressions
// - Grouped expressions and tuples
// - Struct literals
// - Control flow expressions (if)
// - Comprehensions (option, result, iter) and their sentences
// - Block parsing
// - Index expressions and ranges
// - Call expressions
// - Attribute access (get/set)

func (p *Parser) parseIdent() ast.Node {
	if p.curToken.Literal == "" {
		p.setTokenError(p.curToken, "invalid identifier")
		return nil
	}
	ident := p.newIdent(p.curToken)
	// "Name{" opens a struct literal, except where a conditional's block
	// could start at the same brace
	if p.peekTokenIs(token.LBRACE) && !p.noStructLit {
		return p.parseStructLiteral(ident)
	}
	return ident
}

// parseStructLiteral parses a named-field struct instantiation such as
// "Point{x: 1, y: 2}". The shorthand "Point{x}" takes the field value from
// the variable x. Positional struct types are instantiated with call syntax
// and never reach this method.
func (p *Parser) parseStructLiteral(name *ast.Ident) ast.Node {
	p.nextToken() // move to '{'
	lbrace := p.curToken.StartPosition
	fields := []ast.FieldInit{}
	for {
		for p.peekTokenIs(token.NEWLINE) {
			if err := p.nextToken(); err != nil {
				return nil
			}
		}
		if p.peekTokenIs(token.RBRACE) {
			p.nextToken()
			break
		}
		if !p.expectPeek("a struct literal", token.IDENT) {
			return nil
		}
		field := ast.FieldInit{Name: p.newIdent(p.curToken)}
		if p.peekTokenIs(token.COLON) {
			p.nextToken() // move to ':'
			if err := p.nextToken(); err != nil { // move to the value
				return nil
			}
			p.eatNewlines()
			value := p.parseExpression(LOWEST)
			if value == nil {
				return nil
			}
			field.Value = value
		}
		fields = append(fields, field)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		for p.peekTokenIs(token.NEWLINE) {
			if err := p.nextToken(); err != nil {
				return nil
			}
		}
		if !p.expectPeek("a struct literal", token.RBRACE) {
			return nil
		}
		break
	}
	return &ast.StructLit{Name: name, Lbrace: lbrace, Fields: fields, Rbrace: p.curToken.StartPosition}
}

func (p *Parser) parsePrefixExpr() ast.Node {
	opPos := p.curToken.StartPosition
	op := p.curToken.Literal
	if err := p.nextToken(); err != nil {
		return nil
	}
	right := p.parseExpression(PREFIX)
	if right == nil {
		p.setTokenError(p.curToken, "invalid prefix expression")
		return nil
	}
	return &ast.Prefix{OpPos: opPos, Op: op, X: right}
}

func (p *Parser) parseInfixExpr(leftNode ast.Node) ast.Node {
	left, ok := leftNode.(ast.Expr)
	if !ok {
		p.setTokenError(p.curToken, "invalid expression")
		return nil
	}
	opPos := p.curToken.StartPosition
	op := p.curToken.Literal
	precedence := p.currentPrecedence()
	p.nextToken()
	for p.curTokenIs(token.NEWLINE) {
		if err := p.nextToken(); err != nil {
			return nil
		}
	}
	right := p.parseExpression(precedence)
	if right == nil {
		p.setTokenError(p.curToken, "invalid expression")
		return nil
	}
	return &ast.Infix{X: left, OpPos: opPos, Op: op, Y: right}
}

// parseGroupedExpr parses the three constructs that open with a parenthesis:
// "()" is the unit value, "(expr)" is a grouped expression, and anything with
// a comma, like "(a, b)" or the one-element form "(a,)", is a tuple.
func (p *Parser) parseGroupedExpr() ast.Node {
	lparen := p.curToken.StartPosition

	// Parentheses lift the struct literal restriction
	noStructLit := p.noStructLit
	p.noStructLit = false
	defer func() { p.noStructLit = noStructLit }()

	p.nextToken() // move past '('

	// Skip newlines after opening paren - newlines are allowed inside parens
	p.eatNewlines()

	// "()" is the unit value, an empty tuple
	if p.curTokenIs(token.RPAREN) {
		return &ast.Tuple{Lparen: lparen, Rparen: p.curToken.StartPosition}
	}

	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}

	// No comma: a plain grouped expression
	if !p.peekTokenIs(token.COMMA) {
		if !p.skipNewlinesAndPeek(token.RPAREN) {
			p.peekError("grouped expression", token.RPAREN, p.peekToken)
			return nil
		}
		p.nextToken() // move to ')'
		return first
	}

	elems := []ast.Expr{first}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken() // move to ','
		// A trailing comma before ')' ends the tuple
		if p.skipNewlinesAndPeek(token.RPAREN) {
			break
		}
		p.nextToken() // move to the next element
		p.eatNewlines()
		el := p.parseExpression(LOWEST)
		if el == nil {
			return nil
		}
		elems = append(elems, el)
	}
	if !p.skipNewlinesAndPeek(token.RPAREN) {
		p.peekError("tuple", token.RPAREN, p.peekToken)
		return nil
	}
	p.nextToken() // move to ')'
	return &ast.Tuple{Lparen: lparen, Elems: elems, Rparen: p.curToken.StartPosition}
}

// parseIf parses an entire if, else if, else block. Else-ifs are handled recursively.
func (p *Parser) parseIf() ast.Node {
	ifPos := p.curToken.StartPosition
	if !p.expectPeek("an if expression", token.LPAREN) { // move to the "("
		return nil
	}
	lparen := p.curToken.StartPosition
	p.nextToken() // move past the "("
	cond := p.parseExpression(LOWEST)
	if cond == nil {
		return nil
	}
	if !p.expectPeek("an if expression", token.RPAREN) { // move to the ")"
		return nil
	}
	rparen := p.curToken.StartPosition
	return p.parseIfTail(ifPos, lparen, cond, rparen)
}

// parseIfTail parses the braced branches of an if expression whose condition
// has already been parsed.
func (p *Parser) parseIfTail(ifPos, lparen token.Position, cond ast.Expr, rparen token.Position) ast.Node {
	if !p.expectPeek("an if expression", token.LBRACE) { // move to the "{"
		return nil
	}
	consequence := p.parseBlock()
	if consequence == nil {
		return nil
	}
	var alternative *ast.Block
	if p.peekTokenIs(token.ELSE) {
		p.nextToken()                // move to the "else"
		if p.peekTokenIs(token.IF) { // this is an "else if"
			p.nextToken() // move to the "if"
			nestedIfPos := p.curToken.StartPosition
			nestedIf := p.parseIf()
			if nestedIf == nil {
				return nil
			}
			alternative = &ast.Block{
				Lbrace: nestedIfPos,
				Stmts:  []ast.Node{nestedIf},
				Rbrace: nestedIfPos,
			}
		} else {
			if !p.expectPeek("an if expression", token.LBRACE) {
				return nil
			}
			alternative = p.parseBlock()
			if alternative == nil {
				return nil
			}
		}
	}
	return &ast.If{
		If:          ifPos,
		Lparen:      lparen,
		Cond:        cond,
		Rparen:      rparen,
		Consequence: consequence,
		Alternative: alternative,
	}
}

func (p *Parser) parseBlock() *ast.Block {
	lbrace := p.curToken.StartPosition
	statements := []ast.Node{}
	if err := p.nextToken(); err != nil { // Move past the '{'
		return nil
	}
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		if p.cancelled() {
			return nil
		}
		stmt := p.parseStatementStrict()
		if stmt != nil {
			statements = append(statements, stmt)
		}
		if err := p.nextToken(); err != nil {
			return nil
		}
	}
	if p.curTokenIs(token.EOF) {
		p.setTokenError(p.curToken, "unterminated block statement")
		return nil
	}
	rbrace := p.curToken.StartPosition
	return &ast.Block{Lbrace: lbrace, Stmts: statements, Rbrace: rbrace}
}

// parseComprehension parses one of the three comprehension forms: "option {",
// "result {", or "iter {". The keyword selects the expansion flavor and the
// braced body holds the comprehension's sentences.
func (p *Parser) parseComprehension() ast.Node {
	keywordPos := p.curToken.StartPosition
	keyword := p.curToken.Literal
	if !p.expectPeek("a comprehension", token.LBRACE) { // move to the "{"
		return nil
	}
	body := p.parseComprehensionBody()
	if body == nil {
		return nil
	}
	return &ast.Comprehension{KeywordPos: keywordPos, Keyword: keyword, Body: body}
}

// parseComprehensionBody parses the braced body of a comprehension. It works
// like parseBlock except that two sentence forms are legal here and nowhere
// else: "let pat <- expr" binds, and "if cond" without a braced body guards.
func (p *Parser) parseComprehensionBody() *ast.Block {
	lbrace := p.curToken.StartPosition
	statements := []ast.Node{}
	if err := p.nextToken(); err != nil { // Move past the '{'
		return nil
	}
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		if p.cancelled() {
			return nil
		}
		stmt := p.parseSentenceStrict()
		if stmt != nil {
			statements = append(statements, stmt)
		}
		if err := p.nextToken(); err != nil {
			return nil
		}
	}
	if p.curTokenIs(token.EOF) {
		p.setTokenError(p.curToken, "unterminated comprehension body")
		return nil
	}
	rbrace := p.curToken.StartPosition
	return &ast.Block{Lbrace: lbrace, Stmts: statements, Rbrace: rbrace}
}

func (p *Parser) parseSentenceStrict() ast.Node {
	stmt := p.parseSentence()
	if stmt == nil {
		return nil
	}
	// sentence should end with a semicolon or the next token should be
	// a statement terminator
	if !p.curTokenIs(token.SEMICOLON) && !statementTerminators[p.peekToken.Type] {
		p.setTokenError(p.curToken, "unexpected token %q following statement", p.peekToken.Literal)
		return nil
	}
	return stmt
}

// parseSentence parses a single sentence of a comprehension body.
func (p *Parser) parseSentence() ast.Node {
	switch p.curToken.Type {
	case token.IF:
		stmt := p.parseGuardOrIf()
		if stmt == nil {
			return nil
		}
		if p.peekTokenIs(token.SEMICOLON) {
			p.nextToken()
		}
		return p.wrapSentence(stmt)
	case token.LBRACE:
		block := p.parseBlock()
		if block == nil {
			return nil
		}
		if p.peekTokenIs(token.SEMICOLON) {
			p.nextToken()
		}
		return block
	case token.NEWLINE:
		return nil
	default:
		return p.wrapSentence(p.parseStatement())
	}
}

// wrapSentence marks an expression sentence that ended in an explicit
// semicolon, so that expansion can tell a discarded expression apart from
// the comprehension's tail expression.
func (p *Parser) wrapSentence(stmt ast.Node) ast.Node {
	if stmt == nil {
		return nil
	}
	if expr, ok := stmt.(ast.Expr); ok && p.curTokenIs(token.SEMICOLON) {
		return &ast.ExprStmt{X: expr, Semi: p.curToken.StartPosition}
	}
	return stmt
}

// parseGuardOrIf disambiguates the two sentence forms that begin with "if"
// inside a comprehension body. A condition followed by "{" is an ordinary if
// expression; a condition followed by a sentence terminator is a guard.
// Struct literals are disabled while the condition is parsed, since in
// "if p == Point{...}" the brace must belong to a block, not a literal.
// Wrapping the literal in parentheses makes it legal again.
func (p *Parser) parseGuardOrIf() ast.Node {
	ifPos := p.curToken.StartPosition
	if err := p.nextToken(); err != nil { // move past the "if"
		return nil
	}
	noStructLit := p.noStructLit
	p.noStructLit = true
	cond := p.parseExpression(LOWEST)
	p.noStructLit = noStructLit
	if cond == nil {
		return nil
	}
	if p.peekTokenIs(token.LBRACE) {
		return p.parseIfTail(ifPos, token.NoPos, cond, token.NoPos)
	}
	return &ast.Guard{If: ifPos, Cond: cond}
}

func (p *Parser) parseIndex(leftNode ast.Node) ast.Node {
	left, ok := leftNode.(ast.Expr)
	if !ok {
		p.setTokenError(p.curToken, "invalid index expression")
		return nil
	}
	lbrack := p.curToken.StartPosition
	p.nextToken() // move to the index
	index := p.parseExpression(LOWEST)
	if index == nil {
		return nil
	}
	if !p.expectPeek("an index expression", token.RBRACKET) {
		return nil
	}
	rbrack := p.curToken.StartPosition
	return &ast.Index{X: left, Lbrack: lbrack, Index: index, Rbrack: rbrack}
}

// parseRange parses a half-open range expression such as "0..4".
func (p *Parser) parseRange(leftNode ast.Node) ast.Node {
	left, ok := leftNode.(ast.Expr)
	if !ok {
		p.setTokenError(p.curToken, "invalid range expression")
		return nil
	}
	dotdot := p.curToken.StartPosition
	precedence := p.currentPrecedence()
	p.nextToken() // move past '..'
	right := p.parseExpression(precedence)
	if right == nil {
		p.setTokenError(p.curToken, "invalid range expression")
		return nil
	}
	return &ast.Range{Low: left, DotDot: dotdot, High: right}
}

func (p *Parser) parseCall(functionNode ast.Node) ast.Node {
	function, ok := functionNode.(ast.Expr)
	if !ok {
		p.setTokenError(p.curToken, "invalid call expression")
		return nil
	}
	lparen := p.curToken.StartPosition
	arguments := p.parseExprList(token.RPAREN)
	if arguments == nil {
		return nil
	}
	rparen := p.curToken.StartPosition
	return &ast.Call{Fun: function, Lparen: lparen, Args: arguments, Rparen: rparen}
}

func (p *Parser) parseGetAttr(objNode ast.Node) ast.Node {
	obj, ok := objNode.(ast.Expr)
	if !ok {
		p.setTokenError(p.curToken, "invalid attribute expression")
		return nil
	}
	period := p.curToken.StartPosition
	p.nextToken()
	p.eatNewlines()
	// Comprehension keywords double as method names: "xs.iter()" uses the
	// same word as the iter keyword.
	switch p.curToken.Type {
	case token.IDENT, token.OPTION, token.RESULT, token.ITER:
	default:
		p.setTokenError(p.curToken, "expected an identifier after %q", ".")
		return nil
	}
	name := p.newIdent(p.curToken)
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		callNode := p.parseCall(name)
		if callNode == nil {
			return nil
		}
		call, ok := callNode.(*ast.Call)
		if !ok {
			p.setTokenError(p.curToken, "invalid attribute expression")
			return nil
		}
		return &ast.ObjectCall{X: obj, Period: period, Call: call}
	} else if p.peekTokenIs(token.ASSIGN) ||
		p.peekTokenIs(token.PLUS_EQUALS) ||
		p.peekTokenIs(token.MINUS_EQUALS) ||
		p.peekTokenIs(token.ASTERISK_EQUALS) ||
		p.peekTokenIs(token.SLASH_EQUALS) {
		p.nextToken() // move to the operator
		opPos := p.curToken.StartPosition
		opLiteral := p.curToken.Literal
		p.nextToken() // move to the value
		p.eatNewlines()
		right := p.parseExpression(LOWEST)
		if right == nil {
			p.setTokenError(p.curToken, "invalid assignment statement value")
			return nil
		}
		return &ast.SetAttr{X: obj, Period: period, Attr: name, OpPos: opPos, Op: opLiteral, Value: right}
	}
	return &ast.GetAttr{X: obj, Period: period, Attr: name}
}
