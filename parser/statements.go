package parser

import (
	"github.com/marmoset-lang/marmoset/ast"
	"github.com/marmoset-lang/marmoset/internal/token"
)

// Statement parsing methods for the Parser.
// This file contains methods that parse statement constructs:
// - Variable declarations (let, let mut)
// - Binding patterns (identifier, tuple, struct)
// - Monadic binds (let x <- source)
// - Struct type declarations
// - Return statements
// - Assignment statements

func (p *Parser) parseLet() ast.Node {
	letPos := p.curToken.StartPosition
	mut := false
	if p.peekTokenIs(token.MUT) {
		p.nextToken() // move to "mut"
		mut = true
	}
	if !p.peekTokenIs(token.IDENT) && !p.peekTokenIs(token.LPAREN) {
		p.peekError("let statement", token.IDENT, p.peekToken)
		return nil
	}
	p.nextToken() // move to the pattern
	pattern := p.parsePattern()
	if pattern == nil {
		return nil
	}
	if mut {
		// Destructuring introduces multiple names, and "mut" would be
		// ambiguous about which of them it applies to.
		if _, ok := pattern.(*ast.IdentPattern); !ok {
			p.setTokenError(p.curToken, "mut requires a single identifier")
			return nil
		}
	}
	var typ *ast.Ident
	if p.peekTokenIs(token.COLON) {
		p.nextToken() // move to ':'
		if !p.expectPeek("a type ascription", token.IDENT) {
			return nil
		}
		typ = p.newIdent(p.curToken)
	}
	switch {
	case p.peekTokenIs(token.ARROW):
		p.nextToken() // move to '<-'
		arrowPos := p.curToken.StartPosition
		p.nextToken() // move past '<-'
		value := p.parseAssignmentValue()
		if value == nil {
			return nil
		}
		return &ast.Bind{Let: letPos, Mut: mut, Pattern: pattern, Type: typ, Arrow: arrowPos, Value: value}
	case p.peekTokenIs(token.ASSIGN):
		p.nextToken() // move to '='
		p.nextToken() // move past '='
		value := p.parseAssignmentValue()
		if value == nil {
			return nil
		}
		return &ast.Var{Let: letPos, Mut: mut, Pattern: pattern, Type: typ, Value: value}
	}
	// A declaration without a value initializes the variable to nil. Only a
	// plain identifier can be declared this way; a destructuring pattern has
	// nothing to take apart without a value.
	if ident, ok := pattern.(*ast.IdentPattern); ok && !ident.IsWildcard() {
		return &ast.Var{Let: letPos, Mut: mut, Pattern: pattern, Type: typ}
	}
	p.setTokenError(p.curToken, "let statement is missing a value")
	return nil
}

// parsePattern parses a binding pattern, with the current token positioned on
// the pattern's first token. Patterns are irrefutable: an identifier always
// matches, and tuple and struct patterns destructure values of the matching
// shape.
func (p *Parser) parsePattern() ast.Pattern {
	switch p.curToken.Type {
	case token.IDENT:
		ident := p.newIdent(p.curToken)
		// "Name(a, b)" and "Name{x, y}" destructure struct values
		if p.peekTokenIs(token.LPAREN) || p.peekTokenIs(token.LBRACE) {
			return p.parseStructPattern(ident)
		}
		return &ast.IdentPattern{NamePos: ident.NamePos, Name: ident.Name}
	case token.LPAREN:
		return p.parseTuplePattern()
	default:
		p.setTokenError(p.curToken, "invalid binding pattern (unexpected %q)", p.curToken.Literal)
		return nil
	}
}

func (p *Parser) parseTuplePattern() ast.Pattern {
	lparen := p.curToken.StartPosition
	elems := []ast.Pattern{}
	trailingComma := false
	for {
		if p.peekTokenIs(token.RPAREN) {
			p.nextToken() // move to ')'
			break
		}
		if err := p.nextToken(); err != nil { // move to the element
			return nil
		}
		el := p.parsePattern()
		if el == nil {
			return nil
		}
		elems = append(elems, el)
		trailingComma = false
		if p.peekTokenIs(token.COMMA) {
			p.nextToken() // move to ','
			trailingComma = true
			continue
		}
		if !p.expectPeek("a tuple pattern", token.RPAREN) {
			return nil
		}
		break
	}
	rparen := p.curToken.StartPosition
	// "(x)" is a parenthesized pattern, not a 1-tuple; "(x,)" is a 1-tuple
	if len(elems) == 1 && !trailingComma {
		return elems[0]
	}
	return &ast.TuplePattern{Lparen: lparen, Elems: elems, Rparen: rparen}
}

func (p *Parser) parseStructPattern(name *ast.Ident) ast.Pattern {
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken() // move to '('
		open := p.curToken.StartPosition
		elems := []ast.Pattern{}
		for {
			if p.peekTokenIs(token.RPAREN) {
				p.nextToken()
				break
			}
			if err := p.nextToken(); err != nil { // move to the element
				return nil
			}
			el := p.parsePattern()
			if el == nil {
				return nil
			}
			elems = append(elems, el)
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
				continue
			}
			if !p.expectPeek("a struct pattern", token.RPAREN) {
				return nil
			}
			break
		}
		return &ast.StructPattern{Name: name, Open: open, Positional: elems, Close: p.curToken.StartPosition}
	}
	// Named-field form: Name{x, y: pat}
	p.nextToken() // move to '{'
	open := p.curToken.StartPosition
	fields := []*ast.FieldPattern{}
	for {
		if p.peekTokenIs(token.RBRACE) {
			p.nextToken()
			break
		}
		if !p.expectPeek("a struct pattern", token.IDENT) {
			return nil
		}
		field := &ast.FieldPattern{Key: p.newIdent(p.curToken)}
		if p.peekTokenIs(token.COLON) {
			p.nextToken() // move to ':'
			if err := p.nextToken(); err != nil { // move to the value pattern
				return nil
			}
			value := p.parsePattern()
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
		if !p.expectPeek("a struct pattern", token.RBRACE) {
			return nil
		}
		break
	}
	return &ast.StructPattern{Name: name, Open: open, Fields: fields, Close: p.curToken.StartPosition, Named: true}
}

// parseStruct parses a struct type declaration. "struct Pair(first, second)"
// declares a positional struct and "struct Point{x, y}" declares a
// named-field struct.
func (p *Parser) parseStruct() ast.Node {
	structPos := p.curToken.StartPosition
	if !p.expectPeek("struct declaration", token.IDENT) {
		return nil
	}
	name := p.newIdent(p.curToken)
	var end token.Type
	named := false
	switch {
	case p.peekTokenIs(token.LPAREN):
		end = token.RPAREN
	case p.peekTokenIs(token.LBRACE):
		end = token.RBRACE
		named = true
	default:
		p.peekError("struct declaration", token.LPAREN, p.peekToken)
		return nil
	}
	p.nextToken() // move to the opening delimiter
	open := p.curToken.StartPosition
	fields := []*ast.Ident{}
	for {
		for p.peekTokenIs(token.NEWLINE) {
			if err := p.nextToken(); err != nil {
				return nil
			}
		}
		if p.peekTokenIs(end) {
			p.nextToken()
			break
		}
		if !p.expectPeek("a field name", token.IDENT) {
			return nil
		}
		fields = append(fields, p.newIdent(p.curToken))
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		for p.peekTokenIs(token.NEWLINE) {
			if err := p.nextToken(); err != nil {
				return nil
			}
		}
		if !p.expectPeek("struct declaration", end) {
			return nil
		}
		break
	}
	return &ast.StructDecl{
		Struct: structPos,
		Name:   name,
		Open:   open,
		Fields: fields,
		Close:  p.curToken.StartPosition,
		Named:  named,
	}
}

// parseAssignmentValue parses the right hand side of an assignment statement.
func (p *Parser) parseAssignmentValue() ast.Expr {
	// Save the assignment token before eatNewlines potentially changes prevToken
	assignToken := p.prevToken
	p.eatNewlines()
	result := p.parseExpression(LOWEST)
	if result == nil {
		// Only add error if none was added during parsing
		if !p.hadNewError() {
			p.setError(NewParserError(ErrorOpts{
				ErrType:       "parse error",
				Message:       "assignment is missing a value",
				File:          p.l.Filename(),
				StartPosition: assignToken.StartPosition,
				EndPosition:   assignToken.EndPosition,
				SourceCode:    p.l.GetLineText(assignToken),
			}))
		}
		return nil
	}
	return result
}

func (p *Parser) parseReturn() ast.Node {
	returnPos := p.curToken.StartPosition
	if p.peekTokenIs(token.SEMICOLON) ||
		p.peekTokenIs(token.NEWLINE) ||
		p.peekTokenIs(token.RBRACE) ||
		p.peekTokenIs(token.EOF) {
		return &ast.Return{Return: returnPos, Value: nil}
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	return &ast.Return{Return: returnPos, Value: value}
}

func (p *Parser) parseExpressionStatement() ast.Node {
	expr := p.parseNode(LOWEST)
	if expr == nil {
		// Only add error if none was added during parsing
		if !p.hadNewError() {
			p.setTokenError(p.curToken, "invalid syntax")
		}
		return nil
	}
	return expr
}

func (p *Parser) parseAssign(name ast.Node) ast.Node {
	opPos := p.curToken.StartPosition
	op := p.curToken.Literal
	var ident *ast.Ident
	var index *ast.Index
	switch node := name.(type) {
	case *ast.Ident:
		ident = node
	case *ast.Index:
		index = node
	default:
		p.setTokenError(p.curToken, "unexpected token for assignment: %s", name.String())
		return nil
	}
	p.nextToken() // move to the RHS value
	p.eatNewlines()
	right := p.parseExpression(LOWEST)
	if right == nil {
		p.setTokenError(p.curToken, "invalid assignment statement value")
		return nil
	}
	if index != nil {
		return &ast.Assign{Index: index, OpPos: opPos, Op: op, Value: right}
	}
	return &ast.Assign{Name: ident, OpPos: opPos, Op: op, Value: right}
}
