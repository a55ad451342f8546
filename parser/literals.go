package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/marmoset-lang/marmoset/ast"
	"github.com/marmoset-lang/marmoset/internal/token"
)

// Literal parsing methods for the Parser.
// This file contains methods that parse literal values and compound literals:
// - Numeric literals (int, float)
// - Boolean and nil literals
// - String literals
// - List literals
// - Map literals
// - Function literals

func (p *Parser) parseInt() ast.Node {
	tok, lit := p.curToken, p.curToken.Literal
	var value int64
	var err error
	if strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X") {
		value, err = strconv.ParseInt(lit[2:], 16, 64) // hexadecimal
	} else if strings.HasPrefix(lit, "0b") || strings.HasPrefix(lit, "0B") {
		value, err = strconv.ParseInt(lit[2:], 2, 64) // binary
	} else if strings.HasPrefix(lit, "0") && len(lit) > 1 {
		value, err = strconv.ParseInt(lit[1:], 8, 64) // octal
	} else {
		value, err = strconv.ParseInt(lit, 10, 64) // decimal
	}
	if err != nil {
		p.setError(NewParserError(ErrorOpts{
			ErrType:       "parse error",
			Message:       fmt.Sprintf("invalid integer: %s", lit),
			File:          p.l.Filename(),
			StartPosition: tok.StartPosition,
			EndPosition:   tok.EndPosition,
			SourceCode:    p.l.GetLineText(tok),
		}))
		return nil
	}
	return &ast.Int{ValuePos: tok.StartPosition, Literal: lit, Value: value}
}

func (p *Parser) parseFloat() ast.Node {
	tok, lit := p.curToken, p.curToken.Literal
	value, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		p.setError(NewParserError(ErrorOpts{
			ErrType:       "parse error",
			Message:       fmt.Sprintf("invalid float: %s", lit),
			File:          p.l.Filename(),
			StartPosition: p.curToken.StartPosition,
			EndPosition:   p.curToken.EndPosition,
			SourceCode:    p.l.GetLineText(p.curToken),
		}))
		return nil
	}
	return &ast.Float{ValuePos: tok.StartPosition, Literal: lit, Value: value}
}

func (p *Parser) parseBoolean() ast.Node {
	return &ast.Bool{
		ValuePos: p.curToken.StartPosition,
		Literal:  p.curToken.Literal,
		Value:    p.curTokenIs(token.TRUE),
	}
}

func (p *Parser) parseNil() ast.Node {
	return &ast.Nil{NilPos: p.curToken.StartPosition}
}

func (p *Parser) parseString() ast.Node {
	return &ast.String{
		ValuePos: p.curToken.StartPosition,
		Literal:  p.curToken.Literal,
		Value:    p.curToken.Literal,
	}
}

func (p *Parser) parseList() ast.Node {
	lbrack := p.curToken.StartPosition
	items := p.parseExprList(token.RBRACKET)
	if items == nil {
		return nil
	}
	rbrack := p.curToken.StartPosition
	return &ast.List{Lbrack: lbrack, Items: items, Rbrack: rbrack}
}

// parseExprList parses a comma-separated list of expressions until the end token.
// It wraps parseNodeList and ensures all items are expressions.
func (p *Parser) parseExprList(end token.Type) []ast.Expr {
	nodes := p.parseNodeList(end)
	if nodes == nil {
		return nil
	}
	exprs := make([]ast.Expr, len(nodes))
	for i, node := range nodes {
		expr, ok := node.(ast.Expr)
		if !ok {
			p.setTokenError(p.curToken, "expected expression in list")
			return nil
		}
		exprs[i] = expr
	}
	return exprs
}

// parseNodeList parses a comma-separated list of nodes until the end token.
// Supports trailing commas and newlines between elements.
func (p *Parser) parseNodeList(end token.Type) []ast.Node {
	list := make([]ast.Node, 0)
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	// Skip leading newlines
	for p.peekTokenIs(token.NEWLINE) {
		if err := p.nextToken(); err != nil {
			return nil
		}
	}
	p.nextToken()
	node := p.parseNode(LOWEST)
	if node == nil {
		if !p.hadNewError() {
			p.setTokenError(p.curToken, "invalid syntax in list")
		}
		return nil
	}
	list = append(list, node)
	for p.peekTokenIs(token.COMMA) {
		// Move to the comma
		if err := p.nextToken(); err != nil {
			return nil
		}
		// Skip newlines after comma
		for p.peekTokenIs(token.NEWLINE) {
			if err := p.nextToken(); err != nil {
				return nil
			}
		}
		// Check for trailing comma (list ended after newlines)
		if p.peekTokenIs(end) {
			break
		}
		// Move to the next element
		if err := p.nextToken(); err != nil {
			return nil
		}
		node = p.parseNode(LOWEST)
		if node == nil {
			return nil
		}
		list = append(list, node)
	}
	// Skip trailing newlines
	for p.peekTokenIs(token.NEWLINE) {
		if err := p.nextToken(); err != nil {
			return nil
		}
	}
	if !p.expectPeek("list", end) {
		return nil
	}
	return list
}

func (p *Parser) parseMap() ast.Node {
	lbrace := p.curToken.StartPosition
	for p.peekTokenIs(token.NEWLINE) {
		if err := p.nextToken(); err != nil {
			return nil
		}
	}
	// Empty {} is an empty map
	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		rbrace := p.curToken.StartPosition
		return &ast.Map{Lbrace: lbrace, Items: nil, Rbrace: rbrace}
	}
	p.nextToken() // move to the first key

	items := []ast.MapItem{}

	item := p.parseMapItem()
	if item == nil {
		return nil
	}
	items = append(items, *item)

	// Parse remaining items
	for !p.peekTokenIs(token.RBRACE) {
		if p.cancelled() {
			return nil
		}
		if p.peekTokenIs(token.NEWLINE) {
			p.nextToken()
			break
		}
		if !p.expectPeek("map", token.COMMA) {
			return nil
		}
		for p.peekTokenIs(token.NEWLINE) {
			if err := p.nextToken(); err != nil {
				return nil
			}
		}
		if p.peekTokenIs(token.RBRACE) {
			break
		}
		p.nextToken() // move to the key

		item := p.parseMapItem()
		if item == nil {
			return nil
		}
		items = append(items, *item)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
	}
	for p.peekTokenIs(token.NEWLINE) {
		if err := p.nextToken(); err != nil {
			return nil
		}
	}
	if !p.expectPeek("map", token.RBRACE) {
		return nil
	}
	rbrace := p.curToken.StartPosition
	return &ast.Map{Lbrace: lbrace, Items: items, Rbrace: rbrace}
}

// parseMapItem parses a single key-value pair in a map literal.
func (p *Parser) parseMapItem() *ast.MapItem {
	key := p.parseExpression(LOWEST)
	if key == nil {
		return nil
	}
	if !p.expectPeek("map", token.COLON) {
		return nil
	}
	p.nextToken() // move to the value
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	return &ast.MapItem{Key: key, Value: value}
}

func (p *Parser) parseFunc() ast.Node {
	funcPos := p.curToken.StartPosition
	var ident *ast.Ident
	if p.peekTokenIs(token.IDENT) { // Read optional function name
		p.nextToken()
		ident = p.newIdent(p.curToken)
	}
	if !p.expectPeek("function", token.LPAREN) { // Move to the "("
		return nil
	}
	lparen := p.curToken.StartPosition
	params := p.parseFuncParams()
	if params == nil { // parseFuncParams encountered an error
		return nil
	}
	rparen := p.curToken.StartPosition
	if !p.expectPeek("function", token.LBRACE) { // move to the "{"
		return nil
	}
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return &ast.Func{
		Func:   funcPos,
		Name:   ident,
		Lparen: lparen,
		Params: params,
		Rparen: rparen,
		Body:   body,
	}
}

// parseFuncParams parses a function's parameter list. Each parameter is an
// identifier with an optional type ascription, as in "func f(x, y: int)".
// Returns nil if an error was encountered.
func (p *Parser) parseFuncParams() []*ast.Param {
	// If the next parameter is ")", then there are no parameters
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return []*ast.Param{}
	}
	params := make([]*ast.Param, 0)
	p.nextToken()
	for !p.curTokenIs(token.RPAREN) { // Keep going until we find a ")"
		if p.cancelled() {
			return nil
		}
		if p.curTokenIs(token.EOF) {
			p.setTokenError(p.prevToken, "unterminated function parameters")
			return nil
		}
		if !p.curTokenIs(token.IDENT) {
			p.setTokenError(p.curToken, "expected an identifier (got %s)", p.curToken.Literal)
			return nil
		}
		param := &ast.Param{Name: p.newIdent(p.curToken)}
		if err := p.nextToken(); err != nil {
			return nil
		}
		// If there is ": type" after the name then the parameter is typed
		if p.curTokenIs(token.COLON) {
			if err := p.nextToken(); err != nil {
				return nil
			}
			if !p.curTokenIs(token.IDENT) {
				p.setTokenError(p.curToken, "expected a type name (got %s)", p.curToken.Literal)
				return nil
			}
			param.Type = p.newIdent(p.curToken)
			if err := p.nextToken(); err != nil {
				return nil
			}
		}
		params = append(params, param)
		if p.curTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	return params
}

func (p *Parser) parseNewline() ast.Node {
	// A newline in expression position is skipped
	if err := p.nextToken(); err != nil {
		return nil
	}
	return p.parseNode(LOWEST)
}
