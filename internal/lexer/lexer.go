// Package lexer converts source code into a stream of tokens.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/marmoset-lang/marmoset/internal/token"
)

// Lexer reads tokens from an input string, one at a time, until EOF.
type Lexer struct {
	input     string
	filename  string
	pos       int  // byte offset of the current character
	ch        rune // current character
	width     int  // byte width of the current character
	line      int  // 0-indexed line number of the current character
	lineStart int  // byte offset of the start of the current line
}

// State captures the lexer's progress so that it can be rewound. Used by the
// parser to peek past newlines without committing to them.
type State struct {
	pos       int
	ch        rune
	width     int
	line      int
	lineStart int
}

// Option is a configuration function for a Lexer.
type Option func(*Lexer)

// WithFile sets the filename associated with the input, which is then carried
// on all token positions.
func WithFile(filename string) Option {
	return func(l *Lexer) {
		l.filename = filename
	}
}

// New returns a Lexer for the given input.
func New(input string, opts ...Option) *Lexer {
	l := &Lexer{input: input}
	for _, opt := range opts {
		opt(l)
	}
	l.readChar()
	// A shebang line is ignored in its entirety
	if strings.HasPrefix(input, "#!") {
		for l.ch != '\n' && l.ch != 0 {
			l.readChar()
		}
	}
	return l
}

// Filename returns the filename associated with the input.
func (l *Lexer) Filename() string {
	return l.filename
}

// SetFilename sets the filename associated with the input.
func (l *Lexer) SetFilename(filename string) {
	l.filename = filename
}

// Position returns the position of the current character.
func (l *Lexer) Position() token.Position {
	return token.Position{
		Char:      l.pos,
		LineStart: l.lineStart,
		Line:      l.line,
		Column:    l.pos - l.lineStart,
		File:      l.filename,
	}
}

// SaveState returns an opaque snapshot of the lexer's progress.
func (l *Lexer) SaveState() State {
	return State{
		pos:       l.pos,
		ch:        l.ch,
		width:     l.width,
		line:      l.line,
		lineStart: l.lineStart,
	}
}

// RestoreState rewinds the lexer to a previously saved snapshot.
func (l *Lexer) RestoreState(s State) {
	l.pos = s.pos
	l.ch = s.ch
	l.width = s.width
	l.line = s.line
	l.lineStart = s.lineStart
}

// GetLineText returns the line of input containing the given token. When the
// token is an EOF sitting on an empty final line, the previous line is
// returned as context.
func (l *Lexer) GetLineText(tok token.Token) string {
	start := tok.StartPosition.LineStart
	if start > len(l.input) {
		start = len(l.input)
	}
	end := len(l.input)
	if i := strings.IndexAny(l.input[start:], "\r\n"); i >= 0 {
		end = start + i
	}
	text := l.input[start:end]
	if text == "" && tok.Type == token.EOF && start > 0 {
		prevEnd := start - 1
		if l.input[prevEnd] == '\n' && prevEnd > 0 && l.input[prevEnd-1] == '\r' {
			prevEnd--
		}
		prevStart := 0
		if i := strings.LastIndexAny(l.input[:prevEnd], "\r\n"); i >= 0 {
			prevStart = i + 1
		}
		return l.input[prevStart:prevEnd]
	}
	return text
}

// Next returns the next token from the input, or an error if the input is
// malformed at the current position. After the input is exhausted, every call
// returns an EOF token.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()
	start := l.Position()
	switch l.ch {
	case 0:
		return token.Token{
			Type:          token.EOF,
			StartPosition: start,
			EndPosition:   start,
		}, nil
	case '\n':
		l.readChar()
		l.newline()
		return l.newToken(token.NEWLINE, "\n", start), nil
	case '\r':
		l.readChar()
		literal := "\r"
		if l.ch == '\n' {
			l.readChar()
			literal = "\r\n"
		}
		l.newline()
		return l.newToken(token.NEWLINE, literal, start), nil
	case '=':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return l.newToken(token.EQ, "==", start), nil
		}
		return l.newToken(token.ASSIGN, "=", start), nil
	case '!':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return l.newToken(token.NOT_EQ, "!=", start), nil
		}
		return l.newToken(token.BANG, "!", start), nil
	case '<':
		l.readChar()
		switch l.ch {
		case '=':
			l.readChar()
			return l.newToken(token.LT_EQUALS, "<=", start), nil
		case '-':
			l.readChar()
			return l.newToken(token.ARROW, "<-", start), nil
		}
		return l.newToken(token.LT, "<", start), nil
	case '>':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return l.newToken(token.GT_EQUALS, ">=", start), nil
		}
		return l.newToken(token.GT, ">", start), nil
	case '+':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return l.newToken(token.PLUS_EQUALS, "+=", start), nil
		}
		return l.newToken(token.PLUS, "+", start), nil
	case '-':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return l.newToken(token.MINUS_EQUALS, "-=", start), nil
		}
		return l.newToken(token.MINUS, "-", start), nil
	case '*':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return l.newToken(token.ASTERISK_EQUALS, "*=", start), nil
		}
		return l.newToken(token.ASTERISK, "*", start), nil
	case '/':
		l.readChar()
		switch l.ch {
		case '=':
			l.readChar()
			return l.newToken(token.SLASH_EQUALS, "/=", start), nil
		case '/':
			l.skipLineComment()
			return l.Next()
		case '*':
			l.skipBlockComment()
			return l.Next()
		}
		return l.newToken(token.SLASH, "/", start), nil
	case '%':
		l.readChar()
		return l.newToken(token.MOD, "%", start), nil
	case '&':
		l.readChar()
		if l.ch == '&' {
			l.readChar()
			return l.newToken(token.AND, "&&", start), nil
		}
		return l.errorToken(start), fmt.Errorf("unexpected character: '&'")
	case '|':
		l.readChar()
		if l.ch == '|' {
			l.readChar()
			return l.newToken(token.OR, "||", start), nil
		}
		return l.errorToken(start), fmt.Errorf("unexpected character: '|'")
	case '.':
		l.readChar()
		if l.ch == '.' {
			l.readChar()
			return l.newToken(token.DOTDOT, "..", start), nil
		}
		return l.newToken(token.PERIOD, ".", start), nil
	case ':':
		l.readChar()
		return l.newToken(token.COLON, ":", start), nil
	case ';':
		l.readChar()
		return l.newToken(token.SEMICOLON, ";", start), nil
	case ',':
		l.readChar()
		return l.newToken(token.COMMA, ",", start), nil
	case '(':
		l.readChar()
		return l.newToken(token.LPAREN, "(", start), nil
	case ')':
		l.readChar()
		return l.newToken(token.RPAREN, ")", start), nil
	case '{':
		l.readChar()
		return l.newToken(token.LBRACE, "{", start), nil
	case '}':
		l.readChar()
		return l.newToken(token.RBRACE, "}", start), nil
	case '[':
		l.readChar()
		return l.newToken(token.LBRACKET, "[", start), nil
	case ']':
		l.readChar()
		return l.newToken(token.RBRACKET, "]", start), nil
	case '"', '\'':
		return l.readString(l.ch, start)
	}
	if isDigit(l.ch) {
		return l.readNumber(start)
	}
	if isIdentStart(l.ch) {
		return l.readIdentifier(start)
	}
	if l.ch < utf8.RuneSelf && unicode.IsPrint(l.ch) {
		return l.errorToken(start), fmt.Errorf("unexpected character: %q", l.ch)
	}
	return l.errorToken(start), fmt.Errorf("invalid identifier: %s", string(l.ch))
}

// newToken builds a token whose raw source text has the same length as its
// literal. The end position points at the last character of the token.
func (l *Lexer) newToken(typ token.Type, literal string, start token.Position) token.Token {
	return l.newTokenLen(typ, literal, start, len(literal))
}

func (l *Lexer) newTokenLen(typ token.Type, literal string, start token.Position, rawLen int) token.Token {
	end := start
	if rawLen > 1 {
		end = start.Advance(rawLen - 1)
	}
	return token.Token{
		Type:          typ,
		Literal:       literal,
		StartPosition: start,
		EndPosition:   end,
	}
}

// errorToken builds the token reported alongside a lexing error. It spans
// from start through the last consumed character so diagnostics can point
// at the offending source.
func (l *Lexer) errorToken(start token.Position) token.Token {
	rawLen := l.pos - start.Char
	if rawLen < 1 {
		rawLen = 1
	}
	return l.newTokenLen(token.ILLEGAL, "", start, rawLen)
}

func (l *Lexer) readChar() {
	if l.pos+l.width >= len(l.input) {
		l.pos = len(l.input)
		l.ch = 0
		l.width = 0
		return
	}
	l.pos += l.width
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.ch = r
	l.width = w
}

// newline records that the characters just consumed ended a line. Called
// after the newline bytes have been read.
func (l *Lexer) newline() {
	l.line++
	l.lineStart = l.pos
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' {
		l.readChar()
	}
}

// skipLineComment consumes input up to, but not including, the next newline.
func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != '\r' && l.ch != 0 {
		l.readChar()
	}
}

// skipBlockComment consumes input through the closing "*/". Newlines within
// the comment advance the line counter but produce no tokens.
func (l *Lexer) skipBlockComment() {
	l.readChar() // consume '*'
	for {
		switch l.ch {
		case 0:
			return
		case '\n':
			l.readChar()
			l.newline()
		case '\r':
			l.readChar()
			if l.ch == '\n' {
				l.readChar()
			}
			l.newline()
		case '*':
			l.readChar()
			if l.ch == '/' {
				l.readChar()
				return
			}
		default:
			l.readChar()
		}
	}
}

func (l *Lexer) readIdentifier(start token.Position) (token.Token, error) {
	for isIdentPart(l.ch) {
		l.readChar()
	}
	literal := l.input[start.Char:l.pos]
	// A rune that could never start another token indicates a malformed
	// identifier rather than a boundary
	if l.ch >= utf8.RuneSelf && !unicode.IsLetter(l.ch) && !unicode.IsDigit(l.ch) {
		return l.errorToken(start), fmt.Errorf("invalid identifier: %s", literal+string(l.ch))
	}
	return l.newToken(token.LookupIdentifier(literal), literal, start), nil
}

func (l *Lexer) readNumber(start token.Position) (token.Token, error) {
	invalid := func() error {
		consumed := l.input[start.Char:l.pos]
		return fmt.Errorf("invalid decimal literal: %s%s", consumed, string(l.ch))
	}
	if l.ch == '0' {
		l.readChar()
		switch {
		case l.ch == 'x' || l.ch == 'X':
			l.readChar()
			if !isHexDigit(l.ch) {
				return l.errorToken(start), invalid()
			}
			for isHexDigit(l.ch) {
				l.readChar()
			}
			if isIdentStart(l.ch) {
				return l.errorToken(start), invalid()
			}
			return l.numberToken(token.INT, start), nil
		case l.ch == 'b' || l.ch == 'B':
			l.readChar()
			if l.ch != '0' && l.ch != '1' {
				return l.errorToken(start), invalid()
			}
			for l.ch == '0' || l.ch == '1' {
				l.readChar()
			}
			if isIdentStart(l.ch) || isDigit(l.ch) {
				return l.errorToken(start), invalid()
			}
			return l.numberToken(token.INT, start), nil
		case isDigit(l.ch):
			// Octal, by a leading zero
			for l.ch >= '0' && l.ch <= '7' {
				l.readChar()
			}
			if isIdentStart(l.ch) || isDigit(l.ch) {
				return l.errorToken(start), invalid()
			}
			return l.numberToken(token.INT, start), nil
		}
	}
	for isDigit(l.ch) {
		l.readChar()
	}
	if isIdentStart(l.ch) {
		return l.errorToken(start), invalid()
	}
	if l.ch != '.' {
		return l.numberToken(token.INT, start), nil
	}
	// A second period means this is an integer followed by a range operator
	if l.peekChar() == '.' {
		return l.numberToken(token.INT, start), nil
	}
	l.readChar() // consume '.'
	if !isDigit(l.ch) {
		return l.errorToken(start), invalid()
	}
	for isDigit(l.ch) {
		l.readChar()
	}
	if isIdentStart(l.ch) {
		return l.errorToken(start), invalid()
	}
	return l.numberToken(token.FLOAT, start), nil
}

func (l *Lexer) numberToken(typ token.Type, start token.Position) token.Token {
	literal := l.input[start.Char:l.pos]
	return l.newToken(typ, literal, start)
}

// readString lexes a string literal delimited by quote, processing escape
// sequences. String literals may not span lines.
func (l *Lexer) readString(quote rune, start token.Position) (token.Token, error) {
	var out strings.Builder
	l.readChar() // consume opening quote
	for {
		switch l.ch {
		case 0, '\n', '\r':
			return l.errorToken(start), fmt.Errorf("unterminated string literal")
		case quote:
			rawLen := l.pos - start.Char + 1
			l.readChar() // consume closing quote
			return l.newTokenLen(token.STRING, out.String(), start, rawLen), nil
		case '\\':
			l.readChar()
			if err := l.readEscape(&out); err != nil {
				return l.errorToken(start), err
			}
		default:
			out.WriteRune(l.ch)
			l.readChar()
		}
	}
}

func (l *Lexer) readEscape(out *strings.Builder) error {
	ch := l.ch
	l.readChar()
	switch ch {
	case 'a':
		out.WriteRune('\a')
	case 'b':
		out.WriteRune('\b')
	case 'e':
		out.WriteRune('\x1B')
	case 'f':
		out.WriteRune('\f')
	case 'n':
		out.WriteRune('\n')
	case 'r':
		out.WriteRune('\r')
	case 't':
		out.WriteRune('\t')
	case 'v':
		out.WriteRune('\v')
	case '\\':
		out.WriteRune('\\')
	case '"':
		out.WriteRune('"')
	case '\'':
		out.WriteRune('\'')
	case 'x':
		r, err := l.readHexEscape(2)
		if err != nil {
			return err
		}
		out.WriteRune(r)
	case 'u':
		r, err := l.readHexEscape(4)
		if err != nil {
			return err
		}
		out.WriteRune(r)
	case 'U':
		r, err := l.readHexEscape(8)
		if err != nil {
			return err
		}
		out.WriteRune(r)
	case '0', '1', '2', '3':
		// Octal escapes denote a raw byte, not a rune
		value := byte(ch - '0')
		for i := 0; i < 2; i++ {
			if l.ch < '0' || l.ch > '7' {
				return fmt.Errorf("invalid octal escape sequence")
			}
			value = value*8 + byte(l.ch-'0')
			l.readChar()
		}
		out.WriteByte(value)
	default:
		return fmt.Errorf("invalid escape sequence: \\%s", string(ch))
	}
	return nil
}

func (l *Lexer) readHexEscape(digits int) (rune, error) {
	var value rune
	for i := 0; i < digits; i++ {
		d := hexDigitValue(l.ch)
		if d < 0 {
			return 0, fmt.Errorf("invalid hex escape sequence")
		}
		value = value*16 + rune(d)
		l.readChar()
	}
	return value, nil
}

func (l *Lexer) peekChar() rune {
	if l.pos+l.width >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos+l.width:])
	return r
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return hexDigitValue(ch) >= 0
}

func hexDigitValue(ch rune) int {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0')
	case ch >= 'a' && ch <= 'f':
		return int(ch-'a') + 10
	case ch >= 'A' && ch <= 'F':
		return int(ch-'A') + 10
	}
	return -1
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}
