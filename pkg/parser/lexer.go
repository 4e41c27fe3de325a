package parser

import (
	"strings"

	"github.com/leapstack-labs/sqlint/pkg/token"
)

// Lexer tokenizes SQL input without discarding anything: whitespace,
// newlines and comments come back as tokens so the caller can rebuild the
// source byte for byte.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	dialect Dialect
}

// NewLexer creates a new Lexer for the given input and dialect.
func NewLexer(input string, d Dialect) *Lexer {
	l := &Lexer{
		input:   input,
		line:    1,
		col:     0,
		dialect: d,
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// Tokenize consumes the whole input and returns its tokens. Concatenating
// the token literals reproduces the input exactly.
func Tokenize(input string, d Dialect) []token.Token {
	l := NewLexer(input, d)
	var out []token.Token
	for {
		tok, ok := l.next()
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}

// next returns the next token, or false at end of input.
func (l *Lexer) next() (token.Token, bool) {
	if l.ch == 0 {
		return token.Token{}, false
	}

	pos := l.currentPos()

	switch {
	case l.ch == '\r' || l.ch == '\n':
		return l.readNewline(pos), true
	case l.ch == ' ' || l.ch == '\t':
		return l.readWhitespace(pos), true
	case l.ch == '-' && l.peekChar() == '-':
		return l.readLineComment(pos, 2), true
	case l.ch == '/' && l.peekChar() == '*':
		return l.readBlockComment(pos), true
	}

	if n := l.matchDialectComment(); n > 0 {
		return l.readLineComment(pos, n), true
	}

	switch {
	case l.ch == '\'':
		return l.readString(pos), true
	case l.ch == '"' || (l.ch == '`' && l.dialect.BacktickQuotes):
		return l.readQuoted(pos, l.ch), true
	case isIdentChar(l.ch):
		return l.readWord(pos), true
	default:
		// Single-char operator or punctuation
		lit := string(l.ch)
		l.readChar()
		return token.Token{Class: token.Code, Literal: lit, Pos: pos}, true
	}
}

// matchDialectComment returns the length of a dialect line-comment prefix at
// the current position, or 0.
func (l *Lexer) matchDialectComment() int {
	for _, prefix := range l.dialect.LineCommentPrefixes {
		if strings.HasPrefix(l.input[l.pos:], prefix) {
			return len(prefix)
		}
	}
	return 0
}

func (l *Lexer) readNewline(pos token.Position) token.Token {
	start := l.pos
	if l.ch == '\r' && l.peekChar() == '\n' {
		l.readChar()
	}
	l.readChar()
	return token.Token{Class: token.Newline, Literal: l.input[start:l.pos], Pos: pos}
}

func (l *Lexer) readWhitespace(pos token.Position) token.Token {
	start := l.pos
	for l.ch == ' ' || l.ch == '\t' {
		l.readChar()
	}
	return token.Token{Class: token.Whitespace, Literal: l.input[start:l.pos], Pos: pos}
}

// readLineComment consumes a comment running to end of line, excluding the
// newline itself.
func (l *Lexer) readLineComment(pos token.Position, prefixLen int) token.Token {
	start := l.pos
	for i := 0; i < prefixLen; i++ {
		l.readChar()
	}
	for l.ch != '\n' && l.ch != '\r' && l.ch != 0 {
		l.readChar()
	}
	return token.Token{Class: token.Comment, Literal: l.input[start:l.pos], Pos: pos}
}

func (l *Lexer) readBlockComment(pos token.Position) token.Token {
	start := l.pos
	l.readChar() // skip '/'
	l.readChar() // skip '*'
	for l.ch != 0 {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			break
		}
		l.readChar()
	}
	return token.Token{Class: token.Comment, Literal: l.input[start:l.pos], Pos: pos}
}

// readString consumes a single-quoted string literal; '' escapes a quote.
func (l *Lexer) readString(pos token.Position) token.Token {
	start := l.pos
	l.readChar() // opening quote
	for l.ch != 0 {
		if l.ch == '\'' {
			if l.peekChar() == '\'' {
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar()
			break
		}
		l.readChar()
	}
	return token.Token{Class: token.Code, Literal: l.input[start:l.pos], Pos: pos}
}

// readQuoted consumes a quoted identifier delimited by quote.
func (l *Lexer) readQuoted(pos token.Position, quote byte) token.Token {
	start := l.pos
	l.readChar()
	for l.ch != 0 && l.ch != quote {
		l.readChar()
	}
	if l.ch == quote {
		l.readChar()
	}
	return token.Token{Class: token.Code, Literal: l.input[start:l.pos], Pos: pos}
}

// readWord consumes an identifier, keyword or number.
func (l *Lexer) readWord(pos token.Position) token.Token {
	start := l.pos
	for isIdentChar(l.ch) || l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
	}
	return token.Token{Class: token.Code, Literal: l.input[start:l.pos], Pos: pos}
}

func isIdentChar(ch byte) bool {
	// Bytes >= 0x80 are UTF-8 continuation or start bytes; treat them as
	// identifier characters so multibyte identifiers stay in one token.
	return ch == '_' || ch == '$' || isDigit(ch) ||
		('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch >= 0x80
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
