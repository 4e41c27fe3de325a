// Package token defines the lexical vocabulary for the lossless SQL tokenizer.
//
// Unlike a conventional lexer, the tokenizer never discards input: whitespace,
// newlines and comments are first-class tokens so that the concrete syntax
// tree built on top of them can reproduce the original source byte for byte.
package token

import "fmt"

// Class categorizes a lexical token.
//
// Code covers everything that is not trivia: keywords, identifiers, literals,
// operators and punctuation. The tokenizer does not sub-classify code tokens;
// structural meaning is assigned later when the tree is assembled.
type Class int

// Token classes.
const (
	Code Class = iota
	Whitespace
	Newline
	Comment
)

// String returns a human-readable representation of the class.
func (c Class) String() string {
	switch c {
	case Code:
		return "code"
	case Whitespace:
		return "whitespace"
	case Newline:
		return "newline"
	case Comment:
		return "comment"
	default:
		return fmt.Sprintf("CLASS(%d)", int(c))
	}
}

// Token is a single lexical unit with its verbatim source text.
type Token struct {
	Class   Class
	Literal string // exact source text, delimiters included
	Pos     Position
}

// IsTrivia returns true for whitespace, newline and comment tokens.
func (t Token) IsTrivia() bool {
	return t.Class != Code
}
