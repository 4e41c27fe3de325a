// Package parser builds the lossless concrete syntax tree the lint rules
// operate on.
//
// The parser is deliberately shallow: it assigns structure only where rules
// need it (CASE expressions and their clauses) and leaves everything else as
// flat leaves. Because the lexer never discards input, the resulting tree
// reproduces the source byte for byte regardless of how much of the grammar
// it understood.
package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlint/pkg/segment"
	"github.com/leapstack-labs/sqlint/pkg/token"
)

// Parse tokenizes source with the named dialect and assembles the CST.
// The returned root is a "file" composite satisfying the lossless invariant:
// root.Raw() == source. A violated invariant is a defect and is surfaced as
// an error, never masked.
func Parse(source, dialectName string) (*segment.Segment, error) {
	d, ok := GetDialect(dialectName)
	if !ok {
		return nil, fmt.Errorf("parser: unknown dialect %q (have %v)", dialectName, DialectNames())
	}

	p := &parser{toks: Tokenize(source, d)}
	children := p.parseSequence(nil)
	root := segment.NewComposite("file", children...)

	if root.Raw() != source {
		return nil, fmt.Errorf("parser: lossless invariant violated: rebuilt %d bytes from %d byte input", len(root.Raw()), len(source))
	}
	return root, nil
}

type parser struct {
	toks []token.Token
	pos  int
}

func (p *parser) done() bool { return p.pos >= len(p.toks) }

func (p *parser) cur() token.Token { return p.toks[p.pos] }

// curKeyword returns the upper-cased literal of the current token when it is
// a code token, else "".
func (p *parser) curKeyword() string {
	if p.done() || p.cur().Class != token.Code {
		return ""
	}
	return strings.ToUpper(p.cur().Literal)
}

func leafFor(tok token.Token) *segment.Segment {
	switch tok.Class {
	case token.Whitespace:
		return segment.NewWhitespace(tok.Literal)
	case token.Newline:
		return segment.NewNewline(tok.Literal)
	case token.Comment:
		return segment.NewComment(tok.Literal)
	default:
		return segment.NewCode(tok.Literal)
	}
}

// parseSequence consumes tokens until EOF or until stop reports true for the
// current token, turning CASE keywords into case_expression composites and
// everything else into leaves.
func (p *parser) parseSequence(stop func(token.Token) bool) []*segment.Segment {
	var out []*segment.Segment
	for !p.done() {
		if stop != nil && stop(p.cur()) {
			break
		}
		if p.curKeyword() == "CASE" {
			out = append(out, p.parseCase())
			continue
		}
		out = append(out, leafFor(p.cur()))
		p.pos++
	}
	return out
}

// parseCase assembles a case_expression composite. Layout:
//
//	[CASE, Indent, subject..., when_clause..., else_clause?, trivia..., Dedent, END]
//
// Trivia between clauses stays at case level rather than inside the
// clauses; rules rely on that to find and move comments around clause
// boundaries.
func (p *parser) parseCase() *segment.Segment {
	children := []*segment.Segment{segment.NewCode(p.cur().Literal), segment.NewIndent(1)}
	p.pos++

	var pending []*segment.Segment // trivia not yet assigned to a clause
	parens := 0

	flush := func() {
		children = append(children, pending...)
		pending = nil
	}

	for !p.done() {
		tok := p.cur()
		if tok.IsTrivia() {
			pending = append(pending, leafFor(tok))
			p.pos++
			continue
		}

		switch kw := p.curKeyword(); {
		case kw == "WHEN" && parens == 0:
			flush()
			clause, trailing := p.parseClause("when_clause", "WHEN")
			children = append(children, clause)
			pending = trailing
		case kw == "ELSE" && parens == 0:
			flush()
			clause, trailing := p.parseElseClause()
			children = append(children, clause)
			pending = trailing
		case kw == "END" && parens == 0:
			flush()
			children = append(children, segment.NewDedent(), segment.NewCode(tok.Literal))
			p.pos++
			return segment.NewComposite("case_expression", children...)
		case kw == "CASE":
			flush()
			children = append(children, p.parseCase())
		default:
			if tok.Literal == "(" {
				parens++
			} else if tok.Literal == ")" && parens > 0 {
				parens--
			}
			flush()
			children = append(children, leafFor(tok))
			p.pos++
		}
	}

	// Unterminated CASE: keep what we have, stay lossless.
	flush()
	return segment.NewComposite("case_expression", children...)
}

// parseClause consumes one WHEN clause starting at the given keyword. The
// clause ends before the next WHEN/ELSE/END at paren depth zero; trailing
// trivia after the clause's last code token is returned to the caller so it
// lands at case level.
func (p *parser) parseClause(typ, keyword string) (*segment.Segment, []*segment.Segment) {
	children := []*segment.Segment{segment.NewCode(p.cur().Literal)}
	p.pos++

	var pending []*segment.Segment
	parens := 0

	for !p.done() {
		tok := p.cur()
		if tok.IsTrivia() {
			pending = append(pending, leafFor(tok))
			p.pos++
			continue
		}

		kw := p.curKeyword()
		if parens == 0 && (kw == "WHEN" || kw == "ELSE" || kw == "END") {
			break
		}

		children = append(children, pending...)
		pending = nil

		if kw == "CASE" {
			children = append(children, p.parseCase())
			continue
		}
		if tok.Literal == "(" {
			parens++
		} else if tok.Literal == ")" && parens > 0 {
			parens--
		}
		children = append(children, leafFor(tok))
		p.pos++
	}

	return segment.NewComposite(typ, children...), pending
}

// parseElseClause consumes an ELSE clause. Layout:
//
//	[ELSE, Indent, trivia..., expression, Dedent]
//
// Leading trivia between ELSE and its body stays inside the clause (rules
// inspect it when relocating comments); trailing trivia after the body is
// returned to the caller.
func (p *parser) parseElseClause() (*segment.Segment, []*segment.Segment) {
	children := []*segment.Segment{segment.NewCode(p.cur().Literal), segment.NewIndent(1)}
	p.pos++

	// Leading trivia before the body
	for !p.done() && p.cur().IsTrivia() {
		children = append(children, leafFor(p.cur()))
		p.pos++
	}

	var body, pending []*segment.Segment
	parens := 0

	for !p.done() {
		tok := p.cur()
		if tok.IsTrivia() {
			pending = append(pending, leafFor(tok))
			p.pos++
			continue
		}

		kw := p.curKeyword()
		if parens == 0 && (kw == "WHEN" || kw == "ELSE" || kw == "END") {
			break
		}

		body = append(body, pending...)
		pending = nil

		if kw == "CASE" {
			body = append(body, p.parseCase())
			continue
		}
		if tok.Literal == "(" {
			parens++
		} else if tok.Literal == ")" && parens > 0 {
			parens--
		}
		body = append(body, leafFor(tok))
		p.pos++
	}

	if len(body) > 0 {
		children = append(children, segment.NewComposite("expression", body...))
	}
	children = append(children, segment.NewDedent())
	return segment.NewComposite("else_clause", children...), pending
}
