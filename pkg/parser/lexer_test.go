package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlint/pkg/parser"
	"github.com/leapstack-labs/sqlint/pkg/token"
)

func ansi(t *testing.T) parser.Dialect {
	t.Helper()
	d, ok := parser.GetDialect("ansi")
	require.True(t, ok)
	return d
}

// rebuild concatenates token literals; it must always reproduce the input.
func rebuild(toks []token.Token) string {
	var sb strings.Builder
	for _, tok := range toks {
		sb.WriteString(tok.Literal)
	}
	return sb.String()
}

func TestTokenizeLossless(t *testing.T) {
	inputs := []string{
		"",
		"SELECT 1",
		"SELECT a, b FROM t WHERE x = 'it''s'",
		"SELECT *\r\nFROM t -- trailing\r\n",
		"/* block\ncomment */ SELECT 1",
		"SELECT \"Quoted Id\" FROM t",
		"select café from naïve_täble",
		"SELECT 1.5 + .5, t.col FROM t",
		"-- only a comment",
		"   \t  ",
		"SELECT 'unterminated",
		"/* unterminated block",
	}

	for _, input := range inputs {
		toks := parser.Tokenize(input, ansi(t))
		assert.Equal(t, input, rebuild(toks), "input %q", input)
	}
}

func TestTokenClasses(t *testing.T) {
	toks := parser.Tokenize("SELECT x -- note\nFROM t", ansi(t))

	var classes []token.Class
	for _, tok := range toks {
		classes = append(classes, tok.Class)
	}
	assert.Equal(t, []token.Class{
		token.Code, token.Whitespace, token.Code, token.Whitespace,
		token.Comment, token.Newline,
		token.Code, token.Whitespace, token.Code,
	}, classes)
}

func TestLineCommentExcludesNewline(t *testing.T) {
	toks := parser.Tokenize("-- note\nSELECT", ansi(t))
	require.GreaterOrEqual(t, len(toks), 2)
	assert.Equal(t, token.Comment, toks[0].Class)
	assert.Equal(t, "-- note", toks[0].Literal)
	assert.Equal(t, token.Newline, toks[1].Class)
	assert.Equal(t, "\n", toks[1].Literal)
}

func TestCRLFIsOneNewlineToken(t *testing.T) {
	toks := parser.Tokenize("a\r\nb", ansi(t))
	require.Len(t, toks, 3)
	assert.Equal(t, token.Newline, toks[1].Class)
	assert.Equal(t, "\r\n", toks[1].Literal)
}

func TestBlockComment(t *testing.T) {
	toks := parser.Tokenize("/* multi\nline */x", ansi(t))
	require.Len(t, toks, 2)
	assert.Equal(t, token.Comment, toks[0].Class)
	assert.Equal(t, "/* multi\nline */", toks[0].Literal)
}

func TestStringEscapedQuote(t *testing.T) {
	toks := parser.Tokenize("'it''s'", ansi(t))
	require.Len(t, toks, 1)
	assert.Equal(t, token.Code, toks[0].Class)
	assert.Equal(t, "'it''s'", toks[0].Literal)
}

func TestDialectCommentPrefix(t *testing.T) {
	mysql, ok := parser.GetDialect("mysql")
	require.True(t, ok)

	toks := parser.Tokenize("# hash comment\nSELECT `id`", mysql)
	assert.Equal(t, token.Comment, toks[0].Class)
	assert.Equal(t, "# hash comment", toks[0].Literal)

	// Backtick quoting is one code token under mysql.
	last := toks[len(toks)-1]
	assert.Equal(t, token.Code, last.Class)
	assert.Equal(t, "`id`", last.Literal)

	// Under ansi, '#' and backticks fall through to single-char operators.
	toks = parser.Tokenize("`id`", ansi(t))
	assert.Len(t, toks, 3)
}

func TestTokenPositions(t *testing.T) {
	toks := parser.Tokenize("a\nbb", ansi(t))
	require.Len(t, toks, 3)
	assert.Equal(t, token.Position{Line: 1, Column: 1, Offset: 0}, toks[0].Pos)
	assert.Equal(t, token.Position{Line: 2, Column: 1, Offset: 2}, toks[2].Pos)
}
