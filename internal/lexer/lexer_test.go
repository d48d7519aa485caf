package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ricglz/raoul/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexBasicTokens(t *testing.T) {
	toks, err := Lex("+ - * / = == != < > <= >= ; , { } ( ) [ ] :")
	require.NoError(t, err)
	require.Equal(t, []token.Kind{
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.ASSIGN,
		token.EQ, token.NEQ, token.LT, token.GT, token.LTE, token.GTE,
		token.SEMICOLON, token.COMMA, token.LBRACE, token.RBRACE,
		token.LPAREN, token.RPAREN, token.LBRACKET, token.RBRACKET,
		token.COLON, token.EOF,
	}, kinds(toks))
}

func TestLexKeywordsAreSuffixFree(t *testing.T) {
	toks, err := Lex("if ifx if_ iffoo")
	require.NoError(t, err)
	require.Equal(t, []token.Kind{token.IF, token.IDENTIFIER, token.IDENTIFIER, token.IDENTIFIER, token.EOF}, kinds(toks))
}

func TestLexNumbers(t *testing.T) {
	toks, err := Lex("42 3.14 0 7.0")
	require.NoError(t, err)
	require.Equal(t, []token.Kind{token.INT_LIT, token.FLOAT_LIT, token.INT_LIT, token.FLOAT_LIT, token.EOF}, kinds(toks))
	require.Equal(t, "42", toks[0].Lexeme)
	require.Equal(t, "3.14", toks[1].Lexeme)
}

func TestLexStringMatchingDelimiters(t *testing.T) {
	toks, err := Lex(`"hello" 'world'`)
	require.NoError(t, err)
	require.Equal(t, []token.Kind{token.STRING_LIT, token.STRING_LIT, token.EOF}, kinds(toks))
	require.Equal(t, "hello", toks[0].Lexeme)
	require.Equal(t, "world", toks[1].Lexeme)
}

func TestLexStringMismatchedDelimiterFails(t *testing.T) {
	_, err := Lex(`"hello'`)
	require.Error(t, err)
}

func TestLexLineComment(t *testing.T) {
	toks, err := Lex("1 // comment with ' and \" quotes\n2")
	require.NoError(t, err)
	require.Equal(t, []token.Kind{token.INT_LIT, token.INT_LIT, token.EOF}, kinds(toks))
}

// TestLexBlockCommentDoesNotTerminateOnEmbeddedMarker pins the quirk that a
// literal "/**/" inside a block comment does not close it early.
func TestLexBlockCommentDoesNotTerminateOnEmbeddedMarker(t *testing.T) {
	toks, err := Lex("1 /* a /**/ b */ 2")
	require.NoError(t, err)
	// The "/**/" is swallowed whole; the comment closes at the bare "*/"
	// after "b", leaving only the two int literals as source text.
	require.Equal(t, []token.Kind{token.INT_LIT, token.INT_LIT, token.EOF}, kinds(toks))
}

func TestLexUnterminatedBlockComment(t *testing.T) {
	_, err := Lex("1 /* never closed")
	require.Error(t, err)
}

func TestLexDataframeKeywords(t *testing.T) {
	toks, err := Lex("average std median variance min max range correlation get_rows get_columns plot histogram read_csv")
	require.NoError(t, err)
	require.Equal(t, []token.Kind{
		token.AVERAGE, token.STD, token.MEDIAN, token.VARIANCE, token.MIN, token.MAX,
		token.RANGE, token.CORRELATION, token.GET_ROWS, token.GET_COLUMNS,
		token.PLOT, token.HISTOGRAM, token.READ_CSV, token.EOF,
	}, kinds(toks))
}
