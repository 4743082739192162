/*
File   : mypl/lexer/lexer_test.go
*/
package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/mypl/token"
)

func allTokens(t *testing.T, src string) []token.Token {
	t.Helper()
	l := New(src)
	var toks []token.Token
	for {
		tok, err := l.NextToken()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == token.EOS {
			return toks
		}
	}
}

func TestLexer_Punctuation(t *testing.T) {
	toks := allTokens(t, `. , ( ) { } ; [ ] * / + -`)
	want := []token.Kind{
		token.DOT, token.COMMA, token.LPAREN, token.RPAREN, token.LBRACE,
		token.RBRACE, token.SEMICOLON, token.LBRACKET, token.RBRACKET,
		token.TIMES, token.DIVIDE, token.PLUS, token.MINUS, token.EOS,
	}
	require.Len(t, toks, len(want))
	for i, k := range want {
		assert.Equal(t, k, toks[i].Kind)
	}
}

func TestLexer_TwoCharOperatorsBeatPrefix(t *testing.T) {
	toks := allTokens(t, `== != <= >= < > =`)
	want := []token.Kind{
		token.EQUAL, token.NOT_EQUAL, token.LESS_EQ, token.GREATER_EQ,
		token.LESS, token.GREATER, token.ASSIGN, token.EOS,
	}
	for i, k := range want {
		assert.Equal(t, k, toks[i].Kind)
	}
}

func TestLexer_IntegerAndDouble(t *testing.T) {
	toks := allTokens(t, `0 123 3.14`)
	require.Len(t, toks, 4)
	assert.Equal(t, token.INT_VAL, toks[0].Kind)
	assert.Equal(t, "0", toks[0].Lexeme)
	assert.Equal(t, token.INT_VAL, toks[1].Kind)
	assert.Equal(t, token.DOUBLE_VAL, toks[2].Kind)
	assert.Equal(t, "3.14", toks[2].Lexeme)
}

func TestLexer_LeadingZeroIsError(t *testing.T) {
	l := New(`01`)
	_, err := l.NextToken()
	assert.Error(t, err)
}

func TestLexer_DotWithoutDigitIsError(t *testing.T) {
	l := New(`1.`)
	_, err := l.NextToken()
	assert.Error(t, err)
}

func TestLexer_StringLiteral(t *testing.T) {
	toks := allTokens(t, `"hello\nworld"`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.STRING_VAL, toks[0].Kind)
	assert.Equal(t, `hello\nworld`, toks[0].Lexeme)
}

func TestLexer_UnterminatedStringIsError(t *testing.T) {
	l := New("\"abc\ndef\"")
	_, err := l.NextToken()
	assert.Error(t, err)
}

func TestLexer_ReservedWordsAndIdentifiers(t *testing.T) {
	toks := allTokens(t, `int double bool string void struct array while for if elseif else new return and or not true false null try catch as ZeroDivError foo`)
	want := []token.Kind{
		token.INT_TYPE, token.DOUBLE_TYPE, token.BOOL_TYPE, token.STRING_TYPE,
		token.VOID_TYPE, token.STRUCT, token.ARRAY, token.WHILE, token.FOR,
		token.IF, token.ELSEIF, token.ELSE, token.NEW, token.RETURN,
		token.AND, token.OR, token.NOT, token.BOOL_VAL, token.BOOL_VAL,
		token.NULL_VAL, token.TRY, token.CATCH, token.AS, token.ZERODIV,
		token.ID, token.EOS,
	}
	require.Len(t, toks, len(want))
	for i, k := range want {
		assert.Equal(t, k, toks[i].Kind, "index %d", i)
	}
}

func TestLexer_Comment(t *testing.T) {
	toks := allTokens(t, "// hello world\n42")
	require.Len(t, toks, 2)
	assert.Equal(t, token.COMMENT, toks[0].Kind)
	assert.Equal(t, " hello world", toks[0].Lexeme)
	assert.Equal(t, token.INT_VAL, toks[1].Kind)
}

func TestLexer_LineColumnTracking(t *testing.T) {
	toks := allTokens(t, "int x;\nint y;")
	// "int" on line 1 col 1
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 1, toks[0].Column)
	// find the second "int" (after the newline)
	var secondInt token.Token
	seen := 0
	for _, tok := range toks {
		if tok.Kind == token.INT_TYPE {
			seen++
			if seen == 2 {
				secondInt = tok
			}
		}
	}
	assert.Equal(t, 2, secondInt.Line)
	assert.Equal(t, 1, secondInt.Column)
}

func TestLexer_EOSRepeats(t *testing.T) {
	l := New(``)
	tok1, err := l.NextToken()
	require.NoError(t, err)
	tok2, err := l.NextToken()
	require.NoError(t, err)
	assert.Equal(t, token.EOS, tok1.Kind)
	assert.Equal(t, token.EOS, tok2.Kind)
}

func TestLexer_UnknownCharacter(t *testing.T) {
	l := New(`$`)
	_, err := l.NextToken()
	assert.Error(t, err)
}
