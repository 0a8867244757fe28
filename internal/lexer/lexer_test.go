package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextTokenOperatorsAndPunctuation(t *testing.T) {
	input := `let x = 5; watch y = { x + 1 };
if (x == 5 && y != 4) { return x; } else { return y; }
for (v in [1, 2, k: 3]) { v }
switch (x) { case 1: {1} default: {2} }
!false || true <= 2 >= 1 // trailing comment
"a string"`

	lex := New(input)

	expected := []TokenType{
		LET, IDENT, ASSIGN, INT, SEMICOLON,
		WATCH, IDENT, ASSIGN, LBRACE, IDENT, PLUS, INT, RBRACE, SEMICOLON,
		IF, LPAREN, IDENT, EQ, INT, AND, IDENT, NOT_EQ, INT, RPAREN, LBRACE, RETURN, IDENT, SEMICOLON, RBRACE,
		ELSE, LBRACE, RETURN, IDENT, SEMICOLON, RBRACE,
		FOR, LPAREN, IDENT, IN, LBRACKET, INT, COMMA, INT, COMMA, IDENT, COLON, INT, RBRACKET, RPAREN, LBRACE, IDENT, RBRACE,
		SWITCH, LPAREN, IDENT, RPAREN, LBRACE, CASE, INT, COLON, LBRACE, INT, RBRACE, DEFAULT, COLON, LBRACE, INT, RBRACE, RBRACE,
		BANG, FALSE, OR, TRUE, LTE, INT, GTE, INT,
		STRING,
		EOF,
	}

	for i, want := range expected {
		tok := lex.Next()
		assert.Equalf(t, want, tok.Type, "token %d literal=%q", i, tok.Literal)
	}
}

func TestPeekIsIdempotent(t *testing.T) {
	lex := New("let x")
	first := lex.Peek()
	second := lex.Peek()
	assert.Equal(t, first, second)
	assert.Equal(t, LET, lex.Next().Type)
	assert.Equal(t, IDENT, lex.Next().Type)
}

func TestSkipsCommentsAndTracksNewline(t *testing.T) {
	lex := New("// comment only\nlet")
	assert.False(t, lex.IsNewline)
	tok := lex.Next()
	assert.Equal(t, LET, tok.Type)
	assert.True(t, lex.IsNewline)
}

func TestStringLiteralNoEscapes(t *testing.T) {
	lex := New(`"hello\nworld"`)
	tok := lex.Next()
	assert.Equal(t, STRING, tok.Type)
	assert.Equal(t, `hello\nworld`, tok.Literal)
}

func TestMultiCharOperatorsPrecedeSingleChar(t *testing.T) {
	lex := New("<= >= == != && ||")
	want := []TokenType{LTE, GTE, EQ, NOT_EQ, AND, OR, EOF}
	for _, w := range want {
		assert.Equal(t, w, lex.Next().Type)
	}
}
