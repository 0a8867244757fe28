package parser

import "github.com/loomlang/loom/internal/lexer"

// Precedence ranks how tightly a binary operator binds, low to high.
type Precedence int

const (
	LOWEST Precedence = iota
	ASSIGN
	LOGICAL_OR
	LOGICAL_AND
	EQUALS
	LESSGREATER
	SUM
	PRODUCT
	CALL
	INDEX
)

var precedences = map[lexer.TokenType]Precedence{
	lexer.ASSIGN:   ASSIGN,
	lexer.OR:       LOGICAL_OR,
	lexer.AND:      LOGICAL_AND,
	lexer.EQ:       EQUALS,
	lexer.NOT_EQ:   EQUALS,
	lexer.LT:       LESSGREATER,
	lexer.LTE:      LESSGREATER,
	lexer.GT:       LESSGREATER,
	lexer.GTE:      LESSGREATER,
	lexer.PLUS:     SUM,
	lexer.MINUS:    SUM,
	lexer.ASTERISK: PRODUCT,
	lexer.SLASH:    PRODUCT,
	lexer.PERCENT:  PRODUCT,
	lexer.LPAREN:   CALL,
	lexer.LBRACKET: INDEX,
}

func precedenceOf(t lexer.TokenType) Precedence {
	if p, ok := precedences[t]; ok {
		return p
	}
	return LOWEST
}
