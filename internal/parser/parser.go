// Package parser implements a precedence-climbing (Pratt) parser that turns
// a token stream from internal/lexer into an internal/ast tree. There is no
// error recovery: the first malformed construct aborts parsing and the
// caller sees a single *loomerr.Error.
package parser

import (
	"strconv"

	"github.com/loomlang/loom/internal/ast"
	"github.com/loomlang/loom/internal/lexer"
	"github.com/loomlang/loom/internal/loomerr"
)

// Parser consumes a Lexer's token stream one token of lookahead at a time.
type Parser struct {
	lex *lexer.Lexer
	cur lexer.Token
}

// New creates a Parser positioned on the first token of src.
func New(src string) *Parser {
	p := &Parser{lex: lexer.New(src)}
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.lex.Next()
}

func (p *Parser) peek() lexer.Token {
	return p.lex.Peek()
}

func (p *Parser) peekIs(t lexer.TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) expectAdvance(t lexer.TokenType, what string) error {
	if p.peek().Type != t {
		tok := p.peek()
		return loomerr.At(tok.Line, tok.Column, "expected %s, got %q", what, tok.Literal)
	}
	p.advance()
	return nil
}

// Parse runs the parser to completion, returning the first error hit.
func Parse(src string) (*ast.Program, error) {
	p := New(src)
	return p.ParseProgram()
}

// ParseProgram parses the whole token stream as a flat statement sequence.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{}
	for p.cur.Type != lexer.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
		p.advance()
	}
	return program, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.cur.Type {
	case lexer.LET:
		return p.parseLetStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.WATCH:
		return p.parseWatchStatement()
	default:
		return p.parseExpressionOrBlockReturnStatement()
	}
}

func (p *Parser) parseLetStatement() (ast.Statement, error) {
	stmt := &ast.LetStatement{Token: p.cur}
	if err := p.expectAdvance(lexer.IDENT, "identifier"); err != nil {
		return nil, err
	}
	stmt.Name = &ast.Identifier{Token: p.cur, Value: p.cur.Literal}
	if err := p.expectAdvance(lexer.ASSIGN, "="); err != nil {
		return nil, err
	}
	p.advance()
	value, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	stmt.Value = value
	if err := p.expectAdvance(lexer.SEMICOLON, ";"); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseReturnStatement() (ast.Statement, error) {
	stmt := &ast.ReturnStatement{Token: p.cur}
	p.advance()
	value, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	stmt.Value = value
	if err := p.expectAdvance(lexer.SEMICOLON, ";"); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseWatchStatement() (ast.Statement, error) {
	stmt := &ast.WatchStatement{Token: p.cur}
	if err := p.expectAdvance(lexer.IDENT, "identifier"); err != nil {
		return nil, err
	}
	stmt.Name = p.cur.Literal
	if err := p.expectAdvance(lexer.ASSIGN, "="); err != nil {
		return nil, err
	}
	if err := p.expectAdvance(lexer.LBRACE, "{"); err != nil {
		return nil, err
	}
	block, err := p.parseBlockExpression()
	if err != nil {
		return nil, err
	}
	stmt.Block = block
	if err := p.expectAdvance(lexer.SEMICOLON, ";"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseExpressionOrBlockReturnStatement parses a bare expression and
// decides, based on whether a semicolon follows, whether it's an
// ExpressionStatement (evaluated for effect) or a BlockReturnStatement
// (whose value escapes the enclosing block).
func (p *Parser) parseExpressionOrBlockReturnStatement() (ast.Statement, error) {
	tok := p.cur
	expr, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if p.peekIs(lexer.SEMICOLON) {
		p.advance()
		return &ast.ExpressionStatement{Token: tok, Expression: expr}, nil
	}
	return &ast.BlockReturnStatement{Token: tok, Value: expr}, nil
}

func (p *Parser) parseExpression(precedence Precedence) (ast.Expression, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for !p.peekIs(lexer.SEMICOLON) && precedence < precedenceOf(p.peek().Type) {
		switch p.peek().Type {
		case lexer.LPAREN:
			p.advance()
			left, err = p.parseCallExpression(left)
		case lexer.LBRACKET:
			p.advance()
			left, err = p.parseIndexExpression(left)
		case lexer.ASSIGN:
			p.advance()
			left, err = p.parseAssignExpression(left)
		default:
			p.advance()
			left, err = p.parseInfixExpression(left)
		}
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) parsePrefix() (ast.Expression, error) {
	switch p.cur.Type {
	case lexer.INT:
		return p.parseIntegerLiteral()
	case lexer.IDENT:
		return &ast.Identifier{Token: p.cur, Value: p.cur.Literal}, nil
	case lexer.TRUE, lexer.FALSE:
		return &ast.BooleanLiteral{Token: p.cur, Value: p.cur.Type == lexer.TRUE}, nil
	case lexer.STRING:
		return &ast.StringLiteral{Token: p.cur, Value: p.cur.Literal}, nil
	case lexer.LBRACKET:
		return p.parseArrayLiteral()
	case lexer.LPAREN:
		return p.parseGroupedExpression()
	case lexer.LBRACE:
		return p.parseBlockExpression()
	case lexer.FUNCTION:
		return p.parseFunctionLiteral()
	case lexer.IF:
		return p.parseIfExpression()
	case lexer.FOR:
		return p.parseForExpression()
	case lexer.SWITCH:
		return p.parseSwitchExpression()
	default:
		return nil, loomerr.At(p.cur.Line, p.cur.Column, "unexpected token %q", p.cur.Literal)
	}
}

func (p *Parser) parseIntegerLiteral() (ast.Expression, error) {
	value, err := strconv.ParseInt(p.cur.Literal, 10, 32)
	if err != nil {
		return nil, loomerr.At(p.cur.Line, p.cur.Column, "invalid integer literal %q", p.cur.Literal)
	}
	return &ast.IntegerLiteral{Token: p.cur, Value: int32(value)}, nil
}

func (p *Parser) parseGroupedExpression() (ast.Expression, error) {
	p.advance()
	expr, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if err := p.expectAdvance(lexer.RPAREN, ")"); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseInfixExpression(left ast.Expression) (ast.Expression, error) {
	tok := p.cur
	precedence := precedenceOf(tok.Type)
	p.advance()
	right, err := p.parseExpression(precedence)
	if err != nil {
		return nil, err
	}
	return &ast.InfixExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}, nil
}

func (p *Parser) parseAssignExpression(left ast.Expression) (ast.Expression, error) {
	tok := p.cur
	p.advance()
	value, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	return &ast.AssignExpression{Token: tok, Target: left, Value: value}, nil
}

func (p *Parser) parseCallExpression(left ast.Expression) (ast.Expression, error) {
	expr := &ast.CallExpression{Token: p.cur, Left: left}
	args, err := p.parseExpressionList(lexer.RPAREN)
	if err != nil {
		return nil, err
	}
	expr.Arguments = args
	return expr, nil
}

func (p *Parser) parseIndexExpression(left ast.Expression) (ast.Expression, error) {
	tok := p.cur
	p.advance()
	index, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if err := p.expectAdvance(lexer.RBRACKET, "]"); err != nil {
		return nil, err
	}
	return &ast.IndexExpression{Token: tok, Left: left, Index: index}, nil
}

// parseExpressionList parses a comma-separated expression list up to (and
// consuming) end. p.cur is the opening delimiter on entry.
func (p *Parser) parseExpressionList(end lexer.TokenType) ([]ast.Expression, error) {
	var list []ast.Expression
	if p.peekIs(end) {
		p.advance()
		return list, nil
	}
	p.advance()
	expr, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	list = append(list, expr)
	for p.peekIs(lexer.COMMA) {
		p.advance()
		p.advance()
		expr, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		list = append(list, expr)
	}
	if err := p.expectAdvance(end, string(end)); err != nil {
		return nil, err
	}
	return list, nil
}

func (p *Parser) parseArrayLiteral() (ast.Expression, error) {
	lit := &ast.ArrayLiteral{Token: p.cur}
	if p.peekIs(lexer.RBRACKET) {
		p.advance()
		return lit, nil
	}
	for {
		p.advance()
		elem, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		if p.peekIs(lexer.COLON) {
			ident, ok := elem.(*ast.Identifier)
			if !ok {
				return nil, loomerr.At(p.cur.Line, p.cur.Column, "expected identifier before :")
			}
			p.advance() // consume ':'
			p.advance()
			value, err := p.parseExpression(LOWEST)
			if err != nil {
				return nil, err
			}
			lit.Elements = append(lit.Elements, ast.ArrayElement{
				KeyValue: &ast.MapKeyValue{Key: ident.Value, Value: value},
			})
		} else {
			lit.Elements = append(lit.Elements, ast.ArrayElement{Value: elem})
		}
		if !p.peekIs(lexer.COMMA) {
			break
		}
		p.advance()
		if p.peekIs(lexer.RBRACKET) {
			break
		}
	}
	if err := p.expectAdvance(lexer.RBRACKET, "]"); err != nil {
		return nil, err
	}
	return lit, nil
}

func (p *Parser) parseFunctionLiteral() (ast.Expression, error) {
	fn := &ast.FunctionLiteral{Token: p.cur}
	if err := p.expectAdvance(lexer.LPAREN, "("); err != nil {
		return nil, err
	}
	params, err := p.parseFunctionParameters()
	if err != nil {
		return nil, err
	}
	fn.Parameters = params
	if err := p.expectAdvance(lexer.LBRACE, "{"); err != nil {
		return nil, err
	}
	body, err := p.parseBlockExpression()
	if err != nil {
		return nil, err
	}
	fn.Body = body
	return fn, nil
}

func (p *Parser) parseFunctionParameters() ([]*ast.Identifier, error) {
	var params []*ast.Identifier
	if p.peekIs(lexer.RPAREN) {
		p.advance()
		return params, nil
	}
	if err := p.expectAdvance(lexer.IDENT, "identifier"); err != nil {
		return nil, err
	}
	params = append(params, &ast.Identifier{Token: p.cur, Value: p.cur.Literal})
	for p.peekIs(lexer.COMMA) {
		p.advance()
		if err := p.expectAdvance(lexer.IDENT, "identifier"); err != nil {
			return nil, err
		}
		params = append(params, &ast.Identifier{Token: p.cur, Value: p.cur.Literal})
	}
	if err := p.expectAdvance(lexer.RPAREN, ")"); err != nil {
		return nil, err
	}
	return params, nil
}

// parseBlockExpression parses `{ stmt* }`. p.cur must be the opening brace
// on entry; p.cur is the closing brace on return.
func (p *Parser) parseBlockExpression() (*ast.BlockExpression, error) {
	block := &ast.BlockExpression{Token: p.cur}
	p.advance()
	for p.cur.Type != lexer.RBRACE {
		if p.cur.Type == lexer.EOF {
			return nil, loomerr.At(p.cur.Line, p.cur.Column, "expected }, got end of file")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
		p.advance()
	}
	return block, nil
}

func (p *Parser) parseIfExpression() (ast.Expression, error) {
	expr := &ast.IfExpression{Token: p.cur}
	if err := p.expectAdvance(lexer.LPAREN, "("); err != nil {
		return nil, err
	}
	p.advance()
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	expr.Condition = cond
	if err := p.expectAdvance(lexer.RPAREN, ")"); err != nil {
		return nil, err
	}
	if err := p.expectAdvance(lexer.LBRACE, "{"); err != nil {
		return nil, err
	}
	consequence, err := p.parseBlockExpression()
	if err != nil {
		return nil, err
	}
	expr.Consequence = consequence

	if p.peekIs(lexer.ELSE) {
		p.advance()
		if err := p.expectAdvance(lexer.LBRACE, "{"); err != nil {
			return nil, err
		}
		alternative, err := p.parseBlockExpression()
		if err != nil {
			return nil, err
		}
		expr.Alternative = alternative
	}
	return expr, nil
}

func (p *Parser) parseForExpression() (ast.Expression, error) {
	expr := &ast.ForExpression{Token: p.cur}
	if err := p.expectAdvance(lexer.LPAREN, "("); err != nil {
		return nil, err
	}
	if err := p.expectAdvance(lexer.IDENT, "identifier"); err != nil {
		return nil, err
	}
	expr.Variable = &ast.Identifier{Token: p.cur, Value: p.cur.Literal}
	if err := p.expectAdvance(lexer.IN, "in"); err != nil {
		return nil, err
	}
	p.advance()
	iterable, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	expr.Iterable = iterable
	if err := p.expectAdvance(lexer.RPAREN, ")"); err != nil {
		return nil, err
	}
	if err := p.expectAdvance(lexer.LBRACE, "{"); err != nil {
		return nil, err
	}
	body, err := p.parseBlockExpression()
	if err != nil {
		return nil, err
	}
	expr.Body = body
	return expr, nil
}

func (p *Parser) parseSwitchExpression() (ast.Expression, error) {
	expr := &ast.SwitchExpression{Token: p.cur}
	if err := p.expectAdvance(lexer.LPAREN, "("); err != nil {
		return nil, err
	}
	p.advance()
	scrutinee, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	expr.Expression = scrutinee
	if err := p.expectAdvance(lexer.RPAREN, ")"); err != nil {
		return nil, err
	}
	if err := p.expectAdvance(lexer.LBRACE, "{"); err != nil {
		return nil, err
	}
	p.advance()
	for p.cur.Type == lexer.CASE {
		c, err := p.parseCase()
		if err != nil {
			return nil, err
		}
		expr.Cases = append(expr.Cases, *c)
		p.advance()
	}
	if p.cur.Type == lexer.DEFAULT {
		if err := p.expectAdvance(lexer.COLON, ":"); err != nil {
			return nil, err
		}
		if err := p.expectAdvance(lexer.LBRACE, "{"); err != nil {
			return nil, err
		}
		def, err := p.parseBlockExpression()
		if err != nil {
			return nil, err
		}
		expr.Default = def
		p.advance()
	}
	if p.cur.Type != lexer.RBRACE {
		return nil, loomerr.At(p.cur.Line, p.cur.Column, "expected }, got %q", p.cur.Literal)
	}
	return expr, nil
}

func (p *Parser) parseCase() (*ast.Case, error) {
	p.advance()
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if err := p.expectAdvance(lexer.COLON, ":"); err != nil {
		return nil, err
	}
	if err := p.expectAdvance(lexer.LBRACE, "{"); err != nil {
		return nil, err
	}
	body, err := p.parseBlockExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Case{Condition: cond, Body: body}, nil
}
