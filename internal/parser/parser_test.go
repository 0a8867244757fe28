package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomlang/loom/internal/ast"
)

func TestParseLetStatement(t *testing.T) {
	program, err := Parse("let x = 1;")
	require.NoError(t, err)
	require.Len(t, program.Statements, 1)

	stmt, ok := program.Statements[0].(*ast.LetStatement)
	require.True(t, ok)
	assert.Equal(t, "x", stmt.Name.Value)

	lit, ok := stmt.Value.(*ast.IntegerLiteral)
	require.True(t, ok)
	assert.Equal(t, int32(1), lit.Value)
}

func TestInfixPrecedence(t *testing.T) {
	program, err := Parse("1 + 2 * 3;")
	require.NoError(t, err)

	stmt := program.Statements[0].(*ast.ExpressionStatement)
	infix := stmt.Expression.(*ast.InfixExpression)
	assert.Equal(t, "+", infix.Operator)

	left := infix.Left.(*ast.IntegerLiteral)
	assert.Equal(t, int32(1), left.Value)

	right := infix.Right.(*ast.InfixExpression)
	assert.Equal(t, "*", right.Operator)
}

func TestAssignIsRightSideLowestPrecedence(t *testing.T) {
	program, err := Parse("x = 1 + 2;")
	require.NoError(t, err)

	stmt := program.Statements[0].(*ast.ExpressionStatement)
	assign := stmt.Expression.(*ast.AssignExpression)
	_, ok := assign.Value.(*ast.InfixExpression)
	assert.True(t, ok)
}

func TestBareExpressionWithoutSemicolonIsBlockReturn(t *testing.T) {
	program, err := Parse("fn() { 1 }")
	require.NoError(t, err)

	stmt := program.Statements[0].(*ast.BlockReturnStatement)
	fn := stmt.Value.(*ast.FunctionLiteral)
	_, ok := fn.Body.Statements[0].(*ast.BlockReturnStatement)
	assert.True(t, ok)
}

func TestIfRequiresBracedBranches(t *testing.T) {
	program, err := Parse("if (x) { 1 } else { 2 }")
	require.NoError(t, err)

	stmt := program.Statements[0].(*ast.BlockReturnStatement)
	ifExpr := stmt.Value.(*ast.IfExpression)
	require.NotNil(t, ifExpr.Alternative)
	assert.Len(t, ifExpr.Consequence.Statements, 1)
	assert.Len(t, ifExpr.Alternative.Statements, 1)
}

func TestElseIfRequiresExplicitNestedBraces(t *testing.T) {
	program, err := Parse("if (x) { 1 } else { if (y) { 2 } }")
	require.NoError(t, err)

	stmt := program.Statements[0].(*ast.BlockReturnStatement)
	ifExpr := stmt.Value.(*ast.IfExpression)
	require.NotNil(t, ifExpr.Alternative)
	inner, ok := ifExpr.Alternative.Statements[0].(*ast.BlockReturnStatement)
	require.True(t, ok)
	_, ok = inner.Value.(*ast.IfExpression)
	assert.True(t, ok)
}

func TestArrayLiteralMixedPositionalAndKeyed(t *testing.T) {
	program, err := Parse(`[1, 2, name: "loom"];`)
	require.NoError(t, err)

	stmt := program.Statements[0].(*ast.ExpressionStatement)
	arr := stmt.Expression.(*ast.ArrayLiteral)
	require.Len(t, arr.Elements, 3)
	assert.Nil(t, arr.Elements[0].KeyValue)
	assert.Nil(t, arr.Elements[1].KeyValue)
	require.NotNil(t, arr.Elements[2].KeyValue)
	assert.Equal(t, "name", arr.Elements[2].KeyValue.Key)
}

func TestForExpression(t *testing.T) {
	program, err := Parse("for (v in arr) { v }")
	require.NoError(t, err)

	stmt := program.Statements[0].(*ast.BlockReturnStatement)
	forExpr := stmt.Value.(*ast.ForExpression)
	assert.Equal(t, "v", forExpr.Variable.Value)
}

func TestSwitchExpressionWithDefault(t *testing.T) {
	program, err := Parse(`
		switch (x) {
			case 1: { "one" }
			case 2: { "two" }
			default: { "other" }
		}
	`)
	require.NoError(t, err)

	stmt := program.Statements[0].(*ast.BlockReturnStatement)
	sw := stmt.Value.(*ast.SwitchExpression)
	assert.Len(t, sw.Cases, 2)
	assert.NotNil(t, sw.Default)
}

func TestWatchStatementRequiresSemicolon(t *testing.T) {
	_, err := Parse("watch x = { 1 }")
	assert.Error(t, err)
}

func TestIndexAndCallChaining(t *testing.T) {
	program, err := Parse("f(1)[0];")
	require.NoError(t, err)

	stmt := program.Statements[0].(*ast.ExpressionStatement)
	idx := stmt.Expression.(*ast.IndexExpression)
	_, ok := idx.Left.(*ast.CallExpression)
	assert.True(t, ok)
}

func TestMissingSemicolonAfterLetIsAnError(t *testing.T) {
	_, err := Parse("let x = 1")
	assert.Error(t, err)
}

func TestUnterminatedBlockIsAnError(t *testing.T) {
	_, err := Parse("fn() { 1")
	assert.Error(t, err)
}
