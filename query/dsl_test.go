package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relormdb/relorm/query"
	"github.com/relormdb/relorm/relation"
)

func TestValLiteralTypes(t *testing.T) {
	assert.Equal(t, &query.BoolClause{Value: true}, query.Val(true).Clause)
	assert.Equal(t, &query.IntClause{Value: 10}, query.Val(int32(10)).Clause)
	assert.Equal(t, &query.IntClause{Value: 7}, query.Val(7).Clause)
	assert.Equal(t, &query.FloatClause{Value: 1.5}, query.Val(1.5).Clause)
	assert.Equal(t, &query.StringClause{Value: "hi"}, query.Val("hi").Clause)
}

func TestValUnsupportedTypePanics(t *testing.T) {
	assert.Panics(t, func() { query.Val(struct{}{}) })
}

func TestExpressionDSLBuildsArithmetic(t *testing.T) {
	a, b := query.Val(10), query.Val(20)
	sum := a.Add(b)

	expr, ok := sum.Clause.(*query.ExpressionClause)
	require.True(t, ok)
	assert.Equal(t, query.OpAdd, expr.Op)
	require.Len(t, expr.Operands, 2)
	assert.Equal(t, &query.IntClause{Value: 10}, expr.Operands[0])
	assert.Equal(t, &query.IntClause{Value: 20}, expr.Operands[1])
}

func TestCaseBuilder(t *testing.T) {
	path := relation.NewPathNumber(1)
	c := query.Case().When(query.Col(path).Gt(query.Val(5))).Then(query.Val("big")).Else(query.Val("small"))

	expr, ok := c.Clause.(*query.ExpressionClause)
	require.True(t, ok)
	assert.Equal(t, query.OpCase, expr.Op)
	// scrutinee sentinel, when, then, else.
	require.Len(t, expr.Operands, 4)
	assert.IsType(t, &query.DefaultClause{}, expr.Operands[0])
}

func TestSelectFluentSettersPopulateFields(t *testing.T) {
	table := relation.NewPathNumber(1)
	idPath := relation.NewPathNumber(2)

	sel := query.Select(table, query.Col(idPath)).
		WithWhere(query.Col(idPath).Gt(query.Val(10))).
		WithLimit(query.Val(5))

	assert.NotNil(t, sel.Where)
	assert.NotNil(t, sel.Limit)
	assert.Len(t, sel.Selectors, 1)
}

func TestInsertWidensNothingUntilOrganized(t *testing.T) {
	table := relation.NewPathNumber(1)
	ins := query.Insert(table).
		AddSubrequest(query.I32Attr(relation.NewPathNumber(2), 1)).
		AddSubrequest(query.StringAttr(relation.NewPathNumber(3), "x"))

	assert.Len(t, ins.Subrequests, 2)
	assert.Len(t, ins.Subrequests[0], 1)
}
