package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relormdb/relorm/ormerr"
	"github.com/relormdb/relorm/query"
	"github.com/relormdb/relorm/query/wire"
	"github.com/relormdb/relorm/relation"
)

func TestEncodeDecodeRoundTripsSelectWithNestedExpression(t *testing.T) {
	table := relation.NewPathNumber(1)
	idPath := relation.NewPathNumber(2)

	sel := query.Select(table, query.Col(idPath)).
		WithWhere(query.Col(idPath).Gt(query.Val(5)))

	env := wire.Encode(sel)
	require.Len(t, env.StartPoints, 1)

	decoded, err := wire.Decode(env)
	require.NoError(t, err)
	require.Len(t, decoded, 1)

	got, ok := decoded[0].(*query.SelectClause)
	require.True(t, ok)
	assert.True(t, got.Table.Equal(table))
	require.Len(t, got.Selectors, 1)
	assert.Equal(t, &query.ColumnClause{Path: idPath, Kind: query.ColumnSimple}, got.Selectors[0])

	whereExpr, ok := got.Where.(*query.ExpressionClause)
	require.True(t, ok)
	assert.Equal(t, query.OpGt, whereExpr.Op)

	// re-encoding the decoded clause reproduces an envelope of the same
	// shape (not necessarily byte-identical indices, but structurally
	// equal once decoded again).
	env2 := wire.Encode(decoded[0])
	decoded2, err := wire.Decode(env2)
	require.NoError(t, err)
	assert.Equal(t, decoded[0], decoded2[0])
}

func TestDecodeFailsOnOutOfRangeIndex(t *testing.T) {
	env := &wire.Envelope{
		Clauses:     []wire.ClauseRecord{{Kind: wire.KExpression, Operator: int32(query.OpNot), Operands: []uint32{5}}},
		StartPoints: []uint32{0},
	}
	_, err := wire.Decode(env)
	require.Error(t, err)
	assert.Equal(t, ormerr.MalformedQueryEnvelope, ormerr.KindOf(err))
}

func TestDecodeFailsOnUnknownDiscriminator(t *testing.T) {
	env := &wire.Envelope{
		Clauses:     []wire.ClauseRecord{{Kind: wire.Kind(255)}},
		StartPoints: []uint32{0},
	}
	_, err := wire.Decode(env)
	require.Error(t, err)
}

func TestDecodeFailsOnArityViolation(t *testing.T) {
	env := &wire.Envelope{
		Clauses: []wire.ClauseRecord{
			{Kind: wire.KInt, IntValue: 1},
			{Kind: wire.KExpression, Operator: int32(query.OpAdd), Operands: []uint32{0}},
		},
		StartPoints: []uint32{1},
	}
	_, err := wire.Decode(env)
	require.Error(t, err)
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	table := relation.NewPathNumber(1)
	ins := query.Insert(table).AddSubrequest(
		query.I32Attr(relation.NewPathNumber(2), 1),
		query.StringAttr(relation.NewPathNumber(3), "Test"),
	)

	data, err := wire.Marshal(ins)
	require.NoError(t, err)

	decoded, err := wire.Unmarshal(data)
	require.NoError(t, err)
	require.Len(t, decoded, 1)

	got, ok := decoded[0].(*query.InsertClause)
	require.True(t, ok)
	require.Len(t, got.Subrequests, 1)
	assert.Len(t, got.Subrequests[0], 2)
}
