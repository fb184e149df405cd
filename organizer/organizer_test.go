package organizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/relormdb/relorm/builderir"
	"github.com/relormdb/relorm/idl"
	"github.com/relormdb/relorm/organizer"
	"github.com/relormdb/relorm/query"
	"github.com/relormdb/relorm/relation"
)

// simpleMessageRegistry builds the §8 seed-scenario registry: table 1,
// fields id (int32, primary key), name (string, required), active
// (bool, default true).
func simpleMessageRegistry(t *testing.T) (*relation.Registry, relation.Path) {
	t.Helper()

	msg := &idl.Message{
		Full: "test.SimpleMessage",
		FieldList: []idl.FieldDescriptor{
			&idl.Field{FieldNumber: 1, FieldName: "id", FieldKind: protoreflect.Int32Kind, IsPrimaryKey: true},
			&idl.Field{FieldNumber: 2, FieldName: "name", FieldKind: protoreflect.StringKind},
			&idl.Field{FieldNumber: 3, FieldName: "active", FieldKind: protoreflect.BoolKind,
				HasDefault: true, DefaultValue: protoreflect.ValueOfBool(true)},
		},
	}
	pool := idl.NewStaticPool(msg)
	reg := relation.NewRegistry(pool)

	err := reg.RegisterRoot(relation.TableConfig{TableNumber: 1, SnakeCase: "simple_message", Scheme: "test.SimpleMessage"})
	require.NoError(t, err)

	return reg, relation.NewPathNumber(1)
}

func TestOrganizeSelectResolvesColumns(t *testing.T) {
	reg, table := simpleMessageRegistry(t)
	org := organizer.New(reg)

	idPath := table.JoinNumber(1)
	namePath := table.JoinNumber(2)

	sel := query.Select(table, query.Col(idPath), query.Col(namePath)).
		WithWhere(query.Col(idPath).Gt(query.Val(10)))

	out, err := org.OrganizeSelect(sel)
	require.NoError(t, err)

	require.Len(t, out.Selectors, 2)
	col0 := out.Selectors[0].(*builderir.ColumnClause)
	assert.True(t, col0.TablePath.Equal(table))
	assert.Equal(t, builderir.KeySimple, col0.Key)

	col1 := out.Selectors[1].(*builderir.ColumnClause)
	assert.Equal(t, builderir.KeySimple, col1.Key)

	where := out.Where.(*builderir.ExpressionClause)
	assert.Equal(t, query.OpGt, where.Op)
}

func TestOrganizeInsertWidensRowsWithDefault(t *testing.T) {
	reg, table := simpleMessageRegistry(t)
	org := organizer.New(reg)

	idPath := table.JoinNumber(1)
	namePath := table.JoinNumber(2)
	activePath := table.JoinNumber(3)

	ins := query.Insert(table).
		AddSubrequest(query.I32Attr(idPath, 1), query.StringAttr(namePath, "a")).
		AddSubrequest(query.I32Attr(idPath, 2), query.StringAttr(namePath, "b"), query.BoolAttr(activePath, false))

	out, err := org.OrganizeInsert(ins)
	require.NoError(t, err)

	require.Len(t, out.Selectors, 3)
	require.Len(t, out.Values, 2)
	for _, row := range out.Values {
		assert.Len(t, row, 3)
	}
	// first row never supplied `active`; it must have been retroactively
	// widened with Default.
	assert.IsType(t, &builderir.DefaultClause{}, out.Values[0][2])
	assert.IsType(t, &builderir.BoolClause{}, out.Values[1][2])
}

func TestOrganizeInsertUpdateIfExistsBuildsConflictClause(t *testing.T) {
	reg, table := simpleMessageRegistry(t)
	org := organizer.New(reg)

	idPath := table.JoinNumber(1)
	ins := query.Insert(table).UpdateIfExistsFlag(true).AddSubrequest(query.I32Attr(idPath, 1))

	out, err := org.OrganizeInsert(ins)
	require.NoError(t, err)

	require.Len(t, out.ConflictTarget, 1)
	target := out.ConflictTarget[0].(*builderir.ColumnClause)
	assert.Equal(t, builderir.KeyPrimary, target.Key)

	require.Len(t, out.DoUpdate, 1)
	assert.Equal(t, query.ColumnExcluded, out.DoUpdate[0].Value.(*builderir.ColumnClause).Kind)
}

func TestOrganizeCreateTableFlattensFields(t *testing.T) {
	reg, table := simpleMessageRegistry(t)
	org := organizer.New(reg)

	out, err := org.OrganizeCreateTable(query.CreateTable(table))
	require.NoError(t, err)
	require.Len(t, out.Fields, 3)
	assert.Equal(t, int32(1), out.Fields[0].Number())
}
