package sqlbuilder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/relormdb/relorm/idl"
	"github.com/relormdb/relorm/organizer"
	"github.com/relormdb/relorm/query"
	"github.com/relormdb/relorm/relation"
	"github.com/relormdb/relorm/sqlbuilder"
)

// simpleMessageFixture builds the exact seed-scenario registry: table
// 1 ("simple_message"), fields id (int32, primary key), name (string,
// required), active (bool, default true).
func simpleMessageFixture(t *testing.T) (*relation.Registry, *organizer.Organizer, relation.Path) {
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
	require.NoError(t, reg.RegisterRoot(relation.TableConfig{TableNumber: 1, SnakeCase: "simple_message", Scheme: "test.SimpleMessage"}))

	return reg, organizer.New(reg), relation.NewPathNumber(1)
}

func buildSQL(t *testing.T, c query.Clause, org *organizer.Organizer) string {
	t.Helper()
	ir, err := org.TransformClause(c)
	require.NoError(t, err)
	sql, err := sqlbuilder.Build(ir)
	require.NoError(t, err)
	return sql
}

func TestCreateTableRendersColumnsInRegistrationOrder(t *testing.T) {
	_, org, table := simpleMessageFixture(t)
	sql := buildSQL(t, query.CreateTable(table), org)
	assert.Equal(t, "CREATE TABLE t_1 (f_1 INTEGER PRIMARY KEY, f_2 TEXT NOT NULL, f_3 BOOLEAN DEFAULT TRUE)", sql)
}

func TestDropTable(t *testing.T) {
	_, org, table := simpleMessageFixture(t)
	sql := buildSQL(t, query.DropTable(table), org)
	assert.Equal(t, "DROP TABLE t_1", sql)
}

func TestTruncateTable(t *testing.T) {
	_, org, table := simpleMessageFixture(t)
	sql := buildSQL(t, query.Truncate(table), org)
	assert.Equal(t, "TRUNCATE TABLE t_1", sql)
}

func TestTransactionControlStatements(t *testing.T) {
	_, org, _ := simpleMessageFixture(t)

	begin := buildSQL(t, &query.StartTransactionClause{}, org)
	assert.Equal(t, "BEGIN", begin)

	beginRO := buildSQL(t, &query.StartTransactionClause{ReadOnly: true}, org)
	assert.Equal(t, "BEGIN READ ONLY", beginRO)

	commit := buildSQL(t, &query.CommitTransactionClause{}, org)
	assert.Equal(t, "COMMIT", commit)

	rollback := buildSQL(t, &query.RollbackTransactionClause{}, org)
	assert.Equal(t, "ROLLBACK", rollback)
}

func TestArithmeticExpressions(t *testing.T) {
	_, org, _ := simpleMessageFixture(t)

	add := query.Val(10).Add(query.Val(20)).Clause
	assert.Equal(t, "(10 + 20)", buildSQL(t, add, org))

	modExpr := query.Val(10).Mod(query.Val(20)).Clause
	assert.Equal(t, "(10 % 20)", buildSQL(t, modExpr, org))
}

func TestSelectWithWhere(t *testing.T) {
	_, org, table := simpleMessageFixture(t)
	idPath := table.JoinNumber(1)
	namePath := table.JoinNumber(2)

	sel := query.Select(table, query.Col(idPath), query.Col(namePath)).
		WithWhere(query.Col(idPath).Gt(query.Val(10)))

	sql := buildSQL(t, sel, org)
	assert.Equal(t, "SELECT t_1.f_1, t_1.f_2 FROM t_1 WHERE (t_1.f_1 > 10)", sql)
}

func TestInsertLiterals(t *testing.T) {
	_, org, table := simpleMessageFixture(t)
	idPath := table.JoinNumber(1)
	namePath := table.JoinNumber(2)

	ins := query.Insert(table).AddSubrequest(query.I32Attr(idPath, 1), query.StringAttr(namePath, "Test"))

	sql := buildSQL(t, ins, org)
	assert.Equal(t, "INSERT INTO t_1 (t_1.f_1, t_1.f_2) VALUES (1, 'Test')", sql)
}

func TestInsertNoColumnsEmitsDefaultValues(t *testing.T) {
	_, org, table := simpleMessageFixture(t)
	sql := buildSQL(t, query.Insert(table), org)
	assert.Equal(t, "INSERT INTO t_1 DEFAULT VALUES", sql)
}

func TestInsertUpdateIfExistsEmitsOnConflict(t *testing.T) {
	_, org, table := simpleMessageFixture(t)
	idPath := table.JoinNumber(1)

	ins := query.Insert(table).UpdateIfExistsFlag(true).AddSubrequest(query.I32Attr(idPath, 1))
	sql := buildSQL(t, ins, org)
	assert.Equal(t, "INSERT INTO t_1 (t_1.f_1) VALUES (1) ON CONFLICT (t_1.p_1) DO UPDATE SET f_1 = EXCLUDED.f_1", sql)
}

func TestAlterColumnType(t *testing.T) {
	_, org, table := simpleMessageFixture(t)
	idPath := table.JoinNumber(1)

	alter := query.AlterTable(table).AddOperation(query.AlterOperation{
		Kind:      query.AlterColumnType,
		Column:    query.Col(idPath).Clause,
		ValueKind: relation.KindInt32,
	})

	sql := buildSQL(t, alter, org)
	assert.Equal(t, "ALTER TABLE t_1 ALTER COLUMN f_1 TYPE INTEGER", sql)
}

func TestDeleteWithWhere(t *testing.T) {
	_, org, table := simpleMessageFixture(t)
	idPath := table.JoinNumber(1)

	del := query.Delete(table).WithWhere(query.Col(idPath).Eq(query.Val(1)))
	sql := buildSQL(t, del, org)
	assert.Equal(t, "DELETE FROM t_1 WHERE (t_1.f_1 = 1)", sql)
}

func TestUpdateSetsBareColumnName(t *testing.T) {
	_, org, table := simpleMessageFixture(t)
	idPath := table.JoinNumber(1)
	namePath := table.JoinNumber(2)

	upd := query.Update(table).AddUpdate(query.StringAttr(namePath, "new")).WithWhere(query.Col(idPath).Eq(query.Val(1)))
	sql := buildSQL(t, upd, org)
	assert.Equal(t, "UPDATE t_1 SET f_2 = 'new' WHERE (t_1.f_1 = 1)", sql)
}

func TestNestedSelectInExpressionIsParenthesized(t *testing.T) {
	_, org, table := simpleMessageFixture(t)
	idPath := table.JoinNumber(1)

	inner := query.Select(table, query.Col(idPath))
	outer := query.Exists(query.Expr{Clause: inner})

	sql := buildSQL(t, outer.Clause, org)
	assert.Equal(t, "EXISTS ((SELECT t_1.f_1 FROM t_1))", sql)
}

func TestCaseExpressionSearchedForm(t *testing.T) {
	_, org, table := simpleMessageFixture(t)
	idPath := table.JoinNumber(1)

	c := query.Case().When(query.Col(idPath).Gt(query.Val(5))).Then(query.Val("big")).Else(query.Val("small"))
	sql := buildSQL(t, c.Clause, org)
	assert.Equal(t, "CASE WHEN (t_1.f_1 > 5) THEN 'big' ELSE 'small' END", sql)
}

func TestInvalidArityFailsEmission(t *testing.T) {
	_, org, _ := simpleMessageFixture(t)
	bad := &query.ExpressionClause{Op: query.OpAdd, Operands: []query.Clause{query.Val(1).Clause}}

	ir, err := org.TransformClause(bad)
	require.NoError(t, err)

	_, err = sqlbuilder.Build(ir)
	require.Error(t, err)
}

func TestJoinQueriesConcatenatesWithSemicolons(t *testing.T) {
	joined := sqlbuilder.JoinQueries("BEGIN", "COMMIT")
	assert.Equal(t, "BEGIN; COMMIT", joined)
}

func TestQuoteIdentifierDoublesQuotes(t *testing.T) {
	assert.Equal(t, `"weird""name"`, sqlbuilder.QuoteIdentifier(`weird"name`))
}
