// Package builderir is the lower-level clause algebra the organizer
// emits and the SQL builder consumes, §3. Unlike query.Clause it
// carries fully resolved table/field paths rather than logical schema
// paths, an explicit key-kind per column, and — for INSERT — an
// already-widened value matrix.
package builderir

import (
	"ariga.io/atlas/sql/schema"

	"github.com/relormdb/relorm/query"
	"github.com/relormdb/relorm/relation"
)

// Clause is the builder IR's closed sum type.
type Clause interface {
	builderClauseNode()
}

type StringClause struct{ Value string }

// IntClause holds a 64-bit integer so it can carry any of the
// organizer's integer-typed Attribute values (i32/u32/i64/u64)
// uniformly; the SQL builder renders it as a plain decimal literal
// regardless of width.
type IntClause struct{ Value int64 }
type FloatClause struct{ Value float64 }
type BoolClause struct{ Value bool }
type AllClause struct{}
type DefaultClause struct{}

func (*StringClause) builderClauseNode()  {}
func (*IntClause) builderClauseNode()     {}
func (*FloatClause) builderClauseNode()   {}
func (*BoolClause) builderClauseNode()    {}
func (*AllClause) builderClauseNode()     {}
func (*DefaultClause) builderClauseNode() {}

// KeyKind classifies a resolved column for identifier mangling, §4.6.
type KeyKind int

const (
	KeySimple KeyKind = iota
	KeyPrimary
	KeyIndex
)

// ColumnClause is a fully resolved column reference: TablePath
// identifies the owning root table, FieldPath the field suffix beneath
// it (§4.1's table-path/field-path split).
type ColumnClause struct {
	TablePath relation.Path
	FieldPath relation.Path
	Key       KeyKind
	Kind      query.ColumnKind
}

func (*ColumnClause) builderClauseNode() {}

// ExpressionClause mirrors query.ExpressionClause over builder-IR
// operands.
type ExpressionClause struct {
	Op       query.Operator
	Operands []Clause
}

func (*ExpressionClause) builderClauseNode() {}

// Join is the resolved join form of query.Join.
type Join struct {
	Table relation.Path
	Kind  query.JoinKind
	On    Clause
}

// SelectClause is a resolved SELECT.
type SelectClause struct {
	Table     relation.Path
	Selectors []Clause
	Joins     []Join
	Where     Clause
	GroupBy   []Clause
	Having    Clause
	OrderBy   []Clause
	Limit     Clause
}

func (*SelectClause) builderClauseNode() {}

// InsertClause carries an explicit, already column-aligned value
// matrix: every row has the same length as Selectors, with Default
// filling positions the organizer widened, §4.5.
type InsertClause struct {
	Table          relation.Path
	Selectors      []Clause // ColumnClause entries, one per column
	Values         [][]Clause
	UpdateIfExists bool
	// ConflictTarget is the primary-key columns inferred for
	// ON CONFLICT, populated only when UpdateIfExists is set (resolves
	// §9's open question b).
	ConflictTarget []Clause
	// DoUpdate holds the `col = EXCLUDED.col` assignment pairs run when
	// UpdateIfExists triggers a conflict.
	DoUpdate []Assignment
}

func (*InsertClause) builderClauseNode() {}

// Assignment is one `column = value` pair, used by UPDATE's SET list
// and by INSERT's do-update list.
type Assignment struct {
	Column Clause
	Value  Clause
}

// UpdateClause is a resolved UPDATE.
type UpdateClause struct {
	Table relation.Path
	Set   []Assignment
	Where Clause
}

func (*UpdateClause) builderClauseNode() {}

// DeleteClause is a resolved DELETE.
type DeleteClause struct {
	Table relation.Path
	Where Clause
}

func (*DeleteClause) builderClauseNode() {}

// TruncateClause is a resolved TRUNCATE.
type TruncateClause struct {
	Table relation.Path
}

func (*TruncateClause) builderClauseNode() {}

// CreateTableClause carries the root table's flattened field list, in
// registration order, ready for column-definition emission.
type CreateTableClause struct {
	Table  relation.Path
	Fields []*relation.PrimitiveFieldInfo
}

func (*CreateTableClause) builderClauseNode() {}

// DropTableClause drops a table.
type DropTableClause struct {
	Table relation.Path
}

func (*DropTableClause) builderClauseNode() {}

// AlterKind enumerates ALTER TABLE operation kinds, §4.6.
type AlterKind int

const (
	AlterAddColumn AlterKind = iota
	AlterDropColumn
	AlterColumnType
	AlterSetDefault
	AlterDropDefault
	AlterSetNotNull
	AlterDropNotNull
	AlterAddConstraint
	AlterDropConstraint
)

// AlterOperation is one entry in an ALTER TABLE's comma-joined list.
type AlterOperation struct {
	Kind AlterKind

	// Column identifies the affected column for every kind except
	// AlterAddColumn (which uses Field) and
	// AlterAddConstraint/AlterDropConstraint.
	Column Clause
	// Field is populated for AlterAddColumn, giving the full field
	// metadata needed to render a column definition.
	Field *relation.PrimitiveFieldInfo
	// TypeInfo is populated for AlterColumnType.
	TypeInfo relation.TypeInfo
	// DefaultLiteral is populated for AlterSetDefault.
	DefaultLiteral string
	// ConstraintName identifies the constraint for both
	// AlterAddConstraint and AlterDropConstraint, the SUPPLEMENTED
	// constraint-DDL feature.
	ConstraintName string
	// UniqueIndex/Check carry an ariga.io/atlas/sql/schema-described
	// constraint for AlterAddConstraint; exactly one is set, depending
	// on whether the organizer built a PRIMARY KEY/UNIQUE or a CHECK.
	UniqueIndex *schema.Index
	Check       *schema.Check
}

// AlterTableClause is a resolved ALTER TABLE.
type AlterTableClause struct {
	Table      relation.Path
	Operations []AlterOperation
}

func (*AlterTableClause) builderClauseNode() {}

type StartTransactionClause struct{ ReadOnly bool }
type CommitTransactionClause struct{}
type RollbackTransactionClause struct{}

func (*StartTransactionClause) builderClauseNode()    {}
func (*CommitTransactionClause) builderClauseNode()   {}
func (*RollbackTransactionClause) builderClauseNode() {}
