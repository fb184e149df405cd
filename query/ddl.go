package query

import (
	"ariga.io/atlas/sql/schema"

	"github.com/relormdb/relorm/relation"
)

// AlterKind enumerates the ALTER TABLE operation kinds the user-facing
// IR can request, §4.6. It mirrors builderir.AlterKind one-for-one but
// is declared independently: query (the higher-level IR) must not
// import builderir (the lower-level IR it organizes into).
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

// AlterOperation is one entry in an ALTER TABLE's operation list.
// Exactly the fields relevant to Kind are consulted.
type AlterOperation struct {
	Kind AlterKind

	// Column names the affected column, for every kind except
	// AlterAddColumn/AlterAddConstraint/AlterDropConstraint.
	Column Clause
	// FieldPath names the already-registered field to pull full column
	// metadata from, for AlterAddColumn.
	FieldPath relation.Path
	// ValueKind is the target type for AlterColumnType.
	ValueKind relation.ValueKind
	// DefaultLiteral is the SQL literal for AlterSetDefault.
	DefaultLiteral string
	// ConstraintName identifies the constraint for both
	// AlterAddConstraint and AlterDropConstraint, the SUPPLEMENTED
	// constraint-DDL feature.
	ConstraintName string
	// UniqueIndex describes a table-level PRIMARY KEY/UNIQUE constraint
	// for AlterAddConstraint, reusing ariga.io/atlas's schema
	// description types rather than a hand-rolled one.
	UniqueIndex *schema.Index
	// Check describes a table-level CHECK constraint for
	// AlterAddConstraint.
	Check *schema.Check
}

// AlterTableClause requests a sequence of ALTER TABLE operations
// against Table.
type AlterTableClause struct {
	Table      relation.Path
	Operations []AlterOperation
}

func (*AlterTableClause) clauseNode() {}

// AlterTable builds an empty ALTER TABLE request against table.
func AlterTable(table relation.Path) *AlterTableClause { return &AlterTableClause{Table: table} }

// AddOperation appends one operation and returns the clause for
// chaining.
func (a *AlterTableClause) AddOperation(op AlterOperation) *AlterTableClause {
	a.Operations = append(a.Operations, op)
	return a
}
