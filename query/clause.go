package query

import "github.com/relormdb/relorm/relation"

// Clause is the closed sum type underlying the query IR, §3. Every
// variant below implements it; the method exists only to seal the set
// to this package — callers never need to call it.
type Clause interface {
	clauseNode()
}

// StringClause is a string literal.
type StringClause struct{ Value string }

// IntClause is a 32-bit signed integer literal.
type IntClause struct{ Value int32 }

// FloatClause is a double-precision float literal.
type FloatClause struct{ Value float64 }

// BoolClause is a boolean literal.
type BoolClause struct{ Value bool }

// AllClause is the `*` selector/argument marker.
type AllClause struct{}

// DefaultClause is the `DEFAULT` marker used in INSERT value positions.
type DefaultClause struct{}

func (*StringClause) clauseNode()  {}
func (*IntClause) clauseNode()     {}
func (*FloatClause) clauseNode()   {}
func (*BoolClause) clauseNode()    {}
func (*AllClause) clauseNode()     {}
func (*DefaultClause) clauseNode() {}

// ColumnKind distinguishes a plain column reference from one
// referencing PostgreSQL's `EXCLUDED` pseudo-table inside an
// `ON CONFLICT DO UPDATE` clause.
type ColumnKind int

const (
	ColumnSimple ColumnKind = iota
	ColumnExcluded
)

// ColumnClause references a schema path. Path must resolve through the
// registry to a known field; the organizer is what actually enforces
// that invariant (the IR itself can be built without a registry at
// hand).
type ColumnClause struct {
	Path relation.Path
	Kind ColumnKind
}

func (*ColumnClause) clauseNode() {}

// ExpressionClause applies Op to Operands, in order.
type ExpressionClause struct {
	Op       Operator
	Operands []Clause
}

func (*ExpressionClause) clauseNode() {}

// JoinKind enumerates the join forms the SUPPLEMENTED join feature
// supports.
type JoinKind int

const (
	JoinInner JoinKind = iota
	JoinLeft
	JoinLeftOuter
)

// Join is a single JOIN entry attached to a Select. On is the join
// condition, typically an Expression.
type Join struct {
	Table relation.Path
	Kind  JoinKind
	On    Clause
}

// SelectClause is a SELECT statement. Where, Having, and Limit are nil
// when absent; GroupBy and OrderBy are absent when empty.
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

func (*SelectClause) clauseNode() {}

// InsertClause is an INSERT statement. Subrequests is one row of
// attributes per element; UpdateIfExists requests an
// `ON CONFLICT DO UPDATE` clause.
type InsertClause struct {
	Table          relation.Path
	Subrequests    [][]Attribute
	UpdateIfExists bool
}

func (*InsertClause) clauseNode() {}

// UpdateClause is an UPDATE statement. Updates groups attributes into
// semantic update sets, flattened by the organizer into assignment
// order.
type UpdateClause struct {
	Table   relation.Path
	Updates [][]Attribute
	Where   Clause
}

func (*UpdateClause) clauseNode() {}

// DeleteClause is a DELETE statement.
type DeleteClause struct {
	Table relation.Path
	Where Clause
}

func (*DeleteClause) clauseNode() {}

// TruncateClause is a TRUNCATE statement.
type TruncateClause struct {
	Table relation.Path
}

func (*TruncateClause) clauseNode() {}

// CreateTableClause requests DDL to create the table rooted at Table.
// §3's Clause grammar only enumerates the DML/transaction variants, but
// §4.5 names CreateTable(root)/DeleteTable(root) as clauses the
// organizer must translate — so the user IR carries them too.
type CreateTableClause struct {
	Table relation.Path
}

// DropTableClause requests DDL to drop the table rooted at Table.
type DropTableClause struct {
	Table relation.Path
}

func (*CreateTableClause) clauseNode() {}
func (*DropTableClause) clauseNode()   {}

// StartTransactionClause begins a transaction.
type StartTransactionClause struct {
	ReadOnly bool
}

// CommitTransactionClause commits the enclosing transaction.
type CommitTransactionClause struct{}

// RollbackTransactionClause rolls back the enclosing transaction.
type RollbackTransactionClause struct{}

func (*StartTransactionClause) clauseNode()    {}
func (*CommitTransactionClause) clauseNode()   {}
func (*RollbackTransactionClause) clauseNode() {}

// Query is an ordered list of top-level clauses, §3.
type Query struct {
	Clauses []Clause
}

// CreateQuery returns an empty root query.
func CreateQuery() *Query { return &Query{} }

// AddClause appends c as a new top-level clause and returns the query
// for chaining.
func (q *Query) AddClause(c Clause) *Query {
	q.Clauses = append(q.Clauses, c)
	return q
}
