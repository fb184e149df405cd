package query

import (
	"fmt"

	"github.com/relormdb/relorm/relation"
)

// Expr wraps a Clause to carry the fluent, operator-overload-style
// methods §4.4 calls for. Go has no operator overloading, so `a + b`
// becomes `a.Add(b)`; the underlying IR and emitted SQL are identical
// either way (§9, DSL ergonomics).
type Expr struct{ Clause }

func wrap(c Clause) Expr { return Expr{Clause: c} }

func expr(op Operator, operands ...Clause) Expr {
	return wrap(&ExpressionClause{Op: op, Operands: operands})
}

func (e Expr) operand() Clause { return e.Clause }

// Val lifts a native Go value to its matching literal clause. It
// panics on an unsupported type, the same way a misused generic field
// accessor would — this is a programming error, not a runtime
// condition callers are expected to recover from.
func Val(x any) Expr {
	switch v := x.(type) {
	case bool:
		return wrap(&BoolClause{Value: v})
	case int:
		return wrap(&IntClause{Value: int32(v)})
	case int32:
		return wrap(&IntClause{Value: v})
	case float32:
		return wrap(&FloatClause{Value: float64(v)})
	case float64:
		return wrap(&FloatClause{Value: v})
	case string:
		return wrap(&StringClause{Value: v})
	case Expr:
		return v
	case Clause:
		return wrap(v)
	default:
		panic(fmt.Sprintf("query: Val: unsupported literal type %T", x))
	}
}

// Col references a plain schema column.
func Col(path relation.Path) Expr { return wrap(&ColumnClause{Path: path, Kind: ColumnSimple}) }

// Excluded references path on PostgreSQL's `EXCLUDED` pseudo-table,
// for use inside an INSERT's do-update set.
func Excluded(path relation.Path) Expr {
	return wrap(&ColumnClause{Path: path, Kind: ColumnExcluded})
}

// All is the `*` marker, valid as a selector or as COUNT's argument.
func All() Expr { return wrap(&AllClause{}) }

// Default is the `DEFAULT` marker, valid in an INSERT value position.
func Default() Expr { return wrap(&DefaultClause{}) }

// Select builds a SELECT over table with the given selector
// expressions.
func Select(table relation.Path, selectors ...Expr) *SelectClause {
	return &SelectClause{Table: table, Selectors: toClauses(selectors)}
}

// Insert builds an empty INSERT into table; use AddSubrequest to
// supply rows.
func Insert(table relation.Path) *InsertClause { return &InsertClause{Table: table} }

// Update builds an empty UPDATE on table; use AddUpdate to supply
// assignment sets.
func Update(table relation.Path) *UpdateClause { return &UpdateClause{Table: table} }

// Delete builds a DELETE from table.
func Delete(table relation.Path) *DeleteClause { return &DeleteClause{Table: table} }

// Truncate builds a TRUNCATE of table.
func Truncate(table relation.Path) *TruncateClause { return &TruncateClause{Table: table} }

// CreateTable builds a CREATE TABLE DDL request for table.
func CreateTable(table relation.Path) *CreateTableClause { return &CreateTableClause{Table: table} }

// DropTable builds a DROP TABLE DDL request for table.
func DropTable(table relation.Path) *DropTableClause { return &DropTableClause{Table: table} }

// --- SelectClause fluent setters ---
//
// Named with a "With" prefix rather than bare "Where"/"GroupBy"/…: Go
// forbids a method and an exported field of the same name on one
// struct, and the fields (read directly by the organizer) keep the
// plain names from §3's grammar.

func (s *SelectClause) WithWhere(c Expr) *SelectClause {
	s.Where = c.Clause
	return s
}
func (s *SelectClause) WithGroupBy(c ...Expr) *SelectClause {
	s.GroupBy = toClauses(c)
	return s
}
func (s *SelectClause) WithHaving(c Expr) *SelectClause {
	s.Having = c.Clause
	return s
}
func (s *SelectClause) WithOrderBy(c ...Expr) *SelectClause {
	s.OrderBy = toClauses(c)
	return s
}
func (s *SelectClause) WithLimit(c Expr) *SelectClause {
	s.Limit = c.Clause
	return s
}
func (s *SelectClause) WithJoin(kind JoinKind, table relation.Path, on Expr) *SelectClause {
	s.Joins = append(s.Joins, Join{Table: table, Kind: kind, On: on.Clause})
	return s
}

func toClauses(exprs []Expr) []Clause {
	if len(exprs) == 0 {
		return nil
	}
	out := make([]Clause, len(exprs))
	for i, e := range exprs {
		out[i] = e.Clause
	}
	return out
}

// --- InsertClause / UpdateClause / DeleteClause fluent setters ---

// AddSubrequest appends one INSERT row's worth of attributes.
func (ins *InsertClause) AddSubrequest(attrs ...Attribute) *InsertClause {
	ins.Subrequests = append(ins.Subrequests, attrs)
	return ins
}

// UpdateIfExistsFlag sets the ON CONFLICT DO UPDATE behavior.
func (ins *InsertClause) UpdateIfExistsFlag(v bool) *InsertClause {
	ins.UpdateIfExists = v
	return ins
}

// AddUpdate appends one semantically grouped update set.
func (u *UpdateClause) AddUpdate(attrs ...Attribute) *UpdateClause {
	u.Updates = append(u.Updates, attrs)
	return u
}

func (u *UpdateClause) WithWhere(c Expr) *UpdateClause {
	u.Where = c.Clause
	return u
}

func (d *DeleteClause) WithWhere(c Expr) *DeleteClause {
	d.Where = c.Clause
	return d
}

// --- Operator-overload DSL, expressed as fluent methods ---

func (e Expr) Add(o Expr) Expr  { return expr(OpAdd, e.operand(), o.operand()) }
func (e Expr) Sub(o Expr) Expr  { return expr(OpSub, e.operand(), o.operand()) }
func (e Expr) Mul(o Expr) Expr  { return expr(OpMul, e.operand(), o.operand()) }
func (e Expr) Div(o Expr) Expr  { return expr(OpDiv, e.operand(), o.operand()) }
func (e Expr) Mod(o Expr) Expr  { return expr(OpMod, e.operand(), o.operand()) }
func (e Expr) Pow(o Expr) Expr  { return expr(OpPow, e.operand(), o.operand()) }
func (e Expr) Eq(o Expr) Expr   { return expr(OpEq, e.operand(), o.operand()) }
func (e Expr) Neq(o Expr) Expr  { return expr(OpNeq, e.operand(), o.operand()) }
func (e Expr) Lt(o Expr) Expr   { return expr(OpLt, e.operand(), o.operand()) }
func (e Expr) Lte(o Expr) Expr  { return expr(OpLte, e.operand(), o.operand()) }
func (e Expr) Gt(o Expr) Expr   { return expr(OpGt, e.operand(), o.operand()) }
func (e Expr) Gte(o Expr) Expr  { return expr(OpGte, e.operand(), o.operand()) }
func (e Expr) And(o Expr) Expr  { return expr(OpAnd, e.operand(), o.operand()) }
func (e Expr) Or(o Expr) Expr   { return expr(OpOr, e.operand(), o.operand()) }
func (e Expr) Not() Expr        { return expr(OpNot, e.operand()) }
func (e Expr) Like(o Expr) Expr { return expr(OpLike, e.operand(), o.operand()) }
func (e Expr) Ilike(o Expr) Expr {
	return expr(OpIlike, e.operand(), o.operand())
}
func (e Expr) SimilarTo(o Expr) Expr {
	return expr(OpSimilarTo, e.operand(), o.operand())
}
func (e Expr) RegexpMatch(o Expr) Expr {
	return expr(OpRegexpMatch, e.operand(), o.operand())
}
func (e Expr) IsNull() Expr    { return expr(OpIsNull, e.operand()) }
func (e Expr) IsNotNull() Expr { return expr(OpIsNotNull, e.operand()) }
func (e Expr) Between(lo, hi Expr) Expr {
	return expr(OpBetween, e.operand(), lo.operand(), hi.operand())
}

// --- Free functions over one or more Expr operands ---

func In(e Expr, set ...Expr) Expr {
	return expr(OpIn, append([]Clause{e.operand()}, toClauses(set)...)...)
}
func Exists(sub Expr) Expr  { return expr(OpExists, sub.operand()) }
func Max(e Expr) Expr       { return expr(OpMax, e.operand()) }
func Min(e Expr) Expr       { return expr(OpMin, e.operand()) }
func Sum(e Expr) Expr       { return expr(OpSum, e.operand()) }
func Avg(e Expr) Expr       { return expr(OpAvg, e.operand()) }
func Count(e Expr) Expr     { return expr(OpCount, e.operand()) }
func Abs(e Expr) Expr       { return expr(OpAbs, e.operand()) }
func Ceil(e Expr) Expr      { return expr(OpCeil, e.operand()) }
func Floor(e Expr) Expr     { return expr(OpFloor, e.operand()) }
func Sqrt(e Expr) Expr      { return expr(OpSqrt, e.operand()) }
func Rand() Expr            { return expr(OpRandom) }
func Sin(e Expr) Expr       { return expr(OpSin, e.operand()) }
func Cos(e Expr) Expr       { return expr(OpCos, e.operand()) }
func Tan(e Expr) Expr       { return expr(OpTan, e.operand()) }
func Lower(e Expr) Expr     { return expr(OpLower, e.operand()) }
func Upper(e Expr) Expr     { return expr(OpUpper, e.operand()) }
func Len(e Expr) Expr       { return expr(OpLength, e.operand()) }
func Trim(e Expr) Expr      { return expr(OpTrim, e.operand()) }

// Round renders ROUND(a) with one operand, ROUND(a, b) with two.
func Round(e Expr, precision ...Expr) Expr {
	if len(precision) == 0 {
		return expr(OpRound, e.operand())
	}
	return expr(OpRound, e.operand(), precision[0].operand())
}

// Log renders LOG(x) (base 10) with one operand, LOG(base, x) with two.
func Log(x Expr, base ...Expr) Expr {
	if len(base) == 0 {
		return expr(OpLog, x.operand())
	}
	return expr(OpLog, base[0].operand(), x.operand())
}

func SubStr(s, from Expr, forLen ...Expr) Expr {
	if len(forLen) == 0 {
		return expr(OpSubstring, s.operand(), from.operand())
	}
	return expr(OpSubstring, s.operand(), from.operand(), forLen[0].operand())
}

func Replace(s, from, to Expr) Expr {
	return expr(OpReplace, s.operand(), from.operand(), to.operand())
}
func Left(s, n Expr) Expr  { return expr(OpLeft, s.operand(), n.operand()) }
func Right(s, n Expr) Expr { return expr(OpRight, s.operand(), n.operand()) }
func Pos(sub, in Expr) Expr {
	return expr(OpPosition, sub.operand(), in.operand())
}
func SplitPart(s, delim, field Expr) Expr {
	return expr(OpSplitPart, s.operand(), delim.operand(), field.operand())
}

func Coalesce(es ...Expr) Expr  { return expr(OpCoalesce, toClauses(es)...) }
func Greatest(es ...Expr) Expr  { return expr(OpGreatest, toClauses(es)...) }
func Least(es ...Expr) Expr     { return expr(OpLeast, toClauses(es)...) }
func Concat(es ...Expr) Expr    { return expr(OpConcat, toClauses(es)...) }

// CaseBuilder accumulates WHEN/THEN pairs for Case().
type CaseBuilder struct {
	scrutinee Clause
	operands  []Clause
	elseVal   Clause
}

// Case begins a CASE expression. Pass scrutinee for the simple form
// (`CASE x WHEN …`); omit it for the searched form (`CASE WHEN …`).
func Case(scrutinee ...Expr) *CaseBuilder {
	cb := &CaseBuilder{}
	if len(scrutinee) > 0 {
		cb.scrutinee = scrutinee[0].operand()
	}
	return cb
}

// When appends a WHEN condition; the following Then supplies its
// result.
func (cb *CaseBuilder) When(cond Expr) *CaseBuilder {
	cb.operands = append(cb.operands, cond.operand())
	return cb
}

// Then supplies the result for the most recent When.
func (cb *CaseBuilder) Then(result Expr) *CaseBuilder {
	cb.operands = append(cb.operands, result.operand())
	return cb
}

// Else supplies the CASE's fallback result and finalizes the
// expression.
func (cb *CaseBuilder) Else(result Expr) Expr {
	cb.elseVal = result.operand()
	return cb.build()
}

// End finalizes a CASE expression with no ELSE clause.
func (cb *CaseBuilder) End() Expr { return cb.build() }

// build assembles the flat operand list the renderer expects:
// Operands[0] is always the scrutinee slot — a real expression for the
// simple form, or a DefaultClause sentinel for the searched form — so
// that "has scrutinee, no ELSE" and "no scrutinee, has ELSE" (which
// would otherwise both produce an operand list of the same odd length)
// stay distinguishable. Everything after it is when/then pairs with an
// optional trailing ELSE.
func (cb *CaseBuilder) build() Expr {
	head := cb.scrutinee
	if head == nil {
		head = &DefaultClause{}
	}
	operands := append([]Clause{head}, cb.operands...)
	if cb.elseVal != nil {
		operands = append(operands, cb.elseVal)
	}
	return expr(OpCase, operands...)
}
