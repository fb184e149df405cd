// Package query is the user-facing query intermediate representation:
// a closed algebra of Clause variants that compose into arbitrary
// trees, an operator-overload-style DSL for building Expression nodes
// (expressed as fluent methods, Go having no operator overloading),
// and — in the query/wire subpackage — a flat, msgpack-tagged wire
// envelope the IR round-trips through.
//
// Clause trees form a DAG: the same *ExpressionClause pointer may
// legitimately appear as the operand of more than one parent.
package query
