// Package sqlbuilder walks builder IR (github.com/relormdb/relorm/builderir)
// and emits PostgreSQL text, §4.6. It is a small recursive-descent
// visitor rather than a fluent query-construction API: by the time a
// Clause reaches this package every identifier has already been
// resolved by the organizer, so the builder's only job is
// deterministic, byte-stable rendering.
//
//	sql, err := sqlbuilder.Build(clause)
//
// Table and column references are rendered through a fixed mangling
// scheme (t_/f_/p_/i_, see identifiers.go) rather than quoting the
// caller's own names, which keeps emission independent of whatever
// identifier-safety rules the underlying Postgres server enforces.
package sqlbuilder
