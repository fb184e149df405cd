package sqlbuilder

import (
	"strconv"
	"strings"

	"github.com/relormdb/relorm/builderir"
	"github.com/relormdb/relorm/query"
	"github.com/relormdb/relorm/relation"
)

// tableRef mangles a table path into "t_" followed by the
// underscore-joined numeric path, §4.6 (path [2,3] -> "t_2_3").
func tableRef(p relation.Path) string {
	return "t_" + joinNumbers(p)
}

// columnPrefix returns the mangling prefix for a key-kind: f_ for
// Simple, p_ for Primary, i_ for Index.
func columnPrefix(k builderir.KeyKind) string {
	switch k {
	case builderir.KeyPrimary:
		return "p_"
	case builderir.KeyIndex:
		return "i_"
	default:
		return "f_"
	}
}

// columnRef mangles a field path under the given key-kind.
func columnRef(k builderir.KeyKind, fieldPath relation.Path) string {
	return columnPrefix(k) + joinNumbers(fieldPath)
}

// qualifiedColumn renders a fully qualified column reference:
// <table-ref>.<col-ref>, or EXCLUDED.<col-ref> for the Excluded
// column-kind used by ON CONFLICT DO UPDATE assignments.
func qualifiedColumn(c *builderir.ColumnClause) string {
	ref := columnRef(c.Key, c.FieldPath)
	if c.Kind == query.ColumnExcluded {
		return "EXCLUDED." + ref
	}
	return tableRef(c.TablePath) + "." + ref
}

func joinNumbers(p relation.Path) string {
	nums := p.Numbers()
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.FormatUint(uint64(n), 10)
	}
	return strings.Join(parts, "_")
}

// QuoteIdentifier double-quote-escapes a raw SQL identifier: every `"`
// is doubled and the result wrapped in `"`. The t_/f_/p_/i_ mangling
// scheme covers every identifier the organizer itself produces; this
// is exposed for callers who need to reference an identifier outside
// that scheme (a raw table alias supplied directly to a JOIN, for
// instance) and still want it to round-trip safely through Postgres.
func QuoteIdentifier(name string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range name {
		if r == '"' {
			b.WriteByte('"')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
