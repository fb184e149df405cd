package sqlbuilder

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/relormdb/relorm/relation"
)

// renderString applies §4.6's literal escaping rules: single-quote
// delimited, with ', \, \n, \r, \t escaped. Shared with the registry's
// column-default rendering so a field's DEFAULT and an Insert literal
// for the same string escape identically.
func renderString(s string) string {
	return relation.QuoteSQLString(s)
}

func renderInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

// renderFloat renders v in fixed notation, never scientific, matching
// the registry's default-literal rendering for Float/Double fields.
func renderFloat(v float64) string {
	return decimal.NewFromFloat(v).String()
}

func renderBool(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

// sqlType maps a field's TypeInfo to its PostgreSQL column type, §4.6.
func sqlType(t relation.TypeInfo) string {
	switch t.Kind {
	case relation.KindBool:
		return "BOOLEAN"
	case relation.KindInt32, relation.KindUInt32:
		if t.Increment {
			return "SERIAL"
		}
		return "INTEGER"
	case relation.KindInt64, relation.KindUInt64:
		if t.Increment {
			return "BIGSERIAL"
		}
		return "BIGINT"
	case relation.KindFloat:
		return "REAL"
	case relation.KindDouble:
		return "DOUBLE PRECISION"
	case relation.KindString:
		return "TEXT"
	case relation.KindBytes:
		return "BYTEA"
	case relation.KindEnum:
		return "INTEGER"
	default:
		return "TEXT"
	}
}
