package relation

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ValueKind discriminates the TypeInfo tagged union, §4.2.
type ValueKind int

const (
	// KindMonostate denotes "unknown / not-a-primitive".
	KindMonostate ValueKind = iota
	KindBool
	KindInt32
	KindUInt32
	KindInt64
	KindUInt64
	KindFloat
	KindDouble
	KindString
	KindBytes
	KindEnum
)

func (k ValueKind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindInt32:
		return "Int32"
	case KindUInt32:
		return "UInt32"
	case KindInt64:
		return "Int64"
	case KindUInt64:
		return "UInt64"
	case KindFloat:
		return "Float"
	case KindDouble:
		return "Double"
	case KindString:
		return "String"
	case KindBytes:
		return "Bytes"
	case KindEnum:
		return "Enum"
	default:
		return "Monostate"
	}
}

// TypeInfo is the tagged-union description of a primitive field's value
// type, §4.2. Exactly the fields relevant to Kind are populated; the
// rest are zero.
type TypeInfo struct {
	Kind ValueKind

	BoolDefault   bool
	Int32Default  int32
	UInt32Default uint32
	Int64Default  int64
	UInt64Default uint64
	FloatDefault  float32
	DoubleDefault float64
	StringDefault string
	BytesDefault  []byte

	EnumDefaultIndex int32
	EnumFullName     string

	// Increment is the auto-increment flag, meaningful only for
	// KindInt32/KindUInt32/KindInt64/KindUInt64.
	Increment bool
}

// DefaultLiteral renders the type's default value as a SQL literal per
// §4.2's table. Integer kinds with Increment set have no default (the
// type itself becomes SERIAL/BIGSERIAL); DefaultLiteral returns ("", false)
// in that case so callers can omit the DEFAULT clause entirely.
func (t TypeInfo) DefaultLiteral() (string, bool) {
	switch t.Kind {
	case KindBool:
		if t.BoolDefault {
			return "TRUE", true
		}
		return "FALSE", true
	case KindInt32:
		if t.Increment {
			return "", false
		}
		return strconv.FormatInt(int64(t.Int32Default), 10), true
	case KindUInt32:
		if t.Increment {
			return "", false
		}
		return strconv.FormatUint(uint64(t.UInt32Default), 10), true
	case KindInt64:
		if t.Increment {
			return "", false
		}
		return strconv.FormatInt(t.Int64Default, 10), true
	case KindUInt64:
		if t.Increment {
			return "", false
		}
		return strconv.FormatUint(t.UInt64Default, 10), true
	case KindFloat:
		return fixedDecimal32(t.FloatDefault), true
	case KindDouble:
		return fixedDecimal64(t.DoubleDefault), true
	case KindString:
		return quoteSQLString(t.StringDefault), true
	case KindBytes:
		return "''::bytes", true
	case KindEnum:
		return strconv.FormatInt(int64(t.EnumDefaultIndex), 10), true
	default:
		return "NULL", true
	}
}

// fixedDecimal32/64 render a float as a fixed-notation decimal literal,
// never scientific notation, using shopspring/decimal rather than
// strconv.FormatFloat('g', ...) which switches to exponent form for
// very small/large magnitudes.
func fixedDecimal32(f float32) string {
	return decimal.NewFromFloat32(f).String()
}

func fixedDecimal64(f float64) string {
	return decimal.NewFromFloat(f).String()
}

// QuoteSQLString single-quotes s and escapes it per §4.6's literal
// escaping rules. Exported so the SQL builder can render string
// literal clauses with the exact same escaping this package uses for
// column default literals.
func QuoteSQLString(s string) string {
	return quoteSQLString(s)
}

// quoteSQLString single-quotes s and escapes it per §4.6's literal
// escaping rules (shared with the builder's string-literal emission).
func quoteSQLString(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			b.WriteString("''")
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
