package relation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relormdb/relorm/relation"
)

func TestDefaultLiteralBool(t *testing.T) {
	lit, ok := relation.TypeInfo{Kind: relation.KindBool, BoolDefault: true}.DefaultLiteral()
	assert.True(t, ok)
	assert.Equal(t, "TRUE", lit)

	lit, ok = relation.TypeInfo{Kind: relation.KindBool, BoolDefault: false}.DefaultLiteral()
	assert.True(t, ok)
	assert.Equal(t, "FALSE", lit)
}

func TestDefaultLiteralIntegerWithIncrementHasNoLiteral(t *testing.T) {
	_, ok := relation.TypeInfo{Kind: relation.KindInt32, Increment: true}.DefaultLiteral()
	assert.False(t, ok)

	lit, ok := relation.TypeInfo{Kind: relation.KindInt32, Int32Default: 7}.DefaultLiteral()
	assert.True(t, ok)
	assert.Equal(t, "7", lit)
}

func TestDefaultLiteralUnsignedIntegers(t *testing.T) {
	lit, ok := relation.TypeInfo{Kind: relation.KindUInt32, UInt32Default: 42}.DefaultLiteral()
	assert.True(t, ok)
	assert.Equal(t, "42", lit)

	lit, ok = relation.TypeInfo{Kind: relation.KindUInt64, UInt64Default: 9999999999}.DefaultLiteral()
	assert.True(t, ok)
	assert.Equal(t, "9999999999", lit)
}

func TestDefaultLiteralFloatIsNeverScientificNotation(t *testing.T) {
	lit, ok := relation.TypeInfo{Kind: relation.KindFloat, FloatDefault: 0.0000001}.DefaultLiteral()
	assert.True(t, ok)
	assert.NotContains(t, lit, "e")
	assert.NotContains(t, lit, "E")

	lit, ok = relation.TypeInfo{Kind: relation.KindDouble, DoubleDefault: 123456789.5}.DefaultLiteral()
	assert.True(t, ok)
	assert.Equal(t, "123456789.5", lit)
}

func TestDefaultLiteralString(t *testing.T) {
	lit, ok := relation.TypeInfo{Kind: relation.KindString, StringDefault: "it's fine"}.DefaultLiteral()
	assert.True(t, ok)
	assert.Equal(t, `'it''s fine'`, lit)
}

func TestDefaultLiteralBytes(t *testing.T) {
	lit, ok := relation.TypeInfo{Kind: relation.KindBytes}.DefaultLiteral()
	assert.True(t, ok)
	assert.Equal(t, "''::bytes", lit)
}

func TestDefaultLiteralEnum(t *testing.T) {
	lit, ok := relation.TypeInfo{Kind: relation.KindEnum, EnumDefaultIndex: 2}.DefaultLiteral()
	assert.True(t, ok)
	assert.Equal(t, "2", lit)
}

func TestDefaultLiteralMonostateIsNull(t *testing.T) {
	lit, ok := relation.TypeInfo{}.DefaultLiteral()
	assert.True(t, ok)
	assert.Equal(t, "NULL", lit)
}

func TestQuoteSQLStringEscapesControlCharacters(t *testing.T) {
	assert.Equal(t, `'a\nb'`, relation.QuoteSQLString("a\nb"))
	assert.Equal(t, `'a\\b'`, relation.QuoteSQLString(`a\b`))
	assert.Equal(t, `'it''s'`, relation.QuoteSQLString("it's"))
}

func TestValueKindString(t *testing.T) {
	assert.Equal(t, "Int32", relation.KindInt32.String())
	assert.Equal(t, "Monostate", relation.KindMonostate.String())
}
