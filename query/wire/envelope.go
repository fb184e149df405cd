// Package wire is the query IR's flat, msgpack-tagged wire codec,
// §4.4: a list of clause records plus a list of start-point indices,
// with operand references expressed as indices into the same list
// rather than as pointers — the shape a protobuf-style envelope would
// take if the IR were .proto-defined, built here with
// vmihailenco/msgpack instead since the CORE has no codegen step.
package wire

// Kind discriminates ClauseRecord, with one kind for each of
// query.Clause's literal, column, expression, DML and transaction
// variants. The DDL clauses (CreateTable, DropTable, AlterTable) have no
// kind, and Encode panics on them.
type Kind uint8

const (
	KString Kind = iota
	KInt
	KFloat
	KBool
	KAll
	KDefault
	KColumn
	KExpression
	KSelect
	KInsert
	KUpdate
	KDelete
	KTruncate
	KStartTransaction
	KCommitTransaction
	KRollbackTransaction
)

// JoinRecord is a SELECT's join entry. Table is the joined root
// table's number; On indexes into the envelope's Clauses.
type JoinRecord struct {
	Table uint32 `msgpack:"table"`
	Kind  uint8  `msgpack:"kind"`
	On    uint32 `msgpack:"on"`
}

// AttributeRecord mirrors query.Attribute for INSERT/UPDATE payloads.
type AttributeRecord struct {
	PathNumbers  []uint32 `msgpack:"path"`
	Kind         uint8    `msgpack:"kind"`
	BoolValue    bool     `msgpack:"b,omitempty"`
	U32Value     uint32   `msgpack:"u32,omitempty"`
	I32Value     int32    `msgpack:"i32,omitempty"`
	U64Value     uint64   `msgpack:"u64,omitempty"`
	I64Value     int64    `msgpack:"i64,omitempty"`
	F32Value     float32  `msgpack:"f32,omitempty"`
	F64Value     float64  `msgpack:"f64,omitempty"`
	StringValue  string   `msgpack:"s,omitempty"`
	MessageValue []byte   `msgpack:"msg,omitempty"`
}

// SubrequestRecord is one INSERT/UPDATE row, indexing into the
// envelope's Attributes.
type SubrequestRecord struct {
	Attributes []uint32 `msgpack:"attrs"`
}

// ClauseRecord is the discriminated union mirroring one query.Clause
// node. Only the fields relevant to Kind are populated; the rest carry
// their zero value and are omitted from the encoded form.
type ClauseRecord struct {
	Kind Kind `msgpack:"k"`

	StringValue string  `msgpack:"s,omitempty"`
	IntValue    int32   `msgpack:"i,omitempty"`
	FloatValue  float64 `msgpack:"f,omitempty"`
	BoolValue   bool    `msgpack:"b,omitempty"`

	PathNumbers []uint32 `msgpack:"p,omitempty"`
	ColumnKind  uint8    `msgpack:"ck,omitempty"`

	Operator int32    `msgpack:"op,omitempty"`
	Operands []uint32 `msgpack:"ops,omitempty"`

	Table     uint32     `msgpack:"t,omitempty"`
	Selectors []uint32   `msgpack:"sel,omitempty"`
	Joins     []JoinRecord `msgpack:"joins,omitempty"`
	Where     *uint32    `msgpack:"where,omitempty"`
	GroupBy   []uint32   `msgpack:"gb,omitempty"`
	Having    *uint32    `msgpack:"having,omitempty"`
	OrderBy   []uint32   `msgpack:"ob,omitempty"`
	Limit     *uint32    `msgpack:"limit,omitempty"`

	Subrequests    []SubrequestRecord `msgpack:"sub,omitempty"`
	UpdateIfExists bool               `msgpack:"uie,omitempty"`

	Updates []SubrequestRecord `msgpack:"upd,omitempty"`

	ReadOnly bool `msgpack:"ro,omitempty"`
}

// Envelope is the full on-wire Query representation, §3/§4.4.
type Envelope struct {
	Clauses     []ClauseRecord    `msgpack:"clauses"`
	Attributes  []AttributeRecord `msgpack:"attributes"`
	StartPoints []uint32          `msgpack:"start_points"`
}
