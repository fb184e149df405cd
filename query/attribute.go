package query

import "github.com/relormdb/relorm/relation"

// AttributeKind discriminates Attribute's value union, §3.
type AttributeKind int

const (
	AttrBool AttributeKind = iota
	AttrU32
	AttrI32
	AttrU64
	AttrI64
	AttrF32
	AttrF64
	AttrString
	AttrMessage // opaque, serialized nested-message bytes
)

// Attribute is a (path, value) pair supplying a concrete value to an
// INSERT subrequest or an UPDATE set, §3. Exactly the field matching
// Kind is meaningful.
type Attribute struct {
	Path relation.Path
	Kind AttributeKind

	BoolValue    bool
	U32Value     uint32
	I32Value     int32
	U64Value     uint64
	I64Value     int64
	F32Value     float32
	F64Value     float64
	StringValue  string
	MessageValue []byte
}

func BoolAttr(path relation.Path, v bool) Attribute   { return Attribute{Path: path, Kind: AttrBool, BoolValue: v} }
func U32Attr(path relation.Path, v uint32) Attribute  { return Attribute{Path: path, Kind: AttrU32, U32Value: v} }
func I32Attr(path relation.Path, v int32) Attribute   { return Attribute{Path: path, Kind: AttrI32, I32Value: v} }
func U64Attr(path relation.Path, v uint64) Attribute  { return Attribute{Path: path, Kind: AttrU64, U64Value: v} }
func I64Attr(path relation.Path, v int64) Attribute   { return Attribute{Path: path, Kind: AttrI64, I64Value: v} }
func F32Attr(path relation.Path, v float32) Attribute { return Attribute{Path: path, Kind: AttrF32, F32Value: v} }
func F64Attr(path relation.Path, v float64) Attribute { return Attribute{Path: path, Kind: AttrF64, F64Value: v} }
func StringAttr(path relation.Path, v string) Attribute {
	return Attribute{Path: path, Kind: AttrString, StringValue: v}
}

// MessageAttr carries the serialized bytes of a nested message value.
// The organizer never persists it (§4.5 point 3); it exists so callers
// can round-trip it through the wire envelope unchanged.
func MessageAttr(path relation.Path, payload []byte) Attribute {
	return Attribute{Path: path, Kind: AttrMessage, MessageValue: payload}
}
