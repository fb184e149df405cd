// Package idl describes the Protocol-Buffers-style interface definition
// language the schema registry consumes. Only the interfaces are
// specified here — the CORE is not a protobuf compiler; it is given
// descriptors already parsed by some upstream (a real protoreflect
// descriptor, a hand-built StaticPool, or a code-generator's output) and
// walks them.
//
// Field kinds and default values are expressed with
// google.golang.org/protobuf/reflect/protoreflect's Kind and Value types,
// which is the natural vocabulary for a "Protocol-Buffers-style" field
// without requiring any .proto compilation step.
package idl

import "google.golang.org/protobuf/reflect/protoreflect"

// ObjectType mirrors the message-level custom option
// `object_type { type_value: int, custom_type_handler: bool }`.
type ObjectType struct {
	TypeValue         int32
	CustomTypeHandler bool
}

// FieldDescriptor describes one field of a message, in the shape §6
// requires: number, name, kind, map/repeated/optional/presence flags,
// containing oneof, default value, and the `primary_key` custom option.
type FieldDescriptor interface {
	Number() int32
	Name() string
	Kind() protoreflect.Kind
	IsMap() bool
	IsRepeated() bool
	IsOptional() bool
	HasPresence() bool
	ContainingOneof() string
	HasDefaultValue() bool
	Default() protoreflect.Value
	// PrimaryKey reports the `primary_key: bool` field-level custom
	// option.
	PrimaryKey() bool
	// AutoIncrement reports whether an integer field is backed by a
	// database-generated sequence (SERIAL/BIGSERIAL); meaningless for
	// non-integer kinds.
	AutoIncrement() bool
	// MessageType is non-nil iff Kind() == protoreflect.MessageKind
	// (or GroupKind), giving the nested message's descriptor.
	MessageType() MessageDescriptor
	// EnumDescriptor is non-nil iff Kind() == protoreflect.EnumKind.
	EnumDescriptor() EnumDescriptor
}

// EnumDescriptor is the minimal surface the registry needs to record an
// enum field's default index.
type EnumDescriptor interface {
	FullName() string
}

// MessageDescriptor describes one message type: its fields, in
// declaration order, and its message-level custom options.
type MessageDescriptor interface {
	FullName() string
	Fields() []FieldDescriptor
	// ObjectType is the message-level `object_type` custom option, if
	// present.
	ObjectType() (ObjectType, bool)
	// InPlace is the message-level `in_place: bool` custom option.
	// Carried for completeness; the CORE's emission decisions never
	// consult it (§6).
	InPlace() bool
}

// DescriptorPool resolves an IDL type's fully qualified name to its
// descriptor, the way a protobuf descriptor pool would.
type DescriptorPool interface {
	FindMessageByName(name string) (MessageDescriptor, bool)
}
