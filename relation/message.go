package relation

import "github.com/relormdb/relorm/idl"

// ObjectKind is a bitset over the kinds of objects the registry tracks,
// returned by Registry.GetObjectType, §4.3.
type ObjectKind uint8

const (
	RootMessage    ObjectKind = 1 << iota // a message registered via RegisterRoot
	FieldMessage                          // a sub-message reached through a parent field
	PrimitiveField                        // a leaf field
	// Message is the union of RootMessage and FieldMessage.
	Message = RootMessage | FieldMessage
)

func (k ObjectKind) Has(bit ObjectKind) bool { return k&bit != 0 }

// MessageInfo is the registry's record of one message node — a root
// table or a nested sub-message. It indexes its immediate children,
// partitioned into primitive fields and sub-message fields, in
// registration (declaration) order.
type MessageInfo struct {
	path       Path
	descriptor idl.MessageDescriptor
	kind       ObjectKind // RootMessage or FieldMessage

	// primitiveFields/subMessages hold the immediate (one level deep)
	// children, in descriptor declaration order.
	primitiveFields []Path
	subMessages     []Path

	// table is non-nil only for root messages.
	table *TableConfig
	// primaryKeys is populated only for root messages, during the
	// walk: the set of primary-key paths discovered anywhere beneath
	// the root, in discovery order.
	primaryKeys []Path
}

// Path returns the message's full path (length 1 for a root message).
func (m *MessageInfo) Path() Path { return m.path }

// Descriptor returns the underlying IDL message descriptor.
func (m *MessageInfo) Descriptor() idl.MessageDescriptor { return m.descriptor }

// IsRoot reports whether this message was registered via RegisterRoot.
func (m *MessageInfo) IsRoot() bool { return m.kind&RootMessage != 0 }

// PrimitiveFields returns the immediate primitive-field children, in
// declaration order.
func (m *MessageInfo) PrimitiveFields() []Path {
	return append([]Path(nil), m.primitiveFields...)
}

// SubMessages returns the immediate sub-message children, in
// declaration order.
func (m *MessageInfo) SubMessages() []Path {
	return append([]Path(nil), m.subMessages...)
}

// Table returns the table configuration for a root message, or nil for
// a sub-message.
func (m *MessageInfo) Table() *TableConfig { return m.table }

// PrimaryKeys returns the root message's primary-key paths, discovered
// during the walk. Empty (and meaningless) for a non-root message.
func (m *MessageInfo) PrimaryKeys() []Path {
	return append([]Path(nil), m.primaryKeys...)
}
