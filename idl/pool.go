package idl

import "google.golang.org/protobuf/reflect/protoreflect"

// Field is a plain-data FieldDescriptor, built by hand or by a loader
// that parses an actual .proto FileDescriptorSet. It is the reference
// implementation used by the CORE's tests and by cmd/ormcli's demo
// schema.
type Field struct {
	FieldNumber    int32
	FieldName      string
	FieldKind      protoreflect.Kind
	Map            bool
	Repeated       bool
	Optional       bool
	Presence       bool
	Oneof          string
	HasDefault     bool
	DefaultValue   protoreflect.Value
	IsPrimaryKey   bool
	IsAutoIncrement bool
	Message        MessageDescriptor
	Enum           EnumDescriptor
}

func (f *Field) Number() int32                    { return f.FieldNumber }
func (f *Field) Name() string                      { return f.FieldName }
func (f *Field) Kind() protoreflect.Kind           { return f.FieldKind }
func (f *Field) IsMap() bool                       { return f.Map }
func (f *Field) IsRepeated() bool                  { return f.Repeated }
func (f *Field) IsOptional() bool                  { return f.Optional }
func (f *Field) HasPresence() bool                 { return f.Presence }
func (f *Field) ContainingOneof() string           { return f.Oneof }
func (f *Field) HasDefaultValue() bool             { return f.HasDefault }
func (f *Field) Default() protoreflect.Value       { return f.DefaultValue }
func (f *Field) PrimaryKey() bool                  { return f.IsPrimaryKey }
func (f *Field) AutoIncrement() bool               { return f.IsAutoIncrement }
func (f *Field) MessageType() MessageDescriptor    { return f.Message }
func (f *Field) EnumDescriptor() EnumDescriptor    { return f.Enum }

// Enum is a plain-data EnumDescriptor.
type Enum struct {
	Full string
}

func (e *Enum) FullName() string { return e.Full }

// Message is a plain-data MessageDescriptor.
type Message struct {
	Full        string
	FieldList   []FieldDescriptor
	ObjType     *ObjectType
	InPlaceFlag bool
}

func (m *Message) FullName() string { return m.Full }

func (m *Message) Fields() []FieldDescriptor { return m.FieldList }

func (m *Message) ObjectType() (ObjectType, bool) {
	if m.ObjType == nil {
		return ObjectType{}, false
	}
	return *m.ObjType, true
}

func (m *Message) InPlace() bool { return m.InPlaceFlag }

// StaticPool is an in-memory DescriptorPool keyed by fully qualified
// message name.
type StaticPool struct {
	messages map[string]MessageDescriptor
}

// NewStaticPool builds a StaticPool from the given messages, keyed by
// their FullName().
func NewStaticPool(messages ...MessageDescriptor) *StaticPool {
	p := &StaticPool{messages: make(map[string]MessageDescriptor, len(messages))}
	for _, m := range messages {
		p.messages[m.FullName()] = m
	}
	return p
}

// Register adds or replaces a message in the pool.
func (p *StaticPool) Register(m MessageDescriptor) {
	if p.messages == nil {
		p.messages = make(map[string]MessageDescriptor)
	}
	p.messages[m.FullName()] = m
}

func (p *StaticPool) FindMessageByName(name string) (MessageDescriptor, bool) {
	m, ok := p.messages[name]
	return m, ok
}
