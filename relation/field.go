package relation

import "github.com/relormdb/relorm/idl"

// PrimitiveFieldInfo is the registry's record of one leaf field: its
// number, symbolic name, full path, IDL field descriptor, and decoded
// type metadata. It is owned by the Registry and never mutated after
// construction, §3.
type PrimitiveFieldInfo struct {
	path       Path
	descriptor idl.FieldDescriptor
	typeInfo   TypeInfo
	primaryKey bool
}

// Path returns the field's full path.
func (f *PrimitiveFieldInfo) Path() Path { return f.path }

// Number returns the field's IDL field number.
func (f *PrimitiveFieldInfo) Number() int32 { return f.descriptor.Number() }

// Name returns the field's symbolic name.
func (f *PrimitiveFieldInfo) Name() string { return f.descriptor.Name() }

// TypeInfo returns the field's decoded value-type descriptor.
func (f *PrimitiveFieldInfo) TypeInfo() TypeInfo { return f.typeInfo }

// IsRequired reports whether the field must be supplied: it has no
// "optional" marker, no default value, and is not part of a oneof.
func (f *PrimitiveFieldInfo) IsRequired() bool {
	if f.descriptor.IsOptional() || f.descriptor.HasDefaultValue() {
		return false
	}
	if f.descriptor.ContainingOneof() != "" {
		return false
	}
	return true
}

// IsPrimaryKey reports the `primary_key` custom option.
func (f *PrimitiveFieldInfo) IsPrimaryKey() bool { return f.primaryKey }

// HasDefaultValue reports whether the field carries a default (for
// auto-increment integer kinds this is false: the SERIAL/BIGSERIAL type
// supplies its own implicit default).
func (f *PrimitiveFieldInfo) HasDefaultValue() bool {
	_, ok := f.typeInfo.DefaultLiteral()
	return ok && f.descriptor.HasDefaultValue()
}

// DefaultLiteral renders the field's default value as a SQL literal.
func (f *PrimitiveFieldInfo) DefaultLiteral() (string, bool) { return f.typeInfo.DefaultLiteral() }

// Descriptor returns the underlying IDL field descriptor.
func (f *PrimitiveFieldInfo) Descriptor() idl.FieldDescriptor { return f.descriptor }
