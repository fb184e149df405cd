package main

import (
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/relormdb/relorm/idl"
)

// demoMessage is the "simple_message" schema from spec.md's §8 seed
// scenario: an int32 primary key, a required string, and a bool with
// a default — the same shape the CORE's own tests build by hand.
var demoMessage = &idl.Message{
	Full: "demo.SimpleMessage",
	FieldList: []idl.FieldDescriptor{
		&idl.Field{FieldNumber: 1, FieldName: "id", FieldKind: protoreflect.Int32Kind, IsPrimaryKey: true},
		&idl.Field{FieldNumber: 2, FieldName: "name", FieldKind: protoreflect.StringKind},
		&idl.Field{FieldNumber: 3, FieldName: "active", FieldKind: protoreflect.BoolKind,
			HasDefault: true, DefaultValue: protoreflect.ValueOfBool(true)},
	},
}
