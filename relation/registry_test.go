package relation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/relormdb/relorm/idl"
	"github.com/relormdb/relorm/ormerr"
	"github.com/relormdb/relorm/relation"
)

func addressMessage() *idl.Message {
	return &idl.Message{
		Full: "test.Address",
		FieldList: []idl.FieldDescriptor{
			&idl.Field{FieldNumber: 1, FieldName: "city", FieldKind: protoreflect.StringKind},
			&idl.Field{FieldNumber: 2, FieldName: "zip", FieldKind: protoreflect.StringKind},
		},
	}
}

func personMessage(addr *idl.Message) *idl.Message {
	return &idl.Message{
		Full: "test.Person",
		FieldList: []idl.FieldDescriptor{
			&idl.Field{FieldNumber: 1, FieldName: "id", FieldKind: protoreflect.Int32Kind, IsPrimaryKey: true},
			&idl.Field{FieldNumber: 2, FieldName: "name", FieldKind: protoreflect.StringKind},
			&idl.Field{FieldNumber: 3, FieldName: "home", FieldKind: protoreflect.MessageKind, Message: addr},
			&idl.Field{FieldNumber: 4, FieldName: "tags", FieldKind: protoreflect.StringKind, Repeated: true},
		},
	}
}

func newRegistryWithPerson(t *testing.T) (*relation.Registry, relation.Path) {
	t.Helper()
	addr := addressMessage()
	person := personMessage(addr)
	pool := idl.NewStaticPool(person, addr)
	reg := relation.NewRegistry(pool)
	require.NoError(t, reg.RegisterRoot(relation.TableConfig{TableNumber: 7, SnakeCase: "person", Scheme: "test.Person"}))
	return reg, relation.NewPathNumber(7)
}

func TestRegisterRootUnknownSchema(t *testing.T) {
	pool := idl.NewStaticPool()
	reg := relation.NewRegistry(pool)
	err := reg.RegisterRoot(relation.TableConfig{TableNumber: 1, SnakeCase: "x", Scheme: "nope"})
	require.Error(t, err)
	assert.Equal(t, ormerr.UnknownSchema, ormerr.KindOf(err))
}

func TestRegisterRootDuplicateTableNumber(t *testing.T) {
	reg, _ := newRegistryWithPerson(t)
	err := reg.RegisterRoot(relation.TableConfig{TableNumber: 7, SnakeCase: "other", Scheme: "test.Person"})
	require.Error(t, err)
	assert.Equal(t, ormerr.DuplicateRegistration, ormerr.KindOf(err))
}

func TestWalkRegistersPrimitiveAndMessageFields(t *testing.T) {
	reg, root := newRegistryWithPerson(t)

	idPath := root.JoinNumber(1)
	namePath := root.JoinNumber(2)
	homePath := root.JoinNumber(3)
	cityPath := root.JoinNumber(3).JoinNumber(1)

	idField, err := reg.GetPrimitiveField(idPath)
	require.NoError(t, err)
	assert.True(t, idField.IsPrimaryKey())

	_, err = reg.GetPrimitiveField(namePath)
	require.NoError(t, err)

	homeMsg, err := reg.GetMessage(homePath)
	require.NoError(t, err)
	assert.False(t, homeMsg.IsRoot())

	cityField, err := reg.GetPrimitiveField(cityPath)
	require.NoError(t, err)
	assert.Equal(t, "city", cityField.Name())
}

func TestGetParentTableAgreesForEveryPrimitivePath(t *testing.T) {
	reg, root := newRegistryWithPerson(t)
	tableInfo, err := reg.GetParentTable(root)
	require.NoError(t, err)

	for _, p := range tableInfo.RelatedFields {
		owner, err := reg.GetParentTable(p)
		require.NoError(t, err)
		assert.True(t, owner.Path.Equal(root))
	}
}

func TestRelatedFieldsExcludesRepeatedField(t *testing.T) {
	reg, root := newRegistryWithPerson(t)
	tableInfo, err := reg.GetParentTable(root)
	require.NoError(t, err)

	tagsPath := root.JoinNumber(4)
	for _, p := range tableInfo.RelatedFields {
		assert.False(t, p.Equal(tagsPath), "repeated field must not appear in RelatedFields")
	}
	// but the field itself is still path-resolvable.
	_, err = reg.GetPrimitiveField(tagsPath)
	require.NoError(t, err)
}

func TestRelatedFieldsIncludesNestedSingularMessageFields(t *testing.T) {
	reg, root := newRegistryWithPerson(t)
	tableInfo, err := reg.GetParentTable(root)
	require.NoError(t, err)

	cityPath := root.JoinNumber(3).JoinNumber(1)
	found := false
	for _, p := range tableInfo.RelatedFields {
		if p.Equal(cityPath) {
			found = true
		}
	}
	assert.True(t, found, "nested singular message field must flatten into RelatedFields")
}

func TestGetObjectTypePartitionsCorrectly(t *testing.T) {
	reg, root := newRegistryWithPerson(t)

	rootKind, err := reg.GetObjectType(root)
	require.NoError(t, err)
	assert.True(t, rootKind.Has(relation.RootMessage))

	homeKind, err := reg.GetObjectType(root.JoinNumber(3))
	require.NoError(t, err)
	assert.True(t, homeKind.Has(relation.FieldMessage))
	assert.False(t, homeKind.Has(relation.PrimitiveField))

	idKind, err := reg.GetObjectType(root.JoinNumber(1))
	require.NoError(t, err)
	assert.Equal(t, relation.PrimitiveField, idKind)
}

func TestGetMessagesFromSubtree(t *testing.T) {
	reg, root := newRegistryWithPerson(t)
	msgs, err := reg.GetMessagesFromSubtree(root)
	require.NoError(t, err)

	// root + home sub-message == 2 message nodes.
	assert.Len(t, msgs, 2)
}

func TestClearDropsAllState(t *testing.T) {
	reg, root := newRegistryWithPerson(t)
	reg.Clear()

	_, err := reg.GetRootMessage(root)
	require.Error(t, err)
	assert.Equal(t, ormerr.UnknownPath, ormerr.KindOf(err))
}
