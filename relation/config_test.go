package relation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relormdb/relorm/idl"
	"github.com/relormdb/relorm/relation"
)

func TestRegisterRootDerivesCamelCaseFromSnakeCase(t *testing.T) {
	pool := idl.NewStaticPool(&idl.Message{Full: "test.SimpleMessage"})
	reg := relation.NewRegistry(pool)

	err := reg.RegisterRoot(relation.TableConfig{TableNumber: 1, SnakeCase: "simple_message", Scheme: "test.SimpleMessage"})
	require.NoError(t, err)

	root, err := reg.GetRootMessage(relation.NewPathNumber(1))
	require.NoError(t, err)
	assert.Equal(t, "SimpleMessage", root.Table().CamelCase)
}

func TestRegisterRootDerivesSnakeCaseFromCamelCase(t *testing.T) {
	pool := idl.NewStaticPool(&idl.Message{Full: "test.SimpleMessage"})
	reg := relation.NewRegistry(pool)

	err := reg.RegisterRoot(relation.TableConfig{TableNumber: 1, CamelCase: "SimpleMessage", Scheme: "test.SimpleMessage"})
	require.NoError(t, err)

	_, err = reg.ResolveNameToTable("simple_message")
	assert.NoError(t, err)
}

func TestRegisterRootFailsWithNeitherName(t *testing.T) {
	pool := idl.NewStaticPool(&idl.Message{Full: "test.SimpleMessage"})
	reg := relation.NewRegistry(pool)

	err := reg.RegisterRoot(relation.TableConfig{TableNumber: 1, Scheme: "test.SimpleMessage"})
	require.Error(t, err)
}

func TestRegisterRootFailsOnUnknownScheme(t *testing.T) {
	pool := idl.NewStaticPool()
	reg := relation.NewRegistry(pool)

	err := reg.RegisterRoot(relation.TableConfig{TableNumber: 1, SnakeCase: "ghost", Scheme: "test.DoesNotExist"})
	require.Error(t, err)
}

func TestRegisterRootFailsOnDuplicateTableNumber(t *testing.T) {
	pool := idl.NewStaticPool(
		&idl.Message{Full: "test.A"},
		&idl.Message{Full: "test.B"},
	)
	reg := relation.NewRegistry(pool)

	require.NoError(t, reg.RegisterRoot(relation.TableConfig{TableNumber: 1, SnakeCase: "a", Scheme: "test.A"}))
	err := reg.RegisterRoot(relation.TableConfig{TableNumber: 1, SnakeCase: "b", Scheme: "test.B"})
	require.Error(t, err)
}

func TestRegisterRootFailsOnDuplicateSnakeCase(t *testing.T) {
	pool := idl.NewStaticPool(
		&idl.Message{Full: "test.A"},
		&idl.Message{Full: "test.B"},
	)
	reg := relation.NewRegistry(pool)

	require.NoError(t, reg.RegisterRoot(relation.TableConfig{TableNumber: 1, SnakeCase: "shared", Scheme: "test.A"}))
	err := reg.RegisterRoot(relation.TableConfig{TableNumber: 2, SnakeCase: "shared", Scheme: "test.B"})
	require.Error(t, err)
}
