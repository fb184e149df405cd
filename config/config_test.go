package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relormdb/relorm/config"
	"github.com/relormdb/relorm/idl"
	"github.com/relormdb/relorm/relation"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "orm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoaderLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
tables:
  - table_number: 1
    snake_case: simple_message
    scheme: test.SimpleMessage
`)

	l := config.NewLoader(path)
	f, err := l.Load()
	require.NoError(t, err)
	require.Len(t, f.Tables, 1)
	assert.Equal(t, uint32(1), f.Tables[0].TableNumber)
	assert.Equal(t, "simple_message", f.Tables[0].SnakeCase)
	assert.Equal(t, "test.SimpleMessage", f.Tables[0].Scheme)
}

func TestLoaderPopulateRegistersEveryTable(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
tables:
  - table_number: 1
    snake_case: simple_message
    scheme: test.SimpleMessage
`)

	pool := idl.NewStaticPool(&idl.Message{Full: "test.SimpleMessage"})
	reg := relation.NewRegistry(pool)

	l := config.NewLoader(path)
	require.NoError(t, l.Populate(reg))

	_, err := reg.GetRootMessage(relation.NewPathNumber(1))
	require.NoError(t, err)
}

func TestLoaderPopulateFailsOnUnknownScheme(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
tables:
  - table_number: 1
    snake_case: ghost
    scheme: test.DoesNotExist
`)

	pool := idl.NewStaticPool()
	reg := relation.NewRegistry(pool)

	l := config.NewLoader(path)
	err := l.Populate(reg)
	require.Error(t, err)
}

func TestLoaderLoadFailsOnMissingFile(t *testing.T) {
	l := config.NewLoader(filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := l.Load()
	require.Error(t, err)
}
