package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDemoConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ormcli.yaml")
	body := `
tables:
  - table_number: 1
    snake_case: simple_message
    scheme: demo.SimpleMessage
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDDLCommandPrintsCreateTable(t *testing.T) {
	path := writeDemoConfig(t)

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"ddl", "--config", path, "--table", "1"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "CREATE TABLE t_1 (f_1 INTEGER PRIMARY KEY, f_2 TEXT NOT NULL, f_3 BOOLEAN DEFAULT TRUE)\n", out.String())
}

func TestQueryCommandPrintsSelect(t *testing.T) {
	path := writeDemoConfig(t)

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"query", "--config", path, "--table", "1", "--min-id", "10"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "SELECT t_1.f_1, t_1.f_2 FROM t_1 WHERE (t_1.f_1 > 10)\n", out.String())
}
