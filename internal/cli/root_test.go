package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)
}

func TestMigrateSQLite(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DATABASE_URL", filepath.Join(dir, "todo.db"))

	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "migrated sqlite database")
	assert.FileExists(t, filepath.Join(dir, "todo.db"))
}

func TestMigrateRejectsBadConfig(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_DRIVER", "mssql")

	_, err := run(t, "migrate")
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestUnknownCommand(t *testing.T) {
	_, err := run(t, "frobnicate")
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
