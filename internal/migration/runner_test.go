package migration

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct{ err error }

func (f fakeMigrator) Migrate() error { return f.err }

func TestSQLFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_b.sql", "001_a.sql", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o755))

	files, err := SQLFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_a.sql", "002_b.sql"}, files)
}

func TestSQLFiles_MissingDir(t *testing.T) {
	files, err := SQLFiles(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestRunMigrations_AutoMigrateFailure(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	runner := NewRunner(fakeMigrator{err: errors.New("boom")}, nil, logger)
	err := runner.RunMigrations(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRunMigrations_NoSQLFiles(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	runner := NewRunner(fakeMigrator{}, nil, logger)
	assert.NoError(t, runner.RunMigrations(filepath.Join(t.TempDir(), "missing")))
}
