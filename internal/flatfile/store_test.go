package flatfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadAllPreservesTrailingEmptyFields(t *testing.T) {
	store := NewStore()
	path := writeTemp(t, "id,status,notes\nA0001,Pending,")

	rows, err := store.ReadAll(path)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"A0001", "Pending", ""}, rows[1])
}

func TestReadAllEmptyFile(t *testing.T) {
	store := NewStore()
	path := writeTemp(t, "")

	rows, err := store.ReadAll(path)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadAllMissingFile(t *testing.T) {
	store := NewStore()

	_, err := store.ReadAll(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAppendRowSeparatesLines(t *testing.T) {
	store := NewStore()
	path := writeTemp(t, "id,name")

	require.NoError(t, store.AppendRow(path, []string{"A0001", "Smith"}))
	require.NoError(t, store.AppendRow(path, []string{"A0002", "Jones"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,name\nA0001,Smith\nA0002,Jones", string(data))
}

func TestAppendRowToEmptyFileWritesNoLeadingNewline(t *testing.T) {
	store := NewStore()
	path := writeTemp(t, "")

	require.NoError(t, store.AppendRow(path, []string{"id", "name"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,name", string(data))
}

func TestWriteAllReplacesContent(t *testing.T) {
	store := NewStore()
	path := writeTemp(t, "id,name\nA0001,Smith\nA0002,Jones\nA0003,Brown")

	rows := [][]string{
		{"id", "name"},
		{"A0001", "Smith"},
	}
	require.NoError(t, store.WriteAll(path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,name\nA0001,Smith", string(data))
}

func TestWriteAllThenReadAllRoundTrips(t *testing.T) {
	store := NewStore()
	path := writeTemp(t, "")

	rows := [][]string{
		{"id", "status", "notes"},
		{"A0001", "Scheduled", ""},
		{"A0002", "Cancelled", "no show"},
	}
	require.NoError(t, store.WriteAll(path, rows))

	got, err := store.ReadAll(path)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestEnsureFileCreatesHeaderOnce(t *testing.T) {
	store := NewStore()
	path := filepath.Join(t.TempDir(), "patients.csv")

	require.NoError(t, store.EnsureFile(path, []string{"id", "name"}))
	require.NoError(t, store.AppendRow(path, []string{"A0001", "Smith"}))

	// Second call must not truncate existing records.
	require.NoError(t, store.EnsureFile(path, []string{"id", "name"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,name\nA0001,Smith", string(data))
}
