package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	_, ok := s.Token()
	assert.False(t, ok)

	require.NoError(t, s.SetToken("abc123"))
	token, ok := s.Token()
	assert.True(t, ok)
	assert.Equal(t, "abc123", token)

	require.NoError(t, s.Clear())
	_, ok = s.Token()
	assert.False(t, ok)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "erpcli", "session.json")

	first := NewFileStore(path, zap.NewNop())
	require.NoError(t, first.SetToken("abc123"))
	assert.False(t, first.Degraded())

	second := NewFileStore(path, zap.NewNop())
	token, ok := second.Token()
	assert.True(t, ok)
	assert.Equal(t, "abc123", token)
}

func TestFileStore_EmptyReadsAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewFileStore(path, zap.NewNop())

	_, ok := s.Token()
	assert.False(t, ok)
}

func TestFileStore_CorruptFileReadsAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not-json"), 0o600))

	s := NewFileStore(path, zap.NewNop())

	_, ok := s.Token()
	assert.False(t, ok)
}

func TestFileStore_ClearIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewFileStore(path, zap.NewNop())

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())

	require.NoError(t, s.SetToken("abc123"))
	require.NoError(t, s.Clear())
	_, ok := s.Token()
	assert.False(t, ok)

	// The file must be gone so a fresh instance sees no session.
	fresh := NewFileStore(path, zap.NewNop())
	_, ok = fresh.Token()
	assert.False(t, ok)
}

func TestFileStore_SetOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewFileStore(path, zap.NewNop())

	require.NoError(t, s.SetToken("first"))
	require.NoError(t, s.SetToken("second"))

	token, ok := s.Token()
	assert.True(t, ok)
	assert.Equal(t, "second", token)
}

func TestFileStore_DegradedModeKeepsTokenInMemory(t *testing.T) {
	dir := t.TempDir()
	// A file where the parent directory should be makes MkdirAll fail.
	blocker := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	s := NewFileStore(filepath.Join(blocker, "session.json"), zap.NewNop())

	require.NoError(t, s.SetToken("abc123"))
	assert.True(t, s.Degraded())

	token, ok := s.Token()
	assert.True(t, ok)
	assert.Equal(t, "abc123", token)
}

func TestFileStore_FilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewFileStore(path, zap.NewNop())
	require.NoError(t, s.SetToken("abc123"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
