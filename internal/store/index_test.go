package store

import (
	"os"
	"testing"

	kerrors "github.com/heyvito/oxio/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAllWithoutIndex(t *testing.T) {
	s := newTestStore(t)

	items, err := s.LoadAll()
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestLoadAllLeavesValuesEmpty(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Create("g", "n", "secret")
	require.NoError(t, err)

	items, err := s.LoadAll()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Empty(t, items[0].Value)
	assert.NotEmpty(t, items[0].Filename)
}

func TestReindexIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	for _, kv := range [][3]string{{"a", "x", "1"}, {"b", "y", "2"}, {"c", "z", "3"}} {
		_, err := s.Create(kv[0], kv[1], kv[2])
		require.NoError(t, err)
	}

	n, err := s.Reindex()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	first, err := os.ReadFile(s.IndexPath())
	require.NoError(t, err)

	n, err = s.Reindex()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	second, err := os.ReadFile(s.IndexPath())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestReindexSkipsReservedAndDirectories(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Create("g", "n", "v")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(s.Path(IgnoreFilename), []byte(".index\n"), 0o600))
	require.NoError(t, os.Mkdir(s.Path(".git"), 0o700))

	n, err := s.Reindex()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestLoadAllShortRecord(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.EnsureRoot())
	require.NoError(t, os.WriteFile(s.IndexPath(), []byte("g\x00n\x00"), 0o600))

	_, err := s.LoadAll()
	assert.ErrorIs(t, err, kerrors.ErrCorruptEntry)
}

func TestGroupAll(t *testing.T) {
	s := newTestStore(t)
	for _, kv := range [][3]string{{"work", "a", "1"}, {"Work", "b", "2"}, {"work", "c", "3"}} {
		_, err := s.Create(kv[0], kv[1], kv[2])
		require.NoError(t, err)
	}

	items, err := s.GroupAll("work")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestVerify(t *testing.T) {
	s := newTestStore(t)
	it, err := s.Create("g", "n", "v")
	require.NoError(t, err)

	report, err := s.Verify()
	require.NoError(t, err)
	assert.True(t, report.Fresh())

	require.NoError(t, os.Remove(s.Path(it.Filename)))
	require.NoError(t, os.WriteFile(s.Path("extra"), []byte("g\x00m\x00v\x00"), 0o600))

	report, err = s.Verify()
	require.NoError(t, err)
	assert.False(t, report.Fresh())
	assert.Equal(t, []string{it.Filename}, report.Stale)
	assert.Equal(t, []string{"extra"}, report.Missing)
}

func TestCheck(t *testing.T) {
	s := newTestStore(t)
	it, err := s.Create("home", "wifi", "hunter2")
	require.NoError(t, err)
	require.NoError(t, s.Check(it.Filename))

	require.NoError(t, os.Rename(s.Path(it.Filename), s.Path("renamed")))
	err = s.Check("renamed")
	require.Error(t, err)
	assert.Equal(t, kerrors.KindCorruptEntry, kerrors.KindOf(err))

	files, err := s.Files()
	require.NoError(t, err)
	assert.Equal(t, []string{"renamed"}, files)
}
