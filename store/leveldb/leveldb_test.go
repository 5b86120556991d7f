package leveldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/binarymerkle/bmt/common"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db"), Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutFlushGet(t *testing.T) {
	s := openTemp(t)
	d := common.Digest{0x01}

	require.NoError(t, s.Put(d, []byte("value")))
	require.NoError(t, s.Flush())

	got, ok, err := s.Get(d)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("value"), got)
}

func TestGetBeforeFlushServesFromCache(t *testing.T) {
	s := openTemp(t)
	d := common.Digest{0x02}

	require.NoError(t, s.Put(d, []byte("buffered")))

	got, ok, err := s.Get(d)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("buffered"), got)
}

func TestDeleteRemovesFromCacheAndDisk(t *testing.T) {
	s := openTemp(t)
	d := common.Digest{0x03}

	require.NoError(t, s.Put(d, []byte("gone-soon")))
	require.NoError(t, s.Flush())
	require.NoError(t, s.Delete(d))

	_, ok, err := s.Get(d)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestGetAbsentIsNotAnError(t *testing.T) {
	s := openTemp(t)
	_, ok, err := s.Get(common.Digest{0xFF})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestReopenSeesFlushedData(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")
	s, err := Open(dir, Options{})
	require.NoError(t, err)

	d := common.Digest{0x04}
	require.NoError(t, s.Put(d, []byte("persisted")))
	require.NoError(t, s.Flush())
	require.NoError(t, s.Close())

	reopened, err := Open(dir, Options{})
	require.NoError(t, err)
	defer reopened.Close()

	got, ok, err := reopened.Get(d)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("persisted"), got)
}
