package memory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/binarymerkle/bmt/common"
)

func TestGetAbsentIsNotAnError(t *testing.T) {
	s := New()
	_, ok, err := s.Get(common.Digest{0x01})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPutThenGet(t *testing.T) {
	s := New()
	d := common.Digest{0xAA}
	require.NoError(t, s.Put(d, []byte("payload")))
	require.NoError(t, s.Flush())

	got, ok, err := s.Get(d)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("payload"), got)
}

func TestDeleteIsImmediate(t *testing.T) {
	s := New()
	d := common.Digest{0xBB}
	require.NoError(t, s.Put(d, []byte("x")))
	require.NoError(t, s.Delete(d))

	_, ok, err := s.Get(d)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 0, s.Len())
}

func TestStoredBytesAreCopied(t *testing.T) {
	s := New()
	d := common.Digest{0xCC}
	buf := []byte("mutable")
	require.NoError(t, s.Put(d, buf))
	buf[0] = 'X'

	got, _, err := s.Get(d)
	require.NoError(t, err)
	require.Equal(t, []byte("mutable"), got)
}
