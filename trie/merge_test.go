package trie

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/binarymerkle/bmt/common"
)

func TestCreateTreeSingleRefReturnsItsLocationDirectly(t *testing.T) {
	e, _ := newTestEngine(t)
	ws := newWriteSet()

	loc := common.Digest{0x42}
	root, err := e.createTree(ws, []TreeRef{{Key: k("a"), Location: loc, Count: 1}})
	require.NoError(t, err)
	require.Equal(t, loc, root)
	require.Empty(t, ws.nodes)
}

func TestCreateTreeDuplicateKeyFails(t *testing.T) {
	e, _ := newTestEngine(t)
	ws := newWriteSet()

	refs := []TreeRef{
		{Key: k("same"), Location: common.Digest{0x01}, Count: 1},
		{Key: k("same"), Location: common.Digest{0x02}, Count: 1},
	}
	_, err := e.createTree(ws, refs)
	require.ErrorIs(t, err, ErrDuplicateKey)
}

func TestCreateTreeSumsLeafCounts(t *testing.T) {
	e, _ := newTestEngine(t)
	ws := newWriteSet()

	refs := []TreeRef{
		{Key: common.Key{0x00}, Location: common.Digest{0x01}, Count: 1},
		{Key: common.Key{0x40}, Location: common.Digest{0x02}, Count: 3},
		{Key: common.Key{0x41}, Location: common.Digest{0x03}, Count: 2},
	}
	root, err := e.createTree(ws, refs)
	require.NoError(t, err)

	n, ok := ws.nodes[root]
	require.True(t, ok)
	require.Equal(t, KindBranch, n.Node.Kind)
	require.EqualValues(t, 6, n.Node.Branch.Count)
}

func TestCreateTreeIsOrderInsensitiveOverSameKeySet(t *testing.T) {
	e, _ := newTestEngine(t)

	a := []TreeRef{
		{Key: common.Key{0x00}, Location: common.Digest{0x01}, Count: 1},
		{Key: common.Key{0x40}, Location: common.Digest{0x02}, Count: 1},
		{Key: common.Key{0x80}, Location: common.Digest{0x03}, Count: 1},
	}
	b := []TreeRef{a[2], a[0], a[1]}

	rootA, err := e.createTree(newWriteSet(), a)
	require.NoError(t, err)
	rootB, err := e.createTree(newWriteSet(), b)
	require.NoError(t, err)
	require.Equal(t, rootA, rootB)
}
