package trie

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/binarymerkle/bmt/common"
)

func TestProofKeyAtResolvesLeafDirectly(t *testing.T) {
	e, _ := newTestEngine(t)
	ws := newWriteSet()

	leafLoc := common.Digest{0x01}
	ws.write(leafLoc, StoredNode{References: 1, Node: Node{Kind: KindLeaf, Leaf: Leaf{Key: k("alpha"), Data: common.Digest{0x02}}}})

	key, err := e.proofKeyAt(ws, leafLoc)
	require.NoError(t, err)
	require.Equal(t, k("alpha"), key)
}

func TestProofKeyAtFollowsBranchZeroChildWhenKeyMissing(t *testing.T) {
	e, _ := newTestEngine(t)
	ws := newWriteSet()

	leafLoc := common.Digest{0x01}
	ws.write(leafLoc, StoredNode{References: 1, Node: Node{Kind: KindLeaf, Leaf: Leaf{Key: k("zero-side"), Data: common.Digest{0x03}}}})

	branchLoc := common.Digest{0x09}
	ws.write(branchLoc, StoredNode{References: 1, Node: Node{Kind: KindBranch, Branch: Branch{
		Count: 2, Zero: leafLoc, One: common.Digest{0x04}, SplitIndex: 3,
	}}})

	key, err := e.proofKeyAt(ws, branchLoc)
	require.NoError(t, err)
	require.Equal(t, k("zero-side"), key)
}

func TestBranchKeyPrefersStoredKeyOverFallback(t *testing.T) {
	e, _ := newTestEngine(t)

	b := Branch{Count: 1, Zero: common.Digest{0x01}, One: common.Digest{0x02}, SplitIndex: 1, Key: k("stored")}
	key, err := e.branchKey(nil, b)
	require.NoError(t, err)
	require.Equal(t, k("stored"), key)
}

func TestSubtreeCountLeafIsOne(t *testing.T) {
	n := StoredNode{References: 1, Node: Node{Kind: KindLeaf, Leaf: Leaf{Key: k("a"), Data: common.Digest{0x01}}}}
	count, err := subtreeCount(n)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestSubtreeCountBranchUsesStoredCount(t *testing.T) {
	n := StoredNode{References: 1, Node: Node{Kind: KindBranch, Branch: Branch{Count: 5}}}
	count, err := subtreeCount(n)
	require.NoError(t, err)
	require.EqualValues(t, 5, count)
}
