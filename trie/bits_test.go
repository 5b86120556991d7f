package trie

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/binarymerkle/bmt/common"
)

func TestFastLog2IsMonotone(t *testing.T) {
	want := []byte{0, 0, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3, 3, 3, 3, 3}
	for n := 1; n < len(want); n++ {
		require.Equalf(t, want[n], fastLog2(byte(n)), "fastLog2(%d)", n)
	}
	require.Equal(t, byte(7), fastLog2(0xFF))
}

func TestCommonPrefixBitsIdentical(t *testing.T) {
	a := common.Key{0xAA, 0xBB}
	require.Equal(t, 16, commonPrefixBits(a, a))
}

func TestCommonPrefixBitsDivergesAtByte0Bit0(t *testing.T) {
	a := common.Key{0x00}
	b := common.Key{0x80}
	require.Equal(t, 0, commonPrefixBits(a, b))
}

func TestSplitPairsIsContiguousOverSortedSlice(t *testing.T) {
	sorted := []common.Key{{0x00}, {0x40}, {0x7F}, {0x80}, {0xC0}}
	zeros, ones := splitPairs(sorted, 0)
	require.Equal(t, sorted[:3], zeros)
	require.Equal(t, sorted[3:], ones)
}

func TestSplitPairsAllZeros(t *testing.T) {
	sorted := []common.Key{{0x00}, {0x10}}
	zeros, ones := splitPairs(sorted, 0)
	require.Equal(t, sorted, zeros)
	require.Empty(t, ones)
}

func TestCheckDescendantsFiltersNonDescendants(t *testing.T) {
	branchKey := common.Key{0x40}
	keys := []common.Key{{0x00}, {0x41}, {0x42}, {0xFF}}
	descendants := checkDescendants(keys, 2, branchKey)
	require.Equal(t, []common.Key{{0x41}, {0x42}}, descendants)
}

func TestCalcMinSplitIndex(t *testing.T) {
	branchKey := common.Key{0x40}
	keys := []common.Key{{0x41}, {0x42}}
	require.Equal(t, 6, calcMinSplitIndex(keys, branchKey))
}
