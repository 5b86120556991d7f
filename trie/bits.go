package trie

import "github.com/binarymerkle/bmt/common"

// deBruijnBitPosition is the 8-entry De Bruijn lookup table used by
// fastLog2 (spec section 4.5), carried over from
// original_source/src/utils/tree_utils.rs::fast_log_2.
var deBruijnBitPosition = [8]byte{0, 5, 1, 6, 4, 3, 2, 7}

// fastLog2 computes floor(log2(n)) for a non-zero byte via a 3-step bit
// smear and a De Bruijn lookup. The result for n=0 is defined as 0, matching
// the table's behavior under the smear (0 smears to 0, table[0] = 0), even
// though floor(log2(0)) is undefined; callers here never pass 0 (the xor of
// two distinct bytes is always non-zero).
func fastLog2(n byte) byte {
	v := n
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	idx := byte(0x1d*uint16(v)) >> 5
	return deBruijnBitPosition[idx]
}

// commonPrefixBits returns the number of leading bits on which a and b
// agree, i.e. the bit index of their first divergence (or len(a)*8 if they
// are identical). a and b must be the same length.
func commonPrefixBits(a, b common.Key) int {
	n := len(a)
	for i := 0; i < n; i++ {
		if a[i] == b[i] {
			continue
		}
		xor := a[i] ^ b[i]
		return i*8 + (7 - int(fastLog2(xor)))
	}
	return n * 8
}

// splitPairs partitions a sorted slice of keys into those with bit(bit)==0
// ("zeros") and bit(bit)==1 ("ones") via a binary search over the already
// sorted slice (spec section 4.3): both results are contiguous subslices of
// sorted, shared with it rather than copied.
func splitPairs(sorted []common.Key, bit int) (zeros, ones []common.Key) {
	if len(sorted) == 0 {
		return sorted, sorted
	}
	if sorted[len(sorted)-1].Bit(bit) == 0 {
		return sorted, sorted[len(sorted):]
	}
	if sorted[0].Bit(bit) == 1 {
		return sorted[:0], sorted
	}

	min, max := 0, len(sorted)
	for max-min > 1 {
		mid := (max-min)/2 + min
		if sorted[mid].Bit(bit) == 0 {
			min = mid
		} else {
			max = mid
		}
	}
	return sorted[:max], sorted[max:]
}

// calcMinSplitIndex returns the smallest bit index at which any pair drawn
// from {branchKey} union keys diverges (spec section 4.5). Since keys is
// always a sorted (sub)slice in this engine, the extremes are its first and
// last elements; unioning in branchKey only ever widens the range to one of
// its ends.
func calcMinSplitIndex(keys []common.Key, branchKey common.Key) int {
	minKey, maxKey := keys[0], keys[len(keys)-1]
	if branchKey.Compare(minKey) < 0 {
		minKey = branchKey
	} else if branchKey.Compare(maxKey) > 0 {
		maxKey = branchKey
	}
	return commonPrefixBits(minKey, maxKey)
}

// checkDescendants returns the contiguous subslice of keys that are
// descendants of a branch with the given split index and representative
// key: those that agree with branchKey on every bit in [0, branchSplitIndex)
// (spec section 4.5). Monotonicity of sorted order over a common-prefix
// predicate guarantees the result is contiguous.
func checkDescendants(keys []common.Key, branchSplitIndex int, branchKey common.Key) []common.Key {
	start, end := 0, 0
	foundStart := false
	for i, key := range keys {
		descendant := commonPrefixBits(key, branchKey) >= branchSplitIndex
		if descendant && !foundStart {
			start = i
			foundStart = true
		}
		if !descendant && foundStart {
			end = i
			break
		}
		if descendant && i == len(keys)-1 && foundStart {
			end = i + 1
			break
		}
	}
	if !foundStart {
		return keys[:0]
	}
	return keys[start:end]
}
