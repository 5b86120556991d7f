package trie

import (
	"sort"

	"github.com/binarymerkle/bmt/common"
)

// createTree builds the minimal branch tree over a set of distinct-keyed
// TreeRefs (spec section 4.4, Phase C). It repeatedly merges the pair of
// adjacent refs with the deepest divergence bit first — the pair least
// likely to still diverge from a third key — so every Branch.SplitIndex
// ends up strictly less than its descendants' (spec section 3's ordering
// invariant). Grounded in original_source's create_tree
// (merkle_bit.rs:642), adapted from its deque-plus-index-list bookkeeping
// to direct slice splicing, since Go has no equivalent of Rust's in-place
// VecDeque::remove/insert at arbitrary positions.
func (e *Engine[V]) createTree(ws *writeSet, refs []TreeRef) (common.Digest, error) {
	sort.Sort(byKey(refs))

	if len(refs) == 1 {
		return refs[0].Location, nil
	}

	// splits[i] is the divergence bit between refs[i] and refs[i+1]. This
	// mirrors the original's invariant that, for three sorted keys A<B<C,
	// divergence(A,C) == min(divergence(A,B), divergence(B,C)): since we
	// always merge the globally-largest entry first, the surviving
	// neighbor on either side of a merge is guaranteed to already hold the
	// correct (smaller-or-equal) divergence value, so no entry but the
	// merged-away one ever needs recomputing.
	splits := make([]int, len(refs)-1)
	for i := 0; i < len(refs)-1; i++ {
		if refs[i].Key.Equal(refs[i+1].Key) {
			return common.Digest{}, ErrDuplicateKey
		}
		splits[i] = commonPrefixBits(refs[i].Key, refs[i+1].Key)
	}

	for len(refs) > 1 {
		maxIdx := 0
		for i := 1; i < len(splits); i++ {
			if splits[i] > splits[maxIdx] {
				maxIdx = i
			}
		}

		left, right := refs[maxIdx], refs[maxIdx+1]
		count := left.Count + right.Count
		loc := locationOfBranch(e.hashers, left.Location, right.Location)
		ws.write(loc, StoredNode{
			References: 1,
			Node: Node{
				Kind: KindBranch,
				Branch: Branch{
					Count:      count,
					Zero:       left.Location,
					One:        right.Location,
					SplitIndex: uint32(splits[maxIdx]),
					Key:        left.Key,
				},
			},
		})

		merged := TreeRef{Key: left.Key, Location: loc, Count: count}

		newRefs := make([]TreeRef, 0, len(refs)-1)
		newRefs = append(newRefs, refs[:maxIdx]...)
		newRefs = append(newRefs, merged)
		newRefs = append(newRefs, refs[maxIdx+2:]...)
		refs = newRefs

		newSplits := make([]int, 0, len(splits)-1)
		newSplits = append(newSplits, splits[:maxIdx]...)
		newSplits = append(newSplits, splits[maxIdx+1:]...)
		splits = newSplits
	}

	return refs[0].Location, nil
}
