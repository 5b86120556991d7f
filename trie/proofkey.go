package trie

import (
	"fmt"

	"github.com/binarymerkle/bmt/common"
)

// branchKey returns a branch's representative key, falling back to
// proofKeyAt when the branch carries no stored key. The engine always
// populates Branch.Key during createTree, so the fallback only matters if a
// caller constructs nodes by hand; it is kept because spec section 9 leaves
// open whether the "branch.key lies in the subtree" invariant is enforced,
// and this preserves the lax original_source stance rather than tightening
// it (see DESIGN.md).
func (e *Engine[V]) branchKey(ws *writeSet, b Branch) (common.Key, error) {
	if len(b.Key) > 0 {
		return b.Key, nil
	}
	return e.proofKeyAt(ws, b.Zero)
}

// proofKeyAt returns the representative key of the subtree rooted at loc
// (spec section 4.6): a Branch's own key if it has one, else the zero
// child's key; a Leaf's key directly. Bounded by maxDepth as a tripwire
// against a pathological hasher producing cyclic paths (spec section 4.6,
// 4.8; original_source's get_proof_key comment).
func (e *Engine[V]) proofKeyAt(ws *writeSet, loc common.Digest) (common.Key, error) {
	current := loc
	for depth := 0; ; depth++ {
		if depth > e.maxDepth {
			return nil, ErrDepthExceeded
		}
		n, ok, err := e.readNode(ws, current)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: missing node at %s resolving proof key", ErrCorruptNode, current)
		}
		switch n.Node.Kind {
		case KindBranch:
			if len(n.Node.Branch.Key) > 0 {
				return n.Node.Branch.Key, nil
			}
			current = n.Node.Branch.Zero
		case KindLeaf:
			return n.Node.Leaf.Key, nil
		default:
			return nil, ErrCorruptNode
		}
	}
}

// subtreeCount returns how many leaves live under a stored node: a branch's
// own Count, or 1 for a leaf (spec section 3: "count = number of leaves in
// this subtree").
func subtreeCount(n StoredNode) (uint64, error) {
	switch n.Node.Kind {
	case KindBranch:
		return n.Node.Branch.Count, nil
	case KindLeaf:
		return 1, nil
	default:
		return 0, ErrCorruptNode
	}
}
