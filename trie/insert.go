package trie

import (
	"fmt"
	"sort"

	"github.com/binarymerkle/bmt/common"
)

// Insert builds a new root from keys/values layered on top of previous
// (spec section 4.4). previous == nil builds a tree from scratch; otherwise
// unchanged subtrees of the previous root are reused by reference. All
// writes this call produces are committed atomically on success; on any
// error, nothing is written (spec section 7: "the in-flight root is never
// returned; any buffered writes are discarded").
func (e *Engine[V]) Insert(previous *common.Digest, keys []common.Key, values []V) (common.Digest, error) {
	if len(keys) != len(values) {
		return common.Digest{}, ErrKeyValueLengthMismatch
	}
	if len(keys) == 0 {
		return common.Digest{}, ErrEmptyInput
	}
	for _, k := range keys {
		if len(k) == 0 {
			return common.Digest{}, ErrZeroLengthKey
		}
	}

	sortedKeys, sortedValues := sortKeysValues(keys, values)

	ws := newWriteSet()

	refs, err := e.materializeLeaves(ws, sortedKeys, sortedValues)
	if err != nil {
		return common.Digest{}, err
	}

	if previous != nil {
		proofRefs, err := e.collectProofRefs(ws, *previous, sortedKeys, refs)
		if err != nil {
			return common.Digest{}, err
		}
		refs = append(refs, proofRefs...)
	}

	root, err := e.createTree(ws, refs)
	if err != nil {
		return common.Digest{}, err
	}

	if err := e.commit(ws); err != nil {
		return common.Digest{}, err
	}
	return root, nil
}

// sortKeysValues returns copies of keys/values sorted ascending by key,
// without mutating the caller's slices (spec section 4.4: "keys are sorted
// and deduplicated" — dedup itself happens later, in createTree's adjacent
// scan, which is the only place that can detect a true duplicate versus two
// equal-looking but freshly-encoded entries).
func sortKeysValues[V any](keys []common.Key, values []V) ([]common.Key, []V) {
	idx := make([]int, len(keys))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool {
		return keys[idx[i]].Compare(keys[idx[j]]) < 0
	})
	sortedKeys := make([]common.Key, len(keys))
	sortedValues := make([]V, len(values))
	for i, j := range idx {
		sortedKeys[i] = keys[j]
		sortedValues[i] = values[j]
	}
	return sortedKeys, sortedValues
}

// materializeLeaves is Phase A of Insert (spec section 4.4): encode every
// value, write its Data and Leaf nodes (bumping an existing reference count
// rather than duplicating), and return one TreeRef per key.
func (e *Engine[V]) materializeLeaves(ws *writeSet, keys []common.Key, values []V) ([]TreeRef, error) {
	refs := make([]TreeRef, len(keys))
	for i, k := range keys {
		encoded, err := e.codec.Encode(values[i])
		if err != nil {
			return nil, &CodecError{Err: err}
		}

		dataLoc := locationOfData(e.hashers, k, encoded)
		dataRefs := uint64(1)
		if existing, ok, err := e.readNode(ws, dataLoc); err != nil {
			return nil, err
		} else if ok {
			dataRefs = existing.References + 1
		}
		ws.write(dataLoc, StoredNode{References: dataRefs, Node: Node{Kind: KindData, Data: Data{Value: encoded}}})

		leafLoc := locationOfLeaf(e.hashers, k, dataLoc)
		leafRefs := uint64(1)
		if existing, ok, err := e.readNode(ws, leafLoc); err != nil {
			return nil, err
		} else if ok {
			leafRefs = existing.References + 1
		}
		ws.write(leafLoc, StoredNode{References: leafRefs, Node: Node{Kind: KindLeaf, Leaf: Leaf{Key: k, Data: dataLoc}}})

		refs[i] = TreeRef{Key: k, Location: leafLoc, Count: 1}
	}
	return refs, nil
}

// collectProofRefs is Phase B of Insert (spec section 4.4): walk the
// previous trie with the same stack-driven traversal as Get, and for every
// subtree the incoming batch does not touch, bump its reference count and
// emit a TreeRef standing in for the whole subtree. Grounded in
// original_source's insert (merkle_bit.rs:337-538).
func (e *Engine[V]) collectProofRefs(ws *writeSet, previousRoot common.Digest, keys []common.Key, newRefs []TreeRef) ([]TreeRef, error) {
	rootNode, ok, err := e.readNode(ws, previousRoot)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRootNotFound
	}

	newByKey := make(map[string]TreeRef, len(newRefs))
	for _, r := range newRefs {
		newByKey[string(r.Key)] = r
	}

	var proofRefs []TreeRef
	stack := []treeCell{{keys: keys, node: &rootNode, depth: 0}}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if c.depth > e.maxDepth {
			return nil, ErrDepthExceeded
		}
		if c.node == nil || len(c.keys) == 0 {
			continue
		}

		switch c.node.Node.Kind {
		case KindBranch:
			b := c.node.Node.Branch
			branchKey, err := e.branchKey(ws, b)
			if err != nil {
				return nil, err
			}
			branchLoc := locationOfBranch(e.hashers, b.Zero, b.One)

			descendants := c.keys
			if calcMinSplitIndex(c.keys, branchKey) < int(b.SplitIndex) {
				descendants = checkDescendants(c.keys, int(b.SplitIndex), branchKey)
			}
			if len(descendants) == 0 {
				if err := e.bumpReferences(ws, branchLoc); err != nil {
					return nil, err
				}
				proofRefs = append(proofRefs, TreeRef{Key: branchKey, Location: branchLoc, Count: b.Count})
				continue
			}

			zeros, ones := splitPairs(descendants, int(b.SplitIndex))

			ref, cell, err := e.branchSide(ws, b.One, ones, c.depth)
			if err != nil {
				return nil, err
			}
			if cell != nil {
				stack = append(stack, *cell)
			} else {
				proofRefs = append(proofRefs, ref)
			}

			ref, cell, err = e.branchSide(ws, b.Zero, zeros, c.depth)
			if err != nil {
				return nil, err
			}
			if cell != nil {
				stack = append(stack, *cell)
			} else {
				proofRefs = append(proofRefs, ref)
			}

		case KindLeaf:
			l := c.node.Node.Leaf
			leafLoc := locationOfLeaf(e.hashers, l.Key, l.Data)

			if newer, ok := newByKey[string(l.Key)]; ok {
				// Same key reappears in the incoming batch. If it is the
				// very same (key, value) — location matches — Phase A
				// already bumped this leaf's reference count once; that
				// single bump is the whole story (spec section 4.4, Phase
				// B: "treat as an in-place update ... the new leaf
				// dominates"). If the value differs, the old leaf is being
				// replaced outright and contributes nothing.
				_ = newer
				continue
			}

			if err := e.bumpReferences(ws, leafLoc); err != nil {
				return nil, err
			}
			proofRefs = append(proofRefs, TreeRef{Key: l.Key, Location: leafLoc, Count: 1})

		default:
			return nil, ErrCorruptNode
		}
	}
	return proofRefs, nil
}

// branchSide resolves one child of a branch during proof collection. If the
// incoming batch has keys descending into this child, it returns a
// treeCell to push onto the work stack. Otherwise the whole child subtree
// is untouched: its reference count is bumped and a TreeRef standing in for
// it is returned directly.
func (e *Engine[V]) branchSide(ws *writeSet, childLoc common.Digest, sideKeys []common.Key, depth int) (TreeRef, *treeCell, error) {
	childNode, ok, err := e.readNode(ws, childLoc)
	if err != nil {
		return TreeRef{}, nil, err
	}
	if !ok {
		return TreeRef{}, nil, fmt.Errorf("%w: missing child at %s during proof collection", ErrCorruptNode, childLoc)
	}

	if len(sideKeys) > 0 {
		return TreeRef{}, &treeCell{keys: sideKeys, node: &childNode, depth: depth + 1}, nil
	}

	otherKey, err := e.proofKeyAt(ws, childLoc)
	if err != nil {
		return TreeRef{}, nil, err
	}
	count, err := subtreeCount(childNode)
	if err != nil {
		return TreeRef{}, nil, err
	}
	if err := e.bumpReferences(ws, childLoc); err != nil {
		return TreeRef{}, nil, err
	}
	return TreeRef{Key: otherKey, Location: childLoc, Count: count}, nil, nil
}
