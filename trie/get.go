package trie

import (
	"fmt"
	"sort"

	"github.com/binarymerkle/bmt/common"
)

// Get resolves a batch of keys against root (spec section 4.3). The
// returned map has one entry per key in keys (duplicates collapse to one
// entry); an absent key maps to nil. A root unknown to the store resolves
// every key to nil rather than erroring (spec section 8: "Missing-root").
func (e *Engine[V]) Get(root common.Digest, keys []common.Key) (map[string]*V, error) {
	if len(keys) == 0 {
		return nil, ErrEmptyInput
	}
	for _, k := range keys {
		if len(k) == 0 {
			return nil, ErrZeroLengthKey
		}
	}

	result := make(map[string]*V, len(keys))
	for _, k := range keys {
		result[string(k)] = nil
	}

	rootNode, ok, err := e.getStoredNode(root)
	if err != nil {
		return nil, err
	}
	if !ok {
		return result, nil
	}

	sorted := make([]common.Key, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Compare(sorted[j]) < 0 })

	leafValues := make(map[string][]byte)
	stack := []treeCell{{keys: sorted, node: &rootNode, depth: 0}}
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
			branchKey, err := e.branchKey(nil, b)
			if err != nil {
				return nil, err
			}

			descendants := c.keys
			if calcMinSplitIndex(c.keys, branchKey) < int(b.SplitIndex) {
				descendants = checkDescendants(c.keys, int(b.SplitIndex), branchKey)
			}
			if len(descendants) == 0 {
				continue
			}

			zeros, ones := splitPairs(descendants, int(b.SplitIndex))

			if len(ones) > 0 {
				oneNode, ok, err := e.getStoredNode(b.One)
				if err != nil {
					return nil, err
				}
				if !ok {
					return nil, fmt.Errorf("%w: missing one-child at %s", ErrCorruptNode, b.One)
				}
				stack = append(stack, treeCell{keys: ones, node: &oneNode, depth: c.depth + 1})
			}
			if len(zeros) > 0 {
				zeroNode, ok, err := e.getStoredNode(b.Zero)
				if err != nil {
					return nil, err
				}
				if !ok {
					return nil, fmt.Errorf("%w: missing zero-child at %s", ErrCorruptNode, b.Zero)
				}
				stack = append(stack, treeCell{keys: zeros, node: &zeroNode, depth: c.depth + 1})
			}

		case KindLeaf:
			l := c.node.Node.Leaf
			dataNode, ok, err := e.getStoredNode(l.Data)
			if err != nil {
				return nil, err
			}
			if !ok || dataNode.Node.Kind != KindData {
				return nil, fmt.Errorf("%w: missing or malformed data node for leaf %s", ErrCorruptNode, l.Data)
			}
			leafValues[string(l.Key)] = dataNode.Node.Data.Value

		default:
			return nil, ErrCorruptNode
		}
	}

	for _, k := range keys {
		raw, found := leafValues[string(k)]
		if !found {
			continue
		}
		v, err := e.codec.Decode(raw)
		if err != nil {
			return nil, &CodecError{Err: err}
		}
		vv := v
		result[string(k)] = &vv
	}
	return result, nil
}
