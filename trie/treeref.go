package trie

import "github.com/binarymerkle/bmt/common"

// TreeRef is an intermediate (key, location, subtree-size) triple produced
// while assembling a batch of keys into a tree: a placeholder for a subtree
// that has already been written to the store, waiting to be merged with its
// siblings by createTree (spec section 4.4, Phase C).
type TreeRef struct {
	Key      common.Key
	Location common.Digest
	Count    uint64
}

// byKey sorts a slice of TreeRef by Key, the same total order the engine
// sorts input keys by everywhere else.
type byKey []TreeRef

func (r byKey) Len() int           { return len(r) }
func (r byKey) Less(i, j int) bool { return r[i].Key.Compare(r[j].Key) < 0 }
func (r byKey) Swap(i, j int)      { r[i], r[j] = r[j], r[i] }

// treeCell is one unit of work in the stack-driven (depth-first) traversals performed by
// Get and Insert's proof-collection phase: a subset of the sorted input keys
// still to be routed, paired with the stored node they are being routed
// against and the current traversal depth (spec section 4.3).
type treeCell struct {
	keys  []common.Key
	node  *StoredNode
	depth int
}
