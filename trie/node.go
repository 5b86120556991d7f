// Package trie implements the persistent, content-addressed binary Merkle
// trie engine: the bit-discriminated, path-compressed tree structure, its
// batched insert pipeline, and the reference-counted garbage collection
// discipline over a pluggable node store (spec sections 2-4).
package trie

import (
	"github.com/binarymerkle/bmt/common"
	"github.com/binarymerkle/bmt/hasher"
)

// Kind discriminates the three node variants (spec section 3).
type Kind uint8

const (
	KindBranch Kind = iota
	KindLeaf
	KindData
)

func (k Kind) String() string {
	switch k {
	case KindBranch:
		return "branch"
	case KindLeaf:
		return "leaf"
	case KindData:
		return "data"
	default:
		return "unknown"
	}
}

// Branch routes by inspecting one bit (SplitIndex) of the key. Count is the
// number of leaves in the subtree; Key is one representative descendant key,
// used only for path-compression reasoning (descendant filtering and
// proofKey), never for routing (spec section 3).
//
// SplitIndex is modeled as uint32, not the byte the spec's node-model table
// suggests: original_source's Branch trait uses get/set_split_index(u32),
// and a u8 cannot address bit positions beyond 255 once K exceeds 32 bytes.
// See DESIGN.md.
type Branch struct {
	Count      uint64
	Zero       common.Digest
	One        common.Digest
	SplitIndex uint32
	Key        common.Key
}

// Leaf points at a Data node holding the value bytes for Key.
type Leaf struct {
	Key  common.Key
	Data common.Digest
}

// Data holds the user payload after value encoding.
type Data struct {
	Value []byte
}

// Node is the tagged sum Branch | Leaf | Data (spec section 3). Exactly one
// of Branch, Leaf, Data is meaningful, selected by Kind; callers must switch
// on Kind before reading a field, mirroring the teacher's type-switch over
// its node interface.
type Node struct {
	Kind   Kind
	Branch Branch
	Leaf   Leaf
	Data   Data
}

// StoredNode is what the store actually holds: a node plus its reference
// count (spec section 3). References never goes negative; a node reaching
// zero references is deleted rather than kept at zero (spec section 4.8).
type StoredNode struct {
	References uint64
	Node       Node
}

// locationOfData computes H("d" || key || value), the content address of a
// Data node (spec section 3).
func locationOfData(f hasher.Factory, key common.Key, value []byte) common.Digest {
	return hasher.HashData(f, key, value)
}

// locationOfLeaf computes H("l" || key || dataLocation), the content address
// of a Leaf node (spec section 3).
func locationOfLeaf(f hasher.Factory, key common.Key, dataLocation common.Digest) common.Digest {
	return hasher.HashLeaf(f, key, dataLocation)
}

// locationOfBranch computes H("b" || zero || one), the content address of a
// Branch node (spec section 3).
func locationOfBranch(f hasher.Factory, zero, one common.Digest) common.Digest {
	return hasher.HashBranch(f, zero, one)
}
