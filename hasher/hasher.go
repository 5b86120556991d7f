// Package hasher implements the Hasher contract from spec section 4.1: a
// stateful, per-call hash session that produces a fixed-width Digest. The
// engine never inspects a digest's contents beyond equality, ordering, and
// raw bytes, so any Hasher implementation is interchangeable.
package hasher

import "github.com/binarymerkle/bmt/common"

// Hasher accumulates bytes via Update and produces a content address via
// Finalize. A Hasher is stateful across Update calls but must not be reused
// after Finalize; callers obtain a fresh instance per hash via Factory.New.
type Hasher interface {
	Update(data []byte)
	Finalize() common.Digest
}

// Factory constructs a fresh Hasher session. The size argument is the
// requested digest width in bytes; implementations that can only produce one
// width (the common case) ignore it once it matches common.DigestLength.
type Factory interface {
	New(size int) Hasher
}

// domain tags, spec section 3: "Stored node" content addressing.
const (
	tagData   = "d"
	tagLeaf   = "l"
	tagBranch = "b"
)

// HashData computes the content address of a Data node: H("d" || key || value).
func HashData(f Factory, key, value []byte) common.Digest {
	h := f.New(common.DigestLength)
	h.Update([]byte(tagData))
	h.Update(key)
	h.Update(value)
	return h.Finalize()
}

// HashLeaf computes the content address of a Leaf node: H("l" || key || dataLocation).
func HashLeaf(f Factory, key []byte, dataLocation common.Digest) common.Digest {
	h := f.New(common.DigestLength)
	h.Update([]byte(tagLeaf))
	h.Update(key)
	h.Update(dataLocation[:])
	return h.Finalize()
}

// HashBranch computes the content address of a Branch node: H("b" || zero || one).
func HashBranch(f Factory, zero, one common.Digest) common.Digest {
	h := f.New(common.DigestLength)
	h.Update([]byte(tagBranch))
	h.Update(zero[:])
	h.Update(one[:])
	return h.Finalize()
}
