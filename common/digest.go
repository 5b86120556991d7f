// Package common holds the small, dependency-free value types shared by the
// hasher, store, and trie packages: the content-address Digest and the
// bit-indexed Key.
package common

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// DigestLength is the fixed width, in bytes, of every node's content
// address. The engine is hasher-agnostic above this width: any Hasher
// wired into the engine must produce exactly DigestLength bytes.
const DigestLength = 32

// Digest is the content-address of a stored node: the output of a domain
// tagged hash over the node's fields (spec section 3). Digest implements
// equality and a total order so it can key a map and be compared.
type Digest [DigestLength]byte

// ZeroDigest is the reserved value used to mark an absent root or child.
var ZeroDigest = Digest{}

// IsZero reports whether d is the reserved zero digest.
func (d Digest) IsZero() bool {
	return d == ZeroDigest
}

// Bytes returns a copy of the digest's bytes.
func (d Digest) Bytes() []byte {
	out := make([]byte, DigestLength)
	copy(out, d[:])
	return out
}

// Compare returns -1, 0, or 1 as d is less than, equal to, or greater than
// other, ordering lexicographically over the raw bytes.
func (d Digest) Compare(other Digest) int {
	return bytes.Compare(d[:], other[:])
}

// Hex renders the digest as a lowercase hex string prefixed with 0x.
func (d Digest) Hex() string {
	return "0x" + hex.EncodeToString(d[:])
}

func (d Digest) String() string {
	return d.Hex()
}

// DigestFromBytes copies b into a Digest. It panics if b is not exactly
// DigestLength bytes long, mirroring the teacher's BytesToHash which is
// only ever called on hasher output of a known, fixed size.
func DigestFromBytes(b []byte) Digest {
	if len(b) != DigestLength {
		panic(fmt.Sprintf("common: expected %d-byte digest, got %d", DigestLength, len(b)))
	}
	var d Digest
	copy(d[:], b)
	return d
}
