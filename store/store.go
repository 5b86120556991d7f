// Package store defines the pluggable key-value boundary between the trie
// engine and its backing persistence (spec section 4.2), plus two concrete
// implementations: store/memory (in-process map, no persistence) and
// store/leveldb (on-disk, backed by goleveldb).
//
// Store deals only in digests and already-encoded node bytes; it never
// decodes a node. Node encoding/decoding is the trie package's concern, the
// same separation the teacher draws between accdb (raw bytes) and TrieDB
// (node-aware cache in front of accdb).
package store

import "github.com/binarymerkle/bmt/common"

// Store is the persistence boundary consumed by the trie engine. Reads
// observe prior committed writes; reads within a single Insert call need not
// observe writes the same call has buffered but not yet flushed, since the
// engine never reads back a key it just wrote (spec section 4.2).
type Store interface {
	// Get returns the encoded node stored at d, or ok=false if absent.
	// Absence is not an error.
	Get(d common.Digest) (encoded []byte, ok bool, err error)

	// Put buffers a write of encoded bytes at d. The write need not be
	// visible to Get until Flush commits it.
	Put(d common.Digest, encoded []byte) error

	// Delete removes d immediately; unlike Put it is never buffered, so
	// that a reference count reaching zero during Remove is observable
	// right away (spec section 4.2).
	Delete(d common.Digest) error

	// Flush commits all buffered Put calls atomically with respect to
	// subsequent reads in this process.
	Flush() error
}

// Error is returned by a Store implementation to report a failure from the
// underlying medium (disk I/O, a corrupt on-disk format, and so on). The
// trie package wraps these verbatim (spec section 7: "Underlying —
// propagated verbatim from Store or codec").
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return "store: " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
