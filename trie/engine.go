package trie

import (
	"fmt"

	"github.com/binarymerkle/bmt/common"
	"github.com/binarymerkle/bmt/hasher"
	"github.com/binarymerkle/bmt/store"
	"github.com/binarymerkle/bmt/store/leveldb"
	"github.com/binarymerkle/bmt/store/memory"
)

// DefaultMaxDepth is the traversal depth ceiling used when no WithMaxDepth
// option is supplied, matching the "typical 160" figure from spec section 6
// and original_source's own test fixtures (merkle_bit.rs uses 160 for its
// 20-byte-key suites).
const DefaultMaxDepth = 160

// Engine is the façade binding one Store and one Hasher to the trie
// algorithms (spec section 2, "Façade"; section 6, public surface). It
// corresponds to original_source's generic HashTree<ValueType>, generalized
// from a single compiled-in hasher/database pair to runtime-selected ones
// via functional options, since Go lacks Cargo feature flags.
type Engine[V any] struct {
	store    store.Store
	hashers  hasher.Factory
	codec    ValueCodec[V]
	maxDepth int
}

// Option configures an Engine at construction time.
type Option[V any] func(*Engine[V])

// WithHasher overrides the default Blake2b256 hasher (spec section 4.1;
// DOMAIN STACK in SPEC_FULL.md). Exercised by cross-hasher determinism
// tests proving the engine never bakes in a specific hash function.
func WithHasher[V any](f hasher.Factory) Option[V] {
	return func(e *Engine[V]) { e.hashers = f }
}

// WithMaxDepth overrides DefaultMaxDepth (spec section 6 configuration:
// "max_depth — upper bound on traversal depth").
func WithMaxDepth[V any](depth int) Option[V] {
	return func(e *Engine[V]) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

// New builds an in-memory Engine (spec section 6: "new(max_depth) ->
// Engine (in-memory)"), backed by store/memory.
func New[V any](codec ValueCodec[V], opts ...Option[V]) *Engine[V] {
	return newEngine[V](memory.New(), codec, opts)
}

// Open builds a disk-backed Engine rooted at path (spec section 6:
// "open(path, max_depth) -> Engine"), backed by store/leveldb.
func Open[V any](path string, codec ValueCodec[V], opts ...Option[V]) (*Engine[V], error) {
	st, err := leveldb.Open(path, leveldb.Options{})
	if err != nil {
		return nil, &StoreError{Err: err}
	}
	return newEngine[V](st, codec, opts), nil
}

// NewWithStore wires an already-constructed store.Store, the escape hatch
// used by tests and by callers who want a Store this package doesn't build
// directly (spec section 4.2: "Store" is a pluggable boundary).
func NewWithStore[V any](st store.Store, codec ValueCodec[V], opts ...Option[V]) *Engine[V] {
	return newEngine[V](st, codec, opts)
}

func newEngine[V any](st store.Store, codec ValueCodec[V], opts []Option[V]) *Engine[V] {
	e := &Engine[V]{
		store:    st,
		hashers:  hasher.NewBlake2b256(),
		codec:    codec,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// getStoredNode loads and decodes the node at d directly from the backing
// store, returning ok=false if absent. Decode failures surface as
// ErrCorruptNode (spec section 7, kind 2); store failures surface wrapped
// in StoreError (kind 5).
func (e *Engine[V]) getStoredNode(d common.Digest) (StoredNode, bool, error) {
	encoded, ok, err := e.store.Get(d)
	if err != nil {
		return StoredNode{}, false, &StoreError{Err: err}
	}
	if !ok {
		return StoredNode{}, false, nil
	}
	n, err := decodeStoredNode(encoded)
	if err != nil {
		return StoredNode{}, false, err
	}
	return n, true, nil
}

// writeSet is the per-Insert-call write buffer. All node writes an Insert
// produces (new leaves/data, ref-count bumps, new branches) accumulate here
// and are never visible to the backing Store until commit succeeds — this
// is what makes a failed Insert leave "no change to store state" (spec
// section 8, scenario 6) regardless of what the concrete Store's own Put
// buffering does. Reads issued during the same Insert call consult the
// write set first, so the engine always sees its own not-yet-committed
// writes (spec section 4.2: "the engine never reads a key it has just
// buffered for write in the same call — it already owns the value").
type writeSet struct {
	nodes map[common.Digest]StoredNode
}

func newWriteSet() *writeSet {
	return &writeSet{nodes: make(map[common.Digest]StoredNode)}
}

// readNode resolves d against the write set first, falling back to the
// committed store. Passing a nil writeSet (as Get does) skips straight to
// the store, since Get never writes.
func (e *Engine[V]) readNode(ws *writeSet, d common.Digest) (StoredNode, bool, error) {
	if ws != nil {
		if n, ok := ws.nodes[d]; ok {
			return n, true, nil
		}
	}
	return e.getStoredNode(d)
}

func (ws *writeSet) write(d common.Digest, n StoredNode) {
	ws.nodes[d] = n
}

// bumpReferences loads the node at d (write set first, then store) and
// re-buffers it with one more reference. Used whenever Insert's proof
// collection phase decides an existing subtree survives unchanged into the
// new root (spec section 4.4, Phase B), as a plain get -> mutate -> put
// sequence.
func (e *Engine[V]) bumpReferences(ws *writeSet, d common.Digest) error {
	n, ok, err := e.readNode(ws, d)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: missing node at %s during reference bump", ErrCorruptNode, d)
	}
	n.References++
	ws.write(d, n)
	return nil
}

// commit encodes and buffers every node in ws.nodes into the store and
// flushes once, the single atomic commit point for an entire Insert call
// (spec section 5: "within a single insert call, all buffered puts are
// committed before the call returns the new root").
func (e *Engine[V]) commit(ws *writeSet) error {
	for d, n := range ws.nodes {
		encoded, err := encodeStoredNode(n)
		if err != nil {
			return err
		}
		if err := e.store.Put(d, encoded); err != nil {
			return &StoreError{Err: err}
		}
	}
	if err := e.store.Flush(); err != nil {
		return &StoreError{Err: err}
	}
	return nil
}
