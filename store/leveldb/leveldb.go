// Package leveldb implements store.Store on top of goleveldb, the on-disk
// backend every example fork in the pack (go-probe, ronin, thor) reaches
// for when it needs a persistent trie/state store. A bounded LRU sits in
// front of disk reads the same way go-ethereum's trie.Database keeps a
// clean-node cache in front of its own disk reads.
package leveldb

import (
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/binarymerkle/bmt/common"
	"github.com/binarymerkle/bmt/store"
)

// DefaultCleanCacheSize is the number of decoded node blobs kept in the
// clean-read cache when CacheSize is left at its zero value.
const DefaultCleanCacheSize = 4096

// Options configures Open.
type Options struct {
	// CacheSize is the number of entries kept in the clean-read cache.
	// Zero selects DefaultCleanCacheSize.
	CacheSize int
	// ReadOnly opens the database without acquiring the write lock.
	ReadOnly bool
}

// Store is a goleveldb-backed store.Store. Put calls are buffered into an
// internal leveldb.Batch and committed by Flush; Delete is applied directly,
// per spec section 4.2.
type Store struct {
	db    *leveldb.DB
	cache *lru.Cache[common.Digest, []byte]
	batch *leveldb.Batch
}

// Open opens (or creates) a goleveldb database at path.
func Open(path string, opts Options) (*Store, error) {
	cacheSize := opts.CacheSize
	if cacheSize <= 0 {
		cacheSize = DefaultCleanCacheSize
	}
	cache, err := lru.New[common.Digest, []byte](cacheSize)
	if err != nil {
		return nil, &store.Error{Op: "open", Err: err}
	}

	db, err := leveldb.OpenFile(path, &opt.Options{ReadOnly: opts.ReadOnly})
	if err != nil {
		return nil, &store.Error{Op: "open", Err: err}
	}
	return &Store{db: db, cache: cache, batch: new(leveldb.Batch)}, nil
}

func (s *Store) Get(d common.Digest) ([]byte, bool, error) {
	if v, ok := s.cache.Get(d); ok {
		return v, true, nil
	}
	v, err := s.db.Get(d[:], nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, &store.Error{Op: "get", Err: err}
	}
	s.cache.Add(d, v)
	return v, true, nil
}

func (s *Store) Put(d common.Digest, encoded []byte) error {
	cp := make([]byte, len(encoded))
	copy(cp, encoded)
	s.batch.Put(d[:], cp)
	s.cache.Add(d, cp)
	return nil
}

func (s *Store) Delete(d common.Digest) error {
	s.cache.Remove(d)
	if err := s.db.Delete(d[:], nil); err != nil {
		return &store.Error{Op: "delete", Err: err}
	}
	return nil
}

func (s *Store) Flush() error {
	if s.batch.Len() == 0 {
		return nil
	}
	if err := s.db.Write(s.batch, nil); err != nil {
		return &store.Error{Op: "flush", Err: err}
	}
	s.batch.Reset()
	return nil
}

// Close releases the underlying goleveldb handle. Any buffered, unflushed
// writes are discarded, matching spec section 7's "aborted insert... leaves
// uncommitted buffered writes discarded".
func (s *Store) Close() error {
	return s.db.Close()
}
