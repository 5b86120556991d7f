// Package memory implements store.Store as an in-process map, the
// in-memory counterpart of store/leveldb. It is the generalization of the
// teacher's accdb/memorydb to the new Digest-keyed, already-encoded-bytes
// Store contract.
package memory

import (
	"sync"

	"github.com/binarymerkle/bmt/common"
)

// Store is an ephemeral, map-backed key-value store. Put is unbuffered here
// (there is no disk to batch writes against) so Flush is a no-op; it exists
// only to satisfy store.Store.
type Store struct {
	mu   sync.RWMutex
	data map[common.Digest][]byte
}

// New returns an empty in-memory Store.
func New() *Store {
	return &Store{data: make(map[common.Digest][]byte)}
}

func (s *Store) Get(d common.Digest) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	enc, ok := s.data[d]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(enc))
	copy(out, enc)
	return out, true, nil
}

func (s *Store) Put(d common.Digest, encoded []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(encoded))
	copy(cp, encoded)
	s.data[d] = cp
	return nil
}

func (s *Store) Delete(d common.Digest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, d)
	return nil
}

func (s *Store) Flush() error {
	return nil
}

// Len reports the number of nodes currently stored. Used by tests to assert
// on structural sharing and garbage collection.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
