package hasher

import (
	"hash"

	"golang.org/x/crypto/sha3"

	"github.com/binarymerkle/bmt/common"
)

// Keccak256 is an alternate Hasher factory exercised by trie.WithHasher and
// by the cross-hasher determinism tests: the same (keys, values) batch must
// root differently under Keccak256 than under Blake2b256, proving the
// engine never bakes in a particular hash function. Grounded in
// original_source's tree_hasher/keccak.rs and tree_hasher/sha3.rs, and in
// golang.org/x/crypto already being a teacher dependency.
type Keccak256 struct{}

// NewKeccak256 returns the Keccak-256 Factory.
func NewKeccak256() Keccak256 {
	return Keccak256{}
}

func (Keccak256) New(int) Hasher {
	return &keccakSession{h: sha3.NewLegacyKeccak256()}
}

type keccakSession struct {
	h hash.Hash
}

func (s *keccakSession) Update(data []byte) {
	_, _ = s.h.Write(data)
}

func (s *keccakSession) Finalize() common.Digest {
	return common.DigestFromBytes(s.h.Sum(nil))
}
