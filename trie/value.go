package trie

// ValueCodec turns a caller value into the deterministic byte encoding a
// Data node stores, and back (spec section 6: "the engine is agnostic to
// serialization... the only binding constraint is that encoding must be
// deterministic"). Grounded in original_source's Encode/Decode traits
// (common/traits.rs), generalized to a Go generic interface instead of a
// trait bound so Engine can be parameterized over any ValueType.
type ValueCodec[V any] interface {
	Encode(v V) ([]byte, error)
	Decode(b []byte) (V, error)
}

// BytesCodec is the identity ValueCodec for []byte values, mirroring
// original_source's `impl Encode for Vec<u8>` / `impl Decode for Vec<u8>`
// (the pass-through case used throughout its own test suite).
type BytesCodec struct{}

func (BytesCodec) Encode(v []byte) ([]byte, error) { return v, nil }
func (BytesCodec) Decode(b []byte) ([]byte, error) { return b, nil }
