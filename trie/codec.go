package trie

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/binarymerkle/bmt/common"
)

// Node encoding is deliberately a plain, hand-rolled binary format rather
// than a general-purpose codec library: the spec (section 6) only requires
// that it be deterministic and round-trippable, and a stored node has a
// fixed, small shape (one of three variants, no nested user types), so a
// library's generality buys nothing here. See DESIGN.md.
//
// Layout, all integers big-endian:
//   [1 byte kind][8 bytes references][variant payload]
//   branch payload: [8 bytes count][32 bytes zero][32 bytes one][4 bytes splitIndex][2 bytes keyLen][key]
//   leaf   payload: [2 bytes keyLen][key][32 bytes data]
//   data   payload: [4 bytes valueLen][value]

// encodeStoredNode serializes n deterministically.
func encodeStoredNode(n StoredNode) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(byte(n.Node.Kind))
	writeUint64(&buf, n.References)

	switch n.Node.Kind {
	case KindBranch:
		b := n.Node.Branch
		writeUint64(&buf, b.Count)
		buf.Write(b.Zero[:])
		buf.Write(b.One[:])
		writeUint32(&buf, b.SplitIndex)
		if len(b.Key) > 0xFFFF {
			return nil, fmt.Errorf("trie: codec: branch key too long: %d bytes", len(b.Key))
		}
		writeUint16(&buf, uint16(len(b.Key)))
		buf.Write(b.Key)
	case KindLeaf:
		l := n.Node.Leaf
		if len(l.Key) > 0xFFFF {
			return nil, fmt.Errorf("trie: codec: leaf key too long: %d bytes", len(l.Key))
		}
		writeUint16(&buf, uint16(len(l.Key)))
		buf.Write(l.Key)
		buf.Write(l.Data[:])
	case KindData:
		d := n.Node.Data
		writeUint32(&buf, uint32(len(d.Value)))
		buf.Write(d.Value)
	default:
		return nil, fmt.Errorf("trie: codec: unknown node kind %d", n.Node.Kind)
	}
	return buf.Bytes(), nil
}

// decodeStoredNode is the inverse of encodeStoredNode. It returns
// ErrCorruptNode (wrapped) for any malformed input, since a decode failure
// in a content-addressed store always indicates a corrupted blob or a
// programming error, never a recoverable condition.
func decodeStoredNode(encoded []byte) (StoredNode, error) {
	r := bytes.NewReader(encoded)
	kindByte, err := r.ReadByte()
	if err != nil {
		return StoredNode{}, fmt.Errorf("%w: %v", ErrCorruptNode, err)
	}
	kind := Kind(kindByte)

	references, err := readUint64(r)
	if err != nil {
		return StoredNode{}, fmt.Errorf("%w: %v", ErrCorruptNode, err)
	}

	var node Node
	node.Kind = kind
	switch kind {
	case KindBranch:
		count, err := readUint64(r)
		if err != nil {
			return StoredNode{}, fmt.Errorf("%w: %v", ErrCorruptNode, err)
		}
		zero, err := readDigest(r)
		if err != nil {
			return StoredNode{}, fmt.Errorf("%w: %v", ErrCorruptNode, err)
		}
		one, err := readDigest(r)
		if err != nil {
			return StoredNode{}, fmt.Errorf("%w: %v", ErrCorruptNode, err)
		}
		splitIndex, err := readUint32(r)
		if err != nil {
			return StoredNode{}, fmt.Errorf("%w: %v", ErrCorruptNode, err)
		}
		key, err := readSizedBytes16(r)
		if err != nil {
			return StoredNode{}, fmt.Errorf("%w: %v", ErrCorruptNode, err)
		}
		node.Branch = Branch{Count: count, Zero: zero, One: one, SplitIndex: splitIndex, Key: common.Key(key)}
	case KindLeaf:
		key, err := readSizedBytes16(r)
		if err != nil {
			return StoredNode{}, fmt.Errorf("%w: %v", ErrCorruptNode, err)
		}
		data, err := readDigest(r)
		if err != nil {
			return StoredNode{}, fmt.Errorf("%w: %v", ErrCorruptNode, err)
		}
		node.Leaf = Leaf{Key: common.Key(key), Data: data}
	case KindData:
		value, err := readSizedBytes32(r)
		if err != nil {
			return StoredNode{}, fmt.Errorf("%w: %v", ErrCorruptNode, err)
		}
		node.Data = Data{Value: value}
	default:
		return StoredNode{}, fmt.Errorf("%w: unknown node kind %d", ErrCorruptNode, kind)
	}

	if r.Len() != 0 {
		return StoredNode{}, fmt.Errorf("%w: %d trailing bytes", ErrCorruptNode, r.Len())
	}
	return StoredNode{References: references, Node: node}, nil
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func readUint64(r *bytes.Reader) (uint64, error) {
	var b [8]byte
	if _, err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

func readUint32(r *bytes.Reader) (uint32, error) {
	var b [4]byte
	if _, err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

func readUint16(r *bytes.Reader) (uint16, error) {
	var b [2]byte
	if _, err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

func readDigest(r *bytes.Reader) (common.Digest, error) {
	var d common.Digest
	if _, err := readFull(r, d[:]); err != nil {
		return common.Digest{}, err
	}
	return d, nil
}

func readSizedBytes16(r *bytes.Reader) ([]byte, error) {
	n, err := readUint16(r)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	if _, err := readFull(r, out); err != nil {
		return nil, err
	}
	return out, nil
}

func readSizedBytes32(r *bytes.Reader) ([]byte, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	if _, err := readFull(r, out); err != nil {
		return nil, err
	}
	return out, nil
}

func readFull(r *bytes.Reader, out []byte) (int, error) {
	if len(out) == 0 {
		return 0, nil
	}
	n, err := r.Read(out)
	if err != nil {
		return n, err
	}
	if n != len(out) {
		return n, fmt.Errorf("short read: got %d want %d", n, len(out))
	}
	return n, nil
}
