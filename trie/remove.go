package trie

import "github.com/binarymerkle/bmt/common"

// Remove decrements the reference count of root's stored node, cascading
// deletion down through its children whenever a count reaches zero (spec
// section 4.7). Removing a root not present in the store is a no-op, not
// an error (spec section 4.8, 9). The walk is iterative — an explicit work
// queue — to bound stack depth on deep trees, mirroring original_source's
// remove (merkle_bit.rs:793).
func (e *Engine[V]) Remove(root common.Digest) error {
	queue := []common.Digest{root}

	for len(queue) > 0 {
		loc := queue[0]
		queue = queue[1:]

		n, ok, err := e.getStoredNode(loc)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		refs := n.References
		if refs > 0 {
			refs--
		}

		if refs == 0 {
			switch n.Node.Kind {
			case KindBranch:
				queue = append(queue, n.Node.Branch.Zero, n.Node.Branch.One)
			case KindLeaf:
				queue = append(queue, n.Node.Leaf.Data)
			case KindData:
				// no children
			}
			if err := e.deleteNode(loc); err != nil {
				return err
			}
			continue
		}

		n.References = refs
		if err := e.putStoredNode(loc, n); err != nil {
			return err
		}
	}

	if err := e.store.Flush(); err != nil {
		return &StoreError{Err: err}
	}
	return nil
}

// putStoredNode encodes and writes n at d immediately, used by Remove where
// each decrement is its own small, self-contained write (unlike Insert's
// single batched writeSet commit).
func (e *Engine[V]) putStoredNode(d common.Digest, n StoredNode) error {
	encoded, err := encodeStoredNode(n)
	if err != nil {
		return err
	}
	if err := e.store.Put(d, encoded); err != nil {
		return &StoreError{Err: err}
	}
	return nil
}

// deleteNode removes d from the store immediately (spec section 4.2:
// "delete is immediate so that decrementing a ref-count to zero during
// remove removes the entry").
func (e *Engine[V]) deleteNode(d common.Digest) error {
	if err := e.store.Delete(d); err != nil {
		return &StoreError{Err: err}
	}
	return nil
}
