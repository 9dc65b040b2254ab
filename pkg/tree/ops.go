package tree

// Copy returns a fully independent copy of n. Containers are cloned
// recursively, keys included; scalar payloads are shared because they are
// immutable by construction. No aliasing remains between input and output
// at any depth.
func Copy(n *Node) *Node {
	if n == nil {
		return nil
	}
	switch n.kind {
	case KindScalar:
		return Scalar(n.scalar)
	case KindSequence:
		out := Sequence()
		for _, item := range n.items {
			out.Append(Copy(item))
		}
		return out
	default:
		out := NewMapping()
		for _, key := range n.keys {
			out.Set(key, Copy(n.fields[key]))
		}
		return out
	}
}

// Equal reports deep structural equality of a and b.
//
// Nodes of different kinds are never equal. Scalars compare by value.
// Mappings compare with a symmetric key-set check: every key of a must
// exist in b with an equal value and vice versa, so the comparison is a
// true equality rather than a one-sided subset test. Sequences compare
// element-wise in order.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindScalar:
		return a.scalar == b.scalar
	case KindSequence:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	default:
		if len(a.keys) != len(b.keys) {
			return false
		}
		for _, key := range a.keys {
			other, ok := b.fields[key]
			if !ok || !Equal(a.fields[key], other) {
				return false
			}
		}
		// Same key count plus every a-key present in b implies the key
		// sets are identical, which closes the b-side of the check.
		return true
	}
}
