// Package tree implements a dynamically typed configuration tree with
// deep copy, structural equality, audited merge and visitor traversal.
//
// A Node is a tagged variant: it is exactly one of a scalar, a sequence
// (ordered, integer-indexed) or a mapping (string-keyed, insertion order
// preserved). The kind is fixed at construction time and never inferred
// from contents, so mixed-key containers cannot be misclassified.
package tree

import (
	"fmt"
	"sort"
)

// Kind identifies the variant held by a Node.
type Kind int

const (
	// KindScalar is a leaf value: string, number, boolean or nil.
	KindScalar Kind = iota

	// KindSequence is an ordered list of child nodes.
	KindSequence

	// KindMapping is a set of named child nodes. Key insertion order is
	// preserved for deterministic traversal and merge auditing.
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Node is a single value in a configuration tree.
//
// The zero value is not usable; construct nodes with Scalar, Sequence,
// NewMapping or FromAny. Nodes are not safe for concurrent mutation but
// all operations in this package treat their inputs as read-only.
type Node struct {
	kind   Kind
	scalar any
	items  []*Node
	keys   []string
	fields map[string]*Node
}

// Scalar returns a leaf node holding v. The value is stored as-is and is
// assumed immutable; Copy returns scalar values without cloning them.
func Scalar(v any) *Node {
	return &Node{kind: KindScalar, scalar: v}
}

// Sequence returns an ordered container holding the given items.
func Sequence(items ...*Node) *Node {
	n := &Node{kind: KindSequence}
	n.items = append(n.items, items...)
	return n
}

// NewMapping returns an empty mapping node.
func NewMapping() *Node {
	return &Node{kind: KindMapping, fields: make(map[string]*Node)}
}

// Kind reports the variant of n.
func (n *Node) Kind() Kind { return n.kind }

// Value returns the scalar payload. It is nil for containers.
func (n *Node) Value() any {
	if n.kind != KindScalar {
		return nil
	}
	return n.scalar
}

// Items returns the children of a sequence node in index order. The
// returned slice must not be modified.
func (n *Node) Items() []*Node {
	if n.kind != KindSequence {
		return nil
	}
	return n.items
}

// Append adds a child to a sequence node.
func (n *Node) Append(child *Node) {
	if n.kind != KindSequence {
		panic("tree: Append on non-sequence node")
	}
	n.items = append(n.items, child)
}

// Keys returns the mapping keys in insertion order. The returned slice
// must not be modified.
func (n *Node) Keys() []string {
	if n.kind != KindMapping {
		return nil
	}
	return n.keys
}

// Get looks up a mapping child by key.
func (n *Node) Get(key string) (*Node, bool) {
	if n.kind != KindMapping {
		return nil, false
	}
	child, ok := n.fields[key]
	return child, ok
}

// Set stores a mapping child, preserving the insertion order of new keys.
func (n *Node) Set(key string, child *Node) {
	if n.kind != KindMapping {
		panic("tree: Set on non-mapping node")
	}
	if _, exists := n.fields[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.fields[key] = child
}

// Len returns the number of children of a container, or 0 for a scalar.
func (n *Node) Len() int {
	switch n.kind {
	case KindSequence:
		return len(n.items)
	case KindMapping:
		return len(n.keys)
	default:
		return 0
	}
}

// FromAny builds a Node from the generic value produced by a YAML or JSON
// unmarshal into `any`. Slices become sequences, string-keyed maps become
// mappings, everything else becomes a scalar.
//
// Map iteration order in Go is randomized, so mapping keys are sorted to
// keep traversal and dump output deterministic across runs.
func FromAny(v any) (*Node, error) {
	switch val := v.(type) {
	case nil, string, bool, int, int64, uint64, float64:
		return Scalar(val), nil
	case []any:
		seq := Sequence()
		for i, item := range val {
			child, err := FromAny(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			seq.Append(child)
		}
		return seq, nil
	case map[string]any:
		m := NewMapping()
		keys := make([]string, 0, len(val))
		for key := range val {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			child, err := FromAny(val[key])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			m.Set(key, child)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// ToAny converts a Node back to a generic value suitable for marshalling.
func ToAny(n *Node) any {
	switch n.kind {
	case KindScalar:
		return n.scalar
	case KindSequence:
		out := make([]any, 0, len(n.items))
		for _, item := range n.items {
			out = append(out, ToAny(item))
		}
		return out
	default:
		out := make(map[string]any, len(n.keys))
		for _, key := range n.keys {
			out[key] = ToAny(n.fields[key])
		}
		return out
	}
}
