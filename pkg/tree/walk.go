package tree

import "strconv"

// VisitFunc receives one node per call during Walk.
//
// key is the mapping key or the 1-based sequence index of the node within
// its parent ("" for the root). value carries the scalar payload and is
// nil for containers. inSequence is true when the node's parent is a
// sequence.
type VisitFunc func(key string, value any, depth int, isContainer bool, inSequence bool)

// Walk traverses the tree depth-first, invoking visit exactly once for
// every node. Containers are visited before their children. Sequence
// children are visited in index order; mapping children in key insertion
// order. Walk carries no behavioral contract beyond correct enumeration;
// it exists for presentation and audit dumps.
func Walk(n *Node, visit VisitFunc) {
	walk(n, "", 0, false, visit)
}

func walk(n *Node, key string, depth int, inSequence bool, visit VisitFunc) {
	if n == nil {
		return
	}
	switch n.kind {
	case KindScalar:
		visit(key, n.scalar, depth, false, inSequence)
	case KindSequence:
		visit(key, nil, depth, true, inSequence)
		for i, item := range n.items {
			walk(item, strconv.Itoa(i+1), depth+1, true, visit)
		}
	default:
		visit(key, nil, depth, true, inSequence)
		for _, childKey := range n.keys {
			walk(n.fields[childKey], childKey, depth+1, false, visit)
		}
	}
}
