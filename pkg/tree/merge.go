package tree

import "fmt"

// Override records one audit event from Merge: a key whose base value was
// replaced by an overlay value.
type Override struct {
	// Key is the mapping key (or sequence index) where the replacement
	// happened.
	Key string

	// Old and New are the rendered scalar values before and after.
	Old string
	New string
}

// String renders the stable audit line shape for this event.
func (o Override) String() string {
	return fmt.Sprintf("key '%s' override: %s -> %s", o.Key, o.Old, o.New)
}

// Merge returns a new tree containing all of base with every entry of
// overlay applied on top. Neither input is mutated.
//
// Rules, applied per key:
//   - key only in base: deep copy of the base value
//   - key only in overlay: deep copy of the overlay value, no audit event
//   - both values are containers of the same kind: merge recurses
//   - at least one side is a scalar (or the kinds differ): the overlay
//     value replaces the base value entirely and an Override is recorded
//
// A nil or empty overlay yields a deep copy of base and no audit events.
// When base and overlay are not both containers the overlay simply wins.
func Merge(base, overlay *Node) (*Node, []Override) {
	if overlay == nil || (overlay.kind != KindScalar && overlay.Len() == 0) {
		return Copy(base), nil
	}
	if base == nil {
		return Copy(overlay), nil
	}
	if base.kind != overlay.kind || base.kind == KindScalar {
		return Copy(overlay), nil
	}

	var events []Override
	if base.kind == KindSequence {
		out := Sequence()
		for i, item := range base.items {
			if i < len(overlay.items) {
				merged, evs := mergeChild(fmt.Sprintf("%d", i+1), item, overlay.items[i])
				out.Append(merged)
				events = append(events, evs...)
			} else {
				out.Append(Copy(item))
			}
		}
		for i := len(base.items); i < len(overlay.items); i++ {
			out.Append(Copy(overlay.items[i]))
		}
		return out, events
	}

	out := NewMapping()
	for _, key := range base.keys {
		if over, ok := overlay.fields[key]; ok {
			merged, evs := mergeChild(key, base.fields[key], over)
			out.Set(key, merged)
			events = append(events, evs...)
		} else {
			out.Set(key, Copy(base.fields[key]))
		}
	}
	for _, key := range overlay.keys {
		if _, ok := base.fields[key]; !ok {
			out.Set(key, Copy(overlay.fields[key]))
		}
	}
	return out, events
}

// mergeChild merges two values that share a key. Containers of the same
// kind recurse; anything else is a scalar-level replacement, which is the
// audited case.
func mergeChild(key string, base, overlay *Node) (*Node, []Override) {
	if base.kind == overlay.kind && base.kind != KindScalar {
		return Merge(base, overlay)
	}
	event := Override{Key: key, Old: renderScalar(base), New: renderScalar(overlay)}
	return Copy(overlay), []Override{event}
}

// renderScalar formats a node for an audit line. Containers are summarized
// by kind and size since only scalar replacements carry a useful diff.
func renderScalar(n *Node) string {
	if n == nil {
		return "<nil>"
	}
	if n.kind == KindScalar {
		return fmt.Sprintf("%v", n.scalar)
	}
	return fmt.Sprintf("<%s len=%d>", n.kind, n.Len())
}
