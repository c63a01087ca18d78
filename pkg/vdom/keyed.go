package vdom

import "github.com/pepsighan/ruukh-ui/pkg/dom"

// patchList runs the keyed diff between two lists.
//
// Old children with keys go into a Key-to-index lookup. New children are
// walked back to front so the running next-sibling hint is always a live
// backing node: a keyed child that hits the lookup is patched in place and
// repositioned when its index moved, a keyed miss mounts fresh, and an
// unkeyed child matches positionally against the old child at the same
// index. Old children never matched are removed at the end.
//
// Move detection is positional-after-match: an in-place match whose old and
// new indexes differ is repositioned relative to the hint. This can emit
// more moves than a minimal edit script would, which is a deliberate
// trade-off; the final order is always correct.
//
// Duplicate non-empty keys within one list violate the caller contract and
// leave the result undefined.
func (n *VNode) patchList(old *VNode, doc dom.Document, parent dom.Parent, next dom.Node) error {
	oldItems := old.Items
	used := make([]bool, len(oldItems))

	var byKey map[Key]int
	for i, it := range oldItems {
		if key, ok := it.Key(); ok {
			if byKey == nil {
				byKey = make(map[Key]int, len(oldItems))
			}
			byKey[key] = i
		}
	}

	hint := next
	for i := len(n.Items) - 1; i >= 0; i-- {
		item := n.Items[i]

		oldIdx := -1
		if key, ok := item.Key(); ok {
			if j, hit := byKey[key]; hit && !used[j] {
				oldIdx = j
			}
		} else if i < len(oldItems) && !used[i] {
			// Positional match; Patch resolves any slot mismatch itself.
			oldIdx = i
		}

		if oldIdx >= 0 {
			used[oldIdx] = true
			oldItem := oldItems[oldIdx]
			prevRef := oldItem.Ref()
			if err := item.Patch(oldItem, doc, parent, hint); err != nil {
				return err
			}
			// Reposition only when the backing node survived the patch and
			// the child actually moved; a re-patch of an unchanged list
			// must not touch the target. A child with several roots (a
			// nested list, or a component rendering one) relocates every
			// root, not just its anchor.
			if oldIdx != i && prevRef != nil && item.Ref() == prevRef {
				if err := item.moveTo(parent, hint); err != nil {
					return err
				}
			}
		} else {
			if err := item.Mount(doc, parent, hint); err != nil {
				return err
			}
		}

		if r := item.Ref(); r != nil {
			hint = r
		}
	}

	for j := range oldItems {
		if !used[j] {
			if err := oldItems[j].Remove(parent); err != nil {
				return err
			}
		}
	}
	return nil
}

// moveTo repositions every backing node the subtree owns before hint,
// keeping their relative order.
func (k *KeyedNode) moveTo(parent dom.Parent, hint dom.Node) error {
	roots := k.Node.refs(nil)
	for i := len(roots) - 1; i >= 0; i-- {
		if err := parent.InsertBefore(roots[i], hint); err != nil {
			return err
		}
		hint = roots[i]
	}
	return nil
}
