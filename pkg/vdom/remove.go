package vdom

import "github.com/pepsighan/ruukh-ui/pkg/dom"

// Remove detaches the subtree from parent and releases every backing node it
// owns. Teardown is bottom-up: children are removed before their element,
// and a component's Destroyed hook runs before its cached subtree is torn
// down.
func (k *KeyedNode) Remove(parent dom.Parent) error {
	return k.Node.remove(parent)
}

func (n *VNode) remove(parent dom.Parent) error {
	switch n.Kind {
	case KindText:
		// A nil ref means the node never entered the live tree, which
		// happens when a pass failed partway; nothing to detach.
		if n.ref == nil {
			return nil
		}
		if err := parent.RemoveChild(n.ref); err != nil {
			return err
		}
		n.ref = nil
		return nil

	case KindElement:
		if n.ref == nil {
			return nil
		}
		if n.Child != nil {
			inner, err := n.ref.AsParent()
			if err != nil {
				return err
			}
			if err := n.Child.Remove(inner); err != nil {
				return err
			}
		}
		if err := parent.RemoveChild(n.ref); err != nil {
			return err
		}
		n.ref = nil
		return nil

	case KindList:
		for _, it := range n.Items {
			if err := it.Remove(parent); err != nil {
				return err
			}
		}
		return nil

	case KindComponent:
		n.Comp.Destroyed()
		if n.rendered != nil {
			if err := n.rendered.Remove(parent); err != nil {
				return err
			}
			n.rendered = nil
		}
		return nil

	default:
		return nil
	}
}
