package vdom

import "github.com/pepsighan/ruukh-ui/pkg/dom"

// Mount performs the first-time top-down walk: it creates backing nodes via
// doc and inserts them into parent, before next when next is non-nil and
// appended otherwise. Mount only fails when the render target rejects an
// operation; such failures propagate immediately and abort the walk for the
// remaining subtree.
func (k *KeyedNode) Mount(doc dom.Document, parent dom.Parent, next dom.Node) error {
	return k.Node.Mount(doc, parent, next)
}

// Mount mounts a bare node. See KeyedNode.Mount.
func (n *VNode) Mount(doc dom.Document, parent dom.Parent, next dom.Node) error {
	switch n.Kind {
	case KindText:
		return n.mountText(doc, parent, next)
	case KindElement:
		return n.mountElement(doc, parent, next)
	case KindList:
		return n.mountList(doc, parent, next)
	case KindComponent:
		return n.mountComponent(doc, parent, next)
	default:
		return nil
	}
}

func (n *VNode) mountText(doc dom.Document, parent dom.Parent, next dom.Node) error {
	ref, err := doc.CreateText(n.Text)
	if err != nil {
		return err
	}
	if err := insert(parent, ref, next); err != nil {
		return err
	}
	n.ref = ref
	return nil
}

func (n *VNode) mountElement(doc dom.Document, parent dom.Parent, next dom.Node) error {
	ref, err := doc.CreateElement(n.Tag)
	if err != nil {
		return err
	}
	for _, a := range n.Attrs {
		if err := ref.SetAttribute(a.Name, a.Value); err != nil {
			return err
		}
	}
	if n.Child != nil {
		inner, err := ref.AsParent()
		if err != nil {
			return err
		}
		if err := n.Child.Mount(doc, inner, nil); err != nil {
			return err
		}
	}
	// Children are in place before the element itself enters the live tree.
	if err := insert(parent, ref, next); err != nil {
		return err
	}
	n.ref = ref
	return nil
}

// mountList walks the children back to front so that each child can use its
// trailing sibling's backing node as the insertion hint, producing the final
// order even though nothing exists in the parent yet.
func (n *VNode) mountList(doc dom.Document, parent dom.Parent, next dom.Node) error {
	hint := next
	for i := len(n.Items) - 1; i >= 0; i-- {
		if err := n.Items[i].Mount(doc, parent, hint); err != nil {
			return err
		}
		if r := n.Items[i].Ref(); r != nil {
			hint = r
		}
	}
	return nil
}

func (n *VNode) mountComponent(doc dom.Document, parent dom.Parent, next dom.Node) error {
	inst := n.Comp
	inst.RefreshState()
	rendered := inst.Render()
	inst.Created()
	if err := rendered.Mount(doc, parent, next); err != nil {
		return err
	}
	n.rendered = rendered
	inst.Mounted()
	return nil
}

// insert positions ref inside parent relative to the next-sibling hint.
func insert(parent dom.Parent, ref, next dom.Node) error {
	if next != nil {
		return parent.InsertBefore(ref, next)
	}
	return parent.Append(ref)
}
