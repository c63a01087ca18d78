package vdom

import (
	"reflect"

	"github.com/pepsighan/ruukh-ui/pkg/dom"
)

// Patch reconciles this node against old, mutating the live tree in place.
//
// Ownership of old transfers into the call: its backing nodes are either
// relinked onto this node or torn down, and the caller must not use old
// afterwards. A nil old delegates to Mount. A slot mismatch (different key,
// or keyed vs unkeyed) removes the old subtree and mounts this one fresh.
//
// On return the node's backing link is valid and positioned before next (or
// at the end of parent when next is nil). Render-target failures abort the
// pass for the remaining subtree; siblings already patched stay patched.
func (k *KeyedNode) Patch(old *KeyedNode, doc dom.Document, parent dom.Parent, next dom.Node) error {
	if old == nil {
		return k.Mount(doc, parent, next)
	}
	if !k.sameSlot(old) {
		if err := old.Remove(parent); err != nil {
			return err
		}
		return k.Mount(doc, parent, next)
	}
	return k.Node.patch(old.Node, doc, parent, next)
}

func (n *VNode) patch(old *VNode, doc dom.Document, parent dom.Parent, next dom.Node) error {
	if old == nil {
		return n.Mount(doc, parent, next)
	}
	if n.Kind != old.Kind {
		if err := old.remove(parent); err != nil {
			return err
		}
		return n.Mount(doc, parent, next)
	}
	switch n.Kind {
	case KindText:
		return n.patchText(old)
	case KindElement:
		return n.patchElement(old, doc, parent, next)
	case KindList:
		return n.patchList(old, doc, parent, next)
	case KindComponent:
		return n.patchComponent(old, doc, parent, next)
	default:
		return nil
	}
}

func (n *VNode) patchText(old *VNode) error {
	n.ref = old.ref
	old.ref = nil
	if n.Text != old.Text {
		return n.ref.SetText(n.Text)
	}
	return nil
}

func (n *VNode) patchElement(old *VNode, doc dom.Document, parent dom.Parent, next dom.Node) error {
	// A different tag is a full replacement, same as a kind mismatch.
	if n.Tag != old.Tag {
		if err := old.remove(parent); err != nil {
			return err
		}
		return n.Mount(doc, parent, next)
	}
	n.ref = old.ref
	old.ref = nil
	if err := n.patchAttrs(old); err != nil {
		return err
	}
	if n.Child == nil && old.Child == nil {
		return nil
	}
	inner, err := n.ref.AsParent()
	if err != nil {
		return err
	}
	if n.Child == nil {
		return old.Child.Remove(inner)
	}
	return n.Child.Patch(old.Child, doc, inner, nil)
}

// patchAttrs diffs the attribute sequences by name against the backing node.
func (n *VNode) patchAttrs(old *VNode) error {
	prev := make(map[string]string, len(old.Attrs))
	for _, a := range old.Attrs {
		prev[a.Name] = a.Value
	}
	cur := make(map[string]struct{}, len(n.Attrs))
	for _, a := range n.Attrs {
		cur[a.Name] = struct{}{}
		if v, ok := prev[a.Name]; !ok || v != a.Value {
			if err := n.ref.SetAttribute(a.Name, a.Value); err != nil {
				return err
			}
		}
	}
	// Walk the old sequence, not the map, so removals are ordered.
	for _, a := range old.Attrs {
		if _, ok := cur[a.Name]; !ok {
			if err := n.ref.RemoveAttribute(a.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

func (n *VNode) patchComponent(old *VNode, doc dom.Document, parent dom.Parent, next dom.Node) error {
	// A different concrete component type is a full replacement; Update is
	// only defined between instances of the same type.
	if reflect.TypeOf(n.Comp) != reflect.TypeOf(old.Comp) {
		if err := old.remove(parent); err != nil {
			return err
		}
		return n.Mount(doc, parent, next)
	}
	// The mounted instance survives; the shell built by this render hands
	// its props over and is discarded.
	inst := old.Comp
	var prev any
	if n.Comp != inst {
		prev = inst.Update(n.Comp)
	}
	n.Comp = inst
	n.rendered = old.rendered
	old.rendered = nil

	propsDirty := inst.TakePropsDirty()
	stateDirty := inst.TakeStateDirty()
	if !propsDirty && !stateDirty {
		// Re-render short-circuit: the cached subtree is already current.
		return nil
	}

	inst.RefreshState()
	fresh := inst.Render()
	if err := fresh.Patch(n.rendered, doc, parent, next); err != nil {
		return err
	}
	n.rendered = fresh
	if propsDirty {
		inst.Updated(prev)
	}
	return nil
}
