package vdom

import (
	"fmt"
	"strings"

	"github.com/pepsighan/ruukh-ui/pkg/dom"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindText      VKind = iota // Plain text node
	KindElement                // <div>, <button>, etc.
	KindList                   // Ordered sequence of keyed children
	KindComponent              // Nested component
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindElement:
		return "Element"
	case KindList:
		return "List"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// Attr is a single element attribute.
type Attr struct {
	Name  string
	Value string
}

// VNode is a virtual node. The variant is selected by Kind; only the fields
// of the active variant are meaningful.
//
// Once mounted, a VNode owns exactly one backing node on the render target.
// The backing link is nil before the first mount and again after removal.
type VNode struct {
	Kind VKind

	// KindText
	Text string

	// KindElement
	Tag   string
	Attrs []Attr
	Child *KeyedNode // child subtree, typically a List; may be nil

	// KindList
	Items []*KeyedNode

	// KindComponent
	Comp Component

	// rendered caches a component's current subtree. Present iff the
	// component has been mounted at least once; owned exclusively by this
	// node.
	rendered *KeyedNode

	// ref is the backing-node link.
	ref dom.Node
}

// KeyedNode pairs an optional Key with a VNode. Two KeyedNodes occupy the
// same logical slot across renders iff both are unkeyed (positional match)
// or both carry equal keys.
type KeyedNode struct {
	key   Key
	keyed bool
	Node  *VNode
}

// Keyed wraps a node with an identity key.
func Keyed(key Key, node *VNode) *KeyedNode {
	return &KeyedNode{key: key, keyed: true, Node: node}
}

// Unkeyed wraps a node without a key.
func Unkeyed(node *VNode) *KeyedNode {
	return &KeyedNode{Node: node}
}

// Key returns the node's key and whether one is set.
func (k *KeyedNode) Key() (Key, bool) {
	return k.key, k.keyed
}

// sameSlot reports whether old occupies the same logical slot as k.
func (k *KeyedNode) sameSlot(old *KeyedNode) bool {
	if k.keyed != old.keyed {
		return false
	}
	return !k.keyed || k.key == old.key
}

// TextNode creates a text node.
func TextNode(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

// Element creates an element node. The child subtree may be nil.
func Element(tag string, attrs []Attr, child *KeyedNode) *VNode {
	return &VNode{Kind: KindElement, Tag: tag, Attrs: attrs, Child: child}
}

// List creates a list node from the given children.
func List(items ...*KeyedNode) *VNode {
	return &VNode{Kind: KindList, Items: items}
}

// ComponentNode creates a component node around an instance. The instance is
// not driven until first mount; on a patch at a matching slot the previously
// mounted instance persists and this shell adopts it.
func ComponentNode(comp Component) *VNode {
	return &VNode{Kind: KindComponent, Comp: comp}
}

// Ref returns the node's backing link, or nil if the node is unmounted.
// A List borrows its first child's backing node as its insertion anchor; a
// Component exposes its rendered subtree's backing node.
func (n *VNode) Ref() dom.Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindList:
		for _, it := range n.Items {
			if r := it.Ref(); r != nil {
				return r
			}
		}
		return nil
	case KindComponent:
		if n.rendered != nil {
			return n.rendered.Ref()
		}
		return nil
	default:
		return n.ref
	}
}

// Ref returns the backing link of the wrapped node.
func (k *KeyedNode) Ref() dom.Node {
	if k == nil {
		return nil
	}
	return k.Node.Ref()
}

// refs appends the backing nodes of every root the subtree owns, in document
// order. A Text or Element owns one; a List or Component owns those of all
// its children. Unmounted roots are skipped.
func (n *VNode) refs(out []dom.Node) []dom.Node {
	if n == nil {
		return out
	}
	switch n.Kind {
	case KindList:
		for _, it := range n.Items {
			out = it.Node.refs(out)
		}
		return out
	case KindComponent:
		if n.rendered != nil {
			return n.rendered.Node.refs(out)
		}
		return out
	default:
		if n.ref != nil {
			out = append(out, n.ref)
		}
		return out
	}
}

// Rendered returns a component node's cached subtree, nil for other kinds or
// before the first mount.
func (n *VNode) Rendered() *KeyedNode {
	return n.rendered
}

// String renders the subtree to a debug string.
func (n *VNode) String() string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case KindText:
		return n.Text
	case KindElement:
		var b strings.Builder
		b.WriteByte('<')
		b.WriteString(n.Tag)
		for _, a := range n.Attrs {
			fmt.Fprintf(&b, " %s=%q", a.Name, a.Value)
		}
		b.WriteByte('>')
		if n.Child != nil {
			b.WriteString(n.Child.String())
		}
		fmt.Fprintf(&b, "</%s>", n.Tag)
		return b.String()
	case KindList:
		var b strings.Builder
		for _, it := range n.Items {
			b.WriteString(it.String())
		}
		return b.String()
	case KindComponent:
		if n.rendered != nil {
			return n.rendered.String()
		}
		return fmt.Sprintf("<component %T>", n.Comp)
	default:
		return ""
	}
}

// String renders the wrapped node to a debug string.
func (k *KeyedNode) String() string {
	if k == nil {
		return ""
	}
	return k.Node.String()
}
