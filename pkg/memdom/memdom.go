// Package memdom is an in-memory render target.
//
// It implements the pkg/dom capability surface against a plain node arena
// and records every mutation in an operation log, which makes it the
// reference target for engine tests (count creates, moves and text updates
// for a patch pass) and for the CLI diff inspector. No concurrency: a
// Document is owned by one goroutine, matching the engine's execution model.
package memdom

import (
	"fmt"
	"strings"

	"github.com/pepsighan/ruukh-ui/pkg/dom"
)

// OpKind discriminates logged operations.
type OpKind uint8

const (
	OpCreateElement OpKind = iota
	OpCreateText
	OpSetText
	OpSetAttr
	OpRemoveAttr
	OpInsert // node entered a parent
	OpMove   // node repositioned within its parent
	OpRemove // node detached from its parent
)

// String returns the string representation of the OpKind.
func (k OpKind) String() string {
	switch k {
	case OpCreateElement:
		return "CreateElement"
	case OpCreateText:
		return "CreateText"
	case OpSetText:
		return "SetText"
	case OpSetAttr:
		return "SetAttr"
	case OpRemoveAttr:
		return "RemoveAttr"
	case OpInsert:
		return "Insert"
	case OpMove:
		return "Move"
	case OpRemove:
		return "Remove"
	default:
		return "Unknown"
	}
}

// Op is a single logged mutation.
type Op struct {
	Kind   OpKind
	Node   string // target node ID
	Parent string // parent node ID for Insert/Move/Remove
	Ref    string // reference sibling ID for Insert/Move ("" = append)
	Tag    string // for CreateElement
	Name   string // attribute name
	Value  string // text content or attribute value
}

// String formats the op for logs and the CLI.
func (o Op) String() string {
	switch o.Kind {
	case OpCreateElement:
		return fmt.Sprintf("%s %s <%s>", o.Kind, o.Node, o.Tag)
	case OpCreateText:
		return fmt.Sprintf("%s %s %q", o.Kind, o.Node, o.Value)
	case OpSetText:
		return fmt.Sprintf("%s %s %q", o.Kind, o.Node, o.Value)
	case OpSetAttr:
		return fmt.Sprintf("%s %s %s=%q", o.Kind, o.Node, o.Name, o.Value)
	case OpRemoveAttr:
		return fmt.Sprintf("%s %s %s", o.Kind, o.Node, o.Name)
	case OpInsert, OpMove:
		if o.Ref == "" {
			return fmt.Sprintf("%s %s into %s", o.Kind, o.Node, o.Parent)
		}
		return fmt.Sprintf("%s %s into %s before %s", o.Kind, o.Node, o.Parent, o.Ref)
	case OpRemove:
		return fmt.Sprintf("%s %s from %s", o.Kind, o.Node, o.Parent)
	default:
		return o.Kind.String()
	}
}

// Document is the in-memory render target. The zero value is not usable;
// call New.
type Document struct {
	nextID int
	root   *node
	ops    []Op

	// FailOn, when non-nil, is consulted before every mutation; a non-nil
	// return aborts the operation with that error. Used by tests to
	// exercise render-target failure propagation.
	FailOn func(Op) error
}

// New creates an empty document with a root container.
func New() *Document {
	d := &Document{}
	d.root = &node{doc: d, id: "root", element: true, tag: "root"}
	return d
}

// Root returns the document's root insertion target.
func (d *Document) Root() dom.Parent {
	return (*parentNode)(d.root)
}

// Ops returns the mutations recorded so far.
func (d *Document) Ops() []Op {
	return d.ops
}

// ResetOps clears the operation log, typically between two render passes.
func (d *Document) ResetOps() {
	d.ops = nil
}

// CountOps returns the number of logged operations of the given kinds, or
// all operations when no kind is given.
func (d *Document) CountOps(kinds ...OpKind) int {
	if len(kinds) == 0 {
		return len(d.ops)
	}
	count := 0
	for _, op := range d.ops {
		for _, k := range kinds {
			if op.Kind == k {
				count++
			}
		}
	}
	return count
}

// Render serializes the live tree under the root to an HTML-ish string.
func (d *Document) Render() string {
	var b strings.Builder
	for _, c := range d.root.children {
		c.render(&b)
	}
	return b.String()
}

// CreateElement implements dom.Document.
func (d *Document) CreateElement(tag string) (dom.Node, error) {
	d.nextID++
	n := &node{doc: d, id: fmt.Sprintf("e%d", d.nextID), element: true, tag: tag}
	if err := d.log(Op{Kind: OpCreateElement, Node: n.id, Tag: tag}); err != nil {
		return nil, err
	}
	return n, nil
}

// CreateText implements dom.Document.
func (d *Document) CreateText(content string) (dom.Node, error) {
	d.nextID++
	n := &node{doc: d, id: fmt.Sprintf("t%d", d.nextID), text: content}
	if err := d.log(Op{Kind: OpCreateText, Node: n.id, Value: content}); err != nil {
		return nil, err
	}
	return n, nil
}

func (d *Document) log(op Op) error {
	if d.FailOn != nil {
		if err := d.FailOn(op); err != nil {
			return err
		}
	}
	d.ops = append(d.ops, op)
	return nil
}

// NodeID returns the identifier of a handle created by this package, or ""
// for foreign handles.
func NodeID(h dom.Node) string {
	if n, ok := h.(*node); ok {
		return n.id
	}
	return ""
}

// node is a live in-memory node.
type node struct {
	doc      *Document
	id       string
	element  bool
	tag      string
	text     string
	names    []string
	values   map[string]string
	parent   *node
	children []*node
}

// ID returns the node's identifier, useful in test assertions.
func (n *node) ID() string { return n.id }

// SetText implements dom.Node.
func (n *node) SetText(content string) error {
	if n.element {
		return dom.Failf(dom.ErrNotFound, "memdom: set text on element %s", n.id)
	}
	if err := n.doc.log(Op{Kind: OpSetText, Node: n.id, Value: content}); err != nil {
		return err
	}
	n.text = content
	return nil
}

// SetAttribute implements dom.Node.
func (n *node) SetAttribute(name, value string) error {
	if !n.element {
		return dom.Failf(dom.ErrNotFound, "memdom: set attribute on text %s", n.id)
	}
	if err := n.doc.log(Op{Kind: OpSetAttr, Node: n.id, Name: name, Value: value}); err != nil {
		return err
	}
	if n.values == nil {
		n.values = make(map[string]string)
	}
	if _, ok := n.values[name]; !ok {
		n.names = append(n.names, name)
	}
	n.values[name] = value
	return nil
}

// RemoveAttribute implements dom.Node.
func (n *node) RemoveAttribute(name string) error {
	if err := n.doc.log(Op{Kind: OpRemoveAttr, Node: n.id, Name: name}); err != nil {
		return err
	}
	if _, ok := n.values[name]; ok {
		delete(n.values, name)
		for i, nm := range n.names {
			if nm == name {
				n.names = append(n.names[:i], n.names[i+1:]...)
				break
			}
		}
	}
	return nil
}

// AsParent implements dom.Node.
func (n *node) AsParent() (dom.Parent, error) {
	if !n.element {
		return nil, dom.Failf(dom.ErrNotParent, "memdom: text node %s", n.id)
	}
	return (*parentNode)(n), nil
}

// parentNode is the insertion capability of an element node.
type parentNode node

// InsertBefore implements dom.Parent. Inserting an attached child of the
// same parent moves it.
func (p *parentNode) InsertBefore(child, ref dom.Node) error {
	if ref == nil {
		return p.Append(child)
	}
	n := (*node)(p)
	c, err := n.resolve(child)
	if err != nil {
		return err
	}
	r, err := n.resolve(ref)
	if err != nil {
		return err
	}
	if r.parent != n {
		return dom.Failf(dom.ErrNotFound, "memdom: reference %s is not a child of %s", r.id, n.id)
	}
	kind := OpInsert
	if c.parent == n {
		kind = OpMove
	}
	if err := n.doc.log(Op{Kind: kind, Node: c.id, Parent: n.id, Ref: r.id}); err != nil {
		return err
	}
	detach(c)
	for i, sib := range n.children {
		if sib == r {
			n.children = append(n.children[:i], append([]*node{c}, n.children[i:]...)...)
			c.parent = n
			return nil
		}
	}
	return dom.Failf(dom.ErrNotFound, "memdom: reference %s vanished from %s", r.id, n.id)
}

// Append implements dom.Parent.
func (p *parentNode) Append(child dom.Node) error {
	n := (*node)(p)
	c, err := n.resolve(child)
	if err != nil {
		return err
	}
	kind := OpInsert
	if c.parent == n {
		kind = OpMove
	}
	if err := n.doc.log(Op{Kind: kind, Node: c.id, Parent: n.id}); err != nil {
		return err
	}
	detach(c)
	c.parent = n
	n.children = append(n.children, c)
	return nil
}

// RemoveChild implements dom.Parent.
func (p *parentNode) RemoveChild(child dom.Node) error {
	n := (*node)(p)
	c, err := n.resolve(child)
	if err != nil {
		return err
	}
	if c.parent != n {
		return dom.Failf(dom.ErrDetached, "memdom: %s is not a child of %s", c.id, n.id)
	}
	if err := n.doc.log(Op{Kind: OpRemove, Node: c.id, Parent: n.id}); err != nil {
		return err
	}
	detach(c)
	return nil
}

func (n *node) resolve(h dom.Node) (*node, error) {
	if h == nil {
		return nil, dom.Failf(dom.ErrNotFound, "memdom: nil handle")
	}
	c, ok := h.(*node)
	if !ok || c.doc != n.doc {
		return nil, dom.Failf(dom.ErrNotFound, "memdom: foreign handle %v", h)
	}
	return c, nil
}

func detach(c *node) {
	if c.parent == nil {
		return
	}
	sibs := c.parent.children
	for i, sib := range sibs {
		if sib == c {
			c.parent.children = append(sibs[:i], sibs[i+1:]...)
			break
		}
	}
	c.parent = nil
}

func (n *node) render(b *strings.Builder) {
	if !n.element {
		b.WriteString(n.text)
		return
	}
	b.WriteByte('<')
	b.WriteString(n.tag)
	for _, name := range n.names {
		fmt.Fprintf(b, " %s=%q", name, n.values[name])
	}
	b.WriteByte('>')
	for _, c := range n.children {
		c.render(b)
	}
	fmt.Fprintf(b, "</%s>", n.tag)
}
