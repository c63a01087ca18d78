// Package remotedom is a render target whose display lives on the other
// side of a connection.
//
// It implements the pkg/dom capability surface by assigning numeric node
// identifiers and buffering the resulting protocol ops. After a render pass
// the application calls Flush, which seals the buffered ops into a
// sequence-numbered batch and hands the encoded bytes to a Sink. The local
// side keeps only the parent links it needs to tell inserts from moves; the
// actual tree is materialized by the receiver.
package remotedom

import (
	"context"
	"log/slog"

	"github.com/pepsighan/ruukh-ui/pkg/dom"
	"github.com/pepsighan/ruukh-ui/pkg/protocol"
)

// Sink receives encoded batches. Implementations must be safe to call from
// the goroutine that owns the Document; they need no internal ordering
// because Flush is never concurrent with itself.
type Sink interface {
	WriteBatch(ctx context.Context, data []byte) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, data []byte) error

// WriteBatch implements Sink.
func (f SinkFunc) WriteBatch(ctx context.Context, data []byte) error {
	return f(ctx, data)
}

// Document is the remote render target. It is owned by one goroutine, like
// every render target.
type Document struct {
	sink     Sink
	logger   *slog.Logger
	observer func(bytes int)
	nextID   uint64
	seq      uint64
	pending  []protocol.Op
	root     *node
}

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger used for flush diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Document) { d.logger = logger }
}

// WithBatchObserver registers a callback invoked with the encoded size of
// every successfully flushed batch.
func WithBatchObserver(observer func(bytes int)) Option {
	return func(d *Document) { d.observer = observer }
}

// New creates a remote document writing batches to sink.
func New(sink Sink, opts ...Option) *Document {
	d := &Document{sink: sink, logger: slog.Default()}
	d.root = &node{doc: d, id: 0, element: true}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Root returns the remote display root as an insertion target.
func (d *Document) Root() dom.Parent {
	return (*parentNode)(d.root)
}

// Pending returns the number of ops buffered since the last flush.
func (d *Document) Pending() int {
	return len(d.pending)
}

// Flush seals the buffered ops into the next batch and writes it to the
// sink. A flush with no pending ops writes nothing. The sequence number is
// consumed only when the write succeeds, so a failed flush can be retried
// without creating a gap.
func (d *Document) Flush(ctx context.Context) error {
	if len(d.pending) == 0 {
		return nil
	}
	b := &protocol.Batch{Seq: d.seq + 1, Ops: d.pending}
	data := b.Marshal()
	if err := d.sink.WriteBatch(ctx, data); err != nil {
		return dom.Failf(err, "remotedom: flush batch %d", b.Seq)
	}
	d.seq = b.Seq
	d.pending = nil
	if d.observer != nil {
		d.observer(len(data))
	}
	d.logger.Debug("flushed batch",
		slog.Uint64("seq", b.Seq),
		slog.Int("ops", len(b.Ops)),
		slog.Int("bytes", len(data)))
	return nil
}

// CreateElement implements dom.Document.
func (d *Document) CreateElement(tag string) (dom.Node, error) {
	d.nextID++
	n := &node{doc: d, id: d.nextID, element: true}
	d.push(protocol.Op{Code: protocol.OpCreateElement, Node: n.id, Tag: tag})
	return n, nil
}

// CreateText implements dom.Document.
func (d *Document) CreateText(content string) (dom.Node, error) {
	d.nextID++
	n := &node{doc: d, id: d.nextID}
	d.push(protocol.Op{Code: protocol.OpCreateText, Node: n.id, Value: content})
	return n, nil
}

func (d *Document) push(op protocol.Op) {
	d.pending = append(d.pending, op)
}

// node is the local shadow of a remote node: just enough to validate the
// engine's calls and distinguish inserts from moves.
type node struct {
	doc     *Document
	id      uint64
	element bool
	parent  *node
}

// ID returns the node's wire identifier.
func (n *node) ID() uint64 { return n.id }

// SetText implements dom.Node.
func (n *node) SetText(content string) error {
	if n.element {
		return dom.Failf(dom.ErrNotFound, "remotedom: set text on element #%d", n.id)
	}
	n.doc.push(protocol.Op{Code: protocol.OpSetText, Node: n.id, Value: content})
	return nil
}

// SetAttribute implements dom.Node.
func (n *node) SetAttribute(name, value string) error {
	if !n.element {
		return dom.Failf(dom.ErrNotFound, "remotedom: set attribute on text #%d", n.id)
	}
	n.doc.push(protocol.Op{Code: protocol.OpSetAttr, Node: n.id, Name: name, Value: value})
	return nil
}

// RemoveAttribute implements dom.Node.
func (n *node) RemoveAttribute(name string) error {
	if !n.element {
		return dom.Failf(dom.ErrNotFound, "remotedom: remove attribute on text #%d", n.id)
	}
	n.doc.push(protocol.Op{Code: protocol.OpRemoveAttr, Node: n.id, Name: name})
	return nil
}

// AsParent implements dom.Node.
func (n *node) AsParent() (dom.Parent, error) {
	if !n.element {
		return nil, dom.Failf(dom.ErrNotParent, "remotedom: text node #%d", n.id)
	}
	return (*parentNode)(n), nil
}

// parentNode is the insertion capability of an element node.
type parentNode node

// InsertBefore implements dom.Parent. Reinserting a current child emits a
// move instead of an insert.
func (p *parentNode) InsertBefore(child, ref dom.Node) error {
	n := (*node)(p)
	c, err := n.resolve(child)
	if err != nil {
		return err
	}
	var refID uint64
	if ref != nil {
		r, err := n.resolve(ref)
		if err != nil {
			return err
		}
		refID = r.id
	}
	code := protocol.OpInsert
	if c.parent == n {
		code = protocol.OpMove
	}
	n.doc.push(protocol.Op{Code: code, Node: c.id, Parent: n.id, Ref: refID})
	c.parent = n
	return nil
}

// Append implements dom.Parent.
func (p *parentNode) Append(child dom.Node) error {
	return p.InsertBefore(child, nil)
}

// RemoveChild implements dom.Parent.
func (p *parentNode) RemoveChild(child dom.Node) error {
	n := (*node)(p)
	c, err := n.resolve(child)
	if err != nil {
		return err
	}
	if c.parent != n {
		return dom.Failf(dom.ErrDetached, "remotedom: #%d is not a child of #%d", c.id, n.id)
	}
	n.doc.push(protocol.Op{Code: protocol.OpRemove, Node: c.id, Parent: n.id})
	c.parent = nil
	return nil
}

func (n *node) resolve(h dom.Node) (*node, error) {
	if h == nil {
		return nil, dom.Failf(dom.ErrNotFound, "remotedom: nil handle")
	}
	c, ok := h.(*node)
	if !ok || c.doc != n.doc {
		return nil, dom.Failf(dom.ErrNotFound, "remotedom: foreign handle %v", h)
	}
	return c, nil
}
