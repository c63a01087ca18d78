// Package dom defines the capability surface the reconciliation engine
// requires from a rendering target.
//
// The engine never talks to a concrete tree directly. It is handed a
// Document for creating nodes and a Parent for positioning them, and every
// node it has created is manipulated through the Node handle the target
// returned. Implementations include the in-memory target in pkg/memdom
// (tests, CLI inspection) and the op-streaming target in pkg/remotedom.
//
// All operations share a single failure category: the target rejected the
// call (detached parent, unknown node, refused insertion). Such errors
// propagate up the mount/patch/remove call chain unchanged; the engine never
// retries and never rolls back siblings that were already updated.
package dom

import (
	"errors"
	"fmt"
)

// Sentinel errors for render-target failures. Implementations wrap these so
// callers can test with errors.Is.
var (
	// ErrDetached is returned when an operation targets a node that is no
	// longer part of the live tree.
	ErrDetached = errors.New("dom: node is detached")

	// ErrNotFound is returned when a handle does not resolve to a live node.
	ErrNotFound = errors.New("dom: node not found")

	// ErrNotParent is returned by AsParent when the node cannot hold
	// children (e.g. a text node).
	ErrNotParent = errors.New("dom: node cannot act as a parent")
)

// Node is a handle to a single live node owned by the render target.
// The engine acquires a Node on mount, keeps it for the node's lifetime and
// releases it explicitly during removal.
type Node interface {
	// SetText replaces the node's text content.
	SetText(content string) error

	// SetAttribute sets or updates a named attribute.
	SetAttribute(name, value string) error

	// RemoveAttribute removes a named attribute. Removing an attribute that
	// is not present is not an error.
	RemoveAttribute(name string) error

	// AsParent returns a capability for inserting children into this node.
	AsParent() (Parent, error)
}

// Parent is a node usable as an insertion target for children.
type Parent interface {
	// InsertBefore inserts node immediately before ref. A nil ref appends.
	// Inserting a node that is already a child of this parent moves it.
	InsertBefore(node, ref Node) error

	// Append inserts node as the last child.
	Append(node Node) error

	// RemoveChild detaches node from this parent.
	RemoveChild(node Node) error
}

// Document creates nodes on the render target.
type Document interface {
	// CreateElement creates a detached element with the given tag.
	CreateElement(tag string) (Node, error)

	// CreateText creates a detached text node with the given content.
	CreateText(content string) (Node, error)
}

// Failf wraps err as a render-target failure with operation context.
func Failf(err error, format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, err)...)
}
