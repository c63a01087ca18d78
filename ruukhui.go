// Package ruukhui provides the public API for the virtual tree engine.
//
// This is the recommended import for most applications:
//
//	import ruukhui "github.com/pepsighan/ruukh-ui"
//
// Usage:
//
//	tree := ruukhui.Unkeyed(ruukhui.Element("div", nil,
//	    ruukhui.Unkeyed(ruukhui.Text("hello"))))
//	err := tree.Mount(doc, root, nil)
package ruukhui

import (
	"github.com/pepsighan/ruukh-ui/pkg/app"
	"github.com/pepsighan/ruukh-ui/pkg/dom"
	"github.com/pepsighan/ruukh-ui/pkg/vdom"
)

// =============================================================================
// Tree construction (re-export from pkg/vdom)
// =============================================================================

// VNode is a single virtual node.
type VNode = vdom.VNode

// KeyedNode is a virtual node together with its optional identity key.
type KeyedNode = vdom.KeyedNode

// Attr is one element attribute.
type Attr = vdom.Attr

// Key identifies a child across renders of the same list.
type Key = vdom.Key

// Text creates a text node.
var Text = vdom.TextNode

// Element creates an element node.
var Element = vdom.Element

// List creates a list node.
var List = vdom.List

// ComponentNode wraps a component instance into a node.
var ComponentNode = vdom.ComponentNode

// Keyed attaches an identity key to a node.
var Keyed = vdom.Keyed

// Unkeyed wraps a node without a key.
var Unkeyed = vdom.Unkeyed

// IntKey, UintKey and StringKey build keys of each variant; keys of
// different variants never compare equal.
var (
	IntKey    = vdom.IntKey
	UintKey   = vdom.UintKey
	StringKey = vdom.StringKey
)

// =============================================================================
// Components
// =============================================================================

// Component is the contract the engine drives a user component through.
type Component = vdom.Component

// Lifecycle is the set of component lifecycle hooks.
type Lifecycle = vdom.Lifecycle

// NopLifecycle is an embeddable no-op Lifecycle.
type NopLifecycle = vdom.NopLifecycle

// Status is the shared state cell backing a component. It is generic, so it
// cannot be aliased here; use vdom.NewStatus directly:
//
//	status := vdom.NewStatus[myState](app.Notifier())

// =============================================================================
// Render targets (re-export from pkg/dom)
// =============================================================================

// Document allocates backing nodes for a render target.
type Document = dom.Document

// Node is the mutation handle of one backing node.
type Node = dom.Node

// Parent is the insertion capability of a backing node.
type Parent = dom.Parent

// Render target sentinel errors.
var (
	ErrDetached  = dom.ErrDetached
	ErrNotFound  = dom.ErrNotFound
	ErrNotParent = dom.ErrNotParent
)

// =============================================================================
// Application root (re-export from pkg/app)
// =============================================================================

// App is the root scheduler for one display session.
type App = app.App

// RenderFunc produces the root tree for one render pass.
type RenderFunc = app.RenderFunc

// NewApp creates an app rendering into root via doc.
var NewApp = app.New
