// Package vdom implements the virtual-tree reconciliation engine: the keyed
// node model, the mount/patch/remove operations that keep a live rendered
// tree in sync with successive virtual trees, and the component status cell
// that decides when a subtree must be re-diffed.
//
// # Model
//
// A tree is built from KeyedNode values, each pairing an optional Key with a
// VNode of one of four kinds: Text, Element, List and Component. Keys carry
// identity across renders; the keyed diff matches list children by Key
// rather than position, so reordering a list moves backing nodes instead of
// recreating them.
//
// # Reconciliation
//
// The engine exposes three operations:
//
//	tree.Mount(doc, parent, next)      // first render
//	next.Patch(old, doc, parent, nil)  // subsequent renders; old is consumed
//	tree.Remove(parent)                // teardown
//
// All three run synchronously to completion on the goroutine that owns the
// live tree; there is no internal parallelism. The render target is injected
// through the pkg/dom capability interfaces, and its failures propagate
// unchanged with no retries and no rollback.
//
// # Components
//
// A Component instance holds props, events, state and a Status cell. The
// engine re-renders a component's cached subtree only when the cell reports
// dirty props or dirty state; otherwise the patch short-circuits and the
// live subtree is left untouched. Status.SetState is the sole self-triggered
// re-render path: it mutates the cell, marks it dirty and notifies the
// application root, which schedules a later top-level patch pass.
package vdom
