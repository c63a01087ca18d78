package vdom

// Component is the contract the engine drives a user component through.
//
// A concrete component holds its prop fields, event handlers, state fields
// and a Status cell supplied at construction time, wired to the application
// root's change notification. The engine never sees those internals; it only
// renders, forwards props during a patch, and consults the dirty flags.
//
// Instance lifetime follows the mounted slot, not the vnode shell: each
// render produces a fresh shell around a fresh instance, but when the shell
// lands on an already-mounted slot the engine forwards the new instance's
// props into the existing one via Update and discards the newcomer. The
// Status cell therefore persists across renders.
type Component interface {
	Lifecycle

	// Render produces the component's markup.
	Render() *KeyedNode

	// Update adopts props and events from next, a freshly built instance of
	// the same concrete type. Events are replaced unconditionally (handlers
	// are not comparable); props are compared field by field, and when any
	// differ the implementation marks the props-dirty flag on its Status
	// cell and returns the prior props value so the Updated hook can
	// observe the change. Returns nil when nothing changed.
	Update(next Component) (prevProps any)

	// RefreshState copies the mutated state out of the Status cell into the
	// component's own state fields. Invoked by the engine exactly once per
	// render pass, before Render.
	RefreshState()

	// TakeStateDirty reports and clears the state-dirty flag.
	TakeStateDirty() bool

	// TakePropsDirty reports and clears the props-dirty flag.
	TakePropsDirty() bool
}

// Lifecycle hooks, invoked by the engine at the matching transition points.
type Lifecycle interface {
	// Created is invoked once, right after the first render during mount.
	Created()

	// Updated is invoked on every patch where the props were dirty, with
	// the previous props value returned by Update.
	Updated(prevProps any)

	// Mounted is invoked once, after the component's subtree has been
	// attached to the live tree.
	Mounted()

	// Destroyed is invoked once, before teardown during removal.
	Destroyed()
}

// NopLifecycle is an embeddable no-op Lifecycle implementation for
// components that only need a subset of the hooks.
type NopLifecycle struct{}

func (NopLifecycle) Created()    {}
func (NopLifecycle) Updated(any) {}
func (NopLifecycle) Mounted()    {}
func (NopLifecycle) Destroyed()  {}
