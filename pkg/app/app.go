// Package app drives a component tree against a render target.
//
// An App owns the mounted tree and runs the render loop: state changes
// arrive through the notifier as wakeups on a single-slot channel, and each
// wakeup triggers one patch pass. All tree and target access happens on the
// goroutine that calls Run (or the synchronous Mount/Rerender/Unmount
// methods), which is what lets the engine and the Status cells go without
// locks.
package app

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/pepsighan/ruukh-ui/pkg/dom"
	"github.com/pepsighan/ruukh-ui/pkg/metrics"
	"github.com/pepsighan/ruukh-ui/pkg/vdom"
)

// RenderFunc produces the root of the tree for one pass. It is called once
// per pass; returning a fresh tree each time is the contract.
type RenderFunc func() *vdom.KeyedNode

// App is the root scheduler for one display session.
type App struct {
	doc    dom.Document
	root   dom.Parent
	render RenderFunc

	tree  *vdom.KeyedNode
	react chan struct{}

	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *metrics.Metrics
	flush   func(ctx context.Context) error
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger for pass diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

// WithTracer sets the tracer used to span render passes.
func WithTracer(tracer trace.Tracer) Option {
	return func(a *App) { a.tracer = tracer }
}

// WithMetrics records pass timings and outcomes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *App) { a.metrics = m }
}

// WithFlush runs after every successful pass, typically to flush a buffered
// render target such as a remote document.
func WithFlush(flush func(ctx context.Context) error) Option {
	return func(a *App) { a.flush = flush }
}

// New creates an app rendering into root via doc.
func New(doc dom.Document, root dom.Parent, render RenderFunc, opts ...Option) *App {
	a := &App{
		doc:    doc,
		root:   root,
		render: render,
		react:  make(chan struct{}, 1),
		logger: slog.Default(),
		tracer: otel.Tracer("ruukh-ui/app"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SetRender replaces the root render function. Components usually need the
// notifier before they can be built, so callers construct the app first,
// hand Notifier to their root factory, and set the result here. Must be
// called before the first pass.
func (a *App) SetRender(render RenderFunc) {
	a.render = render
}

// Notifier returns the change-notification hook for this app's Status
// cells. It coalesces: a wakeup already pending absorbs further calls, so a
// burst of state changes produces one pass. Safe to call from any
// goroutine.
func (a *App) Notifier() func() {
	return func() {
		select {
		case a.react <- struct{}{}:
		default:
		}
	}
}

// Mount runs the first render pass and attaches the tree.
func (a *App) Mount(ctx context.Context) error {
	return a.pass(ctx, "mount")
}

// Rerender runs one patch pass against the mounted tree.
func (a *App) Rerender(ctx context.Context) error {
	return a.pass(ctx, "patch")
}

// Unmount tears the tree down. The app can be mounted again afterwards.
func (a *App) Unmount(ctx context.Context) error {
	if a.tree == nil {
		return nil
	}
	err := a.tree.Remove(a.root)
	a.tree = nil
	if err != nil {
		return err
	}
	if a.flush != nil {
		return a.flush(ctx)
	}
	return nil
}

// Run mounts the tree if needed, then serves wakeups until ctx is done. A
// failed pass stops the loop and is returned; the tree is left as the pass
// left it.
func (a *App) Run(ctx context.Context) error {
	if a.tree == nil {
		if err := a.Mount(ctx); err != nil {
			return err
		}
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.react:
			if err := a.Rerender(ctx); err != nil {
				return err
			}
		}
	}
}

func (a *App) pass(ctx context.Context, kind string) (err error) {
	ctx, span := a.tracer.Start(ctx, "render."+kind)
	defer span.End()
	if a.metrics != nil {
		done := a.metrics.TimePass()
		defer func() { done(err) }()
	}

	fresh := a.render()
	if a.tree == nil {
		err = fresh.Mount(a.doc, a.root, nil)
	} else {
		err = fresh.Patch(a.tree, a.doc, a.root, nil)
	}
	// Mount and Patch both consume the old tree and hand every backing node
	// they touched to fresh, even on a failed pass. Keep fresh regardless so
	// a later Unmount tears down what is actually attached.
	a.tree = fresh
	if err != nil {
		a.logger.Error("render pass failed", slog.String("kind", kind), slog.Any("error", err))
		return err
	}
	if a.flush != nil {
		if err = a.flush(ctx); err != nil {
			a.logger.Error("flush failed", slog.Any("error", err))
			return err
		}
	}
	a.logger.Debug("render pass complete", slog.String("kind", kind))
	return nil
}
