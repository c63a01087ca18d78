// Package metrics exposes Prometheus instrumentation for the render engine.
//
// The Document decorator wraps any render target and counts the mutations
// flowing through it by kind. The pass helpers time whole render passes and
// record their outcome. Everything registers through promauto, so wiring a
// custom registry is a one-option change.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pepsighan/ruukh-ui/pkg/dom"
)

// Config configures the metrics set.
type Config struct {
	// Namespace is the metrics namespace (default: "ruukhui").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for pass duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// Option configures the metrics set.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) { c.Namespace = namespace }
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) { c.ConstLabels = labels }
}

// WithBuckets sets the pass duration histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) { c.Buckets = buckets }
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) { c.Registry = registry }
}

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	opsTotal       *prometheus.CounterVec
	passDuration   prometheus.Histogram
	passesTotal    *prometheus.CounterVec
	batchBytes     prometheus.Histogram
	activeSessions prometheus.Gauge
}

// New creates and registers the metrics set.
func New(opts ...Option) *Metrics {
	config := Config{
		Namespace: "ruukhui",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		opsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "render_ops_total",
			Help:        "Total render mutations by operation kind",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		passDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "render_pass_duration_seconds",
			Help:        "Render pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		passesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "render_passes_total",
			Help:        "Total render passes by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		batchBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "batch_bytes",
			Help:        "Encoded batch size in bytes",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{64, 256, 1024, 4096, 16384, 65536},
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "active_sessions",
			Help:        "Number of live display sessions",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// TimePass starts timing a render pass. The returned func records the
// duration and outcome when the pass finishes.
func (m *Metrics) TimePass() func(err error) {
	start := time.Now()
	return func(err error) {
		m.passDuration.Observe(time.Since(start).Seconds())
		status := "ok"
		if err != nil {
			status = "error"
		}
		m.passesTotal.WithLabelValues(status).Inc()
	}
}

// ObserveBatch records the size of an encoded batch.
func (m *Metrics) ObserveBatch(bytes int) {
	m.batchBytes.Observe(float64(bytes))
}

// SessionOpened increments the live session gauge.
func (m *Metrics) SessionOpened() { m.activeSessions.Inc() }

// SessionClosed decrements the live session gauge.
func (m *Metrics) SessionClosed() { m.activeSessions.Dec() }

// Document wraps a render target so every mutation increments the op
// counter before reaching the target.
func (m *Metrics) Document(doc dom.Document) dom.Document {
	return &instrumentedDoc{inner: doc, m: m}
}

// Parent wraps an insertion target the same way, for the root handle that
// never passes through Document.
func (m *Metrics) Parent(p dom.Parent) dom.Parent {
	return &instrumentedParent{inner: p, m: m}
}

type instrumentedDoc struct {
	inner dom.Document
	m     *Metrics
}

func (d *instrumentedDoc) CreateElement(tag string) (dom.Node, error) {
	n, err := d.inner.CreateElement(tag)
	if err != nil {
		return nil, err
	}
	d.m.opsTotal.WithLabelValues("create_element").Inc()
	return &instrumentedNode{inner: n, m: d.m}, nil
}

func (d *instrumentedDoc) CreateText(content string) (dom.Node, error) {
	n, err := d.inner.CreateText(content)
	if err != nil {
		return nil, err
	}
	d.m.opsTotal.WithLabelValues("create_text").Inc()
	return &instrumentedNode{inner: n, m: d.m}, nil
}

type instrumentedNode struct {
	inner dom.Node
	m     *Metrics
}

func (n *instrumentedNode) SetText(content string) error {
	if err := n.inner.SetText(content); err != nil {
		return err
	}
	n.m.opsTotal.WithLabelValues("set_text").Inc()
	return nil
}

func (n *instrumentedNode) SetAttribute(name, value string) error {
	if err := n.inner.SetAttribute(name, value); err != nil {
		return err
	}
	n.m.opsTotal.WithLabelValues("set_attr").Inc()
	return nil
}

func (n *instrumentedNode) RemoveAttribute(name string) error {
	if err := n.inner.RemoveAttribute(name); err != nil {
		return err
	}
	n.m.opsTotal.WithLabelValues("remove_attr").Inc()
	return nil
}

func (n *instrumentedNode) AsParent() (dom.Parent, error) {
	p, err := n.inner.AsParent()
	if err != nil {
		return nil, err
	}
	return &instrumentedParent{inner: p, m: n.m}, nil
}

type instrumentedParent struct {
	inner dom.Parent
	m     *Metrics
}

// unwrap recovers the underlying handle so the target never sees a wrapped
// one it would reject as foreign.
func unwrap(h dom.Node) dom.Node {
	if w, ok := h.(*instrumentedNode); ok {
		return w.inner
	}
	return h
}

func (p *instrumentedParent) InsertBefore(node, ref dom.Node) error {
	if err := p.inner.InsertBefore(unwrap(node), unwrap(ref)); err != nil {
		return err
	}
	p.m.opsTotal.WithLabelValues("insert").Inc()
	return nil
}

func (p *instrumentedParent) Append(node dom.Node) error {
	if err := p.inner.Append(unwrap(node)); err != nil {
		return err
	}
	p.m.opsTotal.WithLabelValues("insert").Inc()
	return nil
}

func (p *instrumentedParent) RemoveChild(node dom.Node) error {
	if err := p.inner.RemoveChild(unwrap(node)); err != nil {
		return err
	}
	p.m.opsTotal.WithLabelValues("remove").Inc()
	return nil
}
