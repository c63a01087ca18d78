// Package server exposes component trees over HTTP.
//
// Each websocket connection becomes a display session: a remote render
// target is created for the connection, the root component tree is mounted
// into it, and every render pass streams one batch of mutations to the
// client. Traffic is one-way; the read side of the socket only detects
// disconnects. The server also serves liveness and Prometheus endpoints.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pepsighan/ruukh-ui/pkg/app"
	"github.com/pepsighan/ruukh-ui/pkg/metrics"
	"github.com/pepsighan/ruukh-ui/pkg/remotedom"
)

// RootFactory builds the root render function for one session. It receives
// the session's change notifier so component Status cells can schedule
// render passes.
type RootFactory func(notify func()) app.RenderFunc

// Server serves display sessions over websockets.
type Server struct {
	config   *Config
	root     RootFactory
	upgrader websocket.Upgrader
	metrics  *metrics.Metrics
	logger   *slog.Logger

	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMetrics sets the metrics set shared with sessions.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// New creates a server rendering root trees for each session. A nil config
// uses defaults.
func New(config *Config, root RootFactory, opts ...Option) *Server {
	if config == nil {
		config = DefaultConfig()
	} else {
		config.fillDefaults()
	}
	s := &Server{
		config: config,
		root:   root,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		logger: slog.Default().With(slog.String("component", "server")),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	return s
}

// Router returns the HTTP routes: /healthz, /metrics and the /ws session
// endpoint. Callers can mount it under a larger router.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/ws", s.handleSession)
	return r
}

// ListenAndServe starts the HTTP server and blocks until ctx is cancelled,
// then shuts it down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Router(),
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", slog.String("address", s.config.Address))
		errc <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// handleSession upgrades the connection and runs one display session on it.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	id := ulid.Make().String()
	logger := s.logger.With(slog.String("session", id))
	s.metrics.SessionOpened()
	defer s.metrics.SessionClosed()
	logger.Info("session opened", slog.String("remote", r.RemoteAddr))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	doc := remotedom.New(remotedom.NewWebsocketSink(conn),
		remotedom.WithLogger(logger),
		remotedom.WithBatchObserver(s.metrics.ObserveBatch))
	sess := app.New(
		s.metrics.Document(doc),
		s.metrics.Parent(doc.Root()),
		nil,
		app.WithLogger(logger),
		app.WithMetrics(s.metrics),
		app.WithFlush(doc.Flush),
	)
	sess.SetRender(s.root(sess.Notifier()))

	// Read pump. The client sends nothing meaningful; reading only
	// surfaces disconnects.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	err = sess.Run(ctx)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		logger.Info("session closed")
	default:
		logger.Error("session failed", slog.Any("error", err))
	}
}
