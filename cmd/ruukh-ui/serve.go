package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pepsighan/ruukh-ui/pkg/app"
	"github.com/pepsighan/ruukh-ui/pkg/server"
	"github.com/pepsighan/ruukh-ui/pkg/vdom"
)

func serveCmd() *cobra.Command {
	var (
		addr     string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo clock over websockets",
		Long: `Start the session server with a demo clock component. Every
connected client receives the mount batch and then a patch batch
per tick.

Endpoints:
  /ws       session websocket
  /healthz  liveness
  /metrics  Prometheus metrics

Examples:
  ruukh-ui serve
  ruukh-ui serve --addr :3000 --interval 250ms`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, interval)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "Clock tick interval")

	return cmd
}

func runServe(addr string, interval time.Duration) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	root := func(notify func()) app.RenderFunc {
		status := vdom.NewStatus[clockState](notify)
		return func() *vdom.KeyedNode {
			return vdom.Unkeyed(vdom.ComponentNode(&clock{
				status:   status,
				interval: interval,
			}))
		}
	}

	srv := server.New(&server.Config{
		Address:     addr,
		CheckOrigin: func(*http.Request) bool { return true },
	}, root, server.WithLogger(logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx)
}

type clockState struct {
	now time.Time
}

// clock re-renders itself on a timer through its status cell.
type clock struct {
	status   *vdom.Status[clockState]
	interval time.Duration
	now      time.Time
	retune   chan time.Duration
	stop     chan struct{}
}

func (c *clock) Render() *vdom.KeyedNode {
	shown := c.now
	if shown.IsZero() {
		shown = time.Now()
	}
	return vdom.Unkeyed(vdom.Element("time", []vdom.Attr{{Name: "class", Value: "clock"}},
		vdom.Unkeyed(vdom.TextNode(shown.Format(time.RFC3339)))))
}

func (c *clock) Update(next vdom.Component) any {
	nc := next.(*clock)
	if c.interval == nc.interval {
		return nil
	}
	prev := c.interval
	c.interval = nc.interval
	c.status.MarkPropsDirty()
	return prev
}

func (c *clock) RefreshState()        { c.now = c.status.Refresh().now }
func (c *clock) TakeStateDirty() bool { return c.status.TakeStateDirty() }
func (c *clock) TakePropsDirty() bool { return c.status.TakePropsDirty() }

func (c *clock) Created() {
	c.stop = make(chan struct{})
	c.retune = make(chan time.Duration, 1)
	go c.run(c.interval)
}

func (c *clock) run(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case d := <-c.retune:
			ticker.Reset(d)
		case now := <-ticker.C:
			c.status.SetState(func(s *clockState) { s.now = now })
		}
	}
}

// Updated retunes the running ticker to the interval adopted by Update.
// Only the engine goroutine sends on retune, so draining any undelivered
// value first keeps the send non-blocking and the newest interval wins.
func (c *clock) Updated(prev any) {
	select {
	case <-c.retune:
	default:
	}
	c.retune <- c.interval
	fmt.Fprintf(os.Stderr, "clock interval changed from %v to %v\n", prev, c.interval)
}

func (c *clock) Mounted() {}

func (c *clock) Destroyed() {
	if c.stop != nil {
		close(c.stop)
	}
}
