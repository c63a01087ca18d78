package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pepsighan/ruukh-ui/pkg/app"
	"github.com/pepsighan/ruukh-ui/pkg/metrics"
	"github.com/pepsighan/ruukh-ui/pkg/protocol"
	"github.com/pepsighan/ruukh-ui/pkg/vdom"
)

type greetState struct {
	name string
}

type greeter struct {
	vdom.NopLifecycle
	status *vdom.Status[greetState]
	name   string
}

func (g *greeter) Render() *vdom.KeyedNode {
	name := g.name
	if name == "" {
		name = "world"
	}
	return vdom.Unkeyed(vdom.Element("p", nil,
		vdom.Unkeyed(vdom.TextNode(fmt.Sprintf("hello %s", name)))))
}

func (g *greeter) Update(next vdom.Component) any { return nil }
func (g *greeter) RefreshState()                  { g.name = g.status.Refresh().name }
func (g *greeter) TakeStateDirty() bool           { return g.status.TakeStateDirty() }
func (g *greeter) TakePropsDirty() bool           { return g.status.TakePropsDirty() }

func newTestServer(t *testing.T, root RootFactory) *httptest.Server {
	t.Helper()
	s := New(&Config{
		CheckOrigin: func(*http.Request) bool { return true },
	}, root, WithMetrics(metrics.New(metrics.WithRegistry(prometheus.NewRegistry()))))
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return ts
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readBatch(t *testing.T, conn *websocket.Conn) *protocol.Batch {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	kind, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read batch: %v", err)
	}
	if kind != websocket.BinaryMessage {
		t.Fatalf("message type = %d, want binary", kind)
	}
	b, err := protocol.DecodeBatch(data)
	if err != nil {
		t.Fatalf("decode batch: %v", err)
	}
	return b
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, func(func()) app.RenderFunc {
		return func() *vdom.KeyedNode { return vdom.Unkeyed(vdom.TextNode("x")) }
	})
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, func(func()) app.RenderFunc {
		return func() *vdom.KeyedNode { return vdom.Unkeyed(vdom.TextNode("x")) }
	})
	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestSessionReceivesMountBatch(t *testing.T) {
	ts := newTestServer(t, func(notify func()) app.RenderFunc {
		status := vdom.NewStatus[greetState](notify)
		return func() *vdom.KeyedNode {
			return vdom.Unkeyed(vdom.ComponentNode(&greeter{status: status}))
		}
	})
	conn := dialWS(t, ts)

	b := readBatch(t, conn)
	if b.Seq != 1 {
		t.Errorf("first batch seq = %d, want 1", b.Seq)
	}
	var sawElement, sawText bool
	for _, op := range b.Ops {
		switch op.Code {
		case protocol.OpCreateElement:
			if op.Tag == "p" {
				sawElement = true
			}
		case protocol.OpCreateText:
			if op.Value == "hello world" {
				sawText = true
			}
		}
	}
	if !sawElement || !sawText {
		t.Errorf("mount batch = %v, want a <p> element and its text", b.Ops)
	}
}

func TestStateChangeStreamsPatchBatch(t *testing.T) {
	var status *vdom.Status[greetState]
	ready := make(chan struct{})
	ts := newTestServer(t, func(notify func()) app.RenderFunc {
		status = vdom.NewStatus[greetState](notify)
		close(ready)
		return func() *vdom.KeyedNode {
			return vdom.Unkeyed(vdom.ComponentNode(&greeter{status: status}))
		}
	})
	conn := dialWS(t, ts)

	if b := readBatch(t, conn); b.Seq != 1 {
		t.Fatalf("first batch seq = %d, want 1", b.Seq)
	}
	<-ready
	status.SetState(func(s *greetState) { s.name = "ruukh" })

	b := readBatch(t, conn)
	if b.Seq != 2 {
		t.Errorf("second batch seq = %d, want 2", b.Seq)
	}
	if len(b.Ops) != 1 || b.Ops[0].Code != protocol.OpSetText || b.Ops[0].Value != "hello ruukh" {
		t.Errorf("patch batch = %v, want a single SetText to %q", b.Ops, "hello ruukh")
	}
}

func TestSessionEndpointRejectsPlainGet(t *testing.T) {
	ts := newTestServer(t, func(func()) app.RenderFunc {
		return func() *vdom.KeyedNode { return vdom.Unkeyed(vdom.TextNode("x")) }
	})
	resp, err := http.Get(ts.URL + "/ws")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		t.Error("plain GET on the session endpoint should not succeed")
	}
}
