package remotedom

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultWriteTimeout bounds a batch write when the context carries no
// deadline of its own.
const DefaultWriteTimeout = 10 * time.Second

// WebsocketSink streams batches over a websocket connection as binary
// messages. The connection is owned by the sink's caller; Flush is never
// concurrent, so no write mutex is needed.
type WebsocketSink struct {
	conn *websocket.Conn
}

// NewWebsocketSink wraps an established connection.
func NewWebsocketSink(conn *websocket.Conn) *WebsocketSink {
	return &WebsocketSink{conn: conn}
}

// WriteBatch implements Sink.
func (s *WebsocketSink) WriteBatch(ctx context.Context, data []byte) error {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(DefaultWriteTimeout)
	}
	if err := s.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.BinaryMessage, data)
}
