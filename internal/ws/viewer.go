package ws

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"nhooyr.io/websocket"
)

const (
	sendBuffer   = 256
	writeTimeout = 10 * time.Second
)

// Conn is the subset of *websocket.Conn the hub needs; tests substitute a
// fake.
type Conn interface {
	Write(ctx context.Context, typ websocket.MessageType, p []byte) error
	Close(code websocket.StatusCode, reason string) error
}

// Viewer is one live subscription, tagged with a role for its lifetime.
// Messages are queued on a buffered channel and written by Pump so a slow
// socket never blocks a broadcaster.
type Viewer struct {
	ID   string
	Role Role

	conn      Conn
	send      chan []byte
	closeOnce sync.Once
}

func NewViewer(conn Conn, role Role) *Viewer {
	return &Viewer{
		ID:   uuid.New().String(),
		Role: role,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
}

// trySend queues a message without blocking. A full buffer means the viewer
// cannot keep up and is treated as a failed delivery.
func (v *Viewer) trySend(msg []byte) bool {
	select {
	case v.send <- msg:
		return true
	default:
		return false
	}
}

func (v *Viewer) close() {
	v.closeOnce.Do(func() {
		close(v.send)
		_ = v.conn.Close(websocket.StatusNormalClosure, "")
	})
}

// Pump writes queued messages to the socket until the send channel is closed
// or a write fails. A write failure closes the socket; the read loop then
// unblocks and the owner disconnects the viewer.
func (v *Viewer) Pump(ctx context.Context) {
	for msg := range v.send {
		wctx, cancel := context.WithTimeout(ctx, writeTimeout)
		err := v.conn.Write(wctx, websocket.MessageText, msg)
		cancel()
		if err != nil {
			_ = v.conn.Close(websocket.StatusAbnormalClosure, "write failed")
			return
		}
	}
}
