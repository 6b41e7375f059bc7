package ws

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
)

type fakeConn struct{}

func (fakeConn) Write(ctx context.Context, typ websocket.MessageType, p []byte) error {
	return nil
}

func (fakeConn) Close(code websocket.StatusCode, reason string) error {
	return nil
}

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"client":   RoleClient,
		"display":  RoleDisplay,
		"operator": RoleOperator,
		"":         RoleClient,
		"garbage":  RoleClient,
	}
	for in, want := range cases {
		if got := ParseRole(in); got != want {
			t.Fatalf("ParseRole(%q) = %q, want %q", in, got, want)
		}
	}
	if !RoleDisplay.ReceivesAudio() {
		t.Fatalf("display role must receive audio")
	}
	if RoleClient.ReceivesAudio() || RoleOperator.ReceivesAudio() {
		t.Fatalf("only display role receives audio")
	}
}

func TestBroadcastReachesAllRoles(t *testing.T) {
	h := NewHub(zerolog.Nop())
	a := NewViewer(fakeConn{}, RoleClient)
	b := NewViewer(fakeConn{}, RoleDisplay)
	h.Add(a)
	h.Add(b)

	h.Broadcast([]byte(`{"type":"status"}`), nil)

	for _, v := range []*Viewer{a, b} {
		select {
		case msg := <-v.send:
			if string(msg) != `{"type":"status"}` {
				t.Fatalf("unexpected message: %s", msg)
			}
		default:
			t.Fatalf("viewer %s did not receive broadcast", v.Role)
		}
	}
}

func TestBroadcastRoleFilter(t *testing.T) {
	h := NewHub(zerolog.Nop())
	client := NewViewer(fakeConn{}, RoleClient)
	display := NewViewer(fakeConn{}, RoleDisplay)
	h.Add(client)
	h.Add(display)

	filter := RoleDisplay
	h.Broadcast([]byte(`{"type":"audio"}`), &filter)

	select {
	case <-display.send:
	default:
		t.Fatalf("display viewer did not receive filtered broadcast")
	}
	select {
	case msg := <-client.send:
		t.Fatalf("client viewer received filtered broadcast: %s", msg)
	default:
	}
}

func TestBroadcastEvictsFullBuffer(t *testing.T) {
	h := NewHub(zerolog.Nop())
	stuck := NewViewer(fakeConn{}, RoleClient)
	healthy := NewViewer(fakeConn{}, RoleClient)
	h.Add(stuck)
	h.Add(healthy)

	for i := 0; i < sendBuffer; i++ {
		if !stuck.trySend([]byte("x")) {
			t.Fatalf("buffer filled early at %d", i)
		}
	}

	h.Broadcast([]byte("y"), nil)

	if h.Len() != 1 {
		t.Fatalf("expected stuck viewer evicted, hub has %d viewers", h.Len())
	}
	select {
	case msg := <-healthy.send:
		if string(msg) != "y" {
			t.Fatalf("unexpected message for healthy viewer: %s", msg)
		}
	default:
		t.Fatalf("eviction must not block delivery to other viewers")
	}
}

func TestRemoveIdempotent(t *testing.T) {
	h := NewHub(zerolog.Nop())
	v := NewViewer(fakeConn{}, RoleClient)
	h.Add(v)

	if !h.Remove(v) {
		t.Fatalf("first remove should report true")
	}
	if h.Remove(v) {
		t.Fatalf("second remove should be a no-op")
	}
	if h.Len() != 0 {
		t.Fatalf("expected empty hub")
	}
}

func TestEnvelopeShapes(t *testing.T) {
	var qu struct {
		Type  string            `json:"type"`
		Queue []json.RawMessage `json:"queue"`
	}
	if err := json.Unmarshal(QueueUpdate(nil), &qu); err != nil {
		t.Fatalf("queue_update unmarshal: %v", err)
	}
	if qu.Type != "queue_update" || qu.Queue == nil {
		t.Fatalf("queue_update must carry an empty array, got %+v", qu)
	}

	var cur struct {
		Type string          `json:"type"`
		Item json.RawMessage `json:"item"`
	}
	if err := json.Unmarshal(Current(nil), &cur); err != nil {
		t.Fatalf("current unmarshal: %v", err)
	}
	if cur.Type != "current" || string(cur.Item) != "null" {
		t.Fatalf("empty current must serialize item as null, got %+v", cur)
	}

	var st struct {
		Type           string `json:"type"`
		Online         int    `json:"online"`
		QueueLength    int    `json:"queue_length"`
		ProcessedCount int    `json:"processed_count"`
		Muted          bool   `json:"muted"`
	}
	if err := json.Unmarshal(Status(3, 2, 1, true), &st); err != nil {
		t.Fatalf("status unmarshal: %v", err)
	}
	if st.Type != "status" || st.Online != 3 || st.QueueLength != 2 || st.ProcessedCount != 1 || !st.Muted {
		t.Fatalf("unexpected status payload: %+v", st)
	}

	var au struct {
		Type string `json:"type"`
		Data []byte `json:"data"`
	}
	if err := json.Unmarshal(Audio([]byte{0x01, 0x02}), &au); err != nil {
		t.Fatalf("audio unmarshal: %v", err)
	}
	if au.Type != "audio" || len(au.Data) != 2 {
		t.Fatalf("unexpected audio payload: %+v", au)
	}

	var cm struct {
		Type   string `json:"type"`
		Number int    `json:"Q_number"`
	}
	if err := json.Unmarshal(Complete(7), &cm); err != nil {
		t.Fatalf("complete unmarshal: %v", err)
	}
	if cm.Type != "complete" || cm.Number != 7 {
		t.Fatalf("unexpected complete payload: %+v", cm)
	}
}
