package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	ws "github.com/coder/websocket"

	"github.com/dukerupert/pantrylist/internal/auth"
)

// mockClient creates a Client with a send channel but no real connection.
func mockClient(hub *Hub, userID string) *Client {
	return &Client{
		hub:    hub,
		userID: userID,
		send:   make(chan []byte, sendBufferSize),
	}
}

func TestRegisterUnregister(t *testing.T) {
	hub := NewHub(slog.Default())

	c1 := mockClient(hub, "alice")
	c2 := mockClient(hub, "alice")
	c3 := mockClient(hub, "bob")

	hub.Register(c1)
	hub.Register(c2)
	hub.Register(c3)

	if got := hub.ClientCount(); got != 3 {
		t.Fatalf("expected 3 clients, got %d", got)
	}
	if got := hub.UserCount(); got != 2 {
		t.Fatalf("expected 2 users, got %d", got)
	}

	hub.Unregister(c1)
	hub.Unregister(c3)

	if got := hub.ClientCount(); got != 1 {
		t.Fatalf("expected 1 client after unregister, got %d", got)
	}
	if got := hub.UserCount(); got != 1 {
		t.Fatalf("expected 1 user after unregister, got %d", got)
	}

	hub.Unregister(c2)
	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected 0 clients, got %d", got)
	}
}

func TestDoubleUnregister(t *testing.T) {
	hub := NewHub(slog.Default())
	c := mockClient(hub, "alice")
	hub.Register(c)
	hub.Unregister(c)
	// Should not panic
	hub.Unregister(c)

	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected 0 clients, got %d", got)
	}
}

func TestBroadcastToUser(t *testing.T) {
	hub := NewHub(slog.Default())

	mine1 := mockClient(hub, "alice")
	mine2 := mockClient(hub, "alice")
	other := mockClient(hub, "bob")
	for _, c := range []*Client{mine1, mine2, other} {
		hub.Register(c)
	}

	hub.BroadcastTo("alice", NewMessage("grocery_list", "created", "list-1", map[string]any{"title": "For Home"}))

	for _, c := range []*Client{mine1, mine2} {
		select {
		case data := <-c.send:
			var got Message
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Type != "grocery_list_created" {
				t.Errorf("expected type grocery_list_created, got %s", got.Type)
			}
			if got.ID != "list-1" {
				t.Errorf("expected id list-1, got %s", got.ID)
			}
			if got.Extra["title"] != "For Home" {
				t.Errorf("expected extra title, got %v", got.Extra)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatal("timeout waiting for message")
		}
	}

	select {
	case <-other.send:
		t.Error("other user should not receive the message")
	default:
	}
}

func TestBroadcastUnknownUser(t *testing.T) {
	hub := NewHub(slog.Default())
	// Should not panic
	hub.BroadcastTo("nobody", NewMessage("grocery_list", "deleted", "x", nil))
}

func TestBroadcastFullBuffer(t *testing.T) {
	hub := NewHub(slog.Default())

	c := mockClient(hub, "alice")
	hub.Register(c)

	for i := 0; i < sendBufferSize; i++ {
		hub.BroadcastTo("alice", NewMessage("test", "fill", "", nil))
	}

	// This should drop the message, not panic or block
	hub.BroadcastTo("alice", NewMessage("test", "dropped", "", nil))

	if got := len(c.send); got != sendBufferSize {
		t.Errorf("expected %d buffered messages, got %d", sendBufferSize, got)
	}

	hub.Unregister(c)
}

func TestNewMessage(t *testing.T) {
	msg := NewMessage("grocery_list", "updated", "abc", nil)
	if msg.Type != "grocery_list_updated" {
		t.Errorf("expected type grocery_list_updated, got %s", msg.Type)
	}
	if msg.Entity != "grocery_list" || msg.Action != "updated" || msg.ID != "abc" {
		t.Errorf("unexpected message %+v", msg)
	}
}

func TestConcurrentAccess(t *testing.T) {
	hub := NewHub(slog.Default())
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := mockClient(hub, "alice")
			hub.Register(c)
			hub.BroadcastTo("alice", NewMessage("test", "concurrent", "", nil))
			for {
				select {
				case <-c.send:
				default:
					hub.Unregister(c)
					return
				}
			}
		}()
	}

	wg.Wait()

	if got := hub.ClientCount(); got != 0 {
		t.Errorf("expected 0 clients after concurrent test, got %d", got)
	}
}

func TestHandleWebSocketDelivers(t *testing.T) {
	hub := NewHub(slog.Default())
	h := HandleWebSocket(hub, nil, slog.Default())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := auth.WithAuth(r.Context(), auth.AuthContext{UserID: "alice"})
		h(w, r.WithContext(ctx))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := ws.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.CloseNow()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	hub.BroadcastTo("alice", NewMessage("grocery_list", "deleted", "list-1", nil))

	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got Message
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Type != "grocery_list_deleted" || got.ID != "list-1" {
		t.Errorf("got %+v", got)
	}
}

func TestHandleWebSocketRequiresUser(t *testing.T) {
	hub := NewHub(slog.Default())
	rec := httptest.NewRecorder()
	HandleWebSocket(hub, nil, slog.Default())(rec, httptest.NewRequest("GET", "/ws", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
