package ws

import (
	"encoding/json"
	"testing"
	"time"
)

func waitForClients(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("client count never reached %d (have %d)", want, h.ClientCount())
}

func TestHubBroadcastFanOut(t *testing.T) {
	h := NewHub()
	go h.Run()

	a := &Client{UserID: 1, Send: make(chan []byte, 8), hub: h}
	b := &Client{UserID: 2, Send: make(chan []byte, 8), hub: h}
	h.Register(a)
	h.Register(b)
	waitForClients(t, h, 2)

	h.BroadcastEvent("chat_message", map[string]string{"content": "hello"})

	for _, c := range []*Client{a, b} {
		select {
		case raw := <-c.Send:
			var ev Event
			if err := json.Unmarshal(raw, &ev); err != nil {
				t.Fatalf("bad event payload: %v", err)
			}
			if ev.Type != "chat_message" {
				t.Fatalf("event type = %q; want chat_message", ev.Type)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("client %d never received the event", c.UserID)
		}
	}
}

func TestHubUnregisterStopsDelivery(t *testing.T) {
	h := NewHub()
	go h.Run()

	c := &Client{UserID: 3, Send: make(chan []byte, 8), hub: h}
	h.Register(c)
	waitForClients(t, h, 1)

	h.Unregister(c)
	waitForClients(t, h, 0)

	// the hub closes Send on unregister
	select {
	case _, open := <-c.Send:
		if open {
			t.Fatal("expected Send to be closed after unregister")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Send was never closed")
	}

	h.BroadcastEvent("chat_message", map[string]string{"content": "after"})
	if h.ClientCount() != 0 {
		t.Fatalf("client count = %d after unregister", h.ClientCount())
	}
}
