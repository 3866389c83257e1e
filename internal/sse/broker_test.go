package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients")
	}
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}
	b.Unsubscribe(ch)
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after unsub")
	}
}

func TestPublishDelivery(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish(Event{Type: "entry.added", Data: map[string]string{"header": "#TIL"}})

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: entry.added") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"header":"#TIL"`) {
			t.Errorf("missing data in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func drain(ch chan []byte) []string {
	var out []string
	for {
		select {
		case msg := <-ch:
			out = append(out, string(msg))
		default:
			return out
		}
	}
}

func TestPublishJournalEvent_IndexThrottle(t *testing.T) {
	b := NewBroker(500 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	// Only the first change within the window announces index.updated.
	b.PublishJournalEvent("updated", "todo.txt")
	b.PublishJournalEvent("deleted", "todo.txt")

	time.Sleep(50 * time.Millisecond)
	indexCount, journalCount := 0, 0
	for _, s := range drain(ch) {
		switch {
		case strings.Contains(s, "event: index.updated"):
			indexCount++
		case strings.Contains(s, "event: journal."):
			journalCount++
		}
	}

	if journalCount != 2 {
		t.Errorf("journal events = %d, want 2", journalCount)
	}
	if indexCount != 1 {
		t.Errorf("index events = %d, want 1 (throttled)", indexCount)
	}
}

func TestPublishJournalEvent_UnknownKindIgnored(t *testing.T) {
	b := NewBroker(time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishJournalEvent("created", "todo.txt")
	time.Sleep(50 * time.Millisecond)
	if got := drain(ch); len(got) != 0 {
		t.Errorf("unexpected messages: %q", got)
	}
}

func TestSSEHandler(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		b.ServeHTTP(w, req)
		close(done)
	}()

	// Give handler time to subscribe.
	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client from handler")
	}

	b.PublishJournalEvent("updated", "todo.txt")
	time.Sleep(50 * time.Millisecond)

	cancel()
	<-done

	body := w.Body.String()
	if !strings.Contains(body, "event: journal.updated") {
		t.Errorf("handler output missing event: %q", body)
	}
	if !strings.Contains(body, `"path":"todo.txt"`) {
		t.Errorf("handler output missing path: %q", body)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type = %q", ct)
	}

	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 0 {
		t.Errorf("client not cleaned up after disconnect")
	}
}

func TestPublishDropsOnFullBuffer(t *testing.T) {
	b := NewBroker(time.Second)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	// Fill buffer (capacity 64) and then one more should not block.
	for i := 0; i < 70; i++ {
		b.Publish(Event{Type: "test", Data: map[string]string{"i": "x"}})
	}
}

func TestCloseClosesSubscribersAndStopsOperations(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}

	b.Close()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected subscriber channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for channel close")
	}

	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after close")
	}

	// Should be safe no-op after close.
	b.Publish(Event{Type: "journal.updated", Data: map[string]string{"path": "todo.txt"}})
	b.PublishJournalEvent("updated", "todo.txt")
}

func TestEventIDs(t *testing.T) {
	b := NewBroker(time.Hour)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish(Event{Type: "a", Data: map[string]string{}})
	b.Publish(Event{Type: "b", Data: map[string]string{}})

	for _, want := range []string{"id: 1\nevent: a\n", "id: 2\nevent: b\n"} {
		select {
		case msg := <-ch:
			if !strings.HasPrefix(string(msg), want) {
				t.Errorf("msg = %q, want prefix %q", msg, want)
			}
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for message")
		}
	}
}

func TestSubscribeFromReplaysMissed(t *testing.T) {
	b := NewBroker(time.Hour)
	defer b.Close()

	for _, typ := range []string{"first", "second", "third"} {
		b.Publish(Event{Type: typ, Data: map[string]string{}})
	}
	// Publishing is asynchronous; let the loop record all three.
	time.Sleep(50 * time.Millisecond)

	ch := b.SubscribeFrom(1)
	defer b.Unsubscribe(ch)

	time.Sleep(20 * time.Millisecond)
	got := drain(ch)
	if len(got) != 2 {
		t.Fatalf("replayed %d messages, want 2: %q", len(got), got)
	}
	if !strings.Contains(got[0], "event: second") || !strings.Contains(got[1], "event: third") {
		t.Errorf("replay = %q", got)
	}

	fresh := b.Subscribe()
	defer b.Unsubscribe(fresh)
	time.Sleep(20 * time.Millisecond)
	if n := len(drain(fresh)); n != 0 {
		t.Errorf("fresh subscriber got %d replayed messages", n)
	}
}

func TestSSEHandler_LastEventID(t *testing.T) {
	b := NewBroker(time.Hour)
	defer b.Close()
	b.PublishJournalEvent("updated", "todo.txt") // ids 1 and 2 (index.updated)
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/events", nil).WithContext(ctx)
	req.Header.Set("Last-Event-ID", "1")
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		b.ServeHTTP(w, req)
		close(done)
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	body := w.Body.String()
	if !strings.HasPrefix(body, "retry: 3000\n\n") {
		t.Errorf("missing retry hint: %q", body)
	}
	if strings.Contains(body, "event: journal.updated") || !strings.Contains(body, "id: 2\nevent: index.updated") {
		t.Errorf("replay = %q", body)
	}
}
