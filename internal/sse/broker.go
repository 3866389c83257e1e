// Package sse implements a Server-Sent Events broker for journal change notifications.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"
)

const (
	// heartbeat keeps idle connections open through proxies.
	heartbeat = 30 * time.Second
	// historySize is how many recent messages a reconnecting client can
	// replay with Last-Event-ID.
	historySize = 32
	// retryMillis is the reconnect delay suggested to clients.
	retryMillis = 3000
)

// Event represents an SSE event to broadcast.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type journalEventReq struct {
	kind string
	path string
}

type subscribeReq struct {
	ch     chan []byte
	lastID uint64
}

type message struct {
	id  uint64
	raw []byte
}

// Broker manages SSE client connections and broadcasts events.
//
// Concurrency model: a single internal event loop (goroutine) owns mutable state
// (clients, replay history, index throttle timestamp). Public methods communicate with this loop
// through channels, so no mutexes are required.
type Broker struct {
	indexMin time.Duration

	subscribeCh   chan subscribeReq
	unsubscribeCh chan chan []byte
	publishCh     chan Event
	journalCh     chan journalEventReq
	countReqCh    chan chan int

	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

// NewBroker creates a new SSE broker; index.updated is sent at most once per indexThrottle.
func NewBroker(indexThrottle time.Duration) *Broker {
	if indexThrottle <= 0 {
		indexThrottle = 2 * time.Second
	}

	b := &Broker{
		indexMin:      indexThrottle,
		subscribeCh:   make(chan subscribeReq),
		unsubscribeCh: make(chan chan []byte),
		publishCh:     make(chan Event, 256),
		journalCh:     make(chan journalEventReq, 256),
		countReqCh:    make(chan chan int),
		stopCh:        make(chan struct{}),
		stopped:       make(chan struct{}),
	}

	go b.run()
	return b
}

func (b *Broker) run() {
	defer close(b.stopped)

	clients := make(map[chan []byte]struct{})
	var (
		lastIndex time.Time
		nextID    uint64
		history   []message
	)

	broadcast := func(event Event) {
		payload, err := json.Marshal(event.Data)
		if err != nil {
			return
		}
		nextID++
		raw := []byte(fmt.Sprintf("id: %d\nevent: %s\ndata: %s\n\n", nextID, event.Type, payload))
		history = append(history, message{id: nextID, raw: raw})
		if len(history) > historySize {
			history = history[len(history)-historySize:]
		}

		for ch := range clients {
			select {
			case ch <- raw:
			default:
				// Client buffer full; skip to avoid blocking broker loop.
			}
		}
	}

	for {
		select {
		case <-b.stopCh:
			for ch := range clients {
				close(ch)
			}
			return

		case req := <-b.subscribeCh:
			clients[req.ch] = struct{}{}
			if req.lastID == 0 {
				continue
			}
			for _, m := range history {
				if m.id > req.lastID {
					select {
					case req.ch <- m.raw:
					default:
					}
				}
			}

		case ch := <-b.unsubscribeCh:
			if _, ok := clients[ch]; ok {
				delete(clients, ch)
				close(ch)
			}

		case event := <-b.publishCh:
			broadcast(event)

		case req := <-b.journalCh:
			data := map[string]string{"path": req.path}
			switch req.kind {
			case "updated":
				broadcast(Event{Type: "journal.updated", Data: data})
			case "deleted":
				broadcast(Event{Type: "journal.deleted", Data: data})
			default:
				continue
			}

			now := time.Now()
			if now.Sub(lastIndex) >= b.indexMin {
				lastIndex = now
				broadcast(Event{Type: "index.updated", Data: map[string]string{}})
			}

		case resp := <-b.countReqCh:
			resp <- len(clients)
		}
	}
}

// Close gracefully stops broker loop and closes all client channels.
func (b *Broker) Close() {
	if b.closed.CompareAndSwap(false, true) {
		close(b.stopCh)
	}
	<-b.stopped
}

// Subscribe adds a new client and returns its channel.
func (b *Broker) Subscribe() chan []byte {
	return b.SubscribeFrom(0)
}

// SubscribeFrom adds a new client and first replays the buffered messages
// sent after lastID. Zero means no replay.
func (b *Broker) SubscribeFrom(lastID uint64) chan []byte {
	ch := make(chan []byte, 64)
	if b.closed.Load() {
		close(ch)
		return ch
	}

	select {
	case b.subscribeCh <- subscribeReq{ch: ch, lastID: lastID}:
	case <-b.stopped:
		close(ch)
	}

	return ch
}

// Unsubscribe removes a client and closes its channel.
func (b *Broker) Unsubscribe(ch chan []byte) {
	if b.closed.Load() {
		return
	}
	select {
	case b.unsubscribeCh <- ch:
	case <-b.stopped:
	}
}

// ClientCount returns the number of connected clients.
func (b *Broker) ClientCount() int {
	if b.closed.Load() {
		return 0
	}

	resp := make(chan int, 1)
	select {
	case b.countReqCh <- resp:
	case <-b.stopped:
		return 0
	}

	select {
	case n := <-resp:
		return n
	case <-b.stopped:
		return 0
	}
}

// Publish sends an event to all connected clients.
func (b *Broker) Publish(event Event) {
	if b.closed.Load() {
		return
	}
	select {
	case b.publishCh <- event:
	case <-b.stopped:
	}
}

// PublishJournalEvent publishes a journal change and a throttled index.updated event.
// kind is "updated" or "deleted"; anything else is ignored.
func (b *Broker) PublishJournalEvent(kind, path string) {
	if b.closed.Load() {
		return
	}
	select {
	case b.journalCh <- journalEventReq{kind: kind, path: path}:
	case <-b.stopped:
	}
}

// ServeHTTP is the SSE endpoint handler (GET /api/events).
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "retry: %d\n\n", retryMillis)
	flusher.Flush()

	lastID, _ := strconv.ParseUint(r.Header.Get("Last-Event-ID"), 10, 64)
	ch := b.SubscribeFrom(lastID)
	defer b.Unsubscribe(ch)

	ping := time.NewTicker(heartbeat)
	defer ping.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ping.C:
			_, _ = w.Write([]byte(": ping\n\n"))
			flusher.Flush()
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_, _ = w.Write(msg)
			flusher.Flush()
		}
	}
}
