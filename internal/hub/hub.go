// Package hub fans result messages out to every live viewer: the active
// tab's display channel, the set of connected devtools panels, and any
// generic fallback subscribers.
package hub

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/walexbarnes/nosey-web-sdk/internal/model"
)

const subscriberBuffer = 256

// Sender delivers one message to a single destination. A non-nil error is
// treated as evidence of a dead destination.
type Sender interface {
	Send(*model.ResultMessage) error
}

// Hub maintains the viewer registry. Panels are added on connect and
// removed on disconnect or on the first failed send; the active-tab channel
// is a single slot re-read on every broadcast; fallback subscribers are
// buffered channels that drop rather than block.
type Hub struct {
	mu          sync.RWMutex
	panels      map[string]Sender
	tab         Sender
	subscribers []chan *model.ResultMessage
	dropped     atomic.Int64
	debug       func() bool
}

// New creates a Hub. debug gates failure logging; nil means never.
func New(debug func() bool) *Hub {
	if debug == nil {
		debug = func() bool { return false }
	}
	return &Hub{
		panels: make(map[string]Sender),
		debug:  debug,
	}
}

// AddPanel registers a panel connection under an id.
func (h *Hub) AddPanel(id string, s Sender) {
	h.mu.Lock()
	h.panels[id] = s
	h.mu.Unlock()
}

// RemovePanel deregisters a panel connection. Unknown ids are a no-op.
func (h *Hub) RemovePanel(id string) {
	h.mu.Lock()
	delete(h.panels, id)
	h.mu.Unlock()
}

// Panels returns the number of registered panel connections.
func (h *Hub) Panels() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.panels)
}

// SetTab installs the active-tab display channel. The newest tab wins; the
// destination is resolved fresh at delivery time, not at subscription time.
func (h *Hub) SetTab(s Sender) {
	h.mu.Lock()
	h.tab = s
	h.mu.Unlock()
}

// ClearTab removes the active-tab channel, but only if s is still the
// current one — a stale disconnect must not clear a newer tab.
func (h *Hub) ClearTab(s Sender) {
	h.mu.Lock()
	if h.tab == s {
		h.tab = nil
	}
	h.mu.Unlock()
}

// Subscribe returns a buffered channel that receives every broadcast
// message. This is the generic fallback surface; the terminal echo uses it
// too.
func (h *Hub) Subscribe() <-chan *model.ResultMessage {
	ch := make(chan *model.ResultMessage, subscriberBuffer)
	h.mu.Lock()
	h.subscribers = append(h.subscribers, ch)
	h.mu.Unlock()
	return ch
}

// Dropped returns how many messages were dropped on full subscriber
// channels.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// Broadcast delivers a message to every live destination. Tab delivery is
// best-effort and swallowed on failure; a panel whose send fails is removed
// and delivery continues with the rest; subscriber channels never block.
// No queuing, no acknowledgment, no ordering guarantee across destinations.
func (h *Hub) Broadcast(msg *model.ResultMessage) {
	h.mu.RLock()
	tab := h.tab
	panels := make(map[string]Sender, len(h.panels))
	for id, s := range h.panels {
		panels[id] = s
	}
	subs := h.subscribers
	h.mu.RUnlock()

	if tab != nil {
		if err := tab.Send(msg); err != nil && h.debug() {
			log.Printf("hub: tab delivery failed: %v", err)
		}
	}

	for id, s := range panels {
		if err := s.Send(msg); err != nil {
			if h.debug() {
				log.Printf("hub: panel %s delivery failed, removing: %v", id, err)
			}
			h.RemovePanel(id)
		}
	}

	for _, ch := range subs {
		select {
		case ch <- msg:
		default:
			h.dropped.Add(1)
		}
	}
}

// CloseSubscribers closes all subscriber channels. Called on shutdown.
func (h *Hub) CloseSubscribers() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subscribers {
		close(ch)
	}
	h.subscribers = nil
}
