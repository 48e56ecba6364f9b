// Package hub fans price updates out to live subscribers. Each
// subscriber owns a buffered channel; a publish never blocks, and a
// subscriber that cannot keep up is dropped on the spot rather than
// stalling delivery to the rest.
package hub

import (
	"sync"

	logger "github.com/sirupsen/logrus"

	"botbackend/src/model"
)

const subscriberBuffer = 16

// Subscriber is one live observer of the price feed.
type Subscriber struct {
	updates chan model.PriceUpdate
}

// Updates is the subscriber's receive side. The channel is closed
// when the subscriber is removed from the hub.
func (s *Subscriber) Updates() <-chan model.PriceUpdate {
	return s.updates
}

// Hub is the registry of live subscribers. Delivery is best effort,
// at most once per published update per subscriber; there is no
// backlog for late joiners.
type Hub struct {
	mu   sync.Mutex
	subs map[*Subscriber]struct{}
}

func New() *Hub {
	return &Hub{subs: make(map[*Subscriber]struct{})}
}

func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{updates: make(chan model.PriceUpdate, subscriberBuffer)}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	logger.Debug("price feed subscriber registered")
	return sub
}

// Unsubscribe removes a subscriber and closes its channel. Calling it
// twice for the same subscriber is harmless.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(sub)
}

// Publish hands the update to every live subscriber without ever
// blocking. A subscriber whose buffer is full is removed immediately.
func (h *Hub) Publish(update model.PriceUpdate) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		select {
		case sub.updates <- update:
		default:
			logger.Warn("dropping slow price feed subscriber")
			h.dropLocked(sub)
		}
	}
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) dropLocked(sub *Subscriber) {
	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	close(sub.updates)
}
