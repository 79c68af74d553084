// Package notify is the broadcast registry: constructed once at process
// start, injected into whatever needs to push, closed at shutdown.
package notify

import "sync"

// Message is a broadcast payload, already JSON-encodable.
type Message struct {
	Kind   string `json:"kind"` // "activity", "banner"
	Body   string `json:"body"`
	UserID string `json:"userId,omitempty"`
}

type Registry struct {
	mu     sync.Mutex
	subs   map[chan Message]struct{}
	closed bool
}

func NewRegistry() *Registry {
	return &Registry{subs: make(map[chan Message]struct{})}
}

// Subscribe returns a buffered channel of broadcasts and a cancel func.
// The channel is closed on cancel or registry shutdown.
func (r *Registry) Subscribe() (<-chan Message, func()) {
	ch := make(chan Message, 16)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		close(ch)
		return ch, func() {}
	}
	r.subs[ch] = struct{}{}

	cancel := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if _, ok := r.subs[ch]; ok {
			delete(r.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

// Publish delivers msg to every subscriber. Slow subscribers with a
// full buffer are skipped rather than blocking the publisher.
func (r *Registry) Publish(msg Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	for ch := range r.subs {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Close tears the registry down and closes all subscriber channels.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	for ch := range r.subs {
		delete(r.subs, ch)
		close(ch)
	}
}
