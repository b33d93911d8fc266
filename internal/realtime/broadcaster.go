package realtime

import "sync"

// Broadcaster publishes values to SSE subscribers.
type Broadcaster[T any] struct {
	mu   sync.Mutex
	subs map[chan T]struct{}
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster[T any]() *Broadcaster[T] {
	return &Broadcaster[T]{
		subs: make(map[chan T]struct{}),
	}
}

// Subscribe registers a new subscriber and returns its channel.
func (b *Broadcaster[T]) Subscribe() chan T {
	ch := make(chan T, 10)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Broadcaster[T]) Unsubscribe(ch chan T) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}

// Publish delivers v to all subscribers without blocking.
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.Lock()
	for ch := range b.subs {
		select {
		case ch <- v:
		default:
			// Lagging subscriber; the next value supersedes this one.
		}
	}
	b.mu.Unlock()
}

// Len reports the number of subscribers.
func (b *Broadcaster[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Hub keeps one broadcaster per key. A room exists while it has subscribers.
type Hub[T any] struct {
	mu    sync.Mutex
	rooms map[string]*Broadcaster[T]
}

// NewHub creates an empty hub.
func NewHub[T any]() *Hub[T] {
	return &Hub[T]{rooms: make(map[string]*Broadcaster[T])}
}

// Subscribe joins key's room, creating it if missing.
func (h *Hub[T]) Subscribe(key string) chan T {
	h.mu.Lock()
	defer h.mu.Unlock()
	b, ok := h.rooms[key]
	if !ok {
		b = NewBroadcaster[T]()
		h.rooms[key] = b
	}
	return b.Subscribe()
}

// Unsubscribe leaves key's room and drops the room once it is empty.
func (h *Hub[T]) Unsubscribe(key string, ch chan T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	b, ok := h.rooms[key]
	if !ok {
		return
	}
	b.Unsubscribe(ch)
	if b.Len() == 0 {
		delete(h.rooms, key)
	}
}

// Publish sends v to key's subscribers, if any.
func (h *Hub[T]) Publish(key string, v T) {
	h.mu.Lock()
	b, ok := h.rooms[key]
	h.mu.Unlock()
	if ok {
		b.Publish(v)
	}
}

// Subscribers reports how many subscribers key's room has.
func (h *Hub[T]) Subscribers(key string) int {
	h.mu.Lock()
	b, ok := h.rooms[key]
	h.mu.Unlock()
	if !ok {
		return 0
	}
	return b.Len()
}

// Len reports the number of open rooms.
func (h *Hub[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}
