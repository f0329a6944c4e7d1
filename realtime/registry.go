package realtime

import "sync"

// subscriber channels buffer this many events before old ones are
// dropped for that subscriber
const subscriberBufSize = 64

// Subscriber is one client's view of a room.
type Subscriber struct {
	ch chan Event
}

func (s *Subscriber) Events() <-chan Event {
	return s.ch
}

// Registry is the room/participant state, handed to the broadcaster
// explicitly rather than held as a package global.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]map[*Subscriber]struct{}
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]map[*Subscriber]struct{})}
}

// Join adds a subscriber to the room and returns it together with the
// new participant count.
func (r *Registry) Join(room string) (*Subscriber, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub := &Subscriber{ch: make(chan Event, subscriberBufSize)}
	subs, ok := r.rooms[room]
	if !ok {
		subs = make(map[*Subscriber]struct{})
		r.rooms[room] = subs
	}
	subs[sub] = struct{}{}
	return sub, len(subs)
}

// Leave removes a subscriber from the room and returns the remaining
// participant count. Leaving twice is a no-op.
func (r *Registry) Leave(room string, sub *Subscriber) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	subs, ok := r.rooms[room]
	if !ok {
		return 0
	}
	if _, member := subs[sub]; member {
		delete(subs, sub)
		close(sub.ch)
	}
	if len(subs) == 0 {
		delete(r.rooms, room)
		return 0
	}
	return len(subs)
}

// Count returns the live participant count of a room. The count is
// eventually accurate under connect/disconnect ordering and is never
// used for judging or ranking decisions.
func (r *Registry) Count(room string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms[room])
}

// Broadcast delivers the event to every subscriber of the room,
// fire-and-forget. A subscriber with a full buffer loses its oldest
// event rather than blocking the sender.
func (r *Registry) Broadcast(room string, ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for sub := range r.rooms[room] {
		if len(sub.ch) == cap(sub.ch) {
			<-sub.ch
		}
		sub.ch <- ev
	}
}
