package events

import (
	"sync"
)

// DefaultBuffer is the number of events a subscriber may lag behind
// before the oldest pending events are dropped.
const DefaultBuffer = 16

// Emitter fans out events to any number of subscribers. Emit never
// blocks: if a subscriber falls behind, its oldest pending event is
// dropped in favour of the new one. This suits events that carry
// full state, where only the latest one really matters.
type Emitter[T any] struct {
	buffer int
	copy   func(T) T

	lk     sync.Mutex
	closed bool
	subs   map[*Subscription[T]]struct{}
}

func NewEmitter[T any](buffer int) *Emitter[T] {
	if buffer < 1 {
		buffer = 1
	}

	return &Emitter[T]{
		buffer: buffer,
		subs:   map[*Subscription[T]]struct{}{},
	}
}

// WithCopy makes the emitter hand every subscriber its own copy of an
// emitted event. Use it for events that share memory, like slices or
// maps, so subscribers can't observe each other's writes.
func (e *Emitter[T]) WithCopy(fn func(T) T) *Emitter[T] {
	e.copy = fn
	return e
}

// Subscription receives the events of an Emitter until it is closed.
type Subscription[T any] struct {
	emitter *Emitter[T]
	events  chan T
}

// Emit hands the event to all current subscribers.
func (e *Emitter[T]) Emit(evt T) {
	e.lk.Lock()
	defer e.lk.Unlock()

	if e.closed {
		return
	}

	for sub := range e.subs {
		if e.copy != nil {
			sub.push(e.copy(evt))
		} else {
			sub.push(evt)
		}
	}
}

// Subscribe registers a new subscriber.
func (e *Emitter[T]) Subscribe() *Subscription[T] {
	e.lk.Lock()
	defer e.lk.Unlock()

	return e.subscribe()
}

// SubscribeWith registers a new subscriber whose first event is
// initial. No event emitted concurrently can overtake it. Initial is
// delivered as is, the copy function does not apply.
func (e *Emitter[T]) SubscribeWith(initial T) *Subscription[T] {
	e.lk.Lock()
	defer e.lk.Unlock()

	sub := e.subscribe()
	if !e.closed {
		sub.push(initial)
	}
	return sub
}

func (e *Emitter[T]) subscribe() *Subscription[T] {
	sub := &Subscription[T]{
		emitter: e,
		events:  make(chan T, e.buffer),
	}

	if e.closed {
		close(sub.events)
		return sub
	}

	e.subs[sub] = struct{}{}
	return sub
}

// Subscribers returns the number of active subscriptions.
func (e *Emitter[T]) Subscribers() int {
	e.lk.Lock()
	defer e.lk.Unlock()
	return len(e.subs)
}

// Close closes all subscriptions. Later emits are ignored.
func (e *Emitter[T]) Close() {
	e.lk.Lock()
	defer e.lk.Unlock()

	if e.closed {
		return
	}
	e.closed = true

	for sub := range e.subs {
		close(sub.events)
	}
	e.subs = map[*Subscription[T]]struct{}{}
}

// push must be called with the emitter lock held, which makes the
// emitter the only sender on the channel.
func (s *Subscription[T]) push(evt T) {
	for {
		select {
		case s.events <- evt:
			return
		default:
		}

		// drop the oldest pending event
		select {
		case <-s.events:
		default:
		}
	}
}

// Events returns the channel events are delivered on. It is closed
// when either the subscription or the emitter is closed.
func (s *Subscription[T]) Events() <-chan T {
	return s.events
}

// Close unsubscribes and closes the events channel.
func (s *Subscription[T]) Close() {
	s.emitter.lk.Lock()
	defer s.emitter.lk.Unlock()

	if _, found := s.emitter.subs[s]; !found {
		return
	}

	delete(s.emitter.subs, s)
	close(s.events)
}
