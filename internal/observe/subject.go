// Package observe publishes snapshots of a value to any number of subscribers.
package observe

import "sync"

// Subject holds the latest snapshot of a value and pushes every new snapshot
// to its subscribers. Delivery never blocks the publisher: a subscriber that
// has not consumed the previous snapshot gets it replaced by the newer one.
type Subject[T any] struct {
	mu          sync.RWMutex
	current     T
	version     uint64
	clone       func(T) T
	subscribers map[*Subscription[T]]struct{}
}

// Subscription receives snapshots published after it was created,
// starting with the snapshot current at subscription time.
type Subscription[T any] struct {
	subject *Subject[T]
	ch      chan T
}

// NewSubject creates a Subject holding initial. clone, if non-nil, is applied to
// every snapshot handed out so readers never share mutable state.
func NewSubject[T any](initial T, clone func(T) T) *Subject[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Subject[T]{
		current:     initial,
		clone:       clone,
		subscribers: make(map[*Subscription[T]]struct{}),
	}
}

// Current returns a copy of the latest snapshot
func (s *Subject[T]) Current() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clone(s.current)
}

// Version returns the number of snapshots published so far
func (s *Subject[T]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Publish replaces the current snapshot and notifies subscribers
func (s *Subject[T]) Publish(value T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = value
	s.version++
	for sub := range s.subscribers {
		sub.deliver(s.clone(value))
	}
}

// Subscribe registers a new subscriber
func (s *Subject[T]) Subscribe() *Subscription[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := &Subscription[T]{subject: s, ch: make(chan T, 1)}
	sub.ch <- s.clone(s.current)
	s.subscribers[sub] = struct{}{}
	return sub
}

// SubscriberCount returns the number of active subscriptions
func (s *Subject[T]) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}

// C returns the channel snapshots are delivered on. It is closed by Unsubscribe.
func (sub *Subscription[T]) C() <-chan T {
	return sub.ch
}

// Unsubscribe stops delivery and closes the channel. Safe to call more than once.
func (sub *Subscription[T]) Unsubscribe() {
	s := sub.subject
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subscribers[sub]; !ok {
		return
	}
	delete(s.subscribers, sub)
	close(sub.ch)
}

// deliver must be called with the subject's write lock held
func (sub *Subscription[T]) deliver(value T) {
	select {
	case sub.ch <- value:
		return
	default:
	}
	// buffer full: drop the stale snapshot
	select {
	case <-sub.ch:
	default:
	}
	select {
	case sub.ch <- value:
	default:
	}
}
