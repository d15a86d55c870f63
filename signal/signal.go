// Package signal is a synchronous observer list for host lifecycle events.
// Handlers run on the emitting goroutine, in subscription order.
package signal

// Handler receives one emitted value
type Handler[T any] func(T)

type subscription[T any] struct {
	fn     Handler[T]
	closed bool
}

// Signal fans a value out to every subscribed handler
type Signal[T any] struct {
	subs []*subscription[T]
}

// New creates a signal with no subscribers
func New[T any]() *Signal[T] {
	return &Signal[T]{}
}

// Subscribe registers fn and returns a func that removes it.
// The returned func is safe to call more than once.
func (s *Signal[T]) Subscribe(fn Handler[T]) func() {
	sub := &subscription[T]{fn: fn}
	s.subs = append(s.subs, sub)
	return func() {
		if sub.closed {
			return
		}
		sub.closed = true
		for i, cur := range s.subs {
			if cur == sub {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers v to a snapshot of the current subscribers.
// Handlers unsubscribed by an earlier handler in the same emit are skipped.
func (s *Signal[T]) Emit(v T) {
	snapshot := s.subs
	for _, sub := range snapshot {
		if sub.closed {
			continue
		}
		sub.fn(v)
	}
}

// Len returns the number of live subscribers
func (s *Signal[T]) Len() int {
	return len(s.subs)
}
