// Package broadcast provides a state cell that pushes every update to its
// subscribers and replays the latest value to late subscribers.
package broadcast

import "sync"

// Cell holds the latest published value and the set of live subscriptions.
// The zero value is not usable; create cells with NewCell.
type Cell[T any] struct {
	mu        sync.Mutex
	value     T
	published bool
	subs      map[*Subscription[T]]struct{}
}

// NewCell creates a cell whose snapshot is initial. The initial value is
// not replayed to subscribers until something is published with Set.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{
		value: initial,
		subs:  make(map[*Subscription[T]]struct{}),
	}
}

// Set stores v and queues it for every subscriber. Values are delivered in
// the order Set is called and are never de-duplicated.
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = v
	c.published = true
	for s := range c.subs {
		s.push(v)
	}
}

// Get returns the current snapshot and whether any value was ever published.
func (c *Cell[T]) Get() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, c.published
}

// Subscribe attaches a new subscriber. If a value was published before, it
// is delivered first.
func (c *Cell[T]) Subscribe() *Subscription[T] {
	s := &Subscription[T]{
		cell:   c,
		out:    make(chan T),
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	c.mu.Lock()
	if c.published {
		s.push(c.value)
	}
	c.subs[s] = struct{}{}
	c.mu.Unlock()

	go s.pump()

	return s
}

// Subscribers returns the number of attached subscriptions.
func (c *Cell[T]) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

func (c *Cell[T]) remove(s *Subscription[T]) {
	c.mu.Lock()
	delete(c.subs, s)
	c.mu.Unlock()
}

// Subscription receives the values published on a Cell.
type Subscription[T any] struct {
	cell *Cell[T]
	out  chan T

	mu     sync.Mutex
	queue  []T
	notify chan struct{}

	done      chan struct{}
	closeOnce sync.Once
}

// C returns the delivery channel. It is closed after Close.
func (s *Subscription[T]) C() <-chan T {
	return s.out
}

// Close detaches the subscription. Pending values are dropped. Safe to call
// more than once.
func (s *Subscription[T]) Close() {
	s.closeOnce.Do(func() {
		s.cell.remove(s)
		close(s.done)
	})
}

func (s *Subscription[T]) push(v T) {
	s.mu.Lock()
	s.queue = append(s.queue, v)
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// pump moves queued values to the output channel so a slow reader never
// blocks Set.
func (s *Subscription[T]) pump() {
	defer close(s.out)

	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			select {
			case <-s.notify:
				continue
			case <-s.done:
				return
			}
		}
		v := s.queue[0]
		var zero T
		s.queue[0] = zero
		s.queue = s.queue[1:]
		s.mu.Unlock()

		select {
		case s.out <- v:
		case <-s.done:
			return
		}
	}
}
