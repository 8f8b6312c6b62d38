package atom

import (
	"reflect"
	"sync"
)

// EqualFunc decides whether a write is a change.
type EqualFunc[T any] func(a, b T) bool

// Option configures an Atom.
type Option[T any] func(*Atom[T])

// WithEqual sets the equality used to drop redundant writes.
// The default is reflect.DeepEqual.
func WithEqual[T any](fn EqualFunc[T]) Option[T] {
	return func(a *Atom[T]) {
		a.equal = fn
	}
}

// AlwaysNotify makes every Set notify, even when the value is unchanged.
func AlwaysNotify[T any]() Option[T] {
	return func(a *Atom[T]) {
		a.equal = func(T, T) bool { return false }
	}
}

type listener[T any] struct {
	id uint64
	fn func(T)
}

// delivery is one queued listener call.
type delivery[T any] struct {
	id    uint64
	fn    func(T)
	value T
}

// Atom is a value container with synchronous change listeners.
type Atom[T any] struct {
	mu        sync.Mutex
	value     T
	listeners []listener[T]
	next      uint64
	equal     EqualFunc[T]

	// queue holds pending listener calls. The first Set to find it idle
	// drains it; Sets made by listeners append to it.
	queue    []delivery[T]
	draining bool
}

// New creates an atom holding initial.
func New[T any](initial T, opts ...Option[T]) *Atom[T] {
	a := &Atom[T]{value: initial}
	for _, opt := range opts {
		opt(a)
	}
	if a.equal == nil {
		a.equal = func(x, y T) bool { return reflect.DeepEqual(x, y) }
	}
	return a
}

// Get returns the current value.
func (a *Atom[T]) Get() T {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.value
}

// Set stores value and, if it changed, queues a call to every listener.
//
// A top-level Set delivers the whole queue before returning. A Set made from
// inside a listener only queues: its calls run after the ones already
// pending, so every listener hears the latest value last. Calls queued by
// other goroutines during a drain are delivered by the draining goroutine.
func (a *Atom[T]) Set(value T) {
	a.mu.Lock()
	if a.equal(a.value, value) {
		a.mu.Unlock()
		return
	}
	a.value = value
	for _, l := range a.listeners {
		a.queue = append(a.queue, delivery[T]{id: l.id, fn: l.fn, value: value})
	}
	if a.draining {
		a.mu.Unlock()
		return
	}
	a.draining = true
	a.mu.Unlock()

	a.drain()
}

func (a *Atom[T]) drain() {
	defer func() {
		if r := recover(); r != nil {
			a.mu.Lock()
			a.queue = nil
			a.draining = false
			a.mu.Unlock()
			panic(r)
		}
	}()

	for {
		a.mu.Lock()
		if len(a.queue) == 0 {
			a.queue = nil
			a.draining = false
			a.mu.Unlock()
			return
		}
		d := a.queue[0]
		a.queue = a.queue[1:]
		a.mu.Unlock()

		// A listener removed earlier in the drain is skipped.
		if !a.subscribed(d.id) {
			continue
		}
		d.fn(d.value)
	}
}

// Update stores fn(current).
func (a *Atom[T]) Update(fn func(T) T) {
	a.Set(fn(a.Get()))
}

// Subscribe registers fn, calls it with the current value and returns the
// unsubscribe function. Unsubscribing twice is harmless.
func (a *Atom[T]) Subscribe(fn func(T)) func() {
	unsubscribe := a.Listen(fn)
	fn(a.Get())
	return unsubscribe
}

// Listen registers fn for future changes only.
func (a *Atom[T]) Listen(fn func(T)) func() {
	if fn == nil {
		return func() {}
	}

	a.mu.Lock()
	a.next++
	id := a.next
	a.listeners = append(a.listeners, listener[T]{id: id, fn: fn})
	a.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			a.remove(id)
		})
	}
}

// Listeners reports the number of registered listeners.
func (a *Atom[T]) Listeners() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.listeners)
}

func (a *Atom[T]) subscribed(id uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, l := range a.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}

func (a *Atom[T]) remove(id uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, l := range a.listeners {
		if l.id == id {
			a.listeners = append(a.listeners[:i], a.listeners[i+1:]...)
			return
		}
	}
}

// SetKey writes one key of a map atom. The map is copied, never mutated in
// place, so earlier readers keep their snapshot.
func SetKey[E any](a *Atom[map[string]E], key string, value E) {
	a.Update(func(m map[string]E) map[string]E {
		next := make(map[string]E, len(m)+1)
		for k, v := range m {
			next[k] = v
		}
		next[key] = value
		return next
	})
}
