package bridge

import "github.com/vango-dev/storebridge/pkg/reactive"

// Signal mirrors a container into a reactive signal.
type Signal[T any] struct {
	*binding[T]
	cell *reactive.Signal[T]
}

// BindSignal seeds a signal with c.Get() and keeps it in sync with c.
// Setting the signal writes through to c.
func BindSignal[T any](c Container[T], opts ...Option) (*Signal[T], error) {
	s := &Signal[T]{}
	b, err := bind(c, KindSignal, opts, func(initial T) func(T) {
		s.cell = reactive.NewSignal(initial)
		return s.cell.Set
	})
	if err != nil {
		return nil, err
	}
	s.binding = b
	return s, nil
}

// MustBindSignal is BindSignal that panics on error.
func MustBindSignal[T any](c Container[T], opts ...Option) *Signal[T] {
	s, err := BindSignal(c, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Get returns the value and tracks the signal.
func (s *Signal[T]) Get() T {
	return s.cell.Get()
}

// Peek returns the value without tracking.
func (s *Signal[T]) Peek() T {
	return s.cell.Peek()
}

// Set writes v to the signal and to the container. When Set returns both hold
// the container's resulting value.
func (s *Signal[T]) Set(v T) {
	s.write(v, func() {
		s.cell.Set(v)
	})
}

// Update sets fn(current). The current value is read untracked.
func (s *Signal[T]) Update(fn func(T) T) {
	if !s.active() {
		s.stale()
		return
	}
	s.Set(fn(s.cell.Peek()))
}

// Accessors returns the getter and setter pair.
//
//	count, setCount := sig.Accessors()
//	setCount(count() + 1)
func (s *Signal[T]) Accessors() (get func() T, set func(T)) {
	return s.Get, s.Set
}
