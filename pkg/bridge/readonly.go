package bridge

import "github.com/vango-dev/storebridge/pkg/reactive"

// Readonly mirrors a container into a tracked value with no write path.
type Readonly[T any] struct {
	*binding[T]
	cell *reactive.Signal[T]
}

// BindReadonly seeds a signal with c.Get() and keeps it in sync with c.
func BindReadonly[T any](c Container[T], opts ...Option) (*Readonly[T], error) {
	r := &Readonly[T]{}
	b, err := bind(c, KindReadonly, opts, func(initial T) func(T) {
		r.cell = reactive.NewSignal(initial)
		return func(v T) {
			r.cell.Set(v)
		}
	})
	if err != nil {
		return nil, err
	}
	r.binding = b
	return r, nil
}

// MustBindReadonly is BindReadonly that panics on error.
func MustBindReadonly[T any](c Container[T], opts ...Option) *Readonly[T] {
	r, err := BindReadonly(c, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Get returns the value and tracks it.
func (r *Readonly[T]) Get() T {
	return r.cell.Get()
}

// Peek returns the value without tracking.
func (r *Readonly[T]) Peek() T {
	return r.cell.Peek()
}
