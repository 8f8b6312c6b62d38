package bridge

import "github.com/vango-dev/storebridge/pkg/reactive"

// Mutable mirrors an object container into a field-by-field proxy. Every
// field write is pushed to the container as a full snapshot. External updates
// overwrite fields in place, so readers of the proxy stay subscribed.
type Mutable[E any] struct {
	*binding[map[string]E]
	proxy *reactive.Mutable[E]
}

// BindMutable mirrors c into a mutable proxy.
func BindMutable[E any](c Container[map[string]E], opts ...Option) (*Mutable[E], error) {
	m := &Mutable[E]{}
	b, err := bind(c, KindMutable, opts, func(initial map[string]E) func(map[string]E) {
		m.proxy = reactive.NewMutable(initial)
		m.proxy.Intercept(m.push)
		return func(next map[string]E) {
			m.proxy.Assign(next)
		}
	})
	if err != nil {
		return nil, err
	}
	m.binding = b
	return m, nil
}

// MustBindMutable is BindMutable that panics on error.
func MustBindMutable[E any](c Container[map[string]E], opts ...Option) *Mutable[E] {
	m, err := BindMutable(c, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// push is the proxy's write hook.
func (m *Mutable[E]) push(_ string, snapshot map[string]E) {
	m.write(snapshot, nil)
}

// Get returns a field and tracks it.
func (m *Mutable[E]) Get(key string) E { return m.proxy.Get(key) }

// Lookup returns a field and whether it is present.
func (m *Mutable[E]) Lookup(key string) (E, bool) { return m.proxy.Lookup(key) }

// Has reports whether key is present.
func (m *Mutable[E]) Has(key string) bool { return m.proxy.Has(key) }

// Keys returns the present keys in sorted order.
func (m *Mutable[E]) Keys() []string { return m.proxy.Keys() }

// Len returns the number of present keys.
func (m *Mutable[E]) Len() int { return m.proxy.Len() }

// Snapshot returns a tracked copy of the object.
func (m *Mutable[E]) Snapshot() map[string]E { return m.proxy.Snapshot() }

// Peek returns an untracked copy of the object.
func (m *Mutable[E]) Peek() map[string]E { return m.proxy.Peek() }

// Set writes a field and pushes the object to the container.
func (m *Mutable[E]) Set(key string, value E) {
	m.mutate(func() {
		m.proxy.Set(key, value)
	})
}

// Update writes fn(current) to a field.
//
//	state.Update("value", func(n int) int { return n + 1 })
func (m *Mutable[E]) Update(key string, fn func(E) E) {
	m.mutate(func() {
		m.proxy.Update(key, fn)
	})
}

// Delete removes a field and pushes the object to the container.
func (m *Mutable[E]) Delete(key string) {
	m.mutate(func() {
		m.proxy.Delete(key)
	})
}

func (m *Mutable[E]) mutate(fn func()) {
	if !m.active() {
		m.stale()
		return
	}
	reactive.Batch(fn)
}

var (
	_ reactive.Fields[int]    = (*Mutable[int])(nil)
	_ reactive.StoreView[int] = (*Mutable[int])(nil)
)
