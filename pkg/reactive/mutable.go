package reactive

import "sync"

// Fields is the explicit interception contract for object-like reactive
// values: reads go through Get, writes through Set.
type Fields[E any] interface {
	Get(key string) E
	Set(key string, value E)
}

// WriteHook observes a field write on a Mutable. It receives the written key
// and a copy of the whole object after the write.
type WriteHook[E any] func(key string, snapshot map[string]E)

// Mutable is a reactive object whose field writes are observed one by one.
// Reads are tracked per field like a Store; every write that changes a field
// is reported to the installed WriteHook.
type Mutable[E any] struct {
	store *Store[E]

	hookMu sync.RWMutex
	hook   WriteHook[E]
}

// NewMutable creates a mutable object seeded with a copy of initial.
func NewMutable[E any](initial map[string]E) *Mutable[E] {
	return &Mutable[E]{store: NewStore(initial)}
}

// Intercept installs h as the write hook and returns the previous one.
func (m *Mutable[E]) Intercept(h WriteHook[E]) WriteHook[E] {
	m.hookMu.Lock()
	defer m.hookMu.Unlock()
	prev := m.hook
	m.hook = h
	return prev
}

// Get returns the field value and tracks the field.
func (m *Mutable[E]) Get(key string) E { return m.store.Get(key) }

// Lookup returns the field value and whether it is present.
func (m *Mutable[E]) Lookup(key string) (E, bool) { return m.store.Lookup(key) }

// Has reports whether key is present.
func (m *Mutable[E]) Has(key string) bool { return m.store.Has(key) }

// Keys returns the present keys in sorted order.
func (m *Mutable[E]) Keys() []string { return m.store.Keys() }

// Len returns the number of present keys.
func (m *Mutable[E]) Len() int { return m.store.Len() }

// Snapshot returns a tracked copy of the object.
func (m *Mutable[E]) Snapshot() map[string]E { return m.store.Snapshot() }

// Peek returns an untracked copy of the object.
func (m *Mutable[E]) Peek() map[string]E { return m.store.Peek() }

// Set writes a field. The hook runs only if the value changed.
func (m *Mutable[E]) Set(key string, value E) {
	if m.store.SetField(key, value) {
		m.emit(key)
	}
}

// Update writes fn(current) to a field; the current value is read untracked.
//
//	state.Update("value", func(n int) int { return n + 1 }) // state.value++
func (m *Mutable[E]) Update(key string, fn func(E) E) {
	var cur E
	Untracked(func() {
		cur = m.store.Get(key)
	})
	m.Set(key, fn(cur))
}

// Delete removes a field. The hook runs only if the field was present.
func (m *Mutable[E]) Delete(key string) {
	if m.store.DeleteField(key) {
		m.emit(key)
	}
}

// Assign overwrites the object in place to match next without calling the
// hook. The Mutable keeps its identity, so existing readers stay subscribed.
func (m *Mutable[E]) Assign(next map[string]E) bool {
	return m.store.Replace(next)
}

func (m *Mutable[E]) emit(key string) {
	m.hookMu.RLock()
	h := m.hook
	m.hookMu.RUnlock()
	if h != nil {
		h(key, m.store.Peek())
	}
}

var (
	_ Fields[int]    = (*Mutable[int])(nil)
	_ StoreView[int] = (*Mutable[int])(nil)
)
