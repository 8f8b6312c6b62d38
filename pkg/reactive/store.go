package reactive

import (
	"sort"
	"sync"
)

// StoreView is the read side of a Store. Every read is tracked at field
// granularity: Get("a") depends on field "a" only, Keys and Len depend on the
// set of keys, Snapshot depends on everything.
type StoreView[E any] interface {
	Get(key string) E
	Lookup(key string) (E, bool)
	Has(key string) bool
	Keys() []string
	Len() int
	Snapshot() map[string]E
	Peek() map[string]E
}

// slot is one field cell. ok distinguishes an absent key from a zero value so
// that readers of a missing key are notified when it appears.
type slot[E any] struct {
	value E
	ok    bool
}

// Store is a reactive object whose fields are independent signals.
type Store[E any] struct {
	mu     sync.Mutex
	fields map[string]*Signal[slot[E]]

	// shape changes whenever a key is added or removed.
	shape *Signal[uint64]
}

// NewStore creates a store seeded with a copy of initial.
func NewStore[E any](initial map[string]E) *Store[E] {
	s := &Store[E]{
		fields: make(map[string]*Signal[slot[E]], len(initial)),
		shape:  NewSignal[uint64](0),
	}
	for k, v := range initial {
		s.fields[k] = NewSignal(slot[E]{value: v, ok: true})
	}
	return s
}

// field returns the cell for key, creating an absent one when missing.
func (s *Store[E]) field(key string) *Signal[slot[E]] {
	s.mu.Lock()
	defer s.mu.Unlock()

	sig, ok := s.fields[key]
	if !ok {
		sig = NewSignal(slot[E]{})
		s.fields[key] = sig
	}
	return sig
}

// Get returns the value of key, or the zero value when absent.
func (s *Store[E]) Get(key string) E {
	return s.field(key).Get().value
}

// Lookup returns the value of key and whether it is present.
func (s *Store[E]) Lookup(key string) (E, bool) {
	cell := s.field(key).Get()
	return cell.value, cell.ok
}

// Has reports whether key is present.
func (s *Store[E]) Has(key string) bool {
	_, ok := s.Lookup(key)
	return ok
}

// Keys returns the present keys in sorted order.
func (s *Store[E]) Keys() []string {
	s.shape.Get()
	return s.presentKeys()
}

// Len returns the number of present keys.
func (s *Store[E]) Len() int {
	return len(s.Keys())
}

// Snapshot returns a copy of all present fields, depending on each of them.
func (s *Store[E]) Snapshot() map[string]E {
	keys := s.Keys()
	out := make(map[string]E, len(keys))
	for _, k := range keys {
		if v, ok := s.Lookup(k); ok {
			out[k] = v
		}
	}
	return out
}

// Peek returns a copy of all present fields without tracking.
func (s *Store[E]) Peek() map[string]E {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]E, len(s.fields))
	for k, sig := range s.fields {
		if cell := sig.Peek(); cell.ok {
			out[k] = cell.value
		}
	}
	return out
}

func (s *Store[E]) presentKeys() []string {
	s.mu.Lock()
	keys := make([]string, 0, len(s.fields))
	for k, sig := range s.fields {
		if sig.Peek().ok {
			keys = append(keys, k)
		}
	}
	s.mu.Unlock()

	sort.Strings(keys)
	return keys
}

// SetField writes one field and reports whether it changed.
// Only readers of key (and of the key set, when key is new) are notified.
func (s *Store[E]) SetField(key string, value E) bool {
	sig := s.field(key)
	added := !sig.Peek().ok
	changed := sig.swap(slot[E]{value: value, ok: true})
	if added {
		s.bumpShape()
	}
	return changed
}

// DeleteField removes key and reports whether it was present.
func (s *Store[E]) DeleteField(key string) bool {
	s.mu.Lock()
	sig, ok := s.fields[key]
	s.mu.Unlock()
	if !ok || !sig.Peek().ok {
		return false
	}
	sig.Set(slot[E]{})
	s.bumpShape()
	return true
}

// Merge writes every field of patch in one batch and reports whether any
// field changed. Fields absent from patch are left alone.
func (s *Store[E]) Merge(patch map[string]E) bool {
	changed := false
	Batch(func() {
		for k, v := range patch {
			if s.SetField(k, v) {
				changed = true
			}
		}
	})
	return changed
}

// Replace makes the store match next field by field in one batch: changed
// fields are written, missing keys are deleted and equal fields stay silent.
func (s *Store[E]) Replace(next map[string]E) bool {
	changed := false
	Batch(func() {
		for k, v := range next {
			if s.SetField(k, v) {
				changed = true
			}
		}
		for _, k := range s.presentKeys() {
			if _, keep := next[k]; !keep && s.DeleteField(k) {
				changed = true
			}
		}
	})
	return changed
}

func (s *Store[E]) bumpShape() {
	s.shape.Update(func(n uint64) uint64 { return n + 1 })
}

var _ StoreView[int] = (*Store[int])(nil)
