package bridge

import "github.com/vango-dev/storebridge/pkg/reactive"

// Store mirrors an object container into a per-field reactive view.
type Store[E any] struct {
	*binding[map[string]E]
	view *reactive.Store[E]
}

// BindStore mirrors c into a field store. Reading a field through View tracks
// that field only; external updates rewrite only the fields that changed.
func BindStore[E any](c Container[map[string]E], opts ...Option) (*Store[E], error) {
	s := &Store[E]{}
	b, err := bind(c, KindStore, opts, func(initial map[string]E) func(map[string]E) {
		s.view = reactive.NewStore(initial)
		return func(next map[string]E) {
			s.view.Replace(next)
		}
	})
	if err != nil {
		return nil, err
	}
	s.binding = b
	return s, nil
}

// MustBindStore is BindStore that panics on error.
func MustBindStore[E any](c Container[map[string]E], opts ...Option) *Store[E] {
	s, err := BindStore(c, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// View returns the read-only reactive view.
func (s *Store[E]) View() reactive.StoreView[E] {
	return s.view
}

// Set merges patch into the container's current value. Only fields whose
// value changes notify their readers; the merged object is then written to
// the container.
func (s *Store[E]) Set(patch map[string]E) {
	if !s.active() {
		s.stale()
		return
	}
	next := copyMap(s.c.Get())
	for k, v := range patch {
		next[k] = v
	}
	s.write(next, func() {
		s.view.Replace(next)
	})
}

// SetFunc merges the patch returned by fn, which receives a copy of the
// current value.
//
//	store.SetFunc(func(cur map[string]int) map[string]int {
//	    return map[string]int{"value": cur["value"] + 1}
//	})
func (s *Store[E]) SetFunc(fn func(current map[string]E) map[string]E) {
	if !s.active() {
		s.stale()
		return
	}
	s.Set(fn(copyMap(s.c.Get())))
}

// Accessors returns the view and the updater.
func (s *Store[E]) Accessors() (reactive.StoreView[E], func(patch map[string]E)) {
	return s.view, s.Set
}
