package reactive

import (
	"sync"
	"sync/atomic"
)

// Effect is a side effect that re-runs whenever a signal it read changes.
// It runs once on creation. Re-runs happen synchronously when a dependency is
// written, or when the outermost Batch closes.
type Effect struct {
	id uint64

	fn      func() Cleanup
	cleanup Cleanup

	sources   []*signalBase
	sourcesMu sync.Mutex

	owner *Owner
	// scope owns whatever the current run creates. It is disposed before the
	// next run and when the effect is disposed.
	scope *Owner

	// running is set while fn executes; a dependency write from inside fn
	// sets pending and the effect loops once fn returns.
	running  atomic.Bool
	pending  atomic.Bool
	disposed atomic.Bool

	runs atomic.Int64
}

// CreateEffect creates an effect owned by the current owner and runs it.
// The Cleanup returned by fn, if any, runs before the next run and on disposal.
//
//	CreateEffect(func() Cleanup {
//	    label.SetText(strconv.Itoa(count.Get()))
//	    return nil
//	})
func CreateEffect(fn func() Cleanup) *Effect {
	owner := CurrentOwner()
	e := &Effect{
		id:    nextID(),
		fn:    fn,
		owner: owner,
	}
	if owner != nil {
		owner.registerEffect(e)
	}
	e.run()
	return e
}

// MarkDirty schedules a re-run. Implements Listener.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}
	if e.running.Load() {
		e.pending.Store(true)
		return
	}
	e.run()
}

// ID returns the unique identifier for this effect.
func (e *Effect) ID() uint64 {
	return e.id
}

// Runs reports how many times the effect body has executed.
func (e *Effect) Runs() int {
	return int(e.runs.Load())
}

// Dispose stops the effect and runs its last cleanup.
func (e *Effect) Dispose() {
	e.dispose()
}

func (e *Effect) run() {
	for {
		if e.disposed.Load() {
			return
		}
		e.pending.Store(false)
		e.running.Store(true)

		e.disposeScope()
		if e.cleanup != nil {
			e.cleanup()
			e.cleanup = nil
		}
		e.clearSources()

		e.scope = NewOwner(e.owner)
		oldListener := setCurrentListener(e)
		oldOwner := setCurrentOwner(e.scope)
		e.cleanup = e.fn()
		setCurrentOwner(oldOwner)
		setCurrentListener(oldListener)

		e.runs.Add(1)
		e.running.Store(false)

		if !e.pending.Load() {
			return
		}
	}
}

func (e *Effect) addSource(source *signalBase) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

func (e *Effect) clearSources() {
	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = e.sources[:0]
	e.sourcesMu.Unlock()
}

func (e *Effect) dispose() {
	if e.disposed.Swap(true) {
		return
	}
	e.disposeScope()
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
	e.clearSources()
}

func (e *Effect) disposeScope() {
	if e.scope != nil {
		e.scope.Dispose()
		e.scope = nil
	}
}

// OnMount runs fn once, inside an effect with no dependencies.
func OnMount(fn func()) {
	CreateEffect(func() Cleanup {
		Untracked(fn)
		return nil
	})
}

// OnCleanup registers fn with the current owner. It runs when the owner is
// disposed. Outside any owner fn is never called, and OnCleanup reports false.
func OnCleanup(fn func()) bool {
	owner := CurrentOwner()
	if owner == nil {
		return false
	}
	owner.OnCleanup(fn)
	return true
}

var _ sourceTracker = (*Effect)(nil)
