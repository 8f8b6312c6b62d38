package reactive

// Listener is anything that can be notified when a dependency changes.
// Memos and effects implement it.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies changed.
	// Memos invalidate their cached value; effects re-run.
	MarkDirty()

	// ID returns a unique identifier used for deduplication.
	ID() uint64
}

// Cleanup is returned by effects. It runs before the effect re-runs and when
// the effect is disposed.
type Cleanup func()

// sourceTracker is implemented by listeners that remember which signals they
// read so they can unsubscribe before re-running.
type sourceTracker interface {
	Listener
	addSource(source *signalBase)
}
