package reactive

// Batch groups signal writes into one notification phase.
// Listeners touched inside fn are collected, deduplicated and notified once
// when the outermost Batch returns. Reads inside fn already see new values.
//
//	Batch(func() {
//	    first.Set("Ada")
//	    last.Set("Lovelace")
//	})
//	// effects reading both names run once
func Batch(fn func()) {
	ctx := current()
	ctx.batchDepth++

	defer func() {
		ctx.batchDepth--
		if ctx.batchDepth == 0 {
			flushPending(ctx)
			release(ctx)
		}
	}()

	fn()
}

// flushPending notifies queued listeners until the queue settles. Listeners
// that write signals while being notified enqueue more work, which is drained
// in the same loop.
func flushPending(ctx *trackingContext) {
	for len(ctx.pending) > 0 {
		updates := ctx.pending
		ctx.pending = nil

		seen := make(map[uint64]bool, len(updates))
		for _, l := range updates {
			id := l.ID()
			if seen[id] {
				continue
			}
			seen[id] = true
			l.MarkDirty()
		}
	}
}

// Untracked runs fn without subscribing the current listener to anything fn
// reads. For a single read prefer Signal.Peek.
func Untracked(fn func()) {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	fn()
}

// UntrackedGet reads s without creating a dependency.
func UntrackedGet[T any](s *Signal[T]) T {
	return s.Peek()
}
