// Package bridge binds external value containers to reactive primitives.
//
// A container is anything with Get, Set and a Subscribe that calls its
// listener right away with the current value (an atom). A binding mirrors the
// container into a local reactive cell and sends local writes back, so both
// sides agree once a write returns:
//
//	count := atom.New(0)
//
//	sig, err := bridge.BindSignal[int](count)
//	if err != nil {
//	    return err
//	}
//	get, set := sig.Accessors()
//	set(get() + 1) // count.Get() == 1, and effects reading get() re-run
//
// # Variants
//
//   - BindSignal: whole-value getter and setter
//   - BindStore: per-field read-only view plus a merging updater
//   - BindMutable: field-by-field proxy that pushes every write
//   - BindReadonly: tracked mirror with no write path
//
// # Lifecycle
//
// Each binding moves from StateUnbound to StateActive when its subscription is
// established and to StateDisposed when the owning reactive.Owner is disposed
// (or Dispose is called). Dispose releases the subscription exactly once.
// Writes after disposal are dropped and logged at debug level; they never
// panic or return an error.
//
// # Echo suppression
//
// While a local write is being delivered to the container, a notification
// carrying the same value is the binding's own write coming back and is
// skipped. Any other value, for example one written by a sibling listener, is
// applied immediately. When the write returns the cell is reconciled with the
// container's current value.
//
// # Goroutines
//
// A binding belongs to the goroutine that created it, like the UI event loop
// it serves. The reactive primitives underneath are safe for concurrent use,
// but bindings keep their in-flight write stack unsynchronized.
package bridge
