// Package reactive provides the fine-grained reactive runtime that bridges
// bind external containers to.
//
// Dependencies are tracked automatically at runtime: reading a Signal inside
// an Effect or Memo subscribes that computation to the signal, and writing the
// signal re-runs exactly the computations that read it.
//
// # Core Types
//
// Signal[T] is a reactive value cell:
//
//	count := NewSignal(0)
//	value := count.Get()  // Read (subscribes current listener)
//	count.Set(5)          // Write (notifies subscribers)
//
// Store[E] is an object of fields where every field is tracked on its own:
//
//	state := NewStore(map[string]int{"value": 0, "step": 1})
//	CreateEffect(func() Cleanup {
//	    fmt.Println(state.Get("value")) // re-runs only when "value" changes
//	    return nil
//	})
//	state.Merge(map[string]int{"step": 2}) // effect above does not re-run
//
// Mutable[E] is a Store whose field writes can be intercepted:
//
//	proxy := NewMutable(map[string]int{"value": 0})
//	proxy.Intercept(func(key string, snapshot map[string]int) {
//	    sink.Set(snapshot)
//	})
//	proxy.Update("value", func(n int) int { return n + 1 })
//
// # Ownership
//
// An Owner is a component scope. Effects created while an owner is current
// belong to it, and OnCleanup registers teardown work. Disposing an owner
// disposes its children first, then its effects, then runs its cleanups in
// reverse registration order.
//
//	Root(func(dispose func()) {
//	    OnCleanup(func() { fmt.Println("unmounted") })
//	    defer dispose()
//	})
//
// # Thread Safety
//
// Primitives are internally locked. The tracking context (current owner,
// current listener, batch depth) is per-goroutine, so work spawned on another
// goroutine must re-establish it with WithOwner.
package reactive
