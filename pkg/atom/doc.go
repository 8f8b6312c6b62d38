// Package atom provides a minimal external value container.
//
// An Atom holds one value shared by everything that imports it. It is the
// reference implementation of the container contract bridges bind to:
//
//	var Counter = atom.New(0)
//
//	unsubscribe := Counter.Subscribe(func(v int) {
//	    fmt.Println("counter is", v) // called now, then on every change
//	})
//	Counter.Set(1)
//	unsubscribe()
//
// Subscribe calls the listener immediately with the current value; Listen
// only reports later changes. Listeners run synchronously inside the outermost
// Set, in subscription order. A Set made by a listener is queued behind the
// calls already pending, so the last value each listener hears is the
// current one.
//
// Atoms deliberately stop there: no derived atoms, no batching, no lifecycle
// hooks.
package atom
