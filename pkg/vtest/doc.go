// Package vtest provides a headless harness for testing reactive components.
//
// A component is a function that builds a tree of nodes. Render runs it under
// a fresh reactive.Owner, so bindings and effects created inside it are torn
// down by Cleanup. Text nodes render through effects and re-render whenever a
// signal they read changes; buttons dispatch their handler inside a batch,
// like a UI event.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    count := atom.New(1)
//	    screen := vtest.Mount(t, func() *vtest.Node {
//	        get, set := bridge.MustBindSignal[int](count).Accessors()
//	        return vtest.Group(
//	            vtest.Text("value", func() string { return strconv.Itoa(get()) }),
//	            vtest.Button("inc", "+", func() { set(get() + 1) }),
//	        )
//	    })
//
//	    screen.FindByTestID("inc").Click()
//	    vtest.ExpectText(t, screen, "value", "2")
//	}
//
// # Cleanup
//
// Mount registers Screen.Cleanup with t.Cleanup. Use Render directly to
// control teardown yourself:
//
//	screen := vtest.Render(Counter)
//	screen.Cleanup()
package vtest
