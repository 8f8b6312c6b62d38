package vtest_test

import (
	"strconv"
	"testing"

	"github.com/vango-dev/storebridge/pkg/reactive"
	"github.com/vango-dev/storebridge/pkg/vtest"
)

func counter(count *reactive.Signal[int]) vtest.Component {
	return func() *vtest.Node {
		return vtest.Group(
			vtest.Text("value", func() string { return strconv.Itoa(count.Get()) }),
			vtest.Button("inc", "+", func() { count.Update(func(n int) int { return n + 1 }) }),
		)
	}
}

func TestRender_InitialText(t *testing.T) {
	count := reactive.NewSignal(1)
	screen := vtest.Mount(t, counter(count))

	vtest.ExpectText(t, screen, "value", "1")
	if got := screen.TextContent(); got != "1+" {
		t.Errorf("expected screen text %q, got %q", "1+", got)
	}
}

func TestClick_Rerenders(t *testing.T) {
	count := reactive.NewSignal(1)
	screen := vtest.Mount(t, counter(count))

	value := screen.FindByTestID("value")
	if value.Renders() != 1 {
		t.Fatalf("expected 1 render after mount, got %d", value.Renders())
	}

	screen.FindByTestID("inc").Click()

	vtest.ExpectText(t, screen, "value", "2")
	if value.Renders() != 2 {
		t.Errorf("expected 2 renders after click, got %d", value.Renders())
	}
}

func TestClick_BatchesWrites(t *testing.T) {
	a := reactive.NewSignal(0)
	b := reactive.NewSignal(0)

	screen := vtest.Mount(t, func() *vtest.Node {
		return vtest.Group(
			vtest.Text("sum", func() string { return strconv.Itoa(a.Get() + b.Get()) }),
			vtest.Button("both", "both", func() {
				a.Set(1)
				b.Set(2)
			}),
		)
	})

	sum := screen.FindByTestID("sum")
	screen.FindByTestID("both").Click()

	vtest.ExpectText(t, screen, "sum", "3")
	if sum.Renders() != 2 {
		t.Errorf("expected one re-render for a batched click, got %d renders", sum.Renders())
	}
}

func TestCleanup_StopsRendering(t *testing.T) {
	count := reactive.NewSignal(1)
	screen := vtest.Render(counter(count))

	cleaned := false
	screen.Owner().OnCleanup(func() { cleaned = true })

	screen.Cleanup()
	if !cleaned || !screen.Disposed() {
		t.Fatal("expected Cleanup to dispose the owner")
	}

	count.Set(5)
	vtest.ExpectText(t, screen, "value", "1")

	// A second Cleanup is a no-op.
	screen.Cleanup()
}

func TestComponentRunsUnderOwner(t *testing.T) {
	var owner *reactive.Owner
	screen := vtest.Mount(t, func() *vtest.Node {
		owner = reactive.CurrentOwner()
		return vtest.Text("x", func() string { return "x" })
	})

	if owner == nil || owner != screen.Owner() {
		t.Error("expected component to run under the screen owner")
	}
}

func TestFindByTestID_Missing(t *testing.T) {
	screen := vtest.Mount(t, func() *vtest.Node { return vtest.Group() })

	if screen.FindByTestID("nope") != nil {
		t.Error("expected nil for unknown test ID")
	}
}

func TestButtonText(t *testing.T) {
	screen := vtest.Mount(t, func() *vtest.Node {
		return vtest.Button("go", "Go", nil)
	})

	n := screen.FindByTestID("go")
	if n.Kind() != vtest.KindButton || n.TextContent() != "Go" {
		t.Errorf("unexpected button node: kind=%v text=%q", n.Kind(), n.TextContent())
	}
	// nil handler must not panic
	n.Click()
}
