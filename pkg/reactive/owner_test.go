package reactive

import "testing"

func TestOwnerBasic(t *testing.T) {
	owner := NewOwner(nil)

	if owner.ID() == 0 {
		t.Error("owner should have non-zero ID")
	}
	if owner.Parent() != nil {
		t.Error("root owner should have nil parent")
	}
	if owner.IsDisposed() {
		t.Error("new owner should not be disposed")
	}
}

func TestOwnerDisposeOrder(t *testing.T) {
	root := NewOwner(nil)
	child1 := NewOwner(root)
	child2 := NewOwner(root)
	grandchild := NewOwner(child1)

	var order []string
	record := func(name string) func() {
		return func() { order = append(order, name) }
	}

	root.OnCleanup(record("root-1"))
	root.OnCleanup(record("root-2"))
	child1.OnCleanup(record("child1"))
	child2.OnCleanup(record("child2"))
	grandchild.OnCleanup(record("grandchild"))

	root.Dispose()

	want := []string{"child2", "grandchild", "child1", "root-2", "root-1"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q (full: %v)", i, order[i], want[i], order)
		}
	}

	for _, o := range []*Owner{root, child1, child2, grandchild} {
		if !o.IsDisposed() {
			t.Errorf("owner %d should be disposed", o.ID())
		}
	}
}

func TestOwnerDisposeIdempotent(t *testing.T) {
	owner := NewOwner(nil)
	calls := 0
	owner.OnCleanup(func() { calls++ })

	owner.Dispose()
	owner.Dispose()

	if calls != 1 {
		t.Errorf("cleanup should run exactly once, got %d", calls)
	}
}

func TestOwnerOnCleanupAfterDispose(t *testing.T) {
	owner := NewOwner(nil)
	owner.Dispose()

	ran := false
	owner.OnCleanup(func() { ran = true })
	if !ran {
		t.Error("cleanup registered after dispose should run immediately")
	}
}

func TestOwnerDisposesEffects(t *testing.T) {
	s := NewSignal(0)
	owner := NewOwner(nil)

	var e *Effect
	owner.Run(func() {
		e = CreateEffect(func() Cleanup {
			_ = s.Get()
			return nil
		})
	})

	owner.Dispose()
	s.Set(1)

	if e.Runs() != 1 {
		t.Errorf("effect should stop with its owner, runs=%d", e.Runs())
	}
}

func TestCurrentOwner(t *testing.T) {
	if CurrentOwner() != nil {
		t.Fatal("expected no owner outside scope")
	}

	owner := NewOwner(nil)
	defer owner.Dispose()

	WithOwner(owner, func() {
		if CurrentOwner() != owner {
			t.Error("expected owner inside WithOwner")
		}
	})

	if CurrentOwner() != nil {
		t.Error("owner should be restored after WithOwner")
	}
}

func TestRoot(t *testing.T) {
	cleaned := false
	var inside *Owner

	root := Root(func(dispose func()) {
		inside = CurrentOwner()
		OnCleanup(func() { cleaned = true })
	})

	if inside != root {
		t.Fatal("Root should run fn with the new owner")
	}
	if cleaned {
		t.Fatal("cleanup should wait for dispose")
	}

	root.Dispose()
	if !cleaned {
		t.Error("cleanup should run on dispose")
	}
}
