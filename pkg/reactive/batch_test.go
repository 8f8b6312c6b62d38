package reactive

import "testing"

func TestBatchCoalescesNotifications(t *testing.T) {
	first := NewSignal("John")
	last := NewSignal("Doe")

	runs := 0
	var full string
	e := CreateEffect(func() Cleanup {
		runs++
		full = first.Get() + " " + last.Get()
		return nil
	})
	defer e.Dispose()

	Batch(func() {
		first.Set("Ada")
		last.Set("Lovelace")
		if first.Peek() != "Ada" {
			t.Error("writes should be visible inside the batch")
		}
		if runs != 1 {
			t.Errorf("effect should not run inside the batch, runs=%d", runs)
		}
	})

	if runs != 2 {
		t.Errorf("expected one re-run after batch, got %d runs", runs)
	}
	if full != "Ada Lovelace" {
		t.Errorf("expected %q, got %q", "Ada Lovelace", full)
	}
}

func TestBatchNested(t *testing.T) {
	s := NewSignal(0)
	e := CreateEffect(func() Cleanup {
		_ = s.Get()
		return nil
	})
	defer e.Dispose()

	Batch(func() {
		s.Set(1)
		Batch(func() {
			s.Set(2)
		})
		if e.Runs() != 1 {
			t.Errorf("inner batch should not flush, runs=%d", e.Runs())
		}
	})

	if e.Runs() != 2 {
		t.Errorf("expected 2 runs, got %d", e.Runs())
	}
}

func TestUntracked(t *testing.T) {
	s := NewSignal(0)
	e := CreateEffect(func() Cleanup {
		Untracked(func() {
			_ = s.Get()
		})
		_ = UntrackedGet(s)
		return nil
	})
	defer e.Dispose()

	s.Set(1)
	if e.Runs() != 1 {
		t.Errorf("untracked reads should not subscribe, runs=%d", e.Runs())
	}
}
