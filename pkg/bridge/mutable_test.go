package bridge

import (
	"math/rand"
	"reflect"
	"strconv"
	"testing"

	"github.com/vango-dev/storebridge/pkg/atom"
	"github.com/vango-dev/storebridge/pkg/reactive"
	"github.com/vango-dev/storebridge/pkg/vtest"
)

func TestBindMutable_WritesPushSnapshot(t *testing.T) {
	c := atom.New(map[string]int{"value": 0, "other": 9})
	m, err := BindMutable[int](c)
	if err != nil {
		t.Fatalf("BindMutable: %v", err)
	}
	defer m.Dispose()

	m.Set("value", 1)
	m.Update("value", func(n int) int { return n + 1 })

	want := map[string]int{"value": 2, "other": 9}
	if !reflect.DeepEqual(c.Get(), want) {
		t.Errorf("container = %v, want %v", c.Get(), want)
	}

	m.Delete("other")
	if _, ok := c.Get()["other"]; ok {
		t.Errorf("expected other deleted in container, got %v", c.Get())
	}
	if m.Has("other") || m.Len() != 1 {
		t.Errorf("expected other deleted in proxy, got %v", m.Peek())
	}
}

func TestBindMutable_ExternalUpdateKeepsReaders(t *testing.T) {
	c := atom.New(map[string]int{"value": 0})
	m := MustBindMutable[int](c)
	defer m.Dispose()

	var seen []int
	reactive.CreateEffect(func() reactive.Cleanup {
		seen = append(seen, m.Get("value"))
		return nil
	})

	c.Set(map[string]int{"value": 5})
	c.Set(map[string]int{"value": 6, "extra": 1})

	if !reflect.DeepEqual(seen, []int{0, 5, 6}) {
		t.Errorf("expected reader to follow external updates, got %v", seen)
	}
	if v, ok := m.Lookup("extra"); !ok || v != 1 {
		t.Errorf("expected extra=1, got %d, %v", v, ok)
	}
	if !reflect.DeepEqual(m.Keys(), []string{"extra", "value"}) {
		t.Errorf("Keys() = %v", m.Keys())
	}
}

func TestBindMutable_NoEcho(t *testing.T) {
	c := atom.New(map[string]int{"value": 0})
	m := MustBindMutable[int](c)
	defer m.Dispose()

	runs := 0
	reactive.CreateEffect(func() reactive.Cleanup {
		m.Get("value")
		runs++
		return nil
	})

	m.Update("value", func(n int) int { return n + 1 })

	if runs != 2 {
		t.Errorf("expected a single re-run, got %d runs", runs)
	}
	if m.Snapshot()["value"] != 1 {
		t.Errorf("expected value 1, got %v", m.Snapshot())
	}
}

func TestBindMutable_UnchangedWriteDoesNotPush(t *testing.T) {
	pushes := 0
	c := atom.New(map[string]int{"value": 3})
	c.Listen(func(map[string]int) { pushes++ })

	m := MustBindMutable[int](c)
	defer m.Dispose()

	m.Set("value", 3)
	if pushes != 0 {
		t.Errorf("writing an equal value should not reach the container, got %d pushes", pushes)
	}
}

func TestBindMutable_FieldIsolation(t *testing.T) {
	c := atom.New(map[string]int{"a": 0, "b": 0})
	m := MustBindMutable[int](c)
	defer m.Dispose()

	aRuns, bRuns := 0, 0
	reactive.CreateEffect(func() reactive.Cleanup {
		m.Get("a")
		aRuns++
		return nil
	})
	reactive.CreateEffect(func() reactive.Cleanup {
		m.Get("b")
		bRuns++
		return nil
	})

	m.Set("a", 1)
	c.Set(map[string]int{"a": 2, "b": 0})

	if aRuns != 3 {
		t.Errorf("expected reader of a to run 3 times, got %d", aRuns)
	}
	if bRuns != 1 {
		t.Errorf("reader of b should not re-run, got %d runs", bRuns)
	}
}

func TestBindMutable_Convergence(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	keys := []string{"x", "y", "z"}

	for round := 0; round < 30; round++ {
		c := atom.New(map[string]int{"x": 0})
		m := MustBindMutable[int](c)

		for i := 0; i < 30; i++ {
			k := keys[rng.Intn(len(keys))]
			v := rng.Intn(3)
			switch rng.Intn(3) {
			case 0:
				m.Set(k, v)
			case 1:
				m.Delete(k)
			default:
				next := map[string]int{}
				for _, kk := range keys[:rng.Intn(len(keys))+1] {
					next[kk] = v
				}
				c.Set(next)
			}
			if !reflect.DeepEqual(m.Peek(), c.Get()) {
				t.Fatalf("round %d step %d: proxy %v != container %v", round, i, m.Peek(), c.Get())
			}
		}
		m.Dispose()
	}
}

func TestBindMutable_Counter(t *testing.T) {
	counter := atom.New(map[string]int{"value": 0})

	screen := vtest.Mount(t, func() *vtest.Node {
		state := MustBindMutable[int](counter)
		return vtest.Group(
			vtest.Text("count", func() string { return strconv.Itoa(state.Get("value")) }),
			vtest.Button("inc", "+", func() { state.Update("value", func(n int) int { return n + 1 }) }),
			vtest.Button("dec", "-", func() { state.Update("value", func(n int) int { return n - 1 }) }),
		)
	})

	screen.FindByTestID("inc").Click()
	screen.FindByTestID("inc").Click()
	vtest.ExpectText(t, screen, "count", "2")

	screen.FindByTestID("dec").Click()
	vtest.ExpectText(t, screen, "count", "1")

	if counter.Get()["value"] != 1 {
		t.Errorf("expected container value 1, got %v", counter.Get())
	}
}
