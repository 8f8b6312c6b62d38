package bridge

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vango-dev/storebridge/pkg/atom"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))

	count := atom.New(0)
	sig := MustBindSignal[int](count, WithMetrics(m))

	sig.Set(1)    // local write, echo suppressed
	count.Set(2)  // external update
	sig.Dispose() // active back to zero
	sig.Set(3)    // stale write
	_, _ = BindSignal[int](nil, WithMetrics(m))

	signal := string(KindSignal)
	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"binds", m.binds.WithLabelValues(signal), 1},
		{"local writes", m.localWrites.WithLabelValues(signal), 1},
		{"echoes", m.echoes.WithLabelValues(signal), 1},
		{"external updates", m.externalUpdates.WithLabelValues(signal), 1},
		{"stale writes", m.staleWrites.WithLabelValues(signal), 1},
		{"active", m.active.WithLabelValues(signal), 0},
		{"bind errors", m.bindErrors.WithLabelValues(signal, "B001"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testutil.ToFloat64(tt.c); got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
			}
		})
	}

	if n, err := testutil.GatherAndCount(reg, "test_binds_total"); err != nil || n != 1 {
		t.Errorf("expected test_binds_total registered, got %d series (err=%v)", n, err)
	}
}

func TestMetrics_ActiveGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))

	a := MustBindStore[int](atom.New(map[string]int{}), WithMetrics(m))
	b := MustBindStore[int](atom.New(map[string]int{}), WithMetrics(m))

	if got := testutil.ToFloat64(m.active.WithLabelValues(string(KindStore))); got != 2 {
		t.Errorf("active = %v, want 2", got)
	}

	a.Dispose()
	a.Dispose()
	if got := testutil.ToFloat64(m.active.WithLabelValues(string(KindStore))); got != 1 {
		t.Errorf("active = %v, want 1 after a double dispose", got)
	}
	b.Dispose()
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	m.bound(KindSignal)
	m.localWrite(KindSignal)
	m.staleWrite(KindSignal)
	m.disposed(KindSignal)
}

func TestMetrics_SubsystemAndConstLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(
		WithRegistry(reg),
		WithSubsystem("cart"),
		WithConstLabels(prometheus.Labels{"app": "shop"}),
	)

	sig := MustBindSignal[int](atom.New(0), WithMetrics(m))
	defer sig.Dispose()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "storebridge_cart_binds_total" {
			continue
		}
		labels := map[string]string{}
		for _, lp := range mf.GetMetric()[0].GetLabel() {
			labels[lp.GetName()] = lp.GetValue()
		}
		if labels["app"] != "shop" || labels["kind"] != string(KindSignal) {
			t.Errorf("unexpected labels %v", labels)
		}
		return
	}
	t.Error("storebridge_cart_binds_total not registered")
}
