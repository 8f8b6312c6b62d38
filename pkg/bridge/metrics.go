package bridge

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metricsConfig names and places the binding collectors. Without options they
// are storebridge_* series on the default registerer.
type metricsConfig struct {
	namespace   string
	subsystem   string
	constLabels prometheus.Labels
	registerer  prometheus.Registerer
}

// MetricsOption adjusts where NewMetrics registers the binding collectors.
type MetricsOption func(*metricsConfig)

// WithNamespace replaces the "storebridge" prefix of every binding series.
func WithNamespace(namespace string) MetricsOption {
	return func(c *metricsConfig) { c.namespace = namespace }
}

// WithSubsystem inserts a segment between the prefix and the series name,
// e.g. storebridge_cart_binds_total.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *metricsConfig) { c.subsystem = subsystem }
}

// WithConstLabels attaches fixed labels, such as an app name, next to "kind".
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *metricsConfig) { c.constLabels = labels }
}

// WithRegistry registers the collectors with registry. Tests pass a fresh
// prometheus.NewRegistry() so repeated NewMetrics calls do not collide.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *metricsConfig) { c.registerer = registry }
}

// Metrics counts binding activity by variant (label "kind").
//
// Metrics collected:
//   - storebridge_binds_total: bindings created
//   - storebridge_bind_errors_total: failed binds by kind and code
//   - storebridge_local_writes_total: local writes sent to containers
//   - storebridge_external_updates_total: container notifications applied
//   - storebridge_echoes_suppressed_total: notifications skipped as echoes
//   - storebridge_stale_writes_total: writes dropped after disposal
//   - storebridge_active_bindings: bindings not yet disposed
//
// A nil *Metrics records nothing.
type Metrics struct {
	binds           *prometheus.CounterVec
	bindErrors      *prometheus.CounterVec
	localWrites     *prometheus.CounterVec
	externalUpdates *prometheus.CounterVec
	echoes          *prometheus.CounterVec
	staleWrites     *prometheus.CounterVec
	active          *prometheus.GaugeVec
}

// NewMetrics registers the binding metrics.
//
//	reg := prometheus.NewRegistry()
//	m := bridge.NewMetrics(bridge.WithRegistry(reg))
//	sig, _ := bridge.BindSignal[int](count, bridge.WithMetrics(m))
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := metricsConfig{
		namespace:  "storebridge",
		registerer: prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.registerer)

	counter := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.namespace,
			Subsystem:   config.subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.constLabels,
		}, append([]string{"kind"}, labels...))
	}

	return &Metrics{
		binds:           counter("binds_total", "Total number of bindings created"),
		bindErrors:      counter("bind_errors_total", "Total number of failed binds", "code"),
		localWrites:     counter("local_writes_total", "Total number of local writes sent to containers"),
		externalUpdates: counter("external_updates_total", "Total number of container notifications applied to cells"),
		echoes:          counter("echoes_suppressed_total", "Total number of notifications skipped as echoes of local writes"),
		staleWrites:     counter("stale_writes_total", "Total number of writes ignored after disposal"),
		active: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.namespace,
			Subsystem:   config.subsystem,
			Name:        "active_bindings",
			Help:        "Number of bindings not yet disposed",
			ConstLabels: config.constLabels,
		}, []string{"kind"}),
	}
}

func (m *Metrics) bound(kind Kind) {
	if m == nil {
		return
	}
	m.binds.WithLabelValues(string(kind)).Inc()
	m.active.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) disposed(kind Kind) {
	if m == nil {
		return
	}
	m.active.WithLabelValues(string(kind)).Dec()
}

func (m *Metrics) bindFailed(kind Kind, code string) {
	if m == nil {
		return
	}
	m.bindErrors.WithLabelValues(string(kind), code).Inc()
}

func (m *Metrics) localWrite(kind Kind) {
	if m == nil {
		return
	}
	m.localWrites.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) externalUpdate(kind Kind) {
	if m == nil {
		return
	}
	m.externalUpdates.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) echo(kind Kind) {
	if m == nil {
		return
	}
	m.echoes.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) staleWrite(kind Kind) {
	if m == nil {
		return
	}
	m.staleWrites.WithLabelValues(string(kind)).Inc()
}
