package bridge

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/storebridge/pkg/reactive"
)

// Option configures a binding.
type Option func(*options)

type options struct {
	logger        *slog.Logger
	metrics       *Metrics
	tracer        trace.Tracer
	ctx           context.Context
	owner         *reactive.Owner
	initialNotify bool
	name          string
}

func newOptions(opts []Option) options {
	o := options{
		initialNotify: true,
		ctx:           context.Background(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(defaultTracerName)
	}
	if o.ctx == nil {
		o.ctx = context.Background()
	}
	return o
}

// WithLogger sets the logger for lifecycle and stale-write records.
// Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics records binding activity into m. Without it nothing is counted.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithTracer sets the tracer for bind spans.
// Default: the global provider's "storebridge" tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}

// WithContext sets the parent context of the bind span.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		o.ctx = ctx
	}
}

// WithOwner ties the binding to owner instead of reactive.CurrentOwner().
func WithOwner(owner *reactive.Owner) Option {
	return func(o *options) {
		o.owner = owner
	}
}

// WithoutInitialNotify accepts containers whose Subscribe does not call the
// listener with the current value.
func WithoutInitialNotify() Option {
	return func(o *options) {
		o.initialNotify = false
	}
}

// WithName labels the binding in logs and spans.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}
