package bridge

import (
	"log/slog"
	"sync/atomic"

	"github.com/oklog/ulid/v2"

	"github.com/vango-dev/storebridge/pkg/reactive"
)

// binding is the part shared by every variant: the subscription, the
// lifecycle state and the in-flight write stack.
type binding[T any] struct {
	id      string
	kind    Kind
	logger  *slog.Logger
	metrics *Metrics

	c     Container[T]
	apply func(T)

	state atomic.Int32
	unsub func()

	// subscribing is set while Subscribe runs; delivered records whether
	// the initial value arrived in that window.
	subscribing bool
	delivered   bool

	// inflight holds the values of local writes currently inside c.Set.
	inflight []T
}

// bind validates c, seeds the cell through seed and subscribes. seed receives
// c.Get() and returns the function that writes an external value into the
// cell.
func bind[T any](c Container[T], kind Kind, opts []Option, seed func(T) func(T)) (_ *binding[T], err error) {
	o := newOptions(opts)
	b := &binding[T]{
		id:      ulid.Make().String(),
		kind:    kind,
		metrics: o.metrics,
		c:       c,
	}
	b.logger = o.logger.With("binding_id", b.id, "kind", string(kind))
	if o.name != "" {
		b.logger = b.logger.With("name", o.name)
	}

	_, span := startBindSpan(o, kind, b.id)
	defer func() {
		if err != nil {
			code := ""
			if be, ok := err.(*BindingError); ok {
				code = be.Code
			}
			b.metrics.bindFailed(kind, code)
			b.logger.Debug("bind failed", "error", err)
		}
		endBindSpan(span, err)
	}()

	if isNil(c) {
		return nil, newBindingError(kind, ErrNilContainer, nil)
	}

	b.apply = seed(c.Get())

	unsub, err := b.subscribe()
	if err != nil {
		return nil, err
	}
	if unsub == nil {
		return nil, newBindingError(kind, ErrNilUnsubscribe, nil)
	}
	if o.initialNotify && !b.delivered {
		unsub()
		return nil, newBindingError(kind, ErrNoInitialValue, nil)
	}

	b.unsub = unsub
	b.state.Store(int32(StateActive))
	b.metrics.bound(kind)

	owner := o.owner
	if owner == nil {
		owner = reactive.CurrentOwner()
	}
	if owner != nil {
		b.logger.Debug("binding created", "owner", owner.ID())
		owner.OnCleanup(b.dispose)
	} else {
		b.logger.Debug("binding created outside a component scope; call Dispose to release it")
	}

	return b, nil
}

func (b *binding[T]) subscribe() (unsub func(), err error) {
	b.subscribing = true
	defer func() {
		b.subscribing = false
		if r := recover(); r != nil {
			unsub = nil
			err = newBindingError(b.kind, ErrSubscribePanicked, panicError(r))
		}
	}()
	return b.c.Subscribe(b.receive), nil
}

// receive is the container listener. The notified value is only a signal
// that something changed: the cell always takes c.Get(), so a notification
// delivered after a listener rewrote the container cannot leave it behind.
func (b *binding[T]) receive(v T) {
	if b.subscribing {
		b.delivered = true
		b.apply(v)
		return
	}
	if b.State() != StateActive {
		return
	}
	current := b.c.Get()
	if n := len(b.inflight); n > 0 && reactive.Equal(b.inflight[n-1], current) {
		b.metrics.echo(b.kind)
		b.logger.Debug("echo suppressed")
		return
	}
	b.metrics.externalUpdate(b.kind)
	b.apply(current)
}

// write runs local (if any) and then sends v to the container, all in one
// batch. Afterwards the cell is reconciled with the container, which may
// have rewritten v. It reports false for a stale write.
func (b *binding[T]) write(v T, local func()) bool {
	if !b.active() {
		b.stale()
		return false
	}

	reactive.Batch(func() {
		b.inflight = append(b.inflight, v)
		func() {
			defer func() {
				b.inflight = b.inflight[:len(b.inflight)-1]
			}()
			if local != nil {
				local()
			}
			b.c.Set(v)
		}()

		if b.active() {
			b.apply(b.c.Get())
		}
	})

	b.metrics.localWrite(b.kind)
	return true
}

func (b *binding[T]) active() bool {
	return b.State() == StateActive
}

func (b *binding[T]) stale() {
	b.metrics.staleWrite(b.kind)
	b.logger.Debug("stale write", "error", ErrStaleWrite)
}

// State returns the lifecycle state.
func (b *binding[T]) State() State {
	return State(b.state.Load())
}

// ID returns the binding's unique identifier.
func (b *binding[T]) ID() string {
	return b.id
}

// Kind returns the binding variant.
func (b *binding[T]) Kind() Kind {
	return b.kind
}

// Dispose releases the subscription. It is also registered with the owning
// scope; only the first call has any effect.
func (b *binding[T]) Dispose() {
	b.dispose()
}

func (b *binding[T]) dispose() {
	if !b.state.CompareAndSwap(int32(StateActive), int32(StateDisposed)) {
		return
	}
	unsub := b.unsub
	b.unsub = nil
	unsub()
	b.metrics.disposed(b.kind)
	b.logger.Debug("binding disposed")
}
