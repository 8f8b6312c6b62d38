package reactive

import (
	"runtime"
	"sync"
)

// trackingContext holds the reactive state of one goroutine.
type trackingContext struct {
	// owner receives effects and cleanups created on this goroutine.
	owner *Owner

	// listener is subscribed by signal reads. nil disables tracking.
	listener Listener

	// batchDepth counts nested Batch calls. While > 0, notifications are
	// queued in pending instead of delivered.
	batchDepth int
	pending    []Listener
}

// contexts maps goroutine IDs to their tracking context.
var contexts sync.Map

// goroutineID parses the current goroutine ID from the runtime stack header
// ("goroutine <id> [...").
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// current returns the tracking context of the calling goroutine, creating it
// on first use.
func current() *trackingContext {
	gid := goroutineID()
	if ctx, ok := contexts.Load(gid); ok {
		return ctx.(*trackingContext)
	}
	ctx := &trackingContext{}
	contexts.Store(gid, ctx)
	return ctx
}

// release drops the calling goroutine's context once it holds nothing.
func release(ctx *trackingContext) {
	if ctx.owner == nil && ctx.listener == nil && ctx.batchDepth == 0 && len(ctx.pending) == 0 {
		contexts.Delete(goroutineID())
	}
}

func currentListener() Listener {
	return current().listener
}

func setCurrentListener(l Listener) Listener {
	ctx := current()
	old := ctx.listener
	ctx.listener = l
	return old
}

// CurrentOwner returns the owner of the running component scope, or nil
// outside any scope.
func CurrentOwner() *Owner {
	return current().owner
}

func setCurrentOwner(o *Owner) *Owner {
	ctx := current()
	old := ctx.owner
	ctx.owner = o
	return old
}

// WithOwner runs fn with owner as the current owner.
// Effects and cleanups created inside fn belong to owner.
//
//	go func() {
//	    WithOwner(parent, func() {
//	        CreateEffect(render)
//	    })
//	}()
func WithOwner(owner *Owner, fn func()) {
	old := setCurrentOwner(owner)
	defer func() {
		ctx := current()
		ctx.owner = old
		release(ctx)
	}()
	fn()
}

// WithListener runs fn with l collecting the signal reads.
func WithListener(l Listener, fn func()) {
	old := setCurrentListener(l)
	defer setCurrentListener(old)
	fn()
}
