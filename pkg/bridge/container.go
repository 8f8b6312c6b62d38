package bridge

import "reflect"

// Container is an external value holder such as an atom.
//
// Subscribe must call listener with the current value before it returns and
// then once for every later change. The returned function releases the
// subscription.
type Container[T any] interface {
	Get() T
	Set(value T)
	Subscribe(listener func(T)) (unsubscribe func())
}

// Kind names a binding variant.
type Kind string

const (
	KindSignal   Kind = "signal"
	KindStore    Kind = "store"
	KindMutable  Kind = "mutable"
	KindReadonly Kind = "readonly"
)

// State is the lifecycle position of a binding.
type State int32

const (
	StateUnbound State = iota
	StateActive
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUnbound:
		return "unbound"
	case StateActive:
		return "active"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// isNil reports whether c is nil or a typed nil behind the interface.
func isNil(c any) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func copyMap[E any](m map[string]E) map[string]E {
	out := make(map[string]E, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
