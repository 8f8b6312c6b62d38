package bridge

import (
	"errors"
	"fmt"

	bridgeerrors "github.com/vango-dev/storebridge/internal/errors"
)

// Sentinel errors for bind failures. A *BindingError wraps exactly one of
// them, so callers can match with errors.Is.
var (
	// ErrNilContainer is returned when the container is nil.
	ErrNilContainer = errors.New("storebridge: nil container")

	// ErrSubscribePanicked is returned when the container's Subscribe panics.
	// The panic value is kept as the error's Cause.
	ErrSubscribePanicked = errors.New("storebridge: subscribe panicked")

	// ErrNilUnsubscribe is returned when Subscribe hands back a nil function.
	ErrNilUnsubscribe = errors.New("storebridge: subscribe returned nil unsubscribe")

	// ErrNoInitialValue is returned when Subscribe returns without calling the
	// listener. Bind with WithoutInitialNotify for listen-only containers.
	ErrNoInitialValue = errors.New("storebridge: subscribe did not deliver the initial value")
)

// ErrStaleWrite describes a write made after the binding was disposed.
// It is never returned; it is attached to the debug log record.
var ErrStaleWrite = errors.New("storebridge: write to disposed binding ignored")

var sentinels = map[error]string{
	ErrNilContainer:      "B001",
	ErrSubscribePanicked: "B002",
	ErrNilUnsubscribe:    "B003",
	ErrNoInitialValue:    "B004",
}

// BindingError reports why a container could not be bound.
type BindingError struct {
	// Code is the registry code, e.g. "B003".
	Code string

	Kind Kind

	// Op is the bind call that failed, e.g. "BindStore".
	Op string

	Message string
	Detail  string

	// Err is the sentinel for this failure.
	Err error

	// Cause is the underlying failure, if any (e.g. the recovered panic).
	Cause error
}

func newBindingError(kind Kind, sentinel, cause error) *BindingError {
	code := sentinels[sentinel]
	tmpl, _ := bridgeerrors.Lookup(code)
	return &BindingError{
		Code:    code,
		Kind:    kind,
		Op:      opName(kind),
		Message: tmpl.Message,
		Detail:  tmpl.Detail,
		Err:     sentinel,
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *BindingError) Error() string {
	msg := fmt.Sprintf("storebridge: %s: %s: %s", e.Op, e.Code, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes the sentinel and the cause.
func (e *BindingError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// Coded returns the error in the registry's printable form.
func (e *BindingError) Coded() *bridgeerrors.Error {
	out := bridgeerrors.New(e.Code)
	if e.Cause != nil {
		out.Wrap(e.Cause)
	}
	return out
}

func opName(kind Kind) string {
	switch kind {
	case KindSignal:
		return "BindSignal"
	case KindStore:
		return "BindStore"
	case KindMutable:
		return "BindMutable"
	case KindReadonly:
		return "BindReadonly"
	default:
		return "Bind"
	}
}

// panicError turns a recovered value into an error.
func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
