// Package demo holds the counter components driven by the storebridge CLI.
// Each one binds a counter atom through a different bridge variant and
// renders it with increment and decrement buttons.
package demo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vango-dev/storebridge/internal/errors"
	"github.com/vango-dev/storebridge/pkg/atom"
	"github.com/vango-dev/storebridge/pkg/bridge"
	"github.com/vango-dev/storebridge/pkg/vtest"
)

// Test IDs of the counter nodes.
const (
	CountID     = "count"
	IncrementID = "inc"
	DecrementID = "dec"
)

// Variant selects the bridge variant a counter uses.
type Variant string

const (
	VariantSignal  Variant = "signal"
	VariantStore   Variant = "store"
	VariantMutable Variant = "mutable"
)

// Variants returns every variant in display order.
func Variants() []Variant {
	return []Variant{VariantSignal, VariantStore, VariantMutable}
}

// ParseVariant parses a variant name.
func ParseVariant(s string) (Variant, error) {
	for _, v := range Variants() {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	return "", errors.New("R001").WithDetail(fmt.Sprintf("%q is not a binding variant.", s))
}

// SignalCounter binds count as a signal.
func SignalCounter(count *atom.Atom[int], opts ...bridge.Option) vtest.Component {
	return func() *vtest.Node {
		get, set := bridge.MustBindSignal[int](count, opts...).Accessors()
		return layout(
			func() string { return strconv.Itoa(get()) },
			func() { set(get() + 1) },
			func() { set(get() - 1) },
		)
	}
}

// StoreCounter binds counter as a field store and updates it with patches.
func StoreCounter(counter *atom.Atom[map[string]int], opts ...bridge.Option) vtest.Component {
	return func() *vtest.Node {
		state, setState := bridge.MustBindStore[int](counter, opts...).Accessors()
		return layout(
			func() string { return strconv.Itoa(state.Get("value")) },
			func() { setState(map[string]int{"value": state.Get("value") + 1}) },
			func() { setState(map[string]int{"value": state.Get("value") - 1}) },
		)
	}
}

// MutableCounter binds counter as a mutable proxy and writes its field in
// place.
func MutableCounter(counter *atom.Atom[map[string]int], opts ...bridge.Option) vtest.Component {
	return func() *vtest.Node {
		state := bridge.MustBindMutable[int](counter, opts...)
		return layout(
			func() string { return strconv.Itoa(state.Get("value")) },
			func() { state.Update("value", func(n int) int { return n + 1 }) },
			func() { state.Update("value", func(n int) int { return n - 1 }) },
		)
	}
}

func layout(text func() string, inc, dec func()) *vtest.Node {
	return vtest.Group(
		vtest.Text(CountID, text),
		vtest.Button(IncrementID, "+", inc),
		vtest.Button(DecrementID, "-", dec),
	)
}
