package demo

import (
	"fmt"
	"strings"

	"github.com/vango-dev/storebridge/internal/errors"
	"github.com/vango-dev/storebridge/pkg/atom"
	"github.com/vango-dev/storebridge/pkg/bridge"
	"github.com/vango-dev/storebridge/pkg/vtest"
)

// Action is one click in a script.
type Action string

const (
	Increment Action = "inc"
	Decrement Action = "dec"
)

// DefaultScript is the click sequence the counters are checked with.
var DefaultScript = []Action{Increment, Increment, Decrement}

// ParseScript parses a comma separated click script such as "inc,inc,dec".
func ParseScript(s string) ([]Action, error) {
	var script []Action
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		switch a := Action(strings.ToLower(part)); a {
		case Increment, Decrement:
			script = append(script, a)
		default:
			return nil, errors.New("R002").WithDetail(fmt.Sprintf("%q is not an action.", part))
		}
	}
	return script, nil
}

// Step is the screen and container state after one action.
type Step struct {
	Action    Action
	Text      string
	Container int
}

// Result is the outcome of a scripted run.
type Result struct {
	Variant Variant
	Initial string
	Steps   []Step
}

// Final returns the text after the last step.
func (r Result) Final() string {
	if len(r.Steps) == 0 {
		return r.Initial
	}
	return r.Steps[len(r.Steps)-1].Text
}

// Run mounts the counter for v over a fresh atom holding zero, clicks through
// script and records the rendered count after each click. The component is
// disposed before Run returns.
func Run(v Variant, script []Action, opts ...bridge.Option) (res Result, err error) {
	var (
		component vtest.Component
		read      func() int
	)
	switch v {
	case VariantSignal:
		count := atom.New(0)
		component = SignalCounter(count, opts...)
		read = count.Get
	case VariantStore, VariantMutable:
		counter := atom.New(map[string]int{"value": 0})
		if v == VariantStore {
			component = StoreCounter(counter, opts...)
		} else {
			component = MutableCounter(counter, opts...)
		}
		read = func() int { return counter.Get()["value"] }
	default:
		return Result{}, errors.New("R001").WithDetail(fmt.Sprintf("%q is not a binding variant.", v))
	}

	// Must* binds panic on failure; surface that as an error.
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()

	screen := vtest.Render(component)
	defer screen.Cleanup()

	count := screen.FindByTestID(CountID)
	res = Result{Variant: v, Initial: count.TextContent()}
	for _, a := range script {
		id := IncrementID
		if a == Decrement {
			id = DecrementID
		}
		screen.FindByTestID(id).Click()
		res.Steps = append(res.Steps, Step{
			Action:    a,
			Text:      count.TextContent(),
			Container: read(),
		})
	}
	return res, nil
}
