package testing

import (
	"fmt"

	"github.com/go-drift/hostbridge/pkg/host"
	"github.com/go-drift/hostbridge/pkg/host/memory"
)

// ClickEvent is the payload Click delivers to click handlers.
type ClickEvent struct {
	// Target is the id of the clicked element.
	Target string
}

// Click dispatches a click to the first element matched by finder. Updates
// scheduled by the handler are applied by the next Pump.
func (t *Tester) Click(finder Finder) error {
	node, err := t.target("Click", finder)
	if err != nil {
		return err
	}
	return t.dispatch("Click", finder, node, "click", ClickEvent{Target: node.ID()})
}

// ClickAndPump clicks and then runs one frame.
func (t *Tester) ClickAndPump(finder Finder) error {
	if err := t.Click(finder); err != nil {
		return err
	}
	return t.Pump()
}

// SendEvent dispatches event ("input", "onFocus", ...) with payload to the
// first element matched by finder.
func (t *Tester) SendEvent(finder Finder, event string, payload host.Event) error {
	node, err := t.target("SendEvent", finder)
	if err != nil {
		return err
	}
	return t.dispatch("SendEvent", finder, node, event, payload)
}

func (t *Tester) target(op string, finder Finder) (*memory.Node, error) {
	if !t.mounted {
		return nil, fmt.Errorf("%s: %w", op, ErrNotMounted)
	}
	result := t.Find(finder)
	if !result.Exists() {
		return nil, fmt.Errorf("%s: finder matched no nodes: %s", op, finder.Description())
	}
	return result.First(), nil
}

func (t *Tester) dispatch(op string, finder Finder, node *memory.Node, event string, payload host.Event) error {
	if !t.runtime.DispatchEvent(node, event, payload) {
		return fmt.Errorf("%s: no %s handler on %s", op, host.EventProp(event), finder.Description())
	}
	return nil
}
