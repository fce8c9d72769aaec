package memory

import (
	"github.com/google/uuid"

	"github.com/go-drift/hostbridge/pkg/errors"
	"github.com/go-drift/hostbridge/pkg/host"
)

type instanceType int

const (
	textInstance instanceType = iota
	tagInstance
	funcInstance
)

// cell is one state hook slot. Queued actions are applied, in order, the
// next time the owning instance renders.
type cell struct {
	value host.Value
	queue []host.Action
}

// instance is a mounted position in the tree: a text node, a tag with its
// own document node, or a render function with its state cells.
type instance struct {
	id     uuid.UUID
	typ    instanceType
	kind   host.Kind
	key    string
	text   string
	props  host.Value
	values []host.Value

	depth    int
	parent   *instance
	rendered []*instance
	dom      *Node

	cells       []*cell
	cursor      int
	initialized bool
	dirty       bool
	mounted     bool

	rt *Runtime
}

func (inst *instance) name() string {
	if inst.typ == textInstance {
		return "#text"
	}
	return kindLabel(inst.kind)
}

// assign copies the description v into inst ahead of a rebuild.
func (inst *instance) assign(v host.Value) {
	el, ok := v.(*Element)
	if !ok {
		inst.text = formatValue(v)
		return
	}
	inst.props = el.Props
	inst.values = el.Children
	inst.key = el.Key()
}

func (inst *instance) markNeedsBuild() {
	if inst.dirty {
		return
	}
	inst.dirty = true
	inst.rt.sched.schedule(inst)
}

func (inst *instance) unmount() {
	inst.mounted = false
	for _, child := range inst.rendered {
		child.unmount()
	}
	inst.rendered = nil
	if inst.dom != nil {
		inst.dom.Parent = nil
	}
}

// useState returns the value of the next cell, applying its queued actions.
func (inst *instance) useState(initial host.Value) (host.Value, host.Dispatch, error) {
	slot := inst.cursor
	inst.cursor++

	if !inst.initialized || (!inst.rt.strictSlots && slot >= len(inst.cells)) {
		c := &cell{value: initial}
		inst.cells = append(inst.cells, c)
		return c.value, inst.dispatcher(c), nil
	}
	if slot >= len(inst.cells) {
		return nil, nil, &errors.BridgeError{
			Op:        "memory.UseState",
			Kind:      errors.KindSlot,
			Component: inst.name(),
			Err: &errors.SlotMismatchError{
				Component: inst.name(),
				Instance:  inst.id.String(),
				Expected:  len(inst.cells),
				Got:       inst.cursor,
			},
		}
	}

	c := inst.cells[slot]
	for _, action := range c.queue {
		c.value = action.Reduce(c.value)
	}
	c.queue = nil
	return c.value, inst.dispatcher(c), nil
}

func (inst *instance) dispatcher(c *cell) host.Dispatch {
	return func(action host.Action) {
		if action == nil {
			return
		}
		if !inst.mounted {
			inst.rt.logger.Debug("dropped update for unmounted instance",
				"component", inst.name(), "instance", inst.id.String())
			return
		}
		c.queue = append(c.queue, action)
		inst.markNeedsBuild()
	}
}

// applyProps splits tag props into document attributes and listeners.
func (inst *instance) applyProps() {
	attrs := map[string]host.Value{}
	listeners := map[string]host.EventHandler{}
	props, _ := asProps(inst.props)
	for k, v := range props {
		if k == "key" {
			continue
		}
		if h, ok := asHandler(v); ok && host.IsEventProp(k) {
			listeners[k] = h
			continue
		}
		attrs[k] = v
	}
	inst.dom.Attrs = attrs
	inst.dom.Listeners = listeners
}

// domNodes returns the document nodes inst contributes to its parent.
func domNodes(inst *instance) []*Node {
	if inst == nil {
		return nil
	}
	switch inst.typ {
	case textInstance, tagInstance:
		return []*Node{inst.dom}
	default:
		if len(inst.rendered) == 0 {
			return nil
		}
		return domNodes(inst.rendered[0])
	}
}

// syncDOM rebuilds the child lists of every tag node under inst.
func syncDOM(inst *instance) {
	if inst == nil {
		return
	}
	for _, child := range inst.rendered {
		syncDOM(child)
	}
	if inst.typ != tagInstance {
		return
	}
	var children []*Node
	for _, child := range inst.rendered {
		children = append(children, domNodes(child)...)
	}
	inst.dom.setChildren(children)
}
