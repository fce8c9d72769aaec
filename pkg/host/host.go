// Package host defines the contract between hostbridge and the declarative
// rendering runtime that owns reconciliation, scheduling and hook storage.
//
// Nothing in this package renders anything. A Runtime implementation (a
// browser binding, or the in-process runtime in package memory) supplies the
// three primitives the component layer needs:
//
//   - CreateElement builds one host-native node from a kind, props and children.
//   - UseState returns the current value of the calling instance's next state
//     cell together with a Dispatch that schedules an update to it.
//   - Mount attaches a node tree to a container.
//
// Values crossing this boundary are untyped. Typed views are rebuilt on the
// component side through package codec.
package host

import "strings"

// Value is an opaque generic value the host can store and pass around
// without knowing its Go type: nil, bool, numbers, strings, []any,
// map[string]any, event handlers, or host nodes.
type Value = any

// Node is a host-native node returned by CreateElement.
type Node = any

// Props is the key-value mapping handed to a kind when the host renders it.
type Props map[string]Value

// Clone returns a shallow copy of p. A nil map clones to an empty one.
func (p Props) Clone() Props {
	out := make(Props, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Kind identifies what the host should render: a primitive Tag or a *Func.
type Kind interface {
	KindName() string
}

// Tag is a primitive markup tag such as "button" or "div".
type Tag string

// KindName returns the tag itself.
func (t Tag) KindName() string { return string(t) }

// RenderFunc is invoked by the host during its render pass with the props the
// element was created with. Hooks called while it runs are bound to the
// instance being rendered.
type RenderFunc func(rt Runtime, props Value) Node

// Func is a render-function kind. Hosts compare Func kinds by pointer, so a
// component type must hand the same *Func to every CreateElement call for
// its instances to keep their state across renders.
type Func struct {
	Name   string
	Render RenderFunc
}

// KindName returns the function's display name.
func (f *Func) KindName() string {
	if f == nil || f.Name == "" {
		return "anonymous"
	}
	return f.Name
}

// Action is one queued update to a state cell. The host calls Reduce when it
// applies the update, passing the latest value of the cell at that moment.
type Action interface {
	Reduce(prev Value) Value
}

// Replace sets the cell to a fixed value regardless of its previous value.
type Replace struct {
	Value Value
}

// Reduce returns r.Value.
func (r Replace) Reduce(Value) Value { return r.Value }

// Apply computes the next value from the latest applied one.
type Apply func(prev Value) Value

// Reduce calls a with prev.
func (a Apply) Reduce(prev Value) Value { return a(prev) }

// Dispatch enqueues an Action against one state cell and asks the host to
// schedule a re-render of the owning instance.
type Dispatch func(Action)

// Event is the payload the host passes to event handlers.
type Event = any

// EventHandler receives host events. Handlers stored in Props outlive the
// render call that created them; the host keeps them until the node that
// carries them is replaced.
type EventHandler func(Event)

// Container is an externally owned mount point.
type Container interface {
	ContainerID() string
}

// Runtime is the set of foreign primitives the component layer depends on.
type Runtime interface {
	// CreateElement constructs one host-native node. props is a Props for
	// tags and the serialized component for *Func kinds. children may hold
	// strings, numbers, booleans, nil, or nodes returned by CreateElement.
	CreateElement(kind Kind, props Value, children []Value) (Node, error)

	// UseState returns the current value of the calling instance's next
	// state cell and its dispatch. On the first render of an instance the
	// cell is registered with initial; afterwards initial is ignored. It
	// must be called unconditionally and in the same order on every render.
	UseState(initial Value) (Value, Dispatch, error)

	// Mount attaches node to container, replacing anything mounted there.
	Mount(node Node, container Container) error
}

// EventProp returns the conventional property key for an event name:
// "click" becomes "onClick". Names already in property form pass through.
func EventProp(event string) string {
	if IsEventProp(event) {
		return event
	}
	if event == "" {
		return "on"
	}
	return "on" + strings.ToUpper(event[:1]) + event[1:]
}

// IsEventProp reports whether key looks like an event property ("onClick").
func IsEventProp(key string) bool {
	return len(key) > 2 && strings.HasPrefix(key, "on") && key[2] >= 'A' && key[2] <= 'Z'
}

// ClickProp is the property key click handlers are stored under.
const ClickProp = "onClick"
