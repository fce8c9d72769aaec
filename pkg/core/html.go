package core

import (
	"slices"

	"github.com/go-drift/hostbridge/pkg/errors"
	"github.com/go-drift/hostbridge/pkg/host"
)

// HTML builds an Element for a primitive markup tag. The zero value is not
// usable; start from NewHTML. Every method returns a new builder and leaves
// the receiver untouched, so partially built values can be shared.
type HTML struct {
	tag      host.Tag
	props    host.Props
	children []any
}

// NewHTML returns a builder for tag with no properties and no children.
func NewHTML(tag string) HTML {
	return HTML{tag: host.Tag(tag), props: host.Props{}}
}

// Text returns a bare text child. It exists for readability at call sites:
// Child(core.Text("hi")) and Child("hi") are equivalent.
func Text(s string) string { return s }

// Tag returns the builder's tag.
func (h HTML) Tag() host.Tag { return h.tag }

// Property sets one attribute. An empty key is a programming error and
// panics with a *errors.BridgeError.
func (h HTML) Property(key string, value any) HTML {
	if key == "" {
		panic(errors.Fatal("core.HTML.Property", errors.KindHost, string(h.tag), errors.New("empty property key")))
	}
	props := h.props.Clone()
	props[key] = value
	h.props = props
	return h
}

// On attaches handler to the named event ("click", "input", ...). The
// handler is stored under the event's property key and stays reachable for
// as long as the host keeps the created node. A nil handler is ignored.
func (h HTML) On(event string, handler func(host.Event)) HTML {
	if handler == nil {
		return h
	}
	return h.Property(host.EventProp(event), host.EventHandler(handler))
}

// OnClick attaches a click handler. The host's event payload is passed to
// handler unmodified.
func (h HTML) OnClick(handler func(host.Event)) HTML {
	return h.On("click", handler)
}

// Child appends one child: text, a number, an IntoElement or a host node.
func (h HTML) Child(node any) HTML {
	h.children = append(slices.Clip(h.children), node)
	return h
}

// Children appends nodes in order.
func (h HTML) Children(nodes ...any) HTML {
	h.children = append(slices.Clip(h.children), nodes...)
	return h
}

// Element converts the builder to an Element.
func (h HTML) Element() Element {
	return NewElement(h.tag, h.props.Clone(), h.children...)
}

// IntoElement implements IntoElement.
func (h HTML) IntoElement() Element { return h.Element() }

// Create builds the element and materializes it in one step.
func (h HTML) Create(rt host.Runtime) (host.Node, error) {
	return h.Element().Create(rt)
}
