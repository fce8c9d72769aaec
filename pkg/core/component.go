package core

import (
	"reflect"
	"sync"

	"github.com/go-drift/hostbridge/pkg/codec"
	"github.com/go-drift/hostbridge/pkg/errors"
	"github.com/go-drift/hostbridge/pkg/host"
)

// Component is reusable UI logic parameterized by its own fields. The value
// must survive a round trip through its codec: only exported, serializable
// fields are seen by Render.
type Component interface {
	Render(ctx *Context) Element
}

// componentKind is the host kind and codec registered for one component type.
type componentKind[C Component] struct {
	fn     *host.Func
	format codec.Format
	codec  codec.Codec[C]
}

// kinds maps reflect.Type to *componentKind[C]. One entry per type keeps the
// *host.Func stable so the host preserves instances across renders.
var kinds sync.Map

func kindFor[C Component]() *componentKind[C] {
	t := reflect.TypeOf((*C)(nil)).Elem()
	if existing, ok := kinds.Load(t); ok {
		return existing.(*componentKind[C])
	}

	name := t.String()
	format := codec.DefaultFormat
	entry := &componentKind[C]{format: format, codec: codec.For[C](format)}
	entry.fn = &host.Func{
		Name: name,
		Render: func(rt host.Runtime, props host.Value) host.Node {
			return entry.render(rt, props)
		},
	}
	actual, _ := kinds.LoadOrStore(t, entry)
	return actual.(*componentKind[C])
}

// render runs inside the host's render pass. Failures are defects: the props
// payload was produced by this kind's codec, so decode errors and host
// errors panic and are left to the host's error boundary.
func (k *componentKind[C]) render(rt host.Runtime, props host.Value) host.Node {
	component, err := k.codec.Decode(props)
	if err != nil {
		panic(fatal("core.renderComponent", errors.KindMarshal, k.fn.Name, err))
	}

	ctx := newContext(rt, k.fn.Name, k.format)
	element := func() Element {
		defer ctx.close()
		return component.Render(ctx)
	}()

	node, err := element.Create(rt)
	if err != nil {
		panic(fatal("core.renderComponent", errors.KindHost, k.fn.Name, err))
	}
	return node
}

// ComponentElement serializes c and returns an Element whose kind is the
// render function registered for C.
func ComponentElement[C Component](c C) (Element, error) {
	kind := kindFor[C]()
	props, err := kind.codec.Encode(c)
	if err != nil {
		return Element{}, &errors.BridgeError{
			Op:        "core.ComponentElement",
			Kind:      errors.KindMarshal,
			Component: kind.fn.Name,
			Err:       err,
		}
	}
	return NewElement(kind.fn, props), nil
}

// ToElement is like ComponentElement but panics on serialization failure.
func ToElement[C Component](c C) Element {
	element, err := ComponentElement(c)
	if err != nil {
		panic(fatal("core.ToElement", errors.KindMarshal, codec.TypeName[C](), err))
	}
	return element
}

// Adapt wraps a component value so it can be passed wherever an
// IntoElement is accepted, including as a child of another element.
func Adapt[C Component](c C) IntoElement {
	return adapted[C]{component: c}
}

type adapted[C Component] struct {
	component C
}

func (a adapted[C]) IntoElement() Element {
	return ToElement(a.component)
}

// KindOf returns the host kind registered for C.
func KindOf[C Component]() *host.Func {
	return kindFor[C]().fn
}
