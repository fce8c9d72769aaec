package core

import (
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/go-drift/hostbridge/pkg/errors"
	"github.com/go-drift/hostbridge/pkg/host"
)

// Element describes one node of the tree handed to the host runtime.
// An Element may be created at most once; copies share that budget.
type Element struct {
	kind     host.Kind
	props    host.Value
	children []any
	consumed *atomic.Bool
}

// IntoElement is implemented by everything that can stand in for an Element.
type IntoElement interface {
	IntoElement() Element
}

// NewElement returns an Element with the given kind, props and children.
// For tags props should be a host.Props; for *host.Func kinds it is the
// payload the function receives.
func NewElement(kind host.Kind, props host.Value, children ...any) Element {
	return Element{
		kind:     kind,
		props:    props,
		children: slices.Clone(children),
		consumed: new(atomic.Bool),
	}
}

// IntoElement returns e.
func (e Element) IntoElement() Element { return e }

// Kind returns the element's kind.
func (e Element) Kind() host.Kind { return e.kind }

// Props returns the element's props payload.
func (e Element) Props() host.Value { return e.props }

// Children returns a copy of the element's children.
func (e Element) Children() []any { return slices.Clone(e.children) }

// Consumed reports whether the element has already been created.
func (e Element) Consumed() bool {
	return e.consumed != nil && e.consumed.Load()
}

// Child returns a copy of e with node appended to its children. node may be
// a string, a number, a bool, nil, an IntoElement or a host node.
func (e Element) Child(node any) Element {
	e.children = append(slices.Clip(e.children), node)
	e.consumed = new(atomic.Bool)
	return e
}

// Create consumes e and asks the host to build its native node. Element
// children are created first, depth-first, in order.
func (e Element) Create(rt host.Runtime) (host.Node, error) {
	if e.kind == nil {
		return nil, &errors.BridgeError{
			Op:   "core.Element.Create",
			Kind: errors.KindHost,
			Err:  errors.New("element has no kind"),
		}
	}
	if e.consumed == nil || !e.consumed.CompareAndSwap(false, true) {
		return nil, &errors.BridgeError{
			Op:        "core.Element.Create",
			Kind:      errors.KindHost,
			Component: e.kind.KindName(),
			Err:       errors.ErrConsumed,
		}
	}

	children := make([]host.Value, 0, len(e.children))
	for i, child := range e.children {
		value, err := createChild(rt, child)
		if err != nil {
			return nil, fmt.Errorf("%s child %d: %w", e.kind.KindName(), i, err)
		}
		children = append(children, value)
	}

	node, err := rt.CreateElement(e.kind, e.props, children)
	if err != nil {
		return nil, &errors.BridgeError{
			Op:        "core.Element.Create",
			Kind:      errors.KindHost,
			Component: e.kind.KindName(),
			Err:       err,
		}
	}
	return node, nil
}

// MustCreate is like Create but panics with a *errors.BridgeError on failure.
func (e Element) MustCreate(rt host.Runtime) host.Node {
	node, err := e.Create(rt)
	if err != nil {
		panic(fatal("core.Element.MustCreate", errors.KindHost, kindName(e.kind), err))
	}
	return node
}

func createChild(rt host.Runtime, child any) (host.Value, error) {
	switch c := child.(type) {
	case Element:
		return c.Create(rt)
	case IntoElement:
		return c.IntoElement().Create(rt)
	default:
		return child, nil
	}
}

func kindName(k host.Kind) string {
	if k == nil {
		return ""
	}
	return k.KindName()
}

// fatal wraps err for a panic unless it already carries a BridgeError.
func fatal(op string, kind errors.ErrorKind, component string, err error) *errors.BridgeError {
	var be *errors.BridgeError
	if errors.As(err, &be) {
		return be
	}
	return errors.Fatal(op, kind, component, err)
}
