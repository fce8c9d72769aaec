package core

import (
	"fmt"

	"github.com/go-drift/hostbridge/pkg/codec"
	"github.com/go-drift/hostbridge/pkg/errors"
	"github.com/go-drift/hostbridge/pkg/host"
)

// Context is the per-render capability passed to Component.Render. It is
// the only way to obtain State and is only valid until Render returns.
type Context struct {
	rt        host.Runtime
	component string
	format    codec.Format
	cursor    int
	closed    bool
}

func newContext(rt host.Runtime, component string, format codec.Format) *Context {
	return &Context{rt: rt, component: component, format: format}
}

func (c *Context) close() { c.closed = true }

// Component returns the name of the component being rendered.
func (c *Context) Component() string { return c.component }

// Slots returns how many state slots this render has claimed so far.
func (c *Context) Slots() int { return c.cursor }

// UseState returns the State bound to the next slot of the current render.
// On the first render of an instance the slot starts at initial; on later
// renders it holds the value left by the most recently applied update.
//
// Calls must happen unconditionally and in the same order on every render.
// Marshalling and host failures panic with a *errors.BridgeError.
func UseState[T any](ctx *Context, initial T) *State[T] {
	if ctx == nil || ctx.closed {
		panic(errors.Fatal("core.UseState", errors.KindSlot, "", errors.ErrNoInstance))
	}
	slot := ctx.cursor
	ctx.cursor++

	c := codec.For[T](ctx.format)
	generic, err := c.Encode(initial)
	if err != nil {
		panic(fatal("core.UseState", errors.KindMarshal, ctx.component, err))
	}
	current, dispatch, err := ctx.rt.UseState(generic)
	if err != nil {
		panic(fatal("core.UseState", errors.KindHost, ctx.component, err))
	}
	value, err := c.Decode(current)
	if err != nil {
		panic(fatal("core.UseState", errors.KindMarshal, ctx.component, err))
	}

	return &State[T]{
		value:     value,
		dispatch:  dispatch,
		codec:     c,
		slot:      slot,
		component: ctx.component,
	}
}

// State is an immutable snapshot of one host state cell plus the capability
// to schedule updates to it. A *State may be captured by event handlers that
// outlive the render that produced it.
type State[T any] struct {
	value     T
	dispatch  host.Dispatch
	codec     codec.Codec[T]
	slot      int
	component string
}

// Value returns the snapshot for the render that created s. It never
// changes; updates become visible through the State of the next render.
func (s *State[T]) Value() T { return s.value }

// Slot returns the ordinal position of s within its render.
func (s *State[T]) Slot() int { return s.slot }

// Set schedules the cell to become value. Several Sets before the next
// render are applied in order, so the last one wins.
func (s *State[T]) Set(value T) {
	generic, err := s.codec.Encode(value)
	if err != nil {
		panic(fatal("core.State.Set", errors.KindMarshal, s.component, err))
	}
	s.dispatch(host.Replace{Value: generic})
}

// Update schedules fn to run when the host applies the update. fn receives
// the latest value at that point, including earlier queued updates, not the
// snapshot s holds.
func (s *State[T]) Update(fn func(T) T) {
	s.dispatch(host.Apply(func(prev host.Value) host.Value {
		current, err := s.codec.Decode(prev)
		if err != nil {
			panic(fatal("core.State.Update", errors.KindMarshal, s.component, err))
		}
		next, err := s.codec.Encode(fn(current))
		if err != nil {
			panic(fatal("core.State.Update", errors.KindMarshal, s.component, err))
		}
		return next
	}))
}

func (s *State[T]) String() string {
	return fmt.Sprint(s.value)
}
