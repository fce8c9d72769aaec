// Package core provides the typed component layer on top of a host runtime.
//
// This package defines Element, the HTML builder, the Component contract and
// the Context/State pair that wraps the host's state hook. It follows a
// declarative UI model where components describe what the UI should look
// like and the host runtime reconciles the result.
//
// # Elements
//
// Element is a one-shot node descriptor: a kind, properties and children.
// Builders are functional, every setter returns a new value:
//
//	button := core.NewHTML("button").
//	    Property("id", "save").
//	    OnClick(func(ev host.Event) { ... }).
//	    Child("Save")
//
// Create hands the element to the host and consumes it.
//
// # Components
//
// Any serializable value with a Render(*Context) Element method is a
// Component. ToElement serializes the value as props and pairs it with a
// render function the host calls later:
//
//	type Counter struct {
//	    Initial int `json:"initial"`
//	}
//
//	func (c Counter) Render(ctx *core.Context) core.Element {
//	    count := core.UseState(ctx, c.Initial)
//	    return core.NewHTML("button").
//	        OnClick(func(host.Event) { count.Set(count.Value() + 1) }).
//	        Child(count.Value()).
//	        Element()
//	}
//
// Only exported fields travel through props.
//
// # State
//
// UseState must be called unconditionally and in the same order on every
// render; the host associates calls with cells by position. State is an
// immutable snapshot of the cell for the current render. Set and Update
// schedule a re-render; Update receives the latest queued value, so chained
// updates compose:
//
//	count.Update(func(n int) int { return n + 1 })
//	count.Update(func(n int) int { return n * 2 }) // (n+1)*2
package core
