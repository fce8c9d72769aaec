package showcase

import (
	"github.com/go-drift/hostbridge/pkg/core"
	"github.com/go-drift/hostbridge/pkg/host"
)

// Counter shows a count that starts at Initial.
type Counter struct {
	Initial int `json:"initial"`
}

func (c Counter) Render(ctx *core.Context) core.Element {
	count := core.UseState(ctx, c.Initial)

	return core.NewHTML("div").
		Property("id", "counter").
		Property("className", "counter").
		Child(core.NewHTML("span").Property("id", "count").Child(count.Value())).
		Child(core.NewHTML("button").
			Property("id", "increment").
			OnClick(func(host.Event) { count.Update(func(n int) int { return n + 1 }) }).
			Child("+1")).
		Child(core.NewHTML("button").
			Property("id", "reset").
			Property("disabled", count.Value() == c.Initial).
			OnClick(func(host.Event) { count.Set(c.Initial) }).
			Child("reset")).
		Element()
}

// Toggle is a labelled on/off switch.
type Toggle struct {
	Label string `json:"label"`
	On    bool   `json:"on,omitempty"`
}

func (t Toggle) Render(ctx *core.Context) core.Element {
	on := core.UseState(ctx, t.On)

	status := "off"
	if on.Value() {
		status = "on"
	}
	return core.NewHTML("button").
		Property("id", "toggle").
		Property("aria-pressed", on.Value()).
		OnClick(func(host.Event) { on.Update(func(v bool) bool { return !v }) }).
		Child(t.Label + ": " + status).
		Element()
}
