// Package showcase holds small demo components used by the CLI preview and
// by tests. Each demo exercises a different part of the component layer.
package showcase

import (
	"sort"

	"github.com/go-drift/hostbridge/pkg/core"
)

// Demo describes one previewable component tree.
type Demo struct {
	Name        string
	Description string
	// Target is the id of the element the preview clicks.
	Target string
	// Root builds a fresh root for every mount.
	Root func() core.IntoElement
}

var demos = map[string]Demo{
	"counter": {
		Name:        "counter",
		Description: "a button that counts its clicks, starting at 3",
		Target:      "increment",
		Root:        func() core.IntoElement { return core.Adapt(Counter{Initial: 3}) },
	},
	"toggle": {
		Name:        "toggle",
		Description: "an on/off switch with a pressed attribute",
		Target:      "toggle",
		Root:        func() core.IntoElement { return core.Adapt(Toggle{Label: "Wi-Fi"}) },
	},
	"todo": {
		Name:        "todo",
		Description: "a keyed list of items that keep their own state",
		Target:      "add",
		Root: func() core.IntoElement {
			return core.Adapt(TodoList{Title: "Chores", Items: []string{"dishes", "laundry"}})
		},
	},
}

// Lookup returns the demo registered under name.
func Lookup(name string) (Demo, bool) {
	d, ok := demos[name]
	return d, ok
}

// Names returns the registered demo names in sorted order.
func Names() []string {
	names := make([]string, 0, len(demos))
	for name := range demos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
