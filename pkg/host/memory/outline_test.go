package memory_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/hostbridge/pkg/host"
	"github.com/go-drift/hostbridge/pkg/host/memory"
)

func TestOutline(t *testing.T) {
	rt, root := newRuntime(t)
	onClick := host.EventHandler(func(host.Event) {})
	button := create(t, rt, host.Tag("button"), host.Props{
		"id":       "go",
		"tabIndex": 2,
		"disabled": false,
		"onClick":  onClick,
		"key":      "b",
	}, "run")
	list := create(t, rt, host.Tag("ul"), nil, create(t, rt, host.Tag("li"), nil, "one"))
	if err := rt.Mount(create(t, rt, host.Tag("div"), nil, button, list), root); err != nil {
		t.Fatal(err)
	}

	want := []*memory.Outline{{
		Tag: "div",
		Children: []*memory.Outline{
			{
				Tag:       "button",
				Attrs:     map[string]string{"id": "go", "tabIndex": "2", "disabled": "false"},
				Listeners: []string{"onClick"},
				Children:  []*memory.Outline{{Text: "run"}},
			},
			{
				Tag: "ul",
				Children: []*memory.Outline{{
					Tag:      "li",
					Children: []*memory.Outline{{Text: "one"}},
				}},
			},
		},
	}}
	if diff := cmp.Diff(want, root.Outline()); diff != "" {
		t.Errorf("outline mismatch (-want +got):\n%s", diff)
	}
}

func TestOutlineEmptyContainer(t *testing.T) {
	_, root := newRuntime(t)
	if got := root.Outline(); got != nil {
		t.Errorf("Outline() = %v, want nil", got)
	}
}
