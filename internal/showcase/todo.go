package showcase

import (
	"strconv"

	"github.com/go-drift/hostbridge/pkg/core"
	"github.com/go-drift/hostbridge/pkg/host"
)

// TodoList renders Items plus any added later. Each row is a TodoItem keyed
// by a stable id so rows keep their own state when earlier rows go away.
type TodoList struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

type todoState struct {
	NextID int         `json:"next_id"`
	Rows   []todoEntry `json:"rows"`
}

type todoEntry struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

func (l TodoList) Render(ctx *core.Context) core.Element {
	initial := todoState{}
	for _, text := range l.Items {
		initial.Rows = append(initial.Rows, todoEntry{ID: initial.NextID, Text: text})
		initial.NextID++
	}
	state := core.UseState(ctx, initial)

	add := func(host.Event) {
		state.Update(func(s todoState) todoState {
			s.Rows = append(s.Rows, todoEntry{ID: s.NextID, Text: "item " + strconv.Itoa(s.NextID)})
			s.NextID++
			return s
		})
	}
	shift := func(host.Event) {
		state.Update(func(s todoState) todoState {
			if len(s.Rows) > 0 {
				s.Rows = s.Rows[1:]
			}
			return s
		})
	}

	rows := core.NewHTML("ul").Property("id", "items")
	for _, row := range state.Value().Rows {
		rows = rows.Child(core.Adapt(TodoItem{Key: strconv.Itoa(row.ID), Text: row.Text}))
	}

	return core.NewHTML("section").
		Property("id", "todo").
		Child(core.NewHTML("h1").Child(l.Title)).
		Child(rows).
		Child(core.NewHTML("button").Property("id", "add").OnClick(add).Child("add")).
		Child(core.NewHTML("button").
			Property("id", "shift").
			Property("disabled", len(state.Value().Rows) == 0).
			OnClick(shift).
			Child("remove first")).
		Element()
}

// TodoItem is one row with a done flag it owns. Key is serialized as the
// "key" prop, which the host uses to match rows across renders.
type TodoItem struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

func (i TodoItem) Render(ctx *core.Context) core.Element {
	done := core.UseState(ctx, false)

	mark := " "
	if done.Value() {
		mark = "x"
	}
	return core.NewHTML("li").
		Property("id", "item-"+i.Key).
		Property("data-done", done.Value()).
		Child(core.NewHTML("button").
			Property("id", "check-"+i.Key).
			OnClick(func(host.Event) { done.Update(func(v bool) bool { return !v }) }).
			Child("[" + mark + "]")).
		Child(" " + i.Text).
		Element()
}
