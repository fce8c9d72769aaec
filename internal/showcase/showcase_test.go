package showcase_test

import (
	"slices"
	"testing"

	"github.com/go-drift/hostbridge/internal/showcase"
	bridgetest "github.com/go-drift/hostbridge/pkg/testing"
)

func TestNames(t *testing.T) {
	want := []string{"counter", "todo", "toggle"}
	if got := showcase.Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if _, ok := showcase.Lookup("missing"); ok {
		t.Error("Lookup(missing) should fail")
	}
}

func TestDemosMountAndClick(t *testing.T) {
	for _, name := range showcase.Names() {
		t.Run(name, func(t *testing.T) {
			demo, ok := showcase.Lookup(name)
			if !ok || demo.Name != name {
				t.Fatalf("Lookup(%q) = %+v, %v", name, demo, ok)
			}

			tester := bridgetest.NewTesterWithT(t)
			if err := tester.Mount(demo.Root()); err != nil {
				t.Fatalf("Mount: %v", err)
			}
			before := tester.HTML()

			if err := tester.ClickAndPump(bridgetest.ByID(demo.Target)); err != nil {
				t.Fatalf("click #%s: %v", demo.Target, err)
			}
			if after := tester.HTML(); after == before {
				t.Errorf("clicking #%s did not change the document:\n%s", demo.Target, after)
			}
			if errs := tester.RenderErrors(); len(errs) != 0 {
				t.Errorf("render errors: %v", errs)
			}
		})
	}
}

func TestTodoItemsKeepStateAcrossAdd(t *testing.T) {
	tester := bridgetest.NewTesterWithT(t)
	if err := bridgetest.MountComponent(tester, showcase.TodoList{Title: "Chores", Items: []string{"dishes"}}); err != nil {
		t.Fatal(err)
	}

	if err := tester.ClickAndPump(bridgetest.ByID("check-0")); err != nil {
		t.Fatal(err)
	}
	if err := tester.ClickAndPump(bridgetest.ByID("add")); err != nil {
		t.Fatal(err)
	}

	if got := tester.Find(bridgetest.ByID("check-0")).Text(); got != "[x]" {
		t.Errorf("first item = %q, want [x]", got)
	}
	if got := tester.Find(bridgetest.ByID("check-1")).Text(); got != "[ ]" {
		t.Errorf("new item = %q, want [ ]", got)
	}
	if got := tester.Find(bridgetest.ByTag("li")).Count(); got != 2 {
		t.Errorf("got %d items, want 2", got)
	}
}
