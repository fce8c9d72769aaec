package testing

import (
	"testing"

	"github.com/go-drift/hostbridge/internal/showcase"
	"github.com/go-drift/hostbridge/pkg/core"
	"github.com/go-drift/hostbridge/pkg/host"
)

type broken struct{}

func (broken) Render(*core.Context) core.Element { panic("broken render") }

func TestNewTester_Defaults(t *testing.T) {
	tester := NewTesterWithT(t)

	if got := tester.Container().ContainerID(); got != DefaultContainerID {
		t.Errorf("container = %q, want %q", got, DefaultContainerID)
	}
	if tester.Root() != nil {
		t.Error("expected empty container before Mount")
	}
	if tester.NeedsFrame() {
		t.Error("fresh tester should not need a frame")
	}
}

func TestMount_HTML(t *testing.T) {
	tester := NewTesterWithT(t)

	if err := tester.Mount(core.NewHTML("p").Property("id", "x").Child("hello")); err != nil {
		t.Fatal(err)
	}
	if got := tester.HTML(); got != `<div id="root"><p id="x">hello</p></div>` {
		t.Errorf("HTML = %s", got)
	}
	if tester.Renders() != 0 {
		t.Errorf("Renders = %d, want 0", tester.Renders())
	}
}

func TestMountComponent_Remount(t *testing.T) {
	tester := NewTesterWithT(t)

	if err := MountComponent(tester, showcase.Toggle{Label: "first"}); err != nil {
		t.Fatal(err)
	}
	first := tester.Root()

	if err := MountComponent(tester, showcase.Toggle{Label: "second"}); err != nil {
		t.Fatal(err)
	}
	if tester.Root() != first {
		t.Error("remounting the same component type should reuse the node")
	}
	if got := tester.Find(ByID("toggle")).Text(); got != "second: off" {
		t.Errorf("text = %q, want new props applied", got)
	}
}

func TestMount_RenderError(t *testing.T) {
	tester := NewTesterWithT(t)

	if err := MountComponent(tester, broken{}); err == nil {
		t.Fatal("expected error from panicking component")
	}
	if len(tester.RenderErrors()) != 1 {
		t.Errorf("RenderErrors = %d, want 1", len(tester.RenderErrors()))
	}
	if tester.Root() != nil {
		t.Error("failed mount should leave the container empty")
	}
	if err := tester.Click(ByID("anything")); err == nil {
		t.Error("Click on an unmounted tester should fail")
	}
}

func TestDispatch(t *testing.T) {
	tester := NewTesterWithT(t)
	tester.Mount(core.NewHTML("div"))

	called := false
	tester.Dispatch(func() { called = true })

	if called {
		t.Error("dispatch should not run until Pump")
	}
	if !tester.NeedsFrame() {
		t.Error("queued dispatch should need a frame")
	}

	tester.Pump()

	if !called {
		t.Error("dispatch should have run after Pump")
	}
}

func TestCleanup_Unmounts(t *testing.T) {
	tester := NewTester()
	var handler host.EventHandler = func(host.Event) {}
	tester.Mount(core.NewHTML("button").Property(host.ClickProp, handler))
	tester.Cleanup()

	if tester.Root() != nil {
		t.Error("Cleanup should empty the container")
	}
}
