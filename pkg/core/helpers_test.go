package core_test

import (
	"testing"

	"github.com/go-drift/hostbridge/pkg/core"
	"github.com/go-drift/hostbridge/pkg/errors"
	"github.com/go-drift/hostbridge/pkg/host/memory"
	"github.com/go-drift/hostbridge/pkg/logging"
)

// renderErrors collects render errors reported to the global handler.
type renderErrors struct {
	errs []*errors.RenderError
}

func (h *renderErrors) HandleError(*errors.BridgeError) {}
func (h *renderErrors) HandlePanic(*errors.PanicError)  {}
func (h *renderErrors) HandleRenderError(err *errors.RenderError) {
	h.errs = append(h.errs, err)
}

func captureErrors(t *testing.T) *renderErrors {
	t.Helper()
	h := &renderErrors{}
	old := errors.DefaultHandler
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(old) })
	return h
}

func newRuntime(t *testing.T, opts ...memory.Option) (*memory.Runtime, *memory.Container) {
	t.Helper()
	opts = append([]memory.Option{memory.WithLogger(logging.Discard())}, opts...)
	rt := memory.NewRuntime(memory.NewDocument(), opts...)
	return rt, rt.Document().CreateContainer("root")
}

func mount(t *testing.T, root core.IntoElement) (*memory.Runtime, *memory.Container) {
	t.Helper()
	rt, container := newRuntime(t)
	if err := core.Render(rt, root, container); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return rt, container
}

func click(t *testing.T, rt *memory.Runtime, id string) {
	t.Helper()
	node, ok := rt.Document().GetElementByID(id)
	if !ok {
		t.Fatalf("no element with id %q in %s", id, rt.Document().HTML())
	}
	if !rt.DispatchEvent(node, "click", nil) {
		t.Fatalf("element %q has no click handler", id)
	}
}

func flush(t *testing.T, rt *memory.Runtime) {
	t.Helper()
	if err := rt.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

func textOf(t *testing.T, rt *memory.Runtime, id string) string {
	t.Helper()
	node, ok := rt.Document().GetElementByID(id)
	if !ok {
		t.Fatalf("no element with id %q in %s", id, rt.Document().HTML())
	}
	return node.TextContent()
}
