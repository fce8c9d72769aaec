package testing

import (
	"errors"
	"testing"

	"github.com/go-drift/hostbridge/pkg/core"
	bridgeerrors "github.com/go-drift/hostbridge/pkg/errors"
	"github.com/go-drift/hostbridge/pkg/host/memory"
	"github.com/go-drift/hostbridge/pkg/logging"
)

// DefaultContainerID is the id of the container the tester mounts into.
const DefaultContainerID = "root"

// ErrNotMounted is returned by operations that need a mounted tree.
var ErrNotMounted = errors.New("nothing mounted: call Mount first")

// Tester mounts component trees into an isolated in-memory document and
// drives their updates frame by frame.
//
// NewTesterWithT installs a process-wide error handler for the duration of
// the test, so testers created that way must not be used from parallel tests.
type Tester struct {
	runtime    *memory.Runtime
	container  *memory.Container
	mounted    bool
	dispatches []func()
	recorder   *errorRecorder
	prev       bridgeerrors.ErrorHandler
}

// NewTester creates a tester with its own document and a silent logger.
// Call Cleanup() when done, or use NewTesterWithT() instead.
func NewTester(opts ...memory.Option) *Tester {
	opts = append([]memory.Option{memory.WithLogger(logging.Discard())}, opts...)
	rt := memory.NewRuntime(memory.NewDocument(), opts...)
	return &Tester{
		runtime:   rt,
		container: rt.Document().CreateContainer(DefaultContainerID),
	}
}

// NewTesterWithT creates a tester that records render errors and cleans up
// via t.Cleanup(). This is the recommended constructor for tests.
func NewTesterWithT(t testing.TB, opts ...memory.Option) *Tester {
	tester := NewTester(opts...)
	tester.recorder = &errorRecorder{}
	tester.prev = bridgeerrors.DefaultHandler
	bridgeerrors.SetHandler(tester.recorder)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts the tree and restores the error handler replaced by
// NewTesterWithT.
func (t *Tester) Cleanup() {
	if t.mounted {
		_ = t.runtime.Unmount(t.container)
		t.mounted = false
	}
	if t.recorder != nil {
		bridgeerrors.SetHandler(t.prev)
		t.recorder = nil
	}
}

// Runtime returns the runtime the tester mounts into.
func (t *Tester) Runtime() *memory.Runtime { return t.runtime }

// Document returns the tester's document.
func (t *Tester) Document() *memory.Document { return t.runtime.Document() }

// Container returns the container the tester mounts into.
func (t *Tester) Container() *memory.Container { return t.container }

// Mount renders root into the tester's container, replacing what was there,
// and runs one frame.
func (t *Tester) Mount(root core.IntoElement) error {
	if err := core.Render(t.runtime, root, t.container); err != nil {
		t.mounted = false
		return err
	}
	t.mounted = true
	return t.Pump()
}

// MountComponent renders c through its component adapter and runs one frame.
func MountComponent[C core.Component](t *Tester, c C) error {
	return t.Mount(core.Adapt(c))
}

// Pump runs a single frame: queued dispatches first, then every pending
// state update.
func (t *Tester) Pump() error {
	dispatches := t.dispatches
	t.dispatches = nil
	for _, fn := range dispatches {
		fn()
	}
	return t.runtime.Flush()
}

// Dispatch queues a callback for the next frame.
func (t *Tester) Dispatch(fn func()) {
	t.dispatches = append(t.dispatches, fn)
}

// NeedsFrame reports whether Pump has work to do.
func (t *Tester) NeedsFrame() bool {
	return t.runtime.Pending() || len(t.dispatches) > 0
}

// Renders returns how many component renders have completed.
func (t *Tester) Renders() int { return t.runtime.Renders() }

// HTML returns the markup of the tester's container.
func (t *Tester) HTML() string { return t.container.Node.HTML() }

// Root returns the first node mounted in the container, or nil.
func (t *Tester) Root() *memory.Node {
	if len(t.container.Node.Children) == 0 {
		return nil
	}
	return t.container.Node.Children[0]
}

// Find evaluates finder against the mounted tree.
func (t *Tester) Find(finder Finder) FinderResult {
	return FinderResult{nodes: finder.Evaluate(t.container.Node), finder: finder}
}

// RenderErrors returns the render failures reported since the tester was
// created. It is only populated for testers from NewTesterWithT.
func (t *Tester) RenderErrors() []*bridgeerrors.RenderError {
	if t.recorder == nil {
		return nil
	}
	return t.recorder.render
}

type errorRecorder struct {
	errors []*bridgeerrors.BridgeError
	panics []*bridgeerrors.PanicError
	render []*bridgeerrors.RenderError
}

func (r *errorRecorder) HandleError(err *bridgeerrors.BridgeError) {
	r.errors = append(r.errors, err)
}

func (r *errorRecorder) HandlePanic(err *bridgeerrors.PanicError) {
	r.panics = append(r.panics, err)
}

func (r *errorRecorder) HandleRenderError(err *bridgeerrors.RenderError) {
	r.render = append(r.render, err)
}
