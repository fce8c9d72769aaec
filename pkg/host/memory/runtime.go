// Package memory is an in-process host runtime for hostbridge.
//
// It implements host.Runtime against an in-memory Document: CreateElement
// returns unrendered *Element descriptions, Mount reconciles them into an
// instance tree, render functions get call-order indexed state cells, and
// Flush applies queued updates and re-renders dirty instances. It backs the
// component tester and the CLI preview, and documents the behavior a browser
// binding is expected to have.
//
// Reconciliation is deliberately simple: children are matched by "key" prop
// when present and by position otherwise, and an instance is reused when the
// new description has the same kind (equal tag, or the same *host.Func).
package memory

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/go-drift/hostbridge/pkg/errors"
	"github.com/go-drift/hostbridge/pkg/host"
)

// DefaultMaxPasses bounds how many update passes a single Flush runs before
// it gives up on a component that keeps scheduling itself.
const DefaultMaxPasses = 50

// Runtime is a host.Runtime backed by a Document. It is single-threaded:
// call it from one goroutine.
type Runtime struct {
	doc         *Document
	logger      *slog.Logger
	strictSlots bool
	maxPasses   int
	sched       scheduler
	roots       map[*Container]*instance
	current     *instance
	renders     int
}

var _ host.Runtime = (*Runtime)(nil)

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger for debug output. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithStrictSlots controls whether a render that claims a different number
// of state slots than the first render fails. Defaults to true. When false,
// extra slots are registered with their initial value.
func WithStrictSlots(strict bool) Option {
	return func(r *Runtime) { r.strictSlots = strict }
}

// WithOnNeedsFrame registers a callback fired whenever an instance is newly
// scheduled for re-render.
func WithOnNeedsFrame(fn func()) Option {
	return func(r *Runtime) { r.sched.onNeedsFrame = fn }
}

// WithMaxPasses overrides DefaultMaxPasses.
func WithMaxPasses(n int) Option {
	return func(r *Runtime) {
		if n > 0 {
			r.maxPasses = n
		}
	}
}

// NewRuntime returns a runtime mounting into doc. A nil doc gets a fresh one.
func NewRuntime(doc *Document, opts ...Option) *Runtime {
	if doc == nil {
		doc = NewDocument()
	}
	r := &Runtime{
		doc:         doc,
		logger:      slog.Default(),
		strictSlots: true,
		maxPasses:   DefaultMaxPasses,
		roots:       map[*Container]*instance{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Document returns the document the runtime mounts into.
func (r *Runtime) Document() *Document { return r.doc }

// Renders returns how many times a render function has completed.
func (r *Runtime) Renders() int { return r.renders }

// Pending reports whether state updates are waiting for Flush.
func (r *Runtime) Pending() bool { return r.sched.pending() }

// UseState implements host.Runtime. It fails outside of a render function.
func (r *Runtime) UseState(initial host.Value) (host.Value, host.Dispatch, error) {
	if r.current == nil {
		return nil, nil, &errors.BridgeError{
			Op:   "memory.UseState",
			Kind: errors.KindSlot,
			Err:  errors.ErrNoInstance,
		}
	}
	return r.current.useState(initial)
}

// Mount implements host.Runtime. A mount that fails to render leaves the
// container empty.
func (r *Runtime) Mount(node host.Node, container host.Container) error {
	c, err := r.resolve(container)
	if err != nil {
		return err
	}
	if !validChild(node) {
		return &errors.BridgeError{
			Op:        "memory.Mount",
			Kind:      errors.KindHost,
			Component: c.id,
			Err:       errors.New("node was not created by this runtime"),
		}
	}

	root, err := r.updateChild(nil, r.roots[c], node)
	if err != nil {
		if root != nil {
			root.unmount()
		}
		delete(r.roots, c)
		c.Node.setChildren(nil)
		return err
	}
	if root == nil {
		delete(r.roots, c)
	} else {
		r.roots[c] = root
	}
	r.commit(c)
	r.logger.Debug("mounted", "container", c.id, "renders", r.renders)
	return nil
}

// Unmount removes whatever is mounted in container.
func (r *Runtime) Unmount(container host.Container) error {
	c, err := r.resolve(container)
	if err != nil {
		return err
	}
	if root := r.roots[c]; root != nil {
		root.unmount()
	}
	delete(r.roots, c)
	c.Node.setChildren(nil)
	return nil
}

// Flush applies queued state updates, re-rendering dirty instances
// shallowest first until nothing is scheduled, then commits every container.
// Render failures are reported to the error handler and returned joined; the
// failing instance keeps its previous output.
func (r *Runtime) Flush() error {
	var errs []error
	rebuilt := 0
	for pass := 0; r.sched.pending(); pass++ {
		if pass >= r.maxPasses {
			r.sched.drain()
			errs = append(errs, &errors.BridgeError{
				Op:   "memory.Flush",
				Kind: errors.KindRender,
				Err:  errors.New("too many re-renders: a component keeps updating its own state"),
			})
			break
		}
		for _, inst := range r.sched.drain() {
			if !inst.mounted || !inst.dirty {
				continue
			}
			if err := r.build(inst); err != nil {
				errs = append(errs, err)
			}
			rebuilt++
		}
	}
	for c := range r.roots {
		r.commit(c)
	}
	if rebuilt > 0 {
		r.logger.Debug("flushed", "rebuilt", rebuilt, "renders", r.renders)
	}
	return errors.Join(errs...)
}

// DispatchEvent invokes target's handler for event ("click") with payload.
// It reports whether a handler ran. Handler panics are recovered and
// reported. Updates the handler schedules are applied by the next Flush.
func (r *Runtime) DispatchEvent(target *Node, event string, payload host.Event) (handled bool) {
	if target == nil {
		return false
	}
	handler := target.Listeners[host.EventProp(event)]
	if handler == nil {
		return false
	}
	defer errors.Recover("memory.DispatchEvent")
	handled = true
	handler(payload)
	return handled
}

func (r *Runtime) resolve(container host.Container) (*Container, error) {
	notFound := func(id string) error {
		return &errors.BridgeError{
			Op:        "memory.Mount",
			Kind:      errors.KindContainer,
			Component: id,
			Err:       errors.ErrContainerNotFound,
		}
	}
	if container == nil {
		return nil, notFound("")
	}
	if c, ok := container.(*Container); ok {
		if c == nil {
			return nil, notFound("")
		}
		if c.doc == r.doc {
			return c, nil
		}
	}
	id := container.ContainerID()
	c, ok := r.doc.Container(id)
	if !ok {
		return nil, notFound(id)
	}
	return c, nil
}

func (r *Runtime) commit(c *Container) {
	root := r.roots[c]
	syncDOM(root)
	c.Node.setChildren(domNodes(root))
}

// updateChild reconciles existing against the description v and returns
// the instance now occupying that position.
func (r *Runtime) updateChild(parent *instance, existing *instance, v host.Value) (*instance, error) {
	if isEmpty(v) {
		if existing != nil {
			existing.unmount()
		}
		return nil, nil
	}
	if existing != nil && canUpdate(existing, v) {
		existing.assign(v)
		return existing, r.build(existing)
	}
	if existing != nil {
		existing.unmount()
	}
	inst := r.inflate(parent, v)
	return inst, r.build(inst)
}

func (r *Runtime) inflate(parent *instance, v host.Value) *instance {
	inst := &instance{
		id:      uuid.Must(uuid.NewV7()),
		parent:  parent,
		mounted: true,
		rt:      r,
	}
	if parent != nil {
		inst.depth = parent.depth + 1
	}
	if el, ok := v.(*Element); ok {
		inst.kind = el.Kind
		if _, isFunc := el.Kind.(*host.Func); isFunc {
			inst.typ = funcInstance
		} else {
			inst.typ = tagInstance
			inst.dom = newElementNode(el.Kind.KindName())
		}
	} else {
		inst.typ = textInstance
		inst.dom = newTextNode("")
	}
	inst.assign(v)
	return inst
}

func (r *Runtime) build(inst *instance) error {
	inst.dirty = false
	switch inst.typ {
	case textInstance:
		inst.dom.Text = inst.text
		return nil
	case tagInstance:
		inst.applyProps()
		return r.reconcileChildren(inst)
	}

	out, err := r.renderFunc(inst)
	if err != nil {
		return err
	}
	var existing *instance
	if len(inst.rendered) > 0 {
		existing = inst.rendered[0]
	}
	child, err := r.updateChild(inst, existing, out)
	if child != nil {
		inst.rendered = []*instance{child}
	} else {
		inst.rendered = nil
	}
	return err
}

func (r *Runtime) reconcileChildren(inst *instance) error {
	old := inst.rendered
	byKey := map[string]*instance{}
	for _, child := range old {
		if child.key != "" {
			byKey[child.key] = child
		}
	}

	var errs []error
	used := map[*instance]bool{}
	updated := make([]*instance, 0, len(inst.values))
	for i, v := range inst.values {
		var existing *instance
		if key := keyOf(v); key != "" {
			existing = byKey[key]
		} else if i < len(old) && old[i].key == "" {
			existing = old[i]
		}
		if used[existing] {
			existing = nil
		}
		child, err := r.updateChild(inst, existing, v)
		if err != nil {
			errs = append(errs, err)
		}
		if child != nil {
			used[child] = true
			updated = append(updated, child)
		}
	}
	for _, child := range old {
		if !used[child] && child.mounted {
			child.unmount()
		}
	}
	inst.rendered = updated
	return errors.Join(errs...)
}

// renderFunc invokes a render function with inst as the current hook owner.
// Panics are recovered here, the host's error boundary.
func (r *Runtime) renderFunc(inst *instance) (out host.Node, err error) {
	fn, _ := inst.kind.(*host.Func)
	prev := r.current
	r.current = inst
	inst.cursor = 0

	defer func() {
		r.current = prev
		if rec := recover(); rec != nil {
			if !inst.initialized {
				inst.cells = nil
			}
			renderErr := &errors.RenderError{
				Component:  inst.name(),
				Instance:   inst.id.String(),
				Recovered:  rec,
				StackTrace: errors.CaptureStack(),
			}
			if e, ok := rec.(error); ok {
				renderErr.Err = e
			}
			errors.ReportRenderError(renderErr)
			out, err = nil, renderErr
		}
	}()

	out = fn.Render(r, inst.props)

	if inst.initialized && inst.cursor != len(inst.cells) {
		if r.strictSlots {
			renderErr := &errors.RenderError{
				Component: inst.name(),
				Instance:  inst.id.String(),
				Err: &errors.SlotMismatchError{
					Component: inst.name(),
					Instance:  inst.id.String(),
					Expected:  len(inst.cells),
					Got:       inst.cursor,
				},
			}
			errors.ReportRenderError(renderErr)
			return nil, renderErr
		}
		r.logger.Warn("state slot count changed between renders",
			"component", inst.name(), "first", len(inst.cells), "now", inst.cursor)
	}
	inst.initialized = true
	r.renders++
	return out, nil
}

func canUpdate(inst *instance, v host.Value) bool {
	el, ok := v.(*Element)
	if !ok {
		return inst.typ == textInstance
	}
	if inst.typ == textInstance {
		return false
	}
	return sameKind(inst.kind, el.Kind) && inst.key == el.Key()
}

func keyOf(v host.Value) string {
	if el, ok := v.(*Element); ok {
		return el.Key()
	}
	return ""
}

// isEmpty reports whether v renders nothing: nil and booleans.
func isEmpty(v host.Value) bool {
	switch v.(type) {
	case nil, bool:
		return true
	}
	return false
}
