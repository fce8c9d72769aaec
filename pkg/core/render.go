package core

import (
	"reflect"

	"github.com/go-drift/hostbridge/pkg/errors"
	"github.com/go-drift/hostbridge/pkg/host"
)

// Render materializes root and mounts it into container. Elements and HTML
// builders go straight to the host without touching the component adapter.
func Render(rt host.Runtime, root IntoElement, container host.Container) error {
	if isNil(container) {
		return &errors.BridgeError{
			Op:   "core.Render",
			Kind: errors.KindContainer,
			Err:  errors.ErrContainerNotFound,
		}
	}
	if root == nil {
		return &errors.BridgeError{
			Op:   "core.Render",
			Kind: errors.KindHost,
			Err:  errors.New("nil root"),
		}
	}

	node, err := root.IntoElement().Create(rt)
	if err != nil {
		return err
	}
	if err := rt.Mount(node, container); err != nil {
		var be *errors.BridgeError
		if errors.As(err, &be) {
			return err
		}
		kind := errors.KindHost
		if errors.Is(err, errors.ErrContainerNotFound) {
			kind = errors.KindContainer
		}
		return &errors.BridgeError{
			Op:   "core.Render",
			Kind: kind,
			Err:  err,
		}
	}
	return nil
}

// RenderComponent converts c with its component adapter and mounts it.
func RenderComponent[C Component](rt host.Runtime, c C, container host.Container) error {
	element, err := ComponentElement(c)
	if err != nil {
		return err
	}
	return Render(rt, element, container)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
