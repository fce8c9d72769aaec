package memory

import (
	"encoding/json"
	"fmt"
	"reflect"
	"slices"

	"github.com/go-drift/hostbridge/pkg/errors"
	"github.com/go-drift/hostbridge/pkg/host"
)

// Element is the host-native node CreateElement returns: an unrendered
// description the runtime reconciles when it is mounted or returned from a
// render function.
type Element struct {
	Kind     host.Kind
	Props    host.Value
	Children []host.Value
}

// Key returns the element's "key" prop, used to match children across
// renders independently of their position.
func (e *Element) Key() string {
	props, ok := asProps(e.Props)
	if !ok {
		return ""
	}
	if k, ok := props["key"]; ok && k != nil {
		return formatValue(k)
	}
	return ""
}

// CreateElement implements host.Runtime.
func (r *Runtime) CreateElement(kind host.Kind, props host.Value, children []host.Value) (host.Node, error) {
	if err := validateKind(kind, props); err != nil {
		return nil, &errors.BridgeError{
			Op:        "memory.CreateElement",
			Kind:      errors.KindHost,
			Component: kindLabel(kind),
			Err:       err,
		}
	}
	for i, child := range children {
		if !validChild(child) {
			return nil, &errors.BridgeError{
				Op:        "memory.CreateElement",
				Kind:      errors.KindHost,
				Component: kindLabel(kind),
				Err:       fmt.Errorf("child %d: unsupported type %T", i, child),
			}
		}
	}
	return &Element{Kind: kind, Props: props, Children: slices.Clone(children)}, nil
}

func validateKind(kind host.Kind, props host.Value) error {
	switch k := kind.(type) {
	case nil:
		return errors.New("nil kind")
	case host.Tag:
		if k == "" {
			return errors.New("empty tag")
		}
		if props != nil {
			if _, ok := asProps(props); !ok {
				return fmt.Errorf("tag props must be a map, got %T", props)
			}
		}
	case *host.Func:
		if k == nil || k.Render == nil {
			return errors.New("render function is nil")
		}
	default:
		return fmt.Errorf("unsupported kind %T", kind)
	}
	return nil
}

func validChild(child host.Value) bool {
	switch child.(type) {
	case nil, string, bool, json.Number, *Element:
		return true
	}
	switch reflect.ValueOf(child).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func asProps(v host.Value) (map[string]host.Value, bool) {
	switch p := v.(type) {
	case host.Props:
		return p, true
	case map[string]any:
		return p, true
	case map[any]any:
		// Binary formats decode generic maps with interface keys.
		out := make(map[string]host.Value, len(p))
		for k, v := range p {
			s, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[s] = v
		}
		return out, true
	}
	return nil, false
}

func asHandler(v host.Value) (host.EventHandler, bool) {
	switch h := v.(type) {
	case host.EventHandler:
		return h, h != nil
	case func(host.Event):
		return host.EventHandler(h), h != nil
	}
	return nil, false
}

func kindLabel(kind host.Kind) string {
	if kind == nil {
		return ""
	}
	if f, ok := kind.(*host.Func); ok && f == nil {
		return ""
	}
	return kind.KindName()
}

func sameKind(a, b host.Kind) bool {
	switch ak := a.(type) {
	case host.Tag:
		bk, ok := b.(host.Tag)
		return ok && ak == bk
	case *host.Func:
		bk, ok := b.(*host.Func)
		return ok && ak == bk
	}
	return false
}
