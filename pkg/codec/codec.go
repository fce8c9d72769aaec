// Package codec converts typed Go values to and from the generic values a
// host runtime stores in props and state cells.
//
// A Codec[T] pairs a Format with a target type. Encode serializes the value
// and decodes the bytes back into the format's generic tree (maps, slices,
// strings, numbers). Decode re-serializes a generic value and unmarshals it
// into T. Both directions return *errors.MarshalError on failure so callers
// decide whether a failure is fatal.
package codec

import (
	"reflect"

	"github.com/go-drift/hostbridge/pkg/errors"
)

// Value is a generic value as stored by the host.
type Value = any

// Format is a structured serialization scheme.
type Format interface {
	// Name identifies the format in errors and configuration.
	Name() string
	// Marshal serializes a Go value.
	Marshal(v any) ([]byte, error)
	// Unmarshal deserializes data into the value pointed to by v.
	Unmarshal(data []byte, v any) error
	// UnmarshalGeneric deserializes data into the format's generic tree.
	UnmarshalGeneric(data []byte) (Value, error)
}

// Codec converts between T and its generic representation.
type Codec[T any] interface {
	Encode(value T) (Value, error)
	Decode(generic Value) (T, error)
}

// DefaultFormat is the format used by For when given nil.
var DefaultFormat Format = JSON

var formats = map[string]Format{
	JSON.Name(): JSON,
	CBOR.Name(): CBOR,
}

// Lookup returns the registered format with the given name.
func Lookup(name string) (Format, bool) {
	f, ok := formats[name]
	return f, ok
}

// Names returns the registered format names.
func Names() []string {
	return []string{JSON.Name(), CBOR.Name()}
}

type typedCodec[T any] struct {
	format Format
	name   string
}

// For returns a Codec for T using format, or DefaultFormat when format is nil.
func For[T any](format Format) Codec[T] {
	if format == nil {
		format = DefaultFormat
	}
	return typedCodec[T]{format: format, name: TypeName[T]()}
}

func (c typedCodec[T]) Encode(value T) (Value, error) {
	data, err := c.format.Marshal(value)
	if err != nil {
		return nil, c.fail(errors.Encode, err)
	}
	generic, err := c.format.UnmarshalGeneric(data)
	if err != nil {
		return nil, c.fail(errors.Encode, err)
	}
	return generic, nil
}

func (c typedCodec[T]) Decode(generic Value) (T, error) {
	var out T
	data, err := c.format.Marshal(generic)
	if err != nil {
		return out, c.fail(errors.Decode, err)
	}
	if err := c.format.Unmarshal(data, &out); err != nil {
		var zero T
		return zero, c.fail(errors.Decode, err)
	}
	return out, nil
}

func (c typedCodec[T]) fail(dir errors.Direction, err error) error {
	return &errors.MarshalError{
		Type:      c.name,
		Direction: dir,
		Format:    c.format.Name(),
		Err:       err,
	}
}

// TypeName returns the printable name of T.
func TypeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
