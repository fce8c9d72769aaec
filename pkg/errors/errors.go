// Package errors provides structured error handling for hostbridge.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindMarshal indicates a props or state payload failed to encode or decode.
	KindMarshal
	// KindHost indicates a host primitive (node creation, property write) failed.
	KindHost
	// KindContainer indicates a mount container did not resolve.
	KindContainer
	// KindSlot indicates a render issued a different sequence of state slots
	// than the first render of the same instance.
	KindSlot
	// KindRender indicates a render function failed.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindMarshal:
		return "marshal"
	case KindHost:
		return "host"
	case KindContainer:
		return "container"
	case KindSlot:
		return "slot"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

var (
	// ErrContainerNotFound indicates the mount container handle does not resolve.
	ErrContainerNotFound = errors.New("container not found")

	// ErrConsumed indicates an Element was handed to the host a second time.
	ErrConsumed = errors.New("element already created")

	// ErrNoInstance indicates a hook was called outside of a render function.
	ErrNoInstance = errors.New("hook called outside of a render")
)

// BridgeError represents a structured error raised by the component layer.
type BridgeError struct {
	// Op is the operation that failed (e.g., "core.Element.Create").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Component is the component or tag involved, if any.
	Component string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BridgeError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("%s [%s] component=%s: %v", e.Op, e.Kind, e.Component, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *BridgeError) Unwrap() error {
	return e.Err
}

// Direction is the side of the marshalling boundary a MarshalError came from.
type Direction string

const (
	Encode Direction = "encode"
	Decode Direction = "decode"
)

// MarshalError reports a failure to convert between a typed value and its
// generic representation.
type MarshalError struct {
	// Type is the Go type being converted.
	Type string
	// Direction is Encode or Decode.
	Direction Direction
	// Format is the codec format name ("json", "cbor").
	Format string
	// Err is the underlying codec error.
	Err error
}

func (e *MarshalError) Error() string {
	return fmt.Sprintf("%s %s via %s: %v", e.Direction, e.Type, e.Format, e.Err)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}

// SlotMismatchError reports that a re-render of an instance claimed a
// different number of state slots than its first render.
type SlotMismatchError struct {
	// Component is the kind name of the instance.
	Component string
	// Instance is the host's identifier for the instance.
	Instance string
	// Expected is the slot count recorded on the first render.
	Expected int
	// Got is the slot count claimed by the offending render.
	Got int
}

func (e *SlotMismatchError) Error() string {
	return fmt.Sprintf("%s (%s): render used %d state slots, first render used %d",
		e.Component, e.Instance, e.Got, e.Expected)
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "memory.DispatchEvent").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// RenderError represents a failure while the host invoked a render function.
type RenderError struct {
	// Component is the kind name of the instance being rendered.
	Component string
	// Instance is the host's identifier for the instance.
	Instance string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error. For recovered panics carrying an error
	// value, Err holds that error as well.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *RenderError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s render: %v", e.Component, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in %s render: %v", e.Component, e.Err)
	}
	return fmt.Sprintf("unknown error in %s render", e.Component)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by hostbridge.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *BridgeError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleRenderError is called when a render function fails.
	HandleRenderError(err *RenderError)
}

// Fatal wraps err as a BridgeError with a captured stack. It is the value
// the component layer panics with on unrecoverable defects.
func Fatal(op string, kind ErrorKind, component string, err error) *BridgeError {
	return &BridgeError{
		Op:         op,
		Kind:       kind,
		Component:  component,
		Err:        err,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return errors.As(err, target) }

// New returns an error that formats as the given text.
func New(text string) error { return errors.New(text) }

// Join returns an error that wraps the given errors, or nil if all are nil.
func Join(errs ...error) error { return errors.Join(errs...) }
