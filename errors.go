// FILE: lixenwraith/layerconf/errors.go
package layerconf

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNilArgument is returned when a required layer or key is nil.
	ErrNilArgument = errors.New("nil argument")
	// ErrUnsupportedLayerKind is returned by Push for values that have no key space,
	// such as slices and arrays.
	ErrUnsupportedLayerKind = errors.New("unsupported layer kind")
	// ErrKeyNotFound is returned by Get when no active layer defines the key.
	ErrKeyNotFound = errors.New("key not found")
	// ErrEmptyStack is returned by Pop when no layers are active.
	ErrEmptyStack = errors.New("layer stack is empty")
	// ErrLayerNotFound is returned when removing a layer that is not active.
	ErrLayerNotFound = errors.New("layer not found")
	// ErrInvalidKey is returned by Push for keys that can never be looked up,
	// such as a NaN float.
	ErrInvalidKey = errors.New("invalid key")
	// ErrConversionFailed is matched by every *ConversionError.
	ErrConversionFailed = errors.New("conversion failed")
)

// ConversionError reports a resolved value that could not be coerced to the
// requested type. It keeps the original value, its key and both type
// descriptors for diagnostics.
type ConversionError struct {
	Key    any
	Value  any
	Source reflect.Type
	Target reflect.Type
	Err    error
}

func (e *ConversionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("layerconf: value %v for key %v of type %s cannot be converted to %s",
		e.Value, e.Key, typeName(e.Source), typeName(e.Target))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is(err, ErrConversionFailed) match any conversion error.
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversionFailed
}

func newConversionError(key, value any, target reflect.Type, err error) *ConversionError {
	return &ConversionError{
		Key:    key,
		Value:  value,
		Source: reflect.TypeOf(value),
		Target: target,
		Err:    err,
	}
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
