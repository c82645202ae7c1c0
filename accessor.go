// FILE: lixenwraith/layerconf/accessor.go
package layerconf

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/apex/log"

	"github.com/lixenwraith/layerconf/internal/reflectx"
)

var errNilValue = errors.New("value is nil")

// GetValue returns the resolved value for key without conversion.
func (s *LayerStack[K]) GetValue(key K) (any, error) {
	return s.Get(key)
}

// GetValueAs returns the resolved value for key converted to target.
// A nil value is returned as nil without conversion.
func (s *LayerStack[K]) GetValueAs(key K, target reflect.Type) (any, error) {
	value, err := s.Get(key)
	if err != nil {
		return nil, err
	}
	return s.coerce(key, value, target)
}

// TryGetValueAs is like GetValueAs but reports absence with found=false.
// Conversion failures are still returned as errors.
func (s *LayerStack[K]) TryGetValueAs(key K, target reflect.Type) (value any, found bool, err error) {
	raw, found, err := s.TryGet(key)
	if err != nil || !found {
		return nil, false, err
	}
	value, err = s.coerce(key, raw, target)
	if err != nil {
		return nil, true, err
	}
	return value, true, nil
}

// Value returns the resolved value for key as a T, converting when needed.
// A nil value yields the zero T when T is nilable and a *ConversionError otherwise.
func Value[T any, K comparable](s *LayerStack[K], key K) (T, error) {
	var zero T
	raw, err := s.Get(key)
	if err != nil {
		return zero, err
	}
	return as[T](s, key, raw)
}

// TryValue is like Value but reports absence with found=false.
// Conversion failures are still returned as errors.
func TryValue[T any, K comparable](s *LayerStack[K], key K) (T, bool, error) {
	var zero T
	raw, found, err := s.TryGet(key)
	if err != nil || !found {
		return zero, false, err
	}
	v, err := as[T](s, key, raw)
	if err != nil {
		return zero, true, err
	}
	return v, true, nil
}

// Materialize returns a new T, a struct or pointer to struct, whose fields are
// populated from the stack. See MaterializeInto.
func Materialize[T any, K comparable](s *LayerStack[K]) (T, error) {
	var zero T
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Ptr {
		ptr := reflect.New(t.Elem())
		if err := s.MaterializeInto(ptr.Interface()); err != nil {
			return zero, err
		}
		return ptr.Interface().(T), nil
	}

	var target T
	if err := s.MaterializeInto(&target); err != nil {
		return zero, err
	}
	return target, nil
}

// MaterializeInto assigns every exported field of the struct pointed to by
// target whose name (or tag name, see Options.TagName) is a present key.
// Values are converted when the field type differs. Fields without a key are
// left untouched. A conversion failure aborts with no field written.
// Embedded struct pointers are replaced with copies, so pointees shared with
// other values are never modified.
func (s *LayerStack[K]) MaterializeInto(target any) error {
	if reflectx.IsNil(target) {
		return fmt.Errorf("materialize target: %w", ErrNilArgument)
	}
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("materialize target must be a pointer to struct, got %T", target)
	}

	work := reflect.New(rv.Elem().Type()).Elem()
	work.Set(rv.Elem())
	reflectx.DetachEmbedded(work)

	for _, f := range reflectx.StructFields(work.Type(), s.opts.TagName) {
		key, ok := keyFrom[K](reflect.ValueOf(f.Name))
		if !ok {
			return fmt.Errorf("materialize requires string keys, stack key type is %s", reflect.TypeFor[K]())
		}
		raw, found, err := s.TryGet(key)
		if err != nil {
			return err
		}
		if !found {
			continue
		}

		value, err := s.coerce(key, raw, f.Type)
		if err != nil {
			return fmt.Errorf("materialize field %s: %w", f.Name, err)
		}
		if err := reflectx.Assign(work, f, value); err != nil {
			return fmt.Errorf("materialize field %s: %w", f.Name, newConversionError(key, raw, f.Type, err))
		}
	}

	rv.Elem().Set(work)
	return nil
}

// coerce converts value to target. Nil passes through unchanged, and a value
// that already has the target type, or implements a target interface, is
// returned as-is.
func (s *LayerStack[K]) coerce(key K, value any, target reflect.Type) (any, error) {
	if target == nil {
		return nil, fmt.Errorf("conversion target for key %v: %w", key, ErrNilArgument)
	}
	if value == nil {
		return nil, nil
	}

	vt := reflect.TypeOf(value)
	if vt == target || (target.Kind() == reflect.Interface && vt.Implements(target)) {
		return value, nil
	}

	converted, err := s.opts.Converter(value, target)
	if err != nil {
		s.log.WithError(err).WithFields(log.Fields{
			"key":    key,
			"source": vt.String(),
			"target": target.String(),
		}).Warn("conversion failed")
		return nil, newConversionError(key, value, target, err)
	}
	return converted, nil
}

func as[T any, K comparable](s *LayerStack[K], key K, raw any) (T, error) {
	var zero T
	target := reflect.TypeFor[T]()

	if raw == nil {
		if reflectx.Nilable(target) {
			return zero, nil
		}
		return zero, newConversionError(key, nil, target, errNilValue)
	}
	if v, ok := raw.(T); ok {
		return v, nil
	}

	converted, err := s.coerce(key, raw, target)
	if err != nil {
		return zero, err
	}
	v, ok := converted.(T)
	if !ok {
		return zero, newConversionError(key, raw, target, fmt.Errorf("converter returned %T", converted))
	}
	return v, nil
}
