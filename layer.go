// FILE: lixenwraith/layerconf/layer.go
package layerconf

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"

	"github.com/lixenwraith/layerconf/internal/reflectx"
)

// Accessor reads the current value of one entry of a layer.
// It is evaluated on every lookup, so later changes to the layer are visible.
type Accessor func() any

// Layer is implemented by values that expose named fields to a LayerStack.
// Fields yields each key with a live accessor and stops when yield returns false.
type Layer[K comparable] interface {
	Fields(yield func(K, Accessor) bool)
}

// binding is one (key, accessor) pair discovered in a pushed layer.
type binding[K comparable] struct {
	key K
	get Accessor
}

// mapLayer exposes the entries of a map. Entries are read through the map on
// every access; an entry deleted after push reads as the zero value.
type mapLayer[K comparable, V any] struct {
	m map[K]V
}

// MapLayer wraps m as a layer whose entries stay live.
func MapLayer[K comparable, V any](m map[K]V) Layer[K] {
	return mapLayer[K, V]{m: m}
}

func (l mapLayer[K, V]) Fields(yield func(K, Accessor) bool) {
	for _, k := range sortedKeys(l.m) {
		if !yield(k, func() any { return l.m[k] }) {
			return
		}
	}
}

// structLayer exposes the exported fields of a struct value.
type structLayer struct {
	value  reflect.Value
	fields []reflectx.Field
}

// StructLayer wraps a struct, or pointer to struct, as a string-keyed layer.
// Field values are read on every access, so a pointer layer observes later
// field updates. tagName selects a struct tag that overrides field names;
// an empty tagName uses the Go field names.
func StructLayer(v any, tagName string) (Layer[string], error) {
	if reflectx.IsNil(v) {
		return nil, fmt.Errorf("struct layer: %w", ErrNilArgument)
	}
	rv := reflectx.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("struct layer requires a struct, got %T: %w", v, ErrUnsupportedLayerKind)
	}
	return structLayer{value: rv, fields: reflectx.StructFields(rv.Type(), tagName)}, nil
}

func (l structLayer) Fields(yield func(string, Accessor) bool) {
	for _, f := range l.fields {
		if !yield(f.Name, func() any { return reflectx.Read(l.value, f) }) {
			return
		}
	}
}

// collectBindings classifies layer and returns every binding it contributes.
// It never mutates the stack, so a rejected layer leaves no trace.
func collectBindings[K comparable](layer any, tagName string) ([]binding[K], error) {
	bindings, err := bindingsOf[K](layer, tagName)
	if err != nil {
		return nil, err
	}
	for _, b := range bindings {
		if err := validKey(b.key); err != nil {
			return nil, fmt.Errorf("push: %w", err)
		}
	}
	return bindings, nil
}

// validKey rejects keys that could be stored but never looked up again:
// nil interface keys and keys not equal to themselves (NaN).
func validKey[K comparable](key K) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if key != key {
		return fmt.Errorf("key %v is not equal to itself: %w", key, ErrInvalidKey)
	}
	return nil
}

func bindingsOf[K comparable](layer any, tagName string) ([]binding[K], error) {
	if reflectx.IsNil(layer) {
		return nil, fmt.Errorf("push: layer is nil: %w", ErrNilArgument)
	}

	if l, ok := layer.(Layer[K]); ok {
		return drain(l), nil
	}

	rv := reflectx.Indirect(reflect.ValueOf(layer))
	if !rv.IsValid() {
		return nil, fmt.Errorf("push: layer is nil: %w", ErrNilArgument)
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return nil, fmt.Errorf("push: %T has no key space: %w", layer, ErrUnsupportedLayerKind)

	case reflect.Map:
		if _, ok := keyFrom[K](reflect.Zero(rv.Type().Key())); !ok {
			return nil, fmt.Errorf("push: map key type %s does not match stack key type %s: %w",
				rv.Type().Key(), reflect.TypeFor[K](), ErrUnsupportedLayerKind)
		}
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
		})
		bindings := make([]binding[K], 0, len(keys))
		for _, mk := range keys {
			k, _ := keyFrom[K](mk)
			bindings = append(bindings, binding[K]{key: k, get: mapEntryAccessor(rv, mk)})
		}
		return bindings, nil

	case reflect.Struct:
		if _, ok := keyFrom[K](reflect.ValueOf("")); !ok {
			return nil, fmt.Errorf("push: struct layer %T requires string keys, stack key type is %s: %w",
				layer, reflect.TypeFor[K](), ErrUnsupportedLayerKind)
		}
		var bindings []binding[K]
		for _, f := range reflectx.StructFields(rv.Type(), tagName) {
			k, _ := keyFrom[K](reflect.ValueOf(f.Name))
			bindings = append(bindings, binding[K]{key: k, get: func() any { return reflectx.Read(rv, f) }})
		}
		return bindings, nil
	}

	return nil, fmt.Errorf("push: %T is neither a map nor a struct: %w", layer, ErrUnsupportedLayerKind)
}

func drain[K comparable](l Layer[K]) []binding[K] {
	var bindings []binding[K]
	l.Fields(func(k K, get Accessor) bool {
		bindings = append(bindings, binding[K]{key: k, get: get})
		return true
	})
	return bindings
}

func mapEntryAccessor(m, key reflect.Value) Accessor {
	return func() any {
		v := m.MapIndex(key)
		if !v.IsValid() {
			return reflect.Zero(m.Type().Elem()).Interface()
		}
		return v.Interface()
	}
}

// keyFrom converts a reflected map key or field name into the stack key type.
// Named string types are accepted for string values.
func keyFrom[K comparable](v reflect.Value) (K, bool) {
	var zero K
	kt := reflect.TypeFor[K]()

	if kt.Kind() == reflect.Interface {
		if v.Type().Implements(kt) && v.Type().Comparable() {
			if v.Kind() == reflect.Interface && v.IsNil() {
				return zero, true
			}
			return v.Interface().(K), true
		}
		return zero, false
	}

	if v.Type() == kt {
		return v.Interface().(K), true
	}
	if v.Kind() == reflect.String && kt.Kind() == reflect.String {
		return v.Convert(kt).Interface().(K), true
	}
	return zero, false
}

func sortedKeys[K comparable, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b K) int {
		return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
	})
	return keys
}
