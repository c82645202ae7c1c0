// FILE: lixenwraith/layerconf/internal/reflectx/fields.go

// Package reflectx holds the reflection helpers shared by struct layers and
// struct materialization.
package reflectx

import (
	"fmt"
	"reflect"
	"strings"
)

// Field describes one exported struct field addressed by key name.
type Field struct {
	Name  string
	Index []int
	Type  reflect.Type
}

// StructFields returns the exported, non-embedded fields of struct type t in
// declaration order, including fields promoted from embedded structs.
// When tagName is set, a tag value overrides the field name and "-" skips the field.
func StructFields(t reflect.Type, tagName string) []Field {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	fields := make([]Field, 0, t.NumField())
	for _, sf := range reflect.VisibleFields(t) {
		if sf.Anonymous || !sf.IsExported() || !reachable(t, sf.Index) {
			continue
		}

		name := sf.Name
		if tagName != "" {
			tag := sf.Tag.Get(tagName)
			if tag == "-" {
				continue
			}
			if tag != "" {
				parts := strings.Split(tag, ",")
				if parts[0] != "" {
					name = parts[0]
				}
			}
		}

		fields = append(fields, Field{Name: name, Index: sf.Index, Type: sf.Type})
	}
	return fields
}

// reachable reports whether every embedded struct on the path to a promoted
// field is exported; fields promoted through unexported embeddings cannot be
// read or set through reflection.
func reachable(t reflect.Type, index []int) bool {
	for i := 1; i < len(index); i++ {
		if !t.FieldByIndex(index[:i]).IsExported() {
			return false
		}
	}
	return true
}

// Indirect follows pointers and interfaces until it reaches a concrete value.
// The result is invalid when a nil is encountered on the way.
func Indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// IsNil reports whether v is nil, including typed nils stored in an interface.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	if Nilable(rv.Type()) {
		return rv.IsNil()
	}
	return false
}

// Nilable reports whether values of type t can be nil.
func Nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

// Read returns the current value of field f in struct value v.
// A nil embedded pointer on the path yields nil.
func Read(v reflect.Value, f Field) any {
	fv, err := v.FieldByIndexErr(f.Index)
	if err != nil {
		return nil
	}
	return fv.Interface()
}

// DetachEmbedded replaces every non-nil exported embedded struct pointer in
// the addressable struct v with a pointer to a copy, recursively. Writes
// through v afterwards do not reach the original pointees.
func DetachEmbedded(v reflect.Value) {
	detachEmbedded(v, make(map[uintptr]reflect.Value))
}

func detachEmbedded(v reflect.Value, seen map[uintptr]reflect.Value) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.Anonymous || !sf.IsExported() {
			continue
		}
		fv := v.Field(i)
		switch {
		case fv.Kind() == reflect.Ptr && fv.Type().Elem().Kind() == reflect.Struct:
			if fv.IsNil() || !fv.CanSet() {
				continue
			}
			if clone, ok := seen[fv.Pointer()]; ok {
				fv.Set(clone)
				continue
			}
			clone := reflect.New(fv.Type().Elem())
			seen[fv.Pointer()] = clone
			clone.Elem().Set(fv.Elem())
			fv.Set(clone)
			detachEmbedded(clone.Elem(), seen)
		case fv.Kind() == reflect.Struct:
			detachEmbedded(fv, seen)
		}
	}
}

// Assign stores value into field f of the addressable struct value dst.
// Nil embedded pointers on the path are allocated.
func Assign(dst reflect.Value, f Field, value any) error {
	fv := dst
	for i, x := range f.Index {
		if i > 0 && fv.Kind() == reflect.Ptr {
			if fv.IsNil() {
				if !fv.CanSet() {
					return fmt.Errorf("field %s is behind a nil unexported embedded pointer", f.Name)
				}
				fv.Set(reflect.New(fv.Type().Elem()))
			}
			fv = fv.Elem()
		}
		fv = fv.Field(x)
	}
	if !fv.CanSet() {
		return fmt.Errorf("field %s is not settable", f.Name)
	}

	if value == nil {
		fv.Set(reflect.Zero(fv.Type()))
		return nil
	}

	rv := reflect.ValueOf(value)
	if !rv.Type().AssignableTo(fv.Type()) {
		return fmt.Errorf("value of type %s is not assignable to field %s of type %s", rv.Type(), f.Name, fv.Type())
	}
	fv.Set(rv)
	return nil
}
