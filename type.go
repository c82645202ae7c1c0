// File: lixenwraith/layerconf/type.go
package layerconf

import (
	"fmt"
	"time"
)

// String retrieves a string value for key.
// Stringers and errors use their text form, numbers, booleans and byte slices
// are converted; nil is treated as "".
func (s *LayerStack[K]) String(key K) (string, error) {
	val, err := s.Get(key)
	if err != nil {
		return "", err
	}
	if val == nil {
		return "", nil // Treat nil as empty string for convenience
	}

	switch v := val.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case []byte:
		return string(v), nil
	case error:
		return v.Error(), nil
	}
	return as[string](s, key, val)
}

// Int retrieves an int value for key, converting numeric types and parsable strings.
func (s *LayerStack[K]) Int(key K) (int, error) {
	return Value[int](s, key)
}

// Int64 retrieves an int64 value for key.
// Attempts conversion from numeric types and parsable strings, including hex ("0xFF").
func (s *LayerStack[K]) Int64(key K) (int64, error) {
	return Value[int64](s, key)
}

// Bool retrieves a boolean value for key.
// Numbers convert as 0=false, non-zero=true; strings use strconv.ParseBool rules.
func (s *LayerStack[K]) Bool(key K) (bool, error) {
	return Value[bool](s, key)
}

// Float64 retrieves a float64 value for key.
func (s *LayerStack[K]) Float64(key K) (float64, error) {
	return Value[float64](s, key)
}

// Duration retrieves a time.Duration for key. Strings are parsed with
// time.ParseDuration ("1m30s"); integers are taken as nanoseconds.
func (s *LayerStack[K]) Duration(key K) (time.Duration, error) {
	return Value[time.Duration](s, key)
}

// StringSlice retrieves a []string for key. A string value is split on commas.
func (s *LayerStack[K]) StringSlice(key K) ([]string, error) {
	return Value[[]string](s, key)
}
