// FILE: lixenwraith/layerconf/internal/convert/convert_test.go
package convert

import (
	"encoding/json"
	"net"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		target   reflect.Type
		expected any
	}{
		{"IntToString", 42, reflect.TypeOf(""), "42"},
		{"StringToInt", "42", reflect.TypeOf(0), 42},
		{"StringToInt64Hex", "0xFF", reflect.TypeOf(int64(0)), int64(255)},
		{"FloatToInt", 3.9, reflect.TypeOf(0), 3},
		{"IntToFloat", 7, reflect.TypeOf(float64(0)), float64(7)},
		{"StringToBool", "true", reflect.TypeOf(false), true},
		{"StringToDuration", "2m30s", reflect.TypeOf(time.Duration(0)), 150 * time.Second},
		{"StringToSlice", "a,b,c", reflect.TypeOf([]string{}), []string{"a", "b", "c"}},
		{"SameTypeUnchanged", "keep", reflect.TypeOf(""), "keep"},
		{"NilToZero", nil, reflect.TypeOf(0), 0},
		{"NamedBytesToString", json.RawMessage(`{"a":1}`), reflect.TypeOf(""), `{"a":1}`},
		{"NamedBytesToBytes", net.IP{10, 0, 0, 1}, reflect.TypeOf([]byte(nil)), []byte{10, 0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Value(tt.value, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestValueNetworkTypes(t *testing.T) {
	ip, err := Value("192.168.1.100", reflect.TypeOf(net.IP{}))
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.100", ip.(net.IP).String())

	subnet, err := Value("10.0.0.0/8", reflect.TypeOf(&net.IPNet{}))
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/8", subnet.(*net.IPNet).String())

	u, err := Value("https://api.example.com/v1", reflect.TypeOf(&url.URL{}))
	require.NoError(t, err)
	assert.Equal(t, "api.example.com", u.(*url.URL).Host)
}

func TestValueErrors(t *testing.T) {
	t.Run("UnparsableInt", func(t *testing.T) {
		_, err := Value("not-a-number", reflect.TypeOf(0))
		assert.Error(t, err)
	})

	t.Run("InvalidIP", func(t *testing.T) {
		_, err := Value("300.1.1.1", reflect.TypeOf(net.IP{}))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid IP address")
	})

	t.Run("NilTarget", func(t *testing.T) {
		_, err := Value(1, nil)
		assert.Error(t, err)
	})
}
