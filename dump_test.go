// FILE: lixenwraith/layerconf/dump_test.go
package layerconf

import (
	"bytes"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newDumpView(t *testing.T) *View {
	t.Helper()
	view := NewView()
	_, err := view.Push(map[string]any{
		"server.host": "localhost",
		"server.port": int64(8080),
		"debug":       false,
	})
	require.NoError(t, err)
	_, err = view.Push(map[string]any{"server.port": int64(9090)})
	require.NoError(t, err)
	return view
}

// TestSnapshot tests that snapshots are detached from the stack
func TestSnapshot(t *testing.T) {
	view := newDumpView(t)
	snap := view.Snapshot()
	assert.Equal(t, map[string]any{
		"server.host": "localhost",
		"server.port": int64(9090),
		"debug":       false,
	}, snap)

	_, err := view.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(9090), snap["server.port"])
}

// TestDebug tests the provider chain listing
func TestDebug(t *testing.T) {
	view := newDumpView(t)
	out := view.Debug()

	assert.Contains(t, out, "Layers: [1 2]")
	assert.Contains(t, out, "server.port:\n    Current: 9090\n    layer 2: 9090\n    layer 1: 8080\n")
	assert.Contains(t, out, "debug:\n    Current: false\n    layer 1: false\n")
}

// TestDump tests rendering in each format
func TestDump(t *testing.T) {
	t.Run("TOML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, newDumpView(t).Dump(&buf, FormatTOML))

		var decoded map[string]any
		_, err := toml.Decode(buf.String(), &decoded)
		require.NoError(t, err)
		assert.Equal(t, false, decoded["debug"])
		server := decoded["server"].(map[string]any)
		assert.Equal(t, "localhost", server["host"])
		assert.Equal(t, int64(9090), server["port"])
	})

	t.Run("YAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, newDumpView(t).Dump(&buf, FormatYAML))

		var decoded map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		server := decoded["server"].(map[string]any)
		assert.Equal(t, "localhost", server["host"])
		assert.Equal(t, 9090, server["port"])
	})

	t.Run("Text", func(t *testing.T) {
		var buf bytes.Buffer
		view := newDumpView(t)
		require.NoError(t, view.Dump(&buf, FormatText))
		assert.Equal(t, view.Debug(), buf.String())
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, newDumpView(t).Dump(&buf, Format("xml")))
	})
}

// TestParseFormat tests format name parsing
func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("TOML")
	require.NoError(t, err)
	assert.Equal(t, FormatTOML, f)

	_, err = ParseFormat("ini")
	assert.Error(t, err)
}

// TestParseAssignments tests parsing of inline key=value layers
func TestParseAssignments(t *testing.T) {
	layer, err := ParseAssignments("a=1, b.c = two,,a=3")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "3", "b.c": "two"}, layer)

	_, err = ParseAssignments("novalue")
	assert.Error(t, err)

	_, err = ParseAssignments("=x")
	assert.Error(t, err)
}
