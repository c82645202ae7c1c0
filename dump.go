// File: lixenwraith/layerconf/dump.go
package layerconf

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format selects the rendering used by Dump
type Format string

const (
	// FormatText renders the same listing as Debug
	FormatText Format = "text"
	// FormatTOML renders the resolved values as a TOML document
	FormatTOML Format = "toml"
	// FormatYAML renders the resolved values as a YAML document
	FormatYAML Format = "yaml"
)

// ParseFormat converts a format name into a Format.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatText, FormatTOML, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown dump format %q", name)
}

// Snapshot returns the current top-most value of every key.
// The result is detached from the stack; later changes are not reflected.
func (s *LayerStack[K]) Snapshot() map[K]any {
	snap := make(map[K]any, s.Len())
	for k, v := range s.All() {
		snap[k] = v
	}
	return snap
}

// Debug returns a formatted string showing every key with its provider chain,
// highest priority first.
func (s *LayerStack[K]) Debug() string {
	var b strings.Builder
	b.WriteString("Layer Stack Debug Info:\n")
	b.WriteString(fmt.Sprintf("Layers: %v\n", s.order))
	b.WriteString("Current values:\n")

	for _, k := range s.keys {
		chain := s.chains[k]
		b.WriteString(fmt.Sprintf("  %v:\n", k))
		b.WriteString(fmt.Sprintf("    Current: %v\n", chain[len(chain)-1].get()))
		for i := len(chain) - 1; i >= 0; i-- {
			b.WriteString(fmt.Sprintf("    layer %d: %v\n", chain[i].layer, chain[i].get()))
		}
	}

	return b.String()
}

// Dump writes the resolved values to w. TOML and YAML output nest dotted keys
// ("server.port") into tables; it is meant for inspection, nothing reads it back.
func (s *LayerStack[K]) Dump(w io.Writer, format Format) error {
	if format == FormatText {
		_, err := io.WriteString(w, s.Debug())
		return err
	}

	nestedData := make(map[string]any)
	for k, v := range s.All() {
		setNestedValue(nestedData, fmt.Sprint(k), v)
	}

	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(nestedData); err != nil {
			return fmt.Errorf("failed to encode TOML: %w", err)
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(nestedData); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to flush YAML: %w", err)
		}
	default:
		return fmt.Errorf("unknown dump format %q", format)
	}
	return nil
}
