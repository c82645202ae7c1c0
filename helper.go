// File: lixenwraith/layerconf/helper.go
package layerconf

import (
	"fmt"
	"strings"
)

// setNestedValue sets a value in a nested map using a dot-notation path.
// It creates intermediate maps if they don't exist.
// If a segment exists but is not a map, it will be overwritten by a new map.
func setNestedValue(nested map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := nested

	// Iterate through segments up to the second-to-last one
	for i := 0; i < len(segments)-1; i++ {
		segment := segments[i]

		next, exists := current[segment]
		if nextMap, isMap := next.(map[string]any); exists && isMap {
			current = nextMap
			continue
		}

		newMap := make(map[string]any)
		current[segment] = newMap
		current = newMap
	}

	current[segments[len(segments)-1]] = value
}

// ParseAssignments parses "a=1,b.c=two" into a map usable as a layer.
// Values are kept as strings; the typed accessors convert them on read.
// A later assignment to the same key overrides an earlier one.
func ParseAssignments(s string) (map[string]any, error) {
	layer := make(map[string]any)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q, expected key=value", part)
		}
		layer[key] = strings.TrimSpace(value)
	}
	return layer, nil
}
