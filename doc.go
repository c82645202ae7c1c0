// File: lixenwraith/layerconf/doc.go

// Package layerconf provides a layered in-memory key/value configuration store.
// Layers are pushed onto a stack and read through one key space; when several
// layers define the same key, the most recently pushed one wins.
//
// Features:
//   - Maps, structs and custom Layer implementations as layers
//   - Live bindings: later changes to a pushed map or struct pointer are visible on the next read
//   - Removal of any layer, not only the top, through its Handle or LayerID
//   - Typed accessors with automatic conversion (mapstructure, weakly typed)
//   - Struct materialization from the resolved key space
//   - Builder pattern for easy initialization
//   - Debug and Dump (TOML, YAML) to see where values come from
//
// Quick Start:
//
//	type Server struct {
//	    Host string
//	    Port int
//	}
//
//	view := layerconf.NewView()
//	view.Push(&Server{Host: "localhost", Port: 8080})  // defaults
//	h, _ := view.Push(map[string]any{"Port": "9090"}) // override
//
//	port, _ := view.Int("Port")                          // 9090
//	srv, _ := layerconf.Materialize[Server](view)        // {localhost 9090}
//
//	h.Close()                                            // retract the override
//	port, _ = view.Int("Port")                           // 8080
//
// Generic keys:
//
//	stack := layerconf.New[int](layerconf.DefaultOptions())
//	stack.Push(map[int]string{1: "one"})
//
// Thread Safety:
// A LayerStack is not safe for concurrent use. Reads evaluate live accessors
// into caller-owned layers, so callers sharing a stack must synchronize both
// the stack and the layers they pushed.
package layerconf
