// FILE: lixenwraith/layerconf/view.go
package layerconf

// View is a LayerStack keyed by strings, the common case for application
// configuration. It has the full LayerStack API.
type View = LayerStack[string]

// NewView creates an empty string-keyed stack with default options.
func NewView() *View {
	return New[string](DefaultOptions())
}

// NewViewWithOptions creates an empty string-keyed stack with custom options.
func NewViewWithOptions(opts Options) *View {
	return New[string](opts)
}
