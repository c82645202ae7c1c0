// FILE: lixenwraith/layerconf/handle.go
package layerconf

// Handle is returned by Push and retracts its layer when closed.
// Closing a handle is equivalent to calling Remove with its ID.
type Handle struct {
	id       LayerID
	release  func() error
	released bool
}

// ID returns the id of the layer this handle controls.
func (h *Handle) ID() LayerID {
	return h.id
}

// Close removes the layer from its stack. Once the layer has been removed,
// by this handle, Pop or Remove, Close returns ErrLayerNotFound.
func (h *Handle) Close() error {
	err := h.release()
	h.released = true
	return err
}

// Released reports whether Close has been called on this handle.
func (h *Handle) Released() bool {
	return h.released
}
