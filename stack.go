// FILE: lixenwraith/layerconf/stack.go
package layerconf

import (
	"fmt"
	"iter"
	"slices"

	"github.com/apex/log"

	"github.com/lixenwraith/layerconf/internal/reflectx"
)

// LayerID identifies one pushed layer for the lifetime of its stack.
// IDs are never reused.
type LayerID uint64

// provider is a live binding registered under one key by one layer.
type provider struct {
	layer LayerID
	get   Accessor
}

// layerEntry is an active layer and the bindings it contributed.
type layerEntry[K comparable] struct {
	id       LayerID
	layer    any
	bindings []binding[K]
}

// LayerStack is an ordered stack of layers queried through one key space.
// The most recently pushed layer that defines a key wins. Any layer can be
// removed, not only the top one.
//
// A LayerStack is not safe for concurrent use; callers that share one across
// goroutines must synchronize externally.
type LayerStack[K comparable] struct {
	opts    Options
	log     log.Interface
	nextID  LayerID
	entries map[LayerID]*layerEntry[K]
	order   []LayerID        // push order, last = highest priority
	chains  map[K][]provider // per-key providers in push order
	keys    []K              // first-appearance order of live keys
}

// New creates an empty LayerStack with the given options.
// Unset option fields take their defaults.
func New[K comparable](opts Options) *LayerStack[K] {
	opts = opts.withDefaults()
	return &LayerStack[K]{
		opts:    opts,
		log:     opts.Logger,
		entries: make(map[LayerID]*layerEntry[K]),
		chains:  make(map[K][]provider),
	}
}

// Push adds layer on top of the stack and returns a handle that removes it.
//
// A layer is a map whose key type matches K, a struct or pointer to struct
// (string-like K only), or any value implementing Layer[K]. Slices and arrays
// are rejected with ErrUnsupportedLayerKind, nil layers and nil keys with
// ErrNilArgument, and NaN keys with ErrInvalidKey; a rejected push does not
// change the stack.
func (s *LayerStack[K]) Push(layer any) (*Handle, error) {
	bindings, err := collectBindings[K](layer, s.opts.TagName)
	if err != nil {
		s.log.WithError(err).Debug("layer rejected")
		return nil, err
	}

	s.nextID++
	id := s.nextID

	for _, b := range bindings {
		s.addProvider(b.key, provider{layer: id, get: b.get})
	}
	s.entries[id] = &layerEntry[K]{id: id, layer: layer, bindings: bindings}
	s.order = append(s.order, id)

	s.log.WithFields(log.Fields{
		"layer": id,
		"keys":  len(bindings),
		"depth": len(s.order),
	}).Debug("layer pushed")

	return &Handle{id: id, release: func() error { return s.Remove(id) }}, nil
}

// Pop removes the most recently pushed active layer and returns it.
func (s *LayerStack[K]) Pop() (any, error) {
	if len(s.order) == 0 {
		return nil, ErrEmptyStack
	}

	entry := s.entries[s.order[len(s.order)-1]]
	s.dispose(entry)

	s.log.WithFields(log.Fields{"layer": entry.id, "depth": len(s.order)}).Debug("layer popped")
	return entry.layer, nil
}

// Remove removes the layer with the given id from any position in the stack.
// It returns ErrLayerNotFound if the id was never pushed or is already removed.
func (s *LayerStack[K]) Remove(id LayerID) error {
	entry, ok := s.entries[id]
	if !ok {
		return fmt.Errorf("remove layer %d: %w", id, ErrLayerNotFound)
	}
	s.dispose(entry)

	s.log.WithFields(log.Fields{"layer": id, "depth": len(s.order)}).Debug("layer removed")
	return nil
}

// Get returns the current value of key from the top-most layer defining it.
func (s *LayerStack[K]) Get(key K) (any, error) {
	value, found, err := s.TryGet(key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("key %v: %w", key, ErrKeyNotFound)
	}
	return value, nil
}

// TryGet is like Get but reports absence with found=false instead of an error.
func (s *LayerStack[K]) TryGet(key K) (value any, found bool, err error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}
	chain, ok := s.chains[key]
	if !ok {
		return nil, false, nil
	}
	return chain[len(chain)-1].get(), true, nil
}

// ContainsKey reports whether any active layer defines key.
func (s *LayerStack[K]) ContainsKey(key K) (bool, error) {
	if err := checkKey(key); err != nil {
		return false, err
	}
	_, ok := s.chains[key]
	return ok, nil
}

// Keys returns every key defined by at least one active layer, in the order
// the keys first appeared.
func (s *LayerStack[K]) Keys() []K {
	return slices.Clone(s.keys)
}

// Values yields the current top-most value of every key. The key set is fixed
// when iteration starts; values are evaluated as they are yielded.
func (s *LayerStack[K]) Values() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, v := range s.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// All yields every key with its current top-most value. The key set is fixed
// when iteration starts; keys removed during iteration are skipped.
func (s *LayerStack[K]) All() iter.Seq2[K, any] {
	return func(yield func(K, any) bool) {
		for _, k := range s.Keys() {
			chain, ok := s.chains[k]
			if !ok {
				continue
			}
			if !yield(k, chain[len(chain)-1].get()) {
				return
			}
		}
	}
}

// Layers returns the active layers in push order; the top of the stack is last.
func (s *LayerStack[K]) Layers() []any {
	layers := make([]any, 0, len(s.order))
	for _, id := range s.order {
		layers = append(layers, s.entries[id].layer)
	}
	return layers
}

// Layer returns the active layer registered under id.
func (s *LayerStack[K]) Layer(id LayerID) (any, bool) {
	entry, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	return entry.layer, true
}

// Len returns the number of distinct keys across all active layers.
func (s *LayerStack[K]) Len() int {
	return len(s.chains)
}

// Depth returns the number of active layers.
func (s *LayerStack[K]) Depth() int {
	return len(s.order)
}

func (s *LayerStack[K]) addProvider(key K, p provider) {
	chain, ok := s.chains[key]
	if !ok {
		s.keys = append(s.keys, key)
	}
	s.chains[key] = append(chain, p)
}

// dispose retracts every binding of entry in insertion order, then drops
// the entry from the active set.
func (s *LayerStack[K]) dispose(entry *layerEntry[K]) {
	for _, b := range entry.bindings {
		s.removeProvider(b.key, entry.id)
	}
	delete(s.entries, entry.id)
	s.order = slices.DeleteFunc(s.order, func(id LayerID) bool { return id == entry.id })
}

func (s *LayerStack[K]) removeProvider(key K, id LayerID) {
	chain, ok := s.chains[key]
	if !ok {
		return
	}
	chain = slices.DeleteFunc(chain, func(p provider) bool { return p.layer == id })
	if len(chain) > 0 {
		s.chains[key] = chain
		return
	}
	delete(s.chains, key)
	s.keys = slices.DeleteFunc(s.keys, func(k K) bool { return k == key })
}

func checkKey[K comparable](key K) error {
	if reflectx.IsNil(any(key)) {
		return fmt.Errorf("key: %w", ErrNilArgument)
	}
	return nil
}
