// File: lixenwraith/layerconf/builder.go
package layerconf

import (
	"fmt"

	"github.com/apex/log"
)

// ValidatorFunc defines the signature for a function that can validate a stack.
// It receives the stack with all initial layers pushed and should return an error if validation fails.
type ValidatorFunc[K comparable] func(s *LayerStack[K]) error

// Builder provides a fluent interface for building layer stacks
type Builder[K comparable] struct {
	opts       Options
	layers     []any
	required   []K
	err        error
	validators []ValidatorFunc[K]
}

// NewBuilder creates a new stack builder
func NewBuilder[K comparable]() *Builder[K] {
	return &Builder[K]{
		opts:       DefaultOptions(),
		validators: make([]ValidatorFunc[K], 0),
	}
}

// WithLogger sets the logger used by the stack
func (b *Builder[K]) WithLogger(logger log.Interface) *Builder[K] {
	if logger == nil {
		b.err = fmt.Errorf("logger: %w", ErrNilArgument)
		return b
	}
	b.opts.Logger = logger
	return b
}

// WithConverter replaces the conversion function used by the typed accessors
func (b *Builder[K]) WithConverter(fn ConvertFunc) *Builder[K] {
	if fn == nil {
		b.err = fmt.Errorf("converter: %w", ErrNilArgument)
		return b
	}
	b.opts.Converter = fn
	return b
}

// WithTagName sets the struct tag that overrides field names
func (b *Builder[K]) WithTagName(tagName string) *Builder[K] {
	b.opts.TagName = tagName
	return b
}

// WithLayers queues layers to push, lowest priority first
func (b *Builder[K]) WithLayers(layers ...any) *Builder[K] {
	b.layers = append(b.layers, layers...)
	return b
}

// WithRequired fails the build if any of keys is absent after all layers are pushed
func (b *Builder[K]) WithRequired(keys ...K) *Builder[K] {
	b.required = append(b.required, keys...)
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder[K]) WithValidator(fn ValidatorFunc[K]) *Builder[K] {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build creates the stack, pushes the queued layers and runs validation
func (b *Builder[K]) Build() (*LayerStack[K], error) {
	if b.err != nil {
		return nil, b.err
	}

	s := New[K](b.opts)
	for i, layer := range b.layers {
		if _, err := s.Push(layer); err != nil {
			return nil, fmt.Errorf("failed to push layer %d: %w", i, err)
		}
	}

	var missing []K
	for _, key := range b.required {
		ok, err := s.ContainsKey(key)
		if err != nil {
			return nil, fmt.Errorf("required key: %w", err)
		}
		if !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required keys %v: %w", missing, ErrKeyNotFound)
	}

	for _, validator := range b.validators {
		if err := validator(s); err != nil {
			return nil, fmt.Errorf("stack validation failed: %w", err)
		}
	}

	return s, nil
}

// MustBuild is like Build but panics on error
func (b *Builder[K]) MustBuild() *LayerStack[K] {
	s, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("layer stack build failed: %v", err))
	}
	return s
}

// BuildAndMaterialize builds the stack and populates target, a pointer to struct
func (b *Builder[K]) BuildAndMaterialize(target any) (*LayerStack[K], error) {
	s, err := b.Build()
	if err != nil {
		return nil, err
	}
	if err := s.MaterializeInto(target); err != nil {
		return nil, fmt.Errorf("failed to materialize final stack into target: %w", err)
	}
	return s, nil
}
