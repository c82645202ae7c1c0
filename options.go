// FILE: lixenwraith/layerconf/options.go
package layerconf

import (
	"reflect"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"

	"github.com/lixenwraith/layerconf/internal/convert"
)

// ConvertFunc coerces a resolved value to the target type.
// It returns an error when no coercion path exists.
type ConvertFunc func(value any, target reflect.Type) (any, error)

// Options configures a LayerStack
type Options struct {
	// Logger receives debug events for push, pop and remove, and warnings for
	// failed conversions. Default: a logger that discards everything.
	Logger log.Interface

	// Converter is used by the typed accessors when a resolved value does not
	// already have the requested type. Default: mapstructure with weak typing.
	Converter ConvertFunc

	// TagName selects the struct tag that overrides field names, both when a
	// struct is pushed as a layer and when materializing into a struct.
	// Empty means Go field names are used as keys.
	TagName string
}

// DefaultOptions returns the standard options
func DefaultOptions() Options {
	return Options{
		Logger:    discardLogger(),
		Converter: convert.Value,
	}
}

// withDefaults fills unset fields from DefaultOptions.
func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = discardLogger()
	}
	if o.Converter == nil {
		o.Converter = convert.Value
	}
	return o
}

func discardLogger() log.Interface {
	return &log.Logger{Handler: discard.Default, Level: log.FatalLevel}
}
