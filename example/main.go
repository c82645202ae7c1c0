// FILE: lixenwraith/layerconf/example/main.go
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/text"

	"github.com/lixenwraith/layerconf"
)

// ServerConfig is the typed shape the application reads its settings into.
type ServerConfig struct {
	Host    string        `toml:"host"`
	Port    int           `toml:"port"`
	Timeout time.Duration `toml:"timeout"`
	Debug   bool          `toml:"debug"`
	Tags    []string      `toml:"tags"`
}

// Overrides is a struct layer; its fields are read live on every lookup.
type Overrides struct {
	Port  int  `toml:"port"`
	Debug bool `toml:"debug"`
}

func main() {
	logger := &log.Logger{Handler: text.New(os.Stderr), Level: log.DebugLevel}

	defaults := map[string]any{
		"host":    "localhost",
		"port":    8080,
		"timeout": "30s",
		"debug":   false,
		"tags":    "api,public",
	}
	overrides := &Overrides{Port: 9090}

	view, err := layerconf.NewBuilder[string]().
		WithLogger(logger).
		WithTagName("toml").
		WithLayers(defaults, overrides).
		WithRequired("host", "port").
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build failed: %v\n", err)
		os.Exit(1)
	}

	var cfg ServerConfig
	if err := view.MaterializeInto(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "materialize failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("resolved: %+v\n", cfg)

	// Struct layers are live: mutating the source changes the view.
	overrides.Debug = true
	debug, _ := view.Bool("debug")
	fmt.Printf("debug after mutation: %v\n", debug)

	// A scoped layer is undone by closing its handle.
	h, err := view.Push(map[string]any{"host": "staging.internal"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "push failed: %v\n", err)
		os.Exit(1)
	}
	host, _ := view.String("host")
	fmt.Printf("scoped host: %s\n", host)
	if err := h.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close failed: %v\n", err)
		os.Exit(1)
	}
	host, _ = view.String("host")
	fmt.Printf("restored host: %s\n", host)

	if err := view.Dump(os.Stdout, layerconf.FormatTOML); err != nil {
		fmt.Fprintf(os.Stderr, "dump failed: %v\n", err)
		os.Exit(1)
	}
}
