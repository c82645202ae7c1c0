// FILE: lixenwraith/layerconf/cmd/layerctl/main.go

// Command layerctl assembles a layer stack from command-line assignments and
// prints the resolved view. It is a playground for the layerconf package.
//
//	layerctl show --layer host=localhost,port=8080 --layer port=9090 --format toml
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/lixenwraith/layerconf"
)

func main() {
	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "layerctl: %v\n", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "layerctl",
		Usage: "inspect layered configuration",
		// each --layer value is one layer; commas separate its assignments
		DisableSliceFlagSeparator: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug, info, warn, error)",
				Value: "error",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "push layers in order and print the resolved view",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "layer",
						Aliases: []string{"l"},
						Usage:   "comma separated key=value assignments, repeat for more layers",
					},
					&cli.IntFlag{
						Name:  "pop",
						Usage: "number of layers to pop after pushing",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "output format (text, toml, yaml)",
						Value: string(layerconf.FormatText),
					},
					&cli.StringFlag{
						Name:  "get",
						Usage: "print only the resolved value of this key",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return show(out, cmd)
				},
			},
		},
	}
}

func show(out io.Writer, cmd *cli.Command) error {
	logger, err := newLogger(cmd.String("log-level"), os.Stderr)
	if err != nil {
		return err
	}
	format, err := layerconf.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	b := layerconf.NewBuilder[string]().WithLogger(logger)
	for _, assignments := range cmd.StringSlice("layer") {
		layer, err := layerconf.ParseAssignments(assignments)
		if err != nil {
			return err
		}
		b.WithLayers(layer)
	}
	view, err := b.Build()
	if err != nil {
		return err
	}

	for range cmd.Int("pop") {
		if _, err := view.Pop(); err != nil {
			return err
		}
	}

	if key := cmd.String("get"); key != "" {
		value, err := view.String(key)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, value)
		return err
	}

	logger.WithFields(log.Fields{"layers": view.Depth(), "keys": view.Len()}).Debug("dumping view")
	return view.Dump(out, format)
}
