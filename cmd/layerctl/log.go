// FILE: lixenwraith/layerconf/cmd/layerctl/log.go
package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/apex/log"
)

// newLogger returns an apex logger writing single-line entries to w.
func newLogger(level string, w io.Writer) (*log.Logger, error) {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return &log.Logger{Handler: &lineHandler{w: w}, Level: lvl}, nil
}

// lineHandler formats log entries as "timestamp L message key=value ..."
type lineHandler struct {
	w io.Writer
}

// HandleLog implements the log.Handler interface
func (h *lineHandler) HandleLog(e *log.Entry) error {
	level := "?"
	switch e.Level {
	case log.DebugLevel:
		level = "D"
	case log.InfoLevel:
		level = "I"
	case log.WarnLevel:
		level = "W"
	case log.ErrorLevel:
		level = "E"
	case log.FatalLevel:
		level = "F"
	}

	var b strings.Builder
	b.WriteString(time.Now().Format("2006-01-02 15:04:05"))
	b.WriteString(" " + level + " " + e.Message)
	for _, name := range e.Fields.Names() {
		b.WriteString(fmt.Sprintf(" %s=%v", name, e.Fields.Get(name)))
	}
	b.WriteString("\n")

	_, err := io.WriteString(h.w, b.String())
	return err
}
