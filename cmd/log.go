package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/golang-cz/devslog"
)

func newLogger(cfg Config, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", cfg.LogLevel)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch cfg.LogFormat {
	case "dev":
		return slog.New(devslog.NewHandler(w, &devslog.Options{HandlerOptions: opts})), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("invalid log format %q: must be one of dev, text, json", cfg.LogFormat)
}
