// Package logging builds the slog logger shared by the CLI and the editor.
//
// Values can be set directly or through the environment:
//   - FORMBUILDER_LOG_LEVEL=debug|info|warn|error
//   - FORMBUILDER_LOG_FORMAT=console|json
//   - FORMBUILDER_LOG_FILE=<path> (adds a rotating JSON file sink)
//   - FORMBUILDER_LOG_SOURCE=true|false
package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Environment variables read by FromEnv.
const (
	EnvLevel  = "FORMBUILDER_LOG_LEVEL"
	EnvFormat = "FORMBUILDER_LOG_FORMAT"
	EnvFile   = "FORMBUILDER_LOG_FILE"
	EnvSource = "FORMBUILDER_LOG_SOURCE"
)

// Options controls logger construction. Output defaults to stderr.
type Options struct {
	Level     string
	Format    string // "console" or "json"
	AddSource bool
	File      string
	Output    io.Writer
}

// FromEnv builds Options from the environment.
func FromEnv() Options {
	return Options{
		Level:     getenv(EnvLevel, "info"),
		Format:    getenv(EnvFormat, "console"),
		AddSource: ParseBool(os.Getenv(EnvSource)),
		File:      strings.TrimSpace(os.Getenv(EnvFile)),
	}
}

// New returns a logger writing to the console sink and, when File is set, to
// a size-rotated file. The returned close function flushes the file sink.
func New(opts Options) (*slog.Logger, func() error) {
	level := ParseLevel(opts.Level)
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: level, AddSource: opts.AddSource}

	var console slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		console = slog.NewJSONHandler(out, handlerOpts)
	} else {
		console = slog.NewTextHandler(out, handlerOpts)
	}

	closer := func() error { return nil }
	handler := console
	if file := strings.TrimSpace(opts.File); file != "" {
		rotating := &lj.Logger{Filename: file, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
		handler = fanout{console, slog.NewJSONHandler(rotating, handlerOpts)}
		closer = rotating.Close
	}

	return slog.New(handler).With(slog.String("app", "formbuilder")), closer
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WithComponent annotates l with a component name.
func WithComponent(l *slog.Logger, name string) *slog.Logger {
	if l == nil {
		l = Discard()
	}
	return l.With(slog.String("component", name))
}

// ParseLevel converts a level name; unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseBool accepts 1/true/on/yes in any case.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// fanout sends each record to every handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (f fanout) WithGroup(name string) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithGroup(name)
	}
	return next
}
