// Package log provides structured logging (slog) for contracts, routed through
// the host debug entry point.
package log

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

// DebugSink receives formatted log lines. ports.Host satisfies it.
type DebugSink interface {
	Debug(msg []byte)
}

// Handler implements slog.Handler by formatting each record as one line and
// handing it to a DebugSink.
type Handler struct {
	sink   DebugSink
	attrs  []slog.Attr
	groups []string
	opts   handlerConfig
}

// HandlerOption configures the Handler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	sink      DebugSink
	level     slog.Level
	addSource bool
}

// defaultHandlerConfig returns the default configuration.
func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		level: slog.LevelInfo,
		sink:  defaultSink(),
	}
}

// WithLevel sets the minimum log level to report.
// Records below this level are dropped before reaching the host.
func WithLevel(level slog.Level) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// WithSource enables reporting of source location (file/line).
func WithSource(enabled bool) HandlerOption {
	return func(c *handlerConfig) {
		c.addSource = enabled
	}
}

// WithSink sets the destination of formatted records, e.g. an sdk Env host.
func WithSink(sink DebugSink) HandlerOption {
	return func(c *handlerConfig) {
		if sink != nil {
			c.sink = sink
		}
	}
}

// NewHandler creates a new Handler with the given options.
func NewHandler(opts ...HandlerOption) *Handler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Handler{sink: cfg.sink, opts: cfg}
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level
}

// Handle formats record and writes it to the sink.
func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	h.sink.Debug([]byte(h.format(record)))
	return nil
}

// WithAttrs returns a new Handler that includes the given attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := h.clone()
	for _, attr := range attrs {
		next.attrs = append(next.attrs, qualify(h.groups, attr))
	}
	return next
}

// WithGroup returns a new Handler that qualifies later attributes with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.groups = append(next.groups, name)
	return next
}

func (h *Handler) clone() *Handler {
	next := *h
	next.attrs = slices.Clip(h.attrs)
	next.groups = slices.Clip(h.groups)
	return &next
}

// format renders record as "LEVEL message key=value ...".
func (h *Handler) format(record slog.Record) string {
	var b strings.Builder
	b.WriteString(record.Level.String())
	b.WriteByte(' ')
	b.WriteString(record.Message)

	if h.opts.addSource {
		if src := record.Source(); src != nil && src.File != "" {
			writeAttr(&b, logAttr{Key: slog.SourceKey, Type: "string", Value: src.File + ":" + strconv.Itoa(src.Line)})
		}
	}
	for _, attr := range h.attrs {
		writeAttr(&b, toLogAttr(attr))
	}
	record.Attrs(func(attr slog.Attr) bool {
		writeAttr(&b, toLogAttr(qualify(h.groups, attr)))
		return true
	})
	return b.String()
}

func qualify(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) == 0 {
		return attr
	}
	attr.Key = strings.Join(groups, ".") + "." + attr.Key
	return attr
}
