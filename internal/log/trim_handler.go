package log

import (
	"context"
	"io"
	"log/slog"
	"unicode/utf8"
)

// DefaultMaxAttrLen is the default rune limit for string attributes.
// Crawl logging routinely attaches page titles, descriptions and URLs;
// 256 runes keeps lines readable while preserving enough context to
// identify the page.
const DefaultMaxAttrLen = 256

// Ellipsis is appended to truncated attribute values.
const Ellipsis = "…"

// TrimHandler wraps an slog.Handler and truncates oversized string
// attributes before they reach the underlying handler. Extraction code
// logs markup-derived values, and a single unbounded description or raw
// HTML snippet can make log lines unusable.
//
// The wrapper shape keeps the handler compatible with any underlying
// slog handler (text, JSON) and with the standard slog APIs.
type TrimHandler struct {
	// handler is the underlying slog handler that receives trimmed records.
	handler slog.Handler

	// maxLen is the rune limit applied to string attribute values.
	maxLen int
}

// Option configures a TrimHandler.
type Option func(*TrimHandler)

// WithMaxAttrLen sets the rune limit for string attribute values.
// Values at or under the limit pass through unchanged.
func WithMaxAttrLen(n int) Option {
	return func(h *TrimHandler) {
		h.maxLen = n
	}
}

// NewTrimHandler creates a TrimHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewTrimHandler(handler slog.Handler, opts ...Option) *TrimHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}

	h := &TrimHandler{
		handler: handler,
		maxLen:  DefaultMaxAttrLen,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *TrimHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle trims the record's attributes and passes it to the underlying handler.
func (h *TrimHandler) Handle(ctx context.Context, r slog.Record) error {
	trimmed := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		trimmed.AddAttrs(h.trimAttr(a))
		return true
	})

	return h.handler.Handle(ctx, trimmed)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are trimmed before being added.
func (h *TrimHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	trimmedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		trimmedAttrs[i] = h.trimAttr(a)
	}
	return &TrimHandler{handler: h.handler.WithAttrs(trimmedAttrs), maxLen: h.maxLen}
}

// WithGroup returns a new handler with the given group name.
func (h *TrimHandler) WithGroup(name string) slog.Handler {
	return &TrimHandler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

// trimAttr trims a single attribute, recursively handling groups.
func (h *TrimHandler) trimAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		trimmedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			trimmedAttrs[i] = h.trimAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(trimmedAttrs...)}
	}

	if a.Value.Kind() == slog.KindString {
		v := a.Value.String()
		if utf8.RuneCountInString(v) > h.maxLen {
			return slog.String(a.Key, truncateRunes(v, h.maxLen)+Ellipsis)
		}
	}

	return a
}

// truncateRunes cuts s after n runes without splitting a multi-byte
// sequence. Russian page content is multi-byte throughout, so a byte
// slice would corrupt the tail.
func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// NewLogger creates a *slog.Logger writing text records to w through a
// TrimHandler. Verbose switches the level from Info to Debug.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewTrimHandler(textHandler))
}
