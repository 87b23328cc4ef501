// Package log provides logging helpers built on log/slog.
//
// TrimHandler is an slog.Handler wrapper that truncates oversized string
// attributes. The crawler attaches markup-derived values (titles,
// descriptions, URLs) to its records, and unbounded values would make the
// log stream unusable. The wrapper works with any underlying handler.
package log
