package logger

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag" // The slog attribute key used for filtering tags

// filteringHandler wraps a base slog.Handler to add tag/package/file filtering.
type filteringHandler struct {
	base    slog.Handler
	filters *filters
	tag     string // tag bound through WithAttrs, if any
}

func newFilteringHandler(base slog.Handler, f *filters) *filteringHandler {
	return &filteringHandler{base: base, filters: f}
}

// Enabled checks if the level is enabled by the base handler.
func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func contains(set map[string]struct{}, key string) bool {
	if set == nil {
		return false
	}
	_, ok := set[key]
	return ok
}

// allowed applies the enable/disable pair: disabled wins, then an enabled list
// (if present) must contain the key.
func allowed(enabled, disabled map[string]struct{}, key string) bool {
	if contains(disabled, key) {
		return false
	}
	if enabled != nil && !contains(enabled, key) {
		return false
	}
	return true
}

// sourceOf resolves the package directory and file name of the record's caller.
func sourceOf(r slog.Record) (pkg, file string, ok bool) {
	if r.PC == 0 {
		return "", "", false
	}
	frames := runtime.CallersFrames([]uintptr{r.PC})
	frame, _ := frames.Next()
	if frame.File == "" {
		return "", "", false
	}
	return strings.ToLower(filepath.Base(filepath.Dir(frame.File))), strings.ToLower(filepath.Base(frame.File)), true
}

// Handle applies filtering logic before passing the record to the base handler.
func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.filters == nil || h.filters.empty() {
		return h.base.Handle(ctx, r)
	}

	if pkg, file, ok := sourceOf(r); ok {
		if !allowed(h.filters.enabledPackages, h.filters.disabledPackages, pkg) {
			return nil
		}
		if !allowed(h.filters.enabledFiles, h.filters.disabledFiles, file) {
			return nil
		}
	}

	tag := h.tag
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = strings.ToLower(a.Value.String())
			return false
		}
		return true
	})

	if tag == "" {
		// Asking for specific tags hides untagged messages.
		if h.filters.enabledTags != nil {
			return nil
		}
	} else if !allowed(h.filters.enabledTags, h.filters.disabledTags, tag) {
		return nil
	}

	return h.base.Handle(ctx, r)
}

// WithAttrs returns a new handler with attributes added.
func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &filteringHandler{base: h.base.WithAttrs(attrs), filters: h.filters, tag: h.tag}
	for _, a := range attrs {
		if a.Key == tagKey {
			next.tag = strings.ToLower(a.Value.String())
		}
	}
	return next
}

// WithGroup returns a new handler with a group added.
func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return &filteringHandler{base: h.base.WithGroup(name), filters: h.filters, tag: h.tag}
}
