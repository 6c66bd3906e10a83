package logging

import (
	"context"
	"log/slog"
	"sync"
)

// RunContext is the extraction run currently in progress. While a run is
// active every record is tagged with its ID and source file.
type RunContext struct {
	mu     sync.RWMutex
	runID  string
	source string
}

// Start marks runID, reading source, as the active run.
func (c *RunContext) Start(runID, source string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runID = runID
	c.source = source
}

// End clears the active run.
func (c *RunContext) End() {
	c.Start("", "")
}

func (c *RunContext) attrs() []slog.Attr {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.runID == "" {
		return nil
	}
	attrs := []slog.Attr{slog.String("run", c.runID)}
	if c.source != "" {
		attrs = append(attrs, slog.String("source", c.source))
	}
	return attrs
}

// ContextHandler tags records with the active run of a RunContext.
type ContextHandler struct {
	inner slog.Handler
	run   *RunContext
}

// NewContextHandler wraps inner. A nil run leaves records untouched.
func NewContextHandler(inner slog.Handler, run *RunContext) *ContextHandler {
	return &ContextHandler{inner: inner, run: run}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs := h.run.attrs(); len(attrs) > 0 {
		r = r.Clone()
		r.AddAttrs(attrs...)
	}
	return h.inner.Handle(ctx, r)
}

// WithAttrs and WithGroup keep the same RunContext so derived loggers follow
// later Start/End calls.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{inner: h.inner.WithAttrs(attrs), run: h.run}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &ContextHandler{inner: h.inner.WithGroup(name), run: h.run}
}
