// Package logging builds the structured logger and keeps a bounded ring of
// recent entries that can be persisted for post-mortem inspection.
package logging

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/tekknoschtev/astral-surveyor/internal/storage"
)

// ringCapacity is how many recent log records the ring retains.
const ringCapacity = 200

// Entry is one captured log record.
type Entry struct {
	Time    int64  `json:"time"` // epoch milliseconds
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Ring is a slog.Handler that forwards to an inner handler while keeping
// the most recent records in memory.
type Ring struct {
	inner slog.Handler

	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool
}

// New builds a logger writing to w in the requested level and format, with
// a ring capturing recent records. Unknown levels and formats fall back to
// info/text.
func New(w io.Writer, level, format string) (*slog.Logger, *Ring) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var inner slog.Handler
	if format == "json" {
		inner = slog.NewJSONHandler(w, opts)
	} else {
		inner = slog.NewTextHandler(w, opts)
	}

	ring := &Ring{
		inner:   inner,
		entries: make([]Entry, ringCapacity),
	}
	return slog.New(ring), ring
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (r *Ring) Enabled(ctx context.Context, level slog.Level) bool {
	return r.inner.Enabled(ctx, level)
}

func (r *Ring) Handle(ctx context.Context, record slog.Record) error {
	r.mu.Lock()
	r.entries[r.next] = Entry{
		Time:    record.Time.UnixMilli(),
		Level:   record.Level.String(),
		Message: record.Message,
	}
	r.next = (r.next + 1) % len(r.entries)
	if r.next == 0 {
		r.full = true
	}
	r.mu.Unlock()

	return r.inner.Handle(ctx, record)
}

func (r *Ring) WithAttrs(attrs []slog.Attr) slog.Handler {
	// Attrs apply to the inner handler only; the ring is shared so all
	// derived loggers feed the same buffer.
	return &sharedRing{parent: r, inner: r.inner.WithAttrs(attrs)}
}

func (r *Ring) WithGroup(name string) slog.Handler {
	return &sharedRing{parent: r, inner: r.inner.WithGroup(name)}
}

// sharedRing is a derived handler that records into its parent's ring.
type sharedRing struct {
	parent *Ring
	inner  slog.Handler
}

func (s *sharedRing) Enabled(ctx context.Context, level slog.Level) bool {
	return s.inner.Enabled(ctx, level)
}

func (s *sharedRing) Handle(ctx context.Context, record slog.Record) error {
	s.parent.mu.Lock()
	s.parent.entries[s.parent.next] = Entry{
		Time:    record.Time.UnixMilli(),
		Level:   record.Level.String(),
		Message: record.Message,
	}
	s.parent.next = (s.parent.next + 1) % len(s.parent.entries)
	if s.parent.next == 0 {
		s.parent.full = true
	}
	s.parent.mu.Unlock()

	return s.inner.Handle(ctx, record)
}

func (s *sharedRing) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sharedRing{parent: s.parent, inner: s.inner.WithAttrs(attrs)}
}

func (s *sharedRing) WithGroup(name string) slog.Handler {
	return &sharedRing{parent: s.parent, inner: s.inner.WithGroup(name)}
}

// Recent returns the captured records, oldest first.
func (r *Ring) Recent() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.full {
		out := make([]Entry, r.next)
		copy(out, r.entries[:r.next])
		return out
	}

	out := make([]Entry, 0, len(r.entries))
	out = append(out, r.entries[r.next:]...)
	out = append(out, r.entries[:r.next]...)
	return out
}

// Persist writes the captured records to the log buffer key. The payload
// is small by construction, one bounded array.
func (r *Ring) Persist(ctx context.Context, store storage.Store) error {
	return store.Put(ctx, storage.KeyLogBuffer, struct {
		SavedAt int64   `json:"saved_at"`
		Entries []Entry `json:"entries"`
	}{
		SavedAt: time.Now().UnixMilli(),
		Entries: r.Recent(),
	})
}
