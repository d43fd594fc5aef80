// Package logbook keeps the in-memory discovery history and notification
// feed shown by the CLI.
package logbook

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tekknoschtev/astral-surveyor/internal/types"
)

// maxNotifications bounds the notification feed; older lines roll off.
const maxNotifications = 50

// Logbook is the ordered discovery history plus a bounded notification
// feed. It implements the logbook collaborator interfaces of both the
// discovery pipelines and the save service.
type Logbook struct {
	mu            sync.Mutex
	entries       []types.LogbookEntry
	notifications []string
	now           func() time.Time
	logger        *slog.Logger
}

// New creates an empty logbook.
func New(logger *slog.Logger) *Logbook {
	return &Logbook{
		now:    time.Now,
		logger: logger.With("component", "logbook"),
	}
}

// SetClock overrides the time source for tests.
func (l *Logbook) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// AddDiscovery appends a discovery to the history.
func (l *Logbook) AddDiscovery(name, typeLabel string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, types.LogbookEntry{
		Name:      name,
		Type:      typeLabel,
		Timestamp: l.now().UnixMilli(),
	})
}

// AddNotification appends a transient notification line, dropping the
// oldest when the feed is full.
func (l *Logbook) AddNotification(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.notifications = append(l.notifications, message)
	if len(l.notifications) > maxNotifications {
		l.notifications = l.notifications[len(l.notifications)-maxNotifications:]
	}
}

// Discoveries returns a copy of the history in insertion order.
func (l *Logbook) Discoveries() []types.LogbookEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]types.LogbookEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Notifications returns a copy of the notification feed, oldest first.
func (l *Logbook) Notifications() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, len(l.notifications))
	copy(out, l.notifications)
	return out
}

// ClearHistory empties the discovery history. Notifications survive; they
// are transient UI state, not part of the record.
func (l *Logbook) ClearHistory() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// Restore replaces the history wholesale from a save file.
func (l *Logbook) Restore(entries []types.LogbookEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = make([]types.LogbookEntry, len(entries))
	copy(l.entries, entries)
	l.logger.Info("logbook restored", "entries", len(entries))
}

// Count returns the number of recorded discoveries.
func (l *Logbook) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
