package logbook

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tekknoschtev/astral-surveyor/internal/types"
)

func newTestLogbook() *Logbook {
	l := New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	l.SetClock(func() time.Time { return time.UnixMilli(12345) })
	return l
}

func TestAddDiscovery(t *testing.T) {
	l := newTestLogbook()

	l.AddDiscovery("Named Star", "G-Type Star")
	l.AddDiscovery("Named Moon", "Moon")

	got := l.Discoveries()
	assert.Equal(t, []types.LogbookEntry{
		{Name: "Named Star", Type: "G-Type Star", Timestamp: 12345},
		{Name: "Named Moon", Type: "Moon", Timestamp: 12345},
	}, got)
	assert.Equal(t, 2, l.Count())
}

func TestDiscoveriesReturnsCopy(t *testing.T) {
	l := newTestLogbook()
	l.AddDiscovery("A", "Star")

	got := l.Discoveries()
	got[0].Name = "mutated"

	assert.Equal(t, "A", l.Discoveries()[0].Name)
}

func TestNotificationFeedBounded(t *testing.T) {
	l := newTestLogbook()

	for i := 0; i < maxNotifications+10; i++ {
		l.AddNotification(fmt.Sprintf("note %d", i))
	}

	got := l.Notifications()
	assert.Len(t, got, maxNotifications)
	assert.Equal(t, "note 10", got[0], "oldest lines roll off")
	assert.Equal(t, fmt.Sprintf("note %d", maxNotifications+9), got[len(got)-1])
}

func TestClearHistoryKeepsNotifications(t *testing.T) {
	l := newTestLogbook()
	l.AddDiscovery("A", "Star")
	l.AddNotification("Entering The Void")

	l.ClearHistory()

	assert.Equal(t, 0, l.Count())
	assert.Len(t, l.Notifications(), 1)
}

func TestRestoreReplacesHistory(t *testing.T) {
	l := newTestLogbook()
	l.AddDiscovery("Old", "Star")

	l.Restore([]types.LogbookEntry{
		{Name: "Saved A", Type: "Moon", Timestamp: 1},
		{Name: "Saved B", Type: "Comet", Timestamp: 2},
	})

	got := l.Discoveries()
	assert.Len(t, got, 2)
	assert.Equal(t, "Saved A", got[0].Name)
}
