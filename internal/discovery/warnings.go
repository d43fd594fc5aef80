package discovery

import (
	"fmt"
	"sync"
	"time"
)

// warningCooldown gates repeated warnings for the same black hole at the
// same level. An earlier implementation used 2 seconds; 5 seconds is the
// constant this codebase standardizes on, and the 2s variant is superseded.
const warningCooldown = 5 * time.Second

type warningState struct {
	shownAt time.Time
	level   int
}

// BlackHoleWarnings emits proximity warnings near black holes, keyed per
// black hole with level hysteresis: a warning repeats only when its level
// changes or the cooldown window has elapsed.
type BlackHoleWarnings struct {
	mu       sync.Mutex
	warnings map[string]warningState

	notifier Notifier
	now      func() time.Time
}

// NewBlackHoleWarnings creates the warning emitter. The notifier receives
// exactly one line per accepted warning.
func NewBlackHoleWarnings(notifier Notifier) *BlackHoleWarnings {
	return &BlackHoleWarnings{
		warnings: make(map[string]warningState),
		notifier: notifier,
		now:      time.Now,
	}
}

// SetClock overrides the time source for tests.
func (w *BlackHoleWarnings) SetClock(now func() time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.now = now
}

// Display shows a proximity warning for a black hole. The warning is
// suppressed when one with the same level was already shown for this ID
// inside the cooldown window; a level change always shows immediately.
// Returns whether a notification was emitted.
func (w *BlackHoleWarnings) Display(message string, warningLevel int, pastEventHorizon bool, blackHoleID string) bool {
	w.mu.Lock()
	now := w.now()

	prev, seen := w.warnings[blackHoleID]
	if seen && prev.level == warningLevel && now.Sub(prev.shownAt) < warningCooldown {
		w.mu.Unlock()
		return false
	}

	w.warnings[blackHoleID] = warningState{shownAt: now, level: warningLevel}
	w.mu.Unlock()

	line := formatWarning(message, warningLevel, pastEventHorizon)
	if w.notifier != nil {
		w.notifier.AddNotification(line)
	}
	return true
}

// formatWarning applies the urgency tier to the message text.
func formatWarning(message string, warningLevel int, pastEventHorizon bool) string {
	switch {
	case pastEventHorizon:
		return fmt.Sprintf("⚠ CRITICAL: %s", message)
	case warningLevel >= 2:
		return fmt.Sprintf("DANGER: %s", message)
	default:
		return fmt.Sprintf("CAUTION: %s", message)
	}
}

// Clear resets all per-black-hole warning state. Called on new game and
// universe reset.
func (w *BlackHoleWarnings) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.warnings = make(map[string]warningState)
}
