package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/tekknoschtev/astral-surveyor/internal/events"
)

// Service holds the live settings and broadcasts every change on the event
// bus, so the audio coordinator and autosave timer pick up changes without
// polling. Each successful Set persists the file immediately.
type Service struct {
	mu       sync.Mutex
	settings *Settings
	path     string

	dispatcher *events.Dispatcher
	logger     *slog.Logger
}

// NewService loads the settings file (or defaults) and wraps it.
func NewService(path string, dispatcher *events.Dispatcher, logger *slog.Logger) (*Service, error) {
	settings, err := LoadSettings(path)
	if err != nil {
		return nil, err
	}

	return &Service{
		settings:   settings,
		path:       path,
		dispatcher: dispatcher,
		logger:     logger.With("component", "config"),
	}, nil
}

// Settings returns a copy of the current settings.
func (s *Service) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.settings
}

// Set updates one setting by dotted key from its string representation,
// validates, persists, and emits a config change event. Unknown keys and
// unparseable values are errors and leave the settings untouched.
func (s *Service) Set(key, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := *s.settings
	var oldValue, newValue any

	switch key {
	case "audio.volume":
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid volume %q: %w", raw, err)
		}
		oldValue, newValue = updated.Audio.Volume, v
		updated.Audio.Volume = v

	case "audio.muted":
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid mute flag %q: %w", raw, err)
		}
		oldValue, newValue = updated.Audio.Muted, v
		updated.Audio.Muted = v

	case "autosave.enabled":
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid autosave flag %q: %w", raw, err)
		}
		oldValue, newValue = updated.Autosave.Enabled, v
		updated.Autosave.Enabled = v

	case "autosave.interval":
		v, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid autosave interval %q: %w", raw, err)
		}
		oldValue, newValue = updated.Autosave.Interval, v
		updated.Autosave.Interval = v

	case "log.level":
		oldValue, newValue = updated.Log.Level, raw
		updated.Log.Level = raw

	case "log.format":
		oldValue, newValue = updated.Log.Format, raw
		updated.Log.Format = raw

	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	if err := updated.Validate(); err != nil {
		return err
	}

	if err := SaveSettings(s.path, &updated); err != nil {
		return err
	}
	s.settings = &updated

	s.logger.Info("setting changed", "key", key, "value", newValue)
	if s.dispatcher != nil {
		s.dispatcher.Emit(events.EventConfigChanged, events.ConfigChange{
			Key:      key,
			OldValue: oldValue,
			NewValue: newValue,
		})
	}
	return nil
}

// Keys lists the settable keys for shell completion and help text.
func Keys() []string {
	return []string{
		"audio.volume",
		"audio.muted",
		"autosave.enabled",
		"autosave.interval",
		"log.level",
		"log.format",
	}
}
