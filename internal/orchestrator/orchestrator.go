// Package orchestrator wires the event bus to the services that react to
// gameplay: discoveries trigger throttled saves, settings changes retune
// the audio coordinator and the autosave timer.
package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"github.com/tekknoschtev/astral-surveyor/internal/events"
)

// AudioControl is the slice of the audio coordinator the orchestrator
// adjusts on settings changes.
type AudioControl interface {
	SetVolume(v float64)
	SetMuted(muted bool)
}

// Saver is the slice of the save service the orchestrator drives.
type Saver interface {
	SaveOnDiscovery(ctx context.Context)
	EnableAutoSave(interval time.Duration)
	DisableAutoSave()
}

// Config wires the orchestrator.
type Config struct {
	Dispatcher *events.Dispatcher
	Audio      AudioControl
	Saver      Saver
	Logger     *slog.Logger

	// AutosaveEnabled and AutosaveInterval seed the autosave timer on
	// Start; config change events adjust it afterwards.
	AutosaveEnabled  bool
	AutosaveInterval time.Duration
}

// Orchestrator subscribes the reactive glue and owns the unsubscriptions.
type Orchestrator struct {
	dispatcher *events.Dispatcher
	audio      AudioControl
	saver      Saver
	logger     *slog.Logger

	autosaveEnabled  bool
	autosaveInterval time.Duration

	unsubscribe []func()
}

// New creates the orchestrator. Call Start to attach it to the bus.
func New(cfg Config) *Orchestrator {
	interval := cfg.AutosaveInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Orchestrator{
		dispatcher:       cfg.Dispatcher,
		audio:            cfg.Audio,
		saver:            cfg.Saver,
		logger:           cfg.Logger.With("component", "orchestrator"),
		autosaveEnabled:  cfg.AutosaveEnabled,
		autosaveInterval: interval,
	}
}

// Start subscribes the glue listeners and brings up autosave per the
// seeded settings.
func (o *Orchestrator) Start() {
	if o.saver != nil {
		o.unsubscribe = append(o.unsubscribe,
			o.dispatcher.Subscribe(events.EventDiscoveryObject, o.onDiscovery),
			o.dispatcher.Subscribe(events.EventDiscoveryRegion, o.onDiscovery),
		)
		if o.autosaveEnabled {
			o.saver.EnableAutoSave(o.autosaveInterval)
		}
	}

	o.unsubscribe = append(o.unsubscribe,
		o.dispatcher.Subscribe(events.EventConfigChanged, o.onConfigChanged),
	)
}

// Stop detaches from the bus and stops autosave.
func (o *Orchestrator) Stop() {
	for _, u := range o.unsubscribe {
		u()
	}
	o.unsubscribe = nil

	if o.saver != nil {
		o.saver.DisableAutoSave()
	}
}

func (o *Orchestrator) onDiscovery(e *events.Event) error {
	o.saver.SaveOnDiscovery(context.Background())
	return nil
}

func (o *Orchestrator) onConfigChanged(e *events.Event) error {
	change, ok := e.Data.(events.ConfigChange)
	if !ok {
		return nil
	}

	switch change.Key {
	case "audio.volume":
		if v, ok := change.NewValue.(float64); ok && o.audio != nil {
			o.audio.SetVolume(v)
		}

	case "audio.muted":
		if v, ok := change.NewValue.(bool); ok && o.audio != nil {
			o.audio.SetMuted(v)
		}

	case "autosave.enabled":
		v, ok := change.NewValue.(bool)
		if !ok || o.saver == nil {
			break
		}
		o.autosaveEnabled = v
		if v {
			o.saver.EnableAutoSave(o.autosaveInterval)
		} else {
			o.saver.DisableAutoSave()
		}

	case "autosave.interval":
		v, ok := change.NewValue.(time.Duration)
		if !ok || o.saver == nil {
			break
		}
		o.autosaveInterval = v
		if o.autosaveEnabled {
			// Restart with the new interval.
			o.saver.EnableAutoSave(v)
		}
	}

	o.logger.Debug("applied setting", "key", change.Key)
	return nil
}
