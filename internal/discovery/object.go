package discovery

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tekknoschtev/astral-surveyor/internal/boundary"
	"github.com/tekknoschtev/astral-surveyor/internal/types"
)

// rareLayerDelay is how long after the primary cue the layered rare sound
// fires. The layer is scheduled best-effort and never blocks discovery.
const rareLayerDelay = 200 * time.Millisecond

// ObjectPipelineConfig wires the collaborators of the object pipeline. The
// Boundary is required; every UI/audio collaborator is optional and a
// failure in any of them never aborts the discovery itself.
type ObjectPipelineConfig struct {
	Namer     Namer
	Audio     AudioPort
	Scheduler Scheduler
	Display   Display
	Logbook   Logbook
	Errors    *boundary.Boundary
	Logger    *slog.Logger
}

// ObjectPipeline turns a freshly-discovered object into a structured,
// rarity-classified DiscoveryEntry and fires the audio/UI side effects.
type ObjectPipeline struct {
	mu      sync.Mutex
	counter int

	namer     Namer
	audio     AudioPort
	scheduler Scheduler
	display   Display
	logbook   Logbook
	errors    *boundary.Boundary
	logger    *slog.Logger
	now       func() time.Time
}

// NewObjectPipeline creates the pipeline.
func NewObjectPipeline(cfg ObjectPipelineConfig) (*ObjectPipeline, error) {
	if cfg.Namer == nil {
		return nil, fmt.Errorf("namer is required")
	}
	if cfg.Errors == nil {
		return nil, fmt.Errorf("error boundary is required")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &ObjectPipeline{
		namer:     cfg.Namer,
		audio:     cfg.Audio,
		scheduler: cfg.Scheduler,
		display:   cfg.Display,
		logbook:   cfg.Logbook,
		errors:    cfg.Errors,
		logger:    cfg.Logger.With("component", "discovery"),
		now:       time.Now,
	}, nil
}

// SetClock overrides the time source for tests.
func (p *ObjectPipeline) SetClock(now func() time.Time) { p.now = now }

// Counter returns the monotonic discovery counter, persisted across
// save/load so IDs stay unique for the lifetime of a universe.
func (p *ObjectPipeline) Counter() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counter
}

// SetCounter restores the counter from a save file. The counter only ever
// resets to zero on an explicit new game.
func (p *ObjectPipeline) SetCounter(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counter = n
}

// Process builds the DiscoveryEntry for an object and fires the side
// effects, each exactly once and in order: discovery display, logbook,
// audio cue (with the delayed rare layer when warranted), diagnostic log.
func (p *ObjectPipeline) Process(obj types.CelestialObject, camera types.Camera) *types.DiscoveryEntry {
	h := obj.Header()
	now := p.now()

	p.mu.Lock()
	p.counter++
	id := fmt.Sprintf("discovery_%d_%d", p.counter, now.UnixMilli())
	p.mu.Unlock()

	coords := types.Coordinates{X: h.X, Y: h.Y}
	rarity := DetermineRarity(obj)
	label := DisplayLabel(obj)

	entry := &types.DiscoveryEntry{
		ID:           id,
		Name:         p.namer.GenerateDisplayName(obj),
		Type:         label,
		ObjectType:   obj.Kind(),
		Coordinates:  coords,
		Timestamp:    now.UnixMilli(),
		Rarity:       rarity,
		ShareableURL: types.ShareableURL(coords),
		Metadata:     buildMetadata(obj, rarity),
	}

	if p.display != nil {
		boundary.SafeExecute(p.errors, "display", "add discovery", func() (struct{}, error) {
			p.display.AddDiscovery(entry.Name, entry.Type)
			return struct{}{}, nil
		}, struct{}{})
	}

	if p.logbook != nil {
		boundary.SafeExecute(p.errors, "logbook", "add discovery", func() (struct{}, error) {
			p.logbook.AddDiscovery(entry.Name, entry.Type)
			return struct{}{}, nil
		}, struct{}{})
	}

	p.playDiscoveryAudio(obj, entry)

	p.logger.Info("discovery recorded",
		"id", entry.ID,
		"name", entry.Name,
		"type", entry.Type,
		"rarity", entry.Rarity,
		"share_url", entry.ShareableURL)

	return entry
}

// playDiscoveryAudio fires the primary type-routed cue and, for rare
// discoveries, schedules the layered rare cue shortly after. Both are
// best-effort; audio failure never reaches the caller.
func (p *ObjectPipeline) playDiscoveryAudio(obj types.CelestialObject, entry *types.DiscoveryEntry) {
	if p.audio == nil {
		return
	}

	variant := Variant(obj)
	boundary.SafeExecute(p.errors, "audio", "play discovery cue", func() (struct{}, error) {
		p.audio.PlayDiscovery(entry.ObjectType, variant)
		return struct{}{}, nil
	}, struct{}{})

	if IsRareDiscovery(entry.ObjectType, entry.Rarity) && p.scheduler != nil {
		audio := p.audio
		errs := p.errors
		p.scheduler.Schedule(rareLayerDelay, func() {
			boundary.SafeExecute(errs, "audio", "play rare layer", func() (struct{}, error) {
				audio.PlayRareLayer()
				return struct{}{}, nil
			}, struct{}{})
		})
	}
}

func buildMetadata(obj types.CelestialObject, rarity types.Rarity) types.DiscoveryMetadata {
	meta := types.DiscoveryMetadata{
		IsNotable: IsRareDiscovery(obj.Kind(), rarity),
		Variant:   Variant(obj),
	}

	if radius, ok := DiscoveryRadius(obj); ok {
		meta.DiscoveryRadius = radius
	}

	switch o := obj.(type) {
	case *types.Star:
		meta.StarType = o.StarType
	case *types.Planet:
		meta.PlanetType = o.PlanetType
	case *types.Nebula:
		meta.NebulaType = o.NebulaType
	case *types.AsteroidField:
		meta.GardenType = o.GardenType
	case *types.BlackHole:
		meta.BlackHoleType = o.BlackHoleType
	}

	return meta
}
