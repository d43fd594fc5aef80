package discovery

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/tekknoschtev/astral-surveyor/internal/events"
	"github.com/tekknoschtev/astral-surveyor/internal/types"
)

// ObjectMarker records chunk-level discovery state for objects. Optional;
// wired to the chunk manager in the full game.
type ObjectMarker interface {
	MarkObjectDiscovered(objectID string, data map[string]any)
}

// ServiceConfig wires the discovery façade.
type ServiceConfig struct {
	Objects    *ObjectPipeline
	Regions    *RegionPipeline
	Warnings   *BlackHoleWarnings
	Marker     ObjectMarker
	Dispatcher *events.Dispatcher
	Logger     *slog.Logger
}

// Service owns the authoritative discovery map and orchestrates the object
// and region pipelines, black hole warnings, and the export/import round
// trip. The map is keyed by entry ID and never touched by other components.
type Service struct {
	mu      sync.Mutex
	entries map[string]*types.DiscoveryEntry

	objects    *ObjectPipeline
	regions    *RegionPipeline
	warnings   *BlackHoleWarnings
	marker     ObjectMarker
	dispatcher *events.Dispatcher
	logger     *slog.Logger
}

// NewService creates the discovery façade.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Objects == nil {
		return nil, fmt.Errorf("object pipeline is required")
	}
	if cfg.Regions == nil {
		return nil, fmt.Errorf("region pipeline is required")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &Service{
		entries:    make(map[string]*types.DiscoveryEntry),
		objects:    cfg.Objects,
		regions:    cfg.Regions,
		warnings:   cfg.Warnings,
		marker:     cfg.Marker,
		dispatcher: cfg.Dispatcher,
		logger:     cfg.Logger.With("component", "discovery"),
	}, nil
}

// ProcessObjectDiscovery records the discovery of an object: flips the
// object's discovered flag (before any side effects, so a second check in
// the same tick is a no-op), runs the pipeline, registers the entry, marks
// the chunk layer, and publishes the discovery event.
func (s *Service) ProcessObjectDiscovery(obj types.CelestialObject, camera types.Camera) *types.DiscoveryEntry {
	obj.Header().Discovered = true

	entry := s.objects.Process(obj, camera)

	s.mu.Lock()
	s.entries[entry.ID] = entry
	s.mu.Unlock()

	if s.marker != nil {
		s.marker.MarkObjectDiscovered(obj.Header().ID, map[string]any{
			"entry_id":  entry.ID,
			"type":      string(entry.ObjectType),
			"timestamp": entry.Timestamp,
		})
	}

	if s.dispatcher != nil {
		s.dispatcher.Emit(events.EventDiscoveryObject, entry)
	}
	return entry
}

// ProcessRegionDiscovery records a region discovery at most once per
// region type. A second call for the same type is a no-op returning the
// existing entry; deduplication lives here, one layer above the pipeline.
func (s *Service) ProcessRegionDiscovery(regionType, regionName string, camera types.Camera, influence float64) *types.DiscoveryEntry {
	id := RegionEntryID(regionType)

	s.mu.Lock()
	if existing, ok := s.entries[id]; ok {
		s.mu.Unlock()
		return existing
	}
	s.mu.Unlock()

	entry := s.regions.Process(regionType, regionName, camera, influence)

	s.mu.Lock()
	// Re-check under lock; the pipeline runs outside it.
	if existing, ok := s.entries[id]; ok {
		s.mu.Unlock()
		return existing
	}
	s.entries[id] = entry
	s.mu.Unlock()

	if s.dispatcher != nil {
		s.dispatcher.Emit(events.EventDiscoveryRegion, entry)
	}
	return entry
}

// Warnings exposes the black hole warning emitter.
func (s *Service) Warnings() *BlackHoleWarnings { return s.warnings }

// Get returns an entry by ID.
func (s *Service) Get(id string) (*types.DiscoveryEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	return e, ok
}

// Entries returns all entries, unordered. Callers sort via
// FilterDiscoveries.
func (s *Service) Entries() []*types.DiscoveryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*types.DiscoveryEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	return out
}

// Count returns the number of recorded discoveries.
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// SetNotes updates the user-editable notes of an entry. Notes are the only
// mutable field of a recorded discovery.
func (s *Service) SetNotes(id, notes string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return false
	}
	e.Notes = notes
	return true
}

// Export snapshots the full discovery state for saving. Import of an
// unmodified export restores an identical map and counter.
func (s *Service) Export() *types.DiscoveryExport {
	s.mu.Lock()
	defer s.mu.Unlock()

	export := &types.DiscoveryExport{
		Discoveries: make([]types.DiscoveryEntry, 0, len(s.entries)),
		IDCounter:   s.objects.Counter(),
	}
	for _, e := range s.entries {
		export.Discoveries = append(export.Discoveries, *e)
	}
	return export
}

// Import replaces the discovery state wholesale: the map is cleared first,
// then repopulated from the export; there is no merge. The post-import map
// size equals the imported slice length exactly.
func (s *Service) Import(data *types.DiscoveryExport) {
	if data == nil {
		return
	}

	s.mu.Lock()
	s.entries = make(map[string]*types.DiscoveryEntry, len(data.Discoveries))
	for i := range data.Discoveries {
		e := data.Discoveries[i]
		s.entries[e.ID] = &e
	}
	s.mu.Unlock()

	s.objects.SetCounter(data.IDCounter)
	s.logger.Info("discovery state imported", "entries", len(data.Discoveries), "counter", data.IDCounter)
}

// Clear is the canonical new-universe reset: it empties the map, resets
// the ID counter to zero, and clears black hole warning state.
func (s *Service) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]*types.DiscoveryEntry)
	s.mu.Unlock()

	s.objects.SetCounter(0)
	if s.warnings != nil {
		s.warnings.Clear()
	}
	s.logger.Info("discovery state cleared")
}
