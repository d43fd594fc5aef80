package world

import (
	"math"
	"sync"

	"github.com/tekknoschtev/astral-surveyor/internal/types"
)

type chunkKey struct {
	cx, cy int
}

// ChunkManager owns chunk generation, the authoritative discovered-objects
// map, and region-discovery marks. Nothing else mutates these maps; the
// save/load service goes through the snapshot/restore methods.
type ChunkManager struct {
	mu         sync.Mutex
	seeds      *SeedRegistry
	cache      map[chunkKey][]types.CelestialObject
	discovered map[string]map[string]any
	regions    map[string]RegionMark
}

// RegionMark records a discovered region at the chunk layer.
type RegionMark struct {
	Name      string
	Influence float64
}

// NewChunkManager creates a manager bound to a seed registry.
func NewChunkManager(seeds *SeedRegistry) *ChunkManager {
	return &ChunkManager{
		seeds:      seeds,
		cache:      make(map[chunkKey][]types.CelestialObject),
		discovered: make(map[string]map[string]any),
		regions:    make(map[string]RegionMark),
	}
}

// ChunkCoords returns the chunk containing a world position.
func ChunkCoords(x, y float64) (int, int) {
	return int(math.Floor(x / ChunkSize)), int(math.Floor(y / ChunkSize))
}

// ObjectsInChunk returns the chunk's objects, generating and caching them
// on first access. Discovery flags from the discovered-objects map are
// applied before returning.
func (m *ChunkManager) ObjectsInChunk(cx, cy int) []types.CelestialObject {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := chunkKey{cx, cy}
	objects, ok := m.cache[key]
	if !ok {
		objects = GenerateChunk(m.seeds.Seed(), cx, cy)
		m.cache[key] = objects
	}

	for _, obj := range objects {
		h := obj.Header()
		if _, found := m.discovered[h.ID]; found {
			h.Discovered = true
		}
	}
	return objects
}

// ObjectsNear returns all objects in chunks overlapping the square of the
// given radius around a position.
func (m *ChunkManager) ObjectsNear(x, y, radius float64) []types.CelestialObject {
	minX, minY := ChunkCoords(x-radius, y-radius)
	maxX, maxY := ChunkCoords(x+radius, y+radius)

	var out []types.CelestialObject
	for cx := minX; cx <= maxX; cx++ {
		for cy := minY; cy <= maxY; cy++ {
			out = append(out, m.ObjectsInChunk(cx, cy)...)
		}
	}
	return out
}

// MarkObjectDiscovered records a chunk-level discovery blob for an object
// and flips the live object's flag if it is loaded.
func (m *ChunkManager) MarkObjectDiscovered(objectID string, data map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if data == nil {
		data = map[string]any{}
	}
	m.discovered[objectID] = data

	for _, objects := range m.cache {
		for _, obj := range objects {
			if obj.Header().ID == objectID {
				obj.Header().Discovered = true
			}
		}
	}
}

// IsObjectDiscovered reports whether an object has a chunk-level discovery
// record.
func (m *ChunkManager) IsObjectDiscovered(objectID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.discovered[objectID]
	return ok
}

// MarkRegionDiscovered records a region discovery at the chunk layer.
func (m *ChunkManager) MarkRegionDiscovered(regionType, name string, influence float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.regions[regionType] = RegionMark{Name: name, Influence: influence}
}

// DiscoveredObjects snapshots the discovered-objects map for saving.
func (m *ChunkManager) DiscoveredObjects() []types.DiscoveredObject {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]types.DiscoveredObject, 0, len(m.discovered))
	for id, data := range m.discovered {
		out = append(out, types.DiscoveredObject{ObjectID: id, Data: data})
	}
	return out
}

// RestoreDiscoveredObjects replaces the discovered-objects map wholesale
// (clear then repopulate) and resets cached object flags to match.
func (m *ChunkManager) RestoreDiscoveredObjects(records []types.DiscoveredObject) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.discovered = make(map[string]map[string]any, len(records))
	for _, rec := range records {
		data := rec.Data
		if data == nil {
			data = map[string]any{}
		}
		m.discovered[rec.ObjectID] = data
	}

	for _, objects := range m.cache {
		for _, obj := range objects {
			h := obj.Header()
			_, found := m.discovered[h.ID]
			h.Discovered = found
		}
	}
}

// ClearDiscovered wipes all discovery state, including cached flags and
// region marks. Used on universe reset.
func (m *ChunkManager) ClearDiscovered() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.discovered = make(map[string]map[string]any)
	m.regions = make(map[string]RegionMark)
	for _, objects := range m.cache {
		for _, obj := range objects {
			obj.Header().Discovered = false
		}
	}
}

// InvalidateCache drops generated chunks. Called after a seed change so the
// next access regenerates from the new universe.
func (m *ChunkManager) InvalidateCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache = make(map[chunkKey][]types.CelestialObject)
}

// DiscoveredCount returns the number of chunk-level discovery records.
func (m *ChunkManager) DiscoveredCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.discovered)
}
