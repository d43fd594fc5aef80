package discovery

import (
	"time"

	"github.com/tekknoschtev/astral-surveyor/internal/types"
)

// Namer resolves display names; pure function of the object.
type Namer interface {
	GenerateDisplayName(obj types.CelestialObject) string
}

// AudioPort is the slice of the audio coordinator the discovery pipeline
// needs. A failing or absent implementation never aborts discovery.
type AudioPort interface {
	// PlayDiscovery plays the type-routed discovery cue.
	PlayDiscovery(objectType types.ObjectType, variant string)
	// PlayRareLayer plays the layered rare-discovery cue.
	PlayRareLayer()
	// PlayRegionDiscovery plays the region cue (not type-specific).
	PlayRegionDiscovery()
}

// Scheduler queues best-effort delayed tasks. The pipeline uses it for the
// layered rare-discovery cue so tests can assert scheduling without waiting
// on a real timer.
type Scheduler interface {
	Schedule(delay time.Duration, task func())
}

// Display is the discovery-banner UI sink.
type Display interface {
	AddDiscovery(name, typeLabel string)
}

// Logbook is the persistent discovery-history UI collaborator.
type Logbook interface {
	AddDiscovery(name, typeLabel string)
	AddNotification(message string)
	ClearHistory()
	Discoveries() []types.LogbookEntry
}

// Notifier shows transient one-line notifications (used by black hole
// warnings).
type Notifier interface {
	AddNotification(message string)
}

// ChunkMarker persists region-discovery state at the chunk layer.
type ChunkMarker interface {
	MarkRegionDiscovered(regionType, name string, influence float64)
}
