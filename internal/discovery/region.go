package discovery

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tekknoschtev/astral-surveyor/internal/boundary"
	"github.com/tekknoschtev/astral-surveyor/internal/types"
)

// notableInfluence is the region influence above which an entry is flagged
// notable.
const notableInfluence = 0.8

// RegionPipelineConfig wires the collaborators of the region pipeline.
type RegionPipelineConfig struct {
	Audio   AudioPort
	Logbook Logbook
	Chunks  ChunkMarker
	Errors  *boundary.Boundary
	Logger  *slog.Logger
}

// RegionPipeline builds DiscoveryEntry records for discovered cosmic
// regions. Region entry IDs are deterministic per region type; the façade
// above this pipeline is responsible for calling it at most once per type.
type RegionPipeline struct {
	audio   AudioPort
	logbook Logbook
	chunks  ChunkMarker
	errors  *boundary.Boundary
	logger  *slog.Logger
	now     func() time.Time
}

// NewRegionPipeline creates the pipeline.
func NewRegionPipeline(cfg RegionPipelineConfig) (*RegionPipeline, error) {
	if cfg.Errors == nil {
		return nil, fmt.Errorf("error boundary is required")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &RegionPipeline{
		audio:   cfg.Audio,
		logbook: cfg.Logbook,
		chunks:  cfg.Chunks,
		errors:  cfg.Errors,
		logger:  cfg.Logger.With("component", "discovery"),
		now:     time.Now,
	}, nil
}

// SetClock overrides the time source for tests.
func (p *RegionPipeline) SetClock(now func() time.Time) { p.now = now }

// RegionEntryID returns the deterministic entry ID for a region type.
// Regions are singletons: one entry per type, ever.
func RegionEntryID(regionType string) string {
	return "region_" + regionType
}

// Process builds the entry for a discovered region and fires the side
// effects: chunk-layer persistence, logbook notification, region audio cue.
func (p *RegionPipeline) Process(regionType, regionName string, camera types.Camera, influence float64) *types.DiscoveryEntry {
	coords := types.Coordinates{X: camera.X(), Y: camera.Y()}

	entry := &types.DiscoveryEntry{
		ID:           RegionEntryID(regionType),
		Name:         regionName,
		Type:         "Cosmic Region",
		ObjectType:   types.ObjectRegion,
		Coordinates:  coords,
		Timestamp:    p.now().UnixMilli(),
		Rarity:       types.RarityUncommon,
		ShareableURL: types.ShareableURL(coords),
		Metadata: types.DiscoveryMetadata{
			RegionInfluence: influence,
			IsNotable:       influence > notableInfluence,
		},
	}

	if p.chunks != nil {
		boundary.SafeExecute(p.errors, "chunks", "mark region discovered", func() (struct{}, error) {
			p.chunks.MarkRegionDiscovered(regionType, regionName, influence)
			return struct{}{}, nil
		}, struct{}{})
	}

	if p.logbook != nil {
		boundary.SafeExecute(p.errors, "logbook", "region notification", func() (struct{}, error) {
			p.logbook.AddDiscovery(regionName, entry.Type)
			p.logbook.AddNotification(fmt.Sprintf("Entering %s", regionName))
			return struct{}{}, nil
		}, struct{}{})
	}

	if p.audio != nil {
		boundary.SafeExecute(p.errors, "audio", "play region cue", func() (struct{}, error) {
			p.audio.PlayRegionDiscovery()
			return struct{}{}, nil
		}, struct{}{})
	}

	p.logger.Info("region discovered",
		"id", entry.ID,
		"name", regionName,
		"influence", influence)

	return entry
}
