package types

// SaveVersion is the current save-file format version. Older versions are
// accepted on load as long as they validate structurally.
const SaveVersion = "1"

// PlayerState is the camera snapshot stored in a save file.
type PlayerState struct {
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
	VelocityX        float64 `json:"velocity_x"`
	VelocityY        float64 `json:"velocity_y"`
	DistanceTraveled float64 `json:"distance_traveled"`
}

// WorldState records which universe the save belongs to.
type WorldState struct {
	CurrentSeed        string `json:"current_seed"`
	UniverseResetCount int    `json:"universe_reset_count"`
}

// LogbookEntry is the lossy name/type/timestamp projection of a discovery
// kept for the logbook UI. The authoritative record is DiscoveredObjects
// plus the optional DiscoveryManager export.
type LogbookEntry struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
}

// DiscoveredObject is one chunk-level discovery record: the stable object
// ID plus an opaque per-object blob owned by the chunk layer.
type DiscoveredObject struct {
	ObjectID string         `json:"object_id"`
	Data     map[string]any `json:"data,omitempty"`
}

// DiscoveryExport is the full round-trippable state of the discovery
// service: every entry plus the monotonic ID counter.
type DiscoveryExport struct {
	Discoveries []DiscoveryEntry `json:"discoveries"`
	IDCounter   int              `json:"id_counter"`
}

// PlayStats tracks play-time accounting across save/load cycles.
type PlayStats struct {
	SessionID        string `json:"session_id"`
	SessionStartTime int64  `json:"session_start_time"` // epoch milliseconds
	TotalPlayTime    int64  `json:"total_play_time"`    // milliseconds
}

// SaveGameData is the versioned snapshot written to the save slot. Player
// and World are pointers so validation can distinguish a missing block from
// a zero-valued one; Discoveries and DiscoveredObjects distinguish absent
// (nil) from present-but-empty for the same reason.
type SaveGameData struct {
	Version           string             `json:"version"`
	Timestamp         int64              `json:"timestamp"`
	Player            *PlayerState       `json:"player,omitempty"`
	World             *WorldState        `json:"world,omitempty"`
	Discoveries       []LogbookEntry     `json:"discoveries"`
	DiscoveredObjects []DiscoveredObject `json:"discovered_objects"`
	DiscoveryManager  *DiscoveryExport   `json:"discovery_manager,omitempty"`
	Stats             PlayStats          `json:"stats"`
}
