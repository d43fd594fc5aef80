package types

import "fmt"

// Rarity is the fixed classification computed once per discovered object.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityUltraRare Rarity = "ultra-rare"
)

// Coordinates is a world-space position frozen at the moment of discovery.
type Coordinates struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DiscoveryMetadata carries the type-specific optional fields of an entry.
type DiscoveryMetadata struct {
	StarType        string  `json:"star_type,omitempty"`
	PlanetType      string  `json:"planet_type,omitempty"`
	NebulaType      string  `json:"nebula_type,omitempty"`
	GardenType      string  `json:"garden_type,omitempty"`
	BlackHoleType   string  `json:"black_hole_type,omitempty"`
	Variant         string  `json:"variant,omitempty"`
	RegionInfluence float64 `json:"region_influence,omitempty"`
	IsNotable       bool    `json:"is_notable,omitempty"`
	DiscoveryRadius float64 `json:"discovery_radius,omitempty"`
}

// DiscoveryEntry is the immutable record of one discovered object or region.
// Entries are created once by the discovery pipeline and never recomputed;
// only Notes may change afterwards.
type DiscoveryEntry struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Type         string            `json:"type"`
	ObjectType   ObjectType        `json:"object_type"`
	Coordinates  Coordinates       `json:"coordinates"`
	Timestamp    int64             `json:"timestamp"` // epoch milliseconds
	Rarity       Rarity            `json:"rarity"`
	Notes        string            `json:"notes,omitempty"`
	ShareableURL string            `json:"shareable_url"`
	Metadata     DiscoveryMetadata `json:"metadata"`
}

// ShareableURL renders the deterministic share string for a coordinate pair.
// The same coordinates always produce the same string, so share links stay
// stable across sessions and universes with the same seed.
func ShareableURL(c Coordinates) string {
	return fmt.Sprintf("astral://%.1f,%.1f", c.X, c.Y)
}
