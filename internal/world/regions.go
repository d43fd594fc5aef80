package world

import "math"

// RegionSize is the side length of one cosmic region cell in world units.
// Regions are large-scale zones, far coarser than chunks.
const RegionSize = 20000.0

// Region describes the cosmic region covering a point in space.
type Region struct {
	Type      string
	Name      string
	Influence float64 // 0..1, how strongly the region shapes local space
}

var regionTable = []struct {
	regionType string
	name       string
	weight     int
}{
	{"void", "The Void", 30},
	{"star-forge", "Star Forge Cluster", 20},
	{"ancient-expanse", "Ancient Expanse", 18},
	{"stellar-nursery", "Stellar Nursery", 15},
	{"galactic-drift", "Galactic Drift", 12},
	{"crystalline-reach", "Crystalline Reach", 5},
}

// RegionAt deterministically resolves the cosmic region for a world
// position. The same seed and position always yield the same region, so
// region discovery is stable across sessions.
func RegionAt(seed uint64, x, y float64) Region {
	rx := int(math.Floor(x / RegionSize))
	ry := int(math.Floor(y / RegionSize))

	rng := chunkRNG(seed^0xa5a5a5a5a5a5a5a5, rx, ry)

	total := 0
	for _, e := range regionTable {
		total += e.weight
	}
	roll := rng.IntN(total)
	for _, e := range regionTable {
		roll -= e.weight
		if roll < 0 {
			return Region{
				Type:      e.regionType,
				Name:      e.name,
				Influence: 0.3 + rng.Float64()*0.7,
			}
		}
	}
	return Region{Type: "void", Name: "The Void", Influence: 0.3}
}
