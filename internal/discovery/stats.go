package discovery

import (
	"sort"

	"github.com/tekknoschtev/astral-surveyor/internal/types"
)

// Category groups object types for logbook filtering. Categories used for
// filtering are not mutually exclusive; the statistics bucketing below
// applies a priority order so each entry counts exactly once.
type Category string

const (
	CategoryAll       Category = "all"
	CategoryStellar   Category = "stellar"
	CategoryPlanetary Category = "planetary"
	CategoryExotic    Category = "exotic"
	CategoryRare      Category = "rare"
	CategoryNotable   Category = "notable"
)

// Filter selects a subset of discovery entries. Zero-valued fields are
// ignored; set fields combine with AND.
type Filter struct {
	Category   Category
	Rarity     types.Rarity
	ObjectType types.ObjectType
	// HasNotes filters on presence (true) or absence (false) of notes.
	HasNotes *bool
	// Since and Until bound the discovery timestamp, inclusive, in epoch
	// milliseconds.
	Since *int64
	Until *int64
}

var planetaryTypes = map[types.ObjectType]bool{
	types.ObjectPlanet: true,
	types.ObjectMoon:   true,
}

var exoticTypes = map[types.ObjectType]bool{
	types.ObjectNebula:    true,
	types.ObjectAsteroids: true,
	types.ObjectWormhole:  true,
	types.ObjectBlackHole: true,
	types.ObjectComet:     true,
}

func isRareTier(r types.Rarity) bool {
	return r == types.RarityRare || r == types.RarityUltraRare
}

// MatchesCategory reports whether an entry belongs to a filter category.
func MatchesCategory(e *types.DiscoveryEntry, c Category) bool {
	switch c {
	case "", CategoryAll:
		return true
	case CategoryStellar:
		return e.ObjectType == types.ObjectStar
	case CategoryPlanetary:
		return planetaryTypes[e.ObjectType]
	case CategoryExotic:
		return exoticTypes[e.ObjectType]
	case CategoryRare:
		return isRareTier(e.Rarity)
	case CategoryNotable:
		return e.Metadata.IsNotable
	default:
		return false
	}
}

// FilterDiscoveries returns the entries matching the filter, sorted newest
// first. A nil filter returns everything, still newest first.
func FilterDiscoveries(entries []*types.DiscoveryEntry, filter *Filter) []*types.DiscoveryEntry {
	out := make([]*types.DiscoveryEntry, 0, len(entries))

	for _, e := range entries {
		if filter != nil && !matches(e, filter) {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out
}

func matches(e *types.DiscoveryEntry, f *Filter) bool {
	if !MatchesCategory(e, f.Category) {
		return false
	}
	if f.Rarity != "" && e.Rarity != f.Rarity {
		return false
	}
	if f.ObjectType != "" && e.ObjectType != f.ObjectType {
		return false
	}
	if f.HasNotes != nil && (e.Notes != "") != *f.HasNotes {
		return false
	}
	if f.Since != nil && e.Timestamp < *f.Since {
		return false
	}
	if f.Until != nil && e.Timestamp > *f.Until {
		return false
	}
	return true
}

// Statistics aggregates a set of discovery entries.
type Statistics struct {
	Total          int
	ByType         map[types.ObjectType]int
	ByRarity       map[types.Rarity]int
	ByCategory     map[Category]int
	RareCount      int
	NotableCount   int
	FirstTimestamp int64 // zero when empty
	LastTimestamp  int64 // zero when empty
}

// GenerateStatistics computes counts by type, rarity, and category. The
// category bucket is priority-ordered (notable > rare > stellar >
// planetary > exotic) so every entry lands in exactly one bucket, unlike
// the overlapping category filters.
func GenerateStatistics(entries []*types.DiscoveryEntry) Statistics {
	stats := Statistics{
		ByType:     make(map[types.ObjectType]int),
		ByRarity:   make(map[types.Rarity]int),
		ByCategory: make(map[Category]int),
	}

	for _, e := range entries {
		stats.Total++
		stats.ByType[e.ObjectType]++
		stats.ByRarity[e.Rarity]++
		stats.ByCategory[bucket(e)]++

		if isRareTier(e.Rarity) {
			stats.RareCount++
		}
		if e.Metadata.IsNotable {
			stats.NotableCount++
		}

		if stats.FirstTimestamp == 0 || e.Timestamp < stats.FirstTimestamp {
			stats.FirstTimestamp = e.Timestamp
		}
		if e.Timestamp > stats.LastTimestamp {
			stats.LastTimestamp = e.Timestamp
		}
	}

	return stats
}

func bucket(e *types.DiscoveryEntry) Category {
	switch {
	case e.Metadata.IsNotable:
		return CategoryNotable
	case isRareTier(e.Rarity):
		return CategoryRare
	case e.ObjectType == types.ObjectStar:
		return CategoryStellar
	case planetaryTypes[e.ObjectType]:
		return CategoryPlanetary
	default:
		return CategoryExotic
	}
}
