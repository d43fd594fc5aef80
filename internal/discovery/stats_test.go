package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tekknoschtev/astral-surveyor/internal/types"
)

func statEntry(id string, ot types.ObjectType, rarity types.Rarity, notable bool, ts int64) *types.DiscoveryEntry {
	return &types.DiscoveryEntry{
		ID:         id,
		ObjectType: ot,
		Rarity:     rarity,
		Timestamp:  ts,
		Metadata:   types.DiscoveryMetadata{IsNotable: notable},
	}
}

func TestFilterDiscoveriesNewestFirst(t *testing.T) {
	entries := []*types.DiscoveryEntry{
		statEntry("a", types.ObjectStar, types.RarityCommon, false, 100),
		statEntry("b", types.ObjectPlanet, types.RarityCommon, false, 300),
		statEntry("c", types.ObjectMoon, types.RarityUncommon, true, 200),
	}

	out := FilterDiscoveries(entries, nil)
	assert.Equal(t, []string{"b", "c", "a"}, []string{out[0].ID, out[1].ID, out[2].ID})
}

func TestFilterByCategory(t *testing.T) {
	entries := []*types.DiscoveryEntry{
		statEntry("star", types.ObjectStar, types.RarityCommon, false, 1),
		statEntry("planet", types.ObjectPlanet, types.RarityCommon, false, 2),
		statEntry("moon", types.ObjectMoon, types.RarityUncommon, true, 3),
		statEntry("nebula", types.ObjectNebula, types.RarityRare, true, 4),
		statEntry("hole", types.ObjectBlackHole, types.RarityUltraRare, true, 5),
	}

	ids := func(out []*types.DiscoveryEntry) []string {
		got := make([]string, len(out))
		for i, e := range out {
			got[i] = e.ID
		}
		return got
	}

	assert.Equal(t, []string{"star"}, ids(FilterDiscoveries(entries, &Filter{Category: CategoryStellar})))
	assert.Equal(t, []string{"moon", "planet"}, ids(FilterDiscoveries(entries, &Filter{Category: CategoryPlanetary})))
	assert.Equal(t, []string{"hole", "nebula"}, ids(FilterDiscoveries(entries, &Filter{Category: CategoryExotic})))
	assert.Equal(t, []string{"hole", "nebula"}, ids(FilterDiscoveries(entries, &Filter{Category: CategoryRare})))
	assert.Equal(t, []string{"hole", "nebula", "moon"}, ids(FilterDiscoveries(entries, &Filter{Category: CategoryNotable})))
	assert.Len(t, FilterDiscoveries(entries, &Filter{Category: CategoryAll}), 5)
}

func TestFilterCombinesFields(t *testing.T) {
	withNotes := statEntry("noted", types.ObjectNebula, types.RarityRare, true, 50)
	withNotes.Notes = "beautiful"
	entries := []*types.DiscoveryEntry{
		withNotes,
		statEntry("plain", types.ObjectNebula, types.RarityRare, true, 150),
	}

	yes := true
	out := FilterDiscoveries(entries, &Filter{Category: CategoryRare, HasNotes: &yes})
	assert.Len(t, out, 1)
	assert.Equal(t, "noted", out[0].ID)

	since := int64(100)
	out = FilterDiscoveries(entries, &Filter{Since: &since})
	assert.Len(t, out, 1)
	assert.Equal(t, "plain", out[0].ID)
}

func TestGenerateStatistics(t *testing.T) {
	entries := []*types.DiscoveryEntry{
		statEntry("a", types.ObjectStar, types.RarityCommon, false, 100),
		statEntry("b", types.ObjectStar, types.RarityRare, false, 200),
		statEntry("c", types.ObjectMoon, types.RarityUncommon, true, 300),
		statEntry("d", types.ObjectBlackHole, types.RarityUltraRare, true, 400),
	}

	stats := GenerateStatistics(entries)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.ByType[types.ObjectStar])
	assert.Equal(t, 1, stats.ByRarity[types.RarityUltraRare])
	assert.Equal(t, 2, stats.RareCount)
	assert.Equal(t, 2, stats.NotableCount)
	assert.Equal(t, int64(100), stats.FirstTimestamp)
	assert.Equal(t, int64(400), stats.LastTimestamp)

	// Priority bucketing: each entry counts once. The rare star buckets as
	// rare, the notable moon as notable, never both.
	assert.Equal(t, 1, stats.ByCategory[CategoryStellar])
	assert.Equal(t, 1, stats.ByCategory[CategoryRare])
	assert.Equal(t, 2, stats.ByCategory[CategoryNotable])
}

func TestGenerateStatisticsEmpty(t *testing.T) {
	stats := GenerateStatistics(nil)
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, int64(0), stats.FirstTimestamp)
}
