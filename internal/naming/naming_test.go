package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tekknoschtev/astral-surveyor/internal/types"
)

func TestNamesAreDeterministic(t *testing.T) {
	n := NewNamer()
	star := &types.Star{Body: types.Body{ID: "star_0_0_0"}, StarType: "G-Type Star"}

	assert.Equal(t, n.GenerateDisplayName(star), n.GenerateDisplayName(star))
}

func TestNameDependsOnlyOnID(t *testing.T) {
	n := NewNamer()

	a := &types.Star{Body: types.Body{ID: "star_1_1_0", X: 100, Y: 200}}
	b := &types.Star{Body: types.Body{ID: "star_1_1_0", X: -500, Y: 999, Discovered: true}}

	assert.Equal(t, n.GenerateDisplayName(a), n.GenerateDisplayName(b))
}

func TestDifferentIDsUsuallyDiffer(t *testing.T) {
	n := NewNamer()

	a := n.GenerateDisplayName(&types.Nebula{Body: types.Body{ID: "nebula_0_0_1"}})
	b := n.GenerateDisplayName(&types.Nebula{Body: types.Body{ID: "nebula_0_0_2"}})

	assert.NotEqual(t, a, b)
}

func TestCatalogFormats(t *testing.T) {
	n := NewNamer()

	tests := []struct {
		name    string
		obj     types.CelestialObject
		pattern string
	}{
		{"planet", &types.Planet{Body: types.Body{ID: "planet_0_0_1"}}, `^ASV-\d{4} [b-h]$`},
		{"moon", &types.Moon{Body: types.Body{ID: "moon_0_0_2"}}, `^ASV-\d{4} [b-h] I$`},
		{"nebula", &types.Nebula{Body: types.Body{ID: "nebula_0_0_3"}}, `^NGC-\d{4}$`},
		{"dark nebula", &types.DarkNebula{Body: types.Body{ID: "dark-nebula_0_0_4"}}, `^Barnard \d+$`},
		{"asteroid field", &types.AsteroidField{Body: types.Body{ID: "asteroids_0_0_5"}}, `^Garden \d{4}$`},
		{"black hole", &types.BlackHole{Body: types.Body{ID: "blackhole_0_0_6"}}, `^ASV X-\d+$`},
		{"comet", &types.Comet{Body: types.Body{ID: "comet_0_0_7"}}, `^C/2[1-4]\d\d A\d$`},
		{"rogue planet", &types.RoguePlanet{Body: types.Body{ID: "rogue-planet_0_0_8"}}, `^Wanderer \d{4}$`},
		{"crystal garden", &types.CrystalGarden{Body: types.Body{ID: "crystal-garden_0_0_9"}}, `^Lattice \d{3}$`},
		{"protostar", &types.Protostar{Body: types.Body{ID: "protostar_0_0_10"}}, `^YSO-\d{4}$`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Regexp(t, tt.pattern, n.GenerateDisplayName(tt.obj))
		})
	}
}

func TestStarNamesMixCatalogAndClassical(t *testing.T) {
	n := NewNamer()

	classical := map[string]bool{}
	for _, s := range brightStarNames {
		classical[s] = true
	}

	catalog, named := 0, 0
	for i := 0; i < 300; i++ {
		name := n.GenerateDisplayName(&types.Star{
			Body: types.Body{ID: "star_" + string(rune('a'+i%26)) + "_0_" + string(rune('a'+i/26))},
		})
		if classical[name] {
			named++
		} else {
			assert.Regexp(t, `^ASV-\d{4}$`, name)
			catalog++
		}
	}

	assert.Greater(t, catalog, 0)
	assert.Greater(t, named, 0, "roughly one star in 23 gets a classical name")
}

func TestWormholeKeepsItsDesignation(t *testing.T) {
	n := NewNamer()

	withDesignation := &types.Wormhole{
		Body:        types.Body{ID: "wormhole_0_0_0"},
		Designation: "WH-7777",
	}
	assert.Equal(t, "WH-7777", n.GenerateDisplayName(withDesignation))

	without := &types.Wormhole{Body: types.Body{ID: "wormhole_0_0_1"}}
	assert.Regexp(t, `^WH-\d{4}$`, n.GenerateDisplayName(without))
}
