package world

import (
	"fmt"
	"math/rand/v2"

	"github.com/tekknoschtev/astral-surveyor/internal/types"
)

// ChunkSize is the side length of one square chunk in world units.
const ChunkSize = 1000.0

// Star spectral classes, weighted from common to exceptional.
var starTypes = []struct {
	name   string
	weight int
}{
	{"G-Type Star", 30},
	{"K-Type Star", 28},
	{"M-Type Star", 25},
	{"Red Giant", 7},
	{"Blue Giant", 5},
	{"White Dwarf", 4},
	{"Neutron Star", 1},
}

var planetTypes = []struct {
	name   string
	weight int
}{
	{"Rocky Planet", 30},
	{"Ocean World", 20},
	{"Gas Giant", 20},
	{"Desert World", 14},
	{"Volcanic World", 7},
	{"Frozen World", 7},
	{"Exotic World", 2},
}

var nebulaTypes = []string{"emission", "reflection", "planetary"}

var gardenTypes = []struct {
	name   string
	weight int
}{
	{"rocky", 30},
	{"metallic", 30},
	{"icy", 18},
	{"crystalline", 15},
	{"rare_minerals", 7},
}

// chunkRNG derives a deterministic generator for one chunk. The same
// universe seed and chunk coordinates always produce the same object set,
// which is what keeps object IDs stable across regenerations.
func chunkRNG(seed uint64, cx, cy int) *rand.Rand {
	// splitmix-style coordinate mixing keeps neighboring chunks decorrelated.
	h := seed
	h ^= uint64(int64(cx)) * 0x9e3779b97f4a7c15
	h = (h ^ (h >> 30)) * 0xbf58476d1ce4e5b9
	h ^= uint64(int64(cy)) * 0x94d049bb133111eb
	h = (h ^ (h >> 27)) * 0x2545f4914f6cdd1d
	return rand.New(rand.NewPCG(seed, h))
}

// GenerateChunk deterministically produces the celestial objects of one
// chunk. Discovery flags are not applied here; the chunk manager overlays
// them from its discovered-objects map.
func GenerateChunk(seed uint64, cx, cy int) []types.CelestialObject {
	rng := chunkRNG(seed, cx, cy)
	originX := float64(cx) * ChunkSize
	originY := float64(cy) * ChunkSize

	var objects []types.CelestialObject
	idx := 0

	body := func(kind types.ObjectType, radius float64) types.Body {
		b := types.Body{
			ID:     fmt.Sprintf("%s_%d_%d_%d", kind, cx, cy, idx),
			X:      originX + rng.Float64()*ChunkSize,
			Y:      originY + rng.Float64()*ChunkSize,
			Radius: radius,
		}
		idx++
		return b
	}

	// Most chunks host one star system.
	if rng.Float64() < 0.7 {
		star := &types.Star{
			Body:     body(types.ObjectStar, 80+rng.Float64()*120),
			StarType: pickWeighted(rng, starTypes),
		}
		objects = append(objects, star)

		planets := rng.IntN(5)
		for p := 0; p < planets; p++ {
			planet := &types.Planet{
				Body:       body(types.ObjectPlanet, 8+rng.Float64()*22),
				PlanetType: pickWeighted(rng, planetTypes),
			}
			// Keep planets loosely clustered around their star.
			planet.X = star.X + (rng.Float64()-0.5)*400
			planet.Y = star.Y + (rng.Float64()-0.5)*400
			objects = append(objects, planet)

			if rng.Float64() < 0.3 {
				moon := &types.Moon{Body: body(types.ObjectMoon, 2+rng.Float64()*5)}
				moon.X = planet.X + (rng.Float64()-0.5)*60
				moon.Y = planet.Y + (rng.Float64()-0.5)*60
				objects = append(objects, moon)
			}
		}
	}

	if rng.Float64() < 0.08 {
		objects = append(objects, &types.Nebula{
			Body:       body(types.ObjectNebula, 150+rng.Float64()*250),
			NebulaType: nebulaTypes[rng.IntN(len(nebulaTypes))],
		})
	}
	if rng.Float64() < 0.10 {
		objects = append(objects, &types.AsteroidField{
			Body:       body(types.ObjectAsteroids, 60+rng.Float64()*120),
			GardenType: pickWeighted(rng, gardenTypes),
		})
	}
	if rng.Float64() < 0.06 {
		objects = append(objects, &types.Comet{Body: body(types.ObjectComet, 3+rng.Float64()*4)})
	}
	if rng.Float64() < 0.01 {
		w := &types.Wormhole{
			Body:        body(types.ObjectWormhole, 30+rng.Float64()*20),
			Designation: fmt.Sprintf("WH-%04d", rng.IntN(10000)),
		}
		objects = append(objects, w)
	}
	if rng.Float64() < 0.005 {
		kind := "Stellar Black Hole"
		if rng.Float64() < 0.1 {
			kind = "Supermassive Black Hole"
		}
		objects = append(objects, &types.BlackHole{
			Body:          body(types.ObjectBlackHole, 40+rng.Float64()*60),
			BlackHoleType: kind,
		})
	}
	if rng.Float64() < 0.02 {
		variants := []types.RoguePlanetVariant{types.RogueIce, types.RogueRock, types.RogueVolcanic}
		objects = append(objects, &types.RoguePlanet{
			Body:    body(types.ObjectRoguePlanet, 10+rng.Float64()*15),
			Variant: variants[rng.IntN(len(variants))],
		})
	}
	if rng.Float64() < 0.02 {
		variants := []types.DarkNebulaVariant{types.DarkNebulaWisp, types.DarkNebulaGlobule, types.DarkNebulaDenseCore}
		objects = append(objects, &types.DarkNebula{
			Body:    body(types.ObjectDarkNebula, 120+rng.Float64()*200),
			Variant: variants[rng.IntN(len(variants))],
		})
	}
	if rng.Float64() < 0.015 {
		variants := []types.CrystalGardenVariant{types.CrystalGardenPure, types.CrystalGardenMixed, types.CrystalGardenRareEarth}
		objects = append(objects, &types.CrystalGarden{
			Body:    body(types.ObjectCrystalGarden, 50+rng.Float64()*80),
			Variant: variants[rng.IntN(len(variants))],
		})
	}
	if rng.Float64() < 0.01 {
		variants := []types.ProtostarVariant{types.ProtostarClass0, types.ProtostarClass1, types.ProtostarClass2}
		objects = append(objects, &types.Protostar{
			Body:    body(types.ObjectProtostar, 60+rng.Float64()*100),
			Variant: variants[rng.IntN(len(variants))],
		})
	}

	return objects
}

func pickWeighted(rng *rand.Rand, table []struct {
	name   string
	weight int
}) string {
	total := 0
	for _, e := range table {
		total += e.weight
	}
	roll := rng.IntN(total)
	for _, e := range table {
		roll -= e.weight
		if roll < 0 {
			return e.name
		}
	}
	return table[0].name
}
