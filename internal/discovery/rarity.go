package discovery

import (
	"github.com/tekknoschtev/astral-surveyor/internal/types"
)

// rareGardenTypes are the asteroid garden compositions that bump the field
// from uncommon to rare.
var rareGardenTypes = map[string]bool{
	"rare_minerals": true,
	"crystalline":   true,
	"icy":           true,
}

// DetermineRarity computes the fixed rarity tier for an object at discovery
// time. The verdict is stored on the entry and never recomputed.
func DetermineRarity(obj types.CelestialObject) types.Rarity {
	switch o := obj.(type) {
	case *types.BlackHole:
		return types.RarityUltraRare
	case *types.Wormhole:
		return types.RarityUltraRare

	case *types.Nebula:
		return types.RarityRare
	case *types.Comet:
		return types.RarityRare

	case *types.Moon:
		return types.RarityUncommon

	case *types.Star:
		switch o.StarType {
		case "Neutron Star":
			return types.RarityUltraRare
		case "White Dwarf", "Blue Giant", "Red Giant":
			return types.RarityRare
		default:
			return types.RarityCommon
		}

	case *types.Planet:
		switch o.PlanetType {
		case "Exotic World":
			return types.RarityUltraRare
		case "Volcanic World", "Frozen World":
			return types.RarityRare
		default:
			return types.RarityCommon
		}

	case *types.AsteroidField:
		if rareGardenTypes[o.GardenType] {
			return types.RarityRare
		}
		return types.RarityUncommon

	case *types.RoguePlanet:
		if o.Variant == types.RogueVolcanic {
			return types.RarityUltraRare
		}
		return types.RarityRare

	case *types.DarkNebula:
		if o.Variant == types.DarkNebulaDenseCore {
			return types.RarityRare
		}
		return types.RarityUncommon

	case *types.CrystalGarden:
		if o.Variant == types.CrystalGardenRareEarth {
			return types.RarityUltraRare
		}
		return types.RarityUncommon

	case *types.Protostar:
		if o.Variant == types.ProtostarClass2 {
			return types.RarityUltraRare
		}
		return types.RarityRare

	default:
		return types.RarityCommon
	}
}

// IsRareDiscovery reports whether an entry deserves the rare treatment
// (layered audio, highlighted UI). Moons are always flagged notable
// regardless of their uncommon tier; this asymmetry is intentional.
func IsRareDiscovery(objectType types.ObjectType, rarity types.Rarity) bool {
	if objectType == types.ObjectMoon {
		return true
	}
	return rarity == types.RarityRare || rarity == types.RarityUltraRare
}

// DisplayLabel resolves the human-readable type label for an object,
// including sub-variant resolution for the variant-bearing kinds. A
// missing variant falls back to the kind's default.
func DisplayLabel(obj types.CelestialObject) string {
	switch o := obj.(type) {
	case *types.Star:
		if o.StarType != "" {
			return o.StarType
		}
		return "Star"

	case *types.Planet:
		if o.PlanetType != "" {
			return o.PlanetType
		}
		return "Planet"

	case *types.Moon:
		return "Moon"

	case *types.Nebula:
		switch o.NebulaType {
		case "emission":
			return "Emission Nebula"
		case "reflection":
			return "Reflection Nebula"
		case "planetary":
			return "Planetary Nebula"
		default:
			return "Nebula"
		}

	case *types.AsteroidField:
		return "Asteroid Garden"

	case *types.Wormhole:
		return "Stable Wormhole"

	case *types.BlackHole:
		if o.BlackHoleType != "" {
			return o.BlackHoleType
		}
		return "Black Hole"

	case *types.Comet:
		return "Comet"

	case *types.RoguePlanet:
		switch o.Variant {
		case types.RogueIce:
			return "Frozen Rogue Planet"
		case types.RogueVolcanic:
			return "Volcanic Rogue Planet"
		default: // RogueRock is the default variant
			return "Rocky Rogue Planet"
		}

	case *types.DarkNebula:
		switch o.Variant {
		case types.DarkNebulaGlobule:
			return "Dark Globule"
		case types.DarkNebulaDenseCore:
			return "Dense Core Nebula"
		default: // wisp is the default variant
			return "Dark Nebula Wisp"
		}

	case *types.CrystalGarden:
		switch o.Variant {
		case types.CrystalGardenPure:
			return "Pure Crystal Garden"
		case types.CrystalGardenRareEarth:
			return "Rare-Earth Crystal Garden"
		default: // mixed is the default variant
			return "Mixed Crystal Garden"
		}

	case *types.Protostar:
		switch o.Variant {
		case types.ProtostarClass0:
			return "Class 0 Protostar"
		case types.ProtostarClass2:
			return "Class 2 Protostar"
		default: // class-1 is the default variant
			return "Class 1 Protostar"
		}

	default:
		return "Unknown Object"
	}
}

// Variant returns the sub-variant tag for variant-bearing kinds, or the
// empty string.
func Variant(obj types.CelestialObject) string {
	switch o := obj.(type) {
	case *types.RoguePlanet:
		return string(o.Variant)
	case *types.DarkNebula:
		return string(o.Variant)
	case *types.CrystalGarden:
		return string(o.Variant)
	case *types.Protostar:
		return string(o.Variant)
	default:
		return ""
	}
}
