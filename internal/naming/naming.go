package naming

import (
	"fmt"
	"hash/fnv"

	"github.com/tekknoschtev/astral-surveyor/internal/types"
)

// Namer resolves display names for celestial objects. Names are a pure
// function of the object's stable ID, so regenerating a chunk never renames
// anything.
type Namer struct{}

// NewNamer creates the default namer.
func NewNamer() *Namer { return &Namer{} }

// Bright-star names given to a small fraction of stars. Drawn from the
// IAU named-star list.
var brightStarNames = []string{
	"Sirius", "Canopus", "Arcturus", "Vega", "Capella", "Rigel",
	"Procyon", "Achernar", "Betelgeuse", "Hadar", "Altair", "Acrux",
	"Aldebaran", "Antares", "Spica", "Pollux", "Fomalhaut", "Deneb",
	"Mimosa", "Regulus", "Adhara", "Castor", "Gacrux", "Shaula",
	"Bellatrix", "Elnath", "Alnilam", "Alnair", "Alnitak", "Alioth",
	"Dubhe", "Mirfak", "Wezen", "Sargas", "Avior", "Alkaid",
	"Menkalinan", "Atria", "Alhena", "Peacock", "Polaris", "Alphard",
}

var planetSuffixes = []string{"b", "c", "d", "e", "f", "g", "h"}

// GenerateDisplayName returns the display name for an object. Stars
// occasionally receive a classical name; everything else gets a survey
// catalog designation derived from the object ID.
func (n *Namer) GenerateDisplayName(obj types.CelestialObject) string {
	id := obj.Header().ID
	h := hashID(id)

	switch o := obj.(type) {
	case *types.Star:
		if h%23 == 0 {
			return brightStarNames[(h/23)%uint64(len(brightStarNames))]
		}
		return fmt.Sprintf("ASV-%04d", h%10000)

	case *types.Planet:
		return fmt.Sprintf("ASV-%04d %s", h%10000, planetSuffixes[(h/10000)%uint64(len(planetSuffixes))])

	case *types.Moon:
		return fmt.Sprintf("ASV-%04d %s I", h%10000, planetSuffixes[(h/10000)%uint64(len(planetSuffixes))])

	case *types.Nebula:
		return fmt.Sprintf("NGC-%04d", h%10000)

	case *types.DarkNebula:
		return fmt.Sprintf("Barnard %d", h%400)

	case *types.AsteroidField:
		return fmt.Sprintf("Garden %04d", h%10000)

	case *types.Wormhole:
		if o.Designation != "" {
			return o.Designation
		}
		return fmt.Sprintf("WH-%04d", h%10000)

	case *types.BlackHole:
		return fmt.Sprintf("ASV X-%d", h%1000)

	case *types.Comet:
		return fmt.Sprintf("C/%d A%d", 2100+h%400, 1+h%9)

	case *types.RoguePlanet:
		return fmt.Sprintf("Wanderer %04d", h%10000)

	case *types.CrystalGarden:
		return fmt.Sprintf("Lattice %03d", h%1000)

	case *types.Protostar:
		return fmt.Sprintf("YSO-%04d", h%10000)

	default:
		return fmt.Sprintf("Object %04d", h%10000)
	}
}

func hashID(id string) uint64 {
	f := fnv.New64a()
	f.Write([]byte(id))
	return f.Sum64()
}
