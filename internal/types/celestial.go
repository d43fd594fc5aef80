package types

// ObjectType identifies the kind of a celestial object. The set is closed:
// the classifier and rarity tables switch exhaustively over these values.
type ObjectType string

const (
	ObjectStar          ObjectType = "star"
	ObjectPlanet        ObjectType = "planet"
	ObjectMoon          ObjectType = "moon"
	ObjectNebula        ObjectType = "nebula"
	ObjectAsteroids     ObjectType = "asteroids"
	ObjectWormhole      ObjectType = "wormhole"
	ObjectBlackHole     ObjectType = "blackhole"
	ObjectComet         ObjectType = "comet"
	ObjectRegion        ObjectType = "region"
	ObjectRoguePlanet   ObjectType = "rogue-planet"
	ObjectDarkNebula    ObjectType = "dark-nebula"
	ObjectCrystalGarden ObjectType = "crystal-garden"
	ObjectProtostar     ObjectType = "protostar"
)

// Body is the header shared by every celestial object kind.
//
// DiscoveryDistance distinguishes "unset" from "zero": a nil pointer means
// the per-type default applies, while an explicit 0 means the object can
// never be discovered by proximity at all.
type Body struct {
	ID         string
	X          float64
	Y          float64
	Radius     float64
	Discovered bool

	DiscoveryDistance *float64
}

// CelestialObject is the tagged union over all object kinds. Each variant
// carries only the fields relevant to its kind; code that needs variant
// data type-switches on the concrete type.
type CelestialObject interface {
	Kind() ObjectType
	Header() *Body
}

// Star is discovered by screen visibility rather than proximity: a star
// bright enough to render is bright enough to log.
type Star struct {
	Body
	StarType string // e.g. "G-Type Star", "Neutron Star", "White Dwarf"
}

// Planet orbits a star within a generated system.
type Planet struct {
	Body
	PlanetType string // e.g. "Rocky Planet", "Volcanic World", "Exotic World"
}

// Moon orbits a planet. Moons are always flagged notable on discovery
// regardless of rarity tier.
type Moon struct {
	Body
}

// Nebula is a diffuse emission region.
type Nebula struct {
	Body
	NebulaType string // e.g. "emission", "reflection", "planetary"
}

// AsteroidField is a mineral garden; GardenType drives the rarity bump for
// rare_minerals, crystalline and icy fields.
type AsteroidField struct {
	Body
	GardenType string
}

// Wormhole connects two fixed points in space. Both endpoints share a
// designation; PairID names the twin object.
type Wormhole struct {
	Body
	Designation string
	PairID      string
}

// BlackHole warps nearby space and emits proximity warnings as the ship
// approaches the event horizon.
type BlackHole struct {
	Body
	BlackHoleType string // e.g. "stellar", "supermassive"
}

// Comet follows an elliptical orbit with a visible tail.
type Comet struct {
	Body
}

// RoguePlanetVariant selects among the three rogue planet sub-kinds.
type RoguePlanetVariant string

const (
	RogueIce      RoguePlanetVariant = "ice"
	RogueRock     RoguePlanetVariant = "rock"
	RogueVolcanic RoguePlanetVariant = "volcanic"
)

// RoguePlanet drifts between systems with no parent star.
type RoguePlanet struct {
	Body
	Variant RoguePlanetVariant
}

// DarkNebulaVariant selects among the three dark nebula sub-kinds.
type DarkNebulaVariant string

const (
	DarkNebulaWisp      DarkNebulaVariant = "wisp"
	DarkNebulaGlobule   DarkNebulaVariant = "globule"
	DarkNebulaDenseCore DarkNebulaVariant = "dense-core"
)

// DarkNebula is an opaque dust cloud that occludes objects behind it.
type DarkNebula struct {
	Body
	Variant DarkNebulaVariant
}

// CrystalGardenVariant selects among the three crystal garden sub-kinds.
type CrystalGardenVariant string

const (
	CrystalGardenPure      CrystalGardenVariant = "pure"
	CrystalGardenMixed     CrystalGardenVariant = "mixed"
	CrystalGardenRareEarth CrystalGardenVariant = "rare-earth"
)

// CrystalGarden is a field of crystalline growth formations.
type CrystalGarden struct {
	Body
	Variant CrystalGardenVariant
}

// ProtostarVariant selects among the three protostar evolutionary classes.
type ProtostarVariant string

const (
	ProtostarClass0 ProtostarVariant = "class-0"
	ProtostarClass1 ProtostarVariant = "class-1"
	ProtostarClass2 ProtostarVariant = "class-2"
)

// Protostar is a collapsing cloud core that has not yet ignited fusion.
type Protostar struct {
	Body
	Variant ProtostarVariant
}

func (s *Star) Kind() ObjectType          { return ObjectStar }
func (p *Planet) Kind() ObjectType        { return ObjectPlanet }
func (m *Moon) Kind() ObjectType          { return ObjectMoon }
func (n *Nebula) Kind() ObjectType        { return ObjectNebula }
func (a *AsteroidField) Kind() ObjectType { return ObjectAsteroids }
func (w *Wormhole) Kind() ObjectType      { return ObjectWormhole }
func (b *BlackHole) Kind() ObjectType     { return ObjectBlackHole }
func (c *Comet) Kind() ObjectType         { return ObjectComet }
func (r *RoguePlanet) Kind() ObjectType   { return ObjectRoguePlanet }
func (d *DarkNebula) Kind() ObjectType    { return ObjectDarkNebula }
func (g *CrystalGarden) Kind() ObjectType { return ObjectCrystalGarden }
func (p *Protostar) Kind() ObjectType     { return ObjectProtostar }

func (b *Body) Header() *Body { return b }

// FloatPtr is a convenience for populating Body.DiscoveryDistance.
func FloatPtr(v float64) *float64 { return &v }
