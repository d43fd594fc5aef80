package discovery

import (
	"math"

	"github.com/tekknoschtev/astral-surveyor/internal/types"
)

// visibilityMargin extends the canvas rectangle when testing star
// visibility, so stars just off screen still count as rendered.
const visibilityMargin = 50.0

// fallbackDiscoveryDistance applies when an object type has no entry in
// the default table.
const fallbackDiscoveryDistance = 50.0

// Default discovery radius per object type. Stars never use this path
// (their entry is the "never by distance" sentinel); they are discovered by
// screen visibility instead.
var defaultDiscoveryDistance = map[types.ObjectType]float64{
	types.ObjectStar:          0,
	types.ObjectPlanet:        50,
	types.ObjectMoon:          35,
	types.ObjectNebula:        80,
	types.ObjectAsteroids:     60,
	types.ObjectWormhole:      70,
	types.ObjectBlackHole:     100,
	types.ObjectComet:         55,
	types.ObjectRoguePlanet:   45,
	types.ObjectDarkNebula:    70,
	types.ObjectCrystalGarden: 40,
	types.ObjectProtostar:     60,
}

// starDetectionRange is the long-range visibility proxy used for star
// detection; stars are effectively visible from anywhere nearby on the map.
const starDetectionRange = 5000.0

// Default detection radius per object type, materially larger than the
// discovery radius. Detection drives minimap hinting, never discovery.
var defaultDetectionDistance = map[types.ObjectType]float64{
	types.ObjectPlanet:        500,
	types.ObjectMoon:          300,
	types.ObjectNebula:        900,
	types.ObjectAsteroids:     600,
	types.ObjectWormhole:      800,
	types.ObjectBlackHole:     1200,
	types.ObjectComet:         550,
	types.ObjectRoguePlanet:   450,
	types.ObjectDarkNebula:    750,
	types.ObjectCrystalGarden: 400,
	types.ObjectProtostar:     650,
}

// Classifier decides whether an object is discovered or detected from the
// current camera. It is stateless; the discovery flag lives on the object
// and the authoritative record in the discovery service.
type Classifier struct{}

// NewClassifier creates the stateless classifier.
func NewClassifier() *Classifier { return &Classifier{} }

// CheckDiscovery reports whether the object should transition to
// discovered. Already-discovered objects always return false.
//
// Stars use the screen-visibility rule: the projected position, padded by
// the star's radius plus a fixed margin, must fall inside the canvas
// rectangle extended by the same margin. Proximity is irrelevant for stars.
// Every other kind uses Euclidean distance against its discovery radius.
func (c *Classifier) CheckDiscovery(obj types.CelestialObject, camera types.Camera, canvasWidth, canvasHeight int) bool {
	h := obj.Header()
	if h.Discovered {
		return false
	}

	if obj.Kind() == types.ObjectStar {
		return c.starVisible(h, camera, canvasWidth, canvasHeight)
	}

	threshold, ok := discoveryThreshold(obj)
	if !ok {
		// Explicit zero: never discoverable by distance.
		return false
	}
	return distance(h, camera) <= threshold
}

// CheckDetection reports whether the object is within detection range, the
// larger-radius proximity signal used for minimap blips before discovery.
// Unlike discovery, detection does not consult the discovered flag.
func (c *Classifier) CheckDetection(obj types.CelestialObject, camera types.Camera) bool {
	h := obj.Header()

	if obj.Kind() == types.ObjectStar {
		return distance(h, camera) <= starDetectionRange
	}

	threshold, ok := defaultDetectionDistance[obj.Kind()]
	if !ok {
		threshold = fallbackDiscoveryDistance * 10
	}
	return distance(h, camera) <= threshold
}

// DiscoveryRadius returns the effective discovery radius for an object,
// and false when the object can never be discovered by distance.
func DiscoveryRadius(obj types.CelestialObject) (float64, bool) {
	return discoveryThreshold(obj)
}

func discoveryThreshold(obj types.CelestialObject) (float64, bool) {
	h := obj.Header()

	// nil means unset: fall back to the per-type default. An explicit 0 is
	// the "never discoverable by distance" sentinel and must not fall
	// through to the default.
	if h.DiscoveryDistance != nil {
		if *h.DiscoveryDistance == 0 {
			return 0, false
		}
		return *h.DiscoveryDistance, true
	}

	def, ok := defaultDiscoveryDistance[obj.Kind()]
	if !ok {
		return fallbackDiscoveryDistance, true
	}
	if def == 0 {
		return 0, false
	}
	return def, true
}

func (c *Classifier) starVisible(h *types.Body, camera types.Camera, canvasWidth, canvasHeight int) bool {
	sx, sy := camera.WorldToScreen(h.X, h.Y, canvasWidth, canvasHeight)
	pad := h.Radius + visibilityMargin

	return sx >= -pad && sx <= float64(canvasWidth)+pad &&
		sy >= -pad && sy <= float64(canvasHeight)+pad
}

func distance(h *types.Body, camera types.Camera) float64 {
	return math.Hypot(h.X-camera.X(), h.Y-camera.Y())
}
