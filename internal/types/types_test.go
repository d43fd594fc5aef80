package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareableURL(t *testing.T) {
	tests := []struct {
		coords Coordinates
		want   string
	}{
		{Coordinates{X: 120, Y: -40}, "astral://120.0,-40.0"},
		{Coordinates{X: 0, Y: 0}, "astral://0.0,0.0"},
		{Coordinates{X: -1234.56, Y: 7890.12}, "astral://-1234.6,7890.1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ShareableURL(tt.coords))
	}
}

func TestShareableURLIsStable(t *testing.T) {
	c := Coordinates{X: 55.5, Y: -7.25}
	assert.Equal(t, ShareableURL(c), ShareableURL(c))
}

func TestFloatPtr(t *testing.T) {
	p := FloatPtr(250)
	require.NotNil(t, p)
	assert.Equal(t, 250.0, *p)

	// Zero is a real value, distinct from a nil pointer.
	z := FloatPtr(0)
	require.NotNil(t, z)
	assert.Equal(t, 0.0, *z)
}

func TestHeaderReturnsEmbeddedBody(t *testing.T) {
	s := &Star{Body: Body{ID: "star_0_0_0"}, StarType: "G-Type Star"}
	s.Header().Discovered = true
	assert.True(t, s.Discovered)
}

func TestKindTags(t *testing.T) {
	tests := []struct {
		obj  CelestialObject
		kind ObjectType
	}{
		{&Star{}, ObjectStar},
		{&Planet{}, ObjectPlanet},
		{&Moon{}, ObjectMoon},
		{&Nebula{}, ObjectNebula},
		{&AsteroidField{}, ObjectAsteroids},
		{&Wormhole{}, ObjectWormhole},
		{&BlackHole{}, ObjectBlackHole},
		{&Comet{}, ObjectComet},
		{&RoguePlanet{}, ObjectRoguePlanet},
		{&DarkNebula{}, ObjectDarkNebula},
		{&CrystalGarden{}, ObjectCrystalGarden},
		{&Protostar{}, ObjectProtostar},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, tt.obj.Kind())
	}
}
