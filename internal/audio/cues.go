package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/tekknoschtev/astral-surveyor/internal/types"
)

// note is one synthesized segment of a cue. Notes play in sequence.
type note struct {
	Freq    float64
	Wave    Waveform
	Dur     time.Duration
	Attack  time.Duration
	Release time.Duration
}

// Cue is a named, ordered set of notes with a base volume.
type Cue struct {
	Name   string
	Notes  []note
	Volume float64
}

// discoveryCues routes object types to their discovery cue. Every object
// type that can be discovered has an entry; unknown types fall back to the
// generic cue.
var discoveryCues = map[types.ObjectType]Cue{
	types.ObjectStar: {
		Name:   "star",
		Volume: 0.5,
		Notes: []note{
			{Freq: 523.25, Wave: WaveSine, Dur: 180 * time.Millisecond, Attack: 10 * time.Millisecond, Release: 80 * time.Millisecond},
			{Freq: 783.99, Wave: WaveSine, Dur: 260 * time.Millisecond, Attack: 10 * time.Millisecond, Release: 140 * time.Millisecond},
		},
	},
	types.ObjectPlanet: {
		Name:   "planet",
		Volume: 0.45,
		Notes: []note{
			{Freq: 392.00, Wave: WaveSine, Dur: 160 * time.Millisecond, Attack: 8 * time.Millisecond, Release: 70 * time.Millisecond},
			{Freq: 523.25, Wave: WaveSine, Dur: 220 * time.Millisecond, Attack: 8 * time.Millisecond, Release: 120 * time.Millisecond},
		},
	},
	types.ObjectMoon: {
		Name:   "moon",
		Volume: 0.4,
		Notes: []note{
			{Freq: 659.25, Wave: WaveSine, Dur: 140 * time.Millisecond, Attack: 6 * time.Millisecond, Release: 90 * time.Millisecond},
		},
	},
	types.ObjectNebula: {
		Name:   "nebula",
		Volume: 0.4,
		Notes: []note{
			{Freq: 220.00, Wave: WaveSaw, Dur: 420 * time.Millisecond, Attack: 120 * time.Millisecond, Release: 220 * time.Millisecond},
		},
	},
	types.ObjectAsteroids: {
		Name:   "asteroids",
		Volume: 0.4,
		Notes: []note{
			{Freq: 329.63, Wave: WaveSquare, Dur: 90 * time.Millisecond, Attack: 4 * time.Millisecond, Release: 40 * time.Millisecond},
			{Freq: 392.00, Wave: WaveSquare, Dur: 90 * time.Millisecond, Attack: 4 * time.Millisecond, Release: 40 * time.Millisecond},
			{Freq: 440.00, Wave: WaveSquare, Dur: 120 * time.Millisecond, Attack: 4 * time.Millisecond, Release: 60 * time.Millisecond},
		},
	},
	types.ObjectWormhole: {
		Name:   "wormhole",
		Volume: 0.5,
		Notes: []note{
			{Freq: 146.83, Wave: WaveSine, Dur: 300 * time.Millisecond, Attack: 60 * time.Millisecond, Release: 120 * time.Millisecond},
			{Freq: 293.66, Wave: WaveSine, Dur: 300 * time.Millisecond, Attack: 20 * time.Millisecond, Release: 160 * time.Millisecond},
		},
	},
	types.ObjectBlackHole: {
		Name:   "blackhole",
		Volume: 0.55,
		Notes: []note{
			{Freq: 55.00, Wave: WaveSaw, Dur: 600 * time.Millisecond, Attack: 200 * time.Millisecond, Release: 320 * time.Millisecond},
		},
	},
	types.ObjectComet: {
		Name:   "comet",
		Volume: 0.4,
		Notes: []note{
			{Freq: 880.00, Wave: WaveSine, Dur: 120 * time.Millisecond, Attack: 4 * time.Millisecond, Release: 60 * time.Millisecond},
			{Freq: 659.25, Wave: WaveSine, Dur: 200 * time.Millisecond, Attack: 4 * time.Millisecond, Release: 140 * time.Millisecond},
		},
	},
	types.ObjectRoguePlanet: {
		Name:   "rogue-planet",
		Volume: 0.45,
		Notes: []note{
			{Freq: 311.13, Wave: WaveSine, Dur: 260 * time.Millisecond, Attack: 40 * time.Millisecond, Release: 140 * time.Millisecond},
		},
	},
	types.ObjectDarkNebula: {
		Name:   "dark-nebula",
		Volume: 0.35,
		Notes: []note{
			{Freq: 110.00, Wave: WaveSine, Dur: 500 * time.Millisecond, Attack: 180 * time.Millisecond, Release: 260 * time.Millisecond},
		},
	},
	types.ObjectCrystalGarden: {
		Name:   "crystal-garden",
		Volume: 0.45,
		Notes: []note{
			{Freq: 1046.50, Wave: WaveSine, Dur: 100 * time.Millisecond, Attack: 4 * time.Millisecond, Release: 50 * time.Millisecond},
			{Freq: 1318.51, Wave: WaveSine, Dur: 100 * time.Millisecond, Attack: 4 * time.Millisecond, Release: 50 * time.Millisecond},
			{Freq: 1567.98, Wave: WaveSine, Dur: 160 * time.Millisecond, Attack: 4 * time.Millisecond, Release: 100 * time.Millisecond},
		},
	},
	types.ObjectProtostar: {
		Name:   "protostar",
		Volume: 0.45,
		Notes: []note{
			{Freq: 261.63, Wave: WaveSaw, Dur: 340 * time.Millisecond, Attack: 100 * time.Millisecond, Release: 180 * time.Millisecond},
		},
	},
}

// genericCue covers object types without a routing entry.
var genericCue = Cue{
	Name:   "generic",
	Volume: 0.4,
	Notes: []note{
		{Freq: 440.00, Wave: WaveSine, Dur: 200 * time.Millisecond, Attack: 10 * time.Millisecond, Release: 100 * time.Millisecond},
	},
}

// rareLayerCue is the shimmer layered on top of rare discoveries.
var rareLayerCue = Cue{
	Name:   "rare-layer",
	Volume: 0.35,
	Notes: []note{
		{Freq: 1567.98, Wave: WaveSine, Dur: 160 * time.Millisecond, Attack: 6 * time.Millisecond, Release: 90 * time.Millisecond},
		{Freq: 2093.00, Wave: WaveSine, Dur: 240 * time.Millisecond, Attack: 6 * time.Millisecond, Release: 160 * time.Millisecond},
	},
}

// regionCue announces crossing into a new cosmic region.
var regionCue = Cue{
	Name:   "region",
	Volume: 0.45,
	Notes: []note{
		{Freq: 196.00, Wave: WaveSine, Dur: 300 * time.Millisecond, Attack: 80 * time.Millisecond, Release: 140 * time.Millisecond},
		{Freq: 246.94, Wave: WaveSine, Dur: 300 * time.Millisecond, Attack: 20 * time.Millisecond, Release: 140 * time.Millisecond},
		{Freq: 293.66, Wave: WaveSine, Dur: 420 * time.Millisecond, Attack: 20 * time.Millisecond, Release: 240 * time.Millisecond},
	},
}

// warningCue is the black hole proximity alert.
var warningCue = Cue{
	Name:   "warning",
	Volume: 0.5,
	Notes: []note{
		{Freq: 98.00, Wave: WaveSquare, Dur: 150 * time.Millisecond, Attack: 4 * time.Millisecond, Release: 60 * time.Millisecond},
		{Freq: 98.00, Wave: WaveSquare, Dur: 150 * time.Millisecond, Attack: 4 * time.Millisecond, Release: 60 * time.Millisecond},
	},
}

// variantPitch scales the cue's note frequencies for a sub-variant so the
// three variants of a kind are audibly distinct.
var variantPitch = map[string]float64{
	"ice":        1.25,
	"rock":       1.0,
	"volcanic":   0.8,
	"wisp":       1.2,
	"globule":    1.0,
	"dense-core": 0.75,
	"pure":       1.2,
	"mixed":      1.0,
	"rare-earth": 0.8,
	"class-0":    0.8,
	"class-1":    1.0,
	"class-2":    1.25,
}

// DiscoveryCue resolves the cue for an object type and variant.
func DiscoveryCue(objectType types.ObjectType, variant string) Cue {
	cue, ok := discoveryCues[objectType]
	if !ok {
		cue = genericCue
	}

	pitch, ok := variantPitch[variant]
	if !ok || pitch == 1.0 {
		return cue
	}

	shifted := cue
	shifted.Notes = make([]note, len(cue.Notes))
	for i, n := range cue.Notes {
		n.Freq *= pitch
		shifted.Notes[i] = n
	}
	return shifted
}

// streamer builds the playable beep streamer for a cue at the given master
// volume.
func (c Cue) streamer(rate beep.SampleRate, masterVolume float64) beep.Streamer {
	parts := make([]beep.Streamer, len(c.Notes))
	for i, n := range c.Notes {
		parts[i] = NewEnvelope(NewTone(n.Freq, n.Dur, n.Wave, rate), n.Dur, n.Attack, n.Release, rate)
	}
	return NewGain(beep.Seq(parts...), c.Volume*masterVolume)
}

// Duration returns the total play time of the cue.
func (c Cue) Duration() time.Duration {
	var d time.Duration
	for _, n := range c.Notes {
		d += n.Dur
	}
	return d
}
