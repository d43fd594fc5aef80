package audio

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tekknoschtev/astral-surveyor/internal/types"
)

const defaultSampleRate = beep.SampleRate(48000)

// Config controls coordinator initialization.
type Config struct {
	SampleRate beep.SampleRate
	// BufferLen is the speaker buffer length; larger is safer, smaller is
	// snappier.
	BufferLen time.Duration
	// Muted starts the coordinator silent. Playback state still advances
	// so unmuting picks up with the next cue.
	Muted  bool
	Volume float64
}

// DefaultConfig returns the coordinator defaults.
func DefaultConfig() Config {
	return Config{
		SampleRate: defaultSampleRate,
		BufferLen:  100 * time.Millisecond,
		Volume:     0.8,
	}
}

// Coordinator synthesizes and plays discovery cues. When no audio device
// is available it degrades to silent mode: every Play call is accepted and
// dropped, and the rest of the game never notices.
type Coordinator struct {
	mu    sync.Mutex
	mixer *beep.Mixer
	rate  beep.SampleRate

	muted      atomic.Bool
	silentMode atomic.Bool
	volume     atomic.Value // float64

	// sink overrides speaker playback in tests.
	sink func(beep.Streamer)

	logger *slog.Logger
}

// NewCoordinator initializes the speaker. Speaker failure is not an
// error: the coordinator comes up in silent mode and logs once.
func NewCoordinator(cfg Config, logger *slog.Logger) *Coordinator {
	if cfg.SampleRate == 0 {
		cfg.SampleRate = defaultSampleRate
	}
	if cfg.BufferLen == 0 {
		cfg.BufferLen = 100 * time.Millisecond
	}
	if cfg.Volume == 0 {
		cfg.Volume = 0.8
	}

	c := &Coordinator{
		mixer:  &beep.Mixer{},
		rate:   cfg.SampleRate,
		logger: logger.With("component", "audio"),
	}
	c.muted.Store(cfg.Muted)
	c.volume.Store(cfg.Volume)

	if err := speaker.Init(cfg.SampleRate, cfg.SampleRate.N(cfg.BufferLen)); err != nil {
		c.silentMode.Store(true)
		c.logger.Warn("no audio device, running silent", "error", err)
		return c
	}

	speaker.Play(c.mixer)
	return c
}

// newSilentCoordinator builds a coordinator that never touches the
// speaker; tests capture streamers through sink.
func newSilentCoordinator(logger *slog.Logger, sink func(beep.Streamer)) *Coordinator {
	c := &Coordinator{
		mixer:  &beep.Mixer{},
		rate:   defaultSampleRate,
		sink:   sink,
		logger: logger.With("component", "audio"),
	}
	c.volume.Store(0.8)
	return c
}

// PlayDiscovery plays the type-routed discovery cue.
func (c *Coordinator) PlayDiscovery(objectType types.ObjectType, variant string) {
	c.play(DiscoveryCue(objectType, variant))
}

// PlayRareLayer plays the shimmer layered onto rare discoveries.
func (c *Coordinator) PlayRareLayer() {
	c.play(rareLayerCue)
}

// PlayRegionDiscovery plays the region crossing cue.
func (c *Coordinator) PlayRegionDiscovery() {
	c.play(regionCue)
}

// PlayWarning plays the black hole proximity alert.
func (c *Coordinator) PlayWarning() {
	c.play(warningCue)
}

func (c *Coordinator) play(cue Cue) {
	if c.muted.Load() {
		return
	}

	s := cue.streamer(c.rate, c.Volume())

	if c.sink != nil {
		c.sink(s)
		return
	}
	if c.silentMode.Load() {
		return
	}

	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}

// SetMuted sets the mute state.
func (c *Coordinator) SetMuted(muted bool) { c.muted.Store(muted) }

// IsMuted reports the mute state.
func (c *Coordinator) IsMuted() bool { return c.muted.Load() }

// SetVolume sets the master volume, clamped to [0, 1].
func (c *Coordinator) SetVolume(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	c.volume.Store(v)
}

// Volume returns the master volume.
func (c *Coordinator) Volume() float64 {
	return c.volume.Load().(float64)
}

// Silent reports whether the coordinator is running without a device.
func (c *Coordinator) Silent() bool { return c.silentMode.Load() }

// Close stops all playing cues. The speaker itself stays initialized;
// beep has no teardown, clearing the mixer is enough.
func (c *Coordinator) Close() {
	if c.silentMode.Load() || c.sink != nil {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
}
