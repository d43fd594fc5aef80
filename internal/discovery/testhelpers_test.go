package discovery

import (
	"io"
	"log/slog"
	"time"

	"github.com/tekknoschtev/astral-surveyor/internal/boundary"
	"github.com/tekknoschtev/astral-surveyor/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testBoundary() *boundary.Boundary {
	return boundary.New(boundary.DefaultConfig(), testLogger())
}

// fakeCamera is a fixed-position camera whose projection treats the camera
// as the canvas center, matching the real renderer.
type fakeCamera struct {
	x, y float64
}

func (c *fakeCamera) X() float64 { return c.x }
func (c *fakeCamera) Y() float64 { return c.y }

func (c *fakeCamera) WorldToScreen(wx, wy float64, canvasWidth, canvasHeight int) (float64, float64) {
	return wx - c.x + float64(canvasWidth)/2, wy - c.y + float64(canvasHeight)/2
}

type fakeNamer struct {
	name string
}

func (n *fakeNamer) GenerateDisplayName(obj types.CelestialObject) string {
	if n.name != "" {
		return n.name
	}
	return "Object " + obj.Header().ID
}

// fakeAudio records every cue in call order.
type fakeAudio struct {
	calls []string
	panic bool
}

func (a *fakeAudio) PlayDiscovery(objectType types.ObjectType, variant string) {
	if a.panic {
		panic("audio device lost")
	}
	a.calls = append(a.calls, "discovery:"+string(objectType)+":"+variant)
}

func (a *fakeAudio) PlayRareLayer()       { a.calls = append(a.calls, "rare-layer") }
func (a *fakeAudio) PlayRegionDiscovery() { a.calls = append(a.calls, "region") }

// fakeScheduler captures scheduled tasks without running them, so tests
// assert on the delay and fire the task explicitly.
type fakeScheduler struct {
	delays []time.Duration
	tasks  []func()
}

func (s *fakeScheduler) Schedule(delay time.Duration, task func()) {
	s.delays = append(s.delays, delay)
	s.tasks = append(s.tasks, task)
}

func (s *fakeScheduler) runAll() {
	for _, t := range s.tasks {
		t()
	}
}

type fakeDisplay struct {
	entries []string
}

func (d *fakeDisplay) AddDiscovery(name, typeLabel string) {
	d.entries = append(d.entries, name+"|"+typeLabel)
}

type fakeLogbook struct {
	entries       []types.LogbookEntry
	notifications []string
	cleared       int
}

func (l *fakeLogbook) AddDiscovery(name, typeLabel string) {
	l.entries = append(l.entries, types.LogbookEntry{Name: name, Type: typeLabel})
}

func (l *fakeLogbook) AddNotification(message string) {
	l.notifications = append(l.notifications, message)
}

func (l *fakeLogbook) ClearHistory() {
	l.cleared++
	l.entries = nil
}

func (l *fakeLogbook) Discoveries() []types.LogbookEntry { return l.entries }

type fakeNotifier struct {
	messages []string
}

func (n *fakeNotifier) AddNotification(message string) {
	n.messages = append(n.messages, message)
}

type fakeChunkMarker struct {
	regions []string
	objects []string
}

func (m *fakeChunkMarker) MarkRegionDiscovered(regionType, name string, influence float64) {
	m.regions = append(m.regions, regionType)
}

func (m *fakeChunkMarker) MarkObjectDiscovered(objectID string, data map[string]any) {
	m.objects = append(m.objects, objectID)
}

func newTestObjectPipeline(audio AudioPort, sched Scheduler, display Display, logbook Logbook) *ObjectPipeline {
	p, err := NewObjectPipeline(ObjectPipelineConfig{
		Namer:     &fakeNamer{},
		Audio:     audio,
		Scheduler: sched,
		Display:   display,
		Logbook:   logbook,
		Errors:    testBoundary(),
		Logger:    testLogger(),
	})
	if err != nil {
		panic(err)
	}
	return p
}

func newTestRegionPipeline(audio AudioPort, logbook Logbook, chunks ChunkMarker) *RegionPipeline {
	p, err := NewRegionPipeline(RegionPipelineConfig{
		Audio:   audio,
		Logbook: logbook,
		Chunks:  chunks,
		Errors:  testBoundary(),
		Logger:  testLogger(),
	})
	if err != nil {
		panic(err)
	}
	return p
}
