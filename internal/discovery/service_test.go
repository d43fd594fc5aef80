package discovery

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tekknoschtev/astral-surveyor/internal/types"
)

func newTestService(t *testing.T, audio AudioPort, sched Scheduler, display Display, logbook Logbook, marker ObjectMarker) *Service {
	t.Helper()

	objects := newTestObjectPipeline(audio, sched, display, logbook)
	regions := newTestRegionPipeline(audio, logbook, &fakeChunkMarker{})

	svc, err := NewService(ServiceConfig{
		Objects:  objects,
		Regions:  regions,
		Warnings: NewBlackHoleWarnings(&fakeNotifier{}),
		Marker:   marker,
		Logger:   testLogger(),
	})
	require.NoError(t, err)
	return svc
}

func TestProcessObjectDiscoveryRecordsEntry(t *testing.T) {
	audio := &fakeAudio{}
	display := &fakeDisplay{}
	logbook := &fakeLogbook{}
	svc := newTestService(t, audio, nil, display, logbook, nil)

	planet := &types.Planet{
		Body:       types.Body{ID: "planet_0_0_1", X: 120, Y: -40},
		PlanetType: "Rocky Planet",
	}
	entry := svc.ProcessObjectDiscovery(planet, &fakeCamera{})

	require.NotNil(t, entry)
	assert.True(t, planet.Discovered, "discovered flag set before side effects")
	assert.True(t, strings.HasPrefix(entry.ID, "discovery_1_"))
	assert.Equal(t, types.ObjectPlanet, entry.ObjectType)
	assert.Equal(t, "Rocky Planet", entry.Type)
	assert.Equal(t, types.RarityCommon, entry.Rarity)
	assert.Equal(t, "astral://120.0,-40.0", entry.ShareableURL)

	// Side effects: banner, logbook, audio, each exactly once.
	assert.Equal(t, []string{entry.Name + "|Rocky Planet"}, display.entries)
	require.Len(t, logbook.entries, 1)
	assert.Equal(t, []string{"discovery:planet:"}, audio.calls)

	got, ok := svc.Get(entry.ID)
	require.True(t, ok)
	assert.Same(t, entry, got)
	assert.Equal(t, 1, svc.Count())
}

func TestProcessObjectDiscoveryMarksChunkLayer(t *testing.T) {
	marker := &fakeChunkMarker{}
	svc := newTestService(t, nil, nil, nil, nil, marker)

	moon := &types.Moon{Body: types.Body{ID: "moon_0_0_2", X: 5, Y: 5}}
	svc.ProcessObjectDiscovery(moon, &fakeCamera{})

	assert.Equal(t, []string{"moon_0_0_2"}, marker.objects)
}

func TestRareDiscoverySchedulesLayeredCue(t *testing.T) {
	audio := &fakeAudio{}
	sched := &fakeScheduler{}
	svc := newTestService(t, audio, sched, nil, nil, nil)

	hole := &types.BlackHole{Body: types.Body{ID: "bh_1", X: 0, Y: 0}, BlackHoleType: "stellar"}
	svc.ProcessObjectDiscovery(hole, &fakeCamera{})

	require.Len(t, sched.delays, 1)
	assert.Equal(t, 200*time.Millisecond, sched.delays[0])
	assert.Equal(t, []string{"discovery:blackhole:"}, audio.calls, "rare layer not played until the scheduled task runs")

	sched.runAll()
	assert.Equal(t, []string{"discovery:blackhole:", "rare-layer"}, audio.calls)
}

func TestCommonDiscoveryDoesNotScheduleLayer(t *testing.T) {
	sched := &fakeScheduler{}
	svc := newTestService(t, &fakeAudio{}, sched, nil, nil, nil)

	star := &types.Star{Body: types.Body{ID: "star_1"}, StarType: "G-Type Star"}
	svc.ProcessObjectDiscovery(star, &fakeCamera{})

	assert.Empty(t, sched.tasks)
}

func TestAudioFailureDoesNotAbortDiscovery(t *testing.T) {
	audio := &fakeAudio{panic: true}
	logbook := &fakeLogbook{}
	svc := newTestService(t, audio, nil, nil, logbook, nil)

	comet := &types.Comet{Body: types.Body{ID: "comet_1"}}
	entry := svc.ProcessObjectDiscovery(comet, &fakeCamera{})

	require.NotNil(t, entry)
	assert.Equal(t, 1, svc.Count(), "entry recorded despite the audio panic")
	assert.Len(t, logbook.entries, 1, "logbook ran before the failing audio step")
}

func TestDiscoveryIDsAreSequential(t *testing.T) {
	svc := newTestService(t, nil, nil, nil, nil, nil)

	e1 := svc.ProcessObjectDiscovery(&types.Moon{Body: types.Body{ID: "m1"}}, &fakeCamera{})
	e2 := svc.ProcessObjectDiscovery(&types.Moon{Body: types.Body{ID: "m2"}}, &fakeCamera{})

	assert.True(t, strings.HasPrefix(e1.ID, "discovery_1_"))
	assert.True(t, strings.HasPrefix(e2.ID, "discovery_2_"))
	assert.NotEqual(t, e1.ID, e2.ID)
}

func TestProcessRegionDiscoveryDeduplicates(t *testing.T) {
	logbook := &fakeLogbook{}
	audio := &fakeAudio{}
	svc := newTestService(t, audio, nil, nil, logbook, nil)

	first := svc.ProcessRegionDiscovery("star-forge", "The Star Forge", &fakeCamera{x: 100, y: 200}, 0.9)
	second := svc.ProcessRegionDiscovery("star-forge", "The Star Forge", &fakeCamera{x: 9999, y: 9999}, 0.9)

	assert.Same(t, first, second, "second entry into the same region type is a no-op")
	assert.Equal(t, 1, svc.Count())
	assert.Equal(t, "region_star-forge", first.ID)
	assert.Equal(t, "Cosmic Region", first.Type)
	assert.True(t, first.Metadata.IsNotable, "influence above 0.8 flags the entry notable")

	// Side effects fired once: one logbook entry, one entering note, one cue.
	assert.Len(t, logbook.entries, 1)
	assert.Equal(t, []string{"Entering The Star Forge"}, logbook.notifications)
	assert.Equal(t, []string{"region"}, audio.calls)
}

func TestProcessRegionDiscoveryDistinctTypes(t *testing.T) {
	svc := newTestService(t, nil, nil, nil, nil, nil)

	svc.ProcessRegionDiscovery("void", "The Silent Void", &fakeCamera{}, 0.4)
	svc.ProcessRegionDiscovery("ancient-expanse", "Ancient Expanse", &fakeCamera{}, 0.5)

	assert.Equal(t, 2, svc.Count())

	e, ok := svc.Get("region_void")
	require.True(t, ok)
	assert.False(t, e.Metadata.IsNotable)
}

func TestExportImportRoundTrip(t *testing.T) {
	svc := newTestService(t, nil, nil, nil, nil, nil)

	svc.ProcessObjectDiscovery(&types.Nebula{Body: types.Body{ID: "n1", X: 1, Y: 2}, NebulaType: "emission"}, &fakeCamera{})
	svc.ProcessObjectDiscovery(&types.Moon{Body: types.Body{ID: "m1", X: 3, Y: 4}}, &fakeCamera{})
	svc.ProcessRegionDiscovery("galactic-drift", "Galactic Drift", &fakeCamera{}, 0.6)
	svc.SetNotes("region_galactic-drift", "windy out here")

	export := svc.Export()
	require.Len(t, export.Discoveries, 3)
	assert.Equal(t, 2, export.IDCounter)

	// Import into a fresh service restores the identical state.
	restored := newTestService(t, nil, nil, nil, nil, nil)
	restored.Import(export)

	assert.Equal(t, 3, restored.Count())
	for _, want := range export.Discoveries {
		got, ok := restored.Get(want.ID)
		require.True(t, ok, "missing entry %s", want.ID)
		assert.Equal(t, want, *got)
	}

	// The counter continues from the restored value, not from zero.
	e := restored.ProcessObjectDiscovery(&types.Comet{Body: types.Body{ID: "c1"}}, &fakeCamera{})
	assert.True(t, strings.HasPrefix(e.ID, "discovery_3_"))
}

func TestImportReplacesExistingState(t *testing.T) {
	svc := newTestService(t, nil, nil, nil, nil, nil)
	svc.ProcessObjectDiscovery(&types.Moon{Body: types.Body{ID: "m1"}}, &fakeCamera{})
	svc.ProcessObjectDiscovery(&types.Moon{Body: types.Body{ID: "m2"}}, &fakeCamera{})

	svc.Import(&types.DiscoveryExport{
		Discoveries: []types.DiscoveryEntry{{ID: "discovery_1_42", Name: "Lone Moon"}},
		IDCounter:   1,
	})

	// No merge: the map holds exactly the imported entries.
	assert.Equal(t, 1, svc.Count())
	_, ok := svc.Get("discovery_1_42")
	assert.True(t, ok)
}

func TestClearResetsEverything(t *testing.T) {
	svc := newTestService(t, nil, nil, nil, nil, nil)
	svc.ProcessObjectDiscovery(&types.Moon{Body: types.Body{ID: "m1"}}, &fakeCamera{})
	svc.ProcessRegionDiscovery("void", "The Void", &fakeCamera{}, 0.3)

	svc.Clear()

	assert.Equal(t, 0, svc.Count())

	// Counter restarts from one, and regions become discoverable again.
	e := svc.ProcessObjectDiscovery(&types.Moon{Body: types.Body{ID: "m2"}}, &fakeCamera{})
	assert.True(t, strings.HasPrefix(e.ID, "discovery_1_"))

	r := svc.ProcessRegionDiscovery("void", "The Void", &fakeCamera{}, 0.3)
	assert.Equal(t, "region_void", r.ID)
	assert.Equal(t, 2, svc.Count())
}

func TestSetNotes(t *testing.T) {
	svc := newTestService(t, nil, nil, nil, nil, nil)
	e := svc.ProcessObjectDiscovery(&types.Moon{Body: types.Body{ID: "m1"}}, &fakeCamera{})

	assert.True(t, svc.SetNotes(e.ID, "craters everywhere"))
	got, _ := svc.Get(e.ID)
	assert.Equal(t, "craters everywhere", got.Notes)

	assert.False(t, svc.SetNotes("discovery_99_0", "nope"))
}

func TestMoonDiscoveryIsNotable(t *testing.T) {
	svc := newTestService(t, nil, nil, nil, nil, nil)
	e := svc.ProcessObjectDiscovery(&types.Moon{Body: types.Body{ID: "m1"}}, &fakeCamera{})

	assert.Equal(t, types.RarityUncommon, e.Rarity)
	assert.True(t, e.Metadata.IsNotable)
}
