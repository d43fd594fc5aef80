package saveload

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tekknoschtev/astral-surveyor/internal/discovery"
	"github.com/tekknoschtev/astral-surveyor/internal/events"
	"github.com/tekknoschtev/astral-surveyor/internal/storage"
	"github.com/tekknoschtev/astral-surveyor/internal/types"
	"github.com/tekknoschtev/astral-surveyor/internal/world"
)

// Logbook is the slice of the logbook the save service needs: read the
// history for saving, replace it wholesale on load.
type Logbook interface {
	Discoveries() []types.LogbookEntry
	Restore(entries []types.LogbookEntry)
}

// Config wires the save/load service.
type Config struct {
	Store      storage.Store
	Camera     types.Camera
	Seeds      *world.SeedRegistry
	Chunks     *world.ChunkManager
	Logbook    Logbook
	Discovery  *discovery.Service
	Dispatcher *events.Dispatcher
	Logger     *slog.Logger
}

// Service owns the save slot: snapshot collection, structural validation,
// restore, and the autosave timer. Loads follow validate-then-apply: a
// save that fails validation leaves the running game untouched.
type Service struct {
	store      storage.Store
	camera     types.Camera
	seeds      *world.SeedRegistry
	chunks     *world.ChunkManager
	logbook    Logbook
	discovery  *discovery.Service
	dispatcher *events.Dispatcher
	logger     *slog.Logger

	mu            sync.Mutex
	sessionID     string
	sessionStart  time.Time
	playTimeBase  time.Duration
	now           func() time.Time
	saveThrottler *throttle

	// autosaveMu serializes timer replacement, so two overlapping
	// EnableAutoSave calls can never leave two tickers running.
	autosaveMu   sync.Mutex
	autosaveStop chan struct{}
	autosaveDone chan struct{}
}

// New creates the save/load service and opens a fresh play session.
func New(cfg Config) (*Service, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Camera == nil {
		return nil, fmt.Errorf("camera is required")
	}
	if cfg.Seeds == nil || cfg.Chunks == nil {
		return nil, fmt.Errorf("world state is required")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	s := &Service{
		store:      cfg.Store,
		camera:     cfg.Camera,
		seeds:      cfg.Seeds,
		chunks:     cfg.Chunks,
		logbook:    cfg.Logbook,
		discovery:  cfg.Discovery,
		dispatcher: cfg.Dispatcher,
		logger:     cfg.Logger.With("component", "saveload"),
		sessionID:  uuid.NewString(),
		now:        time.Now,
	}
	s.sessionStart = s.now()
	s.saveThrottler = newThrottle(discoverySaveInterval)
	return s, nil
}

// SetClock overrides the time source for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	s.sessionStart = now()
}

func (s *Service) clock() func() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// CollectGameState builds the full save snapshot from the live game.
// Optional camera capabilities (velocity, distance traveled) contribute
// only when the concrete camera implements them.
func (s *Service) CollectGameState() *types.SaveGameData {
	now := s.clock()()

	player := &types.PlayerState{
		X: s.camera.X(),
		Y: s.camera.Y(),
	}
	if v, ok := s.camera.(types.VelocityReader); ok {
		player.VelocityX = v.VelocityX()
		player.VelocityY = v.VelocityY()
	}
	if d, ok := s.camera.(types.DistanceReader); ok {
		player.DistanceTraveled = d.DistanceTraveled()
	}

	data := &types.SaveGameData{
		Version:   types.SaveVersion,
		Timestamp: now.UnixMilli(),
		Player:    player,
		World: &types.WorldState{
			CurrentSeed:        s.seeds.SeedString(),
			UniverseResetCount: s.seeds.ResetCount(),
		},
		Discoveries:       []types.LogbookEntry{},
		DiscoveredObjects: s.chunks.DiscoveredObjects(),
		Stats:             s.playStats(now),
	}

	if s.logbook != nil {
		if entries := s.logbook.Discoveries(); entries != nil {
			data.Discoveries = entries
		}
	}
	if s.discovery != nil {
		data.DiscoveryManager = s.discovery.Export()
	}
	return data
}

func (s *Service) playStats(now time.Time) types.PlayStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	elapsed := now.Sub(s.sessionStart)
	return types.PlayStats{
		SessionID:        s.sessionID,
		SessionStartTime: s.sessionStart.UnixMilli(),
		TotalPlayTime:    (s.playTimeBase + elapsed).Milliseconds(),
	}
}

// SaveGame snapshots the game into the save slot.
func (s *Service) SaveGame(ctx context.Context) error {
	data := s.CollectGameState()

	if err := s.store.Put(ctx, storage.KeySaveSlot, data); err != nil {
		return fmt.Errorf("writing save slot: %w", err)
	}

	if s.dispatcher != nil {
		s.dispatcher.Emit(events.EventSaveCompleted, data.Timestamp)
	}
	s.logger.Info("game saved", "discoveries", len(data.DiscoveredObjects))
	return nil
}

// LoadGame restores the game from the save slot. Returns false with a nil
// error when no save exists. Validation runs before any game state is
// touched; an invalid save is an error and the running game is unchanged.
func (s *Service) LoadGame(ctx context.Context) (bool, error) {
	var data types.SaveGameData
	found, err := s.store.Get(ctx, storage.KeySaveSlot, &data)
	if err != nil {
		return false, fmt.Errorf("reading save slot: %w", err)
	}
	if !found {
		return false, nil
	}

	if err := ValidateSaveData(&data); err != nil {
		return false, fmt.Errorf("save file rejected: %w", err)
	}

	s.restoreGameState(&data)

	if s.dispatcher != nil {
		s.dispatcher.Emit(events.EventLoadCompleted, data.Timestamp)
	}
	s.logger.Info("game loaded",
		"saved_at", data.Timestamp,
		"seed", data.World.CurrentSeed)
	return true, nil
}

// restoreGameState applies a validated save to the live game.
func (s *Service) restoreGameState(data *types.SaveGameData) {
	if w, ok := s.camera.(types.PositionWriter); ok {
		w.SetPosition(data.Player.X, data.Player.Y)
	}
	if w, ok := s.camera.(types.VelocityWriter); ok {
		w.SetVelocity(data.Player.VelocityX, data.Player.VelocityY)
	}

	// An unparseable seed keeps the current universe rather than failing
	// the whole load.
	if err := s.seeds.SetSeedString(data.World.CurrentSeed); err != nil {
		s.logger.Warn("save has invalid seed, keeping current universe",
			"seed", data.World.CurrentSeed, "error", err)
	} else {
		s.seeds.SetResetCount(data.World.UniverseResetCount)
		s.chunks.InvalidateCache()
	}

	s.chunks.RestoreDiscoveredObjects(data.DiscoveredObjects)

	if s.logbook != nil {
		s.logbook.Restore(data.Discoveries)
	}

	if s.discovery != nil {
		s.discovery.Clear()
		if data.DiscoveryManager != nil {
			s.discovery.Import(data.DiscoveryManager)
		}
	}

	// Rewind the session start so play time accounting continues from the
	// saved total instead of restarting at zero.
	s.mu.Lock()
	s.playTimeBase = time.Duration(data.Stats.TotalPlayTime) * time.Millisecond
	s.sessionStart = s.now()
	s.mu.Unlock()
}

// HasSave reports whether the save slot is occupied.
func (s *Service) HasSave(ctx context.Context) (bool, error) {
	_, found, err := s.store.GetEnvelope(ctx, storage.KeySaveSlot)
	return found, err
}

// DeleteSave clears the save slot.
func (s *Service) DeleteSave(ctx context.Context) error {
	return s.store.Delete(ctx, storage.KeySaveSlot)
}

// SessionID returns this session's identifier.
func (s *Service) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}
