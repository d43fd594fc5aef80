package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tekknoschtev/astral-surveyor/internal/audio"
	"github.com/tekknoschtev/astral-surveyor/internal/boundary"
	"github.com/tekknoschtev/astral-surveyor/internal/config"
	"github.com/tekknoschtev/astral-surveyor/internal/discovery"
	"github.com/tekknoschtev/astral-surveyor/internal/events"
	"github.com/tekknoschtev/astral-surveyor/internal/logbook"
	"github.com/tekknoschtev/astral-surveyor/internal/logging"
	"github.com/tekknoschtev/astral-surveyor/internal/naming"
	"github.com/tekknoschtev/astral-surveyor/internal/orchestrator"
	"github.com/tekknoschtev/astral-surveyor/internal/registry"
	"github.com/tekknoschtev/astral-surveyor/internal/saveload"
	"github.com/tekknoschtev/astral-surveyor/internal/shell"
	"github.com/tekknoschtev/astral-surveyor/internal/storage"
	"github.com/tekknoschtev/astral-surveyor/internal/world"
)

// App is the composed service graph behind every command. Construction
// goes through the registry container so the wiring order is derived from
// declared dependencies rather than hand-maintained.
type App struct {
	Logger    *slog.Logger
	Ring      *logging.Ring
	Container *registry.Container

	Store      storage.Store
	Dispatcher *events.Dispatcher
	Errors     *boundary.Boundary
	Health     *boundary.Service
	Seeds      *world.SeedRegistry
	Chunks     *world.ChunkManager
	Ship       *shell.Ship
	Logbook    *logbook.Logbook
	Audio      *audio.Coordinator
	Scheduler  *audio.TaskScheduler
	Discovery  *discovery.Service
	Saves      *saveload.Service
	Settings   *config.Service
	Orch       *orchestrator.Orchestrator

	DataDir      string
	SettingsPath string
}

// resolvePaths fills in the default data directory and settings path when
// the flags were left empty.
func resolvePaths(dataDir, settingsPath string) (string, string, error) {
	if dataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", "", fmt.Errorf("cannot resolve data directory: %w", err)
		}
		dataDir = filepath.Join(base, "astral-surveyor")
	}
	if settingsPath == "" {
		settingsPath = filepath.Join(dataDir, "settings.yaml")
	}
	return dataDir, settingsPath, nil
}

// buildApp constructs the full service graph. Storage degrades to an
// in-memory store when SQLite cannot be opened; audio degrades to silent
// mode on its own when no output device exists.
func buildApp(dataDir, settingsPath, seed string, inMemory bool) (*App, error) {
	dataDir, settingsPath, err := resolvePaths(dataDir, settingsPath)
	if err != nil {
		return nil, err
	}

	// Settings gate the logger, so they load before everything else.
	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	logger, ring := logging.New(os.Stderr, settings.Log.Level, settings.Log.Format)

	c := registry.NewContainer(logger)
	reg := func(name string, deps []string, factory registry.Factory) {
		if err == nil {
			err = c.RegisterSingleton(name, deps, factory)
		}
	}

	reg("dispatcher", nil, func(map[string]any) (any, error) {
		return events.NewDispatcher(logger), nil
	})
	reg("errors", nil, func(map[string]any) (any, error) {
		return boundary.New(boundary.DefaultConfig(), logger), nil
	})
	reg("health", []string{"errors", "dispatcher"}, func(deps map[string]any) (any, error) {
		return boundary.NewService(deps["errors"].(*boundary.Boundary), deps["dispatcher"].(*events.Dispatcher), logger), nil
	})
	reg("store", nil, func(map[string]any) (any, error) {
		if inMemory {
			return storage.NewMemoryStore(), nil
		}
		if mkErr := os.MkdirAll(dataDir, 0o755); mkErr != nil {
			logger.Warn("data directory unavailable, using in-memory storage", "dir", dataDir, "error", mkErr)
			return storage.NewMemoryStore(), nil
		}
		store, openErr := storage.NewSQLiteStore(filepath.Join(dataDir, "surveyor.db"))
		if openErr != nil {
			logger.Warn("sqlite unavailable, using in-memory storage", "error", openErr)
			return storage.NewMemoryStore(), nil
		}
		return store, nil
	})
	reg("seeds", nil, func(map[string]any) (any, error) {
		if seed == "" {
			return world.NewRandomSeedRegistry(), nil
		}
		seeds := world.NewRandomSeedRegistry()
		if setErr := seeds.SetSeedString(seed); setErr != nil {
			return nil, fmt.Errorf("invalid seed %q: %w", seed, setErr)
		}
		return seeds, nil
	})
	reg("chunks", []string{"seeds"}, func(deps map[string]any) (any, error) {
		return world.NewChunkManager(deps["seeds"].(*world.SeedRegistry)), nil
	})
	reg("ship", nil, func(map[string]any) (any, error) {
		return shell.NewShip(), nil
	})
	reg("logbook", nil, func(map[string]any) (any, error) {
		return logbook.New(logger), nil
	})
	reg("audio", nil, func(map[string]any) (any, error) {
		cfg := audio.DefaultConfig()
		cfg.Muted = settings.Audio.Muted
		cfg.Volume = settings.Audio.Volume
		return audio.NewCoordinator(cfg, logger), nil
	})
	reg("scheduler", nil, func(map[string]any) (any, error) {
		return audio.NewTaskScheduler(logger), nil
	})
	reg("discovery", []string{"errors", "audio", "scheduler", "logbook", "chunks", "dispatcher"}, func(deps map[string]any) (any, error) {
		banner := shell.NewBanner(os.Stdout)
		chunks := deps["chunks"].(*world.ChunkManager)

		objects, pErr := discovery.NewObjectPipeline(discovery.ObjectPipelineConfig{
			Namer:     naming.NewNamer(),
			Audio:     deps["audio"].(*audio.Coordinator),
			Scheduler: deps["scheduler"].(*audio.TaskScheduler),
			Display:   banner,
			Logbook:   deps["logbook"].(*logbook.Logbook),
			Errors:    deps["errors"].(*boundary.Boundary),
			Logger:    logger,
		})
		if pErr != nil {
			return nil, pErr
		}
		regions, pErr := discovery.NewRegionPipeline(discovery.RegionPipelineConfig{
			Audio:   deps["audio"].(*audio.Coordinator),
			Logbook: deps["logbook"].(*logbook.Logbook),
			Chunks:  chunks,
			Errors:  deps["errors"].(*boundary.Boundary),
			Logger:  logger,
		})
		if pErr != nil {
			return nil, pErr
		}
		return discovery.NewService(discovery.ServiceConfig{
			Objects:    objects,
			Regions:    regions,
			Warnings:   discovery.NewBlackHoleWarnings(notifierFanout{banner, deps["logbook"].(*logbook.Logbook)}),
			Marker:     chunks,
			Dispatcher: deps["dispatcher"].(*events.Dispatcher),
			Logger:     logger,
		})
	})
	reg("saveload", []string{"store", "ship", "seeds", "chunks", "logbook", "discovery", "dispatcher"}, func(deps map[string]any) (any, error) {
		return saveload.New(saveload.Config{
			Store:      deps["store"].(storage.Store),
			Camera:     deps["ship"].(*shell.Ship),
			Seeds:      deps["seeds"].(*world.SeedRegistry),
			Chunks:     deps["chunks"].(*world.ChunkManager),
			Logbook:    deps["logbook"].(*logbook.Logbook),
			Discovery:  deps["discovery"].(*discovery.Service),
			Dispatcher: deps["dispatcher"].(*events.Dispatcher),
			Logger:     logger,
		})
	})
	reg("settings", []string{"dispatcher"}, func(deps map[string]any) (any, error) {
		return config.NewService(settingsPath, deps["dispatcher"].(*events.Dispatcher), logger)
	})
	reg("orchestrator", []string{"dispatcher", "audio", "saveload"}, func(deps map[string]any) (any, error) {
		return orchestrator.New(orchestrator.Config{
			Dispatcher:       deps["dispatcher"].(*events.Dispatcher),
			Audio:            deps["audio"].(*audio.Coordinator),
			Saver:            deps["saveload"].(*saveload.Service),
			Logger:           logger,
			AutosaveEnabled:  settings.Autosave.Enabled,
			AutosaveInterval: settings.Autosave.Interval,
		}), nil
	})
	if err != nil {
		return nil, fmt.Errorf("service registration failed: %w", err)
	}

	orch, err := c.Get("orchestrator")
	if err != nil {
		return nil, fmt.Errorf("service wiring failed: %w", err)
	}
	health, err := c.Get("health")
	if err != nil {
		return nil, fmt.Errorf("service wiring failed: %w", err)
	}
	cfgSvc, err := c.Get("settings")
	if err != nil {
		return nil, fmt.Errorf("service wiring failed: %w", err)
	}

	app := &App{
		Logger:       logger,
		Ring:         ring,
		Container:    c,
		DataDir:      dataDir,
		SettingsPath: settingsPath,
		Orch:         orch.(*orchestrator.Orchestrator),
		Health:       health.(*boundary.Service),
		Settings:     cfgSvc.(*config.Service),
	}
	// Singletons are cached, so these lookups see the instances built above.
	app.Store = mustGet[storage.Store](c, "store")
	app.Dispatcher = mustGet[*events.Dispatcher](c, "dispatcher")
	app.Errors = mustGet[*boundary.Boundary](c, "errors")
	app.Seeds = mustGet[*world.SeedRegistry](c, "seeds")
	app.Chunks = mustGet[*world.ChunkManager](c, "chunks")
	app.Ship = mustGet[*shell.Ship](c, "ship")
	app.Logbook = mustGet[*logbook.Logbook](c, "logbook")
	app.Audio = mustGet[*audio.Coordinator](c, "audio")
	app.Scheduler = mustGet[*audio.TaskScheduler](c, "scheduler")
	app.Discovery = mustGet[*discovery.Service](c, "discovery")
	app.Saves = mustGet[*saveload.Service](c, "saveload")

	app.Orch.Start()
	return app, nil
}

// notifierFanout delivers one notification to several sinks, so proximity
// warnings both print and land in the logbook feed.
type notifierFanout []interface{ AddNotification(message string) }

func (n notifierFanout) AddNotification(message string) {
	for _, sink := range n {
		sink.AddNotification(message)
	}
}

// mustGet resolves a cached singleton; registration already succeeded so a
// failure here is a programming error.
func mustGet[T any](c *registry.Container, name string) T {
	v, err := c.Get(name)
	if err != nil {
		panic(fmt.Sprintf("service %s not wired: %v", name, err))
	}
	return v.(T)
}

// Close tears the graph down in reverse dependency order.
func (a *App) Close() {
	a.Orch.Stop()
	a.Saves.DisableAutoSave()
	a.Scheduler.Close()
	a.Audio.Close()
	if err := a.Store.Close(); err != nil {
		a.Logger.Warn("storage close failed", "error", err)
	}
	a.Container.Dispose()
}
