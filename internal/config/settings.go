package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings is the runtime view of the player-facing settings.
type Settings struct {
	Audio    AudioSettings
	Autosave AutosaveSettings
	Log      LogSettings
	// DataDir is where the save database lives. Empty means the platform
	// default under the user config directory.
	DataDir string
}

// AudioSettings controls the synthesized cue playback.
type AudioSettings struct {
	// Volume is the master volume in [0, 1].
	Volume float64
	Muted  bool
}

// AutosaveSettings controls the background save timer.
type AutosaveSettings struct {
	Enabled  bool
	Interval time.Duration
}

// LogSettings controls the structured logger.
type LogSettings struct {
	// Level is one of debug, info, warn, error.
	Level string
	// Format is text or json.
	Format string
}

// settingsFile is the YAML shape of the settings file. Durations are
// strings ("30s", "2m") so the file stays hand-editable.
type settingsFile struct {
	Audio struct {
		Volume *float64 `yaml:"volume"`
		Muted  *bool    `yaml:"muted"`
	} `yaml:"audio"`
	Autosave struct {
		Enabled  *bool  `yaml:"enabled"`
		Interval string `yaml:"interval"`
	} `yaml:"autosave"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	DataDir string `yaml:"data_dir"`
}

// minAutosaveInterval guards against save loops tight enough to hitch the
// game.
const minAutosaveInterval = 5 * time.Second

// DefaultSettings returns the out-of-the-box settings.
func DefaultSettings() *Settings {
	return &Settings{
		Audio: AudioSettings{
			Volume: 0.8,
		},
		Autosave: AutosaveSettings{
			Enabled:  true,
			Interval: 5 * time.Minute,
		},
		Log: LogSettings{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks the settings for out-of-range values.
func (s *Settings) Validate() error {
	if s.Audio.Volume < 0 || s.Audio.Volume > 1 {
		return fmt.Errorf("audio volume %v out of range [0, 1]", s.Audio.Volume)
	}
	if s.Autosave.Interval < minAutosaveInterval {
		return fmt.Errorf("autosave interval %v below minimum %v", s.Autosave.Interval, minAutosaveInterval)
	}
	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", s.Log.Level)
	}
	switch s.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", s.Log.Format)
	}
	return nil
}

// LoadSettings reads the settings file at path, merged over defaults. A
// missing file returns the defaults without error; a malformed or invalid
// file is an error.
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}

	var file settingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing settings file: %w", err)
	}

	// Pointer fields distinguish "absent, keep default" from an explicit
	// false/zero in the file.
	if file.Audio.Volume != nil {
		settings.Audio.Volume = *file.Audio.Volume
	}
	if file.Audio.Muted != nil {
		settings.Audio.Muted = *file.Audio.Muted
	}
	if file.Autosave.Enabled != nil {
		settings.Autosave.Enabled = *file.Autosave.Enabled
	}
	if file.Autosave.Interval != "" {
		interval, err := time.ParseDuration(file.Autosave.Interval)
		if err != nil {
			return nil, fmt.Errorf("invalid autosave interval: %w", err)
		}
		settings.Autosave.Interval = interval
	}
	if file.Log.Level != "" {
		settings.Log.Level = file.Log.Level
	}
	if file.Log.Format != "" {
		settings.Log.Format = file.Log.Format
	}
	if file.DataDir != "" {
		settings.DataDir = file.DataDir
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings file rejected: %w", err)
	}
	return settings, nil
}

// SaveSettings writes the settings to path atomically: a temp file in the
// same directory is renamed over the target, so a crash mid-write never
// leaves a truncated file.
func SaveSettings(path string, s *Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	var file settingsFile
	file.Audio.Volume = &s.Audio.Volume
	file.Audio.Muted = &s.Audio.Muted
	file.Autosave.Enabled = &s.Autosave.Enabled
	file.Autosave.Interval = s.Autosave.Interval.String()
	file.Log.Level = s.Log.Level
	file.Log.Format = s.Log.Format
	file.DataDir = s.DataDir

	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.yaml")
	if err != nil {
		return fmt.Errorf("creating temp settings file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing settings file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing settings file: %w", err)
	}
	return nil
}

// DefaultSettingsPath resolves the standard location of the settings file.
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config directory: %w", err)
	}
	return filepath.Join(dir, "astral-surveyor", "settings.yaml"), nil
}
