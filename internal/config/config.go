package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/dshills/tmplwalk/internal/logger"
	"github.com/dshills/tmplwalk/internal/render"
	"github.com/dshills/tmplwalk/internal/walker"
)

// Settings represents the tmplwalk configuration.
type Settings struct {
	Namespace string `json:"namespace" env:"TMPLWALK_NAMESPACE"`
	Extension string `json:"extension,omitempty" env:"TMPLWALK_EXTENSION"`
	Output    string `json:"output,omitempty" env:"TMPLWALK_OUTPUT"`
	Engine    string `json:"engine" env:"TMPLWALK_ENGINE"`
	LogLevel  string `json:"logLevel" env:"TMPLWALK_LOG_LEVEL"`
}

// Default returns Settings with all defaults applied.
func Default() Settings {
	return Settings{
		Namespace: walker.DefaultNamespace,
		Engine:    render.DefaultEngine,
		LogLevel:  logger.DefaultLevel,
	}
}

// ConfigDir returns the platform-appropriate config directory for tmplwalk.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tmplwalk"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "tmplwalk"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "tmplwalk"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "tmplwalk"), nil
	default:
		return filepath.Join(home, ".config", "tmplwalk"), nil
	}
}

// ConfigPath returns the full path to the settings file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads settings from the settings file. Returns zero Settings and
// nil error if the file doesn't exist.
func LoadFile() (Settings, error) {
	path, err := ConfigPath()
	if err != nil {
		return Settings{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("reading config file: %w", err)
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parsing config file: %w", err)
	}
	return s, nil
}

// Save writes the settings to the settings file.
func Save(s Settings) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective settings by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-empty values should be set).
func Load(overrides map[string]string) (Settings, error) {
	s, _, err := LoadWithOrigins(overrides)
	return s, err
}

// LoadWithOrigins is Load that also reports which layer supplied each
// effective value.
func LoadWithOrigins(overrides map[string]string) (Settings, Origins, error) {
	s := Default()
	origins := make(Origins, len(Keys()))
	origins.record(s, OriginDefault)

	layers := []struct {
		origin Origin
		load   func() (Settings, error)
	}{
		{OriginFile, LoadFile},
		{OriginEnv, envLayer},
		{OriginFlag, func() (Settings, error) { return overrideLayer(overrides) }},
	}
	for _, l := range layers {
		layer, err := l.load()
		if err != nil {
			return Settings{}, nil, err
		}
		if err := mergeLayer(&s, layer); err != nil {
			return Settings{}, nil, err
		}
		origins.record(layer, l.origin)
	}

	return s, origins, nil
}

// Update sets one key in the settings file, starting from the defaults when
// the file does not exist yet. The file is left untouched if the result is
// invalid.
func Update(key, value string) (Settings, error) {
	s := Default()
	fileSettings, err := LoadFile()
	if err != nil {
		return Settings{}, err
	}
	if err := mergeLayer(&s, fileSettings); err != nil {
		return Settings{}, err
	}
	if err := SetField(&s, key, value); err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	if err := Save(s); err != nil {
		return Settings{}, fmt.Errorf("saving config: %w", err)
	}
	return s, nil
}

// mergeLayer copies the non-empty fields of src over dst.
func mergeLayer(dst *Settings, src Settings) error {
	if err := mergo.Merge(dst, src, mergo.WithOverride); err != nil {
		return fmt.Errorf("merging settings: %w", err)
	}
	return nil
}

func envLayer() (Settings, error) {
	var fromEnv Settings
	if err := env.Parse(&fromEnv); err != nil {
		return Settings{}, fmt.Errorf("error getting env configs: %w", err)
	}
	return fromEnv, nil
}

// overrideLayer turns flag overrides into a Settings layer, skipping empty values.
func overrideLayer(overrides map[string]string) (Settings, error) {
	var layer Settings
	for key, value := range overrides {
		if value == "" {
			continue
		}
		if err := SetField(&layer, key, value); err != nil {
			return Settings{}, err
		}
	}
	return layer, nil
}

// SetField sets a single settings field by key name. Returns error if key is unknown.
func SetField(s *Settings, key, value string) error {
	switch key {
	case "namespace":
		s.Namespace = value
	case "extension":
		s.Extension = value
	case "output":
		s.Output = value
	case "engine":
		s.Engine = value
	case "logLevel":
		s.LogLevel = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// Field returns the value of a settings key. Returns error if key is unknown.
func (s Settings) Field(key string) (string, error) {
	switch key {
	case "namespace":
		return s.Namespace, nil
	case "extension":
		return s.Extension, nil
	case "output":
		return s.Output, nil
	case "engine":
		return s.Engine, nil
	case "logLevel":
		return s.LogLevel, nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

// Validate reports every invalid field of s.
func (s Settings) Validate() error {
	var errs []error
	if err := walker.ValidateNamespace(s.Namespace); err != nil {
		errs = append(errs, err)
	}
	if _, err := render.Get(s.Engine); err != nil {
		errs = append(errs, err)
	}
	if _, err := logger.ParseLevel(s.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
