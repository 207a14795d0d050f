// Package config provides the configuration loader for wikipath.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/wikipath/internal/core/domain"
	"go.trai.ch/wikipath/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var knownKeys = []string{"progress_interval", "cache", "log"}

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the settings file at path. A missing file yields the defaults;
// keys left out of the file keep their default values.
func (l *Loader) Load(path string) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	// #nosec G304 -- path is provided by the user
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return domain.Settings{}, errors.Join(domain.ErrConfigReadFailed, zerr.With(err, "path", path))
	}

	var file Wikifile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.Settings{}, errors.Join(domain.ErrConfigParseFailed, zerr.With(err, "path", path))
	}
	l.warnUnknownKeys(data, path)

	if err := apply(&settings, &file, filepath.Dir(path)); err != nil {
		return domain.Settings{}, zerr.With(err, "path", path)
	}
	return settings, nil
}

func apply(settings *domain.Settings, file *Wikifile, configDir string) error {
	if file.ProgressInterval != nil {
		if *file.ProgressInterval < 0 {
			return invalid("progress_interval", *file.ProgressInterval)
		}
		settings.ProgressInterval = *file.ProgressInterval
	}

	if file.Cache.Dir != "" {
		settings.CacheDir = resolveDir(configDir, file.Cache.Dir)
	}

	switch c := domain.Compression(file.Cache.Compression); c {
	case "":
	case domain.CompressionNone, domain.CompressionXZ:
		settings.Compression = c
	default:
		return invalid("cache.compression", file.Cache.Compression)
	}

	if file.Cache.FallbackOnCorrupt != nil {
		settings.FallbackOnCorrupt = *file.Cache.FallbackOnCorrupt
	}

	settings.JSONLogs = file.Log.JSON
	return nil
}

func invalid(key string, value any) error {
	return errors.Join(domain.ErrInvalidConfig, zerr.With(zerr.New(fmt.Sprintf("bad value for %s", key)), key, value))
}

// resolveDir interprets a relative cache directory against the config file location.
func resolveDir(configDir, dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Clean(filepath.Join(configDir, dir))
}

func (l *Loader) warnUnknownKeys(data []byte, path string) {
	if l.Logger == nil {
		return
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		if !slices.Contains(knownKeys, k) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		l.Logger.Warn(fmt.Sprintf("ignoring unknown key %q in %s", k, path))
	}
}
