// Package config loads and persists reader settings as TOML.
//
// Settings live in a single file under the user configuration directory
// (railreader2/config.toml). Loading never fails the application: a
// missing file yields defaults and writes them back, and a corrupt file
// yields defaults with a warning.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/sjvrensburg/railreader2/model"
	"github.com/sjvrensburg/railreader2/rail"
)

// Config holds the user-tunable reader settings in their serialized
// form. Durations are stored as milliseconds so the TOML stays plain
// numbers; navigable classes are stored by name so the file remains
// readable and survives class table growth.
type Config struct {
	// ZoomThreshold is the zoom level at which rail mode activates.
	ZoomThreshold float64 `toml:"zoom_threshold"`

	// SnapDurationMS is the snap animation length in milliseconds.
	SnapDurationMS int `toml:"snap_duration_ms"`

	// ScrollSpeedStart is the horizontal scroll speed in page points
	// per second at the start of a hold.
	ScrollSpeedStart float64 `toml:"scroll_speed_start"`

	// ScrollSpeedMax is the horizontal scroll speed after a full ramp.
	ScrollSpeedMax float64 `toml:"scroll_speed_max"`

	// ScrollRampTimeMS is the hold duration in milliseconds over which
	// scroll speed ramps from start to max.
	ScrollRampTimeMS int `toml:"scroll_ramp_time_ms"`

	// LookaheadPages is how many upcoming pages the background worker
	// may prefetch.
	LookaheadPages int `toml:"lookahead_pages"`

	// NavigableClasses lists the layout class names the line cursor
	// visits. Unknown names are ignored on load.
	NavigableClasses []string `toml:"navigable_classes"`
}

// Default returns the built-in settings.
func Default() Config {
	navigable := model.DefaultNavigableClasses()
	names := make([]string, 0, len(navigable))
	for _, name := range model.LayoutClasses {
		if navigable[model.ClassID(name)] {
			names = append(names, name)
		}
	}
	return Config{
		ZoomThreshold:    3.0,
		SnapDurationMS:   300,
		ScrollSpeedStart: 10.0,
		ScrollSpeedMax:   50.0,
		ScrollRampTimeMS: 1500,
		LookaheadPages:   2,
		NavigableClasses: names,
	}
}

// DefaultPath returns the settings file location under the user
// configuration directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "railreader2", "config.toml"), nil
}

// Load reads settings from the given TOML file.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Default(), fmt.Errorf("config: load %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes settings to the given path, creating parent directories
// as needed.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("config: encode %s: %w", path, err)
	}
	return nil
}

// LoadOrDefault loads settings from the default path. A missing file
// writes and returns the defaults; any other failure logs a warning and
// returns the defaults. It never fails.
func LoadOrDefault(logger *log.Logger) Config {
	if logger == nil {
		logger = log.Default()
	}

	path, err := DefaultPath()
	if err != nil {
		logger.Warn("using default settings", "err", err)
		return Default()
	}

	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		cfg := Default()
		if saveErr := cfg.Save(path); saveErr != nil {
			logger.Warn("could not write default settings", "err", saveErr)
		}
		return cfg
	}

	cfg, err := Load(path)
	if err != nil {
		logger.Warn("using default settings", "err", err)
		return Default()
	}
	return cfg
}

// NavigableSet resolves the configured class names to a class ID set.
// Unknown names are skipped so stale entries don't break loading.
func (c Config) NavigableSet() map[int]bool {
	set := make(map[int]bool, len(c.NavigableClasses))
	for _, name := range c.NavigableClasses {
		if id := model.ClassID(name); id >= 0 {
			set[id] = true
		}
	}
	return set
}

// Rail converts the serialized settings to a rail navigation config.
func (c Config) Rail() rail.Config {
	return rail.Config{
		ZoomThreshold:    c.ZoomThreshold,
		SnapDuration:     time.Duration(c.SnapDurationMS) * time.Millisecond,
		ScrollSpeedStart: c.ScrollSpeedStart,
		ScrollSpeedMax:   c.ScrollSpeedMax,
		ScrollRampTime:   time.Duration(c.ScrollRampTimeMS) * time.Millisecond,
	}
}
