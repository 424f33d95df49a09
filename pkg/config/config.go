// Package config loads the YAML settings shared by the dfa commands.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ha1tch/dfa-toolkit/pkg/animate"
)

// FileName is the config file name under the user's home directory.
const FileName = ".dfaedit.yaml"

// Config holds persistent settings.
type Config struct {
	Canvas    Canvas    `yaml:"canvas"`
	Animation Animation `yaml:"animation"`
	Log       Log       `yaml:"log"`
	Editor    Editor    `yaml:"editor"`
}

// Canvas sizes the drawing area.
type Canvas struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Supersample int     `yaml:"supersample"` // raster scale factor before downscaling
	CellWidth   float64 `yaml:"cell_width"`  // canvas units per terminal column
	CellHeight  float64 `yaml:"cell_height"` // canvas units per terminal row
}

// Animation holds simulation delays.
type Animation struct {
	FlickerInterval time.Duration `yaml:"flicker_interval"`
	FlickerCount    int           `yaml:"flicker_count"`
	PulseHold       time.Duration `yaml:"pulse_hold"`
	PulseGap        time.Duration `yaml:"pulse_gap"`
	CompositeHold   time.Duration `yaml:"composite_hold"`
}

// Log configures the slog handler.
type Log struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
	File   string `yaml:"file"`   // empty means stderr
}

// Editor holds terminal editor preferences.
type Editor struct {
	Sample int `yaml:"sample"` // sample loaded at start, 0 for none
}

// Default returns the built-in settings.
func Default() Config {
	t := animate.DefaultTiming()
	return Config{
		Canvas: Canvas{
			Width:       800,
			Height:      600,
			Supersample: 4,
			CellWidth:   8,
			CellHeight:  16,
		},
		Animation: Animation{
			FlickerInterval: t.FlickerInterval,
			FlickerCount:    t.FlickerCount,
			PulseHold:       t.PulseHold,
			PulseGap:        t.PulseGap,
			CompositeHold:   t.CompositeHold,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		Editor: Editor{
			Sample: 1,
		},
	}
}

// Path returns the default config file location.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(home, FileName)
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	content := append([]byte("# dfaedit configuration\n"), data...)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Validate rejects values the commands cannot work with.
func (c Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size %dx%d must be positive", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Canvas.Supersample < 1 {
		return fmt.Errorf("canvas supersample %d must be at least 1", c.Canvas.Supersample)
	}
	if c.Canvas.CellWidth <= 0 || c.Canvas.CellHeight <= 0 {
		return errors.New("canvas cell size must be positive")
	}
	if c.Animation.FlickerCount < 0 {
		return fmt.Errorf("animation flicker_count %d must not be negative", c.Animation.FlickerCount)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log format %q: want text or json", c.Log.Format)
	}
	return nil
}

// Timing converts the animation section for the sequencer.
func (a Animation) Timing() animate.Timing {
	return animate.Timing{
		FlickerInterval: a.FlickerInterval,
		FlickerCount:    a.FlickerCount,
		PulseHold:       a.PulseHold,
		PulseGap:        a.PulseGap,
		CompositeHold:   a.CompositeHold,
	}
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log level %q: want debug, info, warn or error", s)
}

// NewLogger builds a logger writing to w.
func (l Log) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(l.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// OpenLogger opens the configured log file, or uses fallback when none is
// set. The returned closer is never nil.
func (l Log) OpenLogger(fallback io.Writer) (*slog.Logger, io.Closer, error) {
	if l.File == "" {
		return l.NewLogger(fallback), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(l.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return l.NewLogger(fallback), io.NopCloser(nil), fmt.Errorf("open log file: %w", err)
	}
	return l.NewLogger(f), f, nil
}
