// Package config loads game settings from defaults, an optional TOML file and environment overrides
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/lixenwraith/vi-snake/grid"
)

// DefaultConfigFile is read from the working directory when no path is given
const DefaultConfigFile = "vi-snake.toml"

// Environment overrides
const (
	EnvAudioEnabled = "VI_SNAKE_AUDIO_ENABLED"
	EnvSeed         = "VI_SNAKE_SEED"
	EnvTick         = "VI_SNAKE_TICK"
)

// Duration is a time.Duration that decodes from strings like "83ms"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type Config struct {
	Grid  GridConfig  `toml:"grid"`
	Game  GameConfig  `toml:"game"`
	Keys  KeyConfig   `toml:"keys"`
	Audio AudioConfig `toml:"audio"`
}

type GridConfig struct {
	Width    int     `toml:"width"`
	Height   int     `toml:"height"`
	CellSize float64 `toml:"cell_size"` // render-space edge length of one cell
}

type GameConfig struct {
	StartLength  int      `toml:"start_length"`
	Tick         Duration `toml:"tick"`
	RestartDelay Duration `toml:"restart_delay"` // restart presses are ignored this long after game over, 0 = restart at once
	Seed         uint64   `toml:"seed"`          // 0 = random
}

type KeyConfig struct {
	Restart string `toml:"restart"`
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // 0.0-1.0
}

// Default returns the built-in settings: a 60x35 field stepping 12 times per second
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			Width:    60,
			Height:   35,
			CellSize: 20,
		},
		Game: GameConfig{
			StartLength: 3,
			Tick:        Duration{time.Second / 12},
		},
		Keys: KeyConfig{
			Restart: "r",
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.6,
		},
	}
}

// Load applies, in order: defaults, the file at path (or DefaultConfigFile if present), environment overrides
// An explicit path that does not exist is an error
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" && fileExists(DefaultConfigFile) {
		path = DefaultConfigFile
	}
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(string(data)); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := c.decode(string(data)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func (c *Config) decode(data string) error {
	md, err := toml.Decode(data, c)
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown config keys: %v", undecoded)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvAudioEnabled); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAudioEnabled, err)
		}
		c.Audio.Enabled = b
	}
	if v := os.Getenv(EnvSeed); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Game.Seed = n
	}
	if v := os.Getenv(EnvTick); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTick, err)
		}
		c.Game.Tick = Duration{d}
	}
	return nil
}

// Validate checks that the settings describe a playable game
func (c *Config) Validate() error {
	var errs []error

	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		errs = append(errs, fmt.Errorf("grid size %dx%d must be positive", c.Grid.Width, c.Grid.Height))
	}
	if c.Grid.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("cell_size %v must be positive", c.Grid.CellSize))
	}
	if c.Game.StartLength < 1 {
		errs = append(errs, fmt.Errorf("start_length %d must be at least 1", c.Game.StartLength))
	} else if c.Grid.Height > 0 && c.Game.StartLength > c.Grid.Height/2+1 {
		// Body is laid downward from the center row
		errs = append(errs, fmt.Errorf("start_length %d does not fit a field of height %d", c.Game.StartLength, c.Grid.Height))
	}
	if c.Game.Tick.Duration <= 0 {
		errs = append(errs, fmt.Errorf("tick %v must be positive", c.Game.Tick.Duration))
	}
	if c.Game.RestartDelay.Duration < 0 {
		errs = append(errs, fmt.Errorf("restart_delay %v must not be negative", c.Game.RestartDelay.Duration))
	}
	if utf8.RuneCountInString(c.Keys.Restart) != 1 {
		errs = append(errs, fmt.Errorf("restart key %q must be a single character", c.Keys.Restart))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio volume %v must be within [0,1]", c.Audio.Volume))
	}

	return errors.Join(errs...)
}

// Field returns the play area described by the grid settings
func (c *Config) Field() grid.Field {
	return grid.Field{Width: c.Grid.Width, Height: c.Grid.Height, CellSize: c.Grid.CellSize}
}

// RestartRune returns the restart key binding
func (c *Config) RestartRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Keys.Restart)
	return r
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
