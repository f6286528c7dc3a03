package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/highrow623/pseudoregalia-archipelago/rules"
	"github.com/highrow623/pseudoregalia-archipelago/tags"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

const DefaultSocketPath = "/tmp/tricklogic.sock"

// Config is read from a YAML file. Settings can then be overridden by
// environment variables; players come from the file only.
type Config struct {
	Settings `yaml:",inline"`
	Players  []rules.PlayerOptions `yaml:"players"`
}

type Settings struct {
	CatalogPath   string      `yaml:"catalog" env:"TRICKLOGIC_CATALOG"`
	WorldPath     string      `yaml:"world" env:"TRICKLOGIC_WORLD"`
	SocketPath    string      `yaml:"socket" env:"TRICKLOGIC_SOCKET"`
	LogLevel      string      `yaml:"log_level" env:"TRICKLOGIC_LOG_LEVEL"`
	ClosureEngine tags.Engine `yaml:"closure_engine" env:"TRICKLOGIC_CLOSURE_ENGINE"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{Settings: Settings{
		SocketPath:    DefaultSocketPath,
		LogLevel:      "info",
		ClosureEngine: tags.EngineWorklist,
	}}
}

// Load reads path (skipped when empty), applies environment overrides and
// validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("open config %s: %w", path, err)
		}
		defer f.Close()
		if err := decode(f, &cfg); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg.Settings); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// Validate checks the fields that cannot be checked by decoding alone.
func (c *Config) Validate() error {
	if c.CatalogPath == "" {
		return fmt.Errorf("%w: catalog path is required", ErrInvalidConfig)
	}
	if _, err := tags.NewResolver(c.ClosureEngine); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	seen := make(map[int]bool, len(c.Players))
	for _, p := range c.Players {
		if p.Player <= 0 {
			return fmt.Errorf("%w: player id %d must be positive", ErrInvalidConfig, p.Player)
		}
		if seen[p.Player] {
			return fmt.Errorf("%w: duplicate player id %d", ErrInvalidConfig, p.Player)
		}
		seen[p.Player] = true
	}
	return nil
}

// Level parses LogLevel. Empty means info.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
