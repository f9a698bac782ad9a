// Package config loads pathplay settings from a TOML file.
//
// The default location follows the XDG base directory layout:
//
//	$XDG_CONFIG_HOME/pathplay/config.toml   (falls back to ~/.config)
//
// A config file looks like:
//
//	interval_ms = 500
//	nodes = 8
//	density = 0.4
//	max_weight = 9
//	cache_dir = "/tmp/pathplay"
//	redis_addr = "redis://localhost:6379/0"
//	listen = ":8080"
//
// Every field is optional. Command-line flags override file values.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/matzehuels/pathplay/pkg/errors"
	"github.com/matzehuels/pathplay/pkg/graph"
	"github.com/matzehuels/pathplay/pkg/playback"
)

// AppName names the config and cache directories.
const AppName = "pathplay"

// DefaultListen is the server address used when none is configured.
const DefaultListen = ":8080"

// Config holds user settings.
type Config struct {
	IntervalMS int     `toml:"interval_ms"`
	Nodes      int     `toml:"nodes"`
	Density    float64 `toml:"density"`
	MaxWeight  int     `toml:"max_weight"`
	Seed       uint64  `toml:"seed,omitempty"`
	CacheDir   string  `toml:"cache_dir,omitempty"`
	RedisAddr  string  `toml:"redis_addr,omitempty"`
	Listen     string  `toml:"listen"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		IntervalMS: int(playback.DefaultInterval / time.Millisecond),
		Nodes:      6,
		Density:    graph.DefaultDensity,
		MaxWeight:  graph.DefaultMaxWeight,
		Listen:     DefaultListen,
	}
}

// Interval returns the tick interval.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMS) * time.Millisecond
}

// RandomOptions returns the random graph settings.
func (c *Config) RandomOptions() graph.RandomOptions {
	return graph.RandomOptions{Density: c.Density, MaxWeight: c.MaxWeight, Seed: c.Seed}
}

// Validate checks every field against the same bounds the graph and player
// enforce.
func (c *Config) Validate() error {
	if err := apperrors.ValidateInterval(c.Interval()); err != nil {
		return err
	}
	if err := apperrors.ValidateNodeCount(c.Nodes); err != nil {
		return err
	}
	if err := apperrors.ValidateDensity(c.Density); err != nil {
		return err
	}
	return apperrors.ValidateWeight(c.MaxWeight)
}

// Dir returns the config directory, honouring XDG_CONFIG_HOME.
func Dir() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// DefaultPath returns the config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config at path on top of [Default]. An empty path means
// [DefaultPath], and a missing default file is not an error. Unknown keys
// are rejected so typos do not pass silently.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if explicit {
				return nil, apperrors.Wrap(apperrors.ErrCodeNotFound, err, "config %s", path)
			}
			return Default(), nil
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.GetCode(err), err, "config %s", path)
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
