// Package config loads TOML configuration for the CLI and server.
//
// Configuration is optional: every field has a working default, and a missing
// config file is not an error. The lookup order is an explicit --config path,
// the ORGCANVAS_CONFIG environment variable, then
// ~/.config/orgcanvas/config.toml.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/orgcanvas/pkg/errors"
)

// Store backend names accepted in [store].backend.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config is the root configuration document.
type Config struct {
	Store  StoreConfig  `toml:"store"`
	Render RenderConfig `toml:"render"`
	Serve  ServeConfig  `toml:"serve"`
}

// StoreConfig selects and configures the snapshot persistence backend.
type StoreConfig struct {
	// Backend is one of file, memory, redis, mongo.
	Backend string `toml:"backend"`

	// Dir is the chart directory for the file backend. Empty uses
	// ~/.config/orgcanvas/charts/.
	Dir string `toml:"dir"`

	Redis RedisConfig `toml:"redis"`
	Mongo MongoConfig `toml:"mongo"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig configures the mongo backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// RenderConfig holds export defaults.
type RenderConfig struct {
	// Format is the default export format: svg, png or dot.
	Format string `toml:"format"`

	// Width and Height size the viewport used for fit-to-content when
	// rendering. Zero uses 1200x800.
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// ServeConfig holds HTTP server settings.
type ServeConfig struct {
	// Addr is the listen address. Empty uses ":8080".
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Store:  StoreConfig{Backend: BackendFile},
		Render: RenderConfig{Format: "svg", Width: 1200, Height: 800},
		Serve:  ServeConfig{Addr: ":8080"},
	}
}

// Load reads configuration from path. An empty path falls back to
// ORGCANVAS_CONFIG, then the default location; a missing file at a fallback
// location returns Default(), while a missing explicit path is an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if path == "" {
		path = os.Getenv("ORGCANVAS_CONFIG")
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Default(), nil
		}
		path = filepath.Join(home, ".config", "orgcanvas", "config.toml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML configuration, applying defaults for omitted fields.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values against their accepted sets.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendMemory, BackendRedis, BackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}
	switch c.Render.Format {
	case "svg", "png", "dot":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown render format %q", c.Render.Format)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render width and height must be positive")
	}
	if c.Store.Backend == BackendRedis && c.Store.Redis.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "redis backend requires store.redis.addr")
	}
	if c.Store.Backend == BackendMongo && c.Store.Mongo.URI == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "mongo backend requires store.mongo.uri")
	}
	return nil
}
