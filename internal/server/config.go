package server

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/HamletDuFromage/x-stitch/pkg/errors"
)

// Backend names accepted in the [cache] and [store] config sections.
const (
	CacheMemory = "memory"
	CacheFile   = "file"
	CacheRedis  = "redis"
	CacheNone   = "none"

	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// DefaultMaxCells caps width*height per request. A 500x500 pattern is
// already far beyond anything stitchable.
const DefaultMaxCells = 250_000

// Config is the server configuration, loaded from a TOML file.
type Config struct {
	Addr string `toml:"addr"`

	// MaxCells limits width*height on generate and render requests.
	MaxCells int `toml:"max_cells"`

	Cache CacheConfig `toml:"cache"`
	Store StoreConfig `toml:"store"`
}

// CacheConfig selects and configures the render cache backend.
type CacheConfig struct {
	Backend string   `toml:"backend"`
	Dir     string   `toml:"dir"`
	TTL     duration `toml:"ttl"`

	Redis RedisConfig `toml:"redis"`
}

// duration lets TOML decode values like ttl = "720h".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// RedisConfig mirrors cache.RedisConfig for TOML decoding.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// StoreConfig selects and configures the pattern library backend.
type StoreConfig struct {
	Backend string `toml:"backend"`

	Mongo MongoConfig `toml:"mongo"`
}

// MongoConfig mirrors store.MongoConfig for TOML decoding.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// DefaultConfig returns a config suitable for local use: memory cache,
// memory store, default listen address.
func DefaultConfig() Config {
	return Config{
		Addr:     DefaultAddr,
		MaxCells: DefaultMaxCells,
		Cache:    CacheConfig{Backend: CacheMemory},
		Store:    StoreConfig{Backend: StoreMemory},
	}
}

// LoadConfig reads a TOML config file and applies defaults for anything
// left unset. An empty path returns DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.MaxCells <= 0 {
		c.MaxCells = DefaultMaxCells
	}

	switch c.Cache.Backend {
	case CacheMemory, CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache.redis.addr is required for the redis backend")
		}
	case "":
		c.Cache.Backend = CacheMemory
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}

	switch c.Store.Backend {
	case StoreMemory:
	case StoreMongo:
		if c.Store.Mongo.URI == "" {
			return errors.New(errors.ErrCodeInvalidInput, "store.mongo.uri is required for the mongo backend")
		}
	case "":
		c.Store.Backend = StoreMemory
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q", c.Store.Backend)
	}

	return nil
}
