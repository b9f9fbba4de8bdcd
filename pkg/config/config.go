// Package config loads palletizer settings from a TOML file.
//
// A missing path yields [Default]. Values present in the file replace the
// defaults; CLI flags override both (see internal/cli).
//
//	max_weight = 25.0
//	container_ceiling = 50
//	stage_order = ["pacote", "crate", "box"]
//	parallelism = 1
//
//	[cache]
//	backend = "file"   # none | file | redis | mongo
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/palletizer/pkg/cache"
	"github.com/matzehuels/palletizer/pkg/errors"
	"github.com/matzehuels/palletizer/pkg/pipeline"
)

// Config is the on-disk configuration.
type Config struct {
	MaxWeight   float64  `toml:"max_weight"`
	Ceiling     int      `toml:"container_ceiling"`
	StageOrder  []string `toml:"stage_order"`
	Parallelism int      `toml:"parallelism"`

	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// Cache configures the plan cache backend.
type Cache struct {
	Backend         string   `toml:"backend"`
	Dir             string   `toml:"dir"`
	TTL             Duration `toml:"ttl"`
	RedisAddr       string   `toml:"redis_addr"`
	MongoURI        string   `toml:"mongo_uri"`
	MongoDatabase   string   `toml:"mongo_database"`
	MongoCollection string   `toml:"mongo_collection"`

	// Prefix namespaces plan keys, so several sites can share one backend.
	Prefix string `toml:"prefix"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a string such as "90m".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MaxWeight:   pipeline.DefaultMaxWeight,
		Ceiling:     pipeline.DefaultCeiling,
		StageOrder:  pipeline.DefaultStageOrder(),
		Parallelism: pipeline.DefaultParallelism,
		Cache: Cache{
			Backend:         cache.BackendFile,
			TTL:             Duration{cache.TTLPlan},
			RedisAddr:       "localhost:6379",
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   "palletizer",
			MongoCollection: "plans",
		},
		Server: Server{Addr: ":8080"},
	}
}

// Load reads the file at path over the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "read config")
	}
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeConfiguration, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration without applying defaults.
func (c *Config) Validate() error {
	if err := errors.ValidateMaxWeight(c.MaxWeight); err != nil {
		return err
	}
	if err := errors.ValidateCeiling(c.Ceiling); err != nil {
		return err
	}
	if c.Parallelism < 1 {
		return errors.New(errors.ErrCodeConfiguration, "parallelism must be at least 1, got %d", c.Parallelism)
	}
	if _, err := pipeline.ParseStageOrder(c.StageOrder); err != nil {
		return err
	}
	backends := []string{"", cache.BackendNone, cache.BackendFile, cache.BackendRedis, cache.BackendMongo}
	if !slices.Contains(backends, c.Cache.Backend) {
		return errors.New(errors.ErrCodeConfiguration, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeConfiguration, "cache ttl must not be negative")
	}
	return nil
}

// PipelineOptions returns run options carrying the configured parameters.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		MaxWeight:   c.MaxWeight,
		Ceiling:     c.Ceiling,
		StageOrder:  slices.Clone(c.StageOrder),
		Parallelism: c.Parallelism,
	}
}

// CacheOptions returns the options for [cache.Open].
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:         c.Cache.Backend,
		Dir:             c.Cache.Dir,
		RedisAddr:       c.Cache.RedisAddr,
		MongoURI:        c.Cache.MongoURI,
		MongoDatabase:   c.Cache.MongoDatabase,
		MongoCollection: c.Cache.MongoCollection,
	}
}
