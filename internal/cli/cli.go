// Package cli implements the palletizer command-line interface.
//
// The CLI reads packing requests from JSON files, runs them through the
// pipeline and writes the resulting plans. It also exposes the family
// partitioning on its own, renders the family compatibility graph, serves
// the HTTP API and manages the local plan cache.
//
// # Commands
//
//   - pack: Plan a request and write the plan JSON
//   - partition: Show how the orders split into family groups
//   - families: Render the family compatibility graph
//   - serve: Run the HTTP API
//   - cache: Manage the local plan cache
//
// # Configuration
//
// Every command reads an optional TOML file given with --config. Flags
// override the file.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/palletizer/pkg/cache"
	"github.com/matzehuels/palletizer/pkg/config"
	"github.com/matzehuels/palletizer/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "palletizer"

	// configFile is the file name looked up in the user config directory.
	configFile = "config.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is set by the persistent --config flag.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the configuration file. Without --config the user config
// file is used when it exists, otherwise the defaults.
func (c *CLI) loadConfig() (*config.Config, error) {
	path := c.configPath
	if path == "" {
		path = defaultConfigPath()
	}
	if path != "" {
		c.Logger.Debug("loading config", "path", path)
	}
	return config.Load(path)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. An unreachable cache
// backend is logged and replaced by the null cache.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config, noCache bool) *pipeline.Runner {
	var keyer cache.Keyer
	if cfg.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), cfg.Cache.Prefix)
	}
	runner := pipeline.NewRunner(c.newCache(ctx, cfg, noCache), keyer, c.Logger)
	if cfg.Cache.TTL.Duration > 0 {
		runner.TTL = cfg.Cache.TTL.Duration
	}
	return runner
}

func (c *CLI) newCache(ctx context.Context, cfg *config.Config, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	cc, err := cache.Open(ctx, cfg.CacheOptions())
	if err != nil {
		c.Logger.Warn("cache unavailable", "backend", cfg.Cache.Backend, "err", err)
		return cache.NewNullCache()
	}
	return cc
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/palletizer/).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}

// defaultConfigPath returns the user config file if one exists.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, appName, configFile)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// outputPath derives an output file name from the input: "orders.json"
// becomes "orders.<suffix>". Standard input maps to standard output.
func outputPath(input, suffix string) string {
	if input == "-" {
		return "-"
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "." + suffix
}
