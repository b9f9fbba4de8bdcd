package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/palletizer/pkg/cache"
	"github.com/matzehuels/palletizer/pkg/observability"
)

// Runner encapsulates plan execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store plans. Multiple goroutines can safely use the same Runner with
// different requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is how long computed plans stay cached. Zero means [cache.TTLPlan].
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLPlan,
	}
}

// Execute returns the plan for req, from cache when possible.
//
// Plans computed with a custom Packer are cached under their own keys. A
// cached plan gets a fresh run id and Stats.CacheHit set.
func (r *Runner) Execute(ctx context.Context, req Request, opts Options) (*Plan, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	key, err := r.PlanKey(req, opts)
	if err != nil {
		return nil, err
	}

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if plan, ok := r.cached(ctx, key); ok {
			return plan, nil
		}
	}

	plan, err := Run(ctx, req, opts)
	if err != nil {
		return nil, err
	}

	// Cache the result
	if data, err := json.Marshal(plan); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().Stored(ctx, observability.CacheEvent{Key: key, Bytes: len(data)})
		}
	}
	return plan, nil
}

// PlanKey returns the cache key of the plan for req under opts.
func (r *Runner) PlanKey(req Request, opts Options) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("hash request: %w", err)
	}
	return r.Keyer.PlanKey(cache.RequestHash(data), opts.PlanKeyOpts()), nil
}

// cached loads and decodes a plan. Undecodable entries count as misses.
func (r *Runner) cached(ctx context.Context, key string) (*Plan, bool) {
	start := time.Now()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().Lookup(ctx, observability.CacheEvent{Key: key})
		return nil, false
	}

	var plan Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		r.Logger.Warn("cached plan unreadable", "err", err)
		observability.Cache().Lookup(ctx, observability.CacheEvent{Key: key})
		return nil, false
	}
	observability.Cache().Lookup(ctx, observability.CacheEvent{Key: key, Hit: true, Bytes: len(data)})

	plan.RunID = uuid.NewString()
	plan.Stats.CacheHit = true
	plan.Stats.Duration = time.Since(start)
	r.Logger.Info("plan served from cache", "run", plan.RunID, "containers", plan.Stats.Containers)
	return &plan, true
}

func (r *Runner) ttl() time.Duration {
	if r.TTL <= 0 {
		return cache.TTLPlan
	}
	return r.TTL
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
