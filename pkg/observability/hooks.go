// Package observability lets a host program watch planning runs without the
// pipeline depending on any metrics or tracing backend.
//
// Three hook sets exist, one per layer: [PipelineHooks] for plans and stages,
// [CacheHooks] for plan cache lookups and writes, and [HTTPHooks] for the API
// server. Each receives a small event value. Everything defaults to [Noop].
//
// Hooks are registered once at startup:
//
//	observability.Register(observability.Hooks{
//	    Pipeline: stageTimer,
//	    HTTP:     requestCounter,
//	})
//
// Implementations are called from the goroutines that run partitions, so
// they must be safe for concurrent use.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PlanEvent describes one planning run. The counts and Err are only set on
// [PipelineHooks.PlanFinished].
type PlanEvent struct {
	RunID         string
	Invoices      int
	Partitions    int
	Containers    int
	NotPalletized int
	Duration      time.Duration
	Err           error
}

// StageEvent describes one stage run inside one partition.
type StageEvent struct {
	Partition   int
	Stage       string
	Box         string // bridged container, empty for the pacote stage
	Containers  int
	Unplaceable int
	Duration    time.Duration
	Err         error
}

// PipelineHooks receives planning events.
type PipelineHooks interface {
	PlanStarted(ctx context.Context, ev PlanEvent)
	PlanFinished(ctx context.Context, ev PlanEvent)
	StageFinished(ctx context.Context, ev StageEvent)
}

// CacheEvent describes a plan cache access. Bytes is the encoded plan size
// for hits and writes.
type CacheEvent struct {
	Key   string
	Hit   bool
	Bytes int
}

// CacheHooks receives plan cache events.
type CacheHooks interface {
	Lookup(ctx context.Context, ev CacheEvent)
	Stored(ctx context.Context, ev CacheEvent)
}

// RequestEvent describes one served API request. Route is the matched route
// pattern, not the raw path.
type RequestEvent struct {
	Method   string
	Route    string
	Status   int
	RunID    string
	Duration time.Duration
}

// HTTPHooks receives API server events.
type HTTPHooks interface {
	Served(ctx context.Context, ev RequestEvent)
}

// Noop implements every hook interface and does nothing.
type Noop struct{}

func (Noop) PlanStarted(context.Context, PlanEvent)    {}
func (Noop) PlanFinished(context.Context, PlanEvent)   {}
func (Noop) StageFinished(context.Context, StageEvent) {}
func (Noop) Lookup(context.Context, CacheEvent)        {}
func (Noop) Stored(context.Context, CacheEvent)        {}
func (Noop) Served(context.Context, RequestEvent)      {}

// Hooks bundles the hook sets for [Register]. Nil fields leave the current
// registration in place.
type Hooks struct {
	Pipeline PipelineHooks
	Cache    CacheHooks
	HTTP     HTTPHooks
}

var registry atomic.Pointer[Hooks]

func init() { Reset() }

// Register installs h. Call it before planning starts.
func Register(h Hooks) {
	next := *registry.Load()
	if h.Pipeline != nil {
		next.Pipeline = h.Pipeline
	}
	if h.Cache != nil {
		next.Cache = h.Cache
	}
	if h.HTTP != nil {
		next.HTTP = h.HTTP
	}
	registry.Store(&next)
}

// Reset restores the no-op hooks.
func Reset() {
	registry.Store(&Hooks{Pipeline: Noop{}, Cache: Noop{}, HTTP: Noop{}})
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return registry.Load().Pipeline }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return registry.Load().Cache }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return registry.Load().HTTP }
