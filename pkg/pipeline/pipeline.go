// Package pipeline turns a packing request into a container plan.
//
// This package implements the complete catalog → partition → stages → merge
// pipeline used by the CLI and the HTTP API. Centralizing it keeps container
// numbering, conservation and caching identical across entry points.
//
// # Architecture
//
// A run has four steps:
//
//  1. Build: coerce the raw request into SKU and box catalogs, the order book
//     and the family compatibility map, collecting diagnostics
//  2. Filter and partition: drop unknown SKUs, then split the orders into
//     groups of mutually compatible families
//  3. Assemble: run the configured stages over each partition, bridging
//     leftovers from one stage to the next
//  4. Merge: sum closed packages, number containers 1..N in partition order
//     and collect everything that could not be placed
//
// Partitions are independent and may run concurrently (see
// [Options.Parallelism]); merging always happens in partition order, so the
// plan is the same for any parallelism.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	plan, err := runner.Execute(ctx, req, pipeline.Options{MaxWeight: 25})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, id := range plan.ContainerIDs() {
//	    fmt.Println(id, plan.Caixas[id])
//	}
//
// Or plan without caching:
//
//	plan, err := pipeline.Run(ctx, req, opts)
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/palletizer/pkg/cache"
	"github.com/matzehuels/palletizer/pkg/core/binpack"
	"github.com/matzehuels/palletizer/pkg/core/catalog"
	"github.com/matzehuels/palletizer/pkg/core/model"
	"github.com/matzehuels/palletizer/pkg/core/stage"
	"github.com/matzehuels/palletizer/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Config
// =============================================================================

const (
	// DefaultMaxWeight is the per-container weight ceiling in kilograms.
	DefaultMaxWeight = 25.0

	// DefaultCeiling is the per-stage container ceiling.
	DefaultCeiling = stage.DefaultCeiling

	// DefaultParallelism runs partitions one after another.
	DefaultParallelism = 1
)

// DefaultStageOrder returns the default stage names in execution order.
func DefaultStageOrder() []string {
	out := make([]string, len(stage.DefaultOrder))
	for i, k := range stage.DefaultOrder {
		out[i] = string(k)
	}
	return out
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a packing run.
// This struct supports JSON serialization for API requests.
type Options struct {
	MaxWeight   float64  `json:"max_weight,omitempty"`
	Ceiling     int      `json:"container_ceiling,omitempty"`
	StageOrder  []string `json:"stage_order,omitempty"`
	Parallelism int      `json:"parallelism,omitempty"`
	Refresh     bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	// Packer replaces the default 3D engine. With Parallelism > 1 it is
	// called from several goroutines.
	Packer binpack.Packer `json:"-"`

	stages    []stage.Kind
	validated bool
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.MaxWeight == 0 {
		o.MaxWeight = DefaultMaxWeight
	}
	if err := errors.ValidateMaxWeight(o.MaxWeight); err != nil {
		return err
	}
	if o.Ceiling == 0 {
		o.Ceiling = DefaultCeiling
	}
	if err := errors.ValidateCeiling(o.Ceiling); err != nil {
		return err
	}
	if o.Parallelism == 0 {
		o.Parallelism = DefaultParallelism
	}
	if o.Parallelism < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "parallelism must be positive, got %d", o.Parallelism)
	}
	if len(o.StageOrder) == 0 {
		o.StageOrder = DefaultStageOrder()
	}
	kinds, err := ParseStageOrder(o.StageOrder)
	if err != nil {
		return err
	}
	o.stages = kinds

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// ParseStageOrder converts configured stage names into kinds. Every stage may
// appear at most once.
func ParseStageOrder(names []string) ([]stage.Kind, error) {
	kinds := make([]stage.Kind, 0, len(names))
	for _, name := range names {
		k, err := stage.ParseKind(name)
		if err != nil {
			return nil, err
		}
		if slices.Contains(kinds, k) {
			return nil, errors.New(errors.ErrCodeInvalidStage, "stage %q listed twice", k)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// Stages returns the validated stage kinds in execution order.
func (o *Options) Stages() []stage.Kind { return slices.Clone(o.stages) }

// PlanKeyOpts returns cache key options for plan caching.
func (o *Options) PlanKeyOpts() cache.PlanKeyOpts {
	opts := cache.PlanKeyOpts{
		MaxWeight:  o.MaxWeight,
		Ceiling:    o.Ceiling,
		StageOrder: slices.Clone(o.StageOrder),
	}
	if o.Packer != nil {
		opts.Packer = "custom"
	}
	return opts
}

// =============================================================================
// Request and Plan
// =============================================================================

// Request is the raw input of a packing run, as decoded from JSON. Catalog
// values are coerced during [Build]; malformed fields become diagnostics.
type Request struct {
	Skus     map[string]catalog.RawRecord `json:"skus"`
	Boxes    map[string]catalog.RawRecord `json:"boxes"`
	Orders   map[string]map[string]any    `json:"orders"`
	Families []catalog.FamilyRule         `json:"families"`
}

// Origin records where a container of the plan was packed.
type Origin struct {
	Partition int        `json:"partition"`
	Stage     stage.Kind `json:"stage"`
	Box       string     `json:"box"`
}

// Plan is the merged result of a packing run.
type Plan struct {
	RunID string `json:"run_id"`

	// Pacotes holds closed-package units per SKU.
	Pacotes model.Contents `json:"pacotes"`

	// Caixas maps container ids, numbered 1..N, to their contents.
	Caixas map[model.ContainerID]model.Contents `json:"caixas"`

	// Origins tells, per container id, which partition, stage and catalog
	// box produced it.
	Origins map[model.ContainerID]Origin `json:"origins,omitempty"`

	// NotPalletized holds the units that could not be placed at all.
	NotPalletized model.Contents `json:"not_palletized"`

	Diagnostics []catalog.Diagnostic `json:"diagnostics,omitempty"`
	Stats       Stats                `json:"stats"`
}

// Stats contains plan statistics.
type Stats struct {
	Partitions    int           `json:"partitions"`
	Containers    int           `json:"containers"`
	PackageUnits  int           `json:"package_units"`
	BoxedUnits    int           `json:"boxed_units"`
	NotPalletized int           `json:"not_palletized"`
	Duration      time.Duration `json:"duration"`
	CacheHit      bool          `json:"cache_hit"`
}

// ContainerIDs returns the container ids in ascending order.
func (p *Plan) ContainerIDs() []model.ContainerID {
	ids := make([]model.ContainerID, 0, len(p.Caixas))
	for id := range p.Caixas {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Totals sums every placed and unplaced unit per SKU.
func (p *Plan) Totals() model.Contents {
	out := make(model.Contents)
	out.AddAll(p.Pacotes)
	for _, c := range p.Caixas {
		out.AddAll(c)
	}
	out.AddAll(p.NotPalletized)
	return out
}
