package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/palletizer/pkg/core/catalog"
	"github.com/matzehuels/palletizer/pkg/core/family"
	"github.com/matzehuels/palletizer/pkg/core/model"
	"github.com/matzehuels/palletizer/pkg/core/stage"
	"github.com/matzehuels/palletizer/pkg/observability"
)

// Partitioning is the result of filtering and partitioning a request without
// packing it.
type Partitioning struct {
	Groups      []family.Group       `json:"groups"`
	Unknown     model.Contents       `json:"unknown"`
	Diagnostics []catalog.Diagnostic `json:"diagnostics,omitempty"`
}

// Partition builds req, removes lines for SKUs missing from the catalog and
// splits the rest into family groups.
func Partition(req Request, opts Options) (*Partitioning, *Inputs, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, fmt.Errorf("invalid options: %w", err)
	}
	in, err := Build(req, opts.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("build: %w", err)
	}

	orders, unknown := family.FilterUnknown(in.Orders, in.Skus)
	for _, id := range model.SortedKeys(unknown) {
		opts.Logger.Warn("unknown sku", "sku", id, "quantity", unknown[id])
	}
	groups, err := family.Partition(orders, in.Skus, in.Compat)
	if err != nil {
		return nil, nil, fmt.Errorf("partition: %w", err)
	}

	return &Partitioning{Groups: groups, Unknown: unknown, Diagnostics: in.Diagnostics}, in, nil
}

// Run runs the whole pipeline over req. Partitions run on up to
// opts.Parallelism goroutines; the first failing partition cancels the
// others and its error is returned. No partial plan is returned on error.
func Run(ctx context.Context, req Request, opts Options) (*Plan, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := opts.Logger.With("run", runID)
	opts.Logger = logger
	hooks := observability.Pipeline()
	start := time.Now()

	hooks.PlanStarted(ctx, observability.PlanEvent{RunID: runID, Invoices: len(req.Orders)})
	plan, err := execute(ctx, runID, req, opts)
	ev := observability.PlanEvent{RunID: runID, Invoices: len(req.Orders), Duration: time.Since(start), Err: err}
	if plan != nil {
		ev.Partitions = plan.Stats.Partitions
		ev.Containers = plan.Stats.Containers
		ev.NotPalletized = plan.Stats.NotPalletized
	}
	hooks.PlanFinished(ctx, ev)
	if err != nil {
		return nil, err
	}

	plan.Stats.Duration = time.Since(start)
	logger.Info("planned",
		"partitions", plan.Stats.Partitions,
		"containers", plan.Stats.Containers,
		"not_palletized", plan.Stats.NotPalletized,
		"duration", plan.Stats.Duration)
	return plan, nil
}

func execute(ctx context.Context, runID string, req Request, opts Options) (*Plan, error) {
	parts, in, err := Partition(req, opts)
	if err != nil {
		return nil, err
	}

	stages := make([]stage.Stage, 0, len(opts.stages))
	for _, k := range opts.stages {
		s, err := stage.New(k)
		if err != nil {
			return nil, err
		}
		stages = append(stages, s)
	}

	base := stage.Input{
		Skus:      in.Skus,
		Boxes:     in.Boxes,
		MaxWeight: opts.MaxWeight,
		Ceiling:   opts.Ceiling,
		Packer:    opts.Packer,
		Logger:    opts.Logger,
	}

	partials := make([]Partial, len(parts.Groups))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallelism)
	for i, group := range parts.Groups {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := RunPartition(gctx, i, group, base, stages)
			if err != nil {
				return err
			}
			partials[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	asm := NewAssembler(runID)
	asm.AddUnplaceable(parts.Unknown)
	for i, p := range partials {
		asm.Add(i, p)
	}
	out := asm.Plan()
	out.Diagnostics = in.Diagnostics
	return out, nil
}
