package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/palletizer/pkg/core/catalog"
	"github.com/matzehuels/palletizer/pkg/core/family"
	"github.com/matzehuels/palletizer/pkg/core/model"
	"github.com/matzehuels/palletizer/pkg/core/stage"
	"github.com/matzehuels/palletizer/pkg/errors"
	"github.com/matzehuels/palletizer/pkg/observability"
)

// =============================================================================
// Build
// =============================================================================

// Inputs is a request coerced into typed catalogs.
type Inputs struct {
	Skus        *catalog.SkuCatalog
	Boxes       *catalog.BoxCatalog
	Orders      model.OrderBook
	Compat      catalog.Compatibility
	Diagnostics []catalog.Diagnostic
}

// Build coerces req. Malformed fields never fail the build; they are
// replaced by sentinels and reported in Inputs.Diagnostics. Only malformed
// identifiers are rejected.
func Build(req Request, logger *log.Logger) (*Inputs, error) {
	for id := range req.Skus {
		if err := errors.ValidateIdentifier("sku", id); err != nil {
			return nil, err
		}
	}
	for id := range req.Boxes {
		if err := errors.ValidateIdentifier("box", id); err != nil {
			return nil, err
		}
	}
	for inv := range req.Orders {
		if err := errors.ValidateIdentifier("invoice", inv); err != nil {
			return nil, err
		}
	}

	skus, d1 := catalog.ParseSkus(req.Skus)
	boxes, d2 := catalog.ParseBoxes(req.Boxes)
	orders, d3 := catalog.ParseOrders(req.Orders)
	compat, d4 := catalog.ParseFamilies(req.Families)

	in := &Inputs{Skus: skus, Boxes: boxes, Orders: orders, Compat: compat}
	for _, ds := range [][]catalog.Diagnostic{d1, d2, d3, d4} {
		in.Diagnostics = append(in.Diagnostics, ds...)
	}
	if logger != nil {
		for _, d := range in.Diagnostics {
			logger.Warn("coerced field", "entity", d.Entity, "id", d.ID, "field", d.Field, "reason", d.Reason)
		}
	}
	return in, nil
}

// =============================================================================
// Partition Assembly
// =============================================================================

// Container is one packed container before numbering.
type Container struct {
	Contents model.Contents
	Stage    stage.Kind
	Box      string
}

// Partial is the packed result of one partition.
type Partial struct {
	Packages    model.Contents
	Containers  []Container
	Unplaceable model.Contents
}

// RunPartition runs stages in order over one partition's orders. base
// carries the catalogs and run parameters; its Orders are replaced by the
// group's. The first stage's container is selected like any bridged stage.
//
// Unplaceable reports are summed across stages, and whatever the last stage
// leaves is added to them, so every unit of the group ends up in exactly one
// of Packages, Containers or Unplaceable.
func RunPartition(ctx context.Context, index int, group family.Group, base stage.Input, stages []stage.Stage) (Partial, error) {
	logger := base.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	logger = logger.With("partition", index)
	hooks := observability.Pipeline()

	part := Partial{
		Packages:    make(model.Contents),
		Unplaceable: make(model.Contents),
	}
	remaining := group.Orders
	if len(stages) == 0 {
		part.Unplaceable.AddAll(model.Contents(remaining.SkuTotals()))
		return part, nil
	}

	in := base
	in.Orders = group.Orders
	in.Logger = logger
	in, err := stage.Prepare(stages[0], in)
	if err != nil {
		return Partial{}, fmt.Errorf("partition %d: %w", index, err)
	}

	for i, s := range stages {
		if i > 0 {
			in, err = stage.Bridge(s, in, model.StageOutput{Remaining: remaining})
			if err != nil {
				return Partial{}, fmt.Errorf("partition %d: bridge to %s: %w", index, s.Kind(), err)
			}
		}

		start := time.Now()
		out, err := s.Run(in)
		hooks.StageFinished(ctx, observability.StageEvent{
			Partition:   index,
			Stage:       string(s.Kind()),
			Box:         in.Box.ID,
			Containers:  len(out.Containers),
			Unplaceable: out.Unplaceable.Total(),
			Duration:    time.Since(start),
			Err:         err,
		})
		if err != nil {
			logger.Error("stage failed", "stage", s.Kind(), "err", err)
			if errors.GetCode(err) == "" {
				err = errors.Wrap(errors.ErrCodeInternal, err, "stage %s", s.Kind())
			}
			return Partial{}, fmt.Errorf("partition %d: stage %s: %w", index, s.Kind(), err)
		}

		part.Packages.AddAll(out.Packages)
		part.Unplaceable.AddAll(out.Unplaceable)
		for _, c := range out.Containers {
			part.Containers = append(part.Containers, Container{Contents: c, Stage: s.Kind(), Box: in.Box.ID})
		}
		remaining = out.Remaining
	}

	part.Unplaceable.AddAll(model.Contents(remaining.SkuTotals()))
	return part, nil
}

// =============================================================================
// Merge
// =============================================================================

// Assembler merges partition results into one plan. It owns the only
// container counter of a run: ids are assigned 1, 2, ... in the order
// partials are added.
type Assembler struct {
	plan *Plan
	last model.ContainerID
}

// NewAssembler starts an empty plan with the given run id.
func NewAssembler(runID string) *Assembler {
	return &Assembler{plan: &Plan{
		RunID:         runID,
		Pacotes:       make(model.Contents),
		Caixas:        make(map[model.ContainerID]model.Contents),
		Origins:       make(map[model.ContainerID]Origin),
		NotPalletized: make(model.Contents),
	}}
}

// next returns a fresh container id.
func (a *Assembler) next() model.ContainerID {
	a.last++
	return a.last
}

// Add merges the result of partition index.
func (a *Assembler) Add(index int, p Partial) {
	a.plan.Pacotes.AddAll(p.Packages)
	for _, c := range p.Containers {
		if c.Contents.Total() == 0 {
			continue
		}
		id := a.next()
		a.plan.Caixas[id] = c.Contents.Clone()
		a.plan.Origins[id] = Origin{Partition: index, Stage: c.Stage, Box: c.Box}
	}
	a.plan.NotPalletized.AddAll(p.Unplaceable)
	a.plan.Stats.Partitions++
}

// AddUnplaceable records units that never reached a partition.
func (a *Assembler) AddUnplaceable(c model.Contents) {
	a.plan.NotPalletized.AddAll(c)
}

// Plan returns the merged plan with its unit statistics filled in.
func (a *Assembler) Plan() *Plan {
	p := a.plan
	p.Stats.Containers = len(p.Caixas)
	p.Stats.PackageUnits = p.Pacotes.Total()
	p.Stats.BoxedUnits = 0
	for _, c := range p.Caixas {
		p.Stats.BoxedUnits += c.Total()
	}
	p.Stats.NotPalletized = p.NotPalletized.Total()
	return p
}
