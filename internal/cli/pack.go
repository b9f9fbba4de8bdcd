package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	pio "github.com/matzehuels/palletizer/pkg/io"
	"github.com/matzehuels/palletizer/pkg/pipeline"
)

// packFlags holds the pack command's flag values.
type packFlags struct {
	output      string
	maxWeight   float64
	ceiling     int
	stages      []string
	parallelism int
	refresh     bool
	noCache     bool
	browse      bool
}

// packCommand creates the pack command that plans a request.
func (c *CLI) packCommand() *cobra.Command {
	var flags packFlags

	cmd := &cobra.Command{
		Use:   "pack [request.json]",
		Short: "Plan the packing of a request",
		Long: `Plan the packing of a request.

The request file holds the SKU and box catalogs, the invoice orders and the
family compatibility rules. Orders are split into compatible family groups,
and every group runs through the configured stages: closed packages, bottle
crates and generic boxes. The plan is written as JSON.

Use "-" to read the request from standard input. Plans are cached; use
--refresh to recompute.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPack(cmd, args[0], flags)
		},
	}

	defaults := pipeline.Options{}
	_ = defaults.ValidateAndSetDefaults()

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: <input>.plan.json, - for stdout)")
	cmd.Flags().Float64Var(&flags.maxWeight, "max-weight", defaults.MaxWeight, "weight limit per container in kg")
	cmd.Flags().IntVar(&flags.ceiling, "ceiling", defaults.Ceiling, "container ceiling per stage")
	cmd.Flags().StringSliceVar(&flags.stages, "stages", defaults.StageOrder, "stage order (comma-separated: pacote, crate, box)")
	cmd.Flags().IntVarP(&flags.parallelism, "parallelism", "p", defaults.Parallelism, "partitions packed concurrently")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "recompute even when a cached plan exists")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.browse, "browse", false, "browse the containers interactively")

	return cmd
}

// packOptions merges the config file with the flags the user set.
func packOptions(cmd *cobra.Command, base pipeline.Options, flags packFlags) pipeline.Options {
	opts := base
	if cmd.Flags().Changed("max-weight") {
		opts.MaxWeight = flags.maxWeight
	}
	if cmd.Flags().Changed("ceiling") {
		opts.Ceiling = flags.ceiling
	}
	if cmd.Flags().Changed("stages") {
		opts.StageOrder = flags.stages
	}
	if cmd.Flags().Changed("parallelism") {
		opts.Parallelism = flags.parallelism
	}
	opts.Refresh = flags.refresh
	return opts
}

// runPack loads the request, plans it and writes the plan.
func (c *CLI) runPack(cmd *cobra.Command, input string, flags packFlags) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	req, err := pio.ReadRequestFile(input)
	if err != nil {
		return fmt.Errorf("load request %s: %w", input, err)
	}

	opts := packOptions(cmd, cfg.PipelineOptions(), flags)
	opts.Logger = c.Logger

	runner := c.newRunner(ctx, cfg, flags.noCache)
	defer runner.Close()

	plan, err := c.plan(ctx, runner, req, opts)
	if err != nil {
		return err
	}

	output := flags.output
	if output == "" {
		output = outputPath(input, "plan.json")
	}
	if err := pio.WritePlanFile(plan, output); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	if output == "-" {
		return nil
	}

	printSuccess("Packed %s", StyleHighlight.Render(input))
	printStats(plan.Stats)
	printFile(output)
	for _, d := range plan.Diagnostics {
		printWarning("%s", d)
	}

	if flags.browse {
		_, err := tea.NewProgram(NewPlanBrowserModel(plan), tea.WithContext(ctx)).Run()
		return err
	}
	printPlanSummary(os.Stdout, plan)
	return nil
}

// plan runs the request behind a spinner.
func (c *CLI) plan(ctx context.Context, runner *pipeline.Runner, req pipeline.Request, opts pipeline.Options) (*pipeline.Plan, error) {
	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Packing %d invoices...", len(req.Orders)))
	spinner.Start()

	plan, err := runner.Execute(ctx, req, opts)
	if err != nil {
		spinner.StopWithError("Packing failed")
		return nil, fmt.Errorf("pack: %w", err)
	}
	spinner.Stop()

	prog.done(fmt.Sprintf("Packed %d containers", plan.Stats.Containers))
	return plan, nil
}
