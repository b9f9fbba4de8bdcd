package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/palletizer/pkg/errors"
	pio "github.com/matzehuels/palletizer/pkg/io"
	"github.com/matzehuels/palletizer/pkg/pipeline"
	"github.com/matzehuels/palletizer/pkg/render"
)

// Family graph output formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPDF = "pdf"
	formatPNG = "png"
)

// familiesCommand creates the families command that renders the family
// compatibility graph of a request.
func (c *CLI) familiesCommand() *cobra.Command {
	var (
		format   string
		output   string
		scale    float64
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "families [request.json]",
		Short: "Render the family compatibility graph",
		Long: `Render the family compatibility graph.

Families are drawn inside the partition that claimed them, and dashed red
edges connect incompatible families. PDF and PNG output need rsvg-convert
(librsvg).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFamilies(cmd.Context(), args[0], format, output, scale, render.Options{Detailed: detailed})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "output format: svg, dot, pdf, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.families.<format>, - for stdout)")
	cmd.Flags().Float64Var(&scale, "scale", 2, "PNG scale factor")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "list ordered units per SKU in each node")

	return cmd
}

func (c *CLI) runFamilies(ctx context.Context, input, format, output string, scale float64, opts render.Options) error {
	switch format {
	case formatDOT, formatSVG, formatPDF, formatPNG:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want svg, dot, pdf or png)", format)
	}

	req, err := pio.ReadRequestFile(input)
	if err != nil {
		return fmt.Errorf("load request %s: %w", input, err)
	}

	spinner := newSpinnerWithContext(ctx, "Partitioning...")
	spinner.Start()
	p, in, err := pipeline.Partition(req, pipeline.Options{Logger: c.Logger})
	if err != nil {
		spinner.StopWithError("Partitioning failed")
		return err
	}
	dot := render.FamilyDOT(p.Groups, in.Compat, in.Skus, opts)

	spinner.Update(fmt.Sprintf("Rendering %s...", format))
	data, err := renderFamilies(ctx, dot, format, scale)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return fmt.Errorf("render %s: %w", format, err)
	}
	spinner.Stop()

	if output == "" {
		output = outputPath(input, "families."+format)
	}
	if output == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Rendered %d partitions", len(p.Groups))
	printFile(output)
	if format == formatDOT {
		printNextStep("Render with graphviz", fmt.Sprintf("dot -Tsvg %s", output))
	}
	return nil
}

func renderFamilies(ctx context.Context, dot, format string, scale float64) ([]byte, error) {
	switch format {
	case formatSVG:
		return render.RenderSVG(ctx, dot)
	case formatPDF:
		return render.RenderPDF(ctx, dot)
	case formatPNG:
		return render.RenderPNG(ctx, dot, scale)
	}
	return []byte(dot), nil
}
