package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	pio "github.com/matzehuels/palletizer/pkg/io"
	"github.com/matzehuels/palletizer/pkg/pipeline"
)

// partitionCommand creates the partition command that shows the family groups
// of a request without packing it.
func (c *CLI) partitionCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "partition [request.json]",
		Short: "Show how the orders split into family groups",
		Long: `Show how the orders split into family groups.

Each group holds families that may share a container, or a single SKU
without a family. Lines for SKUs missing from the catalog are listed
separately; they are never packed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPartition(args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the groups as JSON")

	return cmd
}

func (c *CLI) runPartition(input string, asJSON bool) error {
	req, err := pio.ReadRequestFile(input)
	if err != nil {
		return fmt.Errorf("load request %s: %w", input, err)
	}
	p, _, err := pipeline.Partition(req, pipeline.Options{Logger: c.Logger})
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}

	printSuccess("%d groups in %s", len(p.Groups), StyleHighlight.Render(input))
	for i, g := range p.Groups {
		title := "families " + strings.Join(g.Families, ", ")
		if g.IsSingleton() {
			title = "sku " + g.Sku
		}
		printKeyValue(fmt.Sprintf("partition %d", i), title)
		totals := g.Orders.SkuTotals()
		printDetail("%d invoices · %d units · %s", len(g.Orders), g.Orders.Total(), summarizeContents(totals, 4))
	}
	if len(p.Unknown) > 0 {
		printWarning("unknown skus: %s", summarizeContents(p.Unknown, 0))
	}
	return nil
}
