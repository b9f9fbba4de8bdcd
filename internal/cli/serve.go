package cli

import (
	"net"

	"github.com/spf13/cobra"

	"github.com/matzehuels/palletizer/internal/api"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Endpoints:
  POST /v1/plans       plan a request
  POST /v1/partitions  partition a request without packing
  GET  /healthz        liveness check
  GET  /version        build information

The server stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			runner := c.newRunner(ctx, cfg, noCache)
			defer runner.Close()

			srv, err := api.NewServer(runner, cfg.PipelineOptions(), c.Logger)
			if err != nil {
				return err
			}
			return srv.ListenAndServe(ctx, cfg.Server.Addr, func(a net.Addr) {
				printSuccess("Listening on %s", StyleHighlight.Render(a.String()))
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
