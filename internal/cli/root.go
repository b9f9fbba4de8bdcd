package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/palletizer/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Palletizer packs invoice orders into containers",
		Long:         `Palletizer is a CLI tool that turns invoice orders into a packing plan: closed packages, bottle crates and generic boxes, with incompatible product families kept apart.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/palletizer/config.toml if present)")

	// Register all subcommands
	root.AddCommand(c.packCommand())
	root.AddCommand(c.partitionCommand())
	root.AddCommand(c.familiesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	registerCompletions(root)

	return root
}
