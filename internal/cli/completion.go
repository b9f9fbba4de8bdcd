package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/palletizer/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for palletizer.

Besides command names, the scripts complete request files for pack,
partition and families, stage names for --stages, graph formats for
--format and TOML files for --config.

Examples:
  $ source <(palletizer completion bash)
  $ palletizer completion zsh > "${fpath[1]}/_palletizer"
  $ palletizer completion fish > ~/.config/fish/completions/palletizer.fish
  PS> palletizer completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// registerCompletions attaches argument and flag completions to the
// commands below root.
func registerCompletions(root *cobra.Command) {
	_ = root.RegisterFlagCompletionFunc("config", fileCompletion("toml"))

	for _, cmd := range root.Commands() {
		switch cmd.Name() {
		case "pack", "partition", "families":
			cmd.ValidArgsFunction = requestCompletion
		}
		if cmd.Flags().Lookup("stages") != nil {
			_ = cmd.RegisterFlagCompletionFunc("stages", completeStages)
		}
		if cmd.Flags().Lookup("format") != nil {
			_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
				[]string{formatSVG, formatDOT, formatPDF, formatPNG}, cobra.ShellCompDirectiveNoFileComp))
		}
	}
}

// requestCompletion completes the single request file argument.
func requestCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
}

func fileCompletion(ext string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{ext}, cobra.ShellCompDirectiveFilterFileExt
	}
}

// completeStages completes a comma-separated stage list, offering only the
// stages not listed yet.
func completeStages(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	done := strings.Split(toComplete, ",")
	prefix := strings.Join(done[:len(done)-1], ",")
	if prefix != "" {
		prefix += ","
	}

	var out []string
	for _, name := range pipeline.DefaultStageOrder() {
		if slices.Contains(done[:len(done)-1], name) {
			continue
		}
		out = append(out, prefix+name)
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
