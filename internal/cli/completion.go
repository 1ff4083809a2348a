package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gfagraph/pkg/render"
)

// gfaExtensions are offered when completing an input file argument.
var gfaExtensions = []string{"gfa", "gfa1", "gfa2"}

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for gfagraph. Input arguments complete to
.gfa, .gfa1 and .gfa2 files, and render --format completes to the output formats.

  $ source <(gfagraph completion bash)
  $ gfagraph completion zsh > "${fpath[1]}/_gfagraph"
  $ gfagraph completion fish > ~/.config/fish/completions/gfagraph.fish
  PS> gfagraph completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// completeGFAFiles completes positional arguments to GFA files.
func completeGFAFiles(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return gfaExtensions, cobra.ShellCompDirectiveFilterFileExt
}

// completeFormats completes the comma-separated --format list, keeping what
// was already typed and offering the formats not yet chosen.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	chosen := map[string]bool{}
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
		for _, f := range strings.Split(toComplete[:i], ",") {
			chosen[f] = true
		}
	}
	var out []string
	for _, f := range render.Formats() {
		if !chosen[f] {
			out = append(out, prefix+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
