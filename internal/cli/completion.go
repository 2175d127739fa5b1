package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/partition"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/render/sunburst/styles"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for sunburst.

Besides commands and flags, completions cover flag values such as palette
names, output formats, styles and views.

  $ source <(sunburst completion bash)
  $ sunburst completion zsh > "${fpath[1]}/_sunburst"
  $ sunburst completion fish > ~/.config/fish/completions/sunburst.fish
  PS> sunburst completion powershell | Out-String | Invoke-Expression`,
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

// flagValues lists the fixed values each chart flag accepts.
func flagValues() map[string][]string {
	return map[string][]string{
		"input-format": {"json", "yaml", "toml"},
		"formats":      sortedKeys(pipeline.ValidFormats),
		"view":         sortedKeys(pipeline.ValidViews),
		"style":        {styles.StyleSimple, styles.StyleOutline},
		"palette":      styles.PaletteNames(),
		"radial-scale": {"sqrt", "linear"},
		"value-mode":   {partition.SumLeaves.String(), partition.Declared.String()},
	}
}

// registerFlagCompletions completes the values of any chart flags cmd has.
// --formats takes a comma-separated list, so the prefix before the last
// comma is kept.
func registerFlagCompletions(cmd *cobra.Command) {
	for name, values := range flagValues() {
		if cmd.Flags().Lookup(name) == nil {
			continue
		}
		_ = cmd.RegisterFlagCompletionFunc(name, func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if name != "formats" {
				return values, cobra.ShellCompDirectiveNoFileComp
			}
			prefix := ""
			if i := strings.LastIndex(toComplete, ","); i >= 0 {
				prefix = toComplete[:i+1]
			}
			out := make([]string, 0, len(values))
			for _, v := range values {
				if !strings.Contains(","+prefix, ","+v+",") {
					out = append(out, prefix+v)
				}
			}
			return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
		})
	}
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
