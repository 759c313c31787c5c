package cli

import (
	"strings"

	"github.com/arthur-debert/dtovl/pkg/commands"
	"github.com/arthur-debert/dtovl/pkg/config"
	"github.com/spf13/cobra"
)

// completeRemove offers identifiers from the current ledger plus "all".
func (a *app) completeRemove(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	names, err := commands.OverlayNames(commands.ListOverlaysOptions{Config: cfg, FS: a.fs})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	prefix, _ := splitListPrefix(toComplete)
	if prefix == "" {
		names = append(names, commands.RemoveAllToken)
	}
	return listCompletions(toComplete, names), cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// completeApply offers the overlay blobs on the search path.
func (a *app) completeApply(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	blobs, err := commands.BlobNames(commands.ListOverlaysOptions{Config: cfg, FS: a.fs})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return listCompletions(toComplete, blobs), cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// splitListPrefix splits "a,b,c" into the completed part "a,b," and the
// element being typed "c".
func splitListPrefix(toComplete string) (string, string) {
	i := strings.LastIndex(toComplete, ",")
	if i < 0 {
		return "", toComplete
	}
	return toComplete[:i+1], toComplete[i+1:]
}

// listCompletions completes the last element of a comma-separated list,
// skipping names already in it.
func listCompletions(toComplete string, names []string) []string {
	prefix, current := splitListPrefix(toComplete)
	taken := make(map[string]bool)
	for _, name := range commands.ParseOverlayList(prefix) {
		taken[name] = true
	}

	var completions []string
	for _, name := range names {
		if taken[name] || !strings.HasPrefix(name, current) {
			continue
		}
		completions = append(completions, prefix+name)
	}
	return completions
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
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

func (a *app) newConfigCmd() *cobra.Command {
	var template bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Long:  MsgConfigLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if template {
				_, err := cmd.OutOrStdout().Write([]byte(config.GenerateConfigContent()))
				return err
			}

			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return a.fail(cmd, config.FormatText, err)
			}
			data, err := config.Dump(cfg)
			if err != nil {
				return a.fail(cmd, config.FormatText, err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&template, "template", false, MsgFlagTemplate)

	return cmd
}
