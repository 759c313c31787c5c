package cli

import (
	"embed"
	"errors"
	"fmt"
	"io"

	"github.com/arthur-debert/dtovl/internal/version"
	"github.com/arthur-debert/dtovl/pkg/cobrax/topics"
	"github.com/arthur-debert/dtovl/pkg/commands"
	"github.com/arthur-debert/dtovl/pkg/config"
	"github.com/arthur-debert/dtovl/pkg/filesystem"
	"github.com/arthur-debert/dtovl/pkg/logging"
	"github.com/arthur-debert/dtovl/pkg/output"
	"github.com/arthur-debert/dtovl/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicsFS embed.FS

// rootFlags holds every flag of the root command.
type rootFlags struct {
	list       bool
	apply      string
	remove     string
	mount      string
	searchPath string
	method     string
	format     string
	configFile string
	dryRun     bool
	verbosity  int
	noColor    bool
}

// app carries what one invocation needs.
type app struct {
	fs    types.FS
	flags rootFlags
	// skipDefaultFiles keeps tests away from the system and user config.
	skipDefaultFiles bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{fs: filesystem.NewOS()})
}

func newRootCmd(a *app) *cobra.Command {
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "dtovl",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return NewExitError(ExitCommandError, fmt.Sprintf(MsgErrUnexpectedArgs, args))
			}
			return nil
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(logging.Options{Verbosity: a.flags.verbosity, Out: cmd.ErrOrStderr()})
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE:              a.runRoot,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.SetVersionTemplate("dtovl " + version.String() + "\n")
	rootCmd.SetUsageTemplate(MsgUsageTemplate)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "", err)
	})

	// Actions
	flags := rootCmd.Flags()
	flags.BoolVarP(&a.flags.list, "list", "l", false, MsgFlagList)
	flags.StringVarP(&a.flags.apply, "apply", "a", "", MsgFlagApply)
	flags.StringVarP(&a.flags.remove, "remove", "r", "", MsgFlagRemove)
	flags.StringVar(&a.flags.method, "method", "", MsgFlagMethod)
	flags.BoolVar(&a.flags.dryRun, "dry-run", false, MsgFlagDryRun)

	// Global flags
	pflags := rootCmd.PersistentFlags()
	pflags.StringVarP(&a.flags.mount, "mount", "m", "", MsgFlagMount)
	pflags.StringVarP(&a.flags.searchPath, "search-path", "p", "", MsgFlagSearchPath)
	pflags.StringVar(&a.flags.format, "format", "", MsgFlagFormat)
	pflags.StringVarP(&a.flags.configFile, "config", "c", "", MsgFlagConfig)
	pflags.CountVarP(&a.flags.verbosity, "verbose", "v", MsgFlagVerbose)
	pflags.BoolVar(&a.flags.noColor, "no-color", false, MsgFlagNoColor)

	_ = rootCmd.RegisterFlagCompletionFunc("remove", a.completeRemove)
	_ = rootCmd.RegisterFlagCompletionFunc("apply", a.completeApply)
	_ = rootCmd.RegisterFlagCompletionFunc("method", cobra.FixedCompletions(
		[]string{string(types.MethodBlob), string(types.MethodPath)}, cobra.ShellCompDirectiveNoFileComp))
	_ = rootCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		config.Formats, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddCommand(a.newConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())

	var renderer topics.Renderer = &topics.PlainRenderer{}
	if stdoutIsTerminal() {
		renderer = topics.NewGlamourRenderer("auto", 80)
	}
	if err := topics.InitializeWithOptions(rootCmd, topicsFS, "topics", topics.Options{
		Extensions: []string{".md"},
		Renderer:   renderer,
	}); err != nil {
		log.Debug().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// action is the one operation selected on the command line.
type action int

const (
	actionList action = iota
	actionApply
	actionRemove
)

func (a *app) selectAction(cmd *cobra.Command) (action, error) {
	var selected []action
	if a.flags.list {
		selected = append(selected, actionList)
	}
	if cmd.Flags().Changed("apply") {
		selected = append(selected, actionApply)
	}
	if cmd.Flags().Changed("remove") {
		selected = append(selected, actionRemove)
	}

	switch len(selected) {
	case 0:
		return 0, NewExitError(ExitCommandError, MsgErrNoAction)
	case 1:
		return selected[0], nil
	default:
		return 0, NewExitError(ExitCommandError, MsgErrExclusiveAction)
	}
}

// loadConfig layers config files, environment and the flags the user set.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	overrides := make(map[string]interface{})
	if cmd.Flags().Changed("mount") {
		overrides["mount"] = a.flags.mount
	}
	if cmd.Flags().Changed("search-path") {
		overrides["search_path"] = a.flags.searchPath
	}
	if cmd.Flags().Changed("method") {
		overrides["method"] = a.flags.method
	}
	if cmd.Flags().Changed("format") {
		overrides["format"] = a.flags.format
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile:       a.flags.configFile,
		Overrides:        overrides,
		SkipDefaultFiles: a.skipDefaultFiles,
	})
	if err != nil {
		return nil, err
	}

	if cfg.Log.File {
		logging.SetupLogger(logging.Options{
			Verbosity: a.flags.verbosity,
			File:      true,
			Out:       cmd.ErrOrStderr(),
		})
	}
	return cfg, nil
}

func (a *app) runRoot(cmd *cobra.Command, args []string) error {
	act, err := a.selectAction(cmd)
	if err != nil {
		return err
	}

	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return a.fail(cmd, config.FormatText, err)
	}

	out, err := output.NewRenderer(cmd.OutOrStdout(), cfg.Format, a.flags.noColor)
	if err != nil {
		// Unknown format: report in text so the message is readable
		return a.fail(cmd, config.FormatText, err)
	}

	switch act {
	case actionList:
		result, err := commands.ListOverlays(commands.ListOverlaysOptions{Config: cfg, FS: a.fs})
		if err != nil {
			return a.fail(cmd, cfg.Format, err)
		}
		return out.RenderList(result)

	case actionApply:
		overlays := commands.ParseOverlayList(a.flags.apply)
		if len(overlays) == 0 {
			return NewExitError(ExitCommandError, fmt.Sprintf(MsgErrEmptyList, "apply"))
		}
		result, err := commands.ApplyOverlays(commands.ApplyOverlaysOptions{
			Config:   cfg,
			FS:       a.fs,
			Overlays: overlays,
			DryRun:   a.flags.dryRun,
		})
		if result != nil {
			if renderErr := out.RenderApply(result); renderErr != nil {
				log.Error().Err(renderErr).Msg("Failed to render apply result")
			}
		}
		if err != nil {
			return a.fail(cmd, cfg.Format, err)
		}
		return nil

	case actionRemove:
		overlays := commands.ParseOverlayList(a.flags.remove)
		if len(overlays) == 0 {
			return NewExitError(ExitCommandError, fmt.Sprintf(MsgErrEmptyList, "remove"))
		}
		result, err := commands.RemoveOverlays(commands.RemoveOverlaysOptions{
			Config:   cfg,
			FS:       a.fs,
			Overlays: overlays,
			DryRun:   a.flags.dryRun,
		})
		if result != nil && (err == nil || len(result.Removed) > 0) {
			if renderErr := out.RenderRemove(result); renderErr != nil {
				log.Error().Err(renderErr).Msg("Failed to render remove result")
			}
		}
		if err != nil {
			return a.fail(cmd, cfg.Format, err)
		}
		return nil
	}

	return nil
}

// fail reports err on stderr in format and returns it as a reported ExitError.
func (a *app) fail(cmd *cobra.Command, format string, err error) error {
	log.Debug().Err(err).Msg("Command failed")

	report(cmd.ErrOrStderr(), format, a.flags.noColor, err)
	exitErr := WrapExitError(exitCodeFor(err), "", err)
	exitErr.Reported = true
	return exitErr
}

func report(w io.Writer, format string, noColor bool, err error) {
	r, rErr := output.NewRenderer(w, format, noColor)
	if rErr != nil {
		r, _ = output.NewRenderer(w, config.FormatText, noColor)
	}
	if r == nil || r.RenderError(err) != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}

// Execute runs rootCmd and returns the process exit code. Errors not
// already reported are written to stderr as a single line.
func Execute(rootCmd *cobra.Command) int {
	err := rootCmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || !exitErr.Reported {
		report(rootCmd.ErrOrStderr(), config.FormatText, false, err)
	}
	return GetExitCode(err)
}
