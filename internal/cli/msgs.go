package cli

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Apply and remove device-tree overlays through configfs"
	MsgConfigShort     = "Print the effective configuration"
	MsgConfigLong      = "Print the configuration dtovl would use, after layering defaults, config files, DTOVL_* environment variables and flags."
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagList       = "List applied overlays in application order"
	MsgFlagApply      = "Apply overlays in the given order (comma-separated)"
	MsgFlagRemove     = "Remove overlays in reverse order (comma-separated, or \"all\")"
	MsgFlagMount      = "configfs overlay directory (default /sys/kernel/config/device-tree/overlays)"
	MsgFlagSearchPath = "Comma-separated directories searched for overlay blobs (default /lib/firmware)"
	MsgFlagMethod     = "How overlays reach the kernel: blob or path"
	MsgFlagFormat     = "Output format: text, json or yaml"
	MsgFlagConfig     = "Config file to use instead of the system and user files (.toml or .yaml)"
	MsgFlagDryRun     = "Show what would be applied or removed without touching configfs"
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagNoColor    = "Disable colored output"
	MsgFlagTemplate   = "Print a commented config file template instead"

	// Usage errors
	MsgErrNoAction        = "one of --list, --apply or --remove is required"
	MsgErrExclusiveAction = "--list, --apply and --remove are mutually exclusive"
	MsgErrEmptyList       = "--%s needs at least one overlay name"
	MsgErrUnexpectedArgs  = "unexpected arguments: %v (overlay lists are comma-separated flag values)"
)

// MsgRootLong is the long description of the root command.
const MsgRootLong = `dtovl manages Linux device-tree overlays through the kernel's configfs
overlay interface. Every applied overlay gets a numbered directory in the
overlay group, so the order in which overlays were applied survives in
configfs itself and removal can undo them in reverse.

Run "dtovl help ordering" for how entries are numbered and removed.`

// MsgRootExample shows typical invocations.
const MsgRootExample = `  dtovl --list
  dtovl --apply i2c1.dtbo,sensor.dtbo
  dtovl --apply sensor.dtbo --method path
  dtovl --remove sensor.dtbo
  dtovl --remove all --dry-run
  dtovl --list --format json`

// MsgCompletionLong explains how to load the completion scripts.
const MsgCompletionLong = `To load completions:

Bash:
  $ source <(dtovl completion bash)
  # To load completions for each session, execute once:
  $ dtovl completion bash > /etc/bash_completion.d/dtovl

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  # To load completions for each session, execute once:
  $ dtovl completion zsh > "${fpath[1]}/_dtovl"

Fish:
  $ dtovl completion fish | source
  # To load completions for each session, execute once:
  $ dtovl completion fish > ~/.config/fish/completions/dtovl.fish

PowerShell:
  PS> dtovl completion powershell | Out-String | Invoke-Expression
`

// MsgUsageTemplate is cobra's usage template with styled section headings.
const MsgUsageTemplate = `{{boldUpper "usage"}}:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{boldUpper "aliases"}}:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

{{boldUpper "examples"}}:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

{{boldUpper "commands"}}:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{boldUpper "flags"}}:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{boldUpper "global flags"}}:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} help topics" to list help topics.{{end}}
`
