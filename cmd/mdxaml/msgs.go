package mdxaml

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Convert markdown into XAML FlowDocuments"
	MsgRenderShort     = "Render a markdown file as XAML"
	MsgCheckShort      = "Check that markdown files render"
	MsgPreviewShort    = "Preview a markdown file in the terminal"
	MsgStylesShort     = "List style keys and their resource symbols"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate the man page"

	// Flags
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Config file (default $XDG_CONFIG_HOME/mdxaml/config.toml)"
	MsgFlagSet      = "Override a config key, as section.key=value (repeatable)"
	MsgFlagColor    = "Color output: auto, always or never"
	MsgFlagOutput   = "Write to this file instead of stdout"
	MsgFlagFragment = "Render blocks without the FlowDocument root"
	MsgFlagFormat   = "Output format: xaml, yaml or events"
	MsgFlagIndent   = "Spaces per indentation level, 0 for a single line"
	MsgFlagWidth    = "Word wrap column for the preview"
	MsgFlagDefaults = "Print the built-in defaults instead"
	MsgFlagPath     = "Print the config file location instead"

	// Status messages
	MsgWroteFormat    = "Wrote %s (%s)\n"
	MsgCheckPassed    = "%d of %d documents rendered\n"
	MsgRenderFailed   = "document could not be rendered"
	MsgStylesHeader   = "Style keys bound to %s (xmlns:%s)"
	MsgNoInputFiles   = "no input files"
	MsgUnknownFormat  = "unknown output format %q (want xaml, yaml or events)"
	MsgBadSetFlag     = "invalid --set value %q, want section.key=value"
	MsgUnknownShell   = "unknown shell %q (want bash, zsh, fish or powershell)"
	MsgCheckFailedFmt = "%d of %d documents could not be rendered"
)

// MsgRootLong is the root command description
const MsgRootLong = `mdxaml parses markdown and writes the equivalent XAML FlowDocument, using
the element names and style keys of Markdig.Wpf. Styles are emitted as
StaticResource references so the host application owns the look.`
