package mdxaml

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/mdxaml/internal/version"
	"github.com/arthur-debert/mdxaml/pkg/config"
	"github.com/arthur-debert/mdxaml/pkg/errors"
	"github.com/arthur-debert/mdxaml/pkg/logging"
	"github.com/arthur-debert/mdxaml/pkg/ui"
)

// app is the state shared by every command of one invocation
type app struct {
	fs  afero.Fs
	cfg *config.Config

	verbosity  int
	configPath string
	sets       []string
	color      string
	colorOn    bool
}

// NewRootCmd creates the root command working on the real filesystem
func NewRootCmd() *cobra.Command {
	return NewRootCmdFs(afero.NewOsFs())
}

// NewRootCmdFs creates the root command reading and writing files on fs
func NewRootCmdFs(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs}

	rootCmd := &cobra.Command{
		Use:     "mdxaml",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringArrayVar(&a.sets, "set", nil, MsgFlagSet)
	rootCmd.PersistentFlags().StringVar(&a.color, "color", "auto", MsgFlagColor)

	rootCmd.AddCommand(newRenderCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newPreviewCmd(a))
	rootCmd.AddCommand(newStylesCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

// setup loads the configuration, then configures logging and colors
func (a *app) setup(cmd *cobra.Command) error {
	overrides, err := parseSets(a.sets)
	if err != nil {
		return err
	}
	if f := cmd.Flags().Lookup("fragment"); f != nil && f.Changed {
		overrides["render.fragment"] = f.Value.String()
	}

	loader := &config.Loader{Fs: a.fs, Path: a.configPath, Overrides: overrides}
	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	verbosity := a.verbosity
	if cfg.Logging.Verbosity > verbosity {
		verbosity = cfg.Logging.Verbosity
	}
	logging.SetupLogger(verbosity)
	log.Debug().Str("command", cmd.Name()).Msg("Command started")

	mode, err := ui.ParseColorMode(a.color)
	if err != nil {
		return err
	}
	a.colorOn = applyColor(mode, cmd.OutOrStdout())
	return nil
}

func applyColor(mode ui.ColorMode, out io.Writer) bool {
	if f, ok := out.(*os.File); ok {
		return ui.ApplyColor(mode, f)
	}
	// buffers and pipes set up by callers never get escape codes unless
	// asked for
	if mode != ui.ColorAlways {
		mode = ui.ColorNever
	}
	return ui.ApplyColor(mode, os.Stdout)
}

// parseSets turns --set section.key=value flags into loader overrides
func parseSets(sets []string) (map[string]interface{}, error) {
	overrides := make(map[string]interface{}, len(sets))
	for _, s := range sets {
		key, value, ok := strings.Cut(s, "=")
		key = strings.TrimSpace(key)
		if !ok || !strings.Contains(key, ".") {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgBadSetFlag, s)
		}
		overrides[key] = value
	}
	return overrides, nil
}
