package mdxaml

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/mdxaml/internal/version"
	"github.com/arthur-debert/mdxaml/pkg/config"
	"github.com/arthur-debert/mdxaml/pkg/errors"
	mdstyles "github.com/arthur-debert/mdxaml/pkg/styles"
	"github.com/arthur-debert/mdxaml/pkg/ui/styles"
)

func newStylesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: MsgStylesShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := a.cfg.Resolver()
			var b strings.Builder
			b.WriteString(styles.Render("Header", fmt.Sprintf(MsgStylesHeader, r.Class, r.Prefix)))
			b.WriteString("\n")
			for _, k := range mdstyles.Keys() {
				b.WriteString(styles.Render("StyleKey", string(k)))
				b.WriteString(" ")
				b.WriteString(styles.Render("Symbol", "{x:Static "+r.Symbol(k)+"}"))
				b.WriteString("\n")
			}
			fmt.Fprint(cmd.OutOrStdout(), b.String())
			return nil
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	var defaults, path bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Long: `Config prints the configuration after merging the defaults, the config file,
MDXAML_ environment variables and --set flags. Variables are named after the
key: MDXAML_RENDER_IMAGE_PLACEHOLDER sets render.image_placeholder.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case path:
				p := a.configPath
				if p == "" {
					p = config.DefaultPath()
				}
				fmt.Fprintln(cmd.OutOrStdout(), p)
			case defaults:
				fmt.Fprint(cmd.OutOrStdout(), config.DefaultContent())
			default:
				out, err := a.cfg.TOML()
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), string(out))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	cmd.Flags().BoolVar(&path, "path", false, MsgFlagPath)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  `Print detailed version information including commit hash and build date`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.Info())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "completion <bash|zsh|fish|powershell>",
		Short:     MsgCompletionShort,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			default:
				return errors.Newf(errors.ErrInvalidInput, MsgUnknownShell, args[0])
			}
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "man",
		Short:  MsgManShort,
		Args:   cobra.NoArgs,
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "MDXAML",
				Section: "1",
				Source:  "mdxaml " + version.Version,
				Manual:  "mdxaml manual",
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
}
