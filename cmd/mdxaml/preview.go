package mdxaml

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arthur-debert/mdxaml/pkg/ui"
)

func newPreviewCmd(a *app) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "preview [file|-]",
		Short: MsgPreviewShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			src, err := a.readInput(cmd, path)
			if err != nil {
				return err
			}

			p := ui.NewPreviewer(a.colorOn)
			p.Width = width
			if p.Width == 0 {
				p.Width = terminalWidth(cmd)
			}
			out, err := p.Render(string(src))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 0, MsgFlagWidth)
	return cmd
}

// terminalWidth returns the width of the output terminal, or 0 when the
// output is not one
func terminalWidth(cmd *cobra.Command) int {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return w
}
