package mdxaml

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/mdxaml/pkg/errors"
	"github.com/arthur-debert/mdxaml/pkg/logging"
	"github.com/arthur-debert/mdxaml/pkg/render"
	"github.com/arthur-debert/mdxaml/pkg/ui/styles"
	"github.com/arthur-debert/mdxaml/pkg/xaml"
)

// reportWidth wraps long error messages in the check report
const reportWidth = 72

// checkResult is one row of the check report
type checkResult struct {
	path   string
	size   int
	events int
	err    error
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <files...>",
		Short: MsgCheckShort,
		Long: `Check renders every file without writing any output and reports the
documents that could not be rendered, with the error code that stopped them.`,
		Example: `  mdxaml check docs/*.md`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cli.check")

			results := make([]checkResult, 0, len(args))
			failed := 0
			var first error
			for _, path := range args {
				res := a.check(cmd, path)
				if res.err != nil {
					failed++
					if first == nil {
						first = res.err
					}
					logger.Debug().Err(res.err).Str("path", path).Msg(MsgRenderFailed)
				}
				results = append(results, res)
			}

			if err := a.printReport(cmd, results); err != nil {
				return err
			}
			if failed > 0 {
				return errors.Wrapf(first, errors.GetErrorCode(first), MsgCheckFailedFmt, failed, len(args)).
					WithDetail("failed", failed)
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgCheckPassed, len(args), len(args))
			return nil
		},
	}
}

// check renders path into a recorder tee'd with a graph builder
func (a *app) check(cmd *cobra.Command, path string) checkResult {
	res := checkResult{path: path}

	doc, size, err := a.parse(cmd, path)
	res.size = size
	if err != nil {
		res.err = err
		return res
	}

	r, err := render.New(render.WithOptions(a.cfg.RenderOptions()))
	if err != nil {
		res.err = err
		return res
	}
	rec := xaml.NewRecorder()
	res.err = r.Render(xaml.Tee(rec, xaml.NewBuilder()), doc)
	res.events = len(rec.Events)
	return res
}

func (a *app) printReport(cmd *cobra.Command, results []checkResult) error {
	if !a.colorOn {
		pterm.DisableStyling()
		defer pterm.EnableStyling()
	}

	data := pterm.TableData{{"File", "Size", "Events", "Status"}}
	for _, res := range results {
		status := styles.Render("Success", "ok")
		if res.err != nil {
			msg := fmt.Sprintf("%s: %s (%s)", MsgRenderFailed, errors.GetErrorCode(res.err), res.err)
			status = styles.Render("Error", wordwrap.String(msg, reportWidth))
		}
		data = append(data, []string{
			styles.Render("FilePath", res.path),
			humanize.Bytes(uint64(res.size)),
			strconv.Itoa(res.events),
			status,
		})
	}

	return pterm.DefaultTable.
		WithHasHeader().
		WithWriter(cmd.OutOrStdout()).
		WithData(data).
		Render()
}
