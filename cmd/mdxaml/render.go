package mdxaml

import (
	"bytes"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/mdxaml/pkg/ast"
	"github.com/arthur-debert/mdxaml/pkg/errors"
	"github.com/arthur-debert/mdxaml/pkg/logging"
	"github.com/arthur-debert/mdxaml/pkg/render"
	"github.com/arthur-debert/mdxaml/pkg/xaml"
)

// Output formats of the render command
const (
	FormatXAML   = "xaml"
	FormatYAML   = "yaml"
	FormatEvents = "events"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		output   string
		format   string
		indent   int
		fragment bool
	)

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: MsgRenderShort,
		Long: `Render parses a markdown file (or stdin) and writes the XAML FlowDocument.

The yaml format dumps the object graph and the events format prints the raw
event stream, one event per line.`,
		Example: `  # Render to stdout
  mdxaml render README.md

  # Render blocks only, for embedding in another document
  mdxaml render --fragment -o notes.xaml notes.md

  # Inspect the event stream
  cat README.md | mdxaml render --format events`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cli.render")
			defer logging.LogOperationStart(logger, "render")()

			var path string
			if len(args) > 0 {
				path = args[0]
			}
			doc, _, err := a.parse(cmd, path)
			if err != nil {
				return err
			}

			out, err := renderDocument(doc, strings.ToLower(format), indent, a.cfg.RenderOptions())
			if err != nil {
				return err
			}
			return a.writeOutput(cmd, output, out)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)
	cmd.Flags().StringVarP(&format, "format", "f", FormatXAML, MsgFlagFormat)
	cmd.Flags().IntVar(&indent, "indent", 2, MsgFlagIndent)
	cmd.Flags().BoolVar(&fragment, "fragment", false, MsgFlagFragment)

	return cmd
}

// renderDocument encodes doc in the given format
func renderDocument(doc *ast.Document, format string, indent int, opts render.Options) ([]byte, error) {
	r, err := render.New(render.WithOptions(opts))
	if err != nil {
		return nil, err
	}

	b := xaml.NewBuilder()
	switch format {
	case FormatXAML, FormatYAML:
		if err := r.Render(b, doc); err != nil {
			return nil, err
		}
	case FormatEvents:
		// the builder rejects streams that do not assemble into a graph
		rec := xaml.NewRecorder()
		if err := r.Render(xaml.Tee(rec, b), doc); err != nil {
			return nil, err
		}
		return []byte(rec.String() + "\n"), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, MsgUnknownFormat, format)
	}

	if format == FormatYAML {
		return xaml.MarshalGraphYAML(b.Roots()...)
	}

	var buf bytes.Buffer
	enc := xaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(b.Roots()...); err != nil {
		return nil, err
	}
	if buf.Len() > 0 && !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
