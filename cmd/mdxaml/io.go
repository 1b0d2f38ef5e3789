package mdxaml

import (
	"io"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/mdxaml/pkg/ast"
	"github.com/arthur-debert/mdxaml/pkg/errors"
	"github.com/arthur-debert/mdxaml/pkg/markdown"
)

// stdinName selects standard input as the source file
const stdinName = "-"

// readInput returns the content of path, or stdin for "" and "-"
func (a *app) readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == stdinName {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to read stdin")
		}
		return data, nil
	}
	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path).
			WithDetail("path", path)
	}
	log.Debug().Str("path", path).Str("size", humanize.Bytes(uint64(len(data)))).Msg("read input")
	return data, nil
}

// parse reads path and builds the document tree with the configured parser
func (a *app) parse(cmd *cobra.Command, path string) (*ast.Document, int, error) {
	src, err := a.readInput(cmd, path)
	if err != nil {
		return nil, 0, err
	}
	opts, err := a.cfg.MarkdownOptions()
	if err != nil {
		return nil, 0, err
	}
	p, err := markdown.New(opts)
	if err != nil {
		return nil, 0, err
	}
	doc, err := p.Parse(src)
	if err != nil {
		return nil, 0, err
	}
	return doc, len(src), nil
}

// writeOutput writes data to path, or to the command output when path is
// empty or "-"
func (a *app) writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == stdinName {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return errors.Wrap(err, errors.ErrFileWrite, "failed to write output")
		}
		return nil
	}
	if err := afero.WriteFile(a.fs, path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).
			WithDetail("path", path)
	}
	cmd.PrintErrf(MsgWroteFormat, path, humanize.Bytes(uint64(len(data))))
	return nil
}
