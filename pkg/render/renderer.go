package render

import (
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/mdxaml/pkg/ast"
	"github.com/arthur-debert/mdxaml/pkg/errors"
	"github.com/arthur-debert/mdxaml/pkg/logging"
	"github.com/arthur-debert/mdxaml/pkg/xaml"
)

// Renderer walks a document tree and emits it through a Writer. Handlers
// may be replaced per kind. A Renderer can be reused for several documents
// but renders one at a time: overlapping Render calls fail.
type Renderer struct {
	opts     Options
	schema   *xaml.Schema
	dispatch *Dispatcher
	busy     atomic.Bool
	log      zerolog.Logger

	// w is only set for the duration of a Render call
	w *Writer
}

// New returns a renderer with every built-in handler registered
func New(opts ...Option) (*Renderer, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Styles.Validate(); err != nil {
		return nil, err
	}
	if o.ImagePlaceholder == "" {
		o.ImagePlaceholder = DefaultImagePlaceholder
	}
	schema := o.Schema
	if schema == nil {
		schema = xaml.DefaultSchema()
	}

	r := &Renderer{
		opts:     o,
		schema:   schema,
		dispatch: NewDispatcher(),
		log:      o.Logger,
	}
	registerBuiltins(r.dispatch)
	return r, nil
}

// Options returns the effective options
func (r *Renderer) Options() Options { return r.opts }

// Schema returns the output schema
func (r *Renderer) Schema() *xaml.Schema { return r.schema }

// Dispatcher exposes the handler table for overrides
func (r *Renderer) Dispatcher() *Dispatcher { return r.dispatch }

// Handle registers h for kind k. The last registration wins.
func (r *Renderer) Handle(k ast.Kind, h Handler) error {
	return r.dispatch.Set(k, h)
}

// Writer is the writer of the render in progress, nil outside Render
func (r *Renderer) Writer() *Writer { return r.w }

// Render emits n into sink. The sink receives a balanced stream even when
// a handler fails partway.
func (r *Renderer) Render(sink xaml.Sink, n ast.Node) (err error) {
	if !r.busy.CompareAndSwap(false, true) {
		return errors.New(errors.ErrStructural, "renderer is already rendering")
	}
	defer r.busy.Store(false)

	w, err := NewWriter(sink, r.schema, r.opts.Styles, r.log)
	if err != nil {
		return err
	}
	r.w = w
	defer func() { r.w = nil }()

	done := logging.LogOperationStart(r.log, "render")
	defer done()

	if err := r.Write(n); err != nil {
		r.log.Debug().Err(err).Str("code", string(errors.GetErrorCode(err))).Msg("render failed")
		return err
	}
	if d := w.Depth(); d != 0 {
		return errors.Newf(errors.ErrStructural, "render finished with %d open objects", d)
	}
	return nil
}

// Write dispatches one node to its handler. Nodes whose kind has no
// handler, directly or through an ancestor kind, are skipped.
func (r *Renderer) Write(n ast.Node) error {
	if n == nil {
		return nil
	}
	if r.w == nil {
		return errors.New(errors.ErrStructural, "write called outside Render")
	}
	h, via, ok := r.dispatch.Lookup(n.Kind())
	if !ok {
		r.log.Debug().Str("kind", n.Kind().String()).Msg("no handler, skipping node")
		return nil
	}
	if via != n.Kind() {
		r.log.Trace().Str("kind", n.Kind().String()).Str("via", via.String()).Msg("using ancestor handler")
	}
	return h(r, n)
}

// WriteAll dispatches nodes in order, stopping at the first error
func (r *Renderer) WriteAll(nodes []ast.Node) error {
	for _, n := range nodes {
		if err := r.Write(n); err != nil {
			return err
		}
	}
	return nil
}

// WriteChildren dispatches the children of n
func (r *Renderer) WriteChildren(n ast.Node) error {
	return r.WriteAll(ast.ChildrenOf(n))
}

// ToGraph renders n into an in-memory object graph
func ToGraph(n ast.Node, opts ...Option) ([]*xaml.Node, error) {
	r, err := New(opts...)
	if err != nil {
		return nil, err
	}
	b := xaml.NewBuilder()
	if err := r.Render(b, n); err != nil {
		return nil, err
	}
	return b.Roots(), nil
}

// ToXAML renders n straight to XAML text
func ToXAML(n ast.Node, opts ...Option) (string, error) {
	roots, err := ToGraph(n, opts...)
	if err != nil {
		return "", err
	}
	return xaml.EncodeToString(roots...)
}

func mismatch(n ast.Node, want string) error {
	return errors.Newf(errors.ErrStructural, "%s handler cannot render %T", want, n).
		WithDetail("kind", n.Kind().String())
}
