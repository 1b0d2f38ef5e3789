package render

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/mdxaml/pkg/styles"
	"github.com/arthur-debert/mdxaml/pkg/xaml"
)

// DefaultImagePlaceholder replaces image sources that are not valid URLs
const DefaultImagePlaceholder = "about:blank"

// Options control what the renderer emits
type Options struct {
	// Styles binds style keys to their static symbols
	Styles styles.Resolver

	// ImagePlaceholder is the Source written for malformed image URLs
	ImagePlaceholder string

	// HyperlinkCommand, when set, adds Command={x:Static <value>} and
	// CommandParameter=<url> to every hyperlink
	HyperlinkCommand string

	// Fragment renders a document's blocks without the FlowDocument root
	// and namespace declarations
	Fragment bool

	// Schema is the output notation; nil means xaml.DefaultSchema()
	Schema *xaml.Schema

	// Logger receives render diagnostics. The zero value discards them.
	Logger zerolog.Logger
}

// DefaultOptions returns the options used when none are given
func DefaultOptions() Options {
	return Options{
		Styles:           styles.DefaultResolver(),
		ImagePlaceholder: DefaultImagePlaceholder,
		Logger:           zerolog.Nop(),
	}
}

// Option adjusts Options
type Option func(*Options)

// WithStyles sets the style binding
func WithStyles(r styles.Resolver) Option {
	return func(o *Options) { o.Styles = r }
}

// WithImagePlaceholder sets the source used for malformed image URLs
func WithImagePlaceholder(url string) Option {
	return func(o *Options) { o.ImagePlaceholder = url }
}

// WithHyperlinkCommand binds hyperlinks to a command symbol such as
// markdig:Commands.Hyperlink
func WithHyperlinkCommand(symbol string) Option {
	return func(o *Options) { o.HyperlinkCommand = symbol }
}

// AsFragment skips the document root wrapping
func AsFragment(fragment bool) Option {
	return func(o *Options) { o.Fragment = fragment }
}

// WithSchema replaces the output schema
func WithSchema(s *xaml.Schema) Option {
	return func(o *Options) { o.Schema = s }
}

// WithLogger sends render diagnostics to l
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithOptions replaces all options at once
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}
