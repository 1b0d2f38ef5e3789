package config

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/mdxaml/pkg/errors"
	"github.com/arthur-debert/mdxaml/pkg/logging"
	"github.com/arthur-debert/mdxaml/pkg/markdown"
	"github.com/arthur-debert/mdxaml/pkg/render"
	"github.com/arthur-debert/mdxaml/pkg/styles"
)

// Config is the effective mdxaml configuration
type Config struct {
	Styles   Styles   `koanf:"styles" toml:"styles"`
	Render   Render   `koanf:"render" toml:"render"`
	Markdown Markdown `koanf:"markdown" toml:"markdown"`
	Logging  Logging  `koanf:"logging" toml:"logging"`
}

// Styles binds style keys to a static resource class
type Styles struct {
	Prefix    string `koanf:"prefix" toml:"prefix"`
	Class     string `koanf:"class" toml:"class"`
	Namespace string `koanf:"namespace" toml:"namespace"`
}

// Render holds renderer switches
type Render struct {
	ImagePlaceholder string `koanf:"image_placeholder" toml:"image_placeholder"`
	HyperlinkCommand string `koanf:"hyperlink_command" toml:"hyperlink_command"`
	Fragment         bool   `koanf:"fragment" toml:"fragment"`
}

// Markdown selects parser extensions and raw HTML handling
type Markdown struct {
	Extensions []string `koanf:"extensions" toml:"extensions"`
	RawMarkup  string   `koanf:"raw_markup" toml:"raw_markup"`
}

// Logging sets the minimum verbosity; the -v flag can only raise it
type Logging struct {
	Verbosity int `koanf:"verbosity" toml:"verbosity"`
}

// Resolver returns the style binding
func (c *Config) Resolver() styles.Resolver {
	return styles.Resolver{
		Prefix:    c.Styles.Prefix,
		Class:     c.Styles.Class,
		Namespace: c.Styles.Namespace,
	}
}

// RenderOptions converts the configuration into renderer options
func (c *Config) RenderOptions() render.Options {
	opts := render.DefaultOptions()
	opts.Styles = c.Resolver()
	if c.Render.ImagePlaceholder != "" {
		opts.ImagePlaceholder = c.Render.ImagePlaceholder
	}
	opts.HyperlinkCommand = c.Render.HyperlinkCommand
	opts.Fragment = c.Render.Fragment
	opts.Logger = logging.GetLogger("render")
	return opts
}

// MarkdownOptions converts the configuration into parser options
func (c *Config) MarkdownOptions() (markdown.Options, error) {
	mode, err := markdown.ParseRawMode(c.Markdown.RawMarkup)
	if err != nil {
		return markdown.Options{}, errors.Wrap(err, errors.ErrConfigValid, "invalid markdown.raw_markup")
	}
	return markdown.Options{
		Extensions: append([]string(nil), c.Markdown.Extensions...),
		Raw:        mode,
		Logger:     logging.GetLogger("markdown"),
	}, nil
}

// Validate checks every section can be turned into options
func (c *Config) Validate() error {
	if err := c.Resolver().Validate(); err != nil {
		return err
	}
	if c.Logging.Verbosity < 0 {
		return errors.Newf(errors.ErrConfigValid, "logging.verbosity must not be negative, got %d", c.Logging.Verbosity)
	}
	opts, err := c.MarkdownOptions()
	if err != nil {
		return err
	}
	if _, err := markdown.New(opts); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid markdown.extensions")
	}
	return nil
}

// TOML encodes the configuration in the same layout as the config file
func (c *Config) TOML() ([]byte, error) {
	out, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "encoding configuration")
	}
	return out, nil
}
