package ui

import (
	"github.com/charmbracelet/glamour"

	"github.com/arthur-debert/mdxaml/pkg/errors"
)

// Previewer renders markdown for the terminal with glamour
type Previewer struct {
	Style string // Style name: "dark", "light", "notty", "auto", or path to custom style
	Width int    // Word wrap column (0 = glamour default)
}

// NewPreviewer returns a previewer with terminal auto-detection
func NewPreviewer(color bool) *Previewer {
	p := &Previewer{Style: "auto"}
	if !color {
		p.Style = "notty"
	}
	return p
}

// Render converts markdown to terminal output
func (p *Previewer) Render(content string) (string, error) {
	var options []glamour.TermRendererOption

	switch p.Style {
	case "", "auto":
		options = append(options, glamour.WithAutoStyle())
	case "dark", "light", "notty", "ascii", "dracula", "pink", "tokyo-night":
		options = append(options, glamour.WithStandardStyle(p.Style))
	default:
		options = append(options, glamour.WithStylePath(p.Style))
	}
	if p.Width > 0 {
		options = append(options, glamour.WithWordWrap(p.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "creating preview renderer")
	}
	out, err := renderer.Render(content)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrParse, "rendering preview")
	}
	return out, nil
}
