// Package ui holds the terminal presentation helpers shared by the mdxaml
// commands.
package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/mdxaml/pkg/errors"
)

// ColorMode decides whether output is styled
type ColorMode int

const (
	// ColorAuto styles output only on capable terminals
	ColorAuto ColorMode = iota
	// ColorAlways styles output even when piped
	ColorAlways
	// ColorNever writes plain text
	ColorNever
)

// String returns the string representation of the mode
func (m ColorMode) String() string {
	switch m {
	case ColorAuto:
		return "auto"
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "unknown"
	}
}

// ParseColorMode parses a --color flag value
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return ColorAuto, nil
	case "always", "yes":
		return ColorAlways, nil
	case "never", "no":
		return ColorNever, nil
	default:
		return ColorAuto, errors.Newf(errors.ErrInvalidInput, "unknown color mode: %s", s)
	}
}

// DetectColor reports whether output supports styled text
func DetectColor(output *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

// Enabled resolves mode against output
func (m ColorMode) Enabled(output *os.File) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return DetectColor(output)
	}
}

// ApplyColor configures lipgloss for output and returns whether colors are
// on
func ApplyColor(m ColorMode, output *os.File) bool {
	on := m.Enabled(output)
	if on {
		profile := termenv.NewOutput(output).EnvColorProfile()
		if profile == termenv.Ascii {
			profile = termenv.ANSI
		}
		lipgloss.SetColorProfile(profile)
	} else {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return on
}
