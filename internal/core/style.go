package core

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the console styles used by the handlers. Styles are bound
// to the writer they render for, so output that is not a terminal carries
// no escape sequences.
type Styles struct {
	Error      lipgloss.Style
	Prompt     lipgloss.Style
	Complete   lipgloss.Style
	Incomplete lipgloss.Style
	Highlight  lipgloss.Style
	Deleted    lipgloss.Style
	Success    lipgloss.Style
}

// NewStyles returns the styles for output written to w. noColor forces
// plain text even on a color terminal.
func NewStyles(w io.Writer, noColor bool) Styles {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	// Titles are printed verbatim, tabs included.
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return Styles{
		Error:      base.Foreground(lipgloss.Color("#FF5F5F")),
		Prompt:     base.Foreground(lipgloss.Color("#5F87FF")),
		Complete:   base.Foreground(lipgloss.Color("#00AF5F")).Faint(true),
		Incomplete: base.Foreground(lipgloss.Color("#FFFFFF")),
		Highlight:  base.Foreground(lipgloss.Color("#00FF00")).Bold(true),
		Deleted:    base.Background(lipgloss.Color("#AF0000")),
		Success:    base.Foreground(lipgloss.Color("#00FF00")),
	}
}

// PlainStyles returns styles that never emit escape sequences.
func PlainStyles() Styles {
	return NewStyles(io.Discard, true)
}
