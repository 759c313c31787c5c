package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles for one output stream. Styles are bound
// to a renderer so that color support follows the stream they are written
// to, not stdout.
type Styles struct {
	Title   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
	Path    lipgloss.Style
	Code    lipgloss.Style
	Bold    lipgloss.Style
}

// New builds the style set on r.
func New(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Title: r.NewStyle().
			Foreground(HeadingColor).
			Bold(true),
		Success: r.NewStyle().
			Foreground(SuccessColor).
			Bold(true),
		Error: r.NewStyle().
			Foreground(ErrorColor).
			Bold(true),
		Warning: r.NewStyle().
			Foreground(WarningColor).
			Bold(true),
		Muted: r.NewStyle().
			Foreground(MutedColor),
		Path: r.NewStyle().
			Foreground(SecondaryColor).
			Italic(true),
		Code: r.NewStyle().
			Foreground(PrimaryColor),
		Bold: r.NewStyle().Bold(true),
	}
}

// Operation indicators
func (s *Styles) SuccessIndicator() string { return s.Success.Render("✓") }
func (s *Styles) ErrorIndicator() string   { return s.Error.Render("✗") }
func (s *Styles) WarningIndicator() string { return s.Warning.Render("!") }
func (s *Styles) PendingIndicator() string { return s.Muted.Render("○") }
