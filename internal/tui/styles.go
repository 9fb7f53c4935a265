package tui

import (
	"github.com/charmbracelet/lipgloss"

	"quickswitch/internal/config"
)

// Styles holds the lipgloss styles for the two-pane layout, built from
// the configured theme.
type Styles struct {
	Pane         lipgloss.Style
	ActivePane   lipgloss.Style
	Title        lipgloss.Style
	Directory    lipgloss.Style
	File         lipgloss.Style
	Symlink      lipgloss.Style
	Selected     lipgloss.Style
	Match        lipgloss.Style
	Muted        lipgloss.Style
	StatusBar    lipgloss.Style
	StatusError  lipgloss.Style
	SearchPrompt lipgloss.Style
}

// NewStyles builds the style set from the theme colors in cfg.
func NewStyles(cfg *config.Config) Styles {
	primary := lipgloss.Color(cfg.Theme.Primary)
	emphasis := lipgloss.Color(cfg.Theme.Emphasis)
	muted := lipgloss.Color(cfg.Theme.Muted)
	highlight := lipgloss.Color(cfg.Theme.Highlight)
	warning := lipgloss.Color(cfg.Theme.Warning)

	return Styles{
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1),
		ActivePane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 1),
		Title:        lipgloss.NewStyle().Foreground(primary).Bold(true),
		Directory:    lipgloss.NewStyle().Foreground(primary),
		File:         lipgloss.NewStyle(),
		Symlink:      lipgloss.NewStyle().Foreground(emphasis).Italic(true),
		Selected:     lipgloss.NewStyle().Foreground(emphasis).Bold(true).Reverse(true),
		Match:        lipgloss.NewStyle().Foreground(highlight).Underline(true),
		Muted:        lipgloss.NewStyle().Foreground(muted),
		StatusBar:    lipgloss.NewStyle().Foreground(muted),
		StatusError:  lipgloss.NewStyle().Foreground(warning).Bold(true),
		SearchPrompt: lipgloss.NewStyle().Foreground(highlight),
	}
}
