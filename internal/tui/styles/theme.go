package styles

import (
	"eyeterm/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the core UI styles
type Theme struct {
	Name      string
	App       lipgloss.Style
	Title     lipgloss.Style
	Path      lipgloss.Style
	Prompt    lipgloss.Style
	Echo      lipgloss.Style
	Output    lipgloss.Style
	Boot      lipgloss.Style
	Candidate lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
}

// FromConfig builds the styles for the palette in cfg.
func FromConfig(cfg *config.Config) Theme {
	if cfg == nil {
		cfg = config.New()
	}
	t := cfg.Theme
	return Theme{
		Name: t.Name,
		App: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Primary)),
		Path: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),
		Prompt: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Primary)),
		Echo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Emphasis)),
		Output: lipgloss.NewStyle(),
		Boot: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)),
		Candidate: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
	}
}

// Default is the theme of the default configuration.
func Default() Theme {
	return FromConfig(config.New())
}
