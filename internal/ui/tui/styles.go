package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.Color("#E8BE42")
	muted   = lipgloss.Color("#7D7D7D")
	success = lipgloss.Color("#4CAF50")
)

// Styles holds the terminal styles.
type Styles struct {
	Header  lipgloss.Style
	Step    lipgloss.Style
	Phase   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Card    lipgloss.Style
	Label   lipgloss.Style
	Content lipgloss.Style
}

// DefaultStyles returns the styles used by the terminal player and reports.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(accent).
			Foreground(lipgloss.Color("#000000")).
			Padding(0, 2).
			Bold(true),
		Step: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		Phase: lipgloss.NewStyle().
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(muted),
		Success: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1).
			Width(16).
			Align(lipgloss.Center),
		Label: lipgloss.NewStyle().
			Width(36),
		Content: lipgloss.NewStyle().
			Padding(1, 2),
	}
}
