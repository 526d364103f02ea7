// Package theme holds the lipgloss styles shared by the TUIs.
package theme

import "github.com/charmbracelet/lipgloss"

// DefaultAccent is the accent color used when none is configured.
const DefaultAccent = "#C89A3A"

// Theme is passed explicitly to every view.
type Theme struct {
	Accent lipgloss.Color

	Title    lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Footer   lipgloss.Style
	Error    lipgloss.Style
	Selected lipgloss.Style
	Done     lipgloss.Style

	Card      lipgloss.Style
	CardTitle lipgloss.Style
	CardValue lipgloss.Style

	FocusedField lipgloss.Style
	BlurredField lipgloss.Style
}

// New builds a theme around an accent color.
func New(accent string) Theme {
	if accent == "" {
		accent = DefaultAccent
	}
	c := lipgloss.Color(accent)
	return Theme{
		Accent:   c,
		Title:    lipgloss.NewStyle().Foreground(c).Bold(true),
		Text:     lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
		Footer:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
		Selected: lipgloss.NewStyle().Foreground(c).Bold(true),
		Done:     lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")),
		Card: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A")),
		CardTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
		CardValue: lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true),
		FocusedField: lipgloss.NewStyle().
			Foreground(c),
		BlurredField: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#B0B0B0")),
	}
}

// MetricCard renders a labelled value in a bordered card.
func (t Theme) MetricCard(label, value string) string {
	content := t.CardTitle.Render(label) + "\n" + t.CardValue.Render(value)
	return t.Card.Render(content)
}
