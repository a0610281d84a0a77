package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// HealthPulse palette
var (
	ColorAccent  = lipgloss.Color("#00b8a9")
	ColorBorder  = lipgloss.Color("#2a2a2a")
	ColorSuccess = lipgloss.Color("#30d158")
	ColorWarning = lipgloss.Color("#ffd60a")
	ColorError   = lipgloss.Color("#ff453a")

	ColorTextPrimary   = lipgloss.Color("#ffffff")
	ColorTextSecondary = lipgloss.Color("#d0d0d0")
	ColorTextMuted     = lipgloss.Color("#808080")
)

// Theme contains the styled components shared by the assessment and
// dashboard screens.
type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Muted    lipgloss.Style

	Card       lipgloss.Style
	CardActive lipgloss.Style

	Selected lipgloss.Style
	Option   lipgloss.Style

	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style

	FooterKey   lipgloss.Style
	FooterLabel lipgloss.Style
}

func lipglossSpinnerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorAccent)
}

// NewTheme creates the default theme.
func NewTheme() *Theme {
	return &Theme{
		Title: lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true),
		Subtitle: lipgloss.NewStyle().
			Foreground(ColorTextSecondary),
		Label: lipgloss.NewStyle().
			Foreground(ColorTextMuted),
		Value: lipgloss.NewStyle().
			Foreground(ColorTextPrimary),
		Muted: lipgloss.NewStyle().
			Foreground(ColorTextMuted),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1),
		CardActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true),
		Option: lipgloss.NewStyle().
			Foreground(ColorTextSecondary),

		StatusSuccess: lipgloss.NewStyle().Foreground(ColorSuccess),
		StatusWarning: lipgloss.NewStyle().Foreground(ColorWarning),
		StatusError:   lipgloss.NewStyle().Foreground(ColorError),

		FooterKey: lipgloss.NewStyle().
			Foreground(ColorAccent),
		FooterLabel: lipgloss.NewStyle().
			Foreground(ColorTextMuted),
	}
}
