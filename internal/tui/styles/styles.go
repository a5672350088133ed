package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - all colors meet WCAG AA contrast (4.5:1) on both black and dark surfaces
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BorderColor    = lipgloss.Color("#6B7280") // Gray
	BlueColor      = lipgloss.Color("#60A5FA") // Blue

	// Convenience styles for colors
	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning   = lipgloss.NewStyle().Foreground(WarningColor)
	Error     = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)
	Text      = lipgloss.NewStyle().Foreground(TextColor)

	// Actor status colors
	StatusServing  = lipgloss.Color("#10B981") // Green
	StatusBreak    = lipgloss.Color("#60A5FA") // Blue
	StatusWaiting  = lipgloss.Color("#F59E0B") // Amber
	StatusDraining = lipgloss.Color("#FB923C") // Orange
	StatusHome     = lipgloss.Color("#A78BFA") // Purple
	StatusRejected = lipgloss.Color("#F87171") // Red

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	// Content area
	ContentBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	SectionTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor)

	QueueBar = lipgloss.NewStyle().
			Foreground(WarningColor)

	HelpBar = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)

	OpenBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(SecondaryColor).
			Padding(0, 1)

	ClosedBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(ErrorColor).
			Padding(0, 1)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)
)

// StatusColor returns the color for an actor status
func StatusColor(status string) lipgloss.Color {
	switch status {
	case "serving", "called":
		return StatusServing
	case "break":
		return StatusBreak
	case "waiting":
		return StatusWaiting
	case "draining":
		return StatusDraining
	case "home":
		return StatusHome
	case "rejected":
		return StatusRejected
	default:
		return MutedColor
	}
}

// StatusIcon returns an icon for an actor status
func StatusIcon(status string) string {
	switch status {
	case "serving", "called":
		return "●"
	case "break":
		return "⏸"
	case "waiting":
		return "…"
	case "draining":
		return "⏱"
	case "home":
		return "✓"
	case "rejected":
		return "✗"
	default:
		return "○"
	}
}
