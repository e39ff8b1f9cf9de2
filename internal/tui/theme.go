package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorSapphire lipgloss.Color = "#74c7ec"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
)

// ---------------------------------------------------------------------------
// Semantic aliases
// ---------------------------------------------------------------------------

const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorMuted   = colorOverlay1
)

// lifecycleColor tints stage headers and chart bars.
func lifecycleColor(lc string) lipgloss.Color {
	switch lc {
	case "submitted":
		return colorSapphire
	case "won":
		return colorSuccess
	}
	return colorBlue
}

func priorityColor(p string) lipgloss.Color {
	switch p {
	case "High":
		return colorError
	case "Medium":
		return colorPeach
	case "Low":
		return colorTeal
	}
	return colorMuted
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	subtleStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	textStyle     = lipgloss.NewStyle().Foreground(colorText)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	warnStyle     = lipgloss.NewStyle().Foreground(colorWarning)
	successStyle  = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(colorBase).Background(colorFocus).Bold(true)
	draggingStyle = lipgloss.NewStyle().Foreground(colorBase).Background(colorMauve).Bold(true)
	tabStyle      = lipgloss.NewStyle().Foreground(colorSubtext0).Padding(0, 1)
	activeTab     = lipgloss.NewStyle().Foreground(colorBase).Background(colorAccent).Bold(true).Padding(0, 1)
	modalStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Background(colorBase).
			Padding(1, 2)
	toastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSuccess).
			Padding(0, 1)
	stepDone    = lipgloss.NewStyle().Foreground(colorSuccess)
	stepCurrent = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Underline(true)
	stepLocked  = lipgloss.NewStyle().Foreground(colorSurface1)
	fieldLabel  = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	fieldFocus  = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
)
