package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// pane is a rounded box with the title inset into the top border. Stage
// columns and dashboard cards use it.
type pane struct {
	Title    string
	Accent   lipgloss.Color
	Content  string
	Selected bool // cursor column
	Target   bool // hovered drop target
}

func (p pane) render(width, height int) string {
	width = max(width, 6)
	height = max(height, 3)

	border := colorOverlay0
	switch {
	case p.Target:
		border = colorMauve
	case p.Selected:
		border = colorFocus
	}
	borderStyle := lipgloss.NewStyle().Foreground(border)
	accent := p.Accent
	if accent == "" {
		accent = colorText
	}
	titleStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)

	prefix := "  "
	if p.Selected {
		prefix = "▶ "
	}
	if p.Target {
		prefix = "● "
	}

	innerWidth := width - 2
	contentWidth := innerWidth - 2

	title := strings.TrimSpace(prefix + p.Title)
	titleText := " " + title + " "
	if ansi.StringWidth(titleText) > innerWidth {
		titleText = " " + ansi.Truncate(title, max(1, innerWidth-2), "") + " "
	}
	dashes := max(0, innerWidth-ansi.StringWidth(titleText))
	leftDash := min(1, dashes)
	rightDash := dashes - leftDash

	v := borderStyle.Render("│")
	rows := make([]string, 0, height)
	rows = append(rows, borderStyle.Render("╭"+strings.Repeat("─", leftDash))+
		titleStyle.Render(titleText)+
		borderStyle.Render(strings.Repeat("─", rightDash)+"╮"))

	content := strings.Split(p.Content, "\n")
	for i := 0; i < height-2; i++ {
		line := ""
		if i < len(content) {
			line = ansi.Truncate(content[i], contentWidth, "")
		}
		rows = append(rows, v+" "+fill(line, contentWidth)+" "+v)
	}
	rows = append(rows, borderStyle.Render("╰"+strings.Repeat("─", innerWidth)+"╯"))
	return strings.Join(rows, "\n")
}
