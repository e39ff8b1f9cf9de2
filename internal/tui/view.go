package tui

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/rfpboard/internal/board"
	"github.com/jask/rfpboard/internal/money"
)

// card rows drawn per card in a stage column
const cardHeight = 4

func (a *App) View() string {
	header := a.renderHeader()
	footer := a.renderFooter()
	bodyHeight := max(6, a.height-lipgloss.Height(header)-lipgloss.Height(footer))

	var body string
	switch a.state {
	case viewDashboard:
		body = a.renderDashboard(a.width, bodyHeight)
	default:
		body = a.renderBoard(a.width, bodyHeight)
	}
	screen := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)

	var layers []layer
	if toasts := a.renderToasts(); toasts != "" {
		layers = append(layers, topRight(toasts, a.width, 1))
	}
	switch a.modal {
	case modalWizard:
		layers = append(layers, centered(a.renderWizard(), a.width, a.height))
	case modalConfirmRemove:
		layers = append(layers, centered(a.renderConfirm(), a.width, a.height))
	}
	return compose(screen, a.width, a.height, layers...)
}

func (a *App) renderHeader() string {
	tab := func(label string, s appState) string {
		if a.state == s {
			return activeTab.Render(label)
		}
		return tabStyle.Render(label)
	}
	left := titleStyle.Render("RFP Pipeline") + "  " + tab("Board", viewBoard) + tab("Dashboard", viewDashboard)
	snap := a.deps.Board.Snapshot()
	right := subtleStyle.Render(fmt.Sprintf("%d RFPs", snap.Len()))
	gap := max(1, a.width-ansi.StringWidth(left)-ansi.StringWidth(right))
	return left + strings.Repeat(" ", gap) + right
}

func (a *App) renderFooter() string {
	status := ""
	if a.status != "" {
		if a.statusErr {
			status = errorStyle.Render(a.status)
		} else {
			status = textStyle.Render(a.status)
		}
	}
	var keys help.KeyMap = a.keys
	if _, dragging := a.deps.Coordinator.Active(); dragging {
		keys = dragKeyMap{a.keys}
	}
	switch a.modal {
	case modalWizard:
		keys = a.wizardKeys
	case modalConfirmRemove:
		keys = a.confirmKeys
	}
	return truncate(status, a.width) + "\n" + a.help.View(keys)
}

func (a *App) renderBoard(width, height int) string {
	snap := a.deps.Board.Snapshot()
	if len(snap.Stages) == 0 {
		return subtleStyle.Render("no stages configured")
	}
	g, dragging := a.deps.Coordinator.Active()
	hover := a.deps.Coordinator.HoverTarget()

	colWidth := max(16, width/len(snap.Stages))
	cols := make([]string, 0, len(snap.Stages))
	for i, st := range snap.Stages {
		var total int64
		for _, c := range st.Cards {
			total += c.ValueCents
		}
		p := pane{
			Title:    fmt.Sprintf("%s (%d) %s", st.Label, len(st.Cards), money.Compact(a.cfg.UI.CurrencySymbol, total)),
			Accent:   lifecycleColor(string(st.Lifecycle)),
			Selected: i == a.col,
			Target:   dragging && st.ID == hover,
		}
		p.Content = a.renderColumn(st, i == a.col, g.CardID, colWidth-4, height-2)
		cols = append(cols, p.render(colWidth, height))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// renderColumn draws the cards of one stage, scrolled so the cursor stays visible.
func (a *App) renderColumn(st board.StageView, focused bool, draggedID string, width, height int) string {
	if len(st.Cards) == 0 {
		return subtleStyle.Render("no RFPs")
	}
	visible := max(1, height/cardHeight)
	offset := 0
	if focused && a.row >= visible {
		offset = a.row - visible + 1
	}
	today := civil.DateOf(a.now())

	var lines []string
	if offset > 0 {
		lines = append(lines, subtleStyle.Render(fmt.Sprintf("↑ %d more", offset)))
	}
	end := min(len(st.Cards), offset+visible)
	for i := offset; i < end; i++ {
		c := st.Cards[i]
		title := truncate(c.Title, width)
		switch {
		case c.ID == draggedID:
			title = draggingStyle.Render(fill(title, width))
		case focused && i == a.row:
			title = cursorStyle.Render(fill(title, width))
		default:
			title = textStyle.Bold(true).Render(title)
		}
		lines = append(lines, title)
		lines = append(lines, subtleStyle.Render(truncate(c.ClientName+" · "+money.Format(a.cfg.UI.CurrencySymbol, c.ValueCents), width)))
		lines = append(lines, a.renderDue(c, today, width))
		lines = append(lines, "")
	}
	if rest := len(st.Cards) - end; rest > 0 {
		lines = append(lines, subtleStyle.Render(fmt.Sprintf("↓ %d more", rest)))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderDue(c board.Card, today civil.Date, width int) string {
	due := "no due date"
	style := subtleStyle
	if !c.DueDate.IsZero() {
		due = "due " + a.formatDate(c.DueDate)
		if lc, ok := a.deps.Board.Lifecycle(c.ID); ok && lc.Active() && c.Overdue(today) {
			due += " (overdue)"
			style = errorStyle
		}
	}
	out := style.Render(due)
	if c.Priority != board.PriorityNone {
		out += " " + lipgloss.NewStyle().Foreground(priorityColor(string(c.Priority))).Render(string(c.Priority))
	}
	return ansi.Truncate(out, width, "…")
}

func (a *App) formatDate(d civil.Date) string {
	layout := a.cfg.UI.DateFormat
	if layout == "" {
		layout = "2006-01-02"
	}
	return d.In(time.UTC).Format(layout)
}

func (a *App) renderToasts() string {
	active := a.deps.Toasts.Active(a.now())
	if len(active) == 0 {
		return ""
	}
	boxes := make([]string, 0, len(active))
	for _, t := range active {
		body := successStyle.Render(t.Text)
		if t.Detail != "" {
			body += "\n" + subtleStyle.Render(t.Detail)
		}
		boxes = append(boxes, toastStyle.Render(body))
	}
	return lipgloss.JoinVertical(lipgloss.Right, boxes...)
}

func (a *App) renderConfirm() string {
	card, _, ok := a.deps.Board.Card(a.removing)
	text := "This RFP is no longer on the board."
	if ok {
		text = fmt.Sprintf("Remove %q (%s) from the board?", card.Title, card.ClientName)
	}
	return modalStyle.Render(titleStyle.Render("Remove RFP") + "\n\n" + text + "\n\n" + a.help.View(a.confirmKeys))
}
