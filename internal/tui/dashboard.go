package tui

import (
	"fmt"
	"slices"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/rfpboard/internal/board"
	"github.com/jask/rfpboard/internal/money"
	"github.com/jask/rfpboard/internal/service"
)

const (
	metricHeight = 5
	upcomingRows = 6
)

func (a *App) renderDashboard(width, height int) string {
	snap := a.deps.Board.Snapshot()
	today := civil.DateOf(a.now())
	sum := service.Summarize(snap, today)
	sym := a.cfg.UI.CurrencySymbol

	metrics := []pane{
		{Title: "Active RFPs", Accent: colorBlue, Content: fmt.Sprintf("%d\n%s", sum.ActiveCount, subtleStyle.Render(fmt.Sprintf("%d submitted", sum.SubmittedCount)))},
		{Title: "Pipeline Value", Accent: colorAccent, Content: money.Format(sym, sum.PipelineCents) + "\n" + subtleStyle.Render("open and submitted")},
		{Title: "Won", Accent: colorSuccess, Content: fmt.Sprintf("%s\n%s", money.Format(sym, sum.WonCents), subtleStyle.Render(fmt.Sprintf("%d RFPs, %.0f%% win rate", sum.WonCount, sum.WinRate()*100)))},
		{Title: "Overdue", Accent: colorError, Content: fmt.Sprintf("%d\n%s", sum.OverdueCount, subtleStyle.Render("active and past due"))},
	}
	mw := max(16, width/len(metrics))
	row := make([]string, 0, len(metrics))
	for _, m := range metrics {
		row = append(row, m.render(mw, metricHeight))
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, row...)

	lower := max(8, height-metricHeight)
	chartWidth := max(24, width*3/5)
	chart := pane{Title: "Value by stage", Accent: colorMauve, Content: a.renderStageChart(sum.Stages, chartWidth-4, lower-2)}
	upcoming := pane{Title: "Upcoming deadlines", Accent: colorWarning, Content: a.renderUpcoming(snap, today, width-chartWidth-4)}
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		chart.render(chartWidth, lower),
		upcoming.render(max(16, width-chartWidth), lower),
	)
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

// renderStageChart draws one bar per stage, valued in whole currency units,
// with a legend of exact totals underneath.
func (a *App) renderStageChart(stages []service.StageTotal, width, height int) string {
	if len(stages) == 0 {
		return subtleStyle.Render("no stages")
	}
	legendHeight := len(stages)
	chartHeight := max(3, height-legendHeight-1)

	legend := make([]string, 0, len(stages))
	var total int64
	for _, st := range stages {
		total += st.ValueCents
		swatch := lipgloss.NewStyle().Foreground(lifecycleColor(string(st.Lifecycle))).Render("■")
		legend = append(legend, fmt.Sprintf("%s %-14s %3d  %s", swatch, truncate(st.Label, 14), st.Count, money.Compact(a.cfg.UI.CurrencySymbol, st.ValueCents)))
	}
	if total == 0 {
		return subtleStyle.Render("no pipeline value yet") + "\n\n" + strings.Join(legend, "\n")
	}

	data := make([]barchart.BarData, 0, len(stages))
	for _, st := range stages {
		data = append(data, barchart.BarData{
			Label: truncate(st.Label, max(3, width/len(stages)-1)),
			Values: []barchart.BarValue{{
				Name:  st.Label,
				Value: float64(st.ValueCents) / 100,
				Style: lipgloss.NewStyle().Foreground(lifecycleColor(string(st.Lifecycle))),
			}},
		})
	}
	bc := barchart.New(width, chartHeight)
	bc.PushAll(data)
	bc.Draw()
	return bc.View() + "\n" + strings.Join(legend, "\n")
}

// renderUpcoming lists active cards with a due date, soonest first.
func (a *App) renderUpcoming(snap board.Snapshot, today civil.Date, width int) string {
	type dueCard struct {
		card  board.Card
		stage string
	}
	var due []dueCard
	for _, st := range snap.Stages {
		if !st.Lifecycle.Active() {
			continue
		}
		for _, c := range st.Cards {
			if !c.DueDate.IsZero() {
				due = append(due, dueCard{card: c, stage: st.Label})
			}
		}
	}
	if len(due) == 0 {
		return subtleStyle.Render("nothing due")
	}
	slices.SortStableFunc(due, func(x, y dueCard) int {
		switch {
		case x.card.DueDate.Before(y.card.DueDate):
			return -1
		case y.card.DueDate.Before(x.card.DueDate):
			return 1
		}
		return 0
	})

	lines := make([]string, 0, upcomingRows*2)
	for _, d := range due[:min(len(due), upcomingRows)] {
		when := a.formatDate(d.card.DueDate)
		style := textStyle
		if d.card.Overdue(today) {
			when += " overdue"
			style = errorStyle
		}
		lines = append(lines, truncate(textStyle.Bold(true).Render(d.card.Title), width))
		lines = append(lines, truncate(style.Render(when)+subtleStyle.Render(" · "+d.stage), width))
	}
	return strings.Join(lines, "\n")
}
