package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// layer is a rendered block pinned to a screen cell.
type layer struct {
	content string
	x, y    int
}

// centered pins content in the middle of a width x height screen.
func centered(content string, width, height int) layer {
	w, h := lipgloss.Size(content)
	return layer{content: content, x: max(0, (width-w)/2), y: max(0, (height-h)/2)}
}

// topRight pins content against the right edge, one column in.
func topRight(content string, width, row int) layer {
	return layer{content: content, x: max(0, width-lipgloss.Width(content)-1), y: row}
}

// compose paints layers over base in order. Rows below height are left alone.
func compose(base string, width, height int, layers ...layer) string {
	rows := strings.Split(base, "\n")
	for len(rows) < height {
		rows = append(rows, "")
	}
	for _, l := range layers {
		lw := lipgloss.Width(l.content)
		for i, line := range strings.Split(l.content, "\n") {
			r := l.y + i
			if r < 0 || r >= height {
				continue
			}
			row := fill(rows[r], width)
			rows[r] = fill(ansi.Cut(row, 0, l.x), l.x) + fill(line, lw) + ansi.Cut(row, l.x+lw, max(width, l.x+lw))
		}
	}
	return strings.Join(rows, "\n")
}

// fill pads s with spaces up to width cells. Wider strings pass through.
func fill(s string, width int) string {
	if gap := width - ansi.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
