package service

import (
	"cloud.google.com/go/civil"

	"github.com/jask/rfpboard/internal/board"
)

// StageTotal is the per-column line of a Summary.
type StageTotal struct {
	StageID    string
	Label      string
	Lifecycle  board.Lifecycle
	Count      int
	ValueCents int64
}

// Summary backs the dashboard metric cards and chart.
type Summary struct {
	ActiveCount    int
	PipelineCents  int64
	WonCount       int
	WonCents       int64
	SubmittedCount int
	OverdueCount   int
	Stages         []StageTotal
}

// WinRate is won cards over won plus submitted ones, or 0 with nothing decided.
func (s Summary) WinRate() float64 {
	decided := s.WonCount + s.SubmittedCount
	if decided == 0 {
		return 0
	}
	return float64(s.WonCount) / float64(decided)
}

// Summarize totals a snapshot. Overdue counts active cards due before today.
func Summarize(snap board.Snapshot, today civil.Date) Summary {
	var out Summary
	for _, st := range snap.Stages {
		line := StageTotal{StageID: st.ID, Label: st.Label, Lifecycle: st.Lifecycle, Count: len(st.Cards)}
		for _, c := range st.Cards {
			line.ValueCents += c.ValueCents
			if st.Lifecycle.Active() && c.Overdue(today) {
				out.OverdueCount++
			}
		}
		switch st.Lifecycle {
		case board.LifecycleWon:
			out.WonCount += line.Count
			out.WonCents += line.ValueCents
		case board.LifecycleSubmitted:
			out.SubmittedCount += line.Count
		}
		if st.Lifecycle.Active() {
			out.ActiveCount += line.Count
			out.PipelineCents += line.ValueCents
		}
		out.Stages = append(out.Stages, line)
	}
	return out
}
