package notify

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestToastTexts(t *testing.T) {
	base := time.Date(2024, 8, 1, 9, 0, 0, 0, time.UTC)
	q := NewToasts(2 * time.Second)

	moved := q.Push(Event{Kind: KindMoved, At: base, Title: "Project Alpha", From: "New", To: "In Progress"})
	require.Equal(t, `RFP "Project Alpha" moved to In Progress.`, moved.Text)

	created := q.Push(Event{Kind: KindCreated, At: base, Title: "Project Zeta"})
	require.Equal(t, "New RFP has been successfully created!", created.Text)
	require.Equal(t, "Title: Project Zeta", created.Detail)
}

func TestToastsExpire(t *testing.T) {
	base := time.Date(2024, 8, 1, 9, 0, 0, 0, time.UTC)
	q := &Toasts{TTL: time.Second}
	q.Push(Event{Kind: KindMoved, At: base, Title: "a", To: "Won"})
	q.Push(Event{Kind: KindMoved, At: base.Add(800 * time.Millisecond), Title: "b", To: "Won"})

	require.Len(t, q.Active(base.Add(500*time.Millisecond)), 2)
	require.Len(t, q.Active(base.Add(time.Second)), 1)
	require.Equal(t, 1, q.Prune(base.Add(time.Second)))
	require.Zero(t, q.Prune(base.Add(2*time.Second)))
}

func TestToastsKeepNewest(t *testing.T) {
	base := time.Date(2024, 8, 1, 9, 0, 0, 0, time.UTC)
	q := &Toasts{Max: 2}
	for _, title := range []string{"a", "b", "c"} {
		q.Push(Event{Kind: KindCreated, At: base, Title: title})
	}
	active := q.Active(base)
	require.Len(t, active, 2)
	require.Equal(t, "Title: b", active[0].Detail)
	require.Equal(t, "Title: c", active[1].Detail)
}

func TestFanoutAndLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	var got []Kind
	f := Fanout{nil, LogNotifier{Logger: logger}, NotifierFunc(func(e Event) { got = append(got, e.Kind) })}

	f.Notify(Event{Kind: KindMoved, CardID: "rfp-1", Title: "Project Alpha", From: "New", To: "Won"})
	require.Equal(t, []Kind{KindMoved}, got)
	require.Contains(t, buf.String(), "card moved")
	require.Contains(t, buf.String(), "card=rfp-1")
}
