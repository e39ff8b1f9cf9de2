// Package notify carries pipeline events from the core to whatever presents
// them: the TUI toast line and the log.
package notify

import (
	"log/slog"
	"time"
)

// Kind names an event.
type Kind string

const (
	KindMoved   Kind = "moved"
	KindCreated Kind = "created"
)

// Event describes something the user should hear about.
type Event struct {
	Kind   Kind
	At     time.Time
	CardID string
	Title  string
	// From and To are stage labels, set for KindMoved.
	From string
	To   string
	// Record is the completed wizard record, set for KindCreated.
	Record map[string]string
}

// Notifier receives events. Implementations must not block.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

// Fanout forwards each event to every non-nil notifier in order.
type Fanout []Notifier

func (f Fanout) Notify(e Event) {
	for _, n := range f {
		if n != nil {
			n.Notify(e)
		}
	}
}

// Discard drops every event.
var Discard Notifier = NotifierFunc(func(Event) {})

// LogNotifier writes events to a structured logger.
type LogNotifier struct {
	Logger *slog.Logger
}

func (l LogNotifier) Notify(e Event) {
	if l.Logger == nil {
		return
	}
	switch e.Kind {
	case KindMoved:
		l.Logger.Info("card moved", "card", e.CardID, "title", e.Title, "from", e.From, "to", e.To)
	case KindCreated:
		l.Logger.Info("card created", "card", e.CardID, "title", e.Title)
	default:
		l.Logger.Info("event", "kind", string(e.Kind), "card", e.CardID)
	}
}
