package notify

import (
	"fmt"
	"slices"
	"time"
)

const defaultToastTTL = 4 * time.Second

// Toast is a transient confirmation rendered by the TUI.
type Toast struct {
	Kind    Kind
	Text    string
	Detail  string
	Expires time.Time
}

// Toasts queues confirmations until they expire. The zero value is usable
// and keeps toasts for four seconds.
type Toasts struct {
	TTL   time.Duration
	Max   int
	Now   func() time.Time
	items []Toast
}

// NewToasts returns a queue that keeps each toast for ttl.
func NewToasts(ttl time.Duration) *Toasts {
	return &Toasts{TTL: ttl}
}

func (t *Toasts) Notify(e Event) { t.Push(e) }

// Push formats an event into a toast and queues it.
func (t *Toasts) Push(e Event) Toast {
	at := e.At
	if at.IsZero() {
		at = t.now()
	}
	toast := Toast{Kind: e.Kind, Expires: at.Add(t.ttl())}
	switch e.Kind {
	case KindMoved:
		toast.Text = fmt.Sprintf("RFP %q moved to %s.", e.Title, e.To)
	case KindCreated:
		toast.Text = "New RFP has been successfully created!"
		toast.Detail = "Title: " + e.Title
	default:
		toast.Text = string(e.Kind)
	}
	t.items = append(t.items, toast)
	if limit := t.max(); len(t.items) > limit {
		t.items = slices.Delete(t.items, 0, len(t.items)-limit)
	}
	return toast
}

// Active returns the toasts that have not expired at now, oldest first.
func (t *Toasts) Active(now time.Time) []Toast {
	out := make([]Toast, 0, len(t.items))
	for _, item := range t.items {
		if now.Before(item.Expires) {
			out = append(out, item)
		}
	}
	return out
}

// Prune drops expired toasts and reports how many remain.
func (t *Toasts) Prune(now time.Time) int {
	t.items = slices.DeleteFunc(t.items, func(item Toast) bool { return !now.Before(item.Expires) })
	return len(t.items)
}

func (t *Toasts) ttl() time.Duration {
	if t.TTL <= 0 {
		return defaultToastTTL
	}
	return t.TTL
}

func (t *Toasts) max() int {
	if t.Max <= 0 {
		return 3
	}
	return t.Max
}

func (t *Toasts) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}
