// Package gesture turns a pick-up / hover / drop interaction into a single
// board move.
package gesture

import (
	"errors"
	"log/slog"
	"time"

	"github.com/jask/rfpboard/internal/board"
	"github.com/jask/rfpboard/internal/notify"
)

// Store is the part of the board a Coordinator needs.
type Store interface {
	Move(cardID, fromStageID, toStageID string) error
	Card(cardID string) (board.Card, string, bool)
	Stage(stageID string) (board.StageConfig, bool)
}

// Gesture is the context recorded at pick-up.
type Gesture struct {
	CardID        string
	SourceStageID string
	Started       time.Time
}

// Coordinator mediates one gesture at a time. Each Drop issues at most one
// Move and always leaves the coordinator idle.
type Coordinator struct {
	store    Store
	notifier notify.Notifier
	logger   *slog.Logger
	now      func() time.Time

	active *Gesture
	hover  string
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithNotifier sends a moved event after each successful cross-stage drop.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Coordinator) { c.notifier = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// WithClock overrides time.Now for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

func New(store Store, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:    store,
		notifier: notify.Discard,
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BeginDrag records the card and the stage it was picked up from. Starting a
// new gesture abandons any unfinished one without moving anything.
func (c *Coordinator) BeginDrag(cardID, sourceStageID string) {
	if c.active != nil {
		c.logger.Debug("gesture replaced", "card", c.active.CardID, "by", cardID)
	}
	c.active = &Gesture{CardID: cardID, SourceStageID: sourceStageID, Started: c.now()}
	c.hover = ""
}

// Hover marks a prospective drop target. It never touches the board.
func (c *Coordinator) Hover(targetStageID string) {
	if c.active == nil {
		return
	}
	c.hover = targetStageID
}

// Drop completes the gesture by moving the card from its recorded source to
// targetStageID. Without a gesture in progress it does nothing. The store's
// error is returned unchanged; the gesture is cleared either way.
func (c *Coordinator) Drop(targetStageID string) error {
	g := c.active
	if g == nil {
		return nil
	}
	c.active, c.hover = nil, ""

	if err := c.store.Move(g.CardID, g.SourceStageID, targetStageID); err != nil {
		if IsBenign(err) {
			c.logger.Debug("stale drop ignored", "card", g.CardID, "from", g.SourceStageID, "to", targetStageID, "err", err)
		} else {
			c.logger.Warn("drop failed", "card", g.CardID, "from", g.SourceStageID, "to", targetStageID, "err", err)
		}
		return err
	}
	if g.SourceStageID == targetStageID {
		return nil
	}

	card, _, _ := c.store.Card(g.CardID)
	from, _ := c.store.Stage(g.SourceStageID)
	to, _ := c.store.Stage(targetStageID)
	c.notifier.Notify(notify.Event{
		Kind:   notify.KindMoved,
		At:     c.now(),
		CardID: g.CardID,
		Title:  card.Title,
		From:   from.Label,
		To:     to.Label,
	})
	return nil
}

// CancelDrag abandons the gesture without moving anything.
func (c *Coordinator) CancelDrag() {
	c.active, c.hover = nil, ""
}

// Active returns the gesture in progress, if any.
func (c *Coordinator) Active() (Gesture, bool) {
	if c.active == nil {
		return Gesture{}, false
	}
	return *c.active, true
}

// HoverTarget is the stage last hovered during the current gesture.
func (c *Coordinator) HoverTarget() string {
	return c.hover
}

// IsBenign reports whether a drop error only means the gesture went stale,
// which the UI drops silently.
func IsBenign(err error) bool {
	return errors.Is(err, board.ErrStaleMove) || errors.Is(err, board.ErrCardNotFound)
}
