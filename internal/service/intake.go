package service

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/jask/rfpboard/internal/board"
	"github.com/jask/rfpboard/internal/money"
	"github.com/jask/rfpboard/internal/notify"
	"github.com/jask/rfpboard/internal/wizard"
)

// DefaultNewStage is where freshly created cards land.
const DefaultNewStage = "new"

// Inserter is the part of the board intake writes to.
type Inserter interface {
	Insert(stageID string, card board.Card) error
}

// IntakeService turns finished wizard records into cards on the board. The
// wizard never sees card ids; they are assigned here.
type IntakeService struct {
	Board    Inserter
	NewStage string
	NewID    func() string
	Notifier notify.Notifier
	Logger   *slog.Logger
	Now      func() time.Time
}

// Submit converts rec, inserts it into the new stage and announces it.
func (s *IntakeService) Submit(rec wizard.Record) (board.Card, error) {
	if s.Board == nil {
		return board.Card{}, fmt.Errorf("intake: board not configured")
	}
	card, err := CardFromRecord(rec, s.newID())
	if err != nil {
		return board.Card{}, fmt.Errorf("intake: %w", err)
	}
	stage := s.NewStage
	if stage == "" {
		stage = DefaultNewStage
	}
	if err := s.Board.Insert(stage, card); err != nil {
		return board.Card{}, fmt.Errorf("intake: %w", err)
	}
	if s.Logger != nil {
		s.Logger.Info("rfp created", "card", card.ID, "stage", stage, "value_cents", card.ValueCents)
	}
	if s.Notifier != nil {
		s.Notifier.Notify(notify.Event{
			Kind:   notify.KindCreated,
			At:     s.now(),
			CardID: card.ID,
			Title:  card.Title,
			Record: rec.Values(),
		})
	}
	return card, nil
}

// CardFromRecord parses the RFP wizard fields into a card with the given id.
func CardFromRecord(rec wizard.Record, id string) (board.Card, error) {
	card := board.Card{
		ID:              id,
		Title:           strings.TrimSpace(rec.Get(wizard.KeyTitle)),
		ClientName:      strings.TrimSpace(rec.Get(wizard.KeyClient)),
		Scope:           strings.TrimSpace(rec.Get(wizard.KeyScope)),
		Requirements:    strings.TrimSpace(rec.Get(wizard.KeyRequirements)),
		SubmissionNotes: strings.TrimSpace(rec.Get(wizard.KeySubmissionNotes)),
	}
	if v := strings.TrimSpace(rec.Get(wizard.KeyValue)); v != "" {
		cents, err := money.ParseUSD(v)
		if err != nil {
			return board.Card{}, fmt.Errorf("value: %w", err)
		}
		card.ValueCents = cents
	}
	if d := strings.TrimSpace(rec.Get(wizard.KeyDueDate)); d != "" {
		date, err := civil.ParseDate(d)
		if err != nil {
			return board.Card{}, fmt.Errorf("due date %q: %w", d, err)
		}
		card.DueDate = date
	}
	p, err := board.ParsePriority(rec.Get(wizard.KeyPriority))
	if err != nil {
		return board.Card{}, err
	}
	card.Priority = p
	if err := card.Validate(); err != nil {
		return board.Card{}, err
	}
	return card, nil
}

func (s *IntakeService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return "rfp-" + uuid.NewString()
}

func (s *IntakeService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
