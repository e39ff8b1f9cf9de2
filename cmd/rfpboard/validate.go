package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"cloud.google.com/go/civil"

	"github.com/jask/rfpboard/internal/board"
	"github.com/jask/rfpboard/internal/clients"
	"github.com/jask/rfpboard/internal/config"
	"github.com/jask/rfpboard/internal/gesture"
	"github.com/jask/rfpboard/internal/notify"
	"github.com/jask/rfpboard/internal/service"
	"github.com/jask/rfpboard/internal/testdata"
	"github.com/jask/rfpboard/internal/wizard"
)

// runValidation drives the board, coordinator and wizard without a terminal
// against the configured stages.
func runValidation(cfg config.Config, logger *slog.Logger) error {
	if _, err := clients.LoadFile(cfg.Clients.Path); err != nil {
		return fmt.Errorf("clients: %w", err)
	}
	stages, err := cfg.Stages()
	if err != nil {
		return err
	}
	b, err := board.New(stages)
	if err != nil {
		return fmt.Errorf("build board: %w", err)
	}
	if _, err := testdata.Seed(b); err != nil {
		return err
	}

	var events []notify.Event
	record := notify.NotifierFunc(func(e notify.Event) { events = append(events, e) })
	coord := gesture.New(b, gesture.WithNotifier(record), gesture.WithLogger(logger))

	if err := checkDragAcross(b, coord, &events); err != nil {
		return err
	}
	if err := checkStaleDrop(b, coord); err != nil {
		return err
	}

	intake := &service.IntakeService{Board: b, NewStage: cfg.Board.NewStage, Notifier: record, Logger: logger}
	if err := checkWizard(b, intake); err != nil {
		return err
	}

	today := civil.DateOf(time.Now())
	r := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 1))
	if err := testdata.Generate(b, r, 200, today); err != nil {
		return err
	}
	for range 1000 {
		snap := b.Snapshot()
		from := snap.Stages[r.IntN(len(snap.Stages))]
		if len(from.Cards) == 0 {
			continue
		}
		to := snap.Stages[r.IntN(len(snap.Stages))]
		coord.BeginDrag(from.Cards[r.IntN(len(from.Cards))].ID, from.ID)
		coord.Hover(to.ID)
		if err := coord.Drop(to.ID); err != nil {
			return fmt.Errorf("random move: %w", err)
		}
	}
	if err := b.Verify(); err != nil {
		return err
	}

	sum := service.Summarize(b.Snapshot(), today)
	total := 0
	for _, st := range sum.Stages {
		total += st.Count
	}
	if total != b.Len() {
		return fmt.Errorf("summary counts %d cards, board holds %d", total, b.Len())
	}
	return nil
}

// checkDragAcross moves the first card of the first non-empty stage to the
// last stage and back.
func checkDragAcross(b *board.Store, coord *gesture.Coordinator, events *[]notify.Event) error {
	stages := b.Stages()
	if len(stages) < 2 {
		return nil
	}
	snap := b.Snapshot()
	var card board.Card
	var from string
	for _, st := range snap.Stages {
		if len(st.Cards) > 0 {
			card, from = st.Cards[0], st.ID
			break
		}
	}
	if from == "" {
		return nil
	}
	to := stages[len(stages)-1].ID
	if to == from {
		to = stages[0].ID
	}

	before := b.Len()
	coord.BeginDrag(card.ID, from)
	coord.Hover(to)
	if err := coord.Drop(to); err != nil {
		return fmt.Errorf("drag %s to %s: %w", card.ID, to, err)
	}
	if _, at, _ := b.Card(card.ID); at != to {
		return fmt.Errorf("card %s is in %q after drop, want %q", card.ID, at, to)
	}
	if b.Len() != before {
		return fmt.Errorf("card count changed from %d to %d", before, b.Len())
	}
	if n := len(*events); n == 0 || (*events)[n-1].Kind != notify.KindMoved {
		return errors.New("drop did not announce the move")
	}

	coord.BeginDrag(card.ID, to)
	if err := coord.Drop(from); err != nil {
		return fmt.Errorf("drag back: %w", err)
	}
	return b.Verify()
}

// checkStaleDrop removes a card mid-gesture; the drop must fail benignly.
func checkStaleDrop(b *board.Store, coord *gesture.Coordinator) error {
	snap := b.Snapshot()
	for _, st := range snap.Stages {
		if len(st.Cards) == 0 {
			continue
		}
		id := st.Cards[len(st.Cards)-1].ID
		coord.BeginDrag(id, st.ID)
		if _, _, err := b.Remove(id); err != nil {
			return err
		}
		err := coord.Drop(st.ID)
		if !gesture.IsBenign(err) {
			return fmt.Errorf("stale drop returned %v, want a stale move error", err)
		}
		return b.Verify()
	}
	return nil
}

func checkWizard(b *board.Store, intake *service.IntakeService) error {
	var created board.Card
	var submitErr error
	w := wizard.New(wizard.RFPSteps(nil), func(rec wizard.Record) {
		created, submitErr = intake.Submit(rec)
	}, wizard.WithValidationGate())

	w.SetField(wizard.KeyTitle, "Validation RFP")
	w.SetField(wizard.KeyClient, "Innovate Corp")
	w.SetField(wizard.KeyDueDate, "2030-01-31")
	if !w.Next() {
		return fmt.Errorf("wizard refused step 1: %v", w.State().Errors)
	}
	w.SetField(wizard.KeyValue, "1,250.50")
	if !w.Next() {
		return fmt.Errorf("wizard refused step 2: %v", w.State().Errors)
	}
	if !w.Finish() {
		return errors.New("wizard did not finish")
	}
	if w.Finish() {
		return errors.New("wizard finished twice")
	}
	if submitErr != nil {
		return fmt.Errorf("submit: %w", submitErr)
	}
	if _, stage, ok := b.Card(created.ID); !ok || stage != intake.NewStage {
		return fmt.Errorf("created card %s landed in %q, want %q", created.ID, stage, intake.NewStage)
	}
	return nil
}
