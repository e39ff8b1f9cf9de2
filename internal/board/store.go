// Package board holds the canonical stage -> cards mapping of the RFP pipeline.
//
// Every card on the board lives in exactly one stage. Move is the only
// operation that changes which stage holds a card, and it builds the new
// source and target sequences before committing either, so a Snapshot never
// observes a card in both stages or in neither.
//
// A Store is not safe for concurrent use; the TUI drives it from its single
// update loop.
package board

import (
	"fmt"
	"slices"
)

type column struct {
	cfg   StageConfig
	cards []Card
}

// Store owns the pipeline state.
type Store struct {
	columns []column
	index   map[string]int    // stage id -> position in columns
	where   map[string]string // card id -> stage id
}

// New builds an empty board with a fixed set of stages.
func New(stages []StageConfig) (*Store, error) {
	if err := validateStages(stages); err != nil {
		return nil, err
	}
	s := &Store{
		columns: make([]column, 0, len(stages)),
		index:   make(map[string]int, len(stages)),
		where:   map[string]string{},
	}
	for i, cfg := range stages {
		if cfg.Label == "" {
			cfg.Label = cfg.ID
		}
		if cfg.Lifecycle == "" {
			cfg.Lifecycle = LifecycleOpen
		}
		s.columns = append(s.columns, column{cfg: cfg})
		s.index[cfg.ID] = i
	}
	return s, nil
}

// Insert appends card to the end of the named stage.
func (s *Store) Insert(stageID string, card Card) error {
	return s.InsertAt(stageID, card, -1)
}

// InsertAt places card at pos within the named stage. A negative or
// out-of-range pos appends.
func (s *Store) InsertAt(stageID string, card Card, pos int) error {
	i, ok := s.index[stageID]
	if !ok {
		return fmt.Errorf("insert %s: %w %q", card.ID, ErrUnknownStage, stageID)
	}
	if err := card.Validate(); err != nil {
		return fmt.Errorf("insert: %w", err)
	}
	if at, exists := s.where[card.ID]; exists {
		return fmt.Errorf("insert %s: %w (already in %q)", card.ID, ErrDuplicateCard, at)
	}
	col := &s.columns[i]
	if pos < 0 || pos > len(col.cards) {
		pos = len(col.cards)
	}
	col.cards = slices.Insert(slices.Clip(col.cards), pos, card)
	s.where[card.ID] = stageID
	return nil
}

// Remove deletes the card wherever it is and hands it back with the stage it
// was taken from.
func (s *Store) Remove(cardID string) (Card, string, error) {
	stageID, ok := s.where[cardID]
	if !ok {
		return Card{}, "", fmt.Errorf("remove %s: %w", cardID, ErrCardNotFound)
	}
	col := &s.columns[s.index[stageID]]
	pos := positionOf(col.cards, cardID)
	card := col.cards[pos]
	col.cards = slices.Delete(slices.Clone(col.cards), pos, pos+1)
	delete(s.where, cardID)
	return card, stageID, nil
}

// Move relocates a card from one stage to the end of another.
//
// Unknown stages fail with ErrUnknownStage. A card that is not in fromStageID
// fails with ErrStaleMove (and also ErrCardNotFound when it has left the
// board). Moving within the same stage succeeds without changing anything.
func (s *Store) Move(cardID, fromStageID, toStageID string) error {
	from, ok := s.index[fromStageID]
	if !ok {
		return fmt.Errorf("move %s: %w %q", cardID, ErrUnknownStage, fromStageID)
	}
	to, ok := s.index[toStageID]
	if !ok {
		return fmt.Errorf("move %s: %w %q", cardID, ErrUnknownStage, toStageID)
	}
	at, onBoard := s.where[cardID]
	if !onBoard || at != fromStageID {
		return &staleError{cardID: cardID, stageID: fromStageID, missing: !onBoard}
	}
	if from == to {
		return nil
	}

	src := s.columns[from].cards
	pos := positionOf(src, cardID)
	card := src[pos]

	nextSrc := make([]Card, 0, len(src)-1)
	nextSrc = append(nextSrc, src[:pos]...)
	nextSrc = append(nextSrc, src[pos+1:]...)
	dst := s.columns[to].cards
	nextDst := make([]Card, 0, len(dst)+1)
	nextDst = append(nextDst, dst...)
	nextDst = append(nextDst, card)

	s.columns[from].cards = nextSrc
	s.columns[to].cards = nextDst
	s.where[cardID] = toStageID
	return nil
}

// Snapshot copies the whole board in stage order.
func (s *Store) Snapshot() Snapshot {
	out := Snapshot{Stages: make([]StageView, 0, len(s.columns))}
	for _, col := range s.columns {
		out.Stages = append(out.Stages, StageView{
			ID:        col.cfg.ID,
			Label:     col.cfg.Label,
			Lifecycle: col.cfg.Lifecycle,
			Cards:     slices.Clone(col.cards),
		})
	}
	return out
}

// Card looks up a card and the stage holding it.
func (s *Store) Card(cardID string) (Card, string, bool) {
	stageID, ok := s.where[cardID]
	if !ok {
		return Card{}, "", false
	}
	cards := s.columns[s.index[stageID]].cards
	return cards[positionOf(cards, cardID)], stageID, true
}

// Stage returns the configuration of one stage.
func (s *Store) Stage(stageID string) (StageConfig, bool) {
	i, ok := s.index[stageID]
	if !ok {
		return StageConfig{}, false
	}
	return s.columns[i].cfg, true
}

// Stages lists the stage configuration in board order.
func (s *Store) Stages() []StageConfig {
	out := make([]StageConfig, 0, len(s.columns))
	for _, col := range s.columns {
		out = append(out, col.cfg)
	}
	return out
}

// Lifecycle classifies a card by the stage it currently occupies.
func (s *Store) Lifecycle(cardID string) (Lifecycle, bool) {
	stageID, ok := s.where[cardID]
	if !ok {
		return "", false
	}
	return s.columns[s.index[stageID]].cfg.Lifecycle, true
}

// Len is the number of cards on the board.
func (s *Store) Len() int {
	return len(s.where)
}

// Verify checks that every card sits in exactly one stage and that the
// card index agrees with the stage sequences.
func (s *Store) Verify() error {
	seen := make(map[string]string, len(s.where))
	for _, col := range s.columns {
		for _, c := range col.cards {
			if prev, dup := seen[c.ID]; dup {
				return fmt.Errorf("card %s appears in both %q and %q", c.ID, prev, col.cfg.ID)
			}
			seen[c.ID] = col.cfg.ID
			if s.where[c.ID] != col.cfg.ID {
				return fmt.Errorf("card %s is in %q but indexed under %q", c.ID, col.cfg.ID, s.where[c.ID])
			}
		}
	}
	if len(seen) != len(s.where) {
		for id, stageID := range s.where {
			if _, ok := seen[id]; !ok {
				return fmt.Errorf("card %s is indexed under %q but missing from it", id, stageID)
			}
		}
	}
	return nil
}

func positionOf(cards []Card, cardID string) int {
	return slices.IndexFunc(cards, func(c Card) bool { return c.ID == cardID })
}
