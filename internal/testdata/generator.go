package testdata

import (
	"fmt"
	"math/rand/v2"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/jask/rfpboard/internal/board"
)

// Board is what Seed and Generate need from the store.
type Board interface {
	Insert(stageID string, card board.Card) error
	Stages() []board.StageConfig
}

type placeholder struct {
	stageID   string
	lifecycle board.Lifecycle
	card      board.Card
}

func day(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

var placeholders = []placeholder{
	{"new", board.LifecycleOpen, board.Card{ID: "rfp-1", Title: "Project Alpha", ClientName: "Innovate Inc.", ValueCents: 150000_00, DueDate: day(2024, time.August, 15), Priority: board.PriorityHigh}},
	{"new", board.LifecycleOpen, board.Card{ID: "rfp-2", Title: "Project Beta", ClientName: "Solutions Corp.", ValueCents: 220000_00, DueDate: day(2024, time.August, 20), Priority: board.PriorityMedium}},
	{"in-progress", board.LifecycleOpen, board.Card{ID: "rfp-3", Title: "Project Gamma", ClientName: "Synergy LLC", ValueCents: 95000_00, DueDate: day(2024, time.August, 10), Priority: board.PriorityLow}},
	{"submitted", board.LifecycleSubmitted, board.Card{ID: "rfp-4", Title: "Project Delta", ClientName: "Future Systems", ValueCents: 310000_00, DueDate: day(2024, time.July, 30), Priority: board.PriorityHigh}},
	{"won", board.LifecycleWon, board.Card{ID: "rfp-5", Title: "Project Epsilon", ClientName: "Global Tech", ValueCents: 500000_00, DueDate: day(2024, time.July, 1)}},
}

// Seed loads the five placeholder RFPs. Each goes to its usual stage, or to the
// first stage with the same lifecycle when the board uses other ids. Cards with
// no matching stage are skipped.
func Seed(b Board) (int, error) {
	stages := b.Stages()
	n := 0
	for _, p := range placeholders {
		stageID, ok := pickStage(stages, p.stageID, p.lifecycle)
		if !ok {
			continue
		}
		if err := b.Insert(stageID, p.card); err != nil {
			return n, fmt.Errorf("seed %s: %w", p.card.ID, err)
		}
		n++
	}
	return n, nil
}

func pickStage(stages []board.StageConfig, id string, lc board.Lifecycle) (string, bool) {
	for _, s := range stages {
		if s.ID == id {
			return s.ID, true
		}
	}
	for _, s := range stages {
		if s.Lifecycle == lc {
			return s.ID, true
		}
	}
	return "", false
}

var (
	projectNames = []string{"Atlas", "Beacon", "Cobalt", "Drift", "Ember", "Fjord", "Granite", "Harbor"}
	clientNames  = []string{"Innovate Corp", "Solutions Ltd.", "Pioneer Industries", "Summit Enterprises"}
	priorities   = []board.Priority{board.PriorityNone, board.PriorityHigh, board.PriorityMedium, board.PriorityLow}
)

// Generate inserts n random cards spread over every stage. Ids are random
// UUIDs; everything else comes from r so runs are repeatable.
func Generate(b Board, r *rand.Rand, n int, from civil.Date) error {
	stages := b.Stages()
	if len(stages) == 0 {
		return fmt.Errorf("generate: board has no stages")
	}
	for i := 0; i < n; i++ {
		card := board.Card{
			ID:         "rfp-" + uuid.NewString(),
			Title:      "Project " + projectNames[r.IntN(len(projectNames))],
			ClientName: clientNames[r.IntN(len(clientNames))],
			ValueCents: int64(r.IntN(500)+5) * 1000_00,
			DueDate:    from.AddDays(r.IntN(90) - 30),
			Priority:   priorities[r.IntN(len(priorities))],
		}
		if err := b.Insert(stages[r.IntN(len(stages))].ID, card); err != nil {
			return fmt.Errorf("generate: %w", err)
		}
	}
	return nil
}
