package board

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(DefaultStages())
	require.NoError(t, err)
	return s
}

func card(id string) Card {
	return Card{
		ID:         id,
		Title:      "Project " + id,
		ClientName: "Innovate Inc.",
		ValueCents: 150000_00,
		DueDate:    civil.Date{Year: 2024, Month: 8, Day: 15},
	}
}

func TestNewRejectsBadStages(t *testing.T) {
	t.Parallel()

	cases := map[string][]StageConfig{
		"empty":     nil,
		"blank id":  {{ID: "new"}, {ID: " "}},
		"duplicate": {{ID: "new"}, {ID: "new"}},
		"lifecycle": {{ID: "new", Lifecycle: "lost"}},
	}
	for name, stages := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New(stages)
			require.ErrorIs(t, err, ErrInvalidStages)
		})
	}
}

func TestNewFillsLabelAndLifecycle(t *testing.T) {
	s, err := New([]StageConfig{{ID: "todo"}})
	require.NoError(t, err)
	cfg, ok := s.Stage("todo")
	require.True(t, ok)
	require.Equal(t, "todo", cfg.Label)
	require.Equal(t, LifecycleOpen, cfg.Lifecycle)
}

func TestInsert(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Insert("new", card("c1")))
	require.NoError(t, s.Insert("new", card("c2")))
	require.NoError(t, s.InsertAt("new", card("c0"), 0))
	require.NoError(t, s.InsertAt("new", card("c9"), 99))
	require.Equal(t, []string{"c0", "c1", "c2", "c9"}, s.Snapshot().IDs("new"))

	err := s.Insert("lost", card("c3"))
	require.ErrorIs(t, err, ErrUnknownStage)

	err = s.Insert("won", card("c1"))
	require.ErrorIs(t, err, ErrDuplicateCard)
	require.Equal(t, []string{"c0", "c1", "c2", "c9"}, s.Snapshot().IDs("new"))
	require.Empty(t, s.Snapshot().IDs("won"))

	bad := card("c4")
	bad.ValueCents = -1
	require.ErrorIs(t, s.Insert("new", bad), ErrInvalidCard)
	require.Equal(t, 4, s.Len())
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Insert("submitted", card("c1")))

	got, stageID, err := s.Remove("c1")
	require.NoError(t, err)
	require.Equal(t, "c1", got.ID)
	require.Equal(t, "submitted", stageID)
	require.Zero(t, s.Len())

	_, _, err = s.Remove("c1")
	require.ErrorIs(t, err, ErrCardNotFound)
}

func TestMoveScenario(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Insert("in-progress", card("c0")))
	require.NoError(t, s.Insert("new", card("c1")))

	require.NoError(t, s.Move("c1", "new", "in-progress"))

	snap := s.Snapshot()
	require.NotContains(t, snap.IDs("new"), "c1")
	ids := snap.IDs("in-progress")
	require.Equal(t, "c1", ids[len(ids)-1])
	lc, ok := s.Lifecycle("c1")
	require.True(t, ok)
	require.Equal(t, LifecycleOpen, lc)
}

func TestMoveSameStageIsNoop(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Insert("new", card("c1")))
	require.NoError(t, s.Insert("new", card("c2")))
	before := s.Snapshot()

	require.NoError(t, s.Move("c1", "new", "new"))
	require.Equal(t, before, s.Snapshot())
}

func TestMoveThereAndBackAppends(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Insert("new", card("c1")))
	require.NoError(t, s.Insert("new", card("c2")))
	require.NoError(t, s.Insert("won", card("c3")))
	before := s.Snapshot()

	require.NoError(t, s.Move("c2", "new", "won"))
	require.NoError(t, s.Move("c2", "won", "new"))
	require.Equal(t, before, s.Snapshot())

	// The last card of a stage round-trips exactly; any other lands at the end.
	require.NoError(t, s.Move("c1", "new", "won"))
	require.NoError(t, s.Move("c1", "won", "new"))
	require.Equal(t, []string{"c2", "c1"}, s.Snapshot().IDs("new"))
	require.Equal(t, []string{"c3"}, s.Snapshot().IDs("won"))
}

func TestMoveErrors(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Insert("new", card("c1")))

	require.ErrorIs(t, s.Move("c1", "nope", "won"), ErrUnknownStage)
	require.ErrorIs(t, s.Move("c1", "new", "nope"), ErrUnknownStage)

	err := s.Move("c1", "submitted", "won")
	require.ErrorIs(t, err, ErrStaleMove)
	require.False(t, errors.Is(err, ErrCardNotFound))
	require.Equal(t, []string{"c1"}, s.Snapshot().IDs("new"))
}

func TestMoveAfterRemoveIsStale(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Insert("new", card("c1")))
	require.NoError(t, s.Insert("new", card("c2")))
	_, _, err := s.Remove("c1")
	require.NoError(t, err)
	before := s.Snapshot()

	err = s.Move("c1", "new", "in-progress")
	require.ErrorIs(t, err, ErrStaleMove)
	require.ErrorIs(t, err, ErrCardNotFound)
	require.Equal(t, before, s.Snapshot())
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Insert("new", card("c1")))
	require.NoError(t, s.Insert("new", card("c2")))

	snap := s.Snapshot()
	snap.Stages[0].Cards[0].Title = "mutated"
	snap.Stages[0].Cards = append(snap.Stages[0].Cards[:0], card("zz"))

	fresh := s.Snapshot()
	require.Equal(t, []string{"c1", "c2"}, fresh.IDs("new"))
	require.Equal(t, "Project c1", fresh.Cards("new")[0].Title)

	// Published snapshots stay put after later mutations too.
	held := s.Snapshot()
	require.NoError(t, s.Move("c1", "new", "won"))
	require.NoError(t, s.Insert("new", card("c3")))
	require.Equal(t, []string{"c1", "c2"}, held.IDs("new"))
	require.Empty(t, held.IDs("won"))
}

func TestInvariantHoldsAcrossRandomOperations(t *testing.T) {
	s := newTestStore(t)
	stages := s.Stages()
	rng := rand.New(rand.NewPCG(7, 11))
	live := map[string]bool{}
	next := 0

	for step := 0; step < 2000; step++ {
		switch op := rng.IntN(10); {
		case op < 3:
			id := fmt.Sprintf("c%d", next)
			next++
			stage := stages[rng.IntN(len(stages))].ID
			require.NoError(t, s.Insert(stage, card(id)))
			live[id] = true
		case op < 4 && next > 0:
			id := fmt.Sprintf("c%d", rng.IntN(next))
			_, _, err := s.Remove(id)
			if live[id] {
				require.NoError(t, err)
				delete(live, id)
			} else {
				require.ErrorIs(t, err, ErrCardNotFound)
			}
		case next > 0:
			id := fmt.Sprintf("c%d", rng.IntN(next))
			from := stages[rng.IntN(len(stages))].ID
			to := stages[rng.IntN(len(stages))].ID
			_, at, ok := s.Card(id)
			err := s.Move(id, from, to)
			if ok && at == from {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrStaleMove)
			}
		}

		require.NoError(t, s.Verify(), "step %d", step)
		require.Equal(t, len(live), s.Len())
		snap := s.Snapshot()
		require.Equal(t, len(live), snap.Len())
		counts := map[string]int{}
		for _, st := range snap.Stages {
			for _, c := range st.Cards {
				counts[c.ID]++
			}
		}
		for id := range live {
			require.Equal(t, 1, counts[id], "card %s at step %d", id, step)
		}
	}
}
