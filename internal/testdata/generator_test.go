package testdata

import (
	"math/rand/v2"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/require"

	"github.com/jask/rfpboard/internal/board"
)

func TestSeedDefaultBoard(t *testing.T) {
	b, err := board.New(board.DefaultStages())
	require.NoError(t, err)

	n, err := Seed(b)
	require.NoError(t, err)
	require.Equal(t, 5, n)

	snap := b.Snapshot()
	require.Equal(t, []string{"rfp-1", "rfp-2"}, snap.IDs("new"))
	require.Equal(t, []string{"rfp-3"}, snap.IDs("in-progress"))
	require.Equal(t, []string{"rfp-4"}, snap.IDs("submitted"))
	require.Equal(t, []string{"rfp-5"}, snap.IDs("won"))

	_, err = Seed(b)
	require.ErrorIs(t, err, board.ErrDuplicateCard)
}

func TestSeedCustomStagesFallsBackByLifecycle(t *testing.T) {
	b, err := board.New([]board.StageConfig{
		{ID: "inbox", Label: "Inbox"},
		{ID: "sent", Label: "Sent", Lifecycle: board.LifecycleSubmitted},
	})
	require.NoError(t, err)

	n, err := Seed(b)
	require.NoError(t, err)
	require.Equal(t, 4, n, "no won stage, so rfp-5 is skipped")
	require.Equal(t, []string{"rfp-1", "rfp-2", "rfp-3"}, b.Snapshot().IDs("inbox"))
	require.Equal(t, []string{"rfp-4"}, b.Snapshot().IDs("sent"))
}

func TestGenerate(t *testing.T) {
	b, err := board.New(board.DefaultStages())
	require.NoError(t, err)

	r := rand.New(rand.NewPCG(1, 2))
	require.NoError(t, Generate(b, r, 50, civil.Date{Year: 2024, Month: 8, Day: 1}))
	require.Equal(t, 50, b.Len())
	require.NoError(t, b.Verify())
}
