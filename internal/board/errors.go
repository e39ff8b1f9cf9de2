package board

import "errors"

var (
	// ErrUnknownStage is returned when an operation names a stage the board was not built with.
	ErrUnknownStage = errors.New("unknown stage")
	// ErrDuplicateCard is returned when an insert reuses an id already on the board.
	ErrDuplicateCard = errors.New("duplicate card")
	// ErrCardNotFound is returned when the card is not on the board at all.
	ErrCardNotFound = errors.New("card not found")
	// ErrStaleMove is returned when the card is not in the stage a move named as its source.
	ErrStaleMove = errors.New("stale move")
	// ErrInvalidCard is returned by Card.Validate.
	ErrInvalidCard = errors.New("invalid card")
	// ErrInvalidStages is returned by New for an unusable stage configuration.
	ErrInvalidStages = errors.New("invalid stages")
)

// staleError reports a move whose source no longer holds the card. When the
// card has left the board entirely it also matches ErrCardNotFound.
type staleError struct {
	cardID  string
	stageID string
	missing bool
}

func (e *staleError) Error() string {
	if e.missing {
		return "stale move: card " + e.cardID + " is no longer on the board"
	}
	return "stale move: card " + e.cardID + " is not in stage " + e.stageID
}

func (e *staleError) Is(target error) bool {
	if target == ErrStaleMove {
		return true
	}
	return e.missing && target == ErrCardNotFound
}
