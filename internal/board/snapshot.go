package board

// StageView is one column of a Snapshot.
type StageView struct {
	ID        string
	Label     string
	Lifecycle Lifecycle
	Cards     []Card
}

// Snapshot is a detached copy of the board in stage order. Nothing in it
// aliases store memory, so renderers can keep or modify it freely.
type Snapshot struct {
	Stages []StageView
}

// Stage returns the column with the given id.
func (s Snapshot) Stage(id string) (StageView, bool) {
	for _, st := range s.Stages {
		if st.ID == id {
			return st, true
		}
	}
	return StageView{}, false
}

// Cards returns the cards of one stage, or nil for an unknown id.
func (s Snapshot) Cards(stageID string) []Card {
	st, _ := s.Stage(stageID)
	return st.Cards
}

// IDs returns the card ids of one stage in order.
func (s Snapshot) IDs(stageID string) []string {
	cards := s.Cards(stageID)
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

// Len counts every card in the snapshot.
func (s Snapshot) Len() int {
	n := 0
	for _, st := range s.Stages {
		n += len(st.Cards)
	}
	return n
}
