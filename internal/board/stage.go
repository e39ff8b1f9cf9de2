package board

import (
	"fmt"
	"strings"
)

// Lifecycle classifies where a card stands once it occupies a stage.
type Lifecycle string

const (
	LifecycleOpen      Lifecycle = "open"
	LifecycleSubmitted Lifecycle = "submitted"
	LifecycleWon       Lifecycle = "won"
)

// ParseLifecycle maps a config string onto a Lifecycle. Blank input means open.
func ParseLifecycle(s string) (Lifecycle, error) {
	switch Lifecycle(strings.ToLower(strings.TrimSpace(s))) {
	case "", LifecycleOpen:
		return LifecycleOpen, nil
	case LifecycleSubmitted:
		return LifecycleSubmitted, nil
	case LifecycleWon:
		return LifecycleWon, nil
	}
	return "", fmt.Errorf("unknown lifecycle %q", s)
}

// Active is true for every lifecycle that still counts toward the open pipeline.
func (l Lifecycle) Active() bool {
	return l != LifecycleWon
}

// StageConfig declares one pipeline phase.
type StageConfig struct {
	ID        string
	Label     string
	Lifecycle Lifecycle
}

// DefaultStages is the New / In Progress / Submitted / Won pipeline.
func DefaultStages() []StageConfig {
	return []StageConfig{
		{ID: "new", Label: "New", Lifecycle: LifecycleOpen},
		{ID: "in-progress", Label: "In Progress", Lifecycle: LifecycleOpen},
		{ID: "submitted", Label: "Submitted", Lifecycle: LifecycleSubmitted},
		{ID: "won", Label: "Won", Lifecycle: LifecycleWon},
	}
}

func validateStages(stages []StageConfig) error {
	if len(stages) == 0 {
		return fmt.Errorf("%w: no stages configured", ErrInvalidStages)
	}
	seen := make(map[string]struct{}, len(stages))
	for i, s := range stages {
		if strings.TrimSpace(s.ID) == "" {
			return fmt.Errorf("%w: stage %d has an empty id", ErrInvalidStages, i)
		}
		if _, ok := seen[s.ID]; ok {
			return fmt.Errorf("%w: duplicate stage id %q", ErrInvalidStages, s.ID)
		}
		if _, err := ParseLifecycle(string(s.Lifecycle)); err != nil {
			return fmt.Errorf("%w: stage %q: %v", ErrInvalidStages, s.ID, err)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}
