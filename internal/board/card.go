package board

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
)

// Priority ranks a card. The zero value means no priority was set.
type Priority string

const (
	PriorityNone   Priority = ""
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ParsePriority accepts any casing of High, Medium or Low. Blank input is PriorityNone.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PriorityNone, nil
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	}
	return PriorityNone, fmt.Errorf("unknown priority %q (want High, Medium or Low)", s)
}

// Valid reports whether p is one of the known priorities or unset.
func (p Priority) Valid() bool {
	switch p {
	case PriorityNone, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Card is a single proposal tracked through the pipeline.
type Card struct {
	ID              string
	Title           string
	ClientName      string
	ValueCents      int64
	DueDate         civil.Date
	Priority        Priority
	Scope           string
	Requirements    string
	SubmissionNotes string
}

// Validate checks the fields the board relies on.
func (c Card) Validate() error {
	switch {
	case strings.TrimSpace(c.ID) == "":
		return fmt.Errorf("%w: empty id", ErrInvalidCard)
	case strings.TrimSpace(c.Title) == "":
		return fmt.Errorf("%w: card %s has no title", ErrInvalidCard, c.ID)
	case strings.TrimSpace(c.ClientName) == "":
		return fmt.Errorf("%w: card %s has no client", ErrInvalidCard, c.ID)
	case c.ValueCents < 0:
		return fmt.Errorf("%w: card %s has negative value %d", ErrInvalidCard, c.ID, c.ValueCents)
	case !c.Priority.Valid():
		return fmt.Errorf("%w: card %s has unknown priority %q", ErrInvalidCard, c.ID, c.Priority)
	}
	return nil
}

// Overdue reports whether the card's due date is strictly before today.
// Cards without a due date are never overdue.
func (c Card) Overdue(today civil.Date) bool {
	if c.DueDate.IsZero() {
		return false
	}
	return c.DueDate.Before(today)
}
