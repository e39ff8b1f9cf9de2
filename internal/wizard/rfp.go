package wizard

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/jask/rfpboard/internal/board"
	"github.com/jask/rfpboard/internal/money"
)

// Field keys of the RFP creation steps.
const (
	KeyTitle           = "title"
	KeyClient          = "clientName"
	KeyDueDate         = "dueDate"
	KeyValue           = "value"
	KeyPriority        = "priority"
	KeyScope           = "scope"
	KeyRequirements    = "requirements"
	KeySubmissionNotes = "submissionNotes"
)

// DateLayout is the input format for due dates.
const DateLayout = "YYYY-MM-DD"

// RFPSteps returns the three steps used to create a pipeline card.
// checkClient, when set, runs after the built-in client checks.
func RFPSteps(checkClient func(string) error) []Step {
	return []Step{
		{
			Title:       "Basic Information",
			Description: "Name the RFP, pick the client and set the due date.",
			Fields: []Field{
				{Key: KeyTitle, Label: "RFP Title", Placeholder: "e.g., Q3 Enterprise Software Upgrade", Required: true},
				{Key: KeyClient, Label: "Client Name", Placeholder: "e.g., Globex Corporation", Required: true, Check: clientCheck(checkClient)},
				{Key: KeyDueDate, Label: "Due Date", Placeholder: DateLayout, Required: true, Check: CheckDate},
			},
		},
		{
			Title:       "Scope & Value",
			Description: "Estimate the value and outline what the client is asking for.",
			Fields: []Field{
				{Key: KeyValue, Label: "Estimated Value ($)", Placeholder: "e.g., 150000", Required: true, Check: CheckValue},
				{Key: KeyPriority, Label: "Priority", Placeholder: "High, Medium or Low", Check: CheckPriority},
				{Key: KeyScope, Label: "Scope", Placeholder: "Briefly describe the project scope...", Multiline: true},
				{Key: KeyRequirements, Label: "Key Requirements", Placeholder: "List the key technical and business requirements...", Multiline: true},
			},
		},
		{
			Title:       "Review & Submit",
			Description: "Submitting adds the new RFP to the 'New' column on the board.",
			Fields: []Field{
				{Key: KeySubmissionNotes, Label: "Submission Notes", Placeholder: "Add any final notes about the submission process...", Multiline: true},
			},
		},
	}
}

func clientCheck(extra func(string) error) func(string) error {
	return func(s string) error {
		if len([]rune(strings.TrimSpace(s))) < 2 {
			return fmt.Errorf("client name must be at least 2 characters")
		}
		if extra != nil {
			return extra(s)
		}
		return nil
	}
}

// CheckDate accepts a calendar date in YYYY-MM-DD form.
func CheckDate(s string) error {
	if _, err := civil.ParseDate(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("due date must look like %s", DateLayout)
	}
	return nil
}

// CheckValue accepts a non-negative dollar amount.
func CheckValue(s string) error {
	_, err := money.ParseUSD(s)
	return err
}

// CheckPriority accepts High, Medium or Low in any casing.
func CheckPriority(s string) error {
	_, err := board.ParsePriority(s)
	return err
}
