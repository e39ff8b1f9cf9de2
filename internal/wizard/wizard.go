// Package wizard is a linear step machine that collects a record under
// per-field validation.
//
// Field values survive back and forth navigation. A step header may be
// revisited once reached (up to VisitedUpTo) but never skipped ahead to.
// Transitions that are not legal from the current state are no-ops that
// report false.
package wizard

import (
	"maps"
	"slices"
	"strings"
)

// Field is one input of a step.
type Field struct {
	Key         string
	Label       string
	Placeholder string
	Required    bool
	Multiline   bool
	// Check validates a non-blank value. Blank values only fail when Required.
	Check func(string) error
}

// Validate returns the message to show for value, or "" when it is fine.
func (f Field) Validate(value string) string {
	if strings.TrimSpace(value) == "" {
		if f.Required {
			return f.Label + " is required"
		}
		return ""
	}
	if f.Check != nil {
		if err := f.Check(value); err != nil {
			return err.Error()
		}
	}
	return ""
}

// Step groups the fields shown together.
type Step struct {
	Title       string
	Description string
	Fields      []Field
}

// Record is the completed set of values handed to the finish callback.
type Record struct {
	values map[string]string
}

// Get returns a value, or "" if the field was never set.
func (r Record) Get(key string) string {
	return r.values[key]
}

// Values copies the record into a plain map.
func (r Record) Values() map[string]string {
	return maps.Clone(r.values)
}

// NewRecord builds a Record directly, for callers that skip the wizard.
func NewRecord(values map[string]string) Record {
	return Record{values: maps.Clone(values)}
}

// State is the read model rendered by the view layer.
type State struct {
	StepIndex   int
	VisitedUpTo int
	Values      map[string]string
	Errors      map[string]string
	Finished    bool
}

// Wizard holds one run through the steps. It is discarded after Finish.
type Wizard struct {
	steps    []Step
	onFinish func(Record)
	gate     bool

	index    int
	visited  int
	values   map[string]string
	errors   map[string]string
	finished bool
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithValidationGate blocks Next and Finish while the fields being left
// behind fail validation, surfacing per-field errors instead.
func WithValidationGate() Option {
	return func(w *Wizard) { w.gate = true }
}

// WithValues pre-fills field values.
func WithValues(values map[string]string) Option {
	return func(w *Wizard) {
		for k, v := range values {
			w.values[k] = v
		}
	}
}

// New starts a wizard at step 0. onFinish may be nil.
func New(steps []Step, onFinish func(Record), opts ...Option) *Wizard {
	w := &Wizard{
		steps:    slices.Clone(steps),
		onFinish: onFinish,
		values:   map[string]string{},
		errors:   map[string]string{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Steps returns the step definitions.
func (w *Wizard) Steps() []Step { return slices.Clone(w.steps) }

// Current returns the step being shown.
func (w *Wizard) Current() Step {
	if len(w.steps) == 0 {
		return Step{}
	}
	return w.steps[w.index]
}

func (w *Wizard) StepIndex() int   { return w.index }
func (w *Wizard) VisitedUpTo() int { return w.visited }
func (w *Wizard) Finished() bool   { return w.finished }

func (w *Wizard) IsFirst() bool { return w.index == 0 }
func (w *Wizard) IsLast() bool  { return w.index == len(w.steps)-1 }

// Next advances one step.
func (w *Wizard) Next() bool {
	if w.finished || w.index >= len(w.steps)-1 {
		return false
	}
	if w.gate && !w.checkSteps(w.index) {
		return false
	}
	w.index++
	w.visited = max(w.visited, w.index)
	return true
}

// Prev goes back one step, keeping every value entered so far.
func (w *Wizard) Prev() bool {
	if w.finished || w.index <= 0 {
		return false
	}
	w.index--
	return true
}

// CanJumpTo reports whether the header of step i is clickable.
func (w *Wizard) CanJumpTo(i int) bool {
	return !w.finished && i >= 0 && i <= w.visited && i < len(w.steps)
}

// JumpTo revisits any step reached before.
func (w *Wizard) JumpTo(i int) bool {
	if !w.CanJumpTo(i) {
		return false
	}
	w.index = i
	return true
}

// SetField stores a value from any step. It clears that field's error.
func (w *Wizard) SetField(key, value string) {
	if w.finished {
		return
	}
	w.values[key] = value
	delete(w.errors, key)
}

// Value returns the current input for key.
func (w *Wizard) Value(key string) string {
	return w.values[key]
}

// Error returns the message recorded for key by the validation gate.
func (w *Wizard) Error(key string) string {
	return w.errors[key]
}

// Finish emits the record from the last step. It works once.
func (w *Wizard) Finish() bool {
	if w.finished || len(w.steps) == 0 || !w.IsLast() {
		return false
	}
	if w.gate {
		all := make([]int, len(w.steps))
		for i := range all {
			all[i] = i
		}
		if !w.checkSteps(all...) {
			return false
		}
	}
	w.finished = true
	if w.onFinish != nil {
		w.onFinish(Record{values: maps.Clone(w.values)})
	}
	return true
}

// State copies the wizard into its read model.
func (w *Wizard) State() State {
	return State{
		StepIndex:   w.index,
		VisitedUpTo: w.visited,
		Values:      maps.Clone(w.values),
		Errors:      maps.Clone(w.errors),
		Finished:    w.finished,
	}
}

// checkSteps validates the fields of the given steps, records errors for the
// failing ones and reports whether all passed.
func (w *Wizard) checkSteps(indexes ...int) bool {
	ok := true
	for _, i := range indexes {
		for _, f := range w.steps[i].Fields {
			if msg := f.Validate(w.values[f.Key]); msg != "" {
				w.errors[f.Key] = msg
				ok = false
			} else {
				delete(w.errors, f.Key)
			}
		}
	}
	return ok
}
