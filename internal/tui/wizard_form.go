package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/rfpboard/internal/board"
	"github.com/jask/rfpboard/internal/service"
	"github.com/jask/rfpboard/internal/wizard"
)

// wizardForm binds one wizard run to a set of text inputs.
type wizardForm struct {
	wiz    *wizard.Wizard
	inputs map[string]textinput.Model
	focus  int

	// set by the finish callback
	card board.Card
	err  error
}

func (a *App) openWizard() {
	a.openWizardWith(nil)
}

// openWizardWith starts a run with values already filled in, e.g. a draft
// the board refused.
func (a *App) openWizardWith(values map[string]string) {
	f := &wizardForm{inputs: map[string]textinput.Model{}}
	opts := []wizard.Option{wizard.WithValues(values)}
	if a.cfg.UI.ValidationGate {
		opts = append(opts, wizard.WithValidationGate())
	}
	f.wiz = wizard.New(wizard.RFPSteps(nil), func(rec wizard.Record) {
		f.card, f.err = a.deps.Intake.Submit(rec)
	}, opts...)

	for _, step := range f.wiz.Steps() {
		for _, fld := range step.Fields {
			ti := textinput.New()
			ti.Prompt = "› "
			ti.Placeholder = fld.Placeholder
			ti.CharLimit = 120
			if fld.Multiline {
				ti.CharLimit = 1000
			}
			ti.SetValue(values[fld.Key])
			f.inputs[fld.Key] = ti
		}
	}
	f.resize(a.modalWidth())
	f.focusField(0)
	a.form = f
	a.modal = modalWizard
}

func (a *App) closeWizard() {
	a.form = nil
	a.modal = modalNone
}

func (a *App) modalWidth() int {
	return max(30, min(a.width-4, 76))
}

func (f *wizardForm) resize(width int) {
	for k, ti := range f.inputs {
		ti.Width = max(10, width-10)
		f.inputs[k] = ti
	}
}

func (f *wizardForm) fields() []wizard.Field {
	return f.wiz.Current().Fields
}

func (f *wizardForm) focusField(i int) tea.Cmd {
	fields := f.fields()
	if len(fields) == 0 {
		return nil
	}
	f.focus = (i%len(fields) + len(fields)) % len(fields)
	var cmd tea.Cmd
	for j, fld := range fields {
		ti := f.inputs[fld.Key]
		if j == f.focus {
			cmd = ti.Focus()
		} else {
			ti.Blur()
		}
		f.inputs[fld.Key] = ti
	}
	return cmd
}

func (f *wizardForm) focusedKey() string {
	fields := f.fields()
	if f.focus >= len(fields) {
		return ""
	}
	return fields[f.focus].Key
}

func (a *App) handleWizardKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := a.form
	k := a.wizardKeys
	switch {
	case key.Matches(m, k.Discard):
		a.closeWizard()
		a.setStatus("draft discarded")
		return a, nil
	case key.Matches(m, k.NextField):
		return a, f.focusField(f.focus + 1)
	case key.Matches(m, k.PrevField):
		return a, f.focusField(f.focus - 1)
	case key.Matches(m, k.NextStep):
		return a, a.wizardNext()
	case key.Matches(m, k.PrevStep):
		if f.wiz.Prev() {
			return a, f.focusField(0)
		}
		return a, nil
	case key.Matches(m, k.Jump):
		s := m.String()
		if f.wiz.JumpTo(int(s[len(s)-1] - '1')) {
			return a, f.focusField(0)
		}
		return a, nil
	case key.Matches(m, k.Finish):
		a.wizardFinish()
		return a, nil
	case m.Type == tea.KeyEnter:
		if f.focus < len(f.fields())-1 {
			return a, f.focusField(f.focus + 1)
		}
		return a, a.wizardNext()
	}

	fieldKey := f.focusedKey()
	if fieldKey == "" {
		return a, nil
	}
	ti, cmd := f.inputs[fieldKey].Update(m)
	f.inputs[fieldKey] = ti
	f.wiz.SetField(fieldKey, ti.Value())
	return a, cmd
}

func (a *App) wizardNext() tea.Cmd {
	f := a.form
	if f.wiz.IsLast() {
		a.setStatus("press ctrl+s to create the RFP")
		return nil
	}
	if !f.wiz.Next() {
		a.setStatus("fix the highlighted fields to continue")
		return nil
	}
	a.status = ""
	return f.focusField(0)
}

func (a *App) wizardFinish() {
	f := a.form
	if !f.wiz.IsLast() {
		a.setStatus("finish from the last step (ctrl+n to continue)")
		return
	}
	// without the gate nothing has checked the fields yet
	draft := f.wiz.State().Values
	if !a.cfg.UI.ValidationGate {
		if _, err := service.CardFromRecord(wizard.NewRecord(draft), "draft"); err != nil {
			f.err = err
			a.setStatus("the draft cannot be saved yet; use alt+1-9 to fix it")
			return
		}
	}
	f.err = nil
	if !f.wiz.Finish() {
		a.setStatus("some fields need attention; use alt+1-9 to revisit a step")
		return
	}
	if f.err != nil {
		a.openWizardWith(draft)
		a.form.err = f.err
		a.setError(f.err)
		return
	}
	a.closeWizard()
	a.state = viewBoard
	a.status = ""
	a.focusCard(f.card.ID)
}

func (a *App) renderWizard() string {
	f := a.form
	width := a.modalWidth()
	st := f.wiz.State()
	steps := f.wiz.Steps()

	var b strings.Builder
	b.WriteString(titleStyle.Render("New RFP"))
	b.WriteString("\n\n")

	chips := make([]string, 0, len(steps))
	for i, s := range steps {
		label := fmt.Sprintf("%d %s", i+1, s.Title)
		switch {
		case i == st.StepIndex:
			chips = append(chips, stepCurrent.Render(label))
		case f.wiz.CanJumpTo(i):
			chips = append(chips, stepDone.Render("✓ "+label))
		default:
			chips = append(chips, stepLocked.Render(label))
		}
	}
	b.WriteString(strings.Join(chips, subtleStyle.Render("  ›  ")))
	b.WriteString("\n\n")

	cur := f.wiz.Current()
	b.WriteString(subtleStyle.Render(cur.Description))
	b.WriteString("\n")
	if f.err != nil {
		b.WriteString(errorStyle.Render(truncate(f.err.Error(), width-8)))
		b.WriteString("\n")
	}

	if f.wiz.IsLast() {
		b.WriteString("\n")
		b.WriteString(a.renderReview(steps[:len(steps)-1], st.Values, width))
	}

	for i, fld := range cur.Fields {
		b.WriteString("\n")
		label := fld.Label
		if fld.Required {
			label += " *"
		}
		if i == f.focus {
			b.WriteString(fieldFocus.Render(label))
		} else {
			b.WriteString(fieldLabel.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(f.inputs[fld.Key].View())
		b.WriteString("\n")
		switch {
		case st.Errors[fld.Key] != "":
			b.WriteString(errorStyle.Render(st.Errors[fld.Key]))
			b.WriteString("\n")
		case fld.Key == wizard.KeyClient:
			if hint := a.clientHint(st.Values[fld.Key], i == f.focus); hint != "" {
				b.WriteString(warnStyle.Render(hint))
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(a.help.View(a.wizardKeys))
	return modalStyle.Width(width).Render(b.String())
}

func (a *App) clientHint(value string, focused bool) string {
	if strings.TrimSpace(value) == "" {
		if !focused {
			return ""
		}
		return truncate("known: "+strings.Join(a.deps.Clients.Names(), ", "), a.modalWidth()-8)
	}
	return a.deps.Clients.Hint(value)
}

// renderReview lists what was entered on the earlier steps.
func (a *App) renderReview(steps []wizard.Step, values map[string]string, width int) string {
	var rows []string
	for _, s := range steps {
		for _, fld := range s.Fields {
			v := strings.TrimSpace(values[fld.Key])
			if v == "" {
				v = subtleStyle.Render("—")
			}
			line := lipgloss.JoinHorizontal(lipgloss.Top,
				subtleStyle.Width(22).Render(fld.Label),
				textStyle.Render(truncate(v, width-30)),
			)
			rows = append(rows, line)
		}
	}
	return strings.Join(rows, "\n") + "\n"
}
