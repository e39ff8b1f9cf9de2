package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/rfpboard/internal/board"
	"github.com/jask/rfpboard/internal/clients"
	"github.com/jask/rfpboard/internal/config"
	"github.com/jask/rfpboard/internal/gesture"
	"github.com/jask/rfpboard/internal/notify"
	"github.com/jask/rfpboard/internal/service"
)

// Deps are the collaborators the App drives. Board and Coordinator are
// required; the rest fall back to inert defaults.
type Deps struct {
	Board       *board.Store
	Coordinator *gesture.Coordinator
	Intake      *service.IntakeService
	Clients     *clients.Registry
	Toasts      *notify.Toasts
	Logger      *slog.Logger
	Now         func() time.Time
}

// App is the root Bubble Tea model.
type App struct {
	cfg    config.Config
	deps   Deps
	state  appState
	modal  modalState
	width  int
	height int

	// board cursor
	col int
	row int

	status    string
	statusErr bool
	removing  string // card id awaiting confirmation
	form      *wizardForm

	keys        boardKeyMap
	wizardKeys  wizardKeyMap
	confirmKeys confirmKeyMap
	help        help.Model
}

type appState string

const (
	viewBoard     appState = "board"
	viewDashboard appState = "dashboard"
)

type modalState string

const (
	modalNone          modalState = ""
	modalWizard        modalState = "wizard"
	modalConfirmRemove modalState = "confirmRemove"
)

type tickMsg time.Time

func New(cfg config.Config, deps Deps) *App {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	if deps.Toasts == nil {
		deps.Toasts = notify.NewToasts(time.Duration(cfg.UI.ToastSeconds) * time.Second)
	}
	if deps.Clients == nil {
		deps.Clients = clients.NewRegistry(clients.Defaults())
	}
	if deps.Intake == nil {
		deps.Intake = &service.IntakeService{Board: deps.Board, NewStage: cfg.Board.NewStage, Notifier: deps.Toasts, Logger: deps.Logger, Now: deps.Now}
	}
	return &App{
		cfg:         cfg,
		deps:        deps,
		state:       viewBoard,
		width:       120,
		height:      32,
		keys:        newBoardKeyMap(),
		wizardKeys:  newWizardKeyMap(),
		confirmKeys: newConfirmKeyMap(),
		help:        help.New(),
	}
}

func (a *App) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
		if a.form != nil {
			a.form.resize(a.modalWidth())
		}
	case tickMsg:
		a.deps.Toasts.Prune(time.Time(m))
		return a, tick()
	case tea.KeyMsg:
		switch a.modal {
		case modalWizard:
			return a.handleWizardKey(m)
		case modalConfirmRemove:
			return a.handleConfirmKey(m)
		}
		if key.Matches(m, a.keys.Quit) {
			return a, tea.Quit
		}
		if a.state == viewDashboard {
			return a.handleDashboardKey(m)
		}
		return a.handleBoardKey(m)
	}
	return a, nil
}

func (a *App) handleDashboardKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Board), key.Matches(m, a.keys.Cancel):
		a.state = viewBoard
	case key.Matches(m, a.keys.New):
		a.openWizard()
	}
	return a, nil
}

func (a *App) handleBoardKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	_, dragging := a.deps.Coordinator.Active()
	stages := a.deps.Board.Stages()

	// a gesture owns the board until it is dropped or cancelled
	if dragging && (key.Matches(m, a.keys.Remove) || key.Matches(m, a.keys.New) || key.Matches(m, a.keys.Dashboard)) {
		a.setStatus("drop or cancel the move first (space or esc)")
		return a, nil
	}

	switch {
	case key.Matches(m, a.keys.Left):
		if a.col > 0 {
			a.col--
		}
		a.afterColumnChange(dragging, stages)
	case key.Matches(m, a.keys.Right):
		if a.col < len(stages)-1 {
			a.col++
		}
		a.afterColumnChange(dragging, stages)
	case key.Matches(m, a.keys.Up):
		if !dragging && a.row > 0 {
			a.row--
		}
	case key.Matches(m, a.keys.Down):
		if !dragging && a.row < len(a.columnCards())-1 {
			a.row++
		}
	case key.Matches(m, a.keys.Grab):
		if dragging {
			a.drop()
		} else {
			a.pickUp()
		}
	case key.Matches(m, a.keys.Drop):
		if dragging {
			a.drop()
		}
	case key.Matches(m, a.keys.Cancel):
		if dragging {
			a.deps.Coordinator.CancelDrag()
			a.setStatus("move cancelled")
			a.clampCursor()
		}
	case key.Matches(m, a.keys.Remove):
		if card, ok := a.focusedCard(); ok {
			a.removing = card.ID
			a.modal = modalConfirmRemove
		}
	case key.Matches(m, a.keys.New):
		a.openWizard()
	case key.Matches(m, a.keys.Dashboard):
		a.state = viewDashboard
	}
	return a, nil
}

func (a *App) afterColumnChange(dragging bool, stages []board.StageConfig) {
	if dragging {
		a.deps.Coordinator.Hover(stages[a.col].ID)
		return
	}
	a.clampCursor()
}

func (a *App) pickUp() {
	card, ok := a.focusedCard()
	if !ok {
		return
	}
	stage := a.deps.Board.Stages()[a.col]
	a.deps.Coordinator.BeginDrag(card.ID, stage.ID)
	a.deps.Coordinator.Hover(stage.ID)
	a.setStatus(fmt.Sprintf("moving %q: ←/→ to choose a stage, space to drop", card.Title))
}

// drop completes the gesture on the cursor column. Stale drops are swallowed.
func (a *App) drop() {
	g, _ := a.deps.Coordinator.Active()
	stages := a.deps.Board.Stages()
	target := stages[a.col].ID
	err := a.deps.Coordinator.Drop(target)
	switch {
	case err == nil:
		a.status = ""
		a.focusCard(g.CardID)
	case gesture.IsBenign(err):
		a.status = ""
		a.clampCursor()
	default:
		a.setError(err)
		a.clampCursor()
	}
}

func (a *App) handleConfirmKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.confirmKeys.Yes):
		card, _, err := a.deps.Board.Remove(a.removing)
		if err != nil {
			a.setError(err)
		} else {
			a.deps.Logger.Info("card removed", "card", card.ID, "title", card.Title)
			a.setStatus(fmt.Sprintf("removed %q", card.Title))
		}
		a.removing = ""
		a.modal = modalNone
		a.clampCursor()
	case key.Matches(m, a.confirmKeys.No):
		a.removing = ""
		a.modal = modalNone
	}
	return a, nil
}

func (a *App) setStatus(s string) {
	a.status, a.statusErr = s, false
}

func (a *App) setError(err error) {
	a.status, a.statusErr = "error: "+err.Error(), true
}

// columnCards lists the cards of the cursor column.
func (a *App) columnCards() []board.Card {
	stages := a.deps.Board.Stages()
	if a.col >= len(stages) {
		return nil
	}
	return a.deps.Board.Snapshot().Cards(stages[a.col].ID)
}

func (a *App) focusedCard() (board.Card, bool) {
	cards := a.columnCards()
	if a.row < 0 || a.row >= len(cards) {
		return board.Card{}, false
	}
	return cards[a.row], true
}

// focusCard moves the cursor onto cardID wherever it now lives.
func (a *App) focusCard(cardID string) {
	_, stageID, ok := a.deps.Board.Card(cardID)
	if !ok {
		a.clampCursor()
		return
	}
	for i, s := range a.deps.Board.Stages() {
		if s.ID != stageID {
			continue
		}
		a.col = i
		for j, c := range a.deps.Board.Snapshot().Cards(stageID) {
			if c.ID == cardID {
				a.row = j
			}
		}
	}
}

func (a *App) clampCursor() {
	stages := a.deps.Board.Stages()
	a.col = max(0, min(a.col, len(stages)-1))
	a.row = max(0, min(a.row, len(a.columnCards())-1))
}

func (a *App) now() time.Time {
	return a.deps.Now()
}
