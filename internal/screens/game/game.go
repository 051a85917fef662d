package game

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/expomatematica/quizmat/internal/router"
	"github.com/expomatematica/quizmat/internal/screen"
	"github.com/expomatematica/quizmat/internal/screens/result"
	"github.com/expomatematica/quizmat/internal/session"
	"github.com/expomatematica/quizmat/internal/ui/components"
	"github.com/expomatematica/quizmat/internal/ui/layout"
)

// countdownTickMsg is sent every second while the game is running.
type countdownTickMsg time.Time

// Modal buttons.
const (
	modalContinue = iota
	modalGiveUp
)

// GameScreen implements screen.Screen for one timed play-through.
type GameScreen struct {
	deps      Deps
	player    string
	sessionID string

	state    session.State
	choice   components.MultiChoice
	modalSel int
	finished bool
	errMsg   string
}

var (
	_ screen.Screen          = (*GameScreen)(nil)
	_ screen.KeyHintProvider = (*GameScreen)(nil)
	_ screen.EscapeHandler   = (*GameScreen)(nil)
	_ screen.PlayerProvider  = (*GameScreen)(nil)
)

// New samples a quiz set and starts a session for player. player must
// already be validated.
func New(player string, deps Deps) *GameScreen {
	s := &GameScreen{
		deps:      deps,
		player:    player,
		sessionID: uuid.NewString(),
	}
	if deps.Sampler == nil {
		s.errMsg = "nenhum banco de questões disponível"
		return s
	}

	st, err := session.Start(deps.Sampler.Sample(), deps.Budget)
	if err != nil {
		s.fail(err)
		return s
	}
	s.state = st
	s.resetChoice()
	return s
}

func (s *GameScreen) Init() tea.Cmd {
	if s.errMsg != "" {
		return nil
	}
	s.deps.LogStart(context.Background(), s.sessionID, s.player, s.state)
	return tickCmd()
}

func (s *GameScreen) Title() string {
	return "Desafio"
}

// Player returns the name shown in the header.
func (s *GameScreen) Player() string {
	return s.player
}

// HandlesEscape keeps Esc on this screen while a game is running; Esc
// opens or closes the give-up dialog instead of leaving.
func (s *GameScreen) HandlesEscape() bool {
	return s.errMsg == "" && !s.finished
}

// State returns a copy of the session state.
func (s *GameScreen) State() session.State {
	return s.state
}

func (s *GameScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "Esc", Description: "Voltar"}}
	}
	if s.state.ForfeitPending {
		return []layout.KeyHint{
			{Key: "←→", Description: "Escolher"},
			{Key: "Enter", Description: "Confirmar"},
			{Key: "Esc", Description: "Continuar"},
		}
	}
	submit := "Confirmar e Próxima"
	if s.state.IsLast() {
		submit = "Finalizar"
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Escolher"},
		{Key: "Enter", Description: submit},
		{Key: "Esc", Description: "Desistir"},
	}
}

func (s *GameScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case countdownTickMsg:
		return s.handleTick()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *GameScreen) handleTick() (screen.Screen, tea.Cmd) {
	if s.finished || s.errMsg != "" || s.state.Stage != session.StageInProgress {
		return s, nil
	}
	res, err := s.apply(session.Tick{})
	if err != nil {
		return s, nil
	}
	if res != nil {
		return s, s.finish(*res)
	}
	return s, tickCmd()
}

func (s *GameScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.finished {
		return s, nil
	}

	if s.state.ForfeitPending {
		return s.handleModalKey(key)
	}

	if key == "esc" {
		s.modalSel = modalContinue
		_, _ = s.apply(session.RequestForfeit{})
		return s, nil
	}

	var act components.MultiChoiceAction
	s.choice, act = s.choice.Update(msg)
	switch act {
	case components.ChoicePicked:
		if v, ok := s.choice.Value(); ok {
			_, _ = s.apply(session.Select{Option: v})
		}
	case components.ChoiceConfirm:
		return s.submit()
	}
	return s, nil
}

func (s *GameScreen) handleModalKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "left", "h", "up", "k":
		s.modalSel = modalContinue
	case "right", "l", "down", "j", "tab":
		s.modalSel = modalGiveUp
	case "esc", "c":
		_, _ = s.apply(session.CancelForfeit{})
	case "d":
		s.modalSel = modalGiveUp
		return s.confirmForfeit()
	case "enter":
		if s.modalSel == modalGiveUp {
			return s.confirmForfeit()
		}
		_, _ = s.apply(session.CancelForfeit{})
	}
	return s, nil
}

func (s *GameScreen) confirmForfeit() (screen.Screen, tea.Cmd) {
	res, err := s.apply(session.ConfirmForfeit{})
	if err != nil || res == nil {
		return s, nil
	}
	return s, s.finish(*res)
}

// submit records the answer to the current question and moves on.
func (s *GameScreen) submit() (screen.Screen, tea.Cmd) {
	q, ok := s.state.Current()
	if !ok || !s.state.HasSelection {
		return s, nil
	}
	chosen := s.state.SelectedOption

	res, err := s.apply(session.Submit{})
	if err != nil {
		return s, nil
	}

	s.deps.LogAnswer(context.Background(), s.sessionID, q, chosen, s.state.TimeRemaining)

	if res != nil {
		return s, s.finish(*res)
	}
	s.resetChoice()
	return s, nil
}

// apply runs ev through the state machine. An invariant violation puts
// the screen into its error view.
func (s *GameScreen) apply(ev session.Event) (*session.Result, error) {
	next, res, err := session.Apply(s.state, ev)
	if err != nil {
		s.fail(err)
		return nil, err
	}
	s.state = next
	return res, nil
}

func (s *GameScreen) fail(err error) {
	s.errMsg = err.Error()
	msg := "start session"
	if errors.Is(err, session.ErrInvariant) {
		msg = "session invariant violated"
	}
	s.deps.logger().Error(msg, "session_id", s.sessionID, "err", err)
}

// finish persists the result and hands over to the result screen.
func (s *GameScreen) finish(res session.Result) tea.Cmd {
	s.finished = true
	summary, rec := s.deps.Finish(context.Background(), s.sessionID, s.player, s.state, res)

	next := result.New(s.player, summary, rec, s.deps.Records)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *GameScreen) resetChoice() {
	if q, ok := s.state.Current(); ok {
		s.choice = components.NewMultiChoice(q.Options)
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return countdownTickMsg(t)
	})
}
