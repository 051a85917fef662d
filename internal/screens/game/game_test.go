package game

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/expomatematica/quizmat/internal/leaderboard"
	"github.com/expomatematica/quizmat/internal/quiz"
	"github.com/expomatematica/quizmat/internal/router"
	"github.com/expomatematica/quizmat/internal/screens/result"
	"github.com/expomatematica/quizmat/internal/session"
	"github.com/expomatematica/quizmat/internal/store"
)

type mockRecords struct {
	mu      sync.Mutex
	records []leaderboard.PlayerRecord
}

func (m *mockRecords) Append(_ context.Context, rec leaderboard.PlayerRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

func (m *mockRecords) All(context.Context) ([]leaderboard.PlayerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.records), nil
}

type mockEventRepo struct {
	sessionEvents []store.SessionEventData
	answerEvents  []store.AnswerEventData
}

func (m *mockEventRepo) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	m.sessionEvents = append(m.sessionEvents, data)
	return nil
}
func (m *mockEventRepo) AppendAnswerEvent(_ context.Context, data store.AnswerEventData) error {
	m.answerEvents = append(m.answerEvents, data)
	return nil
}
func (m *mockEventRepo) Stats(context.Context, store.QueryOpts) (*store.Stats, error) {
	return &store.Stats{}, nil
}
func (m *mockEventRepo) RecentSessions(context.Context, store.QueryOpts) ([]store.SessionEventData, error) {
	return nil, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testGameScreen(t *testing.T) (*GameScreen, *mockRecords, *mockEventRepo) {
	t.Helper()
	cfg := quiz.DefaultConfig()
	bank := quiz.BuildBank(quiz.NewSeededRand(7), cfg.BankSizes)
	records := &mockRecords{}
	events := &mockEventRepo{}
	deps := Deps{
		Sampler: quiz.NewSampler(bank, cfg.Quotas, quiz.NewSeededRand(8)),
		Budget:  cfg.TimeBudgetSeconds,
		Records: records,
		Events:  events,
		Now:     func() time.Time { return time.Date(2025, 10, 3, 14, 0, 0, 0, time.UTC) },
	}
	s := New("Ana", deps)
	if s.errMsg != "" {
		t.Fatalf("unexpected error: %s", s.errMsg)
	}
	if cmd := s.Init(); cmd == nil {
		t.Fatal("Init should schedule the countdown")
	}
	return s, records, events
}

// optionKey returns the number key for value in the current question.
func optionKey(t *testing.T, s *GameScreen, value int) tea.KeyPressMsg {
	t.Helper()
	q, _ := s.state.Current()
	i := slices.Index(q.Options, value)
	if i < 0 {
		t.Fatalf("value %d not among options %v", value, q.Options)
	}
	return keyPress(rune('1' + i))
}

func wrongOption(s *GameScreen) int {
	q, _ := s.state.Current()
	for _, o := range q.Options {
		if o != q.Answer {
			return o
		}
	}
	return -1
}

// answer picks value and confirms it.
func answer(t *testing.T, s *GameScreen, value int) tea.Cmd {
	t.Helper()
	s.Update(optionKey(t, s, value))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	return cmd
}

func expectResult(t *testing.T, cmd tea.Cmd) *result.ResultScreen {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	rs, ok := msg.Screen.(*result.ResultScreen)
	if !ok {
		t.Fatalf("expected result screen, got %T", msg.Screen)
	}
	return rs
}

func TestGameScreen_Start(t *testing.T) {
	s, _, events := testGameScreen(t)

	if s.state.Stage != session.StageInProgress {
		t.Fatalf("Stage = %v, want InProgress", s.state.Stage)
	}
	if len(s.state.Questions) != 10 {
		t.Errorf("questions = %d, want 10", len(s.state.Questions))
	}
	if len(events.sessionEvents) != 1 || events.sessionEvents[0].Action != store.ActionStart {
		t.Errorf("expected one start event, got %+v", events.sessionEvents)
	}
	if !s.HandlesEscape() {
		t.Error("running game should capture Esc")
	}
	if s.Player() != "Ana" {
		t.Errorf("Player = %q", s.Player())
	}
}

func TestGameScreen_PickThenConfirm(t *testing.T) {
	s, _, events := testGameScreen(t)
	q, _ := s.state.Current()

	s.Update(optionKey(t, s, q.Answer))
	if !s.state.HasSelection || s.state.SelectedOption != q.Answer {
		t.Fatalf("selection not applied: %+v", s.state)
	}
	if s.state.CurrentIndex != 0 {
		t.Fatal("picking must not advance")
	}

	s.Update(specialKey(tea.KeyEnter))
	if s.state.CurrentIndex != 1 || s.state.Score != 1 {
		t.Errorf("after confirm: index=%d score=%d", s.state.CurrentIndex, s.state.Score)
	}
	if s.state.HasSelection {
		t.Error("selection should reset on the next question")
	}
	if len(events.answerEvents) != 1 {
		t.Fatalf("answer events = %d, want 1", len(events.answerEvents))
	}
	ev := events.answerEvents[0]
	if ev.QuestionID != q.ID || !ev.Correct || ev.ChosenAnswer != q.Answer {
		t.Errorf("unexpected answer event %+v", ev)
	}
}

func TestGameScreen_EnterWithoutPickOnlyPicks(t *testing.T) {
	s, _, _ := testGameScreen(t)
	s.Update(specialKey(tea.KeyEnter))
	if s.state.CurrentIndex != 0 {
		t.Error("first enter should only pick the option under the cursor")
	}
	if !s.state.HasSelection {
		t.Error("expected a selection")
	}
}

func TestGameScreen_CompleteQuiz(t *testing.T) {
	s, records, events := testGameScreen(t)

	var cmd tea.Cmd
	for i := 0; i < 10; i++ {
		s.Update(countdownTickMsg(time.Now()))
		q, _ := s.state.Current()
		if i < 7 {
			cmd = answer(t, s, q.Answer)
		} else {
			cmd = answer(t, s, wrongOption(s))
		}
	}

	rs := expectResult(t, cmd)
	if rs == nil {
		return
	}
	if s.HandlesEscape() {
		t.Error("finished game should release Esc")
	}
	if len(records.records) != 1 {
		t.Fatalf("records = %d, want 1", len(records.records))
	}
	rec := records.records[0]
	if rec.Name != "Ana" || rec.Score != 7 || rec.TimeSpentSeconds != 10 {
		t.Errorf("record = %+v, want Ana 7/10s", rec)
	}
	last := events.sessionEvents[len(events.sessionEvents)-1]
	if last.Action != store.ActionEnd || last.Reason != string(session.ReasonCompleted) || last.RecordID != rec.ID {
		t.Errorf("unexpected end event %+v", last)
	}
	if len(events.answerEvents) != 10 {
		t.Errorf("answer events = %d, want 10", len(events.answerEvents))
	}
}

func TestGameScreen_Timeout(t *testing.T) {
	s, records, _ := testGameScreen(t)
	q, _ := s.state.Current()
	answer(t, s, q.Answer)

	var cmd tea.Cmd
	for i := 0; i < 600; i++ {
		_, cmd = s.Update(countdownTickMsg(time.Now()))
	}
	expectResult(t, cmd)

	if s.state.Stage != session.StageFinished {
		t.Fatalf("Stage = %v, want Finished", s.state.Stage)
	}
	rec := records.records[0]
	if rec.Score != 1 || rec.TimeSpentSeconds != 600 {
		t.Errorf("record = %+v, want 1 point in 600s", rec)
	}

	// Late ticks are ignored.
	if _, cmd := s.Update(countdownTickMsg(time.Now())); cmd != nil {
		t.Error("tick after finish should not reschedule")
	}
}

func TestGameScreen_ForfeitCancel(t *testing.T) {
	s, _, _ := testGameScreen(t)

	s.Update(specialKey(tea.KeyEscape))
	if !s.state.ForfeitPending {
		t.Fatal("Esc should open the give-up dialog")
	}
	if !strings.Contains(s.View(100, 30), "Desistir do jogo?") {
		t.Error("modal should be rendered")
	}

	// Answer keys are swallowed by the dialog.
	s.Update(keyPress('1'))
	if s.state.HasSelection {
		t.Error("selection must be blocked while the dialog is open")
	}

	s.Update(specialKey(tea.KeyEnter)) // "Continuar" is the default
	if s.state.ForfeitPending {
		t.Error("Continuar should close the dialog")
	}
	if s.state.Stage != session.StageInProgress {
		t.Error("game should keep running")
	}
}

func TestGameScreen_ForfeitConfirm(t *testing.T) {
	s, records, events := testGameScreen(t)
	q, _ := s.state.Current()
	answer(t, s, q.Answer)
	for i := 0; i < 50; i++ {
		s.Update(countdownTickMsg(time.Now()))
	}

	s.Update(specialKey(tea.KeyEscape))
	s.Update(specialKey(tea.KeyRight))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	rs := expectResult(t, cmd)
	if rs == nil {
		return
	}

	rec := records.records[0]
	if rec.Score != 0 || rec.TimeSpentSeconds != 50 {
		t.Errorf("record = %+v, want 0 points in 50s", rec)
	}
	last := events.sessionEvents[len(events.sessionEvents)-1]
	if last.Reason != string(session.ReasonForfeited) {
		t.Errorf("reason = %q, want forfeited", last.Reason)
	}
}

func TestGameScreen_ClockRunsDuringDialog(t *testing.T) {
	s, _, _ := testGameScreen(t)
	s.Update(specialKey(tea.KeyEscape))
	s.Update(countdownTickMsg(time.Now()))
	if s.state.TimeRemaining != 599 {
		t.Errorf("TimeRemaining = %d, want 599", s.state.TimeRemaining)
	}
}

func TestGameScreen_View(t *testing.T) {
	s, _, _ := testGameScreen(t)
	view := s.View(100, 30)

	q, _ := s.state.Current()
	for _, want := range []string{"Questão 1 de 10", "10:00", strings.ToUpper(q.Category.DisplayName()), "Confirmar e Próxima"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	for _, o := range q.Options {
		if !strings.Contains(view, strconv.Itoa(o)) {
			t.Errorf("view missing option %d", o)
		}
	}
}

func TestGameScreen_NoSampler(t *testing.T) {
	s := New("Ana", Deps{})
	if s.errMsg == "" {
		t.Fatal("expected an error without a sampler")
	}
	if s.HandlesEscape() {
		t.Error("error view should let Esc pop the screen")
	}
	_, cmd := s.Update(keyPress('x'))
	if cmd == nil {
		t.Fatal("any key should go back")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestGameScreen_KeyHints(t *testing.T) {
	s, _, _ := testGameScreen(t)
	if got := s.KeyHints()[1].Description; got != "Confirmar e Próxima" {
		t.Errorf("hint = %q", got)
	}
	s.Update(specialKey(tea.KeyEscape))
	if got := s.KeyHints()[2].Description; got != "Continuar" {
		t.Errorf("dialog hint = %q", got)
	}
}
