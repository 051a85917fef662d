package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/expomatematica/quizmat/internal/router"
	"github.com/expomatematica/quizmat/internal/screen"
)

type stubScreen struct {
	title    string
	escapes  bool
	received []string
}

func (s *stubScreen) Init() tea.Cmd { return nil }
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		s.received = append(s.received, k.String())
	}
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }
func (s *stubScreen) HandlesEscape() bool  { return s.escapes }

func testModel(top *stubScreen) AppModel {
	r := router.New(&stubScreen{title: "root"})
	r.Push(top)
	return AppModel{router: r}
}

func TestEscPopsByDefault(t *testing.T) {
	top := &stubScreen{title: "top"}
	m := testModel(top)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
	if len(top.received) != 0 {
		t.Error("screen should not see Esc")
	}
}

func TestEscDeliveredToCapturingScreen(t *testing.T) {
	top := &stubScreen{title: "game", escapes: true}
	m := testModel(top)

	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if len(top.received) != 1 || top.received[0] != "esc" {
		t.Errorf("received = %v, want [esc]", top.received)
	}
	if m.router.Depth() != 2 {
		t.Error("stack must not change")
	}
}

func TestSkipWelcomeStartsAtHome(t *testing.T) {
	m := newAppModel(Options{SkipWelcome: true})
	if got := m.router.Active().Title(); got != "Início" {
		t.Errorf("first screen = %q, want home", got)
	}
}

func TestViewTooSmall(t *testing.T) {
	m := newAppModel(Options{SkipWelcome: true})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	am := updated.(AppModel)
	if am.width != 40 || am.height != 10 {
		t.Fatalf("size = %dx%d, want 40x10", am.width, am.height)
	}
	if !am.View().AltScreen {
		t.Error("view should use the alt screen")
	}
}
