package router

import (
	"slices"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/expomatematica/quizmat/internal/screen"
)

// fakeScreen records the messages it receives. next, when set, is the
// screen Update hands back, like a screen that swaps itself out.
type fakeScreen struct {
	name  string
	inits int
	got   []tea.Msg
	next  screen.Screen
	cmd   tea.Cmd
}

func (f *fakeScreen) Init() tea.Cmd {
	f.inits++
	return nil
}

func (f *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	f.got = append(f.got, msg)
	if f.next != nil {
		return f.next, f.cmd
	}
	return f, f.cmd
}

func (f *fakeScreen) View(int, int) string { return f.name }
func (f *fakeScreen) Title() string        { return f.name }

func titles(r *Router) []string {
	var out []string
	for _, s := range r.stack {
		out = append(out, s.Title())
	}
	return out
}

// TestQuizFlow walks the navigation a player goes through: splash, home,
// a game that hands over to its result, the ranking and back home.
func TestQuizFlow(t *testing.T) {
	welcome := &fakeScreen{name: "welcome"}
	home := &fakeScreen{name: "home"}
	game := &fakeScreen{name: "game"}
	result := &fakeScreen{name: "result"}
	board := &fakeScreen{name: "leaderboard"}

	r := New(welcome)
	steps := []struct {
		msg  tea.Msg
		want []string
	}{
		{ReplaceScreenMsg{Screen: home}, []string{"home"}},
		{PushScreenMsg{Screen: game}, []string{"home", "game"}},
		{ReplaceScreenMsg{Screen: result}, []string{"home", "result"}},
		{ReplaceScreenMsg{Screen: board}, []string{"home", "leaderboard"}},
		{PopScreenMsg{}, []string{"home"}},
		{PopScreenMsg{}, []string{"home"}},
	}
	for i, st := range steps {
		r.Update(st.msg)
		if got := titles(r); !slices.Equal(got, st.want) {
			t.Fatalf("step %d (%T): stack = %v, want %v", i, st.msg, got, st.want)
		}
	}

	for _, s := range []*fakeScreen{home, game, result, board} {
		if s.inits != 1 {
			t.Errorf("%s: Init ran %d times, want 1", s.name, s.inits)
		}
	}
	if welcome.inits != 0 {
		t.Error("the initial screen is initialised by the app, not the router")
	}
	if len(home.got) != 0 {
		t.Errorf("navigation messages leaked to the home screen: %v", home.got)
	}
}

func TestUpdate_ActiveScreenOnly(t *testing.T) {
	home := &fakeScreen{name: "home"}
	game := &fakeScreen{name: "game"}
	r := New(home)
	r.Push(game)

	key := tea.KeyPressMsg{Code: '2', Text: "2"}
	r.Update(key)

	if len(game.got) != 1 {
		t.Fatalf("game received %d messages, want 1", len(game.got))
	}
	if k, ok := game.got[0].(tea.KeyPressMsg); !ok || k.Code != key.Code {
		t.Errorf("game received %v, want the key press", game.got[0])
	}
	if len(home.got) != 0 {
		t.Errorf("screen below the top received %v", home.got)
	}
	if got := r.View(80, 24); got != "game" {
		t.Errorf("View = %q, want %q", got, "game")
	}
}

func TestUpdate_KeepsScreenReturnedByActive(t *testing.T) {
	errView := &fakeScreen{name: "error"}
	game := &fakeScreen{name: "game", next: errView}
	r := New(game)

	r.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if r.Active() != errView {
		t.Errorf("active = %q, want %q", r.Active().Title(), "error")
	}
	if r.Depth() != 1 {
		t.Errorf("depth = %d, want 1", r.Depth())
	}
}

func TestUpdate_ReturnsActiveCommand(t *testing.T) {
	called := false
	game := &fakeScreen{name: "game", cmd: func() tea.Msg {
		called = true
		return nil
	}}
	r := New(game)

	cmd := r.Update(tea.KeyPressMsg{Code: 'x'})
	if cmd == nil {
		t.Fatal("expected the screen's command")
	}
	cmd()
	if !called {
		t.Error("router returned a different command")
	}
}
