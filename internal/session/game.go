package session

import (
	"context"
	"sync"
	"time"

	"github.com/expomatematica/quizmat/internal/quiz"
)

// Ticker delivers countdown ticks to a Game.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type wallTicker struct{ t *time.Ticker }

func (w wallTicker) C() <-chan time.Time { return w.t.C }
func (w wallTicker) Stop()               { w.t.Stop() }

// NewWallTicker returns a Ticker firing every second.
func NewWallTicker() Ticker {
	return wallTicker{t: time.NewTicker(time.Second)}
}

// GameOption configures a Game.
type GameOption func(*Game)

// WithTicker replaces the one-second wall clock ticker.
func WithTicker(newTicker func() Ticker) GameOption {
	return func(g *Game) { g.newTicker = newTicker }
}

// Game runs a session against a real clock. Player actions and ticks may
// arrive from different goroutines; a mutex makes Game the single writer
// of its State.
type Game struct {
	mu     sync.Mutex
	state  State
	result *Result

	newTicker func() Ticker
	done      chan struct{}
	doneOnce  sync.Once
}

// NewGame starts a session. The countdown does not run until Run is called.
func NewGame(questions []quiz.Question, budget int, opts ...GameOption) (*Game, error) {
	st, err := Start(questions, budget)
	if err != nil {
		return nil, err
	}
	g := &Game{
		state:     st,
		newTicker: NewWallTicker,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Run drives the countdown until the session finishes or ctx is done. The
// ticker is stopped exactly once, when Run returns.
func (g *Game) Run(ctx context.Context) error {
	t := g.newTicker()
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-g.done:
			return nil
		case <-t.C():
			g.Tick()
		}
	}
}

// Tick applies one second of countdown. Ticks that arrive after the
// session finished are dropped.
func (g *Game) Tick() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state.Stage != StageInProgress {
		return
	}
	_ = g.applyLocked(Tick{})
}

// Select picks an option of the current question.
func (g *Game) Select(option int) error { return g.apply(Select{Option: option}) }

// Submit confirms the selected option.
func (g *Game) Submit() error { return g.apply(Submit{}) }

// RequestForfeit opens the give-up confirmation.
func (g *Game) RequestForfeit() error { return g.apply(RequestForfeit{}) }

// CancelForfeit resumes play.
func (g *Game) CancelForfeit() error { return g.apply(CancelForfeit{}) }

// ConfirmForfeit ends the session with a score of zero.
func (g *Game) ConfirmForfeit() error { return g.apply(ConfirmForfeit{}) }

func (g *Game) apply(ev Event) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.applyLocked(ev)
}

func (g *Game) applyLocked(ev Event) error {
	next, res, err := Apply(g.state, ev)
	if err != nil {
		return err
	}
	g.state = next
	if res != nil {
		g.result = res
		g.doneOnce.Do(func() { close(g.done) })
	}
	return nil
}

// State returns a snapshot of the session.
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Done is closed when the session finishes.
func (g *Game) Done() <-chan struct{} {
	return g.done
}

// Result returns the finish event once Done is closed.
func (g *Game) Result() (Result, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.result == nil {
		return Result{}, false
	}
	return *g.result, true
}
