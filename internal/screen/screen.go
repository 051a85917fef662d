package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/expomatematica/quizmat/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeHandler is implemented by screens that give Esc their own meaning.
// The app delivers Esc to the screen instead of popping the stack while
// HandlesEscape reports true.
type EscapeHandler interface {
	HandlesEscape() bool
}

// PlayerProvider is implemented by screens that know the current player,
// whose name is then shown in the header.
type PlayerProvider interface {
	Player() string
}
