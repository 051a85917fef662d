package home

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/expomatematica/quizmat/internal/leaderboard"
	"github.com/expomatematica/quizmat/internal/router"
	"github.com/expomatematica/quizmat/internal/screen"
	gamescreen "github.com/expomatematica/quizmat/internal/screens/game"
	boardscreen "github.com/expomatematica/quizmat/internal/screens/leaderboard"
	"github.com/expomatematica/quizmat/internal/ui/components"
	"github.com/expomatematica/quizmat/internal/ui/layout"
	"github.com/expomatematica/quizmat/internal/ui/theme"
)

// Tagline is shown under the title.
const Tagline = "Teste sua agilidade mental com problemas do cotidiano!"

// HomeScreen is the name-entry and main menu screen.
type HomeScreen struct {
	deps       gamescreen.Deps
	input      components.TextInput
	menu       components.Menu
	menuLabels []string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps gamescreen.Deps) *HomeScreen {
	h := &HomeScreen{
		deps:       deps,
		input:      components.NewTextInput("Ex: João Silva", leaderboard.MaxNameLength, 30),
		menuLabels: []string{"INICIAR DESAFIO", "VER RANKING", "SAIR"},
	}

	items := []components.MenuItem{
		{Label: h.menuLabels[0], Action: h.start},
		{Label: h.menuLabels[1], Action: func() tea.Cmd {
			board := boardscreen.New(deps.Records, "")
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: board}
			}
		}, Disabled: deps.Records == nil},
		{Label: h.menuLabels[2], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

// start validates the typed name and opens a new game.
func (h *HomeScreen) start() tea.Cmd {
	name, err := leaderboard.ValidateName(h.input.Value())
	if err != nil {
		var verr *leaderboard.ValidationError
		if errors.As(err, &verr) {
			h.input.SetError(verr.Msg)
		} else {
			h.input.SetError(err.Error())
		}
		return nil
	}
	game := gamescreen.New(name, h.deps)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: game}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.input.Init()
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up", "down", "enter":
			h.menu, cmd = h.menu.Update(msg)
			return h, cmd
		}
	}
	// Everything else is typing.
	h.input, cmd = h.input.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 34 || layout.IsCompactWidth(width)

	cw := components.CardWidth(width)

	var sections []string

	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(Tagline))
	}

	questions := 0
	if h.deps.Sampler != nil {
		questions = h.deps.Sampler.Length()
	}
	sections = append(sections, renderStatsBar(h.deps.Budget, questions, cw, compact))
	sections = append(sections, renderNameField(h.input, cw))

	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw))
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.Frame(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) Title() string {
	return "Início"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Enter", Description: "Selecionar"},
		{Key: "Ctrl+C", Description: "Sair"},
	}
}
