package result

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/expomatematica/quizmat/internal/leaderboard"
	"github.com/expomatematica/quizmat/internal/router"
	"github.com/expomatematica/quizmat/internal/screen"
	boardscreen "github.com/expomatematica/quizmat/internal/screens/leaderboard"
	"github.com/expomatematica/quizmat/internal/session"
	"github.com/expomatematica/quizmat/internal/ui/components"
	"github.com/expomatematica/quizmat/internal/ui/layout"
	"github.com/expomatematica/quizmat/internal/ui/theme"
)

type positionLoadedMsg struct {
	Position int
	Err      error
}

// ResultScreen displays the outcome of a finished game.
type ResultScreen struct {
	player   string
	summary  session.Summary
	record   leaderboard.PlayerRecord
	records  leaderboard.Repo
	position int
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)
var _ screen.PlayerProvider = (*ResultScreen)(nil)

// New creates a new ResultScreen. records may be nil, in which case the
// ranking position is not shown.
func New(player string, summary session.Summary, record leaderboard.PlayerRecord, records leaderboard.Repo) *ResultScreen {
	return &ResultScreen{
		player:  player,
		summary: summary,
		record:  record,
		records: records,
	}
}

// Init looks up where the new record landed in the ranking.
func (s *ResultScreen) Init() tea.Cmd {
	if s.records == nil || s.record.ID == "" {
		return nil
	}
	repo, id := s.records, s.record.ID
	return func() tea.Msg {
		ranked, err := leaderboard.Ranked(context.Background(), repo)
		if err != nil {
			return positionLoadedMsg{Err: err}
		}
		return positionLoadedMsg{Position: leaderboard.Position(ranked, id)}
	}
}

func (s *ResultScreen) Title() string {
	return "Resultado Final"
}

func (s *ResultScreen) Player() string {
	return s.player
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Voltar ao Início"},
		{Key: "R", Description: "Ver Ranking"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case positionLoadedMsg:
		if msg.Err == nil {
			s.position = msg.Position
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			// The game screen was replaced by this one, so popping
			// lands on home.
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "r", "R":
			if s.records == nil {
				return s, nil
			}
			board := boardscreen.New(s.records, s.record.ID)
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: board} }
		}
	}
	return s, nil
}

func (s *ResultScreen) View(width, height int) string {
	sum := s.summary
	res := sum.Result
	cw := components.CardWidth(width)

	var sections []string

	sections = append(sections,
		lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render("🏆 Resultado Final"),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Jogador: "+s.player),
	)

	scoreCard := statCard(fmt.Sprintf("%d/%d", res.Score, res.Total), "ACERTOS", theme.Primary)
	timeCard := statCard(leaderboard.FormatDuration(res.TimeSpentSeconds), "TEMPO", theme.Secondary)
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, scoreCard, "  ", timeCard))

	pct := leaderboard.Percent(res.Score, res.Total)
	sections = append(sections,
		lipgloss.NewStyle().Foreground(percentColor(pct)).Bold(true).
			Render(fmt.Sprintf("%d%%  %s", pct, leaderboard.Feedback(res.Score, res.Total))),
	)

	switch res.Reason {
	case session.ReasonTimedOut:
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Warning).Render("Tempo esgotado!"))
	case session.ReasonForfeited:
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Warning).
			Render(fmt.Sprintf("Você desistiu. Acertos antes de desistir: %d", sum.Correct)))
	}

	if len(sum.Categories) > 0 {
		sections = append(sections, renderCategories(sum.Categories))
	}

	if s.position > 0 {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).
			Render(strings.TrimSpace(fmt.Sprintf("%s Posição no ranking: %dº", leaderboard.Medal(s.position), s.position))))
	}

	content := components.Card(strings.Join(sections, "\n\n"), cw, theme.Primary)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func statCard(value, label string, fg color.Color) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(fg).
		Width(16).
		Align(lipgloss.Center).
		Render(
			lipgloss.NewStyle().Foreground(fg).Bold(true).Render(value) + "\n" +
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(label),
		)
}

func renderCategories(cats []session.CategoryResult) string {
	var lines []string
	for _, c := range cats {
		lines = append(lines, fmt.Sprintf("%-14s %d/%d", c.Category.DisplayName(), c.Correct, c.Attempted))
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Render(strings.Join(lines, "\n"))
}

// percentColor follows the result bar colors: green from 70%, yellow from
// 40%, red below.
func percentColor(pct int) color.Color {
	switch {
	case pct >= 70:
		return theme.Success
	case pct >= 40:
		return theme.ArcadeYellow
	default:
		return theme.Error
	}
}
