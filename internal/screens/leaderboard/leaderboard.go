package leaderboard

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	lb "github.com/expomatematica/quizmat/internal/leaderboard"
	"github.com/expomatematica/quizmat/internal/router"
	"github.com/expomatematica/quizmat/internal/screen"
	"github.com/expomatematica/quizmat/internal/ui/layout"
	"github.com/expomatematica/quizmat/internal/ui/theme"
)

type recordsLoadedMsg struct {
	Records []lb.PlayerRecord
	Err     error
}

// LeaderboardScreen displays the ranked records.
type LeaderboardScreen struct {
	repo      lb.Repo
	highlight string
	records   []lb.PlayerRecord
	offset    int
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*LeaderboardScreen)(nil)
var _ screen.KeyHintProvider = (*LeaderboardScreen)(nil)

// New creates a new LeaderboardScreen. The record with ID highlight, if
// any, is drawn in the accent color.
func New(repo lb.Repo, highlight string) *LeaderboardScreen {
	return &LeaderboardScreen{
		repo:      repo,
		highlight: highlight,
	}
}

func (s *LeaderboardScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		records, err := lb.Ranked(context.Background(), repo)
		return recordsLoadedMsg{Records: records, Err: err}
	}
}

func (s *LeaderboardScreen) Title() string {
	return "Ranking"
}

func (s *LeaderboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Rolar"},
		{Key: "Esc", Description: "Voltar"},
	}
}

func (s *LeaderboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recordsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Records
			s.offset = s.highlightOffset()
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			if s.offset < len(s.records)-1 {
				s.offset++
			}
		case "home", "g":
			s.offset = 0
		}
	}
	return s, nil
}

// highlightOffset scrolls so the highlighted record is near the top.
func (s *LeaderboardScreen) highlightOffset() int {
	pos := lb.Position(s.records, s.highlight)
	if pos <= 5 {
		return 0
	}
	return pos - 3
}

func (s *LeaderboardScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nErro: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Carregando ranking...")
	}
	if len(s.records) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Align(lipgloss.Center).
				Render("Ainda não há recordes!\nSeja o primeiro a jogar."))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).
			Render(fmt.Sprintf("%-4s %-24s %7s %6s %10s", "#", "JOGADOR", "ACERTOS", "TEMPO", "DATA"))))
	b.WriteString("\n")

	visible := height - 4
	if visible < 1 {
		visible = 1
	}
	end := min(s.offset+visible, len(s.records))
	for i := s.offset; i < end; i++ {
		rec := s.records[i]
		pos := i + 1

		marker := lb.Medal(pos)
		if marker == "" {
			marker = fmt.Sprintf("%d.", pos)
		}
		line := fmt.Sprintf("%-4s %-24s %7d %6s %10s",
			marker, truncate(rec.Name, 24), rec.Score, lb.FormatClock(rec.TimeSpentSeconds), lb.FormatDate(rec.Timestamp.Local()))

		style := lipgloss.NewStyle().Foreground(positionColor(pos))
		if rec.ID == s.highlight {
			style = style.Foreground(theme.ArcadeYellow).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func positionColor(pos int) color.Color {
	switch pos {
	case 1:
		return theme.Gold
	case 2:
		return theme.Silver
	case 3:
		return theme.Bronze
	default:
		return theme.Text
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
