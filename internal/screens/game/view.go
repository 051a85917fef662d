package game

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/expomatematica/quizmat/internal/quiz"
	"github.com/expomatematica/quizmat/internal/session"
	"github.com/expomatematica/quizmat/internal/ui/components"
	"github.com/expomatematica/quizmat/internal/ui/theme"
)

func (s *GameScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	if s.state.ForfeitPending {
		return renderForfeitModal(width, height, s.modalSel)
	}
	return s.renderQuestionView(width, height)
}

// renderQuestionView renders the status line, progress bar and the
// current question with its options.
func (s *GameScreen) renderQuestionView(width, height int) string {
	q, ok := s.state.Current()
	if !ok {
		return ""
	}
	total := len(s.state.Questions)
	cw := min(width-4, 72)

	var b strings.Builder

	// Status line: question counter left, countdown right.
	left := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Bold(true).
		Render(fmt.Sprintf("  Questão %d de %d", s.state.CurrentIndex+1, total))
	right := theme.Countdown(s.state.TimeRemaining).
		Render(fmt.Sprintf("⏱ %s  ", session.FormatCountdown(s.state.TimeRemaining)))
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(left + strings.Repeat(" ", gap) + right)
	b.WriteString("\n")

	bar := components.NewProgressBar("", float64(s.state.CurrentIndex)/float64(total), false, width-4)
	b.WriteString("  " + bar.View())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, categoryBadge(q.Category)))
	b.WriteString("\n\n")

	questionStyle := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, questionStyle.Render(q.Text)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View(min(cw, 30))))
	b.WriteString("\n")

	label := "Confirmar e Próxima"
	if s.state.IsLast() {
		label = "Finalizar"
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.Button(label, confirmState(s.state.HasSelection), 26)))

	return b.String()
}

func confirmState(hasSelection bool) components.ButtonState {
	if hasSelection {
		return components.ButtonFocused
	}
	return components.ButtonDisabled
}

func giveUpState(focused bool) components.ButtonState {
	if focused {
		return components.ButtonDanger
	}
	return components.ButtonIdle
}

// categoryBadge renders the pt-BR category label in its own color.
func categoryBadge(c quiz.Category) string {
	color := theme.Secondary
	switch c {
	case quiz.CategorySub:
		color = theme.Accent
	case quiz.CategoryMult:
		color = theme.Primary
	case quiz.CategoryDiv:
		color = theme.Success
	}
	return lipgloss.NewStyle().
		Foreground(theme.BgDark).
		Background(color).
		Bold(true).
		Padding(0, 1).
		Render(strings.ToUpper(c.DisplayName()))
}

// renderForfeitModal renders the give-up confirmation dialog.
func renderForfeitModal(width, height, selected int) string {
	title := lipgloss.NewStyle().
		Foreground(theme.Error).
		Bold(true).
		Render("⚠ Desistir do jogo?")
	body := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(40).
		Align(lipgloss.Center).
		Render("Sua pontuação será zerada e o tempo atual será registrado no ranking.")
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		components.Button("Continuar", components.FocusIf(selected == modalContinue), 14),
		"  ",
		components.Button("Desistir", giveUpState(selected == modalGiveUp), 14),
	)

	box := theme.Modal.Render(strings.Join([]string{title, "", body, "", buttons}, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// renderError renders an error message.
func renderError(width, height int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Erro: %s\n\n  Pressione qualquer tecla para voltar.", errMsg))
}
