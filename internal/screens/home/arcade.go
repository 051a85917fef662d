package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/expomatematica/quizmat/internal/session"
	"github.com/expomatematica/quizmat/internal/ui/components"
	"github.com/expomatematica/quizmat/internal/ui/theme"
)

// Block-letter title (same art as welcome/banner.go).
const arcadeTitleFull = `  ██████╗ ██╗   ██╗██╗███████╗███╗   ███╗ █████╗ ████████╗
 ██╔═══██╗██║   ██║██║╚══███╔╝████╗ ████║██╔══██╗╚══██╔══╝
 ██║   ██║██║   ██║██║  ███╔╝ ██╔████╔██║███████║   ██║
 ██║▄▄ ██║██║   ██║██║ ███╔╝  ██║╚██╔╝██║██╔══██║   ██║
 ╚██████╔╝╚██████╔╝██║███████╗██║ ╚═╝ ██║██║  ██║   ██║
  ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝╚═╝     ╚═╝╚═╝  ╚═╝   ╚═╝`

const arcadeTitleCompact = "Q · U · I · Z · M · A · T"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact || cw < 58 {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar shows the rules of the challenge in a bordered box
// matching content width.
func renderStatsBar(budgetSeconds, questions, cw int, compact bool) string {
	timeStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	countStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)

	clock := session.FormatCountdown(budgetSeconds)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s",
			timeStyle.Render("⏱"+clock),
			countStyle.Render(fmt.Sprintf("★%d", questions)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s",
			timeStyle.Render(fmt.Sprintf("⏱ %s TEMPO LIMITE", clock)),
			countStyle.Render(fmt.Sprintf("★ %d QUESTÕES", questions)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderNameField renders the player-name input with its label.
func renderNameField(input components.TextInput, cw int) string {
	label := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("Nome do Jogador")

	field := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Width(cw - 2).
		Padding(0, 1).
		Render(input.View())

	return lipgloss.JoinVertical(lipgloss.Left, label, field)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int) string {
	var buttons []string
	for i, label := range items {
		buttons = append(buttons, components.Button(label, components.FocusIf(i == selected), buttonWidth))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ "+label+" "))
		} else {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   "+label))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}
