package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/expomatematica/quizmat/internal/ui/theme"
)

const (
	minCardWidth = 20
	maxCardWidth = 60

	// framePadding is the frame border plus the inner margin on both sides.
	framePadding = 6
)

// CardWidth is the content width shared by every card on a screen of the
// given width, clamped so cards line up on narrow and wide terminals.
func CardWidth(screenWidth int) int {
	return min(max(screenWidth-framePadding, minCardWidth), maxCardWidth)
}

// Frame draws the double-bordered quiz frame around content and centers
// content inside it.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card boxes content with a rounded border in accent.
func Card(content string, width int, accent color.Color) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Width(max(width-2, 0)).
		Padding(1, 2).
		Align(lipgloss.Center).
		Render(content)
}

// ButtonState selects how a Button is drawn.
type ButtonState int

const (
	ButtonIdle ButtonState = iota
	ButtonFocused
	ButtonDanger   // focused, for destructive actions
	ButtonDisabled // not actionable yet
)

// FocusIf returns ButtonFocused when focused and ButtonIdle otherwise.
func FocusIf(focused bool) ButtonState {
	if focused {
		return ButtonFocused
	}
	return ButtonIdle
}

// Button renders a bordered, fixed-width label.
func Button(label string, state ButtonState, width int) string {
	st := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	switch state {
	case ButtonFocused:
		return st.Bold(true).
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			BorderForeground(theme.ArcadeYellow).
			Render("▸ " + label)
	case ButtonDanger:
		return st.Bold(true).
			Foreground(theme.Text).
			Background(theme.Error).
			BorderForeground(theme.Error).
			Render("▸ " + label)
	case ButtonDisabled:
		return st.Foreground(theme.TextDim).
			Faint(true).
			BorderForeground(theme.Border).
			Render(label)
	default:
		return st.Foreground(theme.Text).
			BorderForeground(theme.Border).
			Render(label)
	}
}
