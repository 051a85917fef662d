package components

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/expomatematica/quizmat/internal/ui/theme"
)

// MultiChoiceAction is what a key press asked the selector to do.
type MultiChoiceAction int

const (
	ChoiceNone    MultiChoiceAction = iota
	ChoiceMoved                     // cursor moved, nothing picked
	ChoicePicked                    // option under the cursor was picked
	ChoiceConfirm                   // enter pressed on a picked option
)

// MultiChoice is a numeric multiple-choice selector. Picking an option
// and confirming it are separate steps: 1-4 or Space picks, Enter
// confirms.
type MultiChoice struct {
	Options []int
	Cursor  int

	// Picked is the index of the picked option, or -1.
	Picked int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(options []int) MultiChoice {
	return MultiChoice{
		Options: options,
		Picked:  -1,
	}
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, MultiChoiceAction) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, ChoiceNone
	}

	key := kmsg.String()
	switch key {
	case "up", "k", "left", "h":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, ChoiceMoved
	case "down", "j", "right", "l", "tab":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
		return m, ChoiceMoved
	case "space":
		m.Picked = m.Cursor
		return m, ChoicePicked
	case "enter":
		if m.Picked < 0 {
			m.Picked = m.Cursor
			return m, ChoicePicked
		}
		return m, ChoiceConfirm
	}

	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Options) {
		m.Cursor = n - 1
		m.Picked = n - 1
		return m, ChoicePicked
	}
	return m, ChoiceNone
}

// Value returns the picked option value.
func (m MultiChoice) Value() (int, bool) {
	if m.Picked < 0 || m.Picked >= len(m.Options) {
		return 0, false
	}
	return m.Options[m.Picked], true
}

// View renders the options as a column of numbered cards.
func (m MultiChoice) View(width int) string {
	var s string
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %d", prefix, i+1, opt)

		style := lipgloss.NewStyle().
			Width(width).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Foreground(theme.Text).
			Padding(0, 1)
		switch {
		case i == m.Picked:
			style = style.
				BorderForeground(theme.ArcadeYellow).
				Foreground(theme.ArcadeYellow).
				Bold(true)
		case i == m.Cursor:
			style = style.
				BorderForeground(theme.Primary).
				Foreground(theme.Primary)
		}
		s += style.Render(line) + "\n"
	}
	return s
}
