package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/expomatematica/quizmat/internal/ui/theme"
)

const bannerArt = `
  ██████╗ ██╗   ██╗██╗███████╗███╗   ███╗ █████╗ ████████╗
 ██╔═══██╗██║   ██║██║╚══███╔╝████╗ ████║██╔══██╗╚══██╔══╝
 ██║   ██║██║   ██║██║  ███╔╝ ██╔████╔██║███████║   ██║
 ██║▄▄ ██║██║   ██║██║ ███╔╝  ██║╚██╔╝██║██╔══██║   ██║
 ╚██████╔╝╚██████╔╝██║███████╗██║ ╚═╝ ██║██║  ██║   ██║
  ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝╚═╝     ╚═╝╚═╝  ╚═╝   ╚═╝`

const bannerCompact = "Q U I Z M A T"

// RenderBanner returns the QUIZMAT banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 60 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 60 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
