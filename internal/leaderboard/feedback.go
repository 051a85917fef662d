package leaderboard

import (
	"fmt"
	"time"
)

// Percent returns score as a whole percentage of total.
func Percent(score, total int) int {
	if total <= 0 {
		return 0
	}
	return score * 100 / total
}

// Feedback returns the message shown on the result screen.
func Feedback(score, total int) string {
	if total <= 0 {
		return "Não desista! A prática leva à perfeição."
	}
	ratio := float64(score) / float64(total)
	switch {
	case ratio >= 1:
		return "Perfeito! Você é um gênio da matemática!"
	case ratio >= 0.7:
		return "Excelente trabalho! Continue assim!"
	case ratio >= 0.5:
		return "Bom esforço! Mas dá para melhorar."
	default:
		return "Não desista! A prática leva à perfeição."
	}
}

// FormatClock renders seconds as m:ss, the leaderboard's time column.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatDuration renders seconds as "Xm Ys".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}

// FormatDate renders t as dd/mm/yyyy in t's location.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// Medal returns the podium marker for a 1-based position, or "".
func Medal(position int) string {
	switch position {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return ""
	}
}
