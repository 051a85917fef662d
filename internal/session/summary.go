package session

import (
	"fmt"

	"github.com/expomatematica/quizmat/internal/quiz"
)

// CategoryResult is the per-category tally shown on the result screen.
type CategoryResult struct {
	Category  quiz.Category
	Attempted int
	Correct   int
}

// Summary holds the data displayed after a session ends.
type Summary struct {
	Result   Result
	Answered int
	Correct  int
	Accuracy float64

	// Categories is in bank order and only lists categories that were
	// part of the quiz set.
	Categories []CategoryResult
}

// BuildSummary tallies a finished session. Correct counts what the player
// got right even when a forfeit zeroed the score.
func BuildSummary(s State, r Result) Summary {
	present := make(map[quiz.Category]bool)
	for _, q := range s.Questions {
		present[q.Category] = true
	}

	byCat := make(map[quiz.Category]*CategoryResult)
	correct := 0
	for _, a := range s.Answers {
		cr := byCat[a.Category]
		if cr == nil {
			cr = &CategoryResult{Category: a.Category}
			byCat[a.Category] = cr
		}
		cr.Attempted++
		if a.Correct {
			cr.Correct++
			correct++
		}
	}

	var cats []CategoryResult
	for _, c := range quiz.AllCategories() {
		if !present[c] {
			continue
		}
		if cr := byCat[c]; cr != nil {
			cats = append(cats, *cr)
		} else {
			cats = append(cats, CategoryResult{Category: c})
		}
	}

	var accuracy float64
	if len(s.Answers) > 0 {
		accuracy = float64(correct) / float64(len(s.Answers))
	}

	return Summary{
		Result:     r,
		Answered:   len(s.Answers),
		Correct:    correct,
		Accuracy:   accuracy,
		Categories: cats,
	}
}

// FormatCountdown renders seconds as mm:ss.
func FormatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
