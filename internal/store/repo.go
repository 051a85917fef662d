package store

import (
	"context"
	"time"

	"github.com/expomatematica/quizmat/internal/quiz"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
}

// Session event actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// SessionEventData captures the start or end of one play-through.
type SessionEventData struct {
	SessionID     string
	Action        string
	PlayerName    string
	QuestionCount int

	// Set on end events only.
	Score            int
	TimeSpentSeconds int
	Reason           string
	RecordID         string

	// Timestamp is filled in by the repo on append when zero.
	Timestamp time.Time
}

// AnswerEventData captures one submitted question.
type AnswerEventData struct {
	SessionID     string
	QuestionID    string
	Category      quiz.Category
	QuestionText  string
	CorrectAnswer int
	ChosenAnswer  int
	Correct       bool
	TimeRemaining int
}

// CategoryStat is the all-time accuracy for one category.
type CategoryStat struct {
	Category quiz.Category
	Answered int
	Correct  int
}

// Accuracy returns Correct/Answered, or 0 with no answers.
func (c CategoryStat) Accuracy() float64 {
	if c.Answered == 0 {
		return 0
	}
	return float64(c.Correct) / float64(c.Answered)
}

// Stats aggregates the event log.
type Stats struct {
	GamesStarted  int
	GamesFinished int
	AverageScore  float64
	ByReason      map[string]int
	Categories    []CategoryStat
}

// EventRepo provides append access to session events and aggregate queries.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records a submitted answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// Stats aggregates session and answer events within opts' time range.
	Stats(ctx context.Context, opts QueryOpts) (*Stats, error)

	// RecentSessions returns end events, newest first.
	RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionEventData, error)
}
