package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/expomatematica/quizmat/internal/leaderboard"
	"github.com/expomatematica/quizmat/internal/quiz"
	"github.com/expomatematica/quizmat/internal/session"
	"github.com/expomatematica/quizmat/internal/store"
)

// Deps are the collaborators a game needs. The plain-terminal mode uses
// them too. Records is required; Events and Logger may be nil.
type Deps struct {
	Sampler *quiz.Sampler
	Budget  int
	Records leaderboard.Repo
	Events  store.EventRepo
	Logger  *slog.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

func (d Deps) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d Deps) appendSessionEvent(ctx context.Context, data store.SessionEventData) {
	if d.Events == nil {
		return
	}
	if err := d.Events.AppendSessionEvent(ctx, data); err != nil {
		d.logger().Error("append session event",
			"session_id", data.SessionID, "action", data.Action, "err", err)
	}
}

func (d Deps) appendAnswerEvent(ctx context.Context, data store.AnswerEventData) {
	if d.Events == nil {
		return
	}
	if err := d.Events.AppendAnswerEvent(ctx, data); err != nil {
		d.logger().Error("append answer event",
			"session_id", data.SessionID, "question_id", data.QuestionID, "err", err)
	}
}

// saveRecord appends rec to the leaderboard. Failures are logged; the
// result screen is shown from memory either way.
func (d Deps) saveRecord(ctx context.Context, sessionID string, rec leaderboard.PlayerRecord, res session.Result) {
	log := d.logger().With("session_id", sessionID, "record_id", rec.ID)
	if d.Records == nil {
		log.Warn("no leaderboard repo configured")
		return
	}
	if err := d.Records.Append(ctx, rec); err != nil {
		log.Error("save leaderboard record", "err", err)
		return
	}
	log.Info("session finished",
		"score", res.Score, "time_spent_seconds", res.TimeSpentSeconds, "reason", string(res.Reason))
}

// LogStart writes the session start event.
func (d Deps) LogStart(ctx context.Context, sessionID, player string, st session.State) {
	d.appendSessionEvent(ctx, store.SessionEventData{
		SessionID:     sessionID,
		Action:        store.ActionStart,
		PlayerName:    player,
		QuestionCount: len(st.Questions),
	})
	d.logger().Info("session started",
		"session_id", sessionID, "questions", len(st.Questions), "budget", st.Budget)
}

// LogAnswer writes the answer event for q. remaining is the countdown
// after the submit.
func (d Deps) LogAnswer(ctx context.Context, sessionID string, q quiz.Question, chosen, remaining int) {
	d.appendAnswerEvent(ctx, store.AnswerEventData{
		SessionID:     sessionID,
		QuestionID:    q.ID,
		Category:      q.Category,
		QuestionText:  q.Text,
		CorrectAnswer: q.Answer,
		ChosenAnswer:  chosen,
		Correct:       q.IsCorrect(chosen),
		TimeRemaining: remaining,
	})
}

// Finish saves the leaderboard record for a finished session and writes
// the end event. The returned record has an empty ID when it could not be
// built.
func (d Deps) Finish(ctx context.Context, sessionID, player string, st session.State, res session.Result) (session.Summary, leaderboard.PlayerRecord) {
	summary := session.BuildSummary(st, res)

	rec, err := leaderboard.NewRecord(player, res, d.now())
	if err != nil {
		d.logger().Error("build leaderboard record", "session_id", sessionID, "err", err)
	} else {
		d.saveRecord(ctx, sessionID, rec, res)
	}

	d.appendSessionEvent(ctx, store.SessionEventData{
		SessionID:        sessionID,
		Action:           store.ActionEnd,
		PlayerName:       player,
		QuestionCount:    res.Total,
		Score:            res.Score,
		TimeSpentSeconds: res.TimeSpentSeconds,
		Reason:           string(res.Reason),
		RecordID:         rec.ID,
	})
	return summary, rec
}
