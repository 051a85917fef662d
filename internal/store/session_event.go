package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/expomatematica/quizmat/internal/quiz"
)

type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	ts := data.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(SessionEventsTable.Name).
		Columns("sequence", "timestamp", "session_id", "action", "player_name",
			"question_count", "score", "time_spent_seconds", "reason", "record_id").
		Values(seqNum, ts.UnixMilli(), data.SessionID, data.Action, data.PlayerName,
			data.QuestionCount, data.Score, data.TimeSpentSeconds, data.Reason, data.RecordID).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(AnswerEventsTable.Name).
		Columns("sequence", "timestamp", "session_id", "question_id", "category",
			"question_text", "correct_answer", "chosen_answer", "correct", "time_remaining").
		Values(seqNum, time.Now().UnixMilli(), data.SessionID, data.QuestionID, string(data.Category),
			data.QuestionText, data.CorrectAnswer, data.ChosenAnswer, data.Correct, data.TimeRemaining).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

// timeRange applies opts' From/To bounds to the timestamp column.
func timeRange(s *entsql.Selector, opts QueryOpts) *entsql.Selector {
	if !opts.From.IsZero() {
		s.Where(entsql.GTE(s.C("timestamp"), opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		s.Where(entsql.LTE(s.C("timestamp"), opts.To.UnixMilli()))
	}
	return s
}

func (r *eventRepo) Stats(ctx context.Context, opts QueryOpts) (*Stats, error) {
	st := &Stats{ByReason: make(map[string]int)}

	// Games started.
	t := entsql.Table(SessionEventsTable.Name)
	sel := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*")).
		From(t).
		Where(entsql.EQ(t.C("action"), ActionStart))
	if err := r.scanOne(ctx, timeRange(sel, opts), &st.GamesStarted); err != nil {
		return nil, fmt.Errorf("count started sessions: %w", err)
	}

	// Finished games by reason.
	t = entsql.Table(SessionEventsTable.Name)
	sel = entsql.Dialect(dialect.SQLite).
		Select(t.C("reason"), entsql.Count("*")).
		From(t).
		Where(entsql.EQ(t.C("action"), ActionEnd)).
		GroupBy(t.C("reason"))
	query, args := timeRange(sel, opts).Query()
	if err := r.each(ctx, query, args, func(rows *entsql.Rows) error {
		var (
			reason string
			n      int
		)
		if err := rows.Scan(&reason, &n); err != nil {
			return err
		}
		st.ByReason[reason] = n
		st.GamesFinished += n
		return nil
	}); err != nil {
		return nil, fmt.Errorf("count finished sessions: %w", err)
	}

	// Average score over finished games.
	t = entsql.Table(SessionEventsTable.Name)
	sel = entsql.Dialect(dialect.SQLite).
		Select(entsql.Avg(t.C("score"))).
		From(t).
		Where(entsql.EQ(t.C("action"), ActionEnd))
	var avg sql.NullFloat64
	if err := r.scanOne(ctx, timeRange(sel, opts), &avg); err != nil {
		return nil, fmt.Errorf("average score: %w", err)
	}
	st.AverageScore = avg.Float64

	// Per-category accuracy.
	t = entsql.Table(AnswerEventsTable.Name)
	sel = entsql.Dialect(dialect.SQLite).
		Select(t.C("category"), entsql.Count("*"), entsql.Sum(t.C("correct"))).
		From(t).
		GroupBy(t.C("category"))
	query, args = timeRange(sel, opts).Query()
	byCat := make(map[quiz.Category]CategoryStat)
	if err := r.each(ctx, query, args, func(rows *entsql.Rows) error {
		var (
			cat     string
			n       int
			correct sql.NullInt64
		)
		if err := rows.Scan(&cat, &n, &correct); err != nil {
			return err
		}
		c := quiz.Category(cat)
		byCat[c] = CategoryStat{Category: c, Answered: n, Correct: int(correct.Int64)}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("category accuracy: %w", err)
	}
	for _, c := range quiz.AllCategories() {
		if cs, ok := byCat[c]; ok {
			st.Categories = append(st.Categories, cs)
		}
	}

	return st, nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionEventData, error) {
	t := entsql.Table(SessionEventsTable.Name)
	sel := entsql.Dialect(dialect.SQLite).
		Select(t.C("timestamp"), t.C("session_id"), t.C("player_name"), t.C("question_count"),
			t.C("score"), t.C("time_spent_seconds"), t.C("reason"), t.C("record_id")).
		From(t).
		Where(entsql.EQ(t.C("action"), ActionEnd)).
		OrderBy(entsql.Desc(t.C("sequence")))
	sel = timeRange(sel, opts)
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	var out []SessionEventData
	err := r.each(ctx, query, args, func(rows *entsql.Rows) error {
		var (
			d  = SessionEventData{Action: ActionEnd}
			ts int64
		)
		if err := rows.Scan(&ts, &d.SessionID, &d.PlayerName, &d.QuestionCount,
			&d.Score, &d.TimeSpentSeconds, &d.Reason, &d.RecordID); err != nil {
			return err
		}
		d.Timestamp = time.UnixMilli(ts)
		out = append(out, d)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query recent sessions: %w", err)
	}
	return out, nil
}

func (r *eventRepo) scanOne(ctx context.Context, sel *entsql.Selector, dest any) error {
	query, args := sel.Query()
	found := false
	err := r.each(ctx, query, args, func(rows *entsql.Rows) error {
		found = true
		return rows.Scan(dest)
	})
	if err == nil && !found {
		return sql.ErrNoRows
	}
	return err
}

func (r *eventRepo) each(ctx context.Context, query string, args []any, fn func(*entsql.Rows) error) error {
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
