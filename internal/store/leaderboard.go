package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/expomatematica/quizmat/internal/leaderboard"
)

// LeaderboardRepo stores player records in the leaderboard_records table.
// It implements leaderboard.Repo.
type LeaderboardRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

var _ leaderboard.Repo = (*LeaderboardRepo)(nil)

// Append inserts rec. Records whose ID is already stored are ignored, so
// re-running an interrupted write is safe.
func (r *LeaderboardRepo) Append(ctx context.Context, rec leaderboard.PlayerRecord) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(LeaderboardRecordsTable.Name).
		Columns("id", "sequence", "name", "score", "time_spent_seconds", "timestamp").
		Values(rec.ID, seqNum, rec.Name, rec.Score, rec.TimeSpentSeconds, rec.Timestamp.UnixMilli()).
		OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing()).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save leaderboard record: %w", err)
	}
	return nil
}

// All returns every record in insertion order.
func (r *LeaderboardRepo) All(ctx context.Context) ([]leaderboard.PlayerRecord, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("id", "name", "score", "time_spent_seconds", "timestamp").
		From(entsql.Table(LeaderboardRecordsTable.Name)).
		OrderBy(entsql.Asc("sequence")).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var out []leaderboard.PlayerRecord
	for rows.Next() {
		var (
			rec leaderboard.PlayerRecord
			ts  int64
		)
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Score, &rec.TimeSpentSeconds, &ts); err != nil {
			return nil, fmt.Errorf("scan leaderboard record: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leaderboard: %w", err)
	}
	return out, nil
}

// Count returns the number of stored records.
func (r *LeaderboardRepo) Count(ctx context.Context) (int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*")).
		From(entsql.Table(LeaderboardRecordsTable.Name)).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return 0, fmt.Errorf("count leaderboard: %w", err)
	}
	defer rows.Close()

	n := 0
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("scan count: %w", err)
		}
	}
	return n, rows.Err()
}
