package leaderboard

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/expomatematica/quizmat/internal/quiz"
	"github.com/expomatematica/quizmat/internal/session"
)

// PlayerRecord is one finished session on the leaderboard. Records are
// append-only: once written they are never edited or removed.
type PlayerRecord struct {
	// ID is unique per record and used to de-duplicate re-reads.
	ID               string
	Name             string
	Score            int
	TimeSpentSeconds int
	Timestamp        time.Time
}

// recordJSON is the persisted shape. Timestamps are Unix milliseconds.
type recordJSON struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Score            int    `json:"score"`
	TimeSpentSeconds int    `json:"timeSpentSeconds"`
	Timestamp        int64  `json:"timestamp"`
}

func (r PlayerRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		ID:               r.ID,
		Name:             r.Name,
		Score:            r.Score,
		TimeSpentSeconds: r.TimeSpentSeconds,
		Timestamp:        r.Timestamp.UnixMilli(),
	})
}

func (r *PlayerRecord) UnmarshalJSON(data []byte) error {
	var raw recordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = PlayerRecord{
		ID:               raw.ID,
		Name:             raw.Name,
		Score:            raw.Score,
		TimeSpentSeconds: raw.TimeSpentSeconds,
		Timestamp:        time.UnixMilli(raw.Timestamp),
	}
	return nil
}

// NewRecord turns a session result into a leaderboard record for name.
// The name is validated with ValidateName.
func NewRecord(name string, res session.Result, now time.Time) (PlayerRecord, error) {
	clean, err := ValidateName(name)
	if err != nil {
		return PlayerRecord{}, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return PlayerRecord{}, fmt.Errorf("generate record id: %w", err)
	}
	return PlayerRecord{
		ID:               id.String(),
		Name:             clean,
		Score:            res.Score,
		TimeSpentSeconds: res.TimeSpentSeconds,
		Timestamp:        now,
	}, nil
}

// MaxTimeSpentSeconds bounds the time a record can report. No session
// runs longer than the largest allowed budget.
const MaxTimeSpentSeconds = quiz.MaxTimeBudgetSeconds

// Validate checks a record read from outside the process. Names only need
// to be non-blank; MaxNameLength applies to names typed at the prompt.
func (r PlayerRecord) Validate() error {
	if r.ID == "" {
		return &ValidationError{Field: "id", Msg: "must not be empty"}
	}
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Field: "name", Msg: "must not be blank", Err: ErrEmptyName}
	}
	if r.Score < 0 {
		return &ValidationError{Field: "score", Msg: fmt.Sprintf("must not be negative, got %d", r.Score)}
	}
	if r.TimeSpentSeconds < 0 || r.TimeSpentSeconds > MaxTimeSpentSeconds {
		return &ValidationError{
			Field: "timeSpentSeconds",
			Msg:   fmt.Sprintf("must be between 0 and %d, got %d", MaxTimeSpentSeconds, r.TimeSpentSeconds),
		}
	}
	return nil
}
