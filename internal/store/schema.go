package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// LeaderboardRecordsColumns holds the columns for the "leaderboard_records" table.
	LeaderboardRecordsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "name", Type: field.TypeString},
		{Name: "score", Type: field.TypeInt},
		{Name: "time_spent_seconds", Type: field.TypeInt},
		{Name: "timestamp", Type: field.TypeInt64},
	}
	// LeaderboardRecordsTable holds the schema information for the "leaderboard_records" table.
	LeaderboardRecordsTable = &schema.Table{
		Name:       "leaderboard_records",
		Columns:    LeaderboardRecordsColumns,
		PrimaryKey: []*schema.Column{LeaderboardRecordsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "leaderboardrecord_score_time_spent_seconds",
				Unique:  false,
				Columns: []*schema.Column{LeaderboardRecordsColumns[3], LeaderboardRecordsColumns[4]},
			},
		},
	}

	// SessionEventsColumns holds the columns for the "session_events" table.
	SessionEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "session_id", Type: field.TypeString},
		{Name: "action", Type: field.TypeString},
		{Name: "player_name", Type: field.TypeString},
		{Name: "question_count", Type: field.TypeInt},
		{Name: "score", Type: field.TypeInt, Default: 0},
		{Name: "time_spent_seconds", Type: field.TypeInt, Default: 0},
		{Name: "reason", Type: field.TypeString, Default: ""},
		{Name: "record_id", Type: field.TypeString, Default: ""},
	}
	// SessionEventsTable holds the schema information for the "session_events" table.
	SessionEventsTable = &schema.Table{
		Name:       "session_events",
		Columns:    SessionEventsColumns,
		PrimaryKey: []*schema.Column{SessionEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "sessionevent_session_id",
				Unique:  false,
				Columns: []*schema.Column{SessionEventsColumns[3]},
			},
			{
				Name:    "sessionevent_action_timestamp",
				Unique:  false,
				Columns: []*schema.Column{SessionEventsColumns[4], SessionEventsColumns[2]},
			},
		},
	}

	// AnswerEventsColumns holds the columns for the "answer_events" table.
	AnswerEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "session_id", Type: field.TypeString},
		{Name: "question_id", Type: field.TypeString},
		{Name: "category", Type: field.TypeString},
		{Name: "question_text", Type: field.TypeString, Size: 2147483647},
		{Name: "correct_answer", Type: field.TypeInt},
		{Name: "chosen_answer", Type: field.TypeInt},
		{Name: "correct", Type: field.TypeBool},
		{Name: "time_remaining", Type: field.TypeInt},
	}
	// AnswerEventsTable holds the schema information for the "answer_events" table.
	AnswerEventsTable = &schema.Table{
		Name:       "answer_events",
		Columns:    AnswerEventsColumns,
		PrimaryKey: []*schema.Column{AnswerEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "answerevent_category",
				Unique:  false,
				Columns: []*schema.Column{AnswerEventsColumns[5]},
			},
			{
				Name:    "answerevent_session_id",
				Unique:  false,
				Columns: []*schema.Column{AnswerEventsColumns[3]},
			},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		LeaderboardRecordsTable,
		SessionEventsTable,
		AnswerEventsTable,
	}
)
