package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records session lifecycle events (start/end).
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID grouping events in a session"),
		field.String("action").
			NotEmpty().
			Comment("start or end"),
		field.String("player_name"),
		field.Int("question_count"),
		field.Int("score").
			Default(0).
			Comment("Final score (on end only)"),
		field.Int("time_spent_seconds").
			Default(0).
			Comment("Seconds used from the budget (on end only)"),
		field.String("reason").
			Default("").
			Comment("completed, timed_out or forfeited (on end only)"),
		field.String("record_id").
			Default("").
			Comment("Leaderboard record written for the session (on end only)"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("action", "timestamp"),
	}
}
