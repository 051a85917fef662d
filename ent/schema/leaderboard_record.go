package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LeaderboardRecord is one finished game. Rows are append-only.
type LeaderboardRecord struct {
	ent.Schema
}

func (LeaderboardRecord) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (LeaderboardRecord) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			NotEmpty().
			Immutable().
			Comment("UUIDv7, or the legacy millisecond id of imported records"),
		field.String("name").
			NotEmpty().
			MaxLen(40),
		field.Int("score").
			NonNegative(),
		field.Int("time_spent_seconds").
			NonNegative(),
	}
}

func (LeaderboardRecord) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("score", "time_spent_seconds"),
	}
}
