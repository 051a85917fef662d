package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records a single submitted question within a session.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionEvent"),
		field.String("question_id").
			NotEmpty().
			Comment("Bank id, e.g. mult-17"),
		field.String("category").
			NotEmpty().
			Comment("ADD, SUB, MULT or DIV"),
		field.Text("question_text").
			Comment("The question shown"),
		field.Int("correct_answer"),
		field.Int("chosen_answer"),
		field.Bool("correct"),
		field.Int("time_remaining").
			Comment("Countdown seconds left after the submit"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("category"),
		index.Fields("session_id"),
	}
}
