package session

import (
	"fmt"

	"github.com/expomatematica/quizmat/internal/quiz"
)

// Start begins a session over questions with a countdown of budget seconds.
func Start(questions []quiz.Question, budget int) (State, error) {
	if len(questions) == 0 {
		return State{}, violation("start", State{}, "empty quiz set")
	}
	if budget <= 0 {
		return State{}, violation("start", State{}, fmt.Sprintf("non-positive time budget %d", budget))
	}

	qs := make([]quiz.Question, len(questions))
	copy(qs, questions)

	return State{
		Questions:     qs,
		Budget:        budget,
		TimeRemaining: budget,
		Stage:         StageInProgress,
	}, nil
}

// Apply runs one event against s. It returns the next state and, when the
// event ended the session, its Result. A non-nil error means the event was
// a contract breach; the returned state is then s unchanged.
//
// Exactly one event per session yields a Result: the submit of the last
// question, the tick that drains the countdown, or a confirmed forfeit.
// Every event after that is rejected.
func Apply(s State, ev Event) (State, *Result, error) {
	if ev == nil {
		return s, nil, violation("apply", s, "nil event")
	}
	if s.Stage != StageInProgress {
		return s, nil, violation(ev.eventName(), s, "session is not in progress")
	}

	switch e := ev.(type) {
	case Tick:
		return tick(s)
	case Select:
		return selectOption(s, e.Option)
	case Submit:
		return submit(s)
	case RequestForfeit:
		s.ForfeitPending = true
		return s, nil, nil
	case CancelForfeit:
		s.ForfeitPending = false
		return s, nil, nil
	case ConfirmForfeit:
		if !s.ForfeitPending {
			return s, nil, violation(ev.eventName(), s, "forfeit was not requested")
		}
		s.ForfeitPending = false
		s.Stage = StageFinished
		return s, &Result{
			Score:            0,
			TimeSpentSeconds: s.Elapsed(),
			Reason:           ReasonForfeited,
			Total:            len(s.Questions),
		}, nil
	default:
		return s, nil, violation(ev.eventName(), s, "unsupported event")
	}
}

func tick(s State) (State, *Result, error) {
	if s.TimeRemaining > 0 {
		s.TimeRemaining--
	}
	if s.TimeRemaining > 0 {
		return s, nil, nil
	}

	// Timeout always reports the full budget.
	s.TimeRemaining = 0
	s.ForfeitPending = false
	s.HasSelection = false
	s.Stage = StageFinished
	return s, &Result{
		Score:            s.Score,
		TimeSpentSeconds: s.Budget,
		Reason:           ReasonTimedOut,
		Total:            len(s.Questions),
	}, nil
}

func selectOption(s State, option int) (State, *Result, error) {
	if s.ForfeitPending {
		return s, nil, violation("select", s, "forfeit confirmation is open")
	}
	q, ok := s.Current()
	if !ok {
		return s, nil, violation("select", s, fmt.Sprintf("question index %d out of range", s.CurrentIndex))
	}
	if !q.HasOption(option) {
		return s, nil, violation("select", s, fmt.Sprintf("%d is not an option of %s", option, q.ID))
	}
	s.SelectedOption = option
	s.HasSelection = true
	return s, nil, nil
}

func submit(s State) (State, *Result, error) {
	if s.ForfeitPending {
		return s, nil, violation("submit", s, "forfeit confirmation is open")
	}
	if !s.HasSelection {
		return s, nil, violation("submit", s, "no option selected")
	}
	q, ok := s.Current()
	if !ok {
		return s, nil, violation("submit", s, fmt.Sprintf("question index %d out of range", s.CurrentIndex))
	}

	correct := q.IsCorrect(s.SelectedOption)
	if correct {
		s.Score++
	}
	// Full slice expression so the caller's Answers are never appended to.
	s.Answers = append(s.Answers[:len(s.Answers):len(s.Answers)], Answer{
		QuestionID:    q.ID,
		Category:      q.Category,
		Chosen:        s.SelectedOption,
		Correct:       correct,
		TimeRemaining: s.TimeRemaining,
	})
	s.HasSelection = false
	s.SelectedOption = 0

	if !s.IsLast() {
		s.CurrentIndex++
		return s, nil, nil
	}

	s.Stage = StageFinished
	return s, &Result{
		Score:            s.Score,
		TimeSpentSeconds: s.Elapsed(),
		Reason:           ReasonCompleted,
		Total:            len(s.Questions),
	}, nil
}
