package session

import "github.com/expomatematica/quizmat/internal/quiz"

// Stage is the lifecycle position of a session.
type Stage int

const (
	StageNotStarted Stage = iota
	StageInProgress
	StageFinished
)

func (s Stage) String() string {
	switch s {
	case StageNotStarted:
		return "not_started"
	case StageInProgress:
		return "in_progress"
	case StageFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Reason says which of the three termination paths ended a session.
type Reason string

const (
	ReasonCompleted Reason = "completed"
	ReasonTimedOut  Reason = "timed_out"
	ReasonForfeited Reason = "forfeited"
)

// Answer is one submitted question.
type Answer struct {
	QuestionID string
	Category   quiz.Category
	Chosen     int
	Correct    bool

	// TimeRemaining is the countdown value at submission.
	TimeRemaining int
}

// State is one play-through. The zero value is a session that has not
// started. States are values: Apply returns a new State and never
// modifies the one it was given.
type State struct {
	Questions []quiz.Question

	// Budget is the countdown length in seconds.
	Budget int

	CurrentIndex  int
	Score         int
	TimeRemaining int

	// SelectedOption is only meaningful when HasSelection is set.
	SelectedOption int
	HasSelection   bool

	Stage Stage

	// ForfeitPending is set while the give-up confirmation is showing.
	ForfeitPending bool

	Answers []Answer
}

// Current returns the question being answered.
func (s State) Current() (quiz.Question, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return quiz.Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// Elapsed returns the seconds consumed from the budget so far.
func (s State) Elapsed() int {
	return s.Budget - s.TimeRemaining
}

// IsLast reports whether the current question is the final one.
func (s State) IsLast() bool {
	return s.CurrentIndex == len(s.Questions)-1
}

// Result is the single finish event of a session.
type Result struct {
	Score            int
	TimeSpentSeconds int
	Reason           Reason

	// Total is the number of questions in the quiz set.
	Total int
}
