package session

// Event is an input to Apply. The countdown and the player's actions are
// both events so a single writer can serialize them.
type Event interface {
	eventName() string
}

// Tick is one elapsed second of the countdown.
type Tick struct{}

// Select picks an option of the current question.
type Select struct {
	Option int
}

// Submit confirms the selected option.
type Submit struct{}

// RequestForfeit opens the give-up confirmation.
type RequestForfeit struct{}

// CancelForfeit closes the give-up confirmation and resumes play.
type CancelForfeit struct{}

// ConfirmForfeit ends the session with a score of zero.
type ConfirmForfeit struct{}

func (Tick) eventName() string           { return "tick" }
func (Select) eventName() string         { return "select" }
func (Submit) eventName() string         { return "submit" }
func (RequestForfeit) eventName() string { return "request_forfeit" }
func (CancelForfeit) eventName() string  { return "cancel_forfeit" }
func (ConfirmForfeit) eventName() string { return "confirm_forfeit" }
