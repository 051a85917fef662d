package leaderboard

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxNameLength is the longest player name accepted, in runes.
const MaxNameLength = 40

var (
	// ErrEmptyName is returned for names that are blank after trimming.
	ErrEmptyName = errors.New("player name is empty")

	// ErrNameTooLong is returned for names over MaxNameLength runes.
	ErrNameTooLong = errors.New("player name is too long")
)

// ValidationError reports a rejected field. Err, when set, is one of the
// sentinel errors above.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateName trims surrounding whitespace and rejects empty or overlong
// names. The trimmed name is returned on success.
func ValidateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", &ValidationError{Field: "name", Msg: "Por favor, digite seu nome para começar.", Err: ErrEmptyName}
	}
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		return "", &ValidationError{
			Field: "name",
			Msg:   fmt.Sprintf("O nome deve ter no máximo %d caracteres.", MaxNameLength),
			Err:   ErrNameTooLong,
		}
	}
	return name, nil
}
