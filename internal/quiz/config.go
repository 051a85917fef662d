package quiz

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MaxTimeBudgetSeconds caps the session countdown at one day.
const MaxTimeBudgetSeconds = 24 * 60 * 60

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("invalid quiz config")

// Config controls bank sizing, per-session quotas and the time budget.
type Config struct {
	// TimeBudgetSeconds is the countdown each session starts from.
	TimeBudgetSeconds int `yaml:"time_budget_seconds"`

	// QuizLength is the number of questions in a quiz set. It must equal
	// the sum of Quotas.
	QuizLength int `yaml:"quiz_length"`

	// Quotas is how many questions of each category a quiz set draws.
	Quotas Counts `yaml:"category_quotas"`

	// BankSizes is how many questions of each category the bank holds.
	BankSizes Counts `yaml:"bank_sizes"`
}

// Counts maps each category to a number of questions.
type Counts map[Category]int

// UnmarshalYAML replaces c with the decoded mapping. Keys are matched
// case-insensitively and stored in canonical form; two keys naming the
// same category are an error.
func (c *Counts) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]int
	if err := value.Decode(&raw); err != nil {
		return err
	}
	out := make(Counts, len(raw))
	for k, n := range raw {
		cat, err := ParseCategory(k)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		if _, dup := out[cat]; dup {
			return fmt.Errorf("%w: category %s listed twice", ErrInvalidConfig, cat)
		}
		out[cat] = n
	}
	*c = out
	return nil
}

// DefaultConfig returns the reference sizing: a 10 minute budget and 10
// questions drawn 2/2/3/3 from a 40/40/60/60 bank.
func DefaultConfig() Config {
	return Config{
		TimeBudgetSeconds: 600,
		QuizLength:        10,
		Quotas: Counts{
			CategoryAdd:  2,
			CategorySub:  2,
			CategoryMult: 3,
			CategoryDiv:  3,
		},
		BankSizes: Counts{
			CategoryAdd:  40,
			CategorySub:  40,
			CategoryMult: 60,
			CategoryDiv:  60,
		},
	}
}

// Validate checks that the quotas add up to QuizLength and that every
// quota fits in its bank.
func (c Config) Validate() error {
	if c.TimeBudgetSeconds <= 0 {
		return fmt.Errorf("%w: time budget must be positive, got %d", ErrInvalidConfig, c.TimeBudgetSeconds)
	}
	if c.TimeBudgetSeconds > MaxTimeBudgetSeconds {
		return fmt.Errorf("%w: time budget %d exceeds %d seconds", ErrInvalidConfig, c.TimeBudgetSeconds, MaxTimeBudgetSeconds)
	}
	if c.QuizLength <= 0 {
		return fmt.Errorf("%w: quiz length must be positive, got %d", ErrInvalidConfig, c.QuizLength)
	}

	sum := 0
	for cat, q := range c.Quotas {
		if !cat.Valid() {
			return fmt.Errorf("%w: quota: unknown category %q", ErrInvalidConfig, cat)
		}
		if q < 0 {
			return fmt.Errorf("%w: negative quota for %s", ErrInvalidConfig, cat)
		}
		if q > c.BankSizes[cat] {
			return fmt.Errorf("%w: quota %d for %s exceeds bank size %d", ErrInvalidConfig, q, cat, c.BankSizes[cat])
		}
		sum += q
	}
	if sum != c.QuizLength {
		return fmt.Errorf("%w: quotas sum to %d, quiz length is %d", ErrInvalidConfig, sum, c.QuizLength)
	}

	for cat, n := range c.BankSizes {
		if !cat.Valid() {
			return fmt.Errorf("%w: bank size: unknown category %q", ErrInvalidConfig, cat)
		}
		if n < 0 {
			return fmt.Errorf("%w: negative bank size for %s", ErrInvalidConfig, cat)
		}
	}
	return nil
}
