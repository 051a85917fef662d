package quiz

import (
	"fmt"
	"strings"
)

// Category is the arithmetic operation a question exercises.
type Category string

const (
	CategoryAdd  Category = "ADD"
	CategorySub  Category = "SUB"
	CategoryMult Category = "MULT"
	CategoryDiv  Category = "DIV"
)

// AllCategories returns every category in bank order.
func AllCategories() []Category {
	return []Category{CategoryAdd, CategorySub, CategoryMult, CategoryDiv}
}

// Valid reports whether c is one of the four canonical categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryAdd, CategorySub, CategoryMult, CategoryDiv:
		return true
	}
	return false
}

// DisplayName returns the pt-BR label shown next to a question.
func (c Category) DisplayName() string {
	switch c {
	case CategoryAdd:
		return "Adição"
	case CategorySub:
		return "Subtração"
	case CategoryMult:
		return "Multiplicação"
	case CategoryDiv:
		return "Divisão"
	default:
		return string(c)
	}
}

// ParseCategory accepts the wire name of a category in any letter case.
func ParseCategory(s string) (Category, error) {
	for _, c := range AllCategories() {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Operands are the two numbers a question was built from.
// For DIV, A is the dividend (total) and B the divisor.
type Operands struct {
	A int
	B int
}

// Question is a generated multiple-choice word problem.
// Questions are values shared read-only between the bank and every quiz
// set sampled from it; Options must not be modified.
type Question struct {
	// ID is unique within a bank, e.g. "mult-97".
	ID string

	Category Category

	// Text is the rendered pt-BR word problem.
	Text string

	// Answer is the correct option.
	Answer int

	// Options holds exactly 4 distinct non-negative integers in display
	// order, one of which equals Answer.
	Options []int

	Operands Operands
}

// HasOption reports whether v is one of the question's options.
func (q Question) HasOption(v int) bool {
	for _, o := range q.Options {
		if o == v {
			return true
		}
	}
	return false
}

// IsCorrect reports whether v is the correct answer.
func (q Question) IsCorrect(v int) bool {
	return v == q.Answer
}
