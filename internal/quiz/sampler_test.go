package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampler_QuotasAndLength(t *testing.T) {
	cfg := DefaultConfig()
	bank := BuildBank(testRand(1), cfg.BankSizes)
	s := NewSampler(bank, cfg.Quotas, testRand(2))

	for i := 0; i < 50; i++ {
		set := s.Sample()
		require.Len(t, set, cfg.QuizLength)
		assert.Equal(t, cfg.Quotas, CountByCategory(set))

		ids := make(map[string]bool)
		for _, q := range set {
			assert.False(t, ids[q.ID], "duplicate id %s", q.ID)
			ids[q.ID] = true
		}
	}
}

func TestSampler_DoesNotMutateBank(t *testing.T) {
	cfg := DefaultConfig()
	bank := BuildBank(testRand(1), cfg.BankSizes)
	before := bank.Questions(CategoryMult)

	s := NewSampler(bank, cfg.Quotas, testRand(5))
	for i := 0; i < 10; i++ {
		s.Sample()
	}

	after := bank.Questions(CategoryMult)
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
	}
}

func TestSampler_IndependentDraws(t *testing.T) {
	cfg := DefaultConfig()
	bank := BuildBank(testRand(1), cfg.BankSizes)
	s := NewSampler(bank, cfg.Quotas, testRand(3))

	first := s.Sample()
	differs := false
	for i := 0; i < 5 && !differs; i++ {
		next := s.Sample()
		for j := range next {
			if next[j].ID != first[j].ID {
				differs = true
				break
			}
		}
	}
	assert.True(t, differs, "consecutive samples should not all be identical")
}

func TestSampler_QuotaCappedAtBankSize(t *testing.T) {
	bank := BuildBank(testRand(1), map[Category]int{CategoryAdd: 2})
	s := NewSampler(bank, map[Category]int{CategoryAdd: 5}, testRand(2))

	assert.Equal(t, 2, s.Length())
	assert.Len(t, s.Sample(), 2)
}
