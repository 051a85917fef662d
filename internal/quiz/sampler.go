package quiz

// Sampler draws quiz sets from a bank according to per-category quotas.
// A Sampler is not safe for concurrent use when its Rand isn't.
type Sampler struct {
	bank   *Bank
	quotas map[Category]int
	rnd    Rand
}

// NewSampler returns a Sampler over bank. Quotas larger than the bank's
// category are capped at the category size.
func NewSampler(bank *Bank, quotas map[Category]int, rnd Rand) *Sampler {
	q := make(map[Category]int, len(quotas))
	for c, n := range quotas {
		q[c] = n
	}
	return &Sampler{bank: bank, quotas: q, rnd: rnd}
}

// Length returns the number of questions Sample returns.
func (s *Sampler) Length() int {
	n := 0
	for _, c := range AllCategories() {
		n += min(s.quotas[c], s.bank.Size(c))
	}
	return n
}

// Sample shuffles each category independently, takes its quota from the
// front and shuffles the combined set so categories interleave. The bank
// is never modified.
func (s *Sampler) Sample() []Question {
	out := make([]Question, 0, s.Length())
	for _, c := range AllCategories() {
		quota := s.quotas[c]
		if quota <= 0 {
			continue
		}
		pool := s.bank.Questions(c)
		s.rnd.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		out = append(out, pool[:min(quota, len(pool))]...)
	}
	s.rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// CountByCategory tallies questions per category.
func CountByCategory(qs []Question) map[Category]int {
	counts := make(map[Category]int)
	for _, q := range qs {
		counts[q.Category]++
	}
	return counts
}
